package InputParameters

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/notargets/goswe/types"
)

// Parameters obtained from the YAML input file
type InputParametersSWE struct {
	Title         string                        `yaml:"Title"`
	InitType      string                        `yaml:"InitType"`
	NX            int                           `yaml:"NX"`
	NY            int                           `yaml:"NY"`
	CFL           float64                       `yaml:"CFL"`
	Gravity       float64                       `yaml:"Gravity"`
	FinalTime     float64                       `yaml:"FinalTime"` // Zero runs to the end time of the scenario
	Checkpoints   int                           `yaml:"Checkpoints"`
	MaxIterations int                           `yaml:"MaxIterations"`
	ProcLimit     int                           `yaml:"ProcLimit"`
	BCs           map[string]string             `yaml:"BCs"`    // Edge name to boundary type, overrides the scenario
	Inflow        map[string]map[string]float64 `yaml:"Inflow"` // Edge name to constant h, hu, hv
}

func NewInputParametersSWE() (ip *InputParametersSWE) {
	ip = &InputParametersSWE{}
	ip.SetDefaults()
	return
}

func (ip *InputParametersSWE) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, ip); err != nil {
		return fmt.Errorf("unable to parse input parameters: %w", err)
	}
	ip.SetDefaults()
	return
}

// SetDefaults fills in every parameter left at its zero value
func (ip *InputParametersSWE) SetDefaults() {
	if ip.InitType == "" {
		ip.InitType = "base"
	}
	if ip.NX == 0 {
		ip.NX = 100
	}
	if ip.NY == 0 {
		ip.NY = 100
	}
	if ip.CFL == 0 {
		ip.CFL = 0.4
	}
	if ip.Gravity == 0 {
		ip.Gravity = 9.81
	}
	if ip.Checkpoints == 0 {
		ip.Checkpoints = 1
	}
	if ip.MaxIterations == 0 {
		ip.MaxIterations = 5000000
	}
}

func (ip *InputParametersSWE) Validate() (err error) {
	switch {
	case ip.NX < 1 || ip.NY < 1:
		err = fmt.Errorf("grid extents must be positive, have NX, NY = %d, %d", ip.NX, ip.NY)
	case !(ip.CFL > 0 && ip.CFL <= 0.5):
		err = fmt.Errorf("CFL must be in (0, 0.5], have %g", ip.CFL)
	case !(ip.Gravity > 0):
		err = fmt.Errorf("gravity must be positive, have %g", ip.Gravity)
	case ip.FinalTime < 0:
		err = fmt.Errorf("final time must not be negative, have %g", ip.FinalTime)
	case ip.Checkpoints < 0 || ip.MaxIterations < 0 || ip.ProcLimit < 0:
		err = fmt.Errorf("checkpoints, max iterations and proc limit must not be negative, have %d, %d, %d",
			ip.Checkpoints, ip.MaxIterations, ip.ProcLimit)
	}
	if err != nil {
		return
	}
	for edge, bc := range ip.BCs {
		if _, err = types.NewBoundaryEdge(edge); err != nil {
			return fmt.Errorf("BCs: %w", err)
		}
		var flag types.BCFLAG
		if flag, err = types.NewBCFLAG(bc); err != nil {
			return fmt.Errorf("BCs[%s]: %w", edge, err)
		}
		if _, _, _, ok := ip.InflowState(edge); flag == types.BC_Inflow && !ok {
			return fmt.Errorf("BCs[%s]: inflow boundary needs an Inflow state", edge)
		}
	}
	for edge, state := range ip.Inflow {
		if _, err = types.NewBoundaryEdge(edge); err != nil {
			return fmt.Errorf("Inflow: %w", err)
		}
		for key := range state {
			switch strings.ToLower(key) {
			case "h", "hu", "hv":
			default:
				return fmt.Errorf("Inflow[%s]: unknown state variable %q, must be one of h, hu, hv", edge, key)
			}
		}
		if h, _, _, _ := ip.InflowState(edge); !(h > 0) {
			return fmt.Errorf("Inflow[%s]: inflow height must be positive", edge)
		}
	}
	return
}

// InflowState returns the inflow h, hu, hv configured for an edge
func (ip *InputParametersSWE) InflowState(edge string) (h, hu, hv float64, ok bool) {
	var state map[string]float64
	for key, val := range ip.Inflow {
		if strings.EqualFold(key, edge) {
			state, ok = val, true
		}
	}
	for key, val := range state {
		switch strings.ToLower(key) {
		case "h":
			h = val
		case "hu":
			hu = val
		case "hv":
			hv = val
		}
	}
	return
}

func (ip *InputParametersSWE) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t\t= InitType\n", ip.InitType)
	fmt.Printf("[%d, %d]\t\t= NX, NY\n", ip.NX, ip.NY)
	fmt.Printf("%8.5f\t\t= CFL\n", ip.CFL)
	fmt.Printf("%8.5f\t\t= Gravity\n", ip.Gravity)
	if ip.FinalTime == 0 {
		fmt.Printf("[scenario]\t\t= FinalTime\n")
	} else {
		fmt.Printf("%8.5f\t\t= FinalTime\n", ip.FinalTime)
	}
	fmt.Printf("[%d]\t\t\t= Checkpoints\n", ip.Checkpoints)
	fmt.Printf("[%d]\t\t= MaxIterations\n", ip.MaxIterations)
	keys := make([]string, len(ip.BCs))
	i := 0
	for k := range ip.BCs {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("BCs[%s] = %v\n", key, ip.BCs[key])
	}
	keys = keys[:0]
	for k := range ip.Inflow {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("Inflow[%s] = %v\n", key, ip.Inflow[key])
	}
}
