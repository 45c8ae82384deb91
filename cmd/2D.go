/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/goswe/InputParameters"
	"github.com/notargets/goswe/model_problems/SWE2D"
)

type Model2D struct {
	ICFile  string
	Profile bool
	Verbose bool
}

const exampleFile = `
########################################
Title: "Radial Dam Break"
InitType: RadialDamBreak # base, dambreak, artificialtsunami, lakeatrest
NX: 200
NY: 200
CFL: 0.4
FinalTime: 15 # 0 runs to the end time of the scenario
Checkpoints: 10
BCs:
  left: wall # outflow, wall, inflow, passive
Inflow:
  top:
    h: 12
    hv: -2
########################################
`

// TwoDCmd represents the 2D command
var TwoDCmd = &cobra.Command{
	Use:   "2D",
	Short: "Two dimensional shallow water solver on a single cartesian block",
	Long: `
Runs one of the built in scenarios described by a YAML input file,

goswe 2D -I input.yaml [-x NX] [-y NY] [-c checkpoints] [--profile]`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			ip *InputParameters.InputParametersSWE
		)
		m2d := &Model2D{}
		if m2d.ICFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			return
		}
		m2d.Profile = viper.GetBool("2D.profile")
		m2d.Verbose = viper.GetBool("verbose")
		if ip, err = processInput(m2d); err != nil {
			return
		}
		applyOverrides(ip)
		return Run2D(m2d, ip)
	},
}

func init() {
	rootCmd.AddCommand(TwoDCmd)
	TwoDCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- InitType\n\t- NX, NY\n\t- CFL")
	TwoDCmd.Flags().IntP("nx", "x", 0, "number of cells in x, overrides the input file")
	TwoDCmd.Flags().IntP("ny", "y", 0, "number of cells in y, overrides the input file")
	TwoDCmd.Flags().IntP("checkpoints", "c", 0, "number of output checkpoints, overrides the input file")
	TwoDCmd.Flags().IntP("procLimit", "p", 0, "maximum number of go routines, 0 uses one per CPU")
	TwoDCmd.Flags().Float64P("finalTime", "t", 0, "end of the simulation, overrides the input file")
	TwoDCmd.Flags().Bool("profile", false, "write a CPU profile of the run")
	for _, name := range []string{"nx", "ny", "checkpoints", "procLimit", "finalTime", "profile"} {
		_ = viper.BindPFlag("2D."+name, TwoDCmd.Flags().Lookup(name))
	}
}

func processInput(m2d *Model2D) (ip *InputParameters.InputParametersSWE, err error) {
	var (
		data []byte
	)
	if len(m2d.ICFile) == 0 {
		fmt.Printf("Example File:%s\n", exampleFile)
		err = fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile) in YAML format")
		return
	}
	if data, err = os.ReadFile(m2d.ICFile); err != nil {
		err = fmt.Errorf("unable to read input file: %w", err)
		return
	}
	ip = InputParameters.NewInputParametersSWE()
	if err = ip.Parse(data); err != nil {
		return nil, err
	}
	return
}

// applyOverrides copies flags given on the command line, in the environment or
// in the configuration file over the input file values
func applyOverrides(ip *InputParameters.InputParametersSWE) {
	if viper.IsSet("2D.nx") {
		ip.NX = viper.GetInt("2D.nx")
	}
	if viper.IsSet("2D.ny") {
		ip.NY = viper.GetInt("2D.ny")
	}
	if viper.IsSet("2D.checkpoints") {
		ip.Checkpoints = viper.GetInt("2D.checkpoints")
	}
	if viper.IsSet("2D.procLimit") {
		ip.ProcLimit = viper.GetInt("2D.procLimit")
	}
	if viper.IsSet("2D.finalTime") {
		ip.FinalTime = viper.GetFloat64("2D.finalTime")
	}
}

func Run2D(m2d *Model2D, ip *InputParameters.InputParametersSWE) (err error) {
	var (
		c *SWE2D.SWE
	)
	if m2d.Verbose {
		ip.Print()
	}
	if c, err = SWE2D.NewSWE(ip, m2d.Verbose); err != nil {
		return
	}
	if m2d.Profile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}
	c.OnCheckpoint = func(k int, Time float64, bl *SWE2D.Block) {
		etaMin, etaMax := SWE2D.SurfaceRange(bl)
		logrus.WithFields(logrus.Fields{
			"checkpoint": k,
			"time":       Time,
			"etaMin":     etaMin,
			"etaMax":     etaMax,
			"maxSpeed":   SWE2D.MaxSpeed(bl),
		}).Debug("checkpoint")
	}
	// Numerical failures inside the solver unwind as panics carrying an error
	defer func() {
		if r := recover(); r != nil {
			if perr, ok := r.(error); ok {
				err = fmt.Errorf("simulation aborted: %w", perr)
				return
			}
			panic(r)
		}
	}()
	c.Solve()
	return
}
