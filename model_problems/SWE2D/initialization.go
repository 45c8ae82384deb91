package SWE2D

import (
	"fmt"
	"strings"

	"github.com/notargets/goswe/model_problems/SWE2D/scenarios"
)

type InitType uint

const (
	BASE InitType = iota
	RADIALDAMBREAK
	DAMBREAK
	ARTIFICIALTSUNAMI
	LAKEATREST
)

var (
	InitNames = map[string]InitType{
		"base":              BASE,
		"radialdambreak":    RADIALDAMBREAK,
		"dambreak":          DAMBREAK,
		"artificialtsunami": ARTIFICIALTSUNAMI,
		"lakeatrest":        LAKEATREST,
	}
	InitPrintNames = []string{"Still Water", "Radial Dam Break", "Dam Break", "Artificial Tsunami", "Lake at Rest"}
)

func (it InitType) Print() (txt string) {
	if int(it) < len(InitPrintNames) {
		txt = InitPrintNames[it]
	}
	return
}

func NewInitType(label string) (it InitType, err error) {
	var (
		ok bool
	)
	if len(label) == 0 {
		err = fmt.Errorf("empty init type, must be one of %v", InitNames)
		return
	}
	label = strings.ToLower(label)
	if it, ok = InitNames[label]; !ok {
		err = fmt.Errorf("unable to use init type named %s", label)
	}
	return
}

func (it InitType) Scenario() (sc scenarios.Scenario) {
	switch it {
	case BASE:
		sc = scenarios.Base{}
	case RADIALDAMBREAK:
		sc = scenarios.RadialDamBreak{}
	case DAMBREAK:
		sc = scenarios.NewDamBreak()
	case ARTIFICIALTSUNAMI:
		sc = scenarios.ArtificialTsunami{}
	case LAKEATREST:
		sc = scenarios.LakeAtRest{}
	default:
		panic("unknown case type")
	}
	return
}
