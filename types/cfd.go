package types

import (
	"fmt"
	"strings"
)

type BCFLAG uint8

const (
	BC_Outflow BCFLAG = iota
	BC_Wall
	BC_Inflow
	BC_Connect
	BC_Passive
)

var BCNameMap = map[string]BCFLAG{
	"outflow": BC_Outflow,
	"out":     BC_Outflow,
	"wall":    BC_Wall,
	"inflow":  BC_Inflow,
	"in":      BC_Inflow,
	"connect": BC_Connect,
	"passive": BC_Passive,
}

var bcPrintNames = []string{"Outflow", "Wall", "Inflow", "Connect", "Passive"}

func (bc BCFLAG) String() string {
	if int(bc) < len(bcPrintNames) {
		return bcPrintNames[bc]
	}
	return fmt.Sprintf("BCFLAG(%d)", uint8(bc))
}

func NewBCFLAG(label string) (bc BCFLAG, err error) {
	var ok bool
	if bc, ok = BCNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown boundary condition type %q", label)
	}
	return
}

// BoundaryEdge names one side of a rectangular block
type BoundaryEdge uint8

const (
	BND_Left BoundaryEdge = iota
	BND_Right
	BND_Bottom
	BND_Top
)

var BoundaryEdges = [4]BoundaryEdge{BND_Left, BND_Right, BND_Bottom, BND_Top}

var EdgeNameMap = map[string]BoundaryEdge{
	"left":   BND_Left,
	"right":  BND_Right,
	"bottom": BND_Bottom,
	"top":    BND_Top,
}

var edgePrintNames = []string{"Left", "Right", "Bottom", "Top"}

func (be BoundaryEdge) String() string {
	if int(be) < len(edgePrintNames) {
		return edgePrintNames[be]
	}
	return fmt.Sprintf("BoundaryEdge(%d)", uint8(be))
}

func NewBoundaryEdge(label string) (be BoundaryEdge, err error) {
	var ok bool
	if be, ok = EdgeNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown boundary edge %q, must be one of left, right, bottom, top", label)
	}
	return
}
