package SWE2D

import (
	"github.com/notargets/goswe/utils"
)

/*
Grid is the storage the update engine works on. All four fields are
(nx+2) x (ny+2), the outer ring of cells is the ghost layer and must hold
boundary values before each Advance.

The engine mutates the fields through the returned Float2D values, which share
storage with the grid.
*/
type Grid interface {
	HeightField() utils.Float2D
	MomentumXField() utils.Float2D
	MomentumYField() utils.Float2D
	BathymetryField() utils.Float2D
	CellSize() (dx, dy float32)
	Extents() (nx, ny int)
}
