package SWE2D

import (
	"fmt"

	"github.com/notargets/goswe/model_problems/SWE2D/scenarios"
	"github.com/notargets/goswe/types"
	"github.com/notargets/goswe/utils"
)

/*
Block is a rectangular patch of nx x ny cells with a one cell ghost layer.
Interior cells are indexed [1, nx] x [1, ny], ghosts sit at 0 and nx+1 (ny+1).
*/
type Block struct {
	NX, NY        int
	DX, DY        float32
	OriginX       float32
	OriginY       float32
	H, Hu, Hv, B  utils.Float2D
	BCs           [4]types.BCFLAG
	inflow        [4][3]float32 // h, hu, hv held in inflow ghost cells
	inflowDefined [4]bool
}

func NewBlock(nx, ny int, dx, dy float32) (bl *Block) {
	if nx < 1 || ny < 1 || !(dx > 0) || !(dy > 0) {
		err := fmt.Errorf("invalid block dimensions: nx, ny = %d, %d, dx, dy = %g, %g", nx, ny, dx, dy)
		panic(err)
	}
	bl = &Block{
		NX: nx, NY: ny,
		DX: dx, DY: dy,
		H:  utils.NewFloat2D(nx+2, ny+2),
		Hu: utils.NewFloat2D(nx+2, ny+2),
		Hv: utils.NewFloat2D(nx+2, ny+2),
		B:  utils.NewFloat2D(nx+2, ny+2),
	}
	for n := range bl.BCs {
		bl.BCs[n] = types.BC_Wall
	}
	return
}

func (bl *Block) HeightField() utils.Float2D     { return bl.H }
func (bl *Block) MomentumXField() utils.Float2D  { return bl.Hu }
func (bl *Block) MomentumYField() utils.Float2D  { return bl.Hv }
func (bl *Block) BathymetryField() utils.Float2D { return bl.B }
func (bl *Block) CellSize() (dx, dy float32)     { return bl.DX, bl.DY }
func (bl *Block) Extents() (nx, ny int)          { return bl.NX, bl.NY }

// Read only views for output writers
func (bl *Block) WaterHeight() utils.Float2D { return bl.H }
func (bl *Block) DischargeHu() utils.Float2D { return bl.Hu }
func (bl *Block) DischargeHv() utils.Float2D { return bl.Hv }
func (bl *Block) Bathymetry() utils.Float2D  { return bl.B }

// CellCenter returns the physical coordinates of cell [x][y]
func (bl *Block) CellCenter(x, y int) (cx, cy float32) {
	cx = bl.OriginX + (float32(x)-0.5)*bl.DX
	cy = bl.OriginY + (float32(y)-0.5)*bl.DY
	return
}

// InitScenario samples the scenario at every interior cell center, takes over
// its boundary types and fills the ghost layer
func (bl *Block) InitScenario(originX, originY float32, sc scenarios.Scenario) {
	bl.OriginX, bl.OriginY = originX, originY
	for x := 1; x <= bl.NX; x++ {
		for y := 1; y <= bl.NY; y++ {
			cx, cy := bl.CellCenter(x, y)
			h := sc.WaterHeight(cx, cy)
			bl.H.Set(x, y, h)
			bl.Hu.Set(x, y, h*sc.VelocityU(cx, cy))
			bl.Hv.Set(x, y, h*sc.VelocityV(cx, cy))
			bl.B.Set(x, y, sc.Bathymetry(cx, cy))
		}
	}
	if utils.Debug {
		utils.IsNanPanic([4]utils.Float2D{bl.H, bl.Hu, bl.Hv, bl.B})
	}
	for _, edge := range types.BoundaryEdges {
		bl.SetBoundaryType(edge, sc.BoundaryType(edge))
	}
	bl.SetGhostLayer()
}

func (bl *Block) SetBoundaryType(edge types.BoundaryEdge, bc types.BCFLAG) {
	bl.BCs[edge] = bc
}

func (bl *Block) BoundaryType(edge types.BoundaryEdge) types.BCFLAG {
	return bl.BCs[edge]
}

// SetInflow switches an edge to inflow and fills its ghost cells with a
// constant state, the bathymetry continues the interior
func (bl *Block) SetInflow(edge types.BoundaryEdge, h, hu, hv float32) {
	bl.BCs[edge] = types.BC_Inflow
	bl.inflow[edge] = [3]float32{h, hu, hv}
	bl.inflowDefined[edge] = true
	bl.setEdge(edge, func(gx, gy, ix, iy int) {
		bl.H.Set(gx, gy, h)
		bl.Hu.Set(gx, gy, hu)
		bl.Hv.Set(gx, gy, hv)
		bl.B.Set(gx, gy, bl.B.At(ix, iy))
	})
}

/*
SetGhostLayer refreshes the ghost cells from the interior according to the
boundary type of each edge:

	Outflow: copy h, hu, hv and b from the adjacent interior cell
	Wall:    copy h and b, reflect the normal momentum, copy the tangential one
	Inflow:  hold the values written by SetInflow
	Passive, Connect: untouched, owned by whoever couples the block
*/
func (bl *Block) SetGhostLayer() {
	for _, edge := range types.BoundaryEdges {
		switch bl.BCs[edge] {
		case types.BC_Outflow:
			bl.setEdge(edge, func(gx, gy, ix, iy int) {
				bl.copyCell(gx, gy, ix, iy)
			})
		case types.BC_Wall:
			bl.setEdge(edge, func(gx, gy, ix, iy int) {
				bl.copyCell(gx, gy, ix, iy)
				switch edge {
				case types.BND_Left, types.BND_Right:
					bl.Hu.Set(gx, gy, -bl.Hu.At(ix, iy))
				default:
					bl.Hv.Set(gx, gy, -bl.Hv.At(ix, iy))
				}
			})
		case types.BC_Inflow:
			if bl.inflowDefined[edge] {
				in := bl.inflow[edge]
				bl.SetInflow(edge, in[0], in[1], in[2])
			}
		}
	}
	// Corners are not read by the edge sweeps, keep them consistent anyway
	var (
		xr, yt = bl.NX + 1, bl.NY + 1
	)
	bl.copyCell(0, 0, 1, 1)
	bl.copyCell(xr, 0, bl.NX, 1)
	bl.copyCell(0, yt, 1, bl.NY)
	bl.copyCell(xr, yt, bl.NX, bl.NY)
}

// setEdge calls f for each ghost cell of the edge with its interior neighbor
func (bl *Block) setEdge(edge types.BoundaryEdge, f func(gx, gy, ix, iy int)) {
	switch edge {
	case types.BND_Left:
		for y := 1; y <= bl.NY; y++ {
			f(0, y, 1, y)
		}
	case types.BND_Right:
		for y := 1; y <= bl.NY; y++ {
			f(bl.NX+1, y, bl.NX, y)
		}
	case types.BND_Bottom:
		for x := 1; x <= bl.NX; x++ {
			f(x, 0, x, 1)
		}
	case types.BND_Top:
		for x := 1; x <= bl.NX; x++ {
			f(x, bl.NY+1, x, bl.NY)
		}
	}
}

func (bl *Block) copyCell(gx, gy, ix, iy int) {
	bl.H.Set(gx, gy, bl.H.At(ix, iy))
	bl.Hu.Set(gx, gy, bl.Hu.At(ix, iy))
	bl.Hv.Set(gx, gy, bl.Hv.At(ix, iy))
	bl.B.Set(gx, gy, bl.B.At(ix, iy))
}
