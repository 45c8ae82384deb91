package scenarios

import (
	"math"

	"github.com/notargets/goswe/types"
)

// Scenario supplies initial values, domain extents and boundary policy for a
// simulation. Coordinates are physical (meters), values are sampled at cell
// centers.
type Scenario interface {
	WaterHeight(x, y float32) float32
	VelocityU(x, y float32) float32
	VelocityV(x, y float32) float32
	Bathymetry(x, y float32) float32
	BoundaryType(edge types.BoundaryEdge) types.BCFLAG
	BoundaryPos(edge types.BoundaryEdge) float32
	EndSimulation() float32
}

// Base is still water of depth 10 in the unit square, closed by walls
type Base struct{}

func (Base) WaterHeight(x, y float32) float32 { return 10 }
func (Base) VelocityU(x, y float32) float32   { return 0 }
func (Base) VelocityV(x, y float32) float32   { return 0 }
func (Base) Bathymetry(x, y float32) float32  { return 0 }
func (Base) BoundaryType(edge types.BoundaryEdge) types.BCFLAG {
	return types.BC_Wall
}
func (Base) BoundaryPos(edge types.BoundaryEdge) float32 {
	return unitSquare(edge, 0, 1, 0, 1)
}
func (Base) EndSimulation() float32 { return 0.1 }

/*
RadialDamBreak releases a cylinder of water of height 15 and radius 100 at the
center of a 1000m x 1000m basin of depth 10.
*/
type RadialDamBreak struct {
	Base
}

func (RadialDamBreak) WaterHeight(x, y float32) float32 {
	var (
		dx, dy = float64(x - 500), float64(y - 500)
	)
	if math.Sqrt(dx*dx+dy*dy) < 100 {
		return 15
	}
	return 10
}
func (RadialDamBreak) BoundaryType(edge types.BoundaryEdge) types.BCFLAG {
	return types.BC_Outflow
}
func (RadialDamBreak) BoundaryPos(edge types.BoundaryEdge) float32 {
	return unitSquare(edge, 0, 1000, 0, 1000)
}
func (RadialDamBreak) EndSimulation() float32 { return 15 }

// DamBreak is a one dimensional step from 10m to 5m at x = 500 in a 1000m x 10m
// channel
type DamBreak struct {
	Base
	HL, HR, X0 float32
}

func NewDamBreak() *DamBreak {
	return &DamBreak{HL: 10, HR: 5, X0: 500}
}

func (d *DamBreak) WaterHeight(x, y float32) float32 {
	if x < d.X0 {
		return d.HL
	}
	return d.HR
}
func (d *DamBreak) BoundaryType(edge types.BoundaryEdge) types.BCFLAG {
	switch edge {
	case types.BND_Bottom, types.BND_Top:
		return types.BC_Wall
	}
	return types.BC_Outflow
}
func (d *DamBreak) BoundaryPos(edge types.BoundaryEdge) float32 {
	return unitSquare(edge, 0, 1000, 0, 10)
}
func (d *DamBreak) EndSimulation() float32 { return 10 }

/*
ArtificialTsunami lifts the sea floor of a 100m deep ocean inside a 1km x 1km
patch, the free surface starts flat, the uplifted floor launches the wave.
*/
type ArtificialTsunami struct {
	Base
}

func (ArtificialTsunami) WaterHeight(x, y float32) float32 { return 100 }
func (ArtificialTsunami) Bathymetry(x, y float32) float32 {
	if x < -500 || x > 500 || y < -500 || y > 500 {
		return -100
	}
	return 5*float32(math.Sin(float64(x/500+1)*math.Pi))*(y*y/250000+1) - 100
}
func (ArtificialTsunami) BoundaryType(edge types.BoundaryEdge) types.BCFLAG {
	return types.BC_Outflow
}
func (ArtificialTsunami) BoundaryPos(edge types.BoundaryEdge) float32 {
	return unitSquare(edge, -5000, 5000, -5000, 5000)
}
func (ArtificialTsunami) EndSimulation() float32 { return 100 }

/*
LakeAtRest is a flat free surface at sea level over a Gaussian bump rising
from 10m below to 2m below the surface. An exact scheme keeps it at rest.
*/
type LakeAtRest struct {
	Base
}

func (l LakeAtRest) WaterHeight(x, y float32) float32 {
	return -l.Bathymetry(x, y)
}
func (LakeAtRest) Bathymetry(x, y float32) float32 {
	var (
		dx, dy = float64(x - 50), float64(y - 50)
	)
	return float32(-10 + 8*math.Exp(-(dx*dx+dy*dy)/200))
}
func (LakeAtRest) BoundaryPos(edge types.BoundaryEdge) float32 {
	return unitSquare(edge, 0, 100, 0, 100)
}
func (LakeAtRest) EndSimulation() float32 { return 10 }

func unitSquare(edge types.BoundaryEdge, xmin, xmax, ymin, ymax float32) float32 {
	switch edge {
	case types.BND_Left:
		return xmin
	case types.BND_Right:
		return xmax
	case types.BND_Bottom:
		return ymin
	}
	return ymax
}
