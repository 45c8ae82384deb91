package SWE2D

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/notargets/goswe/solvers"
	"github.com/notargets/goswe/utils"
)

const DefaultCFL = float32(0.4)

/*
DimensionalSplitting advances a Grid with a sequential x then y split of the
f-wave scheme:

	1) Net updates on all vertical edges, largest wave speed in x
	2) dt = CFL * dx / maxSpeedX
	3) Apply the x updates to h and hu, drying cells that go negative
	4) Net updates on all horizontal edges from the updated h, check dt in y
	5) Apply the y updates to h and hv with the same drying rule

A cell whose height reaches zero or below is dry, both h and its momentum
are set to zero.

The timestep comes from the x sweep only, the y check is a diagnostic.
*/
type DimensionalSplitting struct {
	Solver      solvers.FWave
	CFL         float32
	Log         logrus.FieldLogger
	MaxTimestep float32 // Timestep of the most recent Advance
	grid        Grid
	nx, ny      int
	dx, dy      float32
	// Net updates on the nx+1 vertical edges of each row, (nx+1) x ny
	hNetUpdatesLeft, hNetUpdatesRight   utils.Float2D
	huNetUpdatesLeft, huNetUpdatesRight utils.Float2D
	// Net updates on the ny+1 horizontal edges of each column, nx x (ny+1)
	hNetUpdatesBelow, hNetUpdatesAbove   utils.Float2D
	hvNetUpdatesBelow, hvNetUpdatesAbove utils.Float2D
	// Partitions of the vertical edge columns [0,nx] and of the interior columns
	edgePartitions, cellPartitions *utils.PartitionMap
}

// SweepError reports a non finite wave speed found during a sweep
type SweepError struct {
	Sweep                    string // "horizontal" or "vertical"
	EdgeX, EdgeY             int    // Edge index in the update buffers
	CellL, CellR             [2]int // Grid indices of the two cells sharing the edge
	HL, HR, HuL, HuR, BL, BR float32 // HuL, HuR hold the momentum normal to the edge
	Speed                    float32
}

func (e *SweepError) Error() string {
	return fmt.Sprintf("%s sweep: wave speed %g at edge [%d][%d] between cells %v and %v: "+
		"h = (%g, %g), hu = (%g, %g), b = (%g, %g)",
		e.Sweep, e.Speed, e.EdgeX, e.EdgeY, e.CellL, e.CellR, e.HL, e.HR, e.HuL, e.HuR, e.BL, e.BR)
}

func NewDimensionalSplitting(g Grid, ProcLimit int) (ds *DimensionalSplitting) {
	var (
		nx, ny = g.Extents()
		dx, dy = g.CellSize()
	)
	ds = &DimensionalSplitting{
		Solver: solvers.NewFWave(),
		CFL:    DefaultCFL,
		Log:    logrus.StandardLogger(),
		grid:   g,
		nx:     nx,
		ny:     ny,
		dx:     dx,
		dy:     dy,

		hNetUpdatesLeft:   utils.NewFloat2D(nx+1, ny),
		hNetUpdatesRight:  utils.NewFloat2D(nx+1, ny),
		huNetUpdatesLeft:  utils.NewFloat2D(nx+1, ny),
		huNetUpdatesRight: utils.NewFloat2D(nx+1, ny),
		hNetUpdatesBelow:  utils.NewFloat2D(nx, ny+1),
		hNetUpdatesAbove:  utils.NewFloat2D(nx, ny+1),
		hvNetUpdatesBelow: utils.NewFloat2D(nx, ny+1),
		hvNetUpdatesAbove: utils.NewFloat2D(nx, ny+1),
	}
	ds.SetParallelDegree(ProcLimit)
	return
}

// ParallelDegree is the number of go routines used per phase
func (ds *DimensionalSplitting) ParallelDegree() int {
	return ds.edgePartitions.ParallelDegree
}

/*
Advance performs one complete split step and returns the timestep used. The
ghost layer of the grid must be current. A grid without any wet cell produces
no waves, Advance then returns +Inf and leaves the fields untouched.
*/
func (ds *DimensionalSplitting) Advance() (dt float32) {
	maxSpeedX := ds.ComputeHorizontalUpdates()
	dt = ds.HorizontalTimestep(maxSpeedX)
	ds.MaxTimestep = dt
	if math.IsInf(float64(dt), 1) {
		return
	}
	ds.ApplyHorizontalUpdates(dt)
	maxSpeedY := ds.ComputeVerticalUpdates()
	ds.CheckVerticalCFL(dt, maxSpeedY)
	ds.ApplyVerticalUpdates(dt)
	return
}

// HorizontalTimestep converts the largest x wave speed into a timestep
func (ds *DimensionalSplitting) HorizontalTimestep(maxSpeed float32) (dt float32) {
	if maxSpeed == 0 {
		return float32(math.Inf(1))
	}
	dt = ds.CFL * ds.dx / maxSpeed
	return
}

// CheckVerticalCFL returns false and logs a warning when dt is too large for
// the y wave speeds, the step is not repeated
func (ds *DimensionalSplitting) CheckVerticalCFL(dt, maxSpeedY float32) (ok bool) {
	if maxSpeedY == 0 {
		return true
	}
	limit := 0.5 * ds.dy / maxSpeedY
	if ok = dt < limit; !ok {
		ds.Log.WithFields(logrus.Fields{
			"dt":        dt,
			"limit":     limit,
			"maxSpeedY": maxSpeedY,
			"dy":        ds.dy,
		}).Warn("timestep from the x sweep exceeds the CFL bound in y")
	}
	return
}

// ComputeHorizontalUpdates solves the Riemann problem on every vertical edge
// of the interior rows and returns the largest wave speed
func (ds *DimensionalSplitting) ComputeHorizontalUpdates() (maxSpeed float32) {
	var (
		pm        = ds.edgePartitions
		maxSpeeds = make([]float32, pm.ParallelDegree)
		g         = ds.grid
		H, Hu, B  = g.HeightField(), g.MomentumXField(), g.BathymetryField()
	)
	pm.Run(func(np, xMin, xMax int) {
		var (
			localMax float32
			solver   = ds.Solver
		)
		for x := xMin; x < xMax; x++ {
			var (
				hL, hR   = H.Col(x), H.Col(x + 1)
				huL, huR = Hu.Col(x), Hu.Col(x + 1)
				bL, bR   = B.Col(x), B.Col(x + 1)
				hLeft    = ds.hNetUpdatesLeft.Col(x)
				hRight   = ds.hNetUpdatesRight.Col(x)
				huLeft   = ds.huNetUpdatesLeft.Col(x)
				huRight  = ds.huNetUpdatesRight.Col(x)
			)
			for y := 0; y < ds.ny; y++ {
				c := y + 1
				var speed float32
				hLeft[y], hRight[y], huLeft[y], huRight[y], speed =
					solver.ComputeNetUpdates(hL[c], hR[c], huL[c], huR[c], bL[c], bR[c])
				if speed != speed {
					panic(&SweepError{Sweep: "horizontal", EdgeX: x, EdgeY: y,
						CellL: [2]int{x, c}, CellR: [2]int{x + 1, c},
						HL: hL[c], HR: hR[c], HuL: huL[c], HuR: huR[c], BL: bL[c], BR: bR[c],
						Speed: speed})
				}
				if speed > localMax {
					localMax = speed
				}
			}
		}
		maxSpeeds[np] = localMax
	})
	for _, s := range maxSpeeds {
		maxSpeed = max(maxSpeed, s)
	}
	return
}

// ApplyHorizontalUpdates integrates the x net updates over dt
func (ds *DimensionalSplitting) ApplyHorizontalUpdates(dt float32) {
	var (
		g         = ds.grid
		H, Hu, Hv = g.HeightField(), g.MomentumXField(), g.MomentumYField()
		ratio     = dt / ds.dx
	)
	ds.cellPartitions.Run(func(np, xMin, xMax int) {
		for x := xMin + 1; x <= xMax; x++ {
			var (
				h, hu, hv       = H.Col(x), Hu.Col(x), Hv.Col(x)
				hRight, hLeft   = ds.hNetUpdatesRight.Col(x - 1), ds.hNetUpdatesLeft.Col(x)
				huRight, huLeft = ds.huNetUpdatesRight.Col(x - 1), ds.huNetUpdatesLeft.Col(x)
			)
			for y := 1; y <= ds.ny; y++ {
				h[y] -= ratio * (hRight[y-1] + hLeft[y-1])
				hu[y] -= ratio * (huRight[y-1] + huLeft[y-1])
				if h[y] <= 0 {
					h[y], hu[y], hv[y] = 0, 0, 0
				}
			}
		}
	})
}

// ComputeVerticalUpdates solves the Riemann problem on every horizontal edge
// of the interior columns and returns the largest wave speed
func (ds *DimensionalSplitting) ComputeVerticalUpdates() (maxSpeed float32) {
	var (
		pm        = ds.cellPartitions
		maxSpeeds = make([]float32, pm.ParallelDegree)
		g         = ds.grid
		H, Hv, B  = g.HeightField(), g.MomentumYField(), g.BathymetryField()
	)
	pm.Run(func(np, xMin, xMax int) {
		var (
			localMax float32
			solver   = ds.Solver
		)
		for x := xMin; x < xMax; x++ {
			var (
				c       = x + 1
				h       = H.Col(c)
				hv      = Hv.Col(c)
				b       = B.Col(c)
				hBelow  = ds.hNetUpdatesBelow.Col(x)
				hAbove  = ds.hNetUpdatesAbove.Col(x)
				hvBelow = ds.hvNetUpdatesBelow.Col(x)
				hvAbove = ds.hvNetUpdatesAbove.Col(x)
			)
			for y := 0; y <= ds.ny; y++ {
				var speed float32
				hBelow[y], hAbove[y], hvBelow[y], hvAbove[y], speed =
					solver.ComputeNetUpdates(h[y], h[y+1], hv[y], hv[y+1], b[y], b[y+1])
				if speed != speed {
					panic(&SweepError{Sweep: "vertical", EdgeX: x, EdgeY: y,
						CellL: [2]int{c, y}, CellR: [2]int{c, y + 1},
						HL: h[y], HR: h[y+1], HuL: hv[y], HuR: hv[y+1], BL: b[y], BR: b[y+1],
						Speed: speed})
				}
				if speed > localMax {
					localMax = speed
				}
			}
		}
		maxSpeeds[np] = localMax
	})
	for _, s := range maxSpeeds {
		maxSpeed = max(maxSpeed, s)
	}
	return
}

// ApplyVerticalUpdates integrates the y net updates over dt
func (ds *DimensionalSplitting) ApplyVerticalUpdates(dt float32) {
	var (
		g         = ds.grid
		H, Hu, Hv = g.HeightField(), g.MomentumXField(), g.MomentumYField()
		ratio     = dt / ds.dy
	)
	ds.cellPartitions.Run(func(np, xMin, xMax int) {
		for x := xMin + 1; x <= xMax; x++ {
			var (
				h, hu, hv        = H.Col(x), Hu.Col(x), Hv.Col(x)
				hAbove, hBelow   = ds.hNetUpdatesAbove.Col(x - 1), ds.hNetUpdatesBelow.Col(x - 1)
				hvAbove, hvBelow = ds.hvNetUpdatesAbove.Col(x - 1), ds.hvNetUpdatesBelow.Col(x - 1)
			)
			for y := 1; y <= ds.ny; y++ {
				h[y] -= ratio * (hAbove[y-1] + hBelow[y])
				hv[y] -= ratio * (hvAbove[y-1] + hvBelow[y])
				if h[y] <= 0 {
					h[y], hu[y], hv[y] = 0, 0, 0
				}
			}
		}
	})
}
