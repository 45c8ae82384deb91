package SWE2D

import (
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/goswe/dam_break"
	"github.com/notargets/goswe/model_problems/SWE2D/scenarios"
	"github.com/notargets/goswe/types"
)

func TestDimensionalSplitting(t *testing.T) {
	{ // Update buffers and partitions
		bl := NewBlock(7, 3, 1, 1)
		ds := NewDimensionalSplitting(bl, 2)
		assert.Equal(t, 2, ds.ParallelDegree())
		assert.Equal(t, DefaultCFL, ds.CFL)
		c, r := ds.hNetUpdatesLeft.Dims()
		assert.Equal(t, [2]int{8, 3}, [2]int{c, r})
		c, r = ds.hvNetUpdatesAbove.Dims()
		assert.Equal(t, [2]int{7, 4}, [2]int{c, r})
		assert.Equal(t, 8, ds.edgePartitions.MaxIndex)
		assert.Equal(t, 7, ds.cellPartitions.MaxIndex)
		assert.Equal(t, 3, NewDimensionalSplitting(NewBlock(3, 9, 1, 1), 16).ParallelDegree())
	}
	{ // Horizontal updates land on the cells either side of each edge
		bl := NewBlock(2, 2, 2, 4)
		ds := NewDimensionalSplitting(bl, 1)
		bl.H.Fill(1)
		bl.Hu.Fill(5)
		bl.Hv.Fill(3)
		ds.hNetUpdatesRight.Set(0, 1, 1)  // Edge left of cell [1][2]
		ds.hNetUpdatesLeft.Set(1, 1, 1)   // Edge right of cell [1][2]
		ds.huNetUpdatesRight.Set(1, 0, 8) // Edge left of cell [2][1]
		ds.hNetUpdatesLeft.Set(2, 0, 100) // Edge right of cell [2][1], dries it
		ds.ApplyHorizontalUpdates(0.5)    // dt/dx = 0.25
		assert.Equal(t, float32(0.5), bl.H.At(1, 2))
		assert.Equal(t, float32(5), bl.Hu.At(1, 2))
		assert.Equal(t, float32(0), bl.H.At(2, 1))
		assert.Equal(t, float32(0), bl.Hu.At(2, 1))
		assert.Equal(t, float32(0), bl.Hv.At(2, 1))
		assert.Equal(t, float32(3), bl.Hv.At(1, 2))
		assert.Equal(t, float32(1), bl.H.At(1, 1))
		assert.Equal(t, float32(5), bl.Hu.At(1, 1))
		assert.Equal(t, float32(1), bl.H.At(2, 2))
	}
	{ // Vertical updates land on the cells either side of each edge
		bl := NewBlock(2, 2, 4, 2)
		ds := NewDimensionalSplitting(bl, 1)
		bl.H.Fill(4)
		bl.Hu.Fill(7)
		bl.Hv.Fill(-2)
		ds.hNetUpdatesAbove.Set(1, 0, 2)   // Edge below cell [2][1]
		ds.hNetUpdatesBelow.Set(1, 1, 6)   // Edge above cell [2][1], empties it
		ds.hvNetUpdatesBelow.Set(0, 2, 4)  // Edge above cell [1][2]
		ds.hNetUpdatesAbove.Set(0, 0, 100) // Edge below cell [1][1], dries it
		ds.ApplyVerticalUpdates(1)         // dt/dy = 0.5
		assert.Equal(t, float32(0), bl.H.At(2, 1))
		assert.Equal(t, float32(0), bl.Hv.At(2, 1))
		assert.Equal(t, float32(0), bl.Hu.At(2, 1))
		assert.Equal(t, float32(4), bl.H.At(1, 2))
		assert.Equal(t, float32(7), bl.Hu.At(1, 2))
		assert.Equal(t, float32(-4), bl.Hv.At(1, 2))
		assert.Equal(t, float32(0), bl.H.At(1, 1))
		assert.Equal(t, float32(0), bl.Hv.At(1, 1))
		assert.Equal(t, float32(0), bl.Hu.At(1, 1))
		assert.Equal(t, float32(4), bl.H.At(2, 2))
	}
	{ // Lake at rest over a bump stays at rest
		bl := NewBlock(20, 20, 5, 5)
		bl.InitScenario(0, 0, scenarios.LakeAtRest{})
		ds := NewDimensionalSplitting(bl, 0)
		for i := 0; i < 20; i++ {
			bl.SetGhostLayer()
			dt := ds.Advance()
			assert.True(t, dt > 0 && !math.IsInf(float64(dt), 0))
		}
		etaMin, etaMax := SurfaceRange(bl)
		assert.InDelta(t, 0, etaMin, 1.e-3)
		assert.InDelta(t, 0, etaMax, 1.e-3)
		assert.InDelta(t, 0, MaxSpeed(bl), 1.e-3)
	}
	{ // Advance equals its sub-steps applied in order, for any partitioning
		blA := radialBlock(30)
		blB := radialBlock(30)
		dsA := NewDimensionalSplitting(blA, 1)
		dsB := NewDimensionalSplitting(blB, 4)
		for i := 0; i < 5; i++ {
			blA.SetGhostLayer()
			dtA := dsA.Advance()

			blB.SetGhostLayer()
			maxSpeedX := dsB.ComputeHorizontalUpdates()
			dtB := dsB.HorizontalTimestep(maxSpeedX)
			dsB.ApplyHorizontalUpdates(dtB)
			maxSpeedY := dsB.ComputeVerticalUpdates()
			assert.True(t, dsB.CheckVerticalCFL(dtB, maxSpeedY))
			dsB.ApplyVerticalUpdates(dtB)

			assert.Equal(t, dtA, dtB)
			assert.Equal(t, dtA, dsA.MaxTimestep)
			assert.True(t, blA.H.Equal(blB.H))
			assert.True(t, blA.Hu.Equal(blB.Hu))
			assert.True(t, blA.Hv.Equal(blB.Hv))
		}
		// Reversing the sweeps changes the answer
		blC := radialBlock(30)
		dsC := NewDimensionalSplitting(blC, 1)
		blA = radialBlock(30)
		dsA = NewDimensionalSplitting(blA, 1)
		dt := dsA.Advance()
		dsC.ComputeVerticalUpdates()
		dsC.ApplyVerticalUpdates(dt)
		dsC.ComputeHorizontalUpdates()
		dsC.ApplyHorizontalUpdates(dt)
		assert.False(t, blA.H.Equal(blC.H))
	}
	{ // Drying leaves no negative heights and no momentum in dry cells
		bl := NewBlock(40, 4, 1, 1)
		for x := 1; x <= 40; x++ {
			for y := 1; y <= 4; y++ {
				switch {
				case x <= 20:
					bl.H.Set(x, y, 2)
				case x <= 24:
					// Thin sheet running away from the pool
					bl.H.Set(x, y, 1.e-3)
					bl.Hu.Set(x, y, 5.e-3)
					bl.Hv.Set(x, y, -2.e-3)
				}
			}
		}
		for _, edge := range types.BoundaryEdges {
			bl.SetBoundaryType(edge, types.BC_Outflow)
		}
		ds := NewDimensionalSplitting(bl, 3)
		for i := 0; i < 50; i++ {
			bl.SetGhostLayer()
			ds.Advance()
			for x := 1; x <= 40; x++ {
				for y := 1; y <= 4; y++ {
					h := bl.H.At(x, y)
					require.False(t, h < 0, "negative height at [%d][%d]", x, y)
					if h == 0 {
						assert.Equal(t, float32(0), bl.Hu.At(x, y))
						assert.Equal(t, float32(0), bl.Hv.At(x, y))
					}
				}
			}
			// Cells that were never wet stay dry
			for x := 25; x <= 40; x++ {
				assert.Equal(t, float32(0), bl.H.At(x, 1))
			}
		}
	}
	{ // A cell drained across the y sweep loses its x momentum too
		bl := NewBlock(1, 1, 1, 1)
		bl.H.Set(1, 1, 0.01)
		bl.Hu.Set(1, 1, 0.001)
		bl.Hv.Set(1, 1, 1)
		for _, edge := range types.BoundaryEdges {
			bl.SetBoundaryType(edge, types.BC_Outflow)
		}
		bl.SetBoundaryType(types.BND_Bottom, types.BC_Wall)
		bl.SetGhostLayer()
		ds := NewDimensionalSplitting(bl, 1)
		dt := ds.Advance()
		assert.True(t, dt > 0 && !math.IsInf(float64(dt), 0))
		require.Equal(t, float32(0), bl.H.At(1, 1))
		assert.Equal(t, float32(0), bl.Hu.At(1, 1))
		assert.Equal(t, float32(0), bl.Hv.At(1, 1))
	}
	{ // A dry domain has no timestep and is left alone
		bl := NewBlock(5, 5, 1, 1)
		ds := NewDimensionalSplitting(bl, 2)
		bl.SetGhostLayer()
		dt := ds.Advance()
		assert.True(t, math.IsInf(float64(dt), 1))
		assert.True(t, math.IsInf(float64(ds.MaxTimestep), 1))
		for _, v := range bl.H.Data() {
			assert.Equal(t, float32(0), v)
		}
	}
	{ // A NaN wave speed stops the run with the location of the edge
		bl := NewBlock(5, 4, 1, 1)
		bl.H.Fill(1)
		bl.H.Set(3, 2, -1)
		ds := NewDimensionalSplitting(bl, 1)
		func() {
			defer func() {
				r := recover()
				err, ok := r.(*SweepError)
				if assert.True(t, ok, "recovered %v", r) {
					assert.Equal(t, "horizontal", err.Sweep)
					assert.Equal(t, [2]int{2, 1}, [2]int{err.EdgeX, err.EdgeY})
					assert.Equal(t, [2]int{2, 2}, err.CellL)
					assert.Equal(t, [2]int{3, 2}, err.CellR)
					assert.Equal(t, float32(-1), err.HR)
					assert.Contains(t, err.Error(), "edge [2][1]")
				}
			}()
			ds.Advance()
		}()
		// Same from the vertical sweep when the x sweep never sees the cell
		bl = NewBlock(2, 3, 1, 1)
		bl.H.Fill(1)
		ds = NewDimensionalSplitting(bl, 2)
		ds.ComputeHorizontalUpdates()
		bl.H.Set(1, 2, -1)
		assert.PanicsWithError(t, (&SweepError{Sweep: "vertical", EdgeX: 0, EdgeY: 1,
			CellL: [2]int{1, 1}, CellR: [2]int{1, 2}, HL: 1, HR: -1,
			Speed: float32(math.NaN())}).Error(), func() { ds.ComputeVerticalUpdates() })
	}
	{ // An x timestep too large for the y waves is reported, not corrected
		bl := NewBlock(6, 6, 1, 1)
		bl.H.Fill(1)
		bl.Hv.Fill(20)
		for _, edge := range types.BoundaryEdges {
			bl.SetBoundaryType(edge, types.BC_Outflow)
		}
		bl.SetGhostLayer()
		ds := NewDimensionalSplitting(bl, 2)
		logger, hook := test.NewNullLogger()
		ds.Log = logger
		dt := ds.Advance()
		assert.InDelta(t, 0.4/math.Sqrt(9.81), dt, 1.e-5)
		if assert.NotNil(t, hook.LastEntry()) {
			assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
			assert.Contains(t, hook.LastEntry().Data, "maxSpeedY")
		}
		hook.Reset()
		assert.True(t, ds.CheckVerticalCFL(0.01, 10))
		assert.True(t, ds.CheckVerticalCFL(1, 0))
		assert.Nil(t, hook.LastEntry())
		assert.False(t, ds.CheckVerticalCFL(0.05, 10))
		assert.Len(t, hook.Entries, 1)
	}
	{ // Dam break against the exact solution
		var (
			sc     = scenarios.NewDamBreak()
			nx, ny = 200, 2
			bl     = NewBlock(nx, ny, 5, 5)
			Time   float64
		)
		bl.InitScenario(0, 0, sc)
		ds := NewDimensionalSplitting(bl, 0)
		vol0 := TotalVolume(bl)
		for Time < 10 {
			bl.SetGhostLayer()
			Time += float64(ds.Advance())
		}
		X := make([]float64, nx)
		for x := 1; x <= nx; x++ {
			cx, _ := bl.CellCenter(x, 1)
			X[x-1] = float64(cx)
		}
		H, _ := dam_break.Stoker_calc(10, 5, 500, Time, X)
		var l1 float64
		for x := 1; x <= nx; x++ {
			l1 += math.Abs(float64(bl.H.At(x, 1)) - H[x-1])
			// Nothing varies across the channel
			assert.Equal(t, bl.H.At(x, 1), bl.H.At(x, 2))
			assert.Equal(t, float32(0), bl.Hv.At(x, 1))
		}
		l1 /= float64(nx)
		assert.True(t, l1 < 0.15, "L1 error %v", l1)
		assert.InDelta(t, vol0, TotalVolume(bl), 1.e-4*vol0)
		hMin, hMax := HeightRange(bl)
		assert.InDelta(t, 5, hMin, 1.e-3)
		assert.InDelta(t, 10, hMax, 1.e-3)
	}
}

func radialBlock(n int) (bl *Block) {
	var (
		sc   = scenarios.RadialDamBreak{}
		size = sc.BoundaryPos(types.BND_Right) - sc.BoundaryPos(types.BND_Left)
	)
	bl = NewBlock(n, n, size/float32(n), size/float32(n))
	bl.InitScenario(0, 0, sc)
	return
}
