package SWE2D

import (
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/notargets/goswe/InputParameters"
	"github.com/notargets/goswe/model_problems/SWE2D/scenarios"
	"github.com/notargets/goswe/solvers"
	"github.com/notargets/goswe/types"
	"github.com/notargets/goswe/utils"
)

/*
SWE drives a single block through simulated time. Each step refreshes the
ghost layer then advances the block, output is produced at Checkpoints evenly
spaced times up to FinalTime. A step is never shortened to land on a
checkpoint, so the reported time is the first step time at or past it.
*/
type SWE struct {
	Title         string
	Case          InitType
	Scenario      scenarios.Scenario
	Block         *Block
	DS            *DimensionalSplitting
	FinalTime     float64
	Checkpoints   int
	MaxIterations int
	Time          float64 // Simulated time reached
	Steps         int
	Log           logrus.FieldLogger
	// OnCheckpoint is called after every checkpoint, the block must not be
	// retained past the call since the next step overwrites it
	OnCheckpoint func(k int, Time float64, bl *Block)
	verbose      bool
}

func NewSWE(ip *InputParameters.InputParametersSWE, verbose bool) (c *SWE, err error) {
	if err = ip.Validate(); err != nil {
		return nil, fmt.Errorf("invalid input parameters: %w", err)
	}
	c = &SWE{
		Title:         ip.Title,
		FinalTime:     ip.FinalTime,
		Checkpoints:   ip.Checkpoints,
		MaxIterations: ip.MaxIterations,
		Log:           logrus.StandardLogger(),
		verbose:       verbose,
	}
	if c.Case, err = NewInitType(ip.InitType); err != nil {
		return nil, err
	}
	c.Scenario = c.Case.Scenario()
	if c.FinalTime == 0 {
		c.FinalTime = float64(c.Scenario.EndSimulation())
	}
	if c.Checkpoints < 1 {
		c.Checkpoints = 1
	}
	if c.MaxIterations < 1 {
		c.MaxIterations = math.MaxInt
	}

	var (
		sc     = c.Scenario
		xMin   = sc.BoundaryPos(types.BND_Left)
		xMax   = sc.BoundaryPos(types.BND_Right)
		yMin   = sc.BoundaryPos(types.BND_Bottom)
		yMax   = sc.BoundaryPos(types.BND_Top)
		dx, dy = (xMax - xMin) / float32(ip.NX), (yMax - yMin) / float32(ip.NY)
	)
	c.Block = NewBlock(ip.NX, ip.NY, dx, dy)
	c.Block.InitScenario(xMin, yMin, sc)
	if err = c.setBoundaryOverrides(ip); err != nil {
		return nil, err
	}

	c.DS = NewDimensionalSplitting(c.Block, ip.ProcLimit)
	c.DS.Solver = solvers.NewFWave(float32(ip.Gravity))
	c.DS.CFL = float32(ip.CFL)
	c.DS.Log = c.Log

	if verbose {
		fmt.Printf("Shallow Water Equations in 2 Dimensions\n")
		fmt.Printf("Using %d go routines in parallel\n", c.DS.ParallelDegree())
		fmt.Printf("Solving %s\n", c.Case.Print())
		fmt.Printf("Domain [%g, %g] x [%g, %g], boundaries Left %s, Right %s, Bottom %s, Top %s\n",
			xMin, xMax, yMin, yMax,
			c.Block.BCs[types.BND_Left], c.Block.BCs[types.BND_Right],
			c.Block.BCs[types.BND_Bottom], c.Block.BCs[types.BND_Top])
		fmt.Printf("CFL = %8.4f, Gravity = %8.4f, NX = %d, NY = %d, dx = %g, dy = %g\n\n\n",
			ip.CFL, ip.Gravity, ip.NX, ip.NY, dx, dy)
	}
	return
}

func (c *SWE) setBoundaryOverrides(ip *InputParameters.InputParametersSWE) (err error) {
	var (
		edge types.BoundaryEdge
		bc   types.BCFLAG
	)
	for label, bcLabel := range ip.BCs {
		if edge, err = types.NewBoundaryEdge(label); err != nil {
			return
		}
		if bc, err = types.NewBCFLAG(bcLabel); err != nil {
			return
		}
		if _, _, _, ok := ip.InflowState(label); bc == types.BC_Inflow && !ok {
			return fmt.Errorf("boundary %s: inflow boundary needs an Inflow state", label)
		}
		c.Block.SetBoundaryType(edge, bc)
	}
	// An inflow state switches its edge to inflow
	for label := range ip.Inflow {
		if edge, err = types.NewBoundaryEdge(label); err != nil {
			return
		}
		h, hu, hv, ok := ip.InflowState(label)
		if !ok || !(h > 0) {
			return fmt.Errorf("boundary %s: inflow state needs a positive height, have %v", label, ip.Inflow[label])
		}
		c.Block.SetInflow(edge, float32(h), float32(hu), float32(hv))
	}
	c.Block.SetGhostLayer()
	return
}

func (c *SWE) Solve() {
	var (
		dt       float32
		finished bool
		elapsed  time.Duration
		start    time.Time
	)
	c.PrintInitialization()
	for k := 1; k <= c.Checkpoints && !finished; k++ {
		checkpointTime := c.FinalTime * float64(k) / float64(c.Checkpoints)
		for c.Time < checkpointTime {
			if finished = c.CheckIfFinished(c.Time, c.FinalTime, c.Steps); finished {
				break
			}
			start = time.Now()
			c.Block.SetGhostLayer()
			dt = c.DS.Advance()
			elapsed += time.Since(start)
			if math.IsInf(float64(dt), 1) {
				c.Log.WithFields(logrus.Fields{
					"time":  c.Time,
					"steps": c.Steps,
				}).Warn("no wet cells left, stopping")
				finished = true
				break
			}
			c.Time += float64(dt)
			c.Steps++
		}
		c.PrintUpdate(k, dt)
		c.Log.WithFields(logrus.Fields{
			"checkpoint": k,
			"time":       c.Time,
			"steps":      c.Steps,
		}).Debug("checkpoint reached")
		if c.OnCheckpoint != nil {
			c.OnCheckpoint(k, c.Time, c.Block)
		}
		finished = finished || c.Steps >= c.MaxIterations
	}
	c.PrintFinal(elapsed, c.Steps)
}

func (c *SWE) CheckIfFinished(Time, FinalTime float64, steps int) (finished bool) {
	if Time >= FinalTime || steps >= c.MaxIterations {
		finished = true
	}
	return
}

func (c *SWE) PrintInitialization() {
	if len(c.Title) != 0 {
		fmt.Printf("%s\n", c.Title)
	}
	fmt.Printf("Solving until finaltime = %8.5f in %d checkpoints\n", c.FinalTime, c.Checkpoints)
	fmt.Printf("  chkpt    iter      time        dt")
	fmt.Printf("       hmin       hmax     volume\n")
}

func (c *SWE) PrintUpdate(k int, dt float32) {
	format := "%11.4e"
	hMin, hMax := HeightRange(c.Block)
	fmt.Printf("%7d%8d%10.4f%10.5f", k, c.Steps, c.Time, dt)
	fmt.Printf(format, hMin)
	fmt.Printf(format, hMax)
	fmt.Printf(format, TotalVolume(c.Block))
	fmt.Printf("\n")
}

func (c *SWE) PrintFinal(elapsed time.Duration, steps int) {
	if steps == 0 {
		fmt.Printf("\nNo iterations performed\n")
		return
	}
	rate := float64(elapsed.Microseconds()) / (float64(c.Block.NX*c.Block.NY) * float64(steps))
	fmt.Printf("\nRate of execution = %8.5f us/(cell*iteration) over %d iterations\n", rate, steps)
	if c.verbose {
		fmt.Printf("%s\n", utils.GetMemUsage())
	}
}
