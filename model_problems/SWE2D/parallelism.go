package SWE2D

import (
	"runtime"

	"github.com/notargets/goswe/utils"
)

/*
SetParallelDegree partitions the grid columns among go routines. Every phase
of a step splits by column, so each go routine writes a disjoint set of cells
and update buffer entries:

	edgePartitions: vertical edge columns [0, nx], used by the x sweep
	cellPartitions: interior columns [1, nx], offset by one, used by the rest
*/
func (ds *DimensionalSplitting) SetParallelDegree(ProcLimit int) {
	var (
		np = utils.ParallelDegreeFor(ProcLimit, ds.nx)
	)
	runtime.GOMAXPROCS(runtime.NumCPU())
	ds.edgePartitions = utils.NewPartitionMap(np, ds.nx+1)
	ds.cellPartitions = utils.NewPartitionMap(np, ds.nx)
}
