package utils

import (
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionMap(t *testing.T) {
	{ // Test PartitionMap
		getHisto := func(K, Np int) (histo map[int]int) {
			pm := NewPartitionMap(Np, K)
			histo = make(map[int]int)
			for np := 0; np < pm.ParallelDegree; np++ {
				kMin, kMax := pm.GetBucketRange(np)
				histo[kMax-kMin]++
			}
			return
		}
		getTotal := func(histo map[int]int) (total int) {
			for key, count := range histo {
				total += key * count
			}
			return
		}
		assert.Equal(t, map[int]int{0: 30, 1: 2}, getHisto(2, 32))
		assert.Equal(t, map[int]int{1: 32}, getHisto(32, 32))
		assert.Equal(t, map[int]int{8: 32}, getHisto(256, 32))
		assert.Equal(t, map[int]int{8: 1, 9: 31}, getHisto(287, 32))
		assert.Equal(t, 287, getTotal(getHisto(287, 32)))
		for n := 64; n < 10000; n++ {
			var (
				keys   [2]float64
				keyNum int
			)
			histo := getHisto(n, 32)
			for key := range histo {
				keys[keyNum] = float64(key)
				keyNum++
			}
			if keyNum == 2 {
				assert.Equal(t, 1., math.Abs(keys[0]-keys[1])) // Maximum imbalance of 1
			}
			assert.Equal(t, n, getTotal(histo))
		}
	}
	{ // Test ParallelDegreeFor limits
		assert.Equal(t, 4, ParallelDegreeFor(4, 100))
		assert.Equal(t, 3, ParallelDegreeFor(8, 3))
		assert.Equal(t, 1, ParallelDegreeFor(8, 0))
		assert.True(t, ParallelDegreeFor(0, 1<<20) >= 1)
	}
	{ // Test Run visits every index exactly once
		var (
			maxIndex = 1001
			visits   = make([]int32, maxIndex)
		)
		pm := NewPartitionMap(7, maxIndex)
		pm.Run(func(np, kMin, kMax int) {
			for k := kMin; k < kMax; k++ {
				atomic.AddInt32(&visits[k], 1)
			}
		})
		for k := 0; k < maxIndex; k++ {
			assert.Equal(t, int32(1), visits[k])
		}
	}
	{ // Test a panic inside a partition is re-raised on the caller
		pm := NewPartitionMap(4, 40)
		assert.PanicsWithValue(t, "partition 2", func() {
			pm.Run(func(np, kMin, kMax int) {
				if np == 2 {
					panic("partition 2")
				}
			})
		})
	}
}

func TestFloat2D(t *testing.T) {
	{ // Column major layout
		f := NewFloat2D(3, 2)
		f.Set(2, 1, 5)
		assert.Equal(t, float32(5), f.DataP[2*2+1])
		assert.Equal(t, float32(5), f.At(2, 1))
		assert.Equal(t, []float32{0, 5}, f.Col(2))
		f.Col(0)[1] = 3
		assert.Equal(t, float32(3), f.At(0, 1))
	}
	{ // Copy does not alias the receiver
		f := NewFloat2D(2, 2).Fill(1)
		g := f.Copy()
		g.Set(0, 0, 7)
		assert.Equal(t, float32(1), f.At(0, 0))
		assert.False(t, f.Equal(g))
		g.Set(0, 0, 1)
		assert.True(t, f.Equal(g))
	}
	{ // Interior strips the ghost border
		f := NewFloat2D(4, 5)
		for x := 0; x < 4; x++ {
			for y := 0; y < 5; y++ {
				f.Set(x, y, float32(10*x+y))
			}
		}
		assert.Equal(t, []float64{11, 12, 13, 21, 22, 23}, f.Interior(1))
		assert.Nil(t, NewFloat2D(2, 2).Interior(1))
	}
	{ // Mismatched backing data is rejected
		assert.Panics(t, func() { NewFloat2D(2, 2, make([]float32, 3)) })
	}
	{ // NaN detection
		f := NewFloat2D(2, 2)
		assert.False(t, IsNan(f))
		nan := float32(0)
		nan = nan / nan
		f.Set(1, 1, nan)
		assert.True(t, IsNan(f))
		assert.Panics(t, func() { IsNanPanic(f) })
	}
}
