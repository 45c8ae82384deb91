package utils

import (
	"fmt"
	"math"
	"runtime"
)

func GetMemUsage() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	// For info on each, see: https://golang.org/pkg/runtime/#MemStats
	bToMb := func(b uint64) uint64 {
		return b / 1024 / 1024
	}
	return fmt.Sprintf("Alloc = %v MiB TotalAlloc = %v MiB Sys = %v MiB NumGC = %v",
		bToMb(m.Alloc), bToMb(m.TotalAlloc), bToMb(m.Sys), m.NumGC)
}

func IsNanPanic(A any) {
	if IsNan(A) {
		panic("NAN found")
	}
}

func IsNan(A any) bool {
	switch v := A.(type) {
	case float64:
		return math.IsNaN(v)
	case float32:
		return v != v
	case []float64:
		for _, f := range v {
			if math.IsNaN(f) {
				return true
			}
		}
	case []float32:
		for _, f := range v {
			if f != f {
				return true
			}
		}
	case Float2D:
		return IsNan(v.DataP)
	case [4]Float2D:
		for n := 0; n < 4; n++ {
			if IsNan(v[n].DataP) {
				return true
			}
		}
	}
	return false
}

func Sqrt32(x float32) float32 { return float32(math.Sqrt(float64(x))) }

func Abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
