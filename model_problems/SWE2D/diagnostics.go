package SWE2D

import (
	"gonum.org/v1/gonum/floats"
)

// TotalVolume is the water volume held by the interior cells
func TotalVolume(bl *Block) (vol float64) {
	h := bl.H.Interior(1)
	if len(h) == 0 {
		return
	}
	vol = floats.Sum(h) * float64(bl.DX) * float64(bl.DY)
	return
}

// HeightRange returns the extreme interior water heights
func HeightRange(bl *Block) (hMin, hMax float64) {
	h := bl.H.Interior(1)
	if len(h) == 0 {
		return
	}
	hMin, hMax = floats.Min(h), floats.Max(h)
	return
}

// SurfaceRange returns the extreme interior free surface elevations h + b
func SurfaceRange(bl *Block) (etaMin, etaMax float64) {
	var (
		h = bl.H.Interior(1)
		b = bl.B.Interior(1)
	)
	if len(h) == 0 {
		return
	}
	floats.Add(h, b)
	etaMin, etaMax = floats.Min(h), floats.Max(h)
	return
}

// MaxSpeed returns the largest interior flow speed |(hu, hv)| / h over wet cells
func MaxSpeed(bl *Block) (sMax float64) {
	var (
		h  = bl.H.Interior(1)
		hu = bl.Hu.Interior(1)
		hv = bl.Hv.Interior(1)
	)
	for i := range h {
		if h[i] > 0 {
			s := floats.Norm([]float64{hu[i], hv[i]}, 2) / h[i]
			if s > sMax {
				sMax = s
			}
		}
	}
	return
}
