package dam_break

import (
	"fmt"
	"math"
)

var Gravity = 9.81

/*
Stoker_calc returns the exact water height and velocity at positions X and time
t for a dam at x0 separating still water of depth hl (left) from hr (right),
with hl > hr > 0. The solution is a rarefaction moving left, a constant middle
state and a bore moving right.
*/
func Stoker_calc(hl, hr, x0, t float64, X []float64) (H, U []float64) {
	if !(hl > hr && hr > 0) {
		err := fmt.Errorf("wet bed dam break needs hl > hr > 0, have hl, hr = %v, %v", hl, hr)
		panic(err)
	}
	var (
		g          = Gravity
		cl         = math.Sqrt(g * hl)
		hm, um, s  = MiddleState(hl, hr)
		cm         = math.Sqrt(g * hm)
		x1, x2, x3 = x0 - cl*t, x0 + (um-cm)*t, x0 + s*t
	)
	H = make([]float64, len(X))
	U = make([]float64, len(X))
	for i, x := range X {
		switch {
		case x <= x1:
			H[i], U[i] = hl, 0
		case x <= x2:
			xi := (x - x0) / t
			c := (2*cl - xi) / 3
			H[i], U[i] = c*c/g, 2*(cl+xi)/3
		case x <= x3:
			H[i], U[i] = hm, um
		default:
			H[i], U[i] = hr, 0
		}
	}
	return
}

// MiddleState returns the height and velocity between the rarefaction and the
// bore, and the bore speed
func MiddleState(hl, hr float64) (hm, um, s float64) {
	var (
		g  = Gravity
		cl = math.Sqrt(g * hl)
	)
	hm = fzero(func(h float64) float64 { return stoker_func(h, hl, hr) }, hr, hl)
	um = 2 * (cl - math.Sqrt(g*hm))
	s = hm * um / (hm - hr)
	return
}

// stoker_func matches the rarefaction invariant to the bore jump condition,
// it decreases from positive at hr to negative at hl
func stoker_func(hm, hl, hr float64) (y float64) {
	var (
		g = Gravity
	)
	y = 2*(math.Sqrt(g*hl)-math.Sqrt(g*hm)) - (hm-hr)*math.Sqrt(0.5*g*(hm+hr)/(hm*hr))
	return
}

func fzero(f func(x float64) (y float64), a, b float64) float64 {
	var (
		tol    = 1.e-12
		fa, fb = f(a), f(b)
	)
	if fa*fb > 0 {
		err := fmt.Errorf("root is not bracketed: f(%v) = %v, f(%v) = %v", a, fa, b, fb)
		panic(err)
	}
	for i := 0; i < 200 && math.Abs(b-a) > tol*(1+math.Abs(a)); i++ {
		m := 0.5 * (a + b)
		fm := f(m)
		if fm == 0 {
			return m
		}
		if fa*fm < 0 {
			b, fb = m, fm
		} else {
			a, fa = m, fm
		}
	}
	return 0.5 * (a + b)
}
