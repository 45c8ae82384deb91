package solvers

import (
	"fmt"

	"github.com/notargets/goswe/utils"
)

const DefaultGravity = float32(9.81)

/*
FWave is the f-wave approximate Riemann solver for the one dimensional shallow
water equations with bathymetry. It holds only read-only configuration and can
be shared by any number of go routines.

	q   = [h, hu]
	f(q) = [hu, hu^2/h + g*h^2/2]

The flux jump across an edge, including the bathymetry source term, is
decomposed onto the eigenvectors of the Roe averaged Jacobian and each wave is
assigned to the side its speed points to.
*/
type FWave struct {
	Gravity float32
}

func NewFWave(gravity ...float32) (fw FWave) {
	fw.Gravity = DefaultGravity
	if len(gravity) != 0 && gravity[0] > 0 {
		fw.Gravity = gravity[0]
	}
	return
}

// RiemannError describes a Riemann problem the solver can not process
type RiemannError struct {
	Reason                   string
	HL, HR, HuL, HuR, BL, BR float32
	Lambda1, Lambda2         float32
}

func (e *RiemannError) Error() string {
	return fmt.Sprintf("fwave: %s: h = (%g, %g), hu = (%g, %g), b = (%g, %g), lambda = (%g, %g)",
		e.Reason, e.HL, e.HR, e.HuL, e.HuR, e.BL, e.BR, e.Lambda1, e.Lambda2)
}

/*
ComputeNetUpdates returns the net updates for the cells left and right of an
edge and the largest wave speed leaving the edge.

A dry side (h == 0) is replaced by a reflection of its wet neighbor, which
makes the dry cell act as a wall, and receives no update. Two dry sides
produce no updates and zero speed. A NaN wave speed is returned as is, the
caller decides how to report it.
*/
func (fw FWave) ComputeNetUpdates(hL, hR, huL, huR, bL, bR float32) (hUpdateL, hUpdateR, huUpdateL, huUpdateR, maxWaveSpeed float32) {
	if hL == 0 && hR == 0 {
		return
	}
	if !(hL > 0 || hR > 0) {
		panic(&RiemannError{Reason: "neither side is wet",
			HL: hL, HR: hR, HuL: huL, HuR: huR, BL: bL, BR: bR})
	}
	var (
		dryL, dryR = hL == 0, hR == 0
	)
	switch {
	case dryL:
		hL, huL, bL = hR, -huR, bR
	case dryR:
		hR, huR, bR = hL, -huL, bL
	}

	deltaF1, deltaF2 := fw.FluxJump(hL, hR, huL, huR, bL, bR)
	lambda1, lambda2 := fw.RoeEigenvalues(hL, hR, huL, huR)
	if lambda1 != lambda1 || lambda2 != lambda2 {
		maxWaveSpeed = lambda1 + lambda2 // NaN
		hUpdateL, hUpdateR, huUpdateL, huUpdateR = maxWaveSpeed, maxWaveSpeed, maxWaveSpeed, maxWaveSpeed
		return
	}
	if utils.Debug && !(lambda1 < lambda2) {
		panic(&RiemannError{Reason: "roe eigenvalues out of order",
			HL: hL, HR: hR, HuL: huL, HuR: huR, BL: bL, BR: bR, Lambda1: lambda1, Lambda2: lambda2})
	}
	alpha1, alpha2 := EigenCoefficients(lambda1, lambda2, deltaF1, deltaF2)

	switch {
	case lambda1 <= 0 && lambda2 >= 0:
		hUpdateL, huUpdateL = alpha1, lambda1*alpha1
		hUpdateR, huUpdateR = alpha2, lambda2*alpha2
	case lambda1 >= 0 && lambda2 <= 0:
		hUpdateR, huUpdateR = alpha1, lambda1*alpha1
		hUpdateL, huUpdateL = alpha2, lambda2*alpha2
	case lambda1 >= 0 && lambda2 >= 0:
		hUpdateR = alpha1 + alpha2
		huUpdateR = lambda1*alpha1 + lambda2*alpha2
	case lambda1 <= 0 && lambda2 <= 0:
		hUpdateL = alpha1 + alpha2
		huUpdateL = lambda1*alpha1 + lambda2*alpha2
	default:
		panic(&RiemannError{Reason: "unreachable wave speed sign combination",
			HL: hL, HR: hR, HuL: huL, HuR: huR, BL: bL, BR: bR, Lambda1: lambda1, Lambda2: lambda2})
	}

	// Dry states stay dry
	if dryL {
		hUpdateL, huUpdateL = 0, 0
	}
	if dryR {
		hUpdateR, huUpdateR = 0, 0
	}
	maxWaveSpeed = max(utils.Abs32(lambda1), utils.Abs32(lambda2))
	return
}

// FluxJump returns f(qR) - f(qL) with the bathymetry source folded into the
// momentum component
func (fw FWave) FluxJump(hL, hR, huL, huR, bL, bR float32) (deltaF1, deltaF2 float32) {
	var (
		g = fw.Gravity
	)
	deltaF1 = huR - huL
	deltaF2 = (huR*huR/hR + 0.5*g*hR*hR) - (huL*huL/hL + 0.5*g*hL*hL)
	deltaF2 += g * (bR - bL) * (hL + hR) * 0.5
	return
}

func (fw FWave) RoeEigenvalues(hL, hR, huL, huR float32) (lambda1, lambda2 float32) {
	var (
		uL, uR       = huL / hL, huR / hR
		sqrtL, sqrtR = utils.Sqrt32(hL), utils.Sqrt32(hR)
		uRoe         = (uL*sqrtL + uR*sqrtR) / (sqrtL + sqrtR)
		c            = utils.Sqrt32(fw.Gravity * (hL + hR) * 0.5)
	)
	lambda1, lambda2 = uRoe-c, uRoe+c
	return
}

// EigenCoefficients decomposes the flux jump onto the eigenvectors [1, lambda1]
// and [1, lambda2]
func EigenCoefficients(lambda1, lambda2, deltaF1, deltaF2 float32) (alpha1, alpha2 float32) {
	var (
		lambdaInv = 1 / (lambda2 - lambda1)
	)
	alpha1 = lambdaInv * (lambda2*deltaF1 - deltaF2)
	alpha2 = lambdaInv * (deltaF2 - lambda1*deltaF1)
	return
}
