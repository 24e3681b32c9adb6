package la

import (
	"math"
	"math/cmplx"
)

// NormKind enumerates the vector norms used for solution verification.
type NormKind uint8

const (
	NormL1   NormKind = iota // sum of entry magnitudes
	NormL2                   // Euclidean magnitude
	NormLInf                 // max entry magnitude
)

func (k NormKind) String() string {
	switch k {
	case NormL1:
		return "l1"
	case NormL2:
		return "l2"
	case NormLInf:
		return "linf"
	}
	return "unknown"
}

// Norm computes the requested norm with the standard complex-entry
// definitions: a magnitude is sqrt(re^2+im^2).
func Norm(v CVector, kind NormKind) (n float64) {
	switch kind {
	case NormL1:
		for _, c := range v.DataP {
			n += cmplx.Abs(c)
		}
	case NormL2:
		for _, c := range v.DataP {
			n += real(c)*real(c) + imag(c)*imag(c)
		}
		n = math.Sqrt(n)
	case NormLInf:
		for _, c := range v.DataP {
			if a := cmplx.Abs(c); a > n {
				n = a
			}
		}
	default:
		panic("unknown norm kind")
	}
	return
}
