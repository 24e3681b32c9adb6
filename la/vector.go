package la

import (
	"fmt"
	"math/cmplx"
)

// CVector is a dense complex-valued vector indexed by global degree of
// freedom. DataP exposes the backing slice for tight assembly loops.
type CVector struct {
	DataP []complex128
}

func NewCVector(n int, dataO ...[]complex128) (R CVector) {
	if len(dataO) != 0 {
		if len(dataO[0]) != n {
			err := fmt.Errorf("mismatch in allocation: NewCVector n = %v, len(data[0]) = %v\n",
				n, len(dataO[0]))
			panic(err)
		}
		R = CVector{DataP: dataO[0]}
	} else {
		R = CVector{DataP: make([]complex128, n)}
	}
	return
}

func (v CVector) Len() int                 { return len(v.DataP) }
func (v CVector) AtVec(i int) complex128   { return v.DataP[i] }
func (v CVector) Set(i int, c complex128)  { v.DataP[i] = c }
func (v CVector) Accumulate(i int, c complex128) { v.DataP[i] += c }

// Chainable methods
func (v CVector) Scale(a complex128) CVector {
	for i := range v.DataP {
		v.DataP[i] *= a
	}
	return v
}

func (v CVector) Add(a CVector) CVector {
	for i, val := range a.DataP {
		v.DataP[i] += val
	}
	return v
}

func (v CVector) Subtract(a CVector) CVector {
	for i, val := range a.DataP {
		v.DataP[i] -= val
	}
	return v
}

// Non-chainable methods
func (v CVector) Copy() (R CVector) {
	R = NewCVector(v.Len())
	copy(R.DataP, v.DataP)
	return
}

// Dot is the Hermitian inner product, conjugate-linear in the second
// argument: sum_i v_i * conj(a_i).
func (v CVector) Dot(a CVector) (d complex128) {
	for i, val := range v.DataP {
		d += val * cmplx.Conj(a.DataP[i])
	}
	return
}
