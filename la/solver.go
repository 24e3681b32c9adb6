package la

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/scicomp-go/cfem/utils"
)

// SolverOptions is the explicit configuration for the linear solver,
// replacing string-keyed global option stores. Zero values select the
// defaults ("preonly" + "lu"): a single direct factorization-based solve.
type SolverOptions struct {
	KSPType string // "preonly" is the only recognized Krylov wrapper
	PCType  string // "lu" is the only recognized preconditioner
}

func (o SolverOptions) validate() error {
	switch o.KSPType {
	case "", "preonly":
	default:
		return &ConfigurationError{Key: "ksp_type", Value: o.KSPType}
	}
	switch o.PCType {
	case "", "lu":
	default:
		return &ConfigurationError{Key: "pc_type", Value: o.PCType}
	}
	return nil
}

// Operator is an assembled complex matrix the solver can factorize.
type Operator interface {
	Dims() (r, c int)
	ToDense() *CDense
	MulVec(v CVector) CVector
}

// LUSolver solves A x = b by LU factorization with partial pivoting in
// complex arithmetic. The factorization is exact up to roundoff, so the
// residual of the returned solution is at the level of the operator's
// conditioning rather than an iterative tolerance.
type LUSolver struct {
	opts SolverOptions
	op   Operator
	lu   *CDense // combined L\U factors, in place
	piv  []int
}

func NewLUSolver(opts SolverOptions) (s *LUSolver, err error) {
	if err = opts.validate(); err != nil {
		return
	}
	s = &LUSolver{opts: opts}
	return
}

// SetOperator stores and factorizes the operator.
func (s *LUSolver) SetOperator(A Operator) (err error) {
	var (
		nr, nc = A.Dims()
	)
	if nr != nc {
		err = fmt.Errorf("operator must be square, have %dx%d", nr, nc)
		return
	}
	s.op = A
	s.lu = A.ToDense()
	s.piv = make([]int, nr)
	err = s.factorize()
	return
}

func (s *LUSolver) factorize() (err error) {
	var (
		n, _ = s.lu.Dims()
		a    = s.lu.DataP
	)
	for k := 0; k < n; k++ {
		// Partial pivot on column k
		p, pMag := k, cmplx.Abs(a[k*n+k])
		for i := k + 1; i < n; i++ {
			if m := cmplx.Abs(a[i*n+k]); m > pMag {
				p, pMag = i, m
			}
		}
		if pMag == 0 {
			err = &SingularMatrixError{Row: k, Pivot: pMag}
			return
		}
		s.piv[k] = p
		if p != k {
			rk, rp := a[k*n:(k+1)*n], a[p*n:(p+1)*n]
			for j := range rk {
				rk[j], rp[j] = rp[j], rk[j]
			}
		}
		pivVal := a[k*n+k]
		for i := k + 1; i < n; i++ {
			l := a[i*n+k] / pivVal
			a[i*n+k] = l
			if l == 0 {
				continue
			}
			for j := k + 1; j < n; j++ {
				a[i*n+j] -= l * a[k*n+j]
			}
		}
	}
	return
}

// Solve writes the solution of A x = b into x. The operator must have been
// set (and therefore factorized) beforehand.
func (s *LUSolver) Solve(x, b CVector) (err error) {
	if s.lu == nil {
		err = fmt.Errorf("solver has no operator: call SetOperator first")
		return
	}
	var (
		n, _ = s.lu.Dims()
		a    = s.lu.DataP
	)
	if x.Len() != n || b.Len() != n {
		err = fmt.Errorf("dimension mismatch: operator is %dx%d, x is %d, b is %d",
			n, n, x.Len(), b.Len())
		return
	}
	copy(x.DataP, b.DataP)
	// Apply row permutation
	for k := 0; k < n; k++ {
		if p := s.piv[k]; p != k {
			x.DataP[k], x.DataP[p] = x.DataP[p], x.DataP[k]
		}
	}
	// Forward substitution with unit-diagonal L
	for i := 1; i < n; i++ {
		var sum complex128
		for j := 0; j < i; j++ {
			sum += a[i*n+j] * x.DataP[j]
		}
		x.DataP[i] -= sum
	}
	// Back substitution with U
	for i := n - 1; i >= 0; i-- {
		var sum complex128
		for j := i + 1; j < n; j++ {
			sum += a[i*n+j] * x.DataP[j]
		}
		x.DataP[i] = (x.DataP[i] - sum) / a[i*n+i]
	}
	return
}

// Residual returns the 2-norm of b - A x for the stored operator.
func (s *LUSolver) Residual(x, b CVector) float64 {
	r := b.Copy().Subtract(s.op.MulVec(x))
	return Norm(r, NormL2)
}

// RealLUSolver is the real-arithmetic counterpart, backed by gonum's dense
// LU. It consumes the sparse CSR matrices produced by real-mode assembly.
type RealLUSolver struct {
	opts SolverOptions
	lu   *mat.LU
	n    int
}

func NewRealLUSolver(opts SolverOptions) (s *RealLUSolver, err error) {
	if err = opts.validate(); err != nil {
		return
	}
	s = &RealLUSolver{opts: opts}
	return
}

func (s *RealLUSolver) SetOperator(A utils.CSR) (err error) {
	var (
		nr, nc = A.Dims()
	)
	if nr != nc {
		err = fmt.Errorf("operator must be square, have %dx%d", nr, nc)
		return
	}
	s.n = nr
	s.lu = &mat.LU{}
	s.lu.Factorize(A.ToDense().M)
	if s.lu.Cond() > 1.e15 {
		err = &SingularMatrixError{Row: -1, Pivot: 0}
	}
	return
}

func (s *RealLUSolver) Solve(x, b utils.Vector) (err error) {
	if s.lu == nil {
		err = fmt.Errorf("solver has no operator: call SetOperator first")
		return
	}
	if x.Len() != s.n || b.Len() != s.n {
		err = fmt.Errorf("dimension mismatch: operator is %dx%d, x is %d, b is %d",
			s.n, s.n, x.Len(), b.Len())
		return
	}
	if err = s.lu.SolveVecTo(x.V, false, b.V); err != nil {
		err = &SingularMatrixError{Row: -1, Pivot: 0}
	}
	return
}
