package space

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/scicomp-go/cfem/utils"
)

// GaussLegendre computes the n-point Gauss-Legendre rule on [-1,1] by the
// Golub-Welsch eigenvalue method: nodes are the eigenvalues of the symmetric
// tridiagonal Jacobi matrix, weights come from the first components of the
// eigenvectors.
func GaussLegendre(n int) (X, W utils.Vector) {
	if n < 1 {
		panic("Gauss-Legendre rule needs at least one point")
	}
	if n == 1 {
		return utils.NewVector(1, []float64{0}), utils.NewVector(1, []float64{2})
	}
	JJ := mat.NewSymDense(n, nil)
	for i := 1; i < n; i++ {
		fi := float64(i)
		b := fi / math.Sqrt(4*fi*fi-1)
		JJ.SetSym(i-1, i, b)
	}
	var eig mat.EigenSym
	if ok := eig.Factorize(JJ, true); !ok {
		panic("eigenvalue decomposition failed")
	}
	x := eig.Values(nil)
	X = utils.NewVector(n, x)

	VVr := mat.NewDense(n, n, nil)
	eig.VectorsTo(VVr)
	W = utils.NewVector(n, VVr.RawRowView(0)).Apply(func(v float64) float64 {
		return 2 * v * v
	})
	return
}

// Quadrature is a positive rule on the reference triangle (0,0),(1,0),(0,1),
// exact for polynomials up to Degree.
type Quadrature struct {
	Degree int
	R, S   utils.Vector // barycentric-compatible reference coordinates
	W      utils.Vector // weights summing to the reference area 1/2
}

func (q Quadrature) Len() int { return q.W.Len() }

// TriangleQuadrature builds a rule exact for total degree d by collapsing a
// tensor Gauss-Legendre product through the Duffy substitution
// r = u(1-s): the extra (1-s) Jacobian raises the s-direction degree by one,
// which the point-count choice accounts for.
func TriangleQuadrature(d int) (q Quadrature) {
	if d < 0 {
		d = 0
	}
	var (
		n      = (d + 3) / 2
		GX, GW = GaussLegendre(n)
		nq     = n * n
	)
	q = Quadrature{
		Degree: d,
		R:      utils.NewVector(nq),
		S:      utils.NewVector(nq),
		W:      utils.NewVector(nq),
	}
	var ii int
	for i := 0; i < n; i++ {
		// map from [-1,1] to [0,1]
		u, wu := 0.5*(GX.DataP[i]+1), 0.5*GW.DataP[i]
		for j := 0; j < n; j++ {
			v, wv := 0.5*(GX.DataP[j]+1), 0.5*GW.DataP[j]
			q.R.DataP[ii] = u * (1 - v)
			q.S.DataP[ii] = v
			q.W.DataP[ii] = wu * wv * (1 - v)
			ii++
		}
	}
	return
}
