package space

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGaussLegendre(t *testing.T) {
	// One and two point rules match the closed forms
	{
		X, W := GaussLegendre(1)
		assert.Equal(t, []float64{0}, X.DataP)
		assert.Equal(t, []float64{2}, W.DataP)
		X, W = GaussLegendre(2)
		assert.InDelta(t, -1./math.Sqrt(3.), X.DataP[0], 1.e-14)
		assert.InDelta(t, 1./math.Sqrt(3.), X.DataP[1], 1.e-14)
		assert.InDelta(t, 1., W.DataP[0], 1.e-14)
		assert.InDelta(t, 1., W.DataP[1], 1.e-14)
	}
	// An n point rule integrates monomials up to degree 2n-1 exactly
	{
		for n := 1; n <= 8; n++ {
			X, W := GaussLegendre(n)
			for d := 0; d <= 2*n-1; d++ {
				var got float64
				for i := 0; i < n; i++ {
					got += W.DataP[i] * math.Pow(X.DataP[i], float64(d))
				}
				exact := 0.
				if d%2 == 0 {
					exact = 2. / float64(d+1)
				}
				assert.InDelta(t, exact, got, 1.e-12)
			}
		}
	}
}

func TestTriangleQuadrature(t *testing.T) {
	// Weights are positive and sum to the reference area
	{
		for d := 0; d <= 8; d++ {
			q := TriangleQuadrature(d)
			assert.InDelta(t, 0.5, q.W.Sum(), 1.e-13)
			assert.True(t, q.W.Min() > 0)
		}
	}
	// Points lie inside the reference triangle
	{
		q := TriangleQuadrature(5)
		for i := 0; i < q.Len(); i++ {
			r, s := q.R.DataP[i], q.S.DataP[i]
			assert.True(t, r >= 0 && s >= 0 && r+s <= 1+1.e-14)
		}
	}
	// Exact integration of monomials r^a s^b up to the requested degree
	{
		// integral over the reference triangle is a! b! / (a+b+2)!
		factorial := func(n int) float64 {
			f := 1.
			for i := 2; i <= n; i++ {
				f *= float64(i)
			}
			return f
		}
		for d := 1; d <= 7; d++ {
			q := TriangleQuadrature(d)
			for a := 0; a <= d; a++ {
				for b := 0; a+b <= d; b++ {
					var got float64
					for i := 0; i < q.Len(); i++ {
						got += q.W.DataP[i] *
							math.Pow(q.R.DataP[i], float64(a)) *
							math.Pow(q.S.DataP[i], float64(b))
					}
					exact := factorial(a) * factorial(b) / factorial(a+b+2)
					assert.InDelta(t, exact, got, 1.e-13)
				}
			}
		}
	}
}
