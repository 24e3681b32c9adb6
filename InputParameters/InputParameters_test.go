package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProblemParameters(t *testing.T) {
	// Full input file
	{
		data := []byte(`
Title: "Helmholtz"
Nx: 10
Ny: 12
PolynomialOrder: 3
Coefficient: "1+j"
RHS: "(1.+j)*A*cos(2*pi*x[0])*cos(2*pi*x[1])"
RHSDegree: 3
Parameters:
  A: 79.95774715459477
KSPType: "preonly"
PCType: "lu"
ParallelDegree: 4
`)
		var pp ProblemParameters
		assert.NoError(t, pp.Parse(data))
		assert.Equal(t, "Helmholtz", pp.Title)
		assert.Equal(t, 10, pp.Nx)
		assert.Equal(t, 12, pp.Ny)
		assert.Equal(t, 3, pp.PolynomialOrder)
		assert.Equal(t, "1+j", pp.Coefficient)
		assert.InDelta(t, 79.95774715459477, pp.Parameters["A"], 1.e-14)
		assert.Equal(t, "preonly", pp.KSPType)
		assert.Equal(t, "lu", pp.PCType)
		assert.Equal(t, 4, pp.ParallelDegree)
		pp.Print()
	}
	// Validation failures
	{
		var pp ProblemParameters
		assert.Error(t, pp.Parse([]byte(`{Nx: 0, Ny: 2, PolynomialOrder: 1, RHS: "1"}`)))
		assert.Error(t, pp.Parse([]byte(`{Nx: 2, Ny: 2, PolynomialOrder: 0, RHS: "1"}`)))
		assert.Error(t, pp.Parse([]byte(`{Nx: 2, Ny: 2, PolynomialOrder: 1}`)))
	}
	// Malformed YAML
	{
		var pp ProblemParameters
		assert.Error(t, pp.Parse([]byte("Title: [unclosed")))
	}
}
