package expr

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpression(t *testing.T) {
	// Arithmetic and precedence
	{
		e := MustParse("1+2*3", 0, nil)
		assert.Equal(t, complex(7, 0), e.Eval(0, 0))
		e = MustParse("(1+2)*3", 0, nil)
		assert.Equal(t, complex(9, 0), e.Eval(0, 0))
		e = MustParse("2^3^2", 0, nil)
		assert.InDelta(t, 512., real(e.Eval(0, 0)), 1.e-12)
		e = MustParse("-2^2", 0, nil)
		assert.InDelta(t, -4., real(e.Eval(0, 0)), 1.e-12)
		e = MustParse("7/2", 0, nil)
		assert.InDelta(t, 3.5, real(e.Eval(0, 0)), 1.e-12)
	}
	// Coordinates
	{
		e := MustParse("x[0]+2*x[1]", 1, nil)
		assert.InDelta(t, 2.5, real(e.Eval(0.5, 1)), 1.e-12)
		assert.Equal(t, 1, e.Degree)
	}
	// Imaginary unit and constants
	{
		e := MustParse("1+j", 0, nil)
		assert.Equal(t, complex(1, 1), e.Eval(0, 0))
		e = MustParse("j*j", 0, nil)
		assert.InDelta(t, -1., real(e.Eval(0, 0)), 1.e-12)
		e = MustParse("cos(pi)", 0, nil)
		assert.InDelta(t, -1., real(e.Eval(0, 0)), 1.e-12)
	}
	// Functions
	{
		e := MustParse("sin(x[0])^2+cos(x[0])^2", 2, nil)
		assert.InDelta(t, 1., real(e.Eval(0.8, 0)), 1.e-12)
		e = MustParse("exp(j*pi)", 0, nil)
		assert.InDelta(t, -1., real(e.Eval(0, 0)), 1.e-12)
		assert.InDelta(t, 0., imag(e.Eval(0, 0)), 1.e-12)
		e = MustParse("sqrt(-1)", 0, nil)
		assert.InDelta(t, 1., imag(e.Eval(0, 0)), 1.e-12)
		e = MustParse("conj(1+2*j)", 0, nil)
		assert.Equal(t, complex(1, -2), e.Eval(0, 0))
		e = MustParse("pow(2,10)", 0, nil)
		assert.InDelta(t, 1024., real(e.Eval(0, 0)), 1.e-12)
		e = MustParse("abs(3+4*j)", 0, nil)
		assert.InDelta(t, 5., real(e.Eval(0, 0)), 1.e-12)
	}
	// Scientific notation
	{
		e := MustParse("1.5e2+2.5E-1", 0, nil)
		assert.InDelta(t, 150.25, real(e.Eval(0, 0)), 1.e-12)
	}
	// Parameters
	{
		params := map[string]complex128{"A": 2}
		e := MustParse("A*x[0]", 1, params)
		assert.InDelta(t, 1., real(e.Eval(0.5, 0)), 1.e-12)
		assert.NoError(t, e.SetParam("A", 4))
		assert.InDelta(t, 2., real(e.Eval(0.5, 0)), 1.e-12)
		assert.Error(t, e.SetParam("B", 1))
		// rebinding the source map must not affect the compiled expression
		params["A"] = 100
		assert.InDelta(t, 2., real(e.Eval(0.5, 0)), 1.e-12)
	}
	// The driving coefficient of the Helmholtz test problem
	{
		A := 1 + 2*math.Pow(2*math.Pi, 2)
		f := MustParse("(1.+j)*A*cos(2*pi*x[0])*cos(2*pi*x[1])", 3,
			map[string]complex128{"A": complex(A, 0)})
		got := f.Eval(0.25, 0.5)
		assert.InDelta(t, 0., cmplx.Abs(got), 1.e-10)
		got = f.Eval(0, 0)
		assert.InDelta(t, A, real(got), 1.e-10)
		assert.InDelta(t, A, imag(got), 1.e-10)
	}
}

func TestParseErrors(t *testing.T) {
	var pe *ParseError
	// Unknown identifier
	{
		e, err := Parse("q*x[0]", 1, nil)
		assert.Nil(t, e)
		assert.ErrorAs(t, err, &pe)
		assert.Contains(t, err.Error(), "unknown identifier")
	}
	// Trailing input
	{
		_, err := Parse("1+2)", 0, nil)
		assert.ErrorAs(t, err, &pe)
	}
	// Missing operand
	{
		_, err := Parse("1+", 0, nil)
		assert.ErrorAs(t, err, &pe)
	}
	// Unbalanced parentheses
	{
		_, err := Parse("sin(x[0]", 1, nil)
		assert.ErrorAs(t, err, &pe)
	}
	// Bad coordinate index
	{
		_, err := Parse("x[2]", 1, nil)
		assert.ErrorAs(t, err, &pe)
	}
	// Stray character
	{
		_, err := Parse("1 # 2", 0, nil)
		assert.ErrorAs(t, err, &pe)
	}
	// Negative degree
	{
		_, err := Parse("1", -1, nil)
		assert.Error(t, err)
	}
}
