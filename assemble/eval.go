package assemble

import (
	"fmt"
	"math/cmplx"

	"github.com/scicomp-go/cfem/form"
)

// evalCtx carries the state of one quadrature-point evaluation: the
// physical point plus the current trial/test basis function's value and
// physical gradient.
type evalCtx struct {
	x, y          float64
	testV, trialV float64
	testG, trialG [2]float64
}

// value is the result of evaluating a form node: a complex scalar or a
// complex 2-vector (gradients). Shapes were validated at form build time.
type value struct {
	vec bool
	s   complex128
	v   [2]complex128
}

func evalNode(n *form.Node, ctx *evalCtx) complex128 {
	return evalValue(n, ctx).s
}

func evalValue(n *form.Node, ctx *evalCtx) (r value) {
	switch n.Kind {
	case form.KindConstant:
		r.s = n.Value
	case form.KindFieldRef:
		r.s = n.Field.Eval(ctx.x, ctx.y)
	case form.KindTrialRef:
		r.s = complex(ctx.trialV, 0)
	case form.KindTestRef:
		r.s = complex(ctx.testV, 0)
	case form.KindGrad:
		var g [2]float64
		if n.Left.Kind == form.KindTrialRef {
			g = ctx.trialG
		} else {
			g = ctx.testG
		}
		r.vec = true
		r.v = [2]complex128{complex(g[0], 0), complex(g[1], 0)}
	case form.KindAdd:
		a, b := evalValue(n.Left, ctx), evalValue(n.Right, ctx)
		r.vec = a.vec
		if r.vec {
			r.v = [2]complex128{a.v[0] + b.v[0], a.v[1] + b.v[1]}
		} else {
			r.s = a.s + b.s
		}
	case form.KindScale:
		a, b := evalValue(n.Left, ctx), evalValue(n.Right, ctx)
		r.vec = b.vec
		if r.vec {
			r.v = [2]complex128{a.s * b.v[0], a.s * b.v[1]}
		} else {
			r.s = a.s * b.s
		}
	case form.KindInner:
		// Hermitian convention: conjugate the second (test side) operand
		a, b := evalValue(n.Left, ctx), evalValue(n.Right, ctx)
		if a.vec {
			r.s = a.v[0]*cmplx.Conj(b.v[0]) + a.v[1]*cmplx.Conj(b.v[1])
		} else {
			r.s = a.s * cmplx.Conj(b.s)
		}
	case form.KindIntegral:
		r = evalValue(n.Left, ctx)
	default:
		panic(fmt.Sprintf("unhandled form node kind %v", n.Kind))
	}
	return
}
