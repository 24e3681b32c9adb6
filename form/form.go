// Package form describes variational (weak form) integrands as explicit
// expression trees. Trees are built through constructor functions rather
// than operator overloading, so every node carries an explicit kind tag and
// the assembler traverses the structure directly:
//
//	a := form.Must(form.NewBilinear(
//	    form.Add(
//	        form.DX(form.Scale(form.Constant(C), form.Inner(form.Grad(u), form.Grad(v)))),
//	        form.DX(form.Scale(form.Constant(C), form.Inner(u, v))),
//	    )))
//
// A form is bilinear when its tree references both a trial and a test
// function, linear when it references only a test function. Building a form
// records structure only; no numeric evaluation happens until assembly.
package form

import (
	"fmt"

	"github.com/scicomp-go/cfem/expr"
	"github.com/scicomp-go/cfem/space"
)

// Kind tags a node in the form tree.
type Kind uint8

const (
	KindConstant Kind = iota // fixed complex scalar
	KindFieldRef             // pointwise-evaluated coefficient field
	KindTrialRef             // placeholder for the trial basis function
	KindTestRef              // placeholder for the test basis function
	KindAdd                  // Left + Right
	KindScale                // scalar Left times Right
	KindInner                // inner product, conjugating the Right operand
	KindGrad                 // spatial gradient of Left
	KindIntegral             // domain integral of Left
)

func (k Kind) String() string {
	switch k {
	case KindConstant:
		return "Constant"
	case KindFieldRef:
		return "FieldRef"
	case KindTrialRef:
		return "TrialRef"
	case KindTestRef:
		return "TestRef"
	case KindAdd:
		return "Add"
	case KindScale:
		return "Scale"
	case KindInner:
		return "Inner"
	case KindGrad:
		return "Grad"
	case KindIntegral:
		return "Integral"
	}
	return "unknown"
}

// Node is one vertex of a form tree. Immutable once built.
type Node struct {
	Kind  Kind
	Left  *Node
	Right *Node
	Value complex128           // KindConstant
	Field *expr.Expression     // KindFieldRef
	Space *space.FunctionSpace // KindTrialRef / KindTestRef
}

func Constant(c complex128) *Node { return &Node{Kind: KindConstant, Value: c} }

func Field(e *expr.Expression) *Node { return &Node{Kind: KindFieldRef, Field: e} }

func Trial(V *space.FunctionSpace) *Node { return &Node{Kind: KindTrialRef, Space: V} }

func Test(V *space.FunctionSpace) *Node { return &Node{Kind: KindTestRef, Space: V} }

func Add(a, b *Node) *Node { return &Node{Kind: KindAdd, Left: a, Right: b} }

// Scale multiplies operand by a scalar-valued node (constant or coefficient
// field).
func Scale(scalar, operand *Node) *Node {
	return &Node{Kind: KindScale, Left: scalar, Right: operand}
}

// Inner is the Hermitian inner product: conjugate-linear in the second
// (test side) argument when operating in complex arithmetic.
func Inner(a, b *Node) *Node { return &Node{Kind: KindInner, Left: a, Right: b} }

func Grad(a *Node) *Node { return &Node{Kind: KindGrad, Left: a} }

// DX closes an integrand over the domain cell measure.
func DX(integrand *Node) *Node { return &Node{Kind: KindIntegral, Left: integrand} }

// Form is a validated integral expression ready for assembly.
type Form struct {
	Root *Node
	Rank int // 2 bilinear, 1 linear

	TrialSpace *space.FunctionSpace // nil for linear forms
	TestSpace  *space.FunctionSpace
}

// NewBilinear validates root as a bilinear form: exactly one trial and one
// test reference present, every term closed under an integral measure.
func NewBilinear(root *Node) (f *Form, err error) {
	f = &Form{Root: root, Rank: 2}
	if err = f.validate(); err != nil {
		f = nil
	}
	return
}

// NewLinear validates root as a linear form: test references only.
func NewLinear(root *Node) (f *Form, err error) {
	f = &Form{Root: root, Rank: 1}
	if err = f.validate(); err != nil {
		f = nil
	}
	return
}

// Must unwraps a form constructor result for forms known valid when built.
func Must(f *Form, err error) *Form {
	if err != nil {
		panic(err)
	}
	return f
}

func (f *Form) validate() (err error) {
	if err = checkIntegrals(f.Root, false); err != nil {
		return
	}
	if err = f.collectSpaces(f.Root); err != nil {
		return
	}
	switch f.Rank {
	case 2:
		if f.TrialSpace == nil || f.TestSpace == nil {
			err = fmt.Errorf("bilinear form must reference both a trial and a test function")
		}
	case 1:
		if f.TrialSpace != nil {
			err = fmt.Errorf("linear form must not reference a trial function")
		}
		if f.TestSpace == nil {
			err = fmt.Errorf("linear form must reference a test function")
		}
	default:
		err = fmt.Errorf("unsupported form rank %d", f.Rank)
	}
	if err != nil {
		return
	}
	if err = checkGrads(f.Root); err != nil {
		return
	}
	_, err = ShapeOf(f.Root)
	return
}

// ShapeOf infers whether a node evaluates to a vector (true) or a scalar,
// rejecting trees that mix shapes: Add requires matching operands, Inner
// collapses matching operands to a scalar, Scale requires a scalar
// multiplier.
func ShapeOf(n *Node) (isVector bool, err error) {
	switch n.Kind {
	case KindConstant, KindFieldRef, KindTrialRef, KindTestRef:
		return false, nil
	case KindGrad:
		return true, nil
	case KindAdd:
		var lv, rv bool
		if lv, err = ShapeOf(n.Left); err != nil {
			return
		}
		if rv, err = ShapeOf(n.Right); err != nil {
			return
		}
		if lv != rv {
			err = fmt.Errorf("cannot add scalar and vector quantities")
			return
		}
		return lv, nil
	case KindScale:
		var lv bool
		if lv, err = ShapeOf(n.Left); err != nil {
			return
		}
		if lv {
			err = fmt.Errorf("scalar multiplier must be scalar-valued")
			return
		}
		return ShapeOf(n.Right)
	case KindInner:
		var lv, rv bool
		if lv, err = ShapeOf(n.Left); err != nil {
			return
		}
		if rv, err = ShapeOf(n.Right); err != nil {
			return
		}
		if lv != rv {
			err = fmt.Errorf("inner product operands must have matching shapes")
			return
		}
		return false, nil
	case KindIntegral:
		var lv bool
		if lv, err = ShapeOf(n.Left); err != nil {
			return
		}
		if lv {
			err = fmt.Errorf("integrand must be scalar-valued")
			return
		}
		return false, nil
	}
	err = fmt.Errorf("unknown node kind %d", n.Kind)
	return
}

// QuadratureDegree estimates the polynomial degree of the integrand so the
// assembler can pick an exact rule: argument references contribute the
// basis degree, coefficient fields their declared degree.
func QuadratureDegree(n *Node) int {
	if n == nil {
		return 0
	}
	switch n.Kind {
	case KindConstant:
		return 0
	case KindFieldRef:
		return n.Field.Degree
	case KindTrialRef, KindTestRef:
		return n.Space.P
	case KindGrad:
		d := QuadratureDegree(n.Left) - 1
		if d < 0 {
			d = 0
		}
		return d
	case KindAdd:
		l, r := QuadratureDegree(n.Left), QuadratureDegree(n.Right)
		if l > r {
			return l
		}
		return r
	case KindScale, KindInner:
		return QuadratureDegree(n.Left) + QuadratureDegree(n.Right)
	case KindIntegral:
		return QuadratureDegree(n.Left)
	}
	return 0
}

// checkIntegrals requires every leaf-ward path to cross exactly one
// integral measure: the top level is a sum of integrals.
func checkIntegrals(n *Node, inside bool) (err error) {
	if n == nil {
		return
	}
	switch n.Kind {
	case KindIntegral:
		if inside {
			return fmt.Errorf("nested integral measures are not supported")
		}
		return checkIntegrals(n.Left, true)
	case KindAdd:
		if !inside {
			if err = checkIntegrals(n.Left, false); err != nil {
				return
			}
			return checkIntegrals(n.Right, false)
		}
	}
	if !inside {
		return fmt.Errorf("%s node outside of an integral measure: close terms with DX", n.Kind)
	}
	if err = checkIntegrals(n.Left, true); err != nil {
		return
	}
	return checkIntegrals(n.Right, true)
}

func (f *Form) collectSpaces(n *Node) (err error) {
	if n == nil {
		return
	}
	switch n.Kind {
	case KindTrialRef:
		if f.TrialSpace != nil && f.TrialSpace != n.Space {
			return fmt.Errorf("form references two distinct trial spaces")
		}
		f.TrialSpace = n.Space
	case KindTestRef:
		if f.TestSpace != nil && f.TestSpace != n.Space {
			return fmt.Errorf("form references two distinct test spaces")
		}
		f.TestSpace = n.Space
	}
	if err = f.collectSpaces(n.Left); err != nil {
		return
	}
	return f.collectSpaces(n.Right)
}

// checkGrads restricts gradients to trial/test references: coefficient
// fields are pointwise-evaluated and carry no discrete gradient.
func checkGrads(n *Node) (err error) {
	if n == nil {
		return
	}
	if n.Kind == KindGrad {
		if n.Left == nil || (n.Left.Kind != KindTrialRef && n.Left.Kind != KindTestRef) {
			return fmt.Errorf("gradient applies to trial or test functions only")
		}
	}
	if err = checkGrads(n.Left); err != nil {
		return
	}
	return checkGrads(n.Right)
}
