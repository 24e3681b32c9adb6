// Package expr parses closed-form scalar expressions into complex-valued
// functions of 2D spatial coordinates. The syntax follows the C-like
// convention of the coefficient strings used to drive finite-element test
// problems: coordinates are x[0] and x[1], the imaginary unit is j, and
// named scalar parameters are substituted at evaluation time.
//
//	f, err := expr.Parse("(1.+j)*A*cos(2*pi*x[0])*cos(2*pi*x[1])", 3,
//	    map[string]complex128{"A": 79.0})
//	val := f.Eval(0.25, 0.5)
package expr

import (
	"fmt"
	"math"
	"math/cmplx"
	"strconv"
)

// Expression is a pure function of a spatial coordinate, evaluable
// concurrently. Degree records the polynomial order the expression should be
// interpolated or integrated with, following the convention of string-based
// coefficient constructors.
type Expression struct {
	Src    string
	Degree int
	params map[string]complex128
	eval   evalFunc
}

type evalFunc func(x, y float64) complex128

// ParseError reports malformed expression syntax with the offending
// position in the source string.
type ParseError struct {
	Src string
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at position %d in %q: %s", e.Pos, e.Src, e.Msg)
}

// Parse compiles src into an Expression of the given interpolation degree.
// Identifiers that are not coordinates, constants, or known functions must
// appear in params, else parsing fails.
func Parse(src string, degree int, params map[string]complex128) (e *Expression, err error) {
	if degree < 0 {
		err = fmt.Errorf("expression degree must be non-negative, have %d", degree)
		return
	}
	e = &Expression{
		Src:    src,
		Degree: degree,
		params: make(map[string]complex128),
	}
	for k, v := range params {
		e.params[k] = v
	}
	p := &parser{src: src, e: e}
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(*ParseError); ok {
				e, err = nil, pe
				return
			}
			panic(r)
		}
	}()
	p.next()
	e.eval = p.parseExpr()
	if p.tok.kind != tokEOF {
		p.fail("unexpected trailing input")
	}
	return
}

// MustParse is Parse for expressions known valid at compile time.
func MustParse(src string, degree int, params map[string]complex128) *Expression {
	e, err := Parse(src, degree, params)
	if err != nil {
		panic(err)
	}
	return e
}

// Eval computes the expression at point (x, y). It is safe to call from
// multiple goroutines as long as SetParam is not being called concurrently.
func (e *Expression) Eval(x, y float64) complex128 { return e.eval(x, y) }

// SetParam rebinds a named parameter. The name must have been declared at
// Parse time.
func (e *Expression) SetParam(name string, val complex128) error {
	if _, ok := e.params[name]; !ok {
		return fmt.Errorf("unknown parameter %q in expression %q", name, e.Src)
	}
	e.params[name] = val
	return nil
}

type tokKind uint8

const (
	tokEOF tokKind = iota
	tokNumber
	tokIdent
	tokOp // single-char operator or delimiter
)

type token struct {
	kind tokKind
	pos  int
	num  float64
	text string
	op   byte
}

type parser struct {
	src string
	pos int
	tok token
	e   *Expression
}

func (p *parser) fail(format string, args ...interface{}) {
	panic(&ParseError{Src: p.src, Pos: p.tok.pos, Msg: fmt.Sprintf(format, args...)})
}

func (p *parser) next() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
	start := p.pos
	if p.pos >= len(p.src) {
		p.tok = token{kind: tokEOF, pos: start}
		return
	}
	c := p.src[p.pos]
	switch {
	case c >= '0' && c <= '9' || c == '.':
		end := p.pos
		seenExp := false
		for end < len(p.src) {
			ch := p.src[end]
			if ch >= '0' && ch <= '9' || ch == '.' {
				end++
				continue
			}
			if (ch == 'e' || ch == 'E') && !seenExp && end+1 < len(p.src) {
				nxt := p.src[end+1]
				if nxt >= '0' && nxt <= '9' || nxt == '+' || nxt == '-' {
					seenExp = true
					end += 2
					continue
				}
			}
			break
		}
		num, err := strconv.ParseFloat(p.src[p.pos:end], 64)
		if err != nil {
			p.tok = token{kind: tokNumber, pos: start}
			p.fail("malformed number %q", p.src[p.pos:end])
		}
		p.tok = token{kind: tokNumber, pos: start, num: num}
		p.pos = end
	case c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_':
		end := p.pos
		for end < len(p.src) {
			ch := p.src[end]
			if ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' ||
				ch >= '0' && ch <= '9' || ch == '_' {
				end++
				continue
			}
			break
		}
		p.tok = token{kind: tokIdent, pos: start, text: p.src[p.pos:end]}
		p.pos = end
	case c == '+' || c == '-' || c == '*' || c == '/' || c == '^' ||
		c == '(' || c == ')' || c == '[' || c == ']' || c == ',':
		p.tok = token{kind: tokOp, pos: start, op: c}
		p.pos++
	default:
		p.tok = token{pos: start}
		p.fail("unexpected character %q", string(c))
	}
}

func (p *parser) expectOp(op byte) {
	if p.tok.kind != tokOp || p.tok.op != op {
		p.fail("expected %q", string(op))
	}
	p.next()
}

// parseExpr := term (('+'|'-') term)*
func (p *parser) parseExpr() evalFunc {
	f := p.parseTerm()
	for p.tok.kind == tokOp && (p.tok.op == '+' || p.tok.op == '-') {
		op := p.tok.op
		p.next()
		g := p.parseTerm()
		lhs := f
		if op == '+' {
			f = func(x, y float64) complex128 { return lhs(x, y) + g(x, y) }
		} else {
			f = func(x, y float64) complex128 { return lhs(x, y) - g(x, y) }
		}
	}
	return f
}

// parseTerm := unary (('*'|'/') unary)*
func (p *parser) parseTerm() evalFunc {
	f := p.parseUnary()
	for p.tok.kind == tokOp && (p.tok.op == '*' || p.tok.op == '/') {
		op := p.tok.op
		p.next()
		g := p.parseUnary()
		lhs := f
		if op == '*' {
			f = func(x, y float64) complex128 { return lhs(x, y) * g(x, y) }
		} else {
			f = func(x, y float64) complex128 { return lhs(x, y) / g(x, y) }
		}
	}
	return f
}

// parseUnary := ('-'|'+') unary | power
func (p *parser) parseUnary() evalFunc {
	if p.tok.kind == tokOp && (p.tok.op == '-' || p.tok.op == '+') {
		op := p.tok.op
		p.next()
		g := p.parseUnary()
		if op == '-' {
			return func(x, y float64) complex128 { return -g(x, y) }
		}
		return g
	}
	return p.parsePower()
}

// parsePower := primary ('^' unary)?  right associative
func (p *parser) parsePower() evalFunc {
	f := p.parsePrimary()
	if p.tok.kind == tokOp && p.tok.op == '^' {
		p.next()
		g := p.parseUnary()
		base := f
		return func(x, y float64) complex128 { return cmplx.Pow(base(x, y), g(x, y)) }
	}
	return f
}

func (p *parser) parsePrimary() evalFunc {
	switch p.tok.kind {
	case tokNumber:
		v := complex(p.tok.num, 0)
		p.next()
		return func(x, y float64) complex128 { return v }
	case tokIdent:
		name := p.tok.text
		p.next()
		return p.parseIdent(name)
	case tokOp:
		if p.tok.op == '(' {
			p.next()
			f := p.parseExpr()
			p.expectOp(')')
			return f
		}
	}
	p.fail("expected operand")
	return nil
}

func (p *parser) parseIdent(name string) evalFunc {
	switch name {
	case "x":
		p.expectOp('[')
		if p.tok.kind != tokNumber {
			p.fail("expected coordinate index")
		}
		idx := int(p.tok.num)
		if idx != 0 && idx != 1 {
			p.fail("coordinate index must be 0 or 1, have %d", idx)
		}
		p.next()
		p.expectOp(']')
		if idx == 0 {
			return func(x, y float64) complex128 { return complex(x, 0) }
		}
		return func(x, y float64) complex128 { return complex(y, 0) }
	case "pi":
		return func(x, y float64) complex128 { return complex(math.Pi, 0) }
	case "j":
		return func(x, y float64) complex128 { return complex(0, 1) }
	case "pow":
		p.expectOp('(')
		a := p.parseExpr()
		p.expectOp(',')
		b := p.parseExpr()
		p.expectOp(')')
		return func(x, y float64) complex128 { return cmplx.Pow(a(x, y), b(x, y)) }
	}
	if fn, ok := functions[name]; ok {
		p.expectOp('(')
		a := p.parseExpr()
		p.expectOp(')')
		return func(x, y float64) complex128 { return fn(a(x, y)) }
	}
	if _, ok := p.e.params[name]; ok {
		e := p.e
		return func(x, y float64) complex128 { return e.params[name] }
	}
	p.fail("unknown identifier %q", name)
	return nil
}

var functions = map[string]func(complex128) complex128{
	"sin":  cmplx.Sin,
	"cos":  cmplx.Cos,
	"tan":  cmplx.Tan,
	"sinh": cmplx.Sinh,
	"cosh": cmplx.Cosh,
	"tanh": cmplx.Tanh,
	"exp":  cmplx.Exp,
	"log":  cmplx.Log,
	"sqrt": cmplx.Sqrt,
	"conj": cmplx.Conj,
	"abs":  func(c complex128) complex128 { return complex(cmplx.Abs(c), 0) },
	"real": func(c complex128) complex128 { return complex(real(c), 0) },
	"imag": func(c complex128) complex128 { return complex(imag(c), 0) },
}
