package assemble

import (
	"errors"

	"github.com/scicomp-go/cfem/expr"
	"github.com/scicomp-go/cfem/space"
)

// ErrDirichletNotImplemented marks strong boundary-condition enforcement as
// an open item: the assembly and verification paths do not require it, and
// no behavior is promised until it lands.
var ErrDirichletNotImplemented = errors.New("Dirichlet boundary conditions are not implemented")

// ApplyDirichlet will constrain the DOFs on the domain boundary to the
// values of g, modifying the assembled system in place.
//
// TODO: implement via row/column elimination once boundary facet extraction
// is added to the mesh package.
func ApplyDirichlet(V *space.FunctionSpace, g *expr.Expression) error {
	return ErrDirichletNotImplemented
}
