// Package space builds continuous Lagrange finite-element function spaces
// over triangle meshes: a nodal basis of arbitrary polynomial degree, a
// global degree-of-freedom numbering that identifies DOFs shared across
// cell boundaries, and quadrature support for assembly.
package space

import (
	"fmt"

	"github.com/scicomp-go/cfem/expr"
	"github.com/scicomp-go/cfem/la"
	"github.com/scicomp-go/cfem/mesh"
	"github.com/scicomp-go/cfem/utils"
)

// FunctionSpace associates a mesh with a Lagrange basis of fixed polynomial
// degree. Immutable after construction.
type FunctionSpace struct {
	Msh *mesh.Mesh
	P   int // polynomial degree
	Np  int // local basis size per cell

	nodes        []LatticeNode
	l2g          [][]int // cell -> global DOF per local node
	ndof         int
	nodeX, nodeY []float64 // physical coordinates per global DOF
}

// NewLagrange builds a continuous Lagrange space of the given degree:
// vertex DOFs are shared by all incident cells, edge-interior DOFs by the
// two cells of each interior edge, cell-interior DOFs are private. Edge DOF
// sequences run from the lower-numbered global vertex so the two adjacent
// cells agree on the ordering.
func NewLagrange(msh *mesh.Mesh, degree int) (V *FunctionSpace, err error) {
	if msh == nil {
		err = fmt.Errorf("function space requires a mesh")
		return
	}
	if degree < 1 {
		err = fmt.Errorf("Lagrange degree must be >= 1, have %d", degree)
		return
	}
	var (
		p    = degree
		nInt = (p - 1) * (p - 2) / 2
	)
	V = &FunctionSpace{
		Msh:   msh,
		P:     p,
		Np:    (p + 1) * (p + 2) / 2,
		nodes: LatticeNodes(p),
		ndof:  msh.NV() + msh.NE()*(p-1) + msh.K()*nInt,
	}
	V.buildDofMap(nInt)
	V.buildNodeCoordinates()
	return
}

func (V *FunctionSpace) buildDofMap(nInt int) {
	var (
		msh        = V.Msh
		p          = V.P
		edgeOffset = msh.NV()
		intOffset  = msh.NV() + msh.NE()*(p-1)
	)
	V.l2g = make([][]int, msh.K())
	for k := 0; k < msh.K(); k++ {
		var (
			gv  = msh.EToV[k]
			ltg = make([]int, 0, V.Np)
		)
		ltg = append(ltg, gv[0], gv[1], gv[2])
		// local edges in traversal order, matching LatticeNodes
		edges := [3][2]int{{gv[0], gv[1]}, {gv[1], gv[2]}, {gv[2], gv[0]}}
		for le, ev := range edges {
			edgeID := msh.CellEdges[k][le]
			for m := 1; m < p; m++ {
				var t int
				if ev[0] < ev[1] {
					t = m - 1
				} else {
					t = p - 1 - m
				}
				ltg = append(ltg, edgeOffset+edgeID*(p-1)+t)
			}
		}
		for c := 0; c < nInt; c++ {
			ltg = append(ltg, intOffset+k*nInt+c)
		}
		V.l2g[k] = ltg
	}
}

func (V *FunctionSpace) buildNodeCoordinates() {
	var (
		msh = V.Msh
		p   = V.P
		fp  = float64(p)
	)
	V.nodeX = make([]float64, V.ndof)
	V.nodeY = make([]float64, V.ndof)
	copy(V.nodeX, msh.VX.DataP)
	copy(V.nodeY, msh.VY.DataP)
	var ii = msh.NV()
	for _, ev := range msh.Edges {
		var (
			x0, y0 = msh.VX.DataP[ev[0]], msh.VY.DataP[ev[0]]
			x1, y1 = msh.VX.DataP[ev[1]], msh.VY.DataP[ev[1]]
		)
		for t := 0; t < p-1; t++ {
			frac := float64(t+1) / fp
			V.nodeX[ii] = x0 + frac*(x1-x0)
			V.nodeY[ii] = y0 + frac*(y1-y0)
			ii++
		}
	}
	nInt := (p - 1) * (p - 2) / 2
	if nInt == 0 {
		return
	}
	// Interior lattice nodes come after vertex and edge nodes in
	// LatticeNodes order
	interior := V.nodes[3+3*(p-1):]
	for k := 0; k < msh.K(); k++ {
		g := msh.Geometry(k)
		for _, node := range interior {
			r, s := node.RS(p)
			V.nodeX[ii], V.nodeY[ii] = g.ToPhysical(r, s)
			ii++
		}
	}
}

func (V *FunctionSpace) DOFCount() int { return V.ndof }

// LocalToGlobal returns the global DOF indices of cell k's local basis
// functions, in LatticeNodes order. The returned slice is owned by the
// space; callers must not modify it.
func (V *FunctionSpace) LocalToGlobal(k int) []int { return V.l2g[k] }

// BasisValues evaluates every local basis function (value and reference
// gradient) at reference point (r,s).
func (V *FunctionSpace) BasisValues(r, s float64) []BasisValue {
	return lagrangeBasisAt(V.P, V.nodes, r, s)
}

// NodeCoordinates returns the physical position of global DOF i.
func (V *FunctionSpace) NodeCoordinates(i int) (x, y float64) {
	return V.nodeX[i], V.nodeY[i]
}

// Quadrature returns a rule on the reference triangle exact for the given
// total polynomial degree.
func (V *FunctionSpace) Quadrature(degree int) Quadrature {
	return TriangleQuadrature(degree)
}

// BasisTable tabulates basis values and reference gradients at the points
// of a quadrature rule: Vq, Dr and Ds are nq x Np, row per point.
func (V *FunctionSpace) BasisTable(q Quadrature) (Vq, Dr, Ds utils.Matrix) {
	var (
		nq = q.Len()
	)
	Vq = utils.NewMatrix(nq, V.Np)
	Dr = utils.NewMatrix(nq, V.Np)
	Ds = utils.NewMatrix(nq, V.Np)
	for iq := 0; iq < nq; iq++ {
		vals := V.BasisValues(q.R.DataP[iq], q.S.DataP[iq])
		for n, bv := range vals {
			Vq.DataP[iq*V.Np+n] = bv.V
			Dr.DataP[iq*V.Np+n] = bv.Gr[0]
			Ds.DataP[iq*V.Np+n] = bv.Gr[1]
		}
	}
	Vq.SetReadOnly("Vq")
	Dr.SetReadOnly("Dr")
	Ds.SetReadOnly("Ds")
	return
}

// Interpolate evaluates a field expression at every global DOF node,
// producing the coefficient vector of the nodal interpolant.
func (V *FunctionSpace) Interpolate(e *expr.Expression) (R la.CVector) {
	R = la.NewCVector(V.ndof)
	for i := 0; i < V.ndof; i++ {
		R.DataP[i] = e.Eval(V.nodeX[i], V.nodeY[i])
	}
	return
}
