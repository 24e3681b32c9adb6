package space

// Lagrange lattice basis on the reference triangle (0,0),(1,0),(0,1) in
// barycentric coordinates L0 = 1-r-s, L1 = r, L2 = s. The nodal set is the
// principal lattice {(i,j,k)/p : i+j+k = p} and the basis functions are
// products of Silvester polynomials
//
//	phi_ijk = R_i(p,L0) R_j(p,L1) R_k(p,L2)
//
// which are 1 at their own lattice node and 0 at every other.

// LatticeNode is one nodal point in lattice index form, i+j+k = p.
type LatticeNode struct {
	I, J, K int
}

// Barycentric returns the node position in barycentric coordinates.
func (n LatticeNode) Barycentric(p int) (l0, l1, l2 float64) {
	fp := float64(p)
	return float64(n.I) / fp, float64(n.J) / fp, float64(n.K) / fp
}

// RS returns the node position in reference coordinates.
func (n LatticeNode) RS(p int) (r, s float64) {
	_, l1, l2 := n.Barycentric(p)
	return l1, l2
}

// LatticeNodes enumerates the degree-p nodal set in the canonical local
// order: the three vertices, then the edge-interior nodes of local edges
// (v0,v1), (v1,v2), (v2,v0) traversed in edge direction, then interior
// nodes. This order is what LocalToGlobal and BasisValues index by.
func LatticeNodes(p int) (nodes []LatticeNode) {
	nodes = make([]LatticeNode, 0, (p+1)*(p+2)/2)
	nodes = append(nodes,
		LatticeNode{p, 0, 0}, // v0 at (0,0)
		LatticeNode{0, p, 0}, // v1 at (1,0)
		LatticeNode{0, 0, p}, // v2 at (0,1)
	)
	for m := 1; m < p; m++ { // edge (v0,v1)
		nodes = append(nodes, LatticeNode{p - m, m, 0})
	}
	for m := 1; m < p; m++ { // edge (v1,v2)
		nodes = append(nodes, LatticeNode{0, p - m, m})
	}
	for m := 1; m < p; m++ { // edge (v2,v0)
		nodes = append(nodes, LatticeNode{m, 0, p - m})
	}
	for i := 1; i <= p-2; i++ {
		for j := 1; j <= p-1-i; j++ {
			nodes = append(nodes, LatticeNode{i, j, p - i - j})
		}
	}
	return
}

// silvester evaluates R_m(p,l) and its derivative with respect to l:
//
//	R_m(p,l) = prod_{t=0}^{m-1} (p*l - t) / m!
func silvester(m, p int, l float64) (val, deriv float64) {
	if m == 0 {
		return 1, 0
	}
	var (
		fp   = float64(p)
		fact = 1.0
	)
	val = 1
	for t := 0; t < m; t++ {
		val *= fp*l - float64(t)
		fact *= float64(t + 1)
	}
	// d/dl prod (p*l - t) = p * sum_u prod_{t != u} (p*l - t)
	for u := 0; u < m; u++ {
		term := fp
		for t := 0; t < m; t++ {
			if t != u {
				term *= fp*l - float64(t)
			}
		}
		deriv += term
	}
	val /= fact
	deriv /= fact
	return
}

// BasisValue is one basis function evaluated at a reference point.
type BasisValue struct {
	V  float64    // value
	Gr [2]float64 // gradient in reference coordinates (d/dr, d/ds)
}

// lagrangeBasisAt evaluates all degree-p lattice basis functions at the
// reference point (r,s), in LatticeNodes order.
func lagrangeBasisAt(p int, nodes []LatticeNode, r, s float64) (vals []BasisValue) {
	var (
		l0, l1, l2 = 1 - r - s, r, s
	)
	vals = make([]BasisValue, len(nodes))
	for n, node := range nodes {
		r0, d0 := silvester(node.I, p, l0)
		r1, d1 := silvester(node.J, p, l1)
		r2, d2 := silvester(node.K, p, l2)
		var (
			v = r0 * r1 * r2
			// partials with respect to each barycentric coordinate
			p0 = d0 * r1 * r2
			p1 = r0 * d1 * r2
			p2 = r0 * r1 * d2
		)
		// dL0/dr = -1, dL1/dr = 1; dL0/ds = -1, dL2/ds = 1
		vals[n] = BasisValue{
			V:  v,
			Gr: [2]float64{p1 - p0, p2 - p0},
		}
	}
	return
}
