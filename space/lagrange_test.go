package space

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLatticeNodes(t *testing.T) {
	// Node counts follow the triangular numbers
	{
		for p := 1; p <= 6; p++ {
			nodes := LatticeNodes(p)
			assert.Equal(t, (p+1)*(p+2)/2, len(nodes))
			for _, n := range nodes {
				assert.Equal(t, p, n.I+n.J+n.K)
			}
		}
	}
	// Vertex nodes map to the reference corners
	{
		nodes := LatticeNodes(3)
		r, s := nodes[0].RS(3)
		assert.Equal(t, [2]float64{0, 0}, [2]float64{r, s})
		r, s = nodes[1].RS(3)
		assert.Equal(t, [2]float64{1, 0}, [2]float64{r, s})
		r, s = nodes[2].RS(3)
		assert.Equal(t, [2]float64{0, 1}, [2]float64{r, s})
	}
}

func TestLagrangeBasis(t *testing.T) {
	// Kronecker delta property at the lattice nodes
	{
		for p := 1; p <= 4; p++ {
			nodes := LatticeNodes(p)
			for i, ni := range nodes {
				r, s := ni.RS(p)
				vals := lagrangeBasisAt(p, nodes, r, s)
				for j := range nodes {
					want := 0.
					if i == j {
						want = 1.
					}
					assert.InDelta(t, want, vals[j].V, 1.e-12)
				}
			}
		}
	}
	// Partition of unity and zero gradient sum at arbitrary points
	{
		pts := [][2]float64{{0.3, 0.3}, {0.1, 0.7}, {0.5, 0.25}, {0, 0.9}}
		for p := 1; p <= 5; p++ {
			nodes := LatticeNodes(p)
			for _, pt := range pts {
				vals := lagrangeBasisAt(p, nodes, pt[0], pt[1])
				var sumV, sumGr, sumGs float64
				for _, bv := range vals {
					sumV += bv.V
					sumGr += bv.Gr[0]
					sumGs += bv.Gr[1]
				}
				assert.InDelta(t, 1., sumV, 1.e-12)
				assert.InDelta(t, 0., sumGr, 1.e-11)
				assert.InDelta(t, 0., sumGs, 1.e-11)
			}
		}
	}
	// P1 gradients are the constant barycentric gradients
	{
		nodes := LatticeNodes(1)
		vals := lagrangeBasisAt(1, nodes, 0.2, 0.3)
		assert.InDelta(t, -1., vals[0].Gr[0], 1.e-14)
		assert.InDelta(t, -1., vals[0].Gr[1], 1.e-14)
		assert.InDelta(t, 1., vals[1].Gr[0], 1.e-14)
		assert.InDelta(t, 0., vals[1].Gr[1], 1.e-14)
		assert.InDelta(t, 0., vals[2].Gr[0], 1.e-14)
		assert.InDelta(t, 1., vals[2].Gr[1], 1.e-14)
	}
	// Linear reproduction: the P2 basis reproduces r exactly
	{
		nodes := LatticeNodes(2)
		var (
			r, s = 0.27, 0.41
			vals = lagrangeBasisAt(2, nodes, r, s)
			got  float64
		)
		for j, n := range nodes {
			nr, _ := n.RS(2)
			got += nr * vals[j].V
		}
		assert.InDelta(t, r, got, 1.e-13)
	}
}
