package mesh

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnitSquare(t *testing.T) {
	// Counts for an nx x ny grid
	{
		msh := NewUnitSquare(CommSelf, 10, 10)
		assert.Equal(t, 200, msh.K())
		assert.Equal(t, 121, msh.NV())
		// Euler: E = V + F - 1 for a planar triangulation of a disk-like region
		assert.Equal(t, msh.NV()+msh.K()-1, msh.NE())
	}
	// Cell areas sum to the domain area
	{
		msh := NewUnitSquare(CommSelf, 4, 7)
		assert.InDelta(t, 1., msh.Area(), 1.e-12)
		for k := 0; k < msh.K(); k++ {
			assert.InDelta(t, 1./float64(2*4*7), msh.CellArea(k), 1.e-12)
		}
	}
	// All cells are counterclockwise
	{
		msh := NewUnitSquare(CommSelf, 3, 3)
		for k := 0; k < msh.K(); k++ {
			g := msh.Geometry(k)
			assert.True(t, g.DetJ > 0)
		}
	}
}

func TestRectangle(t *testing.T) {
	{
		msh := NewRectangle(CommSelf, -1, 0, 3, 2, 2, 2)
		assert.Equal(t, 8, msh.K())
		assert.InDelta(t, 8., msh.Area(), 1.e-12)
	}
	// Degenerate inputs panic
	{
		assert.Panics(t, func() { NewRectangle(CommSelf, 0, 0, 1, 1, 0, 1) })
		assert.Panics(t, func() { NewRectangle(CommSelf, 0, 0, 0, 1, 1, 1) })
	}
}

func TestCellGeometry(t *testing.T) {
	// The reference-to-physical map reproduces the cell vertices
	{
		msh := NewUnitSquare(CommSelf, 2, 2)
		for k := 0; k < msh.K(); k++ {
			var (
				g      = msh.Geometry(k)
				xv, yv = msh.CellVertices(k)
			)
			for i, rs := range [3][2]float64{{0, 0}, {1, 0}, {0, 1}} {
				x, y := g.ToPhysical(rs[0], rs[1])
				assert.InDelta(t, xv[i], x, 1.e-14)
				assert.InDelta(t, yv[i], y, 1.e-14)
			}
		}
	}
	// Jacobian determinant equals twice the cell area
	{
		msh := NewUnitSquare(CommSelf, 5, 3)
		for k := 0; k < msh.K(); k++ {
			assert.InDelta(t, 2*msh.CellArea(k), msh.Geometry(k).DetJ, 1.e-14)
		}
	}
}

func TestEdges(t *testing.T) {
	// Edge endpoints are stored lower global id first
	{
		msh := NewUnitSquare(CommSelf, 3, 2)
		for _, e := range msh.Edges {
			assert.True(t, e[0] < e[1])
		}
	}
	// Each cell's three edges resolve to registered edge ids
	{
		msh := NewUnitSquare(CommSelf, 3, 2)
		for k := 0; k < msh.K(); k++ {
			for _, eid := range msh.CellEdges[k] {
				assert.True(t, eid >= 0 && eid < msh.NE())
			}
		}
	}
	// Interior edges are shared by exactly two cells
	{
		msh := NewUnitSquare(CommSelf, 2, 2)
		shared := make(map[int]int)
		for k := 0; k < msh.K(); k++ {
			for _, eid := range msh.CellEdges[k] {
				shared[eid]++
			}
		}
		for _, count := range shared {
			assert.True(t, count == 1 || count == 2)
		}
	}
}

func TestDelaunay(t *testing.T) {
	// A unit square point set triangulates to two cells
	{
		msh, err := NewDelaunay(CommSelf, []float64{0, 1, 1, 0}, []float64{0, 0, 1, 1})
		assert.NoError(t, err)
		assert.Equal(t, 2, msh.K())
		assert.InDelta(t, 1., msh.Area(), 1.e-12)
	}
	// The mesh owns its coordinates: mutating the input slices afterwards
	// must not move vertices
	{
		px := []float64{0, 1, 1, 0}
		py := []float64{0, 0, 1, 1}
		msh, err := NewDelaunay(CommSelf, px, py)
		assert.NoError(t, err)
		px[0], py[0] = 100, 100
		assert.Equal(t, 0., msh.VX.DataP[0])
		assert.Equal(t, 0., msh.VY.DataP[0])
		assert.InDelta(t, 1., msh.Area(), 1.e-12)
	}
	// A random-looking cloud covers its convex hull
	{
		px := []float64{0, 2, 2, 0, 1, 0.5, 1.5}
		py := []float64{0, 0, 2, 2, 1, 0.3, 1.7}
		msh, err := NewDelaunay(CommSelf, px, py)
		assert.NoError(t, err)
		assert.InDelta(t, 4., msh.Area(), 1.e-12)
		// Empty circumcircle property over all cells and points
		for k := 0; k < msh.K(); k++ {
			xv, yv := msh.CellVertices(k)
			for p := range px {
				in := inCircumcircle(xv[0], yv[0], xv[1], yv[1], xv[2], yv[2], px[p], py[p])
				assert.False(t, in)
			}
		}
	}
	// Degenerate inputs
	{
		_, err := NewDelaunay(CommSelf, []float64{0, 1}, []float64{0, 0})
		assert.Error(t, err)
		_, err = NewDelaunay(CommSelf, []float64{0, 1, 2}, []float64{0, 0})
		assert.Error(t, err)
		_, err = NewDelaunay(CommSelf, []float64{1, 1, 1}, []float64{1, 1, 1})
		assert.Error(t, err)
	}
}

func TestPartition(t *testing.T) {
	// Cell partition covers all cells without overlap
	{
		msh := NewUnitSquare(NewComm(4), 5, 5)
		pm := msh.CellPartition()
		total := 0
		for n := 0; n < 4; n++ {
			total += pm.GetBucketDimension(n)
		}
		assert.Equal(t, msh.K(), total)
	}
}

func TestToGraphMesh(t *testing.T) {
	{
		msh := NewUnitSquare(CommSelf, 2, 2)
		gm := msh.ToGraphMesh()
		assert.Equal(t, msh.K(), len(gm.TriVerts))
		assert.Equal(t, 2*msh.NV(), len(gm.XY))
		for _, tri := range gm.TriVerts {
			for _, nd := range tri {
				assert.True(t, int(nd) >= 0 && int(nd) < msh.NV())
			}
		}
	}
}

func TestMeshArea(t *testing.T) {
	// Area is invariant under refinement
	{
		for _, n := range []int{1, 2, 8} {
			msh := NewUnitSquare(CommSelf, n, n)
			assert.True(t, math.Abs(msh.Area()-1.) < 1.e-12)
		}
	}
}
