// Package mesh provides conforming triangle meshes of 2D domains: structured
// generators for rectangles, Delaunay triangulation of point clouds, fixed
// connectivity (vertices, edges, cells), and per-cell affine geometry for
// finite-element assembly. Connectivity is immutable after construction.
package mesh

import (
	"fmt"

	"github.com/scicomp-go/cfem/utils"
)

// Comm is an in-process communicator handle. Size is the number of
// partitions assembly may be split across; rank-local work shares a single
// address space here, so exchanges reduce to merges in partition order.
type Comm struct {
	size int
}

func NewComm(size int) Comm {
	if size < 1 {
		panic(fmt.Sprintf("communicator size must be >= 1, have %d", size))
	}
	return Comm{size: size}
}

// CommSelf is the single-partition communicator.
var CommSelf = Comm{size: 1}

func (c Comm) Size() int { return c.size }

// Mesh is a partition of a 2D domain into triangles.
type Mesh struct {
	VX, VY utils.Vector // vertex coordinates
	EToV   [][3]int     // cell -> vertex, counter-clockwise

	// Derived connectivity, fixed after construction
	Edges     [][2]int // unique edges as (loVertex, hiVertex)
	CellEdges [][3]int // cell -> edge id for local edges (0,1), (1,2), (2,0)

	comm Comm
	pm   *utils.PartitionMap
}

// newMesh builds derived connectivity. Coordinates are copied so the mesh
// owns its storage; cells are reoriented counter-clockwise if needed.
func newMesh(comm Comm, vx, vy []float64, cells [][3]int) (msh *Mesh) {
	msh = &Mesh{
		VX:        utils.NewVector(len(vx), append([]float64{}, vx...)),
		VY:        utils.NewVector(len(vy), append([]float64{}, vy...)),
		EToV:      cells,
		CellEdges: make([][3]int, len(cells)),
		comm:      comm,
	}
	for k, cv := range msh.EToV {
		if msh.signedArea(cv) < 0 {
			msh.EToV[k][1], msh.EToV[k][2] = cv[2], cv[1]
		}
	}
	msh.buildEdges()
	msh.pm = utils.NewPartitionMap(comm.Size(), len(cells))
	return
}

func (msh *Mesh) signedArea(cv [3]int) float64 {
	var (
		x0, y0 = msh.VX.DataP[cv[0]], msh.VY.DataP[cv[0]]
		x1, y1 = msh.VX.DataP[cv[1]], msh.VY.DataP[cv[1]]
		x2, y2 = msh.VX.DataP[cv[2]], msh.VY.DataP[cv[2]]
	)
	return 0.5 * ((x1-x0)*(y2-y0) - (x2-x0)*(y1-y0))
}

func (msh *Mesh) buildEdges() {
	type edgeKey [2]int
	ids := make(map[edgeKey]int)
	for k, cv := range msh.EToV {
		local := [3][2]int{{cv[0], cv[1]}, {cv[1], cv[2]}, {cv[2], cv[0]}}
		for le, ev := range local {
			key := edgeKey{ev[0], ev[1]}
			if key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}
			id, exists := ids[key]
			if !exists {
				id = len(msh.Edges)
				ids[key] = id
				msh.Edges = append(msh.Edges, key)
			}
			msh.CellEdges[k][le] = id
		}
	}
	// Edge ids follow first-encounter order over cells, which is
	// deterministic, so DOF numbering is reproducible across runs.
	return
}

func (msh *Mesh) K() int  { return len(msh.EToV) }  // cell count
func (msh *Mesh) NV() int { return msh.VX.Len() }   // vertex count
func (msh *Mesh) NE() int { return len(msh.Edges) } // unique edge count

func (msh *Mesh) Comm() Comm { return msh.comm }

// CellPartition is the contiguous split of cells across the communicator.
func (msh *Mesh) CellPartition() *utils.PartitionMap { return msh.pm }

// CellVertices returns the physical coordinates of cell k's vertices.
func (msh *Mesh) CellVertices(k int) (x, y [3]float64) {
	for n, v := range msh.EToV[k] {
		x[n], y[n] = msh.VX.DataP[v], msh.VY.DataP[v]
	}
	return
}

// CellGeometry is the affine reference-to-physical map of one triangle:
// (x,y) = (x0,y0) + J * (r,s) with the reference triangle (0,0),(1,0),(0,1).
type CellGeometry struct {
	X0, Y0 float64
	J      [2][2]float64 // forward map
	JInvT  [2][2]float64 // inverse transpose, for gradient pushforward
	DetJ   float64       // 2 * cell area
}

func (msh *Mesh) Geometry(k int) (g CellGeometry) {
	var (
		x, y = msh.CellVertices(k)
	)
	g.X0, g.Y0 = x[0], y[0]
	g.J = [2][2]float64{
		{x[1] - x[0], x[2] - x[0]},
		{y[1] - y[0], y[2] - y[0]},
	}
	g.DetJ = g.J[0][0]*g.J[1][1] - g.J[0][1]*g.J[1][0]
	if g.DetJ <= 0 {
		panic(fmt.Sprintf("degenerate or inverted cell %d: detJ = %g", k, g.DetJ))
	}
	inv := [2][2]float64{
		{g.J[1][1] / g.DetJ, -g.J[0][1] / g.DetJ},
		{-g.J[1][0] / g.DetJ, g.J[0][0] / g.DetJ},
	}
	g.JInvT = [2][2]float64{
		{inv[0][0], inv[1][0]},
		{inv[0][1], inv[1][1]},
	}
	return
}

// ToPhysical maps a reference point of cell k to physical coordinates.
func (g CellGeometry) ToPhysical(r, s float64) (x, y float64) {
	x = g.X0 + g.J[0][0]*r + g.J[0][1]*s
	y = g.Y0 + g.J[1][0]*r + g.J[1][1]*s
	return
}

func (msh *Mesh) CellArea(k int) float64 { return 0.5 * msh.Geometry(k).DetJ }

// Area is the total domain measure.
func (msh *Mesh) Area() (a float64) {
	for k := 0; k < msh.K(); k++ {
		a += msh.CellArea(k)
	}
	return
}

func (msh *Mesh) Print() {
	fmt.Printf("[%d]\t\t= Vertices\n", msh.NV())
	fmt.Printf("[%d]\t\t= Edges\n", msh.NE())
	fmt.Printf("[%d]\t\t= Cells\n", msh.K())
	fmt.Printf("%8.5f\t= Total area\n", msh.Area())
}
