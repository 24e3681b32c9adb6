package mesh

import (
	"fmt"
	"math"
)

// NewUnitSquare triangulates the unit square [0,1]^2 into nx*ny quads split
// along their lower-left to upper-right diagonal, 2*nx*ny cells total.
func NewUnitSquare(comm Comm, nx, ny int) *Mesh {
	return NewRectangle(comm, 0, 0, 1, 1, nx, ny)
}

// NewRectangle triangulates the axis-aligned rectangle [x0,x1]x[y0,y1].
func NewRectangle(comm Comm, x0, y0, x1, y1 float64, nx, ny int) *Mesh {
	if nx < 1 || ny < 1 {
		panic(fmt.Sprintf("rectangle subdivisions must be >= 1, have %dx%d", nx, ny))
	}
	if x1 <= x0 || y1 <= y0 {
		panic(fmt.Sprintf("empty rectangle [%g,%g]x[%g,%g]", x0, x1, y0, y1))
	}
	var (
		nvx, nvy = nx + 1, ny + 1
		vx       = make([]float64, nvx*nvy)
		vy       = make([]float64, nvx*nvy)
		cells    = make([][3]int, 0, 2*nx*ny)
		dx       = (x1 - x0) / float64(nx)
		dy       = (y1 - y0) / float64(ny)
	)
	for j := 0; j < nvy; j++ {
		for i := 0; i < nvx; i++ {
			vx[i+j*nvx] = x0 + float64(i)*dx
			vy[i+j*nvx] = y0 + float64(j)*dy
		}
	}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			var (
				ll = i + j*nvx // lower left
				lr = ll + 1
				ul = ll + nvx
				ur = ul + 1
			)
			cells = append(cells, [3]int{ll, lr, ur}, [3]int{ll, ur, ul})
		}
	}
	return newMesh(comm, vx, vy, cells)
}

// NewDelaunay triangulates an arbitrary planar point cloud with the
// Bowyer-Watson incremental algorithm. At least three non-collinear points
// are required.
func NewDelaunay(comm Comm, px, py []float64) (msh *Mesh, err error) {
	if len(px) != len(py) {
		err = fmt.Errorf("coordinate slices differ in length: %d vs %d", len(px), len(py))
		return
	}
	if len(px) < 3 {
		err = fmt.Errorf("triangulation requires at least 3 points, have %d", len(px))
		return
	}
	var (
		n          = len(px)
		minX, maxX = px[0], px[0]
		minY, maxY = py[0], py[0]
	)
	for i := 1; i < n; i++ {
		minX, maxX = math.Min(minX, px[i]), math.Max(maxX, px[i])
		minY, maxY = math.Min(minY, py[i]), math.Max(maxY, py[i])
	}
	span := math.Max(maxX-minX, maxY-minY)
	if span == 0 {
		err = fmt.Errorf("degenerate point cloud: zero extent")
		return
	}
	// Super-triangle enclosing all points, removed afterwards
	var (
		cx, cy = 0.5 * (minX + maxX), 0.5 * (minY + maxY)
		X      = append(append([]float64{}, px...),
			cx-20*span, cx+20*span, cx)
		Y = append(append([]float64{}, py...),
			cy-span, cy-span, cy+20*span)
		tris = [][3]int{{n, n + 1, n + 2}}
	)
	for p := 0; p < n; p++ {
		var (
			bad  []int
			keep [][3]int
		)
		for t, tri := range tris {
			if inCircumcircle(X[tri[0]], Y[tri[0]], X[tri[1]], Y[tri[1]],
				X[tri[2]], Y[tri[2]], X[p], Y[p]) {
				bad = append(bad, t)
			}
		}
		// Boundary of the cavity: edges of bad triangles not shared between
		// two bad triangles
		edgeCount := make(map[[2]int]int)
		for _, t := range bad {
			tri := tris[t]
			for _, e := range [3][2]int{{tri[0], tri[1]}, {tri[1], tri[2]}, {tri[2], tri[0]}} {
				key := e
				if key[0] > key[1] {
					key[0], key[1] = key[1], key[0]
				}
				edgeCount[key]++
			}
		}
		isBad := make(map[int]bool, len(bad))
		for _, t := range bad {
			isBad[t] = true
		}
		for t, tri := range tris {
			if !isBad[t] {
				keep = append(keep, tri)
			}
		}
		for _, t := range bad {
			tri := tris[t]
			for _, e := range [3][2]int{{tri[0], tri[1]}, {tri[1], tri[2]}, {tri[2], tri[0]}} {
				key := e
				if key[0] > key[1] {
					key[0], key[1] = key[1], key[0]
				}
				if edgeCount[key] == 1 {
					keep = append(keep, [3]int{e[0], e[1], p})
				}
			}
		}
		tris = keep
	}
	// Drop triangles touching the super-triangle vertices
	var cells [][3]int
	for _, tri := range tris {
		if tri[0] < n && tri[1] < n && tri[2] < n {
			cells = append(cells, tri)
		}
	}
	if len(cells) == 0 {
		err = fmt.Errorf("triangulation produced no cells: points may be collinear")
		return
	}
	msh = newMesh(comm, px, py, cells)
	return
}

// inCircumcircle reports whether (dx,dy) lies strictly inside the circle
// through a, b, c, via the signed 3x3 determinant test with a handedness
// correction for clockwise triangles.
func inCircumcircle(ax, ay, bx, by, cx, cy, dx, dy float64) bool {
	ccw := (bx-ax)*(cy-ay)-(cx-ax)*(by-ay) > 0
	axd, ayd := ax-dx, ay-dy
	bxd, byd := bx-dx, by-dy
	cxd, cyd := cx-dx, cy-dy
	det := (axd*axd+ayd*ayd)*(bxd*cyd-cxd*byd) -
		(bxd*bxd+byd*byd)*(axd*cyd-cxd*ayd) +
		(cxd*cxd+cyd*cyd)*(axd*byd-bxd*ayd)
	if ccw {
		return det > 0
	}
	return det < 0
}
