package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadGambit reads a 2D triangle mesh from a Gambit neutral (.neu) file.
// Material groups and boundary condition sections after the element block
// are ignored.
func ReadGambit(comm Comm, fileName string) (msh *Mesh, err error) {
	var (
		file *os.File
	)
	if file, err = os.Open(fileName); err != nil {
		err = fmt.Errorf("unable to open file %s: %w", fileName, err)
		return
	}
	defer file.Close()
	return readGambit(comm, bufio.NewReader(file))
}

func readGambit(comm Comm, reader *bufio.Reader) (msh *Mesh, err error) {
	defer func() {
		if r := recover(); r != nil {
			if re, ok := r.(error); ok {
				msh, err = nil, fmt.Errorf("malformed Gambit file: %w", re)
				return
			}
			panic(r)
		}
	}()
	// Six header lines precede the dimension record
	skipLines(6, reader)
	nv, k, _, _, nsd := readGambitHeader(reader)
	if nsd != 2 {
		err = fmt.Errorf("mesh must be 2D, file has %d space dimensions", nsd)
		return
	}
	skipLines(2, reader)
	vx, vy := readVertices(nv, reader)
	skipLines(2, reader)
	cells := readTriangles(k, reader)
	msh = newMesh(comm, vx, vy, cells)
	return
}

func readGambitHeader(reader *bufio.Reader) (nv, k, nmats, nbcs, nsd int) {
	var (
		line = getLine(reader)
		dum  int
	)
	n, err := fmt.Sscanf(line, "%d %d %d %d %d %d", &nv, &k, &nmats, &nbcs, &nsd, &dum)
	if err != nil || n < 6 {
		panic(fmt.Errorf("bad dimension record %q", line))
	}
	return
}

func readVertices(nv int, reader *bufio.Reader) (vx, vy []float64) {
	vx, vy = make([]float64, nv), make([]float64, nv)
	for i := 0; i < nv; i++ {
		var (
			line = getLine(reader)
			ind  int
			x, y float64
		)
		n, err := fmt.Sscanf(line, "%d %f %f", &ind, &x, &y)
		if err != nil || n < 3 {
			panic(fmt.Errorf("bad vertex record %q", line))
		}
		if ind < 1 || ind > nv {
			panic(fmt.Errorf("vertex index %d out of range 1..%d", ind, nv))
		}
		vx[ind-1], vy[ind-1] = x, y
	}
	return
}

func readTriangles(k int, reader *bufio.Reader) (cells [][3]int) {
	cells = make([][3]int, k)
	for i := 0; i < k; i++ {
		var (
			line             = getLine(reader)
			ind, typ, nfaces int
			n1, n2, n3       int
		)
		n, err := fmt.Sscanf(line, "%d %d %d %d %d %d", &ind, &typ, &nfaces, &n1, &n2, &n3)
		if err != nil || n < 6 {
			panic(fmt.Errorf("bad element record %q", line))
		}
		if typ != 3 || nfaces != 3 {
			panic(fmt.Errorf("element %d is not a triangle (type %d, %d nodes)", ind, typ, nfaces))
		}
		cells[ind-1] = [3]int{n1 - 1, n2 - 1, n3 - 1}
	}
	return
}

func skipLines(n int, reader *bufio.Reader) {
	for i := 0; i < n; i++ {
		getLine(reader)
	}
}

func getLine(reader *bufio.Reader) (line string) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && len(line) != 0 {
			return strings.TrimRight(line, "\n")
		}
		panic(fmt.Errorf("early end of file"))
	}
	return strings.TrimRight(line, "\n")
}
