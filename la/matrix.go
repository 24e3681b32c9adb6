package la

import (
	"fmt"
	"sort"
)

// CDOK is a complex sparse matrix in dictionary-of-keys form, the
// accumulation target during assembly. Entries accumulate additively.
type CDOK struct {
	nr, nc int
	data   map[[2]int]complex128
}

func NewCDOK(nr, nc int) (R *CDOK) {
	R = &CDOK{
		nr:   nr,
		nc:   nc,
		data: make(map[[2]int]complex128),
	}
	return
}

func (m *CDOK) Dims() (r, c int) { return m.nr, m.nc }

func (m *CDOK) At(i, j int) complex128 {
	m.checkBounds(i, j)
	return m.data[[2]int{i, j}]
}

func (m *CDOK) Accumulate(i, j int, val complex128) {
	m.checkBounds(i, j)
	m.data[[2]int{i, j}] += val
}

func (m *CDOK) NNZ() int { return len(m.data) }

// Do calls fn for every stored entry. Iteration order is unspecified.
func (m *CDOK) Do(fn func(i, j int, v complex128)) {
	for ij, v := range m.data {
		fn(ij[0], ij[1], v)
	}
}

func (m *CDOK) checkBounds(i, j int) {
	if i < 0 || i >= m.nr || j < 0 || j >= m.nc {
		panic(fmt.Sprintf("index (%d,%d) out of bounds for %dx%d matrix", i, j, m.nr, m.nc))
	}
}

// ToCCSR converts to compressed-row form with sorted column indices.
func (m *CDOK) ToCCSR() (R *CCSR) {
	R = &CCSR{
		nr:     m.nr,
		nc:     m.nc,
		RowPtr: make([]int, m.nr+1),
	}
	type entry struct {
		j int
		v complex128
	}
	rows := make([][]entry, m.nr)
	for ij, v := range m.data {
		rows[ij[0]] = append(rows[ij[0]], entry{ij[1], v})
	}
	for i, row := range rows {
		sort.Slice(row, func(a, b int) bool { return row[a].j < row[b].j })
		R.RowPtr[i+1] = R.RowPtr[i] + len(row)
		for _, e := range row {
			R.ColInd = append(R.ColInd, e.j)
			R.DataP = append(R.DataP, e.v)
		}
	}
	return
}

// CCSR is the compressed-row form of an assembled complex matrix.
type CCSR struct {
	nr, nc int
	RowPtr []int
	ColInd []int
	DataP  []complex128
}

func (m *CCSR) Dims() (r, c int) { return m.nr, m.nc }

func (m *CCSR) At(i, j int) complex128 {
	for p := m.RowPtr[i]; p < m.RowPtr[i+1]; p++ {
		if m.ColInd[p] == j {
			return m.DataP[p]
		}
	}
	return 0
}

func (m *CCSR) NNZ() int { return len(m.DataP) }

func (m *CCSR) MulVec(v CVector) (R CVector) {
	if v.Len() != m.nc {
		panic(fmt.Sprintf("dimension mismatch: %dx%d matrix with length-%d vector",
			m.nr, m.nc, v.Len()))
	}
	R = NewCVector(m.nr)
	for i := 0; i < m.nr; i++ {
		var sum complex128
		for p := m.RowPtr[i]; p < m.RowPtr[i+1]; p++ {
			sum += m.DataP[p] * v.DataP[m.ColInd[p]]
		}
		R.DataP[i] = sum
	}
	return
}

// ToDense expands the matrix for direct factorization.
func (m *CCSR) ToDense() (R *CDense) {
	R = NewCDense(m.nr, m.nc)
	for i := 0; i < m.nr; i++ {
		for p := m.RowPtr[i]; p < m.RowPtr[i+1]; p++ {
			R.DataP[i*m.nc+m.ColInd[p]] = m.DataP[p]
		}
	}
	return
}

// CDense is a dense row-major complex matrix.
type CDense struct {
	nr, nc int
	DataP  []complex128
}

func NewCDense(nr, nc int, dataO ...[]complex128) (R *CDense) {
	R = &CDense{nr: nr, nc: nc}
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewCDense nr,nc = %v,%v, len(data[0]) = %v\n",
				nr, nc, len(dataO[0]))
			panic(err)
		}
		R.DataP = dataO[0]
	} else {
		R.DataP = make([]complex128, nr*nc)
	}
	return
}

func (m *CDense) Dims() (r, c int)          { return m.nr, m.nc }
func (m *CDense) At(i, j int) complex128    { return m.DataP[i*m.nc+j] }
func (m *CDense) Set(i, j int, c complex128) { m.DataP[i*m.nc+j] = c }

func (m *CDense) Copy() (R *CDense) {
	R = NewCDense(m.nr, m.nc)
	copy(R.DataP, m.DataP)
	return
}

// ToDense satisfies the solver's Operator interface without aliasing the
// factorization target.
func (m *CDense) ToDense() *CDense { return m.Copy() }

func (m *CDense) MulVec(v CVector) (R CVector) {
	if v.Len() != m.nc {
		panic(fmt.Sprintf("dimension mismatch: %dx%d matrix with length-%d vector",
			m.nr, m.nc, v.Len()))
	}
	R = NewCVector(m.nr)
	for i := 0; i < m.nr; i++ {
		var sum complex128
		row := m.DataP[i*m.nc : (i+1)*m.nc]
		for j, a := range row {
			sum += a * v.DataP[j]
		}
		R.DataP[i] = sum
	}
	return
}
