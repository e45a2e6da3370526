package discourse

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// ErrMalformedMatrix is returned when a compressed sparse row triple is not
// consistent with the matrix shape.
var ErrMalformedMatrix = errors.New("malformed sparse matrix")

// A SparseMatrix is a read-only matrix in compressed sparse row form. Row i
// stores its column indices in Indices[Indptr[i]:Indptr[i+1]], sorted, with
// the matching values in Data.
//
// SparseMatrix implements gonum's mat.Matrix.
type SparseMatrix struct {
	rows, cols int
	indptr     []int
	indices    []int
	data       []float64
}

var _ mat.Matrix = (*SparseMatrix)(nil)

// NewSparseMatrix rebuilds a matrix from a compressed sparse row triple.
// Column indices within a row may be in any order; duplicates are summed.
func NewSparseMatrix(rows, cols int, indptr, indices []int, data []float64) (*SparseMatrix, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: negative shape %dx%d", ErrMalformedMatrix, rows, cols)
	}
	if len(indptr) != rows+1 {
		return nil, fmt.Errorf("%w: indptr has %d entries, want %d", ErrMalformedMatrix, len(indptr), rows+1)
	}
	if len(indices) != len(data) {
		return nil, fmt.Errorf("%w: %d indices for %d values", ErrMalformedMatrix, len(indices), len(data))
	}
	if indptr[0] != 0 || indptr[rows] != len(indices) {
		return nil, fmt.Errorf("%w: indptr must span [0, %d]", ErrMalformedMatrix, len(indices))
	}

	b := NewSparseBuilder(rows, cols)
	for i := 0; i < rows; i++ {
		lo, hi := indptr[i], indptr[i+1]
		if lo > hi || hi > len(indices) {
			return nil, fmt.Errorf("%w: bad indptr at row %d", ErrMalformedMatrix, i)
		}
		for k := lo; k < hi; k++ {
			if indices[k] < 0 || indices[k] >= cols {
				return nil, fmt.Errorf("%w: column %d out of range at row %d", ErrMalformedMatrix, indices[k], i)
			}
			b.Add(i, indices[k], data[k])
		}
	}
	return b.Build(), nil
}

// Dims returns the number of rows and columns.
func (m *SparseMatrix) Dims() (r, c int) {
	return m.rows, m.cols
}

// At returns the value at row i, column j. Absent entries are zero.
func (m *SparseMatrix) At(i, j int) float64 {
	if i < 0 || i >= m.rows {
		panic(mat.ErrRowAccess)
	}
	if j < 0 || j >= m.cols {
		panic(mat.ErrColAccess)
	}
	cols := m.indices[m.indptr[i]:m.indptr[i+1]]
	k := sort.SearchInts(cols, j)
	if k < len(cols) && cols[k] == j {
		return m.data[m.indptr[i]+k]
	}
	return 0
}

// T returns the transpose of the matrix.
func (m *SparseMatrix) T() mat.Matrix {
	return mat.Transpose{Matrix: m}
}

// NNZ returns the number of stored entries.
func (m *SparseMatrix) NNZ() int {
	return len(m.data)
}

// Row returns the stored column indices and values of row i.
func (m *SparseMatrix) Row(i int) ([]int, []float64) {
	lo, hi := m.indptr[i], m.indptr[i+1]
	return append([]int(nil), m.indices[lo:hi]...), append([]float64(nil), m.data[lo:hi]...)
}

// Indptr returns a copy of the row pointers.
func (m *SparseMatrix) Indptr() []int {
	return append([]int(nil), m.indptr...)
}

// Indices returns a copy of the column indices.
func (m *SparseMatrix) Indices() []int {
	return append([]int(nil), m.indices...)
}

// Data returns a copy of the stored values.
func (m *SparseMatrix) Data() []float64 {
	return append([]float64(nil), m.data...)
}

// Dense returns the matrix as a gonum dense matrix. A matrix with no rows or
// no columns yields an empty Dense.
func (m *SparseMatrix) Dense() *mat.Dense {
	if m.rows == 0 || m.cols == 0 {
		return &mat.Dense{}
	}
	d := mat.NewDense(m.rows, m.cols, nil)
	for i := 0; i < m.rows; i++ {
		for k := m.indptr[i]; k < m.indptr[i+1]; k++ {
			d.Set(i, m.indices[k], m.data[k])
		}
	}
	return d
}

type sparseEntry struct {
	col int
	val float64
}

// A SparseBuilder collects matrix entries in any order and compresses them
// into a SparseMatrix.
type SparseBuilder struct {
	cols int
	rows [][]sparseEntry
}

// NewSparseBuilder returns a builder for a rows x cols matrix.
func NewSparseBuilder(rows, cols int) *SparseBuilder {
	return &SparseBuilder{cols: cols, rows: make([][]sparseEntry, rows)}
}

// Add adds v to the entry at row i, column j.
func (b *SparseBuilder) Add(i, j int, v float64) {
	if j < 0 || j >= b.cols {
		panic(mat.ErrColAccess)
	}
	b.rows[i] = append(b.rows[i], sparseEntry{col: j, val: v})
}

// Build sorts each row by column, sums duplicate entries and returns the
// compressed matrix.
func (b *SparseBuilder) Build() *SparseMatrix {
	m := &SparseMatrix{
		rows:   len(b.rows),
		cols:   b.cols,
		indptr: make([]int, 1, len(b.rows)+1),
	}
	for _, row := range b.rows {
		sort.SliceStable(row, func(x, y int) bool { return row[x].col < row[y].col })
		for k, e := range row {
			if k > 0 && row[k-1].col == e.col {
				m.data[len(m.data)-1] += e.val
				continue
			}
			m.indices = append(m.indices, e.col)
			m.data = append(m.data, e.val)
		}
		m.indptr = append(m.indptr, len(m.indices))
	}
	return m
}
