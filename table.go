package boostbench

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Table is a dense sample table in row-major order. Each row holds the
// label in column 0 followed by the feature values, all stored as float32.
// A table is created once per run, converted into an engine handle, and
// then discarded; nothing here persists.
type Table struct {
	rows int
	cols int // feature columns, label excluded
	data []float32
}

// NewTable allocates a zeroed table with the given number of rows and
// feature columns. The stored width is columns+1 to account for the label.
func NewTable(rows, columns int) (*Table, error) {
	if rows <= 0 {
		return nil, NewInvalidArgError("NewTable", "rows must be positive")
	}
	if columns <= 0 {
		return nil, NewInvalidArgError("NewTable", "columns must be positive")
	}
	return &Table{
		rows: rows,
		cols: columns,
		data: make([]float32, rows*(columns+1)),
	}, nil
}

// Rows returns the number of sample rows.
func (t *Table) Rows() int { return t.rows }

// Columns returns the number of feature columns, excluding the label.
func (t *Table) Columns() int { return t.cols }

// stride is the stored row width including the label column.
func (t *Table) stride() int { return t.cols + 1 }

// Label returns the label of row i.
func (t *Table) Label(i int) float32 {
	return t.data[i*t.stride()]
}

// SetLabel stores the label of row i.
func (t *Table) SetLabel(i int, v float32) {
	t.data[i*t.stride()] = v
}

// FeatureRow returns the feature values of row i as a subslice of the
// table's backing storage. The slice is valid for the table's lifetime
// and writes through to the table.
func (t *Table) FeatureRow(i int) []float32 {
	s := t.stride()
	return t.data[i*s+1 : (i+1)*s : (i+1)*s]
}

// SetFeature stores feature column j of row i.
func (t *Table) SetFeature(i, j int, v float32) {
	t.data[i*t.stride()+1+j] = v
}

// View returns a view spanning every row of the table.
func (t *Table) View() View {
	return View{t: t, lo: 0, hi: t.rows}
}

// TableFromMatrix builds a table from a gonum feature matrix and a label
// vector. Values are narrowed to float32; the inputs are copied, not
// retained.
func TableFromMatrix(features mat.Matrix, labels []float64) (*Table, error) {
	r, c := features.Dims()
	if len(labels) != r {
		return nil, NewInvalidArgError("TableFromMatrix",
			fmt.Sprintf("label count %d does not match %d rows", len(labels), r))
	}
	t, err := NewTable(r, c)
	if err != nil {
		return nil, err
	}
	for i := 0; i < r; i++ {
		t.SetLabel(i, float32(labels[i]))
		for j := 0; j < c; j++ {
			t.SetFeature(i, j, float32(features.At(i, j)))
		}
	}
	return t, nil
}

// View is a contiguous range of table rows. The splitter returns two of
// these; each exposes the range's features and labels without copying
// row data. The zero View is empty.
type View struct {
	t      *Table
	lo, hi int
}

// NumRows returns the number of rows in the view.
func (v View) NumRows() int { return v.hi - v.lo }

// NumFeatures returns the number of feature columns.
func (v View) NumFeatures() int {
	if v.t == nil {
		return 0
	}
	return v.t.cols
}

// Label returns the label of view row i.
func (v View) Label(i int) float32 {
	return v.t.Label(v.lo + i)
}

// FeatureRow returns the feature values of view row i without copying.
func (v View) FeatureRow(i int) []float32 {
	return v.t.FeatureRow(v.lo + i)
}

// Labels copies the view's labels into a new slice.
func (v View) Labels() []float32 {
	out := make([]float32, v.NumRows())
	for i := range out {
		out[i] = v.Label(i)
	}
	return out
}

// Matrix copies the view's features into a gonum dense matrix, widening
// to float64. An empty view yields nil.
func (v View) Matrix() *mat.Dense {
	n := v.NumRows()
	if n == 0 {
		return nil
	}
	c := v.NumFeatures()
	out := mat.NewDense(n, c, nil)
	for i := 0; i < n; i++ {
		row := v.FeatureRow(i)
		for j := 0; j < c; j++ {
			out.Set(i, j, float64(row[j]))
		}
	}
	return out
}
