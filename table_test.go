package boostbench

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestNewTableValidation(t *testing.T) {
	tests := []struct {
		name    string
		rows    int
		columns int
		wantOK  bool
	}{
		{"Valid", 4, 3, true},
		{"Zero Rows", 0, 3, false},
		{"Zero Columns", 4, 0, false},
		{"Negative Rows", -1, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := NewTable(tt.rows, tt.columns)
			if tt.wantOK {
				if err != nil {
					t.Fatalf("NewTable failed: %v", err)
				}
				if tbl.Rows() != tt.rows || tbl.Columns() != tt.columns {
					t.Errorf("Shape = %dx%d, want %dx%d",
						tbl.Rows(), tbl.Columns(), tt.rows, tt.columns)
				}
				return
			}
			if err == nil {
				t.Error("Expected error on invalid shape")
			}
			if !IsInvalidArgError(err) {
				t.Errorf("Expected invalid argument error, got %v", err)
			}
		})
	}
}

// Test that FeatureRow writes through to the table and never touches labels
func TestFeatureRowWriteThrough(t *testing.T) {
	tbl, err := NewTable(3, 4)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	tbl.SetLabel(1, 9)

	row := tbl.FeatureRow(1)
	for j := range row {
		row[j] = float32(j + 1)
	}

	for j := 0; j < 4; j++ {
		want := float32(j + 1)
		if got := tbl.FeatureRow(1)[j]; got != want {
			t.Errorf("Feature (1, %d) = %v, want %v", j, got, want)
		}
	}
	if tbl.Label(1) != 9 {
		t.Errorf("Label overwritten: got %v, want 9", tbl.Label(1))
	}
	// Neighboring rows stay zero
	for j := 0; j < 4; j++ {
		if tbl.FeatureRow(0)[j] != 0 || tbl.FeatureRow(2)[j] != 0 {
			t.Fatalf("Write to row 1 leaked into a neighbor at column %d", j)
		}
	}
}

// Test that a feature row slice cannot grow into the next row
func TestFeatureRowCapped(t *testing.T) {
	tbl, err := NewTable(2, 3)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	row := tbl.FeatureRow(0)
	if cap(row) != len(row) {
		t.Errorf("Row capacity %d exceeds length %d", cap(row), len(row))
	}
}

// Test that Labels returns an independent copy
func TestViewLabelsCopy(t *testing.T) {
	tbl, err := NewTable(4, 2)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	for i := 0; i < 4; i++ {
		tbl.SetLabel(i, float32(i))
	}

	v := tbl.View()
	labels := v.Labels()
	if len(labels) != 4 {
		t.Fatalf("Labels length = %d, want 4", len(labels))
	}
	labels[0] = 100
	if tbl.Label(0) != 0 {
		t.Error("Mutating the label copy changed the table")
	}
}

// Test the float64 widening into a gonum matrix
func TestViewMatrix(t *testing.T) {
	tbl, err := NewTable(2, 3)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	vals := [][]float32{{0.5, 1, 0.25}, {0.125, 0, 2}}
	for i := range vals {
		for j, v := range vals[i] {
			tbl.SetFeature(i, j, v)
		}
	}

	m := tbl.View().Matrix()
	if m == nil {
		t.Fatal("Matrix() returned nil for a populated view")
	}
	r, c := m.Dims()
	if r != 2 || c != 3 {
		t.Fatalf("Matrix dims = %dx%d, want 2x3", r, c)
	}
	for i := range vals {
		for j, v := range vals[i] {
			if got := m.At(i, j); got != float64(v) {
				t.Errorf("Matrix(%d, %d) = %v, want %v", i, j, got, float64(v))
			}
		}
	}
}

// Test building a table from gonum inputs
func TestTableFromMatrix(t *testing.T) {
	features := mat.NewDense(3, 2, []float64{
		1, 2,
		3, 4,
		5, 6,
	})
	labels := []float64{0, 1, 1}

	tbl, err := TableFromMatrix(features, labels)
	if err != nil {
		t.Fatalf("TableFromMatrix failed: %v", err)
	}
	if tbl.Rows() != 3 || tbl.Columns() != 2 {
		t.Fatalf("Shape = %dx%d, want 3x2", tbl.Rows(), tbl.Columns())
	}
	for i := 0; i < 3; i++ {
		if tbl.Label(i) != float32(labels[i]) {
			t.Errorf("Label %d = %v, want %v", i, tbl.Label(i), labels[i])
		}
		for j := 0; j < 2; j++ {
			if got := tbl.FeatureRow(i)[j]; got != float32(features.At(i, j)) {
				t.Errorf("Feature (%d, %d) = %v, want %v", i, j, got, features.At(i, j))
			}
		}
	}
}

func TestTableFromMatrixLabelMismatch(t *testing.T) {
	features := mat.NewDense(3, 2, nil)
	_, err := TableFromMatrix(features, []float64{0, 1})
	if !IsInvalidArgError(err) {
		t.Errorf("Expected invalid argument error, got %v", err)
	}
}

func TestZeroView(t *testing.T) {
	var v View
	if v.NumRows() != 0 {
		t.Errorf("Zero view NumRows = %d, want 0", v.NumRows())
	}
	if v.NumFeatures() != 0 {
		t.Errorf("Zero view NumFeatures = %d, want 0", v.NumFeatures())
	}
	if got := v.Labels(); len(got) != 0 {
		t.Errorf("Zero view returned %d labels", len(got))
	}
	if v.Matrix() != nil {
		t.Error("Zero view should yield a nil matrix")
	}
}
