package boostbench

import (
	"fmt"
	"math"
	"testing"
)

// Test split sizes against floor(rows * fraction)
func TestSplitSizes(t *testing.T) {
	tests := []struct {
		name      string
		rows      int
		fraction  float64
		wantTrain int
		wantValid int
	}{
		{"Even 80/20", 10, 0.8, 8, 2},
		{"Five At Point Six", 5, 0.6, 3, 2},
		{"Floored", 5, 0.75, 3, 2},
		{"Half Of Odd", 7, 0.5, 3, 4},
		{"Tiny Fraction", 10, 0.01, 0, 10},
		{"Near One", 10, 0.99, 9, 1},
		{"Single Row Low", 1, 0.5, 0, 1},
		{"Single Row High", 1, 0.999, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := SimulateOrFail(t, tt.rows, 3, 2, false, NewLCGSource(5))
			train, valid := SplitOrFail(t, tbl, tt.fraction)

			if train.NumRows() != tt.wantTrain {
				t.Errorf("Train rows = %d, want %d", train.NumRows(), tt.wantTrain)
			}
			if valid.NumRows() != tt.wantValid {
				t.Errorf("Valid rows = %d, want %d", valid.NumRows(), tt.wantValid)
			}
			if train.NumRows()+valid.NumRows() != tt.rows {
				t.Errorf("Partition sizes sum to %d, want %d",
					train.NumRows()+valid.NumRows(), tt.rows)
			}
		})
	}
}

// Test that rows keep their original order across the split
func TestSplitPreservesOrder(t *testing.T) {
	const rows = 20
	tbl, err := NewTable(rows, 2)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	// Tag every row with its index so provenance is checkable
	for i := 0; i < rows; i++ {
		tbl.SetLabel(i, float32(i))
		tbl.SetFeature(i, 0, float32(i))
		tbl.SetFeature(i, 1, float32(i)*10)
	}

	train, valid := SplitOrFail(t, tbl, 0.65)
	if train.NumRows() != 13 {
		t.Fatalf("Train rows = %d, want 13", train.NumRows())
	}

	for i := 0; i < train.NumRows(); i++ {
		if train.Label(i) != float32(i) {
			t.Errorf("Train row %d carries label %v, want %d", i, train.Label(i), i)
		}
		if train.FeatureRow(i)[1] != float32(i)*10 {
			t.Errorf("Train row %d feature 1 = %v, want %v", i, train.FeatureRow(i)[1], float32(i)*10)
		}
	}
	for i := 0; i < valid.NumRows(); i++ {
		orig := train.NumRows() + i
		if valid.Label(i) != float32(orig) {
			t.Errorf("Valid row %d carries label %v, want %d", i, valid.Label(i), orig)
		}
	}
}

// Test that splitting the same table twice yields identical partitions
func TestSplitIdempotent(t *testing.T) {
	tbl := SimulateOrFail(t, 137, 4, 3, true, NewLCGSource(11))

	t1, v1 := SplitOrFail(t, tbl, 0.37)
	t2, v2 := SplitOrFail(t, tbl, 0.37)

	if t1.NumRows() != t2.NumRows() || v1.NumRows() != v2.NumRows() {
		t.Fatalf("Repeated split changed sizes: %d/%d vs %d/%d",
			t1.NumRows(), v1.NumRows(), t2.NumRows(), v2.NumRows())
	}
	for i := 0; i < t1.NumRows(); i++ {
		a, b := t1.FeatureRow(i), t2.FeatureRow(i)
		for j := range a {
			if a[j] != b[j] {
				t.Fatalf("Repeated split changed train row %d", i)
			}
		}
	}
}

// Test fraction validation
func TestSplitInvalidFraction(t *testing.T) {
	tbl := SimulateOrFail(t, 10, 3, 2, false, NewLCGSource(5))

	for _, fraction := range []float64{0, 1, -0.1, 1.5, math.NaN()} {
		t.Run(fmt.Sprintf("Fraction_%v", fraction), func(t *testing.T) {
			_, _, err := SplitTable(tbl, fraction)
			if err != ErrInvalidFraction {
				t.Errorf("Error = %v, want %v", err, ErrInvalidFraction)
			}
			if !IsInvalidArgError(err) {
				t.Errorf("Expected invalid argument error, got %v", err)
			}
		})
	}
}

func TestSplitNilTable(t *testing.T) {
	_, _, err := SplitTable(nil, 0.8)
	if !IsInvalidArgError(err) {
		t.Errorf("Expected invalid argument error, got %v", err)
	}
}

// Test that an empty partition still reads consistently
func TestSplitEmptyPartition(t *testing.T) {
	tbl := SimulateOrFail(t, 3, 2, 2, false, NewLCGSource(5))
	train, valid := SplitOrFail(t, tbl, 0.1)

	if train.NumRows() != 0 {
		t.Fatalf("Train rows = %d, want 0", train.NumRows())
	}
	if valid.NumRows() != 3 {
		t.Fatalf("Valid rows = %d, want 3", valid.NumRows())
	}
	if got := len(train.Labels()); got != 0 {
		t.Errorf("Empty train returned %d labels", got)
	}
	if m := train.Matrix(); m != nil {
		t.Error("Empty train view should yield a nil matrix")
	}
}
