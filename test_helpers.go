package boostbench

import (
	"testing"
)

// SimulateOrFail generates a table and fails the test if unsuccessful
func SimulateOrFail(t testing.TB, rows, columns, categories int, numerical bool, src Source) *Table {
	t.Helper()
	table, err := Simulate(rows, columns, categories, numerical, src)
	if err != nil {
		t.Fatalf("Failed to simulate %dx%d table: %v", rows, columns, err)
	}
	return table
}

// SplitOrFail splits a table and fails the test if unsuccessful
func SplitOrFail(t testing.TB, table *Table, fraction float64) (View, View) {
	t.Helper()
	train, valid, err := SplitTable(table, fraction)
	if err != nil {
		t.Fatalf("Failed to split at %v: %v", fraction, err)
	}
	return train, valid
}

// ConvertOrFail converts a view and fails the test if unsuccessful
func ConvertOrFail(t testing.TB, e Engine, v View) Handle {
	t.Helper()
	h, err := e.Convert(v)
	if err != nil {
		t.Fatalf("Failed to convert %d rows: %v", v.NumRows(), err)
	}
	return h
}

// TrainOrFail trains a model and fails the test if unsuccessful
func TrainOrFail(t testing.TB, e Engine, p Params, train Handle, rounds int, evals []EvalPair) Model {
	t.Helper()
	model, err := e.Train(p, train, rounds, evals)
	if err != nil {
		t.Fatalf("Training failed: %v", err)
	}
	return model
}
