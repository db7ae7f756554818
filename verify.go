// Package boostbench tolerance-based parity checks between device runs
package boostbench

import (
	"fmt"
	"math"
)

// Tolerance defines the thresholds for comparing float32 predictions
type Tolerance struct {
	// AbsTol is the absolute tolerance for values near zero
	AbsTol float32

	// RelTol is the relative tolerance as a fraction of the larger value
	RelTol float32

	// ULPTol is the maximum allowed difference in ULPs (Units in Last Place)
	ULPTol int
}

// DefaultTolerance returns thresholds suited to same-precision runs
func DefaultTolerance() Tolerance {
	return Tolerance{
		AbsTol: 1e-7,
		RelTol: 1e-5,
		ULPTol: MaxULPDiff,
	}
}

// RelaxedTolerance returns thresholds suited to cross-device runs,
// where reduction order differs between implementations
func RelaxedTolerance() Tolerance {
	return Tolerance{
		AbsTol: 1e-5,
		RelTol: 1e-3,
		ULPTol: 16,
	}
}

// Float32NearEqual checks if two float32 values are equal within tolerance
func Float32NearEqual(a, b float32, tol Tolerance) bool {
	if math.IsNaN(float64(a)) && math.IsNaN(float64(b)) {
		return true
	}
	if math.IsInf(float64(a), 1) && math.IsInf(float64(b), 1) {
		return true
	}
	if math.IsInf(float64(a), -1) && math.IsInf(float64(b), -1) {
		return true
	}

	// Exactly equal handles ±0
	if a == b {
		return true
	}

	diff := math.Abs(float64(a - b))
	if diff <= float64(tol.AbsTol) {
		return true
	}

	larger := math.Max(math.Abs(float64(a)), math.Abs(float64(b)))
	if diff <= larger*float64(tol.RelTol) {
		return true
	}

	if tol.ULPTol > 0 && Float32ULPDiff(a, b) <= tol.ULPTol {
		return true
	}

	return false
}

// Float32ULPDiff computes the difference in ULPs between two float32 values
func Float32ULPDiff(a, b float32) int {
	aBits := math.Float32bits(a)
	bBits := math.Float32bits(b)

	// Different signs cannot be compared by bit distance
	if (aBits^bBits)&0x80000000 != 0 {
		return math.MaxInt32
	}

	if aBits > bBits {
		return int(aBits - bBits)
	}
	return int(bBits - aBits)
}

// ParityResult reports how two prediction vectors compare
type ParityResult struct {
	MaxAbsError float32
	MaxRelError float32
	MaxULPError int
	NumErrors   int
	TotalItems  int
	FirstError  int // Index of first error, -1 if none
}

// ComparePredictions compares two prediction vectors element-wise and
// returns detailed results. A length mismatch marks every element as
// differing.
func ComparePredictions(want, got []float32, tol Tolerance) ParityResult {
	result := ParityResult{
		TotalItems: len(want),
		FirstError: -1,
	}

	if len(want) != len(got) {
		result.NumErrors = len(want)
		return result
	}

	for i := range want {
		if Float32NearEqual(want[i], got[i], tol) {
			continue
		}
		result.NumErrors++
		if result.FirstError == -1 {
			result.FirstError = i
		}

		absDiff := float32(math.Abs(float64(want[i] - got[i])))
		if absDiff > result.MaxAbsError {
			result.MaxAbsError = absDiff
		}

		if want[i] != 0 {
			relDiff := absDiff / float32(math.Abs(float64(want[i])))
			if relDiff > result.MaxRelError {
				result.MaxRelError = relDiff
			}
		}

		ulpDiff := Float32ULPDiff(want[i], got[i])
		if ulpDiff > result.MaxULPError {
			result.MaxULPError = ulpDiff
		}
	}

	return result
}

// Passed reports whether every element matched within tolerance
func (r ParityResult) Passed() bool {
	return r.NumErrors == 0
}

// String formats the parity result for display
func (r ParityResult) String() string {
	if r.NumErrors == 0 {
		return "PASS: All predictions match within tolerance"
	}

	errorRate := float64(r.NumErrors) / float64(r.TotalItems) * 100
	return fmt.Sprintf("FAIL: %d/%d predictions differ (%.2f%%)\n"+
		"  Max absolute error: %e\n"+
		"  Max relative error: %e\n"+
		"  Max ULP difference: %d\n"+
		"  First error at index: %d",
		r.NumErrors, r.TotalItems, errorRate,
		r.MaxAbsError, r.MaxRelError, r.MaxULPError,
		r.FirstError)
}
