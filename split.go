package boostbench

import (
	"math"
)

// SplitTable partitions a table into a training prefix and a validation
// suffix. The split index is floor(rows * fraction); rows keep their
// order and every row lands in exactly one partition. An empty partition
// is legal: fraction values close to the ends of (0, 1) can leave zero
// rows on one side.
//
// fraction must lie strictly inside (0, 1). The same table and fraction
// always produce the same partition.
func SplitTable(t *Table, fraction float64) (train, valid View, err error) {
	if t == nil {
		return View{}, View{}, NewInvalidArgError("SplitTable", "nil table")
	}
	if math.IsNaN(fraction) || fraction <= 0 || fraction >= 1 {
		return View{}, View{}, ErrInvalidFraction
	}
	idx := int(math.Floor(float64(t.rows) * fraction))
	if idx > t.rows {
		idx = t.rows
	}
	return View{t: t, lo: 0, hi: idx}, View{t: t, lo: idx, hi: t.rows}, nil
}
