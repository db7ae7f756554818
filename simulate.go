package boostbench

import (
	"math/rand"
	"sync"
	"time"
)

// Source supplies the randomness a simulation consumes. *math/rand.Rand
// satisfies it, so a seeded generator can be injected for reproducible
// runs; nil falls back to the process-wide source.
type Source interface {
	Float32() float32
	Intn(n int) int
}

var (
	srcMu         sync.Mutex
	processSource Source = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// SeedDefault reseeds the process-wide source used when Simulate is
// called with a nil Source.
func SeedDefault(seed int64) {
	srcMu.Lock()
	defer srcMu.Unlock()
	processSource = rand.New(rand.NewSource(seed))
}

func defaultSource() Source {
	srcMu.Lock()
	defer srcMu.Unlock()
	return processSource
}

// LCGSource is a deterministic Source backed by a linear congruential
// generator (LCG parameters from Numerical Recipes). It guarantees the
// same sequence across platforms and Go releases, which seeded
// math/rand does not.
type LCGSource struct {
	state uint64
}

// NewLCGSource creates a deterministic source from a seed.
func NewLCGSource(seed uint64) *LCGSource {
	return &LCGSource{state: seed}
}

func (s *LCGSource) next() uint64 {
	s.state = s.state*1103515245 + 12345
	return s.state
}

// Float32 returns a value in [0, 1). The top 24 state bits are used so
// the result is exact in a float32 mantissa and strictly below 1.
func (s *LCGSource) Float32() float32 {
	return float32(s.next()>>40) / (1 << 24)
}

// Intn returns a value in [0, n). The high state bits are used; low LCG
// bits have short periods.
func (s *LCGSource) Intn(n int) int {
	if n <= 0 {
		panic("boostbench: Intn with non-positive n")
	}
	return int((s.next() >> 32) % uint64(n))
}

// Simulate generates a synthetic sample table of the given shape. Column
// 0 of every row holds a label drawn uniformly from {0, ..., categories-1};
// the remaining columns hold features, drawn uniformly from {0, 1} by
// default or from [0.0, 1.0) when numerical is set. All values are stored
// as float32.
//
// rows and columns must be positive and categories at least 2; src may be
// nil, in which case the process-wide source is used.
//
// Example:
//
//	t, err := boostbench.Simulate(10000, 50, 2, false, rand.New(rand.NewSource(42)))
func Simulate(rows, columns, categories int, numerical bool, src Source) (*Table, error) {
	if rows <= 0 {
		return nil, ErrInvalidRows
	}
	if columns <= 0 {
		return nil, ErrInvalidColumns
	}
	if categories < 2 {
		return nil, ErrInvalidCategories
	}
	if src == nil {
		src = defaultSource()
	}

	t, err := NewTable(rows, columns)
	if err != nil {
		return nil, err
	}
	for i := 0; i < rows; i++ {
		t.SetLabel(i, float32(src.Intn(categories)))
		row := t.FeatureRow(i)
		if numerical {
			for j := range row {
				row[j] = src.Float32()
			}
		} else {
			for j := range row {
				row[j] = float32(src.Intn(2))
			}
		}
	}
	return t, nil
}
