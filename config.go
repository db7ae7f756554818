// Package boostbench configuration constants
package boostbench

// Dataset defaults
const (
	// Default fraction of rows assigned to the training partition
	DefaultTrainFraction = 0.8

	// Default number of label categories for simulated data
	DefaultCategories = 2

	// Default seed for the package-level deterministic source
	DefaultSeed = 12345
)

// Training defaults
const (
	// Default number of boosting rounds
	DefaultRounds = 10

	// Default shrinkage applied to each boosting update
	DefaultLearningRate = 0.3

	// Default maximum tree depth advertised to engines
	DefaultMaxDepth = 6

	// Default global bias before the first boosting round
	DefaultBaseScore = 0.5
)

// Executor parameters
const (
	// Minimum rows per chunk in a parallel row sweep; below this a
	// sweep runs on a single worker
	MinChunkRows = 1024

	// Task queue depth multiplier per worker
	WorkerQueueDepth = 2
)

// Numerical constants
const (
	// Machine epsilon for float32
	Float32Epsilon = 1.192092896e-07

	// Probability floor used when clamping before taking logarithms
	ProbEpsilon = 1e-7

	// Maximum ULP difference for float32 comparisons
	MaxULPDiff = 4
)
