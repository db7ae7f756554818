package boostbench

// Handle is an opaque reference to data already converted into an
// engine's native matrix format. Only the shape is observable; the
// contents belong to the engine that produced it.
type Handle interface {
	Rows() int
	Cols() int
}

// EvalPair names a handle whose metric is reported after every boosting
// round. Pairs are evaluated in the order given.
type EvalPair struct {
	Handle Handle
	Name   string
}

// RoundEval is one metric observation: the value of Metric on the named
// eval pair after boosting round Round (0-based).
type RoundEval struct {
	Round  int     `json:"round"`
	Name   string  `json:"name"`
	Metric string  `json:"metric"`
	Value  float64 `json:"value"`
}

// Model is a trained booster. Predict returns row-major outputs: one
// value per row for regression and binary objectives, NumClass values
// per row for multi:softprob. History returns the per-round metric
// trace recorded during training.
type Model interface {
	Predict(h Handle) ([]float32, error)
	History() []RoundEval
}

// Engine is a gradient-boosting implementation. Convert packages a
// view's features and labels into the engine's native format and
// returns an opaque handle; Train runs a fixed number of boosting
// rounds against a training handle and evaluates the configured metric
// on every eval pair after each round.
//
// Errors from Convert and Train reach the caller unchanged; nothing in
// this package retries or rewrites them.
type Engine interface {
	Name() string
	Convert(v View) (Handle, error)
	Train(p Params, train Handle, rounds int, evals []EvalPair) (Model, error)
}

// FinalEvals filters a training history down to the entries of its last
// round, in recorded order.
func FinalEvals(history []RoundEval) []RoundEval {
	if len(history) == 0 {
		return nil
	}
	last := history[len(history)-1].Round
	var out []RoundEval
	for _, e := range history {
		if e.Round == last {
			out = append(out, e)
		}
	}
	return out
}
