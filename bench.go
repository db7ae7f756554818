package boostbench

import (
	"time"

	"github.com/google/uuid"
)

// RunResult captures the result of a single timed training run
type RunResult struct {
	RunID      string        `json:"run_id"`
	Engine     string        `json:"engine"`
	Device     string        `json:"device"`
	Status     string        `json:"status"` // "pass" or "fail"
	Rows       int           `json:"rows,omitempty"`
	Features   int           `json:"features,omitempty"`
	Rounds     int           `json:"rounds"`
	Duration   time.Duration `json:"duration,omitempty"`
	RowsPerSec float64       `json:"rows_per_sec,omitempty"`
	Final      []RoundEval   `json:"final_evals,omitempty"`
	Error      string        `json:"error,omitempty"`
	Timestamp  time.Time     `json:"timestamp"`
}

// TimedTrain runs Engine.Train under a wall clock and fills a RunResult
// for reports and the run log. The trained model and the engine's error
// pass through unchanged; a failed run yields a result with status
// "fail" and the error text, so a device that cannot train still shows
// up in the report.
func TimedTrain(e Engine, p Params, train Handle, rounds int, evals []EvalPair) (Model, RunResult, error) {
	r := RunResult{
		RunID:     uuid.NewString(),
		Engine:    e.Name(),
		Device:    p.Device.String(),
		Rounds:    rounds,
		Timestamp: time.Now(),
	}
	if train != nil {
		r.Rows = train.Rows()
		r.Features = train.Cols()
	}

	start := time.Now()
	model, err := e.Train(p, train, rounds, evals)
	r.Duration = time.Since(start)

	if err != nil {
		r.Status = "fail"
		r.Error = err.Error()
		return nil, r, err
	}

	r.Status = "pass"
	if secs := r.Duration.Seconds(); secs > 0 && r.Rows > 0 {
		r.RowsPerSec = float64(r.Rows) * float64(rounds) / secs
	}
	r.Final = FinalEvals(model.History())
	return model, r, nil
}

// Speedup reports how many times faster other ran than base, e.g.
// Speedup(cpuRun, gpuRun) is the factor the GPU won by. Zero when
// either duration is missing.
func Speedup(base, other RunResult) float64 {
	if base.Duration <= 0 || other.Duration <= 0 {
		return 0
	}
	return float64(base.Duration) / float64(other.Duration)
}
