package boostbench

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// classOf rounds a stored float32 label to its integer class.
func classOf(label float32) int {
	return int(label + 0.5)
}

// clampProb keeps a probability inside (0, 1) before a logarithm.
func clampProb(p float64) float64 {
	if p < ProbEpsilon {
		return ProbEpsilon
	}
	if p > 1-ProbEpsilon {
		return 1 - ProbEpsilon
	}
	return p
}

// EvalMetric computes the named metric over row-major predictions.
// outputs is the number of prediction values per row (Params.Outputs):
// 1 for regression and binary objectives, the class count for
// multi:softprob. labels holds one target per row.
func EvalMetric(name string, preds, labels []float32, outputs int) (float64, error) {
	n := len(labels)
	if n == 0 {
		return 0, NewInvalidArgError("EvalMetric", "no rows to evaluate")
	}
	if outputs < 1 {
		return 0, NewInvalidArgError("EvalMetric", "outputs must be positive")
	}
	if len(preds) != n*outputs {
		return 0, NewInvalidArgError("EvalMetric",
			fmt.Sprintf("%d predictions do not cover %d rows with %d outputs",
				len(preds), n, outputs))
	}

	switch name {
	case MetricRMSE:
		if outputs != 1 {
			return 0, NewInvalidArgError("EvalMetric", "rmse expects one output per row")
		}
		return rmse(preds, labels), nil
	case MetricError:
		if outputs != 1 {
			return 0, NewInvalidArgError("EvalMetric", "error expects one output per row")
		}
		return errorRate(preds, labels), nil
	case MetricLogLoss:
		if outputs != 1 {
			return 0, NewInvalidArgError("EvalMetric", "logloss expects one output per row")
		}
		return logLoss(preds, labels), nil
	case MetricMError:
		if outputs < 2 {
			return 0, NewInvalidArgError("EvalMetric", "merror expects at least two outputs per row")
		}
		return multiErrorRate(preds, labels, outputs)
	case MetricMLogLoss:
		if outputs < 2 {
			return 0, NewInvalidArgError("EvalMetric", "mlogloss expects at least two outputs per row")
		}
		return multiLogLoss(preds, labels, outputs)
	}
	return 0, NewInvalidArgError("EvalMetric", fmt.Sprintf("unknown metric %q", name))
}

// rmse is the root mean squared error of one prediction per row.
func rmse(preds, labels []float32) float64 {
	se := make([]float64, len(preds))
	for i, p := range preds {
		d := float64(p) - float64(labels[i])
		se[i] = d * d
	}
	return math.Sqrt(floats.Sum(se) / float64(len(se)))
}

// errorRate is the binary misclassification rate at a 0.5 threshold.
func errorRate(preds, labels []float32) float64 {
	wrong := 0
	for i, p := range preds {
		predicted := 0
		if p >= 0.5 {
			predicted = 1
		}
		if predicted != classOf(labels[i]) {
			wrong++
		}
	}
	return float64(wrong) / float64(len(preds))
}

// logLoss is the negative log likelihood of binary probabilities.
func logLoss(preds, labels []float32) float64 {
	ll := make([]float64, len(preds))
	for i, p := range preds {
		q := clampProb(float64(p))
		if classOf(labels[i]) == 1 {
			ll[i] = -math.Log(q)
		} else {
			ll[i] = -math.Log(1 - q)
		}
	}
	return floats.Sum(ll) / float64(len(ll))
}

// multiErrorRate is the misclassification rate of per-row argmax over
// class probabilities. Ties resolve to the first maximal class.
func multiErrorRate(preds, labels []float32, outputs int) (float64, error) {
	row := make([]float64, outputs)
	wrong := 0
	for i := range labels {
		k := classOf(labels[i])
		if k < 0 || k >= outputs {
			return 0, NewInvalidArgError("EvalMetric",
				fmt.Sprintf("label %v outside [0, %d)", labels[i], outputs))
		}
		for j := 0; j < outputs; j++ {
			row[j] = float64(preds[i*outputs+j])
		}
		if floats.MaxIdx(row) != k {
			wrong++
		}
	}
	return float64(wrong) / float64(len(labels)), nil
}

// multiLogLoss is the negative log likelihood of the true class under
// per-row class probabilities.
func multiLogLoss(preds, labels []float32, outputs int) (float64, error) {
	ll := make([]float64, len(labels))
	for i := range labels {
		k := classOf(labels[i])
		if k < 0 || k >= outputs {
			return 0, NewInvalidArgError("EvalMetric",
				fmt.Sprintf("label %v outside [0, %d)", labels[i], outputs))
		}
		ll[i] = -math.Log(clampProb(float64(preds[i*outputs+k])))
	}
	return floats.Sum(ll) / float64(len(labels)), nil
}
