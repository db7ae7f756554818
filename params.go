package boostbench

import (
	"fmt"
	"strconv"
)

// Objective names recognized by engines.
const (
	ObjSquaredError = "reg:squarederror"
	ObjLogistic     = "binary:logistic"
	ObjSoftprob     = "multi:softprob"
)

// Evaluation metric names recognized by engines.
const (
	MetricRMSE     = "rmse"
	MetricError    = "error"
	MetricLogLoss  = "logloss"
	MetricMError   = "merror"
	MetricMLogLoss = "mlogloss"
)

// Params is the validated hyperparameter set handed to an engine. It is
// a plain value: copies are independent and WithDevice returns a
// modified copy, so a device selection made for one run cannot leak
// into a later one.
type Params struct {
	Objective    string     // loss to optimize
	EvalMetric   string     // per-round metric; empty selects DefaultMetric(Objective)
	NumClass     int        // class count, required by multi:* objectives
	LearningRate float32    // shrinkage applied to each boosting update
	MaxDepth     int        // tree depth cap; non-tree engines ignore it
	BaseScore    float32    // global bias before the first round
	Device       DeviceKind // hardware the engine should boost on
	DeviceCount  int        // CUDA devices to use, or CPU worker cap; 0 means all
}

// DefaultParams returns a binary-classification parameter set on the CPU.
func DefaultParams() Params {
	return Params{
		Objective:    ObjLogistic,
		LearningRate: DefaultLearningRate,
		MaxDepth:     DefaultMaxDepth,
		BaseScore:    DefaultBaseScore,
		Device:       DeviceCPU,
	}
}

// ParamsForCategories returns defaults adjusted to a label category
// count: binary logistic for two categories, softmax probabilities with
// NumClass set for more.
func ParamsForCategories(categories int) (Params, error) {
	if categories < 2 {
		return Params{}, ErrInvalidCategories
	}
	p := DefaultParams()
	if categories > 2 {
		p.Objective = ObjSoftprob
		p.NumClass = categories
	}
	return p, nil
}

// WithDevice returns a copy of p that selects the given device kind and
// count. The receiver is unchanged.
func (p Params) WithDevice(kind DeviceKind, count int) Params {
	p.Device = kind
	p.DeviceCount = count
	return p
}

// DefaultMetric returns the evaluation metric an objective implies when
// none is configured.
func DefaultMetric(objective string) string {
	switch objective {
	case ObjSquaredError:
		return MetricRMSE
	case ObjLogistic:
		return MetricLogLoss
	case ObjSoftprob:
		return MetricMLogLoss
	}
	return ""
}

// Metric returns the metric a run evaluates: EvalMetric when set,
// otherwise the objective's default.
func (p Params) Metric() string {
	if p.EvalMetric != "" {
		return p.EvalMetric
	}
	return DefaultMetric(p.Objective)
}

// Outputs returns the number of prediction outputs per row: NumClass
// for multi:softprob, otherwise 1.
func (p Params) Outputs() int {
	if p.Objective == ObjSoftprob {
		return p.NumClass
	}
	return 1
}

// Validate checks every field and returns an invalid argument error for
// the first violation. A zero Params is invalid; start from
// DefaultParams or ParamsForCategories.
func (p Params) Validate() error {
	switch p.Objective {
	case ObjSquaredError, ObjLogistic:
	case ObjSoftprob:
		if p.NumClass < 2 {
			return NewInvalidArgError("Params.Validate",
				"multi:softprob requires NumClass of at least 2")
		}
	case "":
		return NewInvalidArgError("Params.Validate", "objective must be set")
	default:
		return NewInvalidArgError("Params.Validate",
			fmt.Sprintf("unknown objective %q", p.Objective))
	}

	if p.EvalMetric != "" {
		if !metricMatchesObjective(p.EvalMetric, p.Objective) {
			return NewInvalidArgError("Params.Validate",
				fmt.Sprintf("eval metric %q does not apply to objective %q",
					p.EvalMetric, p.Objective))
		}
	}

	if !(p.LearningRate > 0) {
		return NewInvalidArgError("Params.Validate", "learning rate must be positive")
	}
	if p.Objective == ObjLogistic && (p.BaseScore <= 0 || p.BaseScore >= 1) {
		return NewInvalidArgError("Params.Validate",
			"base score must be in (0, 1) for binary:logistic")
	}
	if p.MaxDepth < 0 {
		return NewInvalidArgError("Params.Validate", "max depth must not be negative")
	}
	if p.DeviceCount < 0 {
		return NewInvalidArgError("Params.Validate", "device count must not be negative")
	}

	switch p.Device {
	case DeviceCPU, DeviceCUDA:
	default:
		return NewInvalidArgError("Params.Validate",
			fmt.Sprintf("unknown device kind %d", p.Device))
	}
	return nil
}

func metricMatchesObjective(metric, objective string) bool {
	switch objective {
	case ObjSquaredError:
		return metric == MetricRMSE
	case ObjLogistic:
		return metric == MetricLogLoss || metric == MetricError
	case ObjSoftprob:
		return metric == MetricMLogLoss || metric == MetricMError
	}
	return false
}

// Map renders the flat string mapping external engine bindings consume.
// A fresh map is built on every call; mutating it does not touch p.
func (p Params) Map() map[string]string {
	m := map[string]string{
		"objective":     p.Objective,
		"eval_metric":   p.Metric(),
		"device":        p.Device.String(),
		"device_count":  strconv.Itoa(p.DeviceCount),
		"learning_rate": strconv.FormatFloat(float64(p.LearningRate), 'g', -1, 32),
		"max_depth":     strconv.Itoa(p.MaxDepth),
		"base_score":    strconv.FormatFloat(float64(p.BaseScore), 'g', -1, 32),
	}
	if p.NumClass > 0 {
		m["num_class"] = strconv.Itoa(p.NumClass)
	}
	return m
}
