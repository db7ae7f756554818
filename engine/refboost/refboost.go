// Copyright ©2025 The BoostBench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package refboost implements a reference gradient-boosting engine.
//
// It is a linear booster: every round it computes loss gradients over
// all rows and folds a damped Newton update into per-class weight
// vectors. There are no trees and no histogram binning; the point is a
// small, obviously correct engine the surrounding pipeline, timing
// harness, and tests can trust end to end.
//
// Whatever device the parameters select, execution happens on host
// cores. Selecting cuda exercises the same device resolution and
// configuration path a native engine binding would use, and fails the
// same way when no GPU is present.
package refboost

import (
	"math"
	"runtime"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"

	"github.com/kddorazio/boostbench"
)

// l2Penalty is the ridge term added to every Hessian sum before a
// weight update. It keeps updates finite on constant feature columns.
const l2Penalty = 1.0

// Engine is a reference linear-booster engine. The zero value is not
// usable; call New. An Engine holds no per-run state and is safe for
// concurrent Train calls.
type Engine struct{}

// New creates a reference engine.
func New() *Engine {
	return &Engine{}
}

// Name identifies the engine in run reports.
func (e *Engine) Name() string {
	return "refboost-linear"
}

// matrix is the engine's native data format: the feature block as a
// dense tensor plus the label vector. It is the opaque handle callers
// get back from Convert.
type matrix struct {
	rows, cols int
	feats      *tensor.Dense
	labels     []float32
}

func (m *matrix) Rows() int { return m.rows }
func (m *matrix) Cols() int { return m.cols }

func (m *matrix) featureData() []float32 {
	if m.feats == nil {
		return nil
	}
	return m.feats.Data().([]float32)
}

// Convert copies a view's features and labels into the engine's native
// format. The returned handle is independent of the table backing the
// view. An empty view converts to an empty handle, which trains as an
// error but evaluates as a skipped pair.
func (e *Engine) Convert(v boostbench.View) (boostbench.Handle, error) {
	rows, cols := v.NumRows(), v.NumFeatures()
	m := &matrix{rows: rows, cols: cols, labels: v.Labels()}
	if rows > 0 {
		backing := make([]float32, rows*cols)
		for i := 0; i < rows; i++ {
			copy(backing[i*cols:(i+1)*cols], v.FeatureRow(i))
		}
		m.feats = tensor.New(tensor.WithShape(rows, cols), tensor.WithBacking(backing))
	}
	return m, nil
}

// Train runs the boosting loop: rounds damped Newton updates on the
// training handle, evaluating every eval pair after each round with the
// configured metric. Empty eval pairs are skipped; an empty training
// handle is an error. Errors are returned unchanged to the caller.
func (e *Engine) Train(p boostbench.Params, train boostbench.Handle, rounds int, evals []boostbench.EvalPair) (boostbench.Model, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if rounds <= 0 {
		return nil, boostbench.NewInvalidArgError("Train", "rounds must be positive")
	}
	if train == nil {
		return nil, errors.New("refboost: nil training handle")
	}
	dm, ok := train.(*matrix)
	if !ok {
		return nil, errors.Errorf("refboost: foreign training handle %T", train)
	}
	if dm.rows == 0 {
		return nil, boostbench.NewTrainingError("Train", "empty training matrix", nil)
	}
	if err := checkLabels(dm, p); err != nil {
		return nil, err
	}

	dev, err := boostbench.DeviceByKind(p.Device)
	if err != nil {
		return nil, err
	}

	pairs := make([]*matrix, len(evals))
	for i, ev := range evals {
		if ev.Handle == nil {
			return nil, errors.Errorf("refboost: nil handle for eval pair %q", ev.Name)
		}
		em, ok := ev.Handle.(*matrix)
		if !ok {
			return nil, errors.Errorf("refboost: foreign handle %T for eval pair %q", ev.Handle, ev.Name)
		}
		if em.rows > 0 && em.cols != dm.cols {
			return nil, errors.Errorf("refboost: eval pair %q has %d features, training data has %d",
				ev.Name, em.cols, dm.cols)
		}
		pairs[i] = em
	}

	tr := newTrainer(p, dm.cols)
	pool := boostbench.NewWorkerPool(sweepWorkers(dev, p.DeviceCount))
	defer pool.Close()

	metric := p.Metric()
	var history []boostbench.RoundEval
	for round := 0; round < rounds; round++ {
		tr.boostRound(pool, dm)

		for i, em := range pairs {
			if em.rows == 0 {
				continue
			}
			preds := make([]float32, em.rows*tr.k)
			pool.Sweep(em.rows, func(chunk, lo, hi int) {
				tr.predictRange(em, preds, lo, hi)
			})
			v, err := boostbench.EvalMetric(metric, preds, em.labels, tr.k)
			if err != nil {
				return nil, errors.Wrapf(err, "refboost: evaluating %q at round %d", evals[i].Name, round)
			}
			history = append(history, boostbench.RoundEval{
				Round:  round,
				Name:   evals[i].Name,
				Metric: metric,
				Value:  v,
			})
		}
	}

	return &model{
		p:       p,
		k:       tr.k,
		cols:    tr.cols,
		weights: tr.weights,
		bias:    tr.bias,
		history: history,
	}, nil
}

// sweepWorkers sizes the row-sweep pool for a resolved device. The
// device count caps CPU parallelism; zero means all cores.
func sweepWorkers(dev boostbench.Device, deviceCount int) int {
	w := runtime.NumCPU()
	if dev.Kind == boostbench.DeviceCPU && dev.MaxThreads > 0 && dev.MaxThreads < w {
		w = dev.MaxThreads
	}
	if dev.Kind == boostbench.DeviceCPU && deviceCount > 0 && deviceCount < w {
		w = deviceCount
	}
	return w
}

// checkLabels verifies the training labels fit the objective's class
// range before any work starts.
func checkLabels(dm *matrix, p boostbench.Params) error {
	var limit int
	switch p.Objective {
	case boostbench.ObjLogistic:
		limit = 2
	case boostbench.ObjSoftprob:
		limit = p.NumClass
	default:
		return nil
	}
	for _, l := range dm.labels {
		if c := int(l + 0.5); c < 0 || c >= limit {
			return boostbench.NewTrainingError("Train",
				errors.Errorf("label %v outside [0, %d)", l, limit).Error(), nil)
		}
	}
	return nil
}

// trainer carries the boosting state for one Train call.
type trainer struct {
	p       boostbench.Params
	k       int // outputs per row
	cols    int
	weights []float32 // k rows of cols feature weights
	bias    []float32 // k bias terms
}

func newTrainer(p boostbench.Params, cols int) *trainer {
	k := p.Outputs()
	tr := &trainer{
		p:       p,
		k:       k,
		cols:    cols,
		weights: make([]float32, k*cols),
		bias:    make([]float32, k),
	}
	base := baseMargin(p)
	for c := range tr.bias {
		tr.bias[c] = base
	}
	return tr
}

// baseMargin translates the configured base score into margin space.
func baseMargin(p boostbench.Params) float32 {
	switch p.Objective {
	case boostbench.ObjSquaredError:
		return p.BaseScore
	case boostbench.ObjLogistic:
		v := float64(p.BaseScore)
		return float32(math.Log(v / (1 - v)))
	default:
		return 0
	}
}

// boostRound accumulates gradient and Hessian sums over all rows in
// parallel chunks, then applies one damped Newton update to the weights
// and biases. Chunk partials are reduced in chunk order, so a fixed
// worker count gives bit-identical results.
func (tr *trainer) boostRound(pool *boostbench.WorkerPool, dm *matrix) {
	stride := tr.cols + 1 // feature weights plus a bias column
	chunks := boostbench.ChunkCount(dm.rows, pool.Workers())
	gradSums := make([][]float64, chunks)
	hessSums := make([][]float64, chunks)

	pool.Sweep(dm.rows, func(chunk, lo, hi int) {
		g := make([]float64, tr.k*stride)
		h := make([]float64, tr.k*stride)
		tr.accumulate(dm, g, h, lo, hi)
		gradSums[chunk] = g
		hessSums[chunk] = h
	})

	grad := gradSums[0]
	hess := hessSums[0]
	for c := 1; c < chunks; c++ {
		for i := range grad {
			grad[i] += gradSums[c][i]
			hess[i] += hessSums[c][i]
		}
	}

	lr := float64(tr.p.LearningRate)
	for c := 0; c < tr.k; c++ {
		for j := 0; j < tr.cols; j++ {
			idx := c*stride + j
			tr.weights[c*tr.cols+j] -= float32(lr * grad[idx] / (hess[idx] + l2Penalty))
		}
		idx := c*stride + tr.cols
		tr.bias[c] -= float32(lr * grad[idx] / (hess[idx] + l2Penalty))
	}
}

// accumulate adds the gradient and Hessian contributions of rows
// [lo, hi) to g and h, both laid out as k blocks of cols+1 values with
// the bias column last.
func (tr *trainer) accumulate(dm *matrix, g, h []float64, lo, hi int) {
	feats := dm.featureData()
	stride := tr.cols + 1
	outs := make([]float64, tr.k)

	for i := lo; i < hi; i++ {
		x := feats[i*tr.cols : (i+1)*tr.cols]
		tr.rowOutputs(x, outs)

		y := dm.labels[i]
		for c := 0; c < tr.k; c++ {
			var gr, hs float64
			switch tr.p.Objective {
			case boostbench.ObjSquaredError:
				gr = outs[c] - float64(y)
				hs = 1
			case boostbench.ObjLogistic:
				target := 0.0
				if int(y+0.5) == 1 {
					target = 1
				}
				gr = outs[c] - target
				hs = outs[c] * (1 - outs[c])
			case boostbench.ObjSoftprob:
				target := 0.0
				if int(y+0.5) == c {
					target = 1
				}
				gr = outs[c] - target
				hs = outs[c] * (1 - outs[c])
			}

			base := c * stride
			for j, xv := range x {
				xf := float64(xv)
				g[base+j] += gr * xf
				h[base+j] += hs * xf * xf
			}
			g[base+tr.cols] += gr
			h[base+tr.cols] += hs
		}
	}
}

// rowOutputs computes the transformed outputs of one feature row under
// the current weights: raw margin for regression, a probability for
// logistic, softmax probabilities for softprob.
func (tr *trainer) rowOutputs(x []float32, outs []float64) {
	for c := 0; c < tr.k; c++ {
		wrow := tr.weights[c*tr.cols : (c+1)*tr.cols]
		m := tr.bias[c]
		for j, xv := range x {
			m += wrow[j] * xv
		}
		outs[c] = float64(m)
	}

	switch tr.p.Objective {
	case boostbench.ObjLogistic:
		outs[0] = 1 / (1 + math.Exp(-outs[0]))
	case boostbench.ObjSoftprob:
		maxm := outs[0]
		for _, m := range outs[1:] {
			if m > maxm {
				maxm = m
			}
		}
		var sum float64
		for c := range outs {
			outs[c] = math.Exp(outs[c] - maxm)
			sum += outs[c]
		}
		for c := range outs {
			outs[c] /= sum
		}
	}
}

// predictRange writes transformed predictions for rows [lo, hi) of dm
// into out, which must hold rows*k values.
func (tr *trainer) predictRange(dm *matrix, out []float32, lo, hi int) {
	feats := dm.featureData()
	outs := make([]float64, tr.k)
	for i := lo; i < hi; i++ {
		x := feats[i*tr.cols : (i+1)*tr.cols]
		tr.rowOutputs(x, outs)
		for c := 0; c < tr.k; c++ {
			out[i*tr.k+c] = float32(outs[c])
		}
	}
}

// model is a trained linear booster.
type model struct {
	p       boostbench.Params
	k, cols int
	weights []float32
	bias    []float32
	history []boostbench.RoundEval
}

// Predict returns row-major transformed predictions for every row of
// the handle: probabilities for classification objectives, raw values
// for regression. An empty handle predicts an empty slice.
func (m *model) Predict(h boostbench.Handle) ([]float32, error) {
	if h == nil {
		return nil, errors.New("refboost: nil handle")
	}
	dm, ok := h.(*matrix)
	if !ok {
		return nil, errors.Errorf("refboost: foreign handle %T", h)
	}
	if dm.rows == 0 {
		return []float32{}, nil
	}
	if dm.cols != m.cols {
		return nil, errors.Errorf("refboost: handle has %d features, model expects %d", dm.cols, m.cols)
	}

	tr := &trainer{p: m.p, k: m.k, cols: m.cols, weights: m.weights, bias: m.bias}
	out := make([]float32, dm.rows*m.k)
	boostbench.ParallelRows(dm.rows, runtime.NumCPU(), func(lo, hi int) {
		tr.predictRange(dm, out, lo, hi)
	})
	return out, nil
}

// History returns the per-round metric trace recorded during training.
func (m *model) History() []boostbench.RoundEval {
	return m.history
}
