// Copyright ©2025 The BoostBench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package boostbench generates synthetic tabular datasets and times
// gradient-boosted training on CPU against GPU device configurations.
//
// The package covers the full demonstration pipeline: a seedable
// simulator producing a float32 sample table (label in column 0), an
// order-preserving train/validation splitter, a validated
// hyperparameter set that renders to the flat mapping engine bindings
// consume, and an Engine interface through which data is converted to
// opaque matrix handles and boosted for a fixed number of rounds.
// Timing, per-round metric traces, JSON run logs, and float32 parity
// checks between device runs round out the benchmark surface.
//
// Engines are external collaborators; the bundled refboost engine is a
// reference linear booster kept simple enough to trust, so the pipeline
// can run end to end without native bindings.
//
//	table, _ := boostbench.Simulate(100000, 50, 2, false, nil)
//	train, valid, _ := boostbench.SplitTable(table, 0.8)
//
//	eng := refboost.New()
//	dtrain, _ := eng.Convert(train)
//	dvalid, _ := eng.Convert(valid)
//
//	p := boostbench.DefaultParams()
//	model, run, _ := boostbench.TimedTrain(eng, p, dtrain, 10,
//		[]boostbench.EvalPair{{Handle: dvalid, Name: "valid"}})
package boostbench
