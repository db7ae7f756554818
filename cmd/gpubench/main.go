// Copyright ©2025 The BoostBench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command gpubench simulates a tabular dataset and times boosted
// training on CPU against GPU device configurations
package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/kddorazio/boostbench"
	"github.com/kddorazio/boostbench/engine/refboost"
)

func main() {
	var (
		rows       = flag.Int("rows", 100000, "Synthetic dataset rows")
		columns    = flag.Int("columns", 50, "Feature columns")
		categories = flag.Int("categories", 2, "Label categories")
		numerical  = flag.Bool("numerical", false, "Numerical features in [0,1) instead of 0/1")
		fraction   = flag.Float64("fraction", boostbench.DefaultTrainFraction, "Training fraction")
		rounds     = flag.Int("rounds", boostbench.DefaultRounds, "Boosting rounds")
		device     = flag.String("device", "both", "Device to benchmark: cpu, cuda, or both")
		seed       = flag.Int64("seed", 0, "Random seed; 0 seeds from the clock")
		logDir     = flag.String("logdir", "runlogs", "Run log directory")
		verbose    = flag.Bool("v", false, "Print the per-round evaluation trace")
	)
	flag.Parse()

	fmt.Println("=== BoostBench CPU/GPU Training ===")
	fmt.Printf("Date: %s\n", time.Now().Format(time.RFC3339))
	fmt.Printf("Go Version: %s\n", runtime.Version())
	fmt.Printf("GOARCH: %s\n", runtime.GOARCH)
	fmt.Printf("CPU: %d cores\n", runtime.NumCPU())
	fmt.Println(boostbench.GetCPUInfo())
	fmt.Println("\nDevices:")
	for _, d := range boostbench.Devices() {
		fmt.Printf("  %s\n", d)
	}

	runCPU := *device == "cpu" || *device == "both"
	runCUDA := *device == "cuda" || *device == "both"
	if !runCPU && !runCUDA {
		log.Fatalf("Unknown -device %q (want cpu, cuda, or both)", *device)
	}

	var src boostbench.Source
	if *seed != 0 {
		src = boostbench.NewLCGSource(uint64(*seed))
	}

	fmt.Printf("\nSimulating %d rows x %d columns (%d categories)...\n",
		*rows, *columns, *categories)
	start := time.Now()
	table, err := boostbench.Simulate(*rows, *columns, *categories, *numerical, src)
	if err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}
	fmt.Printf("Simulated in %v\n", time.Since(start).Round(time.Millisecond))

	train, valid, err := boostbench.SplitTable(table, *fraction)
	if err != nil {
		log.Fatalf("Split failed: %v", err)
	}
	fmt.Printf("Split at %.2f: %d training rows, %d validation rows\n",
		*fraction, train.NumRows(), valid.NumRows())

	eng := refboost.New()
	start = time.Now()
	dtrain, err := eng.Convert(train)
	if err != nil {
		log.Fatalf("Converting training rows failed: %v", err)
	}
	dvalid, err := eng.Convert(valid)
	if err != nil {
		log.Fatalf("Converting validation rows failed: %v", err)
	}
	fmt.Printf("Converted for %s in %v\n", eng.Name(), time.Since(start).Round(time.Millisecond))

	base, err := boostbench.ParamsForCategories(*categories)
	if err != nil {
		log.Fatalf("Bad category count: %v", err)
	}
	evals := []boostbench.EvalPair{
		{Handle: dtrain, Name: "train"},
		{Handle: dvalid, Name: "valid"},
	}

	boostbench.SetRunLogDir(*logDir)
	if err := boostbench.InitRunLog("gpubench"); err != nil {
		fmt.Printf("Run logging disabled: %v\n", err)
	}

	var cpuRun, cudaRun boostbench.RunResult
	var cpuModel, cudaModel boostbench.Model
	if runCPU {
		p := base.WithDevice(boostbench.DeviceCPU, 0)
		cpuModel, cpuRun = runDevice(eng, p, dtrain, *rounds, evals, *verbose, *device == "cpu")
	}
	if runCUDA {
		p := base.WithDevice(boostbench.DeviceCUDA, 1)
		cudaModel, cudaRun = runDevice(eng, p, dtrain, *rounds, evals, *verbose, *device == "cuda")
	}

	printSummary(cpuRun, cudaRun)

	if cpuModel != nil && cudaModel != nil && dvalid.Rows() > 0 {
		checkParity(cpuModel, cudaModel, dvalid)
	}

	if logFile, err := boostbench.LatestRunLog(); err == nil {
		fmt.Printf("\nRun log written to %s\n", logFile)
	}
}

// runDevice trains once on the selected device. A failure is fatal only
// when that device was requested explicitly; under -device=both the
// benchmark reports the failure and carries on, the way a GPU-less host
// behaves.
func runDevice(eng boostbench.Engine, p boostbench.Params, dtrain boostbench.Handle,
	rounds int, evals []boostbench.EvalPair, verbose, required bool) (boostbench.Model, boostbench.RunResult) {

	fmt.Printf("\n--- Training on %s ---\n", p.Device)
	model, run, err := boostbench.TimedTrain(eng, p, dtrain, rounds, evals)
	boostbench.LogRun(run)
	if err != nil {
		if required {
			log.Fatalf("%s training failed: %v", p.Device, err)
		}
		fmt.Printf("%s training failed, continuing: %v\n", p.Device, err)
		return nil, run
	}

	if verbose {
		for _, e := range model.History() {
			fmt.Printf("  [%d]\t%s-%s: %.6f\n", e.Round, e.Name, e.Metric, e.Value)
		}
	}
	fmt.Printf("%s: %v (%.0f rows/s)\n", p.Device, run.Duration.Round(time.Millisecond), run.RowsPerSec)
	for _, e := range run.Final {
		fmt.Printf("  final %s-%s: %.6f\n", e.Name, e.Metric, e.Value)
	}
	return model, run
}

func printSummary(runs ...boostbench.RunResult) {
	fmt.Println("\n=== Summary ===")
	fmt.Printf("%-8s %-20s %12s %14s  %s\n", "DEVICE", "ENGINE", "TIME", "ROWS/S", "STATUS")
	var done []boostbench.RunResult
	for _, r := range runs {
		if r.RunID == "" {
			continue
		}
		status := "PASS"
		if r.Status != "pass" {
			status = "FAIL: " + r.Error
		}
		fmt.Printf("%-8s %-20s %12v %14.0f  %s\n",
			r.Device, r.Engine, r.Duration.Round(time.Millisecond), r.RowsPerSec, status)
		if r.Status == "pass" {
			done = append(done, r)
		}
	}
	if len(done) == 2 {
		fmt.Printf("\nSpeedup (%s over %s): %.2fx\n",
			done[1].Device, done[0].Device, boostbench.Speedup(done[0], done[1]))
	}
}

// checkParity compares validation predictions from the two runs.
func checkParity(a, b boostbench.Model, dvalid boostbench.Handle) {
	predsA, err := a.Predict(dvalid)
	if err != nil {
		fmt.Printf("\nParity check skipped: %v\n", err)
		return
	}
	predsB, err := b.Predict(dvalid)
	if err != nil {
		fmt.Printf("\nParity check skipped: %v\n", err)
		return
	}
	res := boostbench.ComparePredictions(predsA, predsB, boostbench.RelaxedTolerance())
	fmt.Printf("\nValidation parity: %s\n", res)
}
