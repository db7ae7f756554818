package boostbench

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// RunLogger manages logging of training run results to file
type RunLogger struct {
	mu          sync.Mutex
	results     []RunResult
	logDir      string
	sessionFile string
}

var globalRunLog = &RunLogger{
	logDir: "runlogs",
}

// SetRunLogDir points the run logger at a directory. Call it before
// InitRunLog; the default is "runlogs".
func SetRunLogDir(dir string) {
	globalRunLog.mu.Lock()
	defer globalRunLog.mu.Unlock()
	globalRunLog.logDir = dir
}

// InitRunLog initializes the logger for a new session
func InitRunLog(sessionName string) error {
	globalRunLog.mu.Lock()
	defer globalRunLog.mu.Unlock()

	// Create log directory if it doesn't exist
	if err := os.MkdirAll(globalRunLog.logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	// Create session file name with timestamp
	timestamp := time.Now().Format("20060102_150405")
	globalRunLog.sessionFile = filepath.Join(globalRunLog.logDir,
		fmt.Sprintf("%s_%s.json", sessionName, timestamp))

	// Reset results for new session
	globalRunLog.results = nil

	// Write initial file
	return globalRunLog.flush()
}

// LogRun logs a single run result
func LogRun(result RunResult) {
	globalRunLog.mu.Lock()
	defer globalRunLog.mu.Unlock()

	if result.Timestamp.IsZero() {
		result.Timestamp = time.Now()
	}
	globalRunLog.results = append(globalRunLog.results, result)

	// Flush to disk immediately to avoid losing data on crash
	globalRunLog.flush()
}

// flush writes results to disk
func (rl *RunLogger) flush() error {
	if rl.sessionFile == "" {
		return nil // Not initialized
	}

	data, err := json.MarshalIndent(rl.results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	return os.WriteFile(rl.sessionFile, data, 0644)
}

// LatestRunLog returns the path to the most recent log file
func LatestRunLog() (string, error) {
	files, err := filepath.Glob(filepath.Join(globalRunLog.logDir, "*.json"))
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no log files found")
	}

	// Sort by modification time to get latest
	var latest string
	var latestTime time.Time
	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latest = file
			latestTime = info.ModTime()
		}
	}

	return latest, nil
}

// PrintRunSummary prints a summary of the latest session
func PrintRunSummary() error {
	logFile, err := LatestRunLog()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		return err
	}

	var results []RunResult
	if err := json.Unmarshal(data, &results); err != nil {
		return err
	}

	fmt.Printf("\nRun Summary from %s:\n", filepath.Base(logFile))
	fmt.Println(strings.Repeat("=", 62))

	passed, failed := 0, 0
	for _, r := range results {
		label := fmt.Sprintf("%s/%s", r.Engine, r.Device)
		switch r.Status {
		case "pass":
			passed++
			fmt.Printf("✓ %-32s %12v", label, r.Duration.Round(time.Millisecond))
			if r.RowsPerSec > 0 {
				fmt.Printf(" %14.0f rows/s", r.RowsPerSec)
			}
			fmt.Println()
		case "fail":
			failed++
			fmt.Printf("✗ %-32s FAILED: %s\n", label, r.Error)
		}
	}

	fmt.Println(strings.Repeat("=", 62))
	fmt.Printf("Total: %d | Passed: %d | Failed: %d\n",
		len(results), passed, failed)

	return nil
}
