// Package main provides a performance benchmarking tool for the Wordboard CLI.
// It generates synthetic score snapshots of increasing size, measures execution
// times of the leaderboard and time series commands against each one, running
// each test multiple times, treating the first successful cached run as cold and
// averaging the rest as warm, and writes a CSV summary.
//
// Prerequisites:
// - wordboard binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for generated snapshots (default: a temporary directory)
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/wordboard/schema"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Snapshot    string
	Command     string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// SnapshotSpec describes one synthetic snapshot.
type SnapshotSpec struct {
	Name    string
	Players int
	Days    int
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir     string
	Timeout     time.Duration
	NoCacheRuns int
	CacheRuns   int
	Snapshots   []SnapshotSpec
}

func main() {
	workDir := ""
	switch len(os.Args) {
	case 1:
		dir, err := os.MkdirTemp("", "wordboard-bench-")
		if err != nil {
			fmt.Printf("Failed to create work dir: %v\n", err)
			os.Exit(1)
		}
		workDir = dir
	case 2:
		workDir = os.Args[1]
	default:
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:     workDir,
		Timeout:     2 * time.Minute,
		NoCacheRuns: 3,
		CacheRuns:   4,
		Snapshots: []SnapshotSpec{
			{Name: "office", Players: 12, Days: 90},
			{Name: "club", Players: 80, Days: 365},
			{Name: "league", Players: 500, Days: 730},
		},
	}

	if _, err := exec.LookPath("wordboard"); err != nil {
		fmt.Printf("Prerequisites check failed: wordboard binary not found in PATH\n")
		os.Exit(1)
	}

	// Clear the cache using wordboard cache clear
	fmt.Printf("Clearing cache...\n")
	clearCmd := exec.Command("wordboard", "cache", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear cache: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Cache cleared successfully\n")
	}

	results, err := runBenchmarks(config)
	if err != nil {
		fmt.Printf("Benchmark failed: %v\n", err)
		os.Exit(1)
	}

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// generateSnapshot writes a deterministic synthetic snapshot and returns its path.
// Each player plays on most days; roughly one play in twelve is a DNF.
func generateSnapshot(dir string, spec SnapshotSpec) (string, error) {
	rng := rand.New(rand.NewPCG(uint64(spec.Players), uint64(spec.Days)))
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	records := make([]schema.ScoreRecord, 0, spec.Players*spec.Days)
	for day := range spec.Days {
		date := end.AddDate(0, 0, day-spec.Days+1)
		for p := range spec.Players {
			if rng.IntN(10) < 2 {
				continue
			}
			submitted := date.Add(time.Duration(6+rng.IntN(16)) * time.Hour).Add(time.Duration(rng.IntN(60)) * time.Minute)
			record := schema.ScoreRecord{
				Name:         fmt.Sprintf("Player %03d", p),
				SubmittedAt:  submitted.Format(time.RFC3339),
				PuzzleNumber: fmt.Sprintf("%d", 1000+day),
			}
			if rng.IntN(12) == 0 {
				record.DNF = true
			} else {
				record.Guesses = schema.GuessesOf(float64(2 + rng.IntN(5)))
			}
			records = append(records, record)
		}
	}

	path := filepath.Join(dir, spec.Name+".json")
	data, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	fmt.Printf("Generated %s: %d records\n", path, len(records))
	return path, nil
}

// runBenchmarks executes all benchmark tests across the configured snapshots
func runBenchmarks(config BenchmarkConfig) ([]BenchmarkResult, error) {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d snapshots, %v timeout, no-cache: %d runs, cache: %d runs\n",
		len(config.Snapshots), config.Timeout, config.NoCacheRuns, config.CacheRuns)

	for _, spec := range config.Snapshots {
		path, err := generateSnapshot(config.WorkDir, spec)
		if err != nil {
			return nil, fmt.Errorf("failed to generate %s: %w", spec.Name, err)
		}
		fmt.Printf("Benchmarking %s\n", spec.Name)

		results = append(results,
			runBenchmarkSuite(config, spec.Name, "boards", "all leaderboards", path, ""),
			runBenchmarkSuite(config, spec.Name, "timeseries", "bayesian time series", path, "--connect-gaps"),
		)
	}

	return results, nil
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, snapshot, command, description, path, extraArgs string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", description, snapshot)

	// Helper to run a benchmark phase
	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, command, path, extraArgs, cacheBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: No-cache runs
	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")

	// Phase 2: Cache runs
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Snapshot:    snapshot,
		Command:     command,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a wordboard command multiple times with specified cache backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, command, path, extraArgs, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	// Prepare command arguments
	args := []string{command, "--source", path, "--as-of", "2025-06-30", "--cache-backend", cacheBackend}
	if extraArgs != "" {
		args = append(args, strings.Fields(extraArgs)...)
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("wordboard", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output, command) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte, command string) bool {
	outputStr := string(output)
	if command == "timeseries" {
		return strings.Contains(outputStr, "Plotted") && strings.Contains(outputStr, "players over")
	}
	return strings.Contains(outputStr, "Leaderboards computed in")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("wordboard_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"snapshot", "cmd", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Snapshot, result.Command, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "boards", "Leaderboards:")
	printCommandSummary(results, "timeseries", "Time Series:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-8s: No-cache: %s, Cold: %s, Warm: %s\n", result.Snapshot, result.NoCacheTime, result.ColdTime, result.WarmTime)
		}
	}
}
