// Package main provides a performance benchmarking tool for the ChurnScope CLI.
// It measures execution times across different dataset sizes and command types,
// running each test multiple times, treating the first successful run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - churnscope binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where generated datasets and the results CSV are written
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (untracked average, cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset       string
	Command       string
	UntrackedTime string
	ColdTime      string
	WarmTime      string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir       string
	Timeout       time.Duration
	Workers       int
	UntrackedRuns int
	TrackedRuns   int
	Datasets      map[string]int // name -> customer count
	Months        int
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir:       workDir,
		Timeout:       2 * time.Minute,
		Workers:       8,
		UntrackedRuns: 3,
		TrackedRuns:   4,
		Datasets: map[string]int{
			"small":  100,
			"medium": 1000,
			"large":  10000,
		},
		Months: 24,
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	if err := generateDatasets(config); err != nil {
		fmt.Printf("Dataset generation failed: %v\n", err)
		os.Exit(1)
	}

	// Clear any previous run tracking state
	fmt.Printf("Clearing run store...\n")
	clearCmd := exec.Command("churnscope", "runs", "clear")
	clearCmd.Dir = config.WorkDir
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear run store: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Run store cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(config, results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the churnscope binary and work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("churnscope"); err != nil {
		return fmt.Errorf("churnscope binary not found in PATH")
	}

	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("cannot create work directory %s: %w", config.WorkDir, err)
	}

	return nil
}

// generateDatasets produces one synthetic transaction CSV per dataset size.
func generateDatasets(config BenchmarkConfig) error {
	for name, customers := range config.Datasets {
		path := datasetPath(config, name)
		fmt.Printf("Generating %s dataset (%d customers, %d months)\n", name, customers, config.Months)

		cmd := exec.Command("churnscope", "generate", path,
			"--customers", fmt.Sprintf("%d", customers),
			"--months", fmt.Sprintf("%d", config.Months))
		if output, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("failed to generate %s dataset: %w\nOutput: %s", name, err, string(output))
		}
	}
	return nil
}

func datasetPath(config BenchmarkConfig, name string) string {
	return filepath.Join(config.WorkDir, name+".csv")
}

// runBenchmarks executes all benchmark tests across configured dataset sizes
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, %d workers, untracked: %d runs, tracked: %d runs\n",
		len(config.Datasets), config.Timeout, config.Workers, config.UntrackedRuns, config.TrackedRuns)

	for _, name := range []string{"small", "medium", "large"} {
		if _, ok := config.Datasets[name]; !ok {
			continue
		}
		fmt.Printf("Benchmarking %s dataset\n", name)

		// Full ranked analysis
		result := runBenchmarkSuite(config, name, "analyze", "ranked analysis", "--limit 50")
		results = append(results, result)

		// Executive summary
		result = runBenchmarkSuite(config, name, "summary", "executive summary", "")
		results = append(results, result)

		// Alert rendering (console only)
		result = runBenchmarkSuite(config, name, "alert", "alert rendering", "--dry-run")
		results = append(results, result)
	}

	return results
}

// runBenchmarkSuite runs both untracked and tracked benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, dataset, command, description, extraArgs string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", description, dataset)

	// Helper to run a benchmark phase
	runPhase := func(dbBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, dataset, command, extraArgs, dbBackend, numRuns)
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

	// Phase 1: Runs without tracking
	_, untrackedAvg := runPhase("none", config.UntrackedRuns, "Untracked")

	// Phase 2: Runs with SQLite run tracking
	coldTime, warmAvg := runPhase("sqlite", config.TrackedRuns, "Tracked")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  Untracked average: %s, Cold time: %s, Warm average: %s\n", untrackedAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Dataset:       dataset,
		Command:       command,
		UntrackedTime: untrackedAvg,
		ColdTime:      coldTimeStr,
		WarmTime:      warmAvg,
	}
}

// runBenchmark executes a churnscope command multiple times with the specified
// database backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, dataset, command, extraArgs, dbBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	// Prepare command arguments
	args := []string{command, datasetPath(config, dataset),
		"--db-backend", dbBackend,
		"--workers", fmt.Sprintf("%d", config.Workers)}
	if extraArgs != "" {
		args = append(args, strings.Fields(extraArgs)...)
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("churnscope", args...)
		cmd.Dir = config.WorkDir

		done := make(chan bool)
		var cmdErr error

		go func() {
			_, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// saveResults writes benchmark results to a CSV file in the work directory
func saveResults(config BenchmarkConfig, results []BenchmarkResult) error {
	outputPath := filepath.Join(config.WorkDir, "benchmark_results.csv")
	file, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"dataset", "command", "untracked_avg", "cold_time", "warm_avg"}); err != nil {
		return err
	}
	for _, r := range results {
		record := []string{r.Dataset, r.Command, r.UntrackedTime, r.ColdTime, r.WarmTime}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	fmt.Printf("Results saved to %s\n", outputPath)
	return nil
}

// printSummary prints a human-readable summary of the benchmark results
func printSummary(results []BenchmarkResult) {
	fmt.Println("\nBenchmark summary:")
	for _, r := range results {
		fmt.Printf("  %-8s %-8s untracked=%-10s cold=%-10s warm=%s\n",
			r.Dataset, r.Command, r.UntrackedTime, r.ColdTime, r.WarmTime)
	}
}
