// Package probe runs startup checks before the first prompt is shown.
package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// CheckFunc returns nil if the check passes.
type CheckFunc func(ctx context.Context) error

// Probe is a single startup check.
type Probe struct {
	Name     string
	Check    CheckFunc
	Critical bool // failure aborts the run
}

// Result holds the outcome of a single probe.
type Result struct {
	Probe    Probe
	Error    error
	Duration time.Duration
}

// DefaultTimeout bounds each check.
const DefaultTimeout = 5 * time.Second

// Run executes probes in order, each under its own timeout.
func Run(ctx context.Context, probes []Probe) []Result {
	results := make([]Result, len(probes))

	for i, p := range probes {
		start := time.Now()

		checkCtx, cancel := context.WithTimeout(ctx, DefaultTimeout)
		err := p.Check(checkCtx)
		cancel()

		results[i] = Result{
			Probe:    p,
			Error:    err,
			Duration: time.Since(start),
		}
	}

	return results
}

// AnalyzeResults logs every result and joins the errors of failed critical
// probes.
func AnalyzeResults(logger *slog.Logger, results []Result) error {
	if logger == nil {
		logger = slog.Default()
	}
	var criticalErrors []error

	for _, r := range results {
		status := "PASS"
		if r.Error != nil {
			status = "FAIL"
		}

		msg := fmt.Sprintf("[%s] %-20s (%v)", status, r.Probe.Name, r.Duration.Round(time.Millisecond))

		switch {
		case r.Error == nil:
			logger.Debug(msg)
		case r.Probe.Critical:
			logger.Error(msg, "error", r.Error)
			criticalErrors = append(criticalErrors, fmt.Errorf("%s: %w", r.Probe.Name, r.Error))
		default:
			logger.Warn(msg, "error", r.Error)
		}
	}

	return errors.Join(criticalErrors...)
}

// OutputDir fails when the directory that will hold path does not exist.
// The file itself is created later by the batch run.
func OutputDir(path string) CheckFunc {
	return func(context.Context) error {
		dir := filepath.Dir(path)
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("output directory: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("output directory %s is not a directory", dir)
		}
		return nil
	}
}

// Sizer is anything that reports how many entries it holds.
type Sizer interface {
	Len() int
}

// NotEmpty fails when s holds no entries.
func NotEmpty(s Sizer) CheckFunc {
	return func(context.Context) error {
		if s.Len() == 0 {
			return errors.New("no entries loaded")
		}
		return nil
	}
}
