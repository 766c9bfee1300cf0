// Package batch runs the interactive resolve-and-save loop.
package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"countryname/pkg/resolver"
)

// Resolver turns one query into one result. It must not fail.
type Resolver interface {
	Resolve(ctx context.Context, query string) resolver.Result
}

// Pipeline collects queries, resolves them in order and writes one line per
// query to the console and to the output file.
type Pipeline struct {
	resolver   Resolver
	console    io.Writer
	outputPath string
	logger     *slog.Logger
}

// New creates a Pipeline writing results to outputPath.
func New(r Resolver, console io.Writer, outputPath string, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		resolver:   r,
		console:    console,
		outputPath: outputPath,
		logger:     logger,
	}
}

// OutputPath returns where results are saved.
func (p *Pipeline) OutputPath() string {
	return p.outputPath
}

// RunInteractive prompts on the console, reads queries from in and runs them.
// Cancelling ctx while input is pending returns at once; the reader is left
// to its own EOF.
func (p *Pipeline) RunInteractive(ctx context.Context, in io.Reader) error {
	fmt.Fprintln(p.console, Prompt)

	type collected struct {
		queries []string
		err     error
	}
	done := make(chan collected, 1)
	go func() {
		q, err := CollectInput(in)
		done <- collected{q, err}
	}()

	select {
	case <-ctx.Done():
		p.logger.Warn("Input interrupted")
		return ctx.Err()
	case c := <-done:
		if c.err != nil {
			return c.err
		}
		return p.Run(ctx, c.queries)
	}
}

// Run resolves queries in order. The output file is truncated once up front
// and closed on every return path. Only I/O failures on the output file and
// context cancellation end the run early.
func (p *Pipeline) Run(ctx context.Context, queries []string) (err error) {
	// A run cancelled before it starts keeps the previous results
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.OpenFile(p.outputPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	fmt.Fprintln(p.console, "\nQuering the following countries:")
	fmt.Fprintln(p.console, strings.Join(queries, ", "))

	p.logger.Info("Batch started", "queries", len(queries), "output", p.outputPath)

	for i, q := range queries {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("Batch interrupted", "done", i, "total", len(queries))
			return err
		}

		fmt.Fprintf(p.console, "\nSearching %s ...\n", q)

		line := p.resolveSafely(ctx, q).String()
		fmt.Fprintln(p.console, line)

		if _, err := f.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("failed to write result for %q: %w", q, err)
		}
	}

	p.logger.Info("Batch finished", "queries", len(queries))
	fmt.Fprintf(p.console, "\nDone! Saved to '%s' .\n", p.outputPath)
	return nil
}

// resolveSafely contains a panicking resolution to its own query.
func (p *Pipeline) resolveSafely(ctx context.Context, q string) (res resolver.Result) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Resolution panicked", "query", q, "panic", r)
			res = resolver.Unverified(q)
		}
	}()
	return p.resolver.Resolve(ctx, q)
}
