package probe

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	probes := []Probe{
		{
			Name:     "Success Probe",
			Check:    func(ctx context.Context) error { return nil },
			Critical: true,
		},
		{
			Name:     "Failure Probe (Non-Critical)",
			Check:    func(ctx context.Context) error { return errors.New("minor issue") },
			Critical: false,
		},
		{
			Name: "Deadline Probe",
			Check: func(ctx context.Context) error {
				if _, ok := ctx.Deadline(); !ok {
					return errors.New("no deadline")
				}
				return nil
			},
		},
	}

	results := Run(context.Background(), probes)

	require.Len(t, results, 3)
	assert.NoError(t, results[0].Error)
	assert.Error(t, results[1].Error)
	assert.NoError(t, results[2].Error)
}

func TestAnalyzeResults(t *testing.T) {
	tests := []struct {
		name    string
		results []Result
		wantErr bool
	}{
		{
			name:    "All Pass",
			results: []Result{{Probe: Probe{Name: "P1", Critical: true}}},
			wantErr: false,
		},
		{
			name:    "Critical Failure",
			results: []Result{{Probe: Probe{Name: "P1", Critical: true}, Error: errors.New("fail")}},
			wantErr: true,
		},
		{
			name:    "Non-Critical Failure",
			results: []Result{{Probe: Probe{Name: "P1", Critical: false}, Error: errors.New("fail")}},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

			err := AnalyzeResults(logger, tt.results)
			if tt.wantErr {
				assert.ErrorContains(t, err, "P1: fail")
			} else {
				assert.NoError(t, err)
			}
			assert.Contains(t, buf.String(), "P1")
		})
	}
}

type sized int

func (s sized) Len() int { return int(s) }

func TestChecks(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	ctx := context.Background()

	assert.NoError(t, OutputDir(filepath.Join(dir, "out.txt"))(ctx))
	assert.Error(t, OutputDir(filepath.Join(dir, "missing", "out.txt"))(ctx))
	assert.Error(t, OutputDir(filepath.Join(file, "out.txt"))(ctx))

	assert.NoError(t, NotEmpty(sized(3))(ctx))
	assert.Error(t, NotEmpty(sized(0))(ctx))
}
