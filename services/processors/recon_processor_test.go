package processors

import (
	// Go Internal Packages
	"context"
	stderrors "errors"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	// Local Packages
	errors "ledger-recon/errors"
	models "ledger-recon/models"
	parsers "ledger-recon/services/parsers"
	report "ledger-recon/services/report"

	// External Packages
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	ourLedger = "Recebimento cfe Dpl 100/01 - Alice;100,00\n" +
		"Recebimento cfe Dpl 300/1 - Carla;30,00\n" +
		"Tarifa bancaria;-5,00\n"
	theirLedger = "Documento,Sacado,Valor,Valor Pago\n" +
		"100/001,ALICE LTDA,100.00,105.00\n" +
		"400/1,DIANA SA,70.00,72.50\n"
)

type memOpener map[string]string

func (m memOpener) Open(_ context.Context, location string) (io.ReadCloser, error) {
	content, ok := m[location]
	if !ok {
		return nil, errors.OpenErr(location, fs.ErrNotExist)
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

type memWriter struct {
	dir    string
	bundle *report.Bundle
	err    error
}

func (w *memWriter) Write(_ context.Context, dir string, bundle *report.Bundle) (string, error) {
	if w.err != nil {
		return "", w.err
	}
	w.dir, w.bundle = dir, bundle
	return filepath.Join(dir, "reconciliation_report"), nil
}

type memDLQ struct {
	runID string
	rows  []models.RejectedRow
}

func (d *memDLQ) Send(_ context.Context, runID string, rows []models.RejectedRow) error {
	d.runID, d.rows = runID, rows
	return nil
}

type failingPublisher struct{ calls int }

func (f *failingPublisher) Publish(context.Context, string, *report.Bundle) error {
	f.calls++
	return stderrors.New("broker unavailable")
}

func newTestProcessor(t *testing.T, files memOpener, writer *memWriter) *ReconProcessor {
	t.Helper()
	parser, err := parsers.NewParser(zap.NewNop(), parsers.DefaultOptions())
	require.NoError(t, err)
	return NewReconProcessor(zap.NewNop(), files, parser, writer)
}

func TestReconProcessorRun(t *testing.T) {
	writer := &memWriter{}
	dlq := &memDLQ{}
	publisher := &failingPublisher{}
	p := newTestProcessor(t, memOpener{"data/our.csv": ourLedger, "data/their.csv": theirLedger}, writer)
	p.DLQ = dlq
	p.Publisher = publisher

	progress := make(chan models.Progress, 16)
	out, err := p.Run(context.Background(), RunRequest{Left: "data/our.csv", Right: "data/their.csv"}, progress)
	require.NoError(t, err, "sink failures never fail the run")
	close(progress)

	var percents []int
	for pr := range progress {
		assert.NotEmpty(t, pr.Status)
		percents = append(percents, pr.Percent)
	}
	assert.Equal(t, []int{10, 30, 50, 60, 70, 80, 100}, percents)

	assert.NotEmpty(t, out.RunID)
	assert.Equal(t, "data", writer.dir)
	assert.Equal(t, filepath.Join("data", "reconciliation_report"), out.OutputPath)
	require.Same(t, out.Bundle, writer.bundle)
	assert.Equal(t, out.RunID, out.Bundle.RunID)

	assert.Len(t, out.Result.Rows, 3)
	assert.Len(t, out.Result.RowsWith(models.MatchedBoth), 1)
	assert.Equal(t, models.ValidationSuccess, out.Result.Validation.Status)
	require.Len(t, out.Bundle.Differences, 1)
	assert.Equal(t, "100/001", out.Bundle.Differences[0].Key)

	require.Len(t, out.Rejected, 1)
	assert.Equal(t, models.SideLeft, out.Rejected[0].Side)
	assert.Equal(t, 2, out.Rejected[0].Index)
	assert.Equal(t, models.RejectNonPositive, out.Rejected[0].Reason)
	assert.Equal(t, out.RunID, dlq.runID)
	assert.Equal(t, out.Rejected, dlq.rows)

	assert.Equal(t, 1, publisher.calls)
}

func TestReconProcessorOutputDirOverride(t *testing.T) {
	writer := &memWriter{}
	p := newTestProcessor(t, memOpener{"our.csv": ourLedger, "their.csv": theirLedger}, writer)

	_, err := p.Run(context.Background(), RunRequest{Left: "our.csv", Right: "their.csv", OutputDir: "/tmp/out"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out", writer.dir)
}

func TestReconProcessorErrors(t *testing.T) {
	tests := []struct {
		name   string
		files  memOpener
		req    RunRequest
		writer *memWriter
		kind   errors.Kind
	}{
		{
			name: "missing left parameter",
			req:  RunRequest{Right: "their.csv"},
			kind: errors.Invalid,
		},
		{
			name:  "left not found",
			files: memOpener{"their.csv": theirLedger},
			req:   RunRequest{Left: "our.csv", Right: "their.csv"},
			kind:  errors.NotFound,
		},
		{
			name:  "right lacks a required column",
			files: memOpener{"our.csv": ourLedger, "their.csv": "Documento,Sacado,Valor\n1/1,X,1.00\n"},
			req:   RunRequest{Left: "our.csv", Right: "their.csv"},
			kind:  errors.Invalid,
		},
		{
			name:   "report destination in use",
			files:  memOpener{"our.csv": ourLedger, "their.csv": theirLedger},
			req:    RunRequest{Left: "our.csv", Right: "their.csv"},
			writer: &memWriter{err: errors.WriteErr("report.csv", fs.ErrPermission)},
			kind:   errors.Write,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer := tt.writer
			if writer == nil {
				writer = &memWriter{}
			}
			p := newTestProcessor(t, tt.files, writer)

			out, err := p.Run(context.Background(), tt.req, nil)
			require.Error(t, err)
			assert.Nil(t, out)
			assert.Equal(t, tt.kind, errors.KindOf(err), err.Error())
		})
	}
}

func TestDefaultOutputDir(t *testing.T) {
	assert.Equal(t, "exports", defaultOutputDir("exports/our.csv"))
	assert.Equal(t, ".", defaultOutputDir("our.csv"))
	assert.Equal(t, ".", defaultOutputDir("gs://bucket/our.csv"))
}
