package files

import (
	// Go Internal Packages
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	// Local Packages
	errors "ledger-recon/errors"
	report "ledger-recon/services/report"

	// External Packages
	"go.uber.org/zap"
)

// CSVWriter writes every table of a bundle to <dir>/<Folder>/<table>.csv.
// Existing files are overwritten.
type CSVWriter struct {
	Logger *zap.Logger
	Folder string
}

func NewCSVWriter(logger *zap.Logger, folder string) *CSVWriter {
	return &CSVWriter{Logger: logger, Folder: folder}
}

func (w *CSVWriter) Write(_ context.Context, dir string, bundle *report.Bundle) (string, error) {
	out := filepath.Join(dir, w.Folder)
	if err := os.MkdirAll(out, 0o755); err != nil {
		return "", errors.WriteErr(out, err)
	}

	for _, table := range bundle.Tables() {
		path := filepath.Join(out, table.Name+".csv")
		if err := writeTable(path, table); err != nil {
			return "", err
		}
		w.Logger.Debug("table written", zap.String("path", path), zap.Int("rows", len(table.Rows)))
	}
	return out, nil
}

func writeTable(path string, table report.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WriteErr(path, err)
	}
	if err = encodeTable(f, table); err != nil {
		_ = f.Close()
		return errors.WriteErr(path, err)
	}
	if err = f.Close(); err != nil {
		return errors.WriteErr(path, err)
	}
	return nil
}

func encodeTable(w io.Writer, table report.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(table.Header); err != nil {
		return err
	}
	// WriteAll flushes.
	return cw.WriteAll(table.Rows)
}
