package processors

import (
	// Go Internal Packages
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	// Local Packages
	errors "ledger-recon/errors"
	models "ledger-recon/models"
	parsers "ledger-recon/services/parsers"
	reconciler "ledger-recon/services/reconciler"
	report "ledger-recon/services/report"

	// External Packages
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SourceOpener interface {
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}

// BundleWriter persists a report bundle under dir and returns where it went.
type BundleWriter interface {
	Write(ctx context.Context, dir string, bundle *report.Bundle) (string, error)
}

type RejectSink interface {
	Send(ctx context.Context, runID string, rows []models.RejectedRow) error
}

type ReportPublisher interface {
	Publish(ctx context.Context, runID string, bundle *report.Bundle) error
}

type RunRequest struct {
	Left  string
	Right string
	// OutputDir defaults to the directory of Left.
	OutputDir string
}

type RunOutput struct {
	RunID      string
	Result     *models.Result
	Bundle     *report.Bundle
	OutputPath string
	Rejected   []models.RejectedRow
}

type ReconProcessor struct {
	Logger *zap.Logger
	Opener SourceOpener
	Parser *parsers.Parser
	Writer BundleWriter
	// Optional sinks, nil when disabled.
	DLQ       RejectSink
	Publisher ReportPublisher
}

func NewReconProcessor(logger *zap.Logger, opener SourceOpener, parser *parsers.Parser, writer BundleWriter) *ReconProcessor {
	return &ReconProcessor{Logger: logger, Opener: opener, Parser: parser, Writer: writer}
}

// Run reconciles req.Left against req.Right and writes the report. Checkpoints are
// sent on progress when it is not nil. A FAILURE validation is part of the output,
// not an error.
func (p *ReconProcessor) Run(ctx context.Context, req RunRequest, progress chan<- models.Progress) (*RunOutput, error) {
	if req.Left == "" {
		return nil, errors.EmptyParamErr("left")
	}
	if req.Right == "" {
		return nil, errors.EmptyParamErr("right")
	}

	out := &RunOutput{RunID: uuid.NewString()}
	logger := p.Logger.With(zap.String("run_id", out.RunID))
	emit := func(percent int, status string) {
		logger.Debug("progress", zap.Int("percent", percent), zap.String("status", status))
		if progress == nil {
			return
		}
		select {
		case progress <- models.Progress{Percent: percent, Status: status}:
		case <-ctx.Done():
		}
	}

	emit(10, "Reading our ledger")
	left, err := p.read(ctx, req.Left, p.Parser.ParseUnstructured)
	if err != nil {
		return nil, err
	}

	emit(30, "Reading counterparty ledger")
	right, err := p.read(ctx, req.Right, p.Parser.ParseStructured)
	if err != nil {
		return nil, err
	}
	out.Rejected = append(append(out.Rejected, left.Rejected...), right.Rejected...)

	emit(50, "Normalizing document identifiers")
	leftKeyed := reconciler.Normalize(left.Records)
	rightKeyed := reconciler.Normalize(right.Records)

	emit(60, "Aggregating documents")
	leftAgg := reconciler.Aggregate(models.SideLeft, leftKeyed)
	rightAgg := reconciler.Aggregate(models.SideRight, rightKeyed)

	emit(70, "Comparing ledgers")
	out.Result = reconciler.Reconcile(leftAgg, rightAgg)

	emit(80, "Writing report")
	out.Bundle = report.Assemble(out.Result)
	out.Bundle.RunID = out.RunID

	dir := req.OutputDir
	if dir == "" {
		dir = defaultOutputDir(req.Left)
	}
	out.OutputPath, err = p.Writer.Write(ctx, dir, out.Bundle)
	if err != nil {
		return nil, err
	}

	p.sendRejected(ctx, logger, out)
	p.publish(ctx, logger, out)

	logger.Info("reconciliation finished",
		zap.String("validation", string(out.Result.Validation.Status)),
		zap.Int("left_documents", len(leftAgg)),
		zap.Int("right_documents", len(rightAgg)),
		zap.Int("rejected_rows", len(out.Rejected)),
		zap.String("output", out.OutputPath),
	)
	emit(100, "Done")
	return out, nil
}

func (p *ReconProcessor) read(ctx context.Context, location string, parse func(io.Reader) (*parsers.ParseResult, error)) (*parsers.ParseResult, error) {
	rc, err := p.Opener.Open(ctx, location)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rc.Close()
	}()

	res, err := parse(rc)
	if err != nil {
		if errors.KindOf(err) == errors.Invalid {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("cannot parse %s", location), err)
		}
		return nil, errors.ReadErr(location, err)
	}
	p.Logger.Info("source parsed",
		zap.String("location", location),
		zap.Int("records", len(res.Records)),
		zap.Int("rejected", len(res.Rejected)),
	)
	return res, nil
}

func (p *ReconProcessor) sendRejected(ctx context.Context, logger *zap.Logger, out *RunOutput) {
	if p.DLQ == nil || len(out.Rejected) == 0 {
		return
	}
	if err := p.DLQ.Send(ctx, out.RunID, out.Rejected); err != nil {
		logger.Error("failed to dead-letter rejected rows", zap.Error(err))
	}
}

func (p *ReconProcessor) publish(ctx context.Context, logger *zap.Logger, out *RunOutput) {
	if p.Publisher == nil {
		return
	}
	if err := p.Publisher.Publish(ctx, out.RunID, out.Bundle); err != nil {
		logger.Error("failed to publish report", zap.Error(err))
	}
}

func defaultOutputDir(left string) string {
	if strings.Contains(left, "://") {
		return "."
	}
	return filepath.Dir(left)
}
