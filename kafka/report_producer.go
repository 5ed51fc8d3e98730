package kafka

import (
	// Go Internal Packages
	"context"
	"encoding/json"

	// Local Packages
	errors "ledger-recon/errors"
	report "ledger-recon/services/report"

	// External Packages
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
)

const (
	HeaderValidation = "validation"
	HeaderSchema     = "schema"
	schemaVersion    = "reconciliation-report/v1"
)

type ProducerConfig struct {
	Brokers []string
	Name    string
	Topic   string
}

// Client is the part of *kgo.Client the producer uses.
type Client interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

// ReportProducer publishes one record per finished run, keyed by run id.
type ReportProducer struct {
	Client Client
	Config *ProducerConfig
	Logger *zap.Logger
}

func NewReportProducer(conf *ProducerConfig, metrics *kprom.Metrics, logger *zap.Logger) (*ReportProducer, error) {
	opts := []kgo.Opt{
		kgo.SeedBrokers(conf.Brokers...),
		kgo.ClientID(conf.Name),
		kgo.DefaultProduceTopic(conf.Topic),
		kgo.WithHooks(metrics),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, errors.E(errors.Invalid, "cannot create kafka client", err)
	}
	return &ReportProducer{Client: client, Config: conf, Logger: logger}, nil
}

// Publish blocks until the broker acknowledged the report or ctx is done.
func (p *ReportProducer) Publish(ctx context.Context, runID string, bundle *report.Bundle) error {
	record, err := reportRecord(runID, bundle)
	if err != nil {
		return err
	}

	if err = p.Client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return errors.E(errors.IO, "cannot publish report to "+p.Config.Topic, err)
	}
	p.Logger.Info("report published", zap.String("run_id", runID), zap.String("topic", p.Config.Topic))
	return nil
}

func (p *ReportProducer) Close() {
	p.Client.Close()
}

func reportRecord(runID string, bundle *report.Bundle) (*kgo.Record, error) {
	value, err := json.Marshal(bundle)
	if err != nil {
		return nil, errors.E(errors.Internal, "cannot encode report", err)
	}
	return &kgo.Record{
		Key:   []byte(runID),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: HeaderValidation, Value: []byte(bundle.Validation.Status)},
			{Key: HeaderSchema, Value: []byte(schemaVersion)},
		},
	}, nil
}
