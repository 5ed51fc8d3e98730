package main

import (
	// Go Internal Packages
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"unicode/utf8"

	// Local Packages
	config "ledger-recon/config"
	errors "ledger-recon/errors"
	helpers "ledger-recon/helpers"
	kafka "ledger-recon/kafka"
	models "ledger-recon/models"
	files "ledger-recon/repositories/files"
	gcs "ledger-recon/repositories/gcs"
	redis "ledger-recon/repositories/redis"
	reconpsr "ledger-recon/services/processors"
	parsers "ledger-recon/services/parsers"

	// External Packages
	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	_ "github.com/jsternberg/zap-logfmt"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
)

const (
	exitOK                = 0
	exitError             = 1
	exitValidationFailure = 2
)

type Flags struct {
	Left   string
	Right  string
	Out    string
	Print  bool
	Config string
}

// LoadSecrets Loads the secret variables and overrides the config
func LoadSecrets(k config.Config) config.Config {
	RedisPassword := os.Getenv("REDIS_PASSWORD")
	if RedisPassword != "" {
		k.Redis.Password = RedisPassword
	}

	KafkaBrokers := os.Getenv("KAFKA_BROKERS")
	if KafkaBrokers != "" {
		k.Kafka.Brokers = strings.Split(KafkaBrokers, ",")
	}

	IsProdMode := os.Getenv("IS_PROD_MODE")
	k.IsProdMode = IsProdMode == "true"
	return k
}

// LoadConfig parses the command line, loads the default configuration and overrides
// it with the config file specified by the path defined in the config flag
func LoadConfig() (*koanf.Koanf, Flags) {
	var f Flags
	kingpin.Flag("config", "Path to the application config file").Short('c').Default("config.yml").StringVar(&f.Config)
	kingpin.Flag("left", "Our ledger export (local path or gs:// uri)").Short('l').Required().StringVar(&f.Left)
	kingpin.Flag("right", "Counterparty ledger export (local path or gs:// uri)").Short('r').Required().StringVar(&f.Right)
	kingpin.Flag("out", "Directory the report folder is created in (defaults to the left file's directory)").Short('o').StringVar(&f.Out)
	kingpin.Flag("print", "Also print the report tables to stdout").BoolVar(&f.Print)

	kingpin.Parse()
	k := koanf.New(".")
	_ = k.Load(rawbytes.Provider(config.DefaultConfig), yaml.Parser())
	if f.Config != "" {
		_ = k.Load(file.Provider(f.Config), yaml.Parser())
	}
	return k, f
}

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()
	k, flags := LoadConfig()
	appKonf := config.Config{}

	// Unmarshalling config into struct
	err := k.Unmarshal("", &appKonf)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Update and Validate config before starting the run
	updatedKonf := LoadSecrets(appKonf)
	if err = updatedKonf.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if !updatedKonf.IsProdMode {
		k.Print()
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "logfmt"
	_ = cfg.Level.UnmarshalText([]byte(updatedKonf.Logger.Level))
	cfg.InitialFields = make(map[string]any)
	cfg.InitialFields["host"], _ = os.Hostname()
	cfg.InitialFields["service"] = updatedKonf.Application
	cfg.OutputPaths = []string{"stdout"}
	logger, _ := cfg.Build()
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	parser, err := parsers.NewParser(logger, ParserOptions(updatedKonf))
	if err != nil {
		logger.Error("cannot create ledger parser", zap.Error(err))
		return exitError
	}

	opener := files.NewOpener(gcs.NewObjectOpener())
	writer := files.NewCSVWriter(logger, updatedKonf.Output.Folder)
	processor := reconpsr.NewReconProcessor(logger, opener, parser, writer)

	// Optional sinks, a run never depends on them
	if updatedKonf.Redis.Enabled {
		redisClient, err := redis.Connect(ctx, updatedKonf.Redis.URI, updatedKonf.Redis.Password)
		if err != nil {
			logger.Warn("rejected rows will not be dead-lettered", zap.Error(err))
		} else {
			defer func() {
				_ = redisClient.Close()
			}()
			processor.DLQ = redis.NewRejectedRows(redisClient, logger, updatedKonf.RedisTTL())
		}
	}
	if updatedKonf.Kafka.Publish {
		conf := &kafka.ProducerConfig{
			Brokers: updatedKonf.Kafka.Brokers,
			Name:    updatedKonf.Kafka.ClientName,
			Topic:   updatedKonf.Kafka.Topic,
		}
		producer, err := kafka.NewReportProducer(conf, kprom.NewMetrics("recon"), logger)
		if err != nil {
			logger.Warn("report will not be published", zap.Error(err))
		} else {
			defer producer.Close()
			processor.Publisher = producer
		}
	}

	outDir := flags.Out
	if outDir == "" {
		outDir = updatedKonf.Output.Dir
	}

	runner := reconpsr.NewRunner(logger, processor)
	defer runner.Close()

	progress, outcome, err := runner.Start(ctx, reconpsr.RunRequest{Left: flags.Left, Right: flags.Right, OutputDir: outDir})
	if err != nil {
		logger.Error("cannot start reconciliation", zap.Error(err))
		return exitError
	}
	for p := range progress {
		logger.Info(p.Status, zap.Int("percent", p.Percent))
	}

	res := <-outcome
	if res.Err != nil {
		logger.Error(Describe(res.Err), zap.String("kind", errors.KindOf(res.Err).String()), zap.Error(res.Err))
		return exitError
	}

	if flags.Print {
		for _, t := range res.Output.Bundle.Tables() {
			_ = helpers.PrintTable(os.Stdout, t.Name, t.Header, t.Rows)
		}
	}

	v := res.Output.Result.Validation
	if v.Status == models.ValidationFailure {
		logger.Error("validation failed, the report is inconsistent",
			zap.String("actual_delta", v.ActualDelta.StringFixed(2)),
			zap.String("computed_delta", v.ComputedDelta.StringFixed(2)),
			zap.String("output", res.Output.OutputPath),
		)
		return exitValidationFailure
	}
	logger.Info(fmt.Sprintf("report saved to %s", res.Output.OutputPath))
	return exitOK
}

// ParserOptions maps the configuration onto the ledger parser.
func ParserOptions(c config.Config) parsers.Options {
	unstructuredDelim, _ := utf8.DecodeRuneInString(c.Unstructured.Delimiter)
	structuredDelim, _ := utf8.DecodeRuneInString(c.Structured.Delimiter)
	return parsers.Options{
		Unstructured: parsers.UnstructuredOptions{
			Delimiter:     unstructuredDelim,
			Encoding:      c.Unstructured.Encoding,
			PaymentMarker: c.Unstructured.PaymentMarker,
		},
		Structured: parsers.StructuredOptions{
			Delimiter: structuredDelim,
			Encoding:  c.Structured.Encoding,
			Columns: parsers.Columns{
				Document:     c.Structured.Columns.Document,
				Counterparty: c.Structured.Columns.Counterparty,
				Original:     c.Structured.Columns.Original,
				Paid:         c.Structured.Columns.Paid,
			},
		},
	}
}

// Describe turns a failed run into a message the operator can act on.
func Describe(err error) string {
	switch errors.KindOf(err) {
	case errors.NotFound:
		return "input file not found, check the path"
	case errors.Locked:
		return "input file is locked, close it in other programs and retry"
	case errors.Invalid:
		return "input file could not be understood, check its layout and delimiter"
	case errors.Write:
		return "cannot save the report, close any open report files and retry"
	case errors.IO:
		return "cannot read input file"
	}
	return "unexpected error during reconciliation"
}
