package config

import (
	// Go Internal Packages
	"time"
	"unicode/utf8"

	// Local Packages
	errors "ledger-recon/errors"
)

var DefaultConfig = []byte(`
application: "ledger-recon"

logger:
  level: "info"

is_prod_mode: false

unstructured:
  delimiter: ";"
  encoding: "ISO-8859-1"
  payment_marker: "DIAMANTE"

structured:
  delimiter: ","
  encoding: "ISO-8859-1"
  columns:
    document: ["Documento", "Document"]
    counterparty: ["Sacado"]
    original: ["Valor"]
    paid: ["Valor Pago"]

output:
  dir: ""
  folder: "reconciliation_report"

redis:
  enabled: false
  uri: "localhost:6379"
  password: ""
  ttl: "168h"

kafka:
  publish: false
  brokers:
    - "localhost:9092"
  topic: "reconciliation-reports"
  client_name: "ledger-recon"
`)

type Config struct {
	Application  string       `koanf:"application"`
	Logger       Logger       `koanf:"logger"`
	IsProdMode   bool         `koanf:"is_prod_mode"`
	Unstructured Unstructured `koanf:"unstructured"`
	Structured   Structured   `koanf:"structured"`
	Output       Output       `koanf:"output"`
	Redis        Redis        `koanf:"redis"`
	Kafka        Kafka        `koanf:"kafka"`
}

type Logger struct {
	Level string `koanf:"level"`
}

type Unstructured struct {
	Delimiter     string `koanf:"delimiter"`
	Encoding      string `koanf:"encoding"`
	PaymentMarker string `koanf:"payment_marker"`
}

type Structured struct {
	Delimiter string  `koanf:"delimiter"`
	Encoding  string  `koanf:"encoding"`
	Columns   Columns `koanf:"columns"`
}

// Columns lists accepted header names, in order of preference, per field.
type Columns struct {
	Document     []string `koanf:"document"`
	Counterparty []string `koanf:"counterparty"`
	Original     []string `koanf:"original"`
	Paid         []string `koanf:"paid"`
}

type Output struct {
	// Dir defaults to the directory of the left source when empty.
	Dir    string `koanf:"dir"`
	Folder string `koanf:"folder"`
}

type Redis struct {
	Enabled  bool   `koanf:"enabled"`
	URI      string `koanf:"uri"`
	Password string `koanf:"password"`
	TTL      string `koanf:"ttl"`
}

type Kafka struct {
	Publish    bool     `koanf:"publish"`
	Brokers    []string `koanf:"brokers"`
	Topic      string   `koanf:"topic"`
	ClientName string   `koanf:"client_name"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	ve := errors.ValidationErrs()

	if c.Application == "" {
		ve.Add("application", "cannot be empty")
	}
	if c.Logger.Level == "" {
		ve.Add("logger.level", "cannot be empty")
	}
	if utf8.RuneCountInString(c.Unstructured.Delimiter) != 1 {
		ve.Add("unstructured.delimiter", "must be a single character")
	}
	if utf8.RuneCountInString(c.Structured.Delimiter) != 1 {
		ve.Add("structured.delimiter", "must be a single character")
	}
	if c.Unstructured.PaymentMarker == "" {
		ve.Add("unstructured.payment_marker", "cannot be empty")
	}
	if len(c.Structured.Columns.Document) == 0 {
		ve.Add("structured.columns.document", "cannot be empty")
	}
	if len(c.Structured.Columns.Counterparty) == 0 {
		ve.Add("structured.columns.counterparty", "cannot be empty")
	}
	if len(c.Structured.Columns.Original) == 0 {
		ve.Add("structured.columns.original", "cannot be empty")
	}
	if len(c.Structured.Columns.Paid) == 0 {
		ve.Add("structured.columns.paid", "cannot be empty")
	}
	if c.Output.Folder == "" {
		ve.Add("output.folder", "cannot be empty")
	}
	if c.Redis.Enabled {
		if c.Redis.URI == "" {
			ve.Add("redis.uri", "cannot be empty")
		}
		if _, err := time.ParseDuration(c.Redis.TTL); err != nil {
			ve.Add("redis.ttl", "must be a duration")
		}
	}
	if c.Kafka.Publish {
		if len(c.Kafka.Brokers) == 0 {
			ve.Add("kafka.brokers", "cannot be empty")
		}
		if c.Kafka.Topic == "" {
			ve.Add("kafka.topic", "cannot be empty")
		}
	}

	return ve.Err()
}

// RedisTTL returns the expiry for dead-lettered rows. Call after Validate.
func (c *Config) RedisTTL() time.Duration {
	ttl, _ := time.ParseDuration(c.Redis.TTL)
	return ttl
}
