package config

import (
	// Go Internal Packages
	"testing"
	"time"

	// Local Packages
	errors "ledger-recon/errors"

	// External Packages
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadDefault(t *testing.T) Config {
	t.Helper()
	k := koanf.New(".")
	require.NoError(t, k.Load(rawbytes.Provider(DefaultConfig), yaml.Parser()))

	var c Config
	require.NoError(t, k.Unmarshal("", &c))
	return c
}

func TestDefaultConfigIsValid(t *testing.T) {
	c := loadDefault(t)

	require.NoError(t, c.Validate())
	assert.Equal(t, ";", c.Unstructured.Delimiter)
	assert.Equal(t, ",", c.Structured.Delimiter)
	assert.Equal(t, []string{"Documento", "Document"}, c.Structured.Columns.Document)
	assert.Equal(t, []string{"Valor Pago"}, c.Structured.Columns.Paid)
	assert.False(t, c.Redis.Enabled)
	assert.Equal(t, 168*time.Hour, c.RedisTTL())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"empty application", func(c *Config) { c.Application = "" }, "application"},
		{"multi char delimiter", func(c *Config) { c.Unstructured.Delimiter = ";;" }, "unstructured.delimiter"},
		{"no paid column", func(c *Config) { c.Structured.Columns.Paid = nil }, "structured.columns.paid"},
		{"redis without uri", func(c *Config) {
			c.Redis.Enabled = true
			c.Redis.URI = ""
		}, "redis.uri"},
		{"redis bad ttl", func(c *Config) {
			c.Redis.Enabled = true
			c.Redis.TTL = "a week"
		}, "redis.ttl"},
		{"kafka without topic", func(c *Config) {
			c.Kafka.Publish = true
			c.Kafka.Topic = ""
		}, "kafka.topic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := loadDefault(t)
			tt.mutate(&c)

			err := c.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(errors.Invalid, err))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}
