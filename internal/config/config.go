// Package config handles configuration for the tgsession command,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/tgsession/internal/tdata"
	"github.com/go-playground/validator/v10"
)

// Config holds runtime settings.
//
// Fields:
//   - LookupURL / LookupSecret / LookupTimeout: the tdata decoding service,
//     the HS256 secret for its bearer token (empty disables auth) and the
//     per-call deadline.
//   - LogLevel / LogFormat: slog level and handler; an empty format picks text
//     on a terminal and JSON otherwise.
//   - Output: table, json or yaml for parsed accounts.
//   - S3*: object storage for --archive.
type Config struct {
	LookupURL      string `validate:"required,url"`
	LookupSecret   string
	LookupTimeout  time.Duration `validate:"gte=0"`
	LogLevel       string        `validate:"oneof=debug info warn warning error DEBUG INFO WARN ERROR"`
	LogFormat      string        `validate:"omitempty,oneof=text json"`
	Output         string        `validate:"oneof=table json yaml yml"`
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string `validate:"omitempty,url"`
	S3AccessKey    string
	S3SecretKey    string
	S3Prefix       string
}

// LoadDefaults populates Config with local development defaults.
func (c *Config) LoadDefaults() {
	c.LookupURL = tdata.DefaultLookupURL
	c.LookupSecret = ""
	c.LookupTimeout = 30 * time.Second
	c.LogLevel = "info"
	c.LogFormat = ""
	c.Output = "table"
	c.S3Bucket = ""
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = ""
	c.S3AccessKey = ""
	c.S3SecretKey = ""
	c.S3Prefix = "sessions"
}

// LoadConfig applies defaults and then the JSON file named by -c/--config in
// args, if any. Flags are layered on top by BindFlags.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks the final configuration.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Field(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
