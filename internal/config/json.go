package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/tgsession/internal/flagx"
	"github.com/dmitrijs2005/tgsession/internal/timex"
)

// JsonConfig is the on-disk form of Config. Durations use timex.Duration, so
// the file may say "15s" or give nanoseconds.
type JsonConfig struct {
	LookupURL      string         `json:"lookup_url"`
	LookupSecret   string         `json:"lookup_secret"`
	LookupTimeout  timex.Duration `json:"lookup_timeout"`
	LogLevel       string         `json:"log_level"`
	LogFormat      string         `json:"log_format"`
	Output         string         `json:"output"`
	S3Bucket       string         `json:"s3_bucket"`
	S3Region       string         `json:"s3_region"`
	S3BaseEndpoint string         `json:"s3_base_endpoint"`
	S3AccessKey    string         `json:"s3_access_key"`
	S3SecretKey    string         `json:"s3_secret_key"`
	S3Prefix       string         `json:"s3_prefix"`
}

// parseJson overlays the file named by -c, -config or --config in args onto
// config. Keys missing from the file keep their current value. Without such
// a flag nothing is loaded.
func parseJson(config *Config, args []string) error {
	jsonConfigFile := flagx.ConfigPath(args)
	if jsonConfigFile == "" {
		return nil
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	c := &JsonConfig{
		LookupURL:      config.LookupURL,
		LookupSecret:   config.LookupSecret,
		LookupTimeout:  timex.Duration{Duration: config.LookupTimeout},
		LogLevel:       config.LogLevel,
		LogFormat:      config.LogFormat,
		Output:         config.Output,
		S3Bucket:       config.S3Bucket,
		S3Region:       config.S3Region,
		S3BaseEndpoint: config.S3BaseEndpoint,
		S3AccessKey:    config.S3AccessKey,
		S3SecretKey:    config.S3SecretKey,
		S3Prefix:       config.S3Prefix,
	}

	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", jsonConfigFile, err)
	}

	config.LookupURL = c.LookupURL
	config.LookupSecret = c.LookupSecret
	config.LookupTimeout = c.LookupTimeout.Duration
	config.LogLevel = c.LogLevel
	config.LogFormat = c.LogFormat
	config.Output = c.Output
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
	config.S3AccessKey = c.S3AccessKey
	config.S3SecretKey = c.S3SecretKey
	config.S3Prefix = c.S3Prefix
	return nil
}
