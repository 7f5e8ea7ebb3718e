package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://127.0.0.1:18661/read_tdata", c.LookupURL)
	assert.Empty(t, c.LookupSecret)
	assert.Equal(t, 30*time.Second, c.LookupTimeout)
	assert.Equal(t, "info", c.LogLevel)
	assert.Empty(t, c.LogFormat)
	assert.Equal(t, "table", c.Output)
	assert.Equal(t, "us-east-1", c.S3Region)
	assert.Equal(t, "sessions", c.S3Prefix)
	require.NoError(t, c.Validate())
}

func TestLoadConfig_NoFileKeepsDefaults(t *testing.T) {
	c, err := LoadConfig([]string{"parse", "a.session"})
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), c))
}

func TestLoadConfig_JSONOverlay(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"lookup_url":       "http://lookup:1/read",
		"lookup_secret":    "s",
		"lookup_timeout":   "5s",
		"log_level":        "debug",
		"output":           "yaml",
		"s3_bucket":        "vault",
		"s3_base_endpoint": "http://127.0.0.1:9000",
		"s3_access_key":    "admin",
		"s3_secret_key":    "secretpassword",
	})

	c, err := LoadConfig([]string{"generate", "--config", path})
	require.NoError(t, err)

	want := defaults()
	want.LookupURL = "http://lookup:1/read"
	want.LookupSecret = "s"
	want.LookupTimeout = 5 * time.Second
	want.LogLevel = "debug"
	want.Output = "yaml"
	want.S3Bucket = "vault"
	want.S3BaseEndpoint = "http://127.0.0.1:9000"
	want.S3AccessKey = "admin"
	want.S3SecretKey = "secretpassword"

	assert.Empty(t, cmp.Diff(want, c))
}

func TestLoadConfig_NumericDuration(t *testing.T) {
	path := writeTempJSON(t, map[string]any{"lookup_timeout": 2000000000})

	c, err := LoadConfig([]string{"-c", path})
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, c.LookupTimeout)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig([]string{"-c", filepath.Join(t.TempDir(), "missing.json")})
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
	_, err = LoadConfig([]string{"-config", bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.json")
}

func TestBindFlags_OverrideJSON(t *testing.T) {
	path := writeTempJSON(t, map[string]any{"output": "yaml", "s3_bucket": "from-file"})
	args := []string{"-c", path, "--output", "json", "--lookup-timeout", "7s", "--s3-endpoint", "http://minio:9000"}

	c, err := LoadConfig(args)
	require.NoError(t, err)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs, c)
	require.NoError(t, fs.Parse(args))

	assert.Equal(t, "json", c.Output)
	assert.Equal(t, "from-file", c.S3Bucket)
	assert.Equal(t, 7*time.Second, c.LookupTimeout)
	assert.Equal(t, "http://minio:9000", c.S3BaseEndpoint)
	assert.Equal(t, "info", c.LogLevel)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{name: "bad output", mutate: func(c *Config) { c.Output = "xml" }, field: "Output"},
		{name: "bad level", mutate: func(c *Config) { c.LogLevel = "loud" }, field: "LogLevel"},
		{name: "bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }, field: "LogFormat"},
		{name: "empty lookup url", mutate: func(c *Config) { c.LookupURL = "" }, field: "LookupURL"},
		{name: "negative timeout", mutate: func(c *Config) { c.LookupTimeout = -time.Second }, field: "LookupTimeout"},
		{name: "bad endpoint", mutate: func(c *Config) { c.S3BaseEndpoint = "not a url" }, field: "S3BaseEndpoint"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaults()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}
