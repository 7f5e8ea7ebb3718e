package config

import (
	"github.com/spf13/pflag"
)

// BindFlags registers persistent flags on fs that write into config. The
// current field values become the flag defaults, so call it after
// LoadConfig.
//
// Supported flags:
//
//	-c, --config string      JSON config file (consumed by LoadConfig)
//	    --lookup-url string  tdata lookup service URL
//	    --lookup-secret      HS256 secret for the lookup bearer token
//	    --lookup-timeout     lookup deadline, e.g. 15s
//	    --log-level string   debug, info, warn or error
//	    --log-format string  text or json
//	-o, --output string      table, json or yaml
//	    --s3-*               archive storage settings
func BindFlags(fs *pflag.FlagSet, config *Config) {
	var ignored string
	fs.StringVarP(&ignored, "config", "c", "", "path to JSON config file")

	fs.StringVar(&config.LookupURL, "lookup-url", config.LookupURL, "tdata lookup service URL")
	fs.StringVar(&config.LookupSecret, "lookup-secret", config.LookupSecret, "shared secret for the lookup bearer token")
	fs.DurationVar(&config.LookupTimeout, "lookup-timeout", config.LookupTimeout, "deadline for one lookup call (0 disables)")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&config.LogFormat, "log-format", config.LogFormat, "log format (text, json); empty picks by terminal")
	fs.StringVarP(&config.Output, "output", "o", config.Output, "output format (table, json, yaml)")

	fs.StringVar(&config.S3Bucket, "s3-bucket", config.S3Bucket, "archive bucket")
	fs.StringVar(&config.S3Region, "s3-region", config.S3Region, "archive region")
	fs.StringVar(&config.S3BaseEndpoint, "s3-endpoint", config.S3BaseEndpoint, "S3-compatible endpoint, e.g. http://127.0.0.1:9000")
	fs.StringVar(&config.S3AccessKey, "s3-access-key", config.S3AccessKey, "archive access key")
	fs.StringVar(&config.S3SecretKey, "s3-secret-key", config.S3SecretKey, "archive secret key")
	fs.StringVar(&config.S3Prefix, "s3-prefix", config.S3Prefix, "object key prefix")
}
