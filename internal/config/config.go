// Package config provides functionality for managing configuration
// options for the application using command-line flags, environment
// variables, and an optional JSON config file.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
)

// Options holds the configuration values for the application.
type Options struct {
	// Address defines the server's listening address (ip:port).
	Address string `json:"address" validate:"required"`

	// DatabaseDSN holds the PostgreSQL connection string.
	DatabaseDSN string `json:"database_dsn" validate:"required"`

	// TokenDBPath is the directory for the session token database.
	// Empty selects an in-memory token store (tokens do not survive a
	// restart).
	TokenDBPath string `json:"token_db_path"`

	// BlobBackend selects where payloads go: "fs" or "s3".
	BlobBackend string `json:"blob_backend" validate:"oneof=fs s3"`

	// BlobRoot is the directory for filesystem blob storage.
	BlobRoot string `json:"blob_root"`

	// S3Bucket, S3Region, and S3Endpoint configure the s3 backend.
	// Bucket is required when BlobBackend is "s3".
	S3Bucket   string `json:"s3_bucket" validate:"required_if=BlobBackend s3"`
	S3Region   string `json:"s3_region"`
	S3Endpoint string `json:"s3_endpoint"`

	// LogLevel sets the zap log level.
	LogLevel string `json:"log_level"`

	// Config is the path to the config file.
	Config string `json:"-"`
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Address, "a", "localhost:7000", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "database connection string")
	flag.StringVar(&options.TokenDBPath, "t", "", "path to the token database directory")
	flag.StringVar(&options.BlobBackend, "b", "fs", "blob storage backend (fs or s3)")
	flag.StringVar(&options.BlobRoot, "f", "", "root directory for stored files")
	flag.StringVar(&options.S3Bucket, "s3-bucket", "", "s3 bucket for stored files")
	flag.StringVar(&options.S3Region, "s3-region", "", "s3 region")
	flag.StringVar(&options.S3Endpoint, "s3-endpoint", "", "custom s3 endpoint")
	flag.StringVar(&options.LogLevel, "l", "Info", "log level")
	flag.StringVar(&options.Config, "config", "", "path to config file")
	flag.StringVar(&options.Config, "c", "", "path to config file (shorthand)")
}

// Parse parses the command-line flags, the optional config file, and
// environment variables, validates the result, and returns the
// configuration. Environment variables win over file and flag values.
func Parse() *Options {
	flag.Parse()

	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if addr := os.Getenv("SERVER_ADDRESS"); addr != "" {
		options.Address = addr
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if dir := os.Getenv("TOKEN_DB_PATH"); dir != "" {
		options.TokenDBPath = dir
	}
	if root := os.Getenv("FOLDER_PATH"); root != "" {
		options.BlobRoot = root
	}

	if err := Validate(options); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	return options
}

// Validate checks opts against the struct's validation tags.
func Validate(opts *Options) error {
	v := validator.New()
	if err := v.Struct(opts); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	return nil
}
