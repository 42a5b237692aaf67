// Package config provides configuration management for audiencekeeper services.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Audience evaluation strategies.
const (
	// StrategyStream evaluates segments in-process over streamed customer rows.
	StrategyStream = "stream"
	// StrategySQL pushes segment predicates down into the database.
	StrategySQL = "sql"
)

// ServerConfig holds listener settings for the HTTP and gRPC APIs.
type ServerConfig struct {
	Host           string
	HTTPPort       int
	GRPCPort       int
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	AllowedOrigins []string
}

// DatabaseConfig holds the connection URL (sqlite://path or postgres://...).
type DatabaseConfig struct {
	URL string
}

// AudienceConfig controls how audiences are computed.
type AudienceConfig struct {
	Strategy           string
	RefreshConcurrency int
	PreviewLimit       int
	MaxIngestBatch     int
}

// ExportConfig controls recipient-list export to S3-compatible storage.
// Credentials never come from here; see ExportCredentials.
type ExportConfig struct {
	Enabled   bool
	Bucket    string
	Prefix    string
	Region    string
	Endpoint  string
	PathStyle bool
}

// TracingConfig controls OpenTelemetry export.
type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
	Environment string
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level       string
	Development bool
}

// Config is the complete service configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Audience AudienceConfig
	Export   ExportConfig
	Tracing  TracingConfig
	Log      LogConfig
}

// Default returns configuration with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			HTTPPort:       8080,
			GRPCPort:       50051,
			RequestTimeout: 30 * time.Second,
			MaxBodyBytes:   10 << 20,
			AllowedOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			URL: "sqlite://./data/audiencekeeper.db",
		},
		Audience: AudienceConfig{
			Strategy:           StrategyStream,
			RefreshConcurrency: 4,
			PreviewLimit:       100,
			MaxIngestBatch:     1000,
		},
		Export: ExportConfig{
			Prefix: "audiences/",
			Region: "us-east-1",
		},
		Tracing: TracingConfig{
			Endpoint:    "http://localhost:14268/api/traces",
			ServiceName: "audiencekeeper",
			Environment: "development",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Addr returns host:port for the given port.
func (s ServerConfig) Addr(port int) string {
	return fmt.Sprintf("%s:%d", s.Host, port)
}

// Environment variables for static export credentials.
const (
	EnvExportAccessKeyID     = "AK_EXPORT_ACCESS_KEY_ID"
	EnvExportSecretAccessKey = "AK_EXPORT_SECRET_ACCESS_KEY"
)

// ExportCredentials reads static S3 credentials from the environment.
// ok=false means neither variable is set and the default AWS credential
// chain applies. Setting only one of the pair is an error.
func ExportCredentials() (accessKeyID, secretAccessKey string, ok bool, err error) {
	accessKeyID = strings.TrimSpace(os.Getenv(EnvExportAccessKeyID))
	secretAccessKey = strings.TrimSpace(os.Getenv(EnvExportSecretAccessKey))

	switch {
	case accessKeyID == "" && secretAccessKey == "":
		return "", "", false, nil
	case accessKeyID == "":
		return "", "", false, fmt.Errorf("%s set without %s", EnvExportSecretAccessKey, EnvExportAccessKeyID)
	case secretAccessKey == "":
		return "", "", false, fmt.Errorf("%s set without %s", EnvExportAccessKeyID, EnvExportSecretAccessKey)
	}
	return accessKeyID, secretAccessKey, true, nil
}
