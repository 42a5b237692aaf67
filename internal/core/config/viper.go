package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// secretKeys may never appear in a config file.
var secretKeys = []string{
	"export.access_key_id",
	"export.secret_access_key",
	"database.password",
}

// LoadConfig loads configuration from file using viper.
// CLI flags > environment > config file > defaults precedence; flags are
// applied by the caller on the returned Config.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	def := Default()

	v.SetDefault("server.host", def.Server.Host)
	v.SetDefault("server.http_port", def.Server.HTTPPort)
	v.SetDefault("server.grpc_port", def.Server.GRPCPort)
	v.SetDefault("server.request_timeout", def.Server.RequestTimeout.String())
	v.SetDefault("server.max_body_bytes", def.Server.MaxBodyBytes)
	v.SetDefault("server.allowed_origins", def.Server.AllowedOrigins)
	v.SetDefault("database.url", def.Database.URL)
	v.SetDefault("audience.strategy", def.Audience.Strategy)
	v.SetDefault("audience.refresh_concurrency", def.Audience.RefreshConcurrency)
	v.SetDefault("audience.preview_limit", def.Audience.PreviewLimit)
	v.SetDefault("audience.max_ingest_batch", def.Audience.MaxIngestBatch)
	v.SetDefault("export.enabled", def.Export.Enabled)
	v.SetDefault("export.bucket", def.Export.Bucket)
	v.SetDefault("export.prefix", def.Export.Prefix)
	v.SetDefault("export.region", def.Export.Region)
	v.SetDefault("export.endpoint", def.Export.Endpoint)
	v.SetDefault("export.path_style", def.Export.PathStyle)
	v.SetDefault("tracing.enabled", def.Tracing.Enabled)
	v.SetDefault("tracing.endpoint", def.Tracing.Endpoint)
	v.SetDefault("tracing.service_name", def.Tracing.ServiceName)
	v.SetDefault("tracing.environment", def.Tracing.Environment)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.development", def.Log.Development)

	// Bind environment variables with AK_ prefix
	v.SetEnvPrefix("AK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Secrets must be environment-only
		if err := validateNoSecretsInConfig(v); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:           v.GetString("server.host"),
			HTTPPort:       v.GetInt("server.http_port"),
			GRPCPort:       v.GetInt("server.grpc_port"),
			RequestTimeout: v.GetDuration("server.request_timeout"),
			MaxBodyBytes:   v.GetInt64("server.max_body_bytes"),
			AllowedOrigins: splitList(v.GetStringSlice("server.allowed_origins")),
		},
		Database: DatabaseConfig{
			URL: v.GetString("database.url"),
		},
		Audience: AudienceConfig{
			Strategy:           strings.ToLower(v.GetString("audience.strategy")),
			RefreshConcurrency: v.GetInt("audience.refresh_concurrency"),
			PreviewLimit:       v.GetInt("audience.preview_limit"),
			MaxIngestBatch:     v.GetInt("audience.max_ingest_batch"),
		},
		Export: ExportConfig{
			Enabled:   v.GetBool("export.enabled"),
			Bucket:    v.GetString("export.bucket"),
			Prefix:    v.GetString("export.prefix"),
			Region:    v.GetString("export.region"),
			Endpoint:  v.GetString("export.endpoint"),
			PathStyle: v.GetBool("export.path_style"),
		},
		Tracing: TracingConfig{
			Enabled:     v.GetBool("tracing.enabled"),
			Endpoint:    v.GetString("tracing.endpoint"),
			ServiceName: v.GetString("tracing.service_name"),
			Environment: v.GetString("tracing.environment"),
		},
		Log: LogConfig{
			Level:       v.GetString("log.level"),
			Development: v.GetBool("log.development"),
		},
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// splitList accepts both YAML lists and comma-separated env values.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate checks ports, positive limits, strategy and export settings.
// Exported so callers can re-check after applying CLI flag overrides.
func Validate(cfg *Config) error {
	for name, port := range map[string]int{"http_port": cfg.Server.HTTPPort, "grpc_port": cfg.Server.GRPCPort} {
		if port <= 0 || port > 65535 {
			return fmt.Errorf("%s must be between 1 and 65535, got %d", name, port)
		}
	}
	if cfg.Server.HTTPPort == cfg.Server.GRPCPort {
		return fmt.Errorf("http_port and grpc_port must differ, both are %d", cfg.Server.HTTPPort)
	}
	if cfg.Server.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %v", cfg.Server.RequestTimeout)
	}
	if cfg.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("max_body_bytes must be positive, got %d", cfg.Server.MaxBodyBytes)
	}
	if cfg.Database.URL == "" {
		return fmt.Errorf("database.url is required")
	}
	if cfg.Audience.Strategy != StrategyStream && cfg.Audience.Strategy != StrategySQL {
		return fmt.Errorf("audience.strategy must be %q or %q, got %q", StrategyStream, StrategySQL, cfg.Audience.Strategy)
	}
	if cfg.Audience.RefreshConcurrency <= 0 {
		return fmt.Errorf("refresh_concurrency must be positive, got %d", cfg.Audience.RefreshConcurrency)
	}
	if cfg.Audience.PreviewLimit <= 0 {
		return fmt.Errorf("preview_limit must be positive, got %d", cfg.Audience.PreviewLimit)
	}
	if cfg.Audience.MaxIngestBatch <= 0 {
		return fmt.Errorf("max_ingest_batch must be positive, got %d", cfg.Audience.MaxIngestBatch)
	}
	if cfg.Export.Enabled && cfg.Export.Bucket == "" {
		return fmt.Errorf("export.bucket is required when export is enabled")
	}
	return nil
}

// validateNoSecretsInConfig enforces environment-only secrets (12-factor principle).
func validateNoSecretsInConfig(v *viper.Viper) error {
	for _, key := range secretKeys {
		if v.InConfig(key) {
			return fmt.Errorf("secrets not allowed in config files (%s); use %s and %s environment variables",
				key, EnvExportAccessKeyID, EnvExportSecretAccessKey)
		}
	}
	return nil
}
