package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Store   StoreConfig
	Log     LogConfig
	Parser  ParserConfig
	Breaker BreakerConfig
	Matrix  MatrixConfig
	Session SessionConfig
	Upload  UploadConfig
	CORS    CORSConfig
	Tracing TracingConfig
	Sentry  SentryConfig
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ParserProviderConfig holds settings for a single LLM provider.
type ParserProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// ParserConfig holds LLM provider settings with multi-provider support.
type ParserConfig struct {
	// Legacy flat fields (backwards-compatible)
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`

	// Multi-provider fields
	Primary   ParserProviderConfig `mapstructure:"primary"`
	Secondary ParserProviderConfig `mapstructure:"secondary"`
	Tertiary  ParserProviderConfig `mapstructure:"tertiary"`
}

// PrimaryConfig returns the primary provider config, falling back to legacy flat fields.
func (p *ParserConfig) PrimaryConfig() *ParserProviderConfig {
	if p.Primary.Provider != "" {
		return &p.Primary
	}
	return &ParserProviderConfig{
		Provider:     p.Provider,
		APIKey:       p.APIKey,
		DefaultModel: p.DefaultModel,
		TimeoutSecs:  p.TimeoutSecs,
	}
}

// SecondaryConfig returns the secondary provider config, or nil if not configured.
func (p *ParserConfig) SecondaryConfig() *ParserProviderConfig {
	if p.Secondary.Provider != "" {
		return &p.Secondary
	}
	return nil
}

// TertiaryConfig returns the tertiary provider config, or nil if not configured.
func (p *ParserConfig) TertiaryConfig() *ParserProviderConfig {
	if p.Tertiary.Provider != "" {
		return &p.Tertiary
	}
	return nil
}

// Providers returns the configured providers in fallback order.
func (p *ParserConfig) Providers() []*ParserProviderConfig {
	out := []*ParserProviderConfig{p.PrimaryConfig()}
	if s := p.SecondaryConfig(); s != nil {
		out = append(out, s)
	}
	if t := p.TertiaryConfig(); t != nil {
		out = append(out, t)
	}
	return out
}

// BreakerConfig holds per-provider circuit breaker settings.
type BreakerConfig struct {
	FailureThreshold uint32        `mapstructure:"failure_threshold"`
	OpenTimeout      time.Duration `mapstructure:"open_timeout"`
	MaxHalfOpen      uint32        `mapstructure:"max_half_open"`
}

// MatrixConfig holds interaction matrix settings.
type MatrixConfig struct {
	FailurePolicy string `mapstructure:"failure_policy"`
	MaxPairs      int    `mapstructure:"max_pairs"`
}

// SessionConfig holds session lifetime settings.
type SessionConfig struct {
	TTL           time.Duration `mapstructure:"ttl"`
	SweepSchedule string        `mapstructure:"sweep_schedule"`
}

// UploadConfig holds document upload limits.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// MaxBytes returns the upload limit in bytes.
func (u *UploadConfig) MaxBytes() int64 {
	return u.MaxFileSizeMB * 1024 * 1024
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// StoreConfig selects the session store backend.
type StoreConfig struct {
	Driver     string `mapstructure:"driver"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TracingConfig holds OpenTelemetry exporter settings.
type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	ServiceName  string  `mapstructure:"service_name"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRate   float64 `mapstructure:"sample_rate"`
}

// SentryConfig holds error reporting settings. An empty DSN disables reporting.
type SentryConfig struct {
	DSN         string `mapstructure:"dsn"`
	Environment string `mapstructure:"environment"`
}

// Load reads configuration from environment variables with the MEDEXPLAIN_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MEDEXPLAIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "10m")
	v.SetDefault("server.environment", "development")

	// Store defaults
	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.sqlite_path", "medexplain.db")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "medexplain")
	v.SetDefault("db.password", "medexplain_secret")
	v.SetDefault("db.name", "medexplain_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:3001,http://127.0.0.1:3001")

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 20)

	// Session defaults
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("session.sweep_schedule", "@every 15m")

	// Matrix defaults
	v.SetDefault("matrix.failure_policy", "abort")
	v.SetDefault("matrix.max_pairs", 0)

	// Breaker defaults
	v.SetDefault("breaker.failure_threshold", 5)
	v.SetDefault("breaker.open_timeout", "30s")
	v.SetDefault("breaker.max_half_open", 1)

	// Tracing defaults
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "medexplain")
	v.SetDefault("tracing.otlp_endpoint", "localhost:4317")
	v.SetDefault("tracing.sample_rate", 1.0)

	// Sentry defaults
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "")

	// Parser defaults (legacy flat)
	v.SetDefault("parser.provider", "gemini")
	v.SetDefault("parser.api_key", "")
	v.SetDefault("parser.default_model", "")
	v.SetDefault("parser.timeout_secs", 120)

	// Parser primary/secondary/tertiary defaults
	for _, tier := range []string{"primary", "secondary", "tertiary"} {
		v.SetDefault("parser."+tier+".provider", "")
		v.SetDefault("parser."+tier+".api_key", "")
		v.SetDefault("parser."+tier+".default_model", "")
		v.SetDefault("parser."+tier+".timeout_secs", 120)
	}

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":               "MEDEXPLAIN_SERVER_PORT",
		"server.read_timeout":       "MEDEXPLAIN_SERVER_READ_TIMEOUT",
		"server.write_timeout":      "MEDEXPLAIN_SERVER_WRITE_TIMEOUT",
		"server.environment":        "MEDEXPLAIN_SERVER_ENVIRONMENT",
		"store.driver":              "MEDEXPLAIN_STORE_DRIVER",
		"store.sqlite_path":         "MEDEXPLAIN_STORE_SQLITE_PATH",
		"db.host":                   "MEDEXPLAIN_DB_HOST",
		"db.port":                   "MEDEXPLAIN_DB_PORT",
		"db.user":                   "MEDEXPLAIN_DB_USER",
		"db.password":               "MEDEXPLAIN_DB_PASSWORD",
		"db.name":                   "MEDEXPLAIN_DB_NAME",
		"db.sslmode":                "MEDEXPLAIN_DB_SSLMODE",
		"db.max_open":               "MEDEXPLAIN_DB_MAX_OPEN",
		"db.max_idle":               "MEDEXPLAIN_DB_MAX_IDLE",
		"log.level":                 "MEDEXPLAIN_LOG_LEVEL",
		"log.format":                "MEDEXPLAIN_LOG_FORMAT",
		"cors.allowed_origins":      "MEDEXPLAIN_CORS_ALLOWED_ORIGINS",
		"upload.max_file_size_mb":   "MEDEXPLAIN_UPLOAD_MAX_FILE_SIZE_MB",
		"session.ttl":               "MEDEXPLAIN_SESSION_TTL",
		"session.sweep_schedule":    "MEDEXPLAIN_SESSION_SWEEP_SCHEDULE",
		"matrix.failure_policy":     "MEDEXPLAIN_MATRIX_FAILURE_POLICY",
		"matrix.max_pairs":          "MEDEXPLAIN_MATRIX_MAX_PAIRS",
		"breaker.failure_threshold": "MEDEXPLAIN_BREAKER_FAILURE_THRESHOLD",
		"breaker.open_timeout":      "MEDEXPLAIN_BREAKER_OPEN_TIMEOUT",
		"breaker.max_half_open":     "MEDEXPLAIN_BREAKER_MAX_HALF_OPEN",
		"tracing.enabled":           "MEDEXPLAIN_TRACING_ENABLED",
		"tracing.service_name":      "MEDEXPLAIN_TRACING_SERVICE_NAME",
		"tracing.otlp_endpoint":     "MEDEXPLAIN_TRACING_OTLP_ENDPOINT",
		"tracing.sample_rate":       "MEDEXPLAIN_TRACING_SAMPLE_RATE",
		"sentry.dsn":                "MEDEXPLAIN_SENTRY_DSN",
		"sentry.environment":        "MEDEXPLAIN_SENTRY_ENVIRONMENT",
		"parser.provider":           "MEDEXPLAIN_PARSER_PROVIDER",
		"parser.api_key":            "MEDEXPLAIN_PARSER_API_KEY",
		"parser.default_model":      "MEDEXPLAIN_PARSER_DEFAULT_MODEL",
		"parser.timeout_secs":       "MEDEXPLAIN_PARSER_TIMEOUT_SECS",
	}
	for _, tier := range []string{"primary", "secondary", "tertiary"} {
		prefix := "MEDEXPLAIN_PARSER_" + strings.ToUpper(tier) + "_"
		envBindings["parser."+tier+".provider"] = prefix + "PROVIDER"
		envBindings["parser."+tier+".api_key"] = prefix + "API_KEY"
		envBindings["parser."+tier+".default_model"] = prefix + "DEFAULT_MODEL"
		envBindings["parser."+tier+".timeout_secs"] = prefix + "TIMEOUT_SECS"
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if MEDEXPLAIN_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("MEDEXPLAIN_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Store = StoreConfig{
		Driver:     strings.ToLower(v.GetString("store.driver")),
		SQLitePath: v.GetString("store.sqlite_path"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}
	cfg.Session = SessionConfig{
		TTL:           v.GetDuration("session.ttl"),
		SweepSchedule: v.GetString("session.sweep_schedule"),
	}
	cfg.Matrix = MatrixConfig{
		FailurePolicy: strings.ToLower(v.GetString("matrix.failure_policy")),
		MaxPairs:      v.GetInt("matrix.max_pairs"),
	}
	cfg.Breaker = BreakerConfig{
		FailureThreshold: v.GetUint32("breaker.failure_threshold"),
		OpenTimeout:      v.GetDuration("breaker.open_timeout"),
		MaxHalfOpen:      v.GetUint32("breaker.max_half_open"),
	}
	cfg.Tracing = TracingConfig{
		Enabled:      v.GetBool("tracing.enabled"),
		ServiceName:  v.GetString("tracing.service_name"),
		OTLPEndpoint: v.GetString("tracing.otlp_endpoint"),
		SampleRate:   v.GetFloat64("tracing.sample_rate"),
	}
	cfg.Sentry = SentryConfig{
		DSN:         v.GetString("sentry.dsn"),
		Environment: v.GetString("sentry.environment"),
	}

	providerConfig := func(tier string) ParserProviderConfig {
		return ParserProviderConfig{
			Provider:     v.GetString("parser." + tier + ".provider"),
			APIKey:       v.GetString("parser." + tier + ".api_key"),
			DefaultModel: v.GetString("parser." + tier + ".default_model"),
			TimeoutSecs:  v.GetInt("parser." + tier + ".timeout_secs"),
		}
	}
	cfg.Parser = ParserConfig{
		Provider:     v.GetString("parser.provider"),
		APIKey:       v.GetString("parser.api_key"),
		DefaultModel: v.GetString("parser.default_model"),
		TimeoutSecs:  v.GetInt("parser.timeout_secs"),
		Primary:      providerConfig("primary"),
		Secondary:    providerConfig("secondary"),
		Tertiary:     providerConfig("tertiary"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case "memory", "postgres", "sqlite":
	default:
		return fmt.Errorf("unknown store driver: %s", c.Store.Driver)
	}
	switch c.Matrix.FailurePolicy {
	case "abort", "isolate":
	default:
		return fmt.Errorf("unknown matrix failure policy: %s", c.Matrix.FailurePolicy)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", c.Session.TTL)
	}
	return nil
}
