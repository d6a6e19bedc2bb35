package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"docbridge/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	AWS      AWSConfig
	OCR      OCRConfig
	Converse ConverseConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// AWSConfig holds the shared AWS client settings. Every service client is
// built from the same static key pair.
type AWSConfig struct {
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Endpoint  string `mapstructure:"endpoint"`
}

// Validate checks the settings every AWS client needs. Clients fail at
// construction rather than on first use.
func (a *AWSConfig) Validate() error {
	if a.Region == "" {
		return domain.ErrRegionMissing
	}
	if a.AccessKey == "" || a.SecretKey == "" {
		return domain.ErrCredentialsMissing
	}
	return nil
}

// OCRConfig holds text-extraction defaults. Bucket and KeyPrefix locate
// temporary PDF uploads; node parameters may override Bucket per batch.
type OCRConfig struct {
	Bucket           string `mapstructure:"bucket"`
	KeyPrefix        string `mapstructure:"key_prefix"`
	PollIntervalSecs int    `mapstructure:"poll_interval_secs"`
	TimeoutSecs      int    `mapstructure:"timeout_secs"`
}

// ConverseConfig holds model invocation defaults.
type ConverseConfig struct {
	ModelID     string  `mapstructure:"model_id"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

// AuthConfig holds bearer-token settings. An empty secret disables auth;
// the sidecar is then expected to listen on a trusted interface only.
type AuthConfig struct {
	Secret string `mapstructure:"secret"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the DOCBRIDGE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DOCBRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "600s")
	v.SetDefault("server.environment", "development")

	// AWS defaults
	v.SetDefault("aws.region", "us-east-1")
	v.SetDefault("aws.access_key", "")
	v.SetDefault("aws.secret_key", "")
	v.SetDefault("aws.endpoint", "")

	// OCR defaults
	v.SetDefault("ocr.bucket", "")
	v.SetDefault("ocr.key_prefix", "docbridge-ocr/")
	v.SetDefault("ocr.poll_interval_secs", 3)
	v.SetDefault("ocr.timeout_secs", 300)

	// Converse defaults
	v.SetDefault("converse.model_id", "")
	v.SetDefault("converse.max_tokens", 1024)
	v.SetDefault("converse.temperature", 0.5)

	// Auth defaults
	v.SetDefault("auth.secret", "")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:5678,http://127.0.0.1:5678")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":            "DOCBRIDGE_SERVER_PORT",
		"server.read_timeout":    "DOCBRIDGE_SERVER_READ_TIMEOUT",
		"server.write_timeout":   "DOCBRIDGE_SERVER_WRITE_TIMEOUT",
		"server.environment":     "DOCBRIDGE_SERVER_ENVIRONMENT",
		"aws.region":             "DOCBRIDGE_AWS_REGION",
		"aws.access_key":         "DOCBRIDGE_AWS_ACCESS_KEY",
		"aws.secret_key":         "DOCBRIDGE_AWS_SECRET_KEY",
		"aws.endpoint":           "DOCBRIDGE_AWS_ENDPOINT",
		"ocr.bucket":             "DOCBRIDGE_OCR_BUCKET",
		"ocr.key_prefix":         "DOCBRIDGE_OCR_KEY_PREFIX",
		"ocr.poll_interval_secs": "DOCBRIDGE_OCR_POLL_INTERVAL_SECS",
		"ocr.timeout_secs":       "DOCBRIDGE_OCR_TIMEOUT_SECS",
		"converse.model_id":      "DOCBRIDGE_CONVERSE_MODEL_ID",
		"converse.max_tokens":    "DOCBRIDGE_CONVERSE_MAX_TOKENS",
		"converse.temperature":   "DOCBRIDGE_CONVERSE_TEMPERATURE",
		"auth.secret":            "DOCBRIDGE_AUTH_SECRET",
		"log.level":              "DOCBRIDGE_LOG_LEVEL",
		"log.format":             "DOCBRIDGE_LOG_FORMAT",
		"cors.allowed_origins":   "DOCBRIDGE_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if DOCBRIDGE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DOCBRIDGE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.AWS = AWSConfig{
		Region:    v.GetString("aws.region"),
		AccessKey: v.GetString("aws.access_key"),
		SecretKey: v.GetString("aws.secret_key"),
		Endpoint:  v.GetString("aws.endpoint"),
	}
	cfg.OCR = OCRConfig{
		Bucket:           v.GetString("ocr.bucket"),
		KeyPrefix:        v.GetString("ocr.key_prefix"),
		PollIntervalSecs: v.GetInt("ocr.poll_interval_secs"),
		TimeoutSecs:      v.GetInt("ocr.timeout_secs"),
	}
	cfg.Converse = ConverseConfig{
		ModelID:     v.GetString("converse.model_id"),
		MaxTokens:   v.GetInt("converse.max_tokens"),
		Temperature: v.GetFloat64("converse.temperature"),
	}
	cfg.Auth = AuthConfig{
		Secret: v.GetString("auth.secret"),
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

	return cfg, nil
}
