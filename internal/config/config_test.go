package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docbridge/internal/config"
	"docbridge/internal/domain"
)

func TestAWSConfig_Validate_MissingRegion(t *testing.T) {
	cfg := config.AWSConfig{AccessKey: "AKIA", SecretKey: "secret"}
	assert.ErrorIs(t, cfg.Validate(), domain.ErrRegionMissing)
}

func TestAWSConfig_Validate_MissingCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.AWSConfig
	}{
		{"no keys", config.AWSConfig{Region: "us-east-1"}},
		{"access key only", config.AWSConfig{Region: "us-east-1", AccessKey: "AKIA"}},
		{"secret key only", config.AWSConfig{Region: "us-east-1", SecretKey: "secret"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.cfg.Validate(), domain.ErrCredentialsMissing)
		})
	}
}

func TestAWSConfig_Validate_OK(t *testing.T) {
	cfg := config.AWSConfig{Region: "us-east-1", AccessKey: "AKIA", SecretKey: "secret"}
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 600*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "us-east-1", cfg.AWS.Region)
	assert.Equal(t, "docbridge-ocr/", cfg.OCR.KeyPrefix)
	assert.Equal(t, 3, cfg.OCR.PollIntervalSecs)
	assert.Equal(t, 300, cfg.OCR.TimeoutSecs)
	assert.Equal(t, 1024, cfg.Converse.MaxTokens)
	assert.InDelta(t, 0.5, cfg.Converse.Temperature, 0.0001)
	assert.Empty(t, cfg.Auth.Secret)
	assert.Equal(t, []string{"http://localhost:5678", "http://127.0.0.1:5678"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DOCBRIDGE_SERVER_PORT", ":9090")
	t.Setenv("DOCBRIDGE_AWS_REGION", "eu-west-1")
	t.Setenv("DOCBRIDGE_OCR_BUCKET", "scratch-bucket")
	t.Setenv("DOCBRIDGE_OCR_POLL_INTERVAL_SECS", "5")
	t.Setenv("DOCBRIDGE_CONVERSE_MODEL_ID", "anthropic.claude-3-haiku-20240307-v1:0")
	t.Setenv("DOCBRIDGE_CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "eu-west-1", cfg.AWS.Region)
	assert.Equal(t, "scratch-bucket", cfg.OCR.Bucket)
	assert.Equal(t, 5, cfg.OCR.PollIntervalSecs)
	assert.Equal(t, "anthropic.claude-3-haiku-20240307-v1:0", cfg.Converse.ModelID)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_PlatformPortFallback(t *testing.T) {
	t.Setenv("PORT", "3000")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.Server.Port)
}

func TestLoad_ExplicitPortWinsOverPlatformPort(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("DOCBRIDGE_SERVER_PORT", ":9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)
}
