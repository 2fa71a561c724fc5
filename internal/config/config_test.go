package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Setenv("API_URL", "http://broker.local/")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "http://broker.local", cfg.APIURL)
	assert.Equal(t, ReferenceSourceStatic, cfg.ReferenceSource)
	assert.Equal(t, "product", cfg.FormVariant)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 5*time.Second, cfg.ErrorToastTTL)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.False(t, cfg.IsProduction())
}

func TestParse_MissingAPIURL(t *testing.T) {
	t.Setenv("API_URL", "")

	_, err := Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_URL")
}

func TestParse_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"reference source", "REFERENCE_SOURCE", "ftp"},
		{"variant", "FORM_VARIANT", "course"},
		{"timeout", "HTTP_TIMEOUT", "0s"},
		{"form idle ttl", "FORM_IDLE_TTL", "0s"},
		{"negative cache ttl", "REFERENCE_CACHE_TTL", "-1s"},
		{"api url scheme", "API_URL", "broker.local"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("API_URL", "http://broker.local")
			t.Setenv(tt.key, tt.value)

			_, err := Parse()
			assert.Error(t, err)
		})
	}
}

func TestParse_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("API_URL", "https://broker.example.com")
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Parse()
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg, err := Parse()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestParse_CORSOrigins(t *testing.T) {
	t.Setenv("API_URL", "http://broker.local")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, ,https://b.example.com")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowedOrigins)
}

func TestLoadEnv_SkipsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(present, []byte("LEADFORM_TEST_KEY=from-file\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("LEADFORM_TEST_KEY") })

	n, err := LoadEnv([]string{present, filepath.Join(dir, ".env.local")})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "from-file", os.Getenv("LEADFORM_TEST_KEY"))
}
