package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookup(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg, err := FromLookup(lookup(nil))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "pt-BR", cfg.DefaultLocale)
	assert.Equal(t, "300-M", cfg.RateLimit)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Empty(t, cfg.RedisURL)
	assert.Empty(t, cfg.CORSOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestFromLookup_Overrides(t *testing.T) {
	cfg, err := FromLookup(lookup(map[string]string{
		"ENVIRONMENT":    "production",
		"PORT":           "9000",
		"DATABASE_URL":   "postgres://localhost/orders",
		"DEFAULT_LOCALE": "en",
		"RATE_LIMIT":     "10-S",
		"CORS_ORIGINS":   "https://a.example, https://b.example,",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "en", cfg.DefaultLocale)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestFromLookup_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
	}{
		{"bad locale", map[string]string{"DEFAULT_LOCALE": "!!"}},
		{"bad rate", map[string]string{"RATE_LIMIT": "lots"}},
		{"production without cors", map[string]string{"ENVIRONMENT": "production"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromLookup(lookup(tt.values))
			assert.Error(t, err)
		})
	}
}
