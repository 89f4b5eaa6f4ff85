package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvAsTimeDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"duration string", "15m", 15 * time.Minute},
		{"bare seconds", "30", 30 * time.Second},
		{"garbage falls back", "soon", time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			assert.Equal(t, tt.want, getEnvAsTimeDuration("TEST_DURATION", time.Hour))
		})
	}

	assert.Equal(t, time.Hour, getEnvAsTimeDuration("TEST_DURATION_UNSET", time.Hour))
}

func TestGetEnvAsSliceTrimsAndDropsEmpty(t *testing.T) {
	t.Setenv("TEST_SLICE", " a, b ,,c ")
	assert.Equal(t, []string{"a", "b", "c"}, getEnvAsSlice("TEST_SLICE", nil))
	assert.Equal(t, []string{"x"}, getEnvAsSlice("TEST_SLICE_UNSET", []string{"x"}))
}

func TestGetEnvAsIntAndBool(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_BAD_INT", "forty")
	t.Setenv("TEST_BOOL", "true")

	assert.Equal(t, 42, getEnvAsInt("TEST_INT", 1))
	assert.Equal(t, 1, getEnvAsInt("TEST_BAD_INT", 1))
	assert.True(t, getEnvAsBool("TEST_BOOL", false))
	assert.False(t, getEnvAsBool("TEST_BOOL_UNSET", false))
}

func TestLoadReadsQuoteVerification(t *testing.T) {
	t.Setenv("QUOTES_VERIFY_TOTALS", "true")
	t.Setenv("DB_MAX_CONNS", "25")

	cfg := Load()
	assert.True(t, cfg.Quotes.VerifyTotals)
	assert.Equal(t, 25, cfg.Database.MaxConns)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.AccessTokenExpiry)
}
