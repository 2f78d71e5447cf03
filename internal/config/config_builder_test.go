package config

import (
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// validConfig returns a StructuredConfig that passes validation.
func validConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenSignKey:  "secret",
			TokenIssuer:   "oneday-server",
			TokenDuration: time.Hour,
		},
		Storage: Storage{DB: DB{DSN: "postgres://localhost/oneday"}},
		Server:  Server{HTTPAddress: "localhost:8080"},
		Oracle: Oracle{
			APIKey:  "sk-test",
			BaseURL: "https://api.groq.com/openai/v1",
			Model:   "llama-3.1-8b-instant",
		},
	}
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that building with no configs fails
// validation (required fields are missing).
func TestBuild_EmptyBuilder(t *testing.T) {
	_, err := newConfigBuilder().build()
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = errors.New("boom")

	cfg, err := b.build()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

// TestBuild_MergePriority verifies that the first config added to the
// builder wins for fields set in multiple sources.
func TestBuild_MergePriority(t *testing.T) {
	b := newConfigBuilder()

	first := validConfig()
	first.Server.HTTPAddress = "localhost:1111"

	second := validConfig()
	second.Server.HTTPAddress = "localhost:2222"
	second.Server.RequestTimeout = 45 * time.Second

	b.configs = append(b.configs, first, second)

	cfg, err := b.build()
	require.NoError(t, err)

	// first source wins where both are set
	assert.Equal(t, "localhost:1111", cfg.Server.HTTPAddress)
	// second source fills gaps left by the first
	assert.Equal(t, 45*time.Second, cfg.Server.RequestTimeout)
}

// TestBuild_DefaultsFillGaps verifies that withDefaults supplies fallbacks
// without overriding explicitly configured values.
func TestBuild_DefaultsFillGaps(t *testing.T) {
	b := newConfigBuilder()

	explicit := validConfig()
	explicit.Oracle.Model = "custom-model"
	b.configs = append(b.configs, explicit)

	cfg, err := b.withDefaults().build()
	require.NoError(t, err)

	assert.Equal(t, "custom-model", cfg.Oracle.Model)
	assert.Equal(t, defaultConfig.Oracle.RequestTimeout, cfg.Oracle.RequestTimeout)
	assert.Equal(t, defaultConfig.Server.RequestTimeout, cfg.Server.RequestTimeout)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_FileMergedWhenPathSet verifies that a JSON file referenced by
// an earlier source is parsed and appended to the builder.
func TestWithJSON_FileMergedWhenPathSet(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"server": map[string]any{
			"http_address":    "localhost:9999",
			"request_timeout": "1m",
		},
	})

	b := newConfigBuilder()
	head := validConfig()
	head.Server.HTTPAddress = "" // let the JSON file provide it
	head.JSONFilePath = path
	b.configs = append(b.configs, head)

	cfg, err := b.withJSON().build()
	require.NoError(t, err)

	assert.Equal(t, "localhost:9999", cfg.Server.HTTPAddress)
	assert.Equal(t, time.Minute, cfg.Server.RequestTimeout)
}

// TestWithJSON_MissingFile verifies that a dangling JSON path surfaces as a
// build error.
func TestWithJSON_MissingFile(t *testing.T) {
	b := newConfigBuilder()
	head := validConfig()
	head.JSONFilePath = "/definitely/not/there.json"
	b.configs = append(b.configs, head)

	_, err := b.withJSON().build()
	assert.Error(t, err)
}

// TestWithJSON_NoPathIsNoop verifies that withJSON does nothing when no
// source specified a JSON file.
func TestWithJSON_NoPathIsNoop(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, validConfig())

	cfg, err := b.withJSON().build()
	require.NoError(t, err)
	assert.Len(t, b.configs, 1)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
}

// ── validate ──────────────────────────────────────────────────────────────────

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*StructuredConfig)
		wantErr error
	}{
		{"valid", func(*StructuredConfig) {}, nil},
		{"missing DSN", func(c *StructuredConfig) { c.Storage.DB.DSN = "" }, ErrInvalidStorageConfigs},
		{"missing sign key", func(c *StructuredConfig) { c.App.TokenSignKey = "" }, ErrInvalidAppConfigs},
		{"zero token duration", func(c *StructuredConfig) { c.App.TokenDuration = 0 }, ErrInvalidAppConfigs},
		{"missing address", func(c *StructuredConfig) { c.Server.HTTPAddress = "" }, ErrInvalidServerConfigs},
		{"missing oracle key", func(c *StructuredConfig) { c.Oracle.APIKey = "" }, ErrInvalidOracleConfigs},
		{"missing oracle model", func(c *StructuredConfig) { c.Oracle.Model = "" }, ErrInvalidOracleConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
