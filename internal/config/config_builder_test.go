package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()

	require.NotNil(t, b)
	assert.Empty(t, b.configs)
	assert.NoError(t, b.err)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = errors.New("boom")

	cfg, err := b.build()

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "boom")
}

func TestBuild_MergesMultipleConfigs(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{
			App:    App{TokenSignKey: "secret"},
			Server: Server{HTTPAddress: "localhost:8080"},
		},
		&StructuredConfig{
			App:    App{TokenSignKey: "shadowed", TokenIssuer: "issuer"},
			Server: Server{RequestTimeout: 30 * time.Second},
			Answer: Answer{BaseURL: "http://localhost:5000", RequestTimeout: time.Minute},
		},
	)

	cfg, err := b.build()

	require.NoError(t, err)
	// first source wins for fields both sources set
	assert.Equal(t, "secret", cfg.App.TokenSignKey)
	// later sources fill the gaps
	assert.Equal(t, "issuer", cfg.App.TokenIssuer)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
}

func TestBuild_FailsValidation(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		Server: Server{HTTPAddress: "localhost:8080", RequestTimeout: 30 * time.Second},
		Answer: Answer{BaseURL: "http://localhost:5000", RequestTimeout: time.Minute},
	})

	_, err := b.build()

	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
}

func TestWithDefaults_FillsUnsetFields(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		App:    App{TokenSignKey: "secret"},
		Server: Server{HTTPAddress: "0.0.0.0:9999"},
	})

	cfg, err := b.withDefaults().build()

	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9999", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "accountgate", cfg.App.TokenIssuer)
	assert.Equal(t, time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "http://localhost:5000", cfg.Answer.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Workers.HealthInterval)
}

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("APP_TOKEN_SIGN_KEY", "from_env")

	b := newConfigBuilder().withEnv()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "from_env", b.configs[0].App.TokenSignKey)
}

func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})

	b.withJSON()

	assert.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"app":{"token_sign_key":"from_json"}}`), 0o600))

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: p})

	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "from_json", b.configs[1].App.TokenSignKey)
}

func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "missing.json"})

	b.withJSON()

	assert.Error(t, b.err)
	assert.Len(t, b.configs, 1)
}
