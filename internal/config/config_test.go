// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *StructuredConfig {
	cfg := &StructuredConfig{}
	cfg.Storage.DB.DSN = "postgres://localhost:5432/pagesmith"
	cfg.Server.HTTPAddress = "localhost:9090"
	cfg.Auth.TokenSignKey = "secret"
	cfg.Auth.TokenDuration = time.Hour
	cfg.Templates.Dir = "./templates"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{
			name:    "valid config",
			mutate:  func(cfg *StructuredConfig) {},
			wantErr: nil,
		},
		{
			name:    "missing DSN",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "missing server address",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:    "missing sign key",
			mutate:  func(cfg *StructuredConfig) { cfg.Auth.TokenSignKey = "" },
			wantErr: ErrInvalidAuthConfigs,
		},
		{
			name:    "zero token duration",
			mutate:  func(cfg *StructuredConfig) { cfg.Auth.TokenDuration = 0 },
			wantErr: ErrInvalidAuthConfigs,
		},
		{
			name:    "missing template dir",
			mutate:  func(cfg *StructuredConfig) { cfg.Templates.Dir = "" },
			wantErr: ErrInvalidTemplateConfigs,
		},
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

func TestParseEnv(t *testing.T) {
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://localhost:5432/pagesmith")
	t.Setenv("SERVER_ADDRESS", "localhost:9090")
	t.Setenv("AUTH_TOKEN_SIGN_KEY", "secret")
	t.Setenv("AUTH_TOKEN_ISSUER", "pagesmith")
	t.Setenv("AUTH_TOKEN_DURATION", "240h")
	t.Setenv("TEMPLATES_DIR", "/srv/templates")
	t.Setenv("TEMPLATES_NOT_FOUND", "404")

	var cfg StructuredConfig
	require.NoError(t, parseEnv(&cfg))

	assert.Equal(t, "postgres://localhost:5432/pagesmith", cfg.Storage.DB.DSN)
	assert.Equal(t, "localhost:9090", cfg.Server.HTTPAddress)
	assert.Equal(t, "secret", cfg.Auth.TokenSignKey)
	assert.Equal(t, "pagesmith", cfg.Auth.TokenIssuer)
	assert.Equal(t, 240*time.Hour, cfg.Auth.TokenDuration)
	assert.Equal(t, "/srv/templates", cfg.Templates.Dir)
	assert.Equal(t, "404", cfg.Templates.NotFound)
}

func TestNetAddressSet(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    NetAddress
		wantErr bool
	}{
		{name: "localhost with port", input: "localhost:8080", want: NetAddress{Host: "localhost", Port: 8080}},
		{name: "ip with port", input: "127.0.0.1:9090", want: NetAddress{Host: "127.0.0.1", Port: 9090}},
		{name: "empty host", input: ":8080", want: NetAddress{Host: "", Port: 8080}},
		{name: "no port", input: "localhost", wantErr: true},
		{name: "bad port", input: "localhost:http", wantErr: true},
		{name: "negative port", input: "localhost:-1", wantErr: true},
		{name: "bad host", input: "not-an-ip:8080", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var addr NetAddress
			err := addr.Set(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, addr)
		})
	}
}

func TestNetAddressString_UnsetIsEmpty(t *testing.T) {
	var addr NetAddress
	assert.Empty(t, addr.String())

	addr = NetAddress{Host: "localhost", Port: 9090}
	assert.Equal(t, "localhost:9090", addr.String())
}

func TestDurationJSON(t *testing.T) {
	t.Run("string form", func(t *testing.T) {
		var d Duration
		require.NoError(t, json.Unmarshal([]byte(`"1h30m"`), &d))
		assert.Equal(t, Duration(90*time.Minute), d)
	})

	t.Run("numeric form", func(t *testing.T) {
		var d Duration
		require.NoError(t, json.Unmarshal([]byte(`1000000000`), &d))
		assert.Equal(t, Duration(time.Second), d)
	})

	t.Run("bad string", func(t *testing.T) {
		var d Duration
		assert.Error(t, json.Unmarshal([]byte(`"soon"`), &d))
	})

	t.Run("round trip", func(t *testing.T) {
		out, err := json.Marshal(Duration(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, `"1m0s"`, string(out))

		var d Duration
		require.NoError(t, json.Unmarshal(out, &d))
		assert.Equal(t, Duration(time.Minute), d)
	})
}

func TestParseJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"auth": {"token_sign_key": "secret", "token_issuer": "pagesmith", "token_duration": "240h"},
		"storage": {"db": {"dsn": "postgres://localhost:5432/pagesmith"}},
		"server": {"http_address": "localhost:9090", "request_timeout": "30s"},
		"templates": {"dir": "./templates", "not_found": "not_found"}
	}`), 0o644))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Auth.TokenSignKey)
	assert.Equal(t, 240*time.Hour, cfg.Auth.TokenDuration)
	assert.Equal(t, "postgres://localhost:5432/pagesmith", cfg.Storage.DB.DSN)
	assert.Equal(t, "localhost:9090", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "./templates", cfg.Templates.Dir)
	assert.Equal(t, "not_found", cfg.Templates.NotFound)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestWriteThenReadJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	var cfg StructuredJSONConfig
	cfg.Server.HTTPAddress = "localhost:8080"
	cfg.Server.RequestTimeout = Duration(time.Minute)
	cfg.Templates.Dir = "./templates"

	require.NoError(t, WriteJSONFile(path, &cfg))

	got, err := ReadJSONFile(path)
	require.NoError(t, err)
	assert.Equal(t, "localhost:8080", got.Server.HTTPAddress)
	assert.Equal(t, Duration(time.Minute), got.Server.RequestTimeout)
	assert.Equal(t, "./templates", got.Templates.Dir)
}

func TestBuilderMerge_FirstNonZeroWins(t *testing.T) {
	envCfg := validConfig()

	fileCfg := &StructuredConfig{}
	fileCfg.Server.HTTPAddress = "localhost:1111"
	fileCfg.Templates.NotFound = "404"

	b := newConfigBuilder()
	b.configs = append(b.configs, envCfg, fileCfg)

	cfg, err := b.build()
	require.NoError(t, err)

	// mergo keeps the value of the earlier source; later sources only
	// fill fields still unset
	assert.Equal(t, "localhost:9090", cfg.Server.HTTPAddress)
	assert.Equal(t, "404", cfg.Templates.NotFound)
}

func TestBuilderBuild_InvalidConfigFails(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}
