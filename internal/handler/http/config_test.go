// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagesmith/pagesmith/internal/config"
	"github.com/pagesmith/pagesmith/internal/logger"
	"github.com/pagesmith/pagesmith/internal/render"
	"github.com/pagesmith/pagesmith/internal/service"
	"github.com/pagesmith/pagesmith/models"
)

func TestGetConfigEntry(t *testing.T) {
	svc := newTestServices()
	svc.config.getFn = func(ctx context.Context, key string) (models.ConfigEntry, error) {
		require.Equal(t, "site_title", key)
		return models.ConfigEntry{Key: "site_title", Value: "Pagesmith"}, nil
	}
	router := newTestRouter(t, svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/config/site_title", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Code    int                `json:"code"`
		Message models.ConfigEntry `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "Pagesmith", envelope.Message.Value)
}

func TestPutConfigEntry_PathKeyOverridesBody(t *testing.T) {
	svc := newTestServices()
	svc.allowAll("editor")

	var got models.ConfigEntry
	svc.config.putFn = func(ctx context.Context, entry models.ConfigEntry) error {
		got = entry
		return nil
	}
	router := newTestRouter(t, svc, nil)

	req := httptest.NewRequest(http.MethodPut, "/v1/config/theme",
		strings.NewReader(`{"config_key":"ignored","config_val":"dark"}`))
	req.AddCookie(&http.Cookie{Name: authCookieName, Value: "token"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.ConfigEntry{Key: "theme", Value: "dark"}, got)
}

func TestDeleteConfigEntry(t *testing.T) {
	svc := newTestServices()
	svc.allowAll("editor")

	var gotKey string
	svc.config.deleteFn = func(ctx context.Context, key string) error {
		gotKey = key
		return nil
	}
	router := newTestRouter(t, svc, nil)

	req := httptest.NewRequest(http.MethodDelete, "/v1/config/theme", nil)
	req.AddCookie(&http.Cookie{Name: authCookieName, Value: "token"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "theme", gotKey)
}

func TestLocalConfig_WithoutConfigFile(t *testing.T) {
	svc := newTestServices()
	router := newTestRouter(t, svc, nil) // no JSONFilePath configured

	req := httptest.NewRequest(http.MethodGet, "/v1/localConfig/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLocalConfig_ReadAndOverwrite(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{
		"server": {"http_address": "localhost:9090", "request_timeout": "30s"},
		"templates": {"dir": "./templates", "not_found": "not_found"}
	}`), 0o644))

	registry, err := render.NewRegistry(t.TempDir(), logger.Nop())
	require.NoError(t, err)

	svc := newTestServices()
	svc.allowAll("admin")

	cfg := &config.StructuredConfig{JSONFilePath: jsonPath}
	cfg.Templates.NotFound = "not_found"

	handler := NewHandler(&service.Services{
		PageService:     svc.pages,
		ModuleService:   svc.modules,
		CategoryService: svc.categories,
		AuthService:     svc.auth,
		ConfigService:   svc.config,
	}, registry, cfg, logger.Nop())
	router := handler.Init()

	// read the file back through the API
	req := httptest.NewRequest(http.MethodGet, "/v1/localConfig/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Code    int                         `json:"code"`
		Message config.StructuredJSONConfig `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "localhost:9090", envelope.Message.Server.HTTPAddress)

	// overwrite it
	req = httptest.NewRequest(http.MethodPut, "/v1/localConfig/",
		strings.NewReader(`{"server": {"http_address": "localhost:8080", "request_timeout": "1m"}}`))
	req.AddCookie(&http.Cookie{Name: authCookieName, Value: "token"})
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	written, err := config.ReadJSONFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "localhost:8080", written.Server.HTTPAddress)
}
