package cmd

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"localstore/internal/adapters/out/inmem"
	"localstore/internal/adapters/out/kafka"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig(t *testing.T) Config {
	t.Helper()
	seedFile := filepath.Join(t.TempDir(), "tree.json")
	require.NoError(t, os.WriteFile(seedFile, []byte(`{
		"Accounts": {"DeliveryPartner": {"9876543210": {"profile": {"status": "offline", "account": {"password": "secret"}}}}}
	}`), 0o600))

	return Config{
		Store:  StoreConfig{Backend: "memory", SeedFile: seedFile},
		Auth:   AuthConfig{JWTSecret: "s3cret", Issuer: "partnersd", SessionTTL: time.Hour},
		Fanout: FanoutConfig{StepTimeout: time.Second},
		Jobs:   JobsConfig{NewOrders: "@every 10s", RecentOrders: "@every 30s", SessionExpiry: "@every 5m"},
	}
}

func TestCompositionRoot_InMemory(t *testing.T) {
	app, err := NewCompositionRoot(t.Context(), memoryConfig(t), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer func() { require.NoError(t, app.Close()) }()

	assert.IsType(t, kafka.NoopPublisher{}, app.publisher)
	assert.IsType(t, &inmem.SeenSet{}, app.seen)

	e := app.CreateRouter()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/login",
		strings.NewReader(`{"role":"deliveryPartner","userId":"9876543210","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	jm := app.CreateJobManager()
	require.NoError(t, jm.StartAll())
	jm.StopAll()
}

func TestCompositionRoot_MissingSeedFile(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.Store.SeedFile = filepath.Join(t.TempDir(), "missing.json")

	_, err := NewCompositionRoot(t.Context(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.ErrorContains(t, err, "read store seed")
}
