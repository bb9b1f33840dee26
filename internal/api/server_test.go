package api

import (
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/nola-insights/internal/config"
	"github.com/vfg2006/nola-insights/internal/domain"
	"github.com/vfg2006/nola-insights/internal/usecases/analyzing/mocks"
)

type emptyCatalog struct{}

func (emptyCatalog) Current() (*domain.Snapshot, error) { return nil, domain.ErrSnapshotUnavailable }

func (emptyCatalog) Load(ctx context.Context) (*domain.Snapshot, error) {
	return nil, domain.ErrSnapshotUnavailable
}

func newTestServer(t *testing.T) (*Server, *mocks.MockAnalyzer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	analyzer := mocks.NewMockAnalyzer(ctrl)

	cfg := &config.Config{
		Server: config.Server{Host: "localhost", Port: "0", AllowedOrigins: []string{"http://localhost:8501"}},
	}
	srv, err := New(cfg, analyzer, emptyCatalog{}, nil)
	require.NoError(t, err)
	return srv, analyzer
}

func TestServer_CorsAndCompression(t *testing.T) {
	srv, analyzer := newTestServer(t)

	options := &domain.DashboardOptions{Stores: []string{strings.Repeat("Loja ", 400)}}
	analyzer.EXPECT().Options().Return(options, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard/options", nil)
	req.Header.Set("Origin", "http://localhost:8501")
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:8501", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"stores"`)
}

func TestServer_PreflightAndUnknownOrigin(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/v1/dashboard", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
