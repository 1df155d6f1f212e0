package httpserver_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lesscache/internal/adapters/compiler"
	"go.trai.ch/lesscache/internal/adapters/fs"
	"go.trai.ch/lesscache/internal/adapters/httpserver"
	"go.trai.ch/lesscache/internal/adapters/metrics"
	"go.trai.ch/lesscache/internal/adapters/store"
	"go.trai.ch/lesscache/internal/core/ports"
	"go.trai.ch/lesscache/internal/core/ports/mocks"
	"go.trai.ch/lesscache/internal/engine/cache"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	root     string
	server   *httptest.Server
	manager  *cache.Manager
	registry *fs.Registry

	mu       sync.Mutex
	compiled []string
}

func (f *fixture) compiledKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.compiled)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	f := &fixture{root: t.TempDir()}
	f.registry = fs.NewRegistry()
	recorder := metrics.NewRecorder()
	f.manager = cache.NewManager(store.NewStore(), compiler.New(), nil, log, cache.WithMetrics(recorder))

	srv := httpserver.New(f.manager, httpserver.RegistryOpener(f.registry), log, httpserver.Options{
		Root:       f.root,
		Metrics:    recorder.Handler(),
		RequestLog: slog.New(slog.NewTextHandler(io.Discard, nil)),
		OnCompiled: func(src ports.Source) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.compiled = append(f.compiled, src.Key().String())
		},
	})

	f.server = httptest.NewServer(srv.Handler())
	t.Cleanup(f.server.Close)
	return f
}

func (f *fixture) write(t *testing.T, name, content string, modified time.Time) {
	t.Helper()
	path := filepath.Join(f.root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	require.NoError(t, os.Chtimes(path, modified, modified))
}

func (f *fixture) do(t *testing.T, method, target string, header http.Header) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequestWithContext(t.Context(), method, f.server.URL+target, http.NoBody)
	require.NoError(t, err)
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

var modified = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestServer_ServesCompiledCSS(t *testing.T) {
	f := newFixture(t)
	f.write(t, "site.less", "@import \"colors\";\na { color: @brand; }\n", modified)
	f.write(t, "colors.less", "@brand: #336699;\n", modified)

	resp, body := f.do(t, http.MethodGet, "/css/site.css", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Equal(t, "text/css; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, body, "a { color: #336699; }")
	assert.Equal(t, modified.Format(http.TimeFormat), resp.Header.Get("Last-Modified"))
	assert.NotEmpty(t, resp.Header.Get("ETag"))
	assert.Equal(t, []string{filepath.Join(f.root, "site.less")}, f.compiledKeys())
}

func TestServer_NestedPath(t *testing.T) {
	f := newFixture(t)
	f.write(t, "themes/dark.less", "body { background: black; }\n", modified)

	resp, body := f.do(t, http.MethodGet, "/css/themes/dark.css", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "background: black")
}

func TestServer_ConditionalRequests(t *testing.T) {
	f := newFixture(t)
	f.write(t, "site.less", "a { color: red; }\n", modified)

	first, _ := f.do(t, http.MethodGet, "/css/site.css", nil)
	require.Equal(t, http.StatusOK, first.StatusCode)
	etag := first.Header.Get("ETag")

	t.Run("if-none-match", func(t *testing.T) {
		resp, body := f.do(t, http.MethodGet, "/css/site.css", http.Header{"If-None-Match": {etag}})
		assert.Equal(t, http.StatusNotModified, resp.StatusCode)
		assert.Empty(t, body)
	})

	t.Run("stale etag", func(t *testing.T) {
		resp, _ := f.do(t, http.MethodGet, "/css/site.css", http.Header{"If-None-Match": {`"0000000000000000"`}})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("if-modified-since", func(t *testing.T) {
		resp, _ := f.do(t, http.MethodGet, "/css/site.css", http.Header{
			"If-Modified-Since": {modified.Format(http.TimeFormat)},
		})
		assert.Equal(t, http.StatusNotModified, resp.StatusCode)
	})

	t.Run("modified after", func(t *testing.T) {
		resp, _ := f.do(t, http.MethodGet, "/css/site.css", http.Header{
			"If-Modified-Since": {modified.Add(-time.Hour).Format(http.TimeFormat)},
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestServer_ImportEditAdvancesLastModified(t *testing.T) {
	f := newFixture(t)
	f.write(t, "root.less", "@import \"imported1\";\nbody { color: @c; }\n", modified)
	f.write(t, "imported1.less", "@c: red;\n", modified)

	first, _ := f.do(t, http.MethodGet, "/css/root.css", nil)
	require.Equal(t, http.StatusOK, first.StatusCode)
	since := first.Header.Get("Last-Modified")

	edited := modified.Add(time.Minute)
	f.write(t, "imported1.less", "@c: blue;\n", edited)

	resp, body := f.do(t, http.MethodGet, "/css/root.css", http.Header{"If-Modified-Since": {since}})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "color: blue")
	assert.Equal(t, edited.Format(http.TimeFormat), resp.Header.Get("Last-Modified"))
}

func TestServer_EditChangesETag(t *testing.T) {
	f := newFixture(t)
	f.write(t, "site.less", "@import \"colors\";\na { color: @brand; }\n", modified)
	f.write(t, "colors.less", "@brand: red;\n", modified)

	first, _ := f.do(t, http.MethodGet, "/css/site.css", nil)
	f.write(t, "colors.less", "@brand: blue;\n", modified.Add(time.Minute))
	second, body := f.do(t, http.MethodGet, "/css/site.css", nil)

	assert.NotEqual(t, first.Header.Get("ETag"), second.Header.Get("ETag"))
	assert.Contains(t, body, "color: blue")
}

func TestServer_Errors(t *testing.T) {
	f := newFixture(t)
	f.write(t, "broken.less", "a { color: @missing; }\n", modified)

	tests := []struct {
		name   string
		target string
		status int
		body   string
	}{
		{"missing source", "/css/absent.css", http.StatusNotFound, "not found"},
		{"not a css path", "/css/site.less", http.StatusNotFound, ""},
		{"traversal", "/css/../../etc/passwd.css", http.StatusNotFound, ""},
		{"hidden file", "/css/.secret.css", http.StatusNotFound, ""},
		{"compile error", "/css/broken.css", http.StatusUnprocessableEntity, "variable @missing is undefined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := f.do(t, http.MethodGet, tt.target, nil)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Contains(t, body, tt.body)
		})
	}
}

func TestServer_MissingSourcesAreNotRegistered(t *testing.T) {
	f := newFixture(t)
	f.write(t, "site.less", "a { color: red; }\n", modified)

	resp, _ := f.do(t, http.MethodGet, "/css/site.css", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 1, f.registry.Len())

	for _, name := range []string{"a", "b", "nested/c"} {
		resp, _ := f.do(t, http.MethodGet, "/css/"+name+".css", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	}
	assert.Equal(t, 1, f.registry.Len())
}

func TestServer_Clear(t *testing.T) {
	f := newFixture(t)
	f.write(t, "site.less", "a { color: red; }\n", modified)

	_, _ = f.do(t, http.MethodGet, "/css/site.css", nil)
	require.Equal(t, 1, f.manager.Len())

	resp, _ := f.do(t, http.MethodPost, "/cache/clear", nil)

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Zero(t, f.manager.Len())
}

func TestServer_HealthAndMetrics(t *testing.T) {
	f := newFixture(t)
	f.write(t, "site.less", "a { color: red; }\n", modified)
	_, _ = f.do(t, http.MethodGet, "/css/site.css", nil)
	_, _ = f.do(t, http.MethodGet, "/css/site.css", nil)

	resp, body := f.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body)

	resp, body = f.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "lesscache_cache_hits_total 1")
	assert.Contains(t, body, `lesscache_cache_misses_total{reason="absent"} 1`)
}

func TestServer_RequestLog(t *testing.T) {
	var buf bytes.Buffer
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	srv := httpserver.New(nil, nil, log, httpserver.Options{
		RequestLog: slog.New(slog.NewTextHandler(&buf, nil)),
	})
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, buf.String(), "path=/healthz")
	assert.Contains(t, buf.String(), "status=200")
}

func TestServer_ServeShutsDownOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	srv := httpserver.New(nil, nil, mocks.NewMockLogger(ctrl), httpserver.Options{})

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, l) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + l.Addr().String() + "/healthz") //nolint:noctx // test helper
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}
