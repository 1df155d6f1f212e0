package app_test

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lesscache/internal/adapters/compiler"
	"go.trai.ch/lesscache/internal/adapters/config"
	"go.trai.ch/lesscache/internal/adapters/fs"
	"go.trai.ch/lesscache/internal/adapters/httpserver"
	"go.trai.ch/lesscache/internal/adapters/store"
	"go.trai.ch/lesscache/internal/adapters/watcher"
	"go.trai.ch/lesscache/internal/app"
	"go.trai.ch/lesscache/internal/core/domain"
	"go.trai.ch/lesscache/internal/core/ports"
	"go.trai.ch/lesscache/internal/core/ports/mocks"
	"go.trai.ch/lesscache/internal/engine/cache"
	"go.trai.ch/lesscache/internal/engine/refresher"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// messages collects what the application logs.
type messages struct {
	mu   sync.Mutex
	info []string
	errs []error
}

func (m *messages) has(substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.info {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

type fixture struct {
	root    string
	app     *app.App
	manager *cache.Manager
	logs    *messages
}

func newFixture(t *testing.T, newWatcher watcher.Factory) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	logs := &messages{}
	log.EXPECT().Info(gomock.Any()).Do(func(msg string) {
		logs.mu.Lock()
		defer logs.mu.Unlock()
		logs.info = append(logs.info, msg)
	}).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).Do(func(err error) {
		logs.mu.Lock()
		defer logs.mu.Unlock()
		logs.errs = append(logs.errs, err)
	}).AnyTimes()

	root := t.TempDir()
	registry := fs.NewRegistry()
	factory := config.NewFactory(nil)
	manager := cache.NewManager(store.NewStore(), compiler.New(), factory, log)
	ref := refresher.New(manager, log)
	server := httpserver.New(manager, httpserver.RegistryOpener(registry), log, httpserver.Options{
		Root:       root,
		OnCompiled: ref.Track,
	})

	if newWatcher == nil {
		newWatcher = func() (ports.Watcher, error) { return watcher.NewWatcher(log) }
	}

	return &fixture{
		root:    root,
		app:     app.New(manager, factory, registry, log, server, ref, newWatcher),
		manager: manager,
		logs:    logs,
	}
}

func (f *fixture) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(f.root, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestApp_CompileNoSources(t *testing.T) {
	f := newFixture(t, nil)

	err := f.app.Compile(t.Context(), nil, app.CompileOptions{})

	require.ErrorIs(t, err, domain.ErrNoSourcesSpecified)
}

func TestApp_CompileWritesInArgumentOrder(t *testing.T) {
	f := newFixture(t, nil)
	first := f.write(t, "first.less", "a { color: red; }\n")
	second := f.write(t, "second.less", "b { color: blue; }\n")

	var out bytes.Buffer
	err := f.app.Compile(t.Context(), []string{second, first}, app.CompileOptions{Output: &out})
	require.NoError(t, err)

	assert.Equal(t, "b { color: blue; }\na { color: red; }\n", out.String())
	assert.Equal(t, 2, f.manager.Len())
}

func TestApp_CompileRepeatHitsCache(t *testing.T) {
	f := newFixture(t, nil)
	path := f.write(t, "site.less", "a { color: red; }\n")

	err := f.app.Compile(t.Context(), []string{path}, app.CompileOptions{Repeat: 2})
	require.NoError(t, err)

	assert.True(t, f.logs.has("pass 2: "+path+" cache hit"))
	assert.True(t, f.logs.has("pass 3: "+path+" cache hit"))
}

func TestApp_CompileFlags(t *testing.T) {
	f := newFixture(t, nil)
	path := f.write(t, "site.less", "@import \"absent\";\na {\n  color: red;\n}\n")

	var out bytes.Buffer
	err := f.app.Compile(t.Context(), []string{path}, app.CompileOptions{Output: &out, Compress: true})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "a{color:red}")

	f.app.Clear()
	err = f.app.Compile(t.Context(), []string{path}, app.CompileOptions{StrictImports: true})
	require.ErrorIs(t, err, domain.ErrImportNotFound)
}

func TestApp_CompileError(t *testing.T) {
	f := newFixture(t, nil)
	good := f.write(t, "good.less", "a { color: red; }\n")
	bad := f.write(t, "bad.less", "a { color: @missing; }\n")

	var out bytes.Buffer
	err := f.app.Compile(t.Context(), []string{good, bad}, app.CompileOptions{Output: &out})

	require.ErrorIs(t, err, domain.ErrUndefinedVariable)
	var compileErr *domain.CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, 1, compileErr.Line)
	assert.Empty(t, out.String(), "nothing is written when a file fails")
}

func TestApp_CompileMissingFile(t *testing.T) {
	f := newFixture(t, nil)

	err := f.app.Compile(t.Context(), []string{filepath.Join(f.root, "absent.less")}, app.CompileOptions{})

	require.ErrorIs(t, err, domain.ErrSourceUnreadable)
}

func TestApp_Clear(t *testing.T) {
	f := newFixture(t, nil)
	path := f.write(t, "site.less", "a { color: red; }\n")
	require.NoError(t, f.app.Compile(t.Context(), []string{path}, app.CompileOptions{}))

	f.app.Clear()

	assert.Zero(t, f.manager.Len())
	assert.True(t, f.logs.has("cache cleared"))
}

func serve(t *testing.T, f *fixture, watch bool) (string, func() error) {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() {
		done <- f.app.Serve(ctx, app.ServeOptions{Listener: l, Root: f.root, Watch: watch})
	}()

	base := "http://" + l.Addr().String()
	require.Eventually(t, func() bool {
		return get(t, base+"/healthz") == "ok"
	}, 5*time.Second, 10*time.Millisecond)

	return base, func() error {
		cancel()
		select {
		case err := <-done:
			return err
		case <-time.After(10 * time.Second):
			return errors.New("serve did not return")
		}
	}
}

func get(t *testing.T, url string) string {
	t.Helper()
	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, url, http.NoBody)
	if err != nil {
		return ""
	}
	req.Close = true
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return ""
	}
	defer func() { _ = resp.Body.Close() }()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	return buf.String()
}

func TestApp_ServeStopsOnCancel(t *testing.T) {
	f := newFixture(t, nil)
	f.write(t, "site.less", "a { color: red; }\n")

	base, stop := serve(t, f, false)

	assert.Contains(t, get(t, base+"/css/site.css"), "color: red")
	require.NoError(t, stop())
	assert.True(t, f.logs.has("serving "+f.root))
}

func TestApp_ServeWatchRefreshesDependents(t *testing.T) {
	f := newFixture(t, nil)
	f.write(t, "site.less", "@import \"colors\";\na { color: @brand; }\n")
	colors := f.write(t, "colors.less", "@brand: red;\n")

	base, stop := serve(t, f, true)
	defer func() { require.NoError(t, stop()) }()

	require.Contains(t, get(t, base+"/css/site.css"), "color: red")

	future := time.Now().Add(time.Minute)
	require.NoError(t, os.WriteFile(colors, []byte("@brand: blue;\n"), 0o600))
	require.NoError(t, os.Chtimes(colors, future, future))

	require.Eventually(t, func() bool {
		return f.logs.has("refreshed " + filepath.Join(f.root, "site.less"))
	}, 5*time.Second, 20*time.Millisecond)

	assert.Contains(t, get(t, base+"/css/site.css"), "color: blue")
}

func TestApp_ServeWatcherFailure(t *testing.T) {
	boom := errors.New("too many open files")
	f := newFixture(t, func() (ports.Watcher, error) { return nil, boom })

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	err = f.app.Serve(t.Context(), app.ServeOptions{Listener: l, Root: f.root, Watch: true})

	require.ErrorIs(t, err, boom)
}

func TestApp_ServeListenFailure(t *testing.T) {
	f := newFixture(t, nil)

	err := f.app.Serve(t.Context(), app.ServeOptions{Addr: "256.0.0.1:0"})

	require.ErrorContains(t, err, domain.ErrServeFailed.Error())
}
