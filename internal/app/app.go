// Package app implements the application layer for lesscache.
package app

import (
	"context"
	"fmt"
	"io"
	"net"
	"runtime"

	"go.trai.ch/lesscache/internal/adapters/config"     //nolint:depguard // Wired in app layer
	"go.trai.ch/lesscache/internal/adapters/fs"         //nolint:depguard // Wired in app layer
	"go.trai.ch/lesscache/internal/adapters/httpserver" //nolint:depguard // Wired in app layer
	"go.trai.ch/lesscache/internal/adapters/watcher"    //nolint:depguard // Wired in app layer
	"go.trai.ch/lesscache/internal/core/domain"
	"go.trai.ch/lesscache/internal/core/ports"
	"go.trai.ch/lesscache/internal/engine/cache"
	"go.trai.ch/lesscache/internal/engine/refresher"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	manager    *cache.Manager
	factory    *config.Factory
	registry   *fs.Registry
	logger     ports.Logger
	server     *httpserver.Server
	refresher  *refresher.Refresher
	newWatcher watcher.Factory
}

// New creates a new App instance.
func New(
	manager *cache.Manager,
	factory *config.Factory,
	registry *fs.Registry,
	logger ports.Logger,
	server *httpserver.Server,
	ref *refresher.Refresher,
	newWatcher watcher.Factory,
) *App {
	return &App{
		manager:    manager,
		factory:    factory,
		registry:   registry,
		logger:     logger,
		server:     server,
		refresher:  ref,
		newWatcher: newWatcher,
	}
}

// CompileOptions configure App.Compile.
type CompileOptions struct {
	// Output receives the compiled style sheets in argument order.
	Output io.Writer
	// Repeat requests every file this many more times and logs whether the
	// answer came from the cache.
	Repeat int
	// Compress forces compressed output.
	Compress bool
	// StrictImports makes missing imports fail.
	StrictImports bool
}

// Compile compiles paths concurrently through the cache.
func (a *App) Compile(ctx context.Context, paths []string, opts CompileOptions) error {
	if len(paths) == 0 {
		return domain.ErrNoSourcesSpecified
	}

	if opts.Compress || opts.StrictImports {
		a.factory.Update(func(cfg *domain.Configuration) {
			cfg.Compress = cfg.Compress || opts.Compress
			cfg.StrictImports = cfg.StrictImports || opts.StrictImports
		})
	}

	sources := make([]*fs.FileSource, len(paths))
	for i, path := range paths {
		src, err := a.registry.Open(path)
		if err != nil {
			return err
		}
		sources[i] = src
	}

	outputs, err := a.compileAll(ctx, sources)
	if err != nil {
		return err
	}

	if opts.Output != nil {
		for _, out := range outputs {
			if _, err := io.WriteString(opts.Output, out.CSS); err != nil {
				return zerr.Wrap(err, "failed to write output")
			}
		}
	}

	for pass := range opts.Repeat {
		for _, src := range sources {
			hit := a.manager.Fresh(src)
			if _, err := a.manager.CompiledOutput(ctx, src); err != nil {
				return zerr.With(err, "path", src.Path())
			}
			state := "miss"
			if hit {
				state = "hit"
			}
			a.logger.Info(fmt.Sprintf("pass %d: %s cache %s", pass+2, src.Path(), state))
		}
	}
	return nil
}

func (a *App) compileAll(ctx context.Context, sources []*fs.FileSource) ([]domain.CompiledOutput, error) {
	outputs := make([]domain.CompiledOutput, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, src := range sources {
		g.Go(func() error {
			out, err := a.manager.CompiledOutput(gctx, src)
			if err != nil {
				return zerr.With(err, "path", src.Path())
			}
			outputs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}

// ServeOptions configure App.Serve.
type ServeOptions struct {
	// Listener replaces listening on Addr when set.
	Listener net.Listener
	// Addr is the TCP address to listen on.
	Addr string
	// Root is the directory served and, with Watch, watched. Empty keeps the
	// server's configured root.
	Root string
	// Watch recompiles affected style sheets when files under Root change.
	Watch bool
}

// Serve runs the HTTP server until ctx is canceled.
func (a *App) Serve(ctx context.Context, opts ServeOptions) error {
	l := opts.Listener
	if l == nil {
		var lc net.ListenConfig
		var err error
		l, err = lc.Listen(ctx, "tcp", opts.Addr)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrServeFailed.Error()), "addr", opts.Addr)
		}
	}

	if opts.Root != "" {
		if err := a.server.SetRoot(opts.Root); err != nil {
			_ = l.Close()
			return err
		}
	}
	root := a.server.Root()

	g, gctx := errgroup.WithContext(ctx)

	if opts.Watch {
		if err := a.watch(gctx, g, root); err != nil {
			_ = l.Close()
			return err
		}
	}

	a.logger.Info(fmt.Sprintf("serving %s on http://%s", root, l.Addr()))
	g.Go(func() error {
		return a.server.Serve(gctx, l)
	})

	return g.Wait()
}

// watch feeds file changes under root to the refresher until ctx is canceled.
func (a *App) watch(ctx context.Context, g *errgroup.Group, root string) error {
	w, err := a.newWatcher()
	if err != nil {
		return err
	}
	if err := w.Start(ctx, root); err != nil {
		_ = w.Stop()
		return err
	}

	debouncer := watcher.NewDebouncer(watcher.DefaultDebounceWindow, func(paths []string) {
		a.refresher.Invalidate(ctx, paths)
	})

	g.Go(func() error {
		defer debouncer.Stop()
		for event := range w.Events() {
			debouncer.Add(event.Path)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		return w.Stop()
	})

	a.logger.Info(fmt.Sprintf("watching %s", root))
	return nil
}

// Clear drops every cached compilation.
func (a *App) Clear() {
	a.manager.Clear()
	a.logger.Info("cache cleared")
}
