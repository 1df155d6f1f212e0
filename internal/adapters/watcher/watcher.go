package watcher

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/lesscache/internal/core/domain"
	"go.trai.ch/lesscache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

const eventBuffer = 100

// styleExtensions are the file types a style-sheet tree is rebuilt from.
// Paths without an extension (directories, extensionless renames) are relayed too.
var styleExtensions = map[string]bool{
	".less": true,
	".css":  true,
}

// opTable maps fsnotify operations to watch operations, in priority order.
// Chmod has no entry and is dropped.
var opTable = []struct {
	from fsnotify.Op
	to   ports.WatchOp
}{
	{fsnotify.Write, ports.OpWrite},
	{fsnotify.Create, ports.OpCreate},
	{fsnotify.Remove, ports.OpRemove},
	{fsnotify.Rename, ports.OpRename},
}

// Watcher relays changes below a style-sheet root. Hidden directories and
// node_modules are not watched, and editor temporaries are filtered out.
type Watcher struct {
	notify *fsnotify.Watcher
	logger ports.Logger
	out    chan ports.WatchEvent
}

// NewWatcher creates a Watcher. Watch errors are reported to logger, which may be nil.
func NewWatcher(logger ports.Logger) (*Watcher, error) {
	notify, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrWatchFailed.Error())
	}
	return &Watcher{
		notify: notify,
		logger: logger,
		out:    make(chan ports.WatchEvent, eventBuffer),
	}, nil
}

// Start watches every directory below root and relays events until ctx is done.
func (w *Watcher) Start(ctx context.Context, root string) error {
	for dir := range directories(root) {
		if err := w.notify.Add(dir); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "path", dir)
		}
	}
	go w.run(ctx)
	return nil
}

// Stop releases the underlying watch descriptors.
func (w *Watcher) Stop() error {
	return w.notify.Close()
}

// Events yields relayed events. The sequence ends when the watcher stops or
// its context is canceled.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.out {
			if !yield(event) {
				return
			}
		}
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.out)

	for {
		select {
		case <-ctx.Done():
			return
		case raw, ok := <-w.notify.Events:
			if !ok || !w.relay(ctx, raw) {
				return
			}
		case err, ok := <-w.notify.Errors:
			if !ok {
				return
			}
			w.report(zerr.Wrap(err, "file watcher error"))
		}
	}
}

// relay forwards one raw event and starts watching directories it creates.
// It returns false once ctx is done.
func (w *Watcher) relay(ctx context.Context, raw fsnotify.Event) bool {
	event, ok := translate(raw)
	if !ok {
		return true
	}

	select {
	case w.out <- event:
	case <-ctx.Done():
		return false
	}

	if event.Operation == ports.OpCreate {
		w.follow(event.Path)
	}
	return true
}

// follow adds a newly created directory tree.
func (w *Watcher) follow(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() || skipDir(info.Name()) {
		return
	}
	for dir := range directories(path) {
		if err := w.notify.Add(dir); err != nil {
			w.report(zerr.With(zerr.Wrap(err, "failed to watch new directory"), "path", dir))
		}
	}
}

func (w *Watcher) report(err error) {
	if w.logger != nil {
		w.logger.Error(err)
	}
}

// translate maps a raw event to a watch event. Chmod-only events and files
// that cannot affect a compilation are dropped.
func translate(raw fsnotify.Event) (ports.WatchEvent, bool) {
	if ext := filepath.Ext(raw.Name); ext != "" && !styleExtensions[ext] {
		return ports.WatchEvent{}, false
	}
	for _, op := range opTable {
		if raw.Has(op.from) {
			return ports.WatchEvent{Path: raw.Name, Operation: op.to}, true
		}
	}
	return ports.WatchEvent{}, false
}

func skipDir(name string) bool {
	return name == "node_modules" || (len(name) > 1 && strings.HasPrefix(name, "."))
}

// directories yields root and every directory below it that is not skipped.
func directories(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			switch {
			case err != nil:
				return nil //nolint:nilerr // Unreadable directories are skipped
			case !d.IsDir():
				return nil
			case path != root && skipDir(d.Name()):
				return fs.SkipDir
			case !yield(path):
				return filepath.SkipAll
			}
			return nil
		})
	}
}
