package watcher

import (
	"github.com/fsnotify/fsnotify"
	"go.trai.ch/lesscache/internal/core/ports"
)

func TranslateExported(raw fsnotify.Event) (ports.WatchEvent, bool) {
	return translate(raw)
}
