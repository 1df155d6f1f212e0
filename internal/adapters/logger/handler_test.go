package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/lesscache/internal/adapters/logger"
)

func TestPrettyHandler(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		name string
		log  func(l *slog.Logger)
		want string
	}{
		{
			name: "levels",
			log: func(l *slog.Logger) {
				l.Info("compiled")
				l.Warn("slow")
				l.Error("failed")
			},
			want: "compiled\n! slow\n✗ failed\n",
		},
		{
			name: "debug is filtered",
			log:  func(l *slog.Logger) { l.Debug("hidden") },
			want: "",
		},
		{
			name: "attributes before and inside groups",
			log: func(l *slog.Logger) {
				l.With("id", 7).WithGroup("req").With("method", "GET").Info("served", "status", 200)
			},
			want: "served id=7 req.method=GET req.status=200\n",
		},
		{
			name: "nested groups and group values",
			log: func(l *slog.Logger) {
				l.WithGroup("http").WithGroup("resp").Info("done", slog.Group("cache", "hit", true))
			},
			want: "done http.resp.cache.hit=true\n",
		},
		{
			name: "values needing quotes",
			log:  func(l *slog.Logger) { l.Info("compile", "path", "my styles/site.less") },
			want: "compile path=\"my styles/site.less\"\n",
		},
		{
			name: "empty attributes are dropped",
			log:  func(l *slog.Logger) { l.Info("skip", slog.Attr{}, "n", 1) },
			want: "skip n=1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(slog.New(logger.NewPrettyHandler(&buf, nil)))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}
