package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lesscache/cmd/lesscache/commands"
	"go.trai.ch/lesscache/internal/adapters/config"
	"go.trai.ch/lesscache/internal/app"
	"go.trai.ch/lesscache/internal/build"
)

type mockApp struct {
	compileFunc func(ctx context.Context, paths []string, opts app.CompileOptions) error
	serveFunc   func(ctx context.Context, opts app.ServeOptions) error
}

func (m *mockApp) Compile(ctx context.Context, paths []string, opts app.CompileOptions) error {
	if m.compileFunc != nil {
		return m.compileFunc(ctx, paths, opts)
	}
	return nil
}

func (m *mockApp) Serve(ctx context.Context, opts app.ServeOptions) error {
	if m.serveFunc != nil {
		return m.serveFunc(ctx, opts)
	}
	return nil
}

func TestCommands_Compile(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var capturedOpts app.CompileOptions
		var capturedPaths []string

		mock := &mockApp{
			compileFunc: func(_ context.Context, paths []string, opts app.CompileOptions) error {
				capturedOpts = opts
				capturedPaths = paths
				return nil
			},
		}

		out := new(bytes.Buffer)
		cli := commands.New(mock, nil)
		cli.SetArgs([]string{"compile", "a.less", "b.less", "--repeat", "2", "--compress", "--strict-imports"})
		cli.SetOutput(out, out)

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, []string{"a.less", "b.less"}, capturedPaths)
		assert.Equal(t, 2, capturedOpts.Repeat)
		assert.True(t, capturedOpts.Compress)
		assert.True(t, capturedOpts.StrictImports)
		assert.Equal(t, out, capturedOpts.Output)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		mock := &mockApp{
			compileFunc: func(context.Context, []string, app.CompileOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock, nil)
		cli.SetArgs([]string{"compile", "a.less"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("requires files", func(t *testing.T) {
		mock := &mockApp{
			compileFunc: func(context.Context, []string, app.CompileOptions) error {
				panic("should not be called")
			},
		}

		cli := commands.New(mock, nil)
		cli.SetArgs([]string{"compile"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		require.Error(t, cli.Execute(context.Background()))
	})
}

func TestCommands_Serve(t *testing.T) {
	settings := &config.Settings{
		Server: config.ServerSettings{Addr: ":9000", Root: "/srv/styles", Watch: true},
	}

	t.Run("defaults from settings", func(t *testing.T) {
		var captured app.ServeOptions
		mock := &mockApp{
			serveFunc: func(_ context.Context, opts app.ServeOptions) error {
				captured = opts
				return nil
			},
		}

		cli := commands.New(mock, settings)
		cli.SetArgs([]string{"serve"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, app.ServeOptions{Addr: ":9000", Root: "/srv/styles", Watch: true}, captured)
	})

	t.Run("flags override settings", func(t *testing.T) {
		var captured app.ServeOptions
		mock := &mockApp{
			serveFunc: func(_ context.Context, opts app.ServeOptions) error {
				captured = opts
				return nil
			},
		}

		cli := commands.New(mock, settings)
		cli.SetArgs([]string{"serve", "--addr", "127.0.0.1:0", "--root", "assets", "--watch=false"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, app.ServeOptions{Addr: "127.0.0.1:0", Root: "assets"}, captured)
	})

	t.Run("rejects arguments", func(t *testing.T) {
		cli := commands.New(&mockApp{}, settings)
		cli.SetArgs([]string{"serve", "extra"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		require.Error(t, cli.Execute(context.Background()))
	})
}

func TestCommands_Version(t *testing.T) {
	out := new(bytes.Buffer)
	cli := commands.New(&mockApp{}, nil)
	cli.SetArgs([]string{"version"})
	cli.SetOutput(out, out)

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "lesscache version "+build.Version+" (commit: none, date: unknown)\n", out.String())
}
