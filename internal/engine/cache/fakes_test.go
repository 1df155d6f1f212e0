package cache_test

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.trai.ch/lesscache/internal/core/domain"
	"go.trai.ch/lesscache/internal/core/ports"
)

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// fakeSource counts content reads and reveals its imports once compiled.
type fakeSource struct {
	key      domain.SourceKey
	discover []ports.Source

	mu       sync.Mutex
	content  string
	modified time.Time
	readErr  error
	statErr  error
	imports  []ports.Source

	reads atomic.Int32
	stats atomic.Int32
}

func newFakeSource(location, content string, discover ...ports.Source) *fakeSource {
	return &fakeSource{
		key:      domain.NewSourceKey(location),
		content:  content,
		modified: baseTime,
		discover: discover,
	}
}

func (s *fakeSource) Key() domain.SourceKey { return s.key }

func (s *fakeSource) Content() (string, error) {
	s.reads.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return "", &domain.SourceError{Source: s.key.String(), Op: "read", Err: s.readErr}
	}
	return s.content, nil
}

func (s *fakeSource) LastModified() (time.Time, error) {
	s.stats.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.statErr != nil {
		return time.Time{}, &domain.SourceError{Source: s.key.String(), Op: "stat", Err: s.statErr}
	}
	return s.modified, nil
}

func (s *fakeSource) ImportedSources() []ports.Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.imports
}

// touch advances the modification time and optionally replaces the content.
func (s *fakeSource) touch(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modified = s.modified.Add(time.Second)
	if content != "" {
		s.content = content
	}
}

func (s *fakeSource) fail(readErr, statErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readErr = readErr
	s.statErr = statErr
}

// fakeCompiler uppercases content, records discovered imports and rejects content containing "!".
type fakeCompiler struct {
	calls   atomic.Int32
	release chan struct{}
}

func (c *fakeCompiler) Compile(ctx context.Context, src ports.Source, content string, _ *domain.Configuration) (string, error) {
	c.calls.Add(1)
	if c.release != nil {
		select {
		case <-c.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if i := strings.Index(content, "!"); i >= 0 {
		return "", &domain.CompileError{Source: src.Key().String(), Line: 1, Column: i + 1, Message: "unexpected !"}
	}
	if fake, ok := src.(*fakeSource); ok {
		fake.mu.Lock()
		fake.imports = fake.discover
		fake.mu.Unlock()
		for _, imp := range fake.discover {
			if child, ok := imp.(*fakeSource); ok {
				child.mu.Lock()
				child.imports = child.discover
				child.mu.Unlock()
			}
		}
	}
	return strings.ToUpper(content), nil
}
