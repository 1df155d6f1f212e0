package domain

import "go.trai.ch/zerr"

var (
	// ErrSourceUnreadable is returned when a source's content or timestamp cannot be obtained.
	ErrSourceUnreadable = zerr.New("source unreadable")

	// ErrCompileFailed is returned when the compiler rejects a source.
	ErrCompileFailed = zerr.New("compilation failed")

	// ErrImportCycle is returned when a source transitively imports itself.
	ErrImportCycle = zerr.New("import cycle detected")

	// ErrImportTooDeep is returned when nested imports exceed the configured depth.
	ErrImportTooDeep = zerr.New("import nesting too deep")

	// ErrImportNotFound is returned when an imported source does not exist and imports are strict.
	ErrImportNotFound = zerr.New("imported source not found")

	// ErrUndefinedVariable is returned when a source references a variable that was never declared.
	ErrUndefinedVariable = zerr.New("undefined variable")

	// ErrUnbalancedBraces is returned when a source has unmatched curly braces.
	ErrUnbalancedBraces = zerr.New("unbalanced braces")

	// ErrImportsUnsupported is returned when a source cannot resolve relative imports.
	ErrImportsUnsupported = zerr.New("source does not support imports")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrNoSourcesSpecified is returned when the compile command gets no files.
	ErrNoSourcesSpecified = zerr.New("no sources specified")

	// ErrServeFailed is returned when the HTTP server stops with an error.
	ErrServeFailed = zerr.New("server failed")

	// ErrWatchFailed is returned when the file watcher cannot be started.
	ErrWatchFailed = zerr.New("failed to start file watcher")
)

// Annotate attaches metadata to a sentinel while keeping it matchable with errors.Is.
func Annotate(sentinel error, key string, value any) error {
	return zerr.With(zerr.Wrap(sentinel, ""), key, value)
}

// SourceError reports a source whose content or timestamp could not be read.
// It matches ErrSourceUnreadable and Err with errors.Is.
type SourceError struct {
	Source string
	Op     string
	Err    error
}

// Error implements error.
func (e *SourceError) Error() string {
	return e.Op + " " + e.Source + ": " + ErrSourceUnreadable.Error() + ": " + e.Err.Error()
}

// Unwrap exposes ErrSourceUnreadable and the underlying failure.
func (e *SourceError) Unwrap() []error {
	return []error{ErrSourceUnreadable, e.Err}
}
