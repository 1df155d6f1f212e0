// export_test.go exports private functions for white-box testing.
package logger

// ErrorEntry mirrors errorEntry for tests.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// CollectErrorEntriesExported exposes collectErrorEntries.
func CollectErrorEntriesExported(err error) []ErrorEntry {
	entries := collectErrorEntries(err)
	out := make([]ErrorEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, ErrorEntry{Message: e.message, Metadata: e.metadata})
	}
	return out
}

// FormatErrorEntriesExported exposes formatErrorEntries.
func FormatErrorEntriesExported(entries []ErrorEntry) string {
	in := make([]errorEntry, 0, len(entries))
	for _, e := range entries {
		in = append(in, errorEntry{message: e.Message, metadata: e.Metadata})
	}
	return formatErrorEntries(in)
}
