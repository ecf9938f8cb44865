package logger

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"go.trai.ch/jlc/internal/ui/style"
)

// messager describes an error that can report its own message without the chain.
// This matches the Message() method provided by zerr.Error (go.trai.ch/zerr v0.3.0+).
type messager interface {
	Message() string
}

// metadataer describes an error carrying structured key/value context.
type metadataer interface {
	Metadata() map[string]any
}

// ErrorEntry is one layer of an error chain prepared for display.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries walks err and returns one entry per layer. Joined
// errors are flattened in order.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	current := err

	for current != nil {
		if joined, ok := current.(interface{ Unwrap() []error }); ok {
			for _, e := range joined.Unwrap() {
				entries = append(entries, collectErrorEntries(e)...)
			}
			return entries
		}

		m, ok := current.(messager)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error()})
			return entries
		}

		entry := ErrorEntry{Message: m.Message()}
		if md, ok := current.(metadataer); ok {
			entry.Metadata = md.Metadata()
		}
		entries = append(entries, entry)
		current = errors.Unwrap(current)
	}

	return entries
}

// formatErrorEntries renders entries as the main error followed by an
// indented "Caused by" list.
func formatErrorEntries(entries []ErrorEntry) string {
	lines := make([]string, 0, len(entries)*2)

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		indent := "      "
		if i == 0 {
			indent = "       "
			lines = append(lines, "Error: "+msgLines[0])
		} else {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			lines = append(lines, "    "+style.Arrow+" "+msgLines[0])
		}

		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}
		for _, key := range slices.Sorted(maps.Keys(entry.Metadata)) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, key, entry.Metadata[key]))
		}
	}

	return strings.Join(lines, "\n")
}
