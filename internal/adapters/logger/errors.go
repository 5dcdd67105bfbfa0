package logger

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ErrorEntry is one level of an error chain as rendered by the pretty logger.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// chainError matches zerr.Error (go.trai.ch/zerr v0.3.0+), which reports its
// own message and metadata without the wrapped chain.
type chainError interface {
	Message() string
	Metadata() map[string]any
	Unwrap() error
}

// collectErrorEntries flattens err into one entry per message. zerr levels
// without a message donate their metadata to the next entry. Joined errors
// contribute one entry per branch. Standard errors end their branch.
func collectErrorEntries(err error) []ErrorEntry {
	var (
		entries []ErrorEntry
		pending map[string]any
	)

	var walk func(error)
	walk = func(e error) {
		for e != nil {
			switch v := e.(type) {
			case chainError:
				if v.Message() == "" {
					pending = mergeMetadata(pending, v.Metadata())
					e = v.Unwrap()
					continue
				}
				entries = append(entries, ErrorEntry{
					Message:  v.Message(),
					Metadata: mergeMetadata(v.Metadata(), pending),
				})
				pending = nil
				e = v.Unwrap()
			case interface{ Unwrap() []error }:
				for _, inner := range v.Unwrap() {
					walk(inner)
				}
				return
			default:
				entries = append(entries, ErrorEntry{Message: e.Error(), Metadata: pending})
				pending = nil
				return
			}
		}
	}
	walk(err)

	if len(pending) > 0 && len(entries) > 0 {
		last := &entries[len(entries)-1]
		last.Metadata = mergeMetadata(last.Metadata, pending)
	}
	return entries
}

func mergeMetadata(dst, src map[string]any) map[string]any {
	if len(src) == 0 {
		return dst
	}
	if len(dst) == 0 {
		return maps.Clone(src)
	}
	out := maps.Clone(dst)
	for k, v := range src {
		if _, ok := out[k]; !ok {
			out[k] = v
		}
	}
	return out
}

// formatErrorEntries renders entries as a main error followed by its causes.
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		lead, indent := "Error: ", "       "
		if i > 0 {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			lead, indent = "    → ", "      "
		}

		lines = append(lines, lead+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}

		for _, key := range slices.Sorted(maps.Keys(entry.Metadata)) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, key, entry.Metadata[key]))
		}
	}

	return strings.Join(lines, "\n")
}
