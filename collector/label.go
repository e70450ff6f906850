package collector

import (
	"fmt"
	"strings"
)

// resolveLabel derives the display label for an endpoint: the user-supplied
// label if present, else "last-dir/filename:line" extracted from the
// "<file>:<line>" source call-site string, disambiguated with a "-<iter+1>"
// suffix when other endpoints share the same source.
func resolveLabel(source, label string, iter uint32) string {
	var base string
	if label != "" {
		base = label
	} else {
		base = deriveFromSource(source)
	}
	if iter > 0 {
		return fmt.Sprintf("%s-%d", base, iter+1)
	}
	return base
}

func deriveFromSource(source string) string {
	path := source
	line := ""
	if idx := strings.LastIndex(source, ":"); idx >= 0 {
		path = source[:idx]
		line = source[idx+1:]
	}
	file := extractFilename(path)
	if line == "" {
		return file
	}
	return file + ":" + line
}

func extractFilename(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) >= 2 {
		return parts[len(parts)-2] + "/" + parts[len(parts)-1]
	}
	return path
}
