package main

import (
	"strings"
)

// lookupHeader scans raw "Name: value" lines for name, ignoring case.
func lookupHeader(lines []string, name string) (string, bool) {
	for _, line := range lines {
		// Split in exactly two parts because there might be colons in the values (user agent, host:port, etc)
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}

		if strings.EqualFold(strings.TrimSpace(key), name) {
			return strings.TrimSpace(value), true
		}
	}

	return "", false
}

// Header is a single response header field.
type Header struct {
	Name  string
	Value string
}

func (h Header) String() string {
	return h.Name + ": " + h.Value
}
