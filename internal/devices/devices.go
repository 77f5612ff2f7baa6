// Package devices loads and models the watched device list.
//
// The list is a plain text file with one device identifier per line
// (hostname or literal IP). Blank lines are ignored, whitespace is
// trimmed. A missing file is not an error: it reads as an empty list so
// the polling loop keeps running and picks the file up when it appears.
package devices

import (
	"bufio"
	"os"
	"strings"
)

// Spec describes one watched device. It is immutable between list reloads:
// the whole slice is replaced when the file content changes.
type Spec struct {
	// Original is the raw trimmed line from the device file.
	Original string

	// Address is the resolved IP, or empty if resolution failed.
	Address string

	// DisplayNameHint is the DNS-derived name, or empty if none.
	DisplayNameHint string
}

// Target returns the probe target for the device: the resolved address
// when available, otherwise the raw entry.
func (s Spec) Target() string {
	if s.Address != "" {
		return s.Address
	}
	return s.Original
}

// ReadFile reads device identifiers from path.
// A missing file yields an empty list and ok=false; any other read error
// is also swallowed into an empty list since the poller must keep running.
func ReadFile(path string) (entries []string, ok bool) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		entries = append(entries, line)
	}
	return entries, true
}

// Equal reports whether two entry lists are identical in content and order.
// Used to decide whether a reload should replace the in-memory specs.
func Equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
