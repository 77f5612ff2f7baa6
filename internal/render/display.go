// Package render turns engine snapshots into terminal output. Two renderers
// share the same display rules: a plain line-per-device console writer for
// pipes and logs, and a Bubble Tea screen for interactive terminals.
package render

import (
	"strings"

	"github.com/rileyhilliard/netwatch/internal/engine"
	"github.com/rileyhilliard/netwatch/internal/fetch"
)

// DisplayName picks the best human-readable name for a device: the fetched
// hostname when known, then the DNS name, then the raw list entry. Configured
// domain suffixes are stripped so dense lists stay readable.
func DisplayName(e engine.Entry, stripSuffixes []string) string {
	name := e.Hostname
	if name == "" || name == fetch.Unknown {
		name = e.Spec.DisplayNameHint
	}
	if name == "" {
		name = e.Spec.Original
	}
	return StripSuffix(name, stripSuffixes)
}

// StripSuffix removes the first matching suffix, case-insensitively. Only
// one suffix is removed; the match must leave a non-empty name behind.
func StripSuffix(name string, suffixes []string) string {
	lower := strings.ToLower(name)
	for _, suffix := range suffixes {
		s := strings.ToLower(suffix)
		if s == "" || len(s) >= len(lower) {
			continue
		}
		if strings.HasSuffix(lower, s) {
			return name[:len(name)-len(s)]
		}
	}
	return name
}
