package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"dev", "dev"},
		{"", ""},
		{"1.2.3", "v1.2.3"},
		{"v1.2.3", "v1.2.3"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatVersion(tt.input))
	}
}

func TestSetVersionInfo(t *testing.T) {
	origVersion, origCommit, origDate := version, commit, date
	defer SetVersionInfo(origVersion, origCommit, origDate)

	SetVersionInfo("1.0.0", "abc123", "2025-01-01")
	assert.Equal(t, "1.0.0", version)
	assert.Equal(t, "abc123", commit)
	assert.Equal(t, "2025-01-01", date)
}
