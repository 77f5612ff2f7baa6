package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitPasswords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"two entries", "cisco, Admin123", []string{"cisco", "Admin123"}},
		{"single entry", "cisco", []string{"cisco"}},
		{"stray commas", ",cisco,,", []string{"cisco"}},
		{"empty gets placeholder", "", []string{"changeme"}},
		{"whitespace only gets placeholder", "  ,  ", []string{"changeme"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitPasswords(tt.input))
		})
	}
}
