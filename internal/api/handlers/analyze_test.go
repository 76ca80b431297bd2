package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeDomain(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"example.com", "example.com", true},
		{"Example.COM", "example.com", true},
		{"https://example.com", "example.com", true},
		{"http://www.example.com/login?next=/", "example.com", true},
		{"sub.domain.example.co.uk", "sub.domain.example.co.uk", true},
		{"xn--bcher-kva.example", "xn--bcher-kva.example", true},
		{"localhost", "", false},
		{"no spaces.com", "", false},
		{"-leadinghyphen.com", "", false},
		{"", "", false},
		{"https://", "", false},
	}

	for _, tt := range tests {
		got, ok := sanitizeDomain(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		if tt.ok {
			assert.Equal(t, tt.want, got, "input %q", tt.input)
		}
	}
}
