package parse

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractLinks(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{"none", "no links here", nil},
		{"with scheme", "see https://example.com/page ok", []string{"https://example.com/page"}},
		{"bare domain", "check example.com now", []string{"example.com"}},
		{"order preserved", "first a.com then https://b.org", []string{"a.com", "https://b.org"}},
		{"empty body", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ExtractLinks(tt.body))
		})
	}
}
