package parse

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractEmojis(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{"none", "just text", nil},
		{"single", "good morning! 😀", []string{"😀"}},
		{"duplicates kept in order", "happy to see you 😀😀", []string{"😀", "😀"}},
		{"order preserved", "🎉 then 😀 then 🎉", []string{"🎉", "😀", "🎉"}},
		{"skin tone stays one sequence", "thanks 👍🏽", []string{"👍🏽"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ExtractEmojis(tt.body))
		})
	}
}
