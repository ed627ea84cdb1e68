package parse

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractWords(t *testing.T) {
	stop := map[string]bool{"the": true, "to": true, "a": true}
	cfg := DefaultConfig()

	tests := []struct {
		name string
		body string
		want []string
	}{
		{"lower-cases", "Hello WORLD", []string{"hello", "world"}},
		{"drops stopwords", "the road to nowhere", []string{"road", "nowhere"}},
		{"drops punctuation tokens", "wait... what?! -- :)", []string{"wait", "what"}},
		{"drops digit-only tokens", "call me at 5551234 ok", []string{"call", "me", "at", "ok"}},
		{"keeps mixed alphanumerics", "see you 2morrow", []string{"see", "you", "2morrow"}},
		{"drops embedded media token", "look: <Media omitted> nice", []string{"look", "nice"}},
		{"strips emoji", "great 😀 stuff", []string{"great", "stuff"}},
		{"empty body", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ExtractWords(tt.body, stop, cfg))
		})
	}
}

func TestExtractWords_KeepNumeric(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KeepNumeric = true
	got := ExtractWords("room 404", nil, cfg)
	require.Equal(t, []string{"room", "404"}, got)
}

func TestExtractWords_StopwordsCaseInsensitive(t *testing.T) {
	// the set is lower-case; extraction lower-cases before lookup
	stop := map[string]bool{"ok": true}
	got := ExtractWords("OK Ok okay", stop, DefaultConfig())
	require.Equal(t, []string{"okay"}, got)
}

func TestResolveStopwords_ExtraWords(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StopwordLang = "en"
	cfg.ExtraStopwords = []string{" LOL ", "brb", ""}

	set := resolveStopwords(nil, cfg)
	require.True(t, set["the"]) // built-in
	require.True(t, set["lol"])
	require.True(t, set["brb"])
	require.False(t, set[""])
}

func TestDetectLang(t *testing.T) {
	spanish := []Message{
		{Sender: "Ana", Body: "hola, ¿cómo estás? espero que todo vaya muy bien por allá"},
		{Sender: "Luis", Body: "todo bien por aquí, gracias. nos vemos mañana en la oficina"},
	}
	require.Equal(t, "es", DetectLang(spanish))

	english := []Message{
		{Sender: "Alice", Body: "good morning everyone, the meeting starts in ten minutes"},
		{Sender: "Bob", Body: "thanks for the reminder, see you there in a bit"},
	}
	require.Equal(t, "en", DetectLang(english))
}
