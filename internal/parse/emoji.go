package parse

import (
	"github.com/forPelevin/gomoji"
	"github.com/samber/lo"
)

// ExtractEmojis returns every emoji in body in order of appearance,
// duplicates included. Matching works on full emoji sequences, so skin-tone
// modifiers and ZWJ families come back as single entries instead of being
// split into their component code points.
func ExtractEmojis(body string) []string {
	found := gomoji.CollectAll(body)
	if len(found) == 0 {
		return nil
	}
	return lo.Map(found, func(e gomoji.Emoji, _ int) string {
		return e.Character
	})
}
