package parse

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) *Result {
	t.Helper()
	res, err := Parse(raw, DefaultConfig())
	require.NoError(t, err)
	return res
}

func TestParse_RoundTrip(t *testing.T) {
	// N single-line entries come back as exactly N messages, in order
	type entry struct {
		ts     time.Time
		sender string
		body   string
	}
	entries := []entry{
		{time.Date(2023, 4, 25, 15, 49, 0, 0, time.UTC), "Alice", "hello there"},
		{time.Date(2023, 4, 25, 15, 50, 0, 0, time.UTC), "Bob", "hi!"},
		{time.Date(2023, 4, 26, 9, 2, 0, 0, time.UTC), "Alice", "see you later"},
	}

	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s - %s: %s\n", e.ts.Format("2/1/06, 15:04"), e.sender, e.body)
	}

	res := mustParse(t, b.String())
	require.Empty(t, res.Warnings)
	require.Len(t, res.Messages, len(entries))
	for i, e := range entries {
		require.Equal(t, e.ts, res.Messages[i].Timestamp)
		require.Equal(t, e.sender, res.Messages[i].Sender)
		require.Equal(t, e.body, res.Messages[i].Body)
	}
}

func TestParse_MultiLineBody(t *testing.T) {
	raw := "25/04/23, 15:49 - Alice: first line\n" +
		"second line\n" +
		"third line\n"

	res := mustParse(t, raw)
	require.Empty(t, res.Warnings)
	require.Len(t, res.Messages, 1)
	require.Equal(t, "first line\nsecond line\nthird line", res.Messages[0].Body)
}

func TestParse_HeaderVariants(t *testing.T) {
	want := time.Date(2023, 4, 25, 15, 49, 0, 0, time.UTC)
	tests := []struct {
		name string
		line string
		ts   time.Time
	}{
		{"slash 24h", "25/04/23, 15:49 - Alice: hi", want},
		{"slash 4-digit year", "25/04/2023, 15:49 - Alice: hi", want},
		{"slash 12h", "25/04/23, 3:49 PM - Alice: hi", want},
		{"slash narrow no-break space", "25/04/23, 3:49\u202fPM - Alice: hi", want},
		{"bracket with seconds", "[25/04/23, 3:49:21 PM] Alice: hi", want.Add(21 * time.Second)},
		{"dot", "25.04.2023, 15:49 - Alice: hi", want},
		{"iso", "2023-04-25, 15:49 - Alice: hi", want},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := mustParse(t, tt.line+"\n")
			require.Empty(t, res.Warnings)
			require.Len(t, res.Messages, 1)
			require.Equal(t, tt.ts, res.Messages[0].Timestamp)
			require.Equal(t, "Alice", res.Messages[0].Sender)
			require.Equal(t, "hi", res.Messages[0].Body)
		})
	}
}

func TestParse_DateOrder(t *testing.T) {
	raw := "12/03/23, 9:15 AM - Alice: hi\n"

	res := mustParse(t, raw)
	require.Equal(t, time.March, res.Messages[0].Timestamp.Month())

	cfg := DefaultConfig()
	cfg.MonthFirst = true
	res, err := Parse(raw, cfg)
	require.NoError(t, err)
	require.Equal(t, time.December, res.Messages[0].Timestamp.Month())
	require.Equal(t, 3, res.Messages[0].Timestamp.Day())
}

func TestParse_MonthFirstSniffed(t *testing.T) {
	// a day column over 12 makes the ordering unambiguous, so the file
	// parses even though the configuration prefers day-first
	raw := "04/25/23, 3:49 PM - Alice: hi\n" +
		"04/26/23, 9:00 AM - Bob: hello\n"

	res := mustParse(t, raw)
	require.Empty(t, res.Warnings)
	require.Len(t, res.Messages, 2)
	require.Equal(t, time.Date(2023, 4, 25, 15, 49, 0, 0, time.UTC), res.Messages[0].Timestamp)
	require.Equal(t, time.Date(2023, 4, 26, 9, 0, 0, 0, time.UTC), res.Messages[1].Timestamp)
}

func TestParse_BodyKeepsNarrowSpaces(t *testing.T) {
	// space normalization is for the timestamp only; body text comes back
	// byte for byte
	res := mustParse(t, "25/04/23, 3:49\u202fPM - Alice: 5\u202fkm in 40\u00a0min\n")
	require.Len(t, res.Messages, 1)
	require.Equal(t, "5\u202fkm in 40\u00a0min", res.Messages[0].Body)
}

func TestParse_OversizedLineTruncated(t *testing.T) {
	long := strings.Repeat("a", maxLineSize+10)
	raw := "25/04/23, 15:49 - Alice: hi\n" +
		long + "\n" +
		"25/04/23, 15:50 - Bob: ok\n"

	res := mustParse(t, raw)
	require.Len(t, res.Messages, 2)
	require.Len(t, res.Warnings, 1)
	require.Equal(t, WarnLineTooLong, res.Warnings[0].Reason)
	require.Equal(t, 2, res.Warnings[0].Line)
	require.Len(t, res.Messages[0].Body, len("hi\n")+maxLineSize)
	require.Equal(t, "ok", res.Messages[1].Body)
}

func TestParse_LinksExtracted(t *testing.T) {
	res := mustParse(t, "25/04/23, 15:49 - Alice: read https://example.com/a and news.ycombinator.com\n")
	require.Len(t, res.Messages, 1)
	require.Equal(t, []string{"https://example.com/a", "news.ycombinator.com"}, res.Messages[0].Links)
}

func TestParse_SystemMessages(t *testing.T) {
	raw := "25/04/23, 15:48 - Messages and calls are end-to-end encrypted.\n" +
		"25/04/23, 15:49 - Alice added Bob\n" +
		"25/04/23, 15:50 - Alice: welcome!\n"

	res := mustParse(t, raw)
	require.Len(t, res.Messages, 3)
	require.True(t, res.Messages[0].IsSystem())
	require.True(t, res.Messages[1].IsSystem())
	require.False(t, res.Messages[0].IsMedia)
	require.False(t, res.Messages[2].IsSystem())
	require.Equal(t, "Alice", res.Messages[2].Sender)
}

func TestParse_MediaPlaceholder(t *testing.T) {
	raw := "25/04/23, 15:49 - Bob: <Media omitted>\n"

	res := mustParse(t, raw)
	require.Len(t, res.Messages, 1)
	m := res.Messages[0]
	require.True(t, m.IsMedia)
	require.Empty(t, m.Words)
	require.Empty(t, m.Emojis)
}

func TestParse_BodyWithColon(t *testing.T) {
	res := mustParse(t, "25/04/23, 15:49 - Alice: note: buy milk\n")
	require.Equal(t, "Alice", res.Messages[0].Sender)
	require.Equal(t, "note: buy milk", res.Messages[0].Body)
}

func TestParse_PreambleWarns(t *testing.T) {
	raw := "exported from my phone\n" +
		"25/04/23, 15:49 - Alice: hi\n"

	res := mustParse(t, raw)
	require.Len(t, res.Messages, 1)
	require.Len(t, res.Warnings, 1)
	require.Equal(t, WarnNoOpenEntry, res.Warnings[0].Reason)
	require.Equal(t, 1, res.Warnings[0].Line)
}

func TestParse_MixedFormatDropped(t *testing.T) {
	// the file commits to 24h on the first header; a 12h header later on
	// is a format change, not a continuation
	raw := "25/04/23, 15:49 - Alice: one\n" +
		"26/04/23, 4:00 PM - Alice: two\n" +
		"27/04/23, 10:00 - Alice: three\n"

	res := mustParse(t, raw)
	require.Len(t, res.Messages, 2)
	require.Equal(t, "one", res.Messages[0].Body)
	require.Equal(t, "three", res.Messages[1].Body)
	require.Len(t, res.Warnings, 1)
	require.Equal(t, WarnMixedFormat, res.Warnings[0].Reason)
	require.Equal(t, 2, res.Warnings[0].Line)
}

func TestParse_BadTimestampDropped(t *testing.T) {
	raw := "25/04/23, 15:49 - Alice: ok\n" +
		"99/99/23, 15:50 - Alice: never\n"

	res := mustParse(t, raw)
	require.Len(t, res.Messages, 1)
	require.Len(t, res.Warnings, 1)
	require.Equal(t, WarnBadTimestamp, res.Warnings[0].Reason)
}

func TestParse_OutOfOrderWarnsOnce(t *testing.T) {
	raw := "25/04/23, 15:49 - Alice: one\n" +
		"25/04/23, 15:40 - Bob: two\n" +
		"25/04/23, 15:30 - Alice: three\n"

	res := mustParse(t, raw)
	// nothing is dropped or re-sorted; the violation is only surfaced
	require.Len(t, res.Messages, 3)
	require.Equal(t, "Bob", res.Messages[1].Sender)

	var order []Warning
	for _, w := range res.Warnings {
		if w.Reason == WarnOutOfOrder {
			order = append(order, w)
		}
	}
	require.Len(t, order, 1)
	require.Equal(t, 2, order[0].Line)
}

func TestParse_EmptyInput(t *testing.T) {
	res := mustParse(t, "")
	require.Empty(t, res.Messages)
	require.Empty(t, res.Warnings)
}

func TestParse_PinnedPattern(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pattern = "bracket"

	// a slash header is a continuation line under the bracket pattern,
	// and with no entry open it is reported and skipped
	res, err := Parse("25/04/23, 15:49 - Alice: hi\n", cfg)
	require.NoError(t, err)
	require.Empty(t, res.Messages)
	require.Len(t, res.Warnings, 1)
	require.Equal(t, WarnNoOpenEntry, res.Warnings[0].Reason)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"default ok", func(c *Config) {}, ""},
		{"named pattern ok", func(c *Config) { c.Pattern = "dot" }, ""},
		{"unknown pattern", func(c *Config) { c.Pattern = "nope" }, "unknown header pattern"},
		{"unknown language", func(c *Config) { c.StopwordLang = "xx" }, "unknown stopword language"},
		{"empty media token", func(c *Config) { c.MediaToken = "" }, "media token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
			} else {
				require.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}
