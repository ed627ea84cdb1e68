package parse

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
)

const maxLineSize = 1 * 1024 * 1024 // longer physical lines are truncated

// Config controls header matching and token extraction. The zero value is
// not usable; start from DefaultConfig.
type Config struct {
	// Pattern pins a header variant by name; "auto" (or empty) sniffs it
	// from the first valid header.
	Pattern string
	// MonthFirst resolves ambiguous dates like 12/03/23 as month/day
	// instead of day/month.
	MonthFirst bool
	// MediaToken is the placeholder the export writes for attachments.
	MediaToken string
	// StopwordLang selects the built-in stopword list ("en", "es", "fr",
	// "de"), or "auto" to detect the chat language from message bodies.
	StopwordLang string
	// ExtraStopwords are merged into the selected list, case-insensitive.
	ExtraStopwords []string
	// KeepNumeric keeps digit-only tokens in Words instead of dropping them.
	KeepNumeric bool
}

// DefaultMediaToken is the placeholder WhatsApp exports use for attachments.
const DefaultMediaToken = "<Media omitted>"

func DefaultConfig() Config {
	return Config{
		Pattern:      "auto",
		MediaToken:   DefaultMediaToken,
		StopwordLang: LangAuto,
	}
}

// Validate rejects bad configuration up front, before any line is read.
func (c Config) Validate() error {
	if c.Pattern != "" && c.Pattern != "auto" {
		if _, ok := lookupPattern(c.Pattern); !ok {
			return fmt.Errorf("unknown header pattern %q (have %s)",
				c.Pattern, strings.Join(PatternNames(), ", "))
		}
	}
	if c.MediaToken == "" {
		return fmt.Errorf("media token must not be empty")
	}
	if c.StopwordLang != LangAuto && c.StopwordLang != "" {
		if _, ok := stopwordLists[c.StopwordLang]; !ok {
			return fmt.Errorf("unknown stopword language %q (have %s)",
				c.StopwordLang, strings.Join(StopwordLangs(), ", "))
		}
	}
	return nil
}

// lineClass is the outcome of classifying one physical line.
type lineClass int

const (
	classHeader lineClass = iota
	classContinuation
	classBadTimestamp
	classMixedFormat
)

// classifier is the two-state line classifier: before the first header it
// sniffs the pattern and layout, afterwards every line either re-matches the
// committed pattern (HEADER) or belongs to the open entry (CONTINUATION).
type classifier struct {
	candidates []Pattern
	monthFirst bool
	pat        *Pattern // committed after the first matched header
	layout     string   // committed after the first parsed timestamp
}

func newClassifier(cfg Config) *classifier {
	c := &classifier{monthFirst: cfg.MonthFirst}
	if cfg.Pattern == "" || cfg.Pattern == "auto" {
		c.candidates = patterns
	} else {
		p, _ := lookupPattern(cfg.Pattern)
		c.candidates = []Pattern{*p}
	}
	return c
}

// sniffLayouts orders the candidate layouts for p: the configured date
// order first, the opposite order after, so an unambiguous export of either
// ordering parses while ambiguous dates follow the configuration.
func (c *classifier) sniffLayouts(p *Pattern) []string {
	primary := p.layouts(c.monthFirst)
	out := append(make([]string, 0, 2*len(primary)), primary...)
	for _, l := range p.layouts(!c.monthFirst) {
		if !lo.Contains(out, l) {
			out = append(out, l)
		}
	}
	return out
}

func (c *classifier) classify(line string) (time.Time, string, lineClass) {
	if c.pat == nil {
		for i := range c.candidates {
			p := &c.candidates[i]
			sub := p.re.FindStringSubmatch(line)
			if sub == nil {
				continue
			}
			ts := normalizeSpaces(sub[1])
			for _, layout := range c.sniffLayouts(p) {
				if t, err := time.Parse(layout, ts); err == nil {
					c.pat = p
					c.layout = layout
					return t, sub[2], classHeader
				}
			}
			// header-shaped but no layout fits: drop, never default
			return time.Time{}, "", classBadTimestamp
		}
		return time.Time{}, "", classContinuation
	}

	sub := c.pat.re.FindStringSubmatch(line)
	if sub == nil {
		return time.Time{}, "", classContinuation
	}
	ts := normalizeSpaces(sub[1])
	t, err := time.Parse(c.layout, ts)
	if err == nil {
		return t, sub[2], classHeader
	}
	// the shape matches but the committed layout does not; if another
	// layout would parse it, the file switched formats mid-way
	for _, layout := range c.sniffLayouts(c.pat) {
		if layout == c.layout {
			continue
		}
		if _, err := time.Parse(layout, ts); err == nil {
			return time.Time{}, "", classMixedFormat
		}
	}
	return time.Time{}, "", classBadTimestamp
}

// normalizeSpaces maps the narrow/no-break spaces some exports put before
// the AM/PM marker to plain spaces so time.Parse sees one canonical form.
// Only the captured timestamp is normalized; body text keeps its spacing.
func normalizeSpaces(s string) string {
	if !strings.ContainsAny(s, "\u202f\u00a0") {
		return s
	}
	s = strings.ReplaceAll(s, "\u202f", " ")
	return strings.ReplaceAll(s, "\u00a0", " ")
}

// splitSender separates "Name: message" headers from system notifications,
// which carry no sender-colon at all. Detection is structural, not keyword
// based, so it works regardless of the export language.
func splitSender(rest string) (sender, body string) {
	if i := strings.Index(rest, ": "); i >= 0 {
		return rest[:i], rest[i+2:]
	}
	return SystemSender, rest
}

// Parse converts a raw export into the ordered message sequence plus the
// warnings collected along the way. Malformed lines degrade to warnings and
// a best-effort partial result; the only errors are configuration problems.
func Parse(raw string, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	res := &Result{}
	cls := newClassifier(cfg)

	var (
		open *Message
		body strings.Builder
	)
	flush := func() {
		if open == nil {
			return
		}
		open.Body = body.String()
		res.Messages = append(res.Messages, *open)
		open = nil
		body.Reset()
	}

	rd := bufio.NewReaderSize(strings.NewReader(raw), 64*1024)

	lineNum := 0
	for {
		line, rerr := rd.ReadString('\n')
		if line != "" {
			lineNum++
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			if len(line) > maxLineSize {
				res.warn(lineNum, WarnLineTooLong, line)
				line = line[:maxLineSize]
			}

			ts, rest, class := cls.classify(line)
			switch class {
			case classHeader:
				flush()
				sender, text := splitSender(rest)
				open = &Message{Timestamp: ts, Sender: sender, Line: lineNum}
				body.WriteString(text)
			case classContinuation:
				if open == nil {
					res.warn(lineNum, WarnNoOpenEntry, line)
					break
				}
				body.WriteString("\n")
				body.WriteString(line)
			case classBadTimestamp:
				res.warn(lineNum, WarnBadTimestamp, line)
			case classMixedFormat:
				res.warn(lineNum, WarnMixedFormat, line)
			}
		}
		if rerr != nil { // a strings.Reader only ever returns io.EOF
			break
		}
	}
	flush()

	checkChronology(res)
	enrich(res.Messages, cfg)
	return res, nil
}

// checkChronology surfaces the first ordering violation once. The export is
// assumed chronological; re-sorting could mask a corrupt file.
func checkChronology(res *Result) {
	for i := 1; i < len(res.Messages); i++ {
		cur, prev := res.Messages[i], res.Messages[i-1]
		if cur.Timestamp.Before(prev.Timestamp) {
			res.warn(cur.Line, WarnOutOfOrder,
				fmt.Sprintf("%s before %s", cur.Timestamp.Format(time.DateTime), prev.Timestamp.Format(time.DateTime)))
			return
		}
	}
}

// enrich fills the derived fields once bodies are final: the media flag
// first (language detection must not sample placeholders), then emoji, word,
// and link extraction.
func enrich(msgs []Message, cfg Config) {
	for i := range msgs {
		m := &msgs[i]
		if !m.IsSystem() && strings.TrimSpace(m.Body) == cfg.MediaToken {
			m.IsMedia = true
		}
	}

	stop := resolveStopwords(msgs, cfg)
	for i := range msgs {
		m := &msgs[i]
		if m.IsMedia {
			continue // placeholder text is not content
		}
		m.Emojis = ExtractEmojis(m.Body)
		m.Words = ExtractWords(m.Body, stop, cfg)
		m.Links = ExtractLinks(m.Body)
	}
}
