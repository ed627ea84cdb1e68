package parse

import (
	"fmt"
	"time"
)

// SystemSender marks entries the platform generated itself: group
// add/remove/subject notices, encryption banners, security-code changes.
// They carry no "Name: " prefix in the export.
const SystemSender = "system"

// Message is one logical chat entry. A logical entry may span several
// physical lines in the export; Body holds them joined with the original
// line breaks. Messages are built once during parsing and never mutated.
type Message struct {
	Timestamp time.Time // timezone-naive; the export carries no zone
	Sender    string    // participant name, or SystemSender
	Body      string
	IsMedia   bool     // body was exactly the media placeholder
	Emojis    []string // emoji sequences in order, duplicates kept
	Words     []string // lower-cased tokens after stopword removal
	Links     []string // URLs found in the body, order preserved
	Line      int      // line number of the entry header in the source
}

func (m Message) IsSystem() bool { return m.Sender == SystemSender }

// WarnReason classifies a recoverable parse problem.
type WarnReason string

const (
	// WarnNoOpenEntry: a continuation line appeared before any header.
	WarnNoOpenEntry WarnReason = "no-open-entry"
	// WarnBadTimestamp: a header-shaped line whose timestamp parses with
	// no known layout.
	WarnBadTimestamp WarnReason = "bad-timestamp"
	// WarnMixedFormat: a header that parses with a layout other than the
	// one the file committed to. One export, one format.
	WarnMixedFormat WarnReason = "mixed-format"
	// WarnOutOfOrder: the export is not chronological. Reported once;
	// the sequence is left as-is rather than silently re-sorted.
	WarnOutOfOrder WarnReason = "out-of-order"
	// WarnLineTooLong: a physical line exceeded the size cap and was
	// truncated before classification.
	WarnLineTooLong WarnReason = "line-too-long"
)

// Warning is a non-fatal parse diagnostic. The affected line is dropped
// (or, for out-of-order, kept) and parsing continues.
type Warning struct {
	Line   int
	Reason WarnReason
	Text   string // the offending raw line, possibly truncated
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s: %q", w.Line, w.Reason, w.Text)
}

// Result is the full outcome of one parse: the ordered message sequence
// plus every warning collected along the way.
type Result struct {
	Messages []Message
	Warnings []Warning
}

func (r *Result) warn(line int, reason WarnReason, text string) {
	const maxWarnText = 120
	if len(text) > maxWarnText {
		text = text[:maxWarnText]
	}
	r.Warnings = append(r.Warnings, Warning{Line: line, Reason: reason, Text: text})
}
