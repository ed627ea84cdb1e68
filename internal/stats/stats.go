// Package stats derives statistics from a parsed message sequence. Every
// method is a pure, deterministic pass over the immutable slice; results are
// fresh structures on each call.
package stats

import (
	"errors"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/ktrang/chatstat/internal/parse"
)

// ErrNoMessages is returned when a report is requested over zero valid
// messages. Empty-but-valid tables would be indistinguishable from a silent
// chat, so the case is rejected explicitly.
var ErrNoMessages = errors.New("stats: no messages")

// Options scope a report. Sender restricts it to one participant;
// IncludeSystem counts platform notifications in timelines and the heatmap
// (they never count toward per-user or frequency tables).
type Options struct {
	Sender        string
	IncludeSystem bool
}

// Report computes statistics over one message sequence.
type Report struct {
	msgs          []parse.Message
	includeSystem bool
}

func New(msgs []parse.Message, opts Options) (*Report, error) {
	if opts.Sender != "" {
		msgs = lo.Filter(msgs, func(m parse.Message, _ int) bool {
			return m.Sender == opts.Sender
		})
	}
	if len(msgs) == 0 {
		return nil, ErrNoMessages
	}
	return &Report{msgs: msgs, includeSystem: opts.IncludeSystem}, nil
}

// TotalMessages counts every message in scope, system included.
func (r *Report) TotalMessages() int { return len(r.msgs) }

// Span returns the first and last timestamps in the sequence.
func (r *Report) Span() (first, last time.Time) {
	return r.msgs[0].Timestamp, r.msgs[len(r.msgs)-1].Timestamp
}

// UserCount is one row of the per-user table.
type UserCount struct {
	Sender   string
	Messages int
	Percent  float64 // share of all non-system messages
	Words    int
	Media    int
	Emojis   int
	Links    int
}

// PerUser tallies messages, words, media, emoji, and link occurrences per
// non-system sender, sorted by message count descending then sender name
// ascending so rankings are deterministic.
func (r *Report) PerUser() []UserCount {
	byUser := make(map[string]*UserCount)
	for _, m := range r.msgs {
		if m.IsSystem() {
			continue
		}
		u := byUser[m.Sender]
		if u == nil {
			u = &UserCount{Sender: m.Sender}
			byUser[m.Sender] = u
		}
		u.Messages++
		u.Words += len(m.Words)
		u.Emojis += len(m.Emojis)
		u.Links += len(m.Links)
		if m.IsMedia {
			u.Media++
		}
	}

	users := make([]UserCount, 0, len(byUser))
	for _, u := range byUser {
		users = append(users, *u)
	}
	total := lo.SumBy(users, func(u UserCount) int { return u.Messages })
	if total > 0 {
		for i := range users {
			users[i].Percent = float64(users[i].Messages) / float64(total) * 100
		}
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].Messages != users[j].Messages {
			return users[i].Messages > users[j].Messages
		}
		return users[i].Sender < users[j].Sender
	})
	return users
}

// Senders returns the non-system participants ranked by activity.
func (r *Report) Senders() []string {
	return lo.Map(r.PerUser(), func(u UserCount, _ int) string { return u.Sender })
}

// MonthCount is one month of the timeline.
type MonthCount struct {
	Year  int
	Month time.Month
	Count int
}

// MonthlyTimeline counts messages per calendar month, covering every month
// between the first and last message inclusive. Months with no messages
// appear with an explicit zero so chart axes stay contiguous.
func (r *Report) MonthlyTimeline() []MonthCount {
	msgs := r.timelineMsgs()
	if len(msgs) == 0 {
		return nil
	}

	counts := make(map[[2]int]int)
	for _, m := range msgs {
		counts[[2]int{m.Timestamp.Year(), int(m.Timestamp.Month())}]++
	}

	first := msgs[0].Timestamp
	last := msgs[len(msgs)-1].Timestamp
	var out []MonthCount
	cur := time.Date(first.Year(), first.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(last.Year(), last.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cur.After(end) {
		out = append(out, MonthCount{
			Year:  cur.Year(),
			Month: cur.Month(),
			Count: counts[[2]int{cur.Year(), int(cur.Month())}],
		})
		cur = cur.AddDate(0, 1, 0)
	}
	return out
}

// DayCount is one calendar day of the timeline.
type DayCount struct {
	Date  time.Time // midnight UTC
	Count int
}

// DailyTimeline counts messages per calendar day with the same zero-filling
// rule as MonthlyTimeline.
func (r *Report) DailyTimeline() []DayCount {
	msgs := r.timelineMsgs()
	if len(msgs) == 0 {
		return nil
	}

	day := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	counts := make(map[time.Time]int)
	for _, m := range msgs {
		counts[day(m.Timestamp)]++
	}

	var out []DayCount
	end := day(msgs[len(msgs)-1].Timestamp)
	for cur := day(msgs[0].Timestamp); !cur.After(end); cur = cur.AddDate(0, 0, 1) {
		out = append(out, DayCount{Date: cur, Count: counts[cur]})
	}
	return out
}

// Weekdays labels the heatmap rows, Monday first.
var Weekdays = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// Heatmap buckets messages into a day-of-week x hour-of-day grid. Row 0 is
// Monday, matching Weekdays.
func (r *Report) Heatmap() [7][24]int {
	var grid [7][24]int
	for _, m := range r.timelineMsgs() {
		row := (int(m.Timestamp.Weekday()) + 6) % 7 // Sunday=0 -> row 6
		grid[row][m.Timestamp.Hour()]++
	}
	return grid
}

// timelineMsgs applies the system-message policy for time-based views.
func (r *Report) timelineMsgs() []parse.Message {
	if r.includeSystem {
		return r.msgs
	}
	return lo.Filter(r.msgs, func(m parse.Message, _ int) bool {
		return !m.IsSystem()
	})
}

// Freq is one token of a frequency ranking.
type Freq struct {
	Token string
	Count int
}

// EmojiFrequency ranks emojis across all non-system messages by occurrence
// count descending; ties keep first-appearance order.
func (r *Report) EmojiFrequency() []Freq {
	return r.frequency(func(m parse.Message) []string { return m.Emojis }, false)
}

// WordFrequency ranks stopword-filtered words across all non-system,
// non-media messages, same ordering as EmojiFrequency.
func (r *Report) WordFrequency() []Freq {
	return r.frequency(func(m parse.Message) []string { return m.Words }, true)
}

func (r *Report) frequency(tokens func(parse.Message) []string, skipMedia bool) []Freq {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for _, m := range r.msgs {
		if m.IsSystem() || (skipMedia && m.IsMedia) {
			continue
		}
		for _, t := range tokens(m) {
			if _, ok := firstSeen[t]; !ok {
				firstSeen[t] = len(firstSeen)
			}
			counts[t]++
		}
	}

	out := make([]Freq, 0, len(counts))
	for t, c := range counts {
		out = append(out, Freq{Token: t, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return firstSeen[out[i].Token] < firstSeen[out[j].Token]
	})
	return out
}
