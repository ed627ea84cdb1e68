package parse

import "regexp"

// Pattern is one recognized header variant. The regex is anchored at line
// start; group 1 captures the timestamp text, group 2 the rest of the header
// (sender-and-body, or a bare system notification). The space before the
// AM/PM marker may be a narrow or regular no-break space, as some exports
// write it. Variants differ only in punctuation, so new locale formats are
// added here, not in the classifier.
type Pattern struct {
	Name string
	re   *regexp.Regexp
	// candidate time layouts, day-first date order. Tried in order; the
	// first one that parses the first header becomes the committed layout
	// for the rest of the file.
	dayFirst []string
	// same layouts with day and month swapped, for month-first exports
	monthFirst []string
}

func (p Pattern) layouts(monthFirst bool) []string {
	if monthFirst {
		return p.monthFirst
	}
	return p.dayFirst
}

// patterns are tried in priority order when sniffing the first header.
var patterns = []Pattern{
	{
		// 25/04/23, 15:49 - Name: Message
		Name: "slash",
		re:   regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{2,4}, \d{1,2}:\d{2}(?::\d{2})?[ \x{202f}\x{00a0}]?(?:[AP]M)?) - (.*)$`),
		dayFirst: []string{
			"2/1/06, 15:04", "2/1/2006, 15:04",
			"2/1/06, 15:04:05", "2/1/2006, 15:04:05",
			"2/1/06, 3:04 PM", "2/1/2006, 3:04 PM",
			"2/1/06, 3:04:05 PM", "2/1/2006, 3:04:05 PM",
		},
		monthFirst: []string{
			"1/2/06, 15:04", "1/2/2006, 15:04",
			"1/2/06, 15:04:05", "1/2/2006, 15:04:05",
			"1/2/06, 3:04 PM", "1/2/2006, 3:04 PM",
			"1/2/06, 3:04:05 PM", "1/2/2006, 3:04:05 PM",
		},
	},
	{
		// [04/25/23, 3:49:21 PM] Name: Message
		Name: "bracket",
		re:   regexp.MustCompile(`^\[(\d{1,2}/\d{1,2}/\d{2,4}, \d{1,2}:\d{2}(?::\d{2})?[ \x{202f}\x{00a0}]?(?:[AP]M)?)\] (.*)$`),
		dayFirst: []string{
			"2/1/06, 15:04", "2/1/2006, 15:04",
			"2/1/06, 15:04:05", "2/1/2006, 15:04:05",
			"2/1/06, 3:04 PM", "2/1/2006, 3:04 PM",
			"2/1/06, 3:04:05 PM", "2/1/2006, 3:04:05 PM",
		},
		monthFirst: []string{
			"1/2/06, 15:04", "1/2/2006, 15:04",
			"1/2/06, 15:04:05", "1/2/2006, 15:04:05",
			"1/2/06, 3:04 PM", "1/2/2006, 3:04 PM",
			"1/2/06, 3:04:05 PM", "1/2/2006, 3:04:05 PM",
		},
	},
	{
		// 25.04.2023, 15:49 - Name: Message
		Name: "dot",
		re:   regexp.MustCompile(`^(\d{1,2}\.\d{1,2}\.\d{2,4}, \d{1,2}:\d{2}(?::\d{2})?[ \x{202f}\x{00a0}]?(?:[AP]M)?) - (.*)$`),
		dayFirst: []string{
			"2.1.06, 15:04", "2.1.2006, 15:04",
			"2.1.06, 15:04:05", "2.1.2006, 15:04:05",
			"2.1.06, 3:04 PM", "2.1.2006, 3:04 PM",
		},
		monthFirst: []string{
			"1.2.06, 15:04", "1.2.2006, 15:04",
			"1.2.06, 15:04:05", "1.2.2006, 15:04:05",
			"1.2.06, 3:04 PM", "1.2.2006, 3:04 PM",
		},
	},
	{
		// 2023-04-25, 15:49 - Name: Message (date order is unambiguous)
		Name: "iso",
		re:   regexp.MustCompile(`^(\d{4}-\d{1,2}-\d{1,2}, \d{1,2}:\d{2}(?::\d{2})?[ \x{202f}\x{00a0}]?(?:[AP]M)?) - (.*)$`),
		dayFirst: []string{
			"2006-1-2, 15:04", "2006-1-2, 15:04:05",
			"2006-1-2, 3:04 PM", "2006-1-2, 3:04:05 PM",
		},
		monthFirst: []string{
			"2006-1-2, 15:04", "2006-1-2, 15:04:05",
			"2006-1-2, 3:04 PM", "2006-1-2, 3:04:05 PM",
		},
	},
}

// PatternNames lists the recognized header variants, in sniffing order.
func PatternNames() []string {
	names := make([]string, len(patterns))
	for i, p := range patterns {
		names[i] = p.Name
	}
	return names
}

func lookupPattern(name string) (*Pattern, bool) {
	for i := range patterns {
		if patterns[i].Name == name {
			return &patterns[i], true
		}
	}
	return nil, false
}
