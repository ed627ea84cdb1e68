package parse

import "mvdan.cc/xurls/v2"

var urlRe = xurls.Relaxed()

// ExtractLinks returns every URL in body in order of appearance. Matching is
// relaxed: bare domains without a scheme count, the way chat messages
// usually carry them.
func ExtractLinks(body string) []string {
	return urlRe.FindAllString(body, -1)
}
