package parse

import (
	"sort"
	"strings"

	"github.com/abadojack/whatlanggo"
)

// LangAuto asks the parser to detect the chat language from message bodies
// and pick the matching built-in stopword list.
const LangAuto = "auto"

// how much body text to feed the language detector
const langSampleSize = 4 * 1024

// Built-in stopword lists. Word extraction already lower-cases tokens, so
// the lists are lower-case only.
var stopwordLists = map[string][]string{
	"en": {
		"the", "to", "and", "is", "in", "it", "of", "for", "on", "that", "this",
		"was", "with", "as", "at", "by", "an", "be", "are", "or", "from", "had",
		"have", "has", "a", "i", "you", "me", "we", "my", "your", "our", "he", "she",
		"him", "her", "they", "their", "am", "if", "but", "so", "not", "what", "when",
		"where", "who", "how", "why", "which", "ok", "okay", "yes", "no", "can", "will",
		"just", "do", "did", "done", "going", "go", "went", "gone", "get", "got", "getting",
	},
	"es": {
		"el", "la", "los", "las", "un", "una", "unos", "unas", "y", "o", "de", "del",
		"a", "al", "en", "que", "qué", "es", "son", "está", "están", "por", "para",
		"con", "sin", "no", "sí", "si", "yo", "tú", "tu", "mi", "su", "nos", "me",
		"te", "se", "lo", "le", "les", "pero", "más", "ya", "muy", "como", "cuando",
		"donde", "quién", "esto", "eso", "hay", "ser", "estar", "hacer", "bien", "vale",
	},
	"fr": {
		"le", "la", "les", "un", "une", "des", "du", "de", "et", "ou", "à", "au",
		"aux", "en", "que", "qui", "quoi", "est", "sont", "je", "tu", "il", "elle",
		"on", "nous", "vous", "ils", "elles", "me", "te", "se", "mon", "ma", "mes",
		"ton", "ta", "tes", "son", "sa", "ses", "ne", "pas", "plus", "mais", "donc",
		"avec", "sans", "pour", "par", "dans", "sur", "ce", "cette", "ça", "oui", "non",
	},
	"de": {
		"der", "die", "das", "ein", "eine", "einen", "einem", "und", "oder", "zu",
		"in", "im", "an", "am", "auf", "für", "von", "vom", "mit", "ohne", "ist",
		"sind", "war", "waren", "ich", "du", "er", "sie", "es", "wir", "ihr", "mich",
		"dich", "sich", "mein", "dein", "sein", "nicht", "kein", "aber", "auch",
		"noch", "schon", "so", "wie", "was", "wann", "wo", "wer", "ja", "nein", "mal",
	},
}

// StopwordLangs lists the built-in stopword languages, sorted.
func StopwordLangs() []string {
	langs := make([]string, 0, len(stopwordLists))
	for l := range stopwordLists {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}

// resolveStopwords builds the stopword set for a parsed sequence: the
// configured (or detected) built-in list plus any extra words.
func resolveStopwords(msgs []Message, cfg Config) map[string]bool {
	lang := cfg.StopwordLang
	if lang == "" || lang == LangAuto {
		lang = DetectLang(msgs)
	}
	set := make(map[string]bool, len(stopwordLists[lang])+len(cfg.ExtraStopwords))
	for _, w := range stopwordLists[lang] {
		set[w] = true
	}
	for _, w := range cfg.ExtraStopwords {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			set[w] = true
		}
	}
	return set
}

// DetectLang samples non-system, non-media bodies and maps the detected
// language to a built-in list. Anything we have no list for falls back to
// English rather than skipping stopword removal entirely.
func DetectLang(msgs []Message) string {
	var b strings.Builder
	for _, m := range msgs {
		if m.IsSystem() || m.IsMedia {
			continue
		}
		b.WriteString(m.Body)
		b.WriteString(" ")
		if b.Len() >= langSampleSize {
			break
		}
	}
	switch whatlanggo.DetectLang(b.String()) {
	case whatlanggo.Spa:
		return "es"
	case whatlanggo.Fra:
		return "fr"
	case whatlanggo.Deu:
		return "de"
	default:
		return "en"
	}
}
