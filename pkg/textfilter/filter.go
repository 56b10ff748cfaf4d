package textfilter

import (
	"regexp"
	"strings"
	"unicode"
)

// replacements maps profanity to narration-safe alternatives. Words with
// no tasteful stand-in are censored outright.
var replacements = map[string]string{
	"fuck":         "fudge",
	"shit":         "shoot",
	"damn":         "dang",
	"hell":         "heck",
	"ass":          "butt",
	"asshole":      "jerk",
	"bitch":        "jerk",
	"bastard":      "jerk",
	"prick":        "jerk",
	"dick":         "jerk",
	"crap":         "crud",
	"piss":         "ticked",
	"bullshit":     "baloney",
	"horseshit":    "nonsense",
	"dumbass":      "dummy",
	"dipshit":      "dummy",
	"jackass":      "jerk",
	"motherfucker": "mother-trucker",
	"goddamn":      "gosh-dang",
	"whore":        "[censored]",
	"slut":         "[censored]",
	"cock":         "[censored]",
	"pussy":        "[censored]",
	"tits":         "[censored]",
}

// Filter rewrites profanity in narration text. Narration comes from an
// LLM, so authored casefile ratings cannot be guaranteed by prompt
// alone; the filter is the backstop.
type Filter struct {
	regexes map[string]*regexp.Regexp
}

// NewFilter compiles the word patterns once for reuse across requests.
func NewFilter() *Filter {
	f := &Filter{regexes: make(map[string]*regexp.Regexp, len(replacements))}
	for word := range replacements {
		f.regexes[word] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	}
	return f
}

// Sanitize replaces profanity with its alternative, preserving the case
// shape of the original word.
func (f *Filter) Sanitize(text string) string {
	result := text
	for word, replacement := range replacements {
		result = f.regexes[word].ReplaceAllStringFunc(result, func(match string) string {
			return matchCase(match, replacement)
		})
	}
	return result
}

// ContainsProfanity reports whether any filtered word appears in the text.
func (f *Filter) ContainsProfanity(text string) bool {
	for _, re := range f.regexes {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// ShouldFilter reports whether a casefile content rating requires
// narration filtering. Unknown or empty ratings are left unfiltered.
func ShouldFilter(rating string) bool {
	switch strings.ToUpper(strings.TrimSpace(rating)) {
	case "G", "PG", "PG13", "PG-13":
		return true
	default:
		return false
	}
}

// matchCase applies the original word's case shape to the replacement:
// all-caps stays all-caps, a capitalized word stays capitalized,
// everything else is lowercased.
func matchCase(original, replacement string) string {
	if original == strings.ToUpper(original) && len(original) > 1 {
		return strings.ToUpper(replacement)
	}
	runes := []rune(original)
	if len(runes) > 0 && unicode.IsUpper(runes[0]) {
		out := []rune(strings.ToLower(replacement))
		if len(out) > 0 {
			out[0] = unicode.ToUpper(out[0])
		}
		return string(out)
	}
	return strings.ToLower(replacement)
}
