package normalization

import (
	"strings"
)

func ParseInputString(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// Goal phrasings users type in place of a bare profession name. Longest
// prefixes first so "i want to become" wins over "become".
var goalPrefixes = []string{
	"i would like to become",
	"i would like to be",
	"i want to become",
	"i want to be",
	"i wish to become",
	"my goal is to become",
	"my goal is to be",
	"become",
	"be",
}

var articles = map[string]bool{
	"a":  true,
	"an": true,
}

// NormalizeProfession reduces a free-form goal string to a display-cased
// profession name: "I want to become a doctor" -> "Doctor". Returns ""
// when nothing remains after stripping.
func NormalizeProfession(input string) string {
	s := ParseInputString(input)
	s = strings.Trim(s, ".!?")
	for _, prefix := range goalPrefixes {
		if strings.HasPrefix(s, prefix+" ") {
			s = strings.TrimSpace(strings.TrimPrefix(s, prefix))
			break
		}
	}
	words := strings.Fields(s)
	if len(words) > 0 && articles[words[0]] {
		words = words[1:]
	}
	for i, w := range words {
		words[i] = titleWord(w)
	}
	return strings.Join(words, " ")
}

func titleWord(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + w[1:]
}
