// Package naming holds the string casing and inflection rules shared by the
// classifier, the table builder and the emitters.
package naming

import (
	"strings"
	"unicode"
)

// Words splits s into words on separators, lower-to-upper transitions and
// acronym boundaries. "DateTime" -> [Date Time], "URLPath" -> [URL Path],
// "first_name" -> [first name].
func Words(s string) []string {
	var out []string
	var cur []rune

	runes := []rune(s)
	flush := func() {
		if len(cur) > 0 {
			out = append(out, string(cur))
			cur = cur[:0]
		}
	}

	for i, r := range runes {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
		case unicode.IsUpper(r):
			if len(cur) > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					flush()
				}
			}
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
	}
	flush()

	return out
}

// Snake converts s to snake_case. "BookReview" -> "book_review"
func Snake(s string) string {
	words := Words(s)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "_")
}

// Pascal converts s to PascalCase. "book_review" -> "BookReview"
func Pascal(s string) string {
	var b strings.Builder
	for _, w := range Words(s) {
		b.WriteString(upperFirst(strings.ToLower(w)))
	}
	return b.String()
}

// Camel converts s to lowerCamelCase. "Big Integer" -> "bigInteger"
func Camel(s string) string {
	words := Words(s)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(strings.ToLower(words[0]))
	for _, w := range words[1:] {
		b.WriteString(upperFirst(strings.ToLower(w)))
	}
	return b.String()
}

// Humanize turns an identifier into lower case space separated words.
func Humanize(s string) string {
	words := Words(s)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, " ")
}

// Sentence is Humanize with the first letter upper cased.
func Sentence(s string) string {
	return upperFirst(Humanize(s))
}

// Title upper cases the first letter of every word and keeps the rest of
// each word as is, so acronyms survive: "person ID" -> "Person ID".
func Title(s string) string {
	words := Words(s)
	for i, w := range words {
		words[i] = upperFirst(w)
	}
	return strings.Join(words, " ")
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
