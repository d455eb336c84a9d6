package query

import (
	"regexp"
	"strings"
)

var pattern = regexp.MustCompile(`^([A-Za-z]+)(?:!([A-Za-z_-]+))?$`)

// Query is a raw query split into a word and an optional modifier.
type Query struct {
	word        string
	modifier    string
	hasModifier bool
	empty       bool
}

// Parse splits raw into (word, modifier). It never fails: input that does not
// match the word!modifier grammar is taken literally as the word.
func Parse(raw string) Query {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Query{empty: true}
	}

	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return Query{word: text}
	}
	if m[2] == "" {
		return Query{word: m[1]}
	}
	return Query{word: m[1], modifier: m[2], hasModifier: true}
}

// Word returns the target word.
func (q Query) Word() string { return q.word }

// Modifier returns the modifier text and whether one was given.
func (q Query) Modifier() (string, bool) { return q.modifier, q.hasModifier }

// IsEmpty reports whether the input was empty or whitespace-only.
func (q Query) IsEmpty() bool { return q.empty }

// String renders the query back to its text form.
func (q Query) String() string {
	if q.hasModifier {
		return q.word + "!" + q.modifier
	}
	return q.word
}

// Rewrite builds the text a host should put in its search box to show word
// with modifier ("" for none), prefixed by the host action keyword if any.
func Rewrite(keyword, word, modifier string) string {
	text := word
	if modifier != "" {
		text += "!" + modifier
	}
	if keyword == "" {
		return text
	}
	return keyword + " " + text
}
