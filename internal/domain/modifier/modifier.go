package modifier

import "strings"

// Kind is the view a modifier selects.
type Kind string

// Modifier kinds.
const (
	KindDefinitions       Kind = "definitions"
	KindSelectModifier    Kind = "select-modifier"
	KindSelectPOS         Kind = "select-pos"
	KindSyllables         Kind = "syllables"
	KindRelationships     Kind = "similiar"
	KindRelationshipWords Kind = "rel"
	KindScrabble          Kind = "scrabble"
	KindUrban             Kind = "urban"
	KindPartOfSpeech      Kind = "pos"
	KindInvalid           Kind = "invalid"
)

const relPrefix = "rel-"

// PartsOfSpeech lists the part-of-speech tags Wordnik reports, with "-" in place of spaces.
var PartsOfSpeech = []string{
	"noun",
	"adjective",
	"verb",
	"adverb",
	"interjection",
	"pronoun",
	"preposition",
	"abbreviation",
	"affix",
	"article",
	"auxiliary-verb",
	"conjunction",
	"definite-article",
	"family-name",
	"given-name",
	"idiom",
	"imperative",
	"noun-plural",
	"noun-posessive",
	"past-participle",
	"phrasal-prefix",
	"proper-noun",
	"proper-noun-plural",
	"proper-noun-posessive",
	"suffix",
	"intransitive-verb",
	"transitive-verb",
}

var posSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(PartsOfSpeech))
	for _, p := range PartsOfSpeech {
		m[p] = struct{}{}
	}
	return m
}()

// Modifier is a resolved modifier.
type Modifier struct {
	kind     Kind
	text     string
	category string
	pos      string
}

// Kind returns the selected view.
func (m Modifier) Kind() Kind { return m.kind }

// Text returns the raw modifier text ("" for none).
func (m Modifier) Text() string { return m.text }

// Category returns the relationship category for KindRelationshipWords.
func (m Modifier) Category() string { return m.category }

// PartOfSpeech returns the filter tag for KindPartOfSpeech, with spaces instead of "-".
func (m Modifier) PartOfSpeech() string { return m.pos }

type rule struct {
	match func(text string) bool
	build func(text string) Modifier
}

func exact(kind Kind) rule {
	return rule{
		match: func(text string) bool { return text == string(kind) },
		build: func(text string) Modifier { return Modifier{kind: kind, text: text} },
	}
}

// rules are evaluated in order; the first match wins.
var rules = []rule{
	exact(KindSelectModifier),
	exact(KindSelectPOS),
	exact(KindSyllables),
	exact(KindRelationships),
	{
		match: func(text string) bool { return strings.HasPrefix(text, relPrefix) },
		build: func(text string) Modifier {
			return Modifier{kind: KindRelationshipWords, text: text, category: strings.TrimPrefix(text, relPrefix)}
		},
	},
	exact(KindScrabble),
	exact(KindUrban),
	{
		match: func(text string) bool { _, ok := posSet[text]; return ok },
		build: func(text string) Modifier {
			return Modifier{kind: KindPartOfSpeech, text: text, pos: strings.ReplaceAll(text, "-", " ")}
		},
	},
}

// None is the modifier of a bare word.
func None() Modifier { return Modifier{kind: KindDefinitions} }

// Resolve maps modifier text to a Modifier. It performs no I/O.
// Unknown text resolves to KindInvalid.
func Resolve(text string, present bool) Modifier {
	if !present {
		return None()
	}
	for _, r := range rules {
		if r.match(text) {
			return r.build(text)
		}
	}
	return Modifier{kind: KindInvalid, text: text}
}

// Selectable describes a modifier offered by the modifier menu.
type Selectable struct {
	Modifier    string
	Title       string
	Description string
}

// Menu lists the modifiers offered by the select-modifier menu, in display order.
var Menu = []Selectable{
	{Modifier: string(KindSyllables), Title: "Syllables", Description: "Get the syllables of a word"},
	{Modifier: string(KindRelationships), Title: "Similiar", Description: "Get categories of similiar words"},
	{Modifier: string(KindScrabble), Title: "Scrabble", Description: "Get the scrabble score of a word."},
	{Modifier: string(KindUrban), Title: "Urban Dictionary", Description: "Get slang definitions from Urban Dictionary"},
	{Modifier: string(KindSelectPOS), Title: "Filter by Part of Speech", Description: "Filter results by the part of speech"},
}
