package wordex

import (
	"github.com/kailas-cloud/wordex/internal/domain/entity"
	"github.com/kailas-cloud/wordex/internal/domain/option"
)

// Definition is a single dictionary sense of a word.
type Definition struct {
	Word            string
	PartOfSpeech    string
	Text            string
	AttributionText string
	AttributionURL  string
	SourceURL       string
}

// Relationship is one category of words related to a word (synonym, antonym, ...).
type Relationship struct {
	Type  string
	Words []string
}

// UrbanDefinition is a slang definition from Urban Dictionary.
type UrbanDefinition struct {
	Word       string
	Text       string
	Example    string
	Author     string
	Permalink  string
	ThumbsUp   int
	ThumbsDown int
	WrittenOn  string
}

// Action is what a launcher does when an item is selected.
type Action struct {
	Method     string // "open_url", "rewrite_query", "open_settings"
	Parameters []string
}

// Item is one rendered result line. Children form its context menu.
type Item struct {
	Title    string
	Subtitle string
	Icon     string
	Score    int
	Action   *Action
	Children []Item
}

func definitionFromEntity(d entity.Definition) Definition {
	return Definition{
		Word:            d.Word,
		PartOfSpeech:    d.PartOfSpeech,
		Text:            d.Text,
		AttributionText: d.Attribution.Text,
		AttributionURL:  d.Attribution.URL,
		SourceURL:       d.SourceURL,
	}
}

func urbanFromEntity(u entity.UrbanDefinition) UrbanDefinition {
	return UrbanDefinition{
		Word:       u.Word,
		Text:       u.Text,
		Example:    u.Example,
		Author:     u.Author,
		Permalink:  u.Permalink,
		ThumbsUp:   u.ThumbsUp,
		ThumbsDown: u.ThumbsDown,
		WrittenOn:  u.WrittenOn,
	}
}

func itemFromOption(o option.Option) Item {
	it := Item{
		Title:    o.Title(),
		Subtitle: o.Subtitle(),
		Icon:     o.Icon(),
		Score:    o.Score(),
	}
	if a := o.Action(); a != nil {
		it.Action = &Action{Method: string(a.Method()), Parameters: a.Parameters()}
	}
	for _, c := range o.Children() {
		it.Children = append(it.Children, itemFromOption(c))
	}
	return it
}
