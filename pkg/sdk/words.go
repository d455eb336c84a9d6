package wordex

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/wordex/internal/domain"
	"github.com/kailas-cloud/wordex/internal/domain/entity"
)

// Definitions returns the dictionary senses of word.
func (c *Client) Definitions(ctx context.Context, word string) (defs []Definition, err error) {
	start := time.Now()
	defer func() { c.obs.observe("definitions", word, start, err) }()

	data, err := c.fetch(ctx, domain.FetchDefinitions, word)
	if err != nil {
		return nil, err
	}
	parsed, err := entity.ParseDefinitions(data)
	if err != nil {
		return nil, fmt.Errorf("definitions: %w", err)
	}

	defs = make([]Definition, 0, len(parsed))
	for _, d := range parsed {
		defs = append(defs, definitionFromEntity(d))
	}
	return defs, nil
}

// Syllables returns the fragments of word in reading order.
func (c *Client) Syllables(ctx context.Context, word string) (fragments []string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("syllables", word, start, err) }()

	data, err := c.fetch(ctx, domain.FetchHyphenation, word)
	if err != nil {
		return nil, err
	}
	s, err := entity.ParseSyllables(data)
	if err != nil {
		return nil, fmt.Errorf("syllables: %w", err)
	}
	return s.Fragments, nil
}

// Related returns the categories of words related to word.
func (c *Client) Related(ctx context.Context, word string) (rels []Relationship, err error) {
	start := time.Now()
	defer func() { c.obs.observe("related", word, start, err) }()

	data, err := c.fetch(ctx, domain.FetchRelatedWords, word)
	if err != nil {
		return nil, err
	}
	parsed, err := entity.ParseRelationships(word, data)
	if err != nil {
		return nil, fmt.Errorf("related: %w", err)
	}

	rels = make([]Relationship, 0, len(parsed))
	for _, r := range parsed {
		rels = append(rels, Relationship{Type: r.Type, Words: r.RelatedWords})
	}
	return rels, nil
}

// ScrabbleScore returns the scrabble value of word. Words the dictionary
// has no score for count as 0.
func (c *Client) ScrabbleScore(ctx context.Context, word string) (score int, err error) {
	start := time.Now()
	defer func() { c.obs.observe("scrabble", word, start, err) }()

	data, err := c.fetch(ctx, domain.FetchScrabbleScore, word)
	if err != nil {
		return 0, err
	}
	s, err := entity.ParseScrabbleScore(data)
	if err != nil {
		return 0, fmt.Errorf("scrabble: %w", err)
	}
	return s.Value, nil
}

// Urban returns the Urban Dictionary definitions of word.
func (c *Client) Urban(ctx context.Context, word string) (defs []UrbanDefinition, err error) {
	start := time.Now()
	defer func() { c.obs.observe("urban", word, start, err) }()

	data, err := c.fetch(ctx, domain.FetchUrban, word)
	if err != nil {
		return nil, err
	}
	parsed, err := entity.ParseUrban(data)
	if err != nil {
		return nil, fmt.Errorf("urban: %w", err)
	}

	defs = make([]UrbanDefinition, 0, len(parsed))
	for _, u := range parsed {
		defs = append(defs, urbanFromEntity(u))
	}
	return defs, nil
}

func (c *Client) fetch(ctx context.Context, kind domain.FetchKind, word string) ([]byte, error) {
	data, err := c.fetcher.Fetch(ctx, kind, word, c.settings)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", kind, word, err)
	}
	return data, nil
}
