package entity

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kailas-cloud/wordex/internal/domain"
	"github.com/kailas-cloud/wordex/internal/domain/option"
	"github.com/kailas-cloud/wordex/internal/domain/query"
)

const previewWords = 5

// WordRelationship is one category of words related to Word.
type WordRelationship struct {
	Word         string
	Type         string
	RelatedWords []string
}

type relationshipDTO struct {
	RelationshipType string   `json:"relationshipType"`
	Words            []string `json:"words"`
}

// ParseRelationships decodes a relatedWords payload for word.
func ParseRelationships(word string, data []byte) ([]WordRelationship, error) {
	var dtos []relationshipDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("%w: relatedWords: %w", domain.ErrMalformedPayload, err)
	}
	out := make([]WordRelationship, 0, len(dtos))
	for _, d := range dtos {
		if d.RelationshipType == "" {
			continue
		}
		out = append(out, WordRelationship{Word: word, Type: d.RelationshipType, RelatedWords: d.Words})
	}
	return out, nil
}

// ToOption renders the category as a rewrite into its word list.
func (r WordRelationship) ToOption(keyword string) option.Option {
	preview := r.RelatedWords
	if len(preview) > previewWords {
		preview = preview[:previewWords]
	}
	return option.New(r.Type, strings.Join(preview, ", ")).
		WithAction(option.RewriteQuery(query.Rewrite(keyword, r.Word, "rel-"+r.Type)))
}

// WordOptions renders each related word as a rewrite to its definitions.
func (r WordRelationship) WordOptions(keyword string) []option.Option {
	out := make([]option.Option, 0, len(r.RelatedWords))
	for _, w := range r.RelatedWords {
		w = strings.ToLower(w)
		out = append(out, option.New(w, "").WithAction(option.RewriteQuery(query.Rewrite(keyword, w, ""))))
	}
	return out
}
