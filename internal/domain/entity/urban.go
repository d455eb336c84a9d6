package entity

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/wordex/internal/domain"
	"github.com/kailas-cloud/wordex/internal/domain/option"
)

// UrbanDefinition is a slang definition from Urban Dictionary.
type UrbanDefinition struct {
	Word       string
	Text       string
	Permalink  string
	ThumbsUp   int
	ThumbsDown int
	Author     string
	Example    string
	WrittenOn  string
}

type urbanDTO struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
	Permalink  string `json:"permalink"`
	ThumbsUp   int    `json:"thumbs_up"`
	ThumbsDown int    `json:"thumbs_down"`
	Author     string `json:"author"`
	Example    string `json:"example"`
	WrittenOn  string `json:"written_on"`
}

// ParseUrban decodes the unwrapped Urban Dictionary list.
func ParseUrban(data []byte) ([]UrbanDefinition, error) {
	var dtos []urbanDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("%w: urban: %w", domain.ErrMalformedPayload, err)
	}
	out := make([]UrbanDefinition, 0, len(dtos))
	for _, d := range dtos {
		if d.Definition == "" {
			continue
		}
		out = append(out, UrbanDefinition{
			Word:       d.Word,
			Text:       strings.ReplaceAll(d.Definition, "\n", " "),
			Permalink:  d.Permalink,
			ThumbsUp:   d.ThumbsUp,
			ThumbsDown: d.ThumbsDown,
			Author:     d.Author,
			Example:    d.Example,
			WrittenOn:  d.WrittenOn,
		})
	}
	return out, nil
}

func (u UrbanDefinition) ToOption() option.Option {
	sub := fmt.Sprintf("%d:%d - by %s", u.ThumbsUp, u.ThumbsDown, u.Author)
	opt := option.New(u.Text, sub).WithChildren(
		option.New(u.Text, ""),
		option.New("Author: "+u.Author, ""),
		option.New("Upvotes: "+strconv.Itoa(u.ThumbsUp), ""),
		option.New("Downvotes: "+strconv.Itoa(u.ThumbsDown), ""),
		option.New("Example: "+u.Example, ""),
		option.URL("Urban Permalink", u.Permalink),
	)
	if u.Permalink != "" {
		opt = opt.WithAction(option.OpenURL(u.Permalink))
	}
	return opt
}
