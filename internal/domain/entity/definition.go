package entity

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/k3a/html2text"

	"github.com/kailas-cloud/wordex/internal/domain"
	"github.com/kailas-cloud/wordex/internal/domain/option"
)

const posCutset = "!@#$%^&*()-=_+[]{}\\|';:\"/.,?><`~ \t\r\n"

// Definition is a single dictionary sense of a word.
type Definition struct {
	Word         string
	PartOfSpeech string
	Attribution  Attribution
	Text         string
	SourceURL    string
}

type definitionDTO struct {
	Word            string          `json:"word"`
	PartOfSpeech    *string         `json:"partOfSpeech"`
	AttributionText *string         `json:"attributionText"`
	AttributionURL  *string         `json:"attributionUrl"`
	Text            json.RawMessage `json:"text"`
	WordnikURL      string          `json:"wordnikUrl"`
}

// ParseDefinitions decodes a definitions payload. Entries without text are skipped.
func ParseDefinitions(data []byte) ([]Definition, error) {
	var dtos []definitionDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("%w: definitions: %w", domain.ErrMalformedPayload, err)
	}

	out := make([]Definition, 0, len(dtos))
	for _, d := range dtos {
		text, ok, err := definitionText(d.Text)
		if err != nil {
			return nil, fmt.Errorf("%w: definitions: %w", domain.ErrMalformedPayload, err)
		}
		if !ok {
			continue
		}
		def := Definition{
			Word:      d.Word,
			Text:      CleanText(text),
			SourceURL: d.WordnikURL,
		}
		if d.PartOfSpeech != nil {
			def.PartOfSpeech = NormalizePartOfSpeech(*d.PartOfSpeech)
		}
		if d.AttributionText != nil {
			def.Attribution.Text = *d.AttributionText
		}
		if d.AttributionURL != nil {
			def.Attribution.URL = *d.AttributionURL
		}
		out = append(out, def)
	}
	return out, nil
}

// definitionText accepts text given either as a string or a list of strings.
func definitionText(raw json.RawMessage) (string, bool, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", false, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true, nil
	}
	var parts []string
	if err := json.Unmarshal(raw, &parts); err != nil {
		return "", false, err
	}
	return strings.Join(parts, ", "), true, nil
}

// CleanText strips markup and folds whitespace.
func CleanText(s string) string {
	return strings.Join(strings.Fields(html2text.HTML2Text(s)), " ")
}

// NormalizePartOfSpeech keeps the text before the first ';' or ',' and trims
// punctuation and whitespace around it.
func NormalizePartOfSpeech(pos string) string {
	if i := strings.IndexAny(pos, ";,"); i >= 0 {
		pos = pos[:i]
	}
	return strings.Trim(pos, posCutset)
}

// MatchesPartOfSpeech reports whether the definition is tagged with tag
// (space separated, as produced by the modifier router).
func (d Definition) MatchesPartOfSpeech(tag string) bool {
	return d.PartOfSpeech != "" && d.PartOfSpeech == tag
}

// ToOption renders the definition with its context menu.
func (d Definition) ToOption() option.Option {
	sub := d.Attribution.Text
	if d.PartOfSpeech != "" {
		sub = d.PartOfSpeech + "; " + d.Attribution.Text
	}

	children := []option.Option{option.New(d.Word, d.Text)}
	if d.PartOfSpeech != "" {
		children = append(children, option.New("Part of Speech: "+d.PartOfSpeech, ""))
	}
	if d.SourceURL != "" {
		children = append(children, option.URL("in Wordnik", d.SourceURL))
	}
	if d.Attribution.URL != "" {
		children = append(children, option.URL("Attribution", d.Attribution.URL))
	}

	opt := option.New(d.Text, sub).WithChildren(children...)
	if d.SourceURL != "" {
		opt = opt.WithAction(option.OpenURL(d.SourceURL))
	}
	return opt
}
