package entity

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/kailas-cloud/wordex/internal/domain"
	"github.com/kailas-cloud/wordex/internal/domain/option"
)

// Syllabification is a word split into fragments in reading order.
type Syllabification struct {
	Fragments []string
}

type syllableDTO struct {
	Text string `json:"text"`
	Seq  int    `json:"seq"`
}

// ParseSyllables decodes a hyphenation payload and orders it by seq.
func ParseSyllables(data []byte) (Syllabification, error) {
	var dtos []syllableDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return Syllabification{}, fmt.Errorf("%w: hyphenation: %w", domain.ErrMalformedPayload, err)
	}
	sort.SliceStable(dtos, func(i, j int) bool { return dtos[i].Seq < dtos[j].Seq })

	s := Syllabification{Fragments: make([]string, 0, len(dtos))}
	for _, d := range dtos {
		s.Fragments = append(s.Fragments, d.Text)
	}
	return s, nil
}

// String joins the fragments with "-".
func (s Syllabification) String() string {
	return strings.Join(s.Fragments, "-")
}

// IsEmpty reports whether there are no fragments.
func (s Syllabification) IsEmpty() bool { return len(s.Fragments) == 0 }

func (s Syllabification) ToOption() option.Option {
	return option.New(s.String(), "")
}
