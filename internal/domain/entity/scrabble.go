package entity

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/wordex/internal/domain"
	"github.com/kailas-cloud/wordex/internal/domain/option"
)

// ScrabbleScore is the scrabble value of a word. Missing values count as 0.
type ScrabbleScore struct {
	Value int
}

// ParseScrabbleScore decodes a scrabbleScore payload.
func ParseScrabbleScore(data []byte) (ScrabbleScore, error) {
	var dto struct {
		Value int `json:"value"`
	}
	if err := json.Unmarshal(data, &dto); err != nil {
		return ScrabbleScore{}, fmt.Errorf("%w: scrabbleScore: %w", domain.ErrMalformedPayload, err)
	}
	return ScrabbleScore(dto), nil
}

func (s ScrabbleScore) ToOption() option.Option {
	return option.New("Scrabble Score: "+strconv.Itoa(s.Value), "")
}
