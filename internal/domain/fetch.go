package domain

import "context"

// FetchKind selects the remote endpoint and the cache partition.
type FetchKind string

// Fetch kinds.
const (
	FetchDefinitions   FetchKind = "definitions"
	FetchHyphenation   FetchKind = "hyphenation"
	FetchRelatedWords  FetchKind = "relatedWords"
	FetchScrabbleScore FetchKind = "scrabbleScore"
	// FetchUrban reads Urban Dictionary instead of Wordnik.
	FetchUrban FetchKind = "urban"
)

// FetchKinds lists every kind in endpoint order.
var FetchKinds = []FetchKind{
	FetchDefinitions, FetchHyphenation, FetchRelatedWords, FetchScrabbleScore, FetchUrban,
}

// IsValid checks if the kind is one of the supported values.
func (k FetchKind) IsValid() bool {
	for _, v := range FetchKinds {
		if k == v {
			return true
		}
	}
	return false
}

// Fetcher returns the raw JSON payload for a (kind, word) pair.
// Implementations classify failures with the sentinels in errors.go.
type Fetcher interface {
	Fetch(ctx context.Context, kind FetchKind, word string, settings Settings) ([]byte, error)
}

// HealthChecker is an optional interface for fetchers that can verify upstream availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
