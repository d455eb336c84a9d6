package lookup

import (
	"context"

	"github.com/kailas-cloud/wordex/internal/domain"
)

// Suggester finds known words close to a word the dictionary has nothing for.
type Suggester interface {
	Suggest(ctx context.Context, path, word string, n int) ([]domain.Suggestion, error)
}

// CacheResetter drops cached dictionary payloads.
type CacheResetter interface {
	Reset()
}
