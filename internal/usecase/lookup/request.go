package lookup

import (
	"github.com/kailas-cloud/wordex/internal/domain"
	"github.com/kailas-cloud/wordex/internal/domain/modifier"
	"github.com/kailas-cloud/wordex/internal/domain/query"
)

// DefaultKeyword is the launcher action keyword prefixed to rewritten queries.
const DefaultKeyword = "def"

// Invocation is one host request.
type Invocation struct {
	Query string
	// Keyword overrides the configured action keyword when non-empty.
	Keyword string
	// Settings are applied over the configured defaults.
	Settings domain.Overrides
}

// Request is a parsed invocation handed to a Handler.
type Request struct {
	Query    query.Query
	Modifier modifier.Modifier
	Keyword  string
	Settings domain.Settings
}

// Word returns the target word.
func (r Request) Word() string { return r.Query.Word() }

// Rewrite builds the host query for the target word with another modifier ("" for none).
func (r Request) Rewrite(mod string) string {
	return query.Rewrite(r.Keyword, r.Query.Word(), mod)
}
