package lookup

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/wordex/internal/domain/option"
	"github.com/kailas-cloud/wordex/internal/domain/query"
	"github.com/kailas-cloud/wordex/internal/logger"
)

// DefaultSuggestions is how many close words the fallback offers.
const DefaultSuggestions = 5

// fallback renders the output for a word with no results: close words from
// the configured word list, or a static notice.
func (s *Service) fallback(ctx context.Context, req Request, _ error) []option.Option {
	path := req.Settings.WordlistLoc
	if s.suggester == nil || path == "" || req.Word() == "" {
		return []option.Option{option.WordNotFound()}
	}

	suggestions, err := s.suggester.Suggest(ctx, path, req.Word(), s.suggestions)
	if err != nil {
		logger.FromContextOr(ctx, s.logger).Warn("Failed to suggest words",
			zap.String("wordlist", path), zap.Error(err))
		return []option.Option{option.WordNotFound()}
	}
	if len(suggestions) == 0 {
		return []option.Option{option.WordNotFound()}
	}

	n := len(suggestions)
	opts := make([]option.Option, 0, n+1)
	opts = append(opts, option.New("Word not found", "Did you mean one of these?").
		WithIcon(option.IconError).
		WithScore((n+1)*10))
	// Scores follow rank, not ratio.
	for i, sg := range suggestions {
		opts = append(opts, option.New(sg.Word, "Press ENTER to look up this word").
			WithScore((n-i)*10).
			WithAction(option.RewriteQuery(query.Rewrite(req.Keyword, sg.Word, ""))))
	}
	return opts
}
