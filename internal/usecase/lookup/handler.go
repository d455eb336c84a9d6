package lookup

import (
	"context"
	"iter"

	"github.com/kailas-cloud/wordex/internal/domain"
	"github.com/kailas-cloud/wordex/internal/domain/entity"
	"github.com/kailas-cloud/wordex/internal/domain/modifier"
	"github.com/kailas-cloud/wordex/internal/domain/option"
)

// Handler produces the options for one modifier kind. A handler stops after
// yielding a non-nil error.
type Handler interface {
	Produce(ctx context.Context, req Request) iter.Seq2[option.Option, error]
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, req Request) iter.Seq2[option.Option, error]

// Produce implements Handler.
func (f HandlerFunc) Produce(ctx context.Context, req Request) iter.Seq2[option.Option, error] {
	return f(ctx, req)
}

func fail(err error) iter.Seq2[option.Option, error] {
	return func(yield func(option.Option, error) bool) {
		yield(option.Option{}, err)
	}
}

func seqOf(opts ...option.Option) iter.Seq2[option.Option, error] {
	return func(yield func(option.Option, error) bool) {
		for _, o := range opts {
			if !yield(o, nil) {
				return
			}
		}
	}
}

// handlers builds the static dispatch table.
func (s *Service) handlers() map[modifier.Kind]Handler {
	return map[modifier.Kind]Handler{
		modifier.KindDefinitions:       HandlerFunc(s.definitions),
		modifier.KindPartOfSpeech:      HandlerFunc(s.definitions),
		modifier.KindSelectModifier:    HandlerFunc(s.modifierMenu),
		modifier.KindSelectPOS:         HandlerFunc(posMenu),
		modifier.KindSyllables:         HandlerFunc(s.syllables),
		modifier.KindRelationships:     HandlerFunc(s.relationships),
		modifier.KindRelationshipWords: HandlerFunc(s.relationshipWords),
		modifier.KindScrabble:          HandlerFunc(s.scrabble),
		modifier.KindUrban:             HandlerFunc(s.urban),
		modifier.KindInvalid:           HandlerFunc(invalidModifier),
	}
}

func (s *Service) definitions(ctx context.Context, req Request) iter.Seq2[option.Option, error] {
	return func(yield func(option.Option, error) bool) {
		data, err := s.fetcher.Fetch(ctx, domain.FetchDefinitions, req.Word(), req.Settings)
		if err != nil {
			yield(option.Option{}, err)
			return
		}
		defs, err := entity.ParseDefinitions(data)
		if err != nil {
			yield(option.Option{}, err)
			return
		}

		filter := req.Modifier.Kind() == modifier.KindPartOfSpeech
		for _, d := range defs {
			if filter && !d.MatchesPartOfSpeech(req.Modifier.PartOfSpeech()) {
				continue
			}
			if !yield(d.ToOption(), nil) {
				return
			}
		}
	}
}

func (s *Service) modifierMenu(ctx context.Context, req Request) iter.Seq2[option.Option, error] {
	if s.prefetchOnMenu {
		go s.warmInBackground(ctx, req)
	}

	opts := make([]option.Option, 0, len(modifier.Menu)+1)
	opts = append(opts, option.New("Modifier Selection Menu", "").WithScore(100))
	for _, m := range modifier.Menu {
		opts = append(opts, option.New(m.Title, m.Description).WithAction(option.RewriteQuery(req.Rewrite(m.Modifier))))
	}
	return seqOf(opts...)
}

func posMenu(_ context.Context, req Request) iter.Seq2[option.Option, error] {
	opts := make([]option.Option, 0, len(modifier.PartsOfSpeech)+1)
	opts = append(opts, option.New("Part of Speech Selector", "").WithScore(100))
	for _, pos := range modifier.PartsOfSpeech {
		opts = append(opts, option.New(pos, "").WithAction(option.RewriteQuery(req.Rewrite(pos))))
	}
	return seqOf(opts...)
}

// syllables buffers the whole response since fragments arrive unordered.
func (s *Service) syllables(ctx context.Context, req Request) iter.Seq2[option.Option, error] {
	data, err := s.fetcher.Fetch(ctx, domain.FetchHyphenation, req.Word(), req.Settings)
	if err != nil {
		return fail(err)
	}
	syl, err := entity.ParseSyllables(data)
	if err != nil {
		return fail(err)
	}
	if syl.IsEmpty() {
		return seqOf()
	}
	return seqOf(syl.ToOption())
}

func (s *Service) relationships(ctx context.Context, req Request) iter.Seq2[option.Option, error] {
	return func(yield func(option.Option, error) bool) {
		rels, err := s.fetchRelationships(ctx, req)
		if err != nil {
			yield(option.Option{}, err)
			return
		}
		for _, r := range rels {
			if !yield(r.ToOption(req.Keyword), nil) {
				return
			}
		}
	}
}

func (s *Service) relationshipWords(ctx context.Context, req Request) iter.Seq2[option.Option, error] {
	return func(yield func(option.Option, error) bool) {
		rels, err := s.fetchRelationships(ctx, req)
		if err != nil {
			yield(option.Option{}, err)
			return
		}
		for _, r := range rels {
			if r.Type != req.Modifier.Category() {
				continue
			}
			for _, o := range r.WordOptions(req.Keyword) {
				if !yield(o, nil) {
					return
				}
			}
			return
		}
	}
}

func (s *Service) fetchRelationships(ctx context.Context, req Request) ([]entity.WordRelationship, error) {
	data, err := s.fetcher.Fetch(ctx, domain.FetchRelatedWords, req.Word(), req.Settings)
	if err != nil {
		return nil, err
	}
	return entity.ParseRelationships(req.Word(), data)
}

func (s *Service) scrabble(ctx context.Context, req Request) iter.Seq2[option.Option, error] {
	data, err := s.fetcher.Fetch(ctx, domain.FetchScrabbleScore, req.Word(), req.Settings)
	if err != nil {
		return fail(err)
	}
	score, err := entity.ParseScrabbleScore(data)
	if err != nil {
		return fail(err)
	}
	return seqOf(score.ToOption())
}

func (s *Service) urban(ctx context.Context, req Request) iter.Seq2[option.Option, error] {
	return func(yield func(option.Option, error) bool) {
		data, err := s.fetcher.Fetch(ctx, domain.FetchUrban, req.Word(), req.Settings)
		if err != nil {
			yield(option.Option{}, err)
			return
		}
		defs, err := entity.ParseUrban(data)
		if err != nil {
			yield(option.Option{}, err)
			return
		}
		for _, d := range defs {
			if !yield(d.ToOption(), nil) {
				return
			}
		}
	}
}

func invalidModifier(_ context.Context, req Request) iter.Seq2[option.Option, error] {
	return seqOf(
		option.New("Unknown Search Modifier Given", "Press ENTER to open a select modifier menu.").
			WithIcon(option.IconError).
			WithAction(option.RewriteQuery(req.Rewrite(string(modifier.KindSelectModifier)))),
	)
}
