// Package wordex provides an embeddable Go client for Wordnik and Urban
// Dictionary lookups, with the same caching and option rendering as the
// wordex service.
//
// # Typed API
//
//	client, _ := wordex.New(ctx, wordex.WithAPIKey(key), wordex.WithResults(5))
//	defer client.Close()
//	defs, err := client.Definitions(ctx, "color")
//	if errors.Is(err, wordex.ErrWordNotFound) { ... }
//	score, _ := client.ScrabbleScore(ctx, "color")
//
// # Launcher API
//
// Query renders a raw query into the items a launcher would show:
//
//	items, _ := client.Query(ctx, "happy!rel-synonym")
package wordex
