package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/kailas-cloud/wordex/internal/domain"
	"github.com/kailas-cloud/wordex/internal/domain/option"
	"github.com/kailas-cloud/wordex/internal/transport/jsonrpc"
	lookupuc "github.com/kailas-cloud/wordex/internal/usecase/lookup"
)

var queryCommand = &cli.Command{
	Name:      "query",
	Usage:     "look up a word and print the result JSON",
	ArgsUsage: "WORD[!MODIFIER]",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "keyword", Usage: "action keyword used in rewritten queries"},
		&cli.StringFlag{Name: "api-key", Usage: "Wordnik API key", EnvVars: []string{"WORDNIK_API_KEY"}},
		&cli.StringFlag{Name: "results", Usage: "maximum number of results"},
		&cli.BoolFlag{Name: "canonical", Usage: "look up the canonical form of the word"},
		&cli.StringFlag{Name: "wordlist", Usage: "word list `FILE` for suggestions"},
		&cli.BoolFlag{Name: "debug", Usage: "log at debug level"},
	},
	Action: runQuery,
}

func runQuery(c *cli.Context) error {
	if !c.Args().Present() {
		return errors.New("query: missing word")
	}

	cfg, err := loadConfig(c, false)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	settings := domain.Overrides{
		APIKey:      c.String("api-key"),
		Results:     c.String("results"),
		WordlistLoc: c.String("wordlist"),
	}
	// Unset flags keep the config file's values.
	if c.IsSet("canonical") {
		canonical := c.Bool("canonical")
		settings.UseCanonical = &canonical
	}
	if c.IsSet("debug") {
		debug := c.Bool("debug")
		settings.DebugMode = &debug
	}
	level := cfg.Logging.Level
	if cfg.Settings.Merge(settings).DebugMode {
		level = "debug"
	}
	logger, err := newLogger(c, cfg, level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	comps, err := buildComponents(c.Context, cfg, logger)
	if err != nil {
		return err
	}
	defer comps.close()

	opts := comps.lookup.Query(c.Context, lookupuc.Invocation{
		Query:    strings.Join(c.Args().Slice(), " "),
		Keyword:  c.String("keyword"),
		Settings: settings,
	})

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jsonrpc.Response{Result: option.ToWireList(opts)}); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}
