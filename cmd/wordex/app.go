package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/wordex/internal/config"
	logpkg "github.com/kailas-cloud/wordex/internal/logger"
	"github.com/kailas-cloud/wordex/internal/version"
)

const (
	// ExitCodeSuccess is the successful exit code.
	ExitCodeSuccess int = iota

	// ExitCodeError is the exit code for any command failure.
	ExitCodeError
)

func newApp() *cli.App {
	return &cli.App{
		Name:    "wordex",
		Usage:   "Look up words in Wordnik and Urban Dictionary.",
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "load configuration from `FILE` instead of config/<env>.yaml",
				EnvVars: []string{"WORDEX_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "env",
				Usage: "configuration environment: local, dev, prod",
				Value: config.GetEnv(),
			},
		},
		Commands: []*cli.Command{
			serveCommand,
			rpcCommand,
			queryCommand,
		},
	}
}

func printVersion(c *cli.Context) {
	fmt.Fprintf(c.App.Writer, "%s %s (commit %s, built %s)\n",
		c.App.Name, version.Version, version.Commit, version.Date)
}

// loadConfig reads the configuration selected by the global flags. When
// required is false a missing config file yields the defaults.
func loadConfig(c *cli.Context, required bool) (config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.LoadFile(path)
	}
	cfg, err := config.Load(c.String("env"))
	if err != nil && !required && errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

func newLogger(c *cli.Context, cfg config.Config, level string) (*zap.Logger, error) {
	logger, err := logpkg.NewLogger(c.String("env"), logpkg.Options{
		Level:          level,
		DiagnosticFile: cfg.Logging.DiagnosticFile,
		MaxSizeMB:      cfg.Logging.MaxSizeMB,
		MaxBackups:     cfg.Logging.MaxBackups,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return logger, nil
}
