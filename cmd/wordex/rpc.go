package main

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/kailas-cloud/wordex/internal/transport/jsonrpc"
)

var rpcCommand = &cli.Command{
	Name:      "rpc",
	Usage:     "answer one launcher JSON-RPC request from the argument or stdin",
	ArgsUsage: "[REQUEST]",
	Action:    runRPC,
}

func runRPC(c *cli.Context) error {
	cfg, err := loadConfig(c, false)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	data, err := readRequest(c)
	if err != nil {
		return err
	}

	level := cfg.Logging.Level
	if req, err := jsonrpc.Decode(data); err == nil && cfg.Settings.Merge(req.Settings()).DebugMode {
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

	return jsonrpc.NewHandler(comps.lookup, logger).ServeBytes(c.Context, data, c.App.Writer)
}

// readRequest returns the first argument, or stdin when there is none.
func readRequest(c *cli.Context) ([]byte, error) {
	if c.Args().Present() {
		return []byte(c.Args().First()), nil
	}
	data, err := io.ReadAll(c.App.Reader)
	if err != nil {
		return nil, fmt.Errorf("read request: %w", err)
	}
	return data, nil
}
