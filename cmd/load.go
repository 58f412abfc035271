package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/itsmostafa/godoxy/internal/config"
	"github.com/itsmostafa/godoxy/internal/console"
	"github.com/itsmostafa/godoxy/internal/doxygen"
	"github.com/itsmostafa/godoxy/internal/logging"
	"github.com/itsmostafa/godoxy/internal/printer"
)

// loadConfig reads the config file, if any, and applies the persistent flags
// on top of it.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return nil, err
		}
	}
	if inputDir != "" {
		cfg.InputDir = inputDir
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if cfg.InputDir == "" {
		return nil, fmt.Errorf("no input directory: set --input or inputDir in the config file")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (logging.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.NewDefaultLogger(level), nil
}

// loadTree loads and finalizes the tree. When progress is not nil, phase
// lines and the load summary are written to it.
func loadTree(ctx context.Context, cfg *config.Config, log logging.Logger, progress io.Writer) (*doxygen.Doxygen, error) {
	d := doxygen.New(cfg.InputDir, doxygen.WithLogger(log))
	if err := d.Load(ctx); err != nil {
		return nil, err
	}
	if err := d.Finalize(cfg, printer.NewMarkdown()); err != nil {
		return nil, err
	}

	if progress != nil {
		stats := d.Stats()
		for _, ps := range stats.Phases {
			console.FormatPhase(progress, ps)
		}
		console.FormatLoadSummary(progress, stats)
	}
	return d, nil
}
