package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/dshills/keyline/internal/config"
	"github.com/dshills/keyline/internal/engine"
	"github.com/dshills/keyline/internal/engine/buffer"
	"github.com/dshills/keyline/internal/engine/macro"
	"github.com/dshills/keyline/internal/logging"
	"github.com/dshills/keyline/internal/script"
)

// runScript opens opts.file, runs opts.script against it and saves the
// result. Script output goes to out.
func runScript(ctx context.Context, cfg *config.Config, opts options, logger *logging.Logger, out io.Writer) error {
	macros := macro.NewRecorder()
	if cfg.Macro.File != "" {
		if err := macro.Load(macros, cfg.Macro.File); err != nil {
			logger.Warn("loading macros from %s: %v", cfg.Macro.File, err)
		}
	}

	e := engine.New(
		engine.WithHistoryLimit(cfg.Editor.HistorySize),
		engine.WithLogger(logger),
		engine.WithMacroRecorder(macros),
	)

	if opts.file != "" {
		if err := e.Open(opts.file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	err := script.RunFile(ctx, e, opts.script, script.WithOutput(out), script.WithLogger(logger))
	if err != nil {
		return err
	}

	dest := opts.output
	if dest == "" {
		dest = opts.file
	}
	if dest == "" || !e.IsDirty() {
		return nil
	}

	save := buffer.NoOverwrite
	if opts.force || cfg.Editor.Overwrite || opts.output == "" {
		save = buffer.Overwrite
	}
	n, err := e.Save(dest, save)
	if err != nil {
		return fmt.Errorf("saving %s: %w", dest, err)
	}
	logger.Info("wrote %d bytes to %s", n, dest)

	if cfg.Macro.File != "" {
		if err := macro.Save(macros, cfg.Macro.File); err != nil {
			logger.Warn("saving macros to %s: %v", cfg.Macro.File, err)
		}
	}
	return nil
}
