package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"scenedup/internal/analysis"
	"scenedup/internal/catalog"
	"scenedup/internal/config"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var (
		stdinName string
		force     bool
		dryRun    bool
		frameRate int
		threshold float64
	)

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Segment a frame stream into scenes and record them",
		Long: `Analyze reads a raw 16x16 grayscale frame stream, segments it into
scenes, and records the scene fingerprints under the file's name. Use
--stdin to read the stream from standard input under an explicit name.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			if frameRate == 0 {
				frameRate = cfg.Analysis.FrameRate
			}
			if threshold == 0 {
				threshold = cfg.Analysis.SceneChangeThreshold
			}

			name, src, cleanup, err := openFrameStream(args, stdinName)
			if err != nil {
				return err
			}
			defer cleanup()

			if !dryRun {
				// One writer at a time: concurrent analyses would interleave
				// scene appends across files.
				lock := flock.New(cfg.LockPath())
				locked, err := lock.TryLock()
				if err != nil {
					return fmt.Errorf("acquire analyze lock: %w", err)
				}
				if !locked {
					return fmt.Errorf("another analysis is running (lock %s)", cfg.LockPath())
				}
				defer lock.Unlock()
			}

			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				analyzer := analysis.New(store, logger)
				result, err := analyzer.Analyze(cmd.Context(), name, src, analysis.Options{
					FrameRate: frameRate,
					Threshold: threshold,
					Force:     force,
					DryRun:    dryRun,
				})
				if err != nil {
					if errors.Is(err, analysis.ErrAlreadyAnalyzed) {
						return fmt.Errorf("%q already exists; pass --force to re-analyze", name)
					}
					return err
				}
				verb := "registered"
				if result.DryRun {
					verb = "detected (dry run)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d scenes %s for %q (%d frames)\n",
					result.Scenes, verb, name, result.Frames)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&stdinName, "stdin", "", "Read frames from standard input under this name")
	cmd.Flags().BoolVar(&force, "force", false, "Replace an already analyzed entry")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Segment without writing to the database")
	cmd.Flags().IntVar(&frameRate, "frame-rate", 0, "Frames per second of the stream (default from config)")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Scene change threshold (default from config)")

	return cmd
}

// openFrameStream resolves the input source and its display name. Files are
// registered under their path stem; a byte progress bar wraps regular files
// when stderr is a terminal.
func openFrameStream(args []string, stdinName string) (string, io.Reader, func(), error) {
	if stdinName != "" {
		return stdinName, os.Stdin, func() {}, nil
	}
	if len(args) == 0 {
		return "", nil, nil, errors.New("a file argument or --stdin <name> is required")
	}

	path := args[0]
	file, err := os.Open(path)
	if err != nil {
		return "", nil, nil, fmt.Errorf("open frame stream: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	var src io.Reader = file
	if info, err := file.Stat(); err == nil && info.Mode().IsRegular() && isatty.IsTerminal(os.Stderr.Fd()) {
		bar := progressbar.DefaultBytes(info.Size(), "analyzing")
		src = io.TeeReader(file, bar)
	}

	return name, src, func() { _ = file.Close() }, nil
}
