// Package analysis drives one full pass over a file's frame stream: register
// the entry, segment the stream into scenes, persist every scene, and only
// then flip the file to analyzed.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"scenedup/internal/catalog"
	"scenedup/internal/frame"
	"scenedup/internal/logging"
	"scenedup/internal/scene"
	"scenedup/internal/segment"
)

// ErrAlreadyAnalyzed reports an analyze request for a name whose scene set is
// already complete. Callers pass Force to replace it.
var ErrAlreadyAnalyzed = errors.New("file already analyzed")

// Store is the slice of the catalog the analyzer needs.
type Store interface {
	FileByName(ctx context.Context, name string) (*catalog.FileEntry, error)
	RegisterFile(ctx context.Context, name string) (*catalog.FileEntry, error)
	DeleteFile(ctx context.Context, fileID int64) error
	AppendScene(ctx context.Context, sc scene.Scene) error
	MarkAnalyzed(ctx context.Context, fileID int64) error
}

// Options tune one analysis run.
type Options struct {
	// FrameRate converts frame spans into millisecond durations.
	FrameRate int
	// Threshold is the change-distance boundary score; zero selects the
	// default tuning.
	Threshold float64
	// Force replaces an existing analyzed entry instead of refusing.
	Force bool
	// DryRun segments the stream without any catalog writes.
	DryRun bool
}

// Result summarizes a completed run.
type Result struct {
	FileID int64
	Frames int
	Scenes int
	DryRun bool
}

// Analyzer binds a catalog store and a logger.
type Analyzer struct {
	store  Store
	logger *slog.Logger
}

// New returns an Analyzer. A nil logger disables diagnostics.
func New(store Store, logger *slog.Logger) *Analyzer {
	return &Analyzer{store: store, logger: logging.WithComponent(logger, "analysis")}
}

// Analyze registers name and persists the scene sequence of the frame stream
// src. The entry's status flips to analyzed only after every scene append
// succeeded; any failure partway leaves the entry not-analyzed so listings
// never present an incomplete scene set as complete. An aborted process has
// the same effect, with no cleanup pass assumed.
func (a *Analyzer) Analyze(ctx context.Context, name string, src io.Reader, opts Options) (*Result, error) {
	if opts.FrameRate <= 0 {
		return nil, fmt.Errorf("frame rate must be positive, got %d", opts.FrameRate)
	}

	log := a.logger.With(slog.String("run_id", uuid.NewString()), slog.String("file", name))

	entry, err := a.store.FileByName(ctx, name)
	if err != nil && !errors.Is(err, catalog.ErrNotFound) {
		return nil, err
	}

	if entry != nil {
		if entry.Status == catalog.StatusAnalyzed && !opts.Force {
			return nil, fmt.Errorf("%q: %w", name, ErrAlreadyAnalyzed)
		}
		// A stale or half-analyzed entry is replaced wholesale; there is no
		// incremental update path.
		if !opts.DryRun {
			if err := a.store.DeleteFile(ctx, entry.ID); err != nil {
				return nil, err
			}
		}
	}

	if !opts.DryRun {
		entry, err = a.store.RegisterFile(ctx, name)
		if err != nil {
			return nil, err
		}
	}

	result := &Result{DryRun: opts.DryRun}
	if entry != nil {
		result.FileID = entry.ID
	}

	log.Info("analyzing", slog.Int("frame_rate", opts.FrameRate), slog.Bool("dry_run", opts.DryRun))

	emit := func(id scene.ID) error {
		result.Scenes++
		log.Debug("scene",
			slog.String("hash", fmt.Sprintf("%08X", id.Hash)),
			slog.Uint64("duration_ms", uint64(id.DurationMs)))
		if opts.DryRun {
			return nil
		}
		return a.store.AppendScene(ctx, scene.Scene{ID: id, FileID: result.FileID})
	}

	reader := frame.NewReader(src)
	seg := segment.New(opts.FrameRate, opts.Threshold)
	var f frame.Frame
	for reader.Next(&f) {
		if id, ok := seg.Feed(&f); ok {
			if err := emit(id); err != nil {
				return nil, err
			}
		}
	}
	if err := emit(seg.Flush()); err != nil {
		return nil, err
	}
	result.Frames = seg.Frames()

	if !opts.DryRun {
		if err := a.store.MarkAnalyzed(ctx, result.FileID); err != nil {
			return nil, err
		}
	}

	log.Info("analysis complete",
		slog.Int("frames", result.Frames),
		slog.Int("scenes", result.Scenes))
	return result, nil
}
