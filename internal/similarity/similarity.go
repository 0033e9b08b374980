// Package similarity turns persisted (file, scene) facts into duplicate-file
// rankings and duration-weighted relation graphs. It reads through a narrow
// interface so the queries stay testable against an in-memory source.
package similarity

import (
	"context"

	"scenedup/internal/scene"
)

// SceneSource is the read side of the catalog the queries depend on.
type SceneSource interface {
	ScenesByFile(ctx context.Context, fileID int64) ([]scene.Scene, error)
	FilesSharingScene(ctx context.Context, id scene.ID) ([]int64, error)
	TopRepeatedScenes(ctx context.Context, limit int) ([]scene.HashCount, error)
	FileName(ctx context.Context, fileID int64) (string, error)
}

// Match is one duplicate candidate for a queried file.
type Match struct {
	FileID       int64
	Name         string
	SharedScenes int
}

// Relation is an undirected duration-weighted edge between two files. Each
// unordered pair appears at most once.
type Relation struct {
	FileA    int64
	FileB    int64
	NameA    string
	NameB    string
	SharedMs uint32
}
