package catalog

import (
	"context"
	"fmt"

	"scenedup/internal/scene"
)

// AppendScene persists one scene fact. The row is durable when the call
// returns nil; on error nothing is guaranteed and the caller must leave the
// owning file in the not-analyzed state.
func (s *Store) AppendScene(ctx context.Context, sc scene.Scene) error {
	if _, err := s.execWithRetry(
		ctx,
		`INSERT INTO scenes (hash, duration_ms, file_id) VALUES (?, ?, ?)`,
		sc.ID.Hash,
		sc.ID.DurationMs,
		sc.FileID,
	); err != nil {
		return fmt.Errorf("append scene: %w", err)
	}
	return nil
}

// ScenesByFile returns a file's scenes in insertion order, which is the
// temporal order the segmenter emitted them in.
func (s *Store) ScenesByFile(ctx context.Context, fileID int64) ([]scene.Scene, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT hash, duration_ms FROM scenes WHERE file_id = ? ORDER BY rowid`,
		fileID,
	)
	if err != nil {
		return nil, fmt.Errorf("scenes by file: %w", err)
	}
	defer rows.Close()

	var scenes []scene.Scene
	for rows.Next() {
		sc := scene.Scene{FileID: fileID}
		if err := rows.Scan(&sc.ID.Hash, &sc.ID.DurationMs); err != nil {
			return nil, fmt.Errorf("scenes by file: %w", err)
		}
		scenes = append(scenes, sc)
	}
	return scenes, rows.Err()
}

// FilesSharingScene returns the distinct ids of files containing the given
// scene identity, including the file the identity came from.
func (s *Store) FilesSharingScene(ctx context.Context, id scene.ID) ([]int64, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT DISTINCT file_id FROM scenes WHERE hash = ? AND duration_ms = ? ORDER BY file_id`,
		id.Hash,
		id.DurationMs,
	)
	if err != nil {
		return nil, fmt.Errorf("files sharing scene: %w", err)
	}
	defer rows.Close()

	var fileIDs []int64
	for rows.Next() {
		var fileID int64
		if err := rows.Scan(&fileID); err != nil {
			return nil, fmt.Errorf("files sharing scene: %w", err)
		}
		fileIDs = append(fileIDs, fileID)
	}
	return fileIDs, rows.Err()
}

// TopRepeatedScenes returns up to limit scene identities that occur more than
// once, ordered by duration descending. Long shared scenes carry the most
// signal, so duration rather than count drives the ranking.
func (s *Store) TopRepeatedScenes(ctx context.Context, limit int) ([]scene.HashCount, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT hash, duration_ms, COUNT(*)
         FROM scenes
         GROUP BY hash, duration_ms
         HAVING COUNT(*) > 1
         ORDER BY duration_ms DESC
         LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("top repeated scenes: %w", err)
	}
	defer rows.Close()

	var counts []scene.HashCount
	for rows.Next() {
		var hc scene.HashCount
		if err := rows.Scan(&hc.ID.Hash, &hc.ID.DurationMs, &hc.Count); err != nil {
			return nil, fmt.Errorf("top repeated scenes: %w", err)
		}
		counts = append(counts, hc)
	}
	return counts, rows.Err()
}
