package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// RegisterFile inserts a new file entry in the not-analyzed state. Names are
// unique; registering an existing name fails with a constraint error.
func (s *Store) RegisterFile(ctx context.Context, name string) (*FileEntry, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO files (name, status, created_at) VALUES (?, ?, ?)`,
		name,
		StatusNotAnalyzed,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("register file: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return &FileEntry{ID: id, Name: name, Status: StatusNotAnalyzed}, nil
}

// FileByName fetches a file entry by its unique name.
func (s *Store) FileByName(ctx context.Context, name string) (*FileEntry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name, status FROM files WHERE name = ?`, name)
	entry, err := scanFileEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("file %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("file by name: %w", err)
	}
	return entry, nil
}

// FileName resolves a file id to its display name.
func (s *Store) FileName(ctx context.Context, fileID int64) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx, `SELECT name FROM files WHERE id = ?`, fileID).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("file id %d: %w", fileID, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("file name: %w", err)
	}
	return name, nil
}

// ListFiles returns every registered file ordered by name.
func (s *Store) ListFiles(ctx context.Context) ([]FileEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, status FROM files ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	var entries []FileEntry
	for rows.Next() {
		entry, err := scanFileEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("list files: %w", err)
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// MarkAnalyzed flips a file's status once its scene set is fully durable.
func (s *Store) MarkAnalyzed(ctx context.Context, fileID int64) error {
	res, err := s.execWithRetry(ctx, `UPDATE files SET status = ? WHERE id = ?`, StatusAnalyzed, fileID)
	if err != nil {
		return fmt.Errorf("mark analyzed: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("file id %d: %w", fileID, ErrNotFound)
	}
	return nil
}

// DeleteFile removes a file entry; its scenes cascade away with it.
func (s *Store) DeleteFile(ctx context.Context, fileID int64) error {
	res, err := s.execWithRetry(ctx, `DELETE FROM files WHERE id = ?`, fileID)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("file id %d: %w", fileID, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFileEntry(row rowScanner) (*FileEntry, error) {
	var (
		entry  FileEntry
		status string
	)
	if err := row.Scan(&entry.ID, &entry.Name, &status); err != nil {
		return nil, err
	}
	entry.Status = ParseStatus(status)
	return &entry, nil
}
