package catalog

import "strings"

// Status represents a file's analysis lifecycle.
type Status string

const (
	// StatusNotAnalyzed marks a registered file whose scene set is absent or
	// incomplete. Aborted runs leave entries in this state.
	StatusNotAnalyzed Status = "not_analyzed"
	// StatusAnalyzed marks a file whose persisted scenes exactly cover one
	// full pass over its frame stream.
	StatusAnalyzed Status = "analyzed"
)

// ParseStatus normalizes a stored status value.
func ParseStatus(value string) Status {
	switch Status(strings.TrimSpace(strings.ToLower(value))) {
	case StatusAnalyzed:
		return StatusAnalyzed
	default:
		return StatusNotAnalyzed
	}
}

// FileEntry is a registered file.
type FileEntry struct {
	ID     int64
	Name   string
	Status Status
}
