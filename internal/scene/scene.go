// Package scene defines the identifiers shared between the segmenter, the
// catalog store, and the similarity queries.
package scene

// ID identifies a scene by its content hash and temporal extent. Two scenes
// are the same identity only when both hash and duration match; an equal hash
// with a different duration is treated as a distinct scene so that a short
// glimpse never collapses into a long static shot that happens to hash equal.
type ID struct {
	Hash       uint32
	DurationMs uint32
}

// Less orders identities by hash, then by duration.
func (id ID) Less(other ID) bool {
	if id.Hash != other.Hash {
		return id.Hash < other.Hash
	}
	return id.DurationMs < other.DurationMs
}

// Scene records that a file contains a scene identity.
type Scene struct {
	ID     ID
	FileID int64
}

// HashCount reports how many scene rows share one identity. It seeds the
// relation aggregation and is never persisted.
type HashCount struct {
	ID    ID
	Count int
}
