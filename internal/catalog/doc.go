// Package catalog persists file entries and their scene fingerprints in
// SQLite and answers the grouped lookups the similarity queries depend on.
//
// The Store owns connection setup, schema initialization, and busy retries.
// Scenes reference their owning file with ON DELETE CASCADE, so removing a
// file removes its fingerprint rows in the same statement. A file's status
// flips to analyzed only after every scene of one full pass is durable;
// callers rely on that to never report a half-analyzed file as complete.
package catalog
