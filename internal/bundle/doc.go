// Package bundle exports evidence packages as ZIP archives.
//
// An export resolves a manifest of literal paths and glob patterns against
// the project root, computes a SHA-256 hash for every file at export time,
// and writes the files plus a manifest.json (path, hash, size, timestamp)
// into a single archive. A literal path that does not exist aborts the
// export naming the missing file, and a failed export never leaves a
// partial archive on disk.
package bundle
