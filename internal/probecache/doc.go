// Package probecache persists probed audio durations between manifest
// builds so unchanged files are never probed twice.
//
// Entries are keyed by absolute path and validated against the file's size
// and modification time; any change invalidates the entry. The cache is an
// optimization only: every operation degrades to a miss on error.
package probecache
