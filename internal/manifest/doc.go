// Package manifest walks an audio tree, joins each file against the split
// lookup, and streams one JSONL record per matched file.
package manifest
