// Package storage persists pipeline artifacts as JSON files: the final
// registry output and the resume checkpoint for interrupted batch runs.
package storage
