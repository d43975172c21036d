// Package repository defines the read-only sources the evaluator's word
// sets are loaded from at startup.
package repository

import "context"

// WordSetRepository loads a set of lowercase strings (dictionary words or
// blacklisted passwords). Implementations recover a missing source as an
// empty set; other failures are returned for the caller to degrade.
type WordSetRepository interface {
	Load(ctx context.Context) (map[string]struct{}, error)
}
