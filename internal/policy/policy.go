// Package policy centralizes the thresholds, penalty weights and pool sizes
// that drive pattern detection, entropy estimation and scoring. Components
// receive a Policy at construction and treat it as read-only, so scoring
// rules can be adjusted in tests without process-wide side effects.
package policy

import "github.com/passguard/passguard/internal/model"

// Policy holds every tunable the evaluation pipeline consumes.
type Policy struct {
	// Score boundaries: score < Weak => Weak, < Medium => Medium,
	// < Strong => Strong, otherwise Very Strong.
	WeakBelow   int
	MediumBelow int
	StrongBelow int

	// MinEntropyBits is the floor below which a recommendation to
	// increase complexity is emitted.
	MinEntropyBits float64

	// EntropyPenalty is the fraction of entropy discarded when any
	// pattern is present.
	EntropyPenalty float64

	// Character pool sizes per class.
	PoolLower   int
	PoolUpper   int
	PoolDigit   int
	PoolSpecial int

	// Pattern detection thresholds.
	MinRepeatRun       int
	MinSequenceLen     int
	KeyboardPatternLen int
	YearMin            int
	YearMax            int
	MinDictionaryWord  int

	// SimilarityThreshold is the Ratcliff/Obershelp ratio at or above
	// which a password is considered too similar to an identity string.
	SimilarityThreshold float64

	// MinVarietyRatio is the unique-chars/length ratio below which the
	// low-variety issue fires.
	MinVarietyRatio float64

	// Penalties subtracted from the base score, once per category present.
	Penalties map[model.PatternCategory]int
}

// Default returns the production policy.
func Default() *Policy {
	return &Policy{
		WeakBelow:   40,
		MediumBelow: 60,
		StrongBelow: 80,

		MinEntropyBits: 20,
		EntropyPenalty: 0.3,

		PoolLower:   26,
		PoolUpper:   26,
		PoolDigit:   10,
		PoolSpecial: 33,

		MinRepeatRun:       3,
		MinSequenceLen:     4,
		KeyboardPatternLen: 4,
		YearMin:            1900,
		YearMax:            2099,
		MinDictionaryWord:  4,

		SimilarityThreshold: 0.5,
		MinVarietyRatio:     0.3,

		Penalties: map[model.PatternCategory]int{
			model.CategoryRepeatedChars:      15,
			model.CategorySequentialChars:    20,
			model.CategoryKeyboardPattern:    25,
			model.CategoryLeetspeak:          10,
			model.CategoryDictionaryWord:     30,
			model.CategoryYearPattern:        15,
			model.CategoryUsernameSimilarity: 25,
			model.CategoryLowVariety:         20,
		},
	}
}

// Penalty returns the score penalty for a category, zero when unknown.
func (p *Policy) Penalty(cat model.PatternCategory) int {
	return p.Penalties[cat]
}

// PoolSize sums the pool sizes of the present character classes, floored at
// one so the entropy logarithm never sees a degenerate input.
func (p *Policy) PoolSize(hasLower, hasUpper, hasDigit, hasSpecial bool) int {
	size := 0
	if hasLower {
		size += p.PoolLower
	}
	if hasUpper {
		size += p.PoolUpper
	}
	if hasDigit {
		size += p.PoolDigit
	}
	if hasSpecial {
		size += p.PoolSpecial
	}
	if size < 1 {
		return 1
	}
	return size
}
