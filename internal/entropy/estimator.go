// Package entropy estimates password entropy from the character-class pool
// size: H = L * log2(N), with a flat penalty applied when patterns were
// detected. This is a search-space proxy, not a per-position measurement;
// PositionalEntropy implements the frequency-based alternative but is not
// used for scoring.
package entropy

import (
	"math"
	"strings"
	"unicode"

	"github.com/passguard/passguard/internal/model"
	"github.com/passguard/passguard/internal/policy"
)

// specialChars is the 33-character symbol set counted as the "special"
// class.
const specialChars = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Estimator computes pool-based entropy under an immutable policy.
type Estimator struct {
	pol *policy.Policy
}

func NewEstimator(pol *policy.Policy) *Estimator {
	return &Estimator{pol: pol}
}

// Estimate returns the effective entropy in bits together with the detected
// character-class flags. An empty password yields zero entropy and all
// flags false. When hasPatterns is set, the base entropy is reduced by the
// policy's penalty fraction; the result is clamped at zero.
func (e *Estimator) Estimate(password string, hasPatterns bool) (float64, model.CharacterClassFlags) {
	if password == "" {
		return 0, model.CharacterClassFlags{}
	}

	flags := model.CharacterClassFlags{}
	length := 0
	for _, r := range password {
		length++
		switch {
		case unicode.IsLower(r):
			flags.HasLower = true
		case unicode.IsUpper(r):
			flags.HasUpper = true
		case r >= '0' && r <= '9':
			flags.HasDigit = true
		case strings.ContainsRune(specialChars, r):
			flags.HasSpecial = true
		}
	}

	flags.PoolSize = e.pol.PoolSize(flags.HasLower, flags.HasUpper, flags.HasDigit, flags.HasSpecial)

	bits := float64(length) * math.Log2(float64(flags.PoolSize))
	if hasPatterns {
		bits *= 1 - e.pol.EntropyPenalty
	}
	if bits < 0 {
		bits = 0
	}
	return bits, flags
}

// PositionalEntropy computes Shannon entropy over the observed character
// frequency distribution, scaled by length. More faithful for skewed
// passwords but not what the scorer consumes.
func (e *Estimator) PositionalEntropy(password string) float64 {
	if password == "" {
		return 0
	}

	counts := make(map[rune]int)
	length := 0
	for _, r := range password {
		counts[r]++
		length++
	}

	bits := 0.0
	for _, c := range counts {
		p := float64(c) / float64(length)
		bits -= p * math.Log2(p)
	}
	return bits * float64(length)
}
