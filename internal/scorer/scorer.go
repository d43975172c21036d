// Package scorer fuses entropy, pattern findings, breach status and length
// into a 0-100 score, the four-tier classification, and an ordered list of
// recommendations.
package scorer

import (
	"fmt"

	"github.com/passguard/passguard/internal/model"
	"github.com/passguard/passguard/internal/policy"
)

// recommendation text per pattern category, emitted in canonical order.
var categoryAdvice = map[model.PatternCategory]string{
	model.CategoryRepeatedChars:      "Avoid repeating the same character multiple times.",
	model.CategorySequentialChars:    "Avoid sequential patterns (abc, 123, etc.).",
	model.CategoryKeyboardPattern:    "Avoid keyboard patterns (qwerty, asdf, etc.).",
	model.CategoryLeetspeak:          "Leetspeak substitutions (p@ssw0rd) are predictable. Use truly random characters.",
	model.CategoryDictionaryWord:     "Avoid common dictionary words. Use random or uncommon words.",
	model.CategoryYearPattern:        "Avoid year patterns. Don't use birth years or common years.",
	model.CategoryUsernameSimilarity: "Don't use your username or email in your password.",
	model.CategoryLowVariety:         "Use a wider variety of characters instead of reusing the same few.",
}

// Scorer applies the weighting model captured in the policy.
type Scorer struct {
	pol *policy.Policy
}

func NewScorer(pol *policy.Policy) *Scorer {
	return &Scorer{pol: pol}
}

// Score computes the final 0-100 score. A breached password scores zero no
// matter what. Otherwise the entropy maps piecewise onto [0,80], each
// pattern category present subtracts its penalty once, and a mutually
// exclusive length bonus is added before clamping.
func (s *Scorer) Score(entropyBits float64, issues model.PatternIssues, isBreached bool, length int) int {
	if isBreached {
		return 0
	}

	score := baseScore(entropyBits)

	for cat, list := range issues {
		if len(list) > 0 {
			score -= s.pol.Penalty(cat)
		}
	}

	switch {
	case length >= 16:
		score += 5
	case length >= 12:
		score += 3
	case length >= 8:
		score += 1
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// baseScore maps entropy onto [0,80] through four linear segments, with the
// contribution beyond 60 bits capped at 10 extra points.
func baseScore(bits float64) int {
	switch {
	case bits <= 0:
		return 0
	case bits < 20:
		return int((bits / 20) * 20)
	case bits < 40:
		return int(20 + ((bits-20)/20)*30)
	case bits < 60:
		return int(50 + ((bits-40)/20)*20)
	default:
		extra := (bits - 60) / 20 * 10
		if extra > 10 {
			extra = 10
		}
		return int(70 + extra)
	}
}

// Classify maps a score to its strength tier. Bands are inclusive-low,
// exclusive-high, except the top band which is closed at 100.
func (s *Scorer) Classify(score int) model.Strength {
	switch {
	case score < s.pol.WeakBelow:
		return model.StrengthWeak
	case score < s.pol.MediumBelow:
		return model.StrengthMedium
	case score < s.pol.StrongBelow:
		return model.StrengthStrong
	default:
		return model.StrengthVeryStrong
	}
}

// Recommendations builds the ordered advice list. A breached password
// short-circuits to a single strongest message. Otherwise advice is
// assembled from the strength tier, the entropy floor, the length tiers,
// each missing character class, and one message per pattern category in
// canonical order. When nothing triggered, a single good-practice message
// is emitted.
func (s *Scorer) Recommendations(
	strength model.Strength,
	entropyBits float64,
	issues model.PatternIssues,
	isBreached bool,
	flags model.CharacterClassFlags,
	length int,
) []string {
	if isBreached {
		return []string{"This password has been compromised in a data breach. Use a completely different password."}
	}

	var recs []string

	if strength == model.StrengthWeak {
		recs = append(recs, "Password is weak. Consider using a longer, more complex password.")
	}

	if entropyBits < s.pol.MinEntropyBits {
		recs = append(recs, fmt.Sprintf("Entropy is low (%.1f bits). Increase password complexity.", entropyBits))
	}

	if length < 8 {
		recs = append(recs, "Password is too short. Use at least 8 characters.")
	} else if length < 12 {
		recs = append(recs, "Consider using a longer password (12+ characters) for better security.")
	}

	if !flags.HasLower {
		recs = append(recs, "Add lowercase letters to increase character variety.")
	}
	if !flags.HasUpper {
		recs = append(recs, "Add uppercase letters to increase character variety.")
	}
	if !flags.HasDigit {
		recs = append(recs, "Add numbers to increase character variety.")
	}
	if !flags.HasSpecial {
		recs = append(recs, "Add special characters to increase character variety.")
	}

	for _, cat := range model.CategoryOrder {
		if _, present := issues[cat]; present {
			recs = append(recs, categoryAdvice[cat])
		}
	}

	if len(recs) == 0 {
		recs = append(recs, "Password meets good security practices. Keep it secure and don't reuse it.")
	}
	return recs
}
