package model

// Strength is the four-tier classification derived from the score.
type Strength string

const (
	StrengthWeak       Strength = "Weak"
	StrengthMedium     Strength = "Medium"
	StrengthStrong     Strength = "Strong"
	StrengthVeryStrong Strength = "Very Strong"
)

func (s Strength) String() string {
	return string(s)
}

// PatternCategory identifies one of the fixed weakness classes reported by
// the pattern detector and penalized by the scorer.
type PatternCategory string

const (
	CategoryRepeatedChars      PatternCategory = "repeated_chars"
	CategorySequentialChars    PatternCategory = "sequential_chars"
	CategoryKeyboardPattern    PatternCategory = "keyboard_pattern"
	CategoryLeetspeak          PatternCategory = "leetspeak"
	CategoryDictionaryWord     PatternCategory = "dictionary_word"
	CategoryYearPattern        PatternCategory = "year_pattern"
	CategoryUsernameSimilarity PatternCategory = "username_similarity"
	CategoryLowVariety         PatternCategory = "low_variety"
)

// CategoryOrder is the canonical ordering used when flattening per-category
// issues into a single list and when emitting per-category recommendations.
var CategoryOrder = []PatternCategory{
	CategoryRepeatedChars,
	CategorySequentialChars,
	CategoryKeyboardPattern,
	CategoryLeetspeak,
	CategoryDictionaryWord,
	CategoryYearPattern,
	CategoryUsernameSimilarity,
	CategoryLowVariety,
}

// PatternIssues maps a pattern category to the human-readable issues found
// for it. A category is present only when at least one issue was detected.
type PatternIssues map[PatternCategory][]string

// CharacterClassFlags records which character classes a password contains
// and the resulting pool size used for the entropy estimate.
type CharacterClassFlags struct {
	HasLower   bool `json:"has_lower"`
	HasUpper   bool `json:"has_upper"`
	HasDigit   bool `json:"has_digit"`
	HasSpecial bool `json:"has_special"`
	PoolSize   int  `json:"pool_size"`
}

// BreachResult is the outcome of a breach database lookup. Reason is set
// when the password is breached, and also carries a diagnostic message when
// a remote check could not be completed (IsBreached stays false in that
// case, so callers can tell "confirmed clean" from "could not confirm").
type BreachResult struct {
	IsBreached bool   `json:"is_breached"`
	Reason     string `json:"reason,omitempty"`
}

// EvaluationResult is the transient response value produced by a single
// evaluation. It is never persisted.
type EvaluationResult struct {
	Score           int      `json:"score"`
	Strength        Strength `json:"strength"`
	EntropyBits     float64  `json:"entropy_bits"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
	IsBreached      bool     `json:"is_breached"`
	BreachReason    string   `json:"breach_reason,omitempty"`
}

// EvaluateRequest is the payload accepted by the evaluation endpoint.
// Username and email are optional identity hints for similarity checks.
type EvaluateRequest struct {
	Password string `json:"password" binding:"required"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
