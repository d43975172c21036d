package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passguard/passguard/internal/model"
	"github.com/passguard/passguard/internal/policy"
)

func newTestDetector(dict ...string) *Detector {
	set := make(map[string]struct{}, len(dict))
	for _, w := range dict {
		set[w] = struct{}{}
	}
	return NewDetector(policy.Default(), set)
}

func TestDetectAllOmitsEmptyCategories(t *testing.T) {
	d := newTestDetector()
	issues := d.DetectAll("K9#mVzL2@qRwX7tP", "", "")
	assert.Empty(t, issues)

	for cat, list := range issues {
		assert.NotEmpty(t, list, "category %s present with empty list", cat)
	}
}

func TestDetectRepeatedChars(t *testing.T) {
	d := newTestDetector()

	issues := d.DetectAll("aaaa1111", "", "")
	require.Contains(t, issues, model.CategoryRepeatedChars)
	assert.Equal(t, []string{
		"Repeated character 'a' 4 times",
		"Repeated character '1' 4 times",
	}, issues[model.CategoryRepeatedChars])

	// Runs below the threshold are not reported.
	issues = d.DetectAll("aabbcc", "", "")
	assert.NotContains(t, issues, model.CategoryRepeatedChars)
}

func TestDetectLowVariety(t *testing.T) {
	d := newTestDetector()

	issues := d.DetectAll("aaaa1111", "", "")
	require.Contains(t, issues, model.CategoryLowVariety)
	assert.Equal(t,
		[]string{"Low character variety: 2 unique characters out of 8 (ratio: 0.25)"},
		issues[model.CategoryLowVariety])
}

func TestDetectSequentialAlpha(t *testing.T) {
	d := newTestDetector()

	issues := d.DetectAll("xabcdx", "", "")
	require.Contains(t, issues, model.CategorySequentialChars)
	assert.Contains(t, issues[model.CategorySequentialChars], "Sequential pattern: 'abcd' (ascending)")

	issues = d.DetectAll("dcba", "", "")
	require.Contains(t, issues, model.CategorySequentialChars)
	assert.Contains(t, issues[model.CategorySequentialChars], "Sequential pattern: 'dcba' (descending)")

	// Case-insensitive.
	issues = d.DetectAll("AbCd", "", "")
	require.Contains(t, issues, model.CategorySequentialChars)
	assert.Contains(t, issues[model.CategorySequentialChars], "Sequential pattern: 'AbCd' (ascending)")
}

func TestDetectSequentialNumericWrapAround(t *testing.T) {
	d := newTestDetector()

	// The modulo step admits the 9->0 wrap as sequential.
	issues := d.DetectAll("x9012x", "", "")
	require.Contains(t, issues, model.CategorySequentialChars)
	assert.Contains(t, issues[model.CategorySequentialChars], "Sequential pattern: '9012' (numerical)")

	// And the 0->9 wrap on the way down.
	issues = d.DetectAll("x1098x", "", "")
	require.Contains(t, issues, model.CategorySequentialChars)
	assert.Contains(t, issues[model.CategorySequentialChars], "Sequential pattern: '1098' (numerical descending)")

	// Non-sequential digits stay clean.
	issues = d.DetectAll("x1357x", "", "")
	assert.NotContains(t, issues, model.CategorySequentialChars)
}

func TestDetectKeyboardPatterns(t *testing.T) {
	d := newTestDetector()

	issues := d.DetectAll("qwerty", "", "")
	require.Contains(t, issues, model.CategoryKeyboardPattern)
	assert.Contains(t, issues[model.CategoryKeyboardPattern], "Keyboard pattern detected: 'qwer'")
	assert.Contains(t, issues[model.CategoryKeyboardPattern], "Keyboard pattern detected: 'wert'")

	// Reversed rows count too.
	issues = d.DetectAll("poiu", "", "")
	require.Contains(t, issues, model.CategoryKeyboardPattern)
	assert.Contains(t, issues[model.CategoryKeyboardPattern], "Keyboard pattern detected: 'poiu'")

	// Uppercase input is matched through lowercasing.
	issues = d.DetectAll("QWER", "", "")
	require.Contains(t, issues, model.CategoryKeyboardPattern)
}

func TestDetectLeetspeak(t *testing.T) {
	d := newTestDetector()

	issues := d.DetectAll("p@ssw0rdXYZQK", "", "")
	require.Contains(t, issues, model.CategoryLeetspeak)
	assert.Contains(t, issues[model.CategoryLeetspeak], "Leetspeak substitution detected (resembles 'password')")

	// Ratio test: more than 30% substitution characters.
	issues = d.DetectAll("4@31!0", "", "")
	require.Contains(t, issues, model.CategoryLeetspeak)
	assert.Contains(t, issues[model.CategoryLeetspeak], "High leetspeak substitution ratio detected")
}

func TestDetectDictionaryWords(t *testing.T) {
	d := newTestDetector("password", "pass", "word", "hi")

	// Exact whole-password match is reported distinctly, and the word is
	// not re-reported as a substring.
	issues := d.DetectAll("password", "", "")
	require.Contains(t, issues, model.CategoryDictionaryWord)
	assert.Equal(t, []string{
		"Password is a common dictionary word: 'password'",
		"Contains dictionary word: 'pass'",
		"Contains dictionary word: 'word'",
	}, issues[model.CategoryDictionaryWord])

	// Substring containment only; words shorter than the minimum length
	// are ignored ("hi").
	issues = d.DetectAll("mypassword123", "", "")
	require.Contains(t, issues, model.CategoryDictionaryWord)
	assert.Equal(t, []string{
		"Contains dictionary word: 'pass'",
		"Contains dictionary word: 'password'",
		"Contains dictionary word: 'word'",
	}, issues[model.CategoryDictionaryWord])
}

func TestDetectDictionaryDisabledWithoutWords(t *testing.T) {
	d := newTestDetector()
	issues := d.DetectAll("password", "", "")
	assert.NotContains(t, issues, model.CategoryDictionaryWord)
}

func TestDetectYearPatterns(t *testing.T) {
	d := newTestDetector()

	issues := d.DetectAll("born1999", "", "")
	require.Contains(t, issues, model.CategoryYearPattern)
	assert.Equal(t, []string{"Year pattern detected: '1999'"}, issues[model.CategoryYearPattern])

	// Non-overlapping left-to-right scan.
	issues = d.DetectAll("x19992001x", "", "")
	require.Contains(t, issues, model.CategoryYearPattern)
	assert.Equal(t, []string{
		"Year pattern detected: '1999'",
		"Year pattern detected: '2001'",
	}, issues[model.CategoryYearPattern])

	// Out of the 1900-2099 window.
	issues = d.DetectAll("x1776x", "", "")
	assert.NotContains(t, issues, model.CategoryYearPattern)
}

func TestDetectUsernameSimilarity(t *testing.T) {
	d := newTestDetector()

	issues := d.DetectAll("johnsmith123", "johnsmith", "")
	require.Contains(t, issues, model.CategoryUsernameSimilarity)
	assert.Contains(t, issues[model.CategoryUsernameSimilarity], "Password contains username: 'johnsmith'")
	assert.Contains(t, issues[model.CategoryUsernameSimilarity], "Password too similar to username (similarity: 0.86)")
}

func TestDetectEmailSimilarity(t *testing.T) {
	d := newTestDetector()

	issues := d.DetectAll("alice2024x", "", "alice@example.com")
	require.Contains(t, issues, model.CategoryUsernameSimilarity)
	assert.Contains(t, issues[model.CategoryUsernameSimilarity], "Password contains email username: 'alice'")
	assert.Contains(t, issues[model.CategoryUsernameSimilarity], "Password too similar to email (similarity: 0.67)")
}

func TestDetectIdentitySkippedWhenAbsent(t *testing.T) {
	d := newTestDetector()
	issues := d.DetectAll("johnsmith123", "", "")
	assert.NotContains(t, issues, model.CategoryUsernameSimilarity)
}

func TestDetectAllIsDeterministic(t *testing.T) {
	d := newTestDetector("password", "pass", "word", "test", "admin")
	first := d.DetectAll("mypasswordtest2001", "user", "user@example.com")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, d.DetectAll("mypasswordtest2001", "user", "user@example.com"))
	}
}
