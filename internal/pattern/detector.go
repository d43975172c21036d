// Package pattern scans passwords for the fixed set of weakness categories:
// repeated runs, sequences, keyboard walks, leetspeak, dictionary words,
// years, identity similarity and low character variety. Detection is a pure
// function of the password, the optional identity hints and the immutable
// configuration captured at construction.
package pattern

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/passguard/passguard/internal/model"
	"github.com/passguard/passguard/internal/policy"
)

// keyboardRows are the layout rows used to derive keyboard-walk patterns.
var keyboardRows = []string{
	"qwertyuiop",
	"asdfghjkl",
	"zxcvbnm",
	"1234567890",
}

// leetAlphabet is the set of substitution characters counted by the
// leetspeak ratio test.
const leetAlphabet = "4@31!05$72"

// leetWords are substitution spellings of common words, each tested
// independently against the lowercased password.
var leetWords = []struct {
	re   *regexp.Regexp
	word string
}{
	{regexp.MustCompile(`[a@]dm[i1]n`), "admin"},
	{regexp.MustCompile(`p[@a]ssw[o0]rd`), "password"},
	{regexp.MustCompile(`[l1]0v3`), "love"},
	{regexp.MustCompile(`[h4]ack`), "hack"},
	{regexp.MustCompile(`[t7]est`), "test"},
}

// yearRe scans left to right without re-examining overlapping windows.
var yearRe = regexp.MustCompile(`\d{4}`)

// Detector holds the immutable configuration for a round of detection.
type Detector struct {
	pol      *policy.Policy
	dict     map[string]struct{}
	dictScan []string
	keyboard map[string]struct{}
}

// NewDetector builds a detector. A nil or empty dictionary disables the
// dictionary-word check entirely; an empty-but-present set would behave the
// same way since there is nothing to match.
func NewDetector(pol *policy.Policy, dictionary map[string]struct{}) *Detector {
	d := &Detector{
		pol:      pol,
		dict:     dictionary,
		keyboard: make(map[string]struct{}),
	}

	// Sorted scan order keeps substring reporting deterministic between
	// calls, which the evaluator's idempotence contract depends on.
	d.dictScan = make([]string, 0, len(dictionary))
	for w := range dictionary {
		d.dictScan = append(d.dictScan, w)
	}
	sort.Strings(d.dictScan)

	d.buildKeyboardPatterns()
	return d
}

// buildKeyboardPatterns precomputes every contiguous window of each keyboard
// row, its reverse, and the column-wise reads of the letter rows, in both
// cases.
func (d *Detector) buildKeyboardPatterns() {
	n := d.pol.KeyboardPatternLen

	add := func(s string) {
		d.keyboard[s] = struct{}{}
		d.keyboard[strings.ToUpper(s)] = struct{}{}
	}

	for _, row := range keyboardRows {
		for i := 0; i+n <= len(row); i++ {
			add(row[i : i+n])
		}
		rev := reverse(row)
		for i := 0; i+n <= len(rev); i++ {
			add(rev[i : i+n])
		}
	}

	// Column walks only span the three letter rows.
	for col := 0; col < 10; col++ {
		var sb strings.Builder
		for _, row := range keyboardRows[:3] {
			if col < len(row) {
				sb.WriteByte(row[col])
			}
		}
		if sb.Len() >= n {
			add(sb.String())
		}
	}
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

// DetectAll runs every detector and returns the issues found, keyed by
// category. Categories with no findings are omitted. Empty username/email
// mean the similarity detector is skipped for that identity.
func (d *Detector) DetectAll(password, username, email string) model.PatternIssues {
	lower := strings.ToLower(password)

	issues := model.PatternIssues{}
	put := func(cat model.PatternCategory, found []string) {
		if len(found) > 0 {
			issues[cat] = found
		}
	}

	put(model.CategoryRepeatedChars, d.detectRepeated(password))
	put(model.CategorySequentialChars, d.detectSequential(password))
	put(model.CategoryKeyboardPattern, d.detectKeyboard(lower))
	put(model.CategoryLeetspeak, d.detectLeetspeak(lower))
	put(model.CategoryDictionaryWord, d.detectDictionaryWords(lower))
	put(model.CategoryYearPattern, d.detectYears(password))
	put(model.CategoryUsernameSimilarity, d.detectIdentitySimilarity(lower, username, email))
	put(model.CategoryLowVariety, d.detectLowVariety(password))

	return issues
}

// detectRepeated reports each run of identical consecutive characters at or
// above the configured length, once per run.
func (d *Detector) detectRepeated(password string) []string {
	var found []string
	runes := []rune(password)

	i := 0
	for i < len(runes) {
		j := i + 1
		for j < len(runes) && runes[j] == runes[i] {
			j++
		}
		if run := j - i; run >= d.pol.MinRepeatRun {
			found = append(found, fmt.Sprintf("Repeated character '%c' %d times", runes[i], run))
		}
		i = j
	}
	return found
}

// detectSequential slides a fixed-size window over the password and tests
// the four sequence predicates. The first predicate that matches wins for a
// given window.
func (d *Detector) detectSequential(password string) []string {
	var found []string
	runes := []rune(password)
	n := d.pol.MinSequenceLen

	for i := 0; i+n <= len(runes); i++ {
		window := runes[i : i+n]
		switch {
		case isAscendingAlpha(window):
			found = append(found, fmt.Sprintf("Sequential pattern: '%s' (ascending)", string(window)))
		case isDescendingAlpha(window):
			found = append(found, fmt.Sprintf("Sequential pattern: '%s' (descending)", string(window)))
		case isAscendingNumeric(window):
			found = append(found, fmt.Sprintf("Sequential pattern: '%s' (numerical)", string(window)))
		case isDescendingNumeric(window):
			found = append(found, fmt.Sprintf("Sequential pattern: '%s' (numerical descending)", string(window)))
		}
	}
	return found
}

func isAscendingAlpha(s []rune) bool {
	if !allLetters(s) {
		return false
	}
	for i := 0; i < len(s)-1; i++ {
		if unicode.ToLower(s[i+1]) != unicode.ToLower(s[i])+1 {
			return false
		}
	}
	return true
}

func isDescendingAlpha(s []rune) bool {
	if !allLetters(s) {
		return false
	}
	for i := 0; i < len(s)-1; i++ {
		if unicode.ToLower(s[i+1]) != unicode.ToLower(s[i])-1 {
			return false
		}
	}
	return true
}

// isAscendingNumeric uses modulo-10 steps, so the 9->0 wrap counts as
// sequential ("7890" matches). Intentional: wrapped digit runs are exactly
// as guessable as straight ones.
func isAscendingNumeric(s []rune) bool {
	if !allDigits(s) {
		return false
	}
	for i := 0; i < len(s)-1; i++ {
		if int(s[i+1]-'0') != (int(s[i]-'0')+1)%10 {
			return false
		}
	}
	return true
}

// isDescendingNumeric mirrors the ascending check, admitting the 0->9 wrap.
func isDescendingNumeric(s []rune) bool {
	if !allDigits(s) {
		return false
	}
	for i := 0; i < len(s)-1; i++ {
		if int(s[i+1]-'0') != ((int(s[i]-'0')-1)+10)%10 {
			return false
		}
	}
	return true
}

func allLetters(s []rune) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return len(s) > 0
}

func allDigits(s []rune) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func (d *Detector) detectKeyboard(lower string) []string {
	var found []string
	n := d.pol.KeyboardPatternLen

	runes := []rune(lower)
	for i := 0; i+n <= len(runes); i++ {
		window := string(runes[i : i+n])
		if _, ok := d.keyboard[window]; ok {
			found = append(found, fmt.Sprintf("Keyboard pattern detected: '%s'", window))
		}
	}
	return found
}

func (d *Detector) detectLeetspeak(lower string) []string {
	var found []string

	for _, lw := range leetWords {
		if lw.re.MatchString(lower) {
			found = append(found, fmt.Sprintf("Leetspeak substitution detected (resembles '%s')", lw.word))
		}
	}

	runes := []rune(lower)
	if len(runes) > 0 {
		count := 0
		for _, r := range runes {
			if strings.ContainsRune(leetAlphabet, r) {
				count++
			}
		}
		if float64(count)/float64(len(runes)) > 0.3 {
			found = append(found, "High leetspeak substitution ratio detected")
		}
	}
	return found
}

// detectDictionaryWords reports an exact whole-password match separately
// from substring hits, with each offending word reported at most once.
func (d *Detector) detectDictionaryWords(lower string) []string {
	if len(d.dict) == 0 {
		return nil
	}

	var found []string
	reported := make(map[string]struct{})
	minLen := d.pol.MinDictionaryWord

	if len([]rune(lower)) >= minLen {
		if _, ok := d.dict[lower]; ok {
			found = append(found, fmt.Sprintf("Password is a common dictionary word: '%s'", lower))
			reported[lower] = struct{}{}
		}
	}

	for _, word := range d.dictScan {
		if len(word) < minLen {
			continue
		}
		if _, done := reported[word]; done {
			continue
		}
		if strings.Contains(lower, word) {
			found = append(found, fmt.Sprintf("Contains dictionary word: '%s'", word))
			reported[word] = struct{}{}
		}
	}
	return found
}

func (d *Detector) detectYears(password string) []string {
	var found []string
	for _, m := range yearRe.FindAllString(password, -1) {
		year := 0
		for _, c := range m {
			year = year*10 + int(c-'0')
		}
		if year >= d.pol.YearMin && year <= d.pol.YearMax {
			found = append(found, fmt.Sprintf("Year pattern detected: '%s'", m))
		}
	}
	return found
}

// detectIdentitySimilarity checks containment of the username and the email
// local part inside the password, plus a normalized similarity ratio
// against each.
func (d *Detector) detectIdentitySimilarity(passwordLower, username, email string) []string {
	if username == "" && email == "" {
		return nil
	}

	var found []string

	if username != "" {
		usernameLower := strings.ToLower(username)
		if strings.Contains(passwordLower, usernameLower) {
			found = append(found, fmt.Sprintf("Password contains username: '%s'", username))
		}
		if sim := Similarity(passwordLower, usernameLower); sim >= d.pol.SimilarityThreshold {
			found = append(found, fmt.Sprintf("Password too similar to username (similarity: %.2f)", sim))
		}
	}

	if email != "" {
		local := strings.ToLower(email)
		if at := strings.Index(local, "@"); at >= 0 {
			local = local[:at]
		}
		if strings.Contains(passwordLower, local) {
			found = append(found, fmt.Sprintf("Password contains email username: '%s'", local))
		}
		if sim := Similarity(passwordLower, local); sim >= d.pol.SimilarityThreshold {
			found = append(found, fmt.Sprintf("Password too similar to email (similarity: %.2f)", sim))
		}
	}
	return found
}

func (d *Detector) detectLowVariety(password string) []string {
	runes := []rune(password)
	if len(runes) == 0 {
		return nil
	}

	unique := make(map[rune]struct{}, len(runes))
	for _, r := range runes {
		unique[r] = struct{}{}
	}

	ratio := float64(len(unique)) / float64(len(runes))
	if ratio < d.pol.MinVarietyRatio {
		return []string{fmt.Sprintf(
			"Low character variety: %d unique characters out of %d (ratio: %.2f)",
			len(unique), len(runes), ratio,
		)}
	}
	return nil
}
