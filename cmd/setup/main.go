// Command setup provisions the data files the evaluator loads at startup:
// a starter dictionary wordlist and a breach blacklist. Existing files are
// left untouched.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/passguard/passguard/pkg/logger"
)

var commonWords = []string{
	"password", "admin", "test", "user", "login", "welcome", "qwerty",
	"letmein", "master", "hello", "love", "money", "secret", "access",
	"computer", "internet", "system", "service", "account", "email",
	"website", "online", "network", "security", "information", "data",
	"database", "server", "application", "software", "hardware",
	"username", "administrator", "root", "guest", "public", "private",
	"default", "change", "temp", "temporary", "backup", "restore",
	"update", "install", "config", "configuration", "settings", "options",
	"help", "support", "contact", "about", "version", "license",
	"privacy", "policy", "legal", "notice", "warning", "error",
	"success", "failed", "invalid", "valid", "required", "optional",
	"submit", "cancel", "reset", "clear", "save", "delete", "remove",
	"create", "open", "close", "exit", "quit", "start", "stop",
	"pause", "resume", "continue", "next", "previous", "first", "last",
	"home", "page", "good", "nice", "great", "excellent", "perfect",
	"wonderful", "fantastic", "amazing", "awesome", "terrible",
	"common", "unique", "special", "standard", "custom", "original",
	"modern", "current", "recent", "latest", "today", "tomorrow",
	"yesterday", "always", "never", "sometimes", "often", "usually",
	"normally", "typically", "generally", "commonly", "frequently",
	"people", "year", "time", "work", "world", "life", "right",
	"thing", "think", "know", "take", "make", "look", "want", "give",
}

var topPasswords = []string{
	"123456", "password", "123456789", "12345678", "12345", "1234567",
	"1234567890", "qwerty", "abc123", "111111", "123123", "admin",
	"letmein", "welcome", "monkey", "qwerty123", "password1",
	"sunshine", "princess", "dragon", "passw0rd", "master", "hello",
	"freedom", "whatever", "qazwsx", "trustno1", "654321", "jordan23",
	"harley", "password123", "hunter", "buster", "thomas", "tigger",
	"robert", "soccer", "batman", "test", "killer", "hockey", "george",
	"charlie", "andrew", "michelle", "love", "jessica", "pepper",
	"1234", "zxcvbnm", "shadow", "michael", "jennifer", "football",
	"baseball", "qwertyuiop", "superman", "asdfghjkl", "computer",
	"corvette", "jordan", "taylor", "yellow", "daniel", "lauren",
	"mickey", "mustang", "liverpool", "joshua", "london", "dallas",
	"austin", "james", "nicole", "courtney", "melissa", "heather",
	"katherine", "stephanie", "rachel", "christina", "kimberly",
	"amanda", "samantha", "danielle", "brittany", "madison", "alexis",
}

func main() {
	wordlist := flag.String("wordlist", "data/common_words.txt", "path to write the dictionary wordlist")
	blacklist := flag.String("blacklist", "data/top_10k_passwords.txt", "path to write the breach blacklist")
	flag.Parse()

	appLogger := logger.New(logger.Config{Level: "info", Console: true})

	if err := writeWordlist(*wordlist, appLogger); err != nil {
		appLogger.Fatal().Err(err).Msg("failed to write wordlist")
	}
	if err := writeBlacklist(*blacklist, appLogger); err != nil {
		appLogger.Fatal().Err(err).Msg("failed to write blacklist")
	}
	appLogger.Info().Msg("setup complete")
}

func writeWordlist(path string, appLogger zerolog.Logger) error {
	if exists(path) {
		appLogger.Info().Str("path", path).Msg("wordlist already exists")
		return nil
	}

	seen := make(map[string]struct{})
	words := make([]string, 0, len(commonWords))
	for _, w := range commonWords {
		w = strings.ToLower(w)
		if len(w) < 4 {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}
	sort.Strings(words)

	if err := writeLines(path, words); err != nil {
		return err
	}
	appLogger.Info().Str("path", path).Int("words", len(words)).Msg("created wordlist")
	return nil
}

func writeBlacklist(path string, appLogger zerolog.Logger) error {
	if exists(path) {
		appLogger.Info().Str("path", path).Msg("blacklist already exists")
		return nil
	}

	seen := make(map[string]struct{})
	var entries []string
	add := func(pw string) {
		pw = strings.ToLower(pw)
		if _, dup := seen[pw]; dup {
			return
		}
		seen[pw] = struct{}{}
		entries = append(entries, pw)
	}

	for _, pw := range topPasswords {
		add(pw)
	}
	// Common numeric-suffix variants of the worst offenders.
	for n := 0; n < 100; n++ {
		add(fmt.Sprintf("password%d", n))
		add(fmt.Sprintf("pass%d", n))
		add(fmt.Sprintf("admin%d", n))
		add(fmt.Sprintf("user%d", n))
		add(fmt.Sprintf("test%d", n))
	}

	if err := writeLines(path, entries); err != nil {
		return err
	}
	appLogger.Info().Str("path", path).Int("entries", len(entries)).Msg("created blacklist")
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func writeLines(path string, lines []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644)
}
