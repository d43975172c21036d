// Command cli evaluates a password from the command line. The password can
// be passed as the positional argument or entered at a no-echo prompt.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/passguard/passguard/internal/breach"
	"github.com/passguard/passguard/internal/model"
	"github.com/passguard/passguard/internal/policy"
	"github.com/passguard/passguard/internal/repository/textfile"
	"github.com/passguard/passguard/internal/service/evaluator"
	"github.com/passguard/passguard/pkg/logger"
)

func main() {
	username := flag.String("username", "", "username for similarity checking")
	email := flag.String("email", "", "email for similarity checking")
	wordlist := flag.String("wordlist", "data/common_words.txt", "path to dictionary wordlist file")
	blacklist := flag.String("blacklist", "data/top_10k_passwords.txt", "path to breach blacklist file")
	asJSON := flag.Bool("json", false, "output results as JSON")
	flag.Parse()

	appLogger := logger.New(logger.Config{Level: "warn", Output: os.Stderr, Console: true})

	password := flag.Arg(0)
	if password == "" {
		password = promptPassword(appLogger)
	}
	if password == "" {
		fmt.Fprintln(os.Stderr, "Error: Password cannot be empty")
		os.Exit(1)
	}

	ctx := context.Background()
	dictionary := loadSet(ctx, appLogger, *wordlist)
	blacklistSet := loadSet(ctx, appLogger, *blacklist)

	checker := breach.NewChecker(blacklistSet, nil, appLogger)
	svc := evaluator.NewService(policy.Default(), dictionary, checker, appLogger)

	result := svc.Evaluate(ctx, password, *username, *email)

	if *asJSON {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
		return
	}
	printReport(result)
}

func promptPassword(appLogger zerolog.Logger) string {
	fmt.Fprint(os.Stderr, "Enter password to evaluate: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		appLogger.Error().Err(err).Msg("failed to read password")
		return ""
	}
	return string(raw)
}

func loadSet(ctx context.Context, appLogger zerolog.Logger, path string) map[string]struct{} {
	set, err := textfile.NewWordSetRepository(path).Load(ctx)
	if err != nil {
		appLogger.Warn().Err(err).Str("path", path).Msg("could not load word set")
		return map[string]struct{}{}
	}
	return set
}

func printReport(result *model.EvaluationResult) {
	fmt.Println()
	fmt.Println("Password Strength Evaluation")
	fmt.Println("==================================================")
	fmt.Printf("Score: %d/100\n", result.Score)
	fmt.Printf("Strength: %s\n", result.Strength)
	fmt.Printf("Entropy: %.2f bits\n", result.EntropyBits)
	fmt.Println()
	fmt.Println("Issues Detected:")
	for _, issue := range result.Issues {
		fmt.Printf("  - %s\n", issue)
	}
	fmt.Println()
	fmt.Println("Recommendations:")
	for _, rec := range result.Recommendations {
		fmt.Printf("  - %s\n", rec)
	}
	if result.IsBreached {
		fmt.Println()
		fmt.Println("WARNING: This password has been compromised!")
	}
	fmt.Println()
}
