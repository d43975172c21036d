// Package evaluator orchestrates the evaluation pipeline and is the only
// surface the HTTP and CLI adapters call. The stage order is a hard
// dependency: entropy consumes the pattern presence flag, and scoring
// consumes entropy, patterns and breach status.
package evaluator

import (
	"context"
	"math"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/passguard/passguard/internal/breach"
	"github.com/passguard/passguard/internal/entropy"
	"github.com/passguard/passguard/internal/model"
	"github.com/passguard/passguard/internal/pattern"
	"github.com/passguard/passguard/internal/policy"
	"github.com/passguard/passguard/internal/scorer"
)

// Service is safe for concurrent use: all state loaded at construction is
// read-only on the evaluation path.
type Service struct {
	detector  *pattern.Detector
	estimator *entropy.Estimator
	checker   *breach.Checker
	scorer    *scorer.Scorer
	logger    zerolog.Logger
}

// NewService wires the pipeline. The dictionary may be nil or empty, which
// disables dictionary-word detection.
func NewService(pol *policy.Policy, dictionary map[string]struct{}, checker *breach.Checker, logger zerolog.Logger) *Service {
	return &Service{
		detector:  pattern.NewDetector(pol, dictionary),
		estimator: entropy.NewEstimator(pol),
		checker:   checker,
		scorer:    scorer.NewScorer(pol),
		logger:    logger.With().Str("component", "evaluator").Logger(),
	}
}

// Evaluate runs the full pipeline for one password. Username and email are
// optional identity hints; empty strings skip the similarity detector. The
// password itself is never logged. Every input, including the empty string,
// yields a well-formed result.
func (s *Service) Evaluate(ctx context.Context, password, username, email string) *model.EvaluationResult {
	if password == "" {
		return &model.EvaluationResult{
			Score:           0,
			Strength:        model.StrengthWeak,
			EntropyBits:     0,
			Issues:          []string{"Password is empty"},
			Recommendations: []string{"Password cannot be empty"},
		}
	}

	length := utf8.RuneCountInString(password)

	issues := s.detector.DetectAll(password, username, email)
	hasPatterns := len(issues) > 0

	entropyBits, flags := s.estimator.Estimate(password, hasPatterns)

	breachResult := s.checker.Check(ctx, password)

	score := s.scorer.Score(entropyBits, issues, breachResult.IsBreached, length)
	strength := s.scorer.Classify(score)
	recs := s.scorer.Recommendations(strength, entropyBits, issues, breachResult.IsBreached, flags, length)

	flat := make([]string, 0, 4)
	if breachResult.IsBreached && breachResult.Reason != "" {
		flat = append(flat, breachResult.Reason)
	}
	for _, cat := range model.CategoryOrder {
		flat = append(flat, issues[cat]...)
	}
	if len(flat) == 0 {
		flat = append(flat, "No major issues detected")
	}

	s.logger.Debug().
		Int("score", score).
		Str("strength", strength.String()).
		Int("length", length).
		Int("pattern_categories", len(issues)).
		Bool("is_breached", breachResult.IsBreached).
		Msg("evaluation complete")

	return &model.EvaluationResult{
		Score:           score,
		Strength:        strength,
		EntropyBits:     math.Round(entropyBits*100) / 100,
		Issues:          flat,
		Recommendations: recs,
		IsBreached:      breachResult.IsBreached,
		BreachReason:    breachResult.Reason,
	}
}

// AddToBlacklist exposes the checker's administrative mutation for tests
// and custom deny-lists. Not safe concurrently with Evaluate.
func (s *Service) AddToBlacklist(password string) {
	s.checker.AddToBlacklist(password)
}
