// Package breach tests passwords against known-compromised credentials: a
// local blacklist loaded once at startup, and optionally the remote
// pwned-passwords database via a k-anonymity range query.
package breach

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/passguard/passguard/internal/model"
)

const blacklistReason = "Password found in common breach database (top 10k)"

// Checker answers breach lookups. The blacklist is read-only on the
// evaluation path; AddToBlacklist is an administrative operation and is not
// safe to call concurrently with evaluations.
type Checker struct {
	blacklist map[string]struct{}
	remote    *HIBPClient
	logger    zerolog.Logger
}

// NewChecker wraps a lowercased blacklist set and an optional remote
// client. A nil remote disables the network check entirely.
func NewChecker(blacklist map[string]struct{}, remote *HIBPClient, logger zerolog.Logger) *Checker {
	if blacklist == nil {
		blacklist = make(map[string]struct{})
	}
	return &Checker{
		blacklist: blacklist,
		remote:    remote,
		logger:    logger.With().Str("component", "breach").Logger(),
	}
}

// Check looks the password up in the local blacklist first, then in the
// remote database when enabled. Remote failures degrade fail-open: the
// result is not-breached, with a diagnostic reason that is distinguishable
// from both a breach reason and a clean result.
func (c *Checker) Check(ctx context.Context, password string) model.BreachResult {
	lower := strings.ToLower(password)
	if _, ok := c.blacklist[lower]; ok {
		return model.BreachResult{IsBreached: true, Reason: blacklistReason}
	}

	if c.remote != nil {
		found, count, err := c.remote.CheckPassword(ctx, password)
		if err != nil {
			c.logger.Warn().Err(err).Msg("remote breach check failed, treating as not breached")
			return model.BreachResult{
				IsBreached: false,
				Reason:     fmt.Sprintf("Breach check inconclusive: %v", err),
			}
		}
		if found {
			return model.BreachResult{
				IsBreached: true,
				Reason:     fmt.Sprintf("Password found in HIBP database (%s breaches)", count),
			}
		}
	}

	return model.BreachResult{}
}

// AddToBlacklist inserts a password (lowercased) into the in-memory
// blacklist. Intended for tests and custom deny-lists; it does not persist
// to the backing store.
func (c *Checker) AddToBlacklist(password string) {
	c.blacklist[strings.ToLower(password)] = struct{}{}
}
