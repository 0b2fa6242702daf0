// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"math"

	"github.com/danielhkuo/livepoll/models"
)

// Result is the derived tally for one poll. It is never stored;
// callers recompute it from the ledger on every read, so it cannot
// drift from the recorded votes.
type Result struct {
	TotalVotes int
	Options    []models.OptionResult
}

// Compute derives per-option counts and percentages for a poll.
//
// options must be in creation order; results preserve that order and
// are never sorted by vote count. counts maps option ID to vote count,
// with unvoted options absent.
//
// Percentages are rounded to the nearest whole number independently
// per option, so they may not sum to exactly 100. When there are no
// votes every percentage is 0 rather than a division by zero.
func Compute(options []models.Option, counts map[string]int) Result {
	total := 0
	for _, opt := range options {
		total += counts[opt.ID]
	}

	results := make([]models.OptionResult, len(options))
	for i, opt := range options {
		count := counts[opt.ID]
		pct := 0
		if total > 0 {
			pct = int(math.Round(float64(count) / float64(total) * 100))
		}
		results[i] = models.OptionResult{
			OptionID:   opt.ID,
			OptionText: opt.Text,
			VoteCount:  count,
			Percentage: pct,
		}
	}

	return Result{
		TotalVotes: total,
		Options:    results,
	}
}
