// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tally computes derived vote results for a poll.

Compute is a pure function over the ledger's per-option counts:

	result := tally.Compute(options, counts)

It produces total votes plus per-option count and percentage, with
options in the poll's creation order. Percentages round independently
per option and are deliberately not normalized to sum to 100; consumers
expect simple independent rounding. An empty ledger yields zero
percentages across the board, never NaN.

Tallies are recomputed on every read and never persisted, which keeps
them consistent with the vote ledger by construction.
*/
package tally
