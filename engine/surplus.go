package engine

import (
	"fmt"
	"math/big"

	cmn "github.com/semog/go-common"

	"github.com/semog/rcipe/ballot"
	"github.com/semog/rcipe/candidate"
)

// floorRatToInt returns floor(r) for a non-negative rational.
func floorRatToInt(r *big.Rat) int {
	q := new(big.Int).Quo(r.Num(), r.Denom())
	return int(q.Int64())
}

// redistributeSurplus implements SPEC_FULL.md §4.7: after W wins with
// transfer_count[W] = h at quota, it walks W's supporting groups in
// ascending group index and zeroes floor(residual/S)+1 of each group's
// influence (clamped to what the group has left), with skip interval
// S = (h+surplus-1)/h and an exact-rational residual accumulator in place
// of the original implementation's float32 fairness oracle (per the design
// note in §9/§10). The total zeroed is checked to be at least quota-1; it
// is not capped at quota and can exceed it.
func redistributeSurplus(groups []*ballot.Group, available []candidate.Number, n int, w candidate.Number, h, quota int) error {
	surplus := h - quota
	if surplus <= 0 {
		return nil
	}
	// S := (H + surplus - 1) / H, kept as an exact rational — H and surplus
	// are both O(h), so collapsing this to integer division before dividing
	// residual by it would always round down to 1 and drain every
	// supporting group outright.
	skipInterval := big.NewRat(int64(h+surplus-1), int64(h))
	if skipInterval.Sign() < 1 {
		return fmt.Errorf("%w: non-positive skip interval %s", ErrInvariantViolation, skipInterval.String())
	}

	residual := new(big.Rat)
	zeroedTotal := 0

	for _, g := range groups {
		if g.RemainingInfluence <= 0 {
			continue
		}
		levels := ballot.DecodePreferences(&g.Pattern, n)
		top := ballot.TopTied(levels, available)
		if !containsCandidate(top, w) {
			continue
		}

		contrib := big.NewRat(int64(g.RemainingInfluence), int64(len(top)))
		residual.Add(residual, contrib)

		quotient := new(big.Rat).Quo(residual, skipInterval)
		zeroOut := floorRatToInt(quotient) + 1
		zeroOut = cmn.Mini(zeroOut, g.RemainingInfluence)
		if zeroOut < 0 {
			zeroOut = 0
		}

		g.RemainingInfluence -= zeroOut
		zeroedTotal += zeroOut
		residual.Sub(residual, new(big.Rat).SetInt64(int64(zeroOut)))
	}

	if zeroedTotal < quota-1 {
		return fmt.Errorf("%w: surplus redistribution zeroed only %d influence, expected at least %d", ErrInvariantViolation, zeroedTotal, quota-1)
	}
	return nil
}

func containsCandidate(set []candidate.Number, c candidate.Number) bool {
	for _, x := range set {
		if x == c {
			return true
		}
	}
	return false
}
