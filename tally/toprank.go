// Package tally implements the per-cycle top-rank aggregator and the
// pairwise tally table used for tie reduction and pairwise-loser
// elimination.
package tally

import (
	"sort"

	cmn "github.com/semog/go-common"

	"github.com/semog/rcipe/ballot"
	"github.com/semog/rcipe/candidate"
)

// MaxTiedForKey is the largest top-tied set size the base-(N+1) pattern
// key can encode, per SPEC_FULL.md §4.4 / the design note in §10. Groups
// whose top-tied set exceeds this are skipped for the cycle (logged, not
// fatal) rather than mis-encoded.
const MaxTiedForKey = 5

// bucket accumulates the influence of every group sharing one top-tied set.
type bucket struct {
	tied      []candidate.Number
	influence int
}

// CycleCounts holds the per-candidate transfer counts and total vote count
// produced by one call to AccumulateCycle.
type CycleCounts struct {
	TransferCount map[candidate.Number]int
	Total         int
	SkippedGroups int
}

// AccumulateCycle implements the five numbered steps of SPEC_FULL.md §4.4:
// for each group with positive remaining influence, find its top-tied set
// among the available candidates, bucket the group's influence by that
// set, and finally distribute each bucket evenly (with the remainder
// dropped, per the documented open question in §9/§10).
func AccumulateCycle(groups []*ballot.Group, available []candidate.Number, n int, ignoreSharedRankings bool) CycleCounts {
	buckets := map[int]*bucket{}
	cc := CycleCounts{TransferCount: map[candidate.Number]int{}}
	for _, c := range available {
		cc.TransferCount[c] = 0
	}

	for _, g := range groups {
		if g.RemainingInfluence <= 0 {
			continue
		}
		levels := ballot.DecodePreferences(&g.Pattern, n)
		top := ballot.TopTied(levels, available)
		if len(top) == 0 {
			continue
		}
		if ignoreSharedRankings && len(top) > 1 {
			g.RemainingInfluence = 0
			continue
		}
		if len(top) > MaxTiedForKey {
			cc.SkippedGroups++
			continue
		}
		key := PatternKey(top, n)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{tied: top}
			buckets[key] = b
		}
		b.influence += g.RemainingInfluence
	}

	for _, b := range buckets {
		share := b.influence / len(b.tied)
		for _, c := range b.tied {
			cc.TransferCount[c] += share
			cc.Total += share
		}
	}

	return cc
}

// PatternKey computes the base-(N+1) positional key for a top-tied set,
// per SPEC_FULL.md §4.4 step 5 / the distilled spec's §3 data model. tied
// may be in any order (it is sorted into ascending candidate order first);
// only its first MaxTiedForKey candidates after sorting enter the key.
func PatternKey(tied []candidate.Number, n int) int {
	sorted := append([]candidate.Number(nil), tied...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	base := n + 1
	key := 0
	limit := cmn.Mini(len(sorted), MaxTiedForKey)
	for i := 0; i < limit; i++ {
		key = key*base + int(sorted[i])
	}
	return key
}
