package tally

import (
	"github.com/semog/rcipe/ballot"
	"github.com/semog/rcipe/candidate"
)

type pairKey struct {
	a, b candidate.Number // a < b always
}

func makePairKey(a, b candidate.Number) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}
}

// pairCount holds the three-way outcome of every ballot's comparison
// between a pair: how many groups' influence favoured a over b, favoured
// b over a, or ranked them equal.
type pairCount struct {
	aOverB int
	bOverA int
	tied   int
}

// PairwiseTable is a tally table over a considered subset of candidates,
// per SPEC_FULL.md §4.5. It is used both for pairwise-loser elimination
// over the full available set and for breaking ties among a handful of
// maxima.
type PairwiseTable struct {
	considered []candidate.Number
	counts     map[pairKey]*pairCount
}

// NewPairwiseTable constructs an empty table over considered.
func NewPairwiseTable(considered []candidate.Number) *PairwiseTable {
	return &PairwiseTable{
		considered: considered,
		counts:     map[pairKey]*pairCount{},
	}
}

func (t *PairwiseTable) countFor(a, b candidate.Number) *pairCount {
	k := makePairKey(a, b)
	c, ok := t.counts[k]
	if !ok {
		c = &pairCount{}
		t.counts[k] = c
	}
	return c
}

// Fill walks every group with positive remaining influence and, for every
// unordered pair within the considered subset, adds the group's influence
// to whichever side the group's preference levels favour (or to the tie
// counter if level-equal), matching SPEC_FULL.md §4.5.
func (t *PairwiseTable) Fill(groups []*ballot.Group, n int) {
	for _, g := range groups {
		if g.RemainingInfluence <= 0 {
			continue
		}
		levels := ballot.DecodePreferences(&g.Pattern, n)
		for i := 0; i < len(t.considered); i++ {
			for j := i + 1; j < len(t.considered); j++ {
				a, b := t.considered[i], t.considered[j]
				la, lb := levels[a], levels[b]
				pc := t.countFor(a, b)
				switch {
				case la < lb:
					t.addFavoring(pc, a, b, g.RemainingInfluence)
				case lb < la:
					t.addFavoring(pc, b, a, g.RemainingInfluence)
				default:
					pc.tied += g.RemainingInfluence
				}
			}
		}
	}
}

// addFavoring credits influence to whichever side of the pair (winner)
// beats the other, tracking the counter by the pair's canonical (a<b)
// orientation so counts read back unambiguously.
func (t *PairwiseTable) addFavoring(pc *pairCount, winner, loser candidate.Number, influence int) {
	k := makePairKey(winner, loser)
	if winner == k.a {
		pc.aOverB += influence
	} else {
		pc.bOverA += influence
	}
}

// LosingCandidate returns the candidate x in the considered set such that
// every other y in the set strictly beats x pairwise, per SPEC_FULL.md
// §4.5's strict-loss rule (ties never count as a loss). There is at most
// one such candidate; ok is false if none exists.
func (t *PairwiseTable) LosingCandidate() (candidate.Number, bool) {
	for _, x := range t.considered {
		lossCount := 0
		for _, y := range t.considered {
			if x == y {
				continue
			}
			k := makePairKey(x, y)
			pc, ok := t.counts[k]
			if !ok {
				continue
			}
			var xWins, yWins int
			if x == k.a {
				xWins, yWins = pc.aOverB, pc.bOverA
			} else {
				xWins, yWins = pc.bOverA, pc.aOverB
			}
			if yWins > xWins {
				lossCount++
			}
		}
		if lossCount == len(t.considered)-1 {
			return x, true
		}
	}
	return 0, false
}
