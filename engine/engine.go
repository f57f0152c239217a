// Package engine implements the cycle-by-cycle vote-transfer state machine
// (the RCIPE STV counting engine) described in SPEC_FULL.md §4.6-§4.8.
package engine

import (
	"fmt"

	"github.com/semog/rcipe/ballot"
	"github.com/semog/rcipe/candidate"
	"github.com/semog/rcipe/internal/xlog"
	"github.com/semog/rcipe/tally"
	"github.com/semog/rcipe/voteinfo"
)

// Config carries the per-case settings that shape the cycle driver's
// behaviour, decoded from the case's header codes.
type Config struct {
	NumCandidates        int
	Seats                int
	Droop                bool
	DisablePairwiseLoser bool // set by -50, request IRV/STV
	IgnoreSharedRankings bool
}

// Engine owns all per-case state for one run of the cycle driver. Each
// case gets a freshly constructed Engine value — there is no process-
// global mutable state, per the design note in SPEC_FULL.md §10.
type Engine struct {
	cfg        Config
	candidates *candidate.Set
	store      *ballot.Store
	w          *voteinfo.Writer
	log        xlog.Logger

	cycleNum       int
	winnersElected int
	haltedOnTie    bool
}

// New constructs an Engine for one case. w receives the result stream;
// log may be nil, in which case diagnostics are discarded.
func New(cfg Config, candidates *candidate.Set, store *ballot.Store, w *voteinfo.Writer, log xlog.Logger) *Engine {
	if log == nil {
		log = xlog.Discard
	}
	return &Engine{cfg: cfg, candidates: candidates, store: store, w: w, log: log}
}

// PreEliminate marks c as eliminated before the first cycle runs, honouring
// -77 per SPEC_FULL.md §9.2 and the pre-elimination idempotence law in §8.
func (e *Engine) PreEliminate(c candidate.Number) {
	e.candidates.SetStatus(c, candidate.Eliminated)
}

// Run drives cycles until every seat is filled, no candidates remain, or an
// unresolved tie halts the case. It returns ErrInvariantViolation if an
// internal consistency check fails.
func (e *Engine) Run() error {
	for {
		seatsRemaining := e.cfg.Seats - e.winnersElected
		if seatsRemaining <= 0 {
			return nil
		}

		available := e.candidates.Available()
		if len(available) == 0 {
			e.log.Printf("no available candidates remain with %d seats unfilled", seatsRemaining)
			e.w.EmitTieBlock(nil)
			return nil
		}

		if len(available) == seatsRemaining {
			e.fillRemainingSeats(available)
			return nil
		}

		if err := e.runCycle(available); err != nil {
			return err
		}
		if e.haltedOnTie || e.done() {
			return nil
		}
	}
}

func (e *Engine) done() bool {
	return e.cfg.Seats-e.winnersElected <= 0 || e.candidates.AvailableCount() == 0
}

// fillRemainingSeats implements the trivial-fill shortcut of §4.6 step 2:
// when exactly as many candidates remain as seats, they all win at once.
func (e *Engine) fillRemainingSeats(available []candidate.Number) {
	for _, c := range available {
		e.candidates.SetStatus(c, candidate.Winner)
	}
	e.winnersElected += len(available)
	if len(available) == 1 {
		e.w.EmitCandidates(voteinfo.CodeWinnerNextSeat, available[0])
		e.log.Printf("%s", xlog.Decorate(":1st_place_medal:", "%s wins the final seat unopposed", candLabel(available[0])))
		return
	}
	e.log.Printf("%d candidates fill the %d remaining seats together", len(available), len(available))
	e.w.EmitTieBlock(available)
}

// runCycle implements one pass of §4.6 steps 3-8.
func (e *Engine) runCycle(available []candidate.Number) error {
	e.cycleNum++
	e.w.Emit(voteinfo.CodeCycleNumber, e.cycleNum)

	cc := tally.AccumulateCycle(e.store.Groups(), available, e.cfg.NumCandidates, e.cfg.IgnoreSharedRankings)
	// Quota is computed from the fixed total seat count, not the seats
	// still open — seatsRemaining only governs trivial-fill and
	// termination, per SPEC_FULL.md §4.6 step 4 / the original's
	// global_number_of_seats_to_fill.
	quota, qt := computeQuota(cc.Total, e.cfg.Seats, e.cfg.Droop)
	if quota <= 0 {
		return fmt.Errorf("%w: non-positive quota %d at cycle %d", ErrInvariantViolation, quota, e.cycleNum)
	}
	e.w.Emit(voteinfo.CodeQuotaDiagnostic, quota)
	e.log.Printf("cycle %d: %s quota %d over %d votes", e.cycleNum, qt, quota, cc.Total)
	if cc.SkippedGroups > 0 {
		e.log.Printf("cycle %d: skipped %d ballot groups with more than %d candidates tied at top", e.cycleNum, cc.SkippedGroups, tally.MaxTiedForKey)
	}

	h, maxima := maxTransferCount(cc.TransferCount, available)

	if h >= quota {
		return e.electionBranch(available, maxima, h, quota)
	}
	return e.eliminationBranch(available, cc.TransferCount)
}

// electionBranch implements §4.6 step 6.
func (e *Engine) electionBranch(available, maxima []candidate.Number, h, quota int) error {
	winner, resolved := e.resolveTieForWinner(maxima)
	if !resolved {
		e.log.Printf("unresolved tie for next seat among %v", maxima)
		e.w.EmitTieBlock(maxima)
		e.haltedOnTie = true
		return nil
	}

	e.candidates.SetStatus(winner, candidate.Winner)
	e.winnersElected++
	e.w.EmitCandidates(voteinfo.CodeWinnerNextSeat, winner)
	e.log.Printf("%s", xlog.Decorate(":1st_place_medal:", "%s wins with %d votes at quota %d", candLabel(winner), h, quota))

	if err := redistributeSurplus(e.store.Groups(), available, e.cfg.NumCandidates, winner, h, quota); err != nil {
		return err
	}
	return nil
}

// resolveTieForWinner pairwise-reduces maxima per §4.5/§4.6 step 6: repeatedly
// remove the pairwise loser within the tied set until one remains or no
// loser can be found.
func (e *Engine) resolveTieForWinner(maxima []candidate.Number) (candidate.Number, bool) {
	if len(maxima) == 1 {
		return maxima[0], true
	}
	remaining := append([]candidate.Number(nil), maxima...)
	for len(remaining) > 1 {
		pt := tally.NewPairwiseTable(remaining)
		pt.Fill(e.store.Groups(), e.cfg.NumCandidates)
		loser, ok := pt.LosingCandidate()
		if !ok {
			return 0, false
		}
		remaining = removeCandidate(remaining, loser)
	}
	return remaining[0], true
}

// eliminationBranch implements §4.6 step 7: pairwise-loser elimination by
// default, falling back to simultaneous bottom-tie elimination when
// disabled (-50) or when no strict pairwise loser exists.
func (e *Engine) eliminationBranch(available []candidate.Number, transferCount map[candidate.Number]int) error {
	if !e.cfg.DisablePairwiseLoser {
		pt := tally.NewPairwiseTable(available)
		pt.Fill(e.store.Groups(), e.cfg.NumCandidates)
		if loser, ok := pt.LosingCandidate(); ok {
			e.candidates.SetStatus(loser, candidate.Eliminated)
			e.w.EmitCandidates(voteinfo.CodePairwiseLoser, loser)
			e.log.Printf("%s eliminated as the pairwise losing candidate", candLabel(loser))
			return nil
		}
	}

	lowest, bottom := minTransferCount(transferCount, available)
	if len(bottom) == len(available) {
		e.log.Printf("unresolved tie among all remaining candidates %v, none can be eliminated", bottom)
		e.w.EmitTieBlock(bottom)
		e.haltedOnTie = true
		return nil
	}
	for _, c := range bottom {
		e.candidates.SetStatus(c, candidate.Eliminated)
	}
	e.w.EmitCandidates(voteinfo.CodeEliminated, bottom...)
	e.log.Printf("%d candidates eliminated together at the bottom with %d votes", len(bottom), lowest)
	return nil
}

func maxTransferCount(tc map[candidate.Number]int, available []candidate.Number) (int, []candidate.Number) {
	h := -1
	for _, c := range available {
		if tc[c] > h {
			h = tc[c]
		}
	}
	var maxima []candidate.Number
	for _, c := range available {
		if tc[c] == h {
			maxima = append(maxima, c)
		}
	}
	return h, maxima
}

func minTransferCount(tc map[candidate.Number]int, available []candidate.Number) (int, []candidate.Number) {
	l := -1
	for _, c := range available {
		if l == -1 || tc[c] < l {
			l = tc[c]
		}
	}
	var bottom []candidate.Number
	for _, c := range available {
		if tc[c] == l {
			bottom = append(bottom, c)
		}
	}
	return l, bottom
}

func removeCandidate(set []candidate.Number, c candidate.Number) []candidate.Number {
	out := make([]candidate.Number, 0, len(set))
	for _, x := range set {
		if x != c {
			out = append(out, x)
		}
	}
	return out
}

func candLabel(c candidate.Number) string {
	return fmt.Sprintf("candidate %d", c)
}
