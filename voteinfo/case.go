package voteinfo

import "github.com/semog/rcipe/candidate"

// RawPreference is one decoded preference-ranking event within a ballot
// group, in wire order.
type RawPreference struct {
	Candidate        candidate.Number
	TiedWithPrevious bool
}

// RawGroup is one decoded ballot group: a repeat count and the ranking
// events shared by every ballot folded into the group.
type RawGroup struct {
	Count       int
	Preferences []RawPreference
}

// Case is the fully decoded content of one -3 case-number block.
type Case struct {
	CaseNumber           int
	Question             int
	NumCandidates        int
	Seats                int
	RequestIRVorSTV      bool
	IgnoreSharedRankings bool
	LoggingOff           bool
	PreEliminated        []candidate.Number
	Groups               []RawGroup

	droopRequested bool
}

// DroopRequested reports whether the case requested a Droop quota (-68)
// instead of the default Hare quota.
func (c *Case) DroopRequested() bool { return c.droopRequested }
