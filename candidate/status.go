// Package candidate models candidate identities and their lifecycle status
// across the counting cycles of an election.
package candidate

// Number is a 1-indexed candidate identifier as assigned by the caller.
type Number int

// Status is the lifecycle state of a candidate within a running case.
// The original implementation tracked this as a pair of parallel boolean
// arrays (is_eliminated, is_winner); here it's a single tagged value so a
// candidate can never be marked both at once.
type Status int

const (
	Available Status = iota
	Winner
	Eliminated
)

func (s Status) String() string {
	switch s {
	case Available:
		return "available"
	case Winner:
		return "winner"
	case Eliminated:
		return "eliminated"
	default:
		return "unknown"
	}
}

// Set tracks the status of every candidate in a case, numbered 1..N.
type Set struct {
	status []Status // index 0 unused, candidates are 1-indexed
}

// NewSet creates a status set for n candidates, all initially Available.
func NewSet(n int) *Set {
	return &Set{status: make([]Status, n+1)}
}

func (s *Set) Len() int { return len(s.status) - 1 }

func (s *Set) Status(c Number) Status { return s.status[c] }

func (s *Set) SetStatus(c Number, st Status) { s.status[c] = st }

func (s *Set) isAvailable(c Number) bool { return s.status[c] == Available }
func (s *Set) isWinner(c Number) bool    { return s.status[c] == Winner }
func (s *Set) isEliminated(c Number) bool { return s.status[c] == Eliminated }

// Available returns the candidates still in contention, in ascending order.
func (s *Set) Available() []Number {
	var out []Number
	for c := 1; c < len(s.status); c++ {
		if s.isAvailable(Number(c)) {
			out = append(out, Number(c))
		}
	}
	return out
}

// AvailableCount returns the number of candidates still in contention.
func (s *Set) AvailableCount() int {
	n := 0
	for c := 1; c < len(s.status); c++ {
		if s.isAvailable(Number(c)) {
			n++
		}
	}
	return n
}

// Winners returns the elected candidates, in ascending order.
func (s *Set) Winners() []Number {
	var out []Number
	for c := 1; c < len(s.status); c++ {
		if s.isWinner(Number(c)) {
			out = append(out, Number(c))
		}
	}
	return out
}

// Eliminated returns the eliminated candidates, in ascending order.
func (s *Set) Eliminated() []Number {
	var out []Number
	for c := 1; c < len(s.status); c++ {
		if s.isEliminated(Number(c)) {
			out = append(out, Number(c))
		}
	}
	return out
}

// Contains reports whether c is a member of this candidate-number set,
// independent of status (1 <= c <= Len()).
func (s *Set) Contains(c Number) bool {
	return int(c) >= 1 && int(c) < len(s.status)
}
