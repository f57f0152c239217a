package voteinfo

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/semog/rcipe/candidate"
)

// tokenStream is a one-token-of-lookahead scanner over signed-integer
// lexemes separated by whitespace, commas, or periods, matching
// SPEC_FULL.md §4.1's "streaming tokenizer consuming whitespace/comma/
// period-separated integer lexemes across line boundaries".
type tokenStream struct {
	sc      *bufio.Scanner
	peeked  bool
	peekVal int
	peekOK  bool
	peekErr error
}

func newTokenStream(r io.Reader) *tokenStream {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	sc.Split(splitIntLexemes)
	return &tokenStream{sc: sc}
}

// isSeparator reports whether b is one of the token separators named in
// SPEC_FULL.md §4.1: space, comma, period, or newline (plus the other
// ASCII whitespace the original tolerates).
func isSeparator(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', ',', '.':
		return true
	default:
		return false
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// splitIntLexemes is a bufio.SplitFunc that skips separators and emits
// either a signed-integer lexeme or, if the next run of non-separator
// bytes isn't a valid integer, that whole run verbatim so the caller can
// report ErrMalformedInput instead of silently discarding garbage.
func splitIntLexemes(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) && isSeparator(data[start]) {
		start++
	}
	if start == len(data) {
		return start, nil, nil
	}

	i := start
	if data[i] == '-' {
		i++
	}
	for i < len(data) && isDigit(data[i]) {
		i++
	}
	if data[start] != '-' && !isDigit(data[start]) {
		// not a numeric lexeme at all; consume the whole non-separator
		// run as one malformed token.
		i = start
		for i < len(data) && !isSeparator(data[i]) {
			i++
		}
	}

	if i == len(data) && !atEOF {
		return start, nil, nil // lexeme may continue in the next read
	}
	return i, data[start:i], nil
}

func (t *tokenStream) fill() {
	if t.peeked {
		return
	}
	if t.sc.Scan() {
		v, err := strconv.Atoi(t.sc.Text())
		if err != nil {
			t.peekOK, t.peekErr = false, fmt.Errorf("%w: %q is not an integer", ErrMalformedInput, t.sc.Text())
		} else {
			t.peekVal, t.peekOK = v, true
		}
	} else if err := t.sc.Err(); err != nil {
		t.peekOK, t.peekErr = false, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	} else {
		t.peekOK = false // clean EOF
	}
	t.peeked = true
}

// peek returns the next token without consuming it. ok is false at EOF.
func (t *tokenStream) peek() (val int, ok bool, err error) {
	t.fill()
	return t.peekVal, t.peekOK, t.peekErr
}

// next consumes and returns the next token.
func (t *tokenStream) next() (val int, ok bool, err error) {
	val, ok, err = t.peek()
	t.peeked = false
	return
}

// expect consumes the next token and requires it to equal want (a code).
func (t *tokenStream) expect(want Code) error {
	v, ok, err := t.next()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: expected code %d, got end of input", ErrMalformedInput, want)
	}
	if v != int(want) {
		return fmt.Errorf("%w: expected code %d, got %d", ErrProtocolViolation, want, v)
	}
	return nil
}

// expectInt consumes the next token and returns it as a payload value. It
// does not check the sign or range; callers do that.
func (t *tokenStream) expectInt() (int, error) {
	v, ok, err := t.next()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: expected a payload integer, got end of input", ErrMalformedInput)
	}
	return v, nil
}

// Reader decodes a voteinfo stream into Case values, one per -3...-2/-3 block.
type Reader struct {
	ts           *tokenStream
	sawCases     bool
	maxGroups    int
	maxCandidate int
	seenCases    map[int]bool
}

// NewReader constructs a Reader over r, with default capacity bounds
// matching the original implementation's compile-time limits.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		ts:           newTokenStream(r),
		maxGroups:    20000,
		maxCandidate: 100,
	}
}

// NextCase decodes the next case from the stream. ok is false (with a nil
// error) once the stream's end-of-all-cases terminator has been consumed
// or the input is exhausted without one.
func (rd *Reader) NextCase() (c *Case, ok bool, err error) {
	// Skip the optional leading -1; an end-of-all-cases marker ends the
	// stream.
	for {
		v, have, err := rd.ts.peek()
		if err != nil {
			return nil, false, err
		}
		if !have {
			return nil, false, nil
		}
		switch Code(v) {
		case CodeStartOfCases:
			rd.ts.next()
			continue
		case CodeEndOfAllCases:
			rd.ts.next()
			return nil, false, nil
		case CodeCaseNumber:
			return rd.decodeOneCase()
		default:
			return nil, false, fmt.Errorf("%w: expected case start, got code/value %d", ErrProtocolViolation, v)
		}
	}
}

func (rd *Reader) decodeOneCase() (*Case, bool, error) {
	if err := rd.ts.expect(CodeCaseNumber); err != nil {
		return nil, false, err
	}
	caseNum, err := rd.ts.expectInt()
	if err != nil {
		return nil, false, err
	}
	if rd.seenCases == nil {
		rd.seenCases = map[int]bool{}
	}
	if rd.seenCases[caseNum] {
		return nil, false, fmt.Errorf("%w: duplicate case number %d", ErrProtocolViolation, caseNum)
	}
	rd.seenCases[caseNum] = true

	c := &Case{CaseNumber: caseNum, Seats: 1}

	sawQuestion, sawN := false, false

headerLoop:
	for {
		v, have, err := rd.ts.peek()
		if err != nil {
			return nil, false, err
		}
		if !have {
			return nil, false, fmt.Errorf("%w: case %d truncated before any ballots", ErrMalformedInput, caseNum)
		}
		switch Code(v) {
		case CodeQuestionNumber:
			rd.ts.next()
			q, err := rd.ts.expectInt()
			if err != nil {
				return nil, false, err
			}
			if q != 1 {
				return nil, false, fmt.Errorf("%w: case %d question number must be 1, got %d", ErrProtocolViolation, caseNum, q)
			}
			c.Question, sawQuestion = q, true
		case CodeCandidateCount:
			rd.ts.next()
			n, err := rd.ts.expectInt()
			if err != nil {
				return nil, false, err
			}
			if n < 1 || n > rd.maxCandidate {
				return nil, false, fmt.Errorf("%w: case %d candidate count %d out of range", ErrProtocolViolation, caseNum, n)
			}
			c.NumCandidates, sawN = n, true
		case CodeSeats:
			rd.ts.next()
			s, err := rd.ts.expectInt()
			if err != nil {
				return nil, false, err
			}
			if s < 1 {
				return nil, false, fmt.Errorf("%w: case %d seat count must be >= 1, got %d", ErrProtocolViolation, caseNum, s)
			}
			c.Seats = s
		case CodeDroopQuota:
			rd.ts.next()
			c.droopRequested = true
		case CodeRequestIRVorSTV:
			rd.ts.next()
			c.RequestIRVorSTV = true
		case CodeLoggingOff:
			rd.ts.next()
			c.LoggingOff = true
		case CodeIgnoreSharedRankings:
			rd.ts.next()
			c.IgnoreSharedRankings = true
		case CodePreEliminate:
			rd.ts.next()
			if !sawN {
				return nil, false, fmt.Errorf("%w: case %d pre-eliminated candidate before candidate count", ErrProtocolViolation, caseNum)
			}
			cn, err := rd.ts.expectInt()
			if err != nil {
				return nil, false, err
			}
			if cn < 1 || cn > c.NumCandidates {
				return nil, false, fmt.Errorf("%w: case %d pre-eliminated candidate %d out of range", ErrProtocolViolation, caseNum, cn)
			}
			c.PreEliminated = append(c.PreEliminated, candidate.Number(cn))
		case CodeVoteInfoLowerBound, CodeStartOfBallot:
			break headerLoop
		case CodeCaseNumber, CodeEndOfAllCases:
			break headerLoop
		default:
			// Unhonoured registry code: skip it and any immediate payload
			// is left for the next read, matching the pass-through rule
			// in SPEC_FULL.md §4.1. A bare positive number here would be
			// a genuine ordering violation (candidate before vote info).
			if v >= 0 {
				return nil, false, fmt.Errorf("%w: case %d candidate number %d before vote info section", ErrProtocolViolation, caseNum, v)
			}
			rd.ts.next()
		}
	}

	if !sawQuestion {
		return nil, false, fmt.Errorf("%w: case %d missing question number", ErrProtocolViolation, caseNum)
	}
	if !sawN {
		return nil, false, fmt.Errorf("%w: case %d missing candidate count", ErrProtocolViolation, caseNum)
	}

	for {
		v, have, err := rd.ts.peek()
		if err != nil {
			return nil, false, err
		}
		if !have {
			break
		}
		if Code(v) == CodeCaseNumber || Code(v) == CodeEndOfAllCases {
			break
		}
		if Code(v) == CodeVoteInfoUpperBound {
			rd.ts.next()
			break
		}
		g, err := rd.decodeOneGroup(c)
		if err != nil {
			return nil, false, err
		}
		if len(c.Groups) >= rd.maxGroups {
			return nil, false, fmt.Errorf("%w: case %d exceeded %d ballot groups", ErrCapacityExceeded, caseNum, rd.maxGroups)
		}
		c.Groups = append(c.Groups, *g)
	}

	return c, true, nil
}

// decodeOneGroup reads one ballot group: a leading repeat count followed by
// the ranked preferences it applies to, per original_source/rcipe_stv.cpp's
// get_candidate_ranks_from_one_ballot_group and generate_random_ballots.cpp's
// writer (repeat count emitted before the ranking, not after it). The group
// ends at the next repeat count, the end of the vote-info section, or an
// explicit -10 terminator.
func (rd *Reader) decodeOneGroup(c *Case) (*RawGroup, error) {
	// -7 (start of vote info) wraps the whole section, not each group;
	// tolerate it appearing before any individual group too.
	if v, have, err := rd.ts.peek(); err != nil {
		return nil, err
	} else if have && Code(v) == CodeVoteInfoLowerBound {
		rd.ts.next()
	}

	if err := rd.ts.expect(CodeBallotRepeatCount); err != nil {
		return nil, err
	}
	n, err := rd.ts.expectInt()
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: case %d ballot repeat count must be positive, got %d", ErrProtocolViolation, c.CaseNumber, n)
	}

	g := &RawGroup{Count: n}
	seen := map[candidate.Number]bool{}
	tiedWithPrevious := false

	for {
		v, have, err := rd.ts.peek()
		if err != nil {
			return nil, err
		}
		if !have {
			return g, nil
		}
		switch {
		case Code(v) == CodeEndOfBallotGroup:
			rd.ts.next()
			return g, nil
		case Code(v) == CodeBallotRepeatCount, Code(v) == CodeVoteInfoUpperBound,
			Code(v) == CodeCaseNumber, Code(v) == CodeEndOfAllCases:
			// Next group's count, end of vote info, or end of case: this
			// group has no explicit terminator, leave the token for the
			// caller.
			return g, nil
		case Code(v) == CodeTieMarker:
			rd.ts.next()
			tiedWithPrevious = true
		case v > 0:
			rd.ts.next()
			cn := candidate.Number(v)
			if int(cn) > c.NumCandidates {
				return nil, fmt.Errorf("%w: case %d candidate %d exceeds candidate count %d", ErrProtocolViolation, c.CaseNumber, cn, c.NumCandidates)
			}
			if seen[cn] {
				return nil, fmt.Errorf("%w: case %d candidate %d repeated within one ballot", ErrProtocolViolation, c.CaseNumber, cn)
			}
			seen[cn] = true
			g.Preferences = append(g.Preferences, RawPreference{Candidate: cn, TiedWithPrevious: tiedWithPrevious})
			tiedWithPrevious = false
		default:
			return nil, fmt.Errorf("%w: case %d unexpected code %d inside ballot", ErrProtocolViolation, c.CaseNumber, v)
		}
	}
}
