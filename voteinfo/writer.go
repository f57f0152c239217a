package voteinfo

import (
	"bufio"
	"fmt"
	"io"

	"github.com/semog/rcipe/candidate"
)

// Writer encodes result codes and their payloads onto an output stream,
// matching §4.1/§4.8's "emit(result_code, payload?)... flushes with a
// final end-of-all-cases terminator" contract.
type Writer struct {
	bw  *bufio.Writer
	err error
}

// NewWriter constructs a Writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriter(w)}
}

// Emit writes a result code followed by zero or more payload integers,
// each separated by a single space.
func (w *Writer) Emit(code Code, payload ...int) {
	if w.err != nil {
		return
	}
	if _, err := fmt.Fprintf(w.bw, "%d", code); err != nil {
		w.err = err
		return
	}
	for _, p := range payload {
		if _, err := fmt.Fprintf(w.bw, " %d", p); err != nil {
			w.err = err
			return
		}
	}
	if _, err := w.bw.WriteString("\n"); err != nil {
		w.err = err
	}
}

// EmitCandidates is a convenience wrapper for result codes that are always
// followed by one or more candidate numbers (winner, eliminated, pairwise
// loser, tied-for-next-seat blocks).
func (w *Writer) EmitCandidates(code Code, cs ...candidate.Number) {
	payload := make([]int, len(cs))
	for i, c := range cs {
		payload[i] = int(c)
	}
	w.Emit(code, payload...)
}

// EmitTieBlock writes a begin/candidates/end tied-for-next-seat block:
// "-70 c1 c2 ... -71", matching §4.8's "(begin_tie, candidate+, end_tie)".
func (w *Writer) EmitTieBlock(cs []candidate.Number) {
	payload := make([]int, len(cs))
	for i, c := range cs {
		payload[i] = int(c)
	}
	w.Emit(CodeBeginTieBlock, payload...)
	w.Emit(CodeEndTieBlock)
}

// Flush writes the end-of-all-cases terminator and flushes the buffer.
// It must be called exactly once, after the last case has been written.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	w.Emit(CodeEndOfAllCases)
	if err := w.bw.Flush(); err != nil {
		return err
	}
	return w.err
}

// Err returns the first error encountered while writing, if any.
func (w *Writer) Err() error { return w.err }
