// Command rcipestv reads a voteinfo stream from stdin and writes a result
// stream to stdout, implementing the CLI contract in SPEC_FULL.md §6.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"k8s.io/klog"

	"github.com/semog/rcipe/ballot"
	"github.com/semog/rcipe/candidate"
	"github.com/semog/rcipe/config"
	"github.com/semog/rcipe/engine"
	"github.com/semog/rcipe/internal/historystore"
	"github.com/semog/rcipe/internal/xlog"
	"github.com/semog/rcipe/voteinfo"
)

func main() {
	klog.InitFlags(nil)

	cfg, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	if isatty.IsTerminal(os.Stderr.Fd()) {
		fmt.Fprintln(os.Stderr, xlog.Decorate(":ballot_box:", "rcipe stv counting engine"))
	}

	var history historystore.Store
	if cfg.HistoryDBPath != "" {
		history = historystore.New()
		if err := history.Init(cfg.HistoryDBPath); err != nil {
			klog.Fatalf("could not open history database %s: %v", cfg.HistoryDBPath, err)
		}
		defer history.Close()
	}

	if err := run(os.Stdin, os.Stdout, cfg, history); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}
}

func run(in *os.File, out *os.File, cfg config.Config, history historystore.Store) error {
	reader := voteinfo.NewReader(in)
	writer := voteinfo.NewWriter(out)
	defer writer.Flush()

	for {
		c, ok, err := reader.NextCase()
		if err != nil {
			return fmt.Errorf("could not decode case: %w", err)
		}
		if !ok {
			return nil
		}

		if err := runOneCase(c, writer, cfg, history); err != nil {
			return fmt.Errorf("case %d: %w", c.CaseNumber, err)
		}
	}
}

func runOneCase(c *voteinfo.Case, writer *voteinfo.Writer, cfg config.Config, history historystore.Store) error {
	var logger xlog.Logger = xlog.New()
	if c.LoggingOff && !cfg.Debug {
		logger = xlog.Discard
	}

	store, err := ballot.FromCase(c)
	if err != nil {
		return err
	}

	candidates := candidate.NewSet(c.NumCandidates)

	eng := engine.New(engine.Config{
		NumCandidates:        c.NumCandidates,
		Seats:                c.Seats,
		Droop:                c.DroopRequested(),
		DisablePairwiseLoser: c.RequestIRVorSTV,
		IgnoreSharedRankings: c.IgnoreSharedRankings,
	}, candidates, store, writer, logger)

	for _, pe := range c.PreEliminated {
		eng.PreEliminate(pe)
	}

	logger.Printf("case %d: %s ballots across %d groups, %d candidates, %d seats",
		c.CaseNumber, humanize.Comma(int64(totalBallots(store))), store.Len(), c.NumCandidates, c.Seats)

	writer.Emit(voteinfo.CodeCaseNumber, c.CaseNumber)

	runErr := eng.Run()

	logger.Printf("case %d: %d winner(s), %d eliminated", c.CaseNumber, len(candidates.Winners()), len(candidates.Eliminated()))

	if history != nil {
		rec := historystore.Record{
			CaseNumber:  c.CaseNumber,
			Method:      methodLabel(c),
			Seats:       c.Seats,
			Winners:     candidates.Winners(),
			TiedOut:     len(candidates.Winners()) < c.Seats && runErr == nil,
			CompletedAt: time.Now(),
		}
		if saveErr := history.SaveRecord(rec); saveErr != nil {
			logger.Printf("could not save case history: %v", saveErr)
		}
	}

	return runErr
}

func totalBallots(store *ballot.Store) int {
	total := 0
	for _, g := range store.Groups() {
		total += g.InitialCount
	}
	return total
}

func methodLabel(c *voteinfo.Case) string {
	switch {
	case c.RequestIRVorSTV && c.Seats == 1:
		return "irv"
	case c.RequestIRVorSTV:
		return "stv"
	default:
		return "rcipe-stv"
	}
}
