// Package historystore persists a small audit record per completed case,
// adapted from the teacher's store.go/db.go/initdb.go storage stack but
// retargeted from a poll's answers/options to a tabulator's case results.
package historystore

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/semog/go-sqldb"
	"k8s.io/klog"

	"github.com/semog/rcipe/candidate"
)

// Record is one completed case's audit entry.
type Record struct {
	RunID       string
	CaseNumber  int
	Method      string
	Seats       int
	Winners     []candidate.Number
	TiedOut     bool
	CompletedAt time.Time
}

// Store is the persistence interface for case history, mirroring the
// teacher's Store interface split between contract and sqlStore impl.
type Store interface {
	Init(databaseFile string) error
	Close()
	SaveRecord(r Record) error
	RecentRecords(limit int) ([]Record, error)
}

type sqlStore struct {
	db *sqldb.SQLDb
}

// New constructs an unopened Store; call Init before use.
func New() Store {
	return &sqlStore{}
}

func (st *sqlStore) Init(databaseFile string) error {
	var err error
	st.db, err = sqldb.OpenAndPatchDb(databaseFile, dbPatchFuncs)
	if err != nil {
		return fmt.Errorf("could not open history database %s: %w", databaseFile, err)
	}
	return nil
}

func (st *sqlStore) Close() {
	if err := st.db.Close(); err != nil {
		klog.Infof("could not close history database properly: %v", err)
	}
}

type closable interface {
	Close() error
}

func closeQuietly(c closable) {
	if err := c.Close(); err != nil {
		klog.Infof("could not close stmt or rows properly: %v", err)
	}
}

// var dbPatchFuncs is the automatic-upgrade patch list, same pattern as the
// teacher's dbPatchFuncs in initdb.go: add new patches, never edit old ones.
var dbPatchFuncs = []sqldb.PatchFuncType{
	{PatchID: 1, PatchFunc: func(sdb *sqldb.SQLDb) error {
		if err := sdb.CreateTable(`case_history(
			RunID TEXT PRIMARY KEY,
			CaseNumber INTEGER,
			Method TEXT,
			Seats INTEGER,
			TiedOut INTEGER,
			CompletedAt INTEGER)`); err != nil {
			return err
		}
		if err := sdb.CreateIndex("case_history_index ON case_history(CaseNumber)"); err != nil {
			return err
		}
		return sdb.CreateTable(`case_winner(
			RunID TEXT,
			CandidateNumber INTEGER)`)
	}},
}

// SaveRecord writes r and its winner list inside one transaction, following
// the same Begin/defer-Rollback-else-Commit pattern as the teacher's
// SaveAnswer in db.go.
func (st *sqlStore) SaveRecord(r Record) (err error) {
	if r.RunID == "" {
		r.RunID = uuid.NewString()
	}

	tx, err := st.db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin database transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				klog.Infof("could not rollback database change: %v", rbErr)
			}
			return
		}
		err = tx.Commit()
	}()

	tiedOut := 0
	if r.TiedOut {
		tiedOut = 1
	}
	if _, err = tx.Exec(
		"INSERT INTO case_history(RunID, CaseNumber, Method, Seats, TiedOut, CompletedAt) VALUES (?, ?, ?, ?, ?, ?)",
		r.RunID, r.CaseNumber, r.Method, r.Seats, tiedOut, r.CompletedAt.Unix(),
	); err != nil {
		return fmt.Errorf("could not save case history: %w", err)
	}

	for _, w := range r.Winners {
		if _, err = tx.Exec("INSERT INTO case_winner(RunID, CandidateNumber) VALUES (?, ?)", r.RunID, int(w)); err != nil {
			return fmt.Errorf("could not save case winner: %w", err)
		}
	}
	return nil
}

// RecentRecords returns up to limit history records, most recent first.
func (st *sqlStore) RecentRecords(limit int) ([]Record, error) {
	rows, err := st.db.Query("SELECT RunID, CaseNumber, Method, Seats, TiedOut, CompletedAt FROM case_history ORDER BY CompletedAt DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("could not query case history rows: %w", err)
	}
	defer closeQuietly(rows)

	var records []Record
	for rows.Next() {
		var r Record
		var tiedOut int
		var completedAt int64
		if err := rows.Scan(&r.RunID, &r.CaseNumber, &r.Method, &r.Seats, &tiedOut, &completedAt); err != nil {
			return nil, fmt.Errorf("could not scan case history row: %w", err)
		}
		r.TiedOut = tiedOut != 0
		r.CompletedAt = time.Unix(completedAt, 0)
		records = append(records, r)
	}

	for i := range records {
		winners, err := st.winnersFor(records[i].RunID)
		if err != nil {
			return nil, err
		}
		records[i].Winners = winners
	}
	return records, nil
}

func (st *sqlStore) winnersFor(runID string) ([]candidate.Number, error) {
	rows, err := st.db.Query("SELECT CandidateNumber FROM case_winner WHERE RunID = ?", runID)
	if err != nil {
		return nil, fmt.Errorf("could not query case winner rows: %w", err)
	}
	defer closeQuietly(rows)

	var winners []candidate.Number
	for rows.Next() {
		var c int
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("could not scan case winner row: %w", err)
		}
		winners = append(winners, candidate.Number(c))
	}
	return winners, nil
}
