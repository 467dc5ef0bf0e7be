// Package solutions implements a cache of solved puzzles stored in a SQLite database.
//
// Entries are keyed by the puzzle text (normalized) and the configuration of the searcher used,
// and hold the solution as JSON, or a marker that the puzzle has no solution.
package solutions

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/janpfeifer/snakeGo/internal/searchers"
	"github.com/janpfeifer/snakeGo/internal/state"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

const tableName = "solutions"

// Store is a cache of solutions. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open the SQLite database at path, creating it (and its table) if it doesn't exist yet.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open solutions database %q", path)
	}
	s := &Store{db: db}
	if err := s.createTable(); err != nil {
		_ = db.Close()
		return nil, errors.WithMessagef(err, "solutions database %q", path)
	}
	return s, nil
}

// createTable creates the solutions table if it does not exist.
func (s *Store) createTable() error {
	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS ` + tableName + ` (
		key TEXT PRIMARY KEY,
		config TEXT NOT NULL,
		solved INTEGER NOT NULL,
		solution TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := s.db.Exec(createTableSQL); err != nil {
		return errors.Wrap(err, "failed to execute CREATE TABLE")
	}
	klog.V(2).Infof("Solutions table ensured.")
	return nil
}

// Close the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Key returns the cache key for the puzzle solved with the given searcher configuration.
//
// Puzzles that only differ in blank lines or whitespace around the rows share the same key, and so do
// equivalent configurations (see searchers.CanonicalConfig).
func Key(puzzle, config string) (string, error) {
	rows, err := state.NormalizePuzzle(puzzle)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	h.Write([]byte(strings.Join(rows, "\n")))
	h.Write([]byte{0})
	h.Write([]byte(searchers.CanonicalConfig(config)))
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Get looks for the puzzle solved with config.
//
// It returns found=false if the puzzle is not in the cache. If it is in the cache but the puzzle has no solution,
// it returns a nil solution with found=true. The returned solution has its final board set.
func (s *Store) Get(puzzle, config string) (solution *searchers.Solution, found bool, err error) {
	key, err := Key(puzzle, config)
	if err != nil {
		return nil, false, err
	}
	const selectSQL = `SELECT solved, solution FROM ` + tableName + ` WHERE key = ?;`
	var solved bool
	var data sql.NullString
	err = s.db.QueryRow(selectSQL, key).Scan(&solved, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to query solution")
	}
	if !solved {
		return nil, true, nil
	}
	solution = &searchers.Solution{}
	if err = json.Unmarshal([]byte(data.String), solution); err != nil {
		return nil, false, errors.Wrapf(err, "failed to decode cached solution %q", data.String)
	}
	board, err := state.ParsePuzzle(puzzle)
	if err != nil {
		return nil, false, err
	}
	solution.Final, err = state.Replay(board, solution.Start, solution.Directions)
	if err != nil {
		return nil, false, errors.WithMessage(err, "cached solution doesn't replay")
	}
	return solution, true, nil
}

// Put stores the solution of the puzzle solved with config. A nil solution records that the puzzle has no solution.
// It replaces any previous entry.
func (s *Store) Put(puzzle, config string, solution *searchers.Solution) error {
	key, err := Key(puzzle, config)
	if err != nil {
		return err
	}
	var data sql.NullString
	if solution != nil {
		encoded, err := json.Marshal(solution)
		if err != nil {
			return errors.Wrap(err, "failed to encode solution")
		}
		data = sql.NullString{String: string(encoded), Valid: true}
	}
	const insertSQL = `
	INSERT OR REPLACE INTO ` + tableName + ` (key, config, solved, solution)
	VALUES (?, ?, ?, ?);`
	if _, err = s.db.Exec(insertSQL, key, searchers.CanonicalConfig(config), solution != nil, data); err != nil {
		return errors.Wrap(err, "failed to insert solution")
	}
	return nil
}

// Count returns the number of cached entries.
func (s *Store) Count() (int, error) {
	const countSQL = `SELECT COUNT(*) FROM ` + tableName + `;`
	var count int
	if err := s.db.QueryRow(countSQL).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count solutions")
	}
	return count, nil
}
