// Package session persists the workflow state between CLI invocations:
// the imported bibliography, the caller's selection, the current draft,
// and the matched citation list.
package session

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/acewriter/ace/internal/reference"
)

// Session is the single process-wide workflow state. One row exists per
// workspace; Reset clears it atomically.
type Session struct {
	ID         string    `json:"id"`
	Subject    string    `json:"subject"`
	Chapter    string    `json:"chapter,omitempty"`
	Draft      string    `json:"draft,omitempty"`
	DraftWords int       `json:"draft_words"`
	Extended   bool      `json:"extended,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Citation is one matched, formatted reference stored with the session.
type Citation struct {
	RefIndex  int    `json:"ref_index"`
	Formatted string `json:"formatted"`
}

// Store is a SQLite-backed session store.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed initializes) the session database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening session database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS session (
			id TEXT PRIMARY KEY,
			subject TEXT NOT NULL DEFAULT '',
			chapter TEXT NOT NULL DEFAULT '',
			draft TEXT NOT NULL DEFAULT '',
			draft_words INTEGER NOT NULL DEFAULT 0,
			extended INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS refs (
			idx INTEGER PRIMARY KEY,
			record TEXT NOT NULL,
			status TEXT NOT NULL,
			selected INTEGER NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS citations (
			position INTEGER PRIMARY KEY,
			ref_idx INTEGER NOT NULL,
			formatted TEXT NOT NULL
		);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("creating session schema: %w", err)
	}
	return nil
}

// Current returns the session row, creating it on first use.
func (s *Store) Current() (*Session, error) {
	sess, err := s.scanSession()
	if err == nil {
		return sess, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	now := time.Now().UTC()
	sess = &Session{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
	_, err = s.db.Exec(`
		INSERT INTO session (id, created_at, updated_at) VALUES (?, ?, ?)
	`, sess.ID, now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	return sess, nil
}

func (s *Store) scanSession() (*Session, error) {
	row := s.db.QueryRow(`
		SELECT id, subject, chapter, draft, draft_words, extended, created_at, updated_at
		FROM session LIMIT 1
	`)

	var sess Session
	var extended int
	var created, updated string
	err := row.Scan(&sess.ID, &sess.Subject, &sess.Chapter, &sess.Draft,
		&sess.DraftWords, &extended, &created, &updated)
	if err != nil {
		return nil, err
	}
	sess.Extended = extended != 0
	sess.CreatedAt, _ = time.Parse(time.RFC3339, created)
	sess.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &sess, nil
}

// SaveReferences replaces the stored bibliography with recs. Any previous
// selection and citation list refer to the replaced table and are cleared in
// the same transaction.
func (s *Store) SaveReferences(recs []reference.Record) error {
	if _, err := s.Current(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM refs"); err != nil {
		return fmt.Errorf("clearing refs: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM citations"); err != nil {
		return fmt.Errorf("clearing citations: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO refs (idx, record, status, selected) VALUES (?, ?, ?, 0)")
	if err != nil {
		return fmt.Errorf("preparing refs insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range recs {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encoding reference %d: %w", rec.Index, err)
		}
		if _, err := stmt.Exec(rec.Index, string(data), string(rec.Status)); err != nil {
			return fmt.Errorf("inserting reference %d: %w", rec.Index, err)
		}
	}

	if err := touch(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// UpdateReference rewrites one stored record in place (e.g. after a DOI
// repair), preserving its selection flag.
func (s *Store) UpdateReference(rec reference.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding reference %d: %w", rec.Index, err)
	}
	res, err := s.db.Exec("UPDATE refs SET record = ?, status = ? WHERE idx = ?",
		string(data), string(rec.Status), rec.Index)
	if err != nil {
		return fmt.Errorf("updating reference %d: %w", rec.Index, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("no reference at row %d", rec.Index)
	}
	return nil
}

// References returns the stored bibliography in row order.
func (s *Store) References() ([]reference.Record, error) {
	rows, err := s.db.Query("SELECT record FROM refs ORDER BY idx")
	if err != nil {
		return nil, fmt.Errorf("querying refs: %w", err)
	}
	defer rows.Close()

	var out []reference.Record
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning reference: %w", err)
		}
		var rec reference.Record
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			return nil, fmt.Errorf("decoding reference: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// SetSelection marks the given needs-review rows as accepted, replacing any
// previous selection. With all set, every needs-review row is accepted.
func (s *Store) SetSelection(indices []int, all bool) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("UPDATE refs SET selected = 0"); err != nil {
		return fmt.Errorf("clearing selection: %w", err)
	}

	if all {
		if _, err := tx.Exec("UPDATE refs SET selected = 1 WHERE status = ?",
			string(reference.StatusNeedsReview)); err != nil {
			return fmt.Errorf("selecting all needs-review rows: %w", err)
		}
	} else {
		for _, idx := range indices {
			res, err := tx.Exec("UPDATE refs SET selected = 1 WHERE idx = ? AND status = ?",
				idx, string(reference.StatusNeedsReview))
			if err != nil {
				return fmt.Errorf("selecting row %d: %w", idx, err)
			}
			if n, _ := res.RowsAffected(); n == 0 {
				return fmt.Errorf("row %d does not exist or does not need review", idx)
			}
		}
	}

	if err := touch(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// Working returns the generation reference list: every citable row plus the
// accepted needs-review rows, in row order.
func (s *Store) Working() ([]reference.Record, error) {
	recs, err := s.References()
	if err != nil {
		return nil, err
	}

	selected, err := s.selectedIndices()
	if err != nil {
		return nil, err
	}

	var out []reference.Record
	for _, rec := range recs {
		if rec.Citable() || selected[rec.Index] {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *Store) selectedIndices() (map[int]bool, error) {
	rows, err := s.db.Query("SELECT idx FROM refs WHERE selected = 1")
	if err != nil {
		return nil, fmt.Errorf("querying selection: %w", err)
	}
	defer rows.Close()

	out := make(map[int]bool)
	for rows.Next() {
		var idx int
		if err := rows.Scan(&idx); err != nil {
			return nil, err
		}
		out[idx] = true
	}
	return out, rows.Err()
}

// SaveDraft stores the draft alongside its subject in one transaction, so a
// draft is never paired with a subject it was not generated for.
func (s *Store) SaveDraft(subject, chapter, text string, words int, extended bool) error {
	if _, err := s.Current(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		UPDATE session SET subject = ?, chapter = ?, draft = ?, draft_words = ?, extended = ?
	`, subject, chapter, text, words, boolInt(extended)); err != nil {
		return fmt.Errorf("saving draft: %w", err)
	}
	// A new draft invalidates citations matched against the old one.
	if _, err := tx.Exec("DELETE FROM citations"); err != nil {
		return fmt.Errorf("clearing citations: %w", err)
	}

	if err := touch(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveCitations replaces the stored citation list.
func (s *Store) SaveCitations(cites []Citation) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM citations"); err != nil {
		return fmt.Errorf("clearing citations: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO citations (position, ref_idx, formatted) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing citations insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range cites {
		if _, err := stmt.Exec(i, c.RefIndex, c.Formatted); err != nil {
			return fmt.Errorf("inserting citation %d: %w", i, err)
		}
	}

	if err := touch(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// Citations returns the stored citation list in match order.
func (s *Store) Citations() ([]Citation, error) {
	rows, err := s.db.Query("SELECT ref_idx, formatted FROM citations ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("querying citations: %w", err)
	}
	defer rows.Close()

	var out []Citation
	for rows.Next() {
		var c Citation
		if err := rows.Scan(&c.RefIndex, &c.Formatted); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Reset clears subject, draft, citations, bibliography, and selection in a
// single transaction. The session is never left with a stale draft paired
// against a new subject.
func (s *Store) Reset() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		UPDATE session SET subject = '', chapter = '', draft = '', draft_words = 0, extended = 0
	`); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM refs"); err != nil {
		return fmt.Errorf("clearing refs: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM citations"); err != nil {
		return fmt.Errorf("clearing citations: %w", err)
	}

	if err := touch(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func touch(tx *sql.Tx) error {
	_, err := tx.Exec("UPDATE session SET updated_at = ?", time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("updating timestamp: %w", err)
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
