package dataset

import (
	"database/sql"
	"sort"

	"github.com/FocuswithJustin/Koine/core/errors"
	"github.com/FocuswithJustin/Koine/core/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS verses (
	ref  TEXT PRIMARY KEY,
	text TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS tokens (
	ref        TEXT NOT NULL,
	seq        INTEGER NOT NULL,
	greek      TEXT NOT NULL,
	translit   TEXT NOT NULL DEFAULT '',
	gloss      TEXT NOT NULL DEFAULT '',
	strongs    TEXT NOT NULL DEFAULT '',
	strong_def TEXT NOT NULL DEFAULT '',
	rmac       TEXT NOT NULL DEFAULT '',
	rmac_def   TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (ref, seq)
);
CREATE TABLE IF NOT EXISTS lexicon (
	number     TEXT PRIMARY KEY,
	definition TEXT NOT NULL
);
`

// BuildSQLite materializes the JSON datasets into a SQLite database at
// path, replacing any existing contents. The resulting database is the
// query-optimized form served by OpenSQLite.
func BuildSQLite(path string, verses map[string]*Verse, lexicon map[string]string) error {
	db, err := sqlite.Open(path)
	if err != nil {
		return errors.NewIO("open", path, err)
	}
	defer db.Close()

	if _, err := db.Exec(sqliteSchema); err != nil {
		return errors.Wrap(err, "creating schema")
	}

	tx, err := db.Begin()
	if err != nil {
		return errors.Wrap(err, "starting transaction")
	}
	defer tx.Rollback()

	for _, table := range []string{"tokens", "verses", "lexicon"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return errors.Wrapf(err, "clearing %s", table)
		}
	}

	verseStmt, err := tx.Prepare(`INSERT INTO verses (ref, text) VALUES (?, ?)`)
	if err != nil {
		return errors.Wrap(err, "preparing verse insert")
	}
	defer verseStmt.Close()

	tokenStmt, err := tx.Prepare(`INSERT INTO tokens
		(ref, seq, greek, translit, gloss, strongs, strong_def, rmac, rmac_def)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "preparing token insert")
	}
	defer tokenStmt.Close()

	for ref, verse := range verses {
		if _, err := verseStmt.Exec(ref, verse.Text); err != nil {
			return errors.Wrapf(err, "inserting verse %s", ref)
		}
		for i, tok := range verse.Tokens {
			if _, err := tokenStmt.Exec(ref, i, tok.Greek, tok.Translit, tok.Gloss,
				tok.Strongs, tok.StrongDef, tok.RMAC, tok.RMACDef); err != nil {
				return errors.Wrapf(err, "inserting token %d of %s", i, ref)
			}
		}
	}

	lexStmt, err := tx.Prepare(`INSERT INTO lexicon (number, definition) VALUES (?, ?)`)
	if err != nil {
		return errors.Wrap(err, "preparing lexicon insert")
	}
	defer lexStmt.Close()

	for number, def := range lexicon {
		if _, err := lexStmt.Exec(normalizeLexiconKey(number), def); err != nil {
			return errors.Wrapf(err, "inserting lexicon entry %s", number)
		}
	}

	return tx.Commit()
}

// SQLiteStore serves lookups from a dataset database built by
// BuildSQLite. The database is opened read-only.
type SQLiteStore struct {
	db   *sql.DB
	refs []string
}

// OpenSQLite opens a dataset database for serving.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sqlite.OpenReadOnly(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}

	rows, err := db.Query(`SELECT ref FROM verses`)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "listing verses")
	}
	defer rows.Close()

	var refs []string
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			db.Close()
			return nil, errors.Wrap(err, "scanning verse ref")
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "listing verses")
	}
	sort.Strings(refs)

	return &SQLiteStore{db: db, refs: refs}, nil
}

// Verse returns the enriched record for a canonical reference.
func (s *SQLiteStore) Verse(ref string) (*VerseRecord, error) {
	var verse Verse
	err := s.db.QueryRow(`SELECT text FROM verses WHERE ref = ?`, ref).Scan(&verse.Text)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound("verse", ref)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "querying verse %s", ref)
	}

	rows, err := s.db.Query(`SELECT greek, translit, gloss, strongs, strong_def, rmac, rmac_def
		FROM tokens WHERE ref = ? ORDER BY seq`, ref)
	if err != nil {
		return nil, errors.Wrapf(err, "querying tokens of %s", ref)
	}
	defer rows.Close()

	for rows.Next() {
		var tok Token
		if err := rows.Scan(&tok.Greek, &tok.Translit, &tok.Gloss,
			&tok.Strongs, &tok.StrongDef, &tok.RMAC, &tok.RMACDef); err != nil {
			return nil, errors.Wrapf(err, "scanning token of %s", ref)
		}
		verse.Tokens = append(verse.Tokens, tok)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "querying tokens of %s", ref)
	}

	return enrichVerse(ref, &verse), nil
}

// LexiconEntry returns the definition for a normalized Strong's number.
func (s *SQLiteStore) LexiconEntry(number string) (string, error) {
	var def string
	err := s.db.QueryRow(`SELECT definition FROM lexicon WHERE number = ?`, number).Scan(&def)
	if err == sql.ErrNoRows {
		return "", errors.NewNotFound("lexicon entry", number)
	}
	if err != nil {
		return "", errors.Wrapf(err, "querying lexicon entry %s", number)
	}
	return def, nil
}

// Refs returns all canonical references in the store, sorted.
func (s *SQLiteStore) Refs() []string {
	return s.refs
}

// Counts returns the number of verses and lexicon entries.
func (s *SQLiteStore) Counts() (int, int) {
	var lexicon int
	// Count errors degrade to zero; the health endpoint tolerates it.
	_ = s.db.QueryRow(`SELECT COUNT(*) FROM lexicon`).Scan(&lexicon)
	return len(s.refs), lexicon
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
