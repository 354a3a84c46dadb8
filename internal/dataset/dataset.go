// Package dataset loads and serves the static verse-token and Strong's
// lexicon datasets. Datasets are read from JSON files (optionally
// xz-compressed) or from a SQLite database built from them, and are
// treated as read-only after load.
package dataset

import (
	"sort"

	"github.com/FocuswithJustin/Koine/core/errors"
	"github.com/FocuswithJustin/Koine/core/morph"
	"github.com/FocuswithJustin/Koine/core/strongs"
)

// Token is one word of a verse as stored in the dataset.
type Token struct {
	Greek     string `json:"greek"`
	Translit  string `json:"translit"`
	Gloss     string `json:"gloss"`
	Strongs   string `json:"strongs"`
	StrongDef string `json:"strong_def,omitempty"`
	RMAC      string `json:"rmac"`
	RMACDef   string `json:"rmac_def,omitempty"`
}

// Verse is a verse entry as stored in the dataset, keyed externally by
// its canonical reference.
type Verse struct {
	Text   string  `json:"text"`
	Tokens []Token `json:"tokens"`
}

// TokenRecord is a dataset token enriched with its decoded morphology.
// Morphology is nil when the token's RMAC code did not parse; the token
// is still served.
type TokenRecord struct {
	Token
	Morphology *morph.Morphology `json:"morphology,omitempty"`
}

// VerseRecord is the lookup result for one verse.
type VerseRecord struct {
	Reference string        `json:"reference"`
	Text      string        `json:"text"`
	Tokens    []TokenRecord `json:"tokens"`
}

// Store serves read-only verse and lexicon lookups. Implementations are
// safe for concurrent use: nothing mutates after construction.
type Store interface {
	// Verse returns the enriched record for a canonical reference.
	Verse(ref string) (*VerseRecord, error)
	// LexiconEntry returns the definition for a normalized Strong's number.
	LexiconEntry(number string) (string, error)
	// Refs returns all canonical references in the store, sorted.
	Refs() []string
	// Counts returns the number of verses and lexicon entries.
	Counts() (verses, lexicon int)
	// Close releases any underlying resources.
	Close() error
}

// enrichVerse attaches decoded morphology to each token. A token whose
// code fails to parse keeps a nil Morphology; one malformed code never
// aborts the rest of the verse.
func enrichVerse(ref string, v *Verse) *VerseRecord {
	rec := &VerseRecord{
		Reference: ref,
		Text:      v.Text,
		Tokens:    make([]TokenRecord, 0, len(v.Tokens)),
	}
	for _, tok := range v.Tokens {
		tr := TokenRecord{Token: tok}
		if m, ok := morph.TryParse(tok.RMAC); ok {
			tr.Morphology = &m
		}
		rec.Tokens = append(rec.Tokens, tr)
	}
	return rec
}

// JSONStore serves lookups from in-memory maps loaded from the JSON
// datasets.
type JSONStore struct {
	verses  map[string]*Verse
	lexicon map[string]string
	refs    []string
}

// NewJSONStore builds a store over the given maps. The maps are
// retained, not copied; callers must not mutate them afterwards.
func NewJSONStore(verses map[string]*Verse, lexicon map[string]string) *JSONStore {
	refs := make([]string, 0, len(verses))
	for ref := range verses {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return &JSONStore{verses: verses, lexicon: lexicon, refs: refs}
}

// Verse returns the enriched record for a canonical reference.
func (s *JSONStore) Verse(ref string) (*VerseRecord, error) {
	v, ok := s.verses[ref]
	if !ok {
		return nil, errors.NewNotFound("verse", ref)
	}
	return enrichVerse(ref, v), nil
}

// LexiconEntry returns the definition for a normalized Strong's number.
func (s *JSONStore) LexiconEntry(number string) (string, error) {
	def, ok := s.lexicon[number]
	if !ok {
		return "", errors.NewNotFound("lexicon entry", number)
	}
	return def, nil
}

// Refs returns all canonical references in the store, sorted.
func (s *JSONStore) Refs() []string {
	return s.refs
}

// Counts returns the number of verses and lexicon entries.
func (s *JSONStore) Counts() (int, int) {
	return len(s.verses), len(s.lexicon)
}

// Close is a no-op for the in-memory store.
func (s *JSONStore) Close() error {
	return nil
}

// normalizeLexiconKey canonicalizes a Strong's key where possible so
// that datasets using zero-padded forms ("G0025") still join.
func normalizeLexiconKey(key string) string {
	if n, ok := strongs.TryNormalize(key); ok {
		return n
	}
	return key
}
