package dataset

import "sort"

// SyncReport summarizes a definition sync run.
type SyncReport struct {
	Updated  int      `json:"updated"`
	NotFound int      `json:"not_found"`
	Missing  []string `json:"missing,omitempty"` // unique Strong's numbers absent from the lexicon, sorted
}

// SyncDefinitions updates each verse token's StrongDef field from the
// lexicon, keyed by the token's Strong's number. Tokens without a
// Strong's number are skipped. Tokens whose number has no lexicon entry
// are counted and collected but left untouched; the sync never fails
// partway. The verses map is modified in place.
func SyncDefinitions(verses map[string]*Verse, lexicon map[string]string) SyncReport {
	var report SyncReport
	missing := make(map[string]bool)

	for _, verse := range verses {
		for i := range verse.Tokens {
			tok := &verse.Tokens[i]
			if tok.Strongs == "" {
				continue
			}
			key := normalizeLexiconKey(tok.Strongs)
			def, ok := lexicon[key]
			if !ok {
				report.NotFound++
				missing[key] = true
				continue
			}
			if tok.StrongDef != def {
				tok.StrongDef = def
				report.Updated++
			}
		}
	}

	report.Missing = make([]string, 0, len(missing))
	for key := range missing {
		report.Missing = append(report.Missing, key)
	}
	sort.Strings(report.Missing)
	return report
}
