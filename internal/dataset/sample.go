package dataset

import (
	"embed"
	"encoding/json"

	"github.com/FocuswithJustin/Koine/core/errors"
)

// A small embedded corpus used as the default dataset when no files are
// configured, and by tests.
//
//go:embed sample/verses.json sample/strongs.json
var sampleFS embed.FS

// SampleStore returns a store over the embedded sample corpus.
func SampleStore() (*JSONStore, error) {
	verses, err := SampleVerses()
	if err != nil {
		return nil, err
	}

	data, err := sampleFS.ReadFile("sample/strongs.json")
	if err != nil {
		return nil, errors.NewIO("read", "sample/strongs.json", err)
	}
	raw := make(map[string]string)
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.NewParse("JSON", "sample/strongs.json", err.Error())
	}
	lexicon := make(map[string]string, len(raw))
	for key, def := range raw {
		lexicon[normalizeLexiconKey(key)] = def
	}

	return NewJSONStore(verses, lexicon), nil
}

// SampleVerses returns the embedded verse dataset as a fresh map, safe
// for callers to mutate (the sync tests do).
func SampleVerses() (map[string]*Verse, error) {
	data, err := sampleFS.ReadFile("sample/verses.json")
	if err != nil {
		return nil, errors.NewIO("read", "sample/verses.json", err)
	}
	verses := make(map[string]*Verse)
	if err := json.Unmarshal(data, &verses); err != nil {
		return nil, errors.NewParse("JSON", "sample/verses.json", err.Error())
	}
	return verses, nil
}

// SampleLexicon returns the embedded lexicon as a fresh map.
func SampleLexicon() (map[string]string, error) {
	data, err := sampleFS.ReadFile("sample/strongs.json")
	if err != nil {
		return nil, errors.NewIO("read", "sample/strongs.json", err)
	}
	lexicon := make(map[string]string)
	if err := json.Unmarshal(data, &lexicon); err != nil {
		return nil, errors.NewParse("JSON", "sample/strongs.json", err.Error())
	}
	return lexicon, nil
}
