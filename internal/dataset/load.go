package dataset

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/Koine/core/errors"
)

// ReadFile reads a dataset file, transparently decompressing files with
// an .xz suffix.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}
	if !strings.HasSuffix(path, ".xz") {
		return data, nil
	}

	r, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.NewIO("decompress", path, err)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewIO("decompress", path, err)
	}
	return out, nil
}

// LoadVerses loads a verses dataset keyed by canonical reference.
// Lexicon keys referenced by the tokens are normalized on load.
func LoadVerses(path string) (map[string]*Verse, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	verses := make(map[string]*Verse)
	if err := json.Unmarshal(data, &verses); err != nil {
		return nil, errors.NewParse("JSON", path, err.Error())
	}
	for _, v := range verses {
		for i := range v.Tokens {
			if v.Tokens[i].Strongs != "" {
				v.Tokens[i].Strongs = normalizeLexiconKey(v.Tokens[i].Strongs)
			}
		}
	}
	return verses, nil
}

// LoadLexicon loads a Strong's lexicon dataset. Keys are normalized so
// zero-padded source files ("G0025") serve lookups by canonical number.
func LoadLexicon(path string) (map[string]string, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	raw := make(map[string]string)
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.NewParse("JSON", path, err.Error())
	}

	lexicon := make(map[string]string, len(raw))
	for key, def := range raw {
		lexicon[normalizeLexiconKey(key)] = def
	}
	return lexicon, nil
}

// WriteVerses writes a verses dataset as indented JSON, the same layout
// the upstream data pipeline produces.
func WriteVerses(path string, verses map[string]*Verse) error {
	data, err := json.MarshalIndent(verses, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding verses")
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.NewIO("write", path, err)
	}
	return nil
}

// Open loads the JSON datasets and returns a ready store. An empty path
// yields an empty dataset, so a store can serve verses or lexicon alone.
func Open(versesPath, lexiconPath string) (*JSONStore, error) {
	var (
		verses  map[string]*Verse
		lexicon map[string]string
		err     error
	)
	if versesPath != "" {
		if verses, err = LoadVerses(versesPath); err != nil {
			return nil, err
		}
	}
	if lexiconPath != "" {
		if lexicon, err = LoadLexicon(lexiconPath); err != nil {
			return nil, err
		}
	}
	return NewJSONStore(verses, lexicon), nil
}
