package dataset

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/Koine/core/errors"
)

// ManifestName is the fixed file name of the dataset manifest.
const ManifestName = "manifest.json"

// Manifest records the BLAKE3 hash of every dataset file in a
// directory, so deployments can verify the data they ship.
type Manifest struct {
	Files map[string]string `json:"files"` // file name -> BLAKE3 hex
}

// HashFile returns the BLAKE3 hash of a file as a hex string.
func HashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.NewIO("read", path, err)
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// BuildManifest hashes the named files in dir and returns a manifest.
func BuildManifest(dir string, names []string) (*Manifest, error) {
	m := &Manifest{Files: make(map[string]string, len(names))}
	for _, name := range names {
		hash, err := HashFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		m.Files[name] = hash
	}
	return m, nil
}

// WriteManifest writes the manifest to dir/manifest.json.
func WriteManifest(dir string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding manifest")
	}
	data = append(data, '\n')
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.NewIO("write", path, err)
	}
	return nil
}

// VerifyManifest recomputes the hash of every file listed in
// dir/manifest.json and reports the first mismatch.
func VerifyManifest(dir string) error {
	path := filepath.Join(dir, ManifestName)
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.NewIO("read", path, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return errors.NewParse("JSON", path, err.Error())
	}

	for name, want := range m.Files {
		got, err := HashFile(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		if got != want {
			return errors.Wrapf(errors.ErrInvalidInput,
				"dataset %s hash mismatch (have %s, manifest %s)", name, got, want)
		}
	}
	return nil
}

// String renders a short summary for CLI output.
func (m *Manifest) String() string {
	return fmt.Sprintf("manifest covering %d files", len(m.Files))
}
