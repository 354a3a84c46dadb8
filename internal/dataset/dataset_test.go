package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ulikunitz/xz"

	kerrors "github.com/FocuswithJustin/Koine/core/errors"
)

func sampleStore(t *testing.T) *JSONStore {
	t.Helper()
	store, err := SampleStore()
	if err != nil {
		t.Fatalf("SampleStore: %v", err)
	}
	return store
}

func TestSampleStoreVerseLookup(t *testing.T) {
	store := sampleStore(t)

	rec, err := store.Verse("John.1.1")
	if err != nil {
		t.Fatalf("Verse(John.1.1): %v", err)
	}
	if rec.Reference != "John.1.1" {
		t.Errorf("Reference = %q", rec.Reference)
	}
	if len(rec.Tokens) != 17 {
		t.Fatalf("token count = %d, want 17", len(rec.Tokens))
	}

	// Third token is the imperfect of eimi; its morphology must be decoded.
	en := rec.Tokens[2]
	if en.Greek != "ἦν" || en.RMAC != "V-IAI-3S" {
		t.Fatalf("unexpected third token: %+v", en.Token)
	}
	if en.Morphology == nil {
		t.Fatal("third token has no morphology")
	}
	if en.Morphology.Tense != "Imperfect" || en.Morphology.Mood != "Indicative" {
		t.Errorf("morphology = %+v", en.Morphology)
	}
}

func TestSampleStoreDeponentToken(t *testing.T) {
	store := sampleStore(t)

	rec, err := store.Verse("1Cor.13.4")
	if err != nil {
		t.Fatalf("Verse(1Cor.13.4): %v", err)
	}
	chresteuetai := rec.Tokens[3]
	if chresteuetai.Translit != "chrēsteuetai" {
		t.Fatalf("unexpected fourth token: %+v", chresteuetai.Token)
	}
	m := chresteuetai.Morphology
	if m == nil {
		t.Fatal("deponent token has no morphology")
	}
	if m.Voice != "MiddleOrPassiveDeponent" {
		t.Errorf("Voice = %q", m.Voice)
	}
	found := false
	for _, f := range m.Flags {
		if f == "Deponent" {
			found = true
		}
	}
	if !found {
		t.Errorf("Flags = %v, want Deponent", m.Flags)
	}
}

func TestStoreVerseNotFound(t *testing.T) {
	store := sampleStore(t)
	if _, err := store.Verse("Rev.22.21"); !errors.Is(err, kerrors.ErrNotFound) {
		t.Errorf("Verse(Rev.22.21) = %v, want ErrNotFound", err)
	}
}

func TestStoreLexiconLookup(t *testing.T) {
	store := sampleStore(t)

	def, err := store.LexiconEntry("G26")
	if err != nil {
		t.Fatalf("LexiconEntry(G26): %v", err)
	}
	if !strings.Contains(def, "love") {
		t.Errorf("definition = %q", def)
	}

	if _, err := store.LexiconEntry("G9999"); !errors.Is(err, kerrors.ErrNotFound) {
		t.Errorf("LexiconEntry(G9999) = %v, want ErrNotFound", err)
	}
}

func TestStoreRefsSorted(t *testing.T) {
	store := sampleStore(t)
	refs := store.Refs()
	if len(refs) != 3 {
		t.Fatalf("refs = %v", refs)
	}
	for i := 1; i < len(refs); i++ {
		if refs[i-1] >= refs[i] {
			t.Errorf("refs not sorted: %v", refs)
		}
	}
}

func TestUnparseableCodeLeavesTokenServed(t *testing.T) {
	verses := map[string]*Verse{
		"John.1.1": {
			Text: "test",
			Tokens: []Token{
				{Greek: "α", RMAC: "N-NSM"},
				{Greek: "β", RMAC: "???"},
			},
		},
	}
	store := NewJSONStore(verses, nil)
	rec, err := store.Verse("John.1.1")
	if err != nil {
		t.Fatalf("Verse: %v", err)
	}
	if rec.Tokens[0].Morphology == nil {
		t.Error("valid code lost its morphology")
	}
	if rec.Tokens[1].Morphology != nil {
		t.Error("invalid code produced morphology")
	}
	if len(rec.Tokens) != 2 {
		t.Error("malformed code dropped a token")
	}
}

func TestSyncDefinitions(t *testing.T) {
	verses, err := SampleVerses()
	if err != nil {
		t.Fatal(err)
	}
	lexicon, err := SampleLexicon()
	if err != nil {
		t.Fatal(err)
	}

	// Matt.1.1 tokens ship without strong_def; everything else already
	// matches the lexicon.
	report := SyncDefinitions(verses, lexicon)
	if report.Updated != 8 {
		t.Errorf("Updated = %d, want 8", report.Updated)
	}
	if report.NotFound != 0 {
		t.Errorf("NotFound = %d, want 0", report.NotFound)
	}
	if got := verses["Matt.1.1"].Tokens[0].StrongDef; !strings.Contains(got, "book") {
		t.Errorf("Matt.1.1 token 0 strong_def = %q", got)
	}

	// Re-running is a no-op.
	again := SyncDefinitions(verses, lexicon)
	if again.Updated != 0 {
		t.Errorf("second sync Updated = %d, want 0", again.Updated)
	}
}

func TestSyncDefinitionsMissing(t *testing.T) {
	verses := map[string]*Verse{
		"John.1.1": {Tokens: []Token{
			{Greek: "α", Strongs: "G9999"},
			{Greek: "β", Strongs: "G9999"},
			{Greek: "γ"}, // no Strong's number: skipped
		}},
	}
	report := SyncDefinitions(verses, map[string]string{})
	if report.NotFound != 2 {
		t.Errorf("NotFound = %d, want 2", report.NotFound)
	}
	if !reflect.DeepEqual(report.Missing, []string{"G9999"}) {
		t.Errorf("Missing = %v, want [G9999]", report.Missing)
	}
}

func TestLoadNormalizesKeys(t *testing.T) {
	dir := t.TempDir()

	versesPath := filepath.Join(dir, "verses.json")
	if err := os.WriteFile(versesPath, []byte(
		`{"John.1.1": {"text": "t", "tokens": [{"greek": "α", "strongs": "g0026", "rmac": "N-NSF"}]}}`), 0644); err != nil {
		t.Fatal(err)
	}
	lexiconPath := filepath.Join(dir, "strongs.json")
	if err := os.WriteFile(lexiconPath, []byte(`{"G0026": "agapē: love"}`), 0644); err != nil {
		t.Fatal(err)
	}

	store, err := Open(versesPath, lexiconPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	rec, err := store.Verse("John.1.1")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Tokens[0].Strongs != "G26" {
		t.Errorf("token strongs = %q, want G26", rec.Tokens[0].Strongs)
	}
	if _, err := store.LexiconEntry("G26"); err != nil {
		t.Errorf("LexiconEntry(G26): %v", err)
	}
}

func TestReadFileXZ(t *testing.T) {
	dir := t.TempDir()
	payload := []byte(`{"G26": "agapē: love"}`)

	path := filepath.Join(dir, "strongs.json.xz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w, err := xz.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write(payload); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("ReadFile = %q, want %q", got, payload)
	}

	lexicon, err := LoadLexicon(path)
	if err != nil {
		t.Fatalf("LoadLexicon: %v", err)
	}
	if lexicon["G26"] != "agapē: love" {
		t.Errorf("lexicon = %v", lexicon)
	}
}

func TestManifestVerify(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "verses.json")
	if err := os.WriteFile(path, []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := BuildManifest(dir, []string{"verses.json"})
	if err != nil {
		t.Fatalf("BuildManifest: %v", err)
	}
	if err := WriteManifest(dir, m); err != nil {
		t.Fatalf("WriteManifest: %v", err)
	}
	if err := VerifyManifest(dir); err != nil {
		t.Fatalf("VerifyManifest: %v", err)
	}

	// A flipped byte must fail verification.
	if err := os.WriteFile(path, []byte(`{ }`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := VerifyManifest(dir); err == nil {
		t.Error("VerifyManifest succeeded on modified file")
	}
}

func TestImportLexiconXML(t *testing.T) {
	xmlData := `<?xml version="1.0"?>
<lexicon>
  <entry strongs="G0026">agapē: love, goodwill</entry>
  <entry n="G3056">logos: <i>word</i>, speech</entry>
  <entry>orphan entry without a number</entry>
  <entry strongs="G0000"></entry>
</lexicon>`

	lexicon, err := ImportLexiconXML(strings.NewReader(xmlData))
	if err != nil {
		t.Fatalf("ImportLexiconXML: %v", err)
	}
	if len(lexicon) != 2 {
		t.Fatalf("lexicon = %v, want 2 entries", lexicon)
	}
	if lexicon["G26"] != "agapē: love, goodwill" {
		t.Errorf("G26 = %q", lexicon["G26"])
	}
	if lexicon["G3056"] != "logos: word , speech" && lexicon["G3056"] != "logos: word, speech" {
		t.Errorf("G3056 = %q", lexicon["G3056"])
	}

	if _, err := ImportLexiconXML(strings.NewReader("<lexicon></lexicon>")); err == nil {
		t.Error("expected error for document without entries")
	}
}
