// Command koine is the CLI tool for the Koine Greek New Testament toolkit.
// It provides verse and lexicon lookups, morphological code parsing,
// reference and Strong's number normalization, and dataset maintenance.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/Koine/core/morph"
	verseref "github.com/FocuswithJustin/Koine/core/ref"
	"github.com/FocuswithJustin/Koine/core/strongs"
	"github.com/FocuswithJustin/Koine/internal/api"
	"github.com/FocuswithJustin/Koine/internal/dataset"
	"github.com/FocuswithJustin/Koine/internal/logging"
)

const version = "0.1.0"

// CLI defines the command-line interface for koine.
var CLI struct {
	// Global flags
	Verbose bool `help:"Enable debug logging" short:"v"`

	// Command groups (noun-first organization)
	Lookup    LookupGroup  `cmd:"" help:"Verse and lexicon lookups"`
	Parse     ParseCmd     `cmd:"" help:"Parse a morphological code"`
	Normalize NormGroup    `cmd:"" help:"Normalize references and Strong's numbers"`
	Dataset   DatasetGroup `cmd:"" help:"Dataset maintenance (build, sync, verify, import)"`
	API       APICmd       `cmd:"" help:"Start REST API server"`
	Version   VersionCmd   `cmd:"" help:"Print version information"`
}

// LookupGroup contains dataset lookup operations.
type LookupGroup struct {
	Verse   LookupVerseCmd   `cmd:"" help:"Look up a verse with decoded token morphology"`
	Strongs LookupStrongsCmd `cmd:"" help:"Look up a Strong's lexicon definition"`
}

// NormGroup contains normalization operations.
type NormGroup struct {
	Ref     NormRefCmd     `cmd:"" help:"Normalize a verse reference to Book.Chapter.Verse"`
	Strongs NormStrongsCmd `cmd:"" help:"Normalize a Strong's number to canonical form"`
}

// DatasetGroup contains dataset maintenance operations.
type DatasetGroup struct {
	Build         DatasetBuildCmd    `cmd:"" help:"Build a SQLite database from JSON dataset files"`
	Sync          DatasetSyncCmd     `cmd:"" help:"Fill in missing Strong's definitions on verse tokens"`
	Verify        DatasetVerifyCmd   `cmd:"" help:"Verify dataset files against their manifest"`
	ImportLexicon ImportLexiconCmd   `cmd:"" name:"import-lexicon" help:"Import a lexicon from OSIS-style XML"`
	Manifest      DatasetManifestCmd `cmd:"" help:"Write a manifest with BLAKE3 hashes of dataset files"`
}

// storeFlags selects the dataset backing a lookup command. A SQLite
// database wins over JSON paths; with neither, the embedded sample
// corpus is used.
type storeFlags struct {
	Verses  string `help:"Path to verses.json (or .json.xz)" type:"path"`
	Lexicon string `help:"Path to strongs.json (or .json.xz)" type:"path"`
	DB      string `help:"Path to a SQLite dataset database" type:"path"`
}

func (f *storeFlags) open() (dataset.Store, error) {
	if f.DB != "" {
		return dataset.OpenSQLite(f.DB)
	}
	if f.Verses != "" || f.Lexicon != "" {
		return dataset.Open(f.Verses, f.Lexicon)
	}
	return dataset.SampleStore()
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// LookupVerseCmd looks up a verse by reference.
type LookupVerseCmd struct {
	storeFlags
	Ref string `arg:"" help:"Verse reference in any accepted form (e.g. '1 Cor 13:4')"`
}

func (c *LookupVerseCmd) Run() error {
	canonical, err := verseref.Normalize(c.Ref)
	if err != nil {
		return fmt.Errorf("invalid reference %q: %w", c.Ref, err)
	}

	store, err := c.open()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Verse(canonical)
	if err != nil {
		return err
	}
	return printJSON(rec)
}

// LookupStrongsCmd looks up a lexicon definition by Strong's number.
type LookupStrongsCmd struct {
	storeFlags
	Number string `arg:"" help:"Strong's number in any accepted form (e.g. 'g0026')"`
}

func (c *LookupStrongsCmd) Run() error {
	number, err := strongs.Normalize(c.Number)
	if err != nil {
		return fmt.Errorf("invalid Strong's number %q: %w", c.Number, err)
	}

	store, err := c.open()
	if err != nil {
		return err
	}
	defer store.Close()

	def, err := store.LexiconEntry(number)
	if err != nil {
		return err
	}
	return printJSON(map[string]string{
		"number":     number,
		"definition": def,
	})
}

// ParseCmd parses morphological codes and prints the decoded fields.
type ParseCmd struct {
	Codes []string `arg:"" help:"Morphological codes (e.g. 'V-2AAI-3S', 'N-GSM-P')"`
}

func (c *ParseCmd) Run() error {
	for _, code := range c.Codes {
		m, err := morph.Parse(code)
		if err != nil {
			return err
		}
		if err := printJSON(m); err != nil {
			return err
		}
	}
	return nil
}

// NormRefCmd normalizes verse references.
type NormRefCmd struct {
	Inputs []string `arg:"" help:"References to normalize (e.g. 'II Corinthians 5-17')"`
}

func (c *NormRefCmd) Run() error {
	for _, input := range c.Inputs {
		normalized, err := verseref.Normalize(input)
		if err != nil {
			return err
		}
		fmt.Println(normalized)
	}
	return nil
}

// NormStrongsCmd normalizes Strong's numbers.
type NormStrongsCmd struct {
	Inputs []string `arg:"" help:"Strong's numbers to normalize (e.g. 'g 0025')"`
}

func (c *NormStrongsCmd) Run() error {
	for _, input := range c.Inputs {
		normalized, err := strongs.Normalize(input)
		if err != nil {
			return err
		}
		fmt.Println(normalized)
	}
	return nil
}

// DatasetBuildCmd builds a SQLite database from the JSON dataset files.
type DatasetBuildCmd struct {
	Verses  string `required:"" help:"Path to verses.json (or .json.xz)" type:"path"`
	Lexicon string `required:"" help:"Path to strongs.json (or .json.xz)" type:"path"`
	Out     string `required:"" help:"Output database path" type:"path"`
}

func (c *DatasetBuildCmd) Run() error {
	verses, err := dataset.LoadVerses(c.Verses)
	if err != nil {
		return fmt.Errorf("load verses: %w", err)
	}
	lexicon, err := dataset.LoadLexicon(c.Lexicon)
	if err != nil {
		return fmt.Errorf("load lexicon: %w", err)
	}

	if err := dataset.BuildSQLite(c.Out, verses, lexicon); err != nil {
		return fmt.Errorf("build database: %w", err)
	}

	fmt.Printf("Built: %s\n", c.Out)
	fmt.Printf("  Verses: %d\n", len(verses))
	fmt.Printf("  Lexicon entries: %d\n", len(lexicon))
	return nil
}

// DatasetSyncCmd fills in missing Strong's definitions on verse tokens.
type DatasetSyncCmd struct {
	Verses  string `required:"" help:"Path to verses.json" type:"path"`
	Lexicon string `required:"" help:"Path to strongs.json (or .json.xz)" type:"path"`
	DryRun  bool   `help:"Report what would change without writing"`
}

func (c *DatasetSyncCmd) Run() error {
	verses, err := dataset.LoadVerses(c.Verses)
	if err != nil {
		return fmt.Errorf("load verses: %w", err)
	}
	lexicon, err := dataset.LoadLexicon(c.Lexicon)
	if err != nil {
		return fmt.Errorf("load lexicon: %w", err)
	}

	report := dataset.SyncDefinitions(verses, lexicon)
	fmt.Printf("Updated: %d\n", report.Updated)
	fmt.Printf("Not found: %d\n", report.NotFound)
	for _, number := range report.Missing {
		fmt.Printf("  missing from lexicon: %s\n", number)
	}

	if c.DryRun {
		fmt.Println("Dry run, nothing written.")
		return nil
	}
	if err := dataset.WriteVerses(c.Verses, verses); err != nil {
		return fmt.Errorf("write verses: %w", err)
	}
	fmt.Printf("Wrote: %s\n", c.Verses)
	return nil
}

// DatasetVerifyCmd verifies dataset files against their manifest.
type DatasetVerifyCmd struct {
	Dir string `arg:"" help:"Dataset directory containing manifest.json" type:"existingdir"`
}

func (c *DatasetVerifyCmd) Run() error {
	if err := dataset.VerifyManifest(c.Dir); err != nil {
		return err
	}
	fmt.Println("OK")
	return nil
}

// DatasetManifestCmd writes a manifest with BLAKE3 hashes of dataset files.
type DatasetManifestCmd struct {
	Dir   string   `arg:"" help:"Dataset directory" type:"existingdir"`
	Files []string `arg:"" help:"File names to include (relative to the directory)"`
}

func (c *DatasetManifestCmd) Run() error {
	m, err := dataset.BuildManifest(c.Dir, c.Files)
	if err != nil {
		return err
	}
	if err := dataset.WriteManifest(c.Dir, m); err != nil {
		return err
	}
	fmt.Print(m.String())
	return nil
}

// ImportLexiconCmd imports a lexicon from OSIS-style XML.
type ImportLexiconCmd struct {
	XML string `arg:"" help:"Path to the XML lexicon file" type:"existingfile"`
	Out string `required:"" help:"Output strongs.json path" type:"path"`
}

func (c *ImportLexiconCmd) Run() error {
	f, err := os.Open(c.XML)
	if err != nil {
		return err
	}
	defer f.Close()

	lexicon, err := dataset.ImportLexiconXML(f)
	if err != nil {
		return fmt.Errorf("import lexicon: %w", err)
	}

	data, err := json.MarshalIndent(lexicon, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.Out, append(data, '\n'), 0644); err != nil {
		return err
	}

	fmt.Printf("Imported %d entries to %s\n", len(lexicon), c.Out)
	return nil
}

// APICmd starts the REST API server.
type APICmd struct {
	Port           int      `help:"HTTP server port" default:"8081"`
	Verses         string   `help:"Path to verses.json (or .json.xz)" type:"path"`
	Lexicon        string   `help:"Path to strongs.json (or .json.xz)" type:"path"`
	DB             string   `help:"Path to a SQLite dataset database" type:"path"`
	RateLimit      int      `help:"Requests per minute per IP (0 = disabled)" default:"0"`
	RateLimitBurst int      `help:"Rate limit burst size" default:"10"`
	AuthEnabled    bool     `help:"Require X-API-Key authentication"`
	APIKey         string   `help:"API key for authentication" env:"KOINE_API_KEY"`
	TLSCert        string   `help:"Path to TLS certificate file" type:"path"`
	TLSKey         string   `help:"Path to TLS private key file" type:"path"`
	AllowedOrigins []string `help:"CORS allowed origins (empty = allow all)"`
}

func (c *APICmd) Run() error {
	cfg := api.Config{
		Port:              c.Port,
		VersesPath:        c.Verses,
		LexiconPath:       c.Lexicon,
		DatabasePath:      c.DB,
		RateLimitRequests: c.RateLimit,
		RateLimitBurst:    c.RateLimitBurst,
		Auth: api.AuthConfig{
			Enabled: c.AuthEnabled,
			APIKey:  c.APIKey,
		},
		TLS: api.TLSConfig{
			Enabled:  c.TLSCert != "" && c.TLSKey != "",
			CertFile: c.TLSCert,
			KeyFile:  c.TLSKey,
		},
		AllowedOrigins: c.AllowedOrigins,
	}
	return api.Start(cfg)
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("koine version %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("koine"),
		kong.Description("Koine - Greek New Testament lookup and morphology toolkit"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	if CLI.Verbose {
		logging.InitLogger(logging.LevelDebug, logging.FormatText)
	}
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
