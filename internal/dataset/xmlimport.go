package dataset

import (
	"io"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/FocuswithJustin/Koine/core/errors"
)

// ImportLexiconXML extracts a Strong's lexicon from an XML dictionary
// file. Entries are located with an XPath query over //entry elements;
// the Strong's number is taken from the strongs, n, or id attribute,
// whichever is present first, and normalized. Entry text is collapsed
// to single-spaced plain text. Entries without a usable number or with
// empty text are skipped.
func ImportLexiconXML(r io.Reader) (map[string]string, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, errors.NewParse("XML", "", err.Error())
	}

	entries := xmlquery.Find(doc, "//entry")
	if len(entries) == 0 {
		return nil, errors.NewParse("XML", "", "no entry elements found")
	}

	lexicon := make(map[string]string, len(entries))
	for _, entry := range entries {
		number := entryNumber(entry)
		if number == "" {
			continue
		}
		def := strings.Join(strings.Fields(entry.InnerText()), " ")
		if def == "" {
			continue
		}
		lexicon[number] = def
	}
	return lexicon, nil
}

func entryNumber(entry *xmlquery.Node) string {
	for _, attr := range []string{"strongs", "n", "id"} {
		if raw := entry.SelectAttr(attr); raw != "" {
			return normalizeLexiconKey(raw)
		}
	}
	return ""
}
