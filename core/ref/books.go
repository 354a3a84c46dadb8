package ref

// Canonical abbreviations for the 27 New Testament books, and the alias
// table mapping accepted spellings to them. Alias keys are lowercase and
// already carry the canonicalized ordinal digit ("1cor", not "icor" or
// "firstcor"): Normalize folds the ordinal prefix into the key before
// the lookup.
var bookAliases = map[string]string{
	"matthew": "Matt", "matt": "Matt", "mat": "Matt", "mt": "Matt",
	"mark": "Mark", "mrk": "Mark", "mar": "Mark", "mk": "Mark",
	"luke": "Luke", "luk": "Luke", "lk": "Luke",
	"john": "John", "jhn": "John", "joh": "John", "jn": "John",
	"acts": "Acts", "act": "Acts", "ac": "Acts",
	"romans": "Rom", "rom": "Rom", "ro": "Rom",
	"1corinthians": "1Cor", "1cor": "1Cor", "1co": "1Cor",
	"2corinthians": "2Cor", "2cor": "2Cor", "2co": "2Cor",
	"galatians": "Gal", "gal": "Gal", "ga": "Gal",
	"ephesians": "Eph", "eph": "Eph",
	"philippians": "Phil", "phil": "Phil", "php": "Phil",
	"colossians": "Col", "col": "Col",
	"1thessalonians": "1Thess", "1thess": "1Thess", "1thes": "1Thess", "1th": "1Thess",
	"2thessalonians": "2Thess", "2thess": "2Thess", "2thes": "2Thess", "2th": "2Thess",
	"1timothy": "1Tim", "1tim": "1Tim", "1ti": "1Tim",
	"2timothy": "2Tim", "2tim": "2Tim", "2ti": "2Tim",
	"titus": "Titus", "tit": "Titus",
	"philemon": "Phlm", "phlm": "Phlm", "phm": "Phlm",
	"hebrews": "Heb", "heb": "Heb",
	"james": "Jas", "jas": "Jas", "jam": "Jas",
	"1peter": "1Pet", "1pet": "1Pet", "1pe": "1Pet",
	"2peter": "2Pet", "2pet": "2Pet", "2pe": "2Pet",
	"1john": "1John", "1jhn": "1John", "1jn": "1John",
	"2john": "2John", "2jhn": "2John", "2jn": "2John",
	"3john": "3John", "3jhn": "3John", "3jn": "3John",
	"jude": "Jude", "jud": "Jude",
	"revelation": "Rev", "rev": "Rev", "re": "Rev", "apocalypse": "Rev",
}

// ordinalDigits canonicalizes numeric, Roman, and spelled-out book
// prefixes to a single digit.
var ordinalDigits = map[string]string{
	"1": "1", "i": "1", "first": "1",
	"2": "2", "ii": "2", "second": "2",
	"3": "3", "iii": "3", "third": "3",
}

// Books returns the canonical abbreviations of all supported books in
// canonical (New Testament) order.
func Books() []string {
	return []string{
		"Matt", "Mark", "Luke", "John", "Acts",
		"Rom", "1Cor", "2Cor", "Gal", "Eph",
		"Phil", "Col", "1Thess", "2Thess", "1Tim",
		"2Tim", "Titus", "Phlm", "Heb", "Jas",
		"1Pet", "2Pet", "1John", "2John", "3John",
		"Jude", "Rev",
	}
}
