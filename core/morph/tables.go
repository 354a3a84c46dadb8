package morph

// Lookup tables mapping Robinson code characters to grammatical category
// names. Built once at init, read-only afterwards.

// simplePOS covers the indeclinable types that carry no inflection at all.
// The key is the full segment before the first dash.
var simplePOS = map[string]string{
	"CONJ": "Conjunction",
	"INJ":  "Interjection",
	"ARAM": "Aramaic",
	"HEB":  "Hebrew",
	"PRT":  "Particle",
	"PREP": "Preposition",
}

// nominalPOS covers declinable parts of speech keyed by their single-letter
// code. Verbs (V) and personal pronouns (P) are dispatched separately
// because their modifier layouts differ.
var nominalPOS = map[string]string{
	"N": "Noun",
	"A": "Adjective",
	"T": "Article",
	"D": "DemonstrativePronoun",
	"R": "RelativePronoun",
	"I": "InterrogativePronoun",
	"X": "IndefinitePronoun",
	"K": "CorrelativePronoun",
	"Q": "CorrelativeOrInterrogativePronoun",
	"C": "ReciprocalPronoun",
	"S": "PossessivePronoun",
	"F": "ReflexivePronoun",
}

var caseNames = map[byte]string{
	'N': "Nominative",
	'G': "Genitive",
	'D': "Dative",
	'A': "Accusative",
	'V': "Vocative",
}

var numberNames = map[byte]string{
	'S': "Singular",
	'P': "Plural",
}

var genderNames = map[byte]string{
	'M': "Masculine",
	'F': "Feminine",
	'N': "Neuter",
}

var personNames = map[byte]string{
	'1': "First",
	'2': "Second",
	'3': "Third",
}

// tenseNames is keyed by one character, or two when the code uses the
// "2" prefix marking a second (irregular) tense form.
var tenseNames = map[string]string{
	"P":  "Present",
	"I":  "Imperfect",
	"F":  "Future",
	"A":  "Aorist",
	"X":  "Perfect",
	"Y":  "Pluperfect",
	"2P": "SecondPresent",
	"2F": "SecondFuture",
	"2A": "SecondAorist",
	"2X": "SecondPerfect",
	"2Y": "SecondPluperfect",
}

var voiceNames = map[byte]string{
	'A': "Active",
	'M': "Middle",
	'P': "Passive",
	'E': "MiddleOrPassive",
	'D': "Deponent",
	'O': "PassiveDeponent",
	'N': "MiddleOrPassiveDeponent",
}

// deponentVoices are the voice characters that additionally emit the
// "Deponent" flag alongside the Voice value itself.
var deponentVoices = map[byte]bool{
	'D': true,
	'O': true,
	'N': true,
}

var finiteMoods = map[byte]string{
	'I': "Indicative",
	'S': "Subjunctive",
	'O': "Optative",
	'M': "Imperative",
}

const (
	moodInfinitive = 'N'
	moodParticiple = 'P'
)

// flagNames maps dash-delimited suffix segments to secondary markers.
// The same table serves the simple-type, adverb, nominal, and pronoun
// paths; the verb path inserts "Deponent" through the voice character
// instead.
var flagNames = map[string]string{
	"P":   "ProperName",
	"T":   "Title",
	"C":   "Comparative",
	"S":   "Superlative",
	"I":   "Interrogative",
	"N":   "Negative",
	"K":   "Crasis",
	"ATT": "Attic",
	"ABB": "Abbreviated",
}
