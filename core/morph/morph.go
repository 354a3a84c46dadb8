// Package morph decodes Robinson's Morphological Analysis Codes (RMAC),
// the compact alphanumeric codes used to tag Greek New Testament words
// with their part of speech and inflectional features.
//
// A code such as "V-AAI-3S" (verb, aorist active indicative, third
// person singular) or "N-GSM-P" (noun, genitive singular masculine,
// proper name) is decoded into a structured Morphology value. Parsing
// is case-insensitive and never panics: a code that matches no known
// layout yields errors.ErrInvalidCode, so callers processing a whole
// verse can treat a bad code as "morphology unavailable" and keep going.
//
// All lookup tables are package-level constants built at init; Parse is
// a pure function and safe for concurrent use.
package morph

import (
	"strings"

	"github.com/FocuswithJustin/Koine/core/errors"
)

// Morphology is the decoded form of a single RMAC code. Fields that do
// not apply to the tagged part of speech are left empty: a conjunction
// has nothing but PartOfSpeech, a finite verb never carries Case or
// Gender, a participle never carries Person or Mood.
//
// Flags holds secondary markers ("Deponent", "ProperName", "Title",
// "Comparative", ...) in the order they were encountered. It is always
// non-nil, empty when no flags apply.
type Morphology struct {
	PartOfSpeech string   `json:"part_of_speech"`
	Tense        string   `json:"tense,omitempty"`
	Voice        string   `json:"voice,omitempty"`
	VerbForm     string   `json:"verb_form,omitempty"`
	Mood         string   `json:"mood,omitempty"`
	Case         string   `json:"case,omitempty"`
	Number       string   `json:"number,omitempty"`
	Gender       string   `json:"gender,omitempty"`
	Person       string   `json:"person,omitempty"`
	Flags        []string `json:"flags"`
}

// Parse decodes an RMAC code. Leading/trailing whitespace is ignored
// and matching is case-insensitive. Empty input or a code whose shape
// matches no recognized layout returns errors.ErrInvalidCode.
func Parse(code string) (Morphology, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if c == "" {
		return Morphology{}, errors.ErrInvalidCode
	}

	segs := strings.Split(c, "-")

	// Dispatch order matters: first match wins.
	if pos, ok := simplePOS[segs[0]]; ok {
		return withSuffixFlag(newMorphology(pos), segs[1:]), nil
	}
	if strings.HasPrefix(c, "ADV") {
		return withSuffixFlag(newMorphology("Adverb"), segs[1:]), nil
	}
	if strings.HasPrefix(c, "V-") {
		return parseVerb(segs)
	}
	if strings.HasPrefix(c, "P-") {
		return parsePersonalPronoun(segs)
	}
	return parseNominal(segs)
}

// TryParse is the non-failing variant of Parse. The boolean reports
// whether the code was recognized.
func TryParse(code string) (Morphology, bool) {
	m, err := Parse(code)
	return m, err == nil
}

// newMorphology builds the base record for a part of speech with an
// empty, non-nil flag list.
func newMorphology(pos string) Morphology {
	return Morphology{PartOfSpeech: pos, Flags: []string{}}
}

// withSuffixFlag appends the flag named by the first trailing segment,
// if any. Unrecognized suffix segments are dropped, not an error.
func withSuffixFlag(m Morphology, rest []string) Morphology {
	if len(rest) > 0 {
		if flag, ok := flagNames[rest[0]]; ok {
			m.Flags = append(m.Flags, flag)
		}
	}
	return m
}

// parseVerb decodes V-<modifiers>[-<modifiers2>]. The modifier group
// encodes tense (one character, or two when a leading "2" marks a
// second tense form), voice, and the mood/form indicator. The second
// group holds case/number/gender for participles and person/number for
// finite forms; infinitives consume nothing further.
func parseVerb(segs []string) (Morphology, error) {
	if len(segs) < 2 {
		return Morphology{}, errors.ErrInvalidCode
	}
	mods := segs[1]
	if len(mods) < 3 {
		return Morphology{}, errors.ErrInvalidCode
	}

	tenseKey := mods[:1]
	i := 1
	if mods[0] == '2' && len(mods) >= 4 {
		tenseKey = mods[:2]
		i = 2
	}
	voiceCh := mods[i]
	moodCh := mods[i+1]

	base := newMorphology("Verb")
	base.Tense = tenseNames[tenseKey]
	base.Voice = voiceNames[voiceCh]
	if deponentVoices[voiceCh] {
		base.Flags = append(base.Flags, "Deponent")
	}

	switch moodCh {
	case moodInfinitive:
		inf := base
		inf.VerbForm = "Infinitive"
		return inf, nil
	case moodParticiple:
		ptc := base
		ptc.VerbForm = "Participle"
		if len(segs) >= 3 {
			ptc = applyCaseNumberGender(ptc, segs[2])
		}
		return ptc, nil
	default:
		fin := base
		fin.VerbForm = "Finite"
		fin.Mood = finiteMoods[moodCh]
		if len(segs) >= 3 {
			fin = applyPersonNumber(fin, segs[2])
		}
		return fin, nil
	}
}

// parsePersonalPronoun decodes P-<modifiers>[-<flag>]. First and second
// person pronouns lead with their person digit and carry no gender;
// otherwise third person is implied and the layout is case, number,
// gender.
func parsePersonalPronoun(segs []string) (Morphology, error) {
	if len(segs) < 2 {
		return Morphology{}, errors.ErrInvalidCode
	}
	mods := segs[1]
	if len(mods) < 2 {
		return Morphology{}, errors.ErrInvalidCode
	}

	m := newMorphology("PersonalPronoun")
	if person, ok := personNames[mods[0]]; ok {
		m.Person = person
		m.Case = caseNames[mods[1]]
		if len(mods) >= 3 {
			m.Number = numberNames[mods[2]]
		}
	} else {
		m.Case = caseNames[mods[0]]
		if len(mods) >= 2 {
			m.Number = numberNames[mods[1]]
		}
		if len(mods) >= 3 {
			m.Gender = genderNames[mods[2]]
		}
	}
	return withSuffixFlag(m, segs[2:]), nil
}

// parseNominal decodes every remaining declinable layout:
// <pos>[-<case><number><gender>][-<flag>]. An unknown part-of-speech
// code is the one sub-field failure that rejects the whole code.
func parseNominal(segs []string) (Morphology, error) {
	pos, ok := nominalPOS[segs[0]]
	if !ok {
		return Morphology{}, errors.ErrInvalidCode
	}

	m := newMorphology(pos)
	if len(segs) >= 2 {
		m = applyCaseNumberGender(m, segs[1])
	}
	if len(segs) >= 3 {
		m = withSuffixFlag(m, segs[2:])
	}
	return m, nil
}

// applyCaseNumberGender decodes a fixed-position case/number/gender
// triplet. Each position is independently optional: a short modifier
// string leaves the trailing fields unset, and an unrecognized
// character leaves just that field unset.
func applyCaseNumberGender(m Morphology, mods string) Morphology {
	if len(mods) >= 1 {
		m.Case = caseNames[mods[0]]
	}
	if len(mods) >= 2 {
		m.Number = numberNames[mods[1]]
	}
	if len(mods) >= 3 {
		m.Gender = genderNames[mods[2]]
	}
	return m
}

// applyPersonNumber decodes the person/number pair of a finite verb.
func applyPersonNumber(m Morphology, mods string) Morphology {
	if len(mods) >= 1 {
		m.Person = personNames[mods[0]]
	}
	if len(mods) >= 2 {
		m.Number = numberNames[mods[1]]
	}
	return m
}
