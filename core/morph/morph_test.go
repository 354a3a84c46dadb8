package morph

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	kerrors "github.com/FocuswithJustin/Koine/core/errors"
)

func TestParseFiniteVerb(t *testing.T) {
	got, err := Parse("V-AAI-3S")
	if err != nil {
		t.Fatalf("Parse(V-AAI-3S): %v", err)
	}
	want := Morphology{
		PartOfSpeech: "Verb",
		Tense:        "Aorist",
		Voice:        "Active",
		VerbForm:     "Finite",
		Mood:         "Indicative",
		Person:       "Third",
		Number:       "Singular",
		Flags:        []string{},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse(V-AAI-3S) = %+v, want %+v", got, want)
	}
}

func TestParseParticiple(t *testing.T) {
	got, err := Parse("V-PAP-DPM")
	if err != nil {
		t.Fatalf("Parse(V-PAP-DPM): %v", err)
	}
	want := Morphology{
		PartOfSpeech: "Verb",
		Tense:        "Present",
		Voice:        "Active",
		VerbForm:     "Participle",
		Case:         "Dative",
		Number:       "Plural",
		Gender:       "Masculine",
		Flags:        []string{},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse(V-PAP-DPM) = %+v, want %+v", got, want)
	}
}

func TestParseSecondTense(t *testing.T) {
	got, err := Parse("V-2AAI-3S")
	if err != nil {
		t.Fatalf("Parse(V-2AAI-3S): %v", err)
	}
	if got.Tense != "SecondAorist" {
		t.Errorf("Tense = %q, want SecondAorist", got.Tense)
	}
	if got.Voice != "Active" || got.Mood != "Indicative" {
		t.Errorf("Voice/Mood = %q/%q, want Active/Indicative", got.Voice, got.Mood)
	}
	if got.Person != "Third" || got.Number != "Singular" {
		t.Errorf("Person/Number = %q/%q, want Third/Singular", got.Person, got.Number)
	}
}

func TestParseInfinitive(t *testing.T) {
	// Infinitives consume no second modifier group even when present.
	for _, code := range []string{"V-PAN", "V-PAN-XYZ"} {
		got, err := Parse(code)
		if err != nil {
			t.Fatalf("Parse(%s): %v", code, err)
		}
		if got.VerbForm != "Infinitive" {
			t.Errorf("Parse(%s).VerbForm = %q, want Infinitive", code, got.VerbForm)
		}
		if got.Mood != "" || got.Case != "" || got.Person != "" {
			t.Errorf("Parse(%s) set fields an infinitive must not have: %+v", code, got)
		}
	}
}

func TestDeponentDualEncoding(t *testing.T) {
	tests := []struct {
		code      string
		wantVoice string
	}{
		{"V-PDI-3S", "Deponent"},
		{"V-ADI-3S", "Deponent"},
		{"V-PNI-3S", "MiddleOrPassiveDeponent"},
		{"V-AOI-3S", "PassiveDeponent"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := Parse(tt.code)
			if err != nil {
				t.Fatalf("Parse(%s): %v", tt.code, err)
			}
			if got.Voice != tt.wantVoice {
				t.Errorf("Voice = %q, want %q", got.Voice, tt.wantVoice)
			}
			if !containsFlag(got.Flags, "Deponent") {
				t.Errorf("Flags = %v, want Deponent present", got.Flags)
			}
		})
	}
}

func TestParticipleExcludesPerson(t *testing.T) {
	participles := []string{"V-PAP-NSM", "V-2AAP-GPF", "V-PNP-DSN"}
	for _, code := range participles {
		got, err := Parse(code)
		if err != nil {
			t.Fatalf("Parse(%s): %v", code, err)
		}
		if got.Person != "" {
			t.Errorf("Parse(%s).Person = %q, want unset", code, got.Person)
		}
		if got.Mood != "" {
			t.Errorf("Parse(%s).Mood = %q, want unset", code, got.Mood)
		}
	}

	finites := []string{"V-AAI-3S", "V-PAS-1P", "V-AAM-2S"}
	for _, code := range finites {
		got, err := Parse(code)
		if err != nil {
			t.Fatalf("Parse(%s): %v", code, err)
		}
		if got.Case != "" || got.Gender != "" {
			t.Errorf("Parse(%s) set Case/Gender on a finite verb: %+v", code, got)
		}
	}
}

func TestParsePersonalPronoun(t *testing.T) {
	got, err := Parse("P-1NS")
	if err != nil {
		t.Fatalf("Parse(P-1NS): %v", err)
	}
	want := Morphology{
		PartOfSpeech: "PersonalPronoun",
		Person:       "First",
		Case:         "Nominative",
		Number:       "Singular",
		Flags:        []string{},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse(P-1NS) = %+v, want %+v", got, want)
	}

	// Third person is implied by a leading case character; the layout
	// then carries gender.
	third, err := Parse("P-GSM")
	if err != nil {
		t.Fatalf("Parse(P-GSM): %v", err)
	}
	if third.Case != "Genitive" || third.Number != "Singular" || third.Gender != "Masculine" {
		t.Errorf("Parse(P-GSM) = %+v", third)
	}
	if third.Person != "" {
		t.Errorf("Parse(P-GSM).Person = %q, want unset", third.Person)
	}
}

func TestParseNominal(t *testing.T) {
	tests := []struct {
		code string
		want Morphology
	}{
		{
			code: "N-GSM-P",
			want: Morphology{
				PartOfSpeech: "Noun",
				Case:         "Genitive",
				Number:       "Singular",
				Gender:       "Masculine",
				Flags:        []string{"ProperName"},
			},
		},
		{
			code: "T-NSF",
			want: Morphology{
				PartOfSpeech: "Article",
				Case:         "Nominative",
				Number:       "Singular",
				Gender:       "Feminine",
				Flags:        []string{},
			},
		},
		{
			code: "A-NSM-C",
			want: Morphology{
				PartOfSpeech: "Adjective",
				Case:         "Nominative",
				Number:       "Singular",
				Gender:       "Masculine",
				Flags:        []string{"Comparative"},
			},
		},
		{
			// Short modifier group leaves trailing fields unset.
			code: "R-NS",
			want: Morphology{
				PartOfSpeech: "RelativePronoun",
				Case:         "Nominative",
				Number:       "Singular",
				Flags:        []string{},
			},
		},
		{
			// A bare part of speech: both trailing segments are optional.
			code: "N",
			want: Morphology{
				PartOfSpeech: "Noun",
				Flags:        []string{},
			},
		},
		{
			code: "T",
			want: Morphology{
				PartOfSpeech: "Article",
				Flags:        []string{},
			},
		},
		{
			code: "A",
			want: Morphology{
				PartOfSpeech: "Adjective",
				Flags:        []string{},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := Parse(tt.code)
			if err != nil {
				t.Fatalf("Parse(%s): %v", tt.code, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%s) = %+v, want %+v", tt.code, got, tt.want)
			}
		})
	}
}

func TestParseSimpleTypes(t *testing.T) {
	tests := []struct {
		code     string
		wantPOS  string
		wantFlag string
	}{
		{"CONJ", "Conjunction", ""},
		{"PREP", "Preposition", ""},
		{"PRT-N", "Particle", "Negative"},
		{"INJ", "Interjection", ""},
		{"HEB", "Hebrew", ""},
		{"ARAM", "Aramaic", ""},
		{"ADV", "Adverb", ""},
		{"ADV-C", "Adverb", "Comparative"},
		{"ADV-S", "Adverb", "Superlative"},
		// Unrecognized suffix segments are dropped silently.
		{"CONJ-ZZZ", "Conjunction", ""},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := Parse(tt.code)
			if err != nil {
				t.Fatalf("Parse(%s): %v", tt.code, err)
			}
			if got.PartOfSpeech != tt.wantPOS {
				t.Errorf("PartOfSpeech = %q, want %q", got.PartOfSpeech, tt.wantPOS)
			}
			if tt.wantFlag == "" {
				if len(got.Flags) != 0 {
					t.Errorf("Flags = %v, want empty", got.Flags)
				}
			} else if !containsFlag(got.Flags, tt.wantFlag) {
				t.Errorf("Flags = %v, want %q present", got.Flags, tt.wantFlag)
			}
			if got.Case != "" || got.Number != "" || got.Gender != "" {
				t.Errorf("Parse(%s) set inflection on an indeclinable: %+v", tt.code, got)
			}
		})
	}
}

func TestParseCaseInsensitive(t *testing.T) {
	codes := []string{"V-AAI-3S", "N-GSM-P", "P-1NS", "CONJ", "ADV-C", "V-2AAI-3S"}
	for _, code := range codes {
		upper, errU := Parse(strings.ToUpper(code))
		lower, errL := Parse(strings.ToLower(code))
		mixed, errM := Parse(" " + code + " ")
		if errU != nil || errL != nil || errM != nil {
			t.Fatalf("Parse(%s) variants failed: %v %v %v", code, errU, errL, errM)
		}
		if !reflect.DeepEqual(upper, lower) || !reflect.DeepEqual(upper, mixed) {
			t.Errorf("Parse(%s) not case/whitespace invariant", code)
		}
	}
}

func TestParseInvalid(t *testing.T) {
	invalid := []string{
		"",
		"   ",
		"Z-NSM",  // unknown part of speech
		"V-",     // verb with no modifiers
		"V-PA",   // verb modifiers too short
		"P-",     // pronoun with no modifiers
		"P-1",    // pronoun modifiers too short
		"hello world",
	}
	for _, code := range invalid {
		if _, err := Parse(code); !errors.Is(err, kerrors.ErrInvalidCode) {
			t.Errorf("Parse(%q) = %v, want ErrInvalidCode", code, err)
		}
		if _, ok := TryParse(code); ok {
			t.Errorf("TryParse(%q) succeeded, want failure", code)
		}
	}
}

func TestFlagsNeverNil(t *testing.T) {
	codes := []string{"CONJ", "V-AAI-3S", "N-NSM", "P-2AP", "ADV"}
	for _, code := range codes {
		got, err := Parse(code)
		if err != nil {
			t.Fatalf("Parse(%s): %v", code, err)
		}
		if got.Flags == nil {
			t.Errorf("Parse(%s).Flags is nil", code)
		}
	}
}

func TestUnknownSubFieldLeavesUnset(t *testing.T) {
	// 'Q' is not a case character; the field stays empty but the code
	// still parses.
	got, err := Parse("N-QSM")
	if err != nil {
		t.Fatalf("Parse(N-QSM): %v", err)
	}
	if got.Case != "" {
		t.Errorf("Case = %q, want unset", got.Case)
	}
	if got.Number != "Singular" || got.Gender != "Masculine" {
		t.Errorf("Number/Gender = %q/%q", got.Number, got.Gender)
	}
}

func containsFlag(flags []string, want string) bool {
	for _, f := range flags {
		if f == want {
			return true
		}
	}
	return false
}
