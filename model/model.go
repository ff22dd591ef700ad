package model

import "encoding/json"

// Mode is the segmentation granularity used when tokenizing.
type Mode int

const (
	// ModeUnset means "use the analyzer's own default".
	ModeUnset Mode = iota
	ModeCoarse
	ModeMedium
	ModeFine
)

func (m Mode) String() string {
	switch m {
	case ModeCoarse:
		return "coarse"
	case ModeMedium:
		return "medium"
	case ModeFine:
		return "fine"
	}
	return "unset"
}

// Token represents a morpheme produced by the tokenizer. Tokens are read-only once built.
type Token struct {
	Surface         string   `json:"surface"`
	NormalizedForm  string   `json:"normalized_form"`
	ReadingForm     string   `json:"reading_form,omitempty"`
	PartOfSpeech    []string `json:"part_of_speech"`
	WordID          int      `json:"word_id"`
	SynonymGroupIDs []int    `json:"synonym_group_ids"`
	RawSurface      string   `json:"raw_surface"`
	InflectionType  string   `json:"inflection_type,omitempty"`
	InflectionForm  string   `json:"inflection_form,omitempty"`
	Start           int      `json:"start"`
	End             int      `json:"end"`
}

// CoarsePOS returns the first (coarsest) part-of-speech label, or "" when none.
func (t Token) CoarsePOS() string {
	if len(t.PartOfSpeech) == 0 {
		return ""
	}
	return t.PartOfSpeech[0]
}

// OutputKind selects the shape a token is turned into.
type OutputKind int

const (
	Plain OutputKind = iota
	Furigana
	FuriganaShort
	Romaji
	Grammar
	Frequency
)

func (k OutputKind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Furigana:
		return "furigana"
	case FuriganaShort:
		return "furigana_short"
	case Romaji:
		return "romaji"
	case Grammar:
		return "grammar"
	case Frequency:
		return "frequency"
	}
	return "unknown"
}

// BaseRecord is the non-recursive view of a token.
type BaseRecord struct {
	Surface         string   `json:"surface"`
	PartOfSpeech    []string `json:"part_of_speech"`
	Katakana        string   `json:"katakana"`
	Reading         string   `json:"reading"`
	DictionaryForm  string   `json:"dictionary_form"`
	Read            string   `json:"read"`
	Romaji          string   `json:"romaji"`
	ConjugationForm string   `json:"conjugation_form,omitempty"`
}

// Record is the full analysis record: the base record plus the reading obtained by
// re-tokenizing the dictionary form.
type Record struct {
	Surface         string     `json:"surface"`
	PartOfSpeech    []string   `json:"part_of_speech"`
	Katakana        string     `json:"katakana"`
	Reading         string     `json:"reading"`
	DictionaryForm  string     `json:"dictionary_form"`
	Read            string     `json:"read"`
	Romaji          [2]string  `json:"romaji"`
	Token           BaseRecord `json:"token"`
	ConjugationForm string     `json:"conjugation_form,omitempty"`
	Frequency       *FreqInfo  `json:"frequency,omitempty"`
}

// FreqInfo is serialized as [wordId, synonymGroupIds, rawSurface].
type FreqInfo struct {
	WordID          int
	SynonymGroupIDs []int
	RawSurface      string
}

func (f FreqInfo) MarshalJSON() ([]byte, error) {
	groups := f.SynonymGroupIDs
	if groups == nil {
		groups = []int{}
	}
	return json.Marshal([]any{f.WordID, groups, f.RawSurface})
}

// RomajiTuple is [normalizedForm, ownRomaji, nestedRomaji, ownHiragana, nestedReading].
type RomajiTuple [5]string

// FuriganaPair is [normalizedForm, hiragana] for the short form, with the nested reading
// appended for the long form.
type FuriganaPair []string

// TypedToken is the record returned by the typed /analyze endpoint.
type TypedToken struct {
	Surface        string `json:"surface"`
	DictionaryForm string `json:"dictionary_form"`
	Reading        string `json:"reading"`
	PartOfSpeech   string `json:"part_of_speech"`
}
