package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"jpanalyzer/kanji"
	"jpanalyzer/model"
	"jpanalyzer/romaji"
	"jpanalyzer/tokenize"
)

// Shaped is one shaped token. Exactly one member is set, and it alone is marshalled.
type Shaped struct {
	Kind     model.OutputKind
	Record   *model.Record
	Romaji   *model.RomajiTuple
	Furigana model.FuriganaPair
	Form     string
}

func (s Shaped) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case model.Plain, model.Frequency:
		return json.Marshal(s.Record)
	case model.Romaji:
		return json.Marshal(s.Romaji)
	case model.Furigana, model.FuriganaShort:
		return json.Marshal(s.Furigana)
	case model.Grammar:
		return json.Marshal(s.Form)
	}
	return nil, fmt.Errorf("analyze: unknown output kind %d", s.Kind)
}

// Shaper turns tokens into output records. The alternate reading of a token is obtained by
// re-tokenizing its dictionary form once, with the mode of the request being shaped.
type Shaper struct {
	tk tokenize.Tokenizer
}

// NewShaper returns a Shaper that re-tokenizes with tk.
func NewShaper(tk tokenize.Tokenizer) *Shaper {
	return &Shaper{tk: tk}
}

// Base builds the non-recursive record for tok.
func (s *Shaper) Base(tok model.Token) model.BaseRecord {
	return model.BaseRecord{
		Surface:         tok.Surface,
		PartOfSpeech:    posOrEmpty(tok.PartOfSpeech),
		Katakana:        tok.ReadingForm,
		Reading:         kanji.KatakanaToHiragana(tok.ReadingForm),
		DictionaryForm:  tok.NormalizedForm,
		Read:            "",
		Romaji:          romaji.FromKana(tok.ReadingForm),
		ConjugationForm: ConjugationForm(tok),
	}
}

// AlternateReading tokenizes tok's dictionary form with mode and returns the base record of
// the first resulting token. It never recurses; when re-tokenization yields no tokens the
// base record of tok itself is used.
func (s *Shaper) AlternateReading(ctx context.Context, tok model.Token, mode model.Mode) (model.BaseRecord, error) {
	toks, err := s.tk.Tokenize(ctx, tok.NormalizedForm, mode)
	if err != nil {
		return model.BaseRecord{}, fmt.Errorf("re-tokenize %q: %w", tok.NormalizedForm, err)
	}
	if len(toks) == 0 {
		return s.Base(tok), nil
	}
	return s.Base(toks[0]), nil
}

// Plain builds the full record for tok.
func (s *Shaper) Plain(ctx context.Context, tok model.Token, mode model.Mode) (model.Record, error) {
	alt, err := s.AlternateReading(ctx, tok, mode)
	if err != nil {
		return model.Record{}, err
	}
	base := s.Base(tok)
	return model.Record{
		Surface:         base.Surface,
		PartOfSpeech:    base.PartOfSpeech,
		Katakana:        base.Katakana,
		Reading:         base.Reading,
		DictionaryForm:  base.DictionaryForm,
		Read:            alt.Reading,
		Romaji:          [2]string{base.Romaji, alt.Romaji},
		Token:           alt,
		ConjugationForm: base.ConjugationForm,
	}, nil
}

// Frequency is Plain with the dictionary identifiers attached.
func (s *Shaper) Frequency(ctx context.Context, tok model.Token, mode model.Mode) (model.Record, error) {
	rec, err := s.Plain(ctx, tok, mode)
	if err != nil {
		return model.Record{}, err
	}
	rec.Frequency = &model.FreqInfo{
		WordID:          tok.WordID,
		SynonymGroupIDs: tok.SynonymGroupIDs,
		RawSurface:      tok.RawSurface,
	}
	return rec, nil
}

// Romaji returns [normalizedForm, ownRomaji, nestedRomaji, ownHiragana, nestedReading].
func (s *Shaper) Romaji(ctx context.Context, tok model.Token, mode model.Mode) (model.RomajiTuple, error) {
	alt, err := s.AlternateReading(ctx, tok, mode)
	if err != nil {
		return model.RomajiTuple{}, err
	}
	return model.RomajiTuple{
		tok.NormalizedForm,
		romaji.FromKana(tok.ReadingForm),
		alt.Romaji,
		kanji.KatakanaToHiragana(tok.ReadingForm),
		alt.Reading,
	}, nil
}

// Furigana pairs the dictionary form with its hiragana reading. ok is false when the
// dictionary form holds no ideograph; such tokens carry no furigana and are dropped.
// The long form appends the reading of the re-tokenized dictionary form.
func (s *Shaper) Furigana(ctx context.Context, tok model.Token, mode model.Mode, short bool) (pair model.FuriganaPair, ok bool, err error) {
	if !kanji.HasKanji(tok.NormalizedForm) {
		return nil, false, nil
	}
	reading := kanji.KatakanaToHiragana(tok.ReadingForm)
	if short {
		return model.FuriganaPair{tok.NormalizedForm, reading}, true, nil
	}
	alt, err := s.AlternateReading(ctx, tok, mode)
	if err != nil {
		return nil, false, err
	}
	return model.FuriganaPair{tok.NormalizedForm, reading, alt.Reading}, true, nil
}

// Grammar returns only the dictionary form.
func (s *Shaper) Grammar(tok model.Token) string {
	return tok.NormalizedForm
}

// Shape dispatches on kind. ok is false only for furigana kinds when tok carries none.
func (s *Shaper) Shape(ctx context.Context, kind model.OutputKind, tok model.Token, mode model.Mode) (Shaped, bool, error) {
	out := Shaped{Kind: kind}
	switch kind {
	case model.Plain:
		rec, err := s.Plain(ctx, tok, mode)
		if err != nil {
			return Shaped{}, false, err
		}
		out.Record = &rec
	case model.Frequency:
		rec, err := s.Frequency(ctx, tok, mode)
		if err != nil {
			return Shaped{}, false, err
		}
		out.Record = &rec
	case model.Romaji:
		tuple, err := s.Romaji(ctx, tok, mode)
		if err != nil {
			return Shaped{}, false, err
		}
		out.Romaji = &tuple
	case model.Furigana, model.FuriganaShort:
		pair, ok, err := s.Furigana(ctx, tok, mode, kind == model.FuriganaShort)
		if err != nil || !ok {
			return Shaped{}, false, err
		}
		out.Furigana = pair
	case model.Grammar:
		out.Form = s.Grammar(tok)
	default:
		return Shaped{}, false, fmt.Errorf("analyze: unknown output kind %d", kind)
	}
	return out, true, nil
}

// ShapeAll shapes toks in order, dropping tokens that produce no output.
func (s *Shaper) ShapeAll(ctx context.Context, kind model.OutputKind, toks []model.Token, mode model.Mode) ([]Shaped, error) {
	out := make([]Shaped, 0, len(toks))
	for _, tok := range toks {
		sh, ok, err := s.Shape(ctx, kind, tok, mode)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, sh)
		}
	}
	return out, nil
}

// Typed builds the record returned by the typed /analyze endpoint.
func Typed(tok model.Token) model.TypedToken {
	return model.TypedToken{
		Surface:        tok.Surface,
		DictionaryForm: tok.NormalizedForm,
		Reading:        tok.ReadingForm,
		PartOfSpeech:   tok.CoarsePOS(),
	}
}

// ConjugationForm describes a token's inflection as "type:form" from the dictionary's
// inflection features, or "" for tokens that do not inflect.
func ConjugationForm(tok model.Token) string {
	switch {
	case tok.InflectionType == "" && tok.InflectionForm == "":
		return ""
	case tok.InflectionType == "":
		return tok.InflectionForm
	case tok.InflectionForm == "":
		return tok.InflectionType
	}
	return strings.Join([]string{tok.InflectionType, tok.InflectionForm}, ":")
}

func posOrEmpty(pos []string) []string {
	if pos == nil {
		return []string{}
	}
	return pos
}
