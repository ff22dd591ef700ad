package tokenize

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jpanalyzer/kanji"
	"jpanalyzer/model"

	"github.com/ikawaha/kagome-dict/dict"
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome-dict/uni"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

var (
	// ErrNotReady is returned when the underlying kagome tokenizer was never built.
	ErrNotReady = errors.New("tokenizer not initialized")
	// ErrCanceled wraps the context error when a request is abandoned before tokenizing.
	ErrCanceled = errors.New("tokenization canceled")
	// ErrUnknownDict is returned by New for dictionary names other than ipa and uni.
	ErrUnknownDict = errors.New("unknown dictionary")
)

// Tokenizer turns text into an ordered, left-to-right sequence of tokens.
type Tokenizer interface {
	Tokenize(ctx context.Context, text string, mode model.Mode) ([]model.Token, error)
}

// Options configure the kagome-backed tokenizer.
type Options struct {
	// Dict is "ipa" (default) or "uni".
	Dict string
	// UserDictPath optionally points to a kagome user dictionary file.
	UserDictPath string
}

// Kagome is a Tokenizer backed by kagome. It is safe for concurrent use.
// The ipa and uni dictionaries lay out their features differently, so dictName selects how
// readings and lemmas are read from a token.
type Kagome struct {
	kg       *tokenizer.Tokenizer
	dictName string
}

// New builds a kagome tokenizer with the chosen system dictionary, omitting BOS/EOS.
func New(opts Options) (*Kagome, error) {
	name := strings.ToLower(strings.TrimSpace(opts.Dict))
	var d *dict.Dict
	switch name {
	case "", "ipa":
		name = "ipa"
		d = ipa.Dict()
	case "uni":
		d = uni.Dict()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDict, opts.Dict)
	}

	tkOpts := []tokenizer.Option{tokenizer.OmitBosEos()}
	if opts.UserDictPath != "" {
		udict, err := dict.NewUserDict(opts.UserDictPath)
		if err != nil {
			return nil, fmt.Errorf("load user dictionary %s: %w", opts.UserDictPath, err)
		}
		tkOpts = append(tkOpts, tokenizer.UserDict(udict))
	}

	kg, err := tokenizer.New(d, tkOpts...)
	if err != nil {
		return nil, fmt.Errorf("create kagome tokenizer: %w", err)
	}
	return &Kagome{kg: kg, dictName: name}, nil
}

// DictName returns the name of the system dictionary in use.
func (k *Kagome) DictName() string {
	if k == nil {
		return ""
	}
	return k.dictName
}

// Tokenize uses kagome to produce tokens for the input text in the requested mode.
func (k *Kagome) Tokenize(ctx context.Context, text string, mode model.Mode) ([]model.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCanceled, err)
	}
	if k == nil || k.kg == nil {
		return nil, ErrNotReady
	}
	if text == "" {
		return []model.Token{}, nil
	}
	return k.convertKagomeTokens(k.kg.Analyze(text, kagomeMode(mode))), nil
}

// kagomeMode maps granularities onto kagome's modes: Normal keeps compounds together,
// Search splits long compound nouns, Extended additionally splits unknown words into unigrams.
func kagomeMode(m model.Mode) tokenizer.TokenizeMode {
	switch m {
	case model.ModeMedium:
		return tokenizer.Search
	case model.ModeFine:
		return tokenizer.Extended
	}
	return tokenizer.Normal
}

func (k *Kagome) convertKagomeTokens(ktoks []tokenizer.Token) []model.Token {
	out := make([]model.Token, 0, len(ktoks))
	for _, kt := range ktoks {
		if kt.Class == tokenizer.DUMMY {
			continue
		}
		f := k.features(kt)
		if f.lemma == "" || f.lemma == "*" {
			f.lemma = kt.Surface
		}
		if f.reading == "*" {
			f.reading = ""
		}
		if f.reading == "" && kanji.IsKanaOnly(kt.Surface) {
			f.reading = kanji.HiraganaToKatakana(kt.Surface)
		}
		out = append(out, model.Token{
			Surface:         kt.Surface,
			NormalizedForm:  f.lemma,
			ReadingForm:     f.reading,
			PartOfSpeech:    f.pos,
			WordID:          kt.ID,
			SynonymGroupIDs: []int{},
			RawSurface:      kt.Surface,
			InflectionType:  blankStar(f.infType),
			InflectionForm:  blankStar(f.infForm),
			Start:           kt.Start,
			End:             kt.End,
		})
	}
	return out
}

type tokenFeatures struct {
	lemma, reading   string
	infType, infForm string
	pos              []string
}

// features reads lemma, reading and inflection from wherever the token's dictionary keeps them.
// User entries carry only a POS label and per-segment readings.
func (k *Kagome) features(kt tokenizer.Token) tokenFeatures {
	if kt.Class == tokenizer.USER {
		var reading string
		if extra := kt.UserExtra(); extra != nil {
			reading = strings.Join(extra.Readings, "")
		}
		return tokenFeatures{lemma: kt.Surface, reading: reading, pos: kt.POS()}
	}

	if k.dictName == "uni" {
		lemma, ok := kt.FeatureAt(uni.OrthBase)
		if !ok || lemma == "" || lemma == "*" {
			lemma, _ = kt.FeatureAt(uni.Lemma)
		}
		// LForm is the reading of the lemma, so inflected surfaces need their own ending.
		lform, _ := kt.FeatureAt(uni.LForm)
		infType, _ := kt.FeatureAt(uni.CType)
		infForm, _ := kt.FeatureAt(uni.CForm)
		return tokenFeatures{
			lemma:   lemma,
			reading: surfaceReading(kt.Surface, lemma, blankStar(lform)),
			infType: infType,
			infForm: infForm,
			pos:     cleanPOS(kt.POS()),
		}
	}

	lemma, _ := kt.BaseForm()
	reading, _ := kt.Reading()
	infType, _ := kt.InflectionalType()
	infForm, _ := kt.InflectionalForm()
	return tokenFeatures{lemma: lemma, reading: reading, infType: infType, infForm: infForm, pos: cleanPOS(kt.POS())}
}

// surfaceReading turns the reading of lemma into the reading of surface by swapping the kana
// ending, e.g. 食べる/タベル read as 食べ gives タベ. The lemma reading is returned unchanged
// when the endings cannot be matched.
func surfaceReading(surface, lemma, lemmaReading string) string {
	if kanji.IsKanaOnly(surface) {
		return kanji.HiraganaToKatakana(surface)
	}
	if lemmaReading == "" || surface == lemma {
		return lemmaReading
	}
	lemmaTail := kanji.HiraganaToKatakana(kanaSuffix(lemma))
	if !strings.HasSuffix(lemmaReading, lemmaTail) {
		return lemmaReading
	}
	stem := strings.TrimSuffix(lemmaReading, lemmaTail)
	if stem == "" {
		return lemmaReading
	}
	return stem + kanji.HiraganaToKatakana(kanaSuffix(surface))
}

// kanaSuffix returns the trailing run of kana in s.
func kanaSuffix(s string) string {
	runes := []rune(s)
	i := len(runes)
	for i > 0 && kanji.IsKana(runes[i-1]) {
		i--
	}
	return string(runes[i:])
}

// cleanPOS drops the trailing "*" placeholders the dictionaries use for unused levels.
func cleanPOS(pos []string) []string {
	out := make([]string, 0, len(pos))
	for _, p := range pos {
		if p == "*" || p == "" {
			break
		}
		out = append(out, p)
	}
	return out
}

func blankStar(s string) string {
	if s == "*" {
		return ""
	}
	return s
}
