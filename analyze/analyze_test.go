package analyze

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"jpanalyzer/model"
	"jpanalyzer/tokenize"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTokenizer returns canned tokens per input and records every call.
type fakeTokenizer struct {
	vocab map[string][]model.Token
	calls []string
	modes []model.Mode
	err   error
}

func (f *fakeTokenizer) Tokenize(_ context.Context, text string, mode model.Mode) ([]model.Token, error) {
	f.calls = append(f.calls, text)
	f.modes = append(f.modes, mode)
	if f.err != nil {
		return nil, f.err
	}
	return f.vocab[text], nil
}

func tok(surface, lemma, reading string, pos ...string) model.Token {
	return model.Token{
		Surface:         surface,
		NormalizedForm:  lemma,
		ReadingForm:     reading,
		PartOfSpeech:    pos,
		SynonymGroupIDs: []int{},
		RawSurface:      surface,
	}
}

func newFake() *fakeTokenizer {
	return &fakeTokenizer{vocab: map[string][]model.Token{
		"食べる": {tok("食べる", "食べる", "タベル", "動詞", "自立")},
		"猫":   {tok("猫", "猫", "ネコ", "名詞", "一般")},
		"は":   {tok("は", "は", "ハ", "助詞", "係助詞")},
		// A dictionary form that re-tokenizes into several tokens.
		"東京都": {
			tok("東京", "東京", "トウキョウ", "名詞", "固有名詞"),
			tok("都", "都", "ト", "名詞", "接尾"),
		},
	}}
}

func TestBase(t *testing.T) {
	s := NewShaper(newFake())
	b := s.Base(tok("食べ", "食べる", "タベ", "動詞"))
	assert.Equal(t, "食べ", b.Surface)
	assert.Equal(t, "タベ", b.Katakana)
	assert.Equal(t, "たべ", b.Reading)
	assert.Equal(t, "食べる", b.DictionaryForm)
	assert.Equal(t, "tabe", b.Romaji)
	assert.Empty(t, b.Read)
}

func TestPlainUsesAlternateReading(t *testing.T) {
	fake := newFake()
	s := NewShaper(fake)

	rec, err := s.Plain(context.Background(), tok("食べ", "食べる", "タベ", "動詞"), model.ModeMedium)
	require.NoError(t, err)
	assert.Equal(t, "たべる", rec.Read)
	assert.Equal(t, [2]string{"tabe", "taberu"}, rec.Romaji)
	assert.Equal(t, "食べる", rec.Token.Surface)
	assert.Equal(t, []string{"食べる"}, fake.calls)
	assert.Equal(t, []model.Mode{model.ModeMedium}, fake.modes, "mode must be threaded into re-tokenization")
}

func TestRecursionBoundIsOneLevel(t *testing.T) {
	fake := newFake()
	s := NewShaper(fake)

	rec, err := s.Plain(context.Background(), tok("東京都", "東京都", "トウキョウト", "名詞"), model.ModeCoarse)
	require.NoError(t, err)

	// Only the first token of the re-tokenized form is used, and it is not re-tokenized again.
	assert.Equal(t, "東京", rec.Token.Surface)
	assert.Equal(t, "とうきょう", rec.Read)
	assert.Equal(t, []string{"東京都"}, fake.calls)
	assert.Empty(t, rec.Token.Read)
}

func TestAlternateReadingFallsBackWhenEmpty(t *testing.T) {
	s := NewShaper(newFake())
	alt, err := s.AlternateReading(context.Background(), tok("ほげ", "ほげ", "ホゲ"), model.ModeCoarse)
	require.NoError(t, err)
	assert.Equal(t, "ほげ", alt.Reading)
}

func TestRomajiTuple(t *testing.T) {
	s := NewShaper(newFake())
	tuple, err := s.Romaji(context.Background(), tok("食べる", "食べる", "タベル", "動詞"), model.ModeCoarse)
	require.NoError(t, err)
	assert.Equal(t, model.RomajiTuple{"食べる", "taberu", "taberu", "たべる", "たべる"}, tuple)
}

func TestFuriganaSkipsTokensWithoutKanji(t *testing.T) {
	fake := newFake()
	s := NewShaper(fake)

	_, ok, err := s.Furigana(context.Background(), tok("は", "は", "ハ", "助詞"), model.ModeCoarse, false)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, fake.calls, "no re-tokenization for tokens without ideographs")

	pair, ok, err := s.Furigana(context.Background(), tok("猫", "猫", "ネコ", "名詞"), model.ModeCoarse, false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, model.FuriganaPair{"猫", "ねこ", "ねこ"}, pair)

	pair, ok, err = s.Furigana(context.Background(), tok("猫", "猫", "ネコ", "名詞"), model.ModeCoarse, true)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, model.FuriganaPair{"猫", "ねこ"}, pair)
}

func TestShapeAllDropsMissingFurigana(t *testing.T) {
	s := NewShaper(newFake())
	toks := []model.Token{
		tok("猫", "猫", "ネコ", "名詞"),
		tok("は", "は", "ハ", "助詞"),
		tok("食べる", "食べる", "タベル", "動詞"),
	}
	out, err := s.ShapeAll(context.Background(), model.FuriganaShort, toks, model.ModeCoarse)
	require.NoError(t, err)
	require.Len(t, out, 2)

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `[["猫","ねこ"],["食べる","たべる"]]`, string(raw))
}

func TestShapeAllEmpty(t *testing.T) {
	s := NewShaper(newFake())
	for _, kind := range []model.OutputKind{model.Plain, model.Furigana, model.FuriganaShort, model.Romaji, model.Grammar, model.Frequency} {
		out, err := s.ShapeAll(context.Background(), kind, nil, model.ModeUnset)
		require.NoError(t, err)
		raw, err := json.Marshal(out)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(raw), "kind %s", kind)
	}
}

func TestGrammarMarshalsAsString(t *testing.T) {
	s := NewShaper(newFake())
	out, err := s.ShapeAll(context.Background(), model.Grammar, []model.Token{tok("食べ", "食べる", "タベ")}, model.ModeCoarse)
	require.NoError(t, err)
	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `["食べる"]`, string(raw))
}

func TestFrequencyField(t *testing.T) {
	s := NewShaper(newFake())
	in := tok("猫", "猫", "ネコ", "名詞")
	in.WordID = 42
	sh, ok, err := s.Shape(context.Background(), model.Frequency, in, model.ModeCoarse)
	require.NoError(t, err)
	require.True(t, ok)

	raw, err := json.Marshal(sh)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, []any{float64(42), []any{}, "猫"}, got["frequency"])
	assert.Equal(t, "ねこ", got["read"])
}

func TestShapePropagatesTokenizerError(t *testing.T) {
	boom := errors.New("dictionary fault")
	s := NewShaper(&fakeTokenizer{err: boom})
	_, _, err := s.Shape(context.Background(), model.Plain, tok("猫", "猫", "ネコ"), model.ModeCoarse)
	assert.ErrorIs(t, err, boom)

	// Grammar never re-tokenizes, so it cannot fail.
	_, ok, err := s.Shape(context.Background(), model.Grammar, tok("猫", "猫", "ネコ"), model.ModeCoarse)
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestConjugationForm(t *testing.T) {
	in := tok("食べ", "食べる", "タベ", "動詞")
	assert.Empty(t, ConjugationForm(in))
	in.InflectionType = "一段"
	in.InflectionForm = "連用形"
	assert.Equal(t, "一段:連用形", ConjugationForm(in))
}

func TestTyped(t *testing.T) {
	got := Typed(tok("猫", "猫", "ネコ", "名詞", "一般"))
	assert.Equal(t, model.TypedToken{Surface: "猫", DictionaryForm: "猫", Reading: "ネコ", PartOfSpeech: "名詞"}, got)
}

func TestWithKagome(t *testing.T) {
	k, err := tokenize.New(tokenize.Options{})
	require.NoError(t, err)
	s := NewShaper(k)

	toks, err := k.Tokenize(context.Background(), "食べる", model.ModeUnset)
	require.NoError(t, err)
	require.Len(t, toks, 1)

	tuple, err := s.Romaji(context.Background(), toks[0], model.ModeUnset)
	require.NoError(t, err)
	assert.Equal(t, "食べる", tuple[0])
	assert.Equal(t, "たべる", tuple[3])
	assert.Equal(t, "taberu", tuple[1])
}

func TestShapeWithUniAndUserDictionary(t *testing.T) {
	uniTk, err := tokenize.New(tokenize.Options{Dict: "uni"})
	require.NoError(t, err)
	userTk, err := tokenize.New(tokenize.Options{Dict: "ipa", UserDictPath: "../tokenize/testdata/userdict.txt"})
	require.NoError(t, err)

	cases := []struct {
		name    string
		tk      *tokenize.Kagome
		text    string
		surface string
		reading string
	}{
		{"uni noun", uniTk, "猫が食べた", "猫", "ねこ"},
		{"user entry", userTk, "入見内川", "入見内川", "いりみないかわ"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewShaper(tc.tk)
			toks, err := tc.tk.Tokenize(context.Background(), tc.text, model.ModeCoarse)
			require.NoError(t, err)
			out, err := s.ShapeAll(context.Background(), model.Plain, toks, model.ModeCoarse)
			require.NoError(t, err)
			require.NotEmpty(t, out)

			rec := out[0].Record
			require.NotNil(t, rec)
			assert.Equal(t, tc.surface, rec.Surface)
			assert.Equal(t, tc.reading, rec.Reading)
			assert.Equal(t, tc.reading, rec.Read)
			assert.NotEmpty(t, rec.Romaji[0])
		})
	}
}
