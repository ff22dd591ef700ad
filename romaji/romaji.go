// Package romaji transliterates kana into Hepburn romanization.
//
// Only kana are converted. Ideographs, punctuation and Latin text pass through unchanged,
// so callers that want romaji for kanji words must romanize the reading instead.
// Half-width katakana is folded to its full-width form first.
package romaji

import (
	"strings"
	"unicode"

	"jpanalyzer/kanji"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// halfwidthKatakana covers U+FF61–U+FF9F, including the half-width sound marks.
var halfwidthKatakana = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0xFF61, Hi: 0xFF9F, Stride: 1}},
}

var digraphs = map[string]string{
	"きゃ": "kya", "きゅ": "kyu", "きょ": "kyo",
	"ぎゃ": "gya", "ぎゅ": "gyu", "ぎょ": "gyo",
	"しゃ": "sha", "しゅ": "shu", "しょ": "sho", "しぇ": "she",
	"じゃ": "ja", "じゅ": "ju", "じょ": "jo", "じぇ": "je",
	"ちゃ": "cha", "ちゅ": "chu", "ちょ": "cho", "ちぇ": "che",
	"ぢゃ": "ja", "ぢゅ": "ju", "ぢょ": "jo",
	"にゃ": "nya", "にゅ": "nyu", "にょ": "nyo",
	"ひゃ": "hya", "ひゅ": "hyu", "ひょ": "hyo",
	"びゃ": "bya", "びゅ": "byu", "びょ": "byo",
	"ぴゃ": "pya", "ぴゅ": "pyu", "ぴょ": "pyo",
	"みゃ": "mya", "みゅ": "myu", "みょ": "myo",
	"りゃ": "rya", "りゅ": "ryu", "りょ": "ryo",
	"ふぁ": "fa", "ふぃ": "fi", "ふぇ": "fe", "ふぉ": "fo",
	"てぃ": "ti", "でぃ": "di", "とぅ": "tu", "どぅ": "du",
	"うぃ": "wi", "うぇ": "we", "うぉ": "wo",
	"ゔぁ": "va", "ゔぃ": "vi", "ゔぇ": "ve", "ゔぉ": "vo",
	"つぁ": "tsa",
}

var monographs = map[rune]string{
	'あ': "a", 'い': "i", 'う': "u", 'え': "e", 'お': "o",
	'か': "ka", 'き': "ki", 'く': "ku", 'け': "ke", 'こ': "ko",
	'が': "ga", 'ぎ': "gi", 'ぐ': "gu", 'げ': "ge", 'ご': "go",
	'さ': "sa", 'し': "shi", 'す': "su", 'せ': "se", 'そ': "so",
	'ざ': "za", 'じ': "ji", 'ず': "zu", 'ぜ': "ze", 'ぞ': "zo",
	'た': "ta", 'ち': "chi", 'つ': "tsu", 'て': "te", 'と': "to",
	'だ': "da", 'ぢ': "ji", 'づ': "zu", 'で': "de", 'ど': "do",
	'な': "na", 'に': "ni", 'ぬ': "nu", 'ね': "ne", 'の': "no",
	'は': "ha", 'ひ': "hi", 'ふ': "fu", 'へ': "he", 'ほ': "ho",
	'ば': "ba", 'び': "bi", 'ぶ': "bu", 'べ': "be", 'ぼ': "bo",
	'ぱ': "pa", 'ぴ': "pi", 'ぷ': "pu", 'ぺ': "pe", 'ぽ': "po",
	'ま': "ma", 'み': "mi", 'む': "mu", 'め': "me", 'も': "mo",
	'や': "ya", 'ゆ': "yu", 'よ': "yo",
	'ら': "ra", 'り': "ri", 'る': "ru", 'れ': "re", 'ろ': "ro",
	'わ': "wa", 'ゐ': "i", 'ゑ': "e", 'を': "o", 'ゔ': "vu",
	'ぁ': "a", 'ぃ': "i", 'ぅ': "u", 'ぇ': "e", 'ぉ': "o",
	'ゃ': "ya", 'ゅ': "yu", 'ょ': "yo", 'ゎ': "wa",
	'ゕ': "ka", 'ゖ': "ke", 'ヵ': "ka", 'ヶ': "ke",
	'ヷ': "va", 'ヸ': "vi", 'ヹ': "ve", 'ヺ': "vo",
}

// foldWidth rewrites half-width katakana runs with NFKC so that ﾀﾍﾞﾙ reads as タベル.
// Other text is left untouched.
func foldWidth(s string) string {
	t := runes.If(runes.In(halfwidthKatakana), norm.NFKC, nil)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// FromKana romanizes hiragana and katakana in s.
func FromKana(s string) string {
	rs := []rune(kanji.KatakanaToHiragana(foldWidth(s)))
	var b strings.Builder
	b.Grow(len(rs) * 2)

	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch r {
		case 'っ':
			// Before a consonant the sokuon doubles it; anywhere else it is a glottal stop.
			if next, _ := syllable(rs, i+1); next != "" {
				if g := geminate(next); g != "" {
					b.WriteString(g)
					continue
				}
			}
			b.WriteString("'")
			continue
		case 'ん':
			b.WriteString("n")
			if next, _ := syllable(rs, i+1); next != "" && strings.ContainsRune("aiueoy", rune(next[0])) {
				b.WriteString("'")
			}
			continue
		case 'ー':
			if v := lastVowel(b.String()); v != 0 {
				b.WriteRune(v)
			}
			continue
		}

		roman, width := syllable(rs, i)
		if roman == "" {
			b.WriteRune(r)
			continue
		}
		b.WriteString(roman)
		i += width - 1
	}
	return b.String()
}

// syllable returns the romanization of the kana starting at rs[i] and how many runes it
// consumed; "" when rs[i] is not a convertible kana.
func syllable(rs []rune, i int) (string, int) {
	if i >= len(rs) {
		return "", 0
	}
	if i+1 < len(rs) {
		if roman, ok := digraphs[string(rs[i:i+2])]; ok {
			return roman, 2
		}
	}
	if roman, ok := monographs[rs[i]]; ok {
		return roman, 1
	}
	return "", 0
}

func geminate(roman string) string {
	if strings.HasPrefix(roman, "ch") {
		return "t"
	}
	if strings.ContainsRune("aiueo", rune(roman[0])) {
		return ""
	}
	return roman[:1]
}

func lastVowel(s string) rune {
	for i := len(s) - 1; i >= 0; i-- {
		if strings.IndexByte("aiueo", s[i]) >= 0 {
			return rune(s[i])
		}
	}
	return 0
}
