// Package kanji classifies Japanese script and converts between the two kana scripts.
package kanji

import "strings"

// IsKanji reports whether r is in the CJK unified ideograph block used for furigana
// decisions (U+4E00–U+9FAF).
func IsKanji(r rune) bool {
	return r >= 0x4E00 && r <= 0x9FAF
}

// HasKanji reports whether s contains at least one ideograph.
func HasKanji(s string) bool {
	return strings.IndexFunc(s, IsKanji) >= 0
}

// IsHiragana returns true for runes in the hiragana block.
func IsHiragana(r rune) bool {
	return r >= 0x3040 && r <= 0x309F
}

// IsKatakana returns true for runes in the katakana block, including the long vowel mark.
func IsKatakana(r rune) bool {
	return r >= 0x30A0 && r <= 0x30FF
}

// IsKana returns true if rune is Hiragana or Katakana
func IsKana(r rune) bool {
	return IsHiragana(r) || IsKatakana(r)
}

// IsKanaOnly reports whether s is non-empty and made only of kana.
func IsKanaOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !IsKana(r) {
			return false
		}
	}
	return true
}

// KatakanaToHiragana converts katakana ァ through ヴ to hiragana. The counters ヵ and ヶ, ー and
// other runes are kept as is.
func KatakanaToHiragana(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if r >= 0x30A1 && r <= 0x30F4 {
			runes[i] = r - 0x60
		}
	}
	return string(runes)
}

// HiraganaToKatakana is the inverse of KatakanaToHiragana.
func HiraganaToKatakana(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if r >= 0x3041 && r <= 0x3094 {
			runes[i] = r + 0x60
		}
	}
	return string(runes)
}
