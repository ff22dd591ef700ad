package tokenize

import (
	"strings"

	"jpanalyzer/model"
)

// ModeCodes lists the accepted single-letter mode codes, coarsest first.
var ModeCodes = []string{"A", "B", "C"}

// ResolveMode maps a case-insensitive mode code to a granularity. Unknown or empty codes
// resolve to model.ModeUnset, which tokenizers treat as their own default.
func ResolveMode(code string) model.Mode {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "a":
		return model.ModeCoarse
	case "b":
		return model.ModeMedium
	case "c":
		return model.ModeFine
	}
	return model.ModeUnset
}

// ResolveModeOr is ResolveMode with a fallback used when code is unrecognized.
func ResolveModeOr(code string, fallback model.Mode) model.Mode {
	if m := ResolveMode(code); m != model.ModeUnset {
		return m
	}
	return fallback
}
