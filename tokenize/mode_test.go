package tokenize

import (
	"testing"

	"jpanalyzer/model"

	"github.com/stretchr/testify/assert"
)

func TestResolveModeIgnoresCase(t *testing.T) {
	pairs := map[string]model.Mode{
		"a": model.ModeCoarse, "A": model.ModeCoarse,
		"b": model.ModeMedium, "B": model.ModeMedium,
		"c": model.ModeFine, "C": model.ModeFine,
	}
	for code, want := range pairs {
		assert.Equal(t, want, ResolveMode(code), "code %q", code)
	}
	assert.Equal(t, ResolveMode("a"), ResolveMode("A"))
	assert.Equal(t, ResolveMode("b"), ResolveMode("B"))
	assert.Equal(t, ResolveMode("c"), ResolveMode("C"))
}

func TestResolveModeUnknown(t *testing.T) {
	for _, code := range []string{"", "d", "AB", "normal", " "} {
		assert.Equal(t, model.ModeUnset, ResolveMode(code), "code %q", code)
	}
	assert.Equal(t, model.ModeCoarse, ResolveModeOr("z", model.ModeCoarse))
	assert.Equal(t, model.ModeFine, ResolveModeOr("c", model.ModeCoarse))
}
