package fonts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	require.NoError(t, LoadDefaults())

	for _, name := range []FontName{HUD, Title, Mono} {
		assert.NotNil(t, name.Get(), name)
	}
}

func TestLoadFontWithSize_RejectsGarbage(t *testing.T) {
	assert.Error(t, LoadFontWithSize("broken", []byte("not a font"), 10))
}

func TestGet_UnknownPanics(t *testing.T) {
	assert.Panics(t, func() { FontName("missing").Get() })
}
