package views

import (
	"io/fs"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexiquiz/internal/catalog"
)

func TestStatic(t *testing.T) {
	for _, name := range []string{"app.js", "style.css"} {
		info, err := fs.Stat(Static(), name)
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}
}

// The script keeps chimes on their own audio elements, picked by path prefix,
// so a pronunciation cue cannot cut a chime short.
func TestStatic_ChimesUseOwnAudio(t *testing.T) {
	src, err := fs.ReadFile(Static(), "app.js")
	require.NoError(t, err)
	js := string(src)

	m := regexp.MustCompile(`SOUND_PREFIX = "([^"]+)"`).FindStringSubmatch(js)
	require.Len(t, m, 2, "sound prefix missing")
	prefix := m[1]
	for _, sound := range []string{catalog.ChimeSound, catalog.FailureSound} {
		assert.True(t, strings.HasPrefix("/"+sound, prefix), sound)
	}
	assert.False(t, strings.HasPrefix("/"+catalog.Wolof.AudioPath("dog"), prefix))

	playSound := js[strings.Index(js, "function playSound"):strings.Index(js, "function playWord")]
	assert.NotContains(t, playSound, "pause()")
}
