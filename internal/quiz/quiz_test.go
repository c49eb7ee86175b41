package quiz

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"lexiquiz/internal/catalog"
)

// newEntry builds an entry whose form in every language is unique to that language.
func newEntry(id string) *catalog.Entry {
	forms := make(map[catalog.Language]string)
	for _, lang := range catalog.Languages() {
		forms[lang] = fmt.Sprintf("%s-%s", lang, id)
	}
	return &catalog.Entry{ID: id, Gloss: "gloss " + id, Forms: forms}
}

func newCatalog(t *testing.T, n int) *catalog.Catalog {
	t.Helper()
	entries := make([]*catalog.Entry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, newEntry(fmt.Sprintf("w%02d", i)))
	}
	c, err := catalog.New(entries)
	require.NoError(t, err)
	return c
}

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
