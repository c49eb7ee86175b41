package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"lexiquiz/internal/catalog"
)

func requireOptionContract(t *testing.T, options []Option, target catalog.Language) {
	t.Helper()
	require.LessOrEqual(t, len(options), len(catalog.Languages()))

	targets := 0
	words := make(map[string]bool)
	for _, opt := range options {
		if opt.Language == target {
			targets++
		}
		require.False(t, words[opt.Word], "duplicate word %q", opt.Word)
		words[opt.Word] = true
	}
	require.Equal(t, 1, targets, "target %s must appear exactly once", target)

	c := collate.New(language.French, collate.Loose)
	for i := 1; i < len(options); i++ {
		require.LessOrEqual(t, c.CompareString(options[i-1].Word, options[i].Word), 0,
			"options out of order: %q before %q", options[i-1].Word, options[i].Word)
	}
}

func TestBuild_AllDistinct(t *testing.T) {
	b := NewOptionBuilder(seeded(1), language.French)
	options := b.Build(newEntry("dog"), catalog.Wolof, catalog.Languages())
	assert.Len(t, options, 14)
	requireOptionContract(t, options, catalog.Wolof)
}

func TestBuild_CollisionKeepsTarget(t *testing.T) {
	entry := newEntry("water")
	entry.Forms[catalog.Wolof] = "ndox"
	entry.Forms[catalog.Pulaar] = "ndox"
	entry.Forms[catalog.Noon] = "ndox"

	for seed := int64(0); seed < 50; seed++ {
		b := NewOptionBuilder(seeded(seed), language.French)
		options := b.Build(entry, catalog.Wolof, catalog.Languages())
		require.Len(t, options, 12)
		requireOptionContract(t, options, catalog.Wolof)
		for _, opt := range options {
			if opt.Word == "ndox" {
				assert.Equal(t, catalog.Wolof, opt.Language)
			}
		}
	}
}

func TestBuild_CollisionWithoutTargetKeepsOne(t *testing.T) {
	entry := newEntry("sun")
	entry.Forms[catalog.Kassa] = "naak"
	entry.Forms[catalog.Bayot] = "naak"

	survivors := make(map[catalog.Language]bool)
	for seed := int64(0); seed < 100; seed++ {
		b := NewOptionBuilder(seeded(seed), language.French)
		options := b.Build(entry, catalog.Wolof, catalog.Languages())
		require.Len(t, options, 13)
		requireOptionContract(t, options, catalog.Wolof)
		for _, opt := range options {
			if opt.Word == "naak" {
				survivors[opt.Language] = true
			}
		}
	}
	assert.Len(t, survivors, 2, "either colliding language may survive")
}

func TestBuild_MissingFormsCollapse(t *testing.T) {
	entry := &catalog.Entry{ID: "x", Forms: map[catalog.Language]string{
		catalog.Wolof:  "xar",
		catalog.Pulaar: "mbaalu",
	}}
	b := NewOptionBuilder(seeded(7), language.French)
	options := b.Build(entry, catalog.Wolof, catalog.Languages())
	requireOptionContract(t, options, catalog.Wolof)
	assert.Len(t, options, 3)
	assert.Equal(t, "", options[0].Word, "the empty form sorts first")
}

func TestBuild_MissingTargetFormStillOffered(t *testing.T) {
	entry := &catalog.Entry{ID: "x", Forms: map[catalog.Language]string{
		catalog.Pulaar: "mbaalu",
	}}
	b := NewOptionBuilder(seeded(7), language.French)
	options := b.Build(entry, catalog.Wolof, catalog.Languages())
	requireOptionContract(t, options, catalog.Wolof)
	assert.Equal(t, Option{Language: catalog.Wolof, Word: ""}, options[0])
}

func TestBuild_SortIgnoresCaseAndAccents(t *testing.T) {
	entry := &catalog.Entry{ID: "x", Forms: map[catalog.Language]string{
		catalog.Wolof:  "Éb",
		catalog.Pulaar: "ea",
		catalog.Kassa:  "ec",
	}}
	langs := []catalog.Language{catalog.Wolof, catalog.Pulaar, catalog.Kassa}
	b := NewOptionBuilder(seeded(1), language.French)
	options := b.Build(entry, catalog.Wolof, langs)
	require.Len(t, options, 3)
	assert.Equal(t, []string{"ea", "Éb", "ec"}, []string{options[0].Word, options[1].Word, options[2].Word})
}

func TestDedupe(t *testing.T) {
	in := []Option{
		{Language: catalog.Kassa, Word: "a"},
		{Language: catalog.Bayot, Word: "b"},
		{Language: catalog.Wolof, Word: "a"},
		{Language: catalog.Noon, Word: "b"},
	}
	got := dedupe(in, catalog.Wolof)
	assert.Equal(t, []Option{
		{Language: catalog.Wolof, Word: "a"},
		{Language: catalog.Bayot, Word: "b"},
	}, got)
}
