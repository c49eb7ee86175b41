package quiz

import (
	"math/rand"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"lexiquiz/internal/catalog"
)

// Option is one answer button: a language and its word form.
type Option struct {
	Language catalog.Language
	Word     string
}

// OptionBuilder produces the answer buttons for a question.
type OptionBuilder struct {
	rng    *rand.Rand
	locale language.Tag
}

// NewOptionBuilder creates a builder that shuffles with rng and sorts for locale.
func NewOptionBuilder(rng *rand.Rand, locale language.Tag) *OptionBuilder {
	return &OptionBuilder{rng: rng, locale: locale}
}

// Build returns one option per distinct word form of entry, with the target
// language present exactly once, sorted ignoring case and diacritics.
func (b *OptionBuilder) Build(entry *catalog.Entry, target catalog.Language, languages []catalog.Language) []Option {
	options := make([]Option, 0, len(languages))
	for _, lang := range languages {
		options = append(options, Option{Language: lang, Word: entry.Form(lang)})
	}

	// The shuffle decides which language survives a collision not involving the target.
	b.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	options = dedupe(options, target)

	c := collate.New(b.locale, collate.Loose)
	sort.SliceStable(options, func(i, j int) bool {
		return c.CompareString(options[i].Word, options[j].Word) < 0
	})
	return options
}

// dedupe keeps the first option for each word text, letting the target
// language take over the slot of an identical word.
func dedupe(options []Option, target catalog.Language) []Option {
	seen := make(map[string]int, len(options))
	out := make([]Option, 0, len(options))
	for _, opt := range options {
		idx, ok := seen[opt.Word]
		if !ok {
			seen[opt.Word] = len(out)
			out = append(out, opt)
			continue
		}
		if opt.Language == target && out[idx].Language != target {
			out[idx] = opt
		}
	}
	return out
}
