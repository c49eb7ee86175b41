// Package catalog holds the word list the quiz draws its questions from.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// Fixed interface sounds, relative to the asset root.
const (
	ChimeSound   = "sounds/ding.mp3"
	FailureSound = "sounds/thud.mp3"
)

// Entry is one quiz item: an image/gloss plus its word form in each language.
// Entries are shared read-only by every session once loaded.
type Entry struct {
	ID    string              `json:"id"`
	Gloss string              `json:"gloss_fr"`
	Forms map[Language]string `json:"forms"`
}

// Form returns the word form for lang, or "" when the translation is missing.
func (e *Entry) Form(lang Language) string {
	return e.Forms[lang]
}

// ImagePath is the illustration shown with the question.
func (e *Entry) ImagePath() string {
	return "images/" + e.ID + ".png"
}

// Catalog is an immutable, validated list of entries.
type Catalog struct {
	entries []*Entry
	byID    map[string]*Entry
}

// New validates entries and builds a catalog around them.
func New(entries []*Entry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, errors.New("catalog has no entries")
	}
	byID := make(map[string]*Entry, len(entries))
	for i, entry := range entries {
		if entry == nil {
			return nil, fmt.Errorf("entry %d is null", i)
		}
		if entry.ID == "" {
			return nil, fmt.Errorf("entry %d has no id", i)
		}
		if _, dup := byID[entry.ID]; dup {
			return nil, fmt.Errorf("duplicate entry id %q", entry.ID)
		}
		byID[entry.ID] = entry
	}
	return &Catalog{entries: entries, byID: byID}, nil
}

// Load decodes a word list document of the form {"words": [...]}.
func Load(r io.Reader) (*Catalog, error) {
	var doc struct {
		Words *[]*Entry `json:"words"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode word list: %w", err)
	}
	if doc.Words == nil {
		return nil, errors.New("word list has no words field")
	}
	return New(*doc.Words)
}

// LoadFile reads and decodes the word list at path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list: %w", err)
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns the entries in file order. The slice is fresh; the entries are shared.
func (c *Catalog) Entries() []*Entry {
	out := make([]*Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Entry looks up an entry by id.
func (c *Catalog) Entry(id string) (*Entry, bool) {
	e, ok := c.byID[id]
	return e, ok
}
