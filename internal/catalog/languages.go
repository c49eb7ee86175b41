package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedLanguage is returned for codes outside the fixed language set.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Language is one of the codes used as keys in the word forms of every entry.
type Language string

const (
	Balante     Language = "balante"
	Bandial     Language = "bandial"
	Bayot       Language = "bayot"
	Fonyi       Language = "fonyi"
	Kassa       Language = "kassa"
	Laalaa      Language = "laalaa"
	Mancagne    Language = "mancagne"
	Manjak      Language = "manjak"
	Ndut        Language = "ndut"
	Noon        Language = "noon"
	Pulaar      Language = "pulaar"
	SaafiSaafi  Language = "saafisaafi"
	SeereerSine Language = "seereersine"
	Wolof       Language = "wolof"
)

var languages = []Language{
	Balante, Bandial, Bayot, Fonyi, Kassa, Laalaa, Mancagne,
	Manjak, Ndut, Noon, Pulaar, SaafiSaafi, SeereerSine, Wolof,
}

var displayNames = map[Language]string{
	SeereerSine: "Seereer Sine",
	SaafiSaafi:  "Saafi-Saafi",
}

// Languages returns the supported language codes in menu order.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// ParseLanguage normalizes s and checks it against the supported set.
func ParseLanguage(s string) (Language, error) {
	lang := Language(strings.ToLower(strings.TrimSpace(s)))
	if !lang.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
	}
	return lang, nil
}

// Valid reports whether l belongs to the supported set.
func (l Language) Valid() bool {
	for _, known := range languages {
		if l == known {
			return true
		}
	}
	return false
}

// DisplayName returns the label shown on buttons and in feedback popups.
func (l Language) DisplayName() string {
	if name, ok := displayNames[l]; ok {
		return name
	}
	s := string(l)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// AudioPath is the pronunciation recording of entry id in this language.
func (l Language) AudioPath(id string) string {
	return "audio/" + string(l) + "/" + id + ".mp3"
}

func (l Language) String() string {
	return string(l)
}
