package config

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Validate checks business rules on the loaded configuration. Load calls it.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range (got %d)", c.Server.Port)
	}
	if c.Server.SessionTTL <= 0 {
		return fmt.Errorf("server.session_ttl must be > 0 (got %v)", c.Server.SessionTTL)
	}
	if c.Server.JanitorInterval <= 0 {
		return fmt.Errorf("server.janitor_interval must be > 0 (got %v)", c.Server.JanitorInterval)
	}
	if err := c.Quiz.validate(); err != nil {
		return fmt.Errorf("quiz: %w", err)
	}
	if strings.TrimSpace(c.Assets.CatalogPath) == "" {
		return fmt.Errorf("assets.catalog_path is required")
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}
	return nil
}

func (q *QuizConfig) validate() error {
	if q.QuestionCount <= 0 {
		return fmt.Errorf("question_count must be > 0 (got %d)", q.QuestionCount)
	}
	if q.PronunciationDelay < 0 {
		return fmt.Errorf("pronunciation_delay must be >= 0 (got %v)", q.PronunciationDelay)
	}
	if _, err := q.Tag(); err != nil {
		return fmt.Errorf("locale: %w", err)
	}
	switch q.SoundMode {
	case "file", "synth":
	default:
		return fmt.Errorf("sound_mode must be file or synth (got %q)", q.SoundMode)
	}
	return nil
}

// Tag parses Locale as a BCP 47 language tag.
func (q QuizConfig) Tag() (language.Tag, error) {
	return language.Parse(q.Locale)
}
