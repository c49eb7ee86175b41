package game

import (
	"sync"
	"time"

	"lexiquiz/internal/catalog"
	"lexiquiz/internal/quiz"
)

// Play is one browser's quiz. Every method locks; the session is never
// touched outside the lock.
type Play struct {
	ID        string
	CreatedAt time.Time

	mu         sync.Mutex
	session    *quiz.Session
	lastActive time.Time
}

func (p *Play) do(fn func(s *quiz.Session) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastActive = time.Now().UTC()
	return fn(p.session)
}

// Start shows the first question.
func (p *Play) Start() error {
	return p.do((*quiz.Session).Start)
}

// Answer submits the option (lang, word).
func (p *Play) Answer(lang catalog.Language, word string) (quiz.Outcome, error) {
	var out quiz.Outcome
	err := p.do(func(s *quiz.Session) error {
		var err error
		out, err = s.Answer(lang, word)
		return err
	})
	return out, err
}

// DismissRetry closes the incorrect popup.
func (p *Play) DismissRetry() error {
	return p.do((*quiz.Session).DismissRetry)
}

// Advance moves to the next question.
func (p *Play) Advance() error {
	return p.do((*quiz.Session).Advance)
}

// Restart draws a new question set in the same language.
func (p *Play) Restart() error {
	return p.do((*quiz.Session).Restart)
}

// ReturnToMenu abandons the game.
func (p *Play) ReturnToMenu() {
	_ = p.do(func(s *quiz.Session) error {
		s.ReturnToMenu()
		return nil
	})
}

// Snapshot returns a consistent view of the session for rendering.
func (p *Play) Snapshot() quiz.Snapshot {
	var snap quiz.Snapshot
	_ = p.do(func(s *quiz.Session) error {
		snap = s.Snapshot()
		return nil
	})
	return snap
}

// LastActive is the time of the most recent call on the play.
func (p *Play) LastActive() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastActive
}
