// Package quiz implements the vocabulary quiz: question sampling, answer
// options and the per-player session state machine.
package quiz

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/text/language"

	"lexiquiz/internal/catalog"
)

// State is the screen a session is on.
type State string

const (
	StateMenu             State = "menu"
	StateLanguageSelected State = "language_selected"
	StateInQuestion       State = "in_question"
	StateAwaitingRetry    State = "awaiting_retry"
	StateAdvancing        State = "advancing"
	StateFinished         State = "finished"
)

var (
	// ErrInvalidTransition matches every *TransitionError.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrUnknownOption is returned when an answer is not one of the offered buttons.
	ErrUnknownOption = errors.New("not an offered option")
)

// TransitionError reports an operation attempted from a state that does not allow it.
type TransitionError struct {
	Op    string
	State State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s not allowed in state %s", e.Op, e.State)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// OutcomeKind says whether an answer was right.
type OutcomeKind string

const (
	OutcomeCorrect   OutcomeKind = "correct"
	OutcomeIncorrect OutcomeKind = "incorrect"
)

// Outcome is the result of one answer. For a correct answer Language and Word
// are the target's; for an incorrect one they are what the player clicked.
type Outcome struct {
	Kind     OutcomeKind
	Language catalog.Language
	Word     string
	EntryID  string
}

// Feedback receives answer outcomes and plays the matching cues.
type Feedback interface {
	Dispatch(Outcome)
	// Cancel drops any cue still scheduled for the current question.
	Cancel()
}

// Config tunes a session. Zero values select the defaults.
type Config struct {
	QuestionCount int
	Locale        language.Tag
	Rand          *rand.Rand
	Feedback      Feedback
}

// Session is the state of one player's game. It is not safe for concurrent use.
type Session struct {
	catalog   *catalog.Catalog
	count     int
	languages []catalog.Language
	builder   *OptionBuilder
	rng       *rand.Rand
	feedback  Feedback

	state     State
	target    catalog.Language
	questions []*Question
	index     int
	firstTry  int
	options   []Option
	outcome   *Outcome
}

// NewSession creates a session on the menu screen.
func NewSession(cat *catalog.Catalog, cfg Config) *Session {
	if cfg.QuestionCount <= 0 {
		cfg.QuestionCount = DefaultQuestionCount
	}
	if cfg.Locale == language.Und {
		cfg.Locale = language.French
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Session{
		catalog:   cat,
		count:     cfg.QuestionCount,
		languages: catalog.Languages(),
		builder:   NewOptionBuilder(cfg.Rand, cfg.Locale),
		rng:       cfg.Rand,
		feedback:  cfg.Feedback,
		state:     StateMenu,
	}
}

// SelectLanguage sets the target language from the menu or the final screen.
func (s *Session) SelectLanguage(lang catalog.Language) error {
	if s.state != StateMenu && s.state != StateFinished {
		return s.invalid("select language")
	}
	if !lang.Valid() {
		return fmt.Errorf("%w: %q", catalog.ErrUnsupportedLanguage, string(lang))
	}
	s.reset()
	s.target = lang
	s.state = StateLanguageSelected
	return nil
}

// Start draws a fresh question set and shows the first question.
func (s *Session) Start() error {
	if s.state != StateLanguageSelected && s.state != StateFinished {
		return s.invalid("start")
	}
	s.begin()
	return nil
}

// Restart behaves like Start from any state once a language has been chosen.
func (s *Session) Restart() error {
	if s.target == "" {
		return s.invalid("restart")
	}
	s.begin()
	return nil
}

func (s *Session) begin() {
	s.cancelFeedback()
	s.questions = Sample(s.catalog.Entries(), s.count, s.rng)
	s.index = 0
	s.firstTry = 0
	s.outcome = nil
	s.state = StateInQuestion
	s.options = s.builder.Build(s.questions[0].Entry, s.target, s.languages)
}

// Answer evaluates a click on the option (lang, word) of the current question.
// Only a correct answer on a question never attempted before earns a point.
func (s *Session) Answer(lang catalog.Language, word string) (Outcome, error) {
	if s.state != StateInQuestion && s.state != StateAwaitingRetry {
		return Outcome{}, s.invalid("answer")
	}
	if !lang.Valid() {
		return Outcome{}, fmt.Errorf("%w: %q", catalog.ErrUnsupportedLanguage, string(lang))
	}
	if !s.offered(lang, word) {
		return Outcome{}, fmt.Errorf("%w: %s %q", ErrUnknownOption, lang, word)
	}

	q := s.questions[s.index]
	var out Outcome
	if lang == s.target {
		if !q.Attempted {
			s.firstTry++
		}
		q.Attempted = true
		out = Outcome{
			Kind:     OutcomeCorrect,
			Language: s.target,
			Word:     q.Entry.Form(s.target),
			EntryID:  q.Entry.ID,
		}
		s.state = StateAdvancing
	} else {
		q.Attempted = true
		out = Outcome{
			Kind:     OutcomeIncorrect,
			Language: lang,
			Word:     word,
			EntryID:  q.Entry.ID,
		}
		s.state = StateAwaitingRetry
	}
	s.outcome = &out

	if s.feedback != nil {
		s.feedback.Dispatch(out)
	}
	return out, nil
}

// DismissRetry closes the incorrect popup and lets the player try the same question again.
func (s *Session) DismissRetry() error {
	if s.state != StateAwaitingRetry {
		return s.invalid("dismiss retry")
	}
	s.cancelFeedback()
	s.outcome = nil
	s.state = StateInQuestion
	return nil
}

// Advance moves past a correctly answered question, finishing after the last one.
func (s *Session) Advance() error {
	if s.state != StateAdvancing {
		return s.invalid("advance")
	}
	s.cancelFeedback()
	s.outcome = nil
	s.index++
	if s.index == len(s.questions) {
		s.options = nil
		s.state = StateFinished
		return nil
	}
	s.options = s.builder.Build(s.questions[s.index].Entry, s.target, s.languages)
	s.state = StateInQuestion
	return nil
}

// ReturnToMenu discards the game from any state.
func (s *Session) ReturnToMenu() {
	s.reset()
	s.target = ""
	s.state = StateMenu
}

func (s *Session) reset() {
	s.cancelFeedback()
	s.questions = nil
	s.index = 0
	s.firstTry = 0
	s.options = nil
	s.outcome = nil
}

func (s *Session) cancelFeedback() {
	if s.feedback != nil {
		s.feedback.Cancel()
	}
}

func (s *Session) offered(lang catalog.Language, word string) bool {
	for _, opt := range s.options {
		if opt.Language == lang && opt.Word == word {
			return true
		}
	}
	return false
}

func (s *Session) invalid(op string) error {
	return &TransitionError{Op: op, State: s.state}
}

func (s *Session) inQuestion() bool {
	return s.state == StateInQuestion || s.state == StateAwaitingRetry || s.state == StateAdvancing
}

// State returns the current screen.
func (s *Session) State() State {
	return s.state
}

// Target returns the selected language, or "" on the menu.
func (s *Session) Target() catalog.Language {
	return s.target
}

// Index is the zero-based position of the current question.
func (s *Session) Index() int {
	return s.index
}

// QuestionCount is the size of the current question set, or of the next
// one while none has been drawn.
func (s *Session) QuestionCount() int {
	if s.questions != nil {
		return len(s.questions)
	}
	return min(s.count, s.catalog.Len())
}

// FirstTryCorrect is the number of questions answered correctly on the first attempt.
func (s *Session) FirstTryCorrect() int {
	return s.firstTry
}

// Questions returns a copy of the question set.
func (s *Session) Questions() []Question {
	out := make([]Question, 0, len(s.questions))
	for _, q := range s.questions {
		out = append(out, *q)
	}
	return out
}

// Options returns the buttons offered for the current question.
func (s *Session) Options() []Option {
	out := make([]Option, len(s.options))
	copy(out, s.options)
	return out
}

// ConfirmLeave reports whether leaving now would abandon a game in progress.
func (s *Session) ConfirmLeave() bool {
	return s.inQuestion() && s.index > 0 && s.index < len(s.questions)
}

// Snapshot is a read-only copy of everything needed to render a session.
type Snapshot struct {
	State           State
	Target          catalog.Language
	Index           int
	Count           int
	FirstTryCorrect int
	Entry           *catalog.Entry
	Attempted       bool
	Options         []Option
	Outcome         *Outcome
	ConfirmLeave    bool
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		State:           s.state,
		Target:          s.target,
		Index:           s.index,
		Count:           s.QuestionCount(),
		FirstTryCorrect: s.firstTry,
		Options:         s.Options(),
		ConfirmLeave:    s.ConfirmLeave(),
	}
	if s.inQuestion() {
		q := s.questions[s.index]
		snap.Entry = q.Entry
		snap.Attempted = q.Attempted
	}
	if s.outcome != nil {
		out := *s.outcome
		snap.Outcome = &out
	}
	return snap
}
