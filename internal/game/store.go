package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"lexiquiz/internal/catalog"
	"lexiquiz/internal/feedback"
	"lexiquiz/internal/quiz"
	"lexiquiz/pkg/realtime"
)

// ErrNotFound is returned for an unknown or expired play id.
var ErrNotFound = errors.New("play not found")

// CueEvent is the SSE event name carrying a feedback.Cue.
const CueEvent = "cue"

// Options configures every play created by a Store.
type Options struct {
	QuestionCount int
	Locale        language.Tag
	Delay         time.Duration
	SoundMode     string
	// Assets, when set, is checked before a cue is emitted.
	Assets fs.FS
}

// Store holds plays and delegates to realtime.RoomStore for lookup and broadcast.
type Store struct {
	r       *realtime.RoomStore[*Play]
	catalog *catalog.Catalog
	opts    Options
	log     *zap.SugaredLogger
}

// NewStore creates an in-memory play store over cat.
func NewStore(cat *catalog.Catalog, opts Options, log *zap.SugaredLogger) *Store {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Store{
		r:       realtime.NewRoomStore[*Play](),
		catalog: cat,
		opts:    opts,
		log:     log,
	}
}

// Create registers a new play with lang already selected.
func (s *Store) Create(lang catalog.Language) (*Play, error) {
	id := uuid.NewString()
	log := s.log.With("play", id)

	sink := func(c feedback.Cue) {
		data, err := json.Marshal(c)
		if err != nil {
			log.Errorw("failed to encode cue", "error", err)
			return
		}
		s.r.Publish(id, realtime.Event{Name: CueEvent, Data: string(data)})
	}
	player, err := feedback.NewPlayer(s.opts.SoundMode, s.opts.Assets, sink)
	if err != nil {
		return nil, err
	}

	session := quiz.NewSession(s.catalog, quiz.Config{
		QuestionCount: s.opts.QuestionCount,
		Locale:        s.opts.Locale,
		Feedback:      feedback.NewDispatcher(player, s.opts.Delay, log),
	})
	if err := session.SelectLanguage(lang); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &Play{ID: id, CreatedAt: now, lastActive: now, session: session}
	s.r.Create(id, p)
	log.Debugw("play created", "lang", lang)
	return p, nil
}

// Get returns a play by ID.
func (s *Store) Get(id string) (*Play, error) {
	room, ok := s.r.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return room.State, nil
}

// Broadcaster returns the SSE broadcaster for a play.
func (s *Store) Broadcaster(id string) (*realtime.Broadcaster, error) {
	hub, ok := s.r.Broadcaster(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return hub, nil
}

// Delete drops a play, silencing its pending cues and closing its streams.
func (s *Store) Delete(id string) bool {
	if room, ok := s.r.Get(id); ok {
		room.State.ReturnToMenu()
	}
	return s.r.Delete(id)
}

// Len returns the number of live plays.
func (s *Store) Len() int {
	return s.r.Len()
}

// Sweep deletes plays idle for longer than ttl and returns how many went.
func (s *Store) Sweep(now time.Time, ttl time.Duration) int {
	removed := 0
	s.r.Range(func(room *realtime.Room[*Play]) bool {
		if now.Sub(room.State.LastActive()) > ttl {
			if s.Delete(room.ID) {
				removed++
			}
		}
		return true
	})
	return removed
}

// RunJanitor sweeps idle plays every interval until ctx is done.
func (s *Store) RunJanitor(ctx context.Context, every, ttl time.Duration) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if n := s.Sweep(now.UTC(), ttl); n > 0 {
				s.log.Infow("swept idle plays", "removed", n, "remaining", s.Len())
			}
		}
	}
}
