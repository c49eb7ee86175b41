package game

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"lexiquiz/internal/catalog"
	"lexiquiz/internal/feedback"
	"lexiquiz/internal/quiz"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	entries := []*catalog.Entry{
		{ID: "dog", Gloss: "chien", Forms: map[catalog.Language]string{catalog.Wolof: "xaj", catalog.Pulaar: "rawaandu"}},
		{ID: "water", Gloss: "eau", Forms: map[catalog.Language]string{catalog.Wolof: "ndox", catalog.Pulaar: "ndiyam"}},
		{ID: "sun", Gloss: "soleil", Forms: map[catalog.Language]string{catalog.Wolof: "jant", catalog.Pulaar: "naange"}},
	}
	c, err := catalog.New(entries)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return c
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(testCatalog(t), Options{Delay: 10 * time.Millisecond}, nil)
}

func target(t *testing.T, p *Play) quiz.Option {
	t.Helper()
	snap := p.Snapshot()
	for _, opt := range snap.Options {
		if opt.Language == snap.Target {
			return opt
		}
	}
	t.Fatal("target option missing")
	return quiz.Option{}
}

func TestStore_CreateGet(t *testing.T) {
	s := newTestStore(t)
	p, err := s.Create(catalog.Wolof)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID == "" {
		t.Error("play ID is empty")
	}
	if got := p.Snapshot().State; got != quiz.StateLanguageSelected {
		t.Errorf("state %q, want %q", got, quiz.StateLanguageSelected)
	}

	got, err := s.Get(p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != p {
		t.Error("Get returned different pointer")
	}

	if _, err := s.Get("nonexistent"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing: err %v, want ErrNotFound", err)
	}
}

func TestStore_CreateUnsupportedLanguage(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Create("latin"); !errors.Is(err, catalog.ErrUnsupportedLanguage) {
		t.Fatalf("err %v, want ErrUnsupportedLanguage", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len %d, want 0", s.Len())
	}
}

func TestStore_CreateUnknownSoundMode(t *testing.T) {
	s := NewStore(testCatalog(t), Options{SoundMode: "midi"}, nil)
	if _, err := s.Create(catalog.Wolof); err == nil {
		t.Fatal("expected error for unknown sound mode")
	}
}

func TestStore_AnswerPublishesCues(t *testing.T) {
	s := newTestStore(t)
	p, err := s.Create(catalog.Wolof)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	hub, err := s.Broadcaster(p.ID)
	if err != nil {
		t.Fatalf("Broadcaster: %v", err)
	}
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	if err := p.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	opt := target(t, p)
	if _, err := p.Answer(opt.Language, opt.Word); err != nil {
		t.Fatalf("Answer: %v", err)
	}

	var srcs []string
	timeout := time.After(time.Second)
	for len(srcs) < 2 {
		select {
		case ev := <-ch:
			if ev.Name != CueEvent {
				t.Fatalf("event %q, want %q", ev.Name, CueEvent)
			}
			var cue feedback.Cue
			if err := json.Unmarshal([]byte(ev.Data), &cue); err != nil {
				t.Fatalf("decode cue: %v", err)
			}
			srcs = append(srcs, cue.Src)
		case <-timeout:
			t.Fatalf("timed out with cues %v", srcs)
		}
	}
	if srcs[0] != "/"+catalog.ChimeSound {
		t.Errorf("first cue %q, want chime", srcs[0])
	}
	entry := p.Snapshot().Entry
	if want := "/" + catalog.Wolof.AudioPath(entry.ID); srcs[1] != want {
		t.Errorf("second cue %q, want %q", srcs[1], want)
	}
}

func TestStore_FullGame(t *testing.T) {
	s := newTestStore(t)
	p, err := s.Create(catalog.Pulaar)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := p.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	for i := 0; i < 3; i++ {
		opt := target(t, p)
		if _, err := p.Answer(opt.Language, opt.Word); err != nil {
			t.Fatalf("Answer %d: %v", i, err)
		}
		if err := p.Advance(); err != nil {
			t.Fatalf("Advance %d: %v", i, err)
		}
	}
	snap := p.Snapshot()
	if snap.State != quiz.StateFinished {
		t.Errorf("state %q, want finished", snap.State)
	}
	if snap.FirstTryCorrect != 3 || snap.Count != 3 {
		t.Errorf("score %d/%d, want 3/3", snap.FirstTryCorrect, snap.Count)
	}
	if err := p.DismissRetry(); !errors.Is(err, quiz.ErrInvalidTransition) {
		t.Errorf("DismissRetry err %v, want ErrInvalidTransition", err)
	}
	if err := p.Restart(); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if got := p.Snapshot().State; got != quiz.StateInQuestion {
		t.Errorf("state after restart %q", got)
	}
}

func TestStore_DeleteClosesSubscribers(t *testing.T) {
	s := newTestStore(t)
	p, _ := s.Create(catalog.Wolof)
	hub, _ := s.Broadcaster(p.ID)
	ch := hub.Subscribe()

	if !s.Delete(p.ID) {
		t.Fatal("Delete returned false for existing play")
	}
	if _, ok := <-ch; ok {
		t.Error("subscriber channel still open after Delete")
	}
	if got := p.Snapshot().State; got != quiz.StateMenu {
		t.Errorf("deleted play state %q, want menu", got)
	}
	if s.Delete(p.ID) {
		t.Error("second Delete returned true")
	}
	if _, err := s.Broadcaster(p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Broadcaster err %v, want ErrNotFound", err)
	}
}

func TestStore_Sweep(t *testing.T) {
	s := newTestStore(t)
	idle, _ := s.Create(catalog.Wolof)
	active, _ := s.Create(catalog.Noon)

	ttl := time.Minute
	idle.mu.Lock()
	idle.lastActive = time.Now().UTC().Add(-2 * ttl)
	idle.mu.Unlock()

	if n := s.Sweep(time.Now().UTC(), ttl); n != 1 {
		t.Fatalf("Sweep removed %d, want 1", n)
	}
	if _, err := s.Get(idle.ID); !errors.Is(err, ErrNotFound) {
		t.Error("idle play survived sweep")
	}
	if _, err := s.Get(active.ID); err != nil {
		t.Errorf("active play removed: %v", err)
	}
}

func TestStore_RunJanitor(t *testing.T) {
	s := newTestStore(t)
	p, _ := s.Create(catalog.Wolof)
	p.mu.Lock()
	p.lastActive = time.Now().UTC().Add(-time.Hour)
	p.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.RunJanitor(ctx, 5*time.Millisecond, time.Minute) }()

	deadline := time.Now().Add(time.Second)
	for s.Len() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	if err := <-done; err != nil {
		t.Errorf("RunJanitor: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len %d after janitor, want 0", s.Len())
	}
}
