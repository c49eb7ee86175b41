package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"lexiquiz/internal/catalog"
	"lexiquiz/internal/game"
	"lexiquiz/internal/quiz"
)

const keepAliveInterval = 25 * time.Second

type PlayHandler struct {
	store   *game.Store
	log     *zap.SugaredLogger
	timeout time.Duration
}

// NewPlayHandler creates the quiz handlers. A positive timeout bounds every
// route except the cue stream.
func NewPlayHandler(store *game.Store, log *zap.SugaredLogger, timeout time.Duration) *PlayHandler {
	return &PlayHandler{store: store, log: log, timeout: timeout}
}

func (h *PlayHandler) RegisterRoutes(r chi.Router) {
	r.Route("/play/{id}", func(r chi.Router) {
		r.Get("/stream", h.stream)
		r.Group(func(r chi.Router) {
			if h.timeout > 0 {
				r.Use(middleware.Timeout(h.timeout))
			}
			r.Get("/", h.page)
			r.Post("/start", h.transition((*game.Play).Start))
			r.Post("/retry", h.transition((*game.Play).DismissRetry))
			r.Post("/next", h.transition((*game.Play).Advance))
			r.Post("/restart", h.transition((*game.Play).Restart))
			r.Post("/answer", h.answer)
			r.Post("/menu", h.menu)
		})
	})
}

func (h *PlayHandler) lookup(w http.ResponseWriter, r *http.Request) (*game.Play, bool) {
	play, err := h.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, h.log, err)
		return nil, false
	}
	return play, true
}

func (h *PlayHandler) page(w http.ResponseWriter, r *http.Request) {
	play, ok := h.lookup(w, r)
	if !ok {
		return
	}
	snap := play.Snapshot()
	if snap.State == quiz.StateMenu {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	render(w, r, pageFor(play.ID, snap))
}

func (h *PlayHandler) transition(op func(*game.Play) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		play, ok := h.lookup(w, r)
		if !ok {
			return
		}
		if err := op(play); err != nil {
			fail(w, r, h.log, err)
			return
		}
		http.Redirect(w, r, "/play/"+play.ID, http.StatusSeeOther)
	}
}

func (h *PlayHandler) answer(w http.ResponseWriter, r *http.Request) {
	play, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	lang, err := catalog.ParseLanguage(r.FormValue("lang"))
	if err != nil {
		fail(w, r, h.log, err)
		return
	}
	out, err := play.Answer(lang, r.FormValue("word"))
	if err != nil {
		fail(w, r, h.log, err)
		return
	}
	h.log.Debugw("answer", "play", play.ID, "outcome", out.Kind, "lang", out.Language, "entry", out.EntryID)
	http.Redirect(w, r, "/play/"+play.ID, http.StatusSeeOther)
}

func (h *PlayHandler) menu(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.store.Delete(id) {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *PlayHandler) stream(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	hub, err := h.store.Broadcaster(id)
	if err != nil {
		fail(w, r, h.log, err)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	_, _ = w.Write([]byte(": connected\n\n"))
	flusher.Flush()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, open := <-sub:
			if !open {
				return
			}
			writeSSE(w, event.Name, event.Data)
			flusher.Flush()
		case <-keepAlive.C:
			_, _ = w.Write([]byte(": keepalive\n\n"))
			flusher.Flush()
		}
	}
}
