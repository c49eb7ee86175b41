package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"lexiquiz/internal/catalog"
	"lexiquiz/internal/game"
	"lexiquiz/views/pages"
)

type HomeHandler struct {
	store *game.Store
	log   *zap.SugaredLogger
}

func NewHomeHandler(store *game.Store, log *zap.SugaredLogger) *HomeHandler {
	return &HomeHandler{store: store, log: log}
}

func (h *HomeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.home)
	r.Post("/play", h.createPlay)
}

func (h *HomeHandler) home(w http.ResponseWriter, r *http.Request) {
	render(w, r, pages.MenuPage(buildMenu()))
}

func (h *HomeHandler) createPlay(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	lang, err := catalog.ParseLanguage(r.FormValue("lang"))
	if err != nil {
		fail(w, r, h.log, err)
		return
	}
	play, err := h.store.Create(lang)
	if err != nil {
		fail(w, r, h.log, err)
		return
	}
	http.Redirect(w, r, "/play/"+play.ID, http.StatusSeeOther)
}
