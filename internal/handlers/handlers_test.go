package handlers

import (
	"bufio"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"lexiquiz/internal/catalog"
	"lexiquiz/internal/game"
	"lexiquiz/internal/quiz"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]*catalog.Entry{
		{ID: "dog", Gloss: "chien", Forms: map[catalog.Language]string{catalog.Wolof: "xaj", catalog.Pulaar: "rawaandu"}},
		{ID: "water", Gloss: "eau", Forms: map[catalog.Language]string{catalog.Wolof: "ndox", catalog.Pulaar: "ndiyam"}},
		{ID: "sun", Gloss: "soleil", Forms: map[catalog.Language]string{catalog.Wolof: "jant", catalog.Pulaar: "naange"}},
	})
	require.NoError(t, err)
	return c
}

func newRouter(t *testing.T) (*chi.Mux, *game.Store) {
	t.Helper()
	log := zaptest.NewLogger(t).Sugar()
	store := game.NewStore(testCatalog(t), game.Options{Delay: 10 * time.Millisecond}, nil)
	r := chi.NewRouter()
	r.Use(RequestLogger(log))
	NewHomeHandler(store, log).RegisterRoutes(r)
	NewPlayHandler(store, log, time.Second).RegisterRoutes(r)
	return r, store
}

func do(t *testing.T, h http.Handler, method, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func createPlay(t *testing.T, h http.Handler, lang string) string {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/play", url.Values{"lang": {lang}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	loc := rec.Header().Get("Location")
	require.True(t, strings.HasPrefix(loc, "/play/"), loc)
	return strings.TrimPrefix(loc, "/play/")
}

func targetOption(t *testing.T, store *game.Store, id string) quiz.Option {
	t.Helper()
	play, err := store.Get(id)
	require.NoError(t, err)
	snap := play.Snapshot()
	for _, opt := range snap.Options {
		if opt.Language == snap.Target {
			return opt
		}
	}
	t.Fatal("target option missing")
	return quiz.Option{}
}

func answerForm(opt quiz.Option) url.Values {
	return url.Values{"lang": {opt.Language.String()}, "word": {opt.Word}}
}

func TestMenu(t *testing.T) {
	r, _ := newRouter(t)
	rec := do(t, r, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Choisissez une langue")
	assert.Contains(t, body, "Seereer Sine")
	assert.Contains(t, body, `value="saafisaafi"`)
	assert.Equal(t, 14, strings.Count(body, `name="lang"`))
}

func TestRoundTrip(t *testing.T) {
	r, store := newRouter(t)
	id := createPlay(t, r, "Wolof")

	rec := do(t, r, http.MethodGet, "/play/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Trouvez 3 mots en Wolof")

	require.Equal(t, http.StatusSeeOther, do(t, r, http.MethodPost, "/play/"+id+"/start", nil).Code)

	for i := 1; i <= 3; i++ {
		page := do(t, r, http.MethodGet, "/play/"+id, nil).Body.String()
		assert.Contains(t, page, "Question "+string(rune('0'+i))+" / 3")
		if i == 1 {
			assert.NotContains(t, page, "data-confirm-leave")
		} else {
			assert.Contains(t, page, `data-confirm-leave="true"`)
		}

		if i == 2 {
			wrong := url.Values{"lang": {"pulaar"}}
			play, _ := store.Get(id)
			for _, opt := range play.Snapshot().Options {
				if opt.Language == catalog.Pulaar {
					wrong.Set("word", opt.Word)
				}
			}
			require.Equal(t, http.StatusSeeOther, do(t, r, http.MethodPost, "/play/"+id+"/answer", wrong).Code)
			page = do(t, r, http.MethodGet, "/play/"+id, nil).Body.String()
			assert.Contains(t, page, "Incorrect")
			assert.Contains(t, page, "Essayer encore")
			assert.Contains(t, page, "/play/"+id+"/retry")
			require.Equal(t, http.StatusSeeOther, do(t, r, http.MethodPost, "/play/"+id+"/retry", nil).Code)
		}

		rec := do(t, r, http.MethodPost, "/play/"+id+"/answer", answerForm(targetOption(t, store, id)))
		require.Equal(t, http.StatusSeeOther, rec.Code)
		page = do(t, r, http.MethodGet, "/play/"+id, nil).Body.String()
		assert.Contains(t, page, "Correct")
		assert.Contains(t, page, "Prochaine question")

		require.Equal(t, http.StatusSeeOther, do(t, r, http.MethodPost, "/play/"+id+"/next", nil).Code)
	}

	page := do(t, r, http.MethodGet, "/play/"+id, nil).Body.String()
	assert.Contains(t, page, "Félicitations !")
	assert.Contains(t, page, "2 / 3")
	assert.Contains(t, page, "dès le premier essai")

	require.Equal(t, http.StatusSeeOther, do(t, r, http.MethodPost, "/play/"+id+"/restart", nil).Code)
	assert.Contains(t, do(t, r, http.MethodGet, "/play/"+id, nil).Body.String(), "Question 1 / 3")

	rec = do(t, r, http.MethodPost, "/play/"+id+"/menu", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/play/"+id, nil).Code)
}

func TestQuestionChoicesHideLanguage(t *testing.T) {
	r, store := newRouter(t)
	id := createPlay(t, r, "wolof")
	require.Equal(t, http.StatusSeeOther, do(t, r, http.MethodPost, "/play/"+id+"/start", nil).Code)

	page := do(t, r, http.MethodGet, "/play/"+id, nil).Body.String()
	start := strings.Index(page, `<div class="choices">`)
	require.GreaterOrEqual(t, start, 0, "choices block missing")
	end := strings.Index(page[start:], "</div>")
	require.Greater(t, end, 0)
	choices := page[start : start+end]

	assert.Contains(t, choices, `value="`+targetOption(t, store, id).Word+`"`)
	assert.NotContains(t, choices, "title=")
	for _, lang := range catalog.Languages() {
		assert.NotContains(t, choices, lang.DisplayName())
	}
}

func TestErrors(t *testing.T) {
	r, store := newRouter(t)

	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/play/nope", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodPost, "/play/nope/start", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodPost, "/play/nope/menu", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/play/nope/stream", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPost, "/play", url.Values{"lang": {"latin"}}).Code)
	assert.Equal(t, 0, store.Len())

	id := createPlay(t, r, "noon")
	rec := do(t, r, http.MethodPost, "/play/"+id+"/next", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "advance not allowed")

	require.Equal(t, http.StatusSeeOther, do(t, r, http.MethodPost, "/play/"+id+"/start", nil).Code)
	assert.Equal(t, http.StatusBadRequest,
		do(t, r, http.MethodPost, "/play/"+id+"/answer", url.Values{"lang": {"xx"}, "word": {"a"}}).Code)
	assert.Equal(t, http.StatusConflict,
		do(t, r, http.MethodPost, "/play/"+id+"/answer", url.Values{"lang": {"noon"}, "word": {"zzz"}}).Code)

	play, _ := store.Get(id)
	assert.Equal(t, quiz.StateInQuestion, play.Snapshot().State)
	assert.Equal(t, 0, play.Snapshot().FirstTryCorrect)
}

func TestStream(t *testing.T) {
	r, store := newRouter(t)
	srv := httptest.NewServer(r)
	defer srv.Close()

	id := createPlay(t, r, "wolof")
	require.Equal(t, http.StatusSeeOther, do(t, r, http.MethodPost, "/play/"+id+"/start", nil).Code)

	resp, err := http.Get(srv.URL + "/play/" + id + "/stream")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := make(chan string, 32)
	go func() {
		sc := bufio.NewScanner(resp.Body)
		for sc.Scan() {
			lines <- sc.Text()
		}
		close(lines)
	}()
	require.Equal(t, ": connected", <-lines)

	opt := targetOption(t, store, id)
	require.Equal(t, http.StatusSeeOther, do(t, r, http.MethodPost, "/play/"+id+"/answer", answerForm(opt)).Code)

	var got []string
	timeout := time.After(2 * time.Second)
	for len(got) < 4 {
		select {
		case line, ok := <-lines:
			require.True(t, ok, "stream closed early")
			if line != "" {
				got = append(got, line)
			}
		case <-timeout:
			t.Fatalf("timed out, got %v", got)
		}
	}
	assert.Equal(t, "event: cue", got[0])
	assert.Equal(t, `data: {"kind":"sound","src":"/sounds/ding.mp3"}`, got[1])
	assert.Equal(t, "event: cue", got[2])
	assert.Contains(t, got[3], "/audio/wolof/")

	// Leaving closes the stream.
	require.Equal(t, http.StatusSeeOther, do(t, r, http.MethodPost, "/play/"+id+"/menu", nil).Code)
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-lines:
			return !ok
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}
