package main

import (
	"context"
	"errors"
	"log"
	"mime"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"lexiquiz/internal/catalog"
	"lexiquiz/internal/config"
	"lexiquiz/internal/game"
	"lexiquiz/internal/handlers"
	"lexiquiz/internal/logging"
	"lexiquiz/views"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()
	sugar := logger.Sugar()

	if err := run(cfg, sugar); err != nil {
		sugar.Fatalw("server stopped", "error", err)
	}
}

func run(cfg *config.Config, log *zap.SugaredLogger) error {
	_ = mime.AddExtensionType(".js", "application/javascript")
	_ = mime.AddExtensionType(".css", "text/css")

	words, err := catalog.LoadFile(cfg.Assets.CatalogPath)
	if err != nil {
		return err
	}
	if words.Len() < cfg.Quiz.QuestionCount {
		log.Warnw("catalog smaller than question count, sessions will be shorter",
			"entries", words.Len(),
			"question_count", cfg.Quiz.QuestionCount,
		)
	}
	locale, err := cfg.Quiz.Tag()
	if err != nil {
		return err
	}

	opts := game.Options{
		QuestionCount: cfg.Quiz.QuestionCount,
		Locale:        locale,
		Delay:         cfg.Quiz.PronunciationDelay,
		SoundMode:     cfg.Quiz.SoundMode,
	}
	if cfg.Assets.CheckFiles {
		opts.Assets = os.DirFS(cfg.Assets.Dir)
	}
	store := game.NewStore(words, opts, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(handlers.RequestLogger(log))
	r.Use(middleware.Recoverer)

	r.Mount("/static", http.StripPrefix("/static", http.FileServer(http.FS(views.Static()))))
	handlers.RegisterAssets(r, cfg.Assets.Dir)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(cfg.Server.RequestTimeout))
		handlers.NewHomeHandler(store, log).RegisterRoutes(r)
	})
	handlers.NewPlayHandler(store, log, cfg.Server.RequestTimeout).RegisterRoutes(r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           r,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		// Open cue streams end with the process context.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		log.Infow("listening", "addr", server.Addr, "entries", words.Len())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-egCtx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	eg.Go(func() error {
		return store.RunJanitor(egCtx, cfg.Server.JanitorInterval, cfg.Server.SessionTTL)
	})
	return eg.Wait()
}
