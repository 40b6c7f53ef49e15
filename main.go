package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/civicpulse/campaign/app"
	"github.com/civicpulse/campaign/config"
	"github.com/civicpulse/campaign/database"
	"github.com/civicpulse/campaign/httpx"
	"github.com/civicpulse/campaign/log"
	"github.com/civicpulse/campaign/routes"
	"github.com/civicpulse/campaign/survey"
	"github.com/go-chi/jwtauth"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("main.db.open:", err)
	}
	defer db.Close()

	app := app.App{
		DB:           db,
		BearerServer: httpx.NewBearerServer(db, cfg),
		Config:       cfg,
		Sessions:     jwtauth.New("HS256", []byte(cfg.SessionSecret), nil),
		Surveys:      survey.NewService(db),
	}

	handler := routes.Wire(app)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}
