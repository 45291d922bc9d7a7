package handler

import (
	"net/http"

	"github.com/wadjakorntonsri/linkvault/pkg/app"
	"github.com/wadjakorntonsri/linkvault/pkg/config"
	"github.com/wadjakorntonsri/linkvault/pkg/logging"
)

var mux http.Handler

func init() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, "json").WithEntryName("vercel")

	// db.sqlite is ephemeral on Vercel; point DATABASE_URL at Turso or Postgres.
	application, err := app.New(cfg, log)
	if err != nil {
		panic(err)
	}
	mux = application.Handler
}

// Handler is the entrypoint for Vercel
func Handler(w http.ResponseWriter, r *http.Request) {
	mux.ServeHTTP(w, r)
}
