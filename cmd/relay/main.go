package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/salesops/kpireport/internal/config"
	"github.com/salesops/kpireport/internal/relay"
	"github.com/salesops/kpireport/pkg/logger"
)

func main() {
	cfg := config.Load()
	logger.Setup(cfg.Server.Mode, cfg.Server.Mode == "release")

	if cfg.Relay.Token == "" {
		log.Fatal().Msg("RELAY_TOKEN must be configured")
	}

	router := mux.NewRouter()
	handler := relay.NewHandler(cfg.Relay, relay.NewTrigger(cfg.Relay))
	handler.RegisterRoutes(router)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	addr := ":" + cfg.Relay.Port
	log.Info().Str("addr", addr).Msg("relay starting")
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal().Err(err).Msg("relay stopped")
	}
}
