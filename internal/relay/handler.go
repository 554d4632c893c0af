package relay

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/salesops/kpireport/internal/config"
)

type Handler struct {
	cfg     config.RelayConfig
	trigger *Trigger
}

func NewHandler(cfg config.RelayConfig, trigger *Trigger) *Handler {
	return &Handler{cfg: cfg, trigger: trigger}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/hooks/chat", h.HandleChatCommand).Methods("POST")
}

type chatWebhook struct {
	Token   string `json:"token"`
	ChatID  string `json:"chat_id"`
	Command string `json:"command"`
}

// HandleChatCommand receives one chat command webhook and relays it to the
// CI pipeline. Unknown commands are ignored with a 200 so the bot does not
// retry them.
func (h *Handler) HandleChatCommand(w http.ResponseWriter, r *http.Request) {
	var payload chatWebhook
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	if h.cfg.Token == "" || payload.Token != h.cfg.Token {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	cmd, err := ParseCommand(payload.Command)
	if err != nil {
		log.Debug().Str("command", payload.Command).Err(err).Msg("ignoring chat message")
		w.WriteHeader(http.StatusOK)
		return
	}

	if err := h.trigger.Fire(r.Context(), cmd); err != nil {
		log.Error().Err(err).Str("chat_id", payload.ChatID).Msg("failed to trigger pipeline")
		http.Error(w, "trigger failed", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "triggered",
		"period": cmd.Period.String(),
	})
}
