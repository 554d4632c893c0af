package relay

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesops/kpireport/internal/config"
	"github.com/salesops/kpireport/internal/domain"
)

func TestParseCommand(t *testing.T) {
	cmd, err := ParseCommand("/premia 05 2026")
	require.NoError(t, err)
	assert.Equal(t, domain.Period{Month: 5, Year: 2026}, cmd.Period)

	cmd, err = ParseCommand("/premia 12 2025")
	require.NoError(t, err)
	assert.Equal(t, domain.Period{Month: 12, Year: 2025}, cmd.Period)

	for _, text := range []string{
		"",
		"hello",
		"/unknown 05 2026",
		"/premia",
		"/premia 05",
		"/premia 13 2026",
		"/premia 00 2026",
		"/premia maj 2026",
	} {
		_, err := ParseCommand(text)
		assert.Error(t, err, "text %q", text)
	}
}

func TestHandleChatCommand(t *testing.T) {
	var fired url.Values
	pipeline := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		fired = r.PostForm
		w.WriteHeader(http.StatusCreated)
	}))
	defer pipeline.Close()

	cfg := config.RelayConfig{
		Token:        "secret",
		PipelineURL:  pipeline.URL,
		PipelineRef:  "main",
		TriggerToken: "trigger",
	}
	router := mux.NewRouter()
	NewHandler(cfg, NewTrigger(cfg)).RegisterRoutes(router)

	post := func(payload map[string]string) *httptest.ResponseRecorder {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/hooks/chat", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	rec := post(map[string]string{"token": "secret", "command": "/premia 05 2026"})
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, fired)
	assert.Equal(t, "trigger", fired.Get("token"))
	assert.Equal(t, "main", fired.Get("ref"))
	assert.Equal(t, "05", fired.Get("variables[REPORT_MONTH]"))
	assert.Equal(t, "2026", fired.Get("variables[REPORT_YEAR]"))

	// Wrong secret is rejected before any trigger.
	fired = nil
	rec = post(map[string]string{"token": "nope", "command": "/premia 05 2026"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Nil(t, fired)

	// Unrelated chatter is acknowledged but not relayed.
	rec = post(map[string]string{"token": "secret", "command": "dzień dobry"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, fired)
}
