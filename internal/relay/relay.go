// Package relay is the thin webhook glue between the chat channel and the
// CI pipeline that runs the report scripts. It parses the chat command,
// checks the shared secret, and fires the pipeline trigger with the report
// period as variables. No report logic lives here.
package relay

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/salesops/kpireport/internal/config"
	"github.com/salesops/kpireport/internal/domain"
)

// Command is one parsed chat command.
type Command struct {
	Name   string
	Period domain.Period
}

// ParseCommand parses "/premia <month> <year>". The month also accepts the
// zero-padded form the chat bot sends.
func ParseCommand(text string) (Command, error) {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return Command{}, fmt.Errorf("not a command: %q", text)
	}
	if fields[0] != "/premia" {
		return Command{}, fmt.Errorf("unknown command %q", fields[0])
	}
	if len(fields) != 3 {
		return Command{}, fmt.Errorf("usage: /premia <month> <year>")
	}

	month, err := strconv.Atoi(strings.TrimPrefix(fields[1], "0"))
	if err != nil {
		return Command{}, fmt.Errorf("invalid month %q", fields[1])
	}
	year, err := strconv.Atoi(fields[2])
	if err != nil {
		return Command{}, fmt.Errorf("invalid year %q", fields[2])
	}

	period := domain.Period{Month: month, Year: year}
	if err := period.Validate(); err != nil {
		return Command{}, err
	}
	return Command{Name: "premia", Period: period}, nil
}

// Trigger posts the command to the CI pipeline trigger endpoint.
type Trigger struct {
	cfg    config.RelayConfig
	client *http.Client
}

func NewTrigger(cfg config.RelayConfig) *Trigger {
	return &Trigger{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// Fire starts the CI pipeline for a parsed command.
func (t *Trigger) Fire(ctx context.Context, cmd Command) error {
	if t.cfg.PipelineURL == "" {
		return fmt.Errorf("no pipeline trigger URL configured")
	}

	form := url.Values{}
	form.Set("token", t.cfg.TriggerToken)
	form.Set("ref", t.cfg.PipelineRef)
	form.Set("variables[REPORT_COMMAND]", cmd.Name)
	form.Set("variables[REPORT_MONTH]", fmt.Sprintf("%02d", cmd.Period.Month))
	form.Set("variables[REPORT_YEAR]", strconv.Itoa(cmd.Period.Year))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.cfg.PipelineURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build pipeline request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("pipeline trigger failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("pipeline trigger returned %s", resp.Status)
	}

	log.Info().
		Str("period", cmd.Period.String()).
		Str("ref", t.cfg.PipelineRef).
		Msg("pipeline triggered")
	return nil
}
