package services

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/bittenrichard/30-07/internal/dtos"
	"github.com/bittenrichard/30-07/internal/models"
)

// Notifier posts booking summaries to the configured downstream webhook.
// Delivery is fire-and-forget: the caller never waits on it and a
// failure is logged, never surfaced.
type Notifier struct {
	webhookURL string
	client     *http.Client
	log        *zap.Logger
}

func NewNotifier(webhookURL string, log *zap.Logger) *Notifier {
	return &Notifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
}

// ScheduleCreated fires the webhook for a successful booking. Returns
// immediately; delivery happens on a detached goroutine.
func (n *Notifier) ScheduleCreated(recruiter models.UserRow, req dtos.CreateEventRequest, eventLink string) {
	if n.webhookURL == "" {
		return
	}

	payload := map[string]any{
		"recruiter": recruiter,
		"candidate": req.Candidate,
		"job":       req.Job,
		"interview": map[string]any{
			"title":           req.EventData.Title,
			"startTime":       req.EventData.Start,
			"endTime":         req.EventData.End,
			"details":         req.EventData.Details,
			"googleEventLink": eventLink,
		},
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		body, err := json.Marshal(payload)
		if err != nil {
			n.log.Warn("schedule webhook: encode payload failed", zap.Error(err))
			return
		}
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
		if err != nil {
			n.log.Warn("schedule webhook: build request failed", zap.Error(err))
			return
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := n.client.Do(httpReq)
		if err != nil {
			n.log.Warn("schedule webhook: delivery failed", zap.Error(err))
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			n.log.Warn("schedule webhook: non-success response",
				zap.Int("status", resp.StatusCode))
			return
		}
		n.log.Info("schedule webhook delivered", zap.String("event_link", eventLink))
	}()
}
