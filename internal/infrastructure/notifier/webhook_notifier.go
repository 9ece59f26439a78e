package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"nutri_quiz/internal/domain/entities"
	"nutri_quiz/internal/usecase/interfaces"
	"nutri_quiz/pkg/logger"
)

const defaultTimeout = 5 * time.Second

type webhookError struct {
	Type    string         `json:"type"`
	Details string         `json:"details"`
	Context map[string]any `json:"context"`
}

type webhookPayload struct {
	PatientID string       `json:"patient_id"`
	Error     webhookError `json:"error"`
	Timestamp string       `json:"timestamp"`
}

// WebhookNotifier posts integration failures to an operations endpoint.
// An empty URL turns it into a no-op that only logs.
type WebhookNotifier struct {
	url        string
	httpClient *http.Client
	log        *logger.Logger
}

var _ interfaces.IErrorNotifier = (*WebhookNotifier)(nil)

func NewWebhookNotifier(url string, timeout time.Duration, log *logger.Logger) *WebhookNotifier {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &WebhookNotifier{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.OrNop(log),
	}
}

func (n *WebhookNotifier) Notify(ctx context.Context, f entities.IntegrationFailure) error {
	if n.url == "" {
		n.log.Warnw("[notifier][webhook] no ERROR_WEBHOOK_URL, failure not forwarded",
			"patient_id", f.PatientID, "type", f.Kind, "details", f.Details)
		return nil
	}

	occurred := f.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now()
	}
	fctx := f.Context
	if fctx == nil {
		fctx = map[string]any{}
	}

	body, err := json.Marshal(webhookPayload{
		PatientID: f.PatientID,
		Error: webhookError{
			Type:    string(f.Kind),
			Details: f.Details,
			Context: fctx,
		},
		Timestamp: occurred.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		n.log.Errorw("[notifier][webhook] post failed", "patient_id", f.PatientID, "type", f.Kind, "error", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		n.log.Errorw("[notifier][webhook] unexpected status", "patient_id", f.PatientID, "status", resp.StatusCode)
		return fmt.Errorf("error webhook responded %d", resp.StatusCode)
	}

	n.log.Infow("[notifier][webhook] failure reported", "patient_id", f.PatientID, "type", f.Kind)
	return nil
}
