package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vectorgov/vectorgov-go/pkg/utils"
)

// webhookSender delivers alerts over HTTP POST. Exactly one attempt per
// alert: no retry, no backoff. Callers needing guaranteed delivery must
// layer their own retry around the dispatcher.
type webhookSender struct {
	url        string
	format     WebhookFormat
	httpClient *http.Client
}

func newWebhookSender(url string, format WebhookFormat) *webhookSender {
	return &webhookSender{
		url:    url,
		format: format,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     30 * time.Second,
			},
		},
	}
}

// deliver POSTs the formatted alert to the configured URL. A missing
// URL is a per-channel delivery failure, not an exception, and skips
// the network entirely.
func (ws *webhookSender) deliver(ctx context.Context, a *Alert) error {
	if ws.url == "" {
		return utils.NewAppError(utils.ErrCodeConfiguration, "webhook URL not configured")
	}

	payload := buildPayload(a, ws.format)
	body, err := json.Marshal(payload)
	if err != nil {
		return utils.NewAppError(utils.ErrCodeWebhook, "failed to marshal webhook payload", err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ws.url, bytes.NewReader(body))
	if err != nil {
		return utils.NewAppError(utils.ErrCodeWebhook, "failed to create webhook request", err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "vectorgov-go/1.0")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := ws.httpClient.Do(req)
	if err != nil {
		return utils.NewAppError(utils.ErrCodeWebhook, "failed to send webhook", err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Keep a short body excerpt for diagnostics.
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return utils.NewAppError(utils.ErrCodeWebhook,
			"webhook returned non-success status",
			fmt.Sprintf("status: %d, body: %s", resp.StatusCode, string(excerpt)))
	}

	return nil
}
