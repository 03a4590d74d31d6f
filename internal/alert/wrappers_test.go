package alert

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureAlerts routes the generic webhook format to a test server and
// decodes every delivered alert.
func captureAlerts(t *testing.T) (*Dispatcher, *[]Alert) {
	t.Helper()

	var captured []Alert
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var a Alert
		require.NoError(t, json.Unmarshal(body, &a))
		captured = append(captured, a)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	d := newTestDispatcher(t, Config{
		MinSeverity:    SeverityInfo,
		WebhookEnabled: true,
		WebhookURL:     server.URL,
		WebhookFormat:  FormatGeneric,
		Channels:       []Channel{ChannelWebhook},
	})
	return d, &captured
}

func TestAlertPIIDetected(t *testing.T) {
	d, captured := captureAlerts(t)

	result := d.AlertPIIDetected(context.Background(), []string{"cpf", "email"}, "masked")
	require.True(t, result.Sent)

	require.Len(t, *captured, 1)
	a := (*captured)[0]
	assert.Equal(t, "PII Detected", a.Title)
	assert.Equal(t, SeverityWarning, a.Severity)
	assert.Equal(t, "pii_detector", a.Source)
	assert.Equal(t, "cpf, email", a.Details["pii_types"])
	assert.Equal(t, "masked", a.Details["action"])
}

func TestAlertInjectionDetectedSeverity(t *testing.T) {
	cases := []struct {
		risk     float64
		severity Severity
	}{
		{0.95, SeverityCritical},
		{0.8, SeverityCritical},
		{0.6, SeverityError},
		{0.5, SeverityError},
		{0.3, SeverityWarning},
	}

	for _, tc := range cases {
		d, captured := captureAlerts(t)

		result := d.AlertInjectionDetected(context.Background(), "instruction_override", tc.risk, "blocked")
		require.True(t, result.Sent, "risk=%.2f", tc.risk)

		require.Len(t, *captured, 1)
		a := (*captured)[0]
		assert.Equal(t, tc.severity, a.Severity, "risk=%.2f", tc.risk)
		assert.Equal(t, "prompt_injection_detector", a.Source)
	}
}

func TestAlertCircuitBreakerOpen(t *testing.T) {
	d, captured := captureAlerts(t)

	result := d.AlertCircuitBreakerOpen(context.Background(), "vectorgov-api", 5)
	require.True(t, result.Sent)

	a := (*captured)[0]
	assert.Equal(t, SeverityError, a.Severity)
	assert.Equal(t, "circuit_breaker", a.Source)
	assert.Equal(t, "vectorgov-api", a.Details["service"])
	assert.EqualValues(t, 5, a.Details["failure_count"])
}

func TestAlertRateLimitExceededTruncatesKey(t *testing.T) {
	d, captured := captureAlerts(t)

	const fullKey = "vg_abcdefghijklmnop"
	result := d.AlertRateLimitExceeded(context.Background(), fullKey, 100, 150)
	require.True(t, result.Sent)

	a := (*captured)[0]
	assert.Equal(t, SeverityWarning, a.Severity)
	assert.Equal(t, "rate_limiter", a.Source)
	assert.Equal(t, "vg_abcdefg...", a.Details["api_key"])

	// Nothing beyond the 10th character of the key may appear anywhere.
	assert.NotContains(t, a.Message, fullKey)
	for _, v := range a.Details {
		if s, ok := v.(string); ok {
			assert.NotContains(t, s, "hijklmnop")
		}
	}
	assert.Contains(t, a.Message, "vg_abcdefg")
}

func TestAlertSecurityIncidentBypassesCooldown(t *testing.T) {
	d, captured := captureAlerts(t)

	clock := &fixedClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	d.now = clock.Now

	details := map[string]interface{}{"client_ip": "10.0.0.7"}
	first := d.AlertSecurityIncident(context.Background(), "unauthorized_access", "repeated auth failures", details)
	second := d.AlertSecurityIncident(context.Background(), "unauthorized_access", "repeated auth failures", details)

	assert.True(t, first.Sent)
	assert.True(t, second.Sent, "critical incidents must never be suppressed by cooldown")

	require.Len(t, *captured, 2)
	a := (*captured)[0]
	assert.Equal(t, SeverityCritical, a.Severity)
	assert.Equal(t, "security", a.Source)
	assert.Equal(t, "unauthorized_access", a.Details["incident_type"])
	assert.Equal(t, "10.0.0.7", a.Details["client_ip"])
}

func TestAlertAPIErrorSeverity(t *testing.T) {
	cases := []struct {
		status   int
		severity Severity
	}{
		{500, SeverityError},
		{503, SeverityError},
		{429, SeverityWarning},
		{404, SeverityWarning},
	}

	for _, tc := range cases {
		d, captured := captureAlerts(t)

		result := d.AlertAPIError(context.Background(), "/search", tc.status, "upstream failure")
		require.True(t, result.Sent, "status=%d", tc.status)

		a := (*captured)[0]
		assert.Equal(t, tc.severity, a.Severity, "status=%d", tc.status)
		assert.Equal(t, "api", a.Source)
		assert.Equal(t, "/search", a.Details["endpoint"])
		assert.True(t, strings.Contains(a.Message, "/search"))
	}
}
