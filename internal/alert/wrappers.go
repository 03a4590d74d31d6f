package alert

import (
	"context"
	"fmt"
	"strings"
)

// Convenience wrappers over Send for the event classes the library
// emits. Each fixes the title, source and severity derivation; none of
// them carries state of its own.

const maxAPIKeyPrefix = 10

// AlertPIIDetected reports personally identifiable information found in
// content, along with the action taken (masked, blocked, logged).
func (d *Dispatcher) AlertPIIDetected(ctx context.Context, piiTypes []string, action string) Result {
	joined := strings.Join(piiTypes, ", ")
	return d.Send(ctx, SendRequest{
		Title:    "PII Detected",
		Message:  fmt.Sprintf("PII detected in content: %s", joined),
		Severity: SeverityWarning,
		Source:   "pii_detector",
		Details: map[string]interface{}{
			"pii_types": joined,
			"action":    action,
		},
	})
}

// AlertInjectionDetected reports a prompt injection attempt. Severity
// follows the risk score: critical at 0.8 and above, error at 0.5 and
// above, warning below that.
func (d *Dispatcher) AlertInjectionDetected(ctx context.Context, injectionType string, riskScore float64, action string) Result {
	severity := SeverityWarning
	switch {
	case riskScore >= 0.8:
		severity = SeverityCritical
	case riskScore >= 0.5:
		severity = SeverityError
	}

	return d.Send(ctx, SendRequest{
		Title:    "Prompt Injection Detected",
		Message:  fmt.Sprintf("Injection attempt of type %q (risk %.2f)", injectionType, riskScore),
		Severity: severity,
		Source:   "prompt_injection_detector",
		Details: map[string]interface{}{
			"injection_type": injectionType,
			"risk_score":     fmt.Sprintf("%.2f", riskScore),
			"action":         action,
		},
	})
}

// AlertCircuitBreakerOpen reports a circuit breaker tripping open for a
// downstream service.
func (d *Dispatcher) AlertCircuitBreakerOpen(ctx context.Context, service string, failureCount int) Result {
	return d.Send(ctx, SendRequest{
		Title:    "Circuit Breaker Open",
		Message:  fmt.Sprintf("Circuit breaker opened for %s after %d consecutive failures", service, failureCount),
		Severity: SeverityError,
		Source:   "circuit_breaker",
		Details: map[string]interface{}{
			"service":       service,
			"failure_count": failureCount,
		},
	})
}

// AlertRateLimitExceeded reports an API key exceeding its request
// budget. Only the first 10 characters of the key appear in the alert;
// the full key is never logged or transmitted.
func (d *Dispatcher) AlertRateLimitExceeded(ctx context.Context, apiKey string, limit, current int) Result {
	truncated := apiKey
	if len(truncated) > maxAPIKeyPrefix {
		truncated = truncated[:maxAPIKeyPrefix] + "..."
	}

	return d.Send(ctx, SendRequest{
		Title:    "Rate Limit Exceeded",
		Message:  fmt.Sprintf("API key %s exceeded rate limit (%d/%d)", truncated, current, limit),
		Severity: SeverityWarning,
		Source:   "rate_limiter",
		Details: map[string]interface{}{
			"api_key": truncated,
			"limit":   limit,
			"current": current,
		},
	})
}

// AlertSecurityIncident reports a critical security incident. Incidents
// always bypass the cooldown window: they must never be suppressed.
func (d *Dispatcher) AlertSecurityIncident(ctx context.Context, incidentType, description string, details map[string]interface{}) Result {
	merged := map[string]interface{}{"incident_type": incidentType}
	for k, v := range details {
		merged[k] = v
	}

	return d.Send(ctx, SendRequest{
		Title:          "Security Incident",
		Message:        description,
		Severity:       SeverityCritical,
		Source:         "security",
		Details:        merged,
		BypassCooldown: true,
	})
}

// AlertAPIError reports an upstream API failure. Server-side failures
// (status 500 and above) are errors; anything else is a warning.
func (d *Dispatcher) AlertAPIError(ctx context.Context, endpoint string, statusCode int, message string) Result {
	severity := SeverityWarning
	if statusCode >= 500 {
		severity = SeverityError
	}

	return d.Send(ctx, SendRequest{
		Title:    "API Error",
		Message:  fmt.Sprintf("Request to %s failed with status %d: %s", endpoint, statusCode, message),
		Severity: severity,
		Source:   "api",
		Details: map[string]interface{}{
			"endpoint":    endpoint,
			"status_code": statusCode,
		},
	})
}
