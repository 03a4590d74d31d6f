package alert

import (
	"time"

	"github.com/vectorgov/vectorgov-go/pkg/utils"
)

// Alert is a single outbound alert. It is constructed only after a send
// request passes the severity and cooldown gates, formatted per
// destination, attempted for delivery, then discarded. It is never
// persisted or mutated afterward.
type Alert struct {
	AlertID   string                 `json:"alert_id"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Severity  Severity               `json:"severity"`
	Source    string                 `json:"source"`
	Details   map[string]interface{} `json:"details"`
	Timestamp time.Time              `json:"timestamp"`
}

// SendRequest carries the caller-supplied fields for one send call.
// Severity, Source and Details are optional and defaulted; malformed
// optional fields are defaulted rather than rejected.
type SendRequest struct {
	Title          string
	Message        string
	Severity       Severity
	Source         string
	Details        map[string]interface{}
	BypassCooldown bool
}

// Result reports the per-channel outcome of one send call. AlertID is
// set only when an Alert object was constructed, i.e. the request
// passed both the severity and cooldown gates. Error carries the last
// channel failure; earlier failures are overwritten.
type Result struct {
	Sent     bool      `json:"sent"`
	AlertID  string    `json:"alert_id,omitempty"`
	Channels []Channel `json:"channels"`
	Error    string    `json:"error,omitempty"`
}

// newAlert builds an Alert from a request, applying defaults for
// severity, source and details.
func newAlert(req SendRequest, now time.Time) *Alert {
	severity := req.Severity
	if severity == "" {
		severity = SeverityWarning
	}
	source := req.Source
	if source == "" {
		source = "unknown"
	}
	details := req.Details
	if details == nil {
		details = map[string]interface{}{}
	}

	return &Alert{
		AlertID:   utils.NewAlertID(now),
		Title:     req.Title,
		Message:   req.Message,
		Severity:  severity,
		Source:    source,
		Details:   details,
		Timestamp: now.UTC(),
	}
}

// typeKey derives the cooldown suppression key for a source/title pair.
// Two alerts sharing this key within the cooldown window are duplicates
// regardless of severity or message.
func typeKey(source, title string) string {
	return source + ":" + title
}
