package alert

import (
	"fmt"
)

// Severity is the importance level of an alert. Levels form a total
// order: info < warning < error < critical.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// severityRank holds the ordinal rank of each severity. Threshold
// comparison always goes through this table, never through string
// comparison.
var severityRank = map[Severity]int{
	SeverityInfo:     0,
	SeverityWarning:  1,
	SeverityError:    2,
	SeverityCritical: 3,
}

// Rank returns the ordinal rank of the severity. Unknown severities
// rank below info.
func (s Severity) Rank() int {
	rank, ok := severityRank[s]
	if !ok {
		return -1
	}
	return rank
}

// Valid reports whether the severity is a known level.
func (s Severity) Valid() bool {
	_, ok := severityRank[s]
	return ok
}

// ParseSeverity converts a string into a Severity
func ParseSeverity(s string) (Severity, error) {
	sev := Severity(s)
	if !sev.Valid() {
		return "", fmt.Errorf("unknown severity %q", s)
	}
	return sev, nil
}

// Channel is a destination an alert may be routed to
type Channel string

const (
	ChannelLog     Channel = "log"
	ChannelWebhook Channel = "webhook"
)

// Valid reports whether the channel is a known destination.
func (c Channel) Valid() bool {
	return c == ChannelLog || c == ChannelWebhook
}

// WebhookFormat selects the payload shape for the webhook channel
type WebhookFormat string

const (
	FormatSlack   WebhookFormat = "slack"
	FormatDiscord WebhookFormat = "discord"
	FormatGeneric WebhookFormat = "generic"
)

// Valid reports whether the format is a known payload shape.
func (f WebhookFormat) Valid() bool {
	return f == FormatSlack || f == FormatDiscord || f == FormatGeneric
}
