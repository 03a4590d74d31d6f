package alert

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAlert() *Alert {
	return &Alert{
		AlertID:  "1740830400000-deadbeef",
		Title:    "PII Detected",
		Message:  "PII detected in content: cpf, email",
		Severity: SeverityWarning,
		Source:   "pii_detector",
		Details: map[string]interface{}{
			"pii_types": "cpf, email",
			"action":    "masked",
		},
		Timestamp: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSlackPayload(t *testing.T) {
	msg := buildSlackPayload(sampleAlert())

	require.Len(t, msg.Attachments, 1)
	att := msg.Attachments[0]

	assert.Equal(t, "#ff9800", att.Color)
	assert.Equal(t, ":warning: PII Detected", att.Title)
	assert.Equal(t, "PII detected in content: cpf, email", att.Text)
	assert.Equal(t, "VectorGov Security", att.Footer)
	assert.Equal(t, int64(1740830400), att.TS)

	require.Len(t, att.Fields, 4)
	assert.Equal(t, slackField{Title: "Severidade", Value: "WARNING", Short: true}, att.Fields[0])
	assert.Equal(t, slackField{Title: "Fonte", Value: "pii_detector", Short: true}, att.Fields[1])

	// Detail fields: keys become space-separated capitalized words, in
	// stable (sorted) order.
	assert.Equal(t, slackField{Title: "Action", Value: "masked", Short: true}, att.Fields[2])
	assert.Equal(t, slackField{Title: "Pii Types", Value: "cpf, email", Short: true}, att.Fields[3])
}

func TestSlackPayloadColors(t *testing.T) {
	cases := []struct {
		severity Severity
		color    string
		emoji    string
	}{
		{SeverityInfo, "#36a64f", ":information_source:"},
		{SeverityWarning, "#ff9800", ":warning:"},
		{SeverityError, "#f44336", ":x:"},
		{SeverityCritical, "#9c27b0", ":rotating_light:"},
	}

	for _, tc := range cases {
		a := sampleAlert()
		a.Severity = tc.severity

		att := buildSlackPayload(a).Attachments[0]
		assert.Equal(t, tc.color, att.Color)
		assert.True(t, strings.HasPrefix(att.Title, tc.emoji+" "))
	}
}

func TestDiscordPayload(t *testing.T) {
	msg := buildDiscordPayload(sampleAlert())

	require.Len(t, msg.Embeds, 1)
	embed := msg.Embeds[0]

	assert.Equal(t, "PII Detected", embed.Title)
	assert.Equal(t, "PII detected in content: cpf, email", embed.Description)
	assert.Equal(t, 16750592, embed.Color)
	assert.Equal(t, "VectorGov Security", embed.Footer.Text)
	assert.Equal(t, "2025-03-01T12:00:00Z", embed.Timestamp)

	require.Len(t, embed.Fields, 4)
	assert.Equal(t, discordField{Name: "Severidade", Value: "WARNING", Inline: true}, embed.Fields[0])
	assert.Equal(t, discordField{Name: "Fonte", Value: "pii_detector", Inline: true}, embed.Fields[1])
	assert.Equal(t, discordField{Name: "Action", Value: "masked", Inline: true}, embed.Fields[2])
	assert.Equal(t, discordField{Name: "Pii Types", Value: "cpf, email", Inline: true}, embed.Fields[3])
}

func TestDiscordPayloadColors(t *testing.T) {
	colors := map[Severity]int{
		SeverityInfo:     3581519,
		SeverityWarning:  16750592,
		SeverityError:    16007990,
		SeverityCritical: 10233520,
	}

	for severity, color := range colors {
		a := sampleAlert()
		a.Severity = severity
		assert.Equal(t, color, buildDiscordPayload(a).Embeds[0].Color)
	}
}

func TestGenericPayload(t *testing.T) {
	payload := buildPayload(sampleAlert(), FormatGeneric)

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	// The generic format is the raw alert in snake_case wire form.
	assert.Equal(t, "1740830400000-deadbeef", decoded["alert_id"])
	assert.Equal(t, "PII Detected", decoded["title"])
	assert.Equal(t, "warning", decoded["severity"])
	assert.Equal(t, "pii_detector", decoded["source"])
	assert.Contains(t, decoded, "details")
	assert.Contains(t, decoded, "timestamp")
}

func TestFormatDetailKey(t *testing.T) {
	cases := map[string]string{
		"pii_types":      "Pii Types",
		"action":         "Action",
		"status_code":    "Status Code",
		"client_ip":      "Client Ip",
		"already Spaced": "Already Spaced",
	}

	for in, want := range cases {
		assert.Equal(t, want, formatDetailKey(in))
	}
}

func TestFormatDetailValueTruncation(t *testing.T) {
	long := strings.Repeat("a", 250)
	got := formatDetailValue(long)
	assert.Len(t, got, 100)
	assert.Equal(t, strings.Repeat("a", 100), got)

	assert.Equal(t, "42", formatDetailValue(42))
	assert.Equal(t, "short", formatDetailValue("short"))
}
