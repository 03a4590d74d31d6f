package alert

import (
	"fmt"
	"sort"
	"strings"
)

const webhookFooter = "VectorGov Security"

// maxFieldValueLen caps detail values in webhook fields.
const maxFieldValueLen = 100

var slackColors = map[Severity]string{
	SeverityInfo:     "#36a64f",
	SeverityWarning:  "#ff9800",
	SeverityError:    "#f44336",
	SeverityCritical: "#9c27b0",
}

var slackEmojis = map[Severity]string{
	SeverityInfo:     ":information_source:",
	SeverityWarning:  ":warning:",
	SeverityError:    ":x:",
	SeverityCritical: ":rotating_light:",
}

var discordColors = map[Severity]int{
	SeverityInfo:     3581519,
	SeverityWarning:  16750592,
	SeverityError:    16007990,
	SeverityCritical: 10233520,
}

type slackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

type slackAttachment struct {
	Color  string       `json:"color"`
	Title  string       `json:"title"`
	Text   string       `json:"text"`
	Fields []slackField `json:"fields"`
	Footer string       `json:"footer"`
	TS     int64        `json:"ts"`
}

type slackMessage struct {
	Attachments []slackAttachment `json:"attachments"`
}

type discordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordFooter struct {
	Text string `json:"text"`
}

type discordEmbed struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Color       int            `json:"color"`
	Fields      []discordField `json:"fields"`
	Footer      discordFooter  `json:"footer"`
	Timestamp   string         `json:"timestamp"`
}

type discordMessage struct {
	Embeds []discordEmbed `json:"embeds"`
}

// buildPayload formats an alert for the given webhook format. It is a
// pure function over the alert; the format is the only behavioral axis.
func buildPayload(a *Alert, format WebhookFormat) interface{} {
	switch format {
	case FormatDiscord:
		return buildDiscordPayload(a)
	case FormatGeneric:
		return a
	default:
		return buildSlackPayload(a)
	}
}

func buildSlackPayload(a *Alert) *slackMessage {
	fields := []slackField{
		{Title: "Severidade", Value: strings.ToUpper(string(a.Severity)), Short: true},
		{Title: "Fonte", Value: a.Source, Short: true},
	}
	for _, k := range sortedDetailKeys(a.Details) {
		fields = append(fields, slackField{
			Title: formatDetailKey(k),
			Value: formatDetailValue(a.Details[k]),
			Short: true,
		})
	}

	return &slackMessage{
		Attachments: []slackAttachment{{
			Color:  slackColors[a.Severity],
			Title:  slackEmojis[a.Severity] + " " + a.Title,
			Text:   a.Message,
			Fields: fields,
			Footer: webhookFooter,
			TS:     a.Timestamp.Unix(),
		}},
	}
}

func buildDiscordPayload(a *Alert) *discordMessage {
	fields := []discordField{
		{Name: "Severidade", Value: strings.ToUpper(string(a.Severity)), Inline: true},
		{Name: "Fonte", Value: a.Source, Inline: true},
	}
	for _, k := range sortedDetailKeys(a.Details) {
		fields = append(fields, discordField{
			Name:   formatDetailKey(k),
			Value:  formatDetailValue(a.Details[k]),
			Inline: true,
		})
	}

	return &discordMessage{
		Embeds: []discordEmbed{{
			Title:       a.Title,
			Description: a.Message,
			Color:       discordColors[a.Severity],
			Fields:      fields,
			Footer:      discordFooter{Text: webhookFooter},
			Timestamp:   a.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
		}},
	}
}

// sortedDetailKeys gives the detail fields a stable order in the
// outbound payload.
func sortedDetailKeys(details map[string]interface{}) []string {
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// formatDetailKey turns a snake_case detail key into a field title:
// underscores become spaces and each word is capitalized.
func formatDetailKey(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// formatDetailValue stringifies a detail value, truncated to keep the
// webhook payload compact.
func formatDetailValue(v interface{}) string {
	s := fmt.Sprintf("%v", v)
	if len(s) > maxFieldValueLen {
		return s[:maxFieldValueLen]
	}
	return s
}
