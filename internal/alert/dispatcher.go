package alert

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vectorgov/vectorgov-go/internal/metrics"
	"github.com/vectorgov/vectorgov-go/pkg/utils"
)

const defaultCooldown = 60 * time.Second

// Config holds dispatcher configuration. It is immutable after
// construction; NewDispatcher validates it and applies defaults.
type Config struct {
	// MinSeverity drops alerts below this level silently. Defaults to
	// warning.
	MinSeverity Severity
	// WebhookURL is the destination for the webhook channel.
	WebhookURL string
	// WebhookEnabled turns the webhook channel on. When true and
	// WebhookURL is set, the webhook channel is added to Channels even
	// if the caller omitted it.
	WebhookEnabled bool
	// WebhookFormat selects the payload shape. Defaults to slack.
	WebhookFormat WebhookFormat
	// Cooldown is the minimum spacing between two alerts of the same
	// type (source:title). Defaults to 60s.
	Cooldown time.Duration
	// Channels are the destinations to fan out to. Defaults to {log}.
	Channels []Channel
}

// LogHandler receives the formatted log-channel message instead of the
// default severity-based logrus dispatch.
type LogHandler func(severity Severity, message string)

// Dispatcher decides whether an incoming event becomes an outbound
// alert, suppresses duplicates within a cooldown window, formats the
// alert for each configured destination and attempts delivery to each
// destination independently.
type Dispatcher struct {
	config  Config
	logger  *logrus.Logger
	webhook *webhookSender
	metrics *metrics.Metrics

	// lastSent maps an alert type key (source:title) to the timestamp
	// of its last successful send. Grows without eviction; alert-type
	// cardinality is bounded by the distinct source/title pairs the
	// application emits.
	mu       sync.Mutex
	lastSent map[string]time.Time

	handlerMu  sync.RWMutex
	logHandler LogHandler

	now func() time.Time
}

// NewDispatcher creates a dispatcher from cfg. Zero values are filled
// with the documented defaults; malformed values are rejected here so
// Send never has to.
func NewDispatcher(cfg Config) (*Dispatcher, error) {
	if cfg.MinSeverity == "" {
		cfg.MinSeverity = SeverityWarning
	}
	if !cfg.MinSeverity.Valid() {
		return nil, utils.NewAppError(utils.ErrCodeConfiguration,
			"invalid minimum severity", string(cfg.MinSeverity))
	}
	if cfg.WebhookFormat == "" {
		cfg.WebhookFormat = FormatSlack
	}
	if !cfg.WebhookFormat.Valid() {
		return nil, utils.NewAppError(utils.ErrCodeConfiguration,
			"invalid webhook format", string(cfg.WebhookFormat))
	}
	if cfg.Cooldown == 0 {
		cfg.Cooldown = defaultCooldown
	}
	if cfg.Cooldown < 0 {
		return nil, utils.NewAppError(utils.ErrCodeConfiguration,
			"cooldown must not be negative", cfg.Cooldown.String())
	}
	if len(cfg.Channels) == 0 {
		cfg.Channels = []Channel{ChannelLog}
	}
	for _, ch := range cfg.Channels {
		if !ch.Valid() {
			return nil, utils.NewAppError(utils.ErrCodeConfiguration,
				"unknown alert channel", string(ch))
		}
	}
	if cfg.WebhookEnabled && cfg.WebhookURL != "" && !containsChannel(cfg.Channels, ChannelWebhook) {
		cfg.Channels = append(cfg.Channels, ChannelWebhook)
	}

	return &Dispatcher{
		config:   cfg,
		logger:   utils.GetLogger(),
		webhook:  newWebhookSender(cfg.WebhookURL, cfg.WebhookFormat),
		metrics:  metrics.Get(),
		lastSent: make(map[string]time.Time),
		now:      time.Now,
	}, nil
}

// Config returns a copy of the effective configuration.
func (d *Dispatcher) Config() Config {
	cfg := d.config
	cfg.Channels = append([]Channel(nil), d.config.Channels...)
	return cfg
}

// SetLogHandler registers a custom handler for the log channel. Exactly
// one handler is active at a time; the last registration wins. Passing
// nil restores the default severity-based dispatch.
func (d *Dispatcher) SetLogHandler(h LogHandler) {
	d.handlerMu.Lock()
	d.logHandler = h
	d.handlerMu.Unlock()
}

// Send runs one alert through the severity gate, the cooldown gate,
// and the channel fan-out. It never returns an error: filtering is a
// normal sent=false result and channel failures are captured in
// Result.Error.
func (d *Dispatcher) Send(ctx context.Context, req SendRequest) Result {
	now := d.now()

	severity := req.Severity
	if severity == "" || !severity.Valid() {
		severity = SeverityWarning
	}
	if severity.Rank() < d.config.MinSeverity.Rank() {
		d.metrics.RecordAlertSuppressed("severity")
		return Result{Channels: []Channel{}}
	}

	source := req.Source
	if source == "" {
		source = "unknown"
	}
	key := typeKey(source, req.Title)

	// The gate check and the tentative window reservation happen under
	// one lock so two concurrent sends for the same type cannot both
	// pass. A fully-failed send rolls the reservation back below.
	d.mu.Lock()
	prev, hadPrev := d.lastSent[key]
	if !req.BypassCooldown && hadPrev && now.Sub(prev) < d.config.Cooldown {
		d.mu.Unlock()
		d.metrics.RecordAlertSuppressed("cooldown")
		return Result{Channels: []Channel{}}
	}
	d.lastSent[key] = now
	d.mu.Unlock()

	a := newAlert(SendRequest{
		Title:    req.Title,
		Message:  req.Message,
		Severity: severity,
		Source:   source,
		Details:  req.Details,
	}, now)

	result := Result{AlertID: a.AlertID, Channels: []Channel{}}
	for _, ch := range d.config.Channels {
		if err := d.deliver(ctx, ch, a); err != nil {
			result.Error = err.Error()
			d.metrics.RecordAlertChannelFailure(string(ch))
			continue
		}
		result.Channels = append(result.Channels, ch)
		d.metrics.RecordAlertSent(string(ch), string(a.Severity))
	}
	result.Sent = len(result.Channels) > 0

	if !result.Sent {
		// No channel succeeded: restore the previous cooldown entry so a
		// later call for the same type is not artificially suppressed.
		d.mu.Lock()
		if hadPrev {
			d.lastSent[key] = prev
		} else {
			delete(d.lastSent, key)
		}
		d.mu.Unlock()
	}

	return result
}

// deliver attempts one channel. Failures are returned, never raised
// past Send.
func (d *Dispatcher) deliver(ctx context.Context, ch Channel, a *Alert) error {
	switch ch {
	case ChannelLog:
		d.deliverLog(a)
		return nil
	case ChannelWebhook:
		return d.webhook.deliver(ctx, a)
	default:
		return utils.NewAppError(utils.ErrCodeConfiguration, "unknown alert channel", string(ch))
	}
}

// deliverLog emits the alert as a single log line. Local emission never
// fails the alert.
func (d *Dispatcher) deliverLog(a *Alert) {
	line := formatLogLine(a)

	d.handlerMu.RLock()
	handler := d.logHandler
	d.handlerMu.RUnlock()

	if handler != nil {
		handler(a.Severity, line)
		return
	}

	switch a.Severity {
	case SeverityInfo:
		d.logger.Info(line)
	case SeverityWarning:
		d.logger.Warn(line)
	default:
		d.logger.Error(line)
	}
}

// formatLogLine renders an alert as one line embedding title, message,
// severity, source and the details mapping.
func formatLogLine(a *Alert) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s: %s (source=%s", strings.ToUpper(string(a.Severity)), a.Title, a.Message, a.Source)
	if len(a.Details) > 0 {
		keys := make([]string, 0, len(a.Details))
		for k := range a.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(" details=")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(" ")
			}
			fmt.Fprintf(&b, "%s=%v", k, a.Details[k])
		}
	}
	b.WriteString(")")
	return b.String()
}

func containsChannel(channels []Channel, ch Channel) bool {
	for _, c := range channels {
		if c == ch {
			return true
		}
	}
	return false
}
