package security

import (
	"context"
	"regexp"

	"github.com/vectorgov/vectorgov-go/internal/alert"
	"github.com/vectorgov/vectorgov-go/internal/metrics"
)

// blockThreshold is the risk score at and above which input is blocked
// rather than just flagged.
const blockThreshold = 0.8

// injectionPattern is a weighted heuristic for prompt injection
// attempts. The highest matching weight becomes the risk score.
type injectionPattern struct {
	name    string
	weight  float64
	pattern *regexp.Regexp
}

var injectionPatterns = []injectionPattern{
	{"instruction_override", 0.9, regexp.MustCompile(`(?i)ignore\s+(all\s+)?(previous|prior|above)\s+(instructions|rules|prompts)`)},
	{"role_hijack", 0.85, regexp.MustCompile(`(?i)you\s+are\s+now\s+(a|an|the)\s`)},
	{"system_prompt_probe", 0.6, regexp.MustCompile(`(?i)(reveal|show|print|repeat)\s+(your\s+)?(system\s+prompt|instructions)`)},
	{"guardrail_bypass", 0.6, regexp.MustCompile(`(?i)(disregard|bypass|disable)\s+(your\s+)?(safety|security|content)\s+(rules|filters|guidelines)`)},
	{"jailbreak_marker", 0.5, regexp.MustCompile(`(?i)\b(jailbreak|DAN\s+mode|developer\s+mode)\b`)},
	{"delimiter_smuggling", 0.4, regexp.MustCompile("(?i)(```|<\\|)\\s*system\\s*(```|\\|>)?")},
}

// InjectionResult reports the outcome of one input evaluation
type InjectionResult struct {
	RiskScore float64
	Matched   []string
	Blocked   bool
}

// InjectionDetector evaluates user input for prompt injection attempts
// before it is forwarded to the remote API.
type InjectionDetector struct {
	alerts  *alert.Dispatcher
	metrics *metrics.Metrics
}

// NewInjectionDetector creates a detector. dispatcher may be nil.
func NewInjectionDetector(dispatcher *alert.Dispatcher) *InjectionDetector {
	return &InjectionDetector{
		alerts:  dispatcher,
		metrics: metrics.Get(),
	}
}

// Evaluate scores input against the known injection patterns. Any match
// raises an injection alert; the score decides its severity.
func (d *InjectionDetector) Evaluate(ctx context.Context, input string) *InjectionResult {
	result := &InjectionResult{}
	primary := ""

	for _, p := range injectionPatterns {
		if !p.pattern.MatchString(input) {
			continue
		}
		result.Matched = append(result.Matched, p.name)
		if p.weight > result.RiskScore {
			result.RiskScore = p.weight
			primary = p.name
		}
	}

	if len(result.Matched) == 0 {
		return result
	}

	result.Blocked = result.RiskScore >= blockThreshold
	d.metrics.RecordInjectionDetection()

	if d.alerts != nil {
		action := "flagged"
		if result.Blocked {
			action = "blocked"
		}
		d.alerts.AlertInjectionDetected(ctx, primary, result.RiskScore, action)
	}

	return result
}
