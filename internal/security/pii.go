package security

import (
	"context"
	"regexp"

	"github.com/vectorgov/vectorgov-go/internal/alert"
	"github.com/vectorgov/vectorgov-go/internal/metrics"
)

// piiPattern couples a PII type name with its matcher and mask token.
// Patterns are checked in this fixed order so detected types come back
// deterministically.
type piiPattern struct {
	name    string
	pattern *regexp.Regexp
	mask    string
}

var piiPatterns = []piiPattern{
	{"cpf", regexp.MustCompile(`\b\d{3}\.?\d{3}\.?\d{3}-?\d{2}\b`), "[CPF]"},
	{"cnpj", regexp.MustCompile(`\b\d{2}\.?\d{3}\.?\d{3}/?\d{4}-?\d{2}\b`), "[CNPJ]"},
	{"email", regexp.MustCompile(`\b[\w.+-]+@[\w-]+\.[\w.-]+\b`), "[EMAIL]"},
	{"phone", regexp.MustCompile(`\b(?:\+55\s?)?(?:\(?\d{2}\)?\s?)?\d{4,5}-\d{4}\b`), "[PHONE]"},
}

// PIIResult reports the outcome of one content scan
type PIIResult struct {
	Found  bool
	Types  []string
	Masked string
}

// PIIDetector scans text for Brazilian personally identifiable
// information (CPF, CNPJ) plus emails and phone numbers, and raises a
// PII alert for each positive scan.
type PIIDetector struct {
	alerts  *alert.Dispatcher
	metrics *metrics.Metrics
}

// NewPIIDetector creates a detector. dispatcher may be nil; detections
// are then reported only through the returned result.
func NewPIIDetector(dispatcher *alert.Dispatcher) *PIIDetector {
	return &PIIDetector{
		alerts:  dispatcher,
		metrics: metrics.Get(),
	}
}

// Scan checks text for PII and returns the matched types together with
// a masked copy safe for logging.
func (d *PIIDetector) Scan(ctx context.Context, text string) *PIIResult {
	result := &PIIResult{Masked: text}

	for _, p := range piiPatterns {
		if !p.pattern.MatchString(result.Masked) {
			continue
		}
		result.Found = true
		result.Types = append(result.Types, p.name)
		result.Masked = p.pattern.ReplaceAllString(result.Masked, p.mask)
		d.metrics.RecordPIIDetection(p.name)
	}

	if result.Found && d.alerts != nil {
		d.alerts.AlertPIIDetected(ctx, result.Types, "masked")
	}

	return result
}
