package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// GenerateID generates a random hex ID
func GenerateID() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// NewAlertID builds a process-unique alert identifier from the creation
// instant plus a short random suffix. Uniqueness is best-effort.
func NewAlertID(t time.Time) string {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		// Fall back to the nanosecond clock if the RNG is unavailable.
		return fmt.Sprintf("%d-%09d", t.UnixMilli(), t.Nanosecond())
	}
	return fmt.Sprintf("%d-%s", t.UnixMilli(), hex.EncodeToString(suffix))
}
