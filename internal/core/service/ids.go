package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/movemate/logistics-api/internal/core/domain"
)

// One generator per identifier space. Earlier revisions of the product grew a
// second generator for tracking and ticket ids; the validator still accepts
// anything matching the shared pattern, but new ids come from here only.

const trackingAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var trackingIDPattern = regexp.MustCompile(`^MM-LX-[A-Z0-9]{5}$`)

// generateTrackingID returns a visitor-facing tracking id, format MM-LX-XXXXX.
func generateTrackingID() string {
	return "MM-LX-" + randomAlphanumeric(5)
}

// normalizeTrackingID trims and uppercases a visitor-supplied tracking id and
// validates it against the MM-LX-XXXXX pattern.
func normalizeTrackingID(raw string) (string, error) {
	id := strings.ToUpper(strings.TrimSpace(raw))
	if !trackingIDPattern.MatchString(id) {
		return "", domain.ErrInvalidTrackingID
	}
	return id, nil
}

// generateTicketID returns a support ticket id, format TKT-<time36>-<rand36>.
func generateTicketID() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	return "TKT-" + ts + "-" + randomAlphanumeric(3)
}

// generateSessionID returns a chat session id, format CHAT-<epoch-ms>-<rand36>.
// The id is handed to the widget, persisted client-side, and used to resume
// the session on a later visit.
func generateSessionID() string {
	return fmt.Sprintf("CHAT-%d-%s", time.Now().UnixMilli(), strings.ToLower(randomAlphanumeric(9)))
}

// randomAlphanumeric draws n characters from trackingAlphabet using
// crypto/rand, falling back to a nanosecond-derived value if the source
// fails.
func randomAlphanumeric(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		ns := strconv.FormatInt(time.Now().UnixNano(), 36)
		ns = strings.ToUpper(ns)
		for len(ns) < n {
			ns += "0"
		}
		return ns[len(ns)-n:]
	}
	out := make([]byte, n)
	for i, v := range b {
		out[i] = trackingAlphabet[int(v)%len(trackingAlphabet)]
	}
	return string(out)
}

// randomInt returns a uniform value in [0, n).
func randomInt(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return int(time.Now().UnixNano()) % n
	}
	return int(v.Int64())
}
