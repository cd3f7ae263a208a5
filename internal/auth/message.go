package auth

import (
	"fmt"
	"time"
)

// TimestampLayout renders the challenge timestamp as ISO-8601 UTC with
// milliseconds, e.g. 2024-01-02T03:04:05.678Z.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

const messageTemplate = "Sign this message to authenticate with your wallet:\n\nNonce: %s\nTimestamp: %s"

// BuildMessage returns the exact text a wallet signs for a challenge.
// Verification must rebuild it from the stored createdAt, never from the
// current time.
func BuildMessage(nonce string, createdAt time.Time) string {
	return fmt.Sprintf(messageTemplate, nonce, createdAt.UTC().Format(TimestampLayout))
}
