package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultTolerance bounds how old a signed webhook payload may be.
const DefaultTolerance = 5 * time.Minute

var (
	ErrNoSignature      = errors.New("missing Stripe-Signature header")
	ErrInvalidSignature = errors.New("webhook signature mismatch")
	ErrTimestampTooOld  = errors.New("webhook timestamp outside tolerance")
	ErrMalformedHeader  = errors.New("malformed Stripe-Signature header")
)

// VerifySignature validates the Stripe-Signature header against the raw
// request body: the header carries `t=<unix>,v1=<hex hmac>` and the signed
// payload is "<t>.<body>" keyed with the webhook secret. Runs before any
// storage write.
func (s *StripeService) VerifySignature(payload []byte, header string, now time.Time) error {
	if header == "" {
		return ErrNoSignature
	}

	var timestamp int64
	var signatures []string

	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			return ErrMalformedHeader
		}
		switch kv[0] {
		case "t":
			ts, err := strconv.ParseInt(kv[1], 10, 64)
			if err != nil {
				return ErrMalformedHeader
			}
			timestamp = ts
		case "v1":
			signatures = append(signatures, kv[1])
		}
	}

	if timestamp == 0 || len(signatures) == 0 {
		return ErrMalformedHeader
	}

	if now.Sub(time.Unix(timestamp, 0)) > DefaultTolerance {
		return ErrTimestampTooOld
	}

	expected := computeSignature(s.WebhookSecret, timestamp, payload)
	for _, sig := range signatures {
		if hmac.Equal([]byte(expected), []byte(sig)) {
			return nil
		}
	}

	return ErrInvalidSignature
}

// SignPayload produces a valid Stripe-Signature header value. Used by tests
// and local tooling.
func (s *StripeService) SignPayload(payload []byte, now time.Time) string {
	ts := now.Unix()
	return fmt.Sprintf("t=%d,v1=%s", ts, computeSignature(s.WebhookSecret, ts, payload))
}

func computeSignature(secret string, timestamp int64, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
