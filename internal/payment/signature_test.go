package payment

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testStripeService() *StripeService {
	return NewStripeService("sk_test_key", "whsec_test", "price_test", "http://localhost:3000")
}

func TestVerifySignature_Valid(t *testing.T) {
	svc := testStripeService()
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	now := time.Now()

	header := svc.SignPayload(payload, now)
	assert.NoError(t, svc.VerifySignature(payload, header, now))
}

func TestVerifySignature_TamperedPayload(t *testing.T) {
	svc := testStripeService()
	now := time.Now()

	header := svc.SignPayload([]byte(`{"id":"evt_1"}`), now)
	err := svc.VerifySignature([]byte(`{"id":"evt_2"}`), header, now)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifySignature_WrongSecret(t *testing.T) {
	signer := NewStripeService("sk", "whsec_a", "price", "http://localhost")
	verifier := NewStripeService("sk", "whsec_b", "price", "http://localhost")
	payload := []byte(`{}`)
	now := time.Now()

	header := signer.SignPayload(payload, now)
	assert.ErrorIs(t, verifier.VerifySignature(payload, header, now), ErrInvalidSignature)
}

func TestVerifySignature_OutsideTolerance(t *testing.T) {
	svc := testStripeService()
	payload := []byte(`{}`)
	signedAt := time.Now().Add(-10 * time.Minute)

	header := svc.SignPayload(payload, signedAt)
	err := svc.VerifySignature(payload, header, time.Now())
	assert.ErrorIs(t, err, ErrTimestampTooOld)
}

func TestVerifySignature_WithinTolerance(t *testing.T) {
	svc := testStripeService()
	payload := []byte(`{}`)
	signedAt := time.Now().Add(-4 * time.Minute)

	header := svc.SignPayload(payload, signedAt)
	assert.NoError(t, svc.VerifySignature(payload, header, time.Now()))
}

func TestVerifySignature_MissingHeader(t *testing.T) {
	svc := testStripeService()
	assert.ErrorIs(t, svc.VerifySignature([]byte(`{}`), "", time.Now()), ErrNoSignature)
}

func TestVerifySignature_MalformedHeader(t *testing.T) {
	svc := testStripeService()
	now := time.Now()

	for _, header := range []string{
		"garbage",
		"t=abc,v1=deadbeef",
		"t=123",
		"v1=deadbeef",
	} {
		err := svc.VerifySignature([]byte(`{}`), header, now)
		assert.ErrorIs(t, err, ErrMalformedHeader, "header %q", header)
	}
}

func TestVerifySignature_MultipleSignatures(t *testing.T) {
	svc := testStripeService()
	payload := []byte(`{}`)
	now := time.Now()

	// Stripe sends extra v1 entries during secret rotation; one valid
	// signature among them is enough.
	good := svc.SignPayload(payload, now)
	idx := strings.Index(good, ",")
	combined := good[:idx] + ",v1=00ff" + good[idx:]
	assert.NoError(t, svc.VerifySignature(payload, combined, now))
}
