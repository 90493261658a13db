package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// StripeService talks to the Stripe REST API directly. Only the checkout
// session endpoint is needed; subscription state flows back through the
// webhook.
type StripeService struct {
	SecretKey     string
	WebhookSecret string
	PremiumPrice  string
	AppURL        string
	BaseURL       string
	HTTPClient    *http.Client
}

func NewStripeService(secretKey, webhookSecret, premiumPrice, appURL string) *StripeService {
	return &StripeService{
		SecretKey:     secretKey,
		WebhookSecret: webhookSecret,
		PremiumPrice:  premiumPrice,
		AppURL:        appURL,
		BaseURL:       "https://api.stripe.com",
		HTTPClient:    &http.Client{Timeout: 15 * time.Second},
	}
}

// CheckoutSession is the subset of the checkout session object we read.
type CheckoutSession struct {
	ID           string            `json:"id"`
	URL          string            `json:"url"`
	Customer     string            `json:"customer"`
	Subscription string            `json:"subscription"`
	ExpiresAt    int64             `json:"expires_at"`
	Metadata     map[string]string `json:"metadata"`
}

// SubscriptionObject is the subset of the subscription object we read.
type SubscriptionObject struct {
	ID                string `json:"id"`
	Status            string `json:"status"`
	CurrentPeriodEnd  int64  `json:"current_period_end"`
	CancelAtPeriodEnd bool   `json:"cancel_at_period_end"`
}

// Event is a verified webhook event envelope.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// CreateCheckoutSession opens a subscription checkout for the given user and
// returns the hosted payment page URL.
func (s *StripeService) CreateCheckoutSession(ctx context.Context, userID, planID, customerEmail string) (string, error) {
	form := url.Values{}
	form.Set("mode", "subscription")
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][price]", s.PremiumPrice)
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", s.AppURL+"/subscription?success=true")
	form.Set("cancel_url", s.AppURL+"/subscription?canceled=true")
	form.Set("metadata[userId]", userID)
	form.Set("metadata[planId]", planID)
	if customerEmail != "" {
		form.Set("customer_email", customerEmail)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.BaseURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.SecretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("stripe request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("stripe returned %d: %s", resp.StatusCode, string(body))
	}

	var session CheckoutSession
	if err := json.Unmarshal(body, &session); err != nil {
		return "", fmt.Errorf("decode checkout session: %w", err)
	}
	if session.URL == "" {
		return "", fmt.Errorf("no checkout URL generated")
	}

	return session.URL, nil
}
