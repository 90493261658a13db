package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"concierge_backend/internal/models"
	"concierge_backend/internal/payment"
	"concierge_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func webhookSigner() *payment.StripeService {
	return payment.NewStripeService("sk_test", os.Getenv("STRIPE_WEBHOOK_SECRET"), "price_test", "http://localhost:3000")
}

func TestSubscription_GetCurrentFree(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginClient(t, ts, tx)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/subscription", token, nil)
	require.Equal(t, http.StatusOK, res.Code, bodyStr)

	var resp struct {
		PlanID       string      `json:"planId"`
		Subscription interface{} `json:"subscription"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &resp))
	assert.Equal(t, "free", resp.PlanID)
	assert.Nil(t, resp.Subscription)
}

func TestSubscription_CheckoutUnknownPlan(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginClient(t, ts, tx)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/subscription/create-checkout", token,
		map[string]interface{}{"planId": "platinum"})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, bodyStr, "Unknown subscription plan")
}

func TestWebhook_RejectsBadSignature(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{}}}`)

	res, bodyStr := ts.SendRawRequest(t, tx, http.MethodPost, "/api/webhook", payload,
		map[string]string{"Stripe-Signature": "t=1,v1=deadbeef"})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, bodyStr, "signature")

	res, _ = ts.SendRawRequest(t, tx, http.MethodPost, "/api/webhook", payload, nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestWebhook_CheckoutCompletedActivatesPremium(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, client := helpers.CreateAndLoginClient(t, ts, tx)

	// Checkout sessions expire about a day after creation.
	sessionExpiry := time.Now().Add(24 * time.Hour).Unix()
	payload := []byte(fmt.Sprintf(`{
		"id": "evt_checkout_1",
		"type": "checkout.session.completed",
		"data": {"object": {
			"id": "cs_test_1",
			"customer": "cus_test_1",
			"subscription": "sub_test_hook_1",
			"expires_at": %d,
			"metadata": {"userId": %q, "planId": "premium"}
		}}
	}`, sessionExpiry, client.ID))

	signer := webhookSigner()
	res, bodyStr := ts.SendRawRequest(t, tx, http.MethodPost, "/api/webhook", payload,
		map[string]string{"Stripe-Signature": signer.SignPayload(payload, time.Now())})
	require.Equal(t, http.StatusOK, res.Code, bodyStr)
	assert.Contains(t, bodyStr, `"received":true`)

	// Role, subscription, entitlements and profile flags all flipped.
	var user models.User
	require.NoError(t, tx.Preload("PremiumFeatures").Preload("Profile").Preload("Subscription").
		First(&user, "id = ?", client.ID).Error)

	assert.Equal(t, models.UserRoleConcierge, user.Role)
	require.NotNil(t, user.Subscription)
	assert.Equal(t, models.SubscriptionStatusActive, user.Subscription.Status)
	assert.Equal(t, "sub_test_hook_1", user.Subscription.StripeSubscriptionID)
	// The short session expiry must not become the billing period, or the
	// expiry sweep would cancel the subscription a day after purchase.
	assert.True(t, user.Subscription.CurrentPeriodEnd.After(time.Now().AddDate(0, 0, 27)),
		"period end %v should be about a month out", user.Subscription.CurrentPeriodEnd)
	require.NotNil(t, user.PremiumFeatures)
	assert.True(t, user.PremiumFeatures.CanSellProducts)
	assert.Equal(t, 50, user.PremiumFeatures.MaxProductListings)
	assert.Equal(t, 20, user.PremiumFeatures.MaxServiceListings)
	require.NotNil(t, user.Profile)
	assert.True(t, user.Profile.IsPremium)
}

func TestWebhook_CheckoutCompletedKeepsProfileRating(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, concierge := helpers.CreateAndLoginConcierge(t, ts, tx)
	require.NoError(t, tx.Model(&models.Profile{}).
		Where("user_id = ?", concierge.ID).Update("rating", 4.5).Error)

	payload := []byte(fmt.Sprintf(`{
		"id": "evt_checkout_2",
		"type": "checkout.session.completed",
		"data": {"object": {
			"id": "cs_test_2",
			"customer": "cus_test_2",
			"subscription": "sub_test_hook_2",
			"expires_at": %d,
			"metadata": {"userId": %q, "planId": "premium"}
		}}
	}`, time.Now().Add(24*time.Hour).Unix(), concierge.ID))

	signer := webhookSigner()
	res, bodyStr := ts.SendRawRequest(t, tx, http.MethodPost, "/api/webhook", payload,
		map[string]string{"Stripe-Signature": signer.SignPayload(payload, time.Now())})
	require.Equal(t, http.StatusOK, res.Code, bodyStr)

	// Activation flips the premium flags but never touches the rating cache.
	var profile models.Profile
	require.NoError(t, tx.First(&profile, "user_id = ?", concierge.ID).Error)
	assert.True(t, profile.IsPremium)
	assert.InDelta(t, 4.5, profile.Rating, 0.001)
}

func TestWebhook_SubscriptionUpdatedSyncsStatus(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, concierge := helpers.CreateAndLoginConcierge(t, ts, tx)
	helpers.GrantPremium(t, tx, concierge.ID)

	var sub models.Subscription
	require.NoError(t, tx.First(&sub, "user_id = ?", concierge.ID).Error)

	payload := []byte(fmt.Sprintf(`{
		"id": "evt_upd_1",
		"type": "customer.subscription.updated",
		"data": {"object": {
			"id": %q,
			"status": "past_due",
			"current_period_end": %d,
			"cancel_at_period_end": true
		}}
	}`, sub.StripeSubscriptionID, time.Now().AddDate(0, 0, 10).Unix()))

	signer := webhookSigner()
	res, bodyStr := ts.SendRawRequest(t, tx, http.MethodPost, "/api/webhook", payload,
		map[string]string{"Stripe-Signature": signer.SignPayload(payload, time.Now())})
	require.Equal(t, http.StatusOK, res.Code, bodyStr)

	require.NoError(t, tx.First(&sub, "user_id = ?", concierge.ID).Error)
	assert.Equal(t, models.SubscriptionStatusCancelled, sub.Status)
	assert.True(t, sub.CancelAtPeriodEnd)
}

func TestWebhook_SubscriptionDeletedRevertsLapsedRole(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, concierge := helpers.CreateAndLoginConcierge(t, ts, tx)
	helpers.GrantPremium(t, tx, concierge.ID)

	var sub models.Subscription
	require.NoError(t, tx.First(&sub, "user_id = ?", concierge.ID).Error)

	// Period already over: the role drops immediately.
	payload := []byte(fmt.Sprintf(`{
		"id": "evt_del_1",
		"type": "customer.subscription.deleted",
		"data": {"object": {
			"id": %q,
			"status": "canceled",
			"current_period_end": %d
		}}
	}`, sub.StripeSubscriptionID, time.Now().Add(-time.Hour).Unix()))

	signer := webhookSigner()
	res, bodyStr := ts.SendRawRequest(t, tx, http.MethodPost, "/api/webhook", payload,
		map[string]string{"Stripe-Signature": signer.SignPayload(payload, time.Now())})
	require.Equal(t, http.StatusOK, res.Code, bodyStr)

	var user models.User
	require.NoError(t, tx.First(&user, "id = ?", concierge.ID).Error)
	assert.Equal(t, models.UserRoleClient, user.Role)

	require.NoError(t, tx.First(&sub, "user_id = ?", concierge.ID).Error)
	assert.Equal(t, models.SubscriptionStatusCancelled, sub.Status)
}

func TestWebhook_UnknownEventTypeAcknowledged(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	payload := []byte(`{"id":"evt_x","type":"invoice.paid","data":{"object":{}}}`)

	signer := webhookSigner()
	res, bodyStr := ts.SendRawRequest(t, tx, http.MethodPost, "/api/webhook", payload,
		map[string]string{"Stripe-Signature": signer.SignPayload(payload, time.Now())})
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, bodyStr, `"received":true`)
}
