package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"concierge_backend/internal/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUser inserts a user, hashing the raw password first.
func CreateUser(t *testing.T, tx *gorm.DB, user *models.User, rawPassword string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
	require.NoError(t, err)
	user.PasswordHash = string(hash)

	require.NoError(t, tx.Create(user).Error)
}

// CreateAndLoginUser inserts a user and logs in through the API, returning
// the session token.
func CreateAndLoginUser(t *testing.T, ts *TestServer, tx *gorm.DB, name, email, password string, role models.UserRole) (string, *models.User) {
	user := &models.User{
		Name:  name,
		Email: email,
		Role:  role,
	}
	CreateUser(t, tx, user, password)

	loginBody := map[string]interface{}{
		"email":    email,
		"password": password,
	}

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/auth/login", "", loginBody)
	require.Equal(t, http.StatusOK, res.Code, "login should succeed, got: "+bodyStr)

	var loginResponse struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &loginResponse))
	require.NotEmpty(t, loginResponse.Token)

	return loginResponse.Token, user
}

// CreateAndLoginClient makes a CLIENT with a unique email.
func CreateAndLoginClient(t *testing.T, ts *TestServer, tx *gorm.DB) (string, *models.User) {
	email := fmt.Sprintf("client_%d@test.com", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, tx, "Test Client", email, "password123", models.UserRoleClient)
}

// CreateAndLoginConcierge makes a CONCIERGE with a unique email and an empty
// profile row.
func CreateAndLoginConcierge(t *testing.T, ts *TestServer, tx *gorm.DB) (string, *models.User) {
	email := fmt.Sprintf("concierge_%d@test.com", time.Now().UnixNano())
	token, user := CreateAndLoginUser(t, ts, tx, "Test Concierge", email, "password123", models.UserRoleConcierge)

	require.NoError(t, tx.Create(&models.Profile{UserID: user.ID}).Error)

	return token, user
}

// GrantPremium gives a concierge an active subscription and the standard
// entitlement counters, mirroring what checkout activation writes.
func GrantPremium(t *testing.T, tx *gorm.DB, userID string) {
	now := time.Now()
	sub := &models.Subscription{
		UserID:               userID,
		PlanID:               "premium",
		Status:               models.SubscriptionStatusActive,
		StripeCustomerID:     "cus_test_" + userID[:8],
		StripeSubscriptionID: "sub_test_" + userID[:8],
		CurrentPeriodStart:   now,
		CurrentPeriodEnd:     now.AddDate(0, 1, 0),
	}
	require.NoError(t, tx.Create(sub).Error)

	features := &models.PremiumFeatures{
		UserID:               userID,
		PrioritySupport:      true,
		ExtendedAvailability: true,
		CustomBranding:       true,
		AnalyticsAccess:      true,
		MaxClientsCount:      50,
		CommissionRate:       15,
		VerifiedStatus:       true,
		CanSellProducts:      true,
		CanOfferServices:     true,
		MaxProductListings:   50,
		MaxServiceListings:   20,
	}
	require.NoError(t, tx.Create(features).Error)

	require.NoError(t, tx.Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{"is_premium": true, "premium_badge": true}).Error)
}
