package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"concierge_backend/internal/models"
	"concierge_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_SignupFlow(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	email := fmt.Sprintf("signup_%d@test.com", time.Now().UnixNano())
	body := map[string]interface{}{
		"name":     "New Client",
		"email":    email,
		"password": "password123",
		"role":     "CLIENT",
	}

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/auth/signup", "", body)
	require.Equal(t, http.StatusCreated, res.Code, bodyStr)

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID    string `json:"id"`
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, email, resp.User.Email)
	assert.Equal(t, "CLIENT", resp.User.Role)
	assert.NotContains(t, bodyStr, "password")

	// The token works right away.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/user/profile", resp.Token, nil)
	assert.Equal(t, http.StatusOK, res.Code, bodyStr)
}

func TestAuth_SignupDuplicateEmail(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	email := fmt.Sprintf("dup_%d@test.com", time.Now().UnixNano())
	body := map[string]interface{}{
		"name":     "First",
		"email":    email,
		"password": "password123",
		"role":     "CLIENT",
	}

	res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/auth/signup", "", body)
	require.Equal(t, http.StatusCreated, res.Code)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/auth/signup", "", body)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, bodyStr, "Cet email est déjà utilisé")
}

func TestAuth_SignupMissingFields(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/auth/signup", "",
		map[string]interface{}{"email": "incomplete@test.com"})

	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, bodyStr, "Tous les champs sont requis")
}

func TestAuth_SignupShortPassword(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/auth/signup", "",
		map[string]interface{}{
			"name":     "Short",
			"email":    fmt.Sprintf("short_%d@test.com", time.Now().UnixNano()),
			"password": "five!",
			"role":     "CLIENT",
		})

	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, bodyStr, "at least 6 characters")
}

func TestAuth_LoginWrongPassword(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, user := helpers.CreateAndLoginClient(t, ts, tx)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/auth/login", "",
		map[string]interface{}{"email": user.Email, "password": "wrong-password"})

	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Contains(t, bodyStr, "Invalid email or password")
}

func TestAuth_LoginUnknownEmail(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/auth/login", "",
		map[string]interface{}{"email": "nobody@test.com", "password": "password123"})

	// Unknown email and bad password are indistinguishable.
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestAuth_RefreshReflectsCurrentState(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, user := helpers.CreateAndLoginClient(t, ts, tx)

	// Role changes out of band (e.g. premium activation).
	require.NoError(t, tx.Model(&models.User{}).Where("id = ?", user.ID).
		Update("role", models.UserRoleConcierge).Error)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/auth/refresh", token, nil)
	require.Equal(t, http.StatusOK, res.Code, bodyStr)

	var resp struct {
		User struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &resp))
	assert.Equal(t, "CONCIERGE", resp.User.Role)
}

func TestAuth_ProtectedRouteRequiresToken(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, _ := ts.SendRequest(t, tx, http.MethodGet, "/api/requests", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.Code)

	res, _ = ts.SendRequest(t, tx, http.MethodGet, "/api/requests", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}
