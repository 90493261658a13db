package integration_test

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"concierge_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListing_CreateAndList(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, user := helpers.CreateAndLoginClient(t, ts, tx)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/listings", token,
		map[string]interface{}{
			"title":       "1962 Ferrari 250 GTO",
			"description": "Matching numbers, full history",
			"price":       48000000,
			"category":    "Classic Cars",
			"images":      []string{"https://cdn.test/gto-1.jpg"},
		})
	require.Equal(t, http.StatusCreated, res.Code, bodyStr)

	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		UserID string `json:"userId"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &created))
	assert.Equal(t, "ACTIVE", created.Status)
	assert.Equal(t, user.ID, created.UserID)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/listings", "", nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, bodyStr, "1962 Ferrari 250 GTO")
}

func TestListing_FilterByCategory(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginClient(t, ts, tx)

	for _, l := range []map[string]interface{}{
		{"title": "Patek Philippe Nautilus", "description": "d", "price": 180000, "category": "Luxury Watches"},
		{"title": "Villa in Saint-Tropez", "description": "d", "price": 12000000, "category": "Vacation Villas"},
	} {
		res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/listings", token, l)
		require.Equal(t, http.StatusCreated, res.Code)
	}

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/listings?category="+url.QueryEscape("Luxury Watches"), "", nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, bodyStr, "Patek Philippe Nautilus")
	assert.NotContains(t, bodyStr, "Villa in Saint-Tropez")
}

func TestListing_CreateRequiresAuth(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/listings", "",
		map[string]interface{}{"title": "t", "description": "d", "price": 1, "category": "c"})
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestListing_CreateValidation(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginClient(t, ts, tx)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/listings", token,
		map[string]interface{}{"title": "Missing the rest"})
	assert.Equal(t, http.StatusBadRequest, res.Code, bodyStr)
}
