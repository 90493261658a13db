package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"concierge_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile_Update(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginClient(t, ts, tx)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPut, "/api/user/profile", token,
		map[string]interface{}{"name": "Renamed Client", "bio": "Collector of rare watches"})
	require.Equal(t, http.StatusOK, res.Code, bodyStr)

	var resp struct {
		Name string `json:"name"`
		Bio  string `json:"bio"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &resp))
	assert.Equal(t, "Renamed Client", resp.Name)
	assert.Equal(t, "Collector of rare watches", resp.Bio)
}

func TestProfile_EmailChangeCollision(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginClient(t, ts, tx)
	_, other := helpers.CreateAndLoginClient(t, ts, tx)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPut, "/api/user/profile", token,
		map[string]interface{}{"email": other.Email})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, bodyStr, "Cet email est déjà utilisé")
}

func TestProfile_EmailChangeToFreeAddress(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginClient(t, ts, tx)

	fresh := fmt.Sprintf("fresh_%d@test.com", time.Now().UnixNano())
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPut, "/api/user/profile", token,
		map[string]interface{}{"email": fresh})
	require.Equal(t, http.StatusOK, res.Code, bodyStr)
	assert.Contains(t, bodyStr, fresh)
}
