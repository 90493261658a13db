package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"concierge_backend/internal/models"
	"concierge_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_CreateStartsPending(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	clientToken, _ := helpers.CreateAndLoginClient(t, ts, tx)
	_, concierge := helpers.CreateAndLoginConcierge(t, ts, tx)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/requests", clientToken,
		map[string]interface{}{
			"conciergeId": concierge.ID,
			"service":     "Private jet to Courchevel",
			"details":     "4 passengers, next Friday",
		})
	require.Equal(t, http.StatusCreated, res.Code, bodyStr)

	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &created))
	assert.Equal(t, "pending", created.Status)
}

func TestRequest_CreateAgainstClientFails(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	clientToken, _ := helpers.CreateAndLoginClient(t, ts, tx)
	_, otherClient := helpers.CreateAndLoginClient(t, ts, tx)

	res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/requests", clientToken,
		map[string]interface{}{
			"conciergeId": otherClient.ID,
			"service":     "s",
			"details":     "d",
		})
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestRequest_ListScopedToParty(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	clientToken, _ := helpers.CreateAndLoginClient(t, ts, tx)
	conciergeToken, concierge := helpers.CreateAndLoginConcierge(t, ts, tx)
	strangerToken, _ := helpers.CreateAndLoginClient(t, ts, tx)

	res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/requests", clientToken,
		map[string]interface{}{"conciergeId": concierge.ID, "service": "Dinner at Le Louis XV", "details": "Table for two"})
	require.Equal(t, http.StatusCreated, res.Code)

	// Both parties see it.
	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/requests", clientToken, nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, bodyStr, "Le Louis XV")

	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/requests", conciergeToken, nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, bodyStr, "Le Louis XV")

	// A third party does not.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/requests", strangerToken, nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.NotContains(t, bodyStr, "Le Louis XV")
}

func TestRequest_StatusLifecycle(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	clientToken, _ := helpers.CreateAndLoginClient(t, ts, tx)
	conciergeToken, concierge := helpers.CreateAndLoginConcierge(t, ts, tx)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/requests", clientToken,
		map[string]interface{}{"conciergeId": concierge.ID, "service": "s", "details": "d"})
	require.Equal(t, http.StatusCreated, res.Code)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &created))

	// Concierge accepts, then completes.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodPut, "/api/requests/"+created.ID+"/status", conciergeToken,
		map[string]interface{}{"status": "accepted"})
	require.Equal(t, http.StatusOK, res.Code, bodyStr)
	assert.Contains(t, bodyStr, `"status":"accepted"`)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodPut, "/api/requests/"+created.ID+"/status", conciergeToken,
		map[string]interface{}{"status": "completed"})
	require.Equal(t, http.StatusOK, res.Code, bodyStr)

	// Completed is terminal.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodPut, "/api/requests/"+created.ID+"/status", conciergeToken,
		map[string]interface{}{"status": "cancelled"})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, bodyStr, "Illegal status transition")
}

func TestRequest_PendingCannotComplete(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	clientToken, _ := helpers.CreateAndLoginClient(t, ts, tx)
	conciergeToken, concierge := helpers.CreateAndLoginConcierge(t, ts, tx)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/requests", clientToken,
		map[string]interface{}{"conciergeId": concierge.ID, "service": "s", "details": "d"})
	require.Equal(t, http.StatusCreated, res.Code)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &created))

	res, _ = ts.SendRequest(t, tx, http.MethodPut, "/api/requests/"+created.ID+"/status", conciergeToken,
		map[string]interface{}{"status": "completed"})
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestRequest_ClientMayOnlyCancel(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	clientToken, _ := helpers.CreateAndLoginClient(t, ts, tx)
	_, concierge := helpers.CreateAndLoginConcierge(t, ts, tx)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/requests", clientToken,
		map[string]interface{}{"conciergeId": concierge.ID, "service": "s", "details": "d"})
	require.Equal(t, http.StatusCreated, res.Code)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &created))

	// The client cannot accept their own request.
	res, _ = ts.SendRequest(t, tx, http.MethodPut, "/api/requests/"+created.ID+"/status", clientToken,
		map[string]interface{}{"status": "accepted"})
	assert.Equal(t, http.StatusForbidden, res.Code)

	// But cancelling is allowed.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodPut, "/api/requests/"+created.ID+"/status", clientToken,
		map[string]interface{}{"status": "cancelled"})
	require.Equal(t, http.StatusOK, res.Code, bodyStr)

	var request models.Request
	require.NoError(t, tx.First(&request, "id = ?", created.ID).Error)
	assert.Equal(t, models.RequestStatusCancelled, request.Status)
}

func TestRequest_ThirdPartyCannotTouch(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	clientToken, _ := helpers.CreateAndLoginClient(t, ts, tx)
	_, concierge := helpers.CreateAndLoginConcierge(t, ts, tx)
	strangerToken, _ := helpers.CreateAndLoginClient(t, ts, tx)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/requests", clientToken,
		map[string]interface{}{"conciergeId": concierge.ID, "service": "s", "details": "d"})
	require.Equal(t, http.StatusCreated, res.Code)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &created))

	res, _ = ts.SendRequest(t, tx, http.MethodPut, "/api/requests/"+created.ID+"/status", strangerToken,
		map[string]interface{}{"status": "cancelled"})
	assert.Equal(t, http.StatusForbidden, res.Code)
}
