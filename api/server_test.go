package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clbtoolchain/clbfab/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFASM = "BLE_X1Y2.BLE0.FLOPSEL.ENABLE\n" +
	"BLE_X1Y2.BLE0.LUT.INIT[15:0] = 16'b1111111111111110\n" +
	"BLE_X1Y2.BLE0_LI0.IN0\n"

func doJSON(t *testing.T, srv *api.Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		r = httptest.NewRequest(method, path, bytes.NewReader(buf))
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, r)
	return w
}

func TestHealthEndpointReportsSessionCount(t *testing.T) {
	srv := api.NewServer(0)

	w := doJSON(t, srv, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.EqualValues(t, 0, resp["sessions"])
}

func TestSessionLifecycleCompilesAndLints(t *testing.T) {
	srv := api.NewServer(0)

	created := doJSON(t, srv, http.MethodPost, "/api/v1/session", map[string]interface{}{
		"source": sampleFASM,
	})
	require.Equal(t, http.StatusCreated, created.Code)

	var createResp map[string]interface{}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &createResp))
	sessionID, ok := createResp["sessionId"].(string)
	require.True(t, ok, "response missing sessionId: %v", createResp)
	require.NotEmpty(t, sessionID)

	status := doJSON(t, srv, http.MethodGet, "/api/v1/session/"+sessionID, nil)
	assert.Equal(t, http.StatusOK, status.Code)

	lint := doJSON(t, srv, http.MethodGet, "/api/v1/session/"+sessionID+"/lint", nil)
	assert.Equal(t, http.StatusOK, lint.Code)

	compile := doJSON(t, srv, http.MethodPost, "/api/v1/session/"+sessionID+"/compile", map[string]interface{}{
		"format": "json",
	})
	require.Equal(t, http.StatusOK, compile.Code)

	var compileResp map[string]interface{}
	require.NoError(t, json.Unmarshal(compile.Body.Bytes(), &compileResp))
	assert.NotEmpty(t, compileResp["output"])

	destroyed := doJSON(t, srv, http.MethodDelete, "/api/v1/session/"+sessionID, nil)
	assert.Equal(t, http.StatusOK, destroyed.Code)

	gone := doJSON(t, srv, http.MethodGet, "/api/v1/session/"+sessionID, nil)
	assert.Equal(t, http.StatusNotFound, gone.Code)
}

func TestUnknownSessionActionReturnsNotFound(t *testing.T) {
	srv := api.NewServer(0)

	created := doJSON(t, srv, http.MethodPost, "/api/v1/session", nil)
	require.Equal(t, http.StatusCreated, created.Code)

	var createResp map[string]interface{}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &createResp))
	sessionID := createResp["sessionId"].(string)

	w := doJSON(t, srv, http.MethodGet, "/api/v1/session/"+sessionID+"/bogus", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
