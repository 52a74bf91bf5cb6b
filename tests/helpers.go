package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	_ "github.com/lib/pq"
	"github.com/lithammer/shortuuid/v3"
	"github.com/stretchr/testify/require"

	"reservas/entities"
)

const baseURL = "http://localhost:8080"

type createSessionResponse struct {
	SessionID string `json:"session_id"`
}

func createSession(t *testing.T, userID int, authToken string) string {
	t.Helper()

	payload, err := json.Marshal(map[string]any{
		"user_id":    userID,
		"auth_token": authToken,
	})
	require.NoError(t, err)

	resp, err := http.Post(baseURL+"/sessions", "application/json", bytes.NewBuffer(payload))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created createSessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.NotEmpty(t, created.SessionID)

	return created.SessionID
}

func putSelectedEvent(t *testing.T, sessionID string, event entities.Event) {
	t.Helper()

	payload, err := json.Marshal(event)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPut, baseURL+"/selected-event", bytes.NewBuffer(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-Id", sessionID)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
}

type submitReservationRequest struct {
	VenueName        string `json:"venue_name"`
	UseSelectedEvent bool   `json:"use_selected_event"`
	PeopleCount      int    `json:"people_count"`
	TableConfig      string `json:"table_config"`
	Date             string `json:"date"`
}

func postReservation(t *testing.T, sessionID string, req submitReservationRequest) (int, entities.ReservationOutcome) {
	t.Helper()

	payload, err := json.Marshal(req)
	require.NoError(t, err)

	httpReq, err := http.NewRequest(http.MethodPost, baseURL+"/reservations", bytes.NewBuffer(payload))
	require.NoError(t, err)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Correlation-ID", shortuuid.New())
	if sessionID != "" {
		httpReq.Header.Set("X-Session-Id", sessionID)
	}

	resp, err := http.DefaultClient.Do(httpReq)
	require.NoError(t, err)
	defer resp.Body.Close()

	var outcome entities.ReservationOutcome
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&outcome))

	return resp.StatusCode, outcome
}

func getJSON(t *testing.T, sessionID, path string, out any) int {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
	require.NoError(t, err)
	if sessionID != "" {
		req.Header.Set("X-Session-Id", sessionID)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}

	return resp.StatusCode
}
