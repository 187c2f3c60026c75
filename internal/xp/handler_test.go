package xp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_TotalAndLevel(t *testing.T) {
	repo := &testEventsRepo{}
	service := NewService(repo, nil)
	handler := NewHandler(service)
	ctx := context.Background()

	for i := 0; i < 16; i++ {
		_, err := service.AwardSet(ctx, "Squat")
		require.NoError(t, err)
	}

	req, err := http.NewRequest("GET", "/xp/total", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	handler.HandleTotal(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var totalResp TotalResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &totalResp))
	assert.Equal(t, 32, totalResp.TotalXP)

	req, err = http.NewRequest("GET", "/xp/level", nil)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	handler.HandleLevel(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var status Status
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	assert.Equal(t, 2, status.Level)
}

func TestHandler_Events(t *testing.T) {
	repo := &testEventsRepo{}
	service := NewService(repo, nil)
	handler := NewHandler(service)

	_, err := service.AwardSet(context.Background(), "Squat")
	require.NoError(t, err)

	req, err := http.NewRequest("GET", "/xp/events?limit=10", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	handler.HandleEvents(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp EventsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp.Events, 1)

	req, err = http.NewRequest("GET", "/xp/events?limit=nope", nil)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	handler.HandleEvents(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
