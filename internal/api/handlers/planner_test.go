package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifesync/backend/internal/planner"
	"github.com/lifesync/backend/internal/storage"
)

// fakeGemini serves a canned generateContent response.
func fakeGemini(t *testing.T, text string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"candidates": []any{
				map[string]any{
					"content": map[string]any{
						"parts": []any{map[string]any{"text": text}},
					},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(server.Close)
	return server
}

func newPlannerRouter(t *testing.T, modelOutput string) (*mux.Router, *storage.EventRepository) {
	t.Helper()

	db := newTestDB(t)
	hub := newTestHub(t)
	server := fakeGemini(t, modelOutput)
	client := planner.NewClient("test-key", planner.WithBaseURL(server.URL))

	r := mux.NewRouter()
	r.HandleFunc("/plan/generate", GeneratePlan(db, hub, client)).Methods("POST")
	r.HandleFunc("/plan/scan", ScanTimetable(db, hub, client)).Methods("POST")

	return r, storage.NewEventRepository(db)
}

func TestGeneratePlanStoresAcceptedDrafts(t *testing.T) {
	router, repo := newPlannerRouter(t, `[
		{"title":"Gym","category":"health","start":"18:00","end":"19:00","days":["Monday"]},
		{"title":"Untimed","category":"work","start":"bad","end":"10:00","days":["Monday"]}
	]`)

	rec := doJSON(t, router, "POST", "/plan/generate", map[string]string{
		"prompt": "gym on monday evening",
		"day":    "Monday",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Added, 1)
	assert.Equal(t, "Gym", resp.Added[0].Title)
	assert.NotEmpty(t, resp.Added[0].ID)
	require.Len(t, resp.Rejected, 1)
	assert.Equal(t, "Untimed", resp.Rejected[0].Draft.Title)

	events, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Gym", events[0].Title)
}

func TestGeneratePlanCoercesUnknownCategory(t *testing.T) {
	router, repo := newPlannerRouter(t,
		`[{"title":"Board Games","category":"fun","start":"20:00","end":"21:00","days":["Saturday"]}]`)

	rec := doJSON(t, router, "POST", "/plan/generate", map[string]string{
		"prompt": "board games saturday night",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	events, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "leisure", events[0].Category)
}

func TestGeneratePlanRequiresPrompt(t *testing.T) {
	router, _ := newPlannerRouter(t, "[]")

	rec := doJSON(t, router, "POST", "/plan/generate", map[string]string{"prompt": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScanTimetable(t *testing.T) {
	router, repo := newPlannerRouter(t,
		"```json\n[{\"title\":\"Math\",\"category\":\"study\",\"start\":\"09:00\",\"end\":\"10:30\",\"days\":[\"Tuesday\",\"Thursday\"]}]\n```")

	rec := doJSON(t, router, "POST", "/plan/scan", map[string]string{
		"image":     "aGVsbG8=",
		"mime_type": "image/png",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Added, 1)
	assert.Equal(t, "Math", resp.Added[0].Title)

	events, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
}

func TestScanTimetableRequiresImage(t *testing.T) {
	router, _ := newPlannerRouter(t, "[]")

	rec := doJSON(t, router, "POST", "/plan/scan", map[string]string{"image": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
