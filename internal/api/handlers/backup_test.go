package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifesync/backend/internal/storage"
	"github.com/lifesync/backend/internal/storage/models"
)

func newBackupRouter(t *testing.T) (*mux.Router, *storage.EventRepository) {
	t.Helper()

	db := newTestDB(t)
	hub := newTestHub(t)

	r := mux.NewRouter()
	r.HandleFunc("/export", ExportEvents(db)).Methods("GET")
	r.HandleFunc("/export.ics", ExportICS(db, nil)).Methods("GET")
	r.HandleFunc("/import", ImportEvents(db, hub)).Methods("POST")

	return r, storage.NewEventRepository(db)
}

func TestExportImportRoundTrip(t *testing.T) {
	router, repo := newBackupRouter(t)
	require.NoError(t, repo.Seed(context.Background()))

	rec := doJSON(t, router, "GET", "/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "lifesync-schedule.json")

	var doc BackupDocument
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Len(t, doc.Events, 3)

	// Import the exported document into a fresh store.
	router2, repo2 := newBackupRouter(t)

	rec = doJSON(t, router2, "POST", "/import", doc)
	require.Equal(t, http.StatusOK, rec.Code)

	events, err := repo2.List(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "Deep Work / Coding", events[0].Title)
}

func TestImportReplacesExistingEvents(t *testing.T) {
	router, repo := newBackupRouter(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Event{
		Title: "Old", Category: "work", Start: "09:00", End: "10:00", Days: []string{"Monday"},
	}))

	doc := BackupDocument{Events: []models.Event{
		{Title: "New", Category: "study", Start: "14:00", End: "15:00", Days: []string{"Tuesday"}},
	}}
	rec := doJSON(t, router, "POST", "/import", doc)
	require.Equal(t, http.StatusOK, rec.Code)

	events, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "New", events[0].Title)
}

func TestImportRejectsInvalidEvents(t *testing.T) {
	router, repo := newBackupRouter(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Event{
		Title: "Keep Me", Category: "work", Start: "09:00", End: "10:00", Days: []string{"Monday"},
	}))

	doc := BackupDocument{Events: []models.Event{
		{Title: "Bad", Category: "work", Start: "99:00", End: "10:00", Days: []string{"Monday"}},
	}}
	rec := doJSON(t, router, "POST", "/import", doc)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// The store is untouched.
	events, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Keep Me", events[0].Title)
}

func TestExportICS(t *testing.T) {
	router, repo := newBackupRouter(t)
	require.NoError(t, repo.Seed(context.Background()))

	rec := doJSON(t, router, "GET", "/export.ics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/calendar")
	assert.Contains(t, rec.Body.String(), "BEGIN:VCALENDAR")
	assert.Contains(t, rec.Body.String(), "SUMMARY:Deep Work / Coding")
	assert.Contains(t, rec.Body.String(), "RRULE:FREQ=WEEKLY")
}
