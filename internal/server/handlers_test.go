package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/query"
	"github.com/claude/liftlog/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	path := filepath.Join(t.TempDir(), "liftlog.db")
	if err := storage.RunMigrations(path, "../../migrations"); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	store, err := storage.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(store, log)
}

func doJSON(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

const profileBody = `{
	"name": "Alex",
	"age": 30,
	"height": 180,
	"height_unit": "cm",
	"weight": 80,
	"weight_unit": "kg",
	"onboarding_complete": true
}`

const workoutBody = `{
	"date": "2024-05-10T18:00:00Z",
	"notes": "push day",
	"exercises": [
		{"name": "Bench Press", "notes": "", "sets": [
			{"type": "weight_reps", "weight": 80, "reps": 5},
			{"type": "weight_reps", "weight": 85, "reps": 3}
		]},
		{"name": "Rowing", "notes": "steady pace", "sets": [
			{"type": "level_duration", "level": 6, "duration": 600}
		]}
	]
}`

func seedServerProfile(t *testing.T, s *Server) {
	t.Helper()
	rec := doJSON(t, s, http.MethodPut, "/api/v1/profile", profileBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("seed profile: status %d: %s", rec.Code, rec.Body.String())
	}
}

func createWorkout(t *testing.T, s *Server) models.Session {
	t.Helper()
	rec := doJSON(t, s, http.MethodPost, "/api/v1/sessions", workoutBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create workout: status %d: %s", rec.Code, rec.Body.String())
	}
	var sess models.Session
	if err := json.Unmarshal(rec.Body.Bytes(), &sess); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	return sess
}

// TestProfileLifecycle walks PUT then GET, including the 404 before any
// profile exists.
func TestProfileLifecycle(t *testing.T) {
	s := newTestServer(t)

	if rec := doJSON(t, s, http.MethodGet, "/api/v1/profile", ""); rec.Code != http.StatusNotFound {
		t.Errorf("GET before save: status %d, want 404", rec.Code)
	}

	seedServerProfile(t, s)

	rec := doJSON(t, s, http.MethodGet, "/api/v1/profile", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET: status %d", rec.Code)
	}
	var p models.Profile
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatal(err)
	}
	if p.Name != "Alex" || p.HeightUnit != models.HeightCm {
		t.Errorf("profile = %+v", p)
	}

	// Saving again is an update, not a second profile.
	rec = doJSON(t, s, http.MethodPut, "/api/v1/profile", strings.Replace(profileBody, "Alex", "Alexandra", 1))
	if rec.Code != http.StatusOK {
		t.Fatalf("second PUT: status %d: %s", rec.Code, rec.Body.String())
	}
	var p2 models.Profile
	if err := json.Unmarshal(rec.Body.Bytes(), &p2); err != nil {
		t.Fatal(err)
	}
	if p2.ID != p.ID || p2.Name != "Alexandra" {
		t.Errorf("upsert: got %s/%q, want %s/Alexandra", p2.ID, p2.Name, p.ID)
	}
}

// TestProfileValidationRejected verifies a 400 for out-of-policy values.
func TestProfileValidationRejected(t *testing.T) {
	s := newTestServer(t)
	bad := strings.Replace(profileBody, `"age": 30`, `"age": 150`, 1)
	if rec := doJSON(t, s, http.MethodPut, "/api/v1/profile", bad); rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

// TestWorkoutLifecycle walks create, get, update, delete and the 404
// that follows.
func TestWorkoutLifecycle(t *testing.T) {
	s := newTestServer(t)
	seedServerProfile(t, s)

	sess := createWorkout(t, s)
	if len(sess.Exercises) != 2 {
		t.Fatalf("exercises = %d, want 2", len(sess.Exercises))
	}
	if sess.Exercises[0].Sets[1].SetNumber != 2 {
		t.Errorf("set numbering not positional: %+v", sess.Exercises[0].Sets)
	}

	rec := doJSON(t, s, http.MethodGet, "/api/v1/sessions/"+sess.ID.String(), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET: status %d", rec.Code)
	}

	updated := strings.Replace(workoutBody, "push day", "push day, new PR", 1)
	rec = doJSON(t, s, http.MethodPut, "/api/v1/sessions/"+sess.ID.String(), updated)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT: status %d: %s", rec.Code, rec.Body.String())
	}
	var after models.Session
	if err := json.Unmarshal(rec.Body.Bytes(), &after); err != nil {
		t.Fatal(err)
	}
	if after.Notes != "push day, new PR" {
		t.Errorf("notes = %q", after.Notes)
	}
	if after.ID != sess.ID {
		t.Errorf("update changed session identity")
	}

	if rec := doJSON(t, s, http.MethodDelete, "/api/v1/sessions/"+sess.ID.String(), ""); rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE: status %d", rec.Code)
	}
	if rec := doJSON(t, s, http.MethodGet, "/api/v1/sessions/"+sess.ID.String(), ""); rec.Code != http.StatusNotFound {
		t.Errorf("GET after delete: status %d, want 404", rec.Code)
	}
	if rec := doJSON(t, s, http.MethodDelete, "/api/v1/sessions/"+sess.ID.String(), ""); rec.Code != http.StatusNotFound {
		t.Errorf("double DELETE: status %d, want 404", rec.Code)
	}
}

// TestCreateWorkoutRejected covers the two 400 paths: a malformed set
// payload in the body and a structurally invalid draft.
func TestCreateWorkoutRejected(t *testing.T) {
	s := newTestServer(t)
	seedServerProfile(t, s)

	mixed := strings.Replace(workoutBody, `"weight": 80, "reps": 5`, `"weight": 80, "reps": 5, "level": 3`, 1)
	if rec := doJSON(t, s, http.MethodPost, "/api/v1/sessions", mixed); rec.Code != http.StatusBadRequest {
		t.Errorf("mixed payload: status %d, want 400", rec.Code)
	}

	empty := `{"date": "2024-05-10T18:00:00Z", "notes": "", "exercises": [{"name": "Squat", "notes": "", "sets": []}]}`
	if rec := doJSON(t, s, http.MethodPost, "/api/v1/sessions", empty); rec.Code != http.StatusBadRequest {
		t.Errorf("zero-set exercise: status %d, want 400", rec.Code)
	}

	if rec := doJSON(t, s, http.MethodGet, "/api/v1/sessions", ""); rec.Code != http.StatusOK {
		t.Fatalf("list: status %d", rec.Code)
	} else {
		var sessions []models.Session
		if err := json.Unmarshal(rec.Body.Bytes(), &sessions); err != nil {
			t.Fatal(err)
		}
		if len(sessions) != 0 {
			t.Errorf("rejected drafts persisted %d sessions", len(sessions))
		}
	}
}

// TestListFilterAndGrouping exercises the q and group query params.
func TestListFilterAndGrouping(t *testing.T) {
	s := newTestServer(t)
	seedServerProfile(t, s)
	createWorkout(t, s)

	legs := strings.Replace(workoutBody, "Bench Press", "Squat", 1)
	legs = strings.Replace(legs, "2024-05-10", "2024-05-11", 1)
	if rec := doJSON(t, s, http.MethodPost, "/api/v1/sessions", legs); rec.Code != http.StatusCreated {
		t.Fatalf("second workout: status %d: %s", rec.Code, rec.Body.String())
	}

	rec := doJSON(t, s, http.MethodGet, "/api/v1/sessions?q=squat", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("filtered list: status %d", rec.Code)
	}
	var filtered []models.Session
	if err := json.Unmarshal(rec.Body.Bytes(), &filtered); err != nil {
		t.Fatal(err)
	}
	if len(filtered) != 1 {
		t.Fatalf("q=squat matched %d sessions, want 1", len(filtered))
	}

	rec = doJSON(t, s, http.MethodGet, "/api/v1/sessions?group=day", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("grouped list: status %d", rec.Code)
	}
	var groups []query.DayGroup
	if err := json.Unmarshal(rec.Body.Bytes(), &groups); err != nil {
		t.Fatal(err)
	}
	if len(groups) != 2 {
		t.Errorf("groups = %d, want 2", len(groups))
	}
}

// TestStats verifies the aggregate endpoint counts workouts and
// distinct days.
func TestStats(t *testing.T) {
	s := newTestServer(t)
	seedServerProfile(t, s)
	createWorkout(t, s)
	createWorkout(t, s) // same day, second workout

	rec := doJSON(t, s, http.MethodGet, "/api/v1/stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var stats query.Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.TotalWorkouts != 2 {
		t.Errorf("total_workouts = %d, want 2", stats.TotalWorkouts)
	}
	if stats.UniqueDays != 1 {
		t.Errorf("unique_days = %d, want 1", stats.UniqueDays)
	}
}

// TestBadSessionID verifies a malformed id is a 400, not a 404.
func TestBadSessionID(t *testing.T) {
	s := newTestServer(t)
	seedServerProfile(t, s)
	if rec := doJSON(t, s, http.MethodGet, "/api/v1/sessions/not-a-uuid", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", rec.Code)
	}
}
