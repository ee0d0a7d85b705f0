package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lang-portal/internal/studysession"
	"lang-portal/internal/studysession/sqlite"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store, err := sqlite.NewSQLiteStore(filepath.Join(t.TempDir(), "portal.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	service := studysession.NewService(store, store, store, zap.NewNop())
	require.NoError(t, service.ImportCatalog(context.Background(), studysession.Catalog{
		Groups: []studysession.Group{
			{ID: 1, Name: "Core Verbs"},
			{ID: 2, Name: "Core Adjectives"},
		},
		StudyActivities: []studysession.StudyActivity{
			{ID: 1, Name: "Typing Tutor"},
			{ID: 2, Name: "Flashcards"},
		},
		Words: []studysession.Word{
			{ID: 1, Kanji: "食べる", Romaji: "taberu", English: "to eat"},
			{ID: 2, Kanji: "飲む", Romaji: "nomu", English: "to drink"},
			{ID: 3, Kanji: "赤い", Romaji: "akai", English: "red"},
		},
	}))

	return NewRouter(service, zap.NewNop())
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var payload T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&payload), "body: %s", rec.Body.String())
	return payload
}

func createTestSession(t *testing.T, handler http.Handler, groupID, activityID int) sessionResponse {
	t.Helper()

	body, err := json.Marshal(map[string]int{"group_id": groupID, "study_activity_id": activityID})
	require.NoError(t, err)

	rec := doRequest(t, handler, http.MethodPost, "/api/study-sessions", string(body))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[sessionResponse](t, rec)
}

func TestParseIntParam(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/study-sessions", nil)
	if got, err := parseIntParam(req, "per_page", 10); err != nil || got != 10 {
		t.Fatalf("default parseIntParam = (%d, %v), want (10, nil)", got, err)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/study-sessions?per_page=25", nil)
	if got, err := parseIntParam(req, "per_page", 10); err != nil || got != 25 {
		t.Fatalf("valid parseIntParam = (%d, %v), want (25, nil)", got, err)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/study-sessions?per_page=0", nil)
	if _, err := parseIntParam(req, "per_page", 10); err == nil {
		t.Fatalf("expected error for non-positive per_page")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/study-sessions?page=two", nil)
	if _, err := parseIntParam(req, "page", 1); err == nil {
		t.Fatalf("expected error for non-numeric page")
	}
}

func TestParseIDParam(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/study-sessions/7", nil)
	req.SetPathValue("id", "7")
	if got, err := parseIDParam(req, "id"); err != nil || got != 7 {
		t.Fatalf("parseIDParam = (%d, %v), want (7, nil)", got, err)
	}

	for _, value := range []string{"0", "-3", "abc", ""} {
		req.SetPathValue("id", value)
		if _, err := parseIDParam(req, "id"); err == nil {
			t.Fatalf("expected error for id %q", value)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

	got, err := parseTimestamp("2026-03-04T05:06:07Z")
	require.NoError(t, err)
	assert.True(t, want.Equal(got))

	got, err = parseTimestamp("2026-03-04 05:06:07")
	require.NoError(t, err)
	assert.True(t, want.Equal(got))

	_, err = parseTimestamp("yesterday")
	require.Error(t, err)
}

func TestWriteMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	writeMethodNotAllowed(rec, http.MethodGet, http.MethodPost)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
	if got := rec.Header().Get("Allow"); got != "GET, POST" {
		t.Fatalf("allow header = %q, want %q", got, "GET, POST")
	}

	var payload errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Error != "method not allowed" {
		t.Fatalf("error payload = %q", payload.Error)
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody[healthResponse](t, rec).Status)
}

func TestCreateAndGetSession(t *testing.T) {
	router := newTestRouter(t)

	created := createTestSession(t, router, 2, 1)
	assert.Equal(t, "Core Adjectives", created.GroupName)
	assert.Equal(t, "Typing Tutor", created.ActivityName)
	assert.Equal(t, int64(1), created.ActivityID)
	assert.Zero(t, created.ReviewItemsCount)
	assert.Equal(t, created.StartTime, created.EndTime, "open session reports start_time as end_time")

	rec := doRequest(t, router, http.MethodGet, "/api/study-sessions/"+itoa(created.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)

	detail := decodeBody[sessionDetailResponse](t, rec)
	assert.Equal(t, created, detail.Session)
	assert.Empty(t, detail.Words)
	assert.Zero(t, detail.Total)
	assert.Zero(t, detail.TotalPages)
}

func TestCreateSessionErrors(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{name: "empty object", body: `{}`, wantStatus: http.StatusBadRequest, wantError: "missing required field: group_id"},
		{name: "missing activity", body: `{"group_id":1}`, wantStatus: http.StatusBadRequest, wantError: "missing required field: study_activity_id"},
		{name: "malformed", body: `{"group_id":`, wantStatus: http.StatusBadRequest, wantError: "invalid JSON body"},
		{name: "unknown group", body: `{"group_id":99,"study_activity_id":1}`, wantStatus: http.StatusNotFound, wantError: "group not found"},
		{name: "unknown activity", body: `{"group_id":1,"study_activity_id":99}`, wantStatus: http.StatusNotFound, wantError: "study activity not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodPost, "/api/study-sessions", tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantError, decodeBody[errorResponse](t, rec).Error)
		})
	}

	rec := doRequest(t, router, http.MethodGet, "/api/study-sessions", "")
	assert.Zero(t, decodeBody[sessionListResponse](t, rec).Total, "failed creates must not insert rows")
}

func TestListSessionsPagination(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/study-sessions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"items":[]`)
	empty := decodeBody[sessionListResponse](t, rec)
	assert.Zero(t, empty.Total)
	assert.Zero(t, empty.TotalPages)
	assert.Equal(t, 1, empty.Page)
	assert.Equal(t, 10, empty.PerPage)

	var ids []int64
	for i := 0; i < 5; i++ {
		ids = append(ids, createTestSession(t, router, 1, 2).ID)
	}

	rec = doRequest(t, router, http.MethodGet, "/api/study-sessions?page=3&per_page=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	last := decodeBody[sessionListResponse](t, rec)
	assert.Equal(t, 5, last.Total)
	assert.Equal(t, 3, last.TotalPages)
	require.Len(t, last.Items, 1)
	assert.Equal(t, ids[0], last.Items[0].ID, "oldest session is on the last page")

	rec = doRequest(t, router, http.MethodGet, "/api/study-sessions?per_page=2", "")
	first := decodeBody[sessionListResponse](t, rec)
	require.Len(t, first.Items, 2)
	assert.Equal(t, ids[4], first.Items[0].ID)
	assert.Equal(t, ids[3], first.Items[1].ID)

	rec = doRequest(t, router, http.MethodGet, "/api/study-sessions?per_page=500", "")
	assert.Equal(t, studysession.MaxPerPage, decodeBody[sessionListResponse](t, rec).PerPage)

	rec = doRequest(t, router, http.MethodGet, "/api/study-sessions?page=0", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "page must be a positive integer", decodeBody[errorResponse](t, rec).Error)
}

func TestSubmitReviewsRebuildsRollup(t *testing.T) {
	router := newTestRouter(t)
	first := createTestSession(t, router, 1, 1)
	second := createTestSession(t, router, 1, 2)

	body := `[{"word_id":1,"correct":true},{"word_id":1,"correct":false,"response":"nomu"}]`
	for _, session := range []sessionResponse{first, second} {
		rec := doRequest(t, router, http.MethodPost, "/api/study-sessions/"+itoa(session.ID)+"/reviews", body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		payload := decodeBody[reviewsResponse](t, rec)
		assert.Equal(t, 2, payload.ReviewsCount)
		assert.Equal(t, "Successfully added 2 reviews", payload.Message)
	}

	rec := doRequest(t, router, http.MethodGet, "/api/words/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	word := decodeBody[wordResponse](t, rec)
	assert.Equal(t, 2, word.CorrectCount)
	assert.Equal(t, 2, word.WrongCount)

	rec = doRequest(t, router, http.MethodGet, "/api/study-sessions/"+itoa(first.ID), "")
	detail := decodeBody[sessionDetailResponse](t, rec)
	assert.Equal(t, 2, detail.Session.ReviewItemsCount)
	require.Len(t, detail.Words, 1)
	assert.Equal(t, 1, detail.Words[0].CorrectCount, "breakdown counts only this session")
	assert.Equal(t, 1, detail.Words[0].WrongCount)
}

func TestSubmitReviewsIsAtomic(t *testing.T) {
	router := newTestRouter(t)
	session := createTestSession(t, router, 1, 1)
	path := "/api/study-sessions/" + itoa(session.ID) + "/reviews"

	rec := doRequest(t, router, http.MethodPost, path, `[{"word_id":1,"correct":true},{"word_id":999,"correct":true}]`)
	require.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
	assert.Contains(t, decodeBody[errorResponse](t, rec).Error, "word not found")

	rec = doRequest(t, router, http.MethodGet, "/api/study-sessions/"+itoa(session.ID), "")
	assert.Zero(t, decodeBody[sessionDetailResponse](t, rec).Session.ReviewItemsCount)

	rec = doRequest(t, router, http.MethodGet, "/api/words/1", "")
	assert.Zero(t, decodeBody[wordResponse](t, rec).CorrectCount)
}

func TestSubmitReviewsValidation(t *testing.T) {
	router := newTestRouter(t)
	session := createTestSession(t, router, 1, 1)
	path := "/api/study-sessions/" + itoa(session.ID) + "/reviews"

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantError  string
	}{
		{name: "object body", path: path, body: `{"word_id":1,"correct":true}`, wantStatus: http.StatusBadRequest, wantError: "request body must be an array of reviews"},
		{name: "null body", path: path, body: `null`, wantStatus: http.StatusBadRequest, wantError: "request body must be an array of reviews"},
		{name: "missing correct", path: path, body: `[{"word_id":1,"correct":true},{"word_id":2}]`, wantStatus: http.StatusBadRequest, wantError: "review[1]: missing required field: correct"},
		{name: "missing word", path: path, body: `[{"correct":false}]`, wantStatus: http.StatusBadRequest, wantError: "review[0]: missing required field: word_id"},
		{name: "unknown session", path: "/api/study-sessions/9999/reviews", body: `[{"word_id":1,"correct":true}]`, wantStatus: http.StatusNotFound, wantError: "study session not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodPost, tt.path, tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantError, decodeBody[errorResponse](t, rec).Error)
		})
	}

	rec := doRequest(t, router, http.MethodPost, path, `[]`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Zero(t, decodeBody[reviewsResponse](t, rec).ReviewsCount)
}

func TestUpdateSession(t *testing.T) {
	router := newTestRouter(t)
	session := createTestSession(t, router, 1, 1)
	path := "/api/study-sessions/" + itoa(session.ID)

	rec := doRequest(t, router, http.MethodPut, path, `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "no valid fields to update", decodeBody[errorResponse](t, rec).Error)

	rec = doRequest(t, router, http.MethodPut, path, `{"name":"ignored"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodPut, path, `{"group_id":99,"study_activity_id":2}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "group not found", decodeBody[errorResponse](t, rec).Error)

	rec = doRequest(t, router, http.MethodGet, path, "")
	unchanged := decodeBody[sessionDetailResponse](t, rec).Session
	assert.Equal(t, session, unchanged)

	rec = doRequest(t, router, http.MethodPut, path, `{"end_time":"not a time"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodPut, path, `{"study_activity_id":2,"end_time":"2030-01-02T09:30:00+09:00"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeBody[sessionResponse](t, rec)
	assert.Equal(t, "Flashcards", updated.ActivityName)
	assert.Equal(t, "Core Verbs", updated.GroupName)
	assert.True(t, time.Date(2030, 1, 2, 0, 30, 0, 0, time.UTC).Equal(updated.EndTime))

	rec = doRequest(t, router, http.MethodPut, "/api/study-sessions/9999", `{"group_id":1}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteSession(t *testing.T) {
	router := newTestRouter(t)
	session := createTestSession(t, router, 1, 1)
	path := "/api/study-sessions/" + itoa(session.ID)

	rec := doRequest(t, router, http.MethodPost, path+"/reviews", `[{"word_id":3,"correct":true}]`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, path, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = doRequest(t, router, http.MethodGet, path, "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, path, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "study session not found", decodeBody[errorResponse](t, rec).Error)

	rec = doRequest(t, router, http.MethodGet, "/api/words/3", "")
	assert.Equal(t, 1, decodeBody[wordResponse](t, rec).CorrectCount, "rollup is rebuilt only by the next submission")
}

func TestResetHistory(t *testing.T) {
	router := newTestRouter(t)
	for i := 0; i < 3; i++ {
		session := createTestSession(t, router, 1, 1)
		rec := doRequest(t, router, http.MethodPost, "/api/study-sessions/"+itoa(session.ID)+"/reviews", `[{"word_id":2,"correct":false}]`)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doRequest(t, router, http.MethodGet, "/api/study-sessions/reset", "")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/study-sessions/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Study history cleared successfully", decodeBody[messageResponse](t, rec).Message)

	rec = doRequest(t, router, http.MethodGet, "/api/study-sessions", "")
	list := decodeBody[sessionListResponse](t, rec)
	assert.Zero(t, list.Total)
	assert.Empty(t, list.Items)

	rec = doRequest(t, router, http.MethodGet, "/api/words/2", "")
	assert.Equal(t, 3, decodeBody[wordResponse](t, rec).WrongCount, "reset keeps the rollup")
}

func TestWordNotFound(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/words/404", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "word not found", decodeBody[errorResponse](t, rec).Error)

	rec = doRequest(t, router, http.MethodGet, "/api/words/abc", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionRoutesRejectUnsupportedMethods(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		method, path, allow string
	}{
		{method: http.MethodDelete, path: "/api/study-sessions", allow: "GET, POST"},
		{method: http.MethodPatch, path: "/api/study-sessions/1", allow: "GET, PUT, DELETE"},
		{method: http.MethodGet, path: "/api/study-sessions/1/reviews", allow: "POST"},
		{method: http.MethodPost, path: "/api/words/1", allow: "GET"},
	}
	for _, tt := range tests {
		rec := doRequest(t, router, tt.method, tt.path, "")
		require.Equal(t, http.StatusMethodNotAllowed, rec.Code, "%s %s", tt.method, tt.path)
		assert.Equal(t, tt.allow, rec.Header().Get("Allow"))
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
