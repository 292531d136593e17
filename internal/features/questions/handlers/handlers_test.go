package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"faq-studio/internal/core"
	"faq-studio/internal/features/questions/migrations"
	"faq-studio/internal/features/questions/models"
	"faq-studio/internal/features/questions/services"
)

type testEnv struct {
	router     http.Handler
	backup     *services.BackupFile
	categories *services.CategoryStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	logger := core.NewLoggerWithWriter(io.Discard, slog.LevelError)
	coreDB := core.NewDatabase(db, core.DialectSQLite, logger)
	require.NoError(t, migrations.NewManager(coreDB, logger).Migrate(context.Background()))

	dir := t.TempDir()
	backup := services.NewBackupFile(filepath.Join(dir, "questions.json"), logger)
	categories := services.NewCategoryStore(filepath.Join(dir, "categories.json"), logger)
	require.NoError(t, backup.EnsureExists())
	require.NoError(t, categories.EnsureExists())

	h := NewHandlers(logger, services.NewQuestionService(coreDB, logger), backup, categories)

	r := chi.NewRouter()
	r.Get("/questions", h.ListQuestions)
	r.Get("/questions/search", h.SearchQuestions)
	r.Get("/questions/{id}", h.GetQuestion)
	r.Delete("/questions/{id}", h.DeleteQuestion)
	r.Post("/add", h.AddQuestion)
	r.Get("/categories.json", h.ListCategories)
	r.Get("/stats/total", h.StatsTotal)
	r.Get("/stats/categories", h.StatsCategories)
	r.Get("/stats/recent", h.StatsRecent)
	r.Get("/stats/by-date", h.StatsByDate)

	return &testEnv{router: r, backup: backup, categories: categories}
}

func (e *testEnv) do(t *testing.T, method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) add(t *testing.T, question, category string) int64 {
	t.Helper()
	form := url.Values{
		"question": {question},
		"answer":   {"answer"},
		"keywords": {"kw"},
		"category": {category},
	}
	rec := e.do(t, http.MethodPost, "/add", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		OK bool  `json:"ok"`
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.OK)
	return resp.ID
}

func TestAddQuestion(t *testing.T) {
	env := newTestEnv(t)

	id := env.add(t, "How do refunds work?", "iade")

	entries, err := env.backup.Read()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, id, entries[0].ID)
	assert.Equal(t, "How do refunds work?", entries[0].Question)

	assert.Contains(t, env.categories.Load(), "iade")
}

func TestAddQuestionJSON(t *testing.T) {
	env := newTestEnv(t)

	body := `{"question":"JSON body","answer":"yes","keywords":"","category":"diger"}`
	rec := env.do(t, http.MethodPost, "/add", strings.NewReader(body), "application/json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"id":1}`, rec.Body.String())
}

func TestAddQuestionValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/add", strings.NewReader("question=only"), "application/x-www-form-urlencoded")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	entries, err := env.backup.Read()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestListQuestions(t *testing.T) {
	env := newTestEnv(t)
	env.add(t, "older", "diger")
	env.add(t, "newer", "diger")

	rec := env.do(t, http.MethodGet, "/questions?limit=100&offset=0", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var questions []models.Question
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &questions))
	require.Len(t, questions, 2)
	assert.Equal(t, "newer", questions[0].Question)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	for _, key := range []string{"id", "question", "category", "created_at"} {
		assert.Contains(t, raw[0], key)
	}

	rec = env.do(t, http.MethodGet, "/questions?limit=-1", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListQuestionsEmptyIsArray(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/questions", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestSearchQuestions(t *testing.T) {
	env := newTestEnv(t)
	env.add(t, "Where is my invoice?", "tahakkuk")
	env.add(t, "Opening hours", "diger")

	rec := env.do(t, http.MethodGet, "/questions/search?query=INVOICE", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var questions []models.Question
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &questions))
	require.Len(t, questions, 1)
	assert.Equal(t, "Where is my invoice?", questions[0].Question)

	rec = env.do(t, http.MethodGet, "/questions/search", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetQuestion(t *testing.T) {
	env := newTestEnv(t)
	id := env.add(t, "single", "diger")

	rec := env.do(t, http.MethodGet, "/questions/"+jsonID(id), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/questions/999", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/questions/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteQuestion(t *testing.T) {
	env := newTestEnv(t)
	id := env.add(t, "delete me", "diger")
	keep := env.add(t, "keep me", "diger")

	rec := env.do(t, http.MethodDelete, "/questions/"+jsonID(id), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"deleted_id":`+jsonID(id)+`,"json_updated":true}`, rec.Body.String())

	entries, err := env.backup.Read()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, keep, entries[0].ID)

	rec = env.do(t, http.MethodDelete, "/questions/"+jsonID(id), nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStats(t *testing.T) {
	env := newTestEnv(t)
	env.add(t, "a", "tahsilat")
	env.add(t, "b", "tahsilat")
	env.add(t, "c", "diger")

	rec := env.do(t, http.MethodGet, "/stats/total", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total":3}`, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/stats/categories", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"category":"tahsilat","cnt":2},{"category":"diger","cnt":1}]`, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/stats/recent?days=3", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"recent_count":3,"days":3}`, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/stats/by-date", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var daily []models.DailyCount
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &daily))
	require.Len(t, daily, 1)
	assert.Equal(t, int64(3), daily[0].Count)
}

func TestListCategories(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/categories.json", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["tahakkuk","tahsilat","diger"]`, rec.Body.String())
}

func jsonID(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
