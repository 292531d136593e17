package handlers

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"faq-studio/internal/core"
	"faq-studio/internal/features/questions/models"
	"faq-studio/internal/features/questions/services"
)

// Handlers contains the questions REST handlers
type Handlers struct {
	logger     *core.Logger
	questions  *services.QuestionService
	backup     *services.BackupFile
	categories *services.CategoryStore
}

// NewHandlers creates a new handlers instance
func NewHandlers(logger *core.Logger, questions *services.QuestionService, backup *services.BackupFile, categories *services.CategoryStore) *Handlers {
	return &Handlers{
		logger:     logger,
		questions:  questions,
		backup:     backup,
		categories: categories,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// queryInt reads a non-negative integer query parameter, falling back to def
func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, core.NewValidationError(key+" must be a non-negative integer", err)
	}
	return n, nil
}

func listParams(r *http.Request) (models.ListParams, error) {
	limit, err := queryInt(r, "limit", models.DefaultListLimit)
	if err != nil {
		return models.ListParams{}, err
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		return models.ListParams{}, err
	}
	if limit > models.MaxListLimit {
		limit = models.MaxListLimit
	}
	return models.ListParams{Limit: limit, Offset: offset}, nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, core.NewValidationError("question id must be an integer", err)
	}
	return id, nil
}

// ListQuestions returns a page of questions, newest first
func (h *Handlers) ListQuestions(w http.ResponseWriter, r *http.Request) {
	params, err := listParams(r)
	if err != nil {
		core.HandleError(w, err)
		return
	}

	questions, err := h.questions.List(r.Context(), params)
	if err != nil {
		h.logger.WithContext(r.Context()).Error("Failed to list questions", "error", err)
		core.HandleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, questions)
}

// SearchQuestions returns questions matching ?query=
func (h *Handlers) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("query")
	if term == "" {
		core.HandleError(w, core.NewValidationError("query is required", nil))
		return
	}

	params, err := listParams(r)
	if err != nil {
		core.HandleError(w, err)
		return
	}

	questions, err := h.questions.Search(r.Context(), term, params)
	if err != nil {
		h.logger.WithContext(r.Context()).Error("Failed to search questions", "error", err)
		core.HandleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, questions)
}

// GetQuestion returns one question
func (h *Handlers) GetQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		core.HandleError(w, err)
		return
	}

	question, err := h.questions.Get(r.Context(), id)
	if err != nil {
		core.HandleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, question)
}

// AddQuestion stores a question from a form or JSON body, mirrors it into
// the backup file and records its category
func (h *Handlers) AddQuestion(w http.ResponseWriter, r *http.Request) {
	var create models.QuestionCreate

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&create); err != nil {
			core.HandleError(w, core.NewValidationError("invalid JSON body", err))
			return
		}
	} else {
		if err := r.ParseMultipartForm(1 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			core.HandleError(w, core.NewValidationError("invalid form body", err))
			return
		}
		create = models.QuestionCreate{
			Question:  r.FormValue("question"),
			Answer:    r.FormValue("answer"),
			Keywords:  r.FormValue("keywords"),
			Category:  r.FormValue("category"),
			CreatedBy: r.FormValue("created_by"),
		}
	}

	logger := h.logger.WithContext(r.Context())

	question, err := h.questions.Create(r.Context(), &create)
	if err != nil {
		logger.Warn("Failed to add question", "error", err)
		core.HandleError(w, err)
		return
	}

	entry := models.BackupEntry{
		ID:        question.ID,
		Question:  question.Question,
		Answer:    question.Answer,
		Keywords:  question.Keywords,
		Category:  question.Category,
		CreatedBy: question.CreatedBy,
	}
	if err := h.backup.Append(entry); err != nil {
		logger.Error("Failed to append question to backup", "id", question.ID, "error", err)
	}

	if _, err := h.categories.Add(question.Category); err != nil {
		logger.Error("Failed to record category", "category", question.Category, "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "id": question.ID})
}

// DeleteQuestion removes a question and its backup entry
func (h *Handlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		core.HandleError(w, err)
		return
	}

	logger := h.logger.WithContext(r.Context())

	if err := h.questions.Delete(r.Context(), id); err != nil {
		logger.Warn("Failed to delete question", "id", id, "error", err)
		core.HandleError(w, err)
		return
	}

	updated, err := h.backup.Remove(id)
	if err != nil {
		logger.Error("Failed to remove question from backup", "id", id, "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted_id": id, "json_updated": updated})
}

// ListCategories returns the known category labels
func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.categories.Load())
}

// StatsTotal returns the total question count
func (h *Handlers) StatsTotal(w http.ResponseWriter, r *http.Request) {
	total, err := h.questions.Count(r.Context())
	if err != nil {
		core.HandleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.Total{Total: total})
}

// StatsCategories returns per-category counts
func (h *Handlers) StatsCategories(w http.ResponseWriter, r *http.Request) {
	counts, err := h.questions.CountByCategory(r.Context())
	if err != nil {
		core.HandleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

// StatsRecent returns how many questions arrived in the last ?days= days
func (h *Handlers) StatsRecent(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days", 7)
	if err != nil {
		core.HandleError(w, err)
		return
	}

	count, err := h.questions.CountRecent(r.Context(), days)
	if err != nil {
		core.HandleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.RecentCount{RecentCount: count, Days: days})
}

// StatsByDate returns per-day counts over the last ?limit= days
func (h *Handlers) StatsByDate(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "limit", 30)
	if err != nil {
		core.HandleError(w, err)
		return
	}

	counts, err := h.questions.CountByDate(r.Context(), days)
	if err != nil {
		core.HandleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}
