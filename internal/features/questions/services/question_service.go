package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"faq-studio/internal/core"
	"faq-studio/internal/features/questions/models"
)

const questionColumns = `id, question, answer, keywords, category, created_by, created_at`

// QuestionService handles question storage and statistics
type QuestionService struct {
	db     *core.Database
	logger *core.Logger
	now    func() time.Time
}

// NewQuestionService creates a new question service
func NewQuestionService(db *core.Database, logger *core.Logger) *QuestionService {
	return &QuestionService{
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// List returns a page of questions, newest first
func (s *QuestionService) List(ctx context.Context, params models.ListParams) ([]models.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions ORDER BY id DESC LIMIT ? OFFSET ?`

	rows, err := s.db.Query(ctx, query, params.Limit, params.Offset)
	if err != nil {
		return nil, core.NewDatabaseError("failed to list questions", err)
	}
	defer rows.Close()

	return scanQuestions(rows)
}

// Search returns questions whose text, answer, keywords or category contain
// term, case-insensitively, newest first
func (s *QuestionService) Search(ctx context.Context, term string, params models.ListParams) ([]models.Question, error) {
	like := "LIKE"
	if s.db.Dialect() == core.DialectPostgres {
		like = "ILIKE"
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM questions
		WHERE question %[2]s ? OR answer %[2]s ? OR keywords %[2]s ? OR category %[2]s ?
		ORDER BY id DESC
		LIMIT ? OFFSET ?`, questionColumns, like)

	pattern := "%" + term + "%"
	rows, err := s.db.Query(ctx, query, pattern, pattern, pattern, pattern, params.Limit, params.Offset)
	if err != nil {
		return nil, core.NewDatabaseError("failed to search questions", err)
	}
	defer rows.Close()

	return scanQuestions(rows)
}

// Get returns one question by id
func (s *QuestionService) Get(ctx context.Context, id int64) (*models.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = ?`

	q, err := scanQuestion(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.NewNotFoundError(fmt.Sprintf("question %d not found", id), nil)
		}
		return nil, core.NewDatabaseError("failed to get question", err)
	}
	return q, nil
}

// Create inserts a question and returns it with its new id
func (s *QuestionService) Create(ctx context.Context, create *models.QuestionCreate) (*models.Question, error) {
	create.Normalize()
	if missing := create.Missing(); len(missing) > 0 {
		return nil, core.NewValidationError(fmt.Sprintf("missing required fields: %v", missing), nil)
	}

	now := s.now()
	query := `
		INSERT INTO questions (question, answer, keywords, category, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`

	var id int64
	err := s.db.QueryRow(ctx, query,
		create.Question,
		create.Answer,
		create.Keywords,
		create.Category,
		create.CreatedBy,
		now,
	).Scan(&id)
	if err != nil {
		return nil, core.NewDatabaseError("failed to create question", err)
	}

	s.logger.Info("Created question", "id", id, "category", create.Category)
	return &models.Question{
		ID:        id,
		Question:  create.Question,
		Answer:    create.Answer,
		Keywords:  create.Keywords,
		Category:  create.Category,
		CreatedBy: create.CreatedBy,
		CreatedAt: now,
	}, nil
}

// Delete removes one question. A missing id is a not-found error.
func (s *QuestionService) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecWithTimeout(ctx, `DELETE FROM questions WHERE id = ?`, id)
	if err != nil {
		return core.NewDatabaseError("failed to delete question", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return core.NewDatabaseError("failed to delete question", err)
	}
	if affected == 0 {
		return core.NewNotFoundError(fmt.Sprintf("question %d not found", id), nil)
	}

	s.logger.Info("Deleted question", "id", id)
	return nil
}

// Count returns the total number of questions
func (s *QuestionService) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM questions`).Scan(&total); err != nil {
		return 0, core.NewDatabaseError("failed to count questions", err)
	}
	return total, nil
}

// CountByCategory returns question counts per category, largest first
func (s *QuestionService) CountByCategory(ctx context.Context) ([]models.CategoryCount, error) {
	rows, err := s.db.Query(ctx, `
		SELECT category, COUNT(*) AS cnt
		FROM questions
		GROUP BY category
		ORDER BY cnt DESC, category`)
	if err != nil {
		return nil, core.NewDatabaseError("failed to count categories", err)
	}
	defer rows.Close()

	counts := []models.CategoryCount{}
	for rows.Next() {
		var c models.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, core.NewDatabaseError("failed to scan category count", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// CountRecent returns how many questions were created in the last days days
func (s *QuestionService) CountRecent(ctx context.Context, days int) (int64, error) {
	var count int64
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM questions WHERE created_at >= ?`, s.cutoff(days)).Scan(&count)
	if err != nil {
		return 0, core.NewDatabaseError("failed to count recent questions", err)
	}
	return count, nil
}

// CountByDate returns per-day counts for the last days days, newest day first
func (s *QuestionService) CountByDate(ctx context.Context, days int) ([]models.DailyCount, error) {
	day := "substr(created_at, 1, 10)"
	if s.db.Dialect() == core.DialectPostgres {
		day = "TO_CHAR(created_at, 'YYYY-MM-DD')"
	}

	query := fmt.Sprintf(`
		SELECT %[1]s AS day, COUNT(*)
		FROM questions
		WHERE created_at >= ?
		GROUP BY %[1]s
		ORDER BY day DESC`, day)

	rows, err := s.db.Query(ctx, query, s.cutoff(days))
	if err != nil {
		return nil, core.NewDatabaseError("failed to count questions by date", err)
	}
	defer rows.Close()

	counts := []models.DailyCount{}
	for rows.Next() {
		var c models.DailyCount
		if err := rows.Scan(&c.Date, &c.Count); err != nil {
			return nil, core.NewDatabaseError("failed to scan daily count", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// Restore inserts backup entries by id, skipping ids that already exist.
// A failing entry is logged and counted; the rest still go in.
func (s *QuestionService) Restore(ctx context.Context, entries []models.BackupEntry) (models.RestoreResult, error) {
	var result models.RestoreResult

	query := `
		INSERT INTO questions (id, question, answer, keywords, category, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING`

	for _, entry := range entries {
		createdBy := entry.CreatedBy
		if createdBy == "" {
			createdBy = models.AnonymousAuthor
		}

		res, err := s.db.ExecWithTimeout(ctx, query,
			entry.ID,
			entry.Question,
			entry.Answer,
			entry.Keywords,
			entry.Category,
			createdBy,
			s.now(),
		)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			s.logger.Error("Failed to restore question", "id", entry.ID, "error", err)
			result.Failed++
			continue
		}

		if n, _ := res.RowsAffected(); n == 0 {
			result.Skipped++
			continue
		}
		result.Inserted++
	}

	if s.db.Dialect() == core.DialectPostgres && result.Inserted > 0 {
		_, err := s.db.ExecWithTimeout(ctx,
			`SELECT setval(pg_get_serial_sequence('questions', 'id'), COALESCE(MAX(id), 1)) FROM questions`)
		if err != nil {
			return result, core.NewDatabaseError("failed to advance id sequence", err)
		}
	}

	s.logger.Info("Restore finished", "inserted", result.Inserted, "skipped", result.Skipped, "failed", result.Failed)
	return result, nil
}

func (s *QuestionService) cutoff(days int) time.Time {
	return s.now().AddDate(0, 0, -days)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (*models.Question, error) {
	var q models.Question
	var createdAt sql.NullTime
	if err := row.Scan(&q.ID, &q.Question, &q.Answer, &q.Keywords, &q.Category, &q.CreatedBy, &createdAt); err != nil {
		return nil, err
	}
	if createdAt.Valid {
		q.CreatedAt = createdAt.Time
	}
	return &q, nil
}

func scanQuestions(rows *sql.Rows) ([]models.Question, error) {
	questions := []models.Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, core.NewDatabaseError("failed to scan question", err)
		}
		questions = append(questions, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, core.NewDatabaseError("failed to read questions", err)
	}
	return questions, nil
}
