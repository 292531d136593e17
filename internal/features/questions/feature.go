package questions

import (
	"context"
	"fmt"

	"faq-studio/internal/core"
	"faq-studio/internal/features/questions/handlers"
	"faq-studio/internal/features/questions/migrations"
	"faq-studio/internal/features/questions/models"
	"faq-studio/internal/features/questions/services"
)

// Feature represents the questions backend: storage, JSON backup,
// categories and statistics behind a REST surface
type Feature struct {
	*core.BaseFeature
	config          *Config
	migrationMgr    *migrations.Manager
	questionService *services.QuestionService
	backup          *services.BackupFile
	categories      *services.CategoryStore
	handlers        *handlers.Handlers
}

// NewFeature creates a new questions feature
func NewFeature(logger *core.Logger, db *core.Database, config *Config) *Feature {
	base := core.NewBaseFeature("questions", "Questions Backend", config.Enabled, logger, db)
	featureLogger := base.Logger()

	questionService := services.NewQuestionService(db, featureLogger)
	backup := services.NewBackupFile(config.JSONPath, featureLogger)
	categories := services.NewCategoryStore(config.CategoriesPath, featureLogger)

	return &Feature{
		BaseFeature:     base,
		config:          config,
		migrationMgr:    migrations.NewManager(db, featureLogger),
		questionService: questionService,
		backup:          backup,
		categories:      categories,
		handlers:        handlers.NewHandlers(featureLogger, questionService, backup, categories),
	}
}

// Init validates configuration, runs migrations and creates the data files
func (f *Feature) Init(ctx context.Context) error {
	if err := f.BaseFeature.Init(ctx); err != nil {
		return err
	}

	if err := f.config.Validate(); err != nil {
		return err
	}

	if err := f.migrationMgr.Migrate(ctx); err != nil {
		return err
	}

	if err := f.backup.EnsureExists(); err != nil {
		return fmt.Errorf("failed to prepare JSON backup: %w", err)
	}
	if err := f.categories.EnsureExists(); err != nil {
		return fmt.Errorf("failed to prepare categories file: %w", err)
	}

	f.Logger().Info("Questions feature initialized", "json_path", f.config.JSONPath)
	return nil
}

// Routes returns the HTTP routes for the questions backend
func (f *Feature) Routes() []core.Route {
	return []core.Route{
		// Questions
		{Method: "GET", Path: "/questions", Handler: f.handlers.ListQuestions},
		{Method: "GET", Path: "/questions/search", Handler: f.handlers.SearchQuestions},
		{Method: "GET", Path: "/questions/{id}", Handler: f.handlers.GetQuestion},
		{Method: "DELETE", Path: "/questions/{id}", Handler: f.handlers.DeleteQuestion},
		{Method: "POST", Path: "/add", Handler: f.handlers.AddQuestion},

		// Categories
		{Method: "GET", Path: "/categories.json", Handler: f.handlers.ListCategories},

		// Statistics
		{Method: "GET", Path: "/stats/total", Handler: f.handlers.StatsTotal},
		{Method: "GET", Path: "/stats/categories", Handler: f.handlers.StatsCategories},
		{Method: "GET", Path: "/stats/recent", Handler: f.handlers.StatsRecent},
		{Method: "GET", Path: "/stats/by-date", Handler: f.handlers.StatsByDate},
	}
}

// Restore loads the JSON backup into the database. Existing ids are kept.
func (f *Feature) Restore(ctx context.Context) (models.RestoreResult, error) {
	if err := f.migrationMgr.Migrate(ctx); err != nil {
		return models.RestoreResult{}, err
	}

	entries, err := f.backup.Read()
	if err != nil {
		return models.RestoreResult{}, err
	}

	f.Logger().Info("Restoring questions from backup", "path", f.backup.Path(), "entries", len(entries))
	return f.questionService.Restore(ctx, entries)
}

// GetMigrationManager returns the migration manager for this feature
func (f *Feature) GetMigrationManager() *migrations.Manager {
	return f.migrationMgr
}

// GetQuestionService returns the question service
func (f *Feature) GetQuestionService() *services.QuestionService {
	return f.questionService
}
