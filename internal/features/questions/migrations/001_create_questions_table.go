package migrations

import (
	"faq-studio/internal/core"
)

// Migration001CreateQuestionsTable creates the questions table
var Migration001CreateQuestionsTable = core.Migration{
	Version:     1,
	Name:        "create_questions_table",
	Description: "Create the questions table and its lookup indexes",
	UpSQL: `
		CREATE TABLE IF NOT EXISTS questions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			question TEXT NOT NULL,
			answer TEXT NOT NULL DEFAULT '',
			keywords TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			created_by TEXT NOT NULL DEFAULT 'anonymous',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_questions_category ON questions(category);
		CREATE INDEX IF NOT EXISTS idx_questions_created_at ON questions(created_at);
	`,
	DownSQL: `
		DROP INDEX IF EXISTS idx_questions_created_at;
		DROP INDEX IF EXISTS idx_questions_category;
		DROP TABLE IF EXISTS questions;
	`,
	PostgresUpSQL: `
		CREATE TABLE IF NOT EXISTS questions (
			id SERIAL PRIMARY KEY,
			question TEXT NOT NULL,
			answer TEXT NOT NULL DEFAULT '',
			keywords TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			created_by TEXT NOT NULL DEFAULT 'anonymous',
			created_at TIMESTAMPTZ DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_questions_category ON questions(category);
		CREATE INDEX IF NOT EXISTS idx_questions_created_at ON questions(created_at);
	`,
	PostgresDownSQL: `
		DROP TABLE IF EXISTS questions;
	`,
}
