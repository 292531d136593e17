package models

// BackupEntry is one question as mirrored in the JSON backup file
type BackupEntry struct {
	ID        int64  `json:"id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Keywords  string `json:"keywords"`
	Category  string `json:"category"`
	CreatedBy string `json:"created_by,omitempty"`
}

// RestoreResult summarises a restore from the backup file
type RestoreResult struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}
