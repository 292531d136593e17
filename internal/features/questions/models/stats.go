package models

// CategoryCount is the number of questions in one category
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"cnt"`
}

// DailyCount is the number of questions created on one day (YYYY-MM-DD)
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// RecentCount is the number of questions created in the last Days days
type RecentCount struct {
	RecentCount int64 `json:"recent_count"`
	Days        int   `json:"days"`
}

// Total is the total number of questions
type Total struct {
	Total int64 `json:"total"`
}
