package models

// Stats is a point-in-time copy of the running aggregate counters
type Stats struct {
	Total         int `json:"total"`
	Warnings      int `json:"warnings"`
	Errors        int `json:"errors"`
	LastHour      int `json:"last_hour"`
	WellnessScore int `json:"wellness_score"` // 0-100
}
