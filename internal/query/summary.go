package query

import "github.com/synheart/lifelog/internal/models"

// Summary counts a sequence of events by status and category
type Summary struct {
	Success    int                     `json:"success"`
	Warning    int                     `json:"warning"`
	Error      int                     `json:"error"`
	Info       int                     `json:"info"`
	ByCategory map[models.Category]int `json:"by_category"`
}

// Summarize counts events. It is typically called on the filtered view
// for the status line, and on the whole buffer for per-category tiles.
func Summarize(events []models.Event) Summary {
	s := Summary{ByCategory: make(map[models.Category]int)}
	for _, event := range events {
		switch event.Status {
		case models.StatusSuccess:
			s.Success++
		case models.StatusWarning:
			s.Warning++
		case models.StatusError:
			s.Error++
		case models.StatusInfo:
			s.Info++
		}
		s.ByCategory[event.Category]++
	}
	return s
}
