package cli

import (
	"fmt"
	"strings"

	"github.com/synheart/lifelog/internal/models"
	"github.com/synheart/lifelog/internal/query"
	"github.com/synheart/lifelog/internal/stream"
)

func renderBar(score float64, width int) string {
	filled := int(score * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// renderStatus formats the one-line dashboard: aggregate counters, the
// wellness bar, the status breakdown of the current view and the number
// of buffered fitness activities.
func renderStatus(stats models.Stats, view query.Summary, activity int, state stream.State) string {
	return fmt.Sprintf(
		"total %d | warnings %d | errors %d | last hour %d | wellness %s %d | normal %d warning %d error %d info %d | activity today %d | %s",
		stats.Total,
		stats.Warnings,
		stats.Errors,
		stats.LastHour,
		renderBar(float64(stats.WellnessScore)/100, 10),
		stats.WellnessScore,
		view.Success,
		view.Warning,
		view.Error,
		view.Info,
		activity,
		state,
	)
}

func describeFilter(f query.Filter) string {
	category := string(f.Category)
	if category == "" {
		category = string(query.All)
	}
	if f.Search == "" {
		return "category " + category
	}
	return fmt.Sprintf("category %s, search %q", category, f.Search)
}
