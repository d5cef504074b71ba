package generator

import "github.com/synheart/lifelog/internal/models"

// mentalStressThreshold is the highest stress level still reported as info
const mentalStressThreshold = 7

// DeriveStatus applies the per-category severity rules to a payload.
// Health readings in the low band warn, poor sleep warns and excellent
// sleep succeeds, and stress above the threshold warns. Fitness is always
// a success; every other category is informational.
func DeriveStatus(details models.Details) models.Status {
	switch d := details.(type) {
	case models.HealthDetails:
		if d.Low || d.Status == models.VitalConcerning {
			return models.StatusWarning
		}
		return models.StatusSuccess
	case models.FitnessDetails:
		return models.StatusSuccess
	case models.SleepDetails:
		switch d.Quality {
		case models.SleepPoor:
			return models.StatusWarning
		case models.SleepExcellent:
			return models.StatusSuccess
		}
		return models.StatusInfo
	case models.MentalDetails:
		if d.StressLevel > mentalStressThreshold {
			return models.StatusWarning
		}
		return models.StatusInfo
	default:
		return models.StatusInfo
	}
}
