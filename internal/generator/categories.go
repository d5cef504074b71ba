package generator

import (
	"math/rand"

	"github.com/synheart/lifelog/internal/models"
)

// Options carries the tunable probabilities the builders consult
type Options struct {
	// LowVitalChance is the probability a health reading lands in the
	// low, concerning band.
	LowVitalChance float64
}

// DetailsGenerator builds one random payload for a category
type DetailsGenerator func(rng *rand.Rand, opts Options) models.Details

// GetAllCategories returns the payload generator of every category
func GetAllCategories() map[models.Category]DetailsGenerator {
	return map[models.Category]DetailsGenerator{
		models.CategoryHealth:       generateHealth,
		models.CategoryFitness:      generateFitness,
		models.CategoryNutrition:    generateNutrition,
		models.CategorySleep:        generateSleep,
		models.CategorySocial:       generateSocial,
		models.CategoryProductivity: generateProductivity,
		models.CategoryEnvironment:  generateEnvironment,
		models.CategoryMental:       generateMental,
	}
}

var (
	activities = []string{"Morning Run", "Work Session", "Family Dinner", "Meditation", "Gym Workout"}
	locations  = []string{"Home", "Office", "Gym", "Park", "Cafe"}
	people     = []string{"Alex", "Jamie", "Taylor", "Morgan", "Casey"}
)

// generateHealth samples a vital; the low band is the only concerning one
func generateHealth(rng *rand.Rand, opts Options) models.Details {
	d := models.HealthDetails{
		Metric: pick(rng, "Heart Rate", "Blood Pressure", "Oxygen Level", "Body Temp"),
		Device: pick(rng, "Smart Watch", "Medical Device", "Health App"),
		Status: models.VitalNormal,
	}

	if rng.Float64() < opts.LowVitalChance {
		d.Low = true
		d.Value = between(rng, 50, 90)
		d.Status = models.VitalConcerning
	} else {
		d.Value = between(rng, 70, 110)
	}
	return d
}

func generateFitness(rng *rand.Rand, opts Options) models.Details {
	return models.FitnessDetails{
		Activity:    pick(rng, activities...),
		DurationMin: between(rng, 10, 60),
		Calories:    between(rng, 100, 600),
		Intensity:   pick(rng, "Low", "Moderate", "High"),
		Location:    pick(rng, locations...),
	}
}

func generateNutrition(rng *rand.Rand, opts Options) models.Details {
	return models.NutritionDetails{
		Meal:     pick(rng, "Breakfast", "Lunch", "Dinner", "Snack"),
		Calories: between(rng, 200, 1000),
		Macros: models.Macros{
			ProteinG: between(rng, 10, 50),
			CarbsG:   between(rng, 20, 80),
			FatG:     between(rng, 5, 35),
		},
		HydrationL: between(rng, 1, 6),
	}
}

func generateSleep(rng *rand.Rand, opts Options) models.Details {
	qualities := []models.SleepQuality{models.SleepPoor, models.SleepFair, models.SleepGood, models.SleepExcellent}
	return models.SleepDetails{
		DurationMin: between(rng, 5, 9)*60 + rng.Intn(60),
		Quality:     qualities[rng.Intn(len(qualities))],
		Stages: models.SleepStages{
			DeepH:  between(rng, 1, 4),
			LightH: between(rng, 2, 5),
			REMH:   rng.Intn(3),
		},
		Interruptions: rng.Intn(5),
	}
}

func generateSocial(rng *rand.Rand, opts Options) models.Details {
	return models.SocialDetails{
		Person:      pick(rng, people...),
		Type:        pick(rng, "Call", "Message", "In-Person", "Video Chat"),
		DurationMin: between(rng, 5, 60),
		Mood:        pick(rng, "Positive", "Neutral", "Negative"),
		Location:    pick(rng, locations...),
	}
}

func generateProductivity(rng *rand.Rand, opts Options) models.Details {
	return models.ProductivityDetails{
		Task:          pick(rng, "Work Project", "Personal Project", "Learning", "Chores"),
		FocusMin:      between(rng, 25, 120),
		Distractions:  rng.Intn(10),
		CompletionPct: between(rng, 20, 100),
	}
}

func generateEnvironment(rng *rand.Rand, opts Options) models.Details {
	return models.EnvironmentDetails{
		Location:     pick(rng, locations...),
		TemperatureC: between(rng, 15, 30),
		AirQuality:   pick(rng, "Excellent", "Good", "Fair", "Poor"),
		NoiseLevel:   pick(rng, "Quiet", "Moderate", "Loud"),
	}
}

func generateMental(rng *rand.Rand, opts Options) models.Details {
	return models.MentalDetails{
		StressLevel: between(rng, 1, 11),
		Mood:        pick(rng, "Happy", "Content", "Neutral", "Anxious", "Sad"),
		Activity:    pick(rng, "Meditation", "Journaling", "Therapy", "Breathing"),
		DurationMin: between(rng, 5, 30),
	}
}

// Helper functions

func pick(rng *rand.Rand, choices ...string) string {
	return choices[rng.Intn(len(choices))]
}

// between returns an integer in [min, max)
func between(rng *rand.Rand, min, max int) int {
	return min + rng.Intn(max-min)
}
