package models

import (
	"fmt"
	"strconv"
)

// Details is the category-specific payload of an event. Each category has
// exactly one implementation, so field presence is enforced by the type.
type Details interface {
	// Category returns the category this payload belongs to
	Category() Category
	// Message returns the human-readable summary line
	Message() string
	// Fields returns the payload as ordered display pairs
	Fields() []Field
	// Searchable returns the detail values free-text search looks at
	Searchable() []string
}

// Field is one rendered name/value pair of an event's details
type Field struct {
	Key   string
	Value string
}

// VitalStatus classifies a health reading
type VitalStatus string

const (
	VitalNormal     VitalStatus = "Normal"
	VitalConcerning VitalStatus = "Concerning"
)

// HealthDetails is a single vital sign measurement
type HealthDetails struct {
	Metric string
	Value  int
	Low    bool
	Status VitalStatus
	Device string
}

func (d HealthDetails) Category() Category { return CategoryHealth }
func (d HealthDetails) Message() string    { return "Health measurement recorded" }

func (d HealthDetails) Fields() []Field {
	value := strconv.Itoa(d.Value)
	if d.Low {
		value += " (Low)"
	}
	return []Field{
		{"metric", d.Metric},
		{"value", value},
		{"status", string(d.Status)},
		{"device", d.Device},
	}
}

func (d HealthDetails) Searchable() []string { return []string{d.Metric} }

// FitnessDetails is a completed workout or activity
type FitnessDetails struct {
	Activity    string
	DurationMin int
	Calories    int
	Intensity   string
	Location    string
}

func (d FitnessDetails) Category() Category { return CategoryFitness }
func (d FitnessDetails) Message() string {
	return "Fitness activity completed: " + d.Activity
}

func (d FitnessDetails) Fields() []Field {
	return []Field{
		{"activity", d.Activity},
		{"duration", minutes(d.DurationMin)},
		{"calories", strconv.Itoa(d.Calories)},
		{"intensity", d.Intensity},
		{"location", d.Location},
	}
}

func (d FitnessDetails) Searchable() []string { return []string{d.Activity, d.Location} }

// Macros holds macronutrient grams for a meal
type Macros struct {
	ProteinG int
	CarbsG   int
	FatG     int
}

func (m Macros) String() string {
	return fmt.Sprintf("%dg protein, %dg carbs, %dg fat", m.ProteinG, m.CarbsG, m.FatG)
}

// NutritionDetails is a logged meal
type NutritionDetails struct {
	Meal       string
	Calories   int
	Macros     Macros
	HydrationL int
}

func (d NutritionDetails) Category() Category { return CategoryNutrition }
func (d NutritionDetails) Message() string    { return "Nutrition logged" }

func (d NutritionDetails) Fields() []Field {
	return []Field{
		{"meal", d.Meal},
		{"calories", strconv.Itoa(d.Calories)},
		{"macros", d.Macros.String()},
		{"hydration", fmt.Sprintf("%dL water", d.HydrationL)},
	}
}

func (d NutritionDetails) Searchable() []string { return nil }

// SleepQuality grades a night of sleep
type SleepQuality string

const (
	SleepPoor      SleepQuality = "Poor"
	SleepFair      SleepQuality = "Fair"
	SleepGood      SleepQuality = "Good"
	SleepExcellent SleepQuality = "Excellent"
)

// SleepStages holds hours spent in each sleep stage
type SleepStages struct {
	DeepH  int
	LightH int
	REMH   int
}

func (s SleepStages) String() string {
	return fmt.Sprintf("%dh deep, %dh light, %dh REM", s.DeepH, s.LightH, s.REMH)
}

// SleepDetails is a completed sleep analysis
type SleepDetails struct {
	DurationMin   int
	Quality       SleepQuality
	Stages        SleepStages
	Interruptions int
}

func (d SleepDetails) Category() Category { return CategorySleep }
func (d SleepDetails) Message() string    { return "Sleep analysis completed" }

func (d SleepDetails) Fields() []Field {
	return []Field{
		{"duration", fmt.Sprintf("%dh %dm", d.DurationMin/60, d.DurationMin%60)},
		{"quality", string(d.Quality)},
		{"stages", d.Stages.String()},
		{"interruptions", strconv.Itoa(d.Interruptions)},
	}
}

func (d SleepDetails) Searchable() []string { return nil }

// SocialDetails is an interaction with another person
type SocialDetails struct {
	Person      string
	Type        string
	DurationMin int
	Mood        string
	Location    string
}

func (d SocialDetails) Category() Category { return CategorySocial }
func (d SocialDetails) Message() string    { return "Social interaction with " + d.Person }

func (d SocialDetails) Fields() []Field {
	return []Field{
		{"type", d.Type},
		{"duration", minutes(d.DurationMin)},
		{"mood", d.Mood},
		{"location", d.Location},
	}
}

func (d SocialDetails) Searchable() []string { return []string{d.Location} }

// ProductivityDetails is a finished focus session
type ProductivityDetails struct {
	Task          string
	FocusMin      int
	Distractions  int
	CompletionPct int
}

func (d ProductivityDetails) Category() Category { return CategoryProductivity }
func (d ProductivityDetails) Message() string    { return "Productivity session completed" }

func (d ProductivityDetails) Fields() []Field {
	return []Field{
		{"task", d.Task},
		{"focusTime", minutes(d.FocusMin)},
		{"distractions", strconv.Itoa(d.Distractions)},
		{"completion", fmt.Sprintf("%d%%", d.CompletionPct)},
	}
}

func (d ProductivityDetails) Searchable() []string { return nil }

// EnvironmentDetails is an ambient reading at a location
type EnvironmentDetails struct {
	Location     string
	TemperatureC int
	AirQuality   string
	NoiseLevel   string
}

func (d EnvironmentDetails) Category() Category { return CategoryEnvironment }
func (d EnvironmentDetails) Message() string    { return "Environment data recorded" }

func (d EnvironmentDetails) Fields() []Field {
	return []Field{
		{"location", d.Location},
		{"temperature", fmt.Sprintf("%d°C", d.TemperatureC)},
		{"airQuality", d.AirQuality},
		{"noiseLevel", d.NoiseLevel},
	}
}

func (d EnvironmentDetails) Searchable() []string { return []string{d.Location} }

// MentalDetails is a mental health check-in
type MentalDetails struct {
	StressLevel int // 1-10
	Mood        string
	Activity    string
	DurationMin int
}

func (d MentalDetails) Category() Category { return CategoryMental }
func (d MentalDetails) Message() string    { return "Mental health check-in" }

func (d MentalDetails) Fields() []Field {
	return []Field{
		{"stressLevel", strconv.Itoa(d.StressLevel)},
		{"mood", d.Mood},
		{"activity", d.Activity},
		{"duration", minutes(d.DurationMin)},
	}
}

func (d MentalDetails) Searchable() []string { return []string{d.Activity} }

func minutes(n int) string {
	return fmt.Sprintf("%d minutes", n)
}
