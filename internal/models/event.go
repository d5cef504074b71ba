package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownCategory is returned when a category name does not match any
// of the known life domains.
var ErrUnknownCategory = errors.New("unknown category")

// Category is the life domain an event belongs to
type Category string

const (
	CategoryHealth       Category = "Health"
	CategoryFitness      Category = "Fitness"
	CategoryNutrition    Category = "Nutrition"
	CategorySleep        Category = "Sleep"
	CategorySocial       Category = "Social"
	CategoryProductivity Category = "Productivity"
	CategoryEnvironment  Category = "Environment"
	CategoryMental       Category = "Mental"
)

// Categories returns every known category in display order
func Categories() []Category {
	return []Category{
		CategoryHealth,
		CategoryFitness,
		CategoryNutrition,
		CategorySleep,
		CategorySocial,
		CategoryProductivity,
		CategoryEnvironment,
		CategoryMental,
	}
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory resolves a category name case-insensitively
func ParseCategory(name string) (Category, error) {
	for _, known := range Categories() {
		if strings.EqualFold(name, string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// Status drives display styling and aggregate counting
type Status string

const (
	StatusSuccess Status = "success"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
	StatusInfo    Status = "info"
)

// Source is a descriptive origin label; it has no behavioral effect
type Source string

const (
	SourceWearable  Source = "Wearable"
	SourceSmartHome Source = "Smart Home"
	SourceMobileApp Source = "Mobile App"
	SourceCalendar  Source = "Calendar"
)

// Sources returns every known source label
func Sources() []Source {
	return []Source{SourceWearable, SourceSmartHome, SourceMobileApp, SourceCalendar}
}

// Event is one synthesized life event. Events are plain values: the
// buffer hands out copies and nothing mutates an event after creation.
type Event struct {
	ID        string
	Sequence  int64
	Timestamp time.Time
	Category  Category
	Source    Source
	Status    Status
	Message   string
	Details   Details
}

// NewEvent creates an Event whose category and message are taken from details
func NewEvent(id string, sequence int64, ts time.Time, source Source, status Status, details Details) Event {
	return Event{
		ID:        id,
		Sequence:  sequence,
		Timestamp: ts,
		Category:  details.Category(),
		Source:    source,
		Status:    status,
		Message:   details.Message(),
		Details:   details,
	}
}

// MarshalJSON writes details as an object keyed by the same ordered
// names the text output uses, so both formats share one field schema.
func (e Event) MarshalJSON() ([]byte, error) {
	var details FieldList
	if e.Details != nil {
		details = e.Details.Fields()
	}
	return json.Marshal(struct {
		ID        string    `json:"id"`
		Sequence  int64     `json:"sequence"`
		Timestamp time.Time `json:"timestamp"`
		Category  Category  `json:"category"`
		Source    Source    `json:"source"`
		Status    Status    `json:"status"`
		Message   string    `json:"message"`
		Details   FieldList `json:"details"`
	}{e.ID, e.Sequence, e.Timestamp, e.Category, e.Source, e.Status, e.Message, details})
}

// FieldList is an ordered run of fields. It marshals to a JSON object
// whose keys keep their order.
type FieldList []Field

// MarshalJSON implements json.Marshaler
func (l FieldList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
