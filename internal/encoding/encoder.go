// Package encoding renders events as output lines for the monitor.
package encoding

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/synheart/lifelog/internal/models"
)

// Format represents the encoding format
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatProtobuf Format = "protobuf"
)

// Formats lists the supported formats
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatProtobuf}
}

// ParseFormat resolves a format name, case-insensitively
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats() {
		if strings.EqualFold(name, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (want text, json or protobuf)", name)
}

// Encoder encodes one event as one self-delimiting record
type Encoder interface {
	Encode(event models.Event) ([]byte, error)
}

// JSONEncoder encodes events as newline-delimited JSON
type JSONEncoder struct{}

func NewJSONEncoder() *JSONEncoder {
	return &JSONEncoder{}
}

func (e *JSONEncoder) Encode(event models.Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to encode event %s: %w", event.ID, err)
	}
	return append(data, '\n'), nil
}

// TextEncoder renders a fixed-column human-readable log line
type TextEncoder struct {
	// TimeFormat defaults to 15:04:05.
	TimeFormat string
}

func NewTextEncoder() *TextEncoder {
	return &TextEncoder{TimeFormat: "15:04:05"}
}

func (e *TextEncoder) Encode(event models.Event) ([]byte, error) {
	layout := e.TimeFormat
	if layout == "" {
		layout = "15:04:05"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %-12s %-10s %-7s  %s",
		event.Timestamp.Format(layout),
		strings.ToUpper(string(event.Category)),
		event.Source,
		event.Status,
		event.Message,
	)
	if event.Details != nil {
		for _, f := range event.Details.Fields() {
			fmt.Fprintf(&b, "  %s=%s", f.Key, quote(f.Value))
		}
	}
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

// NewEncoder creates an encoder for the given format
func NewEncoder(format Format) Encoder {
	switch format {
	case FormatJSON:
		return NewJSONEncoder()
	case FormatProtobuf:
		return NewProtobufEncoder()
	default:
		return NewTextEncoder()
	}
}

func quote(v string) string {
	if strings.ContainsAny(v, " \t\"") {
		return fmt.Sprintf("%q", v)
	}
	return v
}
