package encoding

import (
	"bytes"
	"fmt"
	"time"

	"github.com/synheart/lifelog/internal/models"
	"google.golang.org/protobuf/encoding/protodelim"
	"google.golang.org/protobuf/types/known/structpb"
)

// ProtobufEncoder encodes events as length-delimited google.protobuf.Struct
// messages, so a stream of them can be split without a newline.
type ProtobufEncoder struct{}

func NewProtobufEncoder() *ProtobufEncoder {
	return &ProtobufEncoder{}
}

func (e *ProtobufEncoder) Encode(event models.Event) ([]byte, error) {
	pb, err := eventToProto(event)
	if err != nil {
		return nil, fmt.Errorf("failed to encode event %s: %w", event.ID, err)
	}

	var buf bytes.Buffer
	if _, err := protodelim.MarshalTo(&buf, pb); err != nil {
		return nil, fmt.Errorf("failed to encode event %s: %w", event.ID, err)
	}
	return buf.Bytes(), nil
}

// eventToProto mirrors the JSON shape: details keyed by their field names
func eventToProto(e models.Event) (*structpb.Struct, error) {
	fields := map[string]any{
		"id":        e.ID,
		"sequence":  e.Sequence,
		"timestamp": e.Timestamp.Format(time.RFC3339Nano),
		"category":  string(e.Category),
		"source":    string(e.Source),
		"status":    string(e.Status),
		"message":   e.Message,
		"details":   nil,
	}
	if e.Details != nil {
		details := make(map[string]any)
		for _, f := range e.Details.Fields() {
			details[f.Key] = f.Value
		}
		fields["details"] = details
	}
	return structpb.NewStruct(fields)
}
