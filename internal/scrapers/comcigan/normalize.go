package comcigan

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Normalize removes the NUL filler the service pads its responses with.
func Normalize(raw string) string {
	return strings.ReplaceAll(raw, "\x00", "")
}

// Payload is a timetable response with its dynamic fields looked up.
type Payload struct {
	Timetable Value
	Subjects  Value
	Teachers  Value
}

func parseObject(normalized string) (map[string]json.RawMessage, error) {
	var object map[string]json.RawMessage
	err := json.Unmarshal([]byte(normalized), &object)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	if object == nil {
		return nil, fmt.Errorf("%w: expected object, got null", ErrMalformedPayload)
	}
	return object, nil
}

func lookupField(object map[string]json.RawMessage, key string) (Value, error) {
	raw, ok := object[key]
	if !ok {
		return Value{}, fmt.Errorf("%w: %q", ErrMissingField, key)
	}
	var v Value
	err := json.Unmarshal(raw, &v)
	if err != nil {
		return Value{}, fmt.Errorf("%w: field %q: %w", ErrMalformedPayload, key, err)
	}
	return v, nil
}

// ParsePayload parses a normalized timetable response and looks up the
// fields named by keys.
func ParsePayload(normalized string, keys SchemaKeys) (Payload, error) {
	object, err := parseObject(normalized)
	if err != nil {
		return Payload{}, err
	}

	timetable, err := lookupField(object, keys.Timetable)
	if err != nil {
		return Payload{}, err
	}
	subjects, err := lookupField(object, keys.Subjects)
	if err != nil {
		return Payload{}, err
	}
	teachers, err := lookupField(object, keys.Teachers)
	if err != nil {
		return Payload{}, err
	}

	return Payload{
		Timetable: timetable,
		Subjects:  subjects,
		Teachers:  teachers,
	}, nil
}
