package comcigan

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Value is a JSON value seen as a tree: either an array of values or a
// scalar leaf kept in its raw form.
type Value struct {
	array bool
	items []Value
	raw   json.RawMessage
}

// Array creates an array value.
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{array: true, items: items}
}

// Scalar creates a leaf value out of raw JSON text.
func Scalar(raw string) Value {
	return Value{raw: json.RawMessage(raw)}
}

// Int creates an integer leaf.
func Int(n int) Value {
	return Scalar(fmt.Sprint(n))
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var items []Value
		err := json.Unmarshal(data, &items)
		if err != nil {
			return err
		}
		*v = Array(items...)
		return nil
	}
	*v = Value{raw: append(json.RawMessage(nil), data...)}
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.array {
		return json.Marshal(v.items)
	}
	if len(v.raw) == 0 {
		return []byte("null"), nil
	}
	return v.raw, nil
}

func (v Value) IsArray() bool {
	return v.array
}

// Items returns the elements of an array value, nil for a scalar.
func (v Value) Items() []Value {
	return v.items
}

// Int decodes a scalar leaf as an integer.
func (v Value) Int() (int, error) {
	if v.array {
		return 0, fmt.Errorf("%w: expected integer, got array", ErrMalformedPayload)
	}
	var n int
	err := json.Unmarshal(v.raw, &n)
	if err != nil {
		return 0, fmt.Errorf("%w: expected integer, got %s", ErrMalformedPayload, v.raw)
	}
	return n, nil
}

// Text decodes a scalar leaf as a string.
func (v Value) Text() (string, error) {
	if v.array {
		return "", fmt.Errorf("%w: expected string, got array", ErrMalformedPayload)
	}
	var s string
	err := json.Unmarshal(v.raw, &s)
	if err != nil {
		return "", fmt.Errorf("%w: expected string, got %s", ErrMalformedPayload, v.raw)
	}
	return s, nil
}

// Trim drops the leading placeholder element of every array in the tree.
// Scalars are returned unchanged, an empty array stays empty.
func Trim(v Value) Value {
	if !v.array {
		return v
	}
	if len(v.items) == 0 {
		return Array()
	}

	trimmed := make([]Value, len(v.items)-1)
	for i, item := range v.items[1:] {
		trimmed[i] = Trim(item)
	}
	return Array(trimmed...)
}

// Strings converts an array of string leaves.
func (v Value) Strings() ([]string, error) {
	if !v.array {
		return nil, fmt.Errorf("%w: expected array of strings", ErrMalformedPayload)
	}
	out := make([]string, len(v.items))
	for i, item := range v.items {
		s, err := item.Text()
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		out[i] = s
	}
	return out, nil
}

// Cube converts a 4 level array of integer leaves indexed
// [grade][class][day][period].
func (v Value) Cube() ([][][][]int, error) {
	grades, err := v.level("grade")
	if err != nil {
		return nil, err
	}

	cube := make([][][][]int, len(grades))
	for g, grade := range grades {
		classes, err := grade.level("class")
		if err != nil {
			return nil, fmt.Errorf("grade %d: %w", g, err)
		}
		cube[g] = make([][][]int, len(classes))

		for c, class := range classes {
			days, err := class.level("day")
			if err != nil {
				return nil, fmt.Errorf("grade %d class %d: %w", g, c, err)
			}
			cube[g][c] = make([][]int, len(days))

			for d, day := range days {
				periods, err := day.level("period")
				if err != nil {
					return nil, fmt.Errorf("grade %d class %d day %d: %w", g, c, d, err)
				}
				cube[g][c][d] = make([]int, len(periods))

				for p, period := range periods {
					code, err := period.Int()
					if err != nil {
						return nil, fmt.Errorf("grade %d class %d day %d period %d: %w", g, c, d, p, err)
					}
					cube[g][c][d][p] = code
				}
			}
		}
	}
	return cube, nil
}

func (v Value) level(name string) ([]Value, error) {
	if !v.array {
		return nil, fmt.Errorf("%w: expected %s array, got %s", ErrMalformedPayload, name, v.raw)
	}
	return v.items, nil
}
