package jsonout

import (
	"fmt"
	"math"

	"github.com/tidwall/gjson"
)

// FieldType is one of the closed set of shape primitives.
type FieldType int

const (
	// TypeString matches a JSON string.
	TypeString FieldType = iota

	// TypeInteger matches a JSON number with no fractional part.
	TypeInteger

	// TypeFloat matches any JSON number.
	TypeFloat

	// TypeBoolean matches true or false.
	TypeBoolean

	// TypeObject matches a JSON object, optionally against a subshape.
	TypeObject
)

// String returns the shape-description name of the type.
func (t FieldType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeBoolean:
		return "boolean"
	case TypeObject:
		return "object"
	default:
		return "unknown"
	}
}

// FieldSpec declares the expected type of one shape field. For TypeObject
// fields, Object optionally holds the nested subshape.
type FieldSpec struct {
	Type   FieldType
	Object Shape
}

// Shape maps required field names to their expected types. A value's keys
// must be a superset of the shape's keys to match.
type Shape map[string]FieldSpec

// ParseShape converts a caller-supplied shape description (as decoded
// from the json_schema request field) into a Shape. Values must be one of
// the primitive type names or a nested mapping for object subshapes.
func ParseShape(raw map[string]interface{}) (Shape, error) {
	if raw == nil {
		return nil, nil
	}

	shape := make(Shape, len(raw))
	for field, decl := range raw {
		switch v := decl.(type) {
		case string:
			fieldType, err := parseTypeName(v)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", field, err)
			}
			shape[field] = FieldSpec{Type: fieldType}
		case map[string]interface{}:
			sub, err := ParseShape(v)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", field, err)
			}
			shape[field] = FieldSpec{Type: TypeObject, Object: sub}
		default:
			return nil, fmt.Errorf("field %q: expected type name or nested shape, got %T", field, decl)
		}
	}
	return shape, nil
}

func parseTypeName(name string) (FieldType, error) {
	switch name {
	case "string", "str":
		return TypeString, nil
	case "integer", "int":
		return TypeInteger, nil
	case "float", "number":
		return TypeFloat, nil
	case "boolean", "bool":
		return TypeBoolean, nil
	case "object":
		return TypeObject, nil
	default:
		return 0, fmt.Errorf("unknown shape type %q", name)
	}
}

// matches reports whether value satisfies spec.
func (spec FieldSpec) matches(value gjson.Result) bool {
	switch spec.Type {
	case TypeString:
		return value.Type == gjson.String
	case TypeInteger:
		return value.Type == gjson.Number && value.Num == math.Trunc(value.Num)
	case TypeFloat:
		return value.Type == gjson.Number
	case TypeBoolean:
		return value.Type == gjson.True || value.Type == gjson.False
	case TypeObject:
		if !value.IsObject() {
			return false
		}
		if spec.Object == nil {
			return true
		}
		return spec.Object.matchesObject(value)
	default:
		return false
	}
}

// matchesObject reports whether value is an object whose keys are a
// superset of the shape's keys with each value matching its declared type.
func (s Shape) matchesObject(value gjson.Result) bool {
	fields := value.Map()
	for field, spec := range s {
		got, ok := fields[field]
		if !ok {
			return false
		}
		if !spec.matches(got) {
			return false
		}
	}
	return true
}
