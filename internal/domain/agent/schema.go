package agent

import (
	"errors"
	"fmt"
)

var ErrSchemaViolation = errors.New("schema violation")

type FieldType string

const (
	TypeString  FieldType = "string"
	TypeNumber  FieldType = "number"
	TypeBoolean FieldType = "boolean"
	TypeObject  FieldType = "object"
	TypeArray   FieldType = "array"
)

// Schema is a structural contract for model output. It is rendered into
// the provider's response-format instruction and used to validate the
// returned document before it is trusted.
type Schema struct {
	Type       FieldType
	Properties map[string]*Schema
	Items      *Schema
	Required   []string
	Enum       []string
}

// Validate checks a decoded JSON value against the schema. A missing
// required field is a violation, never a default.
func (s *Schema) Validate(v any) error {
	return s.validate(v, "$")
}

func (s *Schema) validate(v any, path string) error {
	if v == nil {
		return fmt.Errorf("%w: null value at %s", ErrSchemaViolation, path)
	}
	switch s.Type {
	case TypeString:
		str, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: expected string at %s", ErrSchemaViolation, path)
		}
		if len(s.Enum) > 0 && !contains(s.Enum, str) {
			return fmt.Errorf("%w: value %q at %s not in enum", ErrSchemaViolation, str, path)
		}
	case TypeNumber:
		if _, ok := v.(float64); !ok {
			return fmt.Errorf("%w: expected number at %s", ErrSchemaViolation, path)
		}
	case TypeBoolean:
		if _, ok := v.(bool); !ok {
			return fmt.Errorf("%w: expected boolean at %s", ErrSchemaViolation, path)
		}
	case TypeObject:
		obj, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: expected object at %s", ErrSchemaViolation, path)
		}
		for _, name := range s.Required {
			if _, present := obj[name]; !present {
				return fmt.Errorf("%w: missing required field %q at %s", ErrSchemaViolation, name, path)
			}
		}
		for name, field := range s.Properties {
			val, present := obj[name]
			if !present {
				continue
			}
			if val == nil && !contains(s.Required, name) {
				continue
			}
			if err := field.validate(val, path+"."+name); err != nil {
				return err
			}
		}
	case TypeArray:
		arr, ok := v.([]any)
		if !ok {
			return fmt.Errorf("%w: expected array at %s", ErrSchemaViolation, path)
		}
		if s.Items != nil {
			for i, item := range arr {
				if err := s.Items.validate(item, fmt.Sprintf("%s[%d]", path, i)); err != nil {
					return err
				}
			}
		}
	default:
		return fmt.Errorf("%w: unknown schema type %q at %s", ErrSchemaViolation, s.Type, path)
	}
	return nil
}

// JSONSchema renders the schema as a JSON Schema document for the
// provider's structured-output instruction.
func (s *Schema) JSONSchema() map[string]any {
	out := map[string]any{"type": string(s.Type)}
	if len(s.Enum) > 0 {
		enum := make([]any, len(s.Enum))
		for i, e := range s.Enum {
			enum[i] = e
		}
		out["enum"] = enum
	}
	if s.Type == TypeObject {
		props := make(map[string]any, len(s.Properties))
		for name, field := range s.Properties {
			props[name] = field.JSONSchema()
		}
		out["properties"] = props
		if len(s.Required) > 0 {
			out["required"] = s.Required
		}
	}
	if s.Type == TypeArray && s.Items != nil {
		out["items"] = s.Items.JSONSchema()
	}
	return out
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
