// Package util holds internal helpers shared across AgentChat packages:
// reflection-based JSON schema derivation and argument validation for
// function contracts. It lives in internal to avoid committing to public API
// stability prematurely.
package util

import (
	"fmt"
	"reflect"
	"strings"
)

// ValidationError reports a single argument failing schema validation.
type ValidationError struct {
	Field   string `json:"field"`   // Field that failed validation
	Value   any    `json:"value"`   // Value that was provided
	Message string `json:"message"` // Human-readable error message
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// CreateSchema derives a minimal JSON schema from a Go struct. Field names
// honor json tags, descriptions come from `description` tags, and fields
// that are neither pointers nor tagged omitempty are marked required.
// Non-struct inputs yield an empty object schema.
func CreateSchema(structType any) map[string]any {
	t := reflect.TypeOf(structType)
	if t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return map[string]any{"type": "object", "properties": map[string]any{}}
	}

	properties := map[string]any{}
	var required []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		name := field.Name
		tagParts := strings.Split(jsonTag, ",")
		if tagParts[0] != "" {
			name = tagParts[0]
		}

		prop := map[string]any{"type": jsonType(field.Type)}
		if desc := field.Tag.Get("description"); desc != "" {
			prop["description"] = desc
		}
		properties[name] = prop

		optional := field.Type.Kind() == reflect.Ptr
		for _, opt := range tagParts[1:] {
			if strings.TrimSpace(opt) == "omitempty" {
				optional = true
			}
		}
		if !optional {
			required = append(required, name)
		}
	}

	schema := map[string]any{"type": "object", "properties": properties}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// ValidateParameters checks parsed arguments against a schema produced by
// CreateSchema (or a hand-written map of the same shape). Fields not present
// in the schema are allowed.
func ValidateParameters(params map[string]any, schema map[string]any) error {
	for _, name := range requiredFields(schema) {
		if _, exists := params[name]; !exists {
			return &ValidationError{Field: name, Message: "required field is missing"}
		}
	}

	properties, _ := schema["properties"].(map[string]any)
	for name, value := range params {
		prop, ok := properties[name].(map[string]any)
		if !ok {
			continue
		}
		expected, _ := prop["type"].(string)
		if !matchesType(value, expected) {
			return &ValidationError{
				Field:   name,
				Value:   value,
				Message: fmt.Sprintf("expected type %s, got %T", expected, value),
			}
		}
	}
	return nil
}

// requiredFields tolerates both []string (schemas built in Go) and []any
// (schemas decoded from JSON).
func requiredFields(schema map[string]any) []string {
	switch req := schema["required"].(type) {
	case []string:
		return req
	case []any:
		names := make([]string, 0, len(req))
		for _, entry := range req {
			if name, ok := entry.(string); ok {
				names = append(names, name)
			}
		}
		return names
	default:
		return nil
	}
}

func jsonType(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Ptr:
		return jsonType(t.Elem())
	default:
		return "string"
	}
}

func matchesType(value any, expected string) bool {
	if value == nil {
		return true
	}
	switch expected {
	case "string":
		_, ok := value.(string)
		return ok
	case "integer":
		switch v := value.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return true
		case float64: // JSON numbers decode as float64
			return v == float64(int64(v))
		}
		return false
	case "number":
		switch value.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64,
			float32, float64:
			return true
		}
		return false
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "array":
		_, ok := value.([]any)
		return ok
	case "object":
		_, ok := value.(map[string]any)
		return ok
	default:
		return true
	}
}
