package schema

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Kind is the type a schema node expects.
type Kind int

const (
	Any Kind = iota
	String
	Int
	Float
	Bool
	Object
	Array
)

func (k Kind) String() string {
	switch k {
	case Any:
		return "any"
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Object:
		return "object"
	case Array:
		return "array"
	default:
		return "unknown"
	}
}

// Schema declares the expected shape of a value. The zero value accepts
// anything.
type Schema struct {
	Kind     Kind
	Nullable bool

	// Object shape. Fields maps field name to its schema; Required lists
	// the field names that must be present.
	Fields   map[string]*Schema
	Required []string

	// Array element schema.
	Elem *Schema

	// Optional value constraints, checked only after the structural check
	// for the field passed.
	Min  *float64 // numeric lower bound, inclusive
	Max  *float64 // numeric upper bound, inclusive
	Enum []string // permitted string values
}

// Violation is one field-level mismatch.
type Violation struct {
	Path     string `json:"path"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

func (v Violation) String() string {
	path := v.Path
	if path == "" {
		path = "$"
	}
	return fmt.Sprintf("%s: expected %s, got %s", path, v.Expected, v.Actual)
}

// Outcome is the result of validating one value.
type Outcome struct {
	Passed     bool
	Violations []Violation
}

// Messages renders the violations as ordered strings.
func (o Outcome) Messages() []string {
	msgs := make([]string, len(o.Violations))
	for i, v := range o.Violations {
		msgs[i] = v.String()
	}
	return msgs
}

// Validate checks value against s, walking nested fields and elements.
// A nil schema accepts anything. Structural failure on a field stops
// descending into that field but validation of sibling fields continues,
// so the outcome carries every violation.
func Validate(value any, s *Schema) Outcome {
	var violations []Violation
	validateValue("", value, s, &violations)
	return Outcome{Passed: len(violations) == 0, Violations: violations}
}

func validateValue(path string, value any, s *Schema, violations *[]Violation) {
	if s == nil || s.Kind == Any {
		return
	}

	if value == nil {
		if !s.Nullable {
			record(violations, path, s.Kind.String(), "null")
		}
		return
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			if !s.Nullable {
				record(violations, path, s.Kind.String(), "null")
			}
			return
		}
		rv = rv.Elem()
	}

	switch s.Kind {
	case String:
		if rv.Kind() != reflect.String {
			record(violations, path, "string", describe(rv))
			return
		}
		checkEnum(path, rv.String(), s, violations)

	case Int:
		if !isInt(rv.Kind()) {
			record(violations, path, "int", describe(rv))
			return
		}
		checkRange(path, intAsFloat(rv), s, violations)

	case Float:
		// Integers satisfy a float schema, mirroring JSON number semantics.
		if !isFloat(rv.Kind()) && !isInt(rv.Kind()) {
			record(violations, path, "float", describe(rv))
			return
		}
		checkRange(path, numAsFloat(rv), s, violations)

	case Bool:
		if rv.Kind() != reflect.Bool {
			record(violations, path, "bool", describe(rv))
		}

	case Array:
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			record(violations, path, "array", describe(rv))
			return
		}
		for i := 0; i < rv.Len(); i++ {
			validateValue(fmt.Sprintf("%s[%d]", path, i), rv.Index(i).Interface(), s.Elem, violations)
		}

	case Object:
		fields, ok := objectFields(rv)
		if !ok {
			record(violations, path, "object", describe(rv))
			return
		}
		for _, name := range s.Required {
			if _, present := fields[name]; !present {
				record(violations, joinPath(path, name), requiredExpectation(s, name), "missing")
			}
		}
		for _, name := range s.fieldNames() {
			fv, present := fields[name]
			if !present {
				continue // absence of optional fields is not a violation
			}
			validateValue(joinPath(path, name), fv, s.Fields[name], violations)
		}
	}
}

// fieldNames returns the declared field names in a stable order so the
// violation sequence is deterministic.
func (s *Schema) fieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for name := range s.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func requiredExpectation(s *Schema, name string) string {
	if fs, ok := s.Fields[name]; ok && fs != nil {
		return fs.Kind.String()
	}
	return "any"
}

func checkEnum(path, got string, s *Schema, violations *[]Violation) {
	if len(s.Enum) == 0 {
		return
	}
	for _, allowed := range s.Enum {
		if got == allowed {
			return
		}
	}
	record(violations, path, "one of ["+strings.Join(s.Enum, ", ")+"]", fmt.Sprintf("%q", got))
}

func checkRange(path string, got float64, s *Schema, violations *[]Violation) {
	if s.Min != nil && got < *s.Min {
		record(violations, path, fmt.Sprintf(">= %v", *s.Min), fmt.Sprintf("%v", got))
	}
	if s.Max != nil && got > *s.Max {
		record(violations, path, fmt.Sprintf("<= %v", *s.Max), fmt.Sprintf("%v", got))
	}
}

// objectFields flattens a map or struct into name -> value. Struct fields
// honor json tags the way encoding/json does, minus options.
func objectFields(rv reflect.Value) (map[string]any, bool) {
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		fields := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			fields[iter.Key().String()] = iter.Value().Interface()
		}
		return fields, true

	case reflect.Struct:
		fields := make(map[string]any)
		t := rv.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name := f.Name
			if tag, ok := f.Tag.Lookup("json"); ok {
				tagName, _, _ := strings.Cut(tag, ",")
				if tagName == "-" {
					continue
				}
				if tagName != "" {
					name = tagName
				}
			}
			fv := rv.Field(i)
			if fv.Kind() == reflect.Pointer && fv.IsNil() {
				continue // treat nil pointer fields as absent
			}
			fields[name] = fv.Interface()
		}
		return fields, true

	default:
		return nil, false
	}
}

func isInt(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func intAsFloat(rv reflect.Value) float64 {
	if rv.CanUint() {
		return float64(rv.Uint())
	}
	return float64(rv.Int())
}

func numAsFloat(rv reflect.Value) float64 {
	if isFloat(rv.Kind()) {
		return rv.Float()
	}
	return intAsFloat(rv)
}

func describe(rv reflect.Value) string {
	return rv.Type().String()
}

func record(violations *[]Violation, path, expected, actual string) {
	*violations = append(*violations, Violation{Path: path, Expected: expected, Actual: actual})
}

func joinPath(base, field string) string {
	if base == "" {
		return field
	}
	return base + "." + field
}
