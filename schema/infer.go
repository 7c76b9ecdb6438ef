package schema

import (
	"reflect"
	"sort"
	"strings"
)

// Infer derives a schema from a representative value. It is the library's
// analog of annotation-derived schemas: call it once when wrapping a
// function and reuse the compiled schema for every invocation.
//
// Struct fields become object fields named after their json tag (falling
// back to the Go name); non-pointer fields are required, pointer fields
// are optional and nullable. A nil value or empty interface infers Any.
func Infer(value any) *Schema {
	if value == nil {
		return &Schema{Kind: Any}
	}
	return inferType(reflect.TypeOf(value))
}

// InferType derives a schema from a reflect.Type directly, for callers
// that have the type but no value at hand.
func InferType(t reflect.Type) *Schema {
	if t == nil {
		return &Schema{Kind: Any}
	}
	return inferType(t)
}

func inferType(t reflect.Type) *Schema {
	switch t.Kind() {
	case reflect.Pointer:
		s := inferType(t.Elem())
		s.Nullable = true
		return s

	case reflect.String:
		return &Schema{Kind: String}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Kind: Int}

	case reflect.Float32, reflect.Float64:
		return &Schema{Kind: Float}

	case reflect.Bool:
		return &Schema{Kind: Bool}

	case reflect.Slice, reflect.Array:
		return &Schema{Kind: Array, Elem: inferType(t.Elem())}

	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return &Schema{Kind: Any}
		}
		// Map contents are dynamic; shape is object, fields unknown.
		return &Schema{Kind: Object}

	case reflect.Struct:
		fields := make(map[string]*Schema)
		var required []string
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
			fields[name] = inferType(f.Type)
			if f.Type.Kind() != reflect.Pointer {
				required = append(required, name)
			}
		}
		sort.Strings(required)
		return &Schema{Kind: Object, Fields: fields, Required: required}

	default:
		return &Schema{Kind: Any}
	}
}
