package schema

import (
	"fmt"
	"math"
	"strings"

	"github.com/tidwall/gjson"
)

// ValidateJSON checks a raw JSON document against s without decoding it
// into Go values first. Handlers validating wire payloads use this to
// avoid an intermediate unmarshal.
func ValidateJSON(doc []byte, s *Schema) Outcome {
	var violations []Violation
	root := gjson.ParseBytes(doc)
	if !root.Exists() && len(doc) == 0 {
		record(&violations, "", kindName(s), "empty document")
		return Outcome{Passed: len(violations) == 0, Violations: violations}
	}
	validateResult("", root, s, &violations)
	return Outcome{Passed: len(violations) == 0, Violations: violations}
}

func kindName(s *Schema) string {
	if s == nil {
		return "any"
	}
	return s.Kind.String()
}

func validateResult(path string, res gjson.Result, s *Schema, violations *[]Violation) {
	if s == nil || s.Kind == Any {
		return
	}

	if res.Type == gjson.Null {
		if !s.Nullable {
			record(violations, path, s.Kind.String(), "null")
		}
		return
	}

	switch s.Kind {
	case String:
		if res.Type != gjson.String {
			record(violations, path, "string", jsonDescribe(res))
			return
		}
		checkEnum(path, res.String(), s, violations)

	case Int:
		if res.Type != gjson.Number || res.Num != math.Trunc(res.Num) {
			record(violations, path, "int", jsonDescribe(res))
			return
		}
		checkRange(path, res.Num, s, violations)

	case Float:
		if res.Type != gjson.Number {
			record(violations, path, "float", jsonDescribe(res))
			return
		}
		checkRange(path, res.Num, s, violations)

	case Bool:
		if res.Type != gjson.True && res.Type != gjson.False {
			record(violations, path, "bool", jsonDescribe(res))
		}

	case Array:
		if !res.IsArray() {
			record(violations, path, "array", jsonDescribe(res))
			return
		}
		for i, elem := range res.Array() {
			validateResult(fmt.Sprintf("%s[%d]", path, i), elem, s.Elem, violations)
		}

	case Object:
		if !res.IsObject() {
			record(violations, path, "object", jsonDescribe(res))
			return
		}
		for _, name := range s.Required {
			if !res.Get(escapeJSONPath(name)).Exists() {
				record(violations, joinPath(path, name), requiredExpectation(s, name), "missing")
			}
		}
		for _, name := range s.fieldNames() {
			field := res.Get(escapeJSONPath(name))
			if !field.Exists() {
				continue
			}
			validateResult(joinPath(path, name), field, s.Fields[name], violations)
		}
	}
}

// escapeJSONPath escapes gjson path metacharacters in a literal field name.
func escapeJSONPath(name string) string {
	r := strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`, "#", `\#`, "|", `\|`, "@", `\@`)
	return r.Replace(name)
}

func jsonDescribe(res gjson.Result) string {
	switch res.Type {
	case gjson.String:
		return "string"
	case gjson.Number:
		return "number"
	case gjson.True, gjson.False:
		return "bool"
	case gjson.Null:
		return "null"
	default:
		if res.IsArray() {
			return "array"
		}
		if res.IsObject() {
			return "object"
		}
		return "unknown"
	}
}
