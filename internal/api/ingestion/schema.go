package ingestion

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"

	"github.com/pulseboard/data-ingestor/internal/types"
)

// Validation rule identifiers, kept wire-compatible with what integrators
// already receive from the upstream pipeline.
const (
	codeInvalidType = "invalid_type"
	codeInvalidStr  = "invalid_string"
	codeTooSmall    = "too_small"
	codeTooBig      = "too_big"
	codeInvalidEnum = "invalid_enum_value"
)

type FieldType int

const (
	TypeString FieldType = iota
	TypeNumber
	TypeInteger
	TypeTimestamp
	TypeStringArray
	TypeObject
	TypeObjectArray
)

func (t FieldType) String() string {
	switch t {
	case TypeString, TypeTimestamp:
		return "string"
	case TypeNumber, TypeInteger:
		return "number"
	case TypeStringArray, TypeObjectArray:
		return "array"
	case TypeObject:
		return "object"
	default:
		return "unknown"
	}
}

// Field declares the contract for one schema property.
type Field struct {
	Name     string
	Type     FieldType
	Required bool
	Email    bool          // string must look like an email address
	ExactLen int           // string must be exactly this many characters (0 = unchecked)
	Min      *float64      // numeric lower bound, inclusive
	Enum     []string      // string must be one of these values
	MinItems int           // minimum array length
	Elem     *ObjectSchema // element schema for TypeObjectArray
	Object   *ObjectSchema // nested schema for TypeObject
}

// ObjectSchema is an open object contract: declared fields are validated,
// unknown keys pass through verbatim. Descriptors are built once at package
// init and never mutated afterwards.
type ObjectSchema struct {
	Name   string
	Fields []Field
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate checks input against the schema and returns the canonical map:
// every declared field that was present, typed as declared, plus all unknown
// keys untouched. All violations are collected; there is no short-circuit
// and no value coercion.
func (s *ObjectSchema) Validate(input any) (map[string]any, types.FieldErrors) {
	return s.validate(input, nil)
}

func (s *ObjectSchema) validate(input any, path []string) (map[string]any, types.FieldErrors) {
	obj, ok := input.(map[string]any)
	if !ok {
		return nil, types.FieldErrors{fieldError(path, codeInvalidType,
			fmt.Sprintf("Expected object, received %s", typeName(input)))}
	}

	var errs types.FieldErrors
	out := make(map[string]any, len(obj))

	declared := make(map[string]bool, len(s.Fields))
	for i := range s.Fields {
		f := &s.Fields[i]
		declared[f.Name] = true
		fieldPath := append(append([]string{}, path...), f.Name)

		value, present := obj[f.Name]
		if !present || value == nil {
			if f.Required {
				errs = append(errs, fieldError(fieldPath, codeInvalidType, "Required"))
			}
			continue
		}

		normalized, fErrs := f.check(value, fieldPath)
		if len(fErrs) > 0 {
			errs = append(errs, fErrs...)
			continue
		}
		out[f.Name] = normalized
	}

	// Open schema: unknown keys ride along into the canonical record.
	for key, value := range obj {
		if !declared[key] {
			out[key] = value
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

func (f *Field) check(value any, path []string) (any, types.FieldErrors) {
	switch f.Type {
	case TypeString:
		return f.checkString(value, path)
	case TypeNumber:
		return f.checkNumber(value, path)
	case TypeInteger:
		return f.checkInteger(value, path)
	case TypeTimestamp:
		return f.checkTimestamp(value, path)
	case TypeStringArray:
		return f.checkStringArray(value, path)
	case TypeObject:
		return f.Object.validate(value, path)
	case TypeObjectArray:
		return f.checkObjectArray(value, path)
	}
	return nil, types.FieldErrors{fieldError(path, codeInvalidType, "Unsupported field type")}
}

func (f *Field) checkString(value any, path []string) (any, types.FieldErrors) {
	str, ok := value.(string)
	if !ok {
		return nil, typeMismatch(path, f.Type, value)
	}
	var errs types.FieldErrors
	if f.ExactLen > 0 {
		if n := len([]rune(str)); n < f.ExactLen {
			errs = append(errs, fieldError(path, codeTooSmall,
				fmt.Sprintf("String must contain exactly %d character(s)", f.ExactLen)))
		} else if n > f.ExactLen {
			errs = append(errs, fieldError(path, codeTooBig,
				fmt.Sprintf("String must contain exactly %d character(s)", f.ExactLen)))
		}
	}
	if f.Email && !emailPattern.MatchString(str) {
		errs = append(errs, fieldError(path, codeInvalidStr, "Invalid email"))
	}
	if len(f.Enum) > 0 {
		found := false
		for _, allowed := range f.Enum {
			if str == allowed {
				found = true
				break
			}
		}
		if !found {
			errs = append(errs, fieldError(path, codeInvalidEnum,
				fmt.Sprintf("Invalid enum value. Expected %s, received '%s'", enumList(f.Enum), str)))
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return str, nil
}

func (f *Field) checkNumber(value any, path []string) (any, types.FieldErrors) {
	num, ok := value.(float64)
	if !ok {
		return nil, typeMismatch(path, f.Type, value)
	}
	if f.Min != nil && num < *f.Min {
		return nil, types.FieldErrors{fieldError(path, codeTooSmall,
			fmt.Sprintf("Number must be greater than or equal to %g", *f.Min))}
	}
	return num, nil
}

func (f *Field) checkInteger(value any, path []string) (any, types.FieldErrors) {
	num, ok := value.(float64)
	if !ok {
		return nil, typeMismatch(path, f.Type, value)
	}
	if num != math.Trunc(num) {
		return nil, types.FieldErrors{fieldError(path, codeInvalidType,
			"Expected integer, received float")}
	}
	if f.Min != nil && num < *f.Min {
		return nil, types.FieldErrors{fieldError(path, codeTooSmall,
			fmt.Sprintf("Number must be greater than or equal to %g", *f.Min))}
	}
	return num, nil
}

func (f *Field) checkTimestamp(value any, path []string) (any, types.FieldErrors) {
	str, ok := value.(string)
	if !ok {
		return nil, typeMismatch(path, f.Type, value)
	}
	if _, err := time.Parse(time.RFC3339, str); err != nil {
		return nil, types.FieldErrors{fieldError(path, codeInvalidStr, "Invalid datetime")}
	}
	// The original string is canonical; parsing only proves it is well-formed.
	return str, nil
}

func (f *Field) checkStringArray(value any, path []string) (any, types.FieldErrors) {
	arr, ok := value.([]any)
	if !ok {
		return nil, typeMismatch(path, f.Type, value)
	}
	var errs types.FieldErrors
	out := make([]any, 0, len(arr))
	for i, elem := range arr {
		str, ok := elem.(string)
		if !ok {
			errs = append(errs, fieldError(append(append([]string{}, path...), strconv.Itoa(i)),
				codeInvalidType, fmt.Sprintf("Expected string, received %s", typeName(elem))))
			continue
		}
		out = append(out, str)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

func (f *Field) checkObjectArray(value any, path []string) (any, types.FieldErrors) {
	arr, ok := value.([]any)
	if !ok {
		return nil, typeMismatch(path, f.Type, value)
	}
	var errs types.FieldErrors
	if len(arr) < f.MinItems {
		errs = append(errs, fieldError(path, codeTooSmall,
			fmt.Sprintf("Array must contain at least %d element(s)", f.MinItems)))
	}
	out := make([]any, 0, len(arr))
	for i, elem := range arr {
		elemPath := append(append([]string{}, path...), strconv.Itoa(i))
		normalized, elemErrs := f.Elem.validate(elem, elemPath)
		if len(elemErrs) > 0 {
			errs = append(errs, elemErrs...)
			continue
		}
		out = append(out, normalized)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

func typeMismatch(path []string, expected FieldType, got any) types.FieldErrors {
	return types.FieldErrors{fieldError(path, codeInvalidType,
		fmt.Sprintf("Expected %s, received %s", expected, typeName(got)))}
}

func fieldError(path []string, code, message string) types.FieldError {
	if path == nil {
		path = []string{}
	}
	return types.FieldError{Path: path, Message: message, Code: code}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
}

func enumList(values []string) string {
	out := ""
	for i, v := range values {
		if i > 0 {
			out += " | "
		}
		out += "'" + v + "'"
	}
	return out
}
