package validation

import (
	"fmt"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
)

// Field binds an ordered rule list to a record key.
type Field struct {
	Name  string
	Rules []Rule
}

// Schema is an ordered list of fields.
type Schema []Field

// FieldError is one failed field with the message of its first failing rule.
type FieldError struct {
	Field   string
	Message string
}

// Result lists every failing field in schema order.
type Result struct {
	Errors []FieldError
}

func (r Result) Valid() bool { return len(r.Errors) == 0 }

// FieldError returns the message for field, if it failed.
func (r Result) FieldError(field string) (string, bool) {
	for _, e := range r.Errors {
		if e.Field == field {
			return e.Message, true
		}
	}
	return "", false
}

// Err converts the first failure into a domain validation error. It returns
// nil when the result is valid.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	first := r.Errors[0]
	return domain.Invalid(first.Field, first.Message)
}

// ValidateField evaluates rules in order and returns the first failing
// message, or "" when value passes.
func ValidateField(value any, rules []Rule) string {
	for _, rule := range rules {
		if !rule.check(normalize(value)) {
			return rule.Message
		}
	}
	return ""
}

// Validate checks every schema field of record. Missing keys are nil.
func Validate(record map[string]any, schema Schema) Result {
	var res Result
	for _, f := range schema {
		if msg := ValidateField(record[f.Name], f.Rules); msg != "" {
			res.Errors = append(res.Errors, FieldError{Field: f.Name, Message: msg})
		}
	}
	return res
}

// Summary renders the first message, noting how many other fields failed.
func (r Result) Summary() string {
	switch len(r.Errors) {
	case 0:
		return ""
	case 1:
		return r.Errors[0].Message
	case 2:
		return r.Errors[0].Message + " (y 1 error más)"
	default:
		return fmt.Sprintf("%s (y %d errores más)", r.Errors[0].Message, len(r.Errors)-1)
	}
}

// normalize dereferences the pointer types records use for optional values.
func normalize(v any) any {
	switch x := v.(type) {
	case *string:
		if x == nil {
			return nil
		}
		return *x
	case *float64:
		if x == nil {
			return nil
		}
		return *x
	case *int64:
		if x == nil {
			return nil
		}
		return *x
	}
	return v
}
