// Package validation implements the form rule engine and the per-entity
// schemas shared by every service.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// RuleKind identifies how a Rule is evaluated.
type RuleKind string

const (
	KindRequired  RuleKind = "required"
	KindEmail     RuleKind = "email"
	KindMinLength RuleKind = "minLength"
	KindMaxLength RuleKind = "maxLength"
	KindMin       RuleKind = "min"
	KindMax       RuleKind = "max"
	KindPattern   RuleKind = "pattern"
	KindCustom    RuleKind = "custom"
)

// Rule is a single check on a field value. Value holds the length bound,
// numeric bound or pattern; Check is used by custom rules.
type Rule struct {
	Kind    RuleKind
	Value   any
	Message string
	Check   func(v any) bool
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Required fails for nil, blank strings, false and numeric zero.
func Required(fieldName string) Rule {
	return Rule{Kind: KindRequired, Message: fieldName + " es obligatorio"}
}

func Email() Rule {
	return Rule{Kind: KindEmail, Message: "Ingresa un email válido"}
}

func MinLength(n int) Rule {
	return Rule{Kind: KindMinLength, Value: n, Message: fmt.Sprintf("Debe tener al menos %d caracteres", n)}
}

func MaxLength(n int) Rule {
	return Rule{Kind: KindMaxLength, Value: n, Message: fmt.Sprintf("No puede exceder %d caracteres", n)}
}

func Min(v float64, fieldName string) Rule {
	return Rule{Kind: KindMin, Value: v, Message: fieldName + " debe ser al menos " + formatNumber(v)}
}

func Max(v float64, fieldName string) Rule {
	return Rule{Kind: KindMax, Value: v, Message: fieldName + " no puede ser mayor a " + formatNumber(v)}
}

func Pattern(re *regexp.Regexp, message string) Rule {
	return Rule{Kind: KindPattern, Value: re, Message: message}
}

func Custom(check func(v any) bool, message string) Rule {
	return Rule{Kind: KindCustom, Check: check, Message: message}
}

// PositiveNumber requires a numeric value strictly greater than zero.
func PositiveNumber(fieldName string) Rule {
	return Custom(func(v any) bool {
		f, ok := toNumber(v)
		return ok && f > 0
	}, fieldName+" debe ser un número positivo")
}

// DateNotPast rejects dates before now. Empty values pass.
func DateNotPast(now func() time.Time) Rule {
	return Custom(func(v any) bool {
		t, ok := toTime(v)
		if !ok {
			return true
		}
		return !t.Before(now())
	}, "La fecha no puede ser en el pasado")
}

// DateRange requires the end date to be on or after start. Missing dates pass.
func DateRange(start any) Rule {
	return Custom(func(end any) bool {
		s, okStart := toTime(start)
		e, okEnd := toTime(end)
		if !okStart || !okEnd {
			return true
		}
		return !e.Before(s)
	}, "La fecha final debe ser posterior a la fecha inicial")
}

// check returns false when v violates the rule.
func (r Rule) check(v any) bool {
	switch r.Kind {
	case KindRequired:
		return truthy(v)
	case KindEmail:
		s, ok := v.(string)
		return !ok || s == "" || emailPattern.MatchString(s)
	case KindMinLength:
		s, ok := v.(string)
		return !ok || s == "" || utf8.RuneCountInString(s) >= r.Value.(int)
	case KindMaxLength:
		s, ok := v.(string)
		return !ok || s == "" || utf8.RuneCountInString(s) <= r.Value.(int)
	case KindMin:
		if v == nil {
			return true
		}
		f, ok := toNumber(v)
		return !ok || f >= r.Value.(float64)
	case KindMax:
		if v == nil {
			return true
		}
		f, ok := toNumber(v)
		return !ok || f <= r.Value.(float64)
	case KindPattern:
		s, ok := v.(string)
		re, isRe := r.Value.(*regexp.Regexp)
		return !ok || s == "" || !isRe || re.MatchString(s)
	case KindCustom:
		return r.Check == nil || r.Check(v)
	}
	return true
}

// truthy mirrors form truthiness: nil, "", whitespace, false and 0 are empty.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(x) != ""
	case bool:
		return x
	case time.Time:
		return !x.IsZero()
	}
	f, ok := toNumber(v)
	if ok {
		return f != 0
	}
	return true
}

// toNumber converts v the way a form field is coerced to a number. Blank
// strings are zero; unparsable values and NaN report ok=false.
func toNumber(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case int32:
		f = float64(x)
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, true
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func toTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, !x.IsZero()
	case *time.Time:
		if x == nil {
			return time.Time{}, false
		}
		return *x, true
	case string:
		if x == "" {
			return time.Time{}, false
		}
		t, err := time.Parse("2006-01-02", x)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
