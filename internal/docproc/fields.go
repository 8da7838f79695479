package docproc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/medclaims/claims-pipeline/internal/entity"
	"github.com/medclaims/claims-pipeline/internal/llm"
)

// Coercion rules applied uniformly across processors. Failures never surface
// as errors: a bad amount degrades to nil and a bad list to empty, so the
// claim still reaches rule evaluation.

// amount coerces a candidate value to a float. Strings like "$1,250.00" are
// accepted; anything unparseable yields nil.
func amount(c llm.FieldCandidate, field string) *float64 {
	v, ok := c[field]
	if !ok || v == nil {
		return nil
	}
	switch t := v.(type) {
	case float64:
		return &t
	case int:
		f := float64(t)
		return &f
	case string:
		s := strings.TrimSpace(t)
		s = strings.ReplaceAll(s, ",", "")
		s = strings.TrimPrefix(s, "$")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

// str returns the candidate value as a trimmed string, "" when absent or not
// a textual scalar.
func str(c llm.FieldCandidate, field string) string {
	v, ok := c[field]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64, int, bool:
		return fmt.Sprintf("%v", t)
	default:
		return ""
	}
}

// stringList coerces a candidate value to a string slice. A scalar wraps into
// a single-element list; absent or null yields an empty, non-nil slice.
func stringList(c llm.FieldCandidate, field string) []string {
	v, ok := c[field]
	if !ok || v == nil {
		return []string{}
	}
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, strings.TrimSpace(s))
			} else if e != nil {
				out = append(out, fmt.Sprintf("%v", e))
			}
		}
		return out
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return []string{}
		}
		return []string{s}
	default:
		return []string{fmt.Sprintf("%v", t)}
	}
}

// serviceItems coerces the invoice itemized-services field. Anything that is
// not a list of objects degrades to an empty list.
func serviceItems(c llm.FieldCandidate, field string) []entity.ServiceItem {
	v, ok := c[field]
	if !ok || v == nil {
		return []entity.ServiceItem{}
	}
	list, ok := v.([]any)
	if !ok {
		return []entity.ServiceItem{}
	}
	out := make([]entity.ServiceItem, 0, len(list))
	for _, e := range list {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		item := llm.FieldCandidate(m)
		out = append(out, entity.ServiceItem{
			Service: str(item, "service"),
			Cost:    amount(item, "cost"),
		})
	}
	return out
}
