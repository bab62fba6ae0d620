package qdrant

import "strings"

// Filter is a payload filter in qdrant's must / must_not form.
type Filter struct {
	Must    []Condition
	MustNot []Condition
}

// Condition matches one payload key against a single value or any of several.
type Condition struct {
	Key   string
	Value any
	Any   []string
}

func MatchValue(key string, value any) Condition {
	return Condition{Key: key, Value: value}
}

func MatchAny(key string, values ...string) Condition {
	return Condition{Key: key, Any: values}
}

func (f *Filter) empty() bool {
	return f == nil || (len(f.Must) == 0 && len(f.MustNot) == 0)
}

func (f *Filter) validate(op string) error {
	if f == nil {
		return nil
	}
	for _, group := range [][]Condition{f.Must, f.MustNot} {
		for _, c := range group {
			if strings.TrimSpace(c.Key) == "" {
				return opErr(op, OperationErrorValidation, "filter condition key is required", nil)
			}
			if c.Value == nil && len(c.Any) == 0 {
				return opErr(op, OperationErrorValidation, "filter condition for "+c.Key+" has no value", nil)
			}
		}
	}
	return nil
}

// asMap renders the filter, adding a namespace condition when ns is non-empty.
func (f *Filter) asMap(ns string) map[string]any {
	var must, mustNot []any
	if ns != "" {
		must = append(must, MatchValue(payloadNamespaceKey, ns).asMap())
	}
	if f != nil {
		for _, c := range f.Must {
			must = append(must, c.asMap())
		}
		for _, c := range f.MustNot {
			mustNot = append(mustNot, c.asMap())
		}
	}
	if len(must) == 0 && len(mustNot) == 0 {
		return nil
	}
	out := map[string]any{}
	if len(must) > 0 {
		out["must"] = must
	}
	if len(mustNot) > 0 {
		out["must_not"] = mustNot
	}
	return out
}

func (c Condition) asMap() map[string]any {
	if len(c.Any) > 0 {
		return map[string]any{"key": c.Key, "match": map[string]any{"any": c.Any}}
	}
	return map[string]any{"key": c.Key, "match": map[string]any{"value": c.Value}}
}
