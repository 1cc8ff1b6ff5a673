package record

import (
	"github.com/iancoleman/strcase"
)

// The record store speaks snake_cased keys; everything in-memory speaks
// camelCased keys. ToCanonical and ToPersisted translate whole records between
// the two conventions, recursing into nested records and sequences of records
// but never into scalar string values.
//
// Both are total and lossless: a key whose conversion does not round-trip back
// to itself is considered malformed, passed through unchanged and reported in
// the second return value so the caller can log it.

// ToCanonical converts a persisted (snake_cased) record into its canonical
// (camelCased) form.
func ToCanonical(rec Record) (Record, []string) {
	return convert(rec, strcase.ToLowerCamel, strcase.ToSnake)
}

// ToPersisted converts a canonical (camelCased) record into its persisted
// (snake_cased) form.
func ToPersisted(rec Record) (Record, []string) {
	return convert(rec, strcase.ToSnake, strcase.ToLowerCamel)
}

func convert(rec Record, to, back func(string) string) (Record, []string) {
	if rec == nil {
		return nil, nil
	}
	out := make(Record, len(rec))
	var flagged []string
	for key, val := range rec {
		converted := to(key)
		if back(converted) != key {
			// malformed key: cannot be unambiguously converted
			flagged = append(flagged, key)
			converted = key
		}
		cVal, cFlagged := convertValue(val, to, back)
		flagged = append(flagged, cFlagged...)
		out[converted] = cVal
	}
	return out, flagged
}

func convertValue(val interface{}, to, back func(string) string) (interface{}, []string) {
	switch v := val.(type) {
	case Record:
		return convert(v, to, back)
	case map[string]interface{}:
		return convert(Record(v), to, back)
	case []Record:
		out := make([]interface{}, 0, len(v))
		var flagged []string
		for _, item := range v {
			c, f := convert(item, to, back)
			flagged = append(flagged, f...)
			out = append(out, c)
		}
		return out, flagged
	case []interface{}:
		out := make([]interface{}, 0, len(v))
		var flagged []string
		for _, item := range v {
			c, f := convertValue(item, to, back)
			flagged = append(flagged, f...)
			out = append(out, c)
		}
		return out, flagged
	}
	return val, nil
}
