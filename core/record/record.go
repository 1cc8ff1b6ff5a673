package record

import (
	"time"
)

// Record is a single row crossing the record store boundary.
// Canonical records use camelCased keys; persisted records use snake_cased keys.
type Record map[string]interface{}

// Copy returns a shallow copy of the record; nested records are not aliased
// by the store implementations, which always hand out fresh maps.
func (r Record) Copy() Record {
	cp := make(Record, len(r))
	for k, v := range r {
		cp[k] = v
	}
	return cp
}

// String reads a string value, tolerating the []byte the SQL driver may return.
func (r Record) String(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	}
	return ""
}

// Int reads an integer value, tolerating the int64/float64 the SQL driver and
// JSON decoding may return.
func (r Record) Int(key string) int {
	switch v := r[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// Time reads a timestamp value, tolerating RFC3339 strings.
func (r Record) Time(key string) time.Time {
	switch v := r[key].(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
