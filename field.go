package effectlog

import "time"

// Field is one key/value pair of structured context. Values are opaque
// to the context; serialization concerns belong to the writer consuming
// the entry.
type Field struct {
	Key   string
	Value any
}

// String creates a string-valued field.
func String(key, val string) Field {
	return Field{Key: key, Value: val}
}

// Int creates an int-valued field.
func Int(key string, val int) Field {
	return Field{Key: key, Value: val}
}

// Int64 creates an int64-valued field.
func Int64(key string, val int64) Field {
	return Field{Key: key, Value: val}
}

// Float64 creates a float64-valued field.
func Float64(key string, val float64) Field {
	return Field{Key: key, Value: val}
}

// Bool creates a bool-valued field.
func Bool(key string, val bool) Field {
	return Field{Key: key, Value: val}
}

// Time creates a time.Time-valued field.
func Time(key string, val time.Time) Field {
	return Field{Key: key, Value: val}
}

// Duration creates a field holding the duration in milliseconds.
func Duration(key string, val time.Duration) Field {
	return Field{Key: key, Value: float64(val) / float64(time.Millisecond)}
}

// Any creates a field with an arbitrary value.
func Any(key string, val any) Field {
	return Field{Key: key, Value: val}
}
