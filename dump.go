package effectlog

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/go-multierror"
)

// Maximum recursion depth to prevent stack overflow
const maxDumpDepth = 10

// maxDumpElements caps how many slice/array elements are logged
const maxDumpElements = 10

// Dump logs the contents of the provided value at Debug level, one
// entry per leaf. It handles structs (exported fields), maps, slices
// and basic types, with cycle detection for pointer graphs. Writer
// failures from the emitted entries are aggregated and returned.
func (l Logger) Dump(v any) error {
	if LevelDebug < l.minLevel || l.writer == nil {
		return nil
	}
	if v == nil {
		return l.Debug("Dump: <nil>")
	}

	visited := make(map[uintptr]bool)
	var errs *multierror.Error
	l.dumpValue(v, emptyString, visited, 0, &errs)
	return errs.ErrorOrNil()
}

func (l Logger) dumpLine(msg string, errs **multierror.Error) {
	if err := l.Debug(msg); err != nil {
		*errs = multierror.Append(*errs, err)
	}
}

// dumpValue is a recursive helper function for Dump
func (l Logger) dumpValue(v any, prefix string, visited map[uintptr]bool, depth int, errs **multierror.Error) {
	if depth > maxDumpDepth {
		l.dumpLine(fmt.Sprintf("%s: <max depth reached>", prefix), errs)
		return
	}
	if v == nil {
		l.dumpLine(fmt.Sprintf("%s: <nil>", prefix), errs)
		return
	}

	val := reflect.ValueOf(v)

	// Unwrap interfaces and pointers with cycle detection. Pointer() is
	// only valid on pointer kinds.
	var unwrapped uintptr
	for {
		switch val.Kind() {
		case reflect.Interface:
			if val.IsNil() {
				l.dumpLine(fmt.Sprintf("%s: <nil>", prefix), errs)
				return
			}
			val = val.Elem()
			continue
		case reflect.Ptr:
			if val.IsNil() {
				l.dumpLine(fmt.Sprintf("%s: <nil>", prefix), errs)
				return
			}
			ptr := val.Pointer()
			if visited[ptr] {
				l.dumpLine(fmt.Sprintf("%s: <circular reference>", prefix), errs)
				return
			}
			visited[ptr] = true
			unwrapped = ptr
			val = val.Elem()
		default:
		}
		break
	}

	typ := val.Type()

	// Addressable values reachable through multiple references also get
	// cycle protection. An address recorded while unwrapping this same
	// value does not count as a revisit.
	if val.CanAddr() {
		addrPtr := val.Addr().Pointer()
		if addrPtr != unwrapped {
			if visited[addrPtr] {
				l.dumpLine(fmt.Sprintf("%s: <circular reference>", prefix), errs)
				return
			}
			visited[addrPtr] = true
		}
	}

	switch val.Kind() {
	case reflect.Struct:
		structName := typ.Name()
		if prefix == emptyString {
			l.dumpLine(fmt.Sprintf("Struct: %s", structName), errs)
		} else {
			l.dumpLine(fmt.Sprintf("%s: %s {", prefix, structName), errs)
		}

		for i := 0; i < val.NumField(); i++ {
			field := typ.Field(i)
			fieldVal := val.Field(i)

			// Skip unexported fields
			if !fieldVal.CanInterface() {
				continue
			}

			fieldPrefix := field.Name
			if prefix != emptyString {
				fieldPrefix = prefix + "." + field.Name
			}

			l.dumpValue(fieldVal.Interface(), fieldPrefix, visited, depth+1, errs)
		}

		if prefix != emptyString {
			l.dumpLine(fmt.Sprintf("%s: }", prefix), errs)
		}

	case reflect.Map:
		l.dumpLine(fmt.Sprintf("%s: map[%s]%s (len: %d) {",
			prefix, typ.Key().String(), typ.Elem().String(), val.Len()), errs)

		iter := val.MapRange()
		for iter.Next() {
			keyStr := fmt.Sprintf("%v", iter.Key().Interface())
			mapPrefix := prefix + "[" + keyStr + "]"
			l.dumpValue(iter.Value().Interface(), mapPrefix, visited, depth+1, errs)
		}

		l.dumpLine(fmt.Sprintf("%s: }", prefix), errs)

	case reflect.Slice, reflect.Array:
		l.dumpLine(fmt.Sprintf("%s: %s (len: %d, cap: %d) {",
			prefix, typ.String(), val.Len(), val.Cap()), errs)

		for i := 0; i < val.Len() && i < maxDumpElements; i++ {
			elemPrefix := fmt.Sprintf("%s[%d]", prefix, i)
			elem := val.Index(i)
			if elem.CanInterface() {
				l.dumpValue(elem.Interface(), elemPrefix, visited, depth+1, errs)
			} else {
				l.dumpValue(reflect.New(elem.Type()).Elem().Interface(), elemPrefix, visited, depth+1, errs)
			}
		}

		if val.Len() > maxDumpElements {
			l.dumpLine(fmt.Sprintf("%s: ... (%d more elements)", prefix, val.Len()-maxDumpElements), errs)
		}

		l.dumpLine(fmt.Sprintf("%s: }", prefix), errs)

	default:
		if val.IsValid() && val.CanInterface() {
			l.dumpLine(fmt.Sprintf("%s: %v", prefix, val.Interface()), errs)
		} else {
			l.dumpLine(fmt.Sprintf("%s: %v", prefix, v), errs)
		}
	}
}
