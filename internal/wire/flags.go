package wire

import (
	"encoding/json"
	"reflect"
	"strconv"

	"github.com/gyaneshwarpardhi/trackwire/internal/numeric"
)

// flagKind discriminates the shapes a custom flag value may take.
type flagKind int

const (
	flagOther flagKind = iota
	flagScalar
	flagSequence
)

func classifyFlag(v interface{}) flagKind {
	if _, ok := scalarString(v); ok {
		return flagScalar
	}
	if v == nil {
		return flagOther
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return flagSequence
	}
	return flagOther
}

// scalarString stringifies numbers, strings and booleans. Anything else is rejected.
func scalarString(v interface{}) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case bool:
		return strconv.FormatBool(s), true
	case int:
		return strconv.FormatInt(int64(s), 10), true
	case int8:
		return strconv.FormatInt(int64(s), 10), true
	case int16:
		return strconv.FormatInt(int64(s), 10), true
	case int32:
		return strconv.FormatInt(int64(s), 10), true
	case int64:
		return strconv.FormatInt(s, 10), true
	case uint:
		return strconv.FormatUint(uint64(s), 10), true
	case uint8:
		return strconv.FormatUint(uint64(s), 10), true
	case uint16:
		return strconv.FormatUint(uint64(s), 10), true
	case uint32:
		return strconv.FormatUint(uint64(s), 10), true
	case uint64:
		return strconv.FormatUint(s, 10), true
	case float32:
		return numeric.Format(float64(s)), true
	case float64:
		return numeric.Format(s), true
	case json.Number:
		if f, ok := numeric.Parse(s); ok {
			return numeric.Format(f), true
		}
	}
	return "", false
}

// EncodeCustomFlags normalizes caller-supplied flags into name → string values.
// Unsupported values are dropped; a flag left with no values is omitted.
func EncodeCustomFlags(flags map[string]interface{}) map[string][]string {
	out := make(map[string][]string, len(flags))
	for name, v := range flags {
		var values []string
		switch classifyFlag(v) {
		case flagScalar:
			s, _ := scalarString(v)
			values = append(values, s)
		case flagSequence:
			rv := reflect.ValueOf(v)
			for i := 0; i < rv.Len(); i++ {
				if s, ok := scalarString(rv.Index(i).Interface()); ok {
					values = append(values, s)
				}
			}
		}
		if len(values) > 0 {
			out[name] = values
		}
	}
	return out
}
