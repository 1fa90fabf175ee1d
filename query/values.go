package query

import (
	"bytes"
	"cmp"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/vegasq/qsift/policy"
)

// timeLayouts are tried in order when a literal or a string record value is
// read as a time.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
	"1/2/2006",
}

// convertLiteral parses a query literal into the Go type of kind.
func convertLiteral(kind policy.Kind, raw string) (any, error) {
	var (
		v   any
		err error
	)
	switch kind {
	case policy.KindString:
		return raw, nil
	case policy.KindInt:
		v, err = strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	case policy.KindFloat:
		v, err = strconv.ParseFloat(strings.TrimSpace(raw), 64)
	case policy.KindBool:
		v, err = strconv.ParseBool(strings.TrimSpace(raw))
	case policy.KindTime:
		v, err = parseTime(raw)
	case policy.KindUUID:
		v, err = uuid.Parse(strings.TrimSpace(raw))
	default:
		err = errors.Newf("unsupported kind %s", kind)
	}
	if err != nil {
		return nil, errors.Wrapf(ErrValueConversion, "%q is not a valid %s", raw, kind)
	}
	return v, nil
}

// coerce converts a value read from a record into the Go type of kind.
// Nil, including nil pointers, stays nil.
func coerce(kind policy.Kind, v any) (any, error) {
	v = deref(v)
	if v == nil {
		return nil, nil
	}

	var ok bool
	var out any
	switch kind {
	case policy.KindString:
		out, ok = toString(v)
	case policy.KindInt:
		out, ok = toInt64(v)
	case policy.KindFloat:
		out, ok = toFloat64(v)
	case policy.KindBool:
		out, ok = toBool(v)
	case policy.KindTime:
		out, ok = toTime(v)
	case policy.KindUUID:
		out, ok = toUUID(v)
	}
	if !ok {
		return nil, errors.Wrapf(ErrValueConversion, "cannot read %T as %s", v, kind)
	}
	return out, nil
}

// deref follows pointers so optional struct fields compare like plain ones.
func deref(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	return rv.Interface()
}

// compareTyped compares two values already converted to kind.
func compareTyped(kind policy.Kind, a, b any) int {
	switch kind {
	case policy.KindInt:
		return cmp.Compare(a.(int64), b.(int64))
	case policy.KindFloat:
		return cmp.Compare(a.(float64), b.(float64))
	case policy.KindString:
		return strings.Compare(a.(string), b.(string))
	case policy.KindBool:
		x, y := a.(bool), b.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1 // false < true
		default:
			return 1
		}
	case policy.KindTime:
		return a.(time.Time).Compare(b.(time.Time))
	case policy.KindUUID:
		x, y := a.(uuid.UUID), b.(uuid.UUID)
		return bytes.Compare(x[:], y[:])
	default:
		return 0
	}
}

// toInt64 converts any integer type to int64
func toInt64(v any) (int64, bool) {
	switch val := v.(type) {
	case int:
		return int64(val), true
	case int8:
		return int64(val), true
	case int16:
		return int64(val), true
	case int32:
		return int64(val), true
	case int64:
		return val, true
	case uint:
		return uintToInt64(uint64(val))
	case uint8:
		return int64(val), true
	case uint16:
		return int64(val), true
	case uint32:
		return int64(val), true
	case uint64:
		return uintToInt64(val)
	default:
		return 0, false
	}
}

func uintToInt64(v uint64) (int64, bool) {
	if v > math.MaxInt64 {
		return 0, false
	}
	return int64(v), true
}

// toFloat64 converts a numeric value to float64
func toFloat64(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	default:
		if i, ok := toInt64(v); ok {
			return float64(i), true
		}
		return 0, false
	}
}

// toString accepts strings, byte slices and Stringers
func toString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case []byte:
		return string(val), true
	case fmt.Stringer:
		return val.String(), true
	default:
		return "", false
	}
}

func toBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

func toTime(v any) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, true
	case string:
		t, err := parseTime(val)
		return t, err == nil
	default:
		return time.Time{}, false
	}
}

func toUUID(v any) (uuid.UUID, bool) {
	switch val := v.(type) {
	case uuid.UUID:
		return val, true
	case [16]byte:
		return uuid.UUID(val), true
	case []byte:
		id, err := uuid.FromBytes(val)
		return id, err == nil
	case string:
		id, err := uuid.Parse(val)
		return id, err == nil
	default:
		return uuid.UUID{}, false
	}
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Newf("unrecognized time %q", s)
}
