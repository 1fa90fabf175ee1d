package policy

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Kind classifies the value type of a property.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindTime
	KindUUID
)

var kindNames = map[Kind]string{
	KindString: "string",
	KindInt:    "int",
	KindFloat:  "float",
	KindBool:   "bool",
	KindTime:   "time",
	KindUUID:   "uuid",
}

// String returns the lower-case kind name used in configuration files.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Orderable reports whether values of this kind support <, <=, > and >=.
// Every kind supports equality.
func (k Kind) Orderable() bool {
	switch k {
	case KindString, KindInt, KindFloat, KindTime:
		return true
	default:
		return false
	}
}

// ParseKind parses a kind name. Matching is case-insensitive and accepts a few
// common aliases (integer, number, boolean, timestamp, date).
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "string", "text":
		return KindString, nil
	case "int", "integer":
		return KindInt, nil
	case "float", "number", "double":
		return KindFloat, nil
	case "bool", "boolean":
		return KindBool, nil
	case "time", "timestamp", "date":
		return KindTime, nil
	case "uuid":
		return KindUUID, nil
	default:
		return 0, errors.Newf("unknown property kind %q", name)
	}
}
