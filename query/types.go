package query

import "fmt"

// Operator is a filter comparison operator.
type Operator int

const (
	Equals Operator = iota
	DoesNotEqual
	GreaterThan
	GreaterThanOrEqual
	LessThan
	LessThanOrEqual
)

// operatorTokens lists the recognized tokens in matching precedence: the
// two-character tokens come first so ">=" is never read as ">" then "=".
var operatorTokens = []struct {
	token string
	op    Operator
}{
	{"!=", DoesNotEqual},
	{">=", GreaterThanOrEqual},
	{"<=", LessThanOrEqual},
	{"=", Equals},
	{">", GreaterThan},
	{"<", LessThan},
}

// Token returns the query-string token of the operator.
func (o Operator) Token() string {
	for _, t := range operatorTokens {
		if t.op == o {
			return t.token
		}
	}
	return "?"
}

func (o Operator) String() string {
	switch o {
	case Equals:
		return "Equals"
	case DoesNotEqual:
		return "DoesNotEqual"
	case GreaterThan:
		return "GreaterThan"
	case GreaterThanOrEqual:
		return "GreaterThanOrEqual"
	case LessThan:
		return "LessThan"
	case LessThanOrEqual:
		return "LessThanOrEqual"
	default:
		return fmt.Sprintf("Operator(%d)", int(o))
	}
}

// Ordering reports whether the operator needs an orderable value kind.
func (o Operator) Ordering() bool {
	switch o {
	case GreaterThan, GreaterThanOrEqual, LessThan, LessThanOrEqual:
		return true
	default:
		return false
	}
}

// FilterNode is one comma-separated clause of a filter string.
//
// Properties and Values are unescaped; Raw is the clause exactly as it
// appeared in the query string.
type FilterNode struct {
	Raw         string
	Properties  []string
	Values      []string
	RawOperator string
	Operator    Operator
	Negated     bool
}

// FilterQuery is a conjunction of filter nodes.
type FilterQuery struct {
	Nodes []FilterNode
}

// Direction is a sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// SortNode is one key of a sort string.
type SortNode struct {
	Name      string
	Direction Direction
}

// SortQuery is an ordered list of sort keys, primary key first.
type SortQuery struct {
	Nodes []SortNode
}

// Predicate reports whether a record passes a compiled filter.
type Predicate[T any] func(record T) (bool, error)

// Comparator orders two records: negative when a sorts before b, zero when
// they are equal on every key, positive otherwise.
type Comparator[T any] func(a, b T) (int, error)
