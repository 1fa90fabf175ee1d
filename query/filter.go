package query

import (
	"github.com/cockroachdb/errors"

	"github.com/vegasq/qsift/policy"
)

// propertyTest is one property of a node together with every literal of the
// node, already converted to the property kind.
type propertyTest[T any] struct {
	prop   policy.Property[T]
	values []any
}

// compiledNode is the disjunction of properties x values for one node.
type compiledNode[T any] struct {
	raw   string
	op    Operator
	tests []propertyTest[T]
}

// CompileFilter turns a validated filter into a predicate.
//
// Within a node the predicate is true when any property matches any value;
// across nodes every node must be true, evaluated in order and stopping at the
// first false node. Accessors and literals are resolved here once, so a literal
// that does not fit the property kind fails with ErrValueConversion now, while
// record values that do not fit fail when the predicate is called.
//
// The query must have passed ValidateFilter against the same policy.
func CompileFilter[T any](q FilterQuery, p *policy.Policy[T]) (Predicate[T], error) {
	nodes := make([]compiledNode[T], 0, len(q.Nodes))
	for _, node := range q.Nodes {
		cn := compiledNode[T]{raw: node.Raw, op: node.Operator}
		for _, name := range node.Properties {
			prop, err := lookupProperty(p, name)
			if err != nil {
				return nil, err
			}
			test := propertyTest[T]{prop: prop, values: make([]any, 0, len(node.Values))}
			for _, raw := range node.Values {
				v, err := convertLiteral(prop.Kind, raw)
				if err != nil {
					return nil, errors.Wrapf(err, "filter node %q", node.Raw)
				}
				test.values = append(test.values, v)
			}
			cn.tests = append(cn.tests, test)
		}
		nodes = append(nodes, cn)
	}

	return func(record T) (bool, error) {
		for i := range nodes {
			ok, err := nodes[i].match(record)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	}, nil
}

func (n *compiledNode[T]) match(record T) (bool, error) {
	for _, test := range n.tests {
		v, err := coerce(test.prop.Kind, test.prop.Get(record))
		if err != nil {
			return false, errors.Wrapf(err, "property %q", test.prop.Name)
		}
		for _, literal := range test.values {
			if compare(test.prop.Kind, v, n.op, literal) {
				return true, nil
			}
		}
	}
	return false, nil
}

// compare applies op to a record value and a literal of the same kind. A nil
// record value only satisfies !=.
func compare(kind policy.Kind, left any, op Operator, right any) bool {
	if left == nil {
		return op == DoesNotEqual
	}

	c := compareTyped(kind, left, right)
	switch op {
	case Equals:
		return c == 0
	case DoesNotEqual:
		return c != 0
	case GreaterThan:
		return c > 0
	case GreaterThanOrEqual:
		return c >= 0
	case LessThan:
		return c < 0
	case LessThanOrEqual:
		return c <= 0
	default:
		return false
	}
}
