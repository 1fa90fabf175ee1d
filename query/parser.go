package query

import (
	"iter"
	"strings"

	"github.com/cockroachdb/errors"
)

const (
	nodeSeparator  = ','
	valueSeparator = '|'
)

// ParseFilterSeq lazily parses a filter string such as
//
//	name=Amy|Joe,age|posts>20,text=hello\, world!
//
// Nothing is parsed until the sequence is ranged over. The first malformed
// node yields an ErrParameterParsing error and ends the sequence, so callers
// that only build the sequence never see the error.
func ParseFilterSeq(raw string) iter.Seq2[FilterNode, error] {
	return func(yield func(FilterNode, error) bool) {
		if err := ValidateQuery(raw); err != nil {
			yield(FilterNode{}, err)
			return
		}

		count := 0
		for term := range Split(raw, nodeSeparator) {
			if count++; count > MaxNodes {
				yield(FilterNode{}, errors.Wrapf(ErrParameterParsing, "too many filter nodes (max %d)", MaxNodes))
				return
			}
			node, err := parseFilterNode(term)
			if !yield(node, err) || err != nil {
				return
			}
		}
	}
}

// ParseFilter parses a whole filter string. An empty string is an empty query.
func ParseFilter(raw string) (FilterQuery, error) {
	var q FilterQuery
	for node, err := range ParseFilterSeq(raw) {
		if err != nil {
			return FilterQuery{}, err
		}
		q.Nodes = append(q.Nodes, node)
	}
	return q, nil
}

// parseFilterNode splits one node into its property segment, operator and
// value segment.
func parseFilterNode(raw string) (FilterNode, error) {
	pos, token, op, ok := findOperator(raw)
	if !ok {
		return FilterNode{}, errors.Wrapf(ErrParameterParsing, "filter node %q has no operator", raw)
	}

	propSeg, valSeg := raw[:pos], raw[pos+len(token):]
	if propSeg == "" {
		return FilterNode{}, errors.Wrapf(ErrParameterParsing, "filter node %q has no property", raw)
	}
	if valSeg == "" {
		return FilterNode{}, errors.Wrapf(ErrParameterParsing, "filter node %q has no value", raw)
	}

	node := FilterNode{
		Raw:         raw,
		RawOperator: token,
		Operator:    op,
		Negated:     op == DoesNotEqual,
	}
	for prop := range Split(propSeg, valueSeparator) {
		name := Unescape(prop, valueSeparator, nodeSeparator)
		if strings.TrimSpace(name) == "" {
			return FilterNode{}, errors.Wrapf(ErrParameterParsing, "filter node %q has an empty property name", raw)
		}
		if err := ValidatePropertyName(name); err != nil {
			return FilterNode{}, err
		}
		node.Properties = append(node.Properties, name)
	}
	for value := range Split(valSeg, valueSeparator) {
		node.Values = append(node.Values, Unescape(value, valueSeparator, nodeSeparator))
	}
	return node, nil
}

// findOperator returns the leftmost unescaped operator token in s. At each
// position the two-character tokens are tried before the one-character ones.
func findOperator(s string) (int, string, Operator, bool) {
	for i := 0; i < len(s); i++ {
		if escaped(s, i) {
			continue
		}
		for _, t := range operatorTokens {
			if strings.HasPrefix(s[i:], t.token) {
				return i, t.token, t.op, true
			}
		}
	}
	return 0, "", 0, false
}
