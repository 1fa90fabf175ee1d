package query

import (
	"iter"
	"strings"

	"github.com/cockroachdb/errors"
)

// ParseSortSeq lazily parses a sort string such as "age desc,name".
//
// Each term is a property name optionally followed by whitespace and asc or
// desc (any case). A missing direction means ascending.
func ParseSortSeq(raw string) iter.Seq2[SortNode, error] {
	return func(yield func(SortNode, error) bool) {
		if err := ValidateQuery(raw); err != nil {
			yield(SortNode{}, err)
			return
		}

		count := 0
		for term := range SplitUnescaped(raw, nodeSeparator) {
			if count++; count > MaxNodes {
				yield(SortNode{}, errors.Wrapf(ErrParameterParsing, "too many sort nodes (max %d)", MaxNodes))
				return
			}
			node, err := parseSortNode(term)
			if !yield(node, err) || err != nil {
				return
			}
		}
	}
}

// ParseSort parses a whole sort string. An empty string is an empty query.
func ParseSort(raw string) (SortQuery, error) {
	var q SortQuery
	for node, err := range ParseSortSeq(raw) {
		if err != nil {
			return SortQuery{}, err
		}
		q.Nodes = append(q.Nodes, node)
	}
	return q, nil
}

func parseSortNode(term string) (SortNode, error) {
	fields := strings.Fields(term)
	switch len(fields) {
	case 0:
		return SortNode{}, errors.Wrap(ErrParameterParsing, "empty sort term")
	case 1:
		return newSortNode(fields[0], Ascending)
	case 2:
		switch strings.ToLower(fields[1]) {
		case "asc":
			return newSortNode(fields[0], Ascending)
		case "desc":
			return newSortNode(fields[0], Descending)
		default:
			return SortNode{}, errors.Wrapf(ErrParameterParsing, "sort term %q: unknown direction %q", term, fields[1])
		}
	default:
		return SortNode{}, errors.Wrapf(ErrParameterParsing, "sort term %q: expected \"name [asc|desc]\"", term)
	}
}

func newSortNode(name string, dir Direction) (SortNode, error) {
	if err := ValidatePropertyName(name); err != nil {
		return SortNode{}, err
	}
	return SortNode{Name: name, Direction: dir}, nil
}
