package query

import (
	"github.com/cockroachdb/errors"

	"github.com/vegasq/qsift/policy"
)

type sortKey[T any] struct {
	prop policy.Property[T]
	desc bool
}

// CompileSort turns a validated sort into a comparator. Keys are applied in
// order; a later key only breaks ties of the earlier ones. Nil values sort
// first ascending and last descending.
func CompileSort[T any](q SortQuery, p *policy.Policy[T]) (Comparator[T], error) {
	keys := make([]sortKey[T], 0, len(q.Nodes))
	for _, node := range q.Nodes {
		prop, err := lookupProperty(p, node.Name)
		if err != nil {
			return nil, err
		}
		keys = append(keys, sortKey[T]{prop: prop, desc: node.Direction == Descending})
	}

	return func(a, b T) (int, error) {
		for _, key := range keys {
			c, err := key.compare(a, b)
			if err != nil {
				return 0, err
			}
			if c != 0 {
				if key.desc {
					return -c, nil
				}
				return c, nil
			}
		}
		return 0, nil
	}, nil
}

func (k sortKey[T]) compare(a, b T) (int, error) {
	va, err := coerce(k.prop.Kind, k.prop.Get(a))
	if err != nil {
		return 0, errors.Wrapf(err, "sorting by %q", k.prop.Name)
	}
	vb, err := coerce(k.prop.Kind, k.prop.Get(b))
	if err != nil {
		return 0, errors.Wrapf(err, "sorting by %q", k.prop.Name)
	}

	switch {
	case va == nil && vb == nil:
		return 0, nil
	case va == nil:
		return -1, nil
	case vb == nil:
		return 1, nil
	}
	return compareTyped(k.prop.Kind, va, vb), nil
}
