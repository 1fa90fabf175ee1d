package policy

import (
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	// ErrInvalidPageSize is returned when a configured page size is below 1.
	ErrInvalidPageSize = errors.New("page size cannot be less than 1")

	// ErrInvalidProperty is returned for empty, nested or accessor-less properties.
	ErrInvalidProperty = errors.New("invalid property")
)

// Entity is the fluent builder for one entity's policy.
//
// Builder errors are kept and reported by Resolve so calls can be chained.
type Entity[T any] struct {
	name            string
	filtering       *bool
	sorting         *bool
	paging          *bool
	defaultPageSize int
	maximumPageSize int
	properties      []*Property[T]
	err             error
}

// NewEntity starts a policy for the named entity.
func NewEntity[T any](name string) *Entity[T] {
	return &Entity[T]{name: name}
}

// Name returns the entity name.
func (e *Entity[T]) Name() string { return e.name }

// CanFilter sets whether the entity accepts filters. No argument means true.
func (e *Entity[T]) CanFilter(enabled ...bool) *Entity[T] {
	e.filtering = flag(enabled)
	return e
}

// CanSort sets whether the entity accepts sorts. No argument means true.
func (e *Entity[T]) CanSort(enabled ...bool) *Entity[T] {
	e.sorting = flag(enabled)
	return e
}

// CanPage sets whether the entity pages its results. No argument means true.
func (e *Entity[T]) CanPage(enabled ...bool) *Entity[T] {
	e.paging = flag(enabled)
	return e
}

// HasDefaultPageSize sets the page size used when a request names none.
func (e *Entity[T]) HasDefaultPageSize(size int) *Entity[T] {
	if size < 1 {
		e.fail(errors.Wrapf(ErrInvalidPageSize, "%s: default", e.name))
		return e
	}
	e.defaultPageSize = size
	return e
}

// HasMaxPageSize sets the largest page size a request may ask for.
func (e *Entity[T]) HasMaxPageSize(size int) *Entity[T] {
	if size < 1 {
		e.fail(errors.Wrapf(ErrInvalidPageSize, "%s: maximum", e.name))
		return e
	}
	e.maximumPageSize = size
	return e
}

// Property declares a property, or returns the builder of an already
// declared property with the same name. Only top-level names are supported.
func (e *Entity[T]) Property(name string, kind Kind, get Accessor[T]) *PropertyBuilder[T] {
	for _, prop := range e.properties {
		if strings.EqualFold(prop.Name, name) {
			return &PropertyBuilder[T]{entity: e, prop: prop}
		}
	}

	prop := &Property[T]{Name: name, Kind: kind, Get: get}
	switch {
	case strings.TrimSpace(name) == "":
		e.fail(errors.Wrapf(ErrInvalidProperty, "%s: empty name", e.name))
	case strings.Contains(name, "."):
		e.fail(errors.Wrapf(ErrInvalidProperty, "%s: nested property %q is not supported", e.name, name))
	case get == nil:
		e.fail(errors.Wrapf(ErrInvalidProperty, "%s: property %q has no accessor", e.name, name))
	default:
		e.properties = append(e.properties, prop)
	}
	return &PropertyBuilder[T]{entity: e, prop: prop}
}

// Resolve freezes the entity into a Policy using opts for unset settings and
// overrides for per-call switches.
func (e *Entity[T]) Resolve(opts Options, overrides Overrides) (*Policy[T], error) {
	if e.err != nil {
		return nil, e.err
	}

	p := &Policy[T]{
		entity:          e.name,
		filtering:       Resolve(overrides.Filtering, e.filtering, opts.FilteringEnabled),
		sorting:         Resolve(overrides.Sorting, e.sorting, opts.SortingEnabled),
		paging:          Resolve(overrides.Paging, e.paging, opts.PagingEnabled),
		defaultPageSize: firstPositive(e.defaultPageSize, opts.DefaultPageSize),
		maximumPageSize: firstPositive(e.maximumPageSize, opts.MaximumPageSize),
		properties:      make(map[string]Property[T], len(e.properties)),
	}
	if p.defaultPageSize < 1 || p.maximumPageSize < 1 {
		return nil, errors.Wrap(ErrInvalidPageSize, e.name)
	}

	for _, prop := range e.properties {
		key := strings.ToLower(prop.Name)
		p.properties[key] = *prop
		p.order = append(p.order, key)
	}
	return p, nil
}

func (e *Entity[T]) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

// PropertyBuilder configures the capabilities of one property.
type PropertyBuilder[T any] struct {
	entity *Entity[T]
	prop   *Property[T]
}

// Filterable marks the property usable in filters. No argument means true.
func (b *PropertyBuilder[T]) Filterable(enabled ...bool) *PropertyBuilder[T] {
	b.prop.Filterable = *flag(enabled)
	return b
}

// Sortable marks the property usable in sorts. No argument means true.
func (b *PropertyBuilder[T]) Sortable(enabled ...bool) *PropertyBuilder[T] {
	b.prop.Sortable = *flag(enabled)
	return b
}

// Entity returns the owning entity builder.
func (b *PropertyBuilder[T]) Entity() *Entity[T] {
	return b.entity
}

func flag(enabled []bool) *bool {
	v := true
	if len(enabled) > 0 {
		v = enabled[0]
	}
	return &v
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
