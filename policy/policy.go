// Package policy declares which properties of an entity can be queried and how.
//
// An Entity is configured once at startup with the fluent builder and then
// resolved against global Options into an immutable Policy. A Policy is safe
// to share between goroutines; the query package only ever reads it.
//
//	users := policy.NewEntity[User]("users").
//	    CanFilter().CanSort().CanPage().
//	    HasDefaultPageSize(10).
//	    HasMaxPageSize(50)
//	users.Property("age", policy.KindInt, func(u User) any { return u.Age }).Filterable().Sortable()
//
//	p, err := users.Resolve(policy.DefaultOptions(), policy.Overrides{})
package policy

import (
	"sort"
	"strings"
)

// Accessor reads one property value from a record.
type Accessor[T any] func(record T) any

// Field returns an accessor reading key from map-shaped records.
// A missing key reads as nil.
func Field(key string) Accessor[map[string]any] {
	return func(record map[string]any) any {
		return record[key]
	}
}

// Property describes one queryable property of an entity.
type Property[T any] struct {
	Name       string
	Kind       Kind
	Filterable bool
	Sortable   bool
	Get        Accessor[T]
}

// Options holds the global defaults used when an entity leaves a setting unset.
type Options struct {
	FilteringEnabled bool
	SortingEnabled   bool
	PagingEnabled    bool
	DefaultPageSize  int
	MaximumPageSize  int
}

// DefaultOptions enables every capability with a page size of 10 and a
// maximum of 100.
func DefaultOptions() Options {
	return Options{
		FilteringEnabled: true,
		SortingEnabled:   true,
		PagingEnabled:    true,
		DefaultPageSize:  10,
		MaximumPageSize:  100,
	}
}

// Policy is the resolved, read-only query policy of one entity.
type Policy[T any] struct {
	entity          string
	filtering       bool
	sorting         bool
	paging          bool
	defaultPageSize int
	maximumPageSize int
	properties      map[string]Property[T]
	order           []string
}

// Entity returns the entity name the policy was built for.
func (p *Policy[T]) Entity() string { return p.entity }

// FilteringEnabled reports whether requests may carry a filter.
func (p *Policy[T]) FilteringEnabled() bool { return p.filtering }

// SortingEnabled reports whether requests may carry a sort.
func (p *Policy[T]) SortingEnabled() bool { return p.sorting }

// PagingEnabled reports whether results are paged.
func (p *Policy[T]) PagingEnabled() bool { return p.paging }

// DefaultPageSize is the page size used when a request names none.
func (p *Policy[T]) DefaultPageSize() int { return p.defaultPageSize }

// MaximumPageSize is the largest page size a request may ask for.
func (p *Policy[T]) MaximumPageSize() int { return p.maximumPageSize }

// Property looks up a declared property. Names match case-insensitively.
func (p *Policy[T]) Property(name string) (Property[T], bool) {
	prop, ok := p.properties[strings.ToLower(name)]
	return prop, ok
}

// Properties returns the declared properties in declaration order.
func (p *Policy[T]) Properties() []Property[T] {
	props := make([]Property[T], 0, len(p.order))
	for _, key := range p.order {
		props = append(props, p.properties[key])
	}
	return props
}

// Names returns the declared property names sorted alphabetically.
func (p *Policy[T]) Names() []string {
	names := make([]string, 0, len(p.order))
	for _, key := range p.order {
		names = append(names, p.properties[key].Name)
	}
	sort.Strings(names)
	return names
}
