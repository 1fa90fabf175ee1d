package query

import (
	"iter"
	"slices"
)

// Results is a filtered, sorted and paged view of a record sequence.
//
// Building a Results does nothing: the source is not read, the predicate and
// comparator are not called and no error can occur. Work happens, and errors
// surface, only when the view is forced with All, Collect or CollectPage.
type Results[T any] struct {
	source iter.Seq[T]
	filter Predicate[T]
	order  Comparator[T]
	page   Page
}

// Apply builds the deferred view. A nil filter keeps every record, a nil
// order keeps source order and a disabled page keeps every record.
func Apply[T any](records iter.Seq[T], filter Predicate[T], order Comparator[T], page Page) *Results[T] {
	return &Results[T]{source: records, filter: filter, order: order, page: page}
}

// PageResult is a forced page plus the number of records that matched the
// filter before paging.
type PageResult[T any] struct {
	Items []T
	Total int
	Page  Page
}

// All forces the view. The first error is yielded once and ends the
// sequence. Without an order records stream straight from the source;
// with one, matching records are buffered and stably sorted first.
func (r *Results[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		if r.order == nil {
			skip, take := r.window()
			for rec, err := range r.matching() {
				if err != nil {
					yield(zero, err)
					return
				}
				if skip > 0 {
					skip--
					continue
				}
				if !yield(rec, nil) {
					return
				}
				if take > 0 {
					if take--; take == 0 {
						return
					}
				}
			}
			return
		}

		sorted, err := r.sorted()
		if err != nil {
			yield(zero, err)
			return
		}
		for _, rec := range r.applyPage(sorted) {
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// Collect forces the view into a slice.
func (r *Results[T]) Collect() ([]T, error) {
	out := make([]T, 0)
	for rec, err := range r.All() {
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// CollectPage forces the whole filtered set to count it, then returns the
// requested page of it.
func (r *Results[T]) CollectPage() (PageResult[T], error) {
	var (
		rows []T
		err  error
	)
	if r.order != nil {
		rows, err = r.sorted()
	} else {
		rows, err = r.filtered()
	}
	if err != nil {
		return PageResult[T]{}, err
	}
	return PageResult[T]{Items: r.applyPage(rows), Total: len(rows), Page: r.page}, nil
}

func (r *Results[T]) matching() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		for rec := range r.source {
			if r.filter != nil {
				ok, err := r.filter(rec)
				if err != nil {
					yield(zero, err)
					return
				}
				if !ok {
					continue
				}
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

func (r *Results[T]) filtered() ([]T, error) {
	rows := make([]T, 0)
	for rec, err := range r.matching() {
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func (r *Results[T]) sorted() ([]T, error) {
	rows, err := r.filtered()
	if err != nil {
		return nil, err
	}

	var sortErr error
	slices.SortStableFunc(rows, func(a, b T) int {
		if sortErr != nil {
			return 0
		}
		c, err := r.order(a, b)
		if err != nil {
			sortErr = err
			return 0
		}
		return c
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return rows, nil
}

// window returns how many records to skip and take; take is -1 when
// paging is off.
func (r *Results[T]) window() (int, int) {
	if !r.page.Enabled {
		return 0, -1
	}
	return r.page.Offset(), r.page.Size
}

// applyPage slices rows to the page
func (r *Results[T]) applyPage(rows []T) []T {
	skip, take := r.window()
	if take < 0 {
		return rows
	}
	if skip < 0 || skip >= len(rows) {
		return rows[:0]
	}
	end := skip + take
	if end > len(rows) {
		end = len(rows)
	}
	return rows[skip:end]
}
