package query

import (
	"iter"
	"net/url"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/vegasq/qsift/policy"
)

// Query-string parameter names read by ParseRequest.
const (
	ParamFilter   = "filter"
	ParamSort     = "sort"
	ParamPage     = "page"
	ParamPageSize = "pageSize"
)

// Request is the raw query input of one call. Nil Page or PageSize means the
// caller did not ask for one.
type Request struct {
	Filter   string
	Sort     string
	Page     *int
	PageSize *int
}

// ParseRequest reads a Request from URL query values. Repeated filter or
// sort parameters are joined with commas, so repeated filters are ANDed.
func ParseRequest(values url.Values) (Request, error) {
	req := Request{
		Filter: strings.Join(values[ParamFilter], ","),
		Sort:   strings.Join(values[ParamSort], ","),
	}

	var err error
	if req.Page, err = intParam(values, ParamPage); err != nil {
		return Request{}, err
	}
	if req.PageSize, err = intParam(values, ParamPageSize); err != nil {
		return Request{}, err
	}
	return req, nil
}

func intParam(values url.Values, name string) (*int, error) {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidArgument, "%s %q is not an integer", name, raw)
	}
	return &n, nil
}

// Plan is a parsed, validated and compiled request, ready to run against any
// number of record sequences.
type Plan[T any] struct {
	Filter FilterQuery
	Sort   SortQuery
	Page   Page

	predicate Predicate[T]
	order     Comparator[T]
}

// Prepare parses, validates and compiles req against p, in that order. Any
// error rejects the whole request.
func Prepare[T any](req Request, p *policy.Policy[T]) (*Plan[T], error) {
	fq, err := ParseFilter(req.Filter)
	if err != nil {
		return nil, errors.Wrap(err, ParamFilter)
	}
	sq, err := ParseSort(req.Sort)
	if err != nil {
		return nil, errors.Wrap(err, ParamSort)
	}

	if err := ValidateFilter(fq, p); err != nil {
		return nil, err
	}
	if err := ValidateSort(sq, p); err != nil {
		return nil, err
	}
	page, err := ValidatePaging(req.Page, req.PageSize, p)
	if err != nil {
		return nil, err
	}

	plan := &Plan[T]{Filter: fq, Sort: sq, Page: page}
	if len(fq.Nodes) > 0 {
		if plan.predicate, err = CompileFilter(fq, p); err != nil {
			return nil, err
		}
	}
	if len(sq.Nodes) > 0 {
		if plan.order, err = CompileSort(sq, p); err != nil {
			return nil, err
		}
	}
	return plan, nil
}

// Apply returns the deferred results of the plan over records.
func (pl *Plan[T]) Apply(records iter.Seq[T]) *Results[T] {
	return Apply(records, pl.predicate, pl.order, pl.Page)
}
