package query

import (
	"math"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/vegasq/qsift/policy"
)

// Validation limits to keep a single request from exhausting resources.
const (
	// MaxQueryLength is the maximum allowed length of a filter or sort string (64KB)
	MaxQueryLength = 64 * 1024

	// MaxNodes is the maximum number of comma-separated nodes in one string
	MaxNodes = 1000

	// MaxPropertyNameLength is the maximum length for a property name
	MaxPropertyNameLength = 256
)

// ValidateQuery checks the raw length of a filter or sort string.
func ValidateQuery(raw string) error {
	if len(raw) > MaxQueryLength {
		return errors.Wrapf(ErrParameterParsing, "query too long: %d bytes (max %d)", len(raw), MaxQueryLength)
	}
	return nil
}

// ValidatePropertyName checks the length of a property name.
func ValidatePropertyName(name string) error {
	if len(name) > MaxPropertyNameLength {
		return errors.Wrapf(ErrParameterParsing, "property name too long: %d chars (max %d)", len(name), MaxPropertyNameLength)
	}
	return nil
}

// ValidateFilter checks a parsed filter against the entity policy. The first
// failing node decides the error. An empty query is always valid.
func ValidateFilter[T any](q FilterQuery, p *policy.Policy[T]) error {
	if len(q.Nodes) == 0 {
		return nil
	}
	if !p.FilteringEnabled() {
		return errors.Wrapf(ErrCapabilityDisabled, "filtering is disabled for %s", p.Entity())
	}

	for _, node := range q.Nodes {
		if len(node.Properties) == 0 || len(node.Values) == 0 {
			return errors.Wrapf(ErrParameterParsing, "filter node %q needs at least one property and one value", node.Raw)
		}
		for _, name := range node.Properties {
			prop, err := lookupProperty(p, name)
			if err != nil {
				return err
			}
			if !prop.Filterable {
				return errors.Wrapf(ErrCapabilityDisabled, "property %q cannot be filtered", prop.Name)
			}
			if node.Operator.Ordering() && !prop.Kind.Orderable() {
				return errors.WithHint(
					errors.Wrapf(ErrUnsupportedOperator, "operator %s on %s property %q", node.RawOperator, prop.Kind, prop.Name),
					"only = and != apply to this property",
				)
			}
		}
	}
	return nil
}

// ValidateSort checks a parsed sort against the entity policy.
func ValidateSort[T any](q SortQuery, p *policy.Policy[T]) error {
	if len(q.Nodes) == 0 {
		return nil
	}
	if !p.SortingEnabled() {
		return errors.Wrapf(ErrCapabilityDisabled, "sorting is disabled for %s", p.Entity())
	}

	for _, node := range q.Nodes {
		prop, err := lookupProperty(p, node.Name)
		if err != nil {
			return err
		}
		if !prop.Sortable {
			return errors.Wrapf(ErrCapabilityDisabled, "property %q cannot be sorted", prop.Name)
		}
	}
	return nil
}

// Page is a resolved paging request.
type Page struct {
	Number  int
	Size    int
	Enabled bool
}

// Offset returns the number of records before the page. It saturates at
// math.MaxInt instead of wrapping.
func (pg Page) Offset() int {
	if pg.Number <= 1 || pg.Size <= 0 {
		return 0
	}
	if pg.Number-1 > math.MaxInt/pg.Size {
		return math.MaxInt
	}
	return (pg.Number - 1) * pg.Size
}

// ValidatePaging resolves the requested page number and size against the
// policy. Nil means "not requested". Oversized pages are rejected, never
// clamped.
func ValidatePaging[T any](number, size *int, p *policy.Policy[T]) (Page, error) {
	def, maxSize := p.DefaultPageSize(), p.MaximumPageSize()

	if !p.PagingEnabled() {
		if size != nil && *size != def {
			return Page{}, errors.Wrapf(ErrCapabilityDisabled, "paging is disabled for %s", p.Entity())
		}
		if number != nil && *number != 1 {
			return Page{}, errors.Wrapf(ErrCapabilityDisabled, "paging is disabled for %s", p.Entity())
		}
		return Page{Number: 1, Size: def}, nil
	}

	if def > maxSize {
		return Page{}, errors.Wrapf(ErrInvalidArgument, "default page size %d exceeds maximum %d for %s", def, maxSize, p.Entity())
	}

	pg := Page{Number: 1, Size: def, Enabled: true}
	if size != nil {
		switch {
		case *size < 1:
			return Page{}, errors.Wrapf(ErrInvalidArgument, "page size %d is less than 1", *size)
		case *size > maxSize:
			return Page{}, errors.WithHintf(
				errors.Wrapf(ErrPageSizeExceeded, "page size %d", *size),
				"the maximum page size for %s is %d", p.Entity(), maxSize,
			)
		}
		pg.Size = *size
	}
	if number != nil {
		if *number < 1 {
			return Page{}, errors.Wrapf(ErrInvalidArgument, "page number %d is less than 1", *number)
		}
		if *number-1 > math.MaxInt/pg.Size {
			return Page{}, errors.Wrapf(ErrInvalidArgument, "page number %d with page size %d is out of range", *number, pg.Size)
		}
		pg.Number = *number
	}
	return pg, nil
}

func lookupProperty[T any](p *policy.Policy[T], name string) (policy.Property[T], error) {
	prop, ok := p.Property(name)
	if !ok {
		return prop, errors.WithHintf(
			errors.Wrapf(ErrUnknownProperty, "property %q is not declared on %s", name, p.Entity()),
			"declared properties: %s", strings.Join(p.Names(), ", "),
		)
	}
	return prop, nil
}
