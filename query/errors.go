package query

import (
	"github.com/cockroachdb/errors"
)

// Error taxonomy. Every error returned by this package matches exactly one of
// these with errors.Is. None of them is retryable: the whole query is rejected.
var (
	// ErrParameterParsing is returned for malformed filter or sort strings.
	ErrParameterParsing = errors.New("malformed query parameter")

	// ErrUnknownProperty is returned when a query names an undeclared property.
	ErrUnknownProperty = errors.New("unknown property")

	// ErrCapabilityDisabled is returned when filtering, sorting or paging is
	// turned off for the entity or the property.
	ErrCapabilityDisabled = errors.New("capability disabled")

	// ErrUnsupportedOperator is returned for ordering operators on properties
	// whose kind is not orderable.
	ErrUnsupportedOperator = errors.New("unsupported operator")

	// ErrPageSizeExceeded is returned when a page size above the maximum is requested.
	ErrPageSizeExceeded = errors.New("page size exceeded")

	// ErrInvalidArgument is returned for out of range paging arguments.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrValueConversion is returned when a literal or a record value cannot
	// be converted to the declared property kind.
	ErrValueConversion = errors.New("value conversion failed")
)

// IsClientError reports whether err was caused by the query input rather
// than by the host, e.g. to answer with HTTP 400.
func IsClientError(err error) bool {
	return errors.IsAny(err,
		ErrParameterParsing,
		ErrUnknownProperty,
		ErrCapabilityDisabled,
		ErrUnsupportedOperator,
		ErrPageSizeExceeded,
		ErrInvalidArgument,
		ErrValueConversion,
	)
}
