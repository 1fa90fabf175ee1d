// Package query parses, validates and applies filter, sort and paging
// requests over collections of typed records.
//
// Three small grammars are supported:
//
//	filter:   node (',' node)*
//	          node    := props op values
//	          props   := name ('|' name)*
//	          values  := value ('|' value)*
//	          op      := != | >= | <= | = | > | <
//	sort:     term (',' term)*
//	          term    := name [ws (asc|desc)]
//	paging:   page, pageSize integers
//
// A backslash escapes ',' and '|' inside names and values, so
// "text=hello\, world!" is one node with the value "hello, world!".
//
// Within a filter node every property is tested against every value and the
// node matches when any pair matches, so "age|posts>20" matches a record
// whose age or posts exceed 20 and "name=Amy|Joe" matches either name.
// Nodes are ANDed. Nested property paths and parentheses are not supported.
//
// # Pipeline
//
// Every request goes through four explicit steps:
//
//	fq, err := query.ParseFilter(raw)              // grammar, ErrParameterParsing
//	err = query.ValidateFilter(fq, pol)            // policy checks
//	pred, err := query.CompileFilter(fq, pol)      // accessors and literals resolved
//	res := query.Apply(records, pred, order, page) // deferred
//	rows, err := res.Collect()                     // work happens here
//
// Prepare runs the first three steps for a whole Request. Apply never fails:
// errors raised while reading records surface only when the results are
// forced with All, Collect or CollectPage.
//
// # Errors
//
// Every error matches one of ErrParameterParsing, ErrUnknownProperty,
// ErrCapabilityDisabled, ErrUnsupportedOperator, ErrPageSizeExceeded,
// ErrInvalidArgument or ErrValueConversion with errors.Is. Several carry user
// hints, e.g. the list of declared properties, readable with
// errors.FlattenHints from github.com/cockroachdb/errors.
//
// # Concurrency
//
// Parsing, validation and compilation are pure. A policy.Policy is read-only
// and compiled predicates and comparators hold no mutable state, so both can
// be shared between goroutines. A Results value should be forced by one
// goroutine at a time.
package query
