package errors

import (
	"fmt"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Report failures with c.Error(err) and return; never write an error body directly
//   - The error middleware classifies the last error and renders the localized payload
//   - Parameter parsing failures should be returned as TypeMismatch so the payload names the field
//
// For domain services:
//   - Use Business() for rule violations and NotFound() for missing aggregates
//   - Both carry a machine-readable key and a description that reach the caller verbatim
//
// For repositories/internal packages:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err)
//   - Driver errors (pgx, pgconn) are categorized at the boundary, no need to tag them
//   - Do not log errors in non-handler code (avoid double logging)

func (e *Error) Error() string {
	switch {
	case e.Category == CategoryTypeMismatch:
		return fmt.Sprintf("%s: parameter %q value %q is not of type %s", e.Category, e.Name, e.Value, e.Type)
	case e.Description != "" && e.Key != "":
		return fmt.Sprintf("%s: %s: %s", e.Category, e.Key, e.Description)
	case e.Description != "":
		return fmt.Sprintf("%s: %s", e.Category, e.Description)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Category, e.Err)
	}

	return e.Category.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// returns a business rule violation carrying its own key and description
func Business(key, description string) *Error {
	return &Error{
		Category:    CategoryBusinessRule,
		Key:         key,
		Description: description,
	}
}

// returns a domain not-found violation carrying its own key and description
func NotFound(key, description string) *Error {
	return &Error{
		Category:    CategoryEntityNotFound,
		Key:         key,
		Description: description,
	}
}

// tags a constraint violation raised by a persistence write
func Integrity(err error) *Error {
	return &Error{Category: CategoryDataIntegrity, Err: err}
}

// tags a read that expected exactly one result and found none
func EmptyResult(err error) *Error {
	return &Error{Category: CategoryResourceNotFound, Err: err}
}

// tags a persistence call constructed with invalid arguments
func InvalidUsage(err error) *Error {
	return &Error{Category: CategoryInvalidUsage, Err: err}
}

// tags a request parameter that could not be converted to the expected type
func TypeMismatch(name, value, typeName string, err error) *Error {
	return &Error{
		Category: CategoryTypeMismatch,
		Name:     name,
		Value:    value,
		Type:     typeName,
		Err:      err,
	}
}
