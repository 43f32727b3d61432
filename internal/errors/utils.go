package errors

import (
	"database/sql"
	"encoding/json"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE classes; class 42 (syntax error or access rule) is a server fault and stays generic
const (
	sqlStateDataException      = "22"
	sqlStateIntegrityViolation = "23"
)

// first match wins: domain errors first, generic catch-all last
var precedence = [...]int{
	CategoryBusinessRule:     0,
	CategoryEntityNotFound:   1,
	CategoryDataIntegrity:    2,
	CategoryResourceNotFound: 3,
	CategoryTypeMismatch:     4,
	CategoryInvalidUsage:     5,
	CategoryGeneric:          6,
}

// tags err with the category of the most specific failure found anywhere in its chain.
// errors already tagged with *Error keep their tag; driver and decoding errors are tagged
// here so repositories do not need to know about HTTP concerns.
func Categorize(err error) *Error {
	if err == nil {
		return &Error{Category: CategoryGeneric}
	}

	var best *Error

	walk(err, func(node error) {
		candidate := categorizeNode(err, node)
		if candidate == nil {
			return
		}

		if best == nil || precedence[candidate.Category] < precedence[best.Category] {
			best = candidate
		}
	})

	if best == nil {
		return &Error{Category: CategoryGeneric, Err: err}
	}

	return best
}

// analyzes a single link of the chain; whole is the error as it reached the boundary
func categorizeNode(whole, node error) *Error {
	if tagged, ok := node.(*Error); ok {
		return tagged
	}

	// database errors (pgx-specific)
	if pgErr, ok := node.(*pgconn.PgError); ok && len(pgErr.Code) >= 2 {
		switch pgErr.Code[:2] {
		case sqlStateIntegrityViolation:
			return Integrity(whole)
		case sqlStateDataException:
			return InvalidUsage(whole)
		}

		return nil
	}

	// no rows found
	if node == pgx.ErrNoRows || node == sql.ErrNoRows {
		return EmptyResult(whole)
	}

	if node == pgx.ErrTooManyRows || node == pgx.ErrTxClosed {
		return InvalidUsage(whole)
	}

	// request decoding; empty or truncated bodies are tagged where the body is bound,
	// since io.EOF alone cannot tell a short body from a dropped connection
	if _, ok := node.(*json.SyntaxError); ok {
		return InvalidUsage(whole)
	}

	if typeErr, ok := node.(*json.UnmarshalTypeError); ok {
		typeName := ""
		if typeErr.Type != nil {
			typeName = typeErr.Type.Name()
			if typeName == "" {
				typeName = typeErr.Type.String()
			}
		}

		return TypeMismatch(typeErr.Field, typeErr.Value, typeName, whole)
	}

	if numErr, ok := node.(*strconv.NumError); ok {
		return TypeMismatch("", numErr.Num, parsedType(numErr.Func), whole)
	}

	return nil
}

// maps a strconv parse function to the type it was asked to produce
func parsedType(fn string) string {
	switch fn {
	case "Atoi", "ParseInt":
		return "int"
	case "ParseUint":
		return "uint"
	case "ParseFloat":
		return "float"
	case "ParseBool":
		return "bool"
	case "ParseComplex":
		return "complex"
	}

	return fn
}

// visits err and every error it wraps, depth first
func walk(err error, visit func(error)) {
	if err == nil {
		return
	}

	visit(err)

	switch u := err.(type) {
	case interface{ Unwrap() error }:
		walk(u.Unwrap(), visit)
	case interface{ Unwrap() []error }:
		for _, inner := range u.Unwrap() {
			walk(inner, visit)
		}
	}
}

// returns the innermost error of the chain; joined errors follow their first branch
func RootCause(err error) error {
	for err != nil {
		var next error

		switch u := err.(type) {
		case interface{ Unwrap() error }:
			next = u.Unwrap()
		case interface{ Unwrap() []error }:
			if inner := u.Unwrap(); len(inner) > 0 {
				next = inner[0]
			}
		}

		if next == nil {
			return err
		}

		err = next
	}

	return nil
}

// returns the message of the innermost error of the chain
func RootCauseMessage(err error) string {
	root := RootCause(err)
	if root == nil {
		return ""
	}

	return root.Error()
}

// reports whether err classifies as the given category
func Is(err error, category Category) bool {
	return err != nil && Categorize(err).Category == category
}
