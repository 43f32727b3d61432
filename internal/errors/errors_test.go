package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorize_TaggedErrorsKeepTheirCategory(t *testing.T) {
	err := fmt.Errorf("closing order 7: %w", Business("ORDER_CLOSED", "Order already closed"))

	got := Categorize(err)

	assert.Equal(t, CategoryBusinessRule, got.Category)
	assert.Equal(t, "ORDER_CLOSED", got.Key)
	assert.Equal(t, "Order already closed", got.Description)
}

func TestCategorize_UniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", Message: `duplicate key value violates unique constraint "orders_reference_key"`}
	err := fmt.Errorf("insert order: %w", pgErr)

	got := Categorize(err)

	assert.Equal(t, CategoryDataIntegrity, got.Category)
	assert.ErrorIs(t, got, err)
}

func TestCategorize_InvalidTextRepresentation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type uuid"}

	assert.Equal(t, CategoryInvalidUsage, Categorize(pgErr).Category)
}

func TestCategorize_SyntaxOrAccessRuleIsGeneric(t *testing.T) {
	for _, code := range []string{"42P01", "42501", "42601"} {
		pgErr := &pgconn.PgError{Code: code, Message: "relation \"orders\" does not exist"}

		assert.Equal(t, CategoryGeneric, Categorize(fmt.Errorf("list orders: %w", pgErr)).Category, code)
	}
}

func TestCategorize_MalformedJSONIsInvalidUsage(t *testing.T) {
	var syntaxErr *json.SyntaxError
	require.ErrorAs(t, json.Unmarshal([]byte(`{"reference":}`), new(map[string]any)), &syntaxErr)

	err := fmt.Errorf("bind: %w", syntaxErr)

	assert.Equal(t, CategoryInvalidUsage, Categorize(err).Category)
	assert.Equal(t, syntaxErr.Error(), RootCauseMessage(err))
}

func TestCategorize_BareEOFStaysGeneric(t *testing.T) {
	err := fmt.Errorf("failed to receive message: %w", io.ErrUnexpectedEOF)

	assert.Equal(t, CategoryGeneric, Categorize(err).Category)
}

func TestCategorize_OtherSQLStateFallsThrough(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "57014", Message: "canceling statement due to statement timeout"}

	assert.Equal(t, CategoryGeneric, Categorize(pgErr).Category)
}

func TestCategorize_NoRows(t *testing.T) {
	err := fmt.Errorf("get order 9: %w", pgx.ErrNoRows)

	got := Categorize(err)

	assert.Equal(t, CategoryResourceNotFound, got.Category)
}

func TestCategorize_TooManyRows(t *testing.T) {
	assert.Equal(t, CategoryInvalidUsage, Categorize(pgx.ErrTooManyRows).Category)
}

func TestCategorize_JSONTypeError(t *testing.T) {
	var body struct {
		Quantity int `json:"quantity"`
	}

	err := json.Unmarshal([]byte(`{"quantity":"many"}`), &body)
	require.Error(t, err)

	got := Categorize(err)

	assert.Equal(t, CategoryTypeMismatch, got.Category)
	assert.Equal(t, "quantity", got.Name)
	assert.Equal(t, "string", got.Value)
	assert.Equal(t, "int", got.Type)
}

func TestCategorize_NumError(t *testing.T) {
	_, err := strconv.ParseInt("abc", 10, 64)
	require.Error(t, err)

	got := Categorize(err)

	assert.Equal(t, CategoryTypeMismatch, got.Category)
	assert.Equal(t, "abc", got.Value)
	assert.Equal(t, "int", got.Type)
}

func TestCategorize_PrecedenceDomainBeforeInfrastructure(t *testing.T) {
	// a not-found raised while handling a constraint violation still reports the domain error
	err := stderrors.Join(
		&pgconn.PgError{Code: "23503"},
		NotFound("CUSTOMER_NOT_FOUND", "Customer does not exist"),
	)

	assert.Equal(t, CategoryEntityNotFound, Categorize(err).Category)
}

func TestCategorize_Unmatched(t *testing.T) {
	err := stderrors.New("boom")

	got := Categorize(err)

	assert.Equal(t, CategoryGeneric, got.Category)
	assert.Same(t, err, got.Err)
}

func TestCategorize_Nil(t *testing.T) {
	assert.Equal(t, CategoryGeneric, Categorize(nil).Category)
}

func TestRootCause(t *testing.T) {
	inner := stderrors.New("duplicate key value violates unique constraint")
	err := fmt.Errorf("repository: %w", fmt.Errorf("insert: %w", inner))

	assert.Same(t, inner, RootCause(err))
	assert.Equal(t, "duplicate key value violates unique constraint", RootCauseMessage(err))
}

func TestRootCause_JoinedFollowsFirstBranch(t *testing.T) {
	first := stderrors.New("first")
	err := fmt.Errorf("outer: %w", stderrors.Join(first, stderrors.New("second")))

	assert.Same(t, first, RootCause(err))
}

func TestRootCause_Unwrapped(t *testing.T) {
	err := stderrors.New("plain")

	assert.Same(t, err, RootCause(err))
	assert.Equal(t, "", RootCauseMessage(nil))
}

func TestError_StringForm(t *testing.T) {
	assert.Equal(t, "business_rule: ORDER_CLOSED: Order already closed",
		Business("ORDER_CLOSED", "Order already closed").Error())
	assert.Equal(t, `type_mismatch: parameter "age" value "abc" is not of type Integer`,
		TypeMismatch("age", "abc", "Integer", nil).Error())
	assert.Equal(t, "resource_not_found: no rows in result set", EmptyResult(pgx.ErrNoRows).Error())
}

func TestIs(t *testing.T) {
	assert.True(t, Is(fmt.Errorf("wrap: %w", pgx.ErrNoRows), CategoryResourceNotFound))
	assert.False(t, Is(nil, CategoryGeneric))
}
