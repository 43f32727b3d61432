// package apierror turns any error that escapes request handling into localized error
// records and the HTTP status to send with them.
package apierror

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"codeberg.org/wcorrea/apierror/internal/errors"
	"codeberg.org/wcorrea/apierror/internal/i18n"
	"codeberg.org/wcorrea/apierror/internal/logger"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/language"
)

// catalog keys
const (
	KeyInternalError         = "resource.internal-error"
	KeyIntegrityViolation    = "resource.violation-of-integrity"
	KeyNotFound              = "resource.not-found"
	KeyNotFoundDetail        = "resource.not-found-detail"
	KeyTypeIncorrect         = "resource.type-incorrect-attribute"
	KeyTypeIncorrectDetail   = "resource.type-incorrect-attribute-detail"
	KeyConstructionIncorrect = "resource.construction-of-the-object-is-incorrect"
	KeyTooManyRequests       = "resource.too-many-requests"
	KeyValidationPrefix      = "validation."
	KeyValidationInvalid     = "validation.invalid"
)

// Classifier is stateless apart from its read-only collaborators and is safe for
// concurrent use.
type Classifier struct {
	catalog i18n.Catalog
	logger  *slog.Logger
	now     func() time.Time
	metrics *metrics
}

type Option func(*Classifier)

// sets the logger unhandled errors are reported to
func WithLogger(l *slog.Logger) Option {
	return func(c *Classifier) {
		if l != nil {
			c.logger = l
		}
	}
}

// sets the clock used to stamp records
func WithClock(now func() time.Time) Option {
	return func(c *Classifier) {
		if now != nil {
			c.now = now
		}
	}
}

// counts classifications per category and status on reg
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *Classifier) {
		c.metrics = newMetrics(reg)
	}
}

// creates a classifier resolving messages from catalog
func New(catalog i18n.Catalog, opts ...Option) *Classifier {
	if catalog == nil {
		catalog = keysOnly{}
	}

	c := &Classifier{
		catalog: catalog,
		logger:  logger.Default(),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// converts err into the status to send and at least one record describing it.
// it never fails: unknown errors become 500 records and are logged with full detail.
func (c *Classifier) Classify(err error, req Request) (int, []Record) {
	at := c.now()

	var fieldErrs validator.ValidationErrors
	if stderrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		c.metrics.observe(categoryFieldValidation, http.StatusBadRequest)
		return http.StatusBadRequest, c.fieldRecords(fieldErrs, req, at)
	}

	tagged := errors.Categorize(err)

	var (
		status      int
		key         string
		description string
		detail      string
	)

	switch tagged.Category {
	case errors.CategoryBusinessRule:
		status = http.StatusBadRequest
		key = tagged.Key
		description = tagged.Description
		detail = stringForm(err)

	case errors.CategoryEntityNotFound:
		status = http.StatusNotFound
		key = tagged.Key
		description = tagged.Description
		detail = stringForm(err)

	case errors.CategoryDataIntegrity:
		status = http.StatusConflict
		description = c.resolve(KeyIntegrityViolation, nil, req)
		detail = errors.RootCauseMessage(err)

	case errors.CategoryResourceNotFound:
		status = http.StatusNotFound
		description = c.resolve(KeyNotFound, nil, req)
		detail = stringForm(err)

	case errors.CategoryTypeMismatch:
		status = http.StatusBadRequest
		description = c.resolve(KeyTypeIncorrect, nil, req)
		detail = c.resolve(KeyTypeIncorrectDetail, []any{tagged.Name, tagged.Value, tagged.Type}, req)

	case errors.CategoryInvalidUsage:
		status = http.StatusBadRequest
		description = c.resolve(KeyConstructionIncorrect, nil, req)
		detail = errors.RootCauseMessage(err)

	default:
		status = http.StatusInternalServerError
		description = c.resolve(KeyInternalError, nil, req)
		detail = stringForm(err)

		c.logUnhandled(err, req)
	}

	c.metrics.observe(tagged.Category.String(), status)

	return status, []Record{NewRecord(key, description, detail, status, req, at)}
}

// requests abandoned by the client or cut by a deadline are not server faults
func (c *Classifier) logUnhandled(err error, req Request) {
	level := slog.LevelError
	msg := "unhandled error"

	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		level = slog.LevelWarn
		msg = "request aborted"
	}

	c.logger.Log(context.Background(), level, msg,
		"error", err,
		"detail", fmt.Sprintf("%+v", err),
		"origin", req.URI,
		"method", req.Method,
		"request_id", req.ID,
	)
}

// one record per invalid field, all sharing status 400
func (c *Classifier) fieldRecords(fieldErrs validator.ValidationErrors, req Request, at time.Time) []Record {
	records := make([]Record, 0, len(fieldErrs))

	for _, fe := range fieldErrs {
		params := []any{fe.Field(), fe.Param()}

		key := KeyValidationPrefix + fe.Tag()
		description := c.catalog.Resolve(key, params, req.Locale)
		if description == key {
			description = c.catalog.Resolve(KeyValidationInvalid, params, req.Locale)
		}

		detail := fmt.Sprintf("field %q of %s rejected value [%v]: failed on the %q rule",
			fe.Field(), fe.StructNamespace(), fe.Value(), fe.Tag())

		records = append(records, NewRecord("", description, detail, http.StatusBadRequest, req, at))
	}

	return records
}

// resolves a catalog message for the request locale
func (c *Classifier) resolve(key string, params []any, req Request) string {
	return c.catalog.Resolve(key, params, req.Locale)
}

// catalog used when none is configured: every message is its key
type keysOnly struct{}

func (keysOnly) Resolve(key string, _ []any, _ language.Tag) string {
	return key
}

func stringForm(err error) string {
	if err == nil {
		return "<nil>"
	}

	return err.Error()
}

// reports a request that no route matched as a missing resource
func (c *Classifier) NoRoute(req Request) (int, []Record) {
	status := http.StatusNotFound
	description := c.resolve(KeyNotFound, nil, req)
	detail := c.resolve(KeyNotFoundDetail, []any{req.URI}, req)

	c.metrics.observe(errors.CategoryResourceNotFound.String(), status)

	return status, []Record{NewRecord("", description, detail, status, req, c.now())}
}

// builds the record for a request refused by infrastructure before reaching a handler
// (rate limiting); key is a catalog key and detail is reported as is
func (c *Classifier) Reject(status int, key, detail string, req Request) (int, []Record) {
	c.metrics.observe("rejected", status)

	return status, []Record{NewRecord("", c.resolve(key, nil, req), detail, status, req, c.now())}
}
