package middleware

import (
	"fmt"
	"io"
	"net/http"
	"runtime/debug"

	"codeberg.org/wcorrea/apierror/internal/apierror"
	"codeberg.org/wcorrea/apierror/internal/i18n"
	"codeberg.org/wcorrea/apierror/internal/logger"
	"github.com/gin-gonic/gin"
)

// Responder is the single place where failed requests become error payloads.
// Handlers report failures with c.Error(err) and return.
type Responder struct {
	classifier *apierror.Classifier
	matcher    *i18n.Matcher
}

// creates a responder classifying with classifier and negotiating locales with matcher
func NewResponder(classifier *apierror.Classifier, matcher *i18n.Matcher) *Responder {
	return &Responder{
		classifier: classifier,
		matcher:    matcher,
	}
}

// returns a Gin middleware rendering the last error a handler reported
func (r *Responder) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		r.Render(c, c.Errors.Last().Err)
	}
}

// returns a Gin middleware turning panics into 500 payloads
func (r *Responder) Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			// the client went away; let net/http handle it
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			err := &PanicError{Value: rec, Stack: debug.Stack()}

			if c.Writer.Written() {
				logger.FromContext(c.Request.Context()).Error("panic after response was written",
					"error", err,
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
					"stack", string(err.Stack),
				)
				c.Abort()
				return
			}

			r.Render(c, err)
		}()

		c.Next()
	}
}

// handles requests no route matched
func (r *Responder) NoRoute(c *gin.Context) {
	status, records := r.classifier.NoRoute(r.Request(c))
	c.AbortWithStatusJSON(status, records)
}

// classifies err and writes the payload, aborting the chain
func (r *Responder) Render(c *gin.Context, err error) {
	status, records := r.classifier.Classify(err, r.Request(c))
	c.AbortWithStatusJSON(status, records)
}

// writes an infrastructure rejection (see Classifier.Reject)
func (r *Responder) Reject(c *gin.Context, status int, key, detail string) {
	status, records := r.classifier.Reject(status, key, detail, r.Request(c))
	c.AbortWithStatusJSON(status, records)
}

// extracts the request context the classifier needs
func (r *Responder) Request(c *gin.Context) apierror.Request {
	return apierror.Request{
		URI:    c.Request.URL.Path,
		Method: c.Request.Method,
		Locale: r.matcher.Match(c.GetHeader("Accept-Language")),
		ID:     c.GetString(RequestIDKey),
	}
}

// a recovered panic; %+v prints the goroutine stack
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// exposes panics raised with an error value to categorization
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}

	return nil
}

func (e *PanicError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s\n%s", e.Error(), e.Stack)
		return
	}

	io.WriteString(s, e.Error()) //nolint:errcheck,gosec // fmt.State writes do not fail
}
