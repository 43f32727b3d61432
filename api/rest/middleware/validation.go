package middleware

import (
	stderrors "errors"
	"io"
	"reflect"
	"strings"

	"codeberg.org/wcorrea/apierror/internal/errors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// binds the JSON body into obj. an empty or truncated body is a malformed request,
// not a server fault.
func BindJSON(c *gin.Context, obj any) error {
	err := c.ShouldBindJSON(obj)
	if stderrors.Is(err, io.EOF) || stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.InvalidUsage(err)
	}

	return err
}

// makes gin's validator report fields by their JSON name, so payloads name the
// attribute the client actually sent
func UseJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

		switch name {
		case "-":
			return ""
		case "":
			return field.Name
		}

		return name
	})
}
