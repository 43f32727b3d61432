package pagination

import (
	"strconv"

	"codeberg.org/wcorrea/apierror/internal/errors"
	"github.com/gin-gonic/gin"
)

// Params holds pagination parameters from request
type Params struct {
	Limit  int
	Offset int
}

// Meta holds pagination metadata for response
type Meta struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// NewMeta creates pagination metadata from params and total count
func NewMeta(params Params, total int) Meta {
	return Meta{
		Total:   total,
		Limit:   params.Limit,
		Offset:  params.Offset,
		HasMore: params.Offset+params.Limit < total,
	}
}

// FromQuery reads the limit and offset query parameters.
// values that are not integers are reported as type mismatches; limits above maxLimit
// are capped. negative values pass through so storage rejects them.
func FromQuery(c *gin.Context, defaultLimit, maxLimit int) (Params, error) {
	limit, err := intQuery(c, "limit", defaultLimit)
	if err != nil {
		return Params{}, err
	}

	offset, err := intQuery(c, "offset", 0)
	if err != nil {
		return Params{}, err
	}

	return Params{Limit: min(limit, maxLimit), Offset: offset}, nil
}

func intQuery(c *gin.Context, name string, fallback int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.TypeMismatch(name, raw, "int", err)
	}

	return value, nil
}
