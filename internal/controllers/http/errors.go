package http

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"storefront/internal/domain"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func init() {
	// report binding failures under the JSON field name
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// writeError maps a service error onto a status code and the error body.
func (h *Handler) writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	var (
		schemaErr   *domain.SchemaNotInitializedError
		validErr    *domain.ValidationError
		notFoundErr *domain.NotFoundError
		conflictErr *domain.ConflictError
	)
	switch {
	case errors.As(err, &schemaErr):
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, ErrorResponse{Error: schemaErr.Error()})
	case errors.As(err, &validErr):
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: validErr.Error(), Field: validErr.Field})
	case errors.As(err, &notFoundErr):
		c.AbortWithStatusJSON(http.StatusNotFound, ErrorResponse{Error: notFoundErr.Error()})
	case errors.As(err, &conflictErr):
		c.AbortWithStatusJSON(http.StatusConflict, ErrorResponse{Error: conflictErr.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	default:
		h.logger.Error().Err(err).Str("path", c.FullPath()).Str("request_id", requestID(c)).Msg("request failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}

// writeBindError reports a request body that could not be decoded or failed
// its binding rules.
func writeBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Error: fe.Field() + " failed on the '" + fe.Tag() + "' rule",
			Field: fe.Field(),
		})
		return
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}
