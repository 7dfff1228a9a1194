package httpserver

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/and161185/notekeeper/internal/errs"
)

var fieldNamesOnce sync.Once

// registerFieldNames makes validator report JSON field names instead of Go ones.
func registerFieldNames() {
	fieldNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

func invalid(c *gin.Context, details []errs.FieldError) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": details})
}

// bindError answers a request whose body failed to decode or validate.
func bindError(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		details := make([]errs.FieldError, 0, len(ve))
		for _, fe := range ve {
			details = append(details, errs.FieldError{Field: fe.Field(), Message: "failed " + fe.Tag()})
		}
		invalid(c, details)
		return
	}
	invalid(c, []errs.FieldError{{Field: "body", Message: err.Error()}})
}

// fail maps a service error onto the response. entity names the 404 subject,
// op the 500 message; causes of 500s go to the log only.
func (s *Server) fail(c *gin.Context, err error, entity, op string) {
	var ve *errs.ValidationError
	switch {
	case errors.As(err, &ve):
		invalid(c, ve.Fields)
	case errors.Is(err, errs.ErrInvalidParent):
		field := "parentId"
		if entity == "Note" {
			field = "folderId"
		}
		invalid(c, []errs.FieldError{{Field: field, Message: "unknown folder"}})
	case errors.Is(err, errs.ErrValidation):
		invalid(c, []errs.FieldError{{Field: "", Message: err.Error()}})
	case errors.Is(err, errs.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": entity + " not found"})
	case errors.Is(err, errs.ErrRateLimited):
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "AI usage limit reached"})
	case errors.Is(err, errs.ErrUnauthorized):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	default:
		s.log.Error(op, zap.Error(err), zap.String("route", c.FullPath()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + op})
	}
}
