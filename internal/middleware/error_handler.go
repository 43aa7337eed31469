package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/parcel-service/internal/domain/dto"
	"github.com/guttosm/parcel-service/internal/i18n"
)

// ErrorHandler logs errors attached with c.Error and answers with a
// translated error body when the handler wrote nothing. Bind errors become
// 400, everything else 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last()

		Logger(c).Error().
			Err(err.Err).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("request error")

		if c.Writer.Written() {
			return
		}

		var validation *dto.ValidationError
		switch {
		case err.IsType(gin.ErrorTypeBind), errors.As(err.Err, &validation):
			abortWithKey(c, http.StatusBadRequest, dto.ErrCodeInvalidRequest, i18n.ErrKeyInvalidRequestBody)
		default:
			abortWithKey(c, http.StatusInternalServerError, dto.ErrCodeInternal, i18n.ErrKeyInternalError)
		}
	}
}

// abortWithKey aborts with a translated error body.
func abortWithKey(c *gin.Context, status int, code, key string, args ...any) {
	message := i18n.GetTranslator().Translatef(key, i18n.GetLocale(c), args...)
	c.AbortWithStatusJSON(status, dto.NewError(code, message).WithRequestID(GetRequestID(c)))
}
