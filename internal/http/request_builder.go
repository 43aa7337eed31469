package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/parcel-service/internal/domain/dto"
	"github.com/guttosm/parcel-service/internal/i18n"
	"github.com/guttosm/parcel-service/internal/middleware"
)

var successResponsePool = sync.Pool{
	New: func() interface{} { return &dto.SuccessResponse{} },
}

func getSuccessResponse() *dto.SuccessResponse {
	if resp, ok := successResponsePool.Get().(*dto.SuccessResponse); ok {
		return resp
	}
	return &dto.SuccessResponse{}
}

func putSuccessResponse(resp *dto.SuccessResponse) {
	*resp = dto.SuccessResponse{}
	successResponsePool.Put(resp)
}

// Validator is implemented by request bodies that check themselves after binding.
type Validator interface {
	Validate() error
}

// BindError marks a body that could not be decoded or failed binding tags.
type BindError struct {
	Err error
}

func (e *BindError) Error() string { return "bind request: " + e.Err.Error() }

func (e *BindError) Unwrap() error { return e.Err }

// BuildRequestAndValidate decodes the JSON body into T and runs its
// Validate method when it has one.
func BuildRequestAndValidate[T any](c *gin.Context) (*T, error) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, &BindError{Err: err}
	}
	if v, ok := any(&req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return &req, nil
}

// ResponseBuilder writes the standard success and error envelopes.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a response builder for c.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success writes data inside a SuccessResponse. The pooled envelope is
// released after gin serialized it synchronously.
func (b *ResponseBuilder) Success(statusCode int, data interface{}) {
	resp := getSuccessResponse()
	resp.Data = data
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()

	b.c.JSON(statusCode, resp)
	putSuccessResponse(resp)
}

// SuccessOK writes a 200.
func (b *ResponseBuilder) SuccessOK(data interface{}) {
	b.Success(http.StatusOK, data)
}

// Error aborts with a translated message. err, when set, is attached to
// the context for the error handler to log.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error, args ...any) {
	b.ErrorWithDetails(statusCode, messageKey, err, nil, args...)
}

// ErrorWithDetails is Error with per-field details.
func (b *ResponseBuilder) ErrorWithDetails(statusCode int, messageKey string, err error, details map[string]string, args ...any) {
	message := i18n.GetTranslator().Translatef(messageKey, i18n.GetLocale(b.c), args...)
	resp := dto.NewError(dto.ErrCodeFromStatus(statusCode), message).
		WithRequestID(middleware.GetRequestID(b.c)).
		WithDetails(details)

	if err != nil {
		_ = b.c.Error(err)
	}
	b.c.AbortWithStatusJSON(statusCode, resp)
}
