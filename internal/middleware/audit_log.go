package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/parcel-service/internal/domain/model"
)

// AuditLog records a packing action, such as model.ActionPack, with its
// outcome fields.
func AuditLog(sink *AsyncLogger, c *gin.Context, actionType, message string, fields map[string]interface{}) {
	sink.Log(auditEntry(c, "info", actionType, message, fields))
}

// AuditLogError records a failed packing action.
func AuditLogError(sink *AsyncLogger, c *gin.Context, actionType, message string, err error, fields map[string]interface{}) {
	entry := auditEntry(c, "error", actionType, message, fields)
	if err != nil {
		entry.Error = err.Error()
	}
	sink.Log(entry)
}

func auditEntry(c *gin.Context, level, actionType, message string, fields map[string]interface{}) *model.LogEntry {
	entry := &model.LogEntry{
		Timestamp:  time.Now().UTC(),
		Level:      level,
		Message:    message,
		RequestID:  GetRequestID(c),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		Principal:  GetPrincipal(c),
		ActionType: actionType,
	}
	return entry.WithFields(fields)
}
