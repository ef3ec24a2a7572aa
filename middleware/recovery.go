package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/chatia-cau/ofertas/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into the same 500 body handlers use for
// unexpected faults, plus the request id. The stack goes to the log only.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			detail := fmt.Sprint(rec)
			logger.Error(c.Request.Context(), "handler panicked",
				"panic", detail,
				"route", c.FullPath(),
				"method", c.Request.Method,
				"stack", string(debug.Stack()),
			)

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"detail":     detail,
				"request_id": GetRequestID(c),
			})
		}()

		c.Next()
	}
}
