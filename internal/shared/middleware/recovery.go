package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"booklog-backend/internal/shared/response"
)

// Recovery converts handler panics into the standard error envelope so
// a single bad request never takes the process down.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("request_id", c.GetString(RequestIDKey)).
					Str("path", c.Request.URL.Path).
					Interface("error", err).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")

				response.ErrorResponse(c, http.StatusInternalServerError, "SYS_001", "internal server error")
				c.Abort()
			}
		}()

		c.Next()
	}
}
