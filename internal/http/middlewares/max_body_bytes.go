package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// MaxBodyBytes caps request bodies at max, or at uploadMax for paths under uploadPrefix.
func MaxBodyBytes(max int64, uploadPrefix string, uploadMax int64) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		limit := max
		if uploadPrefix != "" && strings.HasPrefix(ctx.Request.URL.Path, uploadPrefix) {
			limit = uploadMax
		}

		if ctx.Request.Body != nil {
			ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, limit)
		}

		ctx.Next()
	}
}
