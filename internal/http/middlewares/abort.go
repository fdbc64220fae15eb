package middlewares

import "github.com/gin-gonic/gin"

func RequestIDFrom(c *gin.Context) string {
	if v, ok := c.Get(CtxRequestID); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}

	return c.GetHeader(requestIDHeader)
}

// abortJSON writes the same envelope the handlers use so clients see one error shape.
func abortJSON(c *gin.Context, status int, code, message string) {
	body := gin.H{
		"code":    code,
		"message": message,
	}
	if id := RequestIDFrom(c); id != "" {
		body["requestId"] = id
	}
	c.AbortWithStatusJSON(status, body)
}
