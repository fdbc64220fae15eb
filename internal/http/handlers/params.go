package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/geocoder89/portfoliohub/internal/cache"
	"github.com/gin-gonic/gin"
)

const storeTimeout = 5 * time.Second

func storeContext(ctx *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx.Request.Context(), storeTimeout)
}

// parseID reads the :id path parameter, answering 400 "Invalid <resource> ID" when it
// is not a positive integer.
func parseID(ctx *gin.Context, resource string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondBadRequest(ctx, "Invalid "+resource+" ID")
		return 0, false
	}
	return id, true
}

// queryInt returns def when key is absent; ok is false when the value is present but
// not a positive integer.
func queryInt(ctx *gin.Context, key string, def int) (int, bool) {
	raw := strings.TrimSpace(ctx.Query(key))
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func optionalQuery(ctx *gin.Context, key string) *string {
	v := strings.TrimSpace(ctx.Query(key))
	if v == "" {
		return nil
	}
	return &v
}

// serveCached answers from the read cache when it holds key. On a miss it returns the
// cache generation to pass to cacheAndRespond once the store has been read.
func serveCached(ctx *gin.Context, c *cache.Cache, key string) (uint64, bool) {
	gen := c.Generation()
	v, ok := c.Get(key)
	if !ok {
		return gen, false
	}
	RespondJSONWithETag(ctx, http.StatusOK, v)
	return gen, true
}

func cacheAndRespond(ctx *gin.Context, c *cache.Cache, key string, gen uint64, payload any) {
	c.SetIfCurrent(key, payload, gen)
	RespondJSONWithETag(ctx, http.StatusOK, payload)
}
