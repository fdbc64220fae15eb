package handlers

import (
	"errors"
	"net/http"

	"github.com/geocoder89/portfoliohub/internal/cache"
	"github.com/geocoder89/portfoliohub/internal/domain/about"
	"github.com/geocoder89/portfoliohub/internal/domain/location"
	"github.com/gin-gonic/gin"
)

type AboutHandler struct {
	repo  AboutStore
	cache *cache.Cache
}

func NewAboutHandler(repo AboutStore, c *cache.Cache) *AboutHandler {
	return &AboutHandler{repo: repo, cache: c}
}

// Get returns the About singleton. The store creates it on first read, so a
// fresh install answers with an empty biography rather than 404.
func (h *AboutHandler) Get(ctx *gin.Context) {
	key := cache.ResourceKey("about", 0)
	gen, hit := serveCached(ctx, h.cache, key)
	if hit {
		return
	}

	cctx, cancel := storeContext(ctx)
	defer cancel()

	a, err := h.repo.Get(cctx)
	if err != nil {
		RespondInternal(ctx, "about.get", err)
		return
	}

	cacheAndRespond(ctx, h.cache, key, gen, a)
}

func (h *AboutHandler) Upsert(ctx *gin.Context) {
	var req about.Request
	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := storeContext(ctx)
	defer cancel()

	a, err := h.repo.Upsert(cctx, req.Input())
	if err != nil {
		RespondInternal(ctx, "about.upsert", err)
		return
	}

	h.cache.Clear()
	ctx.JSON(http.StatusOK, a)
}

type LocationHandler struct {
	repo  LocationStore
	cache *cache.Cache
}

func NewLocationHandler(repo LocationStore, c *cache.Cache) *LocationHandler {
	return &LocationHandler{repo: repo, cache: c}
}

func (h *LocationHandler) Get(ctx *gin.Context) {
	key := cache.ResourceKey("location", 0)
	gen, hit := serveCached(ctx, h.cache, key)
	if hit {
		return
	}

	cctx, cancel := storeContext(ctx)
	defer cancel()

	loc, err := h.repo.Get(cctx)
	if err != nil {
		if errors.Is(err, location.ErrNotFound) {
			RespondNotFound(ctx, "Location not found")
			return
		}
		RespondInternal(ctx, "location.get", err)
		return
	}

	cacheAndRespond(ctx, h.cache, key, gen, loc)
}

// Upsert updates the single location row, creating it when none exists.
func (h *LocationHandler) Upsert(ctx *gin.Context) {
	var req location.Request
	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := storeContext(ctx)
	defer cancel()

	loc, err := h.repo.Upsert(cctx, trim(req.City), trim(req.OfficeHours))
	if err != nil {
		RespondInternal(ctx, "location.upsert", err)
		return
	}

	h.cache.Clear()
	ctx.JSON(http.StatusOK, loc)
}
