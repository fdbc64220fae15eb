package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/geocoder89/portfoliohub/internal/cache"
	"github.com/geocoder89/portfoliohub/internal/domain/category"
	"github.com/gin-gonic/gin"
)

type CategoriesHandler struct {
	repo  CategoryStore
	cache *cache.Cache
}

func NewCategoriesHandler(repo CategoryStore, c *cache.Cache) *CategoriesHandler {
	return &CategoriesHandler{repo: repo, cache: c}
}

func (h *CategoriesHandler) List(ctx *gin.Context) {
	key := cache.ListKey("categories")
	gen, hit := serveCached(ctx, h.cache, key)
	if hit {
		return
	}

	cctx, cancel := storeContext(ctx)
	defer cancel()

	items, err := h.repo.List(cctx)
	if err != nil {
		RespondInternal(ctx, "categories.list", err)
		return
	}

	cacheAndRespond(ctx, h.cache, key, gen, items)
}

func (h *CategoriesHandler) Get(ctx *gin.Context) {
	id, ok := parseID(ctx, "category")
	if !ok {
		return
	}

	cctx, cancel := storeContext(ctx)
	defer cancel()

	c, err := h.repo.GetByID(cctx, id)
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			RespondNotFound(ctx, "Category not found")
			return
		}
		RespondInternal(ctx, "categories.get", err)
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, c)
}

func (h *CategoriesHandler) Create(ctx *gin.Context) {
	var req category.Request
	if !BindJSON(ctx, &req) {
		return
	}
	name := strings.TrimSpace(req.Name)

	cctx, cancel := storeContext(ctx)
	defer cancel()

	if taken, err := h.nameTaken(cctx, name, 0); err != nil {
		RespondInternal(ctx, "categories.create", err)
		return
	} else if taken {
		RespondConflict(ctx, "A category with this name already exists")
		return
	}

	c, err := h.repo.Create(cctx, name)
	if err != nil {
		if errors.Is(err, category.ErrNameTaken) {
			RespondConflict(ctx, "A category with this name already exists")
			return
		}
		RespondInternal(ctx, "categories.create", err)
		return
	}

	h.cache.Clear()
	ctx.JSON(http.StatusCreated, c)
}

func (h *CategoriesHandler) Update(ctx *gin.Context) {
	id, ok := parseID(ctx, "category")
	if !ok {
		return
	}

	var req category.Request
	if !BindJSON(ctx, &req) {
		return
	}
	name := strings.TrimSpace(req.Name)

	cctx, cancel := storeContext(ctx)
	defer cancel()

	if _, err := h.repo.GetByID(cctx, id); err != nil {
		if errors.Is(err, category.ErrNotFound) {
			RespondNotFound(ctx, "Category not found")
			return
		}
		RespondInternal(ctx, "categories.update", err)
		return
	}

	if taken, err := h.nameTaken(cctx, name, id); err != nil {
		RespondInternal(ctx, "categories.update", err)
		return
	} else if taken {
		RespondConflict(ctx, "A category with this name already exists")
		return
	}

	c, err := h.repo.Update(cctx, id, name)
	if err != nil {
		switch {
		case errors.Is(err, category.ErrNotFound):
			RespondNotFound(ctx, "Category not found")
		case errors.Is(err, category.ErrNameTaken):
			RespondConflict(ctx, "A category with this name already exists")
		default:
			RespondInternal(ctx, "categories.update", err)
		}
		return
	}

	h.cache.Clear()
	ctx.JSON(http.StatusOK, c)
}

// Delete refuses while any project still references the category.
func (h *CategoriesHandler) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx, "category")
	if !ok {
		return
	}

	cctx, cancel := storeContext(ctx)
	defer cancel()

	n, err := h.repo.CountProjects(cctx, id)
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			RespondNotFound(ctx, "Category not found")
			return
		}
		RespondInternal(ctx, "categories.delete", err)
		return
	}
	if n > 0 {
		RespondConflict(ctx, "Cannot delete category with associated projects")
		return
	}

	if err := h.repo.Delete(cctx, id); err != nil {
		switch {
		case errors.Is(err, category.ErrNotFound):
			RespondNotFound(ctx, "Category not found")
		case errors.Is(err, category.ErrInUse):
			RespondConflict(ctx, "Cannot delete category with associated projects")
		default:
			RespondInternal(ctx, "categories.delete", err)
		}
		return
	}

	h.cache.Clear()
	ctx.Status(http.StatusNoContent)
}

func (h *CategoriesHandler) nameTaken(ctx context.Context, name string, exceptID int64) (bool, error) {
	existing, err := h.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return existing.ID != exceptID, nil
}
