package handlers

import (
	"errors"
	"net/http"

	"github.com/geocoder89/portfoliohub/internal/cache"
	"github.com/geocoder89/portfoliohub/internal/domain/project"
	"github.com/gin-gonic/gin"
)

type ProjectsHandler struct {
	repo  ProjectStore
	cache *cache.Cache
}

func NewProjectsHandler(repo ProjectStore, c *cache.Cache) *ProjectsHandler {
	return &ProjectsHandler{repo: repo, cache: c}
}

// List serves GET /api/projects?search=&category=&page=&limit=.
func (h *ProjectsHandler) List(ctx *gin.Context) {
	page, okPage := queryInt(ctx, "page", project.DefaultPage)
	limit, okLimit := queryInt(ctx, "limit", project.DefaultLimit)
	if !okPage || !okLimit {
		RespondBadRequest(ctx, "page and limit must be positive integers")
		return
	}
	if limit > project.MaxLimit {
		limit = project.MaxLimit
	}

	filter := project.ListFilter{
		Search:   optionalQuery(ctx, "search"),
		Category: optionalQuery(ctx, "category"),
		Page:     page,
		Limit:    limit,
	}

	key := cache.ProjectsListKey(ctx.Query("search"), ctx.Query("category"), page, limit)
	gen, hit := serveCached(ctx, h.cache, key)
	if hit {
		return
	}

	cctx, cancel := storeContext(ctx)
	defer cancel()

	items, total, err := h.repo.List(cctx, filter)
	if err != nil {
		RespondInternal(ctx, "projects.list", err)
		return
	}

	cacheAndRespond(ctx, h.cache, key, gen, project.Page{
		Items:      items,
		Pagination: project.NewPagination(total, page, limit),
	})
}

func (h *ProjectsHandler) Get(ctx *gin.Context) {
	id, ok := parseID(ctx, "project")
	if !ok {
		return
	}

	key := cache.ResourceKey("projects", id)
	gen, hit := serveCached(ctx, h.cache, key)
	if hit {
		return
	}

	cctx, cancel := storeContext(ctx)
	defer cancel()

	p, err := h.repo.GetByID(cctx, id)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			RespondNotFound(ctx, "Project not found")
			return
		}
		RespondInternal(ctx, "projects.get", err)
		return
	}

	cacheAndRespond(ctx, h.cache, key, gen, p)
}

func (h *ProjectsHandler) Create(ctx *gin.Context) {
	var req project.Request
	if !BindJSON(ctx, &req) {
		return
	}
	req.Normalize()

	cctx, cancel := storeContext(ctx)
	defer cancel()

	p, err := h.repo.Create(cctx, req)
	if err != nil {
		h.writeError(ctx, "projects.create", err)
		return
	}

	h.cache.Clear()
	ctx.JSON(http.StatusCreated, p)
}

// Update replaces the project and its whole skill set.
func (h *ProjectsHandler) Update(ctx *gin.Context) {
	id, ok := parseID(ctx, "project")
	if !ok {
		return
	}

	var req project.Request
	if !BindJSON(ctx, &req) {
		return
	}
	req.Normalize()

	cctx, cancel := storeContext(ctx)
	defer cancel()

	p, err := h.repo.Update(cctx, id, req)
	if err != nil {
		h.writeError(ctx, "projects.update", err)
		return
	}

	h.cache.Clear()
	ctx.JSON(http.StatusOK, p)
}

func (h *ProjectsHandler) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx, "project")
	if !ok {
		return
	}

	cctx, cancel := storeContext(ctx)
	defer cancel()

	if err := h.repo.Delete(cctx, id); err != nil {
		if errors.Is(err, project.ErrNotFound) {
			RespondNotFound(ctx, "Project not found")
			return
		}
		RespondInternal(ctx, "projects.delete", err)
		return
	}

	h.cache.Clear()
	ctx.Status(http.StatusNoContent)
}

func (h *ProjectsHandler) writeError(ctx *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, project.ErrNotFound):
		RespondNotFound(ctx, "Project not found")
	case errors.Is(err, project.ErrCategoryNotFound):
		RespondValidation(ctx, []FieldError{{Field: "categoryId", Rule: "exists", Message: "category does not exist"}})
	case errors.Is(err, project.ErrSkillNotFound):
		RespondValidation(ctx, []FieldError{{Field: "skills", Rule: "exists", Message: "one or more skills do not exist"}})
	default:
		RespondInternal(ctx, op, err)
	}
}
