package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/geocoder89/portfoliohub/internal/cache"
	"github.com/geocoder89/portfoliohub/internal/domain/about"
	"github.com/gin-gonic/gin"
)

// resumeStore is the shape shared by experiences, education and tech stack:
// plain CRUD over one table keyed by id. R is the bound request, I the store input.
type resumeStore[T any, I any] interface {
	List(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, in I) (T, error)
	Update(ctx context.Context, id int64, in I) (T, error)
	Delete(ctx context.Context, id int64) error
}

// ResumeHandler serves one resume section. convert turns a validated request into
// store input and reports per-field problems the binding tags cannot express.
type ResumeHandler[T any, R any, I any] struct {
	resource string // cache key and log op prefix
	noun     string // "Invalid <noun> ID"
	label    string
	repo     resumeStore[T, I]
	cache    *cache.Cache
	convert  func(R) (I, []FieldError)
}

func NewExperienceHandler(repo ExperienceStore, c *cache.Cache) *ResumeHandler[about.Experience, about.ExperienceRequest, about.ExperienceInput] {
	return &ResumeHandler[about.Experience, about.ExperienceRequest, about.ExperienceInput]{
		resource: "experience",
		noun:     "experience",
		label:    "Experience",
		repo:     repo,
		cache:    c,
		convert: func(r about.ExperienceRequest) (about.ExperienceInput, []FieldError) {
			in, err := r.Input()
			if err != nil {
				return in, dateFieldErrors(r.StartDate)
			}
			return in, endBeforeStart(in.StartDate, in.EndDate)
		},
	}
}

func NewEducationHandler(repo EducationStore, c *cache.Cache) *ResumeHandler[about.Education, about.EducationRequest, about.EducationInput] {
	return &ResumeHandler[about.Education, about.EducationRequest, about.EducationInput]{
		resource: "education",
		noun:     "education",
		label:    "Education",
		repo:     repo,
		cache:    c,
		convert: func(r about.EducationRequest) (about.EducationInput, []FieldError) {
			in, err := r.Input()
			if err != nil {
				return in, dateFieldErrors(r.StartDate)
			}
			return in, endBeforeStart(in.StartDate, in.EndDate)
		},
	}
}

func NewTechStackHandler(repo TechStackStore, c *cache.Cache) *ResumeHandler[about.TechStack, about.TechStackRequest, about.TechStackInput] {
	return &ResumeHandler[about.TechStack, about.TechStackRequest, about.TechStackInput]{
		resource: "techstack",
		noun:     "tech stack",
		label:    "Tech stack entry",
		repo:     repo,
		cache:    c,
		convert: func(r about.TechStackRequest) (about.TechStackInput, []FieldError) {
			return r.Input(), nil
		},
	}
}

func (h *ResumeHandler[T, R, I]) List(ctx *gin.Context) {
	key := cache.ListKey(h.resource)
	gen, hit := serveCached(ctx, h.cache, key)
	if hit {
		return
	}

	cctx, cancel := storeContext(ctx)
	defer cancel()

	items, err := h.repo.List(cctx)
	if err != nil {
		RespondInternal(ctx, h.resource+".list", err)
		return
	}

	cacheAndRespond(ctx, h.cache, key, gen, items)
}

func (h *ResumeHandler[T, R, I]) Get(ctx *gin.Context) {
	id, ok := parseID(ctx, h.noun)
	if !ok {
		return
	}

	cctx, cancel := storeContext(ctx)
	defer cancel()

	item, err := h.repo.GetByID(cctx, id)
	if err != nil {
		h.writeError(ctx, "get", err)
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, item)
}

func (h *ResumeHandler[T, R, I]) Create(ctx *gin.Context) {
	in, ok := h.bind(ctx)
	if !ok {
		return
	}

	cctx, cancel := storeContext(ctx)
	defer cancel()

	item, err := h.repo.Create(cctx, in)
	if err != nil {
		h.writeError(ctx, "create", err)
		return
	}

	h.cache.Clear()
	ctx.JSON(http.StatusCreated, item)
}

func (h *ResumeHandler[T, R, I]) Update(ctx *gin.Context) {
	id, ok := parseID(ctx, h.noun)
	if !ok {
		return
	}

	in, ok := h.bind(ctx)
	if !ok {
		return
	}

	cctx, cancel := storeContext(ctx)
	defer cancel()

	item, err := h.repo.Update(cctx, id, in)
	if err != nil {
		h.writeError(ctx, "update", err)
		return
	}

	h.cache.Clear()
	ctx.JSON(http.StatusOK, item)
}

func (h *ResumeHandler[T, R, I]) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx, h.noun)
	if !ok {
		return
	}

	cctx, cancel := storeContext(ctx)
	defer cancel()

	if err := h.repo.Delete(cctx, id); err != nil {
		h.writeError(ctx, "delete", err)
		return
	}

	h.cache.Clear()
	ctx.Status(http.StatusNoContent)
}

func (h *ResumeHandler[T, R, I]) bind(ctx *gin.Context) (I, bool) {
	var req R
	if !BindJSON(ctx, &req) {
		var zero I
		return zero, false
	}

	in, errs := h.convert(req)
	if len(errs) > 0 {
		RespondValidation(ctx, errs)
		return in, false
	}
	return in, true
}

func (h *ResumeHandler[T, R, I]) writeError(ctx *gin.Context, op string, err error) {
	if errors.Is(err, about.ErrNotFound) {
		RespondNotFound(ctx, h.label+" not found")
		return
	}
	RespondInternal(ctx, h.resource+"."+op, err)
}
