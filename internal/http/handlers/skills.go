package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/geocoder89/portfoliohub/internal/cache"
	"github.com/geocoder89/portfoliohub/internal/domain/skill"
	"github.com/gin-gonic/gin"
)

type SkillsHandler struct {
	repo  SkillStore
	cache *cache.Cache
}

func NewSkillsHandler(repo SkillStore, c *cache.Cache) *SkillsHandler {
	return &SkillsHandler{repo: repo, cache: c}
}

func (h *SkillsHandler) List(ctx *gin.Context) {
	key := cache.ListKey("skills")
	gen, hit := serveCached(ctx, h.cache, key)
	if hit {
		return
	}

	cctx, cancel := storeContext(ctx)
	defer cancel()

	items, err := h.repo.List(cctx)
	if err != nil {
		RespondInternal(ctx, "skills.list", err)
		return
	}

	cacheAndRespond(ctx, h.cache, key, gen, items)
}

func (h *SkillsHandler) Get(ctx *gin.Context) {
	id, ok := parseID(ctx, "skill")
	if !ok {
		return
	}

	cctx, cancel := storeContext(ctx)
	defer cancel()

	s, err := h.repo.GetByID(cctx, id)
	if err != nil {
		if errors.Is(err, skill.ErrNotFound) {
			RespondNotFound(ctx, "Skill not found")
			return
		}
		RespondInternal(ctx, "skills.get", err)
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, s)
}

func (h *SkillsHandler) Create(ctx *gin.Context) {
	var req skill.Request
	if !BindJSON(ctx, &req) {
		return
	}
	name := strings.TrimSpace(req.Name)

	cctx, cancel := storeContext(ctx)
	defer cancel()

	if taken, err := h.nameTaken(cctx, name, 0); err != nil {
		RespondInternal(ctx, "skills.create", err)
		return
	} else if taken {
		RespondConflict(ctx, "A skill with this name already exists")
		return
	}

	s, err := h.repo.Create(cctx, name)
	if err != nil {
		if errors.Is(err, skill.ErrNameTaken) {
			RespondConflict(ctx, "A skill with this name already exists")
			return
		}
		RespondInternal(ctx, "skills.create", err)
		return
	}

	h.cache.Clear()
	ctx.JSON(http.StatusCreated, s)
}

func (h *SkillsHandler) Update(ctx *gin.Context) {
	id, ok := parseID(ctx, "skill")
	if !ok {
		return
	}

	var req skill.Request
	if !BindJSON(ctx, &req) {
		return
	}
	name := strings.TrimSpace(req.Name)

	cctx, cancel := storeContext(ctx)
	defer cancel()

	if _, err := h.repo.GetByID(cctx, id); err != nil {
		if errors.Is(err, skill.ErrNotFound) {
			RespondNotFound(ctx, "Skill not found")
			return
		}
		RespondInternal(ctx, "skills.update", err)
		return
	}

	if taken, err := h.nameTaken(cctx, name, id); err != nil {
		RespondInternal(ctx, "skills.update", err)
		return
	} else if taken {
		RespondConflict(ctx, "A skill with this name already exists")
		return
	}

	s, err := h.repo.Update(cctx, id, name)
	if err != nil {
		switch {
		case errors.Is(err, skill.ErrNotFound):
			RespondNotFound(ctx, "Skill not found")
		case errors.Is(err, skill.ErrNameTaken):
			RespondConflict(ctx, "A skill with this name already exists")
		default:
			RespondInternal(ctx, "skills.update", err)
		}
		return
	}

	h.cache.Clear()
	ctx.JSON(http.StatusOK, s)
}

func (h *SkillsHandler) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx, "skill")
	if !ok {
		return
	}

	cctx, cancel := storeContext(ctx)
	defer cancel()

	if err := h.repo.Delete(cctx, id); err != nil {
		if errors.Is(err, skill.ErrNotFound) {
			RespondNotFound(ctx, "Skill not found")
			return
		}
		RespondInternal(ctx, "skills.delete", err)
		return
	}

	h.cache.Clear()
	ctx.Status(http.StatusNoContent)
}

func (h *SkillsHandler) nameTaken(ctx context.Context, name string, exceptID int64) (bool, error) {
	existing, err := h.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, skill.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return existing.ID != exceptID, nil
}
