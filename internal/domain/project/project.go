package project

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/geocoder89/portfoliohub/internal/domain/category"
	"github.com/geocoder89/portfoliohub/internal/domain/skill"
)

var (
	ErrNotFound         = errors.New("project not found")
	ErrCategoryNotFound = errors.New("category does not exist")
	ErrSkillNotFound    = errors.New("one or more skills do not exist")
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type Project struct {
	ID          int64             `json:"id"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	Logo        string            `json:"logo"`
	Image       string            `json:"image"`
	CategoryID  int64             `json:"categoryId"`
	Category    category.Category `json:"category"`
	Skills      []skill.Skill     `json:"skills"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// Request is the full create/update payload. Skills is the complete set of
// linked skill ids; an update replaces the existing set rather than merging.
type Request struct {
	Title       string  `json:"title" binding:"required,notblank,max=200"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
	Logo        string  `json:"logo" binding:"required,notblank"`
	Image       string  `json:"image" binding:"required,notblank"`
	CategoryID  int64   `json:"categoryId" binding:"required,gt=0"`
	Skills      []int64 `json:"skills" binding:"omitempty,dive,gt=0"`
}

// SkillIDs returns the requested skill ids de-duplicated and sorted.
func (r Request) SkillIDs() []int64 {
	seen := make(map[int64]struct{}, len(r.Skills))
	out := make([]int64, 0, len(r.Skills))
	for _, id := range r.Skills {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Normalize trims the free-text fields in place.
func (r *Request) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Logo = strings.TrimSpace(r.Logo)
	r.Image = strings.TrimSpace(r.Image)
	if r.Description != nil {
		d := strings.TrimSpace(*r.Description)
		r.Description = &d
	}
}

// with pointers if optional, it will be nil
type ListFilter struct {
	Search   *string
	Category *string
	Page     int
	Limit    int
}

func (f ListFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

type Pagination struct {
	Total       int `json:"total"`
	Pages       int `json:"pages"`
	CurrentPage int `json:"currentPage"`
	Limit       int `json:"limit"`
}

func NewPagination(total, page, limit int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{
		Total:       total,
		Pages:       pages,
		CurrentPage: page,
		Limit:       limit,
	}
}

type Page struct {
	Items      []Project  `json:"items"`
	Pagination Pagination `json:"pagination"`
}
