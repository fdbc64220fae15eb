package handlers

import (
	"context"

	"github.com/geocoder89/portfoliohub/internal/domain/about"
	"github.com/geocoder89/portfoliohub/internal/domain/category"
	"github.com/geocoder89/portfoliohub/internal/domain/location"
	"github.com/geocoder89/portfoliohub/internal/domain/project"
	"github.com/geocoder89/portfoliohub/internal/domain/skill"
	"github.com/geocoder89/portfoliohub/internal/domain/user"
)

// The store contracts below are satisfied by both repo/postgres and repo/memory.

type UserStore interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	GetByID(ctx context.Context, id int64) (user.User, error)
}

type CategoryStore interface {
	List(ctx context.Context) ([]category.Category, error)
	GetByID(ctx context.Context, id int64) (category.Category, error)
	GetByName(ctx context.Context, name string) (category.Category, error)
	Create(ctx context.Context, name string) (category.Category, error)
	Update(ctx context.Context, id int64, name string) (category.Category, error)
	Delete(ctx context.Context, id int64) error
	CountProjects(ctx context.Context, id int64) (int, error)
}

type SkillStore interface {
	List(ctx context.Context) ([]skill.Skill, error)
	GetByID(ctx context.Context, id int64) (skill.Skill, error)
	GetByName(ctx context.Context, name string) (skill.Skill, error)
	Create(ctx context.Context, name string) (skill.Skill, error)
	Update(ctx context.Context, id int64, name string) (skill.Skill, error)
	Delete(ctx context.Context, id int64) error
}

type ProjectStore interface {
	List(ctx context.Context, f project.ListFilter) ([]project.Project, int, error)
	GetByID(ctx context.Context, id int64) (project.Project, error)
	Create(ctx context.Context, req project.Request) (project.Project, error)
	Update(ctx context.Context, id int64, req project.Request) (project.Project, error)
	Delete(ctx context.Context, id int64) error
}

type AboutStore interface {
	Get(ctx context.Context) (about.About, error)
	Upsert(ctx context.Context, in about.Input) (about.About, error)
}

type ExperienceStore interface {
	List(ctx context.Context) ([]about.Experience, error)
	GetByID(ctx context.Context, id int64) (about.Experience, error)
	Create(ctx context.Context, in about.ExperienceInput) (about.Experience, error)
	Update(ctx context.Context, id int64, in about.ExperienceInput) (about.Experience, error)
	Delete(ctx context.Context, id int64) error
}

type EducationStore interface {
	List(ctx context.Context) ([]about.Education, error)
	GetByID(ctx context.Context, id int64) (about.Education, error)
	Create(ctx context.Context, in about.EducationInput) (about.Education, error)
	Update(ctx context.Context, id int64, in about.EducationInput) (about.Education, error)
	Delete(ctx context.Context, id int64) error
}

type TechStackStore interface {
	List(ctx context.Context) ([]about.TechStack, error)
	GetByID(ctx context.Context, id int64) (about.TechStack, error)
	Create(ctx context.Context, in about.TechStackInput) (about.TechStack, error)
	Update(ctx context.Context, id int64, in about.TechStackInput) (about.TechStack, error)
	Delete(ctx context.Context, id int64) error
}

type LocationStore interface {
	Get(ctx context.Context) (location.Location, error)
	Upsert(ctx context.Context, city, officeHours string) (location.Location, error)
}
