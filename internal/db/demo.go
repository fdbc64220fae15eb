package db

import (
	"context"
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/geocoder89/portfoliohub/internal/domain/category"
	"github.com/geocoder89/portfoliohub/internal/domain/project"
	"github.com/geocoder89/portfoliohub/internal/domain/skill"
)

type DemoCategories interface {
	List(ctx context.Context) ([]category.Category, error)
}

type DemoSkills interface {
	GetByName(ctx context.Context, name string) (skill.Skill, error)
	Create(ctx context.Context, name string) (skill.Skill, error)
}

type DemoProjects interface {
	Create(ctx context.Context, req project.Request) (project.Project, error)
}

var demoSkills = []string{"Go", "PostgreSQL", "React", "Figma", "Swift", "Final Cut Pro"}

// SeedDemo adds n fake projects spread over the existing categories, each linked to a
// few of the demo skills. A fixed seed gives the same data on every run.
func SeedDemo(ctx context.Context, cats DemoCategories, skills DemoSkills, projects DemoProjects, n int, seed int64) ([]project.Project, error) {
	if n <= 0 {
		return nil, nil
	}

	categories, err := cats.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("seed categories before demo projects")
	}

	skillIDs := make([]int64, 0, len(demoSkills))
	for _, name := range demoSkills {
		s, err := skills.GetByName(ctx, name)
		if err != nil {
			if s, err = skills.Create(ctx, name); err != nil {
				return nil, fmt.Errorf("seed skill %q: %w", name, err)
			}
		}
		skillIDs = append(skillIDs, s.ID)
	}

	faker := gofakeit.New(seed)

	out := make([]project.Project, 0, n)
	for i := 0; i < n; i++ {
		desc := faker.Paragraph(1, 3, 12, " ")
		req := project.Request{
			Title:       faker.AppName(),
			Description: &desc,
			Logo:        "/uploads/demo-logo-" + faker.UUID() + ".png",
			Image:       faker.ImageURL(640, 480),
			CategoryID:  categories[faker.Number(0, len(categories)-1)].ID,
		}
		for _, id := range skillIDs {
			if faker.Bool() {
				req.Skills = append(req.Skills, id)
			}
		}

		p, err := projects.Create(ctx, req)
		if err != nil {
			return out, fmt.Errorf("create demo project: %w", err)
		}
		out = append(out, p)
	}
	return out, nil
}
