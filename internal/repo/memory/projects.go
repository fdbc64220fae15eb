package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/geocoder89/portfoliohub/internal/domain/category"
	"github.com/geocoder89/portfoliohub/internal/domain/project"
	"github.com/geocoder89/portfoliohub/internal/domain/skill"
)

type ProjectsRepo struct {
	st *state
}

// hydrate must be called with the lock held.
func (s *state) hydrate(row projectRow) project.Project {
	p := row.Project
	c := s.categories[p.CategoryID]
	p.Category = category.Category{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}

	p.Skills = make([]skill.Skill, 0, len(row.skillIDs))
	for _, id := range row.skillIDs {
		if sk, ok := s.skills[id]; ok {
			p.Skills = append(p.Skills, sk)
		}
	}
	sort.Slice(p.Skills, func(i, j int) bool { return p.Skills[i].Name < p.Skills[j].Name })
	return p
}

func matches(row projectRow, cats map[int64]category.Category, f project.ListFilter) bool {
	if f.Search != nil && *f.Search != "" {
		needle := strings.ToLower(*f.Search)
		desc := ""
		if row.Description != nil {
			desc = *row.Description
		}
		if !strings.Contains(strings.ToLower(row.Title), needle) && !strings.Contains(strings.ToLower(desc), needle) {
			return false
		}
	}
	if f.Category != nil && *f.Category != "" {
		if cats[row.CategoryID].Name != *f.Category {
			return false
		}
	}
	return true
}

func (r *ProjectsRepo) List(_ context.Context, f project.ListFilter) ([]project.Project, int, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	rows := make([]projectRow, 0, len(r.st.projects))
	for _, row := range r.st.projects {
		if matches(row, r.st.categories, f) {
			rows = append(rows, row)
		}
	}

	// newest first, id breaks ties so pages are stable
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].ID > rows[j].ID
	})

	total := len(rows)
	start := f.Offset()
	if start > total {
		start = total
	}
	end := start + f.Limit
	if end > total {
		end = total
	}

	out := make([]project.Project, 0, end-start)
	for _, row := range rows[start:end] {
		out = append(out, r.st.hydrate(row))
	}
	return out, total, nil
}

func (r *ProjectsRepo) GetByID(_ context.Context, id int64) (project.Project, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	row, ok := r.st.projects[id]
	if !ok {
		return project.Project{}, project.ErrNotFound
	}
	return r.st.hydrate(row), nil
}

// checkRefs must be called with the lock held.
func (s *state) checkRefs(req project.Request) error {
	if _, ok := s.categories[req.CategoryID]; !ok {
		return project.ErrCategoryNotFound
	}
	for _, id := range req.SkillIDs() {
		if _, ok := s.skills[id]; !ok {
			return project.ErrSkillNotFound
		}
	}
	return nil
}

func (r *ProjectsRepo) Create(_ context.Context, req project.Request) (project.Project, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if err := r.st.checkRefs(req); err != nil {
		return project.Project{}, err
	}

	now := r.st.now()
	row := projectRow{
		Project: project.Project{
			ID:          r.st.nextID(),
			Title:       req.Title,
			Description: req.Description,
			Logo:        req.Logo,
			Image:       req.Image,
			CategoryID:  req.CategoryID,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		skillIDs: req.SkillIDs(),
	}
	r.st.projects[row.ID] = row
	return r.st.hydrate(row), nil
}

// Update replaces every field and the whole skill set. Nothing changes if any
// reference is invalid.
func (r *ProjectsRepo) Update(_ context.Context, id int64, req project.Request) (project.Project, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	row, ok := r.st.projects[id]
	if !ok {
		return project.Project{}, project.ErrNotFound
	}
	if err := r.st.checkRefs(req); err != nil {
		return project.Project{}, err
	}

	row.Title = req.Title
	row.Description = req.Description
	row.Logo = req.Logo
	row.Image = req.Image
	row.CategoryID = req.CategoryID
	row.UpdatedAt = r.st.now()
	row.skillIDs = req.SkillIDs()

	r.st.projects[id] = row
	return r.st.hydrate(row), nil
}

func (r *ProjectsRepo) Delete(_ context.Context, id int64) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, ok := r.st.projects[id]; !ok {
		return project.ErrNotFound
	}
	delete(r.st.projects, id)
	return nil
}
