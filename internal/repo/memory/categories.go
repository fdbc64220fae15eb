package memory

import (
	"context"
	"sort"

	"github.com/geocoder89/portfoliohub/internal/domain/category"
)

type CategoriesRepo struct {
	st *state
}

// withCount must be called with the lock held.
func (s *state) withCount(c category.Category) category.Category {
	n := 0
	for _, p := range s.projects {
		if p.CategoryID == c.ID {
			n++
		}
	}
	c.Count = &category.Count{Projects: n}
	return c
}

func (r *CategoriesRepo) List(_ context.Context) ([]category.Category, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	out := make([]category.Category, 0, len(r.st.categories))
	for _, c := range r.st.categories {
		out = append(out, r.st.withCount(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CategoriesRepo) GetByID(_ context.Context, id int64) (category.Category, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	c, ok := r.st.categories[id]
	if !ok {
		return category.Category{}, category.ErrNotFound
	}
	return r.st.withCount(c), nil
}

func (r *CategoriesRepo) GetByName(_ context.Context, name string) (category.Category, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	for _, c := range r.st.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return category.Category{}, category.ErrNotFound
}

func (r *CategoriesRepo) Create(_ context.Context, name string) (category.Category, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if r.nameTaken(name, 0) {
		return category.Category{}, category.ErrNameTaken
	}

	now := r.st.now()
	c := category.Category{ID: r.st.nextID(), Name: name, CreatedAt: now, UpdatedAt: now}
	r.st.categories[c.ID] = c
	return c, nil
}

func (r *CategoriesRepo) Update(_ context.Context, id int64, name string) (category.Category, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	c, ok := r.st.categories[id]
	if !ok {
		return category.Category{}, category.ErrNotFound
	}
	if r.nameTaken(name, id) {
		return category.Category{}, category.ErrNameTaken
	}

	c.Name = name
	c.UpdatedAt = r.st.now()
	r.st.categories[id] = c
	return c, nil
}

func (r *CategoriesRepo) Delete(_ context.Context, id int64) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, ok := r.st.categories[id]; !ok {
		return category.ErrNotFound
	}
	for _, p := range r.st.projects {
		if p.CategoryID == id {
			return category.ErrInUse
		}
	}
	delete(r.st.categories, id)
	return nil
}

func (r *CategoriesRepo) CountProjects(_ context.Context, id int64) (int, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	c, ok := r.st.categories[id]
	if !ok {
		return 0, category.ErrNotFound
	}
	return r.st.withCount(c).Count.Projects, nil
}

func (r *CategoriesRepo) nameTaken(name string, exceptID int64) bool {
	for _, c := range r.st.categories {
		if c.Name == name && c.ID != exceptID {
			return true
		}
	}
	return false
}
