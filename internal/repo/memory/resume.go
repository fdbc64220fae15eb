package memory

import (
	"context"
	"sort"
	"time"

	"github.com/geocoder89/portfoliohub/internal/domain/about"
)

type ExperiencesRepo struct {
	st *state
}

func (r *ExperiencesRepo) List(_ context.Context) ([]about.Experience, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	out := make([]about.Experience, 0, len(r.st.experiences))
	for _, e := range r.st.experiences {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.After(out[j].StartDate)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *ExperiencesRepo) GetByID(_ context.Context, id int64) (about.Experience, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	e, ok := r.st.experiences[id]
	if !ok {
		return about.Experience{}, about.ErrNotFound
	}
	return e, nil
}

func (r *ExperiencesRepo) Create(_ context.Context, in about.ExperienceInput) (about.Experience, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	now := r.st.now()
	e := about.Experience{ID: r.st.nextID(), CreatedAt: now}
	applyExperience(&e, in, now)
	r.st.experiences[e.ID] = e
	return e, nil
}

func (r *ExperiencesRepo) Update(_ context.Context, id int64, in about.ExperienceInput) (about.Experience, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	e, ok := r.st.experiences[id]
	if !ok {
		return about.Experience{}, about.ErrNotFound
	}
	applyExperience(&e, in, r.st.now())
	r.st.experiences[id] = e
	return e, nil
}

func (r *ExperiencesRepo) Delete(_ context.Context, id int64) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, ok := r.st.experiences[id]; !ok {
		return about.ErrNotFound
	}
	delete(r.st.experiences, id)
	return nil
}

func applyExperience(e *about.Experience, in about.ExperienceInput, now time.Time) {
	e.Title = in.Title
	e.Company = in.Company
	e.StartDate = in.StartDate
	e.EndDate = in.EndDate
	e.Current = in.Current
	e.Description = in.Description
	e.UpdatedAt = now
}

type EducationRepo struct {
	st *state
}

func (r *EducationRepo) List(_ context.Context) ([]about.Education, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	out := make([]about.Education, 0, len(r.st.education))
	for _, e := range r.st.education {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.After(out[j].StartDate)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *EducationRepo) GetByID(_ context.Context, id int64) (about.Education, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	e, ok := r.st.education[id]
	if !ok {
		return about.Education{}, about.ErrNotFound
	}
	return e, nil
}

func (r *EducationRepo) Create(_ context.Context, in about.EducationInput) (about.Education, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	now := r.st.now()
	e := about.Education{ID: r.st.nextID(), CreatedAt: now}
	applyEducation(&e, in, now)
	r.st.education[e.ID] = e
	return e, nil
}

func (r *EducationRepo) Update(_ context.Context, id int64, in about.EducationInput) (about.Education, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	e, ok := r.st.education[id]
	if !ok {
		return about.Education{}, about.ErrNotFound
	}
	applyEducation(&e, in, r.st.now())
	r.st.education[id] = e
	return e, nil
}

func (r *EducationRepo) Delete(_ context.Context, id int64) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, ok := r.st.education[id]; !ok {
		return about.ErrNotFound
	}
	delete(r.st.education, id)
	return nil
}

func applyEducation(e *about.Education, in about.EducationInput, now time.Time) {
	e.Institution = in.Institution
	e.Degree = in.Degree
	e.Field = in.Field
	e.StartDate = in.StartDate
	e.EndDate = in.EndDate
	e.Current = in.Current
	e.Description = in.Description
	e.UpdatedAt = now
}

type TechStackRepo struct {
	st *state
}

func (r *TechStackRepo) List(_ context.Context) ([]about.TechStack, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	out := make([]about.TechStack, 0, len(r.st.techStack))
	for _, t := range r.st.techStack {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		if out[i].Proficiency != out[j].Proficiency {
			return out[i].Proficiency > out[j].Proficiency
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *TechStackRepo) GetByID(_ context.Context, id int64) (about.TechStack, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	t, ok := r.st.techStack[id]
	if !ok {
		return about.TechStack{}, about.ErrNotFound
	}
	return t, nil
}

func (r *TechStackRepo) Create(_ context.Context, in about.TechStackInput) (about.TechStack, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	now := r.st.now()
	t := about.TechStack{
		ID:          r.st.nextID(),
		Name:        in.Name,
		Icon:        in.Icon,
		Category:    in.Category,
		Proficiency: in.Proficiency,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.st.techStack[t.ID] = t
	return t, nil
}

func (r *TechStackRepo) Update(_ context.Context, id int64, in about.TechStackInput) (about.TechStack, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	t, ok := r.st.techStack[id]
	if !ok {
		return about.TechStack{}, about.ErrNotFound
	}
	t.Name = in.Name
	t.Icon = in.Icon
	t.Category = in.Category
	t.Proficiency = in.Proficiency
	t.UpdatedAt = r.st.now()
	r.st.techStack[id] = t
	return t, nil
}

func (r *TechStackRepo) Delete(_ context.Context, id int64) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, ok := r.st.techStack[id]; !ok {
		return about.ErrNotFound
	}
	delete(r.st.techStack, id)
	return nil
}
