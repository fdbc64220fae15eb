package memory

import (
	"context"
	"sort"

	"github.com/geocoder89/portfoliohub/internal/domain/skill"
)

type SkillsRepo struct {
	st *state
}

func (r *SkillsRepo) List(_ context.Context) ([]skill.Skill, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	out := make([]skill.Skill, 0, len(r.st.skills))
	for _, s := range r.st.skills {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *SkillsRepo) GetByID(_ context.Context, id int64) (skill.Skill, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	s, ok := r.st.skills[id]
	if !ok {
		return skill.Skill{}, skill.ErrNotFound
	}
	return s, nil
}

func (r *SkillsRepo) GetByName(_ context.Context, name string) (skill.Skill, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	for _, s := range r.st.skills {
		if s.Name == name {
			return s, nil
		}
	}
	return skill.Skill{}, skill.ErrNotFound
}

func (r *SkillsRepo) Create(_ context.Context, name string) (skill.Skill, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if r.nameTaken(name, 0) {
		return skill.Skill{}, skill.ErrNameTaken
	}

	now := r.st.now()
	s := skill.Skill{ID: r.st.nextID(), Name: name, CreatedAt: now, UpdatedAt: now}
	r.st.skills[s.ID] = s
	return s, nil
}

func (r *SkillsRepo) Update(_ context.Context, id int64, name string) (skill.Skill, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	s, ok := r.st.skills[id]
	if !ok {
		return skill.Skill{}, skill.ErrNotFound
	}
	if r.nameTaken(name, id) {
		return skill.Skill{}, skill.ErrNameTaken
	}

	s.Name = name
	s.UpdatedAt = r.st.now()
	r.st.skills[id] = s
	return s, nil
}

// Delete also drops the skill from every project that links it.
func (r *SkillsRepo) Delete(_ context.Context, id int64) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, ok := r.st.skills[id]; !ok {
		return skill.ErrNotFound
	}
	delete(r.st.skills, id)

	for pid, p := range r.st.projects {
		kept := p.skillIDs[:0:0]
		for _, sid := range p.skillIDs {
			if sid != id {
				kept = append(kept, sid)
			}
		}
		p.skillIDs = kept
		r.st.projects[pid] = p
	}
	return nil
}

func (r *SkillsRepo) nameTaken(name string, exceptID int64) bool {
	for _, s := range r.st.skills {
		if s.Name == name && s.ID != exceptID {
			return true
		}
	}
	return false
}
