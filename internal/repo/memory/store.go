// Package memory is an in-process store with the same contracts as the postgres
// repositories. It backs STORE=memory and the HTTP integration tests.
package memory

import (
	"sync"
	"time"

	"github.com/geocoder89/portfoliohub/internal/domain/about"
	"github.com/geocoder89/portfoliohub/internal/domain/category"
	"github.com/geocoder89/portfoliohub/internal/domain/location"
	"github.com/geocoder89/portfoliohub/internal/domain/project"
	"github.com/geocoder89/portfoliohub/internal/domain/skill"
	"github.com/geocoder89/portfoliohub/internal/domain/user"
)

// state is shared by every repo of one Store so cross-entity rules (category in
// use, skill links) are checked under a single lock.
type state struct {
	mu  sync.RWMutex
	now func() time.Time
	seq int64

	users       map[int64]user.User
	categories  map[int64]category.Category
	skills      map[int64]skill.Skill
	projects    map[int64]projectRow
	about       *about.About
	location    *location.Location
	experiences map[int64]about.Experience
	education   map[int64]about.Education
	techStack   map[int64]about.TechStack
}

// projectRow holds only the project's own columns; category and skills are
// resolved on read.
type projectRow struct {
	project.Project
	skillIDs []int64
}

// nextID must be called with the write lock held.
func (s *state) nextID() int64 {
	s.seq++
	return s.seq
}

type Store struct {
	Users       *UsersRepo
	Categories  *CategoriesRepo
	Skills      *SkillsRepo
	Projects    *ProjectsRepo
	About       *AboutRepo
	Experiences *ExperiencesRepo
	Education   *EducationRepo
	TechStack   *TechStackRepo
	Location    *LocationRepo

	st *state
}

func New() *Store {
	st := &state{
		now:         func() time.Time { return time.Now().UTC() },
		users:       make(map[int64]user.User),
		categories:  make(map[int64]category.Category),
		skills:      make(map[int64]skill.Skill),
		projects:    make(map[int64]projectRow),
		experiences: make(map[int64]about.Experience),
		education:   make(map[int64]about.Education),
		techStack:   make(map[int64]about.TechStack),
	}

	return &Store{
		Users:       &UsersRepo{st: st},
		Categories:  &CategoriesRepo{st: st},
		Skills:      &SkillsRepo{st: st},
		Projects:    &ProjectsRepo{st: st},
		About:       &AboutRepo{st: st},
		Experiences: &ExperiencesRepo{st: st},
		Education:   &EducationRepo{st: st},
		TechStack:   &TechStackRepo{st: st},
		Location:    &LocationRepo{st: st},
		st:          st,
	}
}

// SetClock replaces the timestamp source; tests use it to get distinct creation times.
func (s *Store) SetClock(now func() time.Time) {
	s.st.mu.Lock()
	s.st.now = now
	s.st.mu.Unlock()
}
