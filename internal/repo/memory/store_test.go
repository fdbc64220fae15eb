package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/geocoder89/portfoliohub/internal/domain/about"
	"github.com/geocoder89/portfoliohub/internal/domain/category"
	"github.com/geocoder89/portfoliohub/internal/domain/location"
	"github.com/geocoder89/portfoliohub/internal/domain/project"
	"github.com/geocoder89/portfoliohub/internal/domain/skill"
	"github.com/geocoder89/portfoliohub/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func steppingClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

func newStore() *Store {
	s := New()
	s.SetClock(steppingClock())
	return s
}

func ids(skills []skill.Skill) []int64 {
	out := make([]int64, 0, len(skills))
	for _, s := range skills {
		out = append(out, s.ID)
	}
	return out
}

func TestCategoryNameUnique(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	a, err := s.Categories.Create(ctx, "Web Design")
	require.NoError(t, err)

	_, err = s.Categories.Create(ctx, "Web Design")
	assert.ErrorIs(t, err, category.ErrNameTaken)

	b, err := s.Categories.Create(ctx, "Side Projects")
	require.NoError(t, err)

	_, err = s.Categories.Update(ctx, b.ID, "Web Design")
	assert.ErrorIs(t, err, category.ErrNameTaken)

	// renaming to its own name is fine
	_, err = s.Categories.Update(ctx, a.ID, "Web Design")
	assert.NoError(t, err)

	list, err := s.Categories.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, "Side Projects", list[0].Name)
}

func TestCategoryDeleteBlockedWhileInUse(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	c, _ := s.Categories.Create(ctx, "Web Design")
	p, err := s.Projects.Create(ctx, project.Request{Title: "Site", Logo: "l", Image: "i", CategoryID: c.ID})
	require.NoError(t, err)

	n, err := s.Categories.CountProjects(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.ErrorIs(t, s.Categories.Delete(ctx, c.ID), category.ErrInUse)

	got, err := s.Categories.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Count.Projects)

	_, err = s.Projects.GetByID(ctx, p.ID)
	require.NoError(t, err)

	require.NoError(t, s.Projects.Delete(ctx, p.ID))
	require.NoError(t, s.Categories.Delete(ctx, c.ID))
	assert.ErrorIs(t, s.Categories.Delete(ctx, c.ID), category.ErrNotFound)
}

func TestProjectSkillsReplacedWholesale(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	c, _ := s.Categories.Create(ctx, "Web Design")
	s1, _ := s.Skills.Create(ctx, "Go")
	s2, _ := s.Skills.Create(ctx, "SQL")
	s3, _ := s.Skills.Create(ctx, "CSS")

	p, err := s.Projects.Create(ctx, project.Request{
		Title: "Site", Logo: "l", Image: "i", CategoryID: c.ID, Skills: []int64{s1.ID, s2.ID},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{s1.ID, s2.ID}, ids(p.Skills))

	p, err = s.Projects.Update(ctx, p.ID, project.Request{
		Title: "Site", Logo: "l", Image: "i", CategoryID: c.ID, Skills: []int64{s3.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{s3.ID}, ids(p.Skills))

	// omitted skills clear the set
	p, err = s.Projects.Update(ctx, p.ID, project.Request{Title: "Site", Logo: "l", Image: "i", CategoryID: c.ID})
	require.NoError(t, err)
	assert.Empty(t, p.Skills)
}

func TestProjectUpdateWithUnknownSkillChangesNothing(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	c, _ := s.Categories.Create(ctx, "Web Design")
	s1, _ := s.Skills.Create(ctx, "Go")

	p, err := s.Projects.Create(ctx, project.Request{Title: "Site", Logo: "l", Image: "i", CategoryID: c.ID, Skills: []int64{s1.ID}})
	require.NoError(t, err)

	_, err = s.Projects.Update(ctx, p.ID, project.Request{Title: "Changed", Logo: "l", Image: "i", CategoryID: c.ID, Skills: []int64{999}})
	assert.ErrorIs(t, err, project.ErrSkillNotFound)

	got, err := s.Projects.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Site", got.Title)
	assert.Equal(t, []int64{s1.ID}, ids(got.Skills))

	_, err = s.Projects.Create(ctx, project.Request{Title: "x", Logo: "l", Image: "i", CategoryID: 999})
	assert.ErrorIs(t, err, project.ErrCategoryNotFound)
}

func TestProjectListPagination(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	c, _ := s.Categories.Create(ctx, "Web Design")
	for i := 1; i <= 25; i++ {
		_, err := s.Projects.Create(ctx, project.Request{Title: fmt.Sprintf("P%02d", i), Logo: "l", Image: "i", CategoryID: c.ID})
		require.NoError(t, err)
	}

	items, total, err := s.Projects.List(ctx, project.ListFilter{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 25, total)
	assert.Len(t, items, 10)
	assert.Equal(t, "P15", items[0].Title, "newest first")

	items, _, err = s.Projects.List(ctx, project.ListFilter{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, items, 5)

	items, total, err = s.Projects.List(ctx, project.ListFilter{Page: 9, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 25, total)
}

func TestProjectListFilters(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	web, _ := s.Categories.Create(ctx, "Web Design")
	video, _ := s.Categories.Create(ctx, "Video Projects")
	desc := "A promo REEL for a client"

	_, _ = s.Projects.Create(ctx, project.Request{Title: "Portfolio site", Logo: "l", Image: "i", CategoryID: web.ID})
	_, _ = s.Projects.Create(ctx, project.Request{Title: "Launch", Description: &desc, Logo: "l", Image: "i", CategoryID: video.ID})

	search := "reel"
	items, total, err := s.Projects.List(ctx, project.ListFilter{Search: &search, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Launch", items[0].Title)

	cat := "Web Design"
	items, _, err = s.Projects.List(ctx, project.ListFilter{Category: &cat, Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Web Design", items[0].Category.Name)
}

func TestSkillDeleteRemovesLinks(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	c, _ := s.Categories.Create(ctx, "Web Design")
	s1, _ := s.Skills.Create(ctx, "Go")
	p, _ := s.Projects.Create(ctx, project.Request{Title: "x", Logo: "l", Image: "i", CategoryID: c.ID, Skills: []int64{s1.ID}})

	require.NoError(t, s.Skills.Delete(ctx, s1.ID))

	got, err := s.Projects.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Skills)
}

func TestAboutGetOrCreateIsIdempotent(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	first, err := s.About.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", first.Biography)

	second, err := s.About.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	url := "/uploads/cv.pdf"
	updated, err := s.About.Upsert(ctx, about.Input{Biography: "hello", ResumeURL: &url})
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.ID)
	assert.Equal(t, "hello", updated.Biography)
}

func TestConcurrentAboutGetCreatesOneRow(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	got := make([]int64, 20)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, _ := s.About.Get(ctx)
			got[i] = a.ID
		}(i)
	}
	wg.Wait()

	for _, id := range got {
		assert.Equal(t, got[0], id)
	}
}

func TestLocationUpsert(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	_, err := s.Location.Get(ctx)
	assert.ErrorIs(t, err, location.ErrNotFound)

	a, err := s.Location.Upsert(ctx, "Nashville, TN", "in office till 6")
	require.NoError(t, err)
	b, err := s.Location.Upsert(ctx, "Austin, TX", "9-5")
	require.NoError(t, err)

	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, "Austin, TX", b.City)
}

func TestSingletonIDsIgnoreOtherRows(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	_, err := s.Categories.Create(ctx, "Web")
	require.NoError(t, err)
	_, err = s.Skills.Create(ctx, "Go")
	require.NoError(t, err)

	a, err := s.About.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ID)

	loc, err := s.Location.Upsert(ctx, "Nashville, TN", "9-5")
	require.NoError(t, err)
	assert.Equal(t, int64(1), loc.ID)
}

func TestResumeOrdering(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	d := func(y int) time.Time { return time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC) }
	_, _ = s.Experiences.Create(ctx, about.ExperienceInput{Title: "old", StartDate: d(2015), Current: false})
	_, _ = s.Experiences.Create(ctx, about.ExperienceInput{Title: "new", StartDate: d(2021), Current: true})

	exps, err := s.Experiences.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new", exps[0].Title)

	_, _ = s.TechStack.Create(ctx, about.TechStackInput{Name: "Go", Category: "Backend", Proficiency: 80})
	_, _ = s.TechStack.Create(ctx, about.TechStackInput{Name: "Rust", Category: "Backend", Proficiency: 95})
	_, _ = s.TechStack.Create(ctx, about.TechStackInput{Name: "Figma", Category: "Design", Proficiency: 99})

	ts, err := s.TechStack.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rust", "Go", "Figma"}, []string{ts[0].Name, ts[1].Name, ts[2].Name})

	assert.ErrorIs(t, s.Education.Delete(ctx, 42), about.ErrNotFound)
	_, err = s.TechStack.Update(ctx, 42, about.TechStackInput{})
	assert.ErrorIs(t, err, about.ErrNotFound)
}

func TestUsers(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	u, err := s.Users.Create(ctx, "admin@example.com", "hash", "Admin", "admin")
	require.NoError(t, err)

	_, err = s.Users.Create(ctx, "ADMIN@example.com", "hash", "Admin", "admin")
	assert.ErrorIs(t, err, user.ErrEmailTaken)

	got, err := s.Users.GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = s.Users.GetByID(ctx, 999)
	assert.ErrorIs(t, err, user.ErrNotFound)
}
