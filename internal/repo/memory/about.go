package memory

import (
	"context"

	"github.com/geocoder89/portfoliohub/internal/domain/about"
)

// singletonID is the id of the only About and Location rows, matching the first
// value of their identity columns in Postgres.
const singletonID int64 = 1

type AboutRepo struct {
	st *state
}

// Get returns the About row, creating it with an empty biography on first use.
func (r *AboutRepo) Get(_ context.Context) (about.About, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if r.st.about == nil {
		now := r.st.now()
		r.st.about = &about.About{ID: singletonID, CreatedAt: now, UpdatedAt: now}
	}
	return *r.st.about, nil
}

func (r *AboutRepo) Upsert(_ context.Context, in about.Input) (about.About, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	now := r.st.now()
	if r.st.about == nil {
		r.st.about = &about.About{ID: singletonID, CreatedAt: now}
	}
	r.st.about.Biography = in.Biography
	r.st.about.ResumeURL = in.ResumeURL
	r.st.about.UpdatedAt = now
	return *r.st.about, nil
}
