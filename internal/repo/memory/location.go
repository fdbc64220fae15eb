package memory

import (
	"context"

	"github.com/geocoder89/portfoliohub/internal/domain/location"
)

type LocationRepo struct {
	st *state
}

func (r *LocationRepo) Get(_ context.Context) (location.Location, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	if r.st.location == nil {
		return location.Location{}, location.ErrNotFound
	}
	return *r.st.location, nil
}

func (r *LocationRepo) Upsert(_ context.Context, city, officeHours string) (location.Location, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	now := r.st.now()
	if r.st.location == nil {
		r.st.location = &location.Location{ID: singletonID, CreatedAt: now}
	}
	r.st.location.City = city
	r.st.location.OfficeHours = officeHours
	r.st.location.UpdatedAt = now
	return *r.st.location, nil
}
