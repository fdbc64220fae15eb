package postgres

import (
	"context"

	"github.com/geocoder89/portfoliohub/internal/domain/about"
	"github.com/geocoder89/portfoliohub/internal/domain/location"
)

type AboutRepo struct {
	base
}

// Get returns the singleton row, inserting it with an empty biography first if
// needed. ON CONFLICT keeps concurrent first reads down to one row.
func (r *AboutRepo) Get(ctx context.Context) (about.About, error) {
	var a about.About

	err := r.observe("about.get", func() error {
		if _, err := r.pool.Exec(ctx,
			`INSERT INTO about (biography) VALUES ('') ON CONFLICT (singleton) DO NOTHING`,
		); err != nil {
			return err
		}
		return r.pool.QueryRow(ctx,
			`SELECT id, biography, resume_url, created_at, updated_at FROM about WHERE singleton`,
		).Scan(&a.ID, &a.Biography, &a.ResumeURL, &a.CreatedAt, &a.UpdatedAt)
	})
	if err != nil {
		return about.About{}, err
	}
	return a, nil
}

func (r *AboutRepo) Upsert(ctx context.Context, in about.Input) (about.About, error) {
	var a about.About

	err := r.observe("about.upsert", func() error {
		return r.pool.QueryRow(ctx, `
			INSERT INTO about (biography, resume_url) VALUES ($1, $2)
			ON CONFLICT (singleton) DO UPDATE
			SET biography = EXCLUDED.biography,
			    resume_url = EXCLUDED.resume_url,
			    updated_at = NOW()
			RETURNING id, biography, resume_url, created_at, updated_at`,
			in.Biography, in.ResumeURL,
		).Scan(&a.ID, &a.Biography, &a.ResumeURL, &a.CreatedAt, &a.UpdatedAt)
	})
	if err != nil {
		return about.About{}, err
	}
	return a, nil
}

type LocationRepo struct {
	base
}

func (r *LocationRepo) Get(ctx context.Context) (location.Location, error) {
	var l location.Location

	err := r.observe("location.get", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, city, office_hours, created_at, updated_at FROM locations WHERE singleton`,
		).Scan(&l.ID, &l.City, &l.OfficeHours, &l.CreatedAt, &l.UpdatedAt)
	})
	if err != nil {
		if isNoRows(err) {
			return location.Location{}, location.ErrNotFound
		}
		return location.Location{}, err
	}
	return l, nil
}

func (r *LocationRepo) Upsert(ctx context.Context, city, officeHours string) (location.Location, error) {
	var l location.Location

	err := r.observe("location.upsert", func() error {
		return r.pool.QueryRow(ctx, `
			INSERT INTO locations (city, office_hours) VALUES ($1, $2)
			ON CONFLICT (singleton) DO UPDATE
			SET city = EXCLUDED.city,
			    office_hours = EXCLUDED.office_hours,
			    updated_at = NOW()
			RETURNING id, city, office_hours, created_at, updated_at`,
			city, officeHours,
		).Scan(&l.ID, &l.City, &l.OfficeHours, &l.CreatedAt, &l.UpdatedAt)
	})
	if err != nil {
		return location.Location{}, err
	}
	return l, nil
}
