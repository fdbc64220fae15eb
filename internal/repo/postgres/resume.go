package postgres

import (
	"context"

	"github.com/geocoder89/portfoliohub/internal/domain/about"
	"github.com/jackc/pgx/v5"
)

type ExperiencesRepo struct {
	base
}

const experienceColumns = `id, title, company, start_date, end_date, current, description, created_at, updated_at`

func scanExperience(row pgx.Row) (about.Experience, error) {
	var e about.Experience
	err := row.Scan(&e.ID, &e.Title, &e.Company, &e.StartDate, &e.EndDate, &e.Current, &e.Description, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func (r *ExperiencesRepo) List(ctx context.Context) ([]about.Experience, error) {
	out := make([]about.Experience, 0)

	err := r.observe("experiences.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT `+experienceColumns+` FROM experiences ORDER BY start_date DESC, id DESC`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			e, err := scanExperience(rows)
			if err != nil {
				return err
			}
			out = append(out, e)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ExperiencesRepo) GetByID(ctx context.Context, id int64) (about.Experience, error) {
	var e about.Experience
	err := r.observe("experiences.get", func() error {
		var err error
		e, err = scanExperience(r.pool.QueryRow(ctx, `SELECT `+experienceColumns+` FROM experiences WHERE id = $1`, id))
		return err
	})
	if err != nil {
		if isNoRows(err) {
			return about.Experience{}, about.ErrNotFound
		}
		return about.Experience{}, err
	}
	return e, nil
}

func (r *ExperiencesRepo) Create(ctx context.Context, in about.ExperienceInput) (about.Experience, error) {
	var e about.Experience
	err := r.observe("experiences.create", func() error {
		var err error
		e, err = scanExperience(r.pool.QueryRow(ctx, `
			INSERT INTO experiences (title, company, start_date, end_date, current, description)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+experienceColumns,
			in.Title, in.Company, in.StartDate, in.EndDate, in.Current, in.Description,
		))
		return err
	})
	return e, err
}

func (r *ExperiencesRepo) Update(ctx context.Context, id int64, in about.ExperienceInput) (about.Experience, error) {
	var e about.Experience
	err := r.observe("experiences.update", func() error {
		var err error
		e, err = scanExperience(r.pool.QueryRow(ctx, `
			UPDATE experiences
			SET title = $2, company = $3, start_date = $4, end_date = $5,
			    current = $6, description = $7, updated_at = NOW()
			WHERE id = $1
			RETURNING `+experienceColumns,
			id, in.Title, in.Company, in.StartDate, in.EndDate, in.Current, in.Description,
		))
		return err
	})
	if err != nil {
		if isNoRows(err) {
			return about.Experience{}, about.ErrNotFound
		}
		return about.Experience{}, err
	}
	return e, nil
}

func (r *ExperiencesRepo) Delete(ctx context.Context, id int64) error {
	return r.deleteRow(ctx, "experiences", id)
}

type EducationRepo struct {
	base
}

const educationColumns = `id, institution, degree, field, start_date, end_date, current, description, created_at, updated_at`

func scanEducation(row pgx.Row) (about.Education, error) {
	var e about.Education
	err := row.Scan(&e.ID, &e.Institution, &e.Degree, &e.Field, &e.StartDate, &e.EndDate, &e.Current, &e.Description, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func (r *EducationRepo) List(ctx context.Context) ([]about.Education, error) {
	out := make([]about.Education, 0)

	err := r.observe("education.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT `+educationColumns+` FROM education ORDER BY start_date DESC, id DESC`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			e, err := scanEducation(rows)
			if err != nil {
				return err
			}
			out = append(out, e)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *EducationRepo) GetByID(ctx context.Context, id int64) (about.Education, error) {
	var e about.Education
	err := r.observe("education.get", func() error {
		var err error
		e, err = scanEducation(r.pool.QueryRow(ctx, `SELECT `+educationColumns+` FROM education WHERE id = $1`, id))
		return err
	})
	if err != nil {
		if isNoRows(err) {
			return about.Education{}, about.ErrNotFound
		}
		return about.Education{}, err
	}
	return e, nil
}

func (r *EducationRepo) Create(ctx context.Context, in about.EducationInput) (about.Education, error) {
	var e about.Education
	err := r.observe("education.create", func() error {
		var err error
		e, err = scanEducation(r.pool.QueryRow(ctx, `
			INSERT INTO education (institution, degree, field, start_date, end_date, current, description)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+educationColumns,
			in.Institution, in.Degree, in.Field, in.StartDate, in.EndDate, in.Current, in.Description,
		))
		return err
	})
	return e, err
}

func (r *EducationRepo) Update(ctx context.Context, id int64, in about.EducationInput) (about.Education, error) {
	var e about.Education
	err := r.observe("education.update", func() error {
		var err error
		e, err = scanEducation(r.pool.QueryRow(ctx, `
			UPDATE education
			SET institution = $2, degree = $3, field = $4, start_date = $5, end_date = $6,
			    current = $7, description = $8, updated_at = NOW()
			WHERE id = $1
			RETURNING `+educationColumns,
			id, in.Institution, in.Degree, in.Field, in.StartDate, in.EndDate, in.Current, in.Description,
		))
		return err
	})
	if err != nil {
		if isNoRows(err) {
			return about.Education{}, about.ErrNotFound
		}
		return about.Education{}, err
	}
	return e, nil
}

func (r *EducationRepo) Delete(ctx context.Context, id int64) error {
	return r.deleteRow(ctx, "education", id)
}

type TechStackRepo struct {
	base
}

const techStackColumns = `id, name, icon, category, proficiency, created_at, updated_at`

func scanTechStack(row pgx.Row) (about.TechStack, error) {
	var t about.TechStack
	err := row.Scan(&t.ID, &t.Name, &t.Icon, &t.Category, &t.Proficiency, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *TechStackRepo) List(ctx context.Context) ([]about.TechStack, error) {
	out := make([]about.TechStack, 0)

	err := r.observe("tech_stack.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT `+techStackColumns+` FROM tech_stack ORDER BY category ASC, proficiency DESC, id ASC`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			t, err := scanTechStack(rows)
			if err != nil {
				return err
			}
			out = append(out, t)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *TechStackRepo) GetByID(ctx context.Context, id int64) (about.TechStack, error) {
	var t about.TechStack
	err := r.observe("tech_stack.get", func() error {
		var err error
		t, err = scanTechStack(r.pool.QueryRow(ctx, `SELECT `+techStackColumns+` FROM tech_stack WHERE id = $1`, id))
		return err
	})
	if err != nil {
		if isNoRows(err) {
			return about.TechStack{}, about.ErrNotFound
		}
		return about.TechStack{}, err
	}
	return t, nil
}

func (r *TechStackRepo) Create(ctx context.Context, in about.TechStackInput) (about.TechStack, error) {
	var t about.TechStack
	err := r.observe("tech_stack.create", func() error {
		var err error
		t, err = scanTechStack(r.pool.QueryRow(ctx, `
			INSERT INTO tech_stack (name, icon, category, proficiency)
			VALUES ($1, $2, $3, $4)
			RETURNING `+techStackColumns,
			in.Name, in.Icon, in.Category, in.Proficiency,
		))
		return err
	})
	return t, err
}

func (r *TechStackRepo) Update(ctx context.Context, id int64, in about.TechStackInput) (about.TechStack, error) {
	var t about.TechStack
	err := r.observe("tech_stack.update", func() error {
		var err error
		t, err = scanTechStack(r.pool.QueryRow(ctx, `
			UPDATE tech_stack
			SET name = $2, icon = $3, category = $4, proficiency = $5, updated_at = NOW()
			WHERE id = $1
			RETURNING `+techStackColumns,
			id, in.Name, in.Icon, in.Category, in.Proficiency,
		))
		return err
	})
	if err != nil {
		if isNoRows(err) {
			return about.TechStack{}, about.ErrNotFound
		}
		return about.TechStack{}, err
	}
	return t, nil
}

func (r *TechStackRepo) Delete(ctx context.Context, id int64) error {
	return r.deleteRow(ctx, "tech_stack", id)
}

// deleteRow removes one row from a resume table; table is never user input.
func (b base) deleteRow(ctx context.Context, table string, id int64) error {
	return b.observe(table+".delete", func() error {
		tag, err := b.pool.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return about.ErrNotFound
		}
		return nil
	})
}
