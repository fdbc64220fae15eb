package postgres

import (
	"context"

	"github.com/geocoder89/portfoliohub/internal/domain/skill"
)

type SkillsRepo struct {
	base
}

func (r *SkillsRepo) List(ctx context.Context) ([]skill.Skill, error) {
	out := make([]skill.Skill, 0)

	err := r.observe("skills.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT id, name, created_at, updated_at FROM skills ORDER BY name ASC`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var s skill.Skill
			if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
				return err
			}
			out = append(out, s)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SkillsRepo) GetByID(ctx context.Context, id int64) (skill.Skill, error) {
	return r.getOne(ctx, "skills.get", `SELECT id, name, created_at, updated_at FROM skills WHERE id = $1`, id)
}

func (r *SkillsRepo) GetByName(ctx context.Context, name string) (skill.Skill, error) {
	return r.getOne(ctx, "skills.get_by_name", `SELECT id, name, created_at, updated_at FROM skills WHERE name = $1`, name)
}

func (r *SkillsRepo) getOne(ctx context.Context, op, query string, arg any) (skill.Skill, error) {
	var s skill.Skill

	err := r.observe(op, func() error {
		return r.pool.QueryRow(ctx, query, arg).Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt)
	})
	if err != nil {
		if isNoRows(err) {
			return skill.Skill{}, skill.ErrNotFound
		}
		return skill.Skill{}, err
	}
	return s, nil
}

func (r *SkillsRepo) Create(ctx context.Context, name string) (skill.Skill, error) {
	var s skill.Skill

	err := r.observe("skills.create", func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO skills (name) VALUES ($1) RETURNING id, name, created_at, updated_at`, name,
		).Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt)
	})
	if err != nil {
		if pgCode(err) == codeUniqueViolation {
			return skill.Skill{}, skill.ErrNameTaken
		}
		return skill.Skill{}, err
	}
	return s, nil
}

func (r *SkillsRepo) Update(ctx context.Context, id int64, name string) (skill.Skill, error) {
	var s skill.Skill

	err := r.observe("skills.update", func() error {
		return r.pool.QueryRow(ctx, `
			UPDATE skills SET name = $2, updated_at = NOW()
			WHERE id = $1
			RETURNING id, name, created_at, updated_at`, id, name,
		).Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt)
	})
	if err != nil {
		if isNoRows(err) {
			return skill.Skill{}, skill.ErrNotFound
		}
		if pgCode(err) == codeUniqueViolation {
			return skill.Skill{}, skill.ErrNameTaken
		}
		return skill.Skill{}, err
	}
	return s, nil
}

// Delete removes the skill; project links go with it via ON DELETE CASCADE.
func (r *SkillsRepo) Delete(ctx context.Context, id int64) error {
	return r.observe("skills.delete", func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM skills WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return skill.ErrNotFound
		}
		return nil
	})
}
