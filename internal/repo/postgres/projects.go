package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/geocoder89/portfoliohub/internal/domain/project"
	"github.com/geocoder89/portfoliohub/internal/domain/skill"
	"github.com/jackc/pgx/v5"
)

type ProjectsRepo struct {
	base
}

const projectSelect = `
	SELECT p.id, p.title, p.description, p.logo, p.image, p.category_id, p.created_at, p.updated_at,
	       c.id, c.name, c.created_at, c.updated_at`

const projectFrom = `
	FROM projects p
	JOIN categories c ON c.id = p.category_id`

func scanProject(row pgx.Row, extra ...any) (project.Project, error) {
	var p project.Project
	dest := []any{
		&p.ID, &p.Title, &p.Description, &p.Logo, &p.Image, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt,
		&p.Category.ID, &p.Category.Name, &p.Category.CreatedAt, &p.Category.UpdatedAt,
	}
	err := row.Scan(append(dest, extra...)...)
	return p, err
}

func (r *ProjectsRepo) List(ctx context.Context, f project.ListFilter) ([]project.Project, int, error) {
	var conds []string
	var args []any

	argsPosition := 1

	if f.Search != nil && *f.Search != "" {
		conds = append(conds, fmt.Sprintf("(p.title ILIKE $%d OR p.description ILIKE $%d)", argsPosition, argsPosition))
		args = append(args, containsPattern(*f.Search))
		argsPosition++
	}

	if f.Category != nil && *f.Category != "" {
		conds = append(conds, fmt.Sprintf("c.name = $%d", argsPosition))
		args = append(args, *f.Category)
		argsPosition++
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	// stable ordering for pagination
	query := projectSelect + `, COUNT(*) OVER() AS total` + projectFrom + where +
		fmt.Sprintf(" ORDER BY p.created_at DESC, p.id DESC LIMIT $%d OFFSET $%d", argsPosition, argsPosition+1)

	out := make([]project.Project, 0, f.Limit)
	total := 0

	err := r.observe("projects.list", func() error {
		rows, err := r.pool.Query(ctx, query, append(args, f.Limit, f.Offset())...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var t int
			p, err := scanProject(rows, &t)
			if err != nil {
				return err
			}
			total = t
			out = append(out, p)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		// a page past the end has no rows to carry the window count
		if len(out) == 0 && f.Offset() > 0 {
			return r.pool.QueryRow(ctx, `SELECT COUNT(*)`+projectFrom+where, args...).Scan(&total)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	if err := r.attachSkills(ctx, r.pool, out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *ProjectsRepo) GetByID(ctx context.Context, id int64) (project.Project, error) {
	return r.get(ctx, r.pool, id)
}

func (r *ProjectsRepo) get(ctx context.Context, q pgxQuerier, id int64) (project.Project, error) {
	var p project.Project

	err := r.observe("projects.get", func() error {
		var err error
		p, err = scanProject(q.QueryRow(ctx, projectSelect+projectFrom+` WHERE p.id = $1`, id))
		return err
	})
	if err != nil {
		if isNoRows(err) {
			return project.Project{}, project.ErrNotFound
		}
		return project.Project{}, err
	}

	one := []project.Project{p}
	if err := r.attachSkills(ctx, q, one); err != nil {
		return project.Project{}, err
	}
	return one[0], nil
}

type pgxQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// attachSkills loads the skill sets of all given projects in one query.
func (r *ProjectsRepo) attachSkills(ctx context.Context, q pgxQuerier, projects []project.Project) error {
	if len(projects) == 0 {
		return nil
	}

	ids := make([]int64, len(projects))
	index := make(map[int64]int, len(projects))
	for i := range projects {
		ids[i] = projects[i].ID
		index[projects[i].ID] = i
		projects[i].Skills = make([]skill.Skill, 0)
	}

	return r.observe("projects.skills", func() error {
		rows, err := q.Query(ctx, `
			SELECT ps.project_id, s.id, s.name, s.created_at, s.updated_at
			FROM project_skills ps
			JOIN skills s ON s.id = ps.skill_id
			WHERE ps.project_id = ANY($1)
			ORDER BY s.name ASC`, ids)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var pid int64
			var s skill.Skill
			if err := rows.Scan(&pid, &s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
				return err
			}
			i := index[pid]
			projects[i].Skills = append(projects[i].Skills, s)
		}
		return rows.Err()
	})
}

// checkRefs locks the referenced category and skills for the rest of the
// transaction so they cannot be deleted before commit.
func checkRefs(ctx context.Context, tx pgx.Tx, req project.Request) error {
	var found bool
	err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1 FOR SHARE)`, req.CategoryID,
	).Scan(&found)
	if err != nil {
		return err
	}
	if !found {
		return project.ErrCategoryNotFound
	}

	skillIDs := req.SkillIDs()
	if len(skillIDs) == 0 {
		return nil
	}

	rows, err := tx.Query(ctx, `SELECT id FROM skills WHERE id = ANY($1) FOR SHARE`, skillIDs)
	if err != nil {
		return err
	}
	n := 0
	for rows.Next() {
		n++
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}
	if n != len(skillIDs) {
		return project.ErrSkillNotFound
	}
	return nil
}

func replaceSkills(ctx context.Context, tx pgx.Tx, projectID int64, skillIDs []int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM project_skills WHERE project_id = $1`, projectID); err != nil {
		return err
	}
	if len(skillIDs) == 0 {
		return nil
	}
	_, err := tx.Exec(ctx,
		`INSERT INTO project_skills (project_id, skill_id) SELECT $1, unnest($2::bigint[])`,
		projectID, skillIDs)
	return err
}

func mapProjectWriteErr(err error) error {
	if pgCode(err) == codeForeignKeyViolation {
		// a reference vanished between the check and the write
		if strings.Contains(err.Error(), "skill") {
			return project.ErrSkillNotFound
		}
		return project.ErrCategoryNotFound
	}
	return err
}

func (r *ProjectsRepo) Create(ctx context.Context, req project.Request) (project.Project, error) {
	var p project.Project

	err := r.observe("projects.create", func() error {
		return r.inTx(ctx, func(tx pgx.Tx) error {
			if err := checkRefs(ctx, tx, req); err != nil {
				return err
			}

			var id int64
			err := tx.QueryRow(ctx, `
				INSERT INTO projects (title, description, logo, image, category_id)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id`,
				req.Title, req.Description, req.Logo, req.Image, req.CategoryID,
			).Scan(&id)
			if err != nil {
				return err
			}

			if err := replaceSkills(ctx, tx, id, req.SkillIDs()); err != nil {
				return err
			}

			p, err = r.get(ctx, tx, id)
			return err
		})
	})
	if err != nil {
		return project.Project{}, mapProjectWriteErr(err)
	}
	return p, nil
}

// Update overwrites the row and swaps the skill set in one transaction, so readers
// never see a half-applied set.
func (r *ProjectsRepo) Update(ctx context.Context, id int64, req project.Request) (project.Project, error) {
	var p project.Project

	err := r.observe("projects.update", func() error {
		return r.inTx(ctx, func(tx pgx.Tx) error {
			var exists bool
			if err := tx.QueryRow(ctx,
				`SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1 FOR UPDATE)`, id,
			).Scan(&exists); err != nil {
				return err
			}
			if !exists {
				return project.ErrNotFound
			}

			if err := checkRefs(ctx, tx, req); err != nil {
				return err
			}

			_, err := tx.Exec(ctx, `
				UPDATE projects
				SET title = $2,
				    description = $3,
				    logo = $4,
				    image = $5,
				    category_id = $6,
				    updated_at = NOW()
				WHERE id = $1`,
				id, req.Title, req.Description, req.Logo, req.Image, req.CategoryID,
			)
			if err != nil {
				return err
			}

			if err := replaceSkills(ctx, tx, id, req.SkillIDs()); err != nil {
				return err
			}

			p, err = r.get(ctx, tx, id)
			return err
		})
	})
	if err != nil {
		return project.Project{}, mapProjectWriteErr(err)
	}
	return p, nil
}

func (r *ProjectsRepo) Delete(ctx context.Context, id int64) error {
	return r.observe("projects.delete", func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return project.ErrNotFound
		}
		return nil
	})
}
