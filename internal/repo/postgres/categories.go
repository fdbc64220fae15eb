package postgres

import (
	"context"

	"github.com/geocoder89/portfoliohub/internal/domain/category"
)

type CategoriesRepo struct {
	base
}

func (r *CategoriesRepo) List(ctx context.Context) ([]category.Category, error) {
	out := make([]category.Category, 0)

	err := r.observe("categories.list", func() error {
		rows, err := r.pool.Query(ctx, `
			SELECT c.id, c.name, c.created_at, c.updated_at,
			       (SELECT COUNT(*) FROM projects p WHERE p.category_id = c.id)
			FROM categories c
			ORDER BY c.name ASC`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var c category.Category
			var n int
			if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt, &n); err != nil {
				return err
			}
			c.Count = &category.Count{Projects: n}
			out = append(out, c)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CategoriesRepo) GetByID(ctx context.Context, id int64) (category.Category, error) {
	var c category.Category
	var n int

	err := r.observe("categories.get", func() error {
		return r.pool.QueryRow(ctx, `
			SELECT c.id, c.name, c.created_at, c.updated_at,
			       (SELECT COUNT(*) FROM projects p WHERE p.category_id = c.id)
			FROM categories c
			WHERE c.id = $1`, id,
		).Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt, &n)
	})
	if err != nil {
		if isNoRows(err) {
			return category.Category{}, category.ErrNotFound
		}
		return category.Category{}, err
	}
	c.Count = &category.Count{Projects: n}
	return c, nil
}

func (r *CategoriesRepo) GetByName(ctx context.Context, name string) (category.Category, error) {
	var c category.Category

	err := r.observe("categories.get_by_name", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, name, created_at, updated_at FROM categories WHERE name = $1`, name,
		).Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	})
	if err != nil {
		if isNoRows(err) {
			return category.Category{}, category.ErrNotFound
		}
		return category.Category{}, err
	}
	return c, nil
}

func (r *CategoriesRepo) Create(ctx context.Context, name string) (category.Category, error) {
	var c category.Category

	err := r.observe("categories.create", func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO categories (name) VALUES ($1) RETURNING id, name, created_at, updated_at`, name,
		).Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	})
	if err != nil {
		if pgCode(err) == codeUniqueViolation {
			return category.Category{}, category.ErrNameTaken
		}
		return category.Category{}, err
	}
	return c, nil
}

func (r *CategoriesRepo) Update(ctx context.Context, id int64, name string) (category.Category, error) {
	var c category.Category

	err := r.observe("categories.update", func() error {
		return r.pool.QueryRow(ctx, `
			UPDATE categories SET name = $2, updated_at = NOW()
			WHERE id = $1
			RETURNING id, name, created_at, updated_at`, id, name,
		).Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	})
	if err != nil {
		if isNoRows(err) {
			return category.Category{}, category.ErrNotFound
		}
		if pgCode(err) == codeUniqueViolation {
			return category.Category{}, category.ErrNameTaken
		}
		return category.Category{}, err
	}
	return c, nil
}

// Delete refuses while projects reference the category; the RESTRICT foreign key
// backs up the explicit check.
func (r *CategoriesRepo) Delete(ctx context.Context, id int64) error {
	err := r.observe("categories.delete", func() error {
		tag, err := r.pool.Exec(ctx, `
			DELETE FROM categories
			WHERE id = $1
			  AND NOT EXISTS (SELECT 1 FROM projects WHERE category_id = $1)`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() > 0 {
			return nil
		}

		var inUse bool
		err = r.pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM projects WHERE category_id = $1)`, id,
		).Scan(&inUse)
		if err != nil {
			return err
		}
		if inUse {
			return category.ErrInUse
		}
		return category.ErrNotFound
	})

	if pgCode(err) == codeForeignKeyViolation {
		return category.ErrInUse
	}
	return err
}

func (r *CategoriesRepo) CountProjects(ctx context.Context, id int64) (int, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return c.Count.Projects, nil
}
