// Package postgres implements the stores on pgx.
package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/geocoder89/portfoliohub/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// Store bundles one repository per table, sharing a pool and the DB metrics.
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
}

func NewStore(pool *pgxpool.Pool, prom *observability.Prom) *Store {
	b := base{pool: pool, prom: prom}
	return &Store{
		Users:       &UsersRepo{b},
		Categories:  &CategoriesRepo{b},
		Skills:      &SkillsRepo{b},
		Projects:    &ProjectsRepo{b},
		About:       &AboutRepo{b},
		Experiences: &ExperiencesRepo{b},
		Education:   &EducationRepo{b},
		TechStack:   &TechStackRepo{b},
		Location:    &LocationRepo{b},
	}
}

type base struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

// observe wraps a query in the DB metrics. A nil Prom is allowed.
func (b base) observe(op string, fn func() error) error {
	return b.prom.ObserveDB(op, fn)
}

// inTx runs fn inside one transaction, rolling back on any error.
func (b base) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := b.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}

	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern that matches s literally anywhere.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
