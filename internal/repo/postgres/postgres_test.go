package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/geocoder89/portfoliohub/internal/domain/project"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestContainsPattern(t *testing.T) {
	tests := map[string]string{
		"reel":     "%reel%",
		"50%":      `%50\%%`,
		"snake_ca": `%snake\_ca%`,
		`a\b`:      `%a\\b%`,
	}
	for in, want := range tests {
		if got := containsPattern(in); got != want {
			t.Fatalf("containsPattern(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPgCode(t *testing.T) {
	wrapped := fmt.Errorf("insert: %w", &pgconn.PgError{Code: codeUniqueViolation})
	if pgCode(wrapped) != codeUniqueViolation {
		t.Fatalf("expected unique violation code through wrapping")
	}
	if pgCode(errors.New("plain")) != "" {
		t.Fatalf("expected empty code for non-pg error")
	}
	if !isNoRows(fmt.Errorf("scan: %w", pgx.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to be detected")
	}
}

func TestMapProjectWriteErr(t *testing.T) {
	skillFK := &pgconn.PgError{Code: codeForeignKeyViolation, Message: `insert or update on table "project_skills" violates foreign key constraint "project_skills_skill_id_fkey"`}
	catFK := &pgconn.PgError{Code: codeForeignKeyViolation, Message: `insert or update on table "projects" violates foreign key constraint "projects_category_id_fkey"`}

	if !errors.Is(mapProjectWriteErr(skillFK), project.ErrSkillNotFound) {
		t.Fatalf("skill fk should map to ErrSkillNotFound")
	}
	if !errors.Is(mapProjectWriteErr(catFK), project.ErrCategoryNotFound) {
		t.Fatalf("category fk should map to ErrCategoryNotFound")
	}
	if !errors.Is(mapProjectWriteErr(project.ErrNotFound), project.ErrNotFound) {
		t.Fatalf("domain errors pass through")
	}
}
