package db

import (
	"path/filepath"
	"testing"

	"github.com/yungbote/aicourse-backend/internal/domain/course"
	"github.com/yungbote/aicourse-backend/internal/platform/logger"
)

func TestIsPostgresDSN(t *testing.T) {
	cases := map[string]bool{
		"postgres://u:p@localhost:5432/db":      true,
		"postgresql://localhost/db":             true,
		"host=localhost user=u dbname=db":       true,
		"aicourse.db":                           false,
		"file:test.db?cache=shared&mode=memory": false,
	}
	for dsn, want := range cases {
		if got := isPostgresDSN(dsn); got != want {
			t.Fatalf("isPostgresDSN(%q): want=%v got=%v", dsn, want, got)
		}
	}
}

func TestOpenSqliteMigrates(t *testing.T) {
	db, err := Open(logger.Nop(), Config{DSN: filepath.Join(t.TempDir(), "runs.db")})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !db.Migrator().HasTable(&course.ProcessingRun{}) {
		t.Fatalf("expected processing_run table")
	}
}
