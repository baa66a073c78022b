package teams

import (
	"context"
	"path/filepath"
	"testing"

	"teaminsight/infrastructure/sqlite"
	"teaminsight/models"
)

func openTeamsTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.OpenDB(filepath.Join(t.TempDir(), "teams-test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := sqlite.ApplyEmbeddedMigrations(context.Background(), db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return db
}

func TestListTeamsOrdersByName(t *testing.T) {
	db := openTeamsTestDB(t)
	ctx := context.Background()

	for _, name := range []string{"zeta", "Alpha", "beta"} {
		if _, err := db.W.NewInsert().Model(&models.Team{Name: name}).Exec(ctx); err != nil {
			t.Fatalf("insert team %s: %v", name, err)
		}
	}

	teams, err := ListTeams(ctx, db)
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(teams) != 3 || teams[0].Name != "Alpha" || teams[1].Name != "beta" || teams[2].Name != "zeta" {
		t.Fatalf("unexpected team order: %+v", teams)
	}
}

func TestListTeamsEmpty(t *testing.T) {
	db := openTeamsTestDB(t)
	teams, err := ListTeams(context.Background(), db)
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if teams == nil || len(teams) != 0 {
		t.Fatalf("expected empty non-nil list, got %+v", teams)
	}
}
