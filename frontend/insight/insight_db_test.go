package insight

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/uptrace/bun"

	"teaminsight/infrastructure/sqlite"
	"teaminsight/models"
)

func openInsightTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "insight-test.db")
	db, err := sqlite.OpenDB(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller unavailable")
	}
	migrationsDir := filepath.Join(filepath.Dir(file), "..", "..", "infrastructure", "sqlite", "migrations")
	if err := sqlite.ApplyMigrations(context.Background(), db, migrationsDir); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return db
}

// seedInsight creates team 1 with projects Alpha (8 members), Beta (0
// members) and "Gamma_1" (2 members), plus team 2 with project Delta.
func seedInsight(t *testing.T, db *sqlite.DB) {
	t.Helper()
	err := db.WithWriteTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		stmts := []string{
			`INSERT INTO teams (id, name) VALUES (1, 'Team One'), (2, 'Team Two')`,
			`INSERT INTO project_sets (id, team_id, name) VALUES (10, 1, 'Set A'), (20, 2, 'Set B')`,
			`INSERT INTO projects (id, team_id, project_set_id, name) VALUES
				(100, 1, 10, 'Alpha'),
				(101, 1, 10, 'beta'),
				(102, 1, 10, 'Gamma_1'),
				(200, 2, 20, 'Delta')`,
			`INSERT INTO roles (id, name) VALUES (1, 'owner'), (2, 'translator')`,
		}
		for _, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		for i := 1; i <= 10; i++ {
			if _, err := tx.ExecContext(ctx, `INSERT INTO users (id, name) VALUES (?, ?)`, i, fmt.Sprintf("user-%02d", i)); err != nil {
				return err
			}
		}
		// Insert out of id order to prove ordering comes from the query.
		for _, userID := range []int{8, 3, 1, 7, 2, 6, 5, 4} {
			roleID := 2
			if userID == 1 {
				roleID = 1
			}
			if _, err := tx.ExecContext(ctx, `INSERT INTO project_members (project_id, user_id, role_id) VALUES (100, ?, ?)`, userID, roleID); err != nil {
				return err
			}
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO project_members (project_id, user_id, role_id) VALUES (102, 9, 2), (102, 10, 2), (200, 1, 1)`)
		return err
	})
	if err != nil {
		t.Fatalf("seed insight data: %v", err)
	}
}

func TestStoreListProjects_PreviewAndCount(t *testing.T) {
	db := openInsightTestDB(t)
	seedInsight(t, db)
	store := NewStore(db)

	page, err := store.ListProjects(context.Background(), 1, models.InsightProjectQuery{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if page.Total != 3 {
		t.Fatalf("expected total=3, got %d", page.Total)
	}
	if len(page.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(page.Items))
	}

	names := []string{page.Items[0].Project.Name, page.Items[1].Project.Name, page.Items[2].Project.Name}
	if names[0] != "Alpha" || names[1] != "beta" || names[2] != "Gamma_1" {
		t.Fatalf("expected case-insensitive name order, got %v", names)
	}

	alpha := page.Items[0]
	if alpha.Count != 8 {
		t.Fatalf("expected alpha count=8, got %d", alpha.Count)
	}
	if alpha.Project.ProjectSet.ID != 10 {
		t.Fatalf("expected alpha project set 10, got %d", alpha.Project.ProjectSet.ID)
	}
	if len(alpha.Users) != PreviewUsers {
		t.Fatalf("expected %d preview users, got %d", PreviewUsers, len(alpha.Users))
	}
	for i, user := range alpha.Users {
		if user.ID != int64(i+1) {
			t.Fatalf("expected preview ordered by user id, got %+v", alpha.Users)
		}
	}
	if alpha.Users[0].Role.Name != "owner" {
		t.Fatalf("expected user 1 role owner, got %q", alpha.Users[0].Role.Name)
	}

	beta := page.Items[1]
	if beta.Count != 0 || beta.Users == nil || len(beta.Users) != 0 {
		t.Fatalf("expected beta to have an empty, non-nil roster, got %+v", beta)
	}
}

func TestStoreListProjects_WordFilterAndPaging(t *testing.T) {
	db := openInsightTestDB(t)
	seedInsight(t, db)
	store := NewStore(db)

	page, err := store.ListProjects(context.Background(), 1, models.InsightProjectQuery{Word: "ALP", Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if page.Total != 1 || len(page.Items) != 1 || page.Items[0].Project.ID != 100 {
		t.Fatalf("expected only Alpha for word ALP, got %+v", page)
	}

	// Underscore must match literally, not as a LIKE wildcard.
	page, err = store.ListProjects(context.Background(), 1, models.InsightProjectQuery{Word: "a_1", Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if page.Total != 1 || page.Items[0].Project.Name != "Gamma_1" {
		t.Fatalf("expected only Gamma_1 for word a_1, got %+v", page)
	}

	page, err = store.ListProjects(context.Background(), 1, models.InsightProjectQuery{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("list projects page 2: %v", err)
	}
	if page.Total != 3 || len(page.Items) != 1 || page.Items[0].Project.Name != "Gamma_1" {
		t.Fatalf("expected page 2 to hold Gamma_1 only, got %+v", page)
	}

	page, err = store.ListProjects(context.Background(), 1, models.InsightProjectQuery{Word: "nothing", Page: 1})
	if err != nil {
		t.Fatalf("list projects no match: %v", err)
	}
	if page.Total != 0 || page.Items == nil || len(page.Items) != 0 {
		t.Fatalf("expected empty non-nil items, got %+v", page)
	}
}

func TestStoreListProjects_ScopedToTeam(t *testing.T) {
	db := openInsightTestDB(t)
	seedInsight(t, db)
	store := NewStore(db)

	page, err := store.ListProjects(context.Background(), 2, models.InsightProjectQuery{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if page.Total != 1 || page.Items[0].Project.Name != "Delta" {
		t.Fatalf("expected only Delta for team 2, got %+v", page)
	}
}

func TestStoreListProjectUsers_Pages(t *testing.T) {
	db := openInsightTestDB(t)
	seedInsight(t, db)
	store := NewStore(db)

	first, err := store.ListProjectUsers(context.Background(), 1, 100, models.InsightUserQuery{Page: 1, Limit: 5})
	if err != nil {
		t.Fatalf("list users page 1: %v", err)
	}
	second, err := store.ListProjectUsers(context.Background(), 1, 100, models.InsightUserQuery{Page: 2, Limit: 5})
	if err != nil {
		t.Fatalf("list users page 2: %v", err)
	}
	if len(first) != 5 || len(second) != 3 {
		t.Fatalf("expected 5+3 users, got %d+%d", len(first), len(second))
	}
	if first[0].ID != 1 || second[0].ID != 6 || second[2].ID != 8 {
		t.Fatalf("unexpected user order: first=%+v second=%+v", first, second)
	}
}

func TestStoreListProjectUsers_ProjectOfOtherTeam(t *testing.T) {
	db := openInsightTestDB(t)
	seedInsight(t, db)
	store := NewStore(db)

	_, err := store.ListProjectUsers(context.Background(), 1, 200, models.InsightUserQuery{Page: 1, Limit: 20})
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestLikePatternEscapesWildcards(t *testing.T) {
	cases := map[string]string{
		"":        "",
		"  ":      "",
		"abc":     "%abc%",
		"50%":     `%50\%%`,
		"a_b":     `%a\_b%`,
		`back\sl`: `%back\\sl%`,
	}
	for in, want := range cases {
		if got := likePattern(in); got != want {
			t.Fatalf("likePattern(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStoreListProjects_HugePageIsEmpty(t *testing.T) {
	db := openInsightTestDB(t)
	seedInsight(t, db)
	store := NewStore(db)

	page, err := store.ListProjects(context.Background(), 1, models.InsightProjectQuery{Page: math.MaxInt, Limit: 10})
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if page.Total != 3 || len(page.Items) != 0 {
		t.Fatalf("expected no rows past the last page, got %+v", page)
	}

	users, err := store.ListProjectUsers(context.Background(), 1, 100, models.InsightUserQuery{Page: math.MaxInt, Limit: 20})
	if err != nil {
		t.Fatalf("list project users: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected no users past the last page, got %+v", users)
	}
}

func TestNormalizePageBoundsOffset(t *testing.T) {
	cases := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{page: 0, limit: 0, wantPage: 1, wantLimit: 10},
		{page: 3, limit: 5, wantPage: 3, wantLimit: 5},
		{page: 1, limit: 5000, wantPage: 1, wantLimit: 100},
		{page: math.MaxInt, limit: 10, wantPage: math.MaxInt32 / 10, wantLimit: 10},
	}
	for _, tc := range cases {
		page, limit := normalizePage(tc.page, tc.limit, 10)
		if page != tc.wantPage || limit != tc.wantLimit {
			t.Fatalf("normalizePage(%d, %d) = %d, %d; want %d, %d", tc.page, tc.limit, page, limit, tc.wantPage, tc.wantLimit)
		}
		if offset := (page - 1) * limit; offset < 0 || offset > math.MaxInt32 {
			t.Fatalf("offset %d out of range for page %d limit %d", offset, page, limit)
		}
	}
}
