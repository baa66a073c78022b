package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/uptrace/bun"

	"teaminsight/infrastructure/sqlite"
	"teaminsight/models"
)

var demoRoles = []string{"owner", "manager", "translator", "reviewer"}

type seedOptions struct {
	Teams           int
	ProjectsPerTeam int
	Users           int
}

func main() {
	opts := seedOptions{}
	flag.IntVar(&opts.Teams, "teams", 2, "number of teams")
	flag.IntVar(&opts.ProjectsPerTeam, "projects", 25, "projects per team")
	flag.IntVar(&opts.Users, "users", 60, "number of users")
	flag.Parse()

	migrationsDir, err := resolveMigrationsDir()
	if err != nil {
		log.Fatalf("resolve migrations dir: %v", err)
	}

	defaultDBPath := filepath.Join(filepath.Dir(filepath.Dir(filepath.Dir(migrationsDir))), "teaminsight.db")
	dbPath := getenv("SQLITE_PATH", defaultDBPath)

	db, err := sqlite.OpenDB(dbPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := sqlite.ApplyMigrations(context.Background(), db, migrationsDir); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	if err := seedDemo(context.Background(), db, opts); err != nil {
		log.Fatalf("seed demo data: %v", err)
	}

	fmt.Printf("seeded %d teams with %d projects each into %s\n", opts.Teams, opts.ProjectsPerTeam, dbPath)
}

// seedDemo inserts teams, one project set per team, projects and members.
// Project i of a team gets (i*7)%(users+1) members so rosters vary from empty
// to longer than one member page.
func seedDemo(ctx context.Context, db *sqlite.DB, opts seedOptions) error {
	if opts.Teams < 1 || opts.ProjectsPerTeam < 0 || opts.Users < 1 {
		return fmt.Errorf("invalid seed options: %+v", opts)
	}
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		roles := make([]models.Role, 0, len(demoRoles))
		for _, name := range demoRoles {
			roles = append(roles, models.Role{Name: name})
		}
		if _, err := tx.NewInsert().Model(&roles).On("CONFLICT (name) DO UPDATE").Set("name = EXCLUDED.name").Returning("id").Exec(ctx); err != nil {
			return fmt.Errorf("insert roles: %w", err)
		}

		users := make([]models.User, 0, opts.Users)
		for i := 1; i <= opts.Users; i++ {
			users = append(users, models.User{Name: fmt.Sprintf("demo-user-%03d", i)})
		}
		if _, err := tx.NewInsert().Model(&users).Returning("id").Exec(ctx); err != nil {
			return fmt.Errorf("insert users: %w", err)
		}

		for t := 1; t <= opts.Teams; t++ {
			team := models.Team{Name: fmt.Sprintf("Demo Team %d", t)}
			if _, err := tx.NewInsert().Model(&team).Returning("id").Exec(ctx); err != nil {
				return fmt.Errorf("insert team: %w", err)
			}
			set := models.ProjectSet{TeamID: team.ID, Name: "Default"}
			if _, err := tx.NewInsert().Model(&set).Returning("id").Exec(ctx); err != nil {
				return fmt.Errorf("insert project set: %w", err)
			}

			for p := 1; p <= opts.ProjectsPerTeam; p++ {
				project := models.Project{TeamID: team.ID, ProjectSetID: set.ID, Name: fmt.Sprintf("Project %02d", p)}
				if _, err := tx.NewInsert().Model(&project).Returning("id").Exec(ctx); err != nil {
					return fmt.Errorf("insert project: %w", err)
				}

				count := (p * 7) % (opts.Users + 1)
				if count == 0 {
					continue
				}
				members := make([]models.ProjectMember, 0, count)
				for u := 0; u < count; u++ {
					members = append(members, models.ProjectMember{
						ProjectID: project.ID,
						UserID:    users[u].ID,
						RoleID:    roles[u%len(roles)].ID,
					})
				}
				if _, err := tx.NewInsert().Model(&members).Exec(ctx); err != nil {
					return fmt.Errorf("insert members: %w", err)
				}
			}
		}
		return nil
	})
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func resolveMigrationsDir() (string, error) {
	candidates := []string{
		filepath.Join("infrastructure", "sqlite", "migrations"),
		filepath.Join("..", "..", "infrastructure", "sqlite", "migrations"),
	}

	if _, file, _, ok := runtime.Caller(0); ok {
		candidates = append(candidates, filepath.Join(filepath.Dir(file), "..", "..", "infrastructure", "sqlite", "migrations"))
	}

	tried := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		absPath, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		tried = append(tried, absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			continue
		}
		if info.IsDir() {
			return absPath, nil
		}
	}

	return "", fmt.Errorf("migrations dir not found; tried: %s", strings.Join(tried, ", "))
}
