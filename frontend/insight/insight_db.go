package insight

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/uptrace/bun"

	"teaminsight/infrastructure/sqlite"
	"teaminsight/models"
)

// Store serves team insight data from sqlite.
type Store struct {
	db           *sqlite.DB
	previewUsers int
}

func NewStore(db *sqlite.DB) *Store {
	return &Store{db: db, previewUsers: PreviewUsers}
}

type projectRow struct {
	ID           int64  `bun:"id"`
	Name         string `bun:"name"`
	ProjectSetID int64  `bun:"project_set_id"`
	MemberCount  int    `bun:"member_count"`
}

type memberRow struct {
	ProjectID int64  `bun:"project_id"`
	UserID    int64  `bun:"user_id"`
	UserName  string `bun:"user_name"`
	RoleName  string `bun:"role_name"`
}

// ListProjects returns one page of the team's projects whose name contains
// q.Word, each with a member preview and total member count.
func (s *Store) ListProjects(ctx context.Context, teamID int64, q models.InsightProjectQuery) (models.InsightProjectPage, error) {
	page, limit := normalizePage(q.Page, q.Limit, ProjectsPageLimit)
	pattern := likePattern(q.Word)

	return sqlite.Read(ctx, s.db, func(ctx context.Context, tx bun.Tx) (models.InsightProjectPage, error) {
		out := models.InsightProjectPage{Items: make([]models.InsightProject, 0)}

		if err := tx.NewRaw(`
SELECT COUNT(1)
FROM projects
WHERE team_id = ?
  AND (? = '' OR name LIKE ? ESCAPE '\')`,
			teamID, pattern, pattern,
		).Scan(ctx, &out.Total); err != nil {
			return out, fmt.Errorf("count projects: %w", err)
		}
		if out.Total == 0 {
			return out, nil
		}

		rows := make([]projectRow, 0, limit)
		if err := tx.NewRaw(`
SELECT
	p.id,
	p.name,
	p.project_set_id,
	(SELECT COUNT(1) FROM project_members pm WHERE pm.project_id = p.id) AS member_count
FROM projects p
WHERE p.team_id = ?
  AND (? = '' OR p.name LIKE ? ESCAPE '\')
ORDER BY p.name COLLATE NOCASE ASC, p.id ASC
LIMIT ? OFFSET ?`,
			teamID, pattern, pattern, limit, (page-1)*limit,
		).Scan(ctx, &rows); err != nil {
			return out, fmt.Errorf("list projects: %w", err)
		}
		if len(rows) == 0 {
			return out, nil
		}

		projectIDs := make([]int64, 0, len(rows))
		for _, row := range rows {
			projectIDs = append(projectIDs, row.ID)
		}
		previews, err := s.memberPreviews(ctx, tx, projectIDs)
		if err != nil {
			return out, err
		}

		for _, row := range rows {
			users := previews[row.ID]
			if users == nil {
				users = make([]models.InsightUser, 0)
			}
			out.Items = append(out.Items, models.InsightProject{
				Project: models.InsightProjectRef{
					ID:         row.ID,
					Name:       row.Name,
					ProjectSet: models.InsightProjectSetRef{ID: row.ProjectSetID},
				},
				Users: users,
				Count: row.MemberCount,
			})
		}
		return out, nil
	})
}

func (s *Store) memberPreviews(ctx context.Context, tx bun.Tx, projectIDs []int64) (map[int64][]models.InsightUser, error) {
	rows := make([]memberRow, 0)
	if err := tx.NewRaw(`
SELECT project_id, user_id, user_name, role_name
FROM (
	SELECT
		pm.project_id,
		u.id AS user_id,
		u.name AS user_name,
		r.name AS role_name,
		ROW_NUMBER() OVER (PARTITION BY pm.project_id ORDER BY u.id ASC) AS rn
	FROM project_members pm
	JOIN users u ON u.id = pm.user_id
	JOIN roles r ON r.id = pm.role_id
	WHERE pm.project_id IN (?)
)
WHERE rn <= ?
ORDER BY project_id ASC, user_id ASC`,
		bun.In(projectIDs), s.previewUsers,
	).Scan(ctx, &rows); err != nil {
		return nil, fmt.Errorf("load member previews: %w", err)
	}

	out := make(map[int64][]models.InsightUser, len(projectIDs))
	for _, row := range rows {
		out[row.ProjectID] = append(out[row.ProjectID], row.user())
	}
	return out, nil
}

// ListProjectUsers returns one page of a project's members ordered by user
// id, the same order as the preview.
func (s *Store) ListProjectUsers(ctx context.Context, teamID, projectID int64, q models.InsightUserQuery) ([]models.InsightUser, error) {
	page, limit := normalizePage(q.Page, q.Limit, UsersPageLimit)

	return sqlite.Read(ctx, s.db, func(ctx context.Context, tx bun.Tx) ([]models.InsightUser, error) {
		var found int
		if err := tx.NewRaw(`SELECT COUNT(1) FROM projects WHERE id = ? AND team_id = ?`, projectID, teamID).
			Scan(ctx, &found); err != nil {
			return nil, fmt.Errorf("check project: %w", err)
		}
		if found == 0 {
			return nil, ErrProjectNotFound
		}

		rows := make([]memberRow, 0, limit)
		if err := tx.NewRaw(`
SELECT pm.project_id, u.id AS user_id, u.name AS user_name, r.name AS role_name
FROM project_members pm
JOIN users u ON u.id = pm.user_id
JOIN roles r ON r.id = pm.role_id
WHERE pm.project_id = ?
ORDER BY u.id ASC
LIMIT ? OFFSET ?`,
			projectID, limit, (page-1)*limit,
		).Scan(ctx, &rows); err != nil {
			return nil, fmt.Errorf("list project users: %w", err)
		}

		users := make([]models.InsightUser, 0, len(rows))
		for _, row := range rows {
			users = append(users, row.user())
		}
		return users, nil
	})
}

func (r memberRow) user() models.InsightUser {
	return models.InsightUser{
		ID:   r.UserID,
		Name: r.UserName,
		Role: models.InsightRole{Name: r.RoleName},
	}
}

// maxPageLimit bounds a single page, matching the API's limit rule.
const maxPageLimit = 100

// normalizePage defaults and bounds page and limit so that the offset
// (page-1)*limit stays within int32.
func normalizePage(page, limit, defaultLimit int) (int, int) {
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if page < 1 {
		page = 1
	}
	if last := math.MaxInt32 / limit; page > last {
		page = last
	}
	return page, limit
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern returns a contains-pattern for word, or "" to match all.
func likePattern(word string) string {
	word = strings.TrimSpace(word)
	if word == "" {
		return ""
	}
	return "%" + likeEscaper.Replace(word) + "%"
}
