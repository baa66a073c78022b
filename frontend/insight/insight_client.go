package insight

import (
	"context"
	"errors"

	"teaminsight/models"
)

const (
	// ProjectsPageLimit is the fixed outer page size of the project table.
	ProjectsPageLimit = 10
	// UsersPageLimit is the page size of the incremental member loader.
	UsersPageLimit = 20
	// PreviewUsers is how many members each project row carries initially.
	PreviewUsers = 5
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrRowNotFound     = errors.New("project row not found")
	ErrRowBusy         = errors.New("project row is already loading")
)

// Client fetches team insight data. Store serves it from sqlite and
// insightclient.Client serves it over HTTP.
type Client interface {
	ListProjects(ctx context.Context, teamID int64, q models.InsightProjectQuery) (models.InsightProjectPage, error)
	ListProjectUsers(ctx context.Context, teamID, projectID int64, q models.InsightUserQuery) ([]models.InsightUser, error)
}
