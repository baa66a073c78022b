package insight

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"teaminsight/models"
)

// Controller drives the project list of one team for one viewer. Every
// transition is a single locked Reduce call; client calls run unlocked.
type Controller struct {
	client Client
	teamID int64

	mu    sync.Mutex
	state State
}

func NewController(client Client, teamID int64) *Controller {
	return &Controller{client: client, teamID: teamID, state: NewState()}
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) dispatch(actions ...Action) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, a := range actions {
		c.state = Reduce(c.state, a)
	}
	return c.state
}

// Refresh re-issues the outer fetch with the current word, page and limit.
func (c *Controller) Refresh(ctx context.Context) State {
	return c.fetch(ctx)
}

// GoToPage moves to page and refetches.
func (c *Controller) GoToPage(ctx context.Context, page int) State {
	return c.fetch(ctx, SetPage{Page: page})
}

// Search resets to the first page and refetches with word.
func (c *Controller) Search(ctx context.Context, word string) State {
	return c.fetch(ctx, SetPage{Page: 1}, SetWord{Word: word})
}

// Sync makes the state reflect page, fetching only when nothing has been
// loaded successfully yet or the page differs.
func (c *Controller) Sync(ctx context.Context, page int) State {
	if page < 1 {
		page = 1
	}
	current := c.State()
	if current.Status == StatusSuccess && current.Page == page {
		return current
	}
	return c.fetch(ctx, SetPage{Page: page})
}

func (c *Controller) fetch(ctx context.Context, actions ...Action) State {
	started := c.dispatch(append(actions, FetchStart{})...)

	page, err := c.client.ListProjects(ctx, c.teamID, started.Query())
	if err != nil {
		slog.Error("list team insight projects failed",
			slog.Int64("team_id", c.teamID),
			slog.Int("page", started.Page),
			slog.String("word", started.Word),
			slog.Any("err", err))
		return c.dispatch(FetchFailure{Epoch: started.Epoch, Err: err})
	}
	return c.dispatch(FetchSuccess{Epoch: started.Epoch, Page: page})
}

// LoadMore fetches the next member page of the row of projectID and merges
// it into the row. A row already loading is rejected with ErrRowBusy. A
// failed fetch marks the row failed and is not returned as an error. A
// result for a row that an outer fetch has since replaced is dropped and
// the current row is returned.
func (c *Controller) LoadMore(ctx context.Context, projectID int64) (Row, error) {
	c.mu.Lock()
	row, ok := c.state.Row(projectID)
	if !ok {
		c.mu.Unlock()
		return Row{}, fmt.Errorf("load more for project %d: %w", projectID, ErrRowNotFound)
	}
	if row.UsersLoading {
		c.mu.Unlock()
		return row, fmt.Errorf("load more for project %d: %w", projectID, ErrRowBusy)
	}
	page := row.NextUsersPage()
	gen := row.Gen
	c.state = Reduce(c.state, RowLoadStart{ProjectID: projectID})
	c.mu.Unlock()

	users, err := c.client.ListProjectUsers(ctx, c.teamID, projectID, models.InsightUserQuery{Page: page, Limit: UsersPageLimit})

	var next State
	if err != nil {
		slog.Error("list team insight project users failed",
			slog.Int64("team_id", c.teamID),
			slog.Int64("project_id", projectID),
			slog.Int("page", page),
			slog.Any("err", err))
		next = c.dispatch(RowLoadFailure{Gen: gen, ProjectID: projectID, Err: err})
	} else {
		next = c.dispatch(RowLoadSuccess{Gen: gen, ProjectID: projectID, Page: page, Users: users})
	}

	row, ok = next.Row(projectID)
	if !ok {
		return Row{}, fmt.Errorf("load more for project %d: %w", projectID, ErrRowNotFound)
	}
	return row, nil
}
