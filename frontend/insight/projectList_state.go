package insight

import "teaminsight/models"

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Row is one project of the current page together with its member loader
// state. Rows are keyed by project id.
type Row struct {
	Project models.InsightProjectRef
	// Gen is the State.Generation of the fetch that produced the row.
	Gen          uint64
	Users        []models.InsightUser
	Count        int
	UsersLoading bool
	UsersFailed  bool
	UsersErr     error
	// UsersPage is the next member page to fetch; zero means unset.
	UsersPage int
}

// NextUsersPage is the page the next load-more fetch requests.
func (r Row) NextUsersPage() int {
	if r.UsersPage < 1 {
		return 1
	}
	return r.UsersPage
}

// Remaining is how many members are not shown yet.
func (r Row) Remaining() int {
	if n := r.Count - len(r.Users); n > 0 {
		return n
	}
	return 0
}

// State is the project list of one team as seen by one viewer.
type State struct {
	Page   int
	Limit  int
	Word   string
	Total  int
	Status Status
	Rows   []Row
	// Epoch counts outer fetch dispatches. Results carry the epoch they were
	// dispatched under and are dropped when it is no longer current.
	Epoch uint64
	// Generation counts applied outer fetches. Member loads carry the
	// generation of the row they started on and only apply to that row.
	Generation uint64
	Err        error
}

func NewState() State {
	return State{Page: 1, Limit: ProjectsPageLimit, Status: StatusIdle}
}

// Row returns the row of projectID.
func (s State) Row(projectID int64) (Row, bool) {
	for _, row := range s.Rows {
		if row.Project.ID == projectID {
			return row, true
		}
	}
	return Row{}, false
}

func (s State) Query() models.InsightProjectQuery {
	return models.InsightProjectQuery{Word: s.Word, Page: s.Page, Limit: s.Limit}
}

// Action is a state transition understood by Reduce.
type Action interface {
	isAction()
}

type SetPage struct{ Page int }

type SetWord struct{ Word string }

type FetchStart struct{}

type FetchSuccess struct {
	Epoch uint64
	Page  models.InsightProjectPage
}

type FetchFailure struct {
	Epoch uint64
	Err   error
}

type RowLoadStart struct{ ProjectID int64 }

type RowLoadSuccess struct {
	Gen       uint64
	ProjectID int64
	Page      int
	Users     []models.InsightUser
}

type RowLoadFailure struct {
	Gen       uint64
	ProjectID int64
	Err       error
}

func (SetPage) isAction()        {}
func (SetWord) isAction()        {}
func (FetchStart) isAction()     {}
func (FetchSuccess) isAction()   {}
func (FetchFailure) isAction()   {}
func (RowLoadStart) isAction()   {}
func (RowLoadSuccess) isAction() {}
func (RowLoadFailure) isAction() {}

// Reduce applies a to s and returns the new state. s is never modified.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetPage:
		if a.Page < 1 {
			a.Page = 1
		}
		s.Page = a.Page
	case SetWord:
		s.Word = a.Word
	case FetchStart:
		s.Epoch++
		s.Status = StatusLoading
		s.Err = nil
	case FetchSuccess:
		if a.Epoch != s.Epoch {
			return s
		}
		s.Status = StatusSuccess
		s.Err = nil
		s.Total = a.Page.Total
		s.Generation++
		s.Rows = rowsFromPage(a.Page, s.Generation)
	case FetchFailure:
		if a.Epoch != s.Epoch {
			return s
		}
		s.Status = StatusFailure
		s.Err = a.Err
	case RowLoadStart:
		s.Rows = updateRow(s.Rows, a.ProjectID, anyGen, func(row *Row) {
			row.UsersLoading = true
			row.UsersFailed = false
			row.UsersErr = nil
		})
	case RowLoadSuccess:
		s.Rows = updateRow(s.Rows, a.ProjectID, a.Gen, func(row *Row) {
			row.UsersLoading = false
			row.UsersFailed = false
			row.UsersErr = nil
			if a.Page == 1 {
				row.Users = append(make([]models.InsightUser, 0, len(a.Users)), a.Users...)
			} else {
				users := make([]models.InsightUser, 0, len(row.Users)+len(a.Users))
				users = append(users, row.Users...)
				row.Users = append(users, a.Users...)
			}
			row.UsersPage = a.Page + 1
		})
	case RowLoadFailure:
		s.Rows = updateRow(s.Rows, a.ProjectID, a.Gen, func(row *Row) {
			row.UsersLoading = false
			row.UsersFailed = true
			row.UsersErr = a.Err
		})
	}
	return s
}

func rowsFromPage(page models.InsightProjectPage, gen uint64) []Row {
	rows := make([]Row, 0, len(page.Items))
	for _, item := range page.Items {
		rows = append(rows, Row{
			Project: item.Project,
			Gen:     gen,
			Users:   append(make([]models.InsightUser, 0, len(item.Users)), item.Users...),
			Count:   item.Count,
		})
	}
	return rows
}

// anyGen matches a row of any generation.
const anyGen = ^uint64(0)

// updateRow copies rows and applies fn to the copy of the row of projectID
// and generation gen. rows is returned unchanged when no row matches.
func updateRow(rows []Row, projectID int64, gen uint64, fn func(*Row)) []Row {
	for i := range rows {
		if rows[i].Project.ID != projectID {
			continue
		}
		if gen != anyGen && rows[i].Gen != gen {
			return rows
		}
		out := make([]Row, len(rows))
		copy(out, rows)
		fn(&out[i])
		return out
	}
	return rows
}
