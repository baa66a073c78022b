package insight

import (
	"strconv"

	"teaminsight/frontend/shared/nav"
	"teaminsight/infrastructure/i18n"
	"teaminsight/models"
)

const paginationWindow = 7

type RowView struct {
	ProjectID   int64
	ProjectName string
	ProjectURL  string
	Users       []models.InsightUser
	Remaining   int
	Loading     bool
	Failed      bool
	LoadMoreURL string
	// Page is the outer page the row belongs to, posted back by the
	// load-more form for the non-htmx redirect.
	Page int
}

type PageLink struct {
	Number  int
	URL     string
	Current bool
}

// Pagination describes the outer page controls.
type Pagination struct {
	Page       int
	PageSize   int
	TotalCount int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	PrevURL    string
	NextURL    string
	Pages      []PageLink
}

type PageData struct {
	TeamID     int64
	Word       string
	Status     Status
	Message    string
	Rows       []RowView
	Pagination Pagination

	SearchURL  string
	RefreshURL string

	Nav nav.TopNavData
	Loc *i18n.Localizer
}

func (d PageData) Failed() bool {
	return d.Status == StatusFailure
}

func TeamURL(teamID int64) string {
	return "/dashboard/teams/" + strconv.FormatInt(teamID, 10)
}

func ProjectsURL(teamID int64) string {
	return TeamURL(teamID) + "/insight/projects"
}

func LoadMoreURL(teamID, projectID int64) string {
	return ProjectsURL(teamID) + "/" + strconv.FormatInt(projectID, 10) + "/members"
}

// ProjectSettingURL links a project to its invitation settings.
func ProjectSettingURL(teamID int64, project models.InsightProjectRef) string {
	return TeamURL(teamID) +
		"/project-sets/" + strconv.FormatInt(project.ProjectSet.ID, 10) +
		"/projects/" + strconv.FormatInt(project.ID, 10) +
		"/setting/invitation"
}

// PageURL rewrites the outer page into the query string of base.
func PageURL(base string, page int) string {
	if page < 1 {
		page = 1
	}
	return base + "?page=" + strconv.Itoa(page)
}

// BuildPagination clamps page into [1, TotalPages] and lays out a window of
// numbered links around it.
func BuildPagination(base string, page, pageSize, total int) Pagination {
	if pageSize < 1 {
		pageSize = ProjectsPageLimit
	}
	if total < 0 {
		total = 0
	}
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	p := Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
	if p.HasPrev {
		p.PrevURL = PageURL(base, page-1)
	}
	if p.HasNext {
		p.NextURL = PageURL(base, page+1)
	}

	first := page - paginationWindow/2
	if first < 1 {
		first = 1
	}
	last := first + paginationWindow - 1
	if last > totalPages {
		last = totalPages
		first = last - paginationWindow + 1
		if first < 1 {
			first = 1
		}
	}
	p.Pages = make([]PageLink, 0, last-first+1)
	for n := first; n <= last; n++ {
		p.Pages = append(p.Pages, PageLink{Number: n, URL: PageURL(base, n), Current: n == page})
	}
	return p
}

func BuildRowView(teamID int64, page int, row Row) RowView {
	return RowView{
		ProjectID:   row.Project.ID,
		ProjectName: row.Project.Name,
		ProjectURL:  ProjectSettingURL(teamID, row.Project),
		Users:       row.Users,
		Remaining:   row.Remaining(),
		Loading:     row.UsersLoading,
		Failed:      row.UsersFailed,
		LoadMoreURL: LoadMoreURL(teamID, row.Project.ID),
		Page:        page,
	}
}

// BuildPageData turns controller state into the dashboard view model.
func BuildPageData(teamID int64, s State, loc *i18n.Localizer) PageData {
	base := ProjectsURL(teamID)
	rows := make([]RowView, 0, len(s.Rows))
	for _, row := range s.Rows {
		rows = append(rows, BuildRowView(teamID, s.Page, row))
	}
	return PageData{
		TeamID:     teamID,
		Word:       s.Word,
		Status:     s.Status,
		Rows:       rows,
		Pagination: BuildPagination(base, s.Page, s.Limit, s.Total),
		SearchURL:  base + "/search",
		RefreshURL: base + "/refresh",
		Loc:        loc,
	}
}
