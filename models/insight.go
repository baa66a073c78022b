package models

// The insight types are the wire shape of the team insight API.

type InsightProjectSetRef struct {
	ID int64 `json:"id"`
}

type InsightProjectRef struct {
	ID         int64                `json:"id"`
	Name       string               `json:"name"`
	ProjectSet InsightProjectSetRef `json:"project_set"`
}

type InsightRole struct {
	Name string `json:"name"`
}

type InsightUser struct {
	ID   int64       `json:"id"`
	Name string      `json:"name"`
	Role InsightRole `json:"role"`
}

// InsightProject is one project with a preview of its members and the
// total member count.
type InsightProject struct {
	Project InsightProjectRef `json:"project"`
	Users   []InsightUser     `json:"users"`
	Count   int               `json:"count"`
}

// InsightProjectPage is one page of team projects.
type InsightProjectPage struct {
	Items []InsightProject `json:"items"`
	Total int              `json:"total"`
}

// InsightProjectQuery parameterises a team project listing.
type InsightProjectQuery struct {
	Word  string
	Page  int
	Limit int
}

// InsightUserQuery parameterises one page of a project's members.
type InsightUserQuery struct {
	Page  int
	Limit int
}
