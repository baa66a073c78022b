package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Team owns project sets, projects and their member rosters.
type Team struct {
	bun.BaseModel `bun:"table:teams,alias:t"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Name      string    `bun:"name,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// ProjectSet groups projects inside a team.
type ProjectSet struct {
	bun.BaseModel `bun:"table:project_sets,alias:ps"`

	ID        int64     `bun:"id,pk,autoincrement"`
	TeamID    int64     `bun:"team_id,notnull"`
	Name      string    `bun:"name,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Project belongs to a team and one of its project sets.
type Project struct {
	bun.BaseModel `bun:"table:projects,alias:p"`

	ID           int64     `bun:"id,pk,autoincrement"`
	TeamID       int64     `bun:"team_id,notnull"`
	ProjectSetID int64     `bun:"project_set_id,notnull"`
	Name         string    `bun:"name,notnull"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// User is a person that can be a member of projects.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Name      string    `bun:"name,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Role names a member's responsibility within a project.
type Role struct {
	bun.BaseModel `bun:"table:roles,alias:r"`

	ID   int64  `bun:"id,pk,autoincrement"`
	Name string `bun:"name,notnull,unique"`
}

// ProjectMember links a user to a project with a role.
type ProjectMember struct {
	bun.BaseModel `bun:"table:project_members,alias:pm"`

	ID        int64     `bun:"id,pk,autoincrement"`
	ProjectID int64     `bun:"project_id,notnull"`
	UserID    int64     `bun:"user_id,notnull"`
	RoleID    int64     `bun:"role_id,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
