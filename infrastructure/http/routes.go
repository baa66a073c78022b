package http

import (
	"teaminsight/frontend/insight"
	"teaminsight/frontend/teams"

	"github.com/go-chi/chi/v5"
)

// RegisterDashboardRoutes registers the server-rendered team dashboard.
func (s *Server) RegisterDashboardRoutes(r chi.Router) chi.Router {
	if s.DB != nil {
		r.Get("/", teams.TeamsPageQueryHandler(s.DB))
	}
	r.Get("/dashboard/teams/{teamID}", insight.TeamHomeHandler())
	r.Route("/dashboard/teams/{teamID}/insight/projects", func(r chi.Router) {
		r.Get("/", insight.ProjectListPageQueryHandler(s.Client, s.Views))
		r.Post("/search", insight.SearchProjectsCommandHandler(s.Client, s.Views, s.Validate))
		r.Post("/refresh", insight.RefreshProjectsCommandHandler(s.Client, s.Views))
		r.Post("/{projectID}/members", insight.LoadMoreMembersCommandHandler(s.Views))
	})
	return r
}

// RegisterAPIRoutes registers the JSON insight API served from the local
// store. It is skipped when the server has no database.
func (s *Server) RegisterAPIRoutes(r chi.Router) chi.Router {
	if s.DB == nil {
		return r
	}
	store := insight.NewStore(s.DB)
	r.Route("/api/teams/{teamID}/insight/projects", func(r chi.Router) {
		r.Get("/", insight.ProjectsAPIQueryHandler(store, s.Validate))
		r.Get("/{projectID}/users", insight.ProjectUsersAPIQueryHandler(store, s.Validate))
	})
	return r
}
