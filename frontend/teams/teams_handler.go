package teams

import (
	"log/slog"
	"net/http"

	"teaminsight/frontend/insight"
	"teaminsight/frontend/shared/context"
	"teaminsight/frontend/shared/nav"
	"teaminsight/infrastructure/sqlite"
)

// TeamsPageQueryHandler lists teams with links to their project insight.
func TeamsPageQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teams, err := ListTeams(r.Context(), db)
		if err != nil {
			slog.Error("list teams failed", slog.Any("err", err))
			http.Error(w, "failed to load teams", http.StatusInternalServerError)
			return
		}

		loc := context.GetLocalizerFromContext(r.Context())
		rows := make([]TeamRow, 0, len(teams))
		for _, t := range teams {
			rows = append(rows, TeamRow{ID: t.ID, Name: t.Name, URL: insight.ProjectsURL(t.ID)})
		}
		data := PageData{
			Rows: rows,
			Nav:  nav.BuildTopNavData("/", r.URL, loc),
			Loc:  loc,
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := TeamsPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render teams page", http.StatusInternalServerError)
			return
		}
	}
}
