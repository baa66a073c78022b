package insight

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"teaminsight/models"
)

type projectsRequest struct {
	Word  string `validate:"max=100"`
	Page  int    `validate:"min=1"`
	Limit int    `validate:"min=1,max=100"`
}

type usersRequest struct {
	Page  int `validate:"min=1"`
	Limit int `validate:"min=1,max=100"`
}

// ProjectsAPIQueryHandler serves GET /api/teams/{teamID}/insight/projects.
func ProjectsAPIQueryHandler(client Client, validate *validator.Validate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID, err := parseIDParam(r, "teamID")
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid team id")
			return
		}
		q := r.URL.Query()
		req := projectsRequest{Word: strings.TrimSpace(q.Get("word"))}
		if req.Page, err = queryInt(q.Get("page"), 1); err != nil {
			writeJSONError(w, http.StatusBadRequest, "page must be a number")
			return
		}
		if req.Limit, err = queryInt(q.Get("limit"), ProjectsPageLimit); err != nil {
			writeJSONError(w, http.StatusBadRequest, "limit must be a number")
			return
		}
		if err := validate.Struct(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "validation error: "+err.Error())
			return
		}

		page, err := client.ListProjects(r.Context(), teamID, models.InsightProjectQuery{Word: req.Word, Page: req.Page, Limit: req.Limit})
		if err != nil {
			slog.Error("api list team insight projects failed", slog.Int64("team_id", teamID), slog.Any("err", err))
			writeJSONError(w, http.StatusInternalServerError, "failed to load projects")
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

// ProjectUsersAPIQueryHandler serves GET
// /api/teams/{teamID}/insight/projects/{projectID}/users.
func ProjectUsersAPIQueryHandler(client Client, validate *validator.Validate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID, err := parseIDParam(r, "teamID")
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid team id")
			return
		}
		projectID, err := parseIDParam(r, "projectID")
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid project id")
			return
		}
		q := r.URL.Query()
		var req usersRequest
		if req.Page, err = queryInt(q.Get("page"), 1); err != nil {
			writeJSONError(w, http.StatusBadRequest, "page must be a number")
			return
		}
		if req.Limit, err = queryInt(q.Get("limit"), UsersPageLimit); err != nil {
			writeJSONError(w, http.StatusBadRequest, "limit must be a number")
			return
		}
		if err := validate.Struct(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "validation error: "+err.Error())
			return
		}

		users, err := client.ListProjectUsers(r.Context(), teamID, projectID, models.InsightUserQuery{Page: req.Page, Limit: req.Limit})
		if err != nil {
			if errors.Is(err, ErrProjectNotFound) {
				writeJSONError(w, http.StatusNotFound, ErrProjectNotFound.Error())
				return
			}
			slog.Error("api list team insight project users failed",
				slog.Int64("team_id", teamID),
				slog.Int64("project_id", projectID),
				slog.Any("err", err))
			writeJSONError(w, http.StatusInternalServerError, "failed to load project users")
			return
		}
		if users == nil {
			users = []models.InsightUser{}
		}
		writeJSON(w, http.StatusOK, users)
	}
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(chi.URLParam(r, name)), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

func queryInt(raw string, fallback int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode json response failed", slog.Any("err", err))
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
