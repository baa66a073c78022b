package insight

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"teaminsight/frontend/shared/context"
	"teaminsight/frontend/shared/htmx"
	"teaminsight/frontend/shared/nav"
	"teaminsight/infrastructure/cache"
	"teaminsight/infrastructure/i18n"
)

const anonymousViewer = "anonymous"

// searchForm carries the same word rule as the projects API, so a word the
// API would reject never reaches the controller.
type searchForm struct {
	Word string `validate:"max=100"`
}

// viewKey identifies the requesting viewer's state for teamID.
func viewKey(r *http.Request, teamID int64) string {
	viewer, ok := context.GetViewerFromContext(r.Context())
	if !ok {
		viewer = anonymousViewer
	}
	return viewer + ":" + strconv.FormatInt(teamID, 10)
}

// controllerFor returns the requesting viewer's controller for teamID.
func controllerFor(r *http.Request, views *cache.ViewCache[*Controller], client Client, teamID int64) *Controller {
	return views.GetOrCreate(viewKey(r, teamID), func() *Controller {
		return NewController(client, teamID)
	})
}

// ProjectListPageQueryHandler renders the team project list for ?page=N.
func ProjectListPageQueryHandler(client Client, views *cache.ViewCache[*Controller]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID, err := parseIDParam(r, "teamID")
		if err != nil {
			http.Error(w, "invalid team id", http.StatusBadRequest)
			return
		}
		page := parsePage(r.URL.Query().Get("page"))

		c := controllerFor(r, views, client, teamID)
		state := c.Sync(r.Context(), page)

		loc := context.GetLocalizerFromContext(r.Context())
		data := BuildPageData(teamID, state, loc)
		data.Message = strings.TrimSpace(r.URL.Query().Get("status"))
		data.Nav = nav.BuildTopNavData(TeamURL(teamID), r.URL, loc)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := ProjectListPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render project list", http.StatusInternalServerError)
			return
		}
	}
}

// SearchProjectsCommandHandler resets to page 1 with the posted word. An
// invalid word leaves the current state untouched.
func SearchProjectsCommandHandler(client Client, views *cache.ViewCache[*Controller], validate *validator.Validate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID, err := parseIDParam(r, "teamID")
		if err != nil {
			http.Error(w, "invalid team id", http.StatusBadRequest)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, PageURL(ProjectsURL(teamID), 1)+"&status="+url.QueryEscape("invalid form"), http.StatusSeeOther)
			return
		}
		form := searchForm{Word: strings.TrimSpace(r.FormValue("word"))}

		c := controllerFor(r, views, client, teamID)
		if err := validate.Struct(&form); err != nil {
			http.Redirect(w, r, PageURL(ProjectsURL(teamID), c.State().Page)+"&status="+url.QueryEscape("search word is too long"), http.StatusSeeOther)
			return
		}
		state := c.Search(r.Context(), form.Word)
		http.Redirect(w, r, PageURL(ProjectsURL(teamID), state.Page), http.StatusSeeOther)
	}
}

// RefreshProjectsCommandHandler re-issues the outer fetch with the current
// word, page and limit.
func RefreshProjectsCommandHandler(client Client, views *cache.ViewCache[*Controller]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID, err := parseIDParam(r, "teamID")
		if err != nil {
			http.Error(w, "invalid team id", http.StatusBadRequest)
			return
		}

		c := controllerFor(r, views, client, teamID)
		state := c.State()
		if state.Status == StatusIdle {
			state = c.GoToPage(r.Context(), parsePage(r.FormValue("page")))
		} else {
			state = c.Refresh(r.Context())
		}
		http.Redirect(w, r, PageURL(ProjectsURL(teamID), state.Page), http.StatusSeeOther)
	}
}

// LoadMoreMembersCommandHandler loads the next member page of one project
// row. htmx requests receive the re-rendered row; others are redirected
// back to the list. A viewer without list state is sent back to the list.
func LoadMoreMembersCommandHandler(views *cache.ViewCache[*Controller]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID, err := parseIDParam(r, "teamID")
		if err != nil {
			http.Error(w, "invalid team id", http.StatusBadRequest)
			return
		}
		projectID, err := parseIDParam(r, "projectID")
		if err != nil {
			http.Error(w, "invalid project id", http.StatusBadRequest)
			return
		}
		back := PageURL(ProjectsURL(teamID), parsePage(r.FormValue("page")))

		var row Row
		c, ok := views.Find(viewKey(r, teamID))
		if ok {
			row, err = c.LoadMore(r.Context(), projectID)
		} else {
			err = ErrRowNotFound
		}
		switch {
		case err == nil, errors.Is(err, ErrRowBusy):
		case errors.Is(err, ErrRowNotFound):
			if htmx.IsHTMXRequest(r) {
				// Client-side redirect so the stale page is replaced.
				w.Header().Set("HX-Redirect", back)
				w.WriteHeader(http.StatusNoContent)
				return
			}
			http.Redirect(w, r, back, http.StatusSeeOther)
			return
		default:
			slog.Error("load more members failed", slog.Int64("team_id", teamID), slog.Int64("project_id", projectID), slog.Any("err", err))
			http.Error(w, "failed to load members", http.StatusInternalServerError)
			return
		}

		if !htmx.IsHTMXRequest(r) {
			http.Redirect(w, r, back, http.StatusSeeOther)
			return
		}

		loc := context.GetLocalizerFromContext(r.Context())
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := ProjectRowFragment(BuildRowView(teamID, c.State().Page, row), loc).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render project row", http.StatusInternalServerError)
			return
		}
	}
}

// TeamHomeHandler sends the team root to the project insight page.
func TeamHomeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID, err := parseIDParam(r, "teamID")
		if err != nil {
			http.Error(w, "invalid team id", http.StatusBadRequest)
			return
		}
		target := ProjectsURL(teamID)
		if lang := strings.TrimSpace(r.URL.Query().Get(i18n.LangParam)); lang != "" {
			target += "?" + i18n.LangParam + "=" + url.QueryEscape(lang)
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}

// maxPage is the highest outer page whose offset fits in int32.
const maxPage = math.MaxInt32 / ProjectsPageLimit

// parsePage reads a 1-based page number; anything invalid is page 1 and
// anything beyond maxPage is maxPage.
func parsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	if page > maxPage {
		return maxPage
	}
	return page
}
