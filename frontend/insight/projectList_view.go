package insight

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"teaminsight/frontend/shared/html"
	"teaminsight/frontend/shared/nav"
	"teaminsight/infrastructure/i18n"
)

// ProjectListPage renders the full dashboard document.
func ProjectListPage(data PageData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := nav.TopNav(data.Nav).Render(ctx, w); err != nil {
			return err
		}
		return ProjectListContent(data).Render(ctx, w)
	})
	return html.Layout(data.Loc.Tag().String(), data.Loc.T(i18n.KeyInsightTitle), body)
}

// ProjectListContent renders the dashboard body. A failed outer fetch hides
// the search box, the table and the pagination behind an error panel.
func ProjectListContent(data PageData) templ.Component {
	return html.Component(func(b *html.Builder) {
		loc := data.Loc
		b.Raw(`<section id="team-insight"`).Attr("data-team-id", strconv.FormatInt(data.TeamID, 10)).Raw(`>`)
		b.Raw(`<h1>`).Text(loc.T(i18n.KeyInsightTitle)).Raw(`</h1>`)
		if data.Message != "" {
			b.Raw(`<p class="status-message">`).Text(data.Message).Raw(`</p>`)
		}

		if data.Failed() {
			writeFailurePanel(b, data)
			b.Raw(`</section>`)
			return
		}

		writeSearchForm(b, data)
		writeProjectTable(b, data)
		writePagination(b, data)
		b.Raw(`</section>`)
	})
}

// ProjectRowFragment renders a single table row for htmx swaps.
func ProjectRowFragment(row RowView, loc *i18n.Localizer) templ.Component {
	return html.Component(func(b *html.Builder) {
		writeProjectRow(b, row, loc)
	})
}

func writeFailurePanel(b *html.Builder, data PageData) {
	loc := data.Loc
	b.Raw(`<div class="error-panel" role="alert"><p>`).Text(loc.T(i18n.KeyNetworkError)).Raw(`</p>`)
	b.Raw(`<form method="post"`).Attr("action", data.RefreshURL).Raw(`>`)
	b.Raw(`<input type="hidden" name="page"`).Attr("value", strconv.Itoa(data.Pagination.Page)).Raw(`>`)
	b.Raw(`<button type="submit" class="btn">`).Text(loc.T(i18n.KeyRefresh)).Raw(`</button></form></div>`)
}

func writeSearchForm(b *html.Builder, data PageData) {
	loc := data.Loc
	b.Raw(`<form class="search-box" method="post"`).Attr("action", data.SearchURL).Raw(`>`)
	b.Raw(`<input type="search" name="word"`).Attr("value", data.Word).Attr("placeholder", loc.T(i18n.KeySearch)).Raw(`>`)
	b.Raw(`<button type="submit" class="btn">`).Text(loc.T(i18n.KeySearch)).Raw(`</button></form>`)
}

func writeProjectTable(b *html.Builder, data PageData) {
	loc := data.Loc
	b.Raw(`<table class="project-table"><thead><tr>`)
	b.Raw(`<th>`).Text(loc.T(i18n.KeyProjectName)).Raw(`</th>`)
	b.Raw(`<th>`).Text(loc.T(i18n.KeyMember)).Raw(`</th>`)
	b.Raw(`</tr></thead><tbody>`)
	if len(data.Rows) == 0 {
		b.Raw(`<tr class="empty"><td colspan="2">`).Text(loc.T(i18n.KeyNoProjects)).Raw(`</td></tr>`)
	}
	for _, row := range data.Rows {
		writeProjectRow(b, row, loc)
	}
	b.Raw(`</tbody></table>`)
}

func rowElementID(projectID int64) string {
	return "project-row-" + strconv.FormatInt(projectID, 10)
}

func writeProjectRow(b *html.Builder, row RowView, loc *i18n.Localizer) {
	id := rowElementID(row.ProjectID)
	b.Raw(`<tr`).Attr("id", id).Raw(`>`)
	b.Raw(`<td class="project-name"><a`).Attr("href", row.ProjectURL).Raw(`>`).Text(row.ProjectName).Raw(`</a></td>`)

	b.Raw(`<td class="project-members">`)
	if len(row.Users) == 0 {
		b.Raw(`<span class="muted">`).Text(loc.T(i18n.KeyNoUserInProjects)).Raw(`</span>`)
	} else {
		b.Raw(`<ul class="members">`)
		for _, user := range row.Users {
			b.Raw(`<li><span class="member-name">`).Text(user.Name).Raw(`</span> `)
			b.Raw(`<span class="tag">`).Text(user.Role.Name).Raw(`</span></li>`)
		}
		b.Raw(`</ul>`)
	}

	if row.Failed {
		b.Raw(`<p class="row-error" role="alert">`).Text(loc.T(i18n.KeyLoadUsersFailed)).Raw(`</p>`)
	}
	if row.Remaining > 0 || row.Failed {
		if row.Remaining > 0 {
			b.Raw(`<span class="more-members">`).Text(loc.T(i18n.KeyMoreProject, row.Remaining)).Raw(`</span> `)
		}
		writeLoadMoreForm(b, row, loc, id)
	}
	b.Raw(`</td></tr>`)
}

func writeLoadMoreForm(b *html.Builder, row RowView, loc *i18n.Localizer, rowID string) {
	label := loc.T(i18n.KeyLoadMore)
	if row.Failed {
		label = loc.T(i18n.KeyRetry)
	}
	if row.Loading {
		label = loc.T(i18n.KeyLoading)
	}

	b.Raw(`<form class="load-more" method="post"`).Attr("action", row.LoadMoreURL).
		Attr("hx-post", row.LoadMoreURL).
		Attr("hx-target", "#"+rowID).
		Attr("hx-swap", "outerHTML").
		Attr("hx-disabled-elt", "find button").
		Raw(`>`)
	b.Raw(`<input type="hidden" name="page"`).Attr("value", strconv.Itoa(row.Page)).Raw(`>`)
	b.Raw(`<button type="submit" class="btn btn-sm"`)
	if row.Loading {
		b.Raw(` disabled aria-busy="true"`)
	}
	b.Raw(`>`).Text(label).Raw(`</button></form>`)
}

func writePagination(b *html.Builder, data PageData) {
	p := data.Pagination
	loc := data.Loc
	b.Raw(`<nav class="pagination">`)
	b.Raw(`<span class="total">`).Text(loc.T(i18n.KeyTotalProjects, p.TotalCount)).Raw(`</span>`)
	if p.HasPrev {
		b.Raw(`<a class="prev"`).Attr("href", p.PrevURL).Raw(`>`).Text(loc.T(i18n.KeyPreviousPage)).Raw(`</a>`)
	} else {
		b.Raw(`<span class="prev disabled">`).Text(loc.T(i18n.KeyPreviousPage)).Raw(`</span>`)
	}
	for _, link := range p.Pages {
		if link.Current {
			b.Raw(`<span class="page current" aria-current="page">`).Text(strconv.Itoa(link.Number)).Raw(`</span>`)
			continue
		}
		b.Raw(`<a class="page"`).Attr("href", link.URL).Raw(`>`).Text(strconv.Itoa(link.Number)).Raw(`</a>`)
	}
	if p.HasNext {
		b.Raw(`<a class="next"`).Attr("href", p.NextURL).Raw(`>`).Text(loc.T(i18n.KeyNextPage)).Raw(`</a>`)
	} else {
		b.Raw(`<span class="next disabled">`).Text(loc.T(i18n.KeyNextPage)).Raw(`</span>`)
	}
	b.Raw(`</nav>`)
}
