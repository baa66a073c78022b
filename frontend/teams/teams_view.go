package teams

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"teaminsight/frontend/shared/html"
	"teaminsight/frontend/shared/nav"
	"teaminsight/infrastructure/i18n"
)

func TeamsPage(data PageData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := nav.TopNav(data.Nav).Render(ctx, w); err != nil {
			return err
		}
		return teamsList(data).Render(ctx, w)
	})
	return html.Layout(data.Loc.Tag().String(), data.Loc.T(i18n.KeyTeams), body)
}

func teamsList(data PageData) templ.Component {
	return html.Component(func(b *html.Builder) {
		b.Raw(`<section id="teams"><h1>`).Text(data.Loc.T(i18n.KeyTeams)).Raw(`</h1>`)
		if len(data.Rows) == 0 {
			b.Raw(`<p class="muted">`).Text(data.Loc.T(i18n.KeyNoTeams)).Raw(`</p></section>`)
			return
		}
		b.Raw(`<ul class="team-list">`)
		for _, row := range data.Rows {
			b.Raw(`<li><a`).Attr("href", row.URL).Raw(`>`).Text(row.Name).Raw(`</a></li>`)
		}
		b.Raw(`</ul></section>`)
	})
}
