package nav

import (
	"net/url"

	"github.com/a-h/templ"
	"golang.org/x/text/language"

	"teaminsight/frontend/shared/html"
	"teaminsight/infrastructure/i18n"
)

// LangLink switches the page to another supported locale.
type LangLink struct {
	Label   string
	URL     string
	Current bool
}

// TopNavData is shared with page renderers.
type TopNavData struct {
	HomeURL   string
	Languages []LangLink
}

var langLabels = map[language.Tag]string{
	i18n.English: "English",
	i18n.Chinese: "中文",
}

// BuildTopNavData links every supported locale to current with the lang
// parameter set, keeping the rest of its query.
func BuildTopNavData(homeURL string, current *url.URL, loc *i18n.Localizer) TopNavData {
	data := TopNavData{HomeURL: homeURL}
	for _, tag := range i18n.Supported() {
		link := LangLink{Label: langLabels[tag], Current: tag == loc.Tag()}
		if current != nil {
			u := *current
			q := u.Query()
			q.Set(i18n.LangParam, tag.String())
			u.RawQuery = q.Encode()
			link.URL = u.RequestURI()
		}
		data.Languages = append(data.Languages, link)
	}
	return data
}

func TopNav(data TopNavData) templ.Component {
	return html.Component(func(b *html.Builder) {
		b.Raw(`<nav class="topnav"><a class="brand"`).Attr("href", data.HomeURL).Raw(`>Team Insight</a><ul class="langs">`)
		for _, lang := range data.Languages {
			if lang.Current {
				b.Raw(`<li class="current">`).Text(lang.Label).Raw(`</li>`)
				continue
			}
			b.Raw(`<li><a`).Attr("href", lang.URL).Raw(`>`).Text(lang.Label).Raw(`</a></li>`)
		}
		b.Raw(`</ul></nav>`)
	})
}
