package html

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// HTMXScriptURL is the pinned htmx build loaded by every page.
const HTMXScriptURL = "https://unpkg.com/htmx.org@2.0.4"

// Builder accumulates markup. Text and Attr escape their input; Raw does not.
type Builder struct {
	strings.Builder
}

func (b *Builder) Raw(s string) *Builder {
	b.WriteString(s)
	return b
}

func (b *Builder) Text(s string) *Builder {
	b.WriteString(templ.EscapeString(s))
	return b
}

// Attr writes ` name="value"` with value escaped.
func (b *Builder) Attr(name, value string) *Builder {
	b.WriteString(" ")
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(templ.EscapeString(value))
	b.WriteString(`"`)
	return b
}

// Component wraps a markup function as a templ component.
func Component(render func(b *Builder)) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b Builder
		render(&b)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// Layout renders a full document around body.
func Layout(lang, title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var head Builder
		head.Raw(`<!doctype html><html`).Attr("lang", lang).Raw(`><head><meta charset="utf-8">`).
			Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`).
			Raw(`<title>`).Text(title).Raw(`</title>`).
			Raw(`<link rel="stylesheet" href="/assets/app.css">`).
			Raw(`<script src="` + HTMXScriptURL + `"></script>`).
			Raw(`</head><body><main class="page">`)
		if _, err := io.WriteString(w, head.String()); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main>`+CSRFFormScript()+`</body></html>`)
		return err
	})
}
