package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// LanguageOption is one entry of the language switcher.
type LanguageOption struct {
	Tag    language.Tag
	Label  string
	Active bool
}

// Layout wraps the children in the page chrome and appends the footer.
func Layout(p *message.Printer, lang language.Tag, languages []LanguageOption) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<!DOCTYPE html><html`)
		h.attr("lang", lang.String())
		h.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		h.text(p.Sprintf("page.title"))
		h.raw(`</title></head><body><nav class="languages">`)
		for _, opt := range languages {
			if opt.Active {
				h.raw(`<strong>`)
				h.text(opt.Label)
				h.raw(`</strong> `)
				continue
			}
			h.raw(`<a`)
			h.attr("href", "/?lang="+opt.Tag.String())
			h.raw(`>`)
			h.text(opt.Label)
			h.raw(`</a> `)
		}
		h.raw(`</nav><main>`)
		if h.err != nil {
			return h.err
		}
		if err := templ.GetChildren(ctx).Render(ctx, w); err != nil {
			return err
		}
		h.raw(`</main>`)
		if h.err != nil {
			return h.err
		}
		if err := Footer(p).Render(ctx, w); err != nil {
			return err
		}
		h.raw(`</body></html>`)
		return h.err
	})
}

// Loading is shown while the first fetch of a session is in flight.
func Loading(p *message.Printer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<div class="loading">`)
		h.text(p.Sprintf("page.loading"))
		h.raw(`</div>`)
		return h.err
	})
}
