package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"golang.org/x/text/message"

	"github.com/xenking/budogu-admin/internal/domain/product"
)

// DashboardView is everything the dashboard page shows.
type DashboardView struct {
	Loading  bool
	Products []product.Product
	// Form is nil while the form is hidden.
	Form *Form
}

// Dashboard renders the heading, the form when open, and the product table.
func Dashboard(p *message.Printer, v DashboardView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if v.Loading {
			return Loading(p).Render(ctx, w)
		}

		h := &html{w: w}
		h.raw(`<div class="dashboard"><div class="heading"><h1>`)
		h.text(p.Sprintf("page.title"))
		h.raw(`</h1><form method="post"`)
		h.attr("action", PathFormNew)
		h.raw(`><button type="submit">`)
		h.text(p.Sprintf("list.add"))
		h.raw(`</button></form></div>`)
		if h.err != nil {
			return h.err
		}

		if v.Form != nil {
			if err := ProductForm(p, *v.Form).Render(ctx, w); err != nil {
				return err
			}
		}
		if err := ProductTable(p, v.Products).Render(ctx, w); err != nil {
			return err
		}
		h.raw(`</div>`)
		return h.err
	})
}
