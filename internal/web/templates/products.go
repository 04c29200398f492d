package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"golang.org/x/text/message"

	"github.com/xenking/budogu-admin/internal/domain/product"
)

// CategoryLabel returns the localized label of a category value. Unknown
// values are shown as stored.
func CategoryLabel(p *message.Printer, category string) string {
	c, ok := product.ParseCategory(category)
	if !ok {
		return category
	}
	return p.Sprintf("category." + string(c))
}

var listColumns = []string{
	"list.id", "list.name", "list.category", "list.brand",
	"list.price", "list.image", "list.actions",
}

// ProductTable renders one row per product in the given order. An empty
// list renders the placeholder instead of rows.
func ProductTable(p *message.Printer, products []product.Product) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<div class="products"><table><thead><tr>`)
		for _, key := range listColumns {
			h.raw(`<th>`)
			h.text(p.Sprintf(key))
			h.raw(`</th>`)
		}
		h.raw(`</tr></thead><tbody>`)
		for _, prod := range products {
			productRow(h, p, prod)
		}
		h.raw(`</tbody></table>`)
		if len(products) == 0 {
			h.raw(`<div class="empty">`)
			h.text(p.Sprintf("list.empty"))
			h.raw(`</div>`)
		}
		h.raw(`</div>`)
		return h.err
	})
}

func productRow(h *html, p *message.Printer, prod product.Product) {
	h.raw(`<tr><td class="id">`)
	h.num(prod.ID)
	h.raw(`</td><td class="name">`)
	h.text(prod.NameJP)
	h.raw(`</td><td class="category">`)
	h.text(CategoryLabel(p, string(prod.Category)))
	h.raw(`</td><td class="brand">`)
	h.text(prod.Brand)
	h.raw(`</td><td class="price">`)
	h.text(FormatPrice(prod.Price))
	h.raw(`</td><td class="image"><img width="48" height="48"`)
	h.attr("src", string(templ.URL(prod.Image)))
	h.attr("alt", prod.NameJP)
	h.raw(`></td><td class="actions"><form method="post"`)
	h.attr("action", string(templ.URL(editPath(prod.ID))))
	h.raw(`><button type="submit">`)
	h.text(p.Sprintf("action.edit"))
	h.raw(`</button></form><a`)
	h.attr("href", string(templ.URL(DeletePath(prod.ID))))
	h.raw(`>`)
	h.text(p.Sprintf("action.delete"))
	h.raw(`</a></td></tr>`)
}
