package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"golang.org/x/text/message"

	"github.com/xenking/budogu-admin/internal/domain/product"
)

// Form is the open create or edit form.
type Form struct {
	Editing bool
	ID      int64
	Draft   product.Input
}

// wide fields span both grid columns.
var wideFields = map[product.Field]bool{
	product.FieldImage:         true,
	product.FieldDescriptionCN: true,
}

// ProductForm renders the create or edit form prefilled with the draft.
// The browser enforces required fields; the catalog API validates again.
func ProductForm(p *message.Printer, f Form) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<section class="product-form"><header><h2>`)
		if f.Editing {
			h.text(p.Sprintf("form.edit"))
		} else {
			h.text(p.Sprintf("form.create"))
		}
		h.raw(`</h2><form method="post"`)
		h.attr("action", PathFormCancel)
		h.raw(`><button type="submit"`)
		h.attr("aria-label", p.Sprintf("form.close"))
		h.raw(`>✕</button></form></header><form method="post"`)
		h.attr("action", PathFormSubmit)
		h.raw(`>`)

		for _, field := range product.Fields() {
			formField(h, p, field, f.Draft.Get(field))
		}

		h.raw(`<div class="buttons wide"><button type="submit">`)
		if f.Editing {
			h.text(p.Sprintf("form.submit.save"))
		} else {
			h.text(p.Sprintf("form.submit.add"))
		}
		h.raw(`</button><button type="submit" formnovalidate`)
		h.attr("formaction", PathFormCancel)
		h.raw(`>`)
		h.text(p.Sprintf("form.cancel"))
		h.raw(`</button></div></form></section>`)
		return h.err
	})
}

func formField(h *html, p *message.Printer, field product.Field, value string) {
	name := string(field)
	h.raw(`<div`)
	if wideFields[field] {
		h.attr("class", "wide")
	}
	h.raw(`><label`)
	h.attr("for", name)
	h.raw(`>`)
	h.text(p.Sprintf("field." + name))
	h.raw(`</label>`)

	switch field {
	case product.FieldCategory:
		categorySelect(h, p, value)
	case product.FieldDescriptionEN, product.FieldDescriptionJP, product.FieldDescriptionCN:
		h.raw(`<textarea required`)
		h.attr("id", name)
		h.attr("name", name)
		h.raw(`>`)
		h.text(value)
		h.raw(`</textarea>`)
	default:
		h.raw(`<input required`)
		h.attr("type", inputType(field))
		h.attr("id", name)
		h.attr("name", name)
		h.attr("value", value)
		h.raw(`>`)
	}
	h.raw(`</div>`)
}

func inputType(field product.Field) string {
	switch field {
	case product.FieldPrice:
		return "number"
	case product.FieldImage:
		return "url"
	default:
		return "text"
	}
}

func categorySelect(h *html, p *message.Printer, value string) {
	selected, _ := product.ParseCategory(value)

	h.raw(`<select required`)
	h.attr("id", string(product.FieldCategory))
	h.attr("name", string(product.FieldCategory))
	h.raw(`><option value="">`)
	h.text(p.Sprintf("form.choose"))
	h.raw(`</option>`)
	for _, c := range product.Categories() {
		h.raw(`<option`)
		h.attr("value", string(c))
		if c == selected {
			h.raw(` selected`)
		}
		h.raw(`>`)
		h.text(p.Sprintf("category." + string(c)))
		h.raw(`</option>`)
	}
	h.raw(`</select>`)
}
