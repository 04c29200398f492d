package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"golang.org/x/text/message"
)

// ConfirmDelete asks whether product id should be deleted. Both answers
// post back to the same path with confirm=yes or confirm=no.
func ConfirmDelete(p *message.Printer, id int64, question string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<section class="confirm" role="alertdialog"><h2>`)
		h.text(p.Sprintf("confirm.title"))
		h.raw(`</h2><p>`)
		h.text(question)
		h.raw(`</p><form method="post"`)
		h.attr("action", string(templ.URL(DeletePath(id))))
		h.raw(`><button type="submit" name="confirm" value="yes">`)
		h.text(p.Sprintf("confirm.yes"))
		h.raw(`</button><button type="submit" name="confirm" value="no">`)
		h.text(p.Sprintf("confirm.no"))
		h.raw(`</button></form></section>`)
		return h.err
	})
}
