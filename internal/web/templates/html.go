// Package templates renders the dashboard pages as templ components.
package templates

import (
	"io"
	"strconv"

	"github.com/a-h/templ"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// yen groups digits the way prices are printed in every UI language.
var yen = message.NewPrinter(language.Japanese)

// FormatPrice renders a yen amount as "¥12,000".
func FormatPrice(price int64) string {
	return "¥" + yen.Sprintf("%d", price)
}

// html writes markup and remembers the first write error.
type html struct {
	w   io.Writer
	err error
}

func (h *html) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// text writes s escaped.
func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with value escaped.
func (h *html) attr(name, value string) {
	h.raw(" " + name + `="`)
	h.text(value)
	h.raw(`"`)
}

func (h *html) num(v int64) {
	h.raw(strconv.FormatInt(v, 10))
}
