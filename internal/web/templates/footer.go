package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"golang.org/x/text/message"
)

// SNSLink is an external profile shown in the footer.
type SNSLink struct {
	Name string
	URL  string
}

// SNSLinks are the profiles listed in the footer.
var SNSLinks = []SNSLink{
	{Name: "Instagram", URL: "https://www.instagram.com/"},
	{Name: "X", URL: "https://x.com/"},
	{Name: "YouTube", URL: "https://www.youtube.com/"},
}

var footerCategories = []string{
	"category.gloves",
	"category.mitts",
	"category.protectors",
	"category.supporters",
}

// Footer is the static footer of every page.
func Footer(p *message.Printer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<footer><div class="footer-top"><h1>LOGO</h1><div class="footer-columns"><div><h1>`)
		h.text(p.Sprintf("footer.category"))
		h.raw(`</h1><ul>`)
		for _, key := range footerCategories {
			h.raw(`<li>`)
			h.text(p.Sprintf(key))
			h.raw(`</li>`)
		}
		h.raw(`</ul></div><div><h1>`)
		h.text(p.Sprintf("footer.menu"))
		h.raw(`</h1></div><div><h1>`)
		h.text(p.Sprintf("footer.contact"))
		h.raw(`</h1></div></div></div><div class="sns"`)
		h.attr("aria-label", p.Sprintf("footer.sns"))
		h.raw(`>`)
		for _, link := range SNSLinks {
			h.raw(`<a rel="noopener"`)
			h.attr("href", string(templ.URL(link.URL)))
			h.raw(`>`)
			h.text(link.Name)
			h.raw(`</a> `)
		}
		h.raw(`</div><h6>Copyright © 2025</h6></footer>`)
		return h.err
	})
}
