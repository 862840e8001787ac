package views

import (
	"bytes"
	"context"
	"fmt"

	"github.com/a-h/templ"
)

// Shared renders the read-only viewer for a share link. The page itself is
// loaded in a frame so its stylesheet cannot clash with the viewer chrome.
func Shared(d SharedData) templ.Component {
	m := PageMeta{
		Title:       d.Preview.Title,
		Description: d.Preview.Description,
		Image:       d.Preview.Image,
		URL:         d.Link.URL,
	}
	return component(layout(m, func(_ context.Context, buf *bytes.Buffer) error {
		base := "/shared/" + d.View.Token
		fmt.Fprintf(buf, `<header class="viewer-bar"><span>%s <small>shared with %s</small></span><nav class="inline">`,
			esc(d.Preview.Title), esc(d.SiteName))
		fmt.Fprintf(buf, `<input readonly value="%s" onclick="this.select()" aria-label="Share link" style="width:16rem">`, esc(d.Link.URL))
		fmt.Fprintf(buf, `<a class="btn" href="%s/export">Download HTML</a>`, esc(base))
		fmt.Fprintf(buf, `<a class="btn btn-primary" href="%s">Create your own</a>`, esc(d.EditorURL))
		buf.WriteString(`</nav></header>`)
		fmt.Fprintf(buf, `<iframe class="viewer-frame" src="%s/page" title="%s"></iframe>`, esc(base), esc(d.Preview.Title))
		return nil
	}))
}
