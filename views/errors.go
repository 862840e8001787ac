package views

import (
	"bytes"
	"context"
	"fmt"

	"github.com/a-h/templ"
)

func errorPage(title, heading, body, linkHref, linkText string) templ.Component {
	return component(layout(PageMeta{Title: title}, func(_ context.Context, buf *bytes.Buffer) error {
		fmt.Fprintf(buf, `<main class="error-page"><h1>%s</h1><p>%s</p><p><a class="btn btn-primary" href="%s">%s</a></p></main>`,
			esc(heading), esc(body), esc(linkHref), esc(linkText))
		return nil
	}))
}

// InvalidLink is shown for share links that cannot be decoded.
func InvalidLink(editorURL string) templ.Component {
	return errorPage("Invalid link", "This link is invalid or has expired",
		"The shared page could not be loaded. Ask the owner for a new link, or build your own landing page.",
		editorURL, "Create a landing page")
}

func NotFound() templ.Component {
	return errorPage("Not found", "Page not found", "There is nothing at this address.", "/", "Back to the editor")
}

func ServerError() templ.Component {
	return errorPage("Something went wrong", "Something went wrong", "We could not complete that request. Please try again.", "/", "Back to the editor")
}
