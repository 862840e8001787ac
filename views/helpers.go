package views

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/pagesmith/page"
	"github.com/eringen/pagesmith/session"
)

// component adapts a buffer-writing function to templ.Component. The page
// is built in memory so a failed render never leaves half a page behind.
func component(fn func(ctx context.Context, buf *bytes.Buffer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := fn(ctx, &buf); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

var esc = templ.EscapeString[string]

// PathEscape wraps url.PathEscape for building route paths.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

// FrameClass returns the preview iframe class for a preview mode.
func FrameClass(m session.PreviewMode) string {
	if !m.Valid() {
		m = session.PreviewDesktop
	}
	return "frame frame-" + string(m)
}

// SectionLabel is the name shown for a section in the editor list.
func SectionLabel(s page.Section) string {
	if t := strings.TrimSpace(s.Title); t != "" {
		return t
	}
	if s.Type == "" {
		return s.ID
	}
	return strings.ToUpper(string(s.Type[:1])) + string(s.Type[1:])
}

// JoinFeatures formats key features one per line for the textarea.
func JoinFeatures(features []string) string {
	return strings.Join(features, "\n")
}

// SplitFeatures parses the key features textarea: one feature per line,
// blanks dropped, at most page.MaxKeyFeatures kept.
func SplitFeatures(raw string) []string {
	out := []string{}
	for _, line := range strings.Split(raw, "\n") {
		if f := strings.TrimSpace(line); f != "" && len(out) < page.MaxKeyFeatures {
			out = append(out, f)
		}
	}
	return out
}

func csrfField(buf *bytes.Buffer, token string) {
	fmt.Fprintf(buf, `<input type="hidden" name="_csrf" value="%s">`, esc(token))
}

// postButton writes a one-button form posting to action.
func postButton(buf *bytes.Buffer, token, action, class, label, title string, disabled bool) {
	fmt.Fprintf(buf, `<form method="post" action="%s">`, esc(action))
	csrfField(buf, token)
	dis := ""
	if disabled {
		dis = " disabled"
	}
	fmt.Fprintf(buf, `<button type="submit" class="%s" title="%s"%s>%s</button></form>`, esc(class), esc(title), dis, label)
}

func selected(ok bool) string {
	if ok {
		return " selected"
	}
	return ""
}

func checked(ok bool) string {
	if ok {
		return " checked"
	}
	return ""
}
