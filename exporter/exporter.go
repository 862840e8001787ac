// Package exporter renders a page as a standalone HTML document. Output
// depends only on the sections, theme and form data passed in, so the same
// input always produces byte-identical HTML.
package exporter

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/pagesmith/page"
)

// RenderError reports a section whose content does not match its type.
type RenderError struct {
	SectionID string
	Err       error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("exporter: render section %q: %v", e.SectionID, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Input is everything a rendered page depends on.
type Input struct {
	Sections []page.Section
	Theme    page.ThemeConfig
	FormData page.UserFormData
}

// VisibleSorted returns the visible sections ordered by Order. Sections with
// equal Order keep their relative position.
func VisibleSorted(sections []page.Section) []page.Section {
	out := make([]page.Section, 0, len(sections))
	for _, s := range sections {
		if s.IsVisible {
			out = append(out, s)
		}
	}
	slices.SortStableFunc(out, func(a, b page.Section) int { return cmp.Compare(a.Order, b.Order) })
	return out
}

// Check validates every visible section, returning the first *RenderError.
func Check(sections []page.Section) error {
	for _, s := range sections {
		if !s.IsVisible {
			continue
		}
		if err := s.Check(); err != nil {
			return &RenderError{SectionID: s.ID, Err: err}
		}
	}
	return nil
}

// Export renders in as a complete HTML document.
func Export(in Input) (string, error) {
	if err := Check(in.Sections); err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := Document(in).Render(context.Background(), &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Document is the templ component behind Export.
func Document(in Input) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
		buf.WriteString("<meta charset=\"UTF-8\">\n")
		buf.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
		buf.WriteString("<title>" + templ.EscapeString(Title(in.FormData)) + "</title>\n")
		buf.WriteString(fontLinks)
		buf.WriteString("<style>\n" + Stylesheet(in.Theme) + "</style>\n")
		buf.WriteString("</head>\n<body>\n")
		if err := Sections(in.Sections).Render(ctx, &buf); err != nil {
			return err
		}
		buf.WriteString(smoothScroll)
		buf.WriteString("</body>\n</html>\n")
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// Sections renders the visible sections in order, without the document
// wrapper. The shared viewer embeds this directly.
func Sections(sections []page.Section) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, s := range VisibleSorted(sections) {
			if err := Section(s).Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

// Title is the document title for a page built from form.
func Title(form page.UserFormData) string {
	if strings.TrimSpace(form.ProductName) == "" {
		return "Landing Page"
	}
	return form.ProductName
}

const fontLinks = `<link rel="preconnect" href="https://fonts.googleapis.com">
<link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>
<link href="https://fonts.googleapis.com/css2?family=Inter:wght@400;500;600;700&display=swap" rel="stylesheet">
`

const smoothScroll = `<script>
document.querySelectorAll('a[href^="#"]').forEach(function (anchor) {
  anchor.addEventListener('click', function (e) {
    var href = this.getAttribute('href');
    if (href.length < 2) return;
    e.preventDefault();
    var target = document.querySelector(href);
    if (target) {
      target.scrollIntoView({ behavior: 'smooth' });
    }
  });
});
</script>
`
