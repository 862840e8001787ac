package exporter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/pagesmith/page"
)

// Section renders a single section. A section whose content does not match
// its declared type fails with a *RenderError.
func Section(s page.Section) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := s.Check(); err != nil {
			return &RenderError{SectionID: s.ID, Err: err}
		}
		var buf bytes.Buffer
		id := templ.EscapeString(s.ID)
		switch c := s.Content.(type) {
		case page.Hero:
			writeHero(&buf, id, c)
		case page.About:
			writeTextSection(&buf, id, "section about-section", "about-content", c.Title, c.Content)
		case page.FeaturesContent:
			writeFeatures(&buf, id, c)
		case page.TestimonialsContent:
			writeTestimonials(&buf, id, c)
		case page.CustomContent:
			writeTextSection(&buf, id, "section custom-section", "custom-content", c.Title, c.Content)
		default:
			return &RenderError{SectionID: s.ID, Err: fmt.Errorf("unsupported content %T", s.Content)}
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func writeHero(buf *bytes.Buffer, id string, h page.Hero) {
	buf.WriteString(`<section id="` + id + `" class="hero-section">` + "\n")
	buf.WriteString(`<div class="container">` + "\n")
	buf.WriteString(`<h1 class="hero-title">` + templ.EscapeString(h.Headline) + "</h1>\n")
	buf.WriteString(`<p class="hero-subtitle">` + templ.EscapeString(h.Subhead) + "</p>\n")
	if src := safeURL(h.ImageURL); src != "" {
		buf.WriteString(`<img class="hero-image" src="` + src + `" alt="" loading="lazy">` + "\n")
	}
	buf.WriteString(`<a href="#" class="btn-primary">Get Started</a>` + "\n")
	buf.WriteString("</div>\n</section>\n")
}

func writeTextSection(buf *bytes.Buffer, id, class, bodyClass, title, body string) {
	buf.WriteString(`<section id="` + id + `" class="` + class + `">` + "\n")
	buf.WriteString(`<div class="container">` + "\n")
	buf.WriteString(`<h2 class="section-title">` + templ.EscapeString(title) + "</h2>\n")
	buf.WriteString(`<p class="` + bodyClass + `">` + templ.EscapeString(body) + "</p>\n")
	buf.WriteString("</div>\n</section>\n")
}

func writeFeatures(buf *bytes.Buffer, id string, features page.FeaturesContent) {
	buf.WriteString(`<section id="` + id + `" class="section">` + "\n")
	buf.WriteString(`<div class="container">` + "\n")
	buf.WriteString(`<h2 class="section-title">Features</h2>` + "\n")
	buf.WriteString(`<div class="features-grid">` + "\n")
	for _, f := range features {
		buf.WriteString(`<div class="feature-card">` + "\n")
		buf.WriteString(`<div class="feature-icon">` + f.Icon.Emoji() + "</div>\n")
		buf.WriteString(`<h3 class="feature-title">` + templ.EscapeString(f.Title) + "</h3>\n")
		buf.WriteString(`<p class="feature-description">` + templ.EscapeString(f.Description) + "</p>\n")
		buf.WriteString("</div>\n")
	}
	buf.WriteString("</div>\n</div>\n</section>\n")
}

func writeTestimonials(buf *bytes.Buffer, id string, quotes page.TestimonialsContent) {
	buf.WriteString(`<section id="` + id + `" class="section">` + "\n")
	buf.WriteString(`<div class="container">` + "\n")
	buf.WriteString(`<h2 class="section-title">What Our Customers Say</h2>` + "\n")
	buf.WriteString(`<div class="testimonials-grid">` + "\n")
	for _, q := range quotes {
		buf.WriteString(`<div class="testimonial-card">` + "\n")
		buf.WriteString(`<div class="testimonial-header">` + "\n")
		if src := safeURL(q.Avatar); src != "" {
			buf.WriteString(`<img src="` + src + `" alt="` + templ.EscapeString(q.Name) + `" class="testimonial-avatar">` + "\n")
		}
		buf.WriteString("<div>\n")
		buf.WriteString(`<div class="testimonial-name">` + templ.EscapeString(q.Name) + "</div>\n")
		buf.WriteString(`<div class="testimonial-role">` + templ.EscapeString(q.Role) + " at " + templ.EscapeString(q.Company) + "</div>\n")
		buf.WriteString("</div>\n</div>\n")
		buf.WriteString(`<p class="testimonial-quote">&ldquo;` + templ.EscapeString(q.Quote) + "&rdquo;</p>\n")
		buf.WriteString("</div>\n")
	}
	buf.WriteString("</div>\n</div>\n</section>\n")
}

// safeURL returns raw escaped for an attribute when it is an absolute
// http(s) URL or a site-relative path, and "" otherwise.
func safeURL(raw string) string {
	val := strings.TrimSpace(raw)
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") && !strings.HasPrefix(val, "//") {
		return templ.EscapeString(val)
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Host == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return templ.EscapeString(val)
	default:
		return ""
	}
}
