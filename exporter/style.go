package exporter

import (
	"strings"

	"github.com/eringen/pagesmith/page"
)

type palette struct {
	text, background, muted, card, border, heroFrom, custom string
}

var (
	lightPalette = palette{
		text: "#1e293b", background: "#ffffff", muted: "#64748b", card: "#f8fafc",
		border: "#e2e8f0", heroFrom: "0.05", custom: "rgba(248, 250, 252, 0.5)",
	}
	darkPalette = palette{
		text: "#ffffff", background: "#1e293b", muted: "#cbd5e1", card: "#334155",
		border: "#475569", heroFrom: "0.1", custom: "rgba(51, 65, 85, 0.3)",
	}
)

// BrandColor returns the theme's brand colour, or the default when it is not
// a hex colour. Only validated colours reach the stylesheet.
func BrandColor(t page.ThemeConfig) string {
	if page.IsHexColor(t.BrandColor) {
		return t.BrandColor
	}
	return page.DefaultBrandColor
}

// Stylesheet returns the embedded CSS for theme.
func Stylesheet(t page.ThemeConfig) string {
	p := lightPalette
	if t.Mode == page.ModeDark {
		p = darkPalette
	}
	return strings.NewReplacer(
		"{{text}}", p.text,
		"{{background}}", p.background,
		"{{muted}}", p.muted,
		"{{card}}", p.card,
		"{{border}}", p.border,
		"{{heroAlpha}}", p.heroFrom,
		"{{custom}}", p.custom,
		"{{brand}}", BrandColor(t),
	).Replace(stylesheet)
}

const stylesheet = `* { margin: 0; padding: 0; box-sizing: border-box; }
body {
  font-family: 'Inter', -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
  line-height: 1.6;
  color: {{text}};
  background-color: {{background}};
}
.container { max-width: 1200px; margin: 0 auto; padding: 0 1rem; }
.hero-section {
  background: linear-gradient(135deg, rgba(59, 130, 246, {{heroAlpha}}) 0%, rgba(147, 51, 234, {{heroAlpha}}) 100%);
  padding: 5rem 1.5rem;
  text-align: center;
}
.hero-title {
  font-size: clamp(2.5rem, 5vw, 4rem);
  font-weight: 700;
  margin-bottom: 1.5rem;
  background: linear-gradient(135deg, {{brand}}, #8b5cf6);
  -webkit-background-clip: text;
  -webkit-text-fill-color: transparent;
  background-clip: text;
}
.hero-subtitle { font-size: 1.25rem; color: {{muted}}; margin: 0 auto 2rem; max-width: 42rem; }
.hero-image { display: block; max-width: 100%; margin: 0 auto 2rem; border-radius: 0.75rem; }
.btn-primary {
  background-color: {{brand}};
  color: white;
  padding: 0.75rem 2rem;
  border: none;
  border-radius: 0.5rem;
  font-size: 1.125rem;
  font-weight: 500;
  cursor: pointer;
  transition: all 0.2s;
  text-decoration: none;
  display: inline-block;
}
.btn-primary:hover { opacity: 0.9; transform: translateY(-1px); }
.section { padding: 4rem 1.5rem; }
.section-title { font-size: 2.25rem; font-weight: 700; text-align: center; margin-bottom: 3rem; }
.features-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(300px, 1fr)); gap: 2rem; margin-top: 3rem; }
.feature-card {
  background: {{card}};
  padding: 2rem;
  border-radius: 0.75rem;
  text-align: center;
  border: 1px solid {{border}};
  transition: transform 0.2s, box-shadow 0.2s;
}
.feature-card:hover { transform: translateY(-2px); box-shadow: 0 10px 25px rgba(0, 0, 0, 0.1); }
.feature-icon { font-size: 3rem; margin-bottom: 1rem; }
.feature-title { font-size: 1.25rem; font-weight: 600; margin-bottom: 0.75rem; }
.feature-description { color: {{muted}}; }
.testimonials-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(400px, 1fr)); gap: 2rem; margin-top: 3rem; }
.testimonial-card { background: {{card}}; padding: 2rem; border-radius: 0.75rem; border: 1px solid {{border}}; }
.testimonial-header { display: flex; align-items: center; gap: 1rem; margin-bottom: 1rem; }
.testimonial-avatar { width: 3rem; height: 3rem; border-radius: 50%; object-fit: cover; }
.testimonial-name { font-weight: 600; }
.testimonial-role { color: {{muted}}; font-size: 0.875rem; }
.testimonial-quote { font-style: italic; color: {{muted}}; margin-top: 1rem; }
.about-section { text-align: center; }
.about-content, .custom-content { font-size: 1.125rem; color: {{muted}}; max-width: 42rem; margin: 0 auto; }
.custom-section { background: {{custom}}; text-align: center; }
@media (max-width: 768px) {
  .hero-section { padding: 3rem 1rem; }
  .section { padding: 3rem 1rem; }
  .features-grid, .testimonials-grid { grid-template-columns: 1fr; }
}
`
