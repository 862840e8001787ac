package generator

import (
	"fmt"

	"github.com/eringen/pagesmith/page"
)

// BuiltinSections lays generated content out as the four built-in sections
// at orders 0 through 3, all visible. Ids are the section type names.
func BuiltinSections(c page.GeneratedContent) []page.Section {
	c = *c.Clone()
	return []page.Section{
		{ID: "hero", Type: page.SectionHero, Title: "Hero Section", Order: 0, Content: c.Hero, IsVisible: true},
		{ID: "about", Type: page.SectionAbout, Title: "About Section", Order: 1, Content: c.About, IsVisible: true},
		{ID: "features", Type: page.SectionFeatures, Title: "Features Section", Order: 2, Content: page.FeaturesContent(c.Features), IsVisible: true},
		{ID: "testimonials", Type: page.SectionTestimonials, Title: "Testimonials Section", Order: 3, Content: page.TestimonialsContent(c.Testimonials), IsVisible: true},
	}
}

// CustomSection builds a visible user-added section described by
// description. The caller supplies the id and order.
func CustomSection(id, description string, order int) page.Section {
	return page.Section{
		ID:    id,
		Type:  page.SectionCustom,
		Title: description,
		Order: order,
		Content: page.CustomContent{
			Title:   description,
			Content: fmt.Sprintf(`This is a custom section: "%s". You can edit this content to match your needs.`, description),
		},
		IsVisible: true,
	}
}
