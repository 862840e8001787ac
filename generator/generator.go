// Package generator maps form data to landing page content. It is pure
// template substitution: no network, no randomness.
package generator

import (
	"fmt"
	"strings"

	"github.com/eringen/pagesmith/page"
)

// HeroImageURL is the stock image every generated hero uses.
const HeroImageURL = "https://images.unsplash.com/photo-1551434678-e076c223a692?w=800&h=600&fit=crop&crop=center"

// MaxFeatureCards is how many key features become feature cards.
const MaxFeatureCards = 4

// featureIcons is assigned to feature cards by position.
var featureIcons = [MaxFeatureCards]page.Icon{page.IconZap, page.IconShield, page.IconRocket, page.IconStar}

// FeatureIcon returns the icon for the feature card at index i.
func FeatureIcon(i int) page.Icon {
	if i >= 0 && i < len(featureIcons) {
		return featureIcons[i]
	}
	return page.IconCheckCircle
}

func defaultFeatures() []page.Feature {
	return []page.Feature{
		{ID: "feature-1", Title: "Lightning Fast", Description: "Built for speed and performance that scales with your business.", Icon: page.IconZap},
		{ID: "feature-2", Title: "Secure & Reliable", Description: "Enterprise-grade security with 99.9% uptime guarantee.", Icon: page.IconShield},
		{ID: "feature-3", Title: "Easy Integration", Description: "Seamlessly integrate with your existing tools and workflows.", Icon: page.IconRocket},
	}
}

// Generate builds the page content for form. The same form always yields
// the same content. Testimonials are fixed placeholder copy.
func Generate(form page.UserFormData) page.GeneratedContent {
	industry := or(form.Industry, "Business")
	product := or(form.ProductName, "Our Solution")

	return page.GeneratedContent{
		Hero: page.Hero{
			Headline: fmt.Sprintf("Transform Your %s with %s", industry, product),
			Subhead:  fmt.Sprintf("%s tools designed for %s.", toneAdjective(form.Tone), or(form.TargetAudience, "modern businesses")),
			ImageURL: HeroImageURL,
		},
		About: page.About{
			Title: "About " + or(form.ProductName, "Our Company"),
			Content: fmt.Sprintf("We're revolutionizing the %s industry with innovative solutions. %s",
				or(form.Industry, "technology"),
				or(form.UniqueValue, "Our unique approach combines cutting-edge technology with user-centric design.")),
		},
		Features:     features(form.KeyFeatures),
		Testimonials: testimonials(form.ProductName),
	}
}

func toneAdjective(t page.Tone) string {
	switch t {
	case page.ToneProfessional:
		return "Professional-grade"
	case page.ToneFriendly:
		return "User-friendly"
	default:
		return "Cutting-edge"
	}
}

func features(keys []string) []page.Feature {
	if len(keys) == 0 {
		return defaultFeatures()
	}
	if len(keys) > MaxFeatureCards {
		keys = keys[:MaxFeatureCards]
	}
	out := make([]page.Feature, 0, len(keys))
	for i, k := range keys {
		out = append(out, page.Feature{
			ID:          fmt.Sprintf("feature-%d", i),
			Title:       k,
			Description: fmt.Sprintf("Experience the power of %s with our advanced platform.", strings.ToLower(k)),
			Icon:        FeatureIcon(i),
		})
	}
	return out
}

func testimonials(product string) []page.Testimonial {
	return []page.Testimonial{
		{
			ID:      "testimonial-1",
			Name:    "Sarah Chen",
			Role:    "CEO",
			Company: "TechFlow Inc.",
			Quote:   or(product, "This product") + " has completely transformed how we operate. The results speak for themselves.",
			Avatar:  "https://images.unsplash.com/photo-1494790108755-2616b5b6e2fb?w=150&h=150&fit=crop&crop=face",
		},
		{
			ID:      "testimonial-2",
			Name:    "Marcus Rodriguez",
			Role:    "Product Manager",
			Company: "Innovation Labs",
			Quote:   "The best investment we've made this year. Highly recommend to any growing business.",
			Avatar:  "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=150&h=150&fit=crop&crop=face",
		},
	}
}

func or(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
