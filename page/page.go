// Package page defines the landing page data model shared by the generator,
// the session store, the exporter and the share codec.
package page

// Tone is the voice the generated copy is written in.
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneFriendly     Tone = "friendly"
	ToneBold         Tone = "bold"
	ToneMinimalist   Tone = "minimalist"
)

// UserFormData is the product metadata collected by the multi-step form.
// Every field is optional until generation is triggered.
type UserFormData struct {
	ProductName    string   `json:"productName,omitempty"`
	Industry       string   `json:"industry,omitempty"`
	Tone           Tone     `json:"tone,omitempty"`
	KeyFeatures    []string `json:"keyFeatures"`
	BrandColor     string   `json:"brandColor,omitempty"`
	TargetAudience string   `json:"targetAudience,omitempty"`
	UniqueValue    string   `json:"uniqueValue,omitempty"`
}

// MaxKeyFeatures is the most features the form accepts.
const MaxKeyFeatures = 5

// FormPatch is a partial UserFormData. Nil fields are left untouched when
// the patch is merged.
type FormPatch struct {
	ProductName    *string   `json:"productName,omitempty"`
	Industry       *string   `json:"industry,omitempty"`
	Tone           *Tone     `json:"tone,omitempty"`
	KeyFeatures    *[]string `json:"keyFeatures,omitempty"`
	BrandColor     *string   `json:"brandColor,omitempty"`
	TargetAudience *string   `json:"targetAudience,omitempty"`
	UniqueValue    *string   `json:"uniqueValue,omitempty"`
}

// Apply shallow-merges p into d and returns the result.
func (p FormPatch) Apply(d UserFormData) UserFormData {
	if p.ProductName != nil {
		d.ProductName = *p.ProductName
	}
	if p.Industry != nil {
		d.Industry = *p.Industry
	}
	if p.Tone != nil {
		d.Tone = *p.Tone
	}
	if p.KeyFeatures != nil {
		d.KeyFeatures = append([]string(nil), (*p.KeyFeatures)...)
	}
	if p.BrandColor != nil {
		d.BrandColor = *p.BrandColor
	}
	if p.TargetAudience != nil {
		d.TargetAudience = *p.TargetAudience
	}
	if p.UniqueValue != nil {
		d.UniqueValue = *p.UniqueValue
	}
	return d
}

// Clone returns a copy of d that shares no memory with it.
func (d UserFormData) Clone() UserFormData {
	if d.KeyFeatures != nil {
		d.KeyFeatures = append([]string{}, d.KeyFeatures...)
	}
	return d
}

// Icon names a feature card icon.
type Icon string

const (
	IconZap         Icon = "Zap"
	IconShield      Icon = "Shield"
	IconRocket      Icon = "Rocket"
	IconStar        Icon = "Star"
	IconCheckCircle Icon = "CheckCircle"
)

// Emoji returns the glyph used for the icon in exported HTML.
func (i Icon) Emoji() string {
	switch i {
	case IconZap:
		return "⚡"
	case IconShield:
		return "🛡️"
	case IconRocket:
		return "🚀"
	case IconStar:
		return "⭐"
	default:
		return "✅"
	}
}

// Hero is the headline block at the top of the page.
type Hero struct {
	Headline string `json:"headline"`
	Subhead  string `json:"subhead"`
	ImageURL string `json:"imageUrl"`
}

// About is the title and body of the about block.
type About struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Feature is a single feature card.
type Feature struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        Icon   `json:"icon"`
}

// Testimonial is a single customer quote.
type Testimonial struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Company string `json:"company"`
	Quote   string `json:"quote"`
	Avatar  string `json:"avatar"`
}

// GeneratedContent is the output of one generation call.
type GeneratedContent struct {
	Hero         Hero          `json:"hero"`
	About        About         `json:"about"`
	Features     []Feature     `json:"features"`
	Testimonials []Testimonial `json:"testimonials"`
}

// Clone returns a deep copy of g.
func (g *GeneratedContent) Clone() *GeneratedContent {
	if g == nil {
		return nil
	}
	out := *g
	if g.Features != nil {
		out.Features = append([]Feature{}, g.Features...)
	}
	if g.Testimonials != nil {
		out.Testimonials = append([]Testimonial{}, g.Testimonials...)
	}
	return &out
}
