package page

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SectionType is the discriminator of a Section's content.
type SectionType string

const (
	SectionHero         SectionType = "hero"
	SectionAbout        SectionType = "about"
	SectionFeatures     SectionType = "features"
	SectionTestimonials SectionType = "testimonials"
	SectionCustom       SectionType = "custom"
)

// Valid reports whether t is one of the five known section types.
func (t SectionType) Valid() bool {
	switch t {
	case SectionHero, SectionAbout, SectionFeatures, SectionTestimonials, SectionCustom:
		return true
	}
	return false
}

// Content is the payload of a section. It is implemented only by Hero,
// About, FeaturesContent, TestimonialsContent and CustomContent.
type Content interface {
	SectionType() SectionType
	isContent()
}

// FeaturesContent is the payload of a features section.
type FeaturesContent []Feature

// TestimonialsContent is the payload of a testimonials section.
type TestimonialsContent []Testimonial

// CustomContent is the payload of a user-added section.
type CustomContent struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (Hero) SectionType() SectionType                { return SectionHero }
func (About) SectionType() SectionType               { return SectionAbout }
func (FeaturesContent) SectionType() SectionType     { return SectionFeatures }
func (TestimonialsContent) SectionType() SectionType { return SectionTestimonials }
func (CustomContent) SectionType() SectionType       { return SectionCustom }

func (Hero) isContent()                {}
func (About) isContent()               {}
func (FeaturesContent) isContent()     {}
func (TestimonialsContent) isContent() {}
func (CustomContent) isContent()       {}

// Section is one renderable block of the page. Order is only used as a sort
// key; duplicates are allowed and ties keep insertion order.
type Section struct {
	ID        string      `json:"id"`
	Type      SectionType `json:"type"`
	Title     string      `json:"title"`
	Order     int         `json:"order"`
	Content   Content     `json:"content"`
	IsVisible bool        `json:"isVisible"`
}

// Check reports whether the section's content matches its declared type.
func (s Section) Check() error {
	if !s.Type.Valid() {
		return fmt.Errorf("unknown section type %q", s.Type)
	}
	if s.Content == nil {
		return fmt.Errorf("%s section has no content", s.Type)
	}
	if got := s.Content.SectionType(); got != s.Type {
		return fmt.Errorf("%s section carries %s content", s.Type, got)
	}
	return nil
}

// Clone returns a deep copy of s.
func (s Section) Clone() Section {
	switch c := s.Content.(type) {
	case FeaturesContent:
		if c != nil {
			s.Content = append(FeaturesContent{}, c...)
		}
	case TestimonialsContent:
		if c != nil {
			s.Content = append(TestimonialsContent{}, c...)
		}
	}
	return s
}

// CloneSections deep-copies a section list. A nil list stays nil.
func CloneSections(in []Section) []Section {
	if in == nil {
		return nil
	}
	out := make([]Section, len(in))
	for i, s := range in {
		out[i] = s.Clone()
	}
	return out
}

type sectionJSON struct {
	ID        string          `json:"id"`
	Type      SectionType     `json:"type"`
	Title     string          `json:"title"`
	Order     int             `json:"order"`
	Content   json.RawMessage `json:"content"`
	IsVisible bool            `json:"isVisible"`
}

// UnmarshalJSON decodes the content payload according to the type field.
func (s *Section) UnmarshalJSON(b []byte) error {
	var raw sectionJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	content, err := decodeContent(raw.Type, raw.Content)
	if err != nil {
		return fmt.Errorf("section %q: %w", raw.ID, err)
	}
	*s = Section{
		ID:        raw.ID,
		Type:      raw.Type,
		Title:     raw.Title,
		Order:     raw.Order,
		Content:   content,
		IsVisible: raw.IsVisible,
	}
	return nil
}

func decodeContent(t SectionType, raw json.RawMessage) (Content, error) {
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		switch t {
		case SectionFeatures:
			return FeaturesContent(nil), nil
		case SectionTestimonials:
			return TestimonialsContent(nil), nil
		}
		if !t.Valid() {
			return nil, fmt.Errorf("unknown section type %q", t)
		}
		return nil, nil
	}
	switch t {
	case SectionHero:
		var c Hero
		err := json.Unmarshal(raw, &c)
		return c, err
	case SectionAbout:
		var c About
		err := json.Unmarshal(raw, &c)
		return c, err
	case SectionFeatures:
		var c FeaturesContent
		err := json.Unmarshal(raw, &c)
		return c, err
	case SectionTestimonials:
		var c TestimonialsContent
		err := json.Unmarshal(raw, &c)
		return c, err
	case SectionCustom:
		var c CustomContent
		err := json.Unmarshal(raw, &c)
		return c, err
	default:
		return nil, fmt.Errorf("unknown section type %q", t)
	}
}
