package page

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestSectionJSONKeepsContentVariant(t *testing.T) {
	sections := []Section{
		{ID: "hero", Type: SectionHero, Title: "Hero Section", Order: 0, IsVisible: true,
			Content: Hero{Headline: "Go faster", Subhead: "Really", ImageURL: "https://example.com/a.png"}},
		{ID: "about", Type: SectionAbout, Title: "About Section", Order: 1,
			Content: About{Title: "About Acme", Content: "We build things."}},
		{ID: "features", Type: SectionFeatures, Title: "Features Section", Order: 2, IsVisible: true,
			Content: FeaturesContent{{ID: "feature-0", Title: "Speed", Description: "Fast", Icon: IconZap}}},
		{ID: "testimonials", Type: SectionTestimonials, Title: "Testimonials Section", Order: 3, IsVisible: true,
			Content: TestimonialsContent{{ID: "t1", Name: "Zoë", Role: "CEO", Company: "Café", Quote: "👍", Avatar: "https://example.com/z.png"}}},
		{ID: "custom-1", Type: SectionCustom, Title: "Pricing", Order: 4, IsVisible: true,
			Content: CustomContent{Title: "Pricing", Content: "Cheap"}},
	}

	b, err := json.Marshal(sections)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got []Section
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(got, sections) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", got, sections)
	}
}

func TestSectionUnmarshalNullListContent(t *testing.T) {
	var s Section
	if err := json.Unmarshal([]byte(`{"id":"f","type":"features","title":"","order":0,"content":null,"isVisible":true}`), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := s.Content.(FeaturesContent); !ok {
		t.Fatalf("content = %#v, want FeaturesContent", s.Content)
	}
	if err := s.Check(); err != nil {
		t.Errorf("Check: %v", err)
	}
}

func TestSectionUnmarshalRejectsUnknownType(t *testing.T) {
	var s Section
	err := json.Unmarshal([]byte(`{"id":"x","type":"pricing","content":{}}`), &s)
	if err == nil {
		t.Fatal("expected error for unknown section type")
	}
	if !strings.Contains(err.Error(), `"x"`) {
		t.Errorf("error should name the section id, got %v", err)
	}
}

func TestSectionUnmarshalRejectsWrongShape(t *testing.T) {
	var s Section
	if err := json.Unmarshal([]byte(`{"id":"f","type":"features","content":{"title":"nope"}}`), &s); err == nil {
		t.Fatal("expected error when features content is not a list")
	}
}

func TestSectionCheck(t *testing.T) {
	tests := []struct {
		name string
		s    Section
		ok   bool
	}{
		{"matching", Section{Type: SectionAbout, Content: About{}}, true},
		{"nil content", Section{Type: SectionAbout}, false},
		{"mismatch", Section{Type: SectionFeatures, Content: About{}}, false},
		{"unknown", Section{Type: "banner", Content: About{}}, false},
	}
	for _, tt := range tests {
		err := tt.s.Check()
		if (err == nil) != tt.ok {
			t.Errorf("%s: Check() = %v, want ok=%v", tt.name, err, tt.ok)
		}
	}
}

func TestCloneSectionsIsIndependent(t *testing.T) {
	orig := []Section{{ID: "features", Type: SectionFeatures, Content: FeaturesContent{{ID: "a", Title: "A"}}}}
	cp := CloneSections(orig)
	cp[0].Content.(FeaturesContent)[0].Title = "changed"
	cp[0].IsVisible = true

	if orig[0].Content.(FeaturesContent)[0].Title != "A" {
		t.Error("clone shares feature storage with original")
	}
	if orig[0].IsVisible {
		t.Error("clone shares section storage with original")
	}
}

func TestPatchesOnlyTouchSuppliedFields(t *testing.T) {
	name := "Acme"
	form := FormPatch{ProductName: &name}.Apply(UserFormData{Industry: "Retail", KeyFeatures: []string{"A"}})
	if form.ProductName != "Acme" || form.Industry != "Retail" || len(form.KeyFeatures) != 1 {
		t.Errorf("unexpected form after patch: %+v", form)
	}

	dark := ModeDark
	theme := ThemePatch{Mode: &dark}.Apply(DefaultTheme())
	if theme.Mode != ModeDark || theme.BrandColor != DefaultBrandColor || theme.Preset != PresetDefault {
		t.Errorf("unexpected theme after patch: %+v", theme)
	}
}

func TestIsHexColor(t *testing.T) {
	for _, c := range []string{"#fff", "#FF0000", "#3b82f6cc"} {
		if !IsHexColor(c) {
			t.Errorf("IsHexColor(%q) = false, want true", c)
		}
	}
	for _, c := range []string{"", "red", "#12", "#ff0000;}body{", "FF0000"} {
		if IsHexColor(c) {
			t.Errorf("IsHexColor(%q) = true, want false", c)
		}
	}
}
