package codec

import (
	"encoding/json"
	"errors"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/eringen/pagesmith/page"
)

var runePool = []rune("abcXYZ019 _-/+=%&?#<>\"'\\\n\téüßçñ中文日本語🚀🛡️⚡✅👍🏽")

func randString(r *rand.Rand, max int) string {
	n := r.Intn(max + 1)
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteRune(runePool[r.Intn(len(runePool))])
	}
	return b.String()
}

func randSection(r *rand.Rand, i int) page.Section {
	s := page.Section{
		ID:        randString(r, 12) + "-" + string(rune('a'+i%26)),
		Title:     randString(r, 20),
		Order:     r.Intn(10) - 2,
		IsVisible: r.Intn(2) == 0,
	}
	switch r.Intn(5) {
	case 0:
		s.Type = page.SectionHero
		s.Content = page.Hero{Headline: randString(r, 40), Subhead: randString(r, 60), ImageURL: "https://example.com/" + randString(r, 8)}
	case 1:
		s.Type = page.SectionAbout
		s.Content = page.About{Title: randString(r, 20), Content: randString(r, 120)}
	case 2:
		s.Type = page.SectionFeatures
		var features page.FeaturesContent
		if r.Intn(3) == 0 {
			features = page.FeaturesContent{}
		}
		for j := r.Intn(5); j > 0; j-- {
			features = append(features, page.Feature{ID: randString(r, 6), Title: randString(r, 15), Description: randString(r, 40), Icon: page.IconRocket})
		}
		s.Content = features
	case 3:
		s.Type = page.SectionTestimonials
		var quotes page.TestimonialsContent
		if r.Intn(3) == 0 {
			quotes = page.TestimonialsContent{}
		}
		for j := r.Intn(3); j > 0; j-- {
			quotes = append(quotes, page.Testimonial{ID: randString(r, 6), Name: randString(r, 12), Role: randString(r, 8), Company: randString(r, 10), Quote: randString(r, 80), Avatar: randString(r, 10)})
		}
		s.Content = quotes
	default:
		s.Type = page.SectionCustom
		s.Content = page.CustomContent{Title: randString(r, 20), Content: randString(r, 100)}
	}
	return s
}

func randShareable(r *rand.Rand) page.ShareableData {
	sections := []page.Section{}
	for i := r.Intn(7); i > 0; i-- {
		sections = append(sections, randSection(r, i))
	}
	form := page.UserFormData{
		ProductName:    randString(r, 20),
		Industry:       randString(r, 12),
		Tone:           []page.Tone{page.ToneBold, page.ToneFriendly, page.ToneMinimalist, page.ToneProfessional, ""}[r.Intn(5)],
		BrandColor:     "#FF0000",
		TargetAudience: randString(r, 20),
		UniqueValue:    randString(r, 40),
	}
	switch r.Intn(3) {
	case 0:
		form.KeyFeatures = nil
	case 1:
		form.KeyFeatures = []string{}
	default:
		for i := r.Intn(page.MaxKeyFeatures) + 1; i > 0; i-- {
			form.KeyFeatures = append(form.KeyFeatures, randString(r, 15))
		}
	}
	mode := page.ModeLight
	if r.Intn(2) == 0 {
		mode = page.ModeDark
	}
	return page.ShareableData{
		Sections:  sections,
		Theme:     page.ThemeConfig{Mode: mode, BrandColor: "#0891B2", Preset: page.PresetOcean},
		FormData:  form,
		Timestamp: r.Int63n(1 << 45),
		Version:   page.ShareVersion,
	}
}

func TestRoundTripRandomEnvelopes(t *testing.T) {
	r := rand.New(rand.NewSource(20240601))
	for i := 0; i < 500; i++ {
		want := randShareable(r)
		token, err := Encode(want)
		if err != nil {
			t.Fatalf("case %d: Encode: %v", i, err)
		}
		if strings.ContainsAny(token, "/+=") {
			t.Fatalf("case %d: token %q contains URL-unsafe characters", i, token)
		}
		got, err := Decode(token)
		if err != nil {
			t.Fatalf("case %d: Decode: %v", i, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("case %d: round trip mismatch:\n got %#v\nwant %#v", i, got, want)
		}
	}
}

func TestRoundTripNilListContent(t *testing.T) {
	want := page.NewShareableData([]page.Section{
		{ID: "features", Type: page.SectionFeatures, Title: "Features Section", Order: 0, IsVisible: true, Content: page.FeaturesContent(nil)},
		{ID: "testimonials", Type: page.SectionTestimonials, Title: "Testimonials Section", Order: 1, IsVisible: true, Content: page.TestimonialsContent(nil)},
		{ID: "empty", Type: page.SectionFeatures, Title: "Features Section", Order: 2, Content: page.FeaturesContent{}},
	}, page.DefaultTheme(), page.UserFormData{ProductName: "Acme"}, 1700000000000)

	token, err := Encode(want)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(token)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", got, want)
	}
}

func TestRoundTripCustomSectionAndUnicodeName(t *testing.T) {
	want := page.NewShareableData([]page.Section{{
		ID: "custom-1", Type: page.SectionCustom, Title: "Tarifs 💶", Order: 4, IsVisible: true,
		Content: page.CustomContent{Title: "Tarifs 💶", Content: `This is a custom section: "Tarifs". 中文`},
	}}, page.DefaultTheme(), page.UserFormData{ProductName: "Ünïcødé ✨", KeyFeatures: []string{}}, 1717200000000)

	token, err := Encode(want)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(token)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", got, want)
	}
}

func TestDecodeTruncatedTokenFails(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		token, err := Encode(randShareable(r))
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		_, err = Decode(token[:len(token)-1])
		var de *DecodingError
		if !errors.As(err, &de) {
			t.Fatalf("case %d: Decode(truncated) error = %v, want *DecodingError", i, err)
		}
	}
}

func TestDecodeRejectsBadInput(t *testing.T) {
	b64 := func(s string) string { return encoding.EncodeToString([]byte(s)) }
	tests := []struct {
		name  string
		token string
		stage string
	}{
		{"not base64", "!!!not-base64***", "base64"},
		{"bad escape", b64("%7B%zz"), "unescape"},
		{"invalid utf8", b64("%FF%FE"), "unescape"},
		{"not json", b64("hello"), "parse"},
		{"array", b64("%5B%5D"), "validate"},
		{"missing version", b64(`{"sections":[],"theme":{},"formData":{},"timestamp":1}`), "validate"},
		{"string timestamp", b64(`{"sections":[],"theme":{},"formData":{},"timestamp":"1","version":"1.0.0"}`), "validate"},
		{"null sections", b64(`{"sections":null,"theme":{},"formData":{},"timestamp":1,"version":"1.0.0"}`), "validate"},
		{"unknown section type", b64(`{"sections":[{"id":"x","type":"banner","content":{}}],"theme":{},"formData":{},"timestamp":1,"version":"1.0.0"}`), "parse"},
	}
	for _, tt := range tests {
		_, err := Decode(tt.token)
		var de *DecodingError
		if !errors.As(err, &de) {
			t.Errorf("%s: error = %v, want *DecodingError", tt.name, err)
			continue
		}
		if de.Stage != tt.stage {
			t.Errorf("%s: stage = %q, want %q", tt.name, de.Stage, tt.stage)
		}
	}
}

func TestEncodeRejectsNonRoundTrippableValues(t *testing.T) {
	data := page.NewShareableData(nil, page.DefaultTheme(), page.UserFormData{ProductName: "bad \xff byte"}, 1)
	_, err := Encode(data)
	var ee *EncodingError
	if !errors.As(err, &ee) {
		t.Fatalf("Encode error = %v, want *EncodingError", err)
	}

	data = page.ShareableData{Theme: page.DefaultTheme(), Version: page.ShareVersion}
	if _, err := Encode(data); !errors.As(err, &ee) {
		t.Fatalf("Encode with nil sections error = %v, want *EncodingError", err)
	}
}

func TestValidate(t *testing.T) {
	parse := func(s string) any {
		var v any
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			t.Fatalf("bad fixture %q: %v", s, err)
		}
		return v
	}
	if !Validate(parse(`{"sections":[],"theme":{},"formData":{},"timestamp":0,"version":""}`)) {
		t.Error("minimal envelope should validate")
	}
	if Validate(parse(`{"sections":{},"theme":{},"formData":{},"timestamp":0,"version":""}`)) {
		t.Error("object sections should not validate")
	}
	if Validate(parse(`{"sections":[],"theme":[],"formData":{},"timestamp":0,"version":""}`)) {
		t.Error("array theme should not validate")
	}
	if Validate(nil) {
		t.Error("nil should not validate")
	}
}
