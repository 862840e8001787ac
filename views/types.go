package views

import (
	"strings"

	"github.com/eringen/pagesmith/page"
	"github.com/eringen/pagesmith/session"
	"github.com/eringen/pagesmith/share"
)

// EditorData is everything the editor page renders from.
type EditorData struct {
	SiteName  string
	State     session.State
	CSRFToken string
	Notice    string      // one-off message shown above the panel
	Share     *share.Link // set when the share dialog is open
}

// SharedData is everything the read-only viewer renders from.
type SharedData struct {
	SiteName  string
	View      *share.View
	Link      share.Link
	Preview   share.Preview
	EditorURL string
}

// Step is one page of the details form.
type Step struct {
	Title       string
	Description string
}

// Steps lists the form pages in order. A session whose CurrentStep is past
// the last one shows the section editor instead.
var Steps = []Step{
	{"Product Basics", "Tell us about your product or startup"},
	{"Brand & Tone", "Define your brand personality"},
	{"Features & Value", "Highlight what makes you unique"},
	{"Generate", "Create your landing page"},
}

// EditingStep is the CurrentStep value that shows the section editor.
var EditingStep = len(Steps)

// Industries are the choices offered for UserFormData.Industry.
var Industries = []string{
	"Technology", "Healthcare", "Finance", "Education", "E-commerce",
	"Marketing", "Real Estate", "Food & Beverage", "Travel", "Other",
}

// ToneChoice describes one tone option.
type ToneChoice struct {
	Value       page.Tone
	Label       string
	Description string
}

var Tones = []ToneChoice{
	{page.ToneProfessional, "Professional", "Formal and business-focused"},
	{page.ToneFriendly, "Friendly", "Warm and approachable"},
	{page.ToneBold, "Bold", "Confident and attention-grabbing"},
	{page.ToneMinimalist, "Minimalist", "Clean and simple"},
}

// StepComplete reports whether the fields asked for on step are filled in,
// which is what allows moving on to the next step.
func StepComplete(form page.UserFormData, step int) bool {
	filled := func(s string) bool { return strings.TrimSpace(s) != "" }
	switch step {
	case 0:
		return filled(form.ProductName) && filled(form.Industry)
	case 1:
		return form.Tone != "" && filled(form.BrandColor)
	case 2:
		return filled(form.TargetAudience) && filled(form.UniqueValue) && len(form.KeyFeatures) > 0
	default:
		return true
	}
}
