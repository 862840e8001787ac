package views

import (
	"bytes"
	"context"
	"fmt"

	"github.com/a-h/templ"

	"github.com/eringen/pagesmith/codec"
	"github.com/eringen/pagesmith/exporter"
	"github.com/eringen/pagesmith/page"
	"github.com/eringen/pagesmith/session"
)

// Editor renders the builder: the details form until content has been
// generated, then the section editor, next to a live preview.
func Editor(d EditorData) templ.Component {
	title := d.SiteName
	if d.State.Ready() {
		title = exporter.Title(d.State.FormData) + " · " + d.SiteName
	}
	return component(layout(PageMeta{Title: title}, func(_ context.Context, buf *bytes.Buffer) error {
		topbar(buf, d)
		buf.WriteString(`<main class="workspace"><aside class="panel">`)
		if d.Notice != "" {
			fmt.Fprintf(buf, `<div class="notice" role="status">%s</div>`, esc(d.Notice))
		}
		if d.State.Ready() && d.State.CurrentStep >= EditingStep {
			editorPanel(buf, d)
		} else {
			detailsForm(buf, d)
		}
		buf.WriteString(`</aside>`)
		stage(buf, d)
		buf.WriteString(`</main>`)
		if d.Share != nil {
			shareDialog(buf, d)
		}
		return nil
	}))
}

func topbar(buf *bytes.Buffer, d EditorData) {
	fmt.Fprintf(buf, `<header class="topbar"><h1>%s</h1><nav>`, esc(d.SiteName))
	if d.State.Ready() {
		buf.WriteString(`<a class="btn" href="/editor/share/">Share</a>`)
		buf.WriteString(`<a class="btn" href="/editor/export/">Export HTML</a>`)
	}
	postButton(buf, d.CSRFToken, "/editor/reset/", "btn btn-danger", "Start over", "Discard this page", false)
	buf.WriteString(`</nav></header>`)
}

func detailsForm(buf *bytes.Buffer, d EditorData) {
	step := d.State.CurrentStep
	if step < 0 || step >= len(Steps) {
		step = 0
	}
	form := d.State.FormData

	buf.WriteString(`<div class="steps">`)
	for i, s := range Steps {
		class := ""
		if i <= step {
			class = "active"
		}
		buf.WriteString(`<form method="post" action="/editor/step/" style="flex:1;display:flex">`)
		csrfField(buf, d.CSRFToken)
		fmt.Fprintf(buf, `<input type="hidden" name="step" value="%d"><button type="submit" class="%s" title="%s"%s>%d</button></form>`,
			i, class, esc(s.Title), disabledUnless(i <= step), i+1)
	}
	buf.WriteString(`</div>`)
	fmt.Fprintf(buf, `<h2>%s</h2><p>%s</p>`, esc(Steps[step].Title), esc(Steps[step].Description))
	if d.State.Ready() {
		buf.WriteString(`<form method="post" action="/editor/step/">`)
		csrfField(buf, d.CSRFToken)
		fmt.Fprintf(buf, `<input type="hidden" name="step" value="%d"><button type="submit" class="btn">Back to sections</button></form>`, EditingStep)
	}

	if step == len(Steps)-1 {
		summary(buf, form)
		buf.WriteString(`<div class="inline">`)
		navButton(buf, d.CSRFToken, step, "back", "Back")
		postButton(buf, d.CSRFToken, "/editor/generate/", "btn btn-primary", "Generate Landing Page", "Generate", d.State.IsGenerating)
		buf.WriteString(`</div>`)
		return
	}

	buf.WriteString(`<form method="post" action="/editor/form/">`)
	csrfField(buf, d.CSRFToken)
	fmt.Fprintf(buf, `<input type="hidden" name="step" value="%d">`, step)
	switch step {
	case 0:
		fmt.Fprintf(buf, `<label class="field"><span>Product Name *</span><input name="productName" value="%s" placeholder="Enter your product or company name"></label>`, esc(form.ProductName))
		buf.WriteString(`<label class="field"><span>Industry *</span><select name="industry"><option value="">Select your industry</option>`)
		for _, ind := range Industries {
			fmt.Fprintf(buf, `<option value="%s"%s>%s</option>`, esc(ind), selected(form.Industry == ind), esc(ind))
		}
		buf.WriteString(`</select></label>`)
	case 1:
		buf.WriteString(`<fieldset class="field"><span>Tone *</span>`)
		for _, t := range Tones {
			fmt.Fprintf(buf, `<label><input type="radio" name="tone" value="%s"%s> <strong>%s</strong> %s</label><br>`,
				esc(string(t.Value)), checked(form.Tone == t.Value), esc(t.Label), esc(t.Description))
		}
		buf.WriteString(`</fieldset>`)
		color := form.BrandColor
		if color == "" {
			color = page.DefaultBrandColor
		}
		fmt.Fprintf(buf, `<label class="field"><span>Brand Color *</span><input name="brandColor" value="%s" placeholder="#3B82F6"></label>`, esc(color))
	case 2:
		fmt.Fprintf(buf, `<label class="field"><span>Target Audience *</span><input name="targetAudience" value="%s" placeholder="Who is your product for?"></label>`, esc(form.TargetAudience))
		fmt.Fprintf(buf, `<label class="field"><span>Unique Value Proposition *</span><textarea name="uniqueValue" rows="3" placeholder="What makes your product unique?">%s</textarea></label>`, esc(form.UniqueValue))
		fmt.Fprintf(buf, `<label class="field"><span>Key Features * (one per line, up to %d)</span><textarea name="keyFeatures" rows="5" placeholder="Enter a key feature">%s</textarea></label>`,
			page.MaxKeyFeatures, esc(JoinFeatures(form.KeyFeatures)))
	}
	buf.WriteString(`<div class="inline">`)
	fmt.Fprintf(buf, `<button type="submit" name="nav" value="back" class="btn"%s>Back</button>`, disabledUnless(step > 0))
	buf.WriteString(`<button type="submit" name="nav" value="save" class="btn">Save</button>`)
	buf.WriteString(`<button type="submit" name="nav" value="next" class="btn btn-primary">Next</button>`)
	buf.WriteString(`</div></form>`)
}

func navButton(buf *bytes.Buffer, token string, step int, nav, label string) {
	buf.WriteString(`<form method="post" action="/editor/form/">`)
	csrfField(buf, token)
	fmt.Fprintf(buf, `<input type="hidden" name="step" value="%d"><button type="submit" name="nav" value="%s" class="btn">%s</button></form>`, step, esc(nav), esc(label))
}

func summary(buf *bytes.Buffer, f page.UserFormData) {
	buf.WriteString(`<dl class="field">`)
	row := func(k, v string) { fmt.Fprintf(buf, `<dt><strong>%s</strong></dt><dd>%s</dd>`, esc(k), esc(v)) }
	row("Product", f.ProductName)
	row("Industry", f.Industry)
	row("Tone", string(f.Tone))
	row("Audience", f.TargetAudience)
	row("Unique value", f.UniqueValue)
	buf.WriteString(`<dt><strong>Features</strong></dt><dd><ul>`)
	for _, k := range f.KeyFeatures {
		fmt.Fprintf(buf, `<li>%s</li>`, esc(k))
	}
	buf.WriteString(`</ul></dd></dl>`)
}

func editorPanel(buf *bytes.Buffer, d EditorData) {
	st := d.State
	buf.WriteString(`<h2>Sections</h2><ul class="section-list">`)
	for i, s := range st.Sections {
		id := PathEscape(s.ID)
		class := ""
		if !s.IsVisible {
			class = ` class="hidden"`
		}
		fmt.Fprintf(buf, `<li%s data-section="%s"><span class="name">%s</span>`, class, esc(s.ID), esc(SectionLabel(s)))
		toggle := "Hide"
		if !s.IsVisible {
			toggle = "Show"
		}
		postButton(buf, d.CSRFToken, "/editor/sections/"+id+"/toggle/", "", toggle, toggle+" section", false)
		postButton(buf, d.CSRFToken, "/editor/sections/"+id+"/up/", "", "&uarr;", "Move up", i == 0)
		postButton(buf, d.CSRFToken, "/editor/sections/"+id+"/down/", "", "&darr;", "Move down", i == len(st.Sections)-1)
		postButton(buf, d.CSRFToken, "/editor/sections/"+id+"/delete/", "btn-danger", "&times;", "Delete section", false)
		buf.WriteString(`</li>`)
	}
	buf.WriteString(`</ul>`)

	buf.WriteString(`<h2>Add a section</h2><form method="post" action="/editor/sections/">`)
	csrfField(buf, d.CSRFToken)
	buf.WriteString(`<label class="field"><span>Describe the section</span><textarea name="description" rows="3" placeholder="e.g. A pricing section with three plans"></textarea></label>`)
	fmt.Fprintf(buf, `<button type="submit" class="btn btn-primary"%s>Add Section</button></form>`, disabledUnless(!st.IsGenerating))

	themePanel(buf, d)

	buf.WriteString(`<h2>Details</h2>`)
	buf.WriteString(`<form method="post" action="/editor/step/">`)
	csrfField(buf, d.CSRFToken)
	buf.WriteString(`<input type="hidden" name="step" value="0"><button type="submit" class="btn">Edit product details</button></form>`)
}

func themePanel(buf *bytes.Buffer, d EditorData) {
	th := d.State.Theme
	buf.WriteString(`<h2>Theme</h2><form method="post" action="/editor/theme/">`)
	csrfField(buf, d.CSRFToken)
	buf.WriteString(`<label class="field"><span>Mode</span><select name="mode">`)
	for _, m := range []page.ThemeMode{page.ModeLight, page.ModeDark} {
		fmt.Fprintf(buf, `<option value="%s"%s>%s</option>`, m, selected(th.Mode == m), m)
	}
	buf.WriteString(`</select></label>`)
	fmt.Fprintf(buf, `<label class="field"><span>Brand color</span><input type="color" name="brandColor" value="%s"></label>`, esc(exporter.BrandColor(th)))
	buf.WriteString(`<button type="submit" class="btn">Apply</button></form>`)

	buf.WriteString(`<div class="presets" style="margin-top:0.75rem">`)
	for _, p := range Presets {
		class := "swatch"
		if th.Preset == p {
			class += " active"
		}
		buf.WriteString(`<form method="post" action="/editor/theme/preset/">`)
		csrfField(buf, d.CSRFToken)
		fmt.Fprintf(buf, `<input type="hidden" name="preset" value="%s"><button type="submit" class="%s" title="%s" style="background:%s"></button></form>`,
			p, class, p, page.PresetColors[p])
	}
	buf.WriteString(`</div>`)
}

// Presets lists the theme presets in display order.
var Presets = []page.Preset{page.PresetDefault, page.PresetOcean, page.PresetSunset, page.PresetForest, page.PresetPurple}

func stage(buf *bytes.Buffer, d EditorData) {
	st := d.State
	buf.WriteString(`<section class="stage">`)
	if !st.Ready() {
		msg := "Fill in your product details and generate a page to see the preview."
		if st.IsGenerating {
			msg = "Generating your landing page..."
		}
		fmt.Fprintf(buf, `<p class="empty">%s</p></section>`, msg)
		return
	}
	buf.WriteString(`<div class="toolbar">`)
	for _, m := range []session.PreviewMode{session.PreviewDesktop, session.PreviewTablet, session.PreviewMobile} {
		class := "btn"
		if st.PreviewMode == m {
			class += " btn-primary"
		}
		buf.WriteString(`<form method="post" action="/editor/preview-mode/">`)
		csrfField(buf, d.CSRFToken)
		fmt.Fprintf(buf, `<button type="submit" name="mode" value="%s" class="%s">%s</button></form>`, m, class, m)
	}
	buf.WriteString(`</div>`)
	fmt.Fprintf(buf, `<iframe class="%s" src="/editor/preview/" title="Preview"></iframe></section>`, FrameClass(st.PreviewMode))
}

// SharePlatforms are the networks offered in the share dialog.
var SharePlatforms = []codec.Platform{codec.PlatformTwitter, codec.PlatformLinkedIn, codec.PlatformFacebook, codec.PlatformEmail}

func shareDialog(buf *bytes.Buffer, d EditorData) {
	l := d.Share
	buf.WriteString(`<div class="dialog" role="dialog" aria-modal="true"><div class="dialog-body">`)
	buf.WriteString(`<h2>Share your landing page</h2><p>Anyone with this link can view the page. The link contains the whole page, so later edits are not reflected.</p>`)
	fmt.Fprintf(buf, `<input readonly value="%s" onclick="this.select()">`, esc(l.URL))
	buf.WriteString(`<div class="social">`)
	for _, p := range SharePlatforms {
		fmt.Fprintf(buf, `<a class="btn" target="_blank" rel="noopener" href="%s">%s</a>`, esc(l.Social(p)), esc(string(p)))
	}
	fmt.Fprintf(buf, `<a class="btn" target="_blank" rel="noopener" href="%s">Open</a>`, esc(l.URL))
	buf.WriteString(`</div>`)
	fmt.Fprintf(buf, `<img class="qr" src="%s" width="200" height="200" alt="QR code for the share link">`, esc(l.QRCode()))
	buf.WriteString(`<a class="btn" href="/">Close</a></div></div>`)
}

func disabledUnless(ok bool) string {
	if ok {
		return ""
	}
	return " disabled"
}
