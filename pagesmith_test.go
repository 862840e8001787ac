package pagesmith

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/eringen/pagesmith/page"
	"github.com/eringen/pagesmith/session"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		Name:           "Pagesmith",
		URL:            "https://pages.example.com",
		DatabasePath:   filepath.Join(t.TempDir(), "pagesmith.db"),
		SessionSecret:  "test-secret-test-secret-test-secret",
		ContactBackend: ContactMemory,
		AdminToken:     "admin-token",
		MetricsEnabled: true,
	}
}

func newTestApp(t *testing.T, cfg Config, opts ...Option) *App {
	t.Helper()
	base := []Option{WithGenerationDelay(0), WithClock(func() time.Time { return fixedNow })}
	a := New(cfg, append(base, opts...)...)
	if err := a.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

// browser replays cookies between requests the way a real one would.
type browser struct {
	t       *testing.T
	app     *App
	cookies map[string]*http.Cookie
}

func newBrowser(t *testing.T, a *App) *browser {
	return &browser{t: t, app: a, cookies: map[string]*http.Cookie{}}
}

func (b *browser) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	b.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	if csrf, ok := b.cookies["_csrf"]; ok && method != http.MethodGet {
		req.Header.Set("X-CSRF-Token", csrf.Value)
	}
	rec := httptest.NewRecorder()
	b.app.Echo.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		b.cookies[c.Name] = c
	}
	return rec
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(http.MethodGet, path, nil)
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	b.t.Helper()
	if form == nil {
		form = url.Values{}
	}
	return b.do(http.MethodPost, path, form)
}

func expectRedirect(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303; body:\n%s", rec.Code, rec.Body.String())
	}
}

// liveStore returns the only workspace the app holds.
func liveStore(t *testing.T, a *App) *session.Store {
	t.Helper()
	a.Workspaces.mu.Lock()
	defer a.Workspaces.mu.Unlock()
	if len(a.Workspaces.live) != 1 {
		t.Fatalf("live workspaces = %d, want 1", len(a.Workspaces.live))
	}
	for _, ws := range a.Workspaces.live {
		return ws.store
	}
	return nil
}

// fillForm walks the details form and generates a page.
func fillForm(t *testing.T, b *browser) {
	t.Helper()
	if rec := b.get("/"); rec.Code != http.StatusOK {
		t.Fatalf("GET / = %d", rec.Code)
	}
	expectRedirect(t, b.post("/editor/form/", url.Values{"step": {"0"}, "nav": {"next"},
		"productName": {"Acme Analytics"}, "industry": {"Technology"}}))
	expectRedirect(t, b.post("/editor/form/", url.Values{"step": {"1"}, "nav": {"next"},
		"tone": {"bold"}, "brandColor": {"#0891B2"}}))
	expectRedirect(t, b.post("/editor/form/", url.Values{"step": {"2"}, "nav": {"next"},
		"targetAudience": {"data teams"}, "uniqueValue": {"Dashboards in minutes"},
		"keyFeatures": {"Real-time sync\n\nAlerts\n"}}))
	expectRedirect(t, b.post("/editor/generate/", nil))
}

func TestEditorFlow(t *testing.T) {
	a := newTestApp(t, testConfig(t))
	b := newBrowser(t, a)
	fillForm(t, b)

	st := liveStore(t, a).Snapshot()
	if !st.Ready() || len(st.Sections) != 4 {
		t.Fatalf("after generate: ready=%v sections=%d", st.Ready(), len(st.Sections))
	}
	if got := st.FormData.KeyFeatures; len(got) != 2 || got[1] != "Alerts" {
		t.Errorf("key features = %q", got)
	}
	if st.CurrentStep != 4 {
		t.Errorf("current step = %d, want the section editor", st.CurrentStep)
	}

	rec := b.get("/")
	body := rec.Body.String()
	if !strings.Contains(body, "Add Section") || !strings.Contains(body, `data-section="testimonials"`) {
		t.Errorf("editor panel missing:\n%s", body)
	}

	rec = b.get("/editor/preview/")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Acme Analytics") {
		t.Fatalf("preview: %d", rec.Code)
	}
}

func TestSectionEditing(t *testing.T) {
	a := newTestApp(t, testConfig(t))
	b := newBrowser(t, a)
	fillForm(t, b)
	store := liveStore(t, a)

	expectRedirect(t, b.post("/editor/sections/about/toggle/", nil))
	if s := store.Snapshot().Sections[1]; s.ID != "about" || s.IsVisible {
		t.Errorf("about after toggle = %+v", s)
	}
	if strings.Contains(b.get("/editor/preview/").Body.String(), `id="about"`) {
		t.Error("hidden section rendered in preview")
	}

	expectRedirect(t, b.post("/editor/sections/hero/down/", nil))
	expectRedirect(t, b.post("/editor/sections/testimonials/up/", nil))
	var ids []string
	for i, s := range store.Snapshot().Sections {
		if s.Order != i {
			t.Errorf("section %s order = %d at index %d", s.ID, s.Order, i)
		}
		ids = append(ids, s.ID)
	}
	if got := strings.Join(ids, ","); got != "about,hero,testimonials,features" {
		t.Errorf("order = %s", got)
	}

	expectRedirect(t, b.post("/editor/sections/", url.Values{"description": {"Pricing plans"}}))
	secs := store.Snapshot().Sections
	if last := secs[len(secs)-1]; last.Type != page.SectionCustom || last.Order != 4 || !strings.HasPrefix(last.ID, "custom-") {
		t.Errorf("custom section = %+v", last)
	}

	expectRedirect(t, b.post("/editor/sections/features/delete/", nil))
	if session.IndexOf(store.Snapshot().Sections, "features") >= 0 {
		t.Error("features not deleted")
	}

	if rec := b.post("/editor/sections/nope/toggle/", nil); rec.Code != http.StatusNotFound {
		t.Errorf("unknown section = %d, want 404", rec.Code)
	}
	if rec := b.post("/editor/sections/", url.Values{"description": {"  "}}); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("blank description = %d, want 422", rec.Code)
	}
}

func TestThemeAndPreviewMode(t *testing.T) {
	a := newTestApp(t, testConfig(t))
	b := newBrowser(t, a)
	fillForm(t, b)
	store := liveStore(t, a)

	expectRedirect(t, b.post("/editor/theme/preset/", url.Values{"preset": {"sunset"}}))
	if th := store.Snapshot().Theme; th.Preset != page.PresetSunset || th.BrandColor != "#EA580C" {
		t.Errorf("theme after preset = %+v", th)
	}
	expectRedirect(t, b.post("/editor/theme/", url.Values{"mode": {"dark"}, "brandColor": {"#112233"}}))
	if th := store.Snapshot().Theme; th.Mode != page.ModeDark || th.BrandColor != "#112233" || th.Preset != page.PresetSunset {
		t.Errorf("theme after update = %+v", th)
	}
	if rec := b.post("/editor/theme/", url.Values{"brandColor": {"red"}}); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("bad colour = %d, want 422", rec.Code)
	}
	if rec := b.post("/editor/theme/preset/", url.Values{"preset": {"neon"}}); rec.Code != http.StatusBadRequest {
		t.Errorf("bad preset = %d, want 400", rec.Code)
	}

	expectRedirect(t, b.post("/editor/preview-mode/", url.Values{"mode": {"mobile"}}))
	if m := store.Snapshot().PreviewMode; m != session.PreviewMobile {
		t.Errorf("preview mode = %s", m)
	}
	if !strings.Contains(b.get("/").Body.String(), "frame frame-mobile") {
		t.Error("editor does not frame the mobile preview")
	}
	if rec := b.post("/editor/preview-mode/", url.Values{"mode": {"watch"}}); rec.Code != http.StatusBadRequest {
		t.Errorf("bad mode = %d, want 400", rec.Code)
	}
}

func TestFormStepValidation(t *testing.T) {
	a := newTestApp(t, testConfig(t))
	b := newBrowser(t, a)
	b.get("/")

	rec := b.post("/editor/form/", url.Values{"step": {"0"}, "nav": {"next"}, "productName": {"Acme"}})
	if rec.Code != http.StatusUnprocessableEntity || !strings.Contains(rec.Body.String(), "required fields") {
		t.Fatalf("incomplete step: %d", rec.Code)
	}
	if rec := b.post("/editor/generate/", nil); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("generate with empty form = %d, want 422", rec.Code)
	}
	if liveStore(t, a).Snapshot().Ready() {
		t.Error("content generated from an incomplete form")
	}
}

func TestExportDownload(t *testing.T) {
	a := newTestApp(t, testConfig(t))
	b := newBrowser(t, a)
	fillForm(t, b)

	rec := b.get("/editor/export/")
	if rec.Code != http.StatusOK {
		t.Fatalf("export = %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="acme-analytics.html"` {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !strings.HasPrefix(rec.Body.String(), "<!DOCTYPE html>") {
		t.Error("export is not a standalone document")
	}
}

var reShareURL = regexp.MustCompile(`https://pages\.example\.com/shared/([A-Za-z0-9_-]+)`)

func TestShareAndView(t *testing.T) {
	a := newTestApp(t, testConfig(t))
	b := newBrowser(t, a)
	fillForm(t, b)

	rec := b.get("/editor/share/")
	m := reShareURL.FindStringSubmatch(rec.Body.String())
	if rec.Code != http.StatusOK || m == nil {
		t.Fatalf("share dialog: %d\n%s", rec.Code, rec.Body.String())
	}
	token := m[1]

	// a visitor with no cookies
	v := newBrowser(t, a)
	rec = v.get("/shared/" + token)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Download HTML") {
		t.Fatalf("viewer: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `property="og:title" content="Acme Analytics"`) {
		t.Error("viewer has no preview metadata")
	}
	rec = v.get("/shared/" + token + "/page")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Acme Analytics") {
		t.Errorf("shared page: %d", rec.Code)
	}
	rec = v.get("/shared/" + token + "/export")
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "acme-analytics.html") {
		t.Errorf("shared export Content-Disposition = %q", cd)
	}
	if a.Workspaces.Len() != 1 {
		t.Errorf("viewing a link created a workspace: %d live", a.Workspaces.Len())
	}

	// edits after sharing do not reach the link
	expectRedirect(t, b.post("/editor/sections/hero/delete/", nil))
	if !strings.Contains(v.get("/shared/"+token+"/page").Body.String(), `id="hero"`) {
		t.Error("shared page changed after the session was edited")
	}
}

func TestInvalidShareLink(t *testing.T) {
	a := newTestApp(t, testConfig(t))
	b := newBrowser(t, a)

	for _, token := range []string{"not-a-token", "eyJmb28iOjF9", "AAAA"} {
		rec := b.get("/shared/" + token)
		if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "invalid or has expired") {
			t.Errorf("token %q: %d", token, rec.Code)
		}
	}
	rec := b.get("/metrics")
	if !strings.Contains(rec.Body.String(), "pagesmith_share_decode_failures_total 3") {
		t.Errorf("decode failures not counted:\n%s", rec.Body.String())
	}
}

func TestCSRFRequired(t *testing.T) {
	a := newTestApp(t, testConfig(t))
	req := httptest.NewRequest(http.MethodPost, "/editor/reset/", nil)
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("POST without token = %d, want 403", rec.Code)
	}
}

func TestWorkspaceSurvivesRestart(t *testing.T) {
	cfg := testConfig(t)
	first := New(cfg, WithGenerationDelay(0))
	if err := first.Setup(); err != nil {
		t.Fatal(err)
	}
	b := newBrowser(t, first)
	fillForm(t, b)
	first.Close()

	second := newTestApp(t, cfg)
	b.app = second
	rec := b.get("/")
	if !strings.Contains(rec.Body.String(), `data-section="hero"`) && !strings.Contains(rec.Body.String(), "Back to sections") {
		t.Errorf("restored workspace has no page:\n%s", rec.Body.String())
	}
	st := liveStore(t, second).Snapshot()
	if !st.Ready() || st.FormData.ProductName != "Acme Analytics" || st.Theme.BrandColor != page.DefaultBrandColor {
		t.Errorf("restored state = %+v", st)
	}
}

func TestResetClearsWorkspace(t *testing.T) {
	a := newTestApp(t, testConfig(t))
	b := newBrowser(t, a)
	fillForm(t, b)
	expectRedirect(t, b.post("/editor/reset/", nil))
	if st := liveStore(t, a).Snapshot(); st.Ready() || len(st.Sections) != 0 || st.FormData.ProductName != "" {
		t.Errorf("state after reset = %+v", st)
	}
}

func TestContactAPIMounted(t *testing.T) {
	a := newTestApp(t, testConfig(t))

	body := `{"name":"Ada","email":"ada@example.com","subject":"Hello","message":"I would like a demo please"}`
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("submit = %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/contacts", nil)
	rec = httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("admin without token = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/contacts", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	rec = httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"count":1`) {
		t.Errorf("admin list = %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "pagesmith_contact_submissions_total 1") {
		t.Error("contact submission not counted")
	}
}

func TestUnknownPageRendersNotFound(t *testing.T) {
	a := newTestApp(t, testConfig(t))
	b := newBrowser(t, a)
	rec := b.get("/nothing/here/")
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "Page not found") {
		t.Errorf("GET unknown = %d", rec.Code)
	}
}

func TestSetupValidatesConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.SessionSecret = ""
	if err := New(cfg).Setup(); err == nil {
		t.Error("expected an error without a session secret")
	}
	cfg = testConfig(t)
	cfg.ContactBackend = "postgres"
	if err := New(cfg).Setup(); err == nil {
		t.Error("expected an error for an unknown contact backend")
	}
}
