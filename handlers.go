package pagesmith

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/pagesmith/exporter"
	"github.com/eringen/pagesmith/page"
	"github.com/eringen/pagesmith/session"
	"github.com/eringen/pagesmith/share"
	"github.com/eringen/pagesmith/views"
)

func (a *App) renderEditor(c echo.Context, store *session.Store, code int, notice string, link *share.Link) error {
	return RenderStatus(c, code, a.Views.Editor(views.EditorData{
		SiteName:  a.Config.Name,
		State:     store.Snapshot(),
		CSRFToken: CsrfToken(c),
		Notice:    notice,
		Share:     link,
	}))
}

func backToEditor(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, "/")
}

func (a *App) handleEditor(c echo.Context) error {
	store, err := a.workspace(c)
	if err != nil {
		return err
	}
	return a.renderEditor(c, store, http.StatusOK, "", nil)
}

// formPatch builds a patch from the form fields that were submitted. Fields
// absent from the request are left alone.
func formPatch(params url.Values) page.FormPatch {
	var p page.FormPatch
	str := func(key string) *string {
		if !params.Has(key) {
			return nil
		}
		v := strings.TrimSpace(params.Get(key))
		return &v
	}
	p.ProductName = str("productName")
	p.Industry = str("industry")
	p.BrandColor = str("brandColor")
	p.TargetAudience = str("targetAudience")
	p.UniqueValue = str("uniqueValue")
	if params.Has("tone") {
		t := page.Tone(params.Get("tone"))
		p.Tone = &t
	}
	if params.Has("keyFeatures") {
		f := views.SplitFeatures(params.Get("keyFeatures"))
		p.KeyFeatures = &f
	}
	return p
}

func (a *App) handleForm(c echo.Context) error {
	store, err := a.workspace(c)
	if err != nil {
		return err
	}
	params, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	store.UpdateFormData(formPatch(params))

	step, _ := strconv.Atoi(params.Get("step"))
	step = max(0, min(step, len(views.Steps)-1))
	switch params.Get("nav") {
	case "back":
		step = max(0, step-1)
	case "next":
		if !views.StepComplete(store.Snapshot().FormData, step) {
			store.SetCurrentStep(step)
			return a.renderEditor(c, store, http.StatusUnprocessableEntity, "Please fill in the required fields before continuing.", nil)
		}
		step = min(step+1, len(views.Steps)-1)
	}
	store.SetCurrentStep(step)
	return backToEditor(c)
}

func (a *App) handleStep(c echo.Context) error {
	store, err := a.workspace(c)
	if err != nil {
		return err
	}
	step, err := strconv.Atoi(c.FormValue("step"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid step")
	}
	last := len(views.Steps) - 1
	if store.Snapshot().Ready() {
		last = views.EditingStep
	}
	store.SetCurrentStep(max(0, min(step, last)))
	return backToEditor(c)
}

func (a *App) handleGenerate(c echo.Context) error {
	store, err := a.workspace(c)
	if err != nil {
		return err
	}
	form := store.Snapshot().FormData
	for i := 0; i < len(views.Steps)-1; i++ {
		if !views.StepComplete(form, i) {
			store.SetCurrentStep(i)
			return a.renderEditor(c, store, http.StatusUnprocessableEntity, "Please complete this step before generating.", nil)
		}
	}

	err = store.GenerateContent(c.Request().Context())
	a.metrics.generations.WithLabelValues("page", result(err)).Inc()
	if errors.Is(err, session.ErrBusy) {
		return a.renderEditor(c, store, http.StatusConflict, "Your page is already being generated.", nil)
	}
	if err != nil {
		c.Logger().Warnf("generate: %v", err)
		return a.renderEditor(c, store, http.StatusInternalServerError, "Generation failed. Your previous page is unchanged; please try again.", nil)
	}
	store.SetCurrentStep(views.EditingStep)
	return backToEditor(c)
}

func (a *App) handleAddSection(c echo.Context) error {
	store, err := a.workspace(c)
	if err != nil {
		return err
	}
	desc := strings.TrimSpace(c.FormValue("description"))
	if desc == "" {
		return a.renderEditor(c, store, http.StatusUnprocessableEntity, "Describe the section you want to add.", nil)
	}
	_, err = store.AddCustomSection(c.Request().Context(), desc)
	a.metrics.generations.WithLabelValues("custom", result(err)).Inc()
	if errors.Is(err, session.ErrBusy) {
		return a.renderEditor(c, store, http.StatusConflict, "Please wait for the current generation to finish.", nil)
	}
	if err != nil {
		c.Logger().Warnf("add section: %v", err)
		return a.renderEditor(c, store, http.StatusInternalServerError, "The section could not be added; please try again.", nil)
	}
	return backToEditor(c)
}

// editSection applies fn to the section list if it holds c's :id.
func (a *App) editSection(c echo.Context, fn func([]page.Section, string) []page.Section) error {
	store, err := a.workspace(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	if session.IndexOf(store.Snapshot().Sections, id) < 0 {
		return echo.ErrNotFound
	}
	store.EditSections(func(in []page.Section) []page.Section { return fn(in, id) })
	return backToEditor(c)
}

func (a *App) handleToggle(c echo.Context) error {
	return a.editSection(c, session.ToggleVisibility)
}

func (a *App) handleMove(delta int) echo.HandlerFunc {
	return func(c echo.Context) error {
		return a.editSection(c, func(in []page.Section, id string) []page.Section {
			return session.MoveByID(in, id, delta)
		})
	}
}

func (a *App) handleDelete(c echo.Context) error {
	return a.editSection(c, session.Remove)
}

func (a *App) handleTheme(c echo.Context) error {
	store, err := a.workspace(c)
	if err != nil {
		return err
	}
	var p page.ThemePatch
	switch mode := page.ThemeMode(c.FormValue("mode")); mode {
	case page.ModeLight, page.ModeDark:
		p.Mode = &mode
	case "":
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "invalid theme mode")
	}
	if color := strings.TrimSpace(c.FormValue("brandColor")); color != "" {
		if !page.IsHexColor(color) {
			return a.renderEditor(c, store, http.StatusUnprocessableEntity, "Brand color must be a hex color like #3B82F6.", nil)
		}
		p.BrandColor = &color
	}
	store.UpdateTheme(p)
	return backToEditor(c)
}

func (a *App) handlePreset(c echo.Context) error {
	store, err := a.workspace(c)
	if err != nil {
		return err
	}
	preset := page.Preset(c.FormValue("preset"))
	color, ok := page.PresetColors[preset]
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown preset")
	}
	store.UpdateTheme(page.ThemePatch{Preset: &preset, BrandColor: &color})
	return backToEditor(c)
}

func (a *App) handlePreviewMode(c echo.Context) error {
	store, err := a.workspace(c)
	if err != nil {
		return err
	}
	if err := store.SetPreviewMode(session.PreviewMode(c.FormValue("mode"))); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid preview mode")
	}
	return backToEditor(c)
}

func (a *App) handleReset(c echo.Context) error {
	store, err := a.workspace(c)
	if err != nil {
		return err
	}
	store.Reset()
	return backToEditor(c)
}

// handlePreview serves the live preview document the editor frames.
func (a *App) handlePreview(c echo.Context) error {
	store, err := a.workspace(c)
	if err != nil {
		return err
	}
	html, err := store.ExportToHTML()
	if err != nil {
		return err
	}
	return c.HTML(http.StatusOK, html)
}

func (a *App) handleExport(c echo.Context) error {
	store, err := a.workspace(c)
	if err != nil {
		return err
	}
	html, err := store.ExportToHTML()
	if err != nil {
		return err
	}
	a.metrics.exports.WithLabelValues("editor").Inc()
	return Download(c, exporter.Filename(store.Snapshot().FormData.ProductName), html)
}

func (a *App) handleShare(c echo.Context) error {
	store, err := a.workspace(c)
	if err != nil {
		return err
	}
	link, err := share.Create(store, a.Config.URL)
	if err != nil {
		c.Logger().Errorf("share: %v", err)
		return a.renderEditor(c, store, http.StatusInternalServerError, "The share link could not be created.", nil)
	}
	a.metrics.shares.Inc()
	return a.renderEditor(c, store, http.StatusOK, "", &link)
}

// openShared decodes :token. Invalid tokens render the invalid link page
// and return ok=false.
func (a *App) openShared(c echo.Context) (view *share.View, ok bool, err error) {
	view, err = share.Open(c.Param("token"))
	if err != nil {
		a.metrics.decodeFailures.Inc()
		c.Logger().Infof("shared: %v", err)
		return nil, false, RenderStatus(c, http.StatusNotFound, a.Views.InvalidLink(a.editorURL()))
	}
	return view, true, nil
}

func (a *App) editorURL() string {
	return strings.TrimRight(a.Config.URL, "/") + "/"
}

func (a *App) handleShared(c echo.Context) error {
	view, ok, err := a.openShared(c)
	if !ok {
		return err
	}
	return Render(c, a.Views.Shared(views.SharedData{
		SiteName:  a.Config.Name,
		View:      view,
		Link:      view.Link(a.Config.URL),
		Preview:   view.Preview(),
		EditorURL: a.editorURL(),
	}))
}

func (a *App) handleSharedPage(c echo.Context) error {
	view, ok, err := a.openShared(c)
	if !ok {
		return err
	}
	html, err := view.ExportHTML()
	if err != nil {
		return err
	}
	return c.HTML(http.StatusOK, html)
}

func (a *App) handleSharedExport(c echo.Context) error {
	view, ok, err := a.openShared(c)
	if !ok {
		return err
	}
	html, err := view.ExportHTML()
	if err != nil {
		return err
	}
	a.metrics.exports.WithLabelValues("shared").Inc()
	return Download(c, view.Filename(), html)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
