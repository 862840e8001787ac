// Package pagesmith is a landing page builder served with Go, Echo, and templ.
// Visitors fill in a short product form, get a generated page they can
// reorder and restyle, export it as standalone HTML, and share it through a
// link that carries the whole page.
//
// Templates are provided through the ViewFuncs struct; the views package
// has the defaults.
package pagesmith

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/robfig/cron/v3"

	"github.com/eringen/pagesmith/contact"
	"github.com/eringen/pagesmith/session"
	"github.com/eringen/pagesmith/storage"
	"github.com/eringen/pagesmith/views"
)

// ViewFuncs holds the templ components the app renders pages with.
type ViewFuncs struct {
	Editor      func(d views.EditorData) templ.Component
	Shared      func(d views.SharedData) templ.Component
	InvalidLink func(editorURL string) templ.Component
	NotFound    func() templ.Component
	ServerError func() templ.Component
}

// DefaultViews returns the components from the views package.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Editor:      views.Editor,
		Shared:      views.Shared,
		InvalidLink: views.InvalidLink,
		NotFound:    views.NotFound,
		ServerError: views.ServerError,
	}
}

const (
	// sessionTable holds one persisted session per workspace.
	sessionTable = "sessions"
	// workspaceIdle is how long a live store stays in memory unused.
	workspaceIdle = time.Hour
	sweepSchedule = "@every 10m"
	retentionSpec = "@daily"
)

// App is the central pagesmith application. It wires together the
// database, workspaces, contact backend, handlers, middleware, and views.
type App struct {
	Config     Config
	Echo       *echo.Echo
	DB         *sql.DB
	Workspaces *Workspaces
	Contacts   contact.Store
	Views      ViewFuncs
	Registry   *prometheus.Registry

	contactHandler *contact.Handler
	notifier       contact.Notifier
	metrics        *metrics
	sessionKV      *storage.KV
	sweeper        *cron.Cron
	stopRetention  func()
	customRoutes   []func(*App)
	staticDir      string
	now            func() time.Time
}

// New creates a new pagesmith App with the given configuration.
func New(cfg Config, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     DefaultViews(),
		staticDir: "public",
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Setup opens the database and registers middleware and routes. Start calls
// it; tests call it directly and drive a.Echo.
func (a *App) Setup() error {
	if err := a.Config.validate(); err != nil {
		return err
	}

	db, err := storage.Open(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("pagesmith: open database: %w", err)
	}
	a.DB = db

	kv, err := storage.NewKV(db, sessionTable)
	if err != nil {
		return fmt.Errorf("pagesmith: init session table: %w", err)
	}
	a.sessionKV = kv
	a.Workspaces = NewWorkspaces(kv, a.now,
		session.WithDelays(a.Config.GenerationDelay, a.Config.CustomSectionDelay),
		session.WithClock(a.now),
	)

	a.Registry = prometheus.NewRegistry()
	if a.Config.MetricsEnabled {
		a.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	a.metrics = newMetrics(a.Registry, func() float64 { return float64(a.Workspaces.Len()) })

	if err := a.setupContacts(); err != nil {
		return err
	}

	a.sweeper = cron.New()
	if _, err := a.sweeper.AddFunc(sweepSchedule, a.sweepWorkspaces); err != nil {
		return fmt.Errorf("pagesmith: schedule workspace sweep: %w", err)
	}
	a.sweeper.Start()

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

func (a *App) setupContacts() error {
	switch a.Config.ContactBackend {
	case ContactSQLite:
		s, err := contact.NewSQLiteStore(a.DB)
		if err != nil {
			return fmt.Errorf("pagesmith: init contact store: %w", err)
		}
		a.Contacts = s
	case ContactFile:
		s, err := contact.NewFileStore(a.Config.ContactFile)
		if err != nil {
			return fmt.Errorf("pagesmith: init contact store: %w", err)
		}
		a.Contacts = s
	default:
		a.Contacts = contact.NewMemoryStore()
	}

	if a.notifier == nil {
		if n := contact.NewMailgunNotifier(a.Config.Mailgun); n != nil {
			a.notifier = n
		}
	}
	opts := []contact.HandlerOption{
		contact.WithClock(a.now),
		contact.WithLimiter(contact.NewLimiter(a.Config.ContactRateLimit, a.Config.ContactRateWindow)),
		contact.OnSubmit(func() { a.metrics.contacts.Inc() }),
	}
	if a.notifier != nil {
		opts = append(opts, contact.WithNotifier(a.notifier))
	}
	a.contactHandler = contact.NewHandler(a.Contacts, opts...)

	stop, err := contact.StartRetention(a.Contacts, a.Config.ContactRetentionDays, retentionSpec)
	if err != nil {
		return fmt.Errorf("pagesmith: schedule contact retention: %w", err)
	}
	a.stopRetention = stop
	return nil
}

// sweepWorkspaces drops idle stores from memory and deletes persisted
// sessions untouched for longer than WorkspaceTTL.
func (a *App) sweepWorkspaces() {
	evicted := a.Workspaces.Evict(workspaceIdle)
	purged, err := a.sessionKV.PurgeBefore(context.Background(), a.now().Add(-a.Config.WorkspaceTTL))
	if err != nil {
		log.Printf("pagesmith: purge sessions: %v", err)
		return
	}
	if evicted > 0 || purged > 0 {
		log.Printf("pagesmith: workspace sweep evicted %d, purged %d", evicted, purged)
	}
}

// Start sets the app up and serves until the server is shut down.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Serve embedded editor assets under /public/; everything else there
	// falls through to the user's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/editor.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.Static("/public", a.staticDir)

	// Editor
	e.GET("/", a.handleEditor)
	e.POST("/editor/form/", a.handleForm)
	e.POST("/editor/step/", a.handleStep)
	e.POST("/editor/generate/", a.handleGenerate)
	e.POST("/editor/sections/", a.handleAddSection)
	e.POST("/editor/sections/:id/toggle/", a.handleToggle)
	e.POST("/editor/sections/:id/up/", a.handleMove(-1))
	e.POST("/editor/sections/:id/down/", a.handleMove(1))
	e.POST("/editor/sections/:id/delete/", a.handleDelete)
	e.POST("/editor/theme/", a.handleTheme)
	e.POST("/editor/theme/preset/", a.handlePreset)
	e.POST("/editor/preview-mode/", a.handlePreviewMode)
	e.POST("/editor/reset/", a.handleReset)
	e.GET("/editor/preview/", a.handlePreview)
	e.GET("/editor/export/", a.handleExport)
	e.GET("/editor/share/", a.handleShare)

	// Shared viewer
	e.GET("/shared/:token", a.handleShared)
	e.GET("/shared/:token/page", a.handleSharedPage)
	e.GET("/shared/:token/export", a.handleSharedExport)

	// Contact API
	api := e.Group("/api", a.corsMiddleware())
	a.contactHandler.RegisterRoutes(api, a.adminAuth())

	if a.Config.MetricsEnabled {
		e.GET("/metrics", a.metricsHandler())
	}
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.sweeper != nil {
		<-a.sweeper.Stop().Done()
	}
	if a.stopRetention != nil {
		a.stopRetention()
	}
	if a.contactHandler != nil {
		a.contactHandler.Close()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
