package pagesmith

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/eringen/pagesmith/contact"
	"github.com/eringen/pagesmith/session"
)

// Contact storage backends.
const (
	ContactSQLite = "sqlite"
	ContactFile   = "file"
	ContactMemory = "memory"
)

// Config holds all configuration for a pagesmith server.
type Config struct {
	Name string `env:"PAGESMITH_NAME" envDefault:"Pagesmith"`
	URL  string `env:"PAGESMITH_URL" envDefault:"http://localhost:3000"` // origin used in share links

	Addr         string `env:"PAGESMITH_ADDR" envDefault:":3000"`
	DatabasePath string `env:"PAGESMITH_DATABASE_PATH" envDefault:"data/pagesmith.db"`

	SessionSecret string `env:"PAGESMITH_SESSION_SECRET"` // required
	CookieSecure  bool   `env:"PAGESMITH_COOKIE_SECURE" envDefault:"false"`

	GenerationDelay    time.Duration `env:"PAGESMITH_GENERATION_DELAY" envDefault:"1500ms"`
	CustomSectionDelay time.Duration `env:"PAGESMITH_CUSTOM_SECTION_DELAY" envDefault:"1000ms"`
	WorkspaceTTL       time.Duration `env:"PAGESMITH_WORKSPACE_TTL" envDefault:"720h"`

	ContactBackend       string        `env:"PAGESMITH_CONTACT_BACKEND" envDefault:"sqlite"`
	ContactFile          string        `env:"PAGESMITH_CONTACT_FILE" envDefault:"data/contact_submissions.json"`
	ContactRetentionDays int           `env:"PAGESMITH_CONTACT_RETENTION_DAYS" envDefault:"365"`
	ContactRateLimit     int           `env:"PAGESMITH_CONTACT_RATE_LIMIT" envDefault:"5"`
	ContactRateWindow    time.Duration `env:"PAGESMITH_CONTACT_RATE_WINDOW" envDefault:"10m"`
	AllowedOrigins       []string      `env:"PAGESMITH_ALLOWED_ORIGINS" envSeparator:","`
	AdminToken           string        `env:"PAGESMITH_ADMIN_TOKEN"` // empty disables the contact admin API

	Mailgun contact.MailgunConfig `envPrefix:"PAGESMITH_MAILGUN_"`

	MetricsEnabled bool `env:"PAGESMITH_METRICS_ENABLED" envDefault:"true"`
}

// LoadConfig reads a Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("pagesmith: parse config: %w", err)
	}
	return cfg, nil
}

// setDefaults fills zero values for configs built in code rather than
// loaded from the environment. Zero delays are replaced too; use
// WithGenerationDelay to turn them off.
func (c *Config) setDefaults() {
	if c.Name == "" {
		c.Name = "Pagesmith"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/pagesmith.db"
	}
	if c.GenerationDelay == 0 {
		c.GenerationDelay = session.DefaultGenerationDelay
	}
	if c.CustomSectionDelay == 0 {
		c.CustomSectionDelay = session.DefaultCustomSectionDelay
	}
	if c.WorkspaceTTL == 0 {
		c.WorkspaceTTL = 30 * 24 * time.Hour
	}
	if c.ContactBackend == "" {
		c.ContactBackend = ContactSQLite
	}
	if c.ContactFile == "" {
		c.ContactFile = "data/contact_submissions.json"
	}
	if c.ContactRateLimit == 0 {
		c.ContactRateLimit = 5
	}
	if c.ContactRateWindow == 0 {
		c.ContactRateWindow = 10 * time.Minute
	}
}

func (c Config) validate() error {
	if c.SessionSecret == "" {
		return fmt.Errorf("pagesmith: SessionSecret is required")
	}
	switch c.ContactBackend {
	case ContactSQLite, ContactFile, ContactMemory:
	default:
		return fmt.Errorf("pagesmith: unknown contact backend %q", c.ContactBackend)
	}
	return nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are set up.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithClock sets the time source for share timestamps and the contact API.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}

// WithGenerationDelay overrides both generation delays; tests use zero.
func WithGenerationDelay(d time.Duration) Option {
	return func(a *App) {
		a.Config.GenerationDelay = d
		a.Config.CustomSectionDelay = d
	}
}

// WithNotifier replaces the Mailgun notifier built from Config.
func WithNotifier(n contact.Notifier) Option {
	return func(a *App) {
		a.notifier = n
	}
}

// WithViews replaces the page templates.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.Views = v
	}
}
