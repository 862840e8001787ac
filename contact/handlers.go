package contact

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Handler serves the contact API.
type Handler struct {
	store    Store
	limiter  *Limiter
	notifier Notifier
	now      func() time.Time
	onSubmit func()
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithNotifier sends every accepted submission to n.
func WithNotifier(n Notifier) HandlerOption {
	return func(h *Handler) { h.notifier = n }
}

// WithLimiter replaces the default per-IP limiter.
func WithLimiter(l *Limiter) HandlerOption {
	return func(h *Handler) { h.limiter = l }
}

// WithClock sets the time source.
func WithClock(now func() time.Time) HandlerOption {
	return func(h *Handler) { h.now = now }
}

// OnSubmit registers a hook run after each stored submission.
func OnSubmit(fn func()) HandlerOption {
	return func(h *Handler) { h.onSubmit = fn }
}

// NewHandler creates a contact handler. Submissions are limited to five per
// IP per ten minutes unless WithLimiter says otherwise.
func NewHandler(store Store, opts ...HandlerOption) *Handler {
	h := &Handler{store: store, now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	if h.limiter == nil {
		h.limiter = NewLimiter(5, 10*time.Minute)
	}
	return h
}

// Close stops the limiter.
func (h *Handler) Close() { h.limiter.Stop() }

type response struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
	ID      string   `json:"id,omitempty"`
	Data    any      `json:"data,omitempty"`
	Count   *int     `json:"count,omitempty"`
}

func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, response{Success: false, Message: msg})
}

// Health reports that the API is up.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "OK",
		"timestamp": h.now().UTC().Format(time.RFC3339Nano),
	})
}

// Submit stores a contact form post.
func (h *Handler) Submit(c echo.Context) error {
	ip := c.RealIP()
	if !h.limiter.Allow(ip) {
		return fail(c, http.StatusTooManyRequests, "Too many submissions, please try again later")
	}
	var in Input
	if err := c.Bind(&in); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if errs := Validate(in); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, response{Success: false, Message: "Validation failed", Errors: errs})
	}

	sub := NewSubmission(in, h.now(), ip, c.Request().UserAgent())
	if err := h.store.Add(c.Request().Context(), sub); err != nil {
		c.Logger().Errorf("contact: save submission: %v", err)
		return fail(c, http.StatusInternalServerError, "Failed to save submission")
	}
	c.Logger().Infof("contact: new submission %s", sub.ID)
	if h.onSubmit != nil {
		h.onSubmit()
	}
	if h.notifier != nil {
		logger := c.Logger()
		go func(s Submission) {
			if err := h.notifier.Notify(context.Background(), s); err != nil {
				logger.Errorf("contact: notify: %v", err)
			}
		}(sub)
	}
	return c.JSON(http.StatusOK, response{Success: true, Message: "Message received successfully!", ID: sub.ID})
}

// List returns every submission, newest first.
func (h *Handler) List(c echo.Context) error {
	subs, err := h.store.List(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("contact: list: %v", err)
		return fail(c, http.StatusInternalServerError, "Failed to fetch submissions")
	}
	if subs == nil {
		subs = []Submission{}
	}
	n := len(subs)
	return c.JSON(http.StatusOK, response{Success: true, Data: subs, Count: &n})
}

// Get returns one submission.
func (h *Handler) Get(c echo.Context) error {
	sub, err := h.store.Get(c.Request().Context(), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		return fail(c, http.StatusNotFound, "Submission not found")
	}
	if err != nil {
		c.Logger().Errorf("contact: get: %v", err)
		return fail(c, http.StatusInternalServerError, "Failed to fetch submission")
	}
	return c.JSON(http.StatusOK, response{Success: true, Data: sub})
}

// Delete removes one submission.
func (h *Handler) Delete(c echo.Context) error {
	err := h.store.Delete(c.Request().Context(), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		return fail(c, http.StatusNotFound, "Submission not found")
	}
	if err != nil {
		c.Logger().Errorf("contact: delete: %v", err)
		return fail(c, http.StatusInternalServerError, "Failed to delete submission")
	}
	return c.JSON(http.StatusOK, response{Success: true, Message: "Submission deleted successfully"})
}

// Stats returns submission counts.
func (h *Handler) Stats(c echo.Context) error {
	subs, err := h.store.List(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("contact: stats: %v", err)
		return fail(c, http.StatusInternalServerError, "Failed to fetch statistics")
	}
	return c.JSON(http.StatusOK, response{Success: true, Data: ComputeStats(subs, h.now())})
}

// NotFound answers unknown API paths.
func (h *Handler) NotFound(c echo.Context) error {
	return fail(c, http.StatusNotFound, "Endpoint not found")
}

// RegisterRoutes mounts the API on api (normally the /api group). Admin
// routes get adminMiddleware.
func (h *Handler) RegisterRoutes(api *echo.Group, adminMiddleware ...echo.MiddlewareFunc) {
	api.GET("/health", h.Health)
	api.POST("/contact", h.Submit)

	admin := api.Group("/admin", adminMiddleware...)
	admin.GET("/contacts", h.List)
	admin.GET("/contacts/:id", h.Get)
	admin.DELETE("/contacts/:id", h.Delete)
	admin.GET("/stats", h.Stats)

	api.Any("/*", h.NotFound)
}
