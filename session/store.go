// Package session holds the editing state of one landing page. A Store is
// the only legal way to mutate that state; every change is pushed to
// subscribers and, when a persister is configured, saved to a KV.
package session

import (
	"context"
	"fmt"
	"log"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eringen/pagesmith/exporter"
	"github.com/eringen/pagesmith/generator"
	"github.com/eringen/pagesmith/page"
)

// PreviewMode is the viewport the editor previews in.
type PreviewMode string

const (
	PreviewDesktop PreviewMode = "desktop"
	PreviewTablet  PreviewMode = "tablet"
	PreviewMobile  PreviewMode = "mobile"
)

// Valid reports whether m is a known preview mode.
func (m PreviewMode) Valid() bool {
	switch m {
	case PreviewDesktop, PreviewTablet, PreviewMobile:
		return true
	}
	return false
}

// State is a snapshot of a session.
type State struct {
	CurrentStep      int
	FormData         page.UserFormData
	IsGenerating     bool
	GeneratedContent *page.GeneratedContent
	Sections         []page.Section
	Theme            page.ThemeConfig
	PreviewMode      PreviewMode
}

// Ready reports whether content has been generated.
func (s State) Ready() bool { return s.GeneratedContent != nil }

// Clone returns a deep copy of s.
func (s State) Clone() State {
	s.FormData = s.FormData.Clone()
	s.GeneratedContent = s.GeneratedContent.Clone()
	s.Sections = page.CloneSections(s.Sections)
	return s
}

func initialState() State {
	return State{
		Sections:    []page.Section{},
		Theme:       page.DefaultTheme(),
		PreviewMode: PreviewDesktop,
	}
}

// GenerateFunc produces content from form data.
type GenerateFunc func(ctx context.Context, form page.UserFormData) (page.GeneratedContent, error)

// Default delays before generated content appears.
const (
	DefaultGenerationDelay    = 1500 * time.Millisecond
	DefaultCustomSectionDelay = 1000 * time.Millisecond
)

// Option configures a Store.
type Option func(*Store)

// WithGenerator replaces the content generator.
func WithGenerator(fn GenerateFunc) Option {
	return func(s *Store) { s.generate = fn }
}

// WithDelays sets the generation and custom-section delays.
func WithDelays(generation, custom time.Duration) Option {
	return func(s *Store) {
		s.genDelay = generation
		s.customDelay = custom
	}
}

// WithClock sets the time source used for share timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDs sets the id source for custom sections.
func WithIDs(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithPersister loads the initial state from p and saves every change to it.
func WithPersister(p *Persister) Option {
	return func(s *Store) { s.persister = p }
}

// WithWarningHandler receives persistence warnings. The default logs them.
func WithWarningHandler(fn func(*PersistenceWarning)) Option {
	return func(s *Store) { s.warn = fn }
}

// Store is an observable session state container. It is safe for
// concurrent use.
type Store struct {
	mu    sync.Mutex
	state State

	// notifyMu is taken before mu is released so subscribers observe
	// changes in the order they were applied.
	notifyMu sync.Mutex
	subs     map[int]func(State)
	nextSub  int

	inflight flightGuard

	generate    GenerateFunc
	genDelay    time.Duration
	customDelay time.Duration
	now         func() time.Time
	newID       func() string
	persister   *Persister
	warn        func(*PersistenceWarning)
}

// New creates a store. With a persister the saved session is restored; a
// failed load is reported as a warning and the store starts empty.
func New(opts ...Option) *Store {
	s := &Store{
		state:       initialState(),
		subs:        make(map[int]func(State)),
		genDelay:    DefaultGenerationDelay,
		customDelay: DefaultCustomSectionDelay,
		now:         time.Now,
		newID:       func() string { return "custom-" + uuid.NewString() },
		warn: func(w *PersistenceWarning) {
			log.Printf("%v (ignored)", w)
		},
		generate: func(_ context.Context, form page.UserFormData) (page.GeneratedContent, error) {
			return generator.Generate(form), nil
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.persister != nil {
		st, _, err := s.persister.Load(context.Background())
		if err != nil {
			s.warn(&PersistenceWarning{Op: "load", Key: s.persister.Key, Err: err})
		}
		s.state = st
	}
	return s
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Subscribe registers fn to be called with a snapshot after every change.
// fn runs synchronously and must not call back into the store's actions.
// The returned func removes the subscription.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.notifyMu.Lock()
		defer s.notifyMu.Unlock()
		delete(s.subs, id)
	}
}

// commit applies mutate under the lock, then persists and notifies. persist
// is false for transient-only changes.
func (s *Store) commit(persist bool, mutate func(*State)) State {
	s.mu.Lock()
	mutate(&s.state)
	snap := s.state.Clone()
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	if persist && s.persister != nil {
		if err := s.persister.Save(context.Background(), snap); err != nil {
			s.warn(&PersistenceWarning{Op: "save", Key: s.persister.Key, Err: err})
		}
	}
	for _, id := range slices.Sorted(maps.Keys(s.subs)) {
		s.subs[id](snap.Clone())
	}
	return snap
}

// SetCurrentStep moves the form wizard to step.
func (s *Store) SetCurrentStep(step int) {
	s.commit(false, func(st *State) { st.CurrentStep = step })
}

// SetPreviewMode switches the preview viewport.
func (s *Store) SetPreviewMode(m PreviewMode) error {
	if !m.Valid() {
		return fmt.Errorf("session: unknown preview mode %q", m)
	}
	s.commit(false, func(st *State) { st.PreviewMode = m })
	return nil
}

// UpdateFormData shallow-merges p into the form data.
func (s *Store) UpdateFormData(p page.FormPatch) {
	s.commit(true, func(st *State) { st.FormData = p.Apply(st.FormData) })
}

// UpdateSections replaces the section list wholesale.
func (s *Store) UpdateSections(sections []page.Section) {
	sections = page.CloneSections(sections)
	if sections == nil {
		sections = []page.Section{}
	}
	s.commit(true, func(st *State) { st.Sections = sections })
}

// EditSections replaces the section list with fn applied to the current one.
// The read and the write happen atomically.
func (s *Store) EditSections(fn func([]page.Section) []page.Section) {
	s.commit(true, func(st *State) {
		next := fn(page.CloneSections(st.Sections))
		if next == nil {
			next = []page.Section{}
		}
		st.Sections = next
	})
}

// DeleteSection removes the section named id.
func (s *Store) DeleteSection(id string) {
	s.EditSections(func(in []page.Section) []page.Section { return Remove(in, id) })
}

// UpdateTheme shallow-merges p into the theme.
func (s *Store) UpdateTheme(p page.ThemePatch) {
	s.commit(true, func(st *State) { st.Theme = p.Apply(st.Theme) })
}

// Reset returns the session to its initial state.
func (s *Store) Reset() {
	s.commit(true, func(st *State) { *st = initialState() })
}

// Generating reports whether a generation is in flight.
func (s *Store) Generating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsGenerating
}

// GenerateContent produces content from the current form data and rebuilds
// the four built-in sections. It returns ErrBusy if a generation is already
// running. On failure or cancellation generated content and sections are
// left as they were and a *GenerationError is returned.
func (s *Store) GenerateContent(ctx context.Context) error {
	if !s.inflight.TryLock() {
		return ErrBusy
	}
	defer s.inflight.Unlock()

	var form page.UserFormData
	s.commit(false, func(st *State) {
		st.IsGenerating = true
		form = st.FormData.Clone()
	})

	content, err := s.runGenerate(ctx, form)
	if err != nil {
		s.commit(false, func(st *State) { st.IsGenerating = false })
		return &GenerationError{Op: "generate content", Err: err}
	}
	sections := generator.BuiltinSections(content)
	s.commit(true, func(st *State) {
		st.GeneratedContent = &content
		st.Sections = sections
		st.IsGenerating = false
	})
	return nil
}

func (s *Store) runGenerate(ctx context.Context, form page.UserFormData) (c page.GeneratedContent, err error) {
	if err := sleep(ctx, s.genDelay); err != nil {
		return c, err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generator panic: %v", r)
		}
	}()
	return s.generate(ctx, form)
}

// AddCustomSection appends a custom section built from description with
// order equal to the section count at completion. Existing sections are not
// touched. It shares the in-flight guard with GenerateContent.
func (s *Store) AddCustomSection(ctx context.Context, description string) (page.Section, error) {
	if !s.inflight.TryLock() {
		return page.Section{}, ErrBusy
	}
	defer s.inflight.Unlock()

	s.commit(false, func(st *State) { st.IsGenerating = true })
	if err := sleep(ctx, s.customDelay); err != nil {
		s.commit(false, func(st *State) { st.IsGenerating = false })
		return page.Section{}, &GenerationError{Op: "add custom section", Err: err}
	}

	var added page.Section
	s.commit(true, func(st *State) {
		added = generator.CustomSection(s.newID(), description, len(st.Sections))
		st.Sections = append(st.Sections, added)
		st.IsGenerating = false
	})
	return added.Clone(), nil
}

// ExportToHTML renders the current page. It does not change the state.
func (s *Store) ExportToHTML() (string, error) {
	st := s.Snapshot()
	return exporter.Export(exporter.Input{
		Sections: st.Sections,
		Theme:    st.Theme,
		FormData: st.FormData,
	})
}

// GenerateShareData snapshots the current page for sharing.
func (s *Store) GenerateShareData() page.ShareableData {
	st := s.Snapshot()
	return page.NewShareableData(st.Sections, st.Theme, st.FormData, s.now().UnixMilli())
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
