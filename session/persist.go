package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/eringen/pagesmith/page"
)

// StorageKey is the fixed key a session is saved under.
const StorageKey = "landing-page-generator"

// KV is the small key-value surface the store persists through.
type KV interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Persister saves the durable part of a State under Key. Transient fields
// (current step, generating flag, preview mode) are never written.
type Persister struct {
	KV  KV
	Key string
}

type persisted struct {
	FormData         page.UserFormData      `json:"formData"`
	Theme            page.ThemeConfig       `json:"theme"`
	Sections         []page.Section         `json:"sections"`
	GeneratedContent *page.GeneratedContent `json:"generatedContent"`
}

// NewPersister returns a persister for kv. An empty key means StorageKey.
func NewPersister(kv KV, key string) *Persister {
	if key == "" {
		key = StorageKey
	}
	return &Persister{KV: kv, Key: key}
}

// Save writes the durable fields of st.
func (p *Persister) Save(ctx context.Context, st State) error {
	b, err := json.Marshal(persisted{
		FormData:         st.FormData,
		Theme:            st.Theme,
		Sections:         st.Sections,
		GeneratedContent: st.GeneratedContent,
	})
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	return p.KV.Set(ctx, p.Key, b)
}

// Load restores a previously saved state on top of the initial one. ok is
// false when nothing was saved.
func (p *Persister) Load(ctx context.Context) (st State, ok bool, err error) {
	b, ok, err := p.KV.Get(ctx, p.Key)
	if err != nil || !ok {
		return initialState(), false, err
	}
	var v persisted
	if err := json.Unmarshal(b, &v); err != nil {
		return initialState(), false, fmt.Errorf("unmarshal: %w", err)
	}
	st = initialState()
	st.FormData = v.FormData
	if v.Theme != (page.ThemeConfig{}) {
		st.Theme = v.Theme
	}
	if v.Sections != nil {
		st.Sections = v.Sections
	}
	st.GeneratedContent = v.GeneratedContent
	return st, true, nil
}

// Clear removes the saved state.
func (p *Persister) Clear(ctx context.Context) error {
	return p.KV.Delete(ctx, p.Key)
}
