// Package share turns a session into a self-contained link and turns such a
// link back into a read-only view. No server state is involved on either
// side.
package share

import (
	"errors"
	"fmt"
	"strings"

	"github.com/eringen/pagesmith/codec"
	"github.com/eringen/pagesmith/exporter"
	"github.com/eringen/pagesmith/page"
)

// ErrInvalidLink is wrapped by every error Open returns.
var ErrInvalidLink = errors.New("share: link is invalid or expired")

// Source is anything that can snapshot a page for sharing. *session.Store
// satisfies it.
type Source interface {
	GenerateShareData() page.ShareableData
}

// Link is an issued share link.
type Link struct {
	Token string
	URL   string
	Data  page.ShareableData
}

// Social returns the intent URL for posting the link to platform.
func (l Link) Social(platform codec.Platform) string {
	return codec.SocialShareURL(l.URL, platform, l.Data.FormData.ProductName)
}

// QRCode returns an image URL for a QR code of the link.
func (l Link) QRCode() string {
	return codec.QRCodeURL(l.URL)
}

// Create snapshots src and encodes it into a link under origin. Every call
// encodes a fresh snapshot.
func Create(src Source, origin string) (Link, error) {
	return CreateFrom(src.GenerateShareData(), origin)
}

// CreateFrom encodes data into a link under origin.
func CreateFrom(data page.ShareableData, origin string) (Link, error) {
	token, err := codec.Encode(data)
	if err != nil {
		return Link{}, err
	}
	return Link{Token: token, URL: codec.ShareURL(origin, token), Data: data}, nil
}

// View is a read-only page reconstructed from a token. It has no session of
// its own and nothing it does touches one.
type View struct {
	Token string
	Data  page.ShareableData
}

// Open decodes token. Tokens that fail to decode, fail validation or carry
// sections that cannot be rendered are reported as ErrInvalidLink.
func Open(token string) (*View, error) {
	data, err := codec.Decode(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLink, err)
	}
	if err := exporter.Check(data.Sections); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLink, err)
	}
	return &View{Token: token, Data: data}, nil
}

// OpenPath is Open for a /shared/<token> request path.
func OpenPath(p string) (*View, error) {
	token, err := codec.TokenFromPath(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLink, err)
	}
	return Open(token)
}

// Sections returns the visible sections in render order.
func (v *View) Sections() []page.Section {
	return exporter.VisibleSorted(v.Data.Sections)
}

func (v *View) input() exporter.Input {
	return exporter.Input{Sections: v.Data.Sections, Theme: v.Data.Theme, FormData: v.Data.FormData}
}

// ExportHTML renders the shared page as a standalone document.
func (v *View) ExportHTML() (string, error) {
	return exporter.Export(v.input())
}

// Filename is the download name for ExportHTML.
func (v *View) Filename() string {
	return exporter.Filename(v.Data.FormData.ProductName)
}

// Link rebuilds the share link for v under origin, for the viewer's copy
// button.
func (v *View) Link(origin string) Link {
	return Link{Token: v.Token, URL: codec.ShareURL(origin, v.Token), Data: v.Data}
}

// Preview is the metadata used for link unfurling.
type Preview struct {
	Title       string
	Description string
	Image       string
}

// Preview derives unfurl metadata from the hero section, falling back to the
// form data.
func (v *View) Preview() Preview {
	p := Preview{Title: exporter.Title(v.Data.FormData)}
	for _, s := range v.Sections() {
		if h, ok := s.Content.(page.Hero); ok {
			p.Description = h.Subhead
			p.Image = h.ImageURL
			break
		}
	}
	if p.Description == "" {
		p.Description = strings.TrimSpace(v.Data.FormData.UniqueValue)
	}
	if p.Description == "" {
		p.Description = "A landing page built with pagesmith"
	}
	return p
}
