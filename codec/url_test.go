package codec

import (
	"strings"
	"testing"
)

func TestShareURLAndTokenFromPath(t *testing.T) {
	u := ShareURL("https://pages.example.com/", "abc_-123")
	if u != "https://pages.example.com/shared/abc_-123" {
		t.Fatalf("ShareURL = %q", u)
	}
	tok, err := TokenFromPath("/shared/abc_-123")
	if err != nil || tok != "abc_-123" {
		t.Fatalf("TokenFromPath = %q, %v", tok, err)
	}
	for _, p := range []string{"/shared/", "/other/abc", "/shared/a/b"} {
		if _, err := TokenFromPath(p); err == nil {
			t.Errorf("TokenFromPath(%q) should fail", p)
		}
	}
}

func TestSocialShareURL(t *testing.T) {
	share := "https://pages.example.com/shared/tok"
	tests := []struct {
		platform Platform
		prefix   string
	}{
		{PlatformTwitter, "https://twitter.com/intent/tweet?url=https%3A%2F%2Fpages.example.com%2Fshared%2Ftok&text="},
		{PlatformLinkedIn, "https://www.linkedin.com/sharing/share-offsite/?url="},
		{PlatformFacebook, "https://www.facebook.com/sharer/sharer.php?u="},
		{PlatformEmail, "mailto:?subject="},
		{PlatformLink, share},
	}
	for _, tt := range tests {
		got := SocialShareURL(share, tt.platform, "Acme")
		if !strings.HasPrefix(got, tt.prefix) {
			t.Errorf("%s: got %q, want prefix %q", tt.platform, got, tt.prefix)
		}
	}
	if got := QRCodeURL(share); !strings.Contains(got, "data=https%3A%2F%2F") {
		t.Errorf("QRCodeURL = %q", got)
	}
}
