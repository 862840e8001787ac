package codec

import (
	"fmt"
	"net/url"
	"strings"
)

// SharedPrefix is the path segment share tokens are mounted under.
const SharedPrefix = "/shared/"

// ShareURL returns <origin>/shared/<token>.
func ShareURL(origin, token string) string {
	return strings.TrimRight(origin, "/") + SharedPrefix + token
}

// TokenFromPath extracts the token from a /shared/<token> path.
func TokenFromPath(p string) (string, error) {
	rest, ok := strings.CutPrefix(p, SharedPrefix)
	if !ok {
		return "", fmt.Errorf("codec: path %q is not a share path", p)
	}
	rest = strings.Trim(rest, "/")
	if rest == "" || strings.Contains(rest, "/") {
		return "", fmt.Errorf("codec: path %q has no single token segment", p)
	}
	return rest, nil
}

// Platform is a social network a share link can be posted to.
type Platform string

const (
	PlatformLink     Platform = "link"
	PlatformEmail    Platform = "email"
	PlatformTwitter  Platform = "twitter"
	PlatformLinkedIn Platform = "linkedin"
	PlatformFacebook Platform = "facebook"
)

// SocialShareURL builds the intent URL for posting shareURL to platform.
// Unknown platforms get shareURL back unchanged.
func SocialShareURL(shareURL string, platform Platform, productName string) string {
	if productName == "" {
		productName = "My Landing Page"
	}
	u := url.QueryEscape(shareURL)
	switch platform {
	case PlatformTwitter:
		text := url.QueryEscape("Check out my landing page for " + productName + "!")
		return "https://twitter.com/intent/tweet?url=" + u + "&text=" + text
	case PlatformLinkedIn:
		return "https://www.linkedin.com/sharing/share-offsite/?url=" + u
	case PlatformFacebook:
		return "https://www.facebook.com/sharer/sharer.php?u=" + u
	case PlatformEmail:
		subject := url.PathEscape("Check out my landing page: " + productName)
		body := url.PathEscape("Hi!\n\nI wanted to share my new landing page with you: " + shareURL + "\n\nLet me know what you think!")
		return "mailto:?subject=" + subject + "&body=" + body
	default:
		return shareURL
	}
}

// QRCodeURL returns an image URL rendering target as a 200x200 QR code.
func QRCodeURL(target string) string {
	return "https://api.qrserver.com/v1/create-qr-code/?size=200x200&format=png&data=" + url.QueryEscape(target)
}
