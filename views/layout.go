package views

import (
	"bytes"
	"context"
	"fmt"
)

// PageMeta carries per-page metadata into the <head>.
type PageMeta struct {
	Title       string
	Description string
	Image       string
	URL         string // canonical + og:url
}

func head(buf *bytes.Buffer, m PageMeta) {
	buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"UTF-8\">\n")
	buf.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	fmt.Fprintf(buf, "<title>%s</title>\n", esc(m.Title))
	if m.Description != "" {
		fmt.Fprintf(buf, "<meta name=\"description\" content=\"%s\">\n", esc(m.Description))
		fmt.Fprintf(buf, "<meta property=\"og:description\" content=\"%s\">\n", esc(m.Description))
	}
	fmt.Fprintf(buf, "<meta property=\"og:title\" content=\"%s\">\n", esc(m.Title))
	buf.WriteString("<meta property=\"og:type\" content=\"website\">\n")
	if m.URL != "" {
		fmt.Fprintf(buf, "<meta property=\"og:url\" content=\"%s\">\n", esc(m.URL))
		fmt.Fprintf(buf, "<link rel=\"canonical\" href=\"%s\">\n", esc(m.URL))
	}
	if m.Image != "" {
		fmt.Fprintf(buf, "<meta property=\"og:image\" content=\"%s\">\n", esc(m.Image))
		buf.WriteString("<meta name=\"twitter:card\" content=\"summary_large_image\">\n")
	}
	buf.WriteString("<link rel=\"stylesheet\" href=\"/public/editor.css\">\n</head>\n<body>\n")
}

func foot(buf *bytes.Buffer) {
	buf.WriteString("</body>\n</html>\n")
}

// layout wraps body in the shared document shell.
func layout(m PageMeta, body func(ctx context.Context, buf *bytes.Buffer) error) func(context.Context, *bytes.Buffer) error {
	return func(ctx context.Context, buf *bytes.Buffer) error {
		head(buf, m)
		if err := body(ctx, buf); err != nil {
			return err
		}
		foot(buf)
		return nil
	}
}
