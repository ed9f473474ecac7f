package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/net/html"
)

var (
	ErrPreviewURLInvalid = errors.New("link preview url is invalid")
	ErrPreviewTimeout    = errors.New("link preview request timed out")
	ErrPreviewFailed     = errors.New("link preview fetch failed")
)

const (
	linkPreviewTimeout   = 8 * time.Second
	linkPreviewBodyCap   = 512 << 10
	linkPreviewUserAgent = "sitekit-admin/1.0"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// LinkPreview holds the OpenGraph fields extracted from a remote page, used
// to prefill announcement link cards.
type LinkPreview struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// LinkPreviewService fetches remote pages and extracts preview metadata.
// This is the only operation in the system with an explicit timeout.
type LinkPreviewService struct {
	client  httpDoer
	timeout time.Duration
}

// NewLinkPreviewService creates a LinkPreviewService with the default client
// and timeout.
func NewLinkPreviewService() *LinkPreviewService {
	return &LinkPreviewService{
		client:  &http.Client{Timeout: linkPreviewTimeout},
		timeout: linkPreviewTimeout,
	}
}

// SetHTTPClient replaces the outbound HTTP client, mainly for tests.
func (s *LinkPreviewService) SetHTTPClient(client httpDoer) {
	if client == nil {
		s.client = &http.Client{Timeout: linkPreviewTimeout}
		return
	}
	s.client = client
}

// SetTimeout overrides the fetch timeout, mainly for tests.
func (s *LinkPreviewService) SetTimeout(timeout time.Duration) {
	if timeout > 0 {
		s.timeout = timeout
	}
}

// Fetch loads rawURL and extracts OpenGraph title, description, and image.
// A timed-out fetch is surfaced distinctly from a generic failure.
func (s *LinkPreviewService) Fetch(ctx context.Context, rawURL string) (*LinkPreview, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, ErrPreviewURLInvalid
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build preview request: %w", err)
	}
	req.Header.Set("User-Agent", linkPreviewUserAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := s.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, fmt.Errorf("%w: %s", ErrPreviewTimeout, parsed.Host)
		}
		return nil, fmt.Errorf("%w: %v", ErrPreviewFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: %s", ErrPreviewFailed, resp.Status)
	}

	preview := parsePreview(io.LimitReader(resp.Body, linkPreviewBodyCap))
	preview.URL = parsed.String()
	return preview, nil
}

func isTimeout(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return true
	}
	return os.IsTimeout(err)
}

// parsePreview tokenizes the document and collects og:* meta tags, falling
// back to <title> and the plain description meta tag.
func parsePreview(r io.Reader) *LinkPreview {
	preview := &LinkPreview{}
	var pageTitle, metaDescription string

	tokenizer := html.NewTokenizer(r)
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if preview.Title == "" {
				preview.Title = pageTitle
			}
			if preview.Description == "" {
				preview.Description = metaDescription
			}
			return preview
		case html.StartTagToken, html.SelfClosingTagToken:
			token := tokenizer.Token()
			switch token.Data {
			case "meta":
				property, name, content := "", "", ""
				for _, attr := range token.Attr {
					switch attr.Key {
					case "property":
						property = attr.Val
					case "name":
						name = attr.Val
					case "content":
						content = strings.TrimSpace(attr.Val)
					}
				}
				switch property {
				case "og:title":
					preview.Title = content
				case "og:description":
					preview.Description = content
				case "og:image":
					preview.Image = content
				}
				if name == "description" && metaDescription == "" {
					metaDescription = content
				}
			case "title":
				if tokenizer.Next() == html.TextToken {
					pageTitle = strings.TrimSpace(tokenizer.Token().Data)
				}
			case "body":
				// Metadata lives in the head; stop before the payload.
				if preview.Title == "" {
					preview.Title = pageTitle
				}
				if preview.Description == "" {
					preview.Description = metaDescription
				}
				return preview
			}
		}
	}
}
