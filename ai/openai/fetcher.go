package openai

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxFetchBytes caps how much of a page body is read.
const maxFetchBytes = 1 << 20 // 1 MiB

// fetchUserAgent is sent with page requests; some community sites refuse
// requests without a browser-like agent.
const fetchUserAgent = "Mozilla/5.0 (compatible; communitypipe/1.0)"

// PageFetcher retrieves the visible text of a community page for prompt
// grounding.
type PageFetcher struct {
	client   *http.Client
	maxChars int
}

// NewPageFetcher creates a fetcher with the given HTTP client and visible
// text budget. A nil client falls back to http.DefaultClient.
func NewPageFetcher(client *http.Client, maxChars int) *PageFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &PageFetcher{
		client:   client,
		maxChars: maxChars,
	}
}

// FetchText retrieves the page at url and returns its visible text,
// stripped of markup and collapsed whitespace, truncated to the
// configured budget.
func (f *PageFetcher) FetchText(ctx context.Context, url string) (string, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", fetchUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetching %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return "", err
	}

	text := stripHTML(string(body))
	if f.maxChars > 0 && len(text) > f.maxChars {
		cut := f.maxChars
		// Never split a rune at the cut point
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return text, nil
}

// stripHTML reduces an HTML document to its visible text: script and style
// blocks are dropped entirely, tags are removed, and whitespace runs are
// collapsed to single spaces. Tag names match ASCII case-insensitively;
// all offsets index the original string, so non-ASCII page text (which
// can change byte length under case folding) passes through untouched.
func stripHTML(s string) string {
	var b strings.Builder
	b.Grow(len(s) / 4)

	inTag := false
	skipUntil := "" // closing tag name currently being skipped
	lastSpace := true

	for i := 0; i < len(s); i++ {
		if skipUntil != "" {
			end := indexFold(s[i:], skipUntil)
			if end < 0 {
				break
			}
			i += end + len(skipUntil) - 1
			skipUntil = ""
			inTag = false
			continue
		}

		ch := s[i]
		switch {
		case ch == '<':
			inTag = true
			if hasPrefixFold(s[i:], "<script") {
				skipUntil = "</script>"
			} else if hasPrefixFold(s[i:], "<style") {
				skipUntil = "</style>"
			}
		case ch == '>':
			inTag = false
		case !inTag:
			if unicode.IsSpace(rune(ch)) {
				if !lastSpace {
					b.WriteByte(' ')
					lastSpace = true
				}
			} else {
				b.WriteByte(ch)
				lastSpace = false
			}
		}
	}

	return strings.TrimSpace(b.String())
}

// hasPrefixFold reports whether s begins with prefix, ignoring case.
func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// indexFold returns the index of the first case-insensitive occurrence of
// substr in s, or -1.
func indexFold(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(substr)], substr) {
			return i
		}
	}
	return -1
}
