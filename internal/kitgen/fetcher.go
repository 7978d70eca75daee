package kitgen

import (
	"context"
	"time"

	"github.com/jonathan/promokit/internal/fetch"
)

// PageFetcher implements ReferenceFetcher over HTTP with an optional
// headless-browser fallback for JavaScript-rendered pages.
type PageFetcher struct {
	UseBrowser bool
	Timeout    time.Duration
	Verbose    bool
}

// NewPageFetcher returns a PageFetcher with default timeouts.
func NewPageFetcher(useBrowser bool) *PageFetcher {
	return &PageFetcher{
		UseBrowser: useBrowser,
		Timeout:    fetch.DefaultTimeout,
	}
}

// FetchText retrieves a reference page and extracts its main text. If the
// plain fetch yields too little text and browser fallback is enabled, the
// page is re-rendered in a headless browser.
func (f *PageFetcher) FetchText(ctx context.Context, url string) (string, error) {
	opts := fetch.DefaultOptions()
	if f.Timeout > 0 {
		opts.Timeout = f.Timeout
	}

	result, err := fetch.URL(ctx, url, opts)
	if err != nil {
		return "", err
	}

	_, text, err := fetch.ExtractMainText(result.HTML, fetch.ReferencePageSelectors())
	if err != nil {
		return "", err
	}

	if f.UseBrowser && fetch.ShouldUseBrowser(text) {
		html, err := fetch.WithBrowser(ctx, url, opts.Timeout, f.Verbose)
		if err != nil {
			return "", err
		}
		_, text, err = fetch.ExtractMainText(html, fetch.ReferencePageSelectors())
		if err != nil {
			return "", err
		}
	}

	return text, nil
}
