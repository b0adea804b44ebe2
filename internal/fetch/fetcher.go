package fetch

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/cache"
)

// Fetcher retrieves job postings, caching the extracted text by URL
type Fetcher struct {
	cache  *cache.Cache
	opts   *Options
	logger *logrus.Logger
}

// NewFetcher creates a Fetcher. A nil cache disables caching; nil opts use DefaultOptions.
func NewFetcher(c *cache.Cache, opts *Options, logger *logrus.Logger) *Fetcher {
	if opts == nil {
		opts = DefaultOptions()
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Fetcher{cache: c, opts: opts, logger: logger}
}

// JobPosting fetches rawURL and extracts the posting text with the selectors of its job board.
// When the text is too short and browser rendering is enabled, the page is rendered in Chrome first.
func (f *Fetcher) JobPosting(ctx context.Context, rawURL string) (*Result, error) {
	key := cache.Key("job_url", rawURL)
	if f.cache != nil {
		var cached Result
		if f.cache.Get(ctx, key, &cached) {
			f.logger.WithField("url", rawURL).Debug("job posting served from cache")
			return &cached, nil
		}
	}

	result, err := Page(ctx, rawURL, f.opts)
	if err != nil {
		return nil, err
	}

	platform := result.Platform
	text, err := ExtractMainText(result.HTML, ContentSelectors(platform), NoiseSelectors(platform)...)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "failed to extract text", Cause: err}
	}

	if f.opts.Browser && ShouldUseBrowser(text) {
		f.logger.WithFields(logrus.Fields{"url": rawURL, "chars": len(text)}).Info("posting text too short, rendering in browser")
		html, err := RenderPage(ctx, rawURL, f.opts)
		if err != nil {
			return nil, err
		}
		if text, err = ExtractMainText(html, ContentSelectors(platform), NoiseSelectors(platform)...); err != nil {
			return nil, &Error{URL: rawURL, Message: "failed to extract text", Cause: err}
		}
		result.HTML = html
		result.Rendered = true
	}
	result.Text = text

	if text == "" {
		return nil, &Error{URL: rawURL, Message: "no posting text found"}
	}

	f.logger.WithFields(logrus.Fields{
		"url":      rawURL,
		"platform": platform,
		"chars":    len(text),
	}).Debug("job posting fetched")
	if f.cache != nil {
		f.cache.Set(ctx, key, result)
	}
	return result, nil
}
