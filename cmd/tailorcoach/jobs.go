package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/cache"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/fetch"
	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/ingestion"
)

// newFetcher builds the job posting fetcher; CHROME_PATH selects the browser for --use-browser
func newFetcher(c *cache.Cache, useBrowser bool, logger *logrus.Logger) *fetch.Fetcher {
	opts := fetch.DefaultOptions()
	opts.Browser = useBrowser
	opts.ChromePath = os.Getenv("CHROME_PATH")
	return fetch.NewFetcher(c, opts, logger)
}

// fetchJobPostings downloads each URL and returns the posting texts in order
func fetchJobPostings(ctx context.Context, fetcher *fetch.Fetcher, urls []string) ([]string, error) {
	texts := make([]string, 0, len(urls))
	for _, u := range urls {
		result, err := fetcher.JobPosting(ctx, u)
		if err != nil {
			return nil, err
		}
		text := ingestion.CleanText(result.Text)
		if text == "" {
			return nil, fmt.Errorf("job posting at %s has no text", u)
		}
		texts = append(texts, text)
	}
	return texts, nil
}
