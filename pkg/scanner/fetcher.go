package scanner

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"animerelay/pkg/config"
	apperrors "animerelay/pkg/errors"
	"animerelay/pkg/logger"
)

// maxPageBytes caps how much of a source page is read
const maxPageBytes = 10 << 20 // 10 MB

// Fetcher retrieves the raw page for a source account. The page structure
// the scanner parses is fragile, so retrieval stays behind this interface
// and can be swapped without touching the parsing or dedup logic.
type Fetcher interface {
	Fetch(source string) ([]byte, error)
}

// HTTPFetcher fetches source pages over plain HTTP with browser-like headers
type HTTPFetcher struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     logger.Logger
}

// NewHTTPFetcher creates a fetcher from the scan configuration
func NewHTTPFetcher(cfg *config.ScanConfig, log logger.Logger) *HTTPFetcher {
	if log == nil {
		log = logger.GetLogger()
	}
	return &HTTPFetcher{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		logger:    log,
	}
}

// Fetch retrieves the profile page of a source account. The leading "@" of
// the handle is stripped to build the URL.
func (f *HTTPFetcher) Fetch(source string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s", f.baseURL, strings.TrimPrefix(source, "@"))

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrorTypeUnknown, fmt.Sprintf("failed to create request: %v", err), 0)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	start := time.Now()
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrorTypeNetwork, fmt.Sprintf("network error: %v", err), 0)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.FromStatusCode(resp.StatusCode, fmt.Sprintf("unexpected status fetching %s", url))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, apperrors.New(apperrors.ErrorTypeNetwork, fmt.Sprintf("failed to read response body: %v", err), resp.StatusCode)
	}

	f.logger.DebugWithFields("fetched source page", map[string]interface{}{
		"source":   source,
		"url":      url,
		"bytes":    len(body),
		"duration": time.Since(start),
	})

	return body, nil
}
