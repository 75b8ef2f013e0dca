// Package wikipedia fetches long-form summary text from the Wikipedia REST
// API. A missing article is not an error: callers get an empty extract and
// carry on.
package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Client talks to the REST v1 summary endpoint of one or more language
// editions. EndpointPattern carries a %s placeholder for the language code.
type Client struct {
	EndpointPattern string
	UserAgent       string
	HTTPClient      *http.Client
	Log             zerolog.Logger
}

// NewClient creates a summary client. endpointPattern is expected to look
// like "https://%s.wikipedia.org/api/rest_v1".
func NewClient(endpointPattern, userAgent string, log zerolog.Logger) *Client {
	return &Client{
		EndpointPattern: endpointPattern,
		UserAgent:       userAgent,
		HTTPClient:      &http.Client{Timeout: 30 * time.Second},
		Log:             log.With().Str("client", "wikipedia").Logger(),
	}
}

type summaryResponse struct {
	Extract     string `json:"extract"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// Summary holds the long-form description of one article.
type Summary struct {
	Extract string
	PageURL string
}

// GetSummary fetches the summary of a title from one language edition. A 404
// yields a zero Summary and nil error.
func (c *Client) GetSummary(ctx context.Context, lang, title string) (Summary, error) {
	endpoint := fmt.Sprintf(c.EndpointPattern, lang)
	titlePath := url.PathEscape(strings.ReplaceAll(title, " ", "_"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"/page/summary/"+titlePath, nil)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to build summary request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Summary{}, fmt.Errorf("summary request for %q failed: %w", title, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Summary{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return Summary{}, fmt.Errorf("summary endpoint returned %d for %q", resp.StatusCode, title)
	}

	var decoded summaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Summary{}, fmt.Errorf("failed to decode summary for %q: %w", title, err)
	}
	return Summary{Extract: decoded.Extract, PageURL: decoded.ContentURLs.Desktop.Page}, nil
}

// GetSummaryWithFallback tries Turkish first and falls back to English.
func (c *Client) GetSummaryWithFallback(ctx context.Context, title string) Summary {
	for _, lang := range []string{"tr", "en"} {
		summary, err := c.GetSummary(ctx, lang, title)
		if err != nil {
			c.Log.Warn().Err(err).Str("lang", lang).Str("title", title).Msg("summary fetch failed")
			continue
		}
		if summary.Extract != "" {
			return summary
		}
	}
	return Summary{}
}
