// Package youtube implements video.Provider on top of the YouTube Data
// API v3. Only two endpoints are used: search.list for queries and
// videos.list for detail lookups.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tahmid/focusflow/internal/video"
)

const (
	defaultBaseURL = "https://www.googleapis.com/youtube/v3"

	// The API refuses maxResults above 50.
	maxPageSize = 50
)

// compile-time check that *Client implements video.Provider
var _ video.Provider = (*Client)(nil)

// Client talks to the YouTube Data API. It is safe for concurrent use.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API root. Tests use this
// with an httptest server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client with the given API key.
func New(apiKey string, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// searchResponse mirrors search.list: the video ID lives under id, the
// display fields under snippet.
type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet snippet `json:"snippet"`
	} `json:"items"`
}

type snippet struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ChannelTitle string    `json:"channelTitle"`
	PublishedAt  time.Time `json:"publishedAt"`
	Tags         []string  `json:"tags"`
	Thumbnails   struct {
		High struct {
			URL string `json:"url"`
		} `json:"high"`
		Medium struct {
			URL string `json:"url"`
		} `json:"medium"`
		Default struct {
			URL string `json:"url"`
		} `json:"default"`
	} `json:"thumbnails"`
}

// videosResponse mirrors videos.list, where id is a plain string and
// the statistics counters come back as strings.
type videosResponse struct {
	Items []struct {
		ID             string  `json:"id"`
		Snippet        snippet `json:"snippet"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
		Statistics struct {
			ViewCount string `json:"viewCount"`
			LikeCount string `json:"likeCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// Search queries search.list and returns snippet-level results.
func (c *Client) Search(ctx context.Context, query string, maxResults int, order video.Order, duration video.Duration) ([]video.Video, error) {
	if maxResults <= 0 {
		maxResults = 5
	}
	if maxResults > maxPageSize {
		maxResults = maxPageSize
	}
	if order == "" {
		order = video.OrderRelevance
	}

	params := url.Values{
		"part":              {"snippet"},
		"q":                 {query},
		"type":              {"video"},
		"maxResults":        {strconv.Itoa(maxResults)},
		"order":             {string(order)},
		"relevanceLanguage": {"en"},
		"safeSearch":        {"moderate"},
	}
	if duration != "" && duration != video.DurationAny {
		params.Set("videoDuration", string(duration))
	}

	var resp searchResponse
	if err := c.get(ctx, "/search", params, &resp); err != nil {
		return nil, fmt.Errorf("youtube: search %q: %w", query, err)
	}

	videos := make([]video.Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ID.VideoID == "" {
			continue
		}
		v := fromSnippet(item.ID.VideoID, item.Snippet)
		videos = append(videos, v)
	}

	c.logger.Debug("youtube search", "query", query, "results", len(videos))
	return videos, nil
}

// Details queries videos.list for full records including duration and
// statistics.
func (c *Client) Details(ctx context.Context, ids []string) ([]video.Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) > maxPageSize {
		ids = ids[:maxPageSize]
	}

	params := url.Values{
		"part": {"snippet,contentDetails,statistics"},
		"id":   {strings.Join(ids, ",")},
	}

	var resp videosResponse
	if err := c.get(ctx, "/videos", params, &resp); err != nil {
		return nil, fmt.Errorf("youtube: video details: %w", err)
	}

	videos := make([]video.Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		v := fromSnippet(item.ID, item.Snippet)
		v.DurationMinutes = ParseDurationMinutes(item.ContentDetails.Duration)
		v.ViewCount = parseCount(item.Statistics.ViewCount)
		v.LikeCount = parseCount(item.Statistics.LikeCount)
		v.Tags = item.Snippet.Tags
		videos = append(videos, v)
	}

	return videos, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Read a little of the body for the log, not the error — the
		// API error body can contain the key'd URL.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("youtube API error",
			"path", path, "status", resp.StatusCode, "body", string(body))
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func fromSnippet(id string, s snippet) video.Video {
	thumb := s.Thumbnails.High.URL
	if thumb == "" {
		thumb = s.Thumbnails.Medium.URL
	}
	if thumb == "" {
		thumb = s.Thumbnails.Default.URL
	}
	return video.Video{
		VideoID:      id,
		Title:        s.Title,
		Description:  s.Description,
		ChannelTitle: s.ChannelTitle,
		PublishedAt:  s.PublishedAt,
		ThumbnailURL: thumb,
		URL:          "https://www.youtube.com/watch?v=" + id,
	}
}

var durationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseDurationMinutes converts an ISO 8601 duration like "PT1H23M45S"
// to whole minutes, dropping leftover seconds. When the minutes
// component is absent entirely, trailing seconds round up one minute,
// so a sub-minute clip never reports zero; an unparseable string does.
func ParseDurationMinutes(iso string) int {
	m := durationPattern.FindStringSubmatch(iso)
	if m == nil {
		return 0
	}

	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])

	total := hours*60 + minutes
	if m[2] == "" && seconds > 0 {
		total++
	}
	return total
}

func parseCount(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}
