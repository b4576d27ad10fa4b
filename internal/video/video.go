// Package video defines the video search domain: the Video record the
// rest of the application consumes and the Provider interface a search
// backend implements. The youtube subpackage is the real backend; tests
// substitute fakes.
package video

import (
	"context"
	"time"
)

// Order is the result ranking a search asks for. The values are the
// provider's wire values, so they pass through unchanged.
type Order string

const (
	OrderRelevance Order = "relevance"
	OrderDate      Order = "date"
	OrderRating    Order = "rating"
	OrderViewCount Order = "viewCount"
)

// Duration buckets a search can filter by.
type Duration string

const (
	DurationAny    Duration = "any"
	DurationShort  Duration = "short"  // under 4 minutes
	DurationMedium Duration = "medium" // 4 to 20 minutes
	DurationLong   Duration = "long"   // over 20 minutes
)

// Video is a single search or lookup result. DurationMinutes, ViewCount,
// LikeCount and Tags are only populated by detail lookups — plain search
// results carry the snippet fields.
type Video struct {
	VideoID         string    `json:"video_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	ChannelTitle    string    `json:"channel_title"`
	PublishedAt     time.Time `json:"published_at"`
	ThumbnailURL    string    `json:"thumbnail_url"`
	URL             string    `json:"url"`
	DurationMinutes int       `json:"duration_minutes,omitempty"`
	ViewCount       int64     `json:"view_count,omitempty"`
	LikeCount       int64     `json:"like_count,omitempty"`
	Tags            []string  `json:"tags,omitempty"`
}

// Provider is a video search backend.
type Provider interface {
	// Search returns up to maxResults videos matching the query.
	Search(ctx context.Context, query string, maxResults int, order Order, duration Duration) ([]Video, error)

	// Details returns full records (statistics, duration, tags) for the
	// given video IDs. IDs the backend does not know are silently absent
	// from the result.
	Details(ctx context.Context, ids []string) ([]Video, error)
}
