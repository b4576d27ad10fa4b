// Package music serves the static focus-music catalog. The playlists
// are compiled in — there is no storage behind them — and the only
// dynamic behavior is the time-of-day recommendation.
package music

import (
	"fmt"
	"time"

	"github.com/tahmid/focusflow/internal/apperror"
)

// Track is one entry in a playlist. Duration is in seconds.
type Track struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Duration int    `json:"duration"`
	URL      string `json:"url"`
	EmbedID  string `json:"embed_id"`
}

// Playlist is a named collection of tracks.
type Playlist struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Tracks      []Track `json:"tracks"`
}

// Summary is a playlist without its tracks, for the listing endpoint.
type Summary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	TrackCount  int    `json:"track_count"`
}

// Recommendation pairs a set of playlists with the reason they were
// picked.
type Recommendation struct {
	Recommended []Playlist `json:"recommended"`
	Reason      string     `json:"reason"`
}

// catalog is ordered so listings are stable.
var catalog = []Playlist{
	{
		ID:          "lofi",
		Name:        "Lofi Hip Hop",
		Description: "Chill beats to focus and relax",
		Tracks: []Track{
			{
				ID:       "lofi_1",
				Title:    "Lofi Study Beats",
				Artist:   "Chillhop Music",
				Duration: 180,
				URL:      "https://www.youtube.com/watch?v=jfKfPfyJRdk",
				EmbedID:  "jfKfPfyJRdk",
			},
			{
				ID:       "lofi_2",
				Title:    "Cozy Lofi",
				Artist:   "Lofi Girl",
				Duration: 240,
				URL:      "https://www.youtube.com/watch?v=rUxyKA_-grg",
				EmbedID:  "rUxyKA_-grg",
			},
		},
	},
	{
		ID:          "rain",
		Name:        "Rain Sounds",
		Description: "Natural rain sounds for deep focus",
		Tracks: []Track{
			{
				ID:       "rain_1",
				Title:    "Gentle Rain",
				Artist:   "Nature Sounds",
				Duration: 600,
				URL:      "https://www.youtube.com/watch?v=q76bMs-NwRk",
				EmbedID:  "q76bMs-NwRk",
			},
			{
				ID:       "rain_2",
				Title:    "Thunderstorm",
				Artist:   "Ambient Sounds",
				Duration: 480,
				URL:      "https://www.youtube.com/watch?v=nDq6TstdEi8",
				EmbedID:  "nDq6TstdEi8",
			},
		},
	},
	{
		ID:          "ambient",
		Name:        "Ambient Music",
		Description: "Calm instrumental music for concentration",
		Tracks: []Track{
			{
				ID:       "ambient_1",
				Title:    "Deep Focus",
				Artist:   "Spotify",
				Duration: 300,
				URL:      "https://www.youtube.com/watch?v=lTRiuFIWV54",
				EmbedID:  "lTRiuFIWV54",
			},
			{
				ID:       "ambient_2",
				Title:    "Peaceful Piano",
				Artist:   "Spotify",
				Duration: 280,
				URL:      "https://www.youtube.com/watch?v=4oStw0r33so",
				EmbedID:  "4oStw0r33so",
			},
		},
	},
	{
		ID:          "nature",
		Name:        "Nature Sounds",
		Description: "Forest, ocean, and nature ambience",
		Tracks: []Track{
			{
				ID:       "nature_1",
				Title:    "Forest Ambience",
				Artist:   "Nature Sounds",
				Duration: 420,
				URL:      "https://www.youtube.com/watch?v=xNN7iTA57jM",
				EmbedID:  "xNN7iTA57jM",
			},
			{
				ID:       "nature_2",
				Title:    "Ocean Waves",
				Artist:   "Relaxing Sounds",
				Duration: 360,
				URL:      "https://www.youtube.com/watch?v=V1bFr2SWP1I",
				EmbedID:  "V1bFr2SWP1I",
			},
		},
	},
	{
		ID:          "classical",
		Name:        "Classical Focus",
		Description: "Classical music for enhanced concentration",
		Tracks: []Track{
			{
				ID:       "classical_1",
				Title:    "Classical Study Music",
				Artist:   "Various Artists",
				Duration: 320,
				URL:      "https://www.youtube.com/watch?v=jgpJVI3tDbY",
				EmbedID:  "jgpJVI3tDbY",
			},
		},
	},
}

var byID = func() map[string]*Playlist {
	m := make(map[string]*Playlist, len(catalog))
	for i := range catalog {
		m[catalog[i].ID] = &catalog[i]
	}
	return m
}()

// Playlists returns the catalog as track-less summaries, in catalog
// order.
func Playlists() []Summary {
	summaries := make([]Summary, len(catalog))
	for i, p := range catalog {
		summaries[i] = Summary{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			TrackCount:  len(p.Tracks),
		}
	}
	return summaries
}

// Get returns one playlist with its tracks.
func Get(id string) (*Playlist, error) {
	p, ok := byID[id]
	if !ok {
		return nil, apperror.NotFound("playlist", id)
	}
	return p, nil
}

// Recommended picks playlists matching the time of day: classical or
// lofi in the morning, ambient or lofi in the afternoon, rain or nature
// otherwise.
func Recommended(now time.Time) Recommendation {
	hour := now.Hour()

	var ids []string
	switch {
	case hour >= 6 && hour < 12:
		ids = []string{"classical", "lofi"}
	case hour >= 12 && hour < 18:
		ids = []string{"ambient", "lofi"}
	default:
		ids = []string{"rain", "nature"}
	}

	playlists := make([]Playlist, 0, len(ids))
	for _, id := range ids {
		playlists = append(playlists, *byID[id])
	}

	return Recommendation{
		Recommended: playlists,
		Reason:      fmt.Sprintf("Recommended for %d:00 - optimal focus music for this time of day", hour),
	}
}
