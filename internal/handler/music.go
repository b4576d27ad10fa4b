package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tahmid/focusflow/internal/music"
)

// MusicHandler covers the /api/music routes. The catalog is static, so
// there is no service behind this handler.
type MusicHandler struct {
	logger *slog.Logger
}

func NewMusicHandler(logger *slog.Logger) *MusicHandler {
	return &MusicHandler{logger: logger}
}

// HandlePlaylists lists the catalog without tracks.
//
// HTTP: GET /api/music/playlists
func (h *MusicHandler) HandlePlaylists(w http.ResponseWriter, r *http.Request) {
	if _, ok := callerID(w, r); !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"playlists": music.Playlists(),
	})
}

// HandlePlaylist returns one playlist with its tracks.
//
// HTTP: GET /api/music/playlists/{id}
func (h *MusicHandler) HandlePlaylist(w http.ResponseWriter, r *http.Request) {
	if _, ok := callerID(w, r); !ok {
		return
	}

	playlist, err := music.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, playlist)
}

// HandleRecommended returns the playlists for the current time of day.
//
// HTTP: GET /api/music/recommended
func (h *MusicHandler) HandleRecommended(w http.ResponseWriter, r *http.Request) {
	if _, ok := callerID(w, r); !ok {
		return
	}

	writeJSON(w, http.StatusOK, music.Recommended(time.Now()))
}
