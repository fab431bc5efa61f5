package services

import (
	"fmt"
	"strings"

	"github.com/fbessa/tournament-server/models"
	"github.com/fbessa/tournament-server/storage"
)

// Broadcaster pushes an event into a websocket room. The live hub
// satisfies this; tests pass a no-op.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

type noopBroadcaster struct{}

func (noopBroadcaster) BroadcastToRoom(string, interface{}) {}

// NoopBroadcaster is used when the server runs without live updates.
func NoopBroadcaster() Broadcaster { return noopBroadcaster{} }

func populateTournamentURLs(t *models.Tournament, uploader storage.FileUploader) {
	if t == nil || uploader == nil {
		return
	}
	if t.LogoKey != nil && *t.LogoKey != "" {
		if url := uploader.GetPublicURL(*t.LogoKey); url != "" {
			t.LogoURL = &url
		}
	}
	for i := range t.Territories {
		tr := &t.Territories[i]
		if tr.FlagKey != nil && *tr.FlagKey != "" {
			if url := uploader.GetPublicURL(*tr.FlagKey); url != "" {
				tr.FlagURL = &url
			}
		}
	}
}

func extensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	case "image/svg+xml":
		return ".svg", nil
	default:
		parts := strings.Split(contentType, "/")
		if len(parts) == 2 && parts[0] == "image" && parts[1] != "" {
			return "." + strings.Split(parts[1], "+")[0], nil
		}
		return "", fmt.Errorf("%w: %s", ErrInvalidFileType, contentType)
	}
}
