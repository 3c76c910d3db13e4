package storage

import (
	"fmt"
	"mime"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/linkiq/linkiq/services/profile/internal/model"
)

const MaxThemeSongBytes = 5 << 20

// CheckThemeSong validates an upload's declared content type and size.
func CheckThemeSong(contentType string, size, limit int64) error {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "audio/") {
		return model.ErrUnsupportedMedia
	}
	if size > limit {
		return fmt.Errorf("%w: %s exceeds the %s limit", model.ErrFileTooLarge,
			humanize.IBytes(uint64(size)), humanize.IBytes(uint64(limit)))
	}
	return nil
}

// ThemeSongKey names a new theme song object for userID. Every call returns
// a different key, even within the same millisecond.
func ThemeSongKey(userID string, at time.Time) string {
	return fmt.Sprintf("%s/theme-song-%d-%s.mp3", userID, at.UnixMilli(), uuid.NewString()[:8])
}
