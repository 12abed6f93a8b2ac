package catalog

import (
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/narwhalmedia/splice/internal/domain/timeline"
)

// TypeFromFilename infers the media type from a file extension
func TypeFromFilename(name string) timeline.MediaType {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	switch ext {
	case "mp4", "webm", "mov":
		return timeline.MediaTypeVideo
	case "mp3", "wav":
		return timeline.MediaTypeAudio
	case "jpg", "jpeg", "png", "gif":
		return timeline.MediaTypeImage
	default:
		return timeline.MediaTypeUnknown
	}
}

var sizeUnits = []string{"B", "KB", "MB", "GB"}

// FormatFileSize renders a byte count with one decimal in binary units,
// e.g. "1.5 MB". A whole value drops the decimal.
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}

	value := float64(bytes)
	i := 0
	for value >= 1024 && i < len(sizeUnits)-1 {
		value /= 1024
		i++
	}
	rounded := math.Round(value*10) / 10

	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + sizeUnits[i]
}
