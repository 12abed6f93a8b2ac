package editor

import "github.com/google/uuid"

// AddMediaCommand represents a command to place a catalog record on the track
type AddMediaCommand struct {
	MediaID uuid.UUID
}

// TrimClipCommand represents a command to trim a clip from the text the user
// typed into the "M:SS.S" trim fields
type TrimClipCommand struct {
	ClipID uint64
	Start  string
	End    string
}

// MoveClipCommand represents a command to move a clip to a new start time
type MoveClipCommand struct {
	ClipID        uint64
	ProposedStart float64
}

// SeekKind selects how a SeekCommand moves the play-head
type SeekKind string

const (
	SeekTime         SeekKind = "time"
	SeekPixel        SeekKind = "pixel"
	SeekSkipBackward SeekKind = "skip_backward"
	SeekSkipForward  SeekKind = "skip_forward"
	SeekStepBackward SeekKind = "step_backward"
	SeekStepForward  SeekKind = "step_forward"
)

// SeekCommand represents a command to move the play-head. Value is seconds
// for SeekTime and a track pixel offset for SeekPixel; other kinds ignore it.
type SeekCommand struct {
	Kind  SeekKind
	Value float64
}
