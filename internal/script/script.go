// Package script replays edit sessions described in YAML against an
// in-memory editor session, without a catalog or a network.
package script

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Script is a recorded edit session
type Script struct {
	PixelsPerSecond float64 `yaml:"pixels_per_second"`
	Steps           []Step  `yaml:"steps"`
}

// Step is one edit. Exactly one field must be set.
type Step struct {
	Add    *AddStep  `yaml:"add,omitempty"`
	Trim   *TrimStep `yaml:"trim,omitempty"`
	Move   *MoveStep `yaml:"move,omitempty"`
	Remove *ClipRef  `yaml:"remove,omitempty"`
	Seek   *SeekStep `yaml:"seek,omitempty"`
	Play   *PlayStep `yaml:"play,omitempty"`
	Clear  bool      `yaml:"clear,omitempty"`
}

// AddStep appends a media item to the end of the track
type AddStep struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Duration string `yaml:"duration"`
}

// TrimStep sets a clip's trim window using "M:SS.S" text
type TrimStep struct {
	Clip  uint64 `yaml:"clip"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// MoveStep drops a clip at a proposed start time
type MoveStep struct {
	Clip uint64  `yaml:"clip"`
	To   float64 `yaml:"to"`
}

// ClipRef names a clip by id
type ClipRef struct {
	Clip uint64 `yaml:"clip"`
}

// SeekStep moves the play-head. Kind is one of time, pixel, skip_backward,
// skip_forward, step_backward or step_forward.
type SeekStep struct {
	Kind  string  `yaml:"kind"`
	Value float64 `yaml:"value"`
}

// PlayStep plays for the given number of timeline seconds, then pauses
type PlayStep struct {
	Seconds float64 `yaml:"seconds"`
}

// Action names the edit a step performs
func (s Step) Action() string {
	switch {
	case s.Add != nil:
		return "add"
	case s.Trim != nil:
		return "trim"
	case s.Move != nil:
		return "move"
	case s.Remove != nil:
		return "remove"
	case s.Seek != nil:
		return "seek"
	case s.Play != nil:
		return "play"
	case s.Clear:
		return "clear"
	default:
		return ""
	}
}

func (s Step) actions() int {
	n := 0
	for _, set := range []bool{s.Add != nil, s.Trim != nil, s.Move != nil, s.Remove != nil, s.Seek != nil, s.Play != nil, s.Clear} {
		if set {
			n++
		}
	}
	return n
}

// ErrEmptyScript is returned for a script without steps
var ErrEmptyScript = errors.New("script has no steps")

// Parse decodes and validates a script. Unknown keys are rejected.
func Parse(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyScript
		}
		return nil, fmt.Errorf("decoding script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads a script file
func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Validate checks that every step names exactly one action
func (s *Script) Validate() error {
	if len(s.Steps) == 0 {
		return ErrEmptyScript
	}
	var errs []error
	for i, step := range s.Steps {
		switch n := step.actions(); {
		case n == 0:
			errs = append(errs, fmt.Errorf("step %d: no action", i+1))
		case n > 1:
			errs = append(errs, fmt.Errorf("step %d: %d actions, want one", i+1, n))
		}
		if step.Play != nil && step.Play.Seconds < 0 {
			errs = append(errs, fmt.Errorf("step %d: play seconds must not be negative", i+1))
		}
	}
	return errors.Join(errs...)
}
