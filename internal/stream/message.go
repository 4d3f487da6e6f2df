package stream

import (
	"fmt"

	"mini-weather/internal/game"
)

// Message types sent to viewers.
const (
	TypeWorld = "world"
	TypeFrame = "frame"
)

// Message is the envelope for everything written to a viewer.
type Message struct {
	Type  string             `json:"type"`
	World *game.WorldSummary `json:"world,omitempty"`
	Frame *game.Frame        `json:"frame,omitempty"`
}

// Command is a control request from a viewer.
type Command struct {
	// Type is "rain", "day" or "night".
	Type    string `json:"type"`
	Enabled bool   `json:"enabled,omitempty"`
}

// Validate rejects unknown commands before they reach the loop.
func (c Command) Validate() error {
	switch c.Type {
	case "rain", "day", "night":
		return nil
	}
	return fmt.Errorf("unknown command %q", c.Type)
}

// Apply runs the command against s. Only call from the goroutine that
// updates s.
func (c Command) Apply(s *game.Session) {
	switch c.Type {
	case "rain":
		s.SetRainEnabled(c.Enabled)
	case "day":
		s.Clock.SetDay()
	case "night":
		s.Clock.SetNight()
	}
}
