// Package region defines the text region data model: normalized bounding
// boxes, the region status state machine, and the filtering rules shared by
// the translate and render stages.
package region

import (
	"encoding/json"
	"fmt"
)

// Status tracks a region's lifecycle state.
// Regions start active, can be soft-removed (recoverable), and are only
// physically dropped from a page once permanently deleted.
type Status string

const (
	StatusActive  Status = "active"
	StatusRemoved Status = "removed"
	StatusDeleted Status = "deleted"
)

// IsActive reports whether the region participates in translation and
// rendering. An empty status is equivalent to active; older payloads omit
// the field entirely.
func (s Status) IsActive() bool {
	return s == StatusActive || s == ""
}

// MarshalJSON always emits an explicit status string.
func (s Status) MarshalJSON() ([]byte, error) {
	if s == "" {
		return json.Marshal(string(StatusActive))
	}
	return json.Marshal(string(s))
}

// UnmarshalJSON defaults missing or unrecognized values to active rather
// than rejecting them.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch Status(raw) {
	case StatusRemoved:
		*s = StatusRemoved
	case StatusDeleted:
		*s = StatusDeleted
	default:
		*s = StatusActive
	}
	return nil
}

// BBox is a normalized bounding box (x1, y1, x2, y2), each coordinate a
// fraction of the image width or height in [0, 1].
type BBox [4]float64

// Validate checks that coordinates are in range and the box is not inverted
// or degenerate.
func (b BBox) Validate() error {
	for i, v := range b {
		if v < 0 || v > 1 {
			return fmt.Errorf("bbox coordinate %d out of range: %v", i, v)
		}
	}
	if b[0] >= b[2] {
		return fmt.Errorf("bbox x1 (%v) must be less than x2 (%v)", b[0], b[2])
	}
	if b[1] >= b[3] {
		return fmt.Errorf("bbox y1 (%v) must be less than y2 (%v)", b[1], b[3])
	}
	return nil
}

// Clamp snaps all coordinates into [0, 1]. It does not reorder inverted
// boxes; callers should Validate afterwards.
func (b BBox) Clamp() BBox {
	for i, v := range b {
		if v < 0 {
			b[i] = 0
		} else if v > 1 {
			b[i] = 1
		}
	}
	return b
}

// TextRegion is one detected text block in a page image.
type TextRegion struct {
	ID         string `json:"id"`
	BBox       BBox   `json:"bbox"`
	Original   string `json:"original"`
	Translated string `json:"translated"`
	Status     Status `json:"status,omitempty"`
}

// Changed reports whether the region carries an actual translation.
func (r TextRegion) Changed() bool {
	return r.Translated != "" && r.Translated != r.Original
}
