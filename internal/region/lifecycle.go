package region

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the region id does not exist in the list.
	ErrNotFound = errors.New("region not found")

	// ErrNotActive indicates an operation that requires an active region.
	ErrNotActive = errors.New("region is not active")

	// ErrNotRemoved indicates an operation that requires a removed region.
	// Permanent deletion must pass through the removed state first so that
	// every delete has an undo window.
	ErrNotRemoved = errors.New("region is not removed")
)

// Remove soft-deletes an active region in place. The region stays in the
// list but is excluded from translation and render inputs.
func Remove(regions []TextRegion, id string) error {
	r := find(regions, id)
	if r == nil {
		return fmt.Errorf("remove %s: %w", id, ErrNotFound)
	}
	if !r.Status.IsActive() {
		return fmt.Errorf("remove %s: %w", id, ErrNotActive)
	}
	r.Status = StatusRemoved
	return nil
}

// Undo reverses a soft delete, returning the region to the active set.
func Undo(regions []TextRegion, id string) error {
	r := find(regions, id)
	if r == nil {
		return fmt.Errorf("undo %s: %w", id, ErrNotFound)
	}
	if r.Status != StatusRemoved {
		return fmt.Errorf("undo %s: %w", id, ErrNotRemoved)
	}
	r.Status = StatusActive
	return nil
}

// PermanentDelete splices a removed region out of the list. Only removed
// regions may be permanently deleted; the transition is terminal.
func PermanentDelete(regions []TextRegion, id string) ([]TextRegion, error) {
	for i := range regions {
		if regions[i].ID != id {
			continue
		}
		if regions[i].Status != StatusRemoved {
			return regions, fmt.Errorf("permanent delete %s: %w", id, ErrNotRemoved)
		}
		return append(regions[:i], regions[i+1:]...), nil
	}
	return regions, fmt.Errorf("permanent delete %s: %w", id, ErrNotFound)
}

// SetTranslated writes a new translated text on any non-deleted region.
func SetTranslated(regions []TextRegion, id, translated string) error {
	r := find(regions, id)
	if r == nil {
		return fmt.Errorf("update %s: %w", id, ErrNotFound)
	}
	r.Translated = translated
	return nil
}

// Active returns the regions eligible for translation and rendering,
// preserving list order. Regions with no status behave as active.
func Active(regions []TextRegion) []TextRegion {
	var out []TextRegion
	for _, r := range regions {
		if r.Status.IsActive() {
			out = append(out, r)
		}
	}
	return out
}

// ActiveIDs returns the ids of the active subset in list order. The
// translate stage snapshots this at request time and matches the response
// positionally against the snapshot.
func ActiveIDs(regions []TextRegion) []string {
	var out []string
	for _, r := range regions {
		if r.Status.IsActive() {
			out = append(out, r.ID)
		}
	}
	return out
}

// Removed returns the soft-deleted regions awaiting undo or permanent
// deletion, preserving list order.
func Removed(regions []TextRegion) []TextRegion {
	var out []TextRegion
	for _, r := range regions {
		if r.Status == StatusRemoved {
			out = append(out, r)
		}
	}
	return out
}

// ChangedActive returns the active regions carrying an actual translation.
// This is the render input set.
func ChangedActive(regions []TextRegion) []TextRegion {
	var out []TextRegion
	for _, r := range regions {
		if r.Status.IsActive() && r.Changed() {
			out = append(out, r)
		}
	}
	return out
}

// HasTranslations reports whether any active region has a translation that
// differs from its original text.
func HasTranslations(regions []TextRegion) bool {
	return len(ChangedActive(regions)) > 0
}

func find(regions []TextRegion, id string) *TextRegion {
	for i := range regions {
		if regions[i].ID == id {
			return &regions[i]
		}
	}
	return nil
}
