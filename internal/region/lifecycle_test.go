package region

import (
	"errors"
	"testing"
)

func sampleRegions() []TextRegion {
	return []TextRegion{
		{ID: "r1", BBox: BBox{0.1, 0.1, 0.3, 0.2}, Original: "One", Translated: "Uno", Status: StatusActive},
		{ID: "r2", BBox: BBox{0.1, 0.3, 0.3, 0.4}, Original: "Two", Translated: "Two", Status: StatusActive},
		{ID: "r3", BBox: BBox{0.1, 0.5, 0.3, 0.6}, Original: "Three", Translated: "Tres", Status: StatusRemoved},
	}
}

func TestRemove(t *testing.T) {
	t.Run("active region becomes removed", func(t *testing.T) {
		regions := sampleRegions()
		if err := Remove(regions, "r1"); err != nil {
			t.Fatalf("Remove: %v", err)
		}
		if regions[0].Status != StatusRemoved {
			t.Errorf("status = %q, want removed", regions[0].Status)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		regions := sampleRegions()
		if err := Remove(regions, "nope"); !errors.Is(err, ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("already removed", func(t *testing.T) {
		regions := sampleRegions()
		if err := Remove(regions, "r3"); !errors.Is(err, ErrNotActive) {
			t.Errorf("err = %v, want ErrNotActive", err)
		}
	})
}

func TestUndo(t *testing.T) {
	t.Run("removed region becomes active", func(t *testing.T) {
		regions := sampleRegions()
		if err := Undo(regions, "r3"); err != nil {
			t.Fatalf("Undo: %v", err)
		}
		if regions[2].Status != StatusActive {
			t.Errorf("status = %q, want active", regions[2].Status)
		}
	})

	t.Run("active region cannot be undone", func(t *testing.T) {
		regions := sampleRegions()
		if err := Undo(regions, "r1"); !errors.Is(err, ErrNotRemoved) {
			t.Errorf("err = %v, want ErrNotRemoved", err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		regions := sampleRegions()
		if err := Undo(regions, "nope"); !errors.Is(err, ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestPermanentDelete(t *testing.T) {
	t.Run("removed region is spliced out", func(t *testing.T) {
		regions := sampleRegions()
		out, err := PermanentDelete(regions, "r3")
		if err != nil {
			t.Fatalf("PermanentDelete: %v", err)
		}
		if len(out) != 2 {
			t.Fatalf("len = %d, want 2", len(out))
		}
		for _, r := range out {
			if r.ID == "r3" {
				t.Error("r3 still present after permanent delete")
			}
		}
	})

	t.Run("active region must be removed first", func(t *testing.T) {
		regions := sampleRegions()
		out, err := PermanentDelete(regions, "r1")
		if !errors.Is(err, ErrNotRemoved) {
			t.Errorf("err = %v, want ErrNotRemoved", err)
		}
		if len(out) != 3 {
			t.Errorf("list changed on failed delete: len = %d", len(out))
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		regions := sampleRegions()
		if _, err := PermanentDelete(regions, "nope"); !errors.Is(err, ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestSetTranslated(t *testing.T) {
	regions := sampleRegions()
	if err := SetTranslated(regions, "r2", "Dos"); err != nil {
		t.Fatalf("SetTranslated: %v", err)
	}
	if regions[1].Translated != "Dos" {
		t.Errorf("translated = %q, want Dos", regions[1].Translated)
	}

	if err := SetTranslated(regions, "nope", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestFiltering(t *testing.T) {
	regions := sampleRegions()

	t.Run("active", func(t *testing.T) {
		active := Active(regions)
		if len(active) != 2 {
			t.Fatalf("len = %d, want 2", len(active))
		}
		if active[0].ID != "r1" || active[1].ID != "r2" {
			t.Errorf("unexpected order: %s, %s", active[0].ID, active[1].ID)
		}
	})

	t.Run("active ids", func(t *testing.T) {
		ids := ActiveIDs(regions)
		if len(ids) != 2 || ids[0] != "r1" || ids[1] != "r2" {
			t.Errorf("ActiveIDs = %v", ids)
		}
	})

	t.Run("removed", func(t *testing.T) {
		removed := Removed(regions)
		if len(removed) != 1 || removed[0].ID != "r3" {
			t.Errorf("Removed = %v", removed)
		}
	})

	t.Run("changed active excludes unchanged and removed", func(t *testing.T) {
		// r1 is changed and active, r2 unchanged, r3 changed but removed.
		changed := ChangedActive(regions)
		if len(changed) != 1 || changed[0].ID != "r1" {
			t.Errorf("ChangedActive = %v", changed)
		}
	})

	t.Run("empty status counts as active", func(t *testing.T) {
		regions := []TextRegion{{ID: "r", Original: "a", Translated: "b"}}
		if len(Active(regions)) != 1 {
			t.Error("region with empty status should be active")
		}
		if !HasTranslations(regions) {
			t.Error("HasTranslations should see the changed region")
		}
	})
}
