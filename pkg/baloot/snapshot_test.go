package baloot

import "testing"

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	c := NewCoordinator()
	for s := Bottom; s <= Left; s++ {
		if err := c.AddPlayer(s); err != nil {
			t.Fatalf("AddPlayer(%v): %v", s, err)
		}
	}
	if err := c.StartGame(Bottom); err != nil {
		t.Fatalf("StartGame: %v", err)
	}

	data, err := Snapshot(c)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	restored, err := Restore(data)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if restored.Phase != c.Phase {
		t.Errorf("expected phase %v, got %v", c.Phase, restored.Phase)
	}
	if restored.Round == nil {
		t.Fatal("expected a restored round")
	}
	if len(restored.Round.Hands[Bottom]) != len(c.Round.Hands[Bottom]) {
		t.Errorf("expected matching hand sizes, got %d vs %d",
			len(restored.Round.Hands[Bottom]), len(c.Round.Hands[Bottom]))
	}
	if restored.Round.DealerIndex != c.Round.DealerIndex {
		t.Errorf("expected matching dealer, got %v vs %v", restored.Round.DealerIndex, c.Round.DealerIndex)
	}
}
