package engine

import (
	"testing"
)

func TestSnapshotRoundTrip(t *testing.T) {
	w := newTestWorld(t, 2)
	addStockedStore(w.Player(), 500)
	for i := 0; i < 10; i++ {
		w.AdvanceDay()
	}

	data, err := w.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	restored, err := Restore(data)
	if err != nil {
		t.Fatal(err)
	}

	if restored.Day != w.Day || !restored.Date.Equal(w.Date) {
		t.Errorf("calendar mismatch: day %d/%d", restored.Day, w.Day)
	}
	if len(restored.Companies) != len(w.Companies) {
		t.Fatalf("companies = %d, want %d", len(restored.Companies), len(w.Companies))
	}
	for i, c := range w.Companies {
		if restored.Companies[i].Cash != c.Cash {
			t.Errorf("%s cash = %v, want %v", c.Name, restored.Companies[i].Cash, c.Cash)
		}
	}
	if restored.CountryIndex == nil || len(restored.CountryIndex) == 0 {
		t.Error("country index not rebuilt")
	}
	if restored.Cities == nil {
		t.Error("cities missing after restore")
	}

	// The restored world must be able to keep simulating.
	if !restored.AdvanceDay() {
		t.Fatal("restored world refused to tick")
	}
}

func TestRestoreRejectsEmptySnapshot(t *testing.T) {
	if _, err := Restore([]byte(`{}`)); err == nil {
		t.Fatal("empty snapshot accepted")
	}
	if _, err := Restore([]byte(`not json`)); err == nil {
		t.Fatal("garbage snapshot accepted")
	}
}
