package persistence

import (
	"bytes"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveSlotRoundTrip(t *testing.T) {
	db := openTestDB(t)
	snapshot := []byte(`{"day": 42, "companies": [{"name": "Test Corp"}]}`)

	if db.HasSlot(DefaultSlot) {
		t.Fatal("slot exists before saving")
	}
	if err := db.SaveSlot(DefaultSlot, snapshot); err != nil {
		t.Fatal(err)
	}
	if !db.HasSlot(DefaultSlot) {
		t.Fatal("slot missing after save")
	}

	loaded, err := db.LoadSlot(DefaultSlot)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(loaded, snapshot) {
		t.Errorf("loaded %q, want %q", loaded, snapshot)
	}
}

func TestSaveSlotReplaces(t *testing.T) {
	db := openTestDB(t)

	if err := db.SaveSlot(DefaultSlot, []byte("first")); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveSlot(DefaultSlot, []byte("second")); err != nil {
		t.Fatal(err)
	}
	loaded, err := db.LoadSlot(DefaultSlot)
	if err != nil {
		t.Fatal(err)
	}
	if string(loaded) != "second" {
		t.Errorf("loaded %q, want the replacement", loaded)
	}
}

func TestCorruptSlotCleared(t *testing.T) {
	db := openTestDB(t)

	// Bypass the compressor to plant a blob that will not decompress.
	_, err := db.conn.Exec(
		"INSERT INTO save_slots (name, saved_at, snapshot) VALUES (?, ?, ?)",
		DefaultSlot, "2024-01-01T00:00:00Z", []byte("not zstd"),
	)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := db.LoadSlot(DefaultSlot); err == nil {
		t.Fatal("corrupt slot loaded without error")
	}
	if db.HasSlot(DefaultSlot) {
		t.Error("corrupt slot not cleared")
	}
}

func TestDeleteSlot(t *testing.T) {
	db := openTestDB(t)
	if err := db.SaveSlot(DefaultSlot, []byte("x")); err != nil {
		t.Fatal(err)
	}
	if err := db.DeleteSlot(DefaultSlot); err != nil {
		t.Fatal(err)
	}
	if db.HasSlot(DefaultSlot) {
		t.Error("slot survives deletion")
	}
	// Deleting a missing slot is not an error.
	if err := db.DeleteSlot("nope"); err != nil {
		t.Errorf("deleting absent slot: %v", err)
	}
}

func TestNewsLogNewestFirst(t *testing.T) {
	db := openTestDB(t)

	if err := db.AppendNews(nil); err != nil {
		t.Fatalf("empty append: %v", err)
	}
	records := []NewsRecord{
		{Day: 1, Date: "2024-01-02", Category: "economy", Headline: "first"},
		{Day: 2, Date: "2024-01-03", Category: "player", Headline: "second"},
		{Day: 3, Date: "2024-01-04", Category: "competitor", Headline: "third"},
	}
	if err := db.AppendNews(records); err != nil {
		t.Fatal(err)
	}

	got, err := db.RecentNews(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("records = %d, want 2", len(got))
	}
	if got[0].Headline != "third" || got[1].Headline != "second" {
		t.Errorf("order = [%s, %s], want newest first", got[0].Headline, got[1].Headline)
	}
}

func TestMetaRoundTrip(t *testing.T) {
	db := openTestDB(t)

	if err := db.SaveMeta("version", "1"); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveMeta("version", "2"); err != nil {
		t.Fatal(err)
	}
	v, err := db.GetMeta("version")
	if err != nil {
		t.Fatal(err)
	}
	if v != "2" {
		t.Errorf("meta = %q, want the replacement", v)
	}
	if _, err := db.GetMeta("missing"); err == nil {
		t.Error("missing key returned no error")
	}
}
