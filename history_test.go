package lineedit

import "testing"

func TestRingHistoryBasic(t *testing.T) {
	h := NewRingHistory(10)

	if !h.AddEntry("abc") {
		t.Fatal("expected add to succeed")
	}
	if !h.AddEntry("def") {
		t.Fatal("expected add to succeed")
	}
	if h.NumberOfEntries() != 2 {
		t.Fatalf("got %d entries", h.NumberOfEntries())
	}
	if e, _ := h.Entry(0); e != "abc" {
		t.Fatalf("got %q", e)
	}
	if e, _ := h.Entry(1); e != "def" {
		t.Fatalf("got %q", e)
	}
}

func TestRingHistoryEvictsOldest(t *testing.T) {
	h := NewRingHistory(10)
	h.AddEntry("abc")
	h.AddEntry("def")
	// "ghi" needs 4 bytes; only 2 free (10 - 8), so the oldest entry
	// ("abc", 4 bytes) must be evicted whole to make room.
	if !h.AddEntry("ghi") {
		t.Fatal("expected add to succeed after eviction")
	}
	if h.NumberOfEntries() != 2 {
		t.Fatalf("got %d entries", h.NumberOfEntries())
	}
	if e, _ := h.Entry(0); e != "def" {
		t.Fatalf("got %q, want def (abc should have been evicted)", e)
	}
	if e, _ := h.Entry(1); e != "ghi" {
		t.Fatalf("got %q", e)
	}
}

func TestRingHistoryRejectsOversizedEntry(t *testing.T) {
	h := NewRingHistory(10)
	if h.AddEntry("0123456789") { // 10 bytes + NUL > capacity
		t.Fatal("expected oversized entry to be rejected")
	}
	if h.NumberOfEntries() != 0 {
		t.Fatalf("got %d entries", h.NumberOfEntries())
	}
}

func TestRingHistoryRejectsEmpty(t *testing.T) {
	h := NewRingHistory(10)
	if h.AddEntry("") {
		t.Fatal("expected empty entry to be rejected")
	}
}

func TestUnboundedHistory(t *testing.T) {
	h := NewUnboundedHistory()
	h.AddEntry("one")
	h.AddEntry("two")
	h.AddEntry("three")
	if h.NumberOfEntries() != 3 {
		t.Fatalf("got %d", h.NumberOfEntries())
	}
	if e, _ := h.Entry(1); e != "two" {
		t.Fatalf("got %q", e)
	}
	if n := h.LoadEntries([]string{"four", "five"}); n != 2 {
		t.Fatalf("loaded %d", n)
	}
	if h.NumberOfEntries() != 5 {
		t.Fatalf("got %d", h.NumberOfEntries())
	}
}

func TestHistoryNavigator(t *testing.T) {
	h := NewUnboundedHistory()
	h.AddEntry("line one")
	h.AddEntry("line two")

	nav := NewHistoryNavigator(h)

	entry, ok := nav.MoveUp()
	if !ok || entry != "line two" {
		t.Fatalf("got %q, %v", entry, ok)
	}
	entry, ok = nav.MoveUp()
	if !ok || entry != "line one" {
		t.Fatalf("got %q, %v", entry, ok)
	}
	if _, ok := nav.MoveUp(); ok {
		t.Fatal("expected move past index 0 to fail")
	}

	entry, ok = nav.MoveDown()
	if !ok || entry != "line two" {
		t.Fatalf("got %q, %v", entry, ok)
	}
	if _, ok := nav.MoveDown(); ok {
		t.Fatal("expected move past the end to deactivate, not return an entry")
	}
	if nav.IsActive() {
		t.Fatal("expected navigator to be inactive after moving past the end")
	}
}
