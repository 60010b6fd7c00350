package chat

import (
	"strconv"
	"testing"
)

func msg(i int) Message {
	return Message{ID: strconv.Itoa(i), Message: "m" + strconv.Itoa(i)}
}

func TestHistoryBoundedFIFO(t *testing.T) {
	h := NewHistory(DefaultHistoryCapacity)

	for i := 1; i <= 101; i++ {
		h.Append(msg(i))
		if h.Len() > DefaultHistoryCapacity {
			t.Fatalf("len %d exceeds capacity after %d appends", h.Len(), i)
		}
	}

	all := h.Recent(1000)
	if len(all) != 100 {
		t.Fatalf("len = %d, want 100", len(all))
	}
	if all[0].ID != "2" || all[99].ID != "101" {
		t.Fatalf("window = %s..%s, want 2..101", all[0].ID, all[99].ID)
	}
	for _, m := range all {
		if m.ID == "1" {
			t.Fatal("first message survived eviction")
		}
	}
}

func TestHistoryRecent(t *testing.T) {
	h := NewHistory(5)

	if got := h.Recent(10); len(got) != 0 {
		t.Fatalf("empty history returned %v", got)
	}

	for i := 1; i <= 3; i++ {
		h.Append(msg(i))
	}
	got := h.Recent(2)
	if len(got) != 2 || got[0].ID != "2" || got[1].ID != "3" {
		t.Fatalf("Recent(2) = %+v", got)
	}

	for i := 4; i <= 8; i++ {
		h.Append(msg(i))
	}
	got = h.Recent(3)
	if len(got) != 3 || got[0].ID != "6" || got[2].ID != "8" {
		t.Fatalf("Recent(3) after wrap = %+v", got)
	}

	got[0].ID = "changed"
	if h.Recent(3)[0].ID != "6" {
		t.Fatal("Recent must return a copy")
	}
}

func TestNewHistoryDefaultsCapacity(t *testing.T) {
	if c := NewHistory(0).Cap(); c != DefaultHistoryCapacity {
		t.Fatalf("cap = %d", c)
	}
}
