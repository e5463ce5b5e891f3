package doublons

import "testing"

func TestSortBySize(t *testing.T) {
	records := []FileRecord{
		{Path: "c", Size: 10},
		{Path: "b", Size: 0},
		{Path: "z", Size: 5},
		{Path: "a", Size: 5},
		{Path: "d", Size: 1},
	}

	SortBySize(records)

	want := []string{"b", "d", "a", "z", "c"}
	for i, r := range records {
		if r.Path != want[i] {
			t.Fatalf("position %d: got %q, want %q (%v)", i, r.Path, want[i], records)
		}
	}
}

func TestSortBySize_Empty(t *testing.T) {
	SortBySize(nil)
}
