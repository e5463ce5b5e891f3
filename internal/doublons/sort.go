package doublons

import (
	"cmp"
	"slices"
)

// SortBySize orders records by ascending size, in place.
// Equal sizes are ordered by path so repeated runs print identical lines.
func SortBySize(records []FileRecord) {
	slices.SortFunc(records, func(a, b FileRecord) int {
		if c := cmp.Compare(a.Size, b.Size); c != 0 {
			return c
		}

		return cmp.Compare(a.Path, b.Path)
	})
}
