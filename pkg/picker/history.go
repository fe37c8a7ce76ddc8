package picker

import (
	"github.com/elves/selectkit/pkg/store/storedefs"
)

// OrderByHistory returns items with the ones found in picks moved to the
// front, in the order of picks. The other items keep their relative order.
func OrderByHistory(items []string, picks []storedefs.Pick) []string {
	present := make(map[string]bool, len(items))
	for _, item := range items {
		present[item] = true
	}
	ordered := make([]string, 0, len(items))
	seen := make(map[string]bool, len(picks))
	for _, p := range picks {
		if present[p.Item] && !seen[p.Item] {
			ordered = append(ordered, p.Item)
			seen[p.Item] = true
		}
	}
	for _, item := range items {
		if !seen[item] {
			ordered = append(ordered, item)
		}
	}
	return ordered
}
