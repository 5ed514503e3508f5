package types

import (
	"cmp"
	"slices"
)

// SortByName sorts nodes by name using byte-wise comparison. The sort is
// stable, so overloads and same-named accessors keep their relative order.
func SortByName(nodes []*ElementNode) {
	slices.SortStableFunc(nodes, func(a, b *ElementNode) int {
		return cmp.Compare(a.Name, b.Name)
	})
}

// SortByPosition sorts nodes by their full start offset.
func SortByPosition(nodes []*ElementNode) {
	slices.SortStableFunc(nodes, func(a, b *ElementNode) int {
		return cmp.Compare(a.FullStart, b.FullStart)
	})
}
