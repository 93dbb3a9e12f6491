package thread

import "sort"

// SortMode selects the ordering of top-level comments. Reply order is not
// affected; conversations always read oldest-first.
type SortMode string

const (
	SortNewest  SortMode = "newest"
	SortOldest  SortMode = "oldest"
	SortPopular SortMode = "popular"
)

// ParseSort maps a query-string value onto a sort mode, defaulting to
// newest for anything unrecognized.
func ParseSort(s string) SortMode {
	switch SortMode(s) {
	case SortOldest:
		return SortOldest
	case SortPopular:
		return SortPopular
	default:
		return SortNewest
	}
}

// Resort returns a copy of the view with its top-level comments reordered.
func Resort(v View, mode SortMode) View {
	out := v.clone()
	out.Sort = mode
	sortTopLevel(out.TopLevel, mode)
	return out
}

// sortTopLevel orders nodes in place. All modes break remaining ties by id
// ascending so the order is deterministic for equal timestamps or counts.
func sortTopLevel(nodes []Node, mode SortMode) {
	sort.Slice(nodes, func(i, j int) bool {
		a, b := nodes[i], nodes[j]
		switch mode {
		case SortOldest:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
		case SortPopular:
			if a.LikeCount != b.LikeCount {
				return a.LikeCount > b.LikeCount
			}
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
		default: // newest
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
		}
		return a.ID < b.ID
	})
}
