package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jmylchreest/tipwalk/internal/model"
)

// SortField represents a field to sort by.
type SortField string

const (
	SortByTour     SortField = "tour"     // File order
	SortByPosition SortField = "position" // Reading order: top to bottom, then left to right
	SortByX        SortField = "x"
	SortByY        SortField = "y"
)

// SortOrder represents ascending or descending order.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortOptions specifies sorting criteria.
type SortOptions struct {
	Field SortField // Field to sort by
	Order SortOrder // Sort order (asc/desc)
}

// DefaultSortOptions keeps the tour order.
func DefaultSortOptions() SortOptions {
	return SortOptions{
		Field: SortByTour,
		Order: SortAsc,
	}
}

// Sort sorts tips in place based on the provided options. The sort is
// stable, so equal anchors keep their tour order.
func Sort(tips []model.Descriptor, opts SortOptions) {
	if len(tips) == 0 || opts.Field == SortByTour && opts.Order != SortDesc {
		return
	}

	if opts.Field == SortByTour {
		for i, j := 0, len(tips)-1; i < j; i, j = i+1, j-1 {
			tips[i], tips[j] = tips[j], tips[i]
		}
		return
	}

	sort.SliceStable(tips, func(i, j int) bool {
		a, b := tips[i].Anchor, tips[j].Anchor
		if opts.Order == SortDesc {
			a, b = b, a
		}

		switch opts.Field {
		case SortByX:
			return a.X < b.X
		case SortByY:
			return a.Y < b.Y
		default:
			if a.Y != b.Y {
				return a.Y < b.Y
			}
			return a.X < b.X
		}
	})
}

// ParseSortField parses a sort field string.
func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "tour", "file", "t":
		return SortByTour, nil
	case "position", "pos", "p":
		return SortByPosition, nil
	case "x":
		return SortByX, nil
	case "y":
		return SortByY, nil
	default:
		return SortByTour, fmt.Errorf("unknown sort field %q", s)
	}
}

// ParseSortOrder parses a sort order string.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending", "a":
		return SortAsc, nil
	case "desc", "descending", "d":
		return SortDesc, nil
	default:
		return SortAsc, fmt.Errorf("unknown sort order %q", s)
	}
}
