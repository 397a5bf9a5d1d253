// Package core provides lookup, search and ordering over tour tips.
package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmylchreest/tipwalk/internal/model"
)

// ErrTipNotFound is returned when a reference matches no tip.
var ErrTipNotFound = errors.New("tip not found")

// LookupByID finds a tip by its ID.
// Returns nil if not found.
func LookupByID(tips []model.Descriptor, id string) *model.Descriptor {
	for i := range tips {
		if tips[i].ID == id {
			return &tips[i]
		}
	}
	return nil
}

// LookupByIndex finds a tip by its index (1-based for user-friendliness).
// Returns nil if index is out of bounds.
func LookupByIndex(tips []model.Descriptor, index int) *model.Descriptor {
	idx := index - 1
	if idx < 0 || idx >= len(tips) {
		return nil
	}
	return &tips[idx]
}

// Position returns the 0-based position of the tip referenced by ref, which
// is either an ID or a 1-based index. IDs win when both could match.
func Position(tips []model.Descriptor, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	for i := range tips {
		if tips[i].ID == ref {
			return i, nil
		}
	}
	if n, err := strconv.Atoi(ref); err == nil && LookupByIndex(tips, n) != nil {
		return n - 1, nil
	}
	return -1, fmt.Errorf("%w: %q", ErrTipNotFound, ref)
}

// From returns the tips starting at ref. An empty ref returns all tips.
func From(tips []model.Descriptor, ref string) ([]model.Descriptor, error) {
	if ref == "" {
		return tips, nil
	}
	pos, err := Position(tips, ref)
	if err != nil {
		return nil, err
	}
	return tips[pos:], nil
}

// Search finds tips whose ID or text contains term.
// Case-insensitive substring match.
func Search(tips []model.Descriptor, term string) []model.Descriptor {
	if term == "" {
		return tips
	}

	term = strings.ToLower(term)
	var result []model.Descriptor

	for _, d := range tips {
		if strings.Contains(strings.ToLower(d.ID), term) ||
			strings.Contains(strings.ToLower(d.Text), term) {
			result = append(result, d)
		}
	}

	return result
}

// DuplicateIDs returns the IDs used by more than one tip, in order of their
// second appearance.
func DuplicateIDs(tips []model.Descriptor) []string {
	seen := make(map[string]int)
	var dups []string

	for _, d := range tips {
		seen[d.ID]++
		if seen[d.ID] == 2 {
			dups = append(dups, d.ID)
		}
	}

	return dups
}
