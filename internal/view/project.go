// Package view derives the rendered note ordering from the authoritative
// collection. Projections are pure: the same collection, tag filter and
// search term always produce the same sequence.
package view

import (
	"sort"
	"strings"

	"github.com/yilun-hsu/smartnotes/internal/models"
)

// EmptyState distinguishes the two empty renderings: a collection with no
// notes at all versus a non-empty collection where nothing passed the filters.
type EmptyState int

const (
	EmptyNone EmptyState = iota
	EmptyNoNotes
	EmptyNoMatches
)

// Projection is the filtered, sorted sequence of notes shown to the user.
type Projection struct {
	Notes []models.Note
	Empty EmptyState
}

// Project filters the collection by tag and search term, then orders the
// result pinned-first and most-recently-touched-first. Pin status is looked
// up by id against the full input collection, not the filtered subset, so a
// note's position relative to its pin state is stable under any filter.
//
// Sort key: pinned before unpinned, then UpdatedAt descending, then id
// descending (ids are lexicographically orderable in both backends).
func Project(all []models.Note, activeTag, term string) Projection {
	pinned := make(map[string]bool, len(all))
	for _, n := range all {
		pinned[n.ID] = n.Pinned
	}

	term = strings.ToLower(strings.TrimSpace(term))

	filtered := make([]models.Note, 0, len(all))
	for _, n := range all {
		if activeTag != models.TagAllID && activeTag != "" && n.Tag != activeTag {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(n.Text), term) {
			continue
		}
		filtered = append(filtered, n)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := filtered[i], filtered[j]
		if pinned[a.ID] != pinned[b.ID] {
			return pinned[a.ID]
		}
		if a.UpdatedAt != b.UpdatedAt {
			return a.UpdatedAt > b.UpdatedAt
		}
		return a.ID > b.ID
	})

	empty := EmptyNone
	if len(filtered) == 0 {
		if len(all) == 0 {
			empty = EmptyNoNotes
		} else {
			empty = EmptyNoMatches
		}
	}

	return Projection{Notes: filtered, Empty: empty}
}
