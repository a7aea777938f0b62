// Package models provides data model definitions for Smart Notes.
package models

// Tag is a fixed category a note can carry. The set is closed and not
// user-extensible.
type Tag struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// TagAllID is the filter-only pseudo-tag. It matches every note in a
// projection and is never assignable to a note.
const TagAllID = "all"

// DefaultTagID is assigned when a note is created without a tag and used as
// the display fallback for unrecognized tag values.
const DefaultTagID = "work"

var tags = []Tag{
	{ID: TagAllID, Label: "All", Color: "#6c757d"},
	{ID: "work", Label: "Work", Color: "#2a4d69"},
	{ID: "personal", Label: "Personal", Color: "#4b86b4"},
	{ID: "ideas", Label: "Ideas", Color: "#4caf50"},
	{ID: "important", Label: "Important", Color: "#f44336"},
}

// Tags returns the full tag set, including the "all" pseudo-tag, in display
// order.
func Tags() []Tag {
	out := make([]Tag, len(tags))
	copy(out, tags)
	return out
}

// AssignableTags returns the tags a note may carry ("all" excluded).
func AssignableTags() []Tag {
	out := make([]Tag, 0, len(tags)-1)
	for _, t := range tags {
		if t.ID != TagAllID {
			out = append(out, t)
		}
	}
	return out
}

// IsAssignable reports whether id names a tag a note may carry.
func IsAssignable(id string) bool {
	for _, t := range tags {
		if t.ID == id && t.ID != TagAllID {
			return true
		}
	}
	return false
}

// TagByID resolves a tag id for display. Unrecognized ids are not an error;
// they fall back to the default tag so every note gets a display color.
func TagByID(id string) Tag {
	for _, t := range tags {
		if t.ID == id {
			return t
		}
	}
	return TagByID(DefaultTagID)
}
