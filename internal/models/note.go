// Package models provides data model definitions for Smart Notes.
package models

import (
	"strings"
	"time"

	"github.com/yilun-hsu/smartnotes/internal/errors"
)

// Note represents a single user-authored note.
// JSON field names match the persisted record format, so a note round-trips
// unchanged through both the local slot and the remote record store.
type Note struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Image     string `json:"image,omitempty"` // data URI, empty when absent
	Tag       string `json:"tag"`
	Pinned    bool   `json:"pinned"`
	UpdatedAt int64  `json:"updatedAt"` // unix milliseconds, ordering only
}

// UpdatedAtTime returns UpdatedAt as time.Time.
func (n *Note) UpdatedAtTime() time.Time {
	return time.UnixMilli(n.UpdatedAt)
}

// Touch refreshes the UpdatedAt timestamp.
func (n *Note) Touch(now time.Time) {
	n.UpdatedAt = now.UnixMilli()
}

// NoteFields holds the caller-supplied fields for creating a note.
// ID, pin state and timestamp are assigned during materialization.
type NoteFields struct {
	Text  string `json:"text"`
	Image string `json:"image,omitempty"`
	Tag   string `json:"tag,omitempty"`
}

// ValidateForCreate rejects fields that would produce an empty note.
// A note must carry trimmed text, an image, or both.
func ValidateForCreate(fields NoteFields) error {
	if strings.TrimSpace(fields.Text) == "" && fields.Image == "" {
		return errors.New(errors.ErrEmptyNote, "note must have text or an image")
	}
	return nil
}

// Materialize produces a new Note from fields with the given id and clock
// reading. The tag defaults to the default tag when absent and pin state
// always starts false. Pure: no side effects, no id generation.
func Materialize(fields NoteFields, id string, now time.Time) Note {
	tag := fields.Tag
	if tag == "" {
		tag = DefaultTagID
	}
	return Note{
		ID:        id,
		Text:      fields.Text,
		Image:     fields.Image,
		Tag:       tag,
		Pinned:    false,
		UpdatedAt: now.UnixMilli(),
	}
}

// Patch is a partial note update. Nil fields are left untouched.
type Patch struct {
	Text   *string `json:"text,omitempty"`
	Image  *string `json:"image,omitempty"`
	Tag    *string `json:"tag,omitempty"`
	Pinned *bool   `json:"pinned,omitempty"`
}

// IsZero reports whether the patch sets no fields.
func (p Patch) IsZero() bool {
	return p.Text == nil && p.Image == nil && p.Tag == nil && p.Pinned == nil
}

// Apply merges the set fields into the note and refreshes its timestamp.
func (p Patch) Apply(n *Note, now time.Time) {
	if p.Text != nil {
		n.Text = *p.Text
	}
	if p.Image != nil {
		n.Image = *p.Image
	}
	if p.Tag != nil {
		n.Tag = *p.Tag
	}
	if p.Pinned != nil {
		n.Pinned = *p.Pinned
	}
	n.Touch(now)
}
