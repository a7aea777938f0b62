// Package models tests for the note data model.
package models

import (
	"testing"
	"time"

	"github.com/yilun-hsu/smartnotes/internal/errors"
)

// TestValidateForCreate verifies the empty-note rejection rules.
func TestValidateForCreate(t *testing.T) {
	tests := []struct {
		name    string
		fields  NoteFields
		wantErr bool
	}{
		{"text only", NoteFields{Text: "buy milk"}, false},
		{"image only", NoteFields{Image: "data:image/png;base64,iVBOR"}, false},
		{"text and image", NoteFields{Text: "x", Image: "data:image/png;base64,iVBOR"}, false},
		{"empty", NoteFields{}, true},
		{"whitespace text", NoteFields{Text: "   \t\n"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateForCreate(tt.fields)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrEmptyNote) {
					t.Errorf("ValidateForCreate() = %v, want ErrEmptyNote", err)
				}
			} else if err != nil {
				t.Errorf("ValidateForCreate() = %v, want nil", err)
			}
		})
	}
}

// TestMaterialize verifies field assignment and defaults.
func TestMaterialize(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	note := Materialize(NoteFields{Text: "ship release", Tag: "personal"}, "n1", now)

	if note.ID != "n1" {
		t.Errorf("ID = %q, want n1", note.ID)
	}
	if note.Text != "ship release" {
		t.Errorf("Text = %q", note.Text)
	}
	if note.Tag != "personal" {
		t.Errorf("Tag = %q, want personal", note.Tag)
	}
	if note.Pinned {
		t.Error("new notes must not be pinned")
	}
	if note.UpdatedAt != now.UnixMilli() {
		t.Errorf("UpdatedAt = %d, want %d", note.UpdatedAt, now.UnixMilli())
	}
}

// TestMaterialize_defaultTag verifies the tag default.
func TestMaterialize_defaultTag(t *testing.T) {
	note := Materialize(NoteFields{Text: "x"}, "n1", time.Now())
	if note.Tag != DefaultTagID {
		t.Errorf("Tag = %q, want %q", note.Tag, DefaultTagID)
	}
}

// TestPatch_Apply verifies partial merge and timestamp refresh.
func TestPatch_Apply(t *testing.T) {
	note := Note{ID: "n1", Text: "old", Tag: "work", UpdatedAt: 100}
	newText := "new"
	pinned := true

	Patch{Text: &newText, Pinned: &pinned}.Apply(&note, time.UnixMilli(200))

	if note.Text != "new" {
		t.Errorf("Text = %q, want new", note.Text)
	}
	if !note.Pinned {
		t.Error("Pinned not applied")
	}
	if note.Tag != "work" {
		t.Errorf("Tag = %q, unset field must not change", note.Tag)
	}
	if note.UpdatedAt != 200 {
		t.Errorf("UpdatedAt = %d, want 200", note.UpdatedAt)
	}
}

// TestPatch_Apply_monotonic verifies UpdatedAt is non-decreasing across edits.
func TestPatch_Apply_monotonic(t *testing.T) {
	note := Note{ID: "n1", Text: "a", UpdatedAt: 100}
	text := "b"

	prev := note.UpdatedAt
	for i := 0; i < 3; i++ {
		Patch{Text: &text}.Apply(&note, time.Now())
		if note.UpdatedAt < prev {
			t.Fatalf("UpdatedAt decreased: %d -> %d", prev, note.UpdatedAt)
		}
		prev = note.UpdatedAt
	}
}

// TestPatch_IsZero verifies the empty-patch check.
func TestPatch_IsZero(t *testing.T) {
	if !(Patch{}).IsZero() {
		t.Error("empty patch should be zero")
	}
	s := "x"
	if (Patch{Text: &s}).IsZero() {
		t.Error("patch with text should not be zero")
	}
}

// TestTagByID verifies lookup and the unknown-tag fallback.
func TestTagByID(t *testing.T) {
	if got := TagByID("ideas"); got.Label != "Ideas" || got.Color != "#4caf50" {
		t.Errorf("TagByID(ideas) = %+v", got)
	}
	if got := TagByID("no-such-tag"); got.ID != DefaultTagID {
		t.Errorf("unknown tag should fall back to %q, got %q", DefaultTagID, got.ID)
	}
}

// TestIsAssignable verifies "all" is filter-only.
func TestIsAssignable(t *testing.T) {
	if IsAssignable(TagAllID) {
		t.Error("the all pseudo-tag must not be assignable")
	}
	if !IsAssignable("important") {
		t.Error("important should be assignable")
	}
	if IsAssignable("bogus") {
		t.Error("unknown tags are not assignable")
	}
}

// TestAssignableTags verifies the pseudo-tag is excluded from the set.
func TestAssignableTags(t *testing.T) {
	for _, tag := range AssignableTags() {
		if tag.ID == TagAllID {
			t.Fatal("AssignableTags() contains the all pseudo-tag")
		}
	}
	if len(AssignableTags()) != len(Tags())-1 {
		t.Errorf("AssignableTags() = %d tags, want %d", len(AssignableTags()), len(Tags())-1)
	}
}
