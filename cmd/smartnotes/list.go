package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yilun-hsu/smartnotes/internal/models"
	"github.com/yilun-hsu/smartnotes/internal/search"
	"github.com/yilun-hsu/smartnotes/internal/view"
)

var (
	listTag    string
	listSearch string
)

var (
	pinStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c757d"))
	matchStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, pinned first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		a, err := openApp()
		if err != nil {
			fatal("opening collection", err)
		}
		defer a.Close()

		projection := view.Project(a.store.All(), listTag, listSearch)
		switch projection.Empty {
		case view.EmptyNoNotes:
			fmt.Println("No notes yet. Add one with: smartnotes add")
			return
		case view.EmptyNoMatches:
			fmt.Println("No notes match the current filter.")
			return
		}

		for _, note := range projection.Notes {
			fmt.Println(renderNote(note, listSearch))
		}
	},
}

func renderNote(note models.Note, term string) string {
	tag := models.TagByID(note.Tag)
	tagStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(tag.Color))

	var sb strings.Builder
	if note.Pinned {
		sb.WriteString(pinStyle.Render("📌 "))
	}
	sb.WriteString(dimStyle.Render(note.ID))
	sb.WriteString("  ")
	sb.WriteString(tagStyle.Render("[" + tag.Label + "]"))
	sb.WriteString("  ")
	sb.WriteString(renderText(firstLine(note.Text), term))
	if note.Image != "" {
		sb.WriteString(dimStyle.Render("  (image)"))
	}
	sb.WriteString("  ")
	sb.WriteString(dimStyle.Render(note.UpdatedAtTime().Format(time.DateTime)))
	return sb.String()
}

// renderText emphasises the portions of text matched by the search term.
func renderText(text, term string) string {
	if strings.TrimSpace(term) == "" {
		return text
	}
	var sb strings.Builder
	for _, seg := range search.Segments(text, term) {
		if seg.Match {
			sb.WriteString(matchStyle.Render(seg.Text))
		} else {
			sb.WriteString(seg.Text)
		}
	}
	return sb.String()
}

func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i]
	}
	return text
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listTag, "tag", models.TagAllID, "Filter notes by tag")
	listCmd.Flags().StringVar(&listSearch, "search", "", "Filter notes by search term")
}
