// Package search provides substring matching and markup-safe highlighting
// for note text.
package search

import (
	"html"
	"regexp"
	"strings"
)

// Span is a byte range [Start, End) where the search term matched.
type Span struct {
	Start int
	End   int
}

// Segment is a run of note text, flagged when it is a match. The presentation
// layer decides how to render emphasis; the text itself is untouched data.
type Segment struct {
	Text  string
	Match bool
}

// HighlightOptions controls the rendered form produced by Highlight.
type HighlightOptions struct {
	// TagOpen is the marker emitted before each match (default: <mark>)
	TagOpen string

	// TagClose is the marker emitted after each match (default: </mark>)
	TagClose string
}

// DefaultHighlightOptions returns sensible defaults for highlighting.
func DefaultHighlightOptions() *HighlightOptions {
	return &HighlightOptions{
		TagOpen:  "<mark>",
		TagClose: "</mark>",
	}
}

// pattern compiles a case-insensitive literal matcher for term. Regex
// metacharacters in the term are escaped so user input is always a literal.
// Returns nil for a blank term.
func pattern(term string) *regexp.Regexp {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	return regexp.MustCompile("(?i)" + regexp.QuoteMeta(term))
}

// Spans returns the case-insensitive substring matches of term within text as
// byte ranges. A blank term yields no spans.
func Spans(text, term string) []Span {
	re := pattern(term)
	if re == nil || text == "" {
		return nil
	}

	var spans []Span
	for _, m := range re.FindAllStringIndex(text, -1) {
		spans = append(spans, Span{Start: m[0], End: m[1]})
	}
	return spans
}

// Segments splits text into alternating literal and match runs. With a blank
// term the whole text comes back as a single literal segment.
func Segments(text, term string) []Segment {
	if text == "" {
		return nil
	}

	spans := Spans(text, term)
	if len(spans) == 0 {
		return []Segment{{Text: text}}
	}

	var segs []Segment
	pos := 0
	for _, s := range spans {
		if s.Start > pos {
			segs = append(segs, Segment{Text: text[pos:s.Start]})
		}
		segs = append(segs, Segment{Text: text[s.Start:s.End], Match: true})
		pos = s.End
	}
	if pos < len(text) {
		segs = append(segs, Segment{Text: text[pos:]})
	}
	return segs
}

// Highlight renders text with each match wrapped in the configured markers.
// All note text is HTML-escaped before the markers are spliced in, so note
// content can never inject structure into the rendered output.
func Highlight(text, term string, opts *HighlightOptions) string {
	if opts == nil {
		opts = DefaultHighlightOptions()
	}

	var b strings.Builder
	for _, seg := range Segments(text, term) {
		if seg.Match {
			b.WriteString(opts.TagOpen)
			b.WriteString(html.EscapeString(seg.Text))
			b.WriteString(opts.TagClose)
		} else {
			b.WriteString(html.EscapeString(seg.Text))
		}
	}
	return b.String()
}
