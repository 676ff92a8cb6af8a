package processing

import "strings"

// SegmentKind identifies where a narration segment came from.
type SegmentKind string

const (
	SegmentTitle   SegmentKind = "title"
	SegmentBody    SegmentKind = "body"
	SegmentComment SegmentKind = "comment"
)

// TextSegment is one narration unit: one slide, one audio clip.
type TextSegment struct {
	Index int
	Text  string
	Kind  SegmentKind
}

// SplitSegments breaks text into chunks of at most maxWords words,
// preferring to cut at a sentence boundary. Once a chunk reaches the
// word limit it is cut early at the last ". ", "? " or "! " inside it
// when the tail after that boundary is short, so sentences are not
// left dangling across segments. A chunk with no usable boundary is
// cut at the word limit, and text that never reaches the limit stays
// one segment.
func SplitSegments(text string, maxWords int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if maxWords <= 0 {
		maxWords = 1
	}

	var segments []string
	carry := ""
	i := 0
	for i < len(words) || carry != "" {
		segText := carry
		carry = ""
		for i < len(words) && wordCount(segText) < maxWords {
			if segText == "" {
				segText = words[i]
			} else {
				segText += " " + words[i]
			}
			i++
		}

		if wordCount(segText) >= maxWords {
			splitPos := lastBoundary(segText)
			// Only honor the boundary when the tail past it is short,
			// measured in characters against half the word budget.
			if splitPos > 0 && float64(len(segText)-(splitPos+1)) < float64(maxWords)/2 {
				segments = append(segments, strings.TrimSpace(segText[:splitPos+1]))
				if splitPos+2 <= len(segText) {
					carry = strings.TrimSpace(segText[splitPos+2:])
				}
			} else {
				segments = append(segments, segText)
			}
		} else if segText != "" {
			segments = append(segments, segText)
		}

		if i >= len(words) && carry != "" {
			segments = append(segments, carry)
			carry = ""
		}
	}
	return segments
}

// SegmentContent turns a post into an ordered narration plan: the title
// as its own segment, the body split by sentence heuristic, then the
// comments one segment each.
func SegmentContent(title, body string, comments []string, maxWords int) []TextSegment {
	var out []TextSegment
	add := func(text string, kind SegmentKind) {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		out = append(out, TextSegment{Index: len(out), Text: text, Kind: kind})
	}

	add(title, SegmentTitle)
	for _, chunk := range SplitSegments(body, maxWords) {
		add(chunk, SegmentBody)
	}
	for _, c := range comments {
		add(c, SegmentComment)
	}
	return out
}

// lastBoundary finds the rightmost sentence terminator followed by a
// space, returning the index of the terminator or -1.
func lastBoundary(s string) int {
	pos := -1
	for _, sep := range []string{". ", "? ", "! "} {
		if p := strings.LastIndex(s, sep); p > pos {
			pos = p
		}
	}
	return pos
}

func wordCount(s string) int {
	if s == "" {
		return 0
	}
	return len(strings.Fields(s))
}
