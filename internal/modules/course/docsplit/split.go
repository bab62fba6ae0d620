// Package docsplit cuts a course document into per-video sections.
package docsplit

import (
	"regexp"
	"strings"
)

// videoMarker matches a line that opens a new video section, e.g. "Video 3" or "  Video 2.1: Intro".
var videoMarker = regexp.MustCompile(`(?m)^\s*Video\s+\S+`)

// Split returns the trimmed, non-empty sections of text. Each section starts at a video
// marker line; text before the first marker forms its own section. A document without
// markers is returned as a single section.
func Split(text string) []string {
	locs := videoMarker.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		if s := strings.TrimSpace(text); s != "" {
			return []string{s}
		}
		return []string{}
	}
	bounds := make([]int, 0, len(locs)+2)
	bounds = append(bounds, 0)
	for _, l := range locs {
		bounds = append(bounds, l[0])
	}
	bounds = append(bounds, len(text))

	out := make([]string, 0, len(bounds)-1)
	for i := 0; i+1 < len(bounds); i++ {
		if s := strings.TrimSpace(text[bounds[i]:bounds[i+1]]); s != "" {
			out = append(out, s)
		}
	}
	return out
}
