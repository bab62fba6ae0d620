package course

import (
	"strings"
	"unicode"
)

// WordCount counts whitespace separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// BoundaryWords returns the first and last words of text with surrounding punctuation
// trimmed. Both are empty for blank text.
func BoundaryWords(text string) (first, last string) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return "", ""
	}
	return trimPunct(words[0]), trimPunct(words[len(words)-1])
}

func trimPunct(w string) string {
	out := strings.TrimFunc(w, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
	if out == "" {
		return w
	}
	return out
}

// DedupeTags drops tags whose name repeats an earlier one (case-insensitive) and
// blank names. Order is preserved.
func DedupeTags(tags []Tag) []Tag {
	if len(tags) == 0 {
		return []Tag{}
	}
	seen := make(map[string]bool, len(tags))
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		key := normTag(t.Name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}

// SubsetOf keeps only those tags whose name appears in allowed, returning the allowed
// record so ids supplied by the caller are preserved.
func SubsetOf(tags []Tag, allowed []Tag) []Tag {
	index := make(map[string]Tag, len(allowed))
	for _, a := range allowed {
		if k := normTag(a.Name); k != "" {
			if _, ok := index[k]; !ok {
				index[k] = a
			}
		}
	}
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		if a, ok := index[normTag(t.Name)]; ok {
			out = append(out, a)
		}
	}
	return DedupeTags(out)
}

// CloneTags returns a copy so callers can stamp per-question fields without aliasing.
func CloneTags(tags []Tag) []Tag {
	if tags == nil {
		return []Tag{}
	}
	out := make([]Tag, len(tags))
	copy(out, tags)
	return out
}

func TagNames(tags []Tag) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.Name)
	}
	return out
}

// TagRenames maps each source tag name to the name at the same position in translated.
func TagRenames(src []Tag, translated []string) map[string]string {
	out := make(map[string]string, len(src))
	for i, t := range src {
		if i < len(translated) {
			out[normTag(t.Name)] = translated[i]
		}
	}
	return out
}

// RenameTags copies tags, swapping in renamed names. Ids and tags without a rename are kept.
func RenameTags(tags []Tag, renames map[string]string) []Tag {
	out := CloneTags(tags)
	for i := range out {
		if n, ok := renames[normTag(out[i].Name)]; ok {
			out[i].Name = n
		}
	}
	return out
}

func normTag(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
