package kakudump

import (
	"strings"
	"unicode/utf8"
)

// SiteSuffix is appended by the site to every work page title.
const SiteSuffix = " - カクヨム"

const (
	authorOpen  = '（'
	authorClose = '）'
)

// Title is a work title split into its name and the author annotation
// the site puts in trailing full-width brackets.
type Title struct {
	Name string

	// Author is nil when the title carries no author annotation.
	// An empty bracket pair yields a non-nil empty string.
	Author *string
}

// SplitTitle trims raw, removes the site suffix and splits off the last
// full-width bracket pair as the author. Author names may contain nested
// bracket pairs of their own. Earlier, independent bracket pairs stay part
// of the name.
//
// The split never fails: unbalanced input degrades to the best guess
// described on openingBracket, or to no author at all.
func SplitTitle(raw string) Title {
	name := strings.TrimSuffix(strings.TrimSpace(raw), SiteSuffix)

	end := strings.LastIndex(name, string(authorClose))
	if end < 0 {
		return Title{Name: name}
	}

	start, ok := openingBracket(name[:end])
	if !ok {
		return Title{Name: name}
	}

	author := name[start+utf8.RuneLen(authorOpen) : end]
	return Title{Name: name[:start], Author: &author}
}

// openingBracket walks s backward and returns the byte offset of the
// opening bracket that balances a closing bracket located right after s.
// Each closing bracket met on the way requires one more opening bracket.
//
// If s runs out of opening brackets before the count balances, the last
// opening bracket located is returned anyway. This is a best-effort
// heuristic for malformed nesting, not a strict parser. ok is false only
// when s contains no opening bracket at all.
func openingBracket(s string) (pos int, ok bool) {
	depth := 1
	pos = -1
	for i := len(s); i > 0; {
		r, size := utf8.DecodeLastRuneInString(s[:i])
		i -= size

		switch r {
		case authorClose:
			depth++
		case authorOpen:
			pos = i
			depth--
			if depth == 0 {
				return pos, true
			}
		}
	}
	return pos, pos >= 0
}
