package reflow

import (
	"strings"
	"unicode/utf8"
)

// Policy is the ordered list of delimiters the engine prefers to cut after.
// Earlier entries win over later ones, regardless of position.
type Policy []string

// DefaultPolicy returns the standard delimiter preference.
func DefaultPolicy() Policy {
	return Policy{", ", ",", " + ", " - ", " * ", "/", "(", " .and. ", " .or. "}
}

// cut returns how many runes of window go on the current physical line.
// The result is always in [1, len(window)].
func (p Policy) cut(window []rune) int {
	s := string(window)
	for _, delim := range p {
		if delim == "" {
			continue
		}
		idx := strings.LastIndex(s, delim)
		if idx < 0 {
			continue
		}
		pos := utf8.RuneCountInString(s[:idx]) + utf8.RuneCountInString(delim)
		if pos > 0 && pos <= len(window) {
			return pos
		}
	}
	return len(window)
}
