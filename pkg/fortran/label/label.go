// Package label mints symbolic jump-target placeholders and resolves them
// into sequential Fortran statement labels.
//
// Fragment builders embed a placeholder (e.g. "__LABEL_3__") wherever a
// statement needs a label whose final number is not yet known. Once all
// fragments of a run are concatenated, [Resolve] numbers the distinct
// placeholders 100, 200, 300, ... in the order they first appear in the text.
package label

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// Prefix starts every placeholder token.
	Prefix = "__LABEL_"
	// Suffix ends every placeholder token.
	Suffix = "__"

	// Step is both the first resolved label and the distance between labels.
	Step = 100
)

var (
	tokenPattern = regexp.MustCompile(`__LABEL_(\d+)__`)
	remnant      = regexp.MustCompile(`__LABEL_\w*`)
)

// Token returns the placeholder for sequence number n.
func Token(n int) string {
	return Prefix + strconv.Itoa(n) + Suffix
}

// Allocator hands out unique placeholders for one generation run.
// It is not safe for concurrent use; each run owns its own Allocator.
type Allocator struct {
	n int
}

// NewAllocator returns an allocator whose first token is "__LABEL_1__".
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Next returns a new placeholder and advances the counter.
func (a *Allocator) Next() string {
	a.n++
	return Token(a.n)
}

// Reset sets the counter back to zero.
func (a *Allocator) Reset() {
	a.n = 0
}

// Count returns the number of placeholders minted since the last reset.
func (a *Allocator) Count() int {
	return a.n
}

// Assignment records the label chosen for one placeholder.
type Assignment struct {
	Token string
	Label int
}

// Resolve replaces every placeholder in text with its sequential label.
// The i-th distinct placeholder (by first appearance) becomes 100*i.
// Text without placeholders is returned unchanged.
func Resolve(text string) (string, []Assignment) {
	if !strings.Contains(text, Prefix) {
		return text, nil
	}

	var order []Assignment
	labels := make(map[string]string)
	for _, tok := range tokenPattern.FindAllString(text, -1) {
		if _, seen := labels[tok]; seen {
			continue
		}
		n := Step * (len(order) + 1)
		labels[tok] = strconv.Itoa(n)
		order = append(order, Assignment{Token: tok, Label: n})
	}
	if len(order) == 0 {
		return text, nil
	}

	out := tokenPattern.ReplaceAllStringFunc(text, func(tok string) string {
		return labels[tok]
	})
	return out, order
}

// Unresolved returns the placeholder remnants left in resolved text, such as
// "__LABEL_x__" or a truncated "__LABEL_1". Call it on the output of [Resolve];
// an empty result means every placeholder was replaced.
func Unresolved(text string) []string {
	if !strings.Contains(text, Prefix) {
		return nil
	}
	return remnant.FindAllString(text, -1)
}
