// Package fragment builds Fortran source fragments as plain text.
//
// A [Builder] is bound to one [style.Profile] and one [label.Allocator].
// Single-statement methods return one line; block methods compose nested
// bodies, indent them with the profile's block indent, and mint the jump
// target placeholders their statements share:
//
//	b := fragment.New(style.FixedProfile(), label.NewAllocator())
//	loop := b.DoBlock("i", "1", "10", b.Assign("a(i)", "0"))
//	// do __LABEL_1__ i=1, 10
//	// a(i) = 0
//	// __LABEL_1__ continue
//
// Builders never touch the filesystem and never resolve labels. Comment
// markers are taken from the builder's profile when the fragment is built,
// so switching profiles later does not rewrite existing fragments.
package fragment
