// Package reflow lays resolved Fortran text out under a dialect's column rules.
//
// Every logical line is classified once ([Classify]) as blank, comment,
// labeled statement or plain statement. The classification decides the
// column layout:
//
//   - Comments are never split. In the fixed dialect they move to column 1.
//   - Fixed-form labels are right-justified in columns 1-5 and the statement
//     resumes in column 7.
//   - Fixed-form statements start in column 7 (at least six leading spaces).
//   - Free-form lines keep the indentation the fragment builders gave them.
//
// A line that still exceeds the budget is cut into physical lines. Each cut
// is made right after the rightmost occurrence of the first [Policy]
// delimiter found in the window, or exactly at the window boundary when no
// delimiter fits. Fixed-form continuation lines start with "     &" (the
// marker in column 6); free-form segments end with '&' and the following
// line starts with '&' after the original indentation.
//
// The cuts never drop or add body characters: concatenating the bodies of
// the physical lines yields the original statement.
package reflow
