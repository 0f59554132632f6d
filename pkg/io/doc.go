// Package io persists generated source text.
//
// # Encodings
//
// [Encoder] maps a character set name to a [encoding.Encoding]. Names are
// looked up in the IANA registry, so "utf-8", "iso-8859-1", "latin1" and
// "windows-1252" all work, plus a few common code page shorthands such as
// "cp1252". The empty name selects UTF-8.
//
// # Writing
//
// [WriteFile] creates the destination's parent directories, encodes the text
// and replaces the destination atomically: the bytes go to a temporary file in
// the same directory, which is synced and renamed over the target. On failure
// the temporary file is removed and the destination is left untouched.
// Filesystem failures are reported as OUTPUT_WRITE_FAILURE errors carrying the
// destination path; text that the encoding cannot represent is reported as
// INVALID_ENCODING.
//
// [encoding.Encoding]: https://pkg.go.dev/golang.org/x/text/encoding#Encoding
package io
