package io

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"

	"github.com/matzehuels/macrofor/pkg/errors"
)

// DefaultEncoding is used when no encoding name is given.
const DefaultEncoding = "utf-8"

// codePages covers shorthands that are not IANA aliases.
var codePages = map[string]encoding.Encoding{
	"cp437":  charmap.CodePage437,
	"cp850":  charmap.CodePage850,
	"cp1250": charmap.Windows1250,
	"cp1252": charmap.Windows1252,
	"latin9": charmap.ISO8859_15,
}

// Encoder returns the encoding registered under name.
func Encoder(name string) (encoding.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "", "utf-8", "utf8":
		return unicode.UTF8, nil
	}
	if enc, ok := codePages[key]; ok {
		return enc, nil
	}
	enc, err := ianaindex.IANA.Encoding(key)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidEncoding, err, "unknown encoding %q", name)
	}
	if enc == nil {
		return nil, errors.New(errors.ErrCodeInvalidEncoding, "encoding %q is not supported", name)
	}
	return enc, nil
}

// Encode converts text to enc. A nil enc leaves text as UTF-8.
func Encode(text string, enc encoding.Encoding) ([]byte, error) {
	if enc == nil || enc == unicode.UTF8 {
		return []byte(text), nil
	}
	out, err := enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidEncoding, err, "text cannot be represented in the output encoding")
	}
	return out, nil
}
