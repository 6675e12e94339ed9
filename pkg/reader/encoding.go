package reader

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// ErrInvalidSequence is returned by Encoding.Decode when the input is not
// valid in that encoding. It is the only decode failure that lets the reader
// move on to the next encoding.
var ErrInvalidSequence = errors.New("invalid byte sequence")

// Encoding decodes raw file bytes into text.
type Encoding interface {
	Name() string
	Decode(b []byte) (string, error)
}

// DefaultEncodingNames is the fallback order used when none is configured.
var DefaultEncodingNames = []string{"utf-8", "latin-1", "cp1252"}

// DefaultEncodings returns the encodings named by DefaultEncodingNames.
func DefaultEncodings() []Encoding {
	return []Encoding{UTF8, Latin1, Windows1252}
}

// Built-in encodings.
var (
	UTF8        Encoding = utf8Encoding{}
	ASCII       Encoding = asciiEncoding{}
	Latin1      Encoding = singleByte{name: "latin-1", cm: charmap.ISO8859_1}
	Windows1252 Encoding = singleByte{name: "cp1252", cm: charmap.Windows1252}
)

var aliases = map[string]Encoding{
	"utf-8":        UTF8,
	"utf8":         UTF8,
	"ascii":        ASCII,
	"us-ascii":     ASCII,
	"latin-1":      Latin1,
	"latin1":       Latin1,
	"iso-8859-1":   Latin1,
	"cp1252":       Windows1252,
	"windows-1252": Windows1252,
}

// LookupEncoding resolves an encoding by name. Common aliases are resolved
// directly; anything else is looked up in the IANA registry.
func LookupEncoding(name string) (Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if enc, ok := aliases[key]; ok {
		return enc, nil
	}

	enc, err := ianaindex.IANA.Encoding(key)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	if enc == unicode.UTF8 {
		return UTF8, nil
	}
	if cm, ok := enc.(*charmap.Charmap); ok {
		return singleByte{name: key, cm: cm}, nil
	}
	return transformEncoding{name: key, enc: enc}, nil
}

// LookupEncodings resolves names in order.
func LookupEncodings(names []string) ([]Encoding, error) {
	encs := make([]Encoding, 0, len(names))
	for _, name := range names {
		enc, err := LookupEncoding(name)
		if err != nil {
			return nil, err
		}
		encs = append(encs, enc)
	}
	return encs, nil
}

type utf8Encoding struct{}

func (utf8Encoding) Name() string { return "utf-8" }

func (utf8Encoding) Decode(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", ErrInvalidSequence
	}
	return string(b), nil
}

type asciiEncoding struct{}

func (asciiEncoding) Name() string { return "ascii" }

func (asciiEncoding) Decode(b []byte) (string, error) {
	for i, c := range b {
		if c >= utf8.RuneSelf {
			return "", fmt.Errorf("%w: byte 0x%02x at offset %d", ErrInvalidSequence, c, i)
		}
	}
	return string(b), nil
}

// singleByte decodes with a charmap, rejecting bytes the charmap leaves
// undefined.
type singleByte struct {
	name string
	cm   *charmap.Charmap
}

func (s singleByte) Name() string { return s.name }

func (s singleByte) Decode(b []byte) (string, error) {
	var sb strings.Builder
	sb.Grow(len(b))
	for i, c := range b {
		r := s.cm.DecodeByte(c)
		if r == utf8.RuneError {
			return "", fmt.Errorf("%w: byte 0x%02x at offset %d", ErrInvalidSequence, c, i)
		}
		sb.WriteRune(r)
	}
	return sb.String(), nil
}

// transformEncoding covers multi-byte encodings from x/text. Their decoders
// substitute U+FFFD for malformed input, so a replacement character in the
// output counts as a failed decode.
type transformEncoding struct {
	name string
	enc  encoding.Encoding
}

func (t transformEncoding) Name() string { return t.name }

func (t transformEncoding) Decode(b []byte) (string, error) {
	out, err := t.enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSequence, err)
	}
	if bytes.ContainsRune(out, utf8.RuneError) {
		return "", ErrInvalidSequence
	}
	return string(out), nil
}
