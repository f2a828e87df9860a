/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: reader.go
Description: Input decoding for the sniffer. Turns a byte stream into the character
text the abstraction works on: byte order marks are honoured and removed, invalid
UTF-8 is rejected rather than guessed at, and the text can be capped to a number of
characters so large files are sniffed from their head only. An explicit encoding can
be named for input that is not UTF-8; it is never guessed.
*/

package textio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	// ErrDecode is returned when the input is not valid UTF-8
	ErrDecode = errors.New("input is not valid UTF-8")
	// ErrUnknownEncoding is returned for encoding names that cannot be resolved
	ErrUnknownEncoding = errors.New("unknown encoding")
)

// Options controls how input is read
type Options struct {
	MaxChars int    // Keep at most this many characters, 0 = all
	Encoding string // WHATWG encoding label, e.g. "windows-1252"; empty = UTF-8
}

// ReadText reads all of r and returns it as validated text.
//
// A UTF-8 BOM is dropped; UTF-16 input with a BOM is converted to UTF-8. Any other
// input must be UTF-8 unless opts.Encoding names its encoding.
func ReadText(r io.Reader, opts Options) (string, error) {
	fallback, err := decoder(opts.Encoding)
	if err != nil {
		return "", err
	}
	data, err := io.ReadAll(transform.NewReader(r, unicode.BOMOverride(fallback)))
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	if off := invalidOffset(data); off >= 0 {
		return "", fmt.Errorf("%w: invalid byte 0x%02x at offset %d", ErrDecode, data[off], off)
	}
	return Truncate(string(data), opts.MaxChars), nil
}

// ReadFile opens path and reads it with ReadText
func ReadFile(path string, opts Options) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return ReadText(f, opts)
}

// decoder resolves an encoding label to a transformer producing UTF-8
func decoder(label string) (transform.Transformer, error) {
	if label == "" {
		return transform.Nop, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
	}
	return enc.NewDecoder(), nil
}

// Truncate returns the first n characters of s, or s itself when n <= 0
func Truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// invalidOffset returns the offset of the first invalid UTF-8 byte, -1 if none
func invalidOffset(data []byte) int {
	if utf8.Valid(data) {
		return -1
	}
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
