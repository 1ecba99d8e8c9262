// Package xmldoc reads the XML tables exported by Liciel. The exporter
// declares (or omits) its encoding inconsistently, so bytes are decoded
// heuristically before parsing, and field lookups never fail: a missing
// tag reads as an empty string.
package xmldoc

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// replacementThreshold is the number of U+FFFD runes in a UTF-8 reading
// from which a Windows-1252 reading is attempted.
const replacementThreshold = 3

var errUnsupportedEncoding = errors.New("unsupported encoding")

var encodingDecl = regexp.MustCompile(`(?i)encoding\s*=\s*["']([^"']*)["']`)

// Decode turns the raw bytes of an exported file into text.
//
// A declared non UTF-8 encoding is honoured (Windows-1252 when the name is
// unknown). Without a declaration the bytes are read as UTF-8, and read
// again as Windows-1252 when that yields strictly fewer replacement
// characters than a UTF-8 reading with at least three of them.
func Decode(raw []byte) string {
	candidateA := decodeUTF8(raw)

	if declared := DeclaredEncoding(candidateA); declared != "" && !isUTF8(declared) {
		text, err := decodeAs(declared, raw)
		if err != nil {
			return decodeWindows1252(raw)
		}
		return text
	}

	countA := ReplacementCount(candidateA)
	if countA < replacementThreshold {
		return candidateA
	}
	candidateB := decodeWindows1252(raw)
	if ReplacementCount(candidateB) < countA {
		return candidateB
	}
	return candidateA
}

// DeclaredEncoding returns the value of the first encoding="..." found in
// text, or "".
func DeclaredEncoding(text string) string {
	m := encodingDecl.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// ReplacementCount counts U+FFFD runes in s.
func ReplacementCount(s string) int {
	return strings.Count(s, "\uFFFD")
}

func isUTF8(name string) bool {
	return strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8")
}

func decodeUTF8(raw []byte) string {
	out, err := unicode.UTF8BOM.NewDecoder().Bytes(raw)
	if err != nil {
		return strings.ToValidUTF8(string(raw), "\uFFFD")
	}
	return string(out)
}

func decodeWindows1252(raw []byte) string {
	out, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(out)
}

func decodeAs(name string, raw []byte) (string, error) {
	enc, err := lookupEncoding(name)
	if err != nil {
		return "", err
	}
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	if enc, err := htmlindex.Get(name); err == nil {
		return enc, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, fmt.Errorf("%w: %s", errUnsupportedEncoding, name)
	}
	return enc, nil
}
