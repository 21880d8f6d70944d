package parser

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// DetectAndDecode converts data to UTF-8 and reports the encoding it was read
// as. A BOM selects UTF-8 or UTF-16; BOM-less input that is not valid UTF-8 is
// read as Latin-1.
func DetectAndDecode(data []byte) ([]byte, string, error) {
	var (
		enc  encoding.Encoding
		name string
	)

	switch {
	case bytes.HasPrefix(data, bomUTF8):
		enc, name = unicode.UTF8BOM, "utf-8-bom"
	case bytes.HasPrefix(data, bomUTF16LE):
		enc, name = unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM), "utf-16le"
	case bytes.HasPrefix(data, bomUTF16BE):
		enc, name = unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM), "utf-16be"
	case utf8.Valid(data):
		return data, "utf-8", nil
	default:
		enc, name = charmap.ISO8859_1, "latin-1"
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, "", fmt.Errorf("%s decode failed: %w", name, err)
	}
	return decoded, name, nil
}
