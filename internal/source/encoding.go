package source

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Encoding names the byte encoding of source files on disk.
type Encoding uint8

const (
	EncodingUTF8 Encoding = iota
	// EncodingWindows1252 is the code page the game client uses for strings.
	EncodingWindows1252
)

func (e Encoding) String() string {
	switch e {
	case EncodingUTF8:
		return "utf-8"
	case EncodingWindows1252:
		return "windows-1252"
	}
	return "unknown"
}

// ParseEncoding maps a manifest value onto an Encoding. Empty means UTF-8.
func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return EncodingUTF8, nil
	case "windows-1252", "cp1252":
		return EncodingWindows1252, nil
	}
	return EncodingUTF8, fmt.Errorf("unsupported source encoding %q", name)
}

func decode(content []byte, enc Encoding) ([]byte, error) {
	switch enc {
	case EncodingWindows1252:
		return charmap.Windows1252.NewDecoder().Bytes(content)
	case EncodingUTF8:
		return content, nil
	}
	return nil, fmt.Errorf("unsupported encoding %d", enc)
}
