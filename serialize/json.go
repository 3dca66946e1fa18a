// Package serialize adapts a bitstream.Bits buffer to the two interchange
// formats place-and-route tooling expects: a JSON document of hex words,
// and a PIC assembly source fragment of "dw 0xNNNN;" directives.
//
// Grounded on original_source/bitstream.py's _load_bitstream_from_json /
// _save_bitstream_to_json / save_bitstream_s: the buffer is read in
// reversed bit order and sliced into 16-bit groups read LSB-first, so
// word w's bit k is buffer bit 16*(wordCount-1-w)+k. Word 0 is the
// highest-addressed group of the buffer, word wordCount-1 the lowest.
package serialize

import (
	"encoding/json"
	"io"

	"github.com/clbtoolchain/clbfab/bitstream"
	"github.com/clbtoolchain/clbfab/clberr"
)

const wordCount = bitstream.Length / 16

// jsonDoc is the on-disk shape: {"bitstream": ["0000", "1a2b", ...]},
// 102 lowercase 4-digit hex words, word 0 holding the buffer's highest
// 16 bits (reversed relative to buffer address).
type jsonDoc struct {
	Bitstream []string `json:"bitstream"`
}

// WriteJSON serializes a buffer as the {"bitstream": [...]} document.
func WriteJSON(w io.Writer, b *bitstream.Bits) error {
	doc := jsonDoc{Bitstream: make([]string, wordCount)}
	for wi := 0; wi < wordCount; wi++ {
		word, err := wordAt(b, wi)
		if err != nil {
			return err
		}
		doc.Bitstream[wi] = hex4(word)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// ReadJSON parses a {"bitstream": [...]} (or bare array) document into a
// fresh buffer. Returns LengthMismatch if the word count is not exactly
// 102.
func ReadJSON(r io.Reader) (*bitstream.Bits, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, clberr.NewIOFailure("<json>", err)
	}

	var doc jsonDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		// Fall back to a bare JSON array of words.
		var words []string
		if err2 := json.Unmarshal(raw, &words); err2 != nil {
			return nil, clberr.NewParseError(string(raw), "invalid JSON bitstream document")
		}
		doc.Bitstream = words
	}

	if len(doc.Bitstream) != wordCount {
		return nil, clberr.NewLengthMismatch(len(doc.Bitstream), wordCount)
	}

	b := &bitstream.Bits{}
	for wi, w := range doc.Bitstream {
		val, err := parseHex4(w)
		if err != nil {
			return nil, clberr.NewParseError(w, "word is not a 16-bit hexadecimal literal")
		}
		if err := setWordAt(b, wi, val); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func wordAt(b *bitstream.Bits, wi int) (uint16, error) {
	base := 16 * (wordCount - 1 - wi)
	var v uint16
	for k := 0; k < 16; k++ {
		bit, err := b.GetBit(base + k)
		if err != nil {
			return 0, err
		}
		if bit {
			v |= 1 << uint(k)
		}
	}
	return v, nil
}

func setWordAt(b *bitstream.Bits, wi int, v uint16) error {
	base := 16 * (wordCount - 1 - wi)
	for k := 0; k < 16; k++ {
		if err := b.SetBit(base+k, (v>>uint(k))&1 != 0); err != nil {
			return err
		}
	}
	return nil
}

const hexDigits = "0123456789abcdef"

func hex4(v uint16) string {
	buf := [4]byte{}
	for i := 3; i >= 0; i-- {
		buf[i] = hexDigits[v&0xF]
		v >>= 4
	}
	return string(buf[:])
}

func parseHex4(s string) (uint16, error) {
	var v uint16
	for i := 0; i < len(s); i++ {
		c := s[i]
		var d uint16
		switch {
		case c >= '0' && c <= '9':
			d = uint16(c - '0')
		case c >= 'a' && c <= 'f':
			d = uint16(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = uint16(c-'A') + 10
		default:
			return 0, clberr.NewParseError(s, "not a hexadecimal digit")
		}
		v = v<<4 | d
	}
	return v, nil
}
