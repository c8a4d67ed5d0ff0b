// Package source prepares the text being annotated and converts offsets
// between the byte positions most tools report and the character positions
// labels are stored in.
package source

import (
	"fmt"
	"strings"
	"unicode/utf8"

	htmltomd "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/dbh/md-annotate/internal/annotate"
)

// ByteRange represents a range of bytes in source content.
type ByteRange struct {
	Start int
	End   int
}

// Runes converts r into character offsets of text. Both ends must fall on
// character boundaries.
func (r ByteRange) Runes(text string) (int, int, error) {
	if r.Start < 0 || r.End > len(text) || r.Start > r.End {
		return 0, 0, fmt.Errorf("%w: bytes [%d,%d) outside text of %d bytes", annotate.ErrInvalidRange, r.Start, r.End, len(text))
	}
	if !boundary(text, r.Start) || !boundary(text, r.End) {
		return 0, 0, fmt.Errorf("%w: bytes [%d,%d) split a character", annotate.ErrInvalidRange, r.Start, r.End)
	}
	start := utf8.RuneCountInString(text[:r.Start])
	return start, start + utf8.RuneCountInString(text[r.Start:r.End]), nil
}

// ByteRangeOf converts character offsets of text back to bytes.
func ByteRangeOf(text string, start, end int) ByteRange {
	r := ByteRange{Start: len(text), End: len(text)}
	i := 0
	for pos := range text {
		if i == start {
			r.Start = pos
		}
		if i == end {
			r.End = pos
			break
		}
		i++
	}
	return r
}

func boundary(text string, pos int) bool {
	return pos == len(text) || utf8.RuneStart(text[pos])
}

// FromHTML converts an HTML document to Markdown so it can be annotated as
// plain text.
func FromHTML(content string) (string, error) {
	md, err := htmltomd.ConvertString(content)
	if err != nil {
		return "", fmt.Errorf("convert html: %w", err)
	}
	return strings.TrimRight(md, "\n") + "\n", nil
}
