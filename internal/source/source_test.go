package source

import (
	"errors"
	"strings"
	"testing"

	"github.com/dbh/md-annotate/internal/annotate"
)

func TestByteRangeRunes(t *testing.T) {
	text := "naïve café"
	tests := []struct {
		name       string
		r          ByteRange
		start, end int
		wantErr    bool
	}{
		{"ascii prefix", ByteRange{0, 2}, 0, 2, false},
		{"spans multibyte", ByteRange{1, 5}, 1, 4, false},
		{"to end", ByteRange{7, len(text)}, 6, 10, false},
		{"splits character", ByteRange{0, 3}, 0, 0, true},
		{"past end", ByteRange{0, 99}, 0, 0, true},
		{"reversed", ByteRange{4, 2}, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := tt.r.Runes(text)
			if tt.wantErr {
				if !errors.Is(err, annotate.ErrInvalidRange) {
					t.Fatalf("err = %v, want ErrInvalidRange", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if start != tt.start || end != tt.end {
				t.Fatalf("Runes() = %d,%d want %d,%d", start, end, tt.start, tt.end)
			}
			if back := ByteRangeOf(text, start, end); back != tt.r {
				t.Fatalf("ByteRangeOf() = %#v, want %#v", back, tt.r)
			}
		})
	}
}

func TestFromHTML(t *testing.T) {
	md, err := FromHTML("<p>Hello <strong>world</strong></p>")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(md, "**world**") || !strings.HasSuffix(md, "\n") {
		t.Fatalf("FromHTML() = %q", md)
	}
}
