package chess

import (
	"errors"
	"testing"

	cerrors "github.com/simplechess/simplechess-go/internal/errors"
)

// TestNewSquare tests square construction from rank and file.
func TestNewSquare(t *testing.T) {
	tests := []struct {
		name    string
		rank    uint8
		file    byte
		want    string
		wantErr bool
	}{
		{"e4", 4, 'e', "e4", false},
		{"a1", 1, 'a', "a1", false},
		{"h8", 8, 'h', "h8", false},
		{"uppercase file", 8, 'H', "h8", false},
		{"rank 0", 0, 'a', "", true},
		{"rank 9", 9, 'a', "", true},
		{"file z", 1, 'z', "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sq, err := NewSquare(tt.rank, tt.file)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NewSquare(%d, %c) error = nil, want error", tt.rank, tt.file)
				}
				if !errors.Is(err, cerrors.ErrInvalidSquare) {
					t.Errorf("NewSquare error = %v, want ErrInvalidSquare", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSquare(%d, %c) error = %v", tt.rank, tt.file, err)
			}
			if sq.String() != tt.want {
				t.Errorf("NewSquare(%d, %c) = %v, want %s", tt.rank, tt.file, sq, tt.want)
			}
		})
	}
}

// TestParseSquare tests parsing algebraic square text.
func TestParseSquare(t *testing.T) {
	tests := []struct {
		text    string
		want    string
		wantErr bool
	}{
		{"a1", "a1", false},
		{"e4", "e4", false},
		{"H8", "h8", false},
		{"z9", "", true},
		{"", "", true},
		{"a", "", true},
		{"a10", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			sq, err := ParseSquare(tt.text)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseSquare(%q) error = nil, want error", tt.text)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSquare(%q) error = %v", tt.text, err)
			}
			if sq.String() != tt.want {
				t.Errorf("ParseSquare(%q) = %v, want %s", tt.text, sq, tt.want)
			}
		})
	}
}

// TestSquareColor verifies the light/dark parity (a1 is dark).
func TestSquareColor(t *testing.T) {
	tests := []struct {
		text string
		want Color
	}{
		{"a1", Black},
		{"h8", Black},
		{"h1", White},
		{"a8", White},
		{"e4", White},
		{"d4", Black},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			sq, err := ParseSquare(tt.text)
			if err != nil {
				t.Fatalf("ParseSquare(%q) error = %v", tt.text, err)
			}
			if got := sq.Color(); got != tt.want {
				t.Errorf("Square(%s).Color() = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

// TestSquareEquality verifies squares compare by (rank, file).
func TestSquareEquality(t *testing.T) {
	a, _ := NewSquare(4, 'e')
	b, _ := ParseSquare("e4")
	c, _ := ParseSquare("e5")

	if a != b {
		t.Errorf("%v != %v, want equal", a, b)
	}
	if a == c {
		t.Errorf("%v == %v, want different", a, c)
	}
}

// TestSquareOffset tests displacement with boundary clipping.
func TestSquareOffset(t *testing.T) {
	e4, _ := ParseSquare("e4")

	got, ok := e4.Offset(1, 2)
	if !ok || got.String() != "f6" {
		t.Errorf("e4.Offset(1, 2) = %v, %v, want f6 true", got, ok)
	}

	if _, ok := e4.Offset(4, 0); ok {
		t.Error("e4.Offset(4, 0) should fall off the board")
	}

	a1, _ := ParseSquare("a1")
	if _, ok := a1.Offset(-1, 0); ok {
		t.Error("a1.Offset(-1, 0) should fall off the board")
	}
}
