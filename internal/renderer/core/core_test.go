package core

import "testing"

func TestColorFromHex(t *testing.T) {
	tests := []struct {
		hex     string
		want    Color
		wantErr bool
	}{
		{"#FF0000", Color{R: 255}, false},
		{"00FF00", Color{G: 255}, false},
		{"#ABC", Color{R: 0xAA, G: 0xBB, B: 0xCC}, false},
		{"#12345", Color{}, true},
		{"#GGHHII", Color{}, true},
		{"", Color{}, true},
	}

	for _, tt := range tests {
		got, err := ColorFromHex(tt.hex)
		if (err != nil) != tt.wantErr {
			t.Errorf("ColorFromHex(%q) err = %v", tt.hex, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ColorFromHex(%q) = %+v, want %+v", tt.hex, got, tt.want)
		}
	}
}

func TestColorString(t *testing.T) {
	if got := ColorDefault.String(); got != "default" {
		t.Errorf("default = %q", got)
	}
	if got := ColorFromIndex(3).String(); got != "idx(3)" {
		t.Errorf("indexed = %q", got)
	}
	if got := ColorFromRGB(1, 2, 3).String(); got != "#010203" {
		t.Errorf("rgb = %q", got)
	}
}

func TestStyleBuilders(t *testing.T) {
	s := DefaultStyle().WithForeground(ColorRed).Bold().Underline()

	if s.Foreground != ColorRed {
		t.Errorf("foreground = %+v", s.Foreground)
	}
	if !s.Attributes.Has(AttrBold) || !s.Attributes.Has(AttrUnderline) {
		t.Errorf("attributes = %v", s.Attributes)
	}
	if s.Attributes.Has(AttrReverse) {
		t.Error("reverse should not be set")
	}
	if !s.Equals(s) {
		t.Error("style should equal itself")
	}
	if s.Equals(DefaultStyle()) {
		t.Error("styled should differ from default")
	}
}

func TestScreenRect(t *testing.T) {
	r := RectFromSize(2, 3, 4, 5)

	if r.Height() != 4 || r.Width() != 5 {
		t.Errorf("size = %dx%d", r.Width(), r.Height())
	}
	if !r.Contains(2, 3) || !r.Contains(5, 7) {
		t.Error("corners should be inside")
	}
	if r.Contains(6, 3) || r.Contains(2, 8) {
		t.Error("exclusive edges should be outside")
	}
	if r.IsEmpty() {
		t.Error("rect should not be empty")
	}
	if !(ScreenRect{Top: 1, Bottom: 1, Left: 0, Right: 5}).IsEmpty() {
		t.Error("zero-height rect should be empty")
	}
}
