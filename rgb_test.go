package pixt

import (
	"image/color"
	"testing"
)

func TestIntensity(t *testing.T) {
	tests := []struct {
		c    RGB
		want uint16
	}{
		{RGB{0, 0, 0}, 0},
		{RGB{255, 255, 255}, 255},
		{RGB{255, 0, 0}, 85},
		{RGB{1, 1, 2}, 1},
		{RGB{100, 150, 200}, 150},
	}
	for _, tt := range tests {
		if got := Intensity(tt.c); got != tt.want {
			t.Errorf("Intensity(%v) = %d, want %d", tt.c, got, tt.want)
		}
	}
}

func TestAverage(t *testing.T) {
	got := Average(RGB{255, 1, 10}, RGB{255, 2, 20})
	want := RGB{255, 1, 15}
	if got != want {
		t.Errorf("Average = %v, want %v", got, want)
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		c    RGB
		want string
	}{
		{RGB{0, 0, 0}, "#000000"},
		{RGB{255, 255, 255}, "#FFFFFF"},
		{RGB{10, 11, 12}, "#0A0B0C"},
		{RGB{0x1A, 0x2B, 0x3C}, "#1A2B3C"},
	}
	for _, tt := range tests {
		if got := tt.c.Hex(); got != tt.want {
			t.Errorf("%v.Hex() = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestRGBFromColor(t *testing.T) {
	// Alpha is dropped without darkening the channels.
	got := RGBFromColor(color.NRGBA{R: 100, G: 50, B: 25, A: 128})
	if want := (RGB{100, 50, 25}); got != want {
		t.Errorf("RGBFromColor(translucent) = %v, want %v", got, want)
	}

	got = RGBFromColor(color.Gray{Y: 77})
	if want := (RGB{77, 77, 77}); got != want {
		t.Errorf("RGBFromColor(gray) = %v, want %v", got, want)
	}

	if c := (RGB{1, 2, 3}).Color(); c != (color.RGBA{1, 2, 3, 255}) {
		t.Errorf("Color() = %v", c)
	}
}
