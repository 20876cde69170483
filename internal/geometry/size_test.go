package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Size
		wantErr bool
	}{
		{name: "empty", input: "", want: Size{}},
		{name: "pixels", input: "800", want: Pixels(800)},
		{name: "zero pixels", input: "0", want: Pixels(0)},
		{name: "fraction", input: "0.3", want: Fraction(0.3)},
		{name: "whole fraction", input: "1.0", want: Fraction(1)},
		{name: "percentage", input: "25%", want: Fraction(0.25)},
		{name: "padded", input: " 640 ", want: Pixels(640)},
		{name: "negative pixels", input: "-5", wantErr: true},
		{name: "negative fraction", input: "-0.5", wantErr: true},
		{name: "garbage", input: "wide", wantErr: true},
		{name: "bad percentage", input: "x%", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSize(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.Kind, got.Kind)
			assert.Equal(t, tt.want.Pixels, got.Pixels)
			assert.InDelta(t, tt.want.Fraction, got.Fraction, 1e-9)
		})
	}
}

func TestResolve_PixelsVerbatim(t *testing.T) {
	for _, p := range []int{0, 1, 576, 800, 5000} {
		for _, screen := range []int{0, 1080, 1920, 3840} {
			for _, f := range []float64{0, 0.2, 0.3, 1} {
				assert.Equal(t, p, Resolve(Pixels(p), screen, f))
			}
		}
	}
}

func TestResolve_Fraction(t *testing.T) {
	for _, r := range []float64{0.01, 0.25, 0.3, 0.333, 0.5, 1} {
		for _, s := range []int{0, 768, 1080, 1440, 1920, 2561} {
			want := int(math.Round(float64(s) * r))
			assert.Equal(t, want, Resolve(Fraction(r), s, 0.9))
		}
	}
}

func TestResolve_Default(t *testing.T) {
	for _, f := range []float64{0.2, 0.3, 0.4} {
		for _, s := range []int{0, 1080, 1920, 1366} {
			want := int(math.Round(float64(s) * f))
			assert.Equal(t, want, Resolve(Size{}, s, f))
		}
	}
}

func TestResolve_RoundsHalfAwayFromZero(t *testing.T) {
	// 5 * 0.5 = 2.5
	assert.Equal(t, 3, Resolve(Fraction(0.5), 5, 0))
	assert.Equal(t, 3, Resolve(Size{}, 5, 0.5))
}

func TestSize_String(t *testing.T) {
	assert.Equal(t, "800", Pixels(800).String())
	assert.Equal(t, "0.3", Fraction(0.3).String())
	assert.Equal(t, "", Size{}.String())
	assert.True(t, Size{}.IsDefault())
	assert.False(t, Pixels(1).IsDefault())
}
