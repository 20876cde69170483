package geometry

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SizeKind distinguishes how a Size is expressed.
type SizeKind int

const (
	// SizeDefault means no size was requested; the default fraction applies.
	SizeDefault SizeKind = iota
	// SizePixels is an absolute pixel count.
	SizePixels
	// SizeFraction is a fraction of the screen extent.
	SizeFraction
)

// Size is a requested overlay extent. The zero value requests the default.
type Size struct {
	Kind     SizeKind
	Pixels   int
	Fraction float64
}

// Pixels returns a Size of p absolute pixels.
func Pixels(p int) Size {
	return Size{Kind: SizePixels, Pixels: p}
}

// Fraction returns a Size of r times the screen extent.
func Fraction(r float64) Size {
	return Size{Kind: SizeFraction, Fraction: r}
}

// IsDefault reports whether no explicit size was requested.
func (s Size) IsDefault() bool {
	return s.Kind == SizeDefault
}

// String formats the size the way ParseSize accepts it.
func (s Size) String() string {
	switch s.Kind {
	case SizePixels:
		return strconv.Itoa(s.Pixels)
	case SizeFraction:
		return strconv.FormatFloat(s.Fraction, 'f', -1, 64)
	default:
		return ""
	}
}

// ParseSize parses "800" as pixels, "0.3" as a fraction and "30%" as the
// fraction 0.30. An empty string yields the default Size.
func ParseSize(s string) (Size, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Size{}, nil
	}

	if pct, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(pct, 64)
		if err != nil || v < 0 {
			return Size{}, fmt.Errorf("invalid percentage %q", s)
		}
		return Fraction(v / 100), nil
	}

	if !strings.ContainsAny(s, ".eE") {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return Size{}, fmt.Errorf("invalid pixel size %q", s)
		}
		return Pixels(v), nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return Size{}, fmt.Errorf("invalid fraction %q", s)
	}
	return Fraction(v), nil
}

// Resolve converts a requested size into pixels along one screen axis.
// Pixel sizes are returned verbatim and are not clamped to the screen.
func Resolve(requested Size, extent int, defaultFraction float64) int {
	switch requested.Kind {
	case SizePixels:
		return requested.Pixels
	case SizeFraction:
		return scale(extent, requested.Fraction)
	default:
		return scale(extent, defaultFraction)
	}
}

// scale rounds half away from zero.
func scale(extent int, fraction float64) int {
	return int(math.Round(float64(extent) * fraction))
}
