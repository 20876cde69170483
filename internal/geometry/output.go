package geometry

import "errors"

// ErrNoActiveOutput is returned when the window manager reports no active output.
var ErrNoActiveOutput = errors.New("no active output")

// Rect is a rectangle in window-manager layout coordinates.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Output describes a physical display as reported by the window manager.
type Output struct {
	Name    string `json:"name"`
	Active  bool   `json:"active"`
	Focused bool   `json:"focused"`
	Rect    Rect   `json:"rect"`
}

// Dimensions is a resolved overlay size in pixels.
type Dimensions struct {
	Width  int
	Height int
}

// Defaults holds the fractions used when no explicit size is requested.
type Defaults struct {
	Width  float64
	Height float64
}

// ActiveOutput selects the output new windows are placed on.
// An active output that also has focus wins; otherwise the first active one.
func ActiveOutput(outputs []Output) (Output, error) {
	var first *Output
	for i := range outputs {
		o := &outputs[i]
		if !o.Active {
			continue
		}
		if o.Focused {
			return *o, nil
		}
		if first == nil {
			first = o
		}
	}
	if first == nil {
		return Output{}, ErrNoActiveOutput
	}
	return *first, nil
}

// ResolveDimensions computes the overlay size for the active output.
func ResolveDimensions(outputs []Output, width, height Size, defaults Defaults) (Dimensions, Output, error) {
	out, err := ActiveOutput(outputs)
	if err != nil {
		return Dimensions{}, Output{}, err
	}
	return Dimensions{
		Width:  Resolve(width, out.Rect.Width, defaults.Width),
		Height: Resolve(height, out.Rect.Height, defaults.Height),
	}, out, nil
}
