// Package props is the numeric property surface of a shape: the fields an
// inspector shows, their bounds, and clamped setters.
package props

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"shapecanvas/internal/geom"
	"shapecanvas/internal/shape"
)

var (
	ErrUnknownField = errors.New("props: unknown field")
	ErrNotNumber    = errors.New("props: not a number")
)

const (
	maxCoord = 1e6
	maxSides = 64
)

// Field describes one numeric property with its current value and bounds.
type Field struct {
	Name  string
	Value float64
	Min   float64
	Max   float64
}

type accessor struct {
	get    func(shape.Shape) float64
	set    func(shape.Shape, float64) shape.Shape
	bounds func(shape.Shape) (float64, float64)
}

func fixed(lo, hi float64) func(shape.Shape) (float64, float64) {
	return func(shape.Shape) (float64, float64) { return lo, hi }
}

var accessors = map[string]accessor{
	"x":            {get: boxX, set: setX, bounds: fixed(-maxCoord, maxCoord)},
	"y":            {get: boxY, set: setY, bounds: fixed(-maxCoord, maxCoord)},
	"width":        {get: width, set: setWidth, bounds: fixed(1, maxCoord)},
	"height":       {get: height, set: setHeight, bounds: fixed(1, maxCoord)},
	"rotation":     {get: shape.Angle, set: shape.WithRotation, bounds: fixed(0, 360)},
	"stroke_width": {get: strokeWidth, set: setStrokeWidth, bounds: fixed(0, 100)},
	"sides":        {get: sides, set: setSides, bounds: fixed(3, maxSides)},
	"radius":       {get: radius, set: setRadius, bounds: fixed(1, maxCoord)},
	"side_length":  {get: sideLength, set: setSideLength, bounds: fixed(1, maxCoord)},
	"inner_radius": {get: innerRadius, set: setInnerRadius, bounds: innerBounds},
	"start":        {get: arcStart, set: setArcStart, bounds: fixed(0, 360)},
	"extent":       {get: arcExtent, set: setArcExtent, bounds: fixed(1, 360)},
	"slant_angle":  {get: slant, set: setSlant, bounds: fixed(1, 179)},
	"apex_ratio":   {get: apex, set: setApex, bounds: fixed(0, 1)},
	"left_inset":   {get: leftInset, set: setLeftInset, bounds: leftBounds},
	"right_inset":  {get: rightInset, set: setRightInset, bounds: rightBounds},
	"font_size":    {get: fontSize, set: setFontSize, bounds: fixed(1, 500)},
}

// names lists the fields of s in display order.
func names(s shape.Shape) []string {
	var out []string
	switch s.(type) {
	case *shape.Text:
		out = []string{"x", "y"}
	default:
		out = []string{"x", "y", "width", "height"}
	}
	if _, ok := s.(shape.Rotatable); ok {
		out = append(out, "rotation")
	}
	out = append(out, "stroke_width")
	switch v := s.(type) {
	case *shape.Polygon:
		out = append(out, "sides", "radius", "side_length")
		if v.Star {
			out = append(out, "inner_radius")
		}
	case *shape.Arc:
		out = append(out, "start", "extent")
	case *shape.Parallelogram:
		out = append(out, "slant_angle")
	case *shape.Triangle:
		out = append(out, "apex_ratio")
	case *shape.Trapezoid:
		out = append(out, "left_inset", "right_inset")
	case *shape.Text:
		out = append(out, "font_size")
	}
	return out
}

// Fields returns the numeric properties of s. Shapes without a valid
// geometry report no size fields.
func Fields(s shape.Shape) []Field {
	var out []Field
	for _, n := range names(s) {
		f, ok := field(s, n)
		if !ok {
			continue
		}
		out = append(out, f)
	}
	return out
}

func field(s shape.Shape, name string) (Field, bool) {
	a, ok := accessors[name]
	if !ok {
		return Field{}, false
	}
	if (name == "width" || name == "height" || name == "x" || name == "y") && !hasBox(s) {
		return Field{}, false
	}
	lo, hi := a.bounds(s)
	return Field{Name: name, Value: a.get(s), Min: lo, Max: hi}, true
}

func hasBox(s shape.Shape) bool {
	if t, ok := s.(*shape.Text); ok {
		return t.Font.Size > 0
	}
	_, ok := geom.BoundingBox(s)
	return ok
}

func supports(s shape.Shape, name string) bool {
	for _, n := range names(s) {
		if n == name {
			return true
		}
	}
	return false
}

// Set assigns v to the named field of s, clamped to the field's bounds, and
// returns the new shape.
func Set(s shape.Shape, name string, v float64) (shape.Shape, error) {
	if !supports(s, name) {
		return s, fmt.Errorf("%w: %s on %s", ErrUnknownField, name, s.Kind())
	}
	f, ok := field(s, name)
	if !ok {
		return s, fmt.Errorf("%w: %s on degenerate %s", ErrUnknownField, name, s.Kind())
	}
	if math.IsNaN(v) {
		return s, fmt.Errorf("%w: NaN", ErrNotNumber)
	}
	v = math.Max(f.Min, math.Min(f.Max, v))
	return accessors[name].set(s, v), nil
}

// SetText parses text and assigns it like Set. Invalid text leaves s
// untouched.
func SetText(s shape.Shape, name, text string) (shape.Shape, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return s, fmt.Errorf("%w: %q", ErrNotNumber, text)
	}
	return Set(s, name, v)
}

// Format renders a field value for display.
func Format(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func localBox(s shape.Shape) geom.BBox {
	b, _ := geom.BoundingBox(s)
	return b
}

func boxX(s shape.Shape) float64 {
	if t, ok := s.(*shape.Text); ok {
		return t.X
	}
	return localBox(s).MinX
}

func boxY(s shape.Shape) float64 {
	if t, ok := s.(*shape.Text); ok {
		return t.Y
	}
	return localBox(s).MinY
}

func setX(s shape.Shape, v float64) shape.Shape {
	return geom.Translate(s, geom.Point{X: v - boxX(s)})
}

func setY(s shape.Shape, v float64) shape.Shape {
	return geom.Translate(s, geom.Point{Y: v - boxY(s)})
}

func width(s shape.Shape) float64 {
	w, _, _ := geom.GeometricSize(s)
	return w
}

func height(s shape.Shape) float64 {
	_, h, _ := geom.GeometricSize(s)
	return h
}

// resize keeps the local top-left corner fixed on screen.
func resize(s shape.Shape, w, h float64) shape.Shape {
	from := localBox(s)
	pivot, _ := geom.ShapeCenter(s)
	if _, ok := s.(*shape.Polygon); ok {
		if w != from.Width() {
			h = w
		} else {
			w = h
		}
	}
	to := geom.BBox{MinX: from.MinX, MinY: from.MinY, MaxX: from.MinX + w, MaxY: from.MinY + h}
	return geom.Rebase(geom.Fit(s, from, to), pivot)
}

func setWidth(s shape.Shape, v float64) shape.Shape  { return resize(s, v, height(s)) }
func setHeight(s shape.Shape, v float64) shape.Shape { return resize(s, width(s), v) }

func strokeWidth(s shape.Shape) float64 { return shape.AttrsOf(s).StrokeWidth }

func setStrokeWidth(s shape.Shape, v float64) shape.Shape {
	a := shape.AttrsOf(s)
	a.StrokeWidth = v
	return shape.WithAttrs(s, a)
}

func polygon(s shape.Shape) *shape.Polygon {
	p, _ := s.(*shape.Polygon)
	return p
}

func sides(s shape.Shape) float64  { return float64(polygon(s).Sides) }
func radius(s shape.Shape) float64 { return polygon(s).Radius }

func setSides(s shape.Shape, v float64) shape.Shape {
	c := polygon(s).Clone().(*shape.Polygon)
	c.Sides = int(math.Round(v))
	return c
}

func setRadius(s shape.Shape, v float64) shape.Shape {
	c := polygon(s).Clone().(*shape.Polygon)
	if c.Radius > 0 {
		c.InnerRadius *= v / c.Radius
	}
	c.Radius = v
	return c
}

func sideLength(s shape.Shape) float64 { return geom.PolygonSideLength(polygon(s)) }

func setSideLength(s shape.Shape, v float64) shape.Shape {
	p := polygon(s)
	return setRadius(s, geom.PolygonRadiusFromSideLength(v, p.Sides))
}

func innerRadius(s shape.Shape) float64 { return polygon(s).InnerRadius }

func innerBounds(s shape.Shape) (float64, float64) {
	if p := polygon(s); p != nil {
		return 0, p.Radius
	}
	return 0, 0
}

func setInnerRadius(s shape.Shape, v float64) shape.Shape {
	c := polygon(s).Clone().(*shape.Polygon)
	c.InnerRadius = v
	return c
}

func arc(s shape.Shape) *shape.Arc {
	a, _ := s.(*shape.Arc)
	return a
}

func arcStart(s shape.Shape) float64  { return arc(s).Start }
func arcExtent(s shape.Shape) float64 { return arc(s).Extent }

func setArcStart(s shape.Shape, v float64) shape.Shape {
	c := arc(s).Clone().(*shape.Arc)
	c.Start = shape.NormalizeAngle(v)
	return c
}

func setArcExtent(s shape.Shape, v float64) shape.Shape {
	c := arc(s).Clone().(*shape.Arc)
	c.Extent = v
	return c
}

func slant(s shape.Shape) float64 { return s.(*shape.Parallelogram).SlantAngle }

func setSlant(s shape.Shape, v float64) shape.Shape {
	c := s.Clone().(*shape.Parallelogram)
	c.SlantAngle = v
	return c
}

func apex(s shape.Shape) float64 { return s.(*shape.Triangle).ApexRatio }

func setApex(s shape.Shape, v float64) shape.Shape {
	c := s.Clone().(*shape.Triangle)
	c.ApexRatio = v
	return c
}

func trapezoid(s shape.Shape) *shape.Trapezoid {
	t, _ := s.(*shape.Trapezoid)
	return t
}

func leftInset(s shape.Shape) float64  { return trapezoid(s).LeftInset }
func rightInset(s shape.Shape) float64 { return trapezoid(s).RightInset }

func leftBounds(s shape.Shape) (float64, float64) {
	if t := trapezoid(s); t != nil {
		return 0, 1 - t.RightInset
	}
	return 0, 1
}

func rightBounds(s shape.Shape) (float64, float64) {
	if t := trapezoid(s); t != nil {
		return 0, 1 - t.LeftInset
	}
	return 0, 1
}

func setLeftInset(s shape.Shape, v float64) shape.Shape {
	c := trapezoid(s).Clone().(*shape.Trapezoid)
	c.LeftInset = v
	return c
}

func setRightInset(s shape.Shape, v float64) shape.Shape {
	c := trapezoid(s).Clone().(*shape.Trapezoid)
	c.RightInset = v
	return c
}

func fontSize(s shape.Shape) float64 { return s.(*shape.Text).Font.Size }

func setFontSize(s shape.Shape, v float64) shape.Shape {
	c := s.Clone().(*shape.Text)
	c.Font.Size = v
	return c
}
