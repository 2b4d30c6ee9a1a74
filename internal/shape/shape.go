package shape

import (
	"slices"

	"github.com/google/uuid"
)

// Point is a position in world space. Y grows downwards.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is a convenience constructor for Point.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point     { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point     { return Point{X: p.X - q.X, Y: p.Y - q.Y} }
func (p Point) Scale(f float64) Point { return Point{X: p.X * f, Y: p.Y * f} }
func (p Point) Dot(q Point) float64   { return p.X*q.X + p.Y*q.Y }
func (p Point) Lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

// Kind is the variant tag of a shape.
type Kind string

const (
	KindRectangle     Kind = "rectangle"
	KindEllipse       Kind = "ellipse"
	KindLine          Kind = "line"
	KindPolyline      Kind = "polyline"
	KindBezier        Kind = "bezier"
	KindPath          Kind = "path"
	KindPolygon       Kind = "polygon"
	KindTriangle      Kind = "triangle"
	KindRightTriangle Kind = "right_triangle"
	KindRhombus       Kind = "rhombus"
	KindTrapezoid     Kind = "trapezoid"
	KindParallelogram Kind = "parallelogram"
	KindArc           Kind = "arc"
	KindText          Kind = "text"
	KindImage         Kind = "image"
	KindBitmap        Kind = "bitmap"
)

// Kinds lists every variant in a stable order.
var Kinds = []Kind{
	KindRectangle, KindEllipse, KindLine, KindPolyline, KindBezier, KindPath,
	KindPolygon, KindTriangle, KindRightTriangle, KindRhombus, KindTrapezoid,
	KindParallelogram, KindArc, KindText, KindImage, KindBitmap,
}

// State controls visibility and interactivity.
type State int

const (
	StateNormal State = iota
	StateHidden
	StateDisabled
)

func (s State) String() string {
	switch s {
	case StateHidden:
		return "hidden"
	case StateDisabled:
		return "disabled"
	default:
		return "normal"
	}
}

// Attrs holds the fields every shape carries.
type Attrs struct {
	ID           string  `json:"id"`
	Name         string  `json:"name,omitempty"`
	State        State   `json:"state"`
	Stroke       string  `json:"stroke"`
	StrokeWidth  float64 `json:"stroke_width"`
	AspectLocked bool    `json:"aspect_locked,omitempty"`
	Comment      string  `json:"comment,omitempty"`
}

func (a *Attrs) attrs() *Attrs { return a }

// Identity returns the stable id of the shape.
func (a *Attrs) Identity() string { return a.ID }

// Shape is the closed set of drawable variants. The unexported method keeps
// the set sealed to this package; callers switch on the concrete types.
//
// Shapes are treated as immutable values: edits clone first and return the
// clone.
type Shape interface {
	Kind() Kind
	Identity() string
	Clone() Shape
	attrs() *Attrs
}

// AttrsOf returns a copy of the common attributes of s.
func AttrsOf(s Shape) Attrs { return *s.attrs() }

// WithAttrs returns a copy of s with its common attributes replaced.
func WithAttrs(s Shape, a Attrs) Shape {
	c := s.Clone()
	*c.attrs() = a
	return c
}

// WithID returns a copy of s carrying a different identity.
func WithID(s Shape, id string) Shape {
	c := s.Clone()
	c.attrs().ID = id
	return c
}

// NewID returns a fresh shape identity.
func NewID() string { return uuid.NewString() }

// Box is the x/y/width/height parameterisation shared by the box-based
// variants.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (b *Box) box() *Box { return b }

// Boxed is implemented by variants parameterised by a Box.
type Boxed interface {
	Shape
	box() *Box
}

// BoxOf returns the Box of a box-based shape.
func BoxOf(s Shape) (Box, bool) {
	if b, ok := s.(Boxed); ok {
		return *b.box(), true
	}
	return Box{}, false
}

// WithBox returns a copy of a box-based shape with its Box replaced. Other
// shapes are returned unchanged.
func WithBox(s Shape, b Box) Shape {
	if _, ok := s.(Boxed); !ok {
		return s
	}
	c := s.Clone()
	*c.(Boxed).box() = b
	return c
}

// PointSet is implemented by variants stored as an explicit point list.
type PointSet interface {
	Shape
	points() *[]Point
}

// PointsOf returns a copy of the stored points of a point-collection shape.
func PointsOf(s Shape) ([]Point, bool) {
	if ps, ok := s.(PointSet); ok {
		return slices.Clone(*ps.points()), true
	}
	return nil, false
}

// WithPoints returns a copy of a point-collection shape with new points.
func WithPoints(s Shape, pts []Point) Shape {
	if _, ok := s.(PointSet); !ok {
		return s
	}
	c := s.Clone()
	*c.(PointSet).points() = slices.Clone(pts)
	return c
}

// IsPointCollection reports whether s is edited vertex by vertex natively.
func IsPointCollection(s Shape) bool {
	switch s.(type) {
	case *Line, *Polyline, *Bezier, *Path:
		return true
	}
	return false
}
