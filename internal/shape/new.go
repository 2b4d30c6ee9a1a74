package shape

// Defaults applied to freshly created shapes.
const (
	DefaultStroke      = "#000000"
	DefaultStrokeWidth = 1
	DefaultSides       = 5
	DefaultFontFamily  = "TkDefaultFont"
	DefaultFontSize    = 12
)

func newAttrs() Attrs {
	return Attrs{ID: NewID(), Stroke: DefaultStroke, StrokeWidth: DefaultStrokeWidth}
}

// New returns a zero-sized shape of the given kind with default styling and a
// fresh id. Unknown kinds return nil.
func New(kind Kind) Shape {
	a := newAttrs()
	none := Fill{Color: NoFill}
	miter := Join{Style: JoinMiter}
	switch kind {
	case KindRectangle:
		return &Rectangle{Attrs: a, Fill: none, Join: miter}
	case KindEllipse:
		return &Ellipse{Attrs: a, Fill: none}
	case KindLine:
		return &Line{Attrs: a, Points: []Point{{}, {}}, Arrow: ArrowNone}
	case KindPolyline:
		return &Polyline{Attrs: a, Fill: none, Join: miter}
	case KindBezier:
		return &Bezier{Attrs: a}
	case KindPath:
		return &Path{Attrs: a, Join: Join{Style: JoinRound}}
	case KindPolygon:
		return &Polygon{Attrs: a, Fill: none, Join: miter, Sides: DefaultSides}
	case KindTriangle:
		return &Triangle{Attrs: a, Fill: none, Join: miter, ApexRatio: 0.5}
	case KindRightTriangle:
		return &RightTriangle{Attrs: a, Fill: none, Join: miter, RightSide: SideLeft}
	case KindRhombus:
		return &Rhombus{Attrs: a, Fill: none, Join: miter}
	case KindTrapezoid:
		return &Trapezoid{Attrs: a, Fill: none, Join: miter, LeftInset: 0.25, RightInset: 0.25}
	case KindParallelogram:
		return &Parallelogram{Attrs: a, Fill: none, Join: miter, SlantAngle: 60}
	case KindArc:
		return &Arc{Attrs: a, Fill: none, Start: 0, Extent: 90, Style: ArcPieslice}
	case KindText:
		return &Text{
			Attrs:  a,
			Fill:   Fill{Color: DefaultStroke},
			Text:   "Text",
			Font:   Font{Family: DefaultFontFamily, Size: DefaultFontSize},
			Anchor: AnchorCenter,
			Align:  AlignLeft,
		}
	case KindImage:
		return &Image{Attrs: a}
	case KindBitmap:
		return &Bitmap{Attrs: a, Bitmap: "questhead", Foreground: DefaultStroke}
	}
	return nil
}

// NewStar returns a star polygon with the given number of points.
func NewStar(points int) *Polygon {
	p := New(KindPolygon).(*Polygon)
	p.Sides = points
	p.Star = true
	return p
}

// NewRectangle is a shorthand used by tools and tests.
func NewRectangle(x, y, w, h float64) *Rectangle {
	r := New(KindRectangle).(*Rectangle)
	r.Box = Box{X: x, Y: y, Width: w, Height: h}
	return r
}
