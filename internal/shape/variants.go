package shape

import "slices"

type Rectangle struct {
	Attrs
	Rotation
	Fill
	Dash
	Join
	Box
}

func (*Rectangle) Kind() Kind { return KindRectangle }
func (r *Rectangle) Clone() Shape {
	c := *r
	c.Dash = r.Dash.clone()
	return &c
}

type Ellipse struct {
	Attrs
	Rotation
	Fill
	Dash
	CX float64 `json:"cx"`
	CY float64 `json:"cy"`
	RX float64 `json:"rx"`
	RY float64 `json:"ry"`
}

func (*Ellipse) Kind() Kind { return KindEllipse }
func (e *Ellipse) Clone() Shape {
	c := *e
	c.Dash = e.Dash.clone()
	return &c
}

// Arrow selects the arrowheads of a line.
type Arrow string

const (
	ArrowNone  Arrow = "none"
	ArrowFirst Arrow = "first"
	ArrowLast  Arrow = "last"
	ArrowBoth  Arrow = "both"
)

// Line is a two-point segment. Its endpoints carry its orientation, so it has
// no rotation trait.
type Line struct {
	Attrs
	Dash
	Points []Point `json:"points"`
	Arrow  Arrow   `json:"arrow,omitempty"`
}

func (*Line) Kind() Kind         { return KindLine }
func (l *Line) points() *[]Point { return &l.Points }
func (l *Line) Clone() Shape {
	c := *l
	c.Dash = l.Dash.clone()
	c.Points = slices.Clone(l.Points)
	return &c
}

type Polyline struct {
	Attrs
	Rotation
	Fill
	Dash
	Join
	Points []Point `json:"points"`
	Closed bool    `json:"closed,omitempty"`
	Smooth bool    `json:"smooth,omitempty"`
}

func (*Polyline) Kind() Kind         { return KindPolyline }
func (p *Polyline) points() *[]Point { return &p.Points }
func (p *Polyline) Clone() Shape {
	c := *p
	c.Dash = p.Dash.clone()
	c.Points = slices.Clone(p.Points)
	return &c
}

// Bezier stores anchor, control, control, anchor, ... points of a cubic
// curve chain.
type Bezier struct {
	Attrs
	Rotation
	Dash
	Points []Point `json:"points"`
}

func (*Bezier) Kind() Kind         { return KindBezier }
func (b *Bezier) points() *[]Point { return &b.Points }
func (b *Bezier) Clone() Shape {
	c := *b
	c.Dash = b.Dash.clone()
	c.Points = slices.Clone(b.Points)
	return &c
}

// Path is a freehand stroke.
type Path struct {
	Attrs
	Rotation
	Dash
	Join
	Points []Point `json:"points"`
}

func (*Path) Kind() Kind         { return KindPath }
func (p *Path) points() *[]Point { return &p.Points }
func (p *Path) Clone() Shape {
	c := *p
	c.Dash = p.Dash.clone()
	c.Points = slices.Clone(p.Points)
	return &c
}

// Polygon is a regular polygon, or a star when Star is set. The first outer
// vertex points straight up.
type Polygon struct {
	Attrs
	Rotation
	Fill
	Dash
	Join
	CX          float64 `json:"cx"`
	CY          float64 `json:"cy"`
	Radius      float64 `json:"radius"`
	Sides       int     `json:"sides"`
	Star        bool    `json:"star,omitempty"`
	InnerRadius float64 `json:"inner_radius,omitempty"`
}

func (*Polygon) Kind() Kind { return KindPolygon }
func (p *Polygon) Clone() Shape {
	c := *p
	c.Dash = p.Dash.clone()
	return &c
}

// Triangle is an isosceles triangle whose apex sits on the top edge at
// ApexRatio of the width (0.5 is symmetric).
type Triangle struct {
	Attrs
	Rotation
	Fill
	Dash
	Join
	Box
	ApexRatio float64 `json:"apex_ratio"`
}

func (*Triangle) Kind() Kind { return KindTriangle }
func (t *Triangle) Clone() Shape {
	c := *t
	c.Dash = t.Dash.clone()
	return &c
}

// RightTriangle has its right angle in a bottom corner.
type RightTriangle struct {
	Attrs
	Rotation
	Fill
	Dash
	Join
	Box
	RightSide Side `json:"right_side,omitempty"`
}

func (*RightTriangle) Kind() Kind { return KindRightTriangle }
func (t *RightTriangle) Clone() Shape {
	c := *t
	c.Dash = t.Dash.clone()
	return &c
}

type Rhombus struct {
	Attrs
	Rotation
	Fill
	Dash
	Join
	Box
}

func (*Rhombus) Kind() Kind { return KindRhombus }
func (r *Rhombus) Clone() Shape {
	c := *r
	c.Dash = r.Dash.clone()
	return &c
}

// Trapezoid insets its top corners by ratios of the width.
type Trapezoid struct {
	Attrs
	Rotation
	Fill
	Dash
	Join
	Box
	LeftInset  float64 `json:"left_inset"`
	RightInset float64 `json:"right_inset"`
}

func (*Trapezoid) Kind() Kind { return KindTrapezoid }
func (t *Trapezoid) Clone() Shape {
	c := *t
	c.Dash = t.Dash.clone()
	return &c
}

// Parallelogram slants its vertical edges by SlantAngle degrees measured
// from the base (90 draws a rectangle).
type Parallelogram struct {
	Attrs
	Rotation
	Fill
	Dash
	Join
	Box
	SlantAngle float64 `json:"slant_angle"`
}

func (*Parallelogram) Kind() Kind { return KindParallelogram }
func (p *Parallelogram) Clone() Shape {
	c := *p
	c.Dash = p.Dash.clone()
	return &c
}

// ArcStyle selects how an arc is closed.
type ArcStyle string

const (
	ArcPieslice ArcStyle = "pieslice"
	ArcChord    ArcStyle = "chord"
	ArcOpen     ArcStyle = "arc"
)

// Arc is a section of the ellipse inscribed in Box. Angles are degrees
// counter-clockwise from three o'clock.
type Arc struct {
	Attrs
	Rotation
	Fill
	Dash
	Box
	Start        float64  `json:"start"`
	Extent       float64  `json:"extent"`
	Style        ArcStyle `json:"style"`
	ExtentLocked bool     `json:"extent_locked,omitempty"`
}

func (*Arc) Kind() Kind { return KindArc }
func (a *Arc) Clone() Shape {
	c := *a
	c.Dash = a.Dash.clone()
	return &c
}

// Anchor names the reference point of a text box.
type Anchor string

const (
	AnchorNW     Anchor = "nw"
	AnchorN      Anchor = "n"
	AnchorNE     Anchor = "ne"
	AnchorW      Anchor = "w"
	AnchorCenter Anchor = "center"
	AnchorE      Anchor = "e"
	AnchorSW     Anchor = "sw"
	AnchorS      Anchor = "s"
	AnchorSE     Anchor = "se"
)

type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

type Font struct {
	Family string  `json:"family"`
	Size   float64 `json:"size"`
	Bold   bool    `json:"bold,omitempty"`
	Italic bool    `json:"italic,omitempty"`
}

// Text is positioned by its anchor point, which is also its rotation pivot.
type Text struct {
	Attrs
	Rotation
	Fill
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Text   string  `json:"text"`
	Font   Font    `json:"font"`
	Anchor Anchor  `json:"anchor"`
	Align  Align   `json:"align"`
}

func (*Text) Kind() Kind { return KindText }
func (t *Text) Clone() Shape {
	c := *t
	return &c
}

type Image struct {
	Attrs
	Box
	Source string `json:"source"`
}

func (*Image) Kind() Kind { return KindImage }
func (i *Image) Clone() Shape {
	c := *i
	return &c
}

type Bitmap struct {
	Attrs
	Box
	Bitmap     string `json:"bitmap"`
	Foreground string `json:"foreground,omitempty"`
	Background string `json:"background,omitempty"`
}

func (*Bitmap) Kind() Kind { return KindBitmap }
func (b *Bitmap) Clone() Shape {
	c := *b
	return &c
}

var (
	_ Rotatable = (*Rectangle)(nil)
	_ Fillable  = (*Polygon)(nil)
	_ Dashable  = (*Line)(nil)
	_ Joinable  = (*Path)(nil)
	_ Boxed     = (*Arc)(nil)
	_ PointSet  = (*Bezier)(nil)
)
