package shape

import "slices"

// Side selects which side of the selection box the rotation grip sits on.
type Side string

const (
	SideAuto   Side = ""
	SideTop    Side = "top"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
	SideRight  Side = "right"
)

// Rotation is the rotatable trait.
type Rotation struct {
	Angle      float64 `json:"rotation"`
	HandleSide Side    `json:"rotation_handle_side,omitempty"`
}

func (r *Rotation) rotation() *Rotation { return r }

// Rotatable shapes carry a rotation in degrees, clockwise in screen space.
type Rotatable interface {
	Shape
	rotation() *Rotation
}

// RotationOf returns the rotation of s, or false if s cannot rotate.
func RotationOf(s Shape) (Rotation, bool) {
	if r, ok := s.(Rotatable); ok {
		return *r.rotation(), true
	}
	return Rotation{}, false
}

// Angle returns the rotation of s in degrees (zero for non-rotatable shapes).
func Angle(s Shape) float64 {
	if r, ok := s.(Rotatable); ok {
		return r.rotation().Angle
	}
	return 0
}

// WithRotation returns a copy of s rotated to deg, normalised to [0,360).
// Non-rotatable shapes are returned unchanged.
func WithRotation(s Shape, deg float64) Shape {
	if _, ok := s.(Rotatable); !ok {
		return s
	}
	c := s.Clone()
	c.(Rotatable).rotation().Angle = NormalizeAngle(deg)
	return c
}

// NormalizeAngle maps deg into [0,360).
func NormalizeAngle(deg float64) float64 {
	for deg < 0 {
		deg += 360
	}
	for deg >= 360 {
		deg -= 360
	}
	return deg
}

// Stipple is a cross-hatch fill pattern.
type Stipple string

const (
	StippleNone   Stipple = ""
	StippleGray12 Stipple = "gray12"
	StippleGray25 Stipple = "gray25"
	StippleGray50 Stipple = "gray50"
	StippleGray75 Stipple = "gray75"
)

// NoFill marks an unfilled shape.
const NoFill = "none"

// Fill is the fillable trait.
type Fill struct {
	Color   string  `json:"fill"`
	Stipple Stipple `json:"stipple,omitempty"`
}

func (f *Fill) fill() *Fill { return f }

// Filled reports whether a fill colour is set.
func (f Fill) Filled() bool { return f.Color != "" && f.Color != NoFill }

type Fillable interface {
	Shape
	fill() *Fill
}

func FillOf(s Shape) (Fill, bool) {
	if f, ok := s.(Fillable); ok {
		return *f.fill(), true
	}
	return Fill{}, false
}

func WithFill(s Shape, f Fill) Shape {
	if _, ok := s.(Fillable); !ok {
		return s
	}
	c := s.Clone()
	*c.(Fillable).fill() = f
	return c
}

// Dash is the dashable trait. Pattern entries are multiples of the stroke
// width.
type Dash struct {
	Pattern []float64 `json:"dash,omitempty"`
	Offset  float64   `json:"dash_offset,omitempty"`
}

func (d *Dash) dash() *Dash { return d }

func (d Dash) clone() Dash { return Dash{Pattern: slices.Clone(d.Pattern), Offset: d.Offset} }

type Dashable interface {
	Shape
	dash() *Dash
}

func DashOf(s Shape) (Dash, bool) {
	if d, ok := s.(Dashable); ok {
		return d.dash().clone(), true
	}
	return Dash{}, false
}

func WithDash(s Shape, d Dash) Shape {
	if _, ok := s.(Dashable); !ok {
		return s
	}
	c := s.Clone()
	*c.(Dashable).dash() = d.clone()
	return c
}

// JoinStyle is the corner join of a stroked outline.
type JoinStyle string

const (
	JoinMiter JoinStyle = "miter"
	JoinRound JoinStyle = "round"
	JoinBevel JoinStyle = "bevel"
)

type Join struct {
	Style JoinStyle `json:"join,omitempty"`
}

func (j *Join) join() *Join { return j }

type Joinable interface {
	Shape
	join() *Join
}

func JoinOf(s Shape) (JoinStyle, bool) {
	if j, ok := s.(Joinable); ok {
		return j.join().Style, true
	}
	return "", false
}

func WithJoin(s Shape, style JoinStyle) Shape {
	if _, ok := s.(Joinable); !ok {
		return s
	}
	c := s.Clone()
	c.(Joinable).join().Style = style
	return c
}
