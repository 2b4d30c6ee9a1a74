package geom

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"shapecanvas/internal/shape"
)

var (
	ErrEmptyWKT       = errors.New("wkt: empty input")
	ErrUnsupportedWKT = errors.New("wkt: unsupported type")
)

// ParseWKT parses a LINESTRING or the outer ring of a POLYGON. The closing
// vertex of a polygon ring is dropped and closed is reported instead.
func ParseWKT(wkt string) (pts []Point, closed bool, err error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return nil, false, ErrEmptyWKT
	}
	up := strings.ToUpper(s)
	switch {
	case strings.HasPrefix(up, "LINESTRING"):
		i := strings.Index(s, "(")
		j := strings.LastIndex(s, ")")
		if i < 0 || j <= i {
			return nil, false, errors.New("wkt linestring: invalid")
		}
		pts, err = parseTuples(s[i+1 : j])
	case strings.HasPrefix(up, "POLYGON"):
		i := strings.Index(s, "((")
		j := strings.LastIndex(s, "))")
		if i < 0 || j <= i {
			return nil, false, errors.New("wkt polygon: invalid")
		}
		ring := s[i+2 : j]
		// holes are ignored
		if k := strings.Index(ring, ")"); k >= 0 {
			ring = ring[:k]
		}
		pts, err = parseTuples(ring)
		closed = true
		if n := len(pts); n > 2 && pts[0] == pts[n-1] {
			pts = pts[:n-1]
		}
	default:
		return nil, false, ErrUnsupportedWKT
	}
	if err != nil {
		return nil, false, err
	}
	if len(pts) < 2 {
		return nil, false, errors.New("wkt: fewer than two coordinates")
	}
	return pts, closed, nil
}

func parseTuples(block string) ([]Point, error) {
	var out []Point
	for _, tup := range strings.Split(block, ",") {
		parts := strings.Fields(strings.TrimSpace(tup))
		if len(parts) < 2 {
			continue
		}
		x, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, fmt.Errorf("wkt: bad x %q: %w", parts[0], err)
		}
		y, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("wkt: bad y %q: %w", parts[1], err)
		}
		out = append(out, Point{X: x, Y: y})
	}
	return out, nil
}

// PolylineFromWKT builds an unrotated polyline from a WKT string.
func PolylineFromWKT(wkt string) (*shape.Polyline, error) {
	pts, closed, err := ParseWKT(wkt)
	if err != nil {
		return nil, err
	}
	p := shape.New(shape.KindPolyline).(*shape.Polyline)
	p.Points = pts
	p.Closed = closed
	return p, nil
}

// FormatWKT writes the world-space outline of s as a LINESTRING, or a
// POLYGON when the outline is closed.
func FormatWKT(s shape.Shape) (string, bool) {
	pts, closed := Outline(s)
	if len(pts) < 2 {
		return "", false
	}
	var b strings.Builder
	write := func(p Point) {
		b.WriteString(strconv.FormatFloat(p.X, 'f', -1, 64))
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(p.Y, 'f', -1, 64))
	}
	if closed {
		b.WriteString("POLYGON ((")
	} else {
		b.WriteString("LINESTRING (")
	}
	for i, p := range pts {
		if i > 0 {
			b.WriteString(", ")
		}
		write(p)
	}
	if closed {
		b.WriteString(", ")
		write(pts[0])
		b.WriteString("))")
	} else {
		b.WriteString(")")
	}
	return b.String(), true
}
