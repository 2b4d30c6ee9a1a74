// Package document reads and writes drawings. A drawing is a JSON file of
// kind-tagged shapes; WKT files load as a single polyline.
package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"shapecanvas/internal/geom"
	"shapecanvas/internal/shape"
)

const Version = 1

var (
	ErrUnknownKind = errors.New("document: unknown shape kind")
	ErrVersion     = errors.New("document: unsupported version")
	ErrFormat      = errors.New("document: unsupported file")
)

type record struct {
	Kind  shape.Kind      `json:"kind"`
	Shape json.RawMessage `json:"shape"`
}

type drawing struct {
	Version int      `json:"version"`
	Shapes  []record `json:"shapes"`
}

// Extensions lists the file types Load understands.
var Extensions = []string{".json", ".wkt"}

func Encode(w io.Writer, shapes []shape.Shape) error {
	d := drawing{Version: Version, Shapes: make([]record, 0, len(shapes))}
	for _, s := range shapes {
		raw, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("document: encode %s: %w", s.Identity(), err)
		}
		d.Shapes = append(d.Shapes, record{Kind: s.Kind(), Shape: raw})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// Decode reads a drawing. Shapes without an id get a fresh one.
func Decode(r io.Reader) ([]shape.Shape, error) {
	var d drawing
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("document: decode: %w", err)
	}
	if d.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, d.Version)
	}
	out := make([]shape.Shape, 0, len(d.Shapes))
	for i, rec := range d.Shapes {
		s := shape.New(rec.Kind)
		if s == nil {
			return nil, fmt.Errorf("%w: %q at %d", ErrUnknownKind, rec.Kind, i)
		}
		if err := json.Unmarshal(rec.Shape, s); err != nil {
			return nil, fmt.Errorf("document: shape %d: %w", i, err)
		}
		if s.Identity() == "" {
			s = shape.WithID(s, shape.NewID())
		}
		out = append(out, s)
	}
	return out, nil
}

func Save(path string, shapes []shape.Shape) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("document: save: %w", err)
	}
	if err := Encode(f, shapes); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load reads a drawing or a WKT file, chosen by extension.
func Load(path string) ([]shape.Shape, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("document: load: %w", err)
		}
		defer f.Close()
		return Decode(f)
	case ".wkt":
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("document: load: %w", err)
		}
		p, err := geom.PolylineFromWKT(string(b))
		if err != nil {
			return nil, err
		}
		return []shape.Shape{p}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrFormat, filepath.Base(path))
}

// Supported reports whether Load can read path.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}
