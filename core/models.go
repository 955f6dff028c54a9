package core

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for templates.
// It is derived from template content so identical templates share an ID.
type ID uint64

// IDFromTemplate hashes a template name together with the exact bit patterns
// of its points using 64-bit BLAKE2b, so identical templates share an ID.
func IDFromTemplate(name string, points Stroke) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(name))
	h.Write([]byte{0})
	var buf [16]byte
	for _, p := range points {
		binary.LittleEndian.PutUint64(buf[:8], math.Float64bits(p.X))
		binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(p.Y))
		h.Write(buf[:])
	}
	return ID(binary.LittleEndian.Uint64(h.Sum(nil)))
}

// Point is a position on the drawing surface.
type Point struct {
	X, Y float64
}

// Stroke is an ordered path of points in drawing order.
// Raw strokes have any length; normalized strokes have exactly the
// configured sample count.
type Stroke []Point

// Clone returns a copy of the stroke that shares no memory with s.
func (s Stroke) Clone() Stroke {
	if s == nil {
		return nil
	}
	out := make(Stroke, len(s))
	copy(out, s)
	return out
}

// RawTemplate is a named reference stroke as supplied by a template library,
// before resampling and normalization.
type RawTemplate struct {
	Id         ID
	Seq        uint64    // Insertion order within the library (assigned by storage)
	Name       string
	Points     Stroke
	InsertedAt time.Time // When the template was added to the library
}

// Template is a named, normalized reference shape used as a classification target.
// Templates are immutable once loaded.
type Template struct {
	Id     ID
	Name   string
	Vector Stroke
}

// Result is the outcome of a single classification.
type Result struct {
	Template *Template
	Distance float64 // Optimal angular distance in radians
	Score    float64 // 1/Distance; larger is better
}

// Name returns the winning template's name, or "" for a nil result.
func (r *Result) Name() string {
	if r == nil || r.Template == nil {
		return ""
	}
	return r.Template.Name
}
