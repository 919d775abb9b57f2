package cli

import (
	"strings"

	"github.com/matzehuels/droptarget/pkg/dnd"
	"github.com/matzehuels/droptarget/pkg/errors"
	"github.com/matzehuels/droptarget/pkg/geom"
	"github.com/matzehuels/droptarget/pkg/outline"
)

// parsePoint parses "X,Y".
func parsePoint(s string) (geom.Pt, error) {
	v, err := errors.ParseFloats(s, 2)
	if err != nil {
		return geom.Pt{}, err
	}
	return geom.Pt{X: v[0], Y: v[1]}, nil
}

// parsePoints parses every --at value.
func parsePoints(ss []string) ([]geom.Pt, error) {
	if len(ss) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidPoint, "at least one point is required")
	}
	out := make([]geom.Pt, len(ss))
	for i, s := range ss {
		p, err := parsePoint(s)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// parseRect parses "LEFT,TOP,WIDTH,HEIGHT", the order boxes use in scene files.
func parseRect(s string) (geom.Box, error) {
	v, err := errors.ParseFloats(s, 4)
	if err != nil {
		return geom.Box{}, err
	}
	if v[2] < 0 || v[3] < 0 {
		return geom.Box{}, errors.New(errors.ErrCodeInvalidPoint, "negative size in %q", s)
	}
	return geom.NewBox(v[1], v[0], v[2], v[3]), nil
}

// parseItem parses an outline row: "ID" for a node, "ID#PARAM" for a slot.
func parseItem(s string) (outline.Item, error) {
	id, param, slot := strings.Cut(s, "#")
	if err := errors.ValidateID(id); err != nil {
		return outline.Item{}, err
	}
	if slot {
		if param == "" {
			return outline.Item{}, errors.New(errors.ErrCodeInvalidID, "empty slot name in %q", s)
		}
		return outline.SlotItem(dnd.TemplateID(id), param), nil
	}
	return outline.NodeItem(dnd.TemplateID(id)), nil
}

// interpolate returns n evenly spaced points from a (exclusive) to b
// (inclusive).
func interpolate(a, b geom.Pt, n int) []geom.Pt {
	if n < 1 {
		n = 1
	}
	out := make([]geom.Pt, n)
	for i := range n {
		f := float64(i+1) / float64(n)
		out[i] = geom.Pt{X: a.X + (b.X-a.X)*f, Y: a.Y + (b.Y-a.Y)*f}
	}
	return out
}
