// Package domain names the axes of a parameter space and rescales integer
// grid coordinates to user-facing floating point units.
package domain

import (
	"fmt"

	"github.com/fuscadan/gfs/gfserr"
)

// Axis is one named, discretised dimension of a parameter domain.
type Axis struct {
	Name  string
	Left  float64
	Right float64
	// BitDepth discretises [Left, Right] into 2^BitDepth cells.
	BitDepth uint64
}

// Domain is an ordered sequence of axes.
type Domain []Axis

// BitDepth is the sum of the axes' bit depths.
func (d Domain) BitDepth() uint64 {
	var total uint64
	for _, a := range d {
		total += a.BitDepth
	}
	return total
}

// Names returns the axis names in order.
func (d Domain) Names() []string {
	names := make([]string, len(d))
	for i, a := range d {
		names[i] = a.Name
	}
	return names
}

func (a Axis) scale() float64 {
	return (a.Right - a.Left) / float64(uint64(1)<<a.BitDepth)
}

func (a Axis) rescale(coordinate uint64) float64 {
	return a.Left + float64(coordinate)*a.scale()
}

// Scale maps one integer coordinate tuple to floating point user units,
// one value per axis. It errors if the tuple's length does not match the
// domain's axis count.
func (d Domain) Scale(coords []uint64) ([]float64, error) {
	if len(coords) != len(d) {
		return nil, &gfserr.DomainError{Msg: fmt.Sprintf("%d coordinates for a %d-axis domain", len(coords), len(d))}
	}
	out := make([]float64, len(d))
	for i, a := range d {
		out[i] = a.rescale(coords[i])
	}
	return out, nil
}
