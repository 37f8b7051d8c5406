// Package gfsio is the external persistence collaborator: leaf-list JSON,
// and the CSV shapes for training data, posterior samples, histograms, and
// predictions (spec.md §6).
package gfsio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fuscadan/gfs/gfserr"
	"github.com/fuscadan/gfs/internal/block"
)

// EncodeLeaves renders leaves as the leaf-list JSON array of spec.md §6:
// [multiplicity, [[endpoint, bit_depth], ...]] per leaf, in list order.
func EncodeLeaves(leaves block.LeafList) ([]byte, error) {
	out := make([][2]any, len(leaves))
	for i, l := range leaves {
		sides := make([][2]uint64, len(l.Sides))
		for j, s := range l.Sides {
			sides[j] = [2]uint64{s.Endpoint, s.BitDepth}
		}
		out[i] = [2]any{l.Multiplicity, sides}
	}
	return json.Marshal(out)
}

// DecodeLeaves parses the leaf-list JSON array of spec.md §6 back into a
// LeafList. Round-trips exactly with EncodeLeaves (testable property #8).
func DecodeLeaves(data []byte) (block.LeafList, error) {
	var positional [][2]json.RawMessage
	if err := json.Unmarshal(data, &positional); err != nil {
		return nil, &gfserr.IOError{Path: "<leaf-list>", Err: err}
	}

	leaves := make(block.LeafList, len(positional))
	for i, entry := range positional {
		var mult uint64
		if err := json.Unmarshal(entry[0], &mult); err != nil {
			return nil, &gfserr.IOError{Path: "<leaf-list>", Err: fmt.Errorf("leaf %d: multiplicity: %w", i, err)}
		}
		var rawSides [][2]uint64
		if err := json.Unmarshal(entry[1], &rawSides); err != nil {
			return nil, &gfserr.IOError{Path: "<leaf-list>", Err: fmt.Errorf("leaf %d: sides: %w", i, err)}
		}
		sides := make([]block.Side, len(rawSides))
		for j, s := range rawSides {
			sides[j] = block.Side{Endpoint: s[0], BitDepth: s[1]}
		}
		leaves[i] = block.Leaf{Multiplicity: mult, Sides: sides}
	}
	return leaves, nil
}

func makeDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// LoadLeaves reads and decodes a leaf-list JSON file.
func LoadLeaves(path string) (block.LeafList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &gfserr.IOError{Path: path, Err: err}
	}
	leaves, err := DecodeLeaves(data)
	if err != nil {
		return nil, &gfserr.IOError{Path: path, Err: err}
	}
	return leaves, nil
}

// ExportLeaves writes leaves as leaf-list JSON to path, creating parent
// directories as needed.
func ExportLeaves(leaves block.LeafList, path string) error {
	data, err := EncodeLeaves(leaves)
	if err != nil {
		return &gfserr.IOError{Path: path, Err: err}
	}
	if err := makeDir(path); err != nil {
		return &gfserr.IOError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &gfserr.IOError{Path: path, Err: err}
	}
	return nil
}
