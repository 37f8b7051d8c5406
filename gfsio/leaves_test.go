package gfsio

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/fuscadan/gfs/internal/block"
)

func sampleLeaves() block.LeafList {
	return block.LeafList{
		{Multiplicity: 2, Sides: []block.Side{{Endpoint: 0, BitDepth: 3}, {Endpoint: 5, BitDepth: 2}}},
		{Multiplicity: 0, Sides: []block.Side{{Endpoint: 1, BitDepth: 0}}},
	}
}

func TestEncodeDecodeLeavesRoundTrip(t *testing.T) {
	want := sampleLeaves()
	data, err := EncodeLeaves(want)
	if err != nil {
		t.Fatalf("EncodeLeaves: %s", err)
	}
	got, err := DecodeLeaves(data)
	if err != nil {
		t.Fatalf("DecodeLeaves: %s", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestExportLoadLeavesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "leaves.json")

	want := sampleLeaves()
	if err := ExportLeaves(want, path); err != nil {
		t.Fatalf("ExportLeaves: %s", err)
	}
	got, err := LoadLeaves(path)
	if err != nil {
		t.Fatalf("LoadLeaves: %s", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestExportLoadLeavesCompressedRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "posterior.json.zst")

	want := sampleLeaves()
	if err := ExportLeavesCompressed(want, path); err != nil {
		t.Fatalf("ExportLeavesCompressed: %s", err)
	}
	got, err := LoadLeavesCompressed(path)
	if err != nil {
		t.Fatalf("LoadLeavesCompressed: %s", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestDecodeLeavesRejectsMalformed(t *testing.T) {
	if _, err := DecodeLeaves([]byte(`not json`)); err == nil {
		t.Fatal("expected an error decoding malformed JSON")
	}
}
