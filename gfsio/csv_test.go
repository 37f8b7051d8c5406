package gfsio

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/fuscadan/gfs/bayes"
)

func TestReadTrainingData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "training.csv")
	if err := os.WriteFile(path, []byte("id,y\n0,1\n1,0\n2,\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %s", err)
	}

	preprocess := func(row []string, rowNum int) (bayes.DataPoint, error) {
		id, err := strconv.Atoi(row[0])
		if err != nil {
			return bayes.DataPoint{}, err
		}
		point := bayes.DataPoint{ID: id}
		if row[1] != "" {
			y, err := strconv.Atoi(row[1])
			if err != nil {
				return bayes.DataPoint{}, err
			}
			point.Y = &y
		}
		return point, nil
	}

	points, err := ReadTrainingData(path, preprocess)
	if err != nil {
		t.Fatalf("ReadTrainingData: %s", err)
	}
	if len(points) != 3 {
		t.Fatalf("got %d points, want 3", len(points))
	}
	if points[0].Y == nil || *points[0].Y != 1 {
		t.Fatalf("row 0: got Y=%v, want 1", points[0].Y)
	}
	if points[2].Y != nil {
		t.Fatalf("row 2: got Y=%v, want nil", points[2].Y)
	}
}

func TestWriteSamplesAndHistogram(t *testing.T) {
	dir := t.TempDir()

	samples := bayes.ParameterSamples{{0.25}, {0.25}, {0.75}}
	samplesPath := filepath.Join(dir, "samples.csv")
	if err := WriteSamples(samples, []string{"bias_towards_heads"}, samplesPath); err != nil {
		t.Fatalf("WriteSamples: %s", err)
	}
	data, err := os.ReadFile(samplesPath)
	if err != nil {
		t.Fatalf("reading samples: %s", err)
	}
	if string(data) != "bias_towards_heads\n0.25\n0.25\n0.75\n" {
		t.Fatalf("unexpected samples CSV: %q", data)
	}

	entries := bayes.SortedEntries(samples.Histogram())
	histPath := filepath.Join(dir, "histogram.csv")
	if err := WriteHistogram(entries, []string{"bias_towards_heads"}, histPath); err != nil {
		t.Fatalf("WriteHistogram: %s", err)
	}
	data, err = os.ReadFile(histPath)
	if err != nil {
		t.Fatalf("reading histogram: %s", err)
	}
	if string(data) != "bias_towards_heads,count\n0.25,2\n0.75,1\n" {
		t.Fatalf("unexpected histogram CSV: %q", data)
	}

	read, err := ReadSamples(samplesPath)
	if err != nil {
		t.Fatalf("ReadSamples: %s", err)
	}
	if len(read) != len(samples) {
		t.Fatalf("got %d samples, want %d", len(read), len(samples))
	}
	for i, want := range samples {
		if read[i][0] != want[0] {
			t.Fatalf("sample %d: got %v, want %v", i, read[i], want)
		}
	}
}

func TestWritePredictions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "predictions.csv")
	dists := bayes.PredictiveDists{
		Categories: []string{"tails", "heads"},
		Dists:      []bayes.Distribution{{0.5, 0.5}, {0.1, 0.9}},
	}
	mean, err := dists.Mean()
	if err != nil {
		t.Fatalf("Mean: %s", err)
	}
	if err := WritePredictions(dists.Categories, mean, path); err != nil {
		t.Fatalf("WritePredictions: %s", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading predictions: %s", err)
	}
	if string(data) != "tails,heads\n0.3,0.7\n" {
		t.Fatalf("unexpected predictions CSV: %q", data)
	}
}
