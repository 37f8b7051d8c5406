package gfsio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fuscadan/gfs/bayes"
	"github.com/fuscadan/gfs/gfserr"
)

// ReadTrainingData reads a training-data CSV (spec.md §6: an "id" column
// and a model-specific observation column) through preprocess, skipping the
// header row.
func ReadTrainingData(path string, preprocess func(row []string, rowNum int) (bayes.DataPoint, error)) ([]bayes.DataPoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &gfserr.IOError{Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.ReuseRecord = true

	if _, err := r.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, &gfserr.IOError{Path: path, Err: err}
	}

	var points []bayes.DataPoint
	rowNum := 0
	for {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &gfserr.IOError{Path: path, Err: err}
		}
		rowNum++
		row := make([]string, len(fields))
		copy(row, fields)
		point, err := preprocess(row, rowNum)
		if err != nil {
			return nil, err
		}
		points = append(points, point)
	}
	return points, nil
}

// WriteSamples writes posterior samples as a CSV with one column per
// parameter axis, named by names (spec.md §6's posterior_samples_file).
func WriteSamples(samples bayes.ParameterSamples, names []string, path string) error {
	if err := makeDir(path); err != nil {
		return &gfserr.IOError{Path: path, Err: err}
	}
	f, err := os.Create(path)
	if err != nil {
		return &gfserr.IOError{Path: path, Err: err}
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(names); err != nil {
		return &gfserr.IOError{Path: path, Err: err}
	}
	row := make([]string, len(names))
	for _, sample := range samples {
		if len(sample) != len(names) {
			return &gfserr.IOError{Path: path, Err: fmt.Errorf("sample has %d axes, want %d", len(sample), len(names))}
		}
		for i, v := range sample {
			row[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return &gfserr.IOError{Path: path, Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &gfserr.IOError{Path: path, Err: err}
	}
	return nil
}

// ReadSamples reads a posterior samples CSV written by WriteSamples back
// into a ParameterSamples, skipping the axis-name header row.
func ReadSamples(path string) (bayes.ParameterSamples, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &gfserr.IOError{Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, &gfserr.IOError{Path: path, Err: err}
	}

	var samples bayes.ParameterSamples
	rowNum := 0
	for {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &gfserr.IOError{Path: path, Err: err}
		}
		rowNum++
		if len(fields) != len(header) {
			return nil, &gfserr.IOError{Path: path, Err: fmt.Errorf("row %d has %d columns, want %d", rowNum, len(fields), len(header))}
		}
		values := make([]float64, len(fields))
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, &gfserr.IOError{Path: path, Err: fmt.Errorf("row %d: %w", rowNum, err)}
			}
			values[i] = v
		}
		param, err := bayes.NewParameter(values)
		if err != nil {
			return nil, err
		}
		samples = append(samples, param)
	}
	return samples, nil
}

// WriteHistogram writes a parameter histogram as a CSV: one column per
// parameter axis followed by a "count" column, one row per entry in the
// order given (it does not sort them).
func WriteHistogram(entries []bayes.HistogramEntry, names []string, path string) error {
	if err := makeDir(path); err != nil {
		return &gfserr.IOError{Path: path, Err: err}
	}
	f, err := os.Create(path)
	if err != nil {
		return &gfserr.IOError{Path: path, Err: err}
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := append(append([]string{}, names...), "count")
	if err := w.Write(header); err != nil {
		return &gfserr.IOError{Path: path, Err: err}
	}
	row := make([]string, len(names)+1)
	for _, entry := range entries {
		for i, v := range entry.Parameter {
			row[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		row[len(names)] = strconv.Itoa(entry.Count)
		if err := w.Write(row); err != nil {
			return &gfserr.IOError{Path: path, Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &gfserr.IOError{Path: path, Err: err}
	}
	return nil
}

// WritePredictions writes a prediction CSV: a header of category names
// followed by a single row, the mean predictive distribution over the
// posterior (spec.md §6's prediction_file).
func WritePredictions(categories []string, mean bayes.Distribution, path string) error {
	if err := makeDir(path); err != nil {
		return &gfserr.IOError{Path: path, Err: err}
	}
	f, err := os.Create(path)
	if err != nil {
		return &gfserr.IOError{Path: path, Err: err}
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(categories); err != nil {
		return &gfserr.IOError{Path: path, Err: err}
	}
	row := make([]string, len(mean))
	for i, p := range mean {
		row[i] = strconv.FormatFloat(p, 'g', -1, 64)
	}
	if err := w.Write(row); err != nil {
		return &gfserr.IOError{Path: path, Err: err}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &gfserr.IOError{Path: path, Err: err}
	}
	return nil
}
