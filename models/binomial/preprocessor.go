package binomial

import (
	"fmt"
	"strconv"

	"github.com/fuscadan/gfs/bayes"
	"github.com/fuscadan/gfs/gfserr"
	"github.com/fuscadan/gfs/project"
)

// Preprocessor turns a (id, y) training row, or a (id) predict-only row,
// into a bayes.DataPoint. This is the Binomial model's CSV shape from
// spec.md §6.
type Preprocessor struct{}

var _ project.Preprocessor = Preprocessor{}

// ProcessRow implements project.Preprocessor.
func (Preprocessor) ProcessRow(row []string, rowNum int) (bayes.DataPoint, error) {
	if len(row) < 1 {
		return bayes.DataPoint{}, &gfserr.DataError{Row: rowNum, Msg: "expected at least an id column"}
	}
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return bayes.DataPoint{}, &gfserr.DataError{Row: rowNum, Msg: fmt.Sprintf("invalid id %q: %s", row[0], err)}
	}
	point := bayes.DataPoint{ID: id}
	if len(row) > 1 && row[1] != "" {
		y, err := strconv.Atoi(row[1])
		if err != nil {
			return bayes.DataPoint{}, &gfserr.DataError{Row: rowNum, Msg: fmt.Sprintf("invalid y %q: %s", row[1], err)}
		}
		point.Y = &y
	}
	return point, nil
}

// NewModel adapts New to project.ModelFactory: kwargs must contain an
// integer "bit_depth".
func NewModel(kwargs map[string]any) (bayes.Model, error) {
	raw, ok := kwargs["bit_depth"]
	if !ok {
		return nil, &gfserr.ConfigError{Field: "model.kwargs.bit_depth", Msg: "missing required field"}
	}
	bitDepth, err := toUint64(raw)
	if err != nil {
		return nil, &gfserr.ConfigError{Field: "model.kwargs.bit_depth", Msg: err.Error()}
	}
	return New(bitDepth), nil
}

// NewPreprocessor adapts Preprocessor to project.PreprocessorFactory. The
// Binomial preprocessor takes no kwargs.
func NewPreprocessor(kwargs map[string]any) (project.Preprocessor, error) {
	return Preprocessor{}, nil
}

func toUint64(v any) (uint64, error) {
	switch n := v.(type) {
	case int64:
		if n < 0 {
			return 0, fmt.Errorf("must be non-negative, got %d", n)
		}
		return uint64(n), nil
	case int:
		if n < 0 {
			return 0, fmt.Errorf("must be non-negative, got %d", n)
		}
		return uint64(n), nil
	default:
		return 0, fmt.Errorf("expected an integer, got %T", v)
	}
}
