// Package dataset loads the district project CSV used for training and
// prediction.
//
// The file must have a header row. Columns are located by name, so their
// order does not matter and extra columns are ignored. Every row must carry
// numeric values for the four feature columns; the Impact_Score target is
// required only when Options.RequireTarget is set (training).
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	sippErrors "github.com/ezoic/sipp/pkg/errors"
	"github.com/ezoic/sipp/pkg/log"
)

// Column names.
const (
	ColDistrict              = "District"
	ColBudget                = "Budget"
	ColTargetAudience        = "Target_Audience"
	ColLocation              = "Location"
	ColSustainabilityFactors = "Sustainability_Factors"
	ColImpactScore           = "Impact_Score"
)

// FeatureColumns lists the model inputs in the order the model expects them.
var FeatureColumns = []string{
	ColBudget,
	ColTargetAudience,
	ColLocation,
	ColSustainabilityFactors,
}

// NumFeatures is len(FeatureColumns).
const NumFeatures = 4

// Row is one district project entry.
type Row struct {
	District    string
	Features    [NumFeatures]float64
	ImpactScore float64
	HasTarget   bool
}

// Dataset is an in-memory, read-only table of rows.
type Dataset struct {
	Rows []Row
}

// Options controls parsing.
type Options struct {
	// RequireTarget makes a missing or non-numeric Impact_Score an error.
	RequireTarget bool
}

// Load reads the CSV file at path.
func Load(path string, opts Options) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() { _ = file.Close() }()

	ds, err := Read(file, opts)
	if err != nil {
		return nil, sippErrors.Wrapf(err, "dataset %s", path)
	}

	log.GetLoggerWithName("dataset").Info("Dataset loaded",
		log.OperationKey, log.OperationLoad,
		log.PathKey, path,
		log.SamplesKey, ds.Len(),
	)
	return ds, nil
}

// Read parses CSV from r.
func Read(r io.Reader, opts Options) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, sippErrors.NewModelError("dataset.Read", "missing header", sippErrors.ErrEmptyData)
	}
	if err != nil {
		return nil, sippErrors.Wrap(err, "failed to read header")
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	required := append([]string{ColDistrict}, FeatureColumns...)
	if opts.RequireTarget {
		required = append(required, ColImpactScore)
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, sippErrors.Wrapf(sippErrors.ErrMissingColumn, "column %s", col)
		}
	}
	targetIdx, hasTargetCol := index[ColImpactScore]

	ds := &Dataset{}
	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, sippErrors.Wrapf(err, "failed to read row %d", line)
		}

		row := Row{District: strings.TrimSpace(field(record, index[ColDistrict]))}
		for j, col := range FeatureColumns {
			v, err := parseNumber(line, col, field(record, index[col]))
			if err != nil {
				return nil, err
			}
			row.Features[j] = v
		}

		if hasTargetCol {
			raw := field(record, targetIdx)
			v, err := parseNumber(line, ColImpactScore, raw)
			switch {
			case err == nil:
				row.ImpactScore = v
				row.HasTarget = true
			case opts.RequireTarget:
				return nil, err
			}
		}

		ds.Rows = append(ds.Rows, row)
	}

	if len(ds.Rows) == 0 {
		return nil, sippErrors.NewModelError("dataset.Read", "no data rows", sippErrors.ErrEmptyData)
	}
	return ds, nil
}

func field(record []string, i int) string {
	if i < len(record) {
		return record[i]
	}
	return ""
}

func parseNumber(line int, col, raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, sippErrors.NewColumnError(line, col, s, err)
	}
	return v, nil
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.Rows) }

// Districts returns the distinct non-empty district names in ascending
// lexical order.
func (d *Dataset) Districts() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, row := range d.Rows {
		if row.District == "" {
			continue
		}
		if _, ok := seen[row.District]; ok {
			continue
		}
		seen[row.District] = struct{}{}
		out = append(out, row.District)
	}
	sort.Strings(out)
	return out
}

// Filter returns the rows of district in file order.
func (d *Dataset) Filter(district string) []Row {
	var out []Row
	for _, row := range d.Rows {
		if row.District == district {
			out = append(out, row)
		}
	}
	return out
}

// FeatureMatrix packs the feature vectors of rows into an n×4 matrix.
func FeatureMatrix(rows []Row) *mat.Dense {
	if len(rows) == 0 {
		return &mat.Dense{}
	}
	data := make([]float64, 0, len(rows)*NumFeatures)
	for _, row := range rows {
		data = append(data, row.Features[:]...)
	}
	return mat.NewDense(len(rows), NumFeatures, data)
}

// TargetVector packs the Impact_Score values of rows.
func TargetVector(rows []Row) *mat.VecDense {
	if len(rows) == 0 {
		return &mat.VecDense{}
	}
	data := make([]float64, len(rows))
	for i, row := range rows {
		data[i] = row.ImpactScore
	}
	return mat.NewVecDense(len(rows), data)
}
