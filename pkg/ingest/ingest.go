package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yumyai/omixweb/pkg/model"
)

// ErrMissingColumn marks a layer table without one of its required columns.
// This is fatal for the layer.
var ErrMissingColumn = errors.New("missing required column")

// Header names are fixed by the input contract, no dtype sniffing.
const (
	colGene      = "Gene"
	colCADD      = "CADD"
	colLogFC     = "logFC"
	colPValue    = "p_value"
	colProtein   = "Protein"
	colIntensity = "Intensity"
)

type table struct {
	header []string
	col    map[string]int
	rows   [][]string
}

func readTable(r io.Reader) (*table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty table")
	}

	t := &table{
		header: records[0],
		col:    make(map[string]int, len(records[0])),
		rows:   records[1:],
	}
	for i, name := range t.header {
		t.col[strings.TrimSpace(name)] = i
	}
	return t, nil
}

func (t *table) require(names ...string) error {
	for _, name := range names {
		if _, ok := t.col[name]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}
	return nil
}

func (t *table) str(row []string, name string) string {
	return strings.TrimSpace(row[t.col[name]])
}

func (t *table) num(row []string, rowIdx int, name string) (float64, error) {
	raw := t.str(row, name)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("row %d: column %s: %q is not numeric", rowIdx+2, name, raw)
	}
	return v, nil
}

// ReadGenomics parses the genomics table. Required columns: Gene, CADD.
func ReadGenomics(r io.Reader) ([]model.GenomicVariant, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	if err := t.require(colGene, colCADD); err != nil {
		return nil, err
	}

	out := make([]model.GenomicVariant, 0, len(t.rows))
	for i, row := range t.rows {
		cadd, err := t.num(row, i, colCADD)
		if err != nil {
			return nil, err
		}
		out = append(out, model.GenomicVariant{
			Gene: t.str(row, colGene),
			CADD: cadd,
		})
	}
	return out, nil
}

// ReadTranscriptomics parses the transcriptomics table. Required columns:
// Gene, logFC, p_value. Every other column is a declared numeric feature;
// the returned names list them in header order.
func ReadTranscriptomics(r io.Reader) ([]model.ExpressionRecord, []string, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, nil, err
	}
	if err := t.require(colGene, colLogFC, colPValue); err != nil {
		return nil, nil, err
	}

	var featureNames []string
	var featureIdx []int
	for i, name := range t.header {
		name = strings.TrimSpace(name)
		switch name {
		case colGene, colLogFC, colPValue:
			continue
		}
		featureNames = append(featureNames, name)
		featureIdx = append(featureIdx, i)
	}

	out := make([]model.ExpressionRecord, 0, len(t.rows))
	for i, row := range t.rows {
		logfc, err := t.num(row, i, colLogFC)
		if err != nil {
			return nil, nil, err
		}
		pval, err := t.num(row, i, colPValue)
		if err != nil {
			return nil, nil, err
		}

		var features []float64
		for k, idx := range featureIdx {
			raw := strings.TrimSpace(row[idx])
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("row %d: feature column %s: %q is not numeric", i+2, featureNames[k], raw)
			}
			features = append(features, v)
		}

		out = append(out, model.ExpressionRecord{
			Gene:     t.str(row, colGene),
			LogFC:    logfc,
			PValue:   pval,
			Features: features,
		})
	}
	return out, featureNames, nil
}

// ReadProteomics parses the proteomics table. Required columns: Protein,
// Intensity.
func ReadProteomics(r io.Reader) ([]model.ProteinMeasurement, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	if err := t.require(colProtein, colIntensity); err != nil {
		return nil, err
	}

	out := make([]model.ProteinMeasurement, 0, len(t.rows))
	for i, row := range t.rows {
		intensity, err := t.num(row, i, colIntensity)
		if err != nil {
			return nil, err
		}
		out = append(out, model.ProteinMeasurement{
			Protein:   t.str(row, colProtein),
			Intensity: intensity,
		})
	}
	return out, nil
}
