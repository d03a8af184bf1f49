package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yumyai/omixweb/pkg/model"
)

func newTSVWriter(w io.Writer) *csv.Writer {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	return cw
}

// RenderSummaryTSV writes the association summary as a tab-separated table.
func RenderSummaryTSV(w io.Writer, rows []model.AssociationSummary) error {
	cw := newTSVWriter(w)

	if err := cw.Write([]string{"Gene", "Protein", "Pathway", "Disease", "Metabolite"}); err != nil {
		return fmt.Errorf("write summary header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Gene, r.Protein, r.Pathway, r.Disease, r.Metabolite}); err != nil {
			return fmt.Errorf("write summary row %s: %w", r.Gene, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// RenderTermsTSV writes every library's term table into one tab-separated
// stream, one row per term. Failed libraries contribute a single row with
// the error in the Term column.
func RenderTermsTSV(w io.Writer, outcomes []model.SourceOutcome) error {
	cw := newTSVWriter(w)

	header := []string{"Library", "Source", "Term", "P-value", "Adjusted P-value", "Overlap", "-log10(p)", "Genes"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write terms header: %w", err)
	}

	for _, o := range outcomes {
		if o.Err != "" {
			row := []string{o.Library.Name, o.Library.Source.String(), "ERROR: " + o.Err, "", "", "", "", ""}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write error row for %s: %w", o.Library.Name, err)
			}
			continue
		}
		for _, t := range o.Terms {
			row := []string{
				o.Library.Name,
				t.Source.String(),
				t.Term,
				strconv.FormatFloat(t.PValue, 'g', -1, 64),
				strconv.FormatFloat(t.AdjPValue, 'g', -1, 64),
				t.Overlap,
				strconv.FormatFloat(t.Score, 'g', -1, 64),
				strings.Join(t.Genes, ";"),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write term row %s: %w", t.Term, err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
