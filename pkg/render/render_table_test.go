package render

import (
	"strings"
	"testing"

	"github.com/yumyai/omixweb/pkg/model"
)

func TestRenderSummaryTSV(t *testing.T) {
	rows := []model.AssociationSummary{
		{Gene: "TP53", Protein: "P04637", Pathway: "PathwayA;PathwayB", Disease: "Neoplasm"},
		{Gene: "BRCA1"},
	}

	var sb strings.Builder
	if err := RenderSummaryTSV(&sb, rows); err != nil {
		t.Fatalf("RenderSummaryTSV: %v", err)
	}

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "Gene\tProtein\tPathway\tDisease\tMetabolite" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "TP53\tP04637\tPathwayA;PathwayB\tNeoplasm") {
		t.Errorf("row = %q", lines[1])
	}
}

func TestRenderTermsTSVFailedLibrary(t *testing.T) {
	outcomes := []model.SourceOutcome{
		{
			Library: model.Library{Name: "Reactome Pathways", GeneSet: "Reactome_2016", Source: model.SourcePathway},
			Terms: []model.TermResult{
				{Source: model.SourcePathway, Term: "PathwayA", PValue: 0.001, AdjPValue: 0.01, Overlap: "2/50", Score: 3, Genes: []string{"TP53", "EGFR"}},
			},
		},
		{
			Library: model.Library{Name: "HMDB Metabolites", GeneSet: "HMDB_Metabolites", Source: model.SourceMetabolite},
			Err:     "upstream timeout",
		},
	}

	var sb strings.Builder
	if err := RenderTermsTSV(&sb, outcomes); err != nil {
		t.Fatalf("RenderTermsTSV: %v", err)
	}

	out := sb.String()
	if !strings.Contains(out, "PathwayA\t0.001\t0.01\t2/50\t3\tTP53;EGFR") {
		t.Errorf("term row missing:\n%s", out)
	}
	if !strings.Contains(out, "ERROR: upstream timeout") {
		t.Errorf("failed library should still produce a row:\n%s", out)
	}
}
