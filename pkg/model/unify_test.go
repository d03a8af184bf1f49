package model

import (
	"reflect"
	"testing"
)

func TestExtractAccessions(t *testing.T) {

	rows := []ProteinMeasurement{
		{Protein: "P04637;Q00987", Intensity: 5000},
		{Protein: " P04637 ", Intensity: 2000}, // duplicate across rows, padded
		{Protein: ";;", Intensity: 3000},       // nothing usable
	}

	got := ExtractAccessions(rows)
	want := []string{"P04637", "Q00987"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractAccessions = %v, want %v", got, want)
	}
}

func TestUnifyEntities(t *testing.T) {

	gf := []GenomicVariant{{Gene: "TP53", CADD: 25}}
	tf := []ExpressionRecord{{Gene: "TP53", LogFC: 2, PValue: 0.01}, {Gene: "BRCA1", LogFC: 1.5, PValue: 0.02}}
	pf := []ProteinMeasurement{{Protein: "P04637;Q00987", Intensity: 5000}}

	ids := IdentifierMap{"P04637": "TP53"} // Q00987 did not resolve

	union := UnifyEntities(gf, tf, pf, ids)

	wantMap := map[string]string{"P04637": "TP53"}
	if !reflect.DeepEqual(union.ProteinGene, wantMap) {
		t.Errorf("ProteinGene = %v, want %v", union.ProteinGene, wantMap)
	}

	// Expanded table has exactly one row for the resolved accession.
	if len(union.Expanded) != 1 || union.Expanded[0] != (ExpandedProtein{Protein: "P04637", GeneName: "TP53"}) {
		t.Errorf("Expanded = %+v", union.Expanded)
	}

	wantEntities := []string{"BRCA1", "TP53"}
	if !reflect.DeepEqual(union.Entities, wantEntities) {
		t.Errorf("Entities = %v, want %v", union.Entities, wantEntities)
	}
}

// Adding resolved proteins can only grow the entity set.
func TestUnifyEntitiesMonotonic(t *testing.T) {

	gf := []GenomicVariant{{Gene: "TP53"}}
	tf := []ExpressionRecord{{Gene: "BRCA1"}}
	pf := []ProteinMeasurement{{Protein: "P11111"}}

	without := UnifyEntities(gf, tf, pf, IdentifierMap{})
	with := UnifyEntities(gf, tf, pf, IdentifierMap{"P11111": "EGFR"})

	if len(with.Entities) < len(without.Entities) {
		t.Errorf("entity set shrank: %v -> %v", without.Entities, with.Entities)
	}
	found := false
	for _, e := range with.Entities {
		if e == "EGFR" {
			found = true
		}
	}
	if !found {
		t.Errorf("resolved gene missing from union: %v", with.Entities)
	}
}

func TestUnifyEntitiesNoResolution(t *testing.T) {

	pf := []ProteinMeasurement{{Protein: "P04637", Intensity: 5000}}

	union := UnifyEntities(nil, nil, pf, IdentifierMap{})

	if len(union.ProteinGene) != 0 {
		t.Errorf("expected zero resolved proteins, got %v", union.ProteinGene)
	}
	if union.Entities == nil {
		t.Errorf("unifier must still produce a (possibly empty) entity list")
	}
}

// A recurring accession must not crash; the later row wins.
func TestUnifyEntitiesLastWriteWins(t *testing.T) {

	pf := []ProteinMeasurement{
		{Protein: "P04637", Intensity: 5000},
		{Protein: "P04637", Intensity: 6000},
	}

	union := UnifyEntities(nil, nil, pf, IdentifierMap{"P04637": "TP53"})

	if union.ProteinGene["P04637"] != "TP53" {
		t.Errorf("ProteinGene = %v", union.ProteinGene)
	}
	if len(union.Expanded) != 1 {
		t.Errorf("duplicate accession expanded twice: %+v", union.Expanded)
	}
}

func TestCleanGeneList(t *testing.T) {

	got := CleanGeneList([]string{" TP53 ", "", "BRCA1", "   "})
	want := []string{"TP53", "BRCA1"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("CleanGeneList = %v, want %v", got, want)
	}
}
