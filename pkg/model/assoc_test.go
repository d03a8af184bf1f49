package model

import (
	"strings"
	"testing"
)

func TestAggregateAssociations(t *testing.T) {

	records := []AssociationRecord{
		{Gene: "TP53", Protein: "P04637", Pathway: "PathwayA"},
		{Gene: "TP53", Protein: "P04637", Disease: "DiseaseB"},
		{Gene: "BRCA1", Pathway: "PathwayA"},
	}

	summary := AggregateAssociations(records)

	if len(summary) != 2 {
		t.Fatalf("expected one row per gene, got %d", len(summary))
	}

	// TP53 has 3 populated fields, BRCA1 has 1; densest first.
	if summary[0].Gene != "TP53" {
		t.Fatalf("expected TP53 first, got %s", summary[0].Gene)
	}

	tp53 := summary[0]
	if tp53.Pathway != "PathwayA" || tp53.Disease != "DiseaseB" {
		t.Errorf("TP53 fold wrong: %+v", tp53)
	}
	if tp53.Protein != "P04637" {
		t.Errorf("duplicate protein value not folded: %q", tp53.Protein)
	}
}

// Folded fields contain no duplicate tokens.
func TestAggregateAssociationsDedup(t *testing.T) {

	records := []AssociationRecord{
		{Gene: "TP53", Pathway: "PathwayA"},
		{Gene: "TP53", Pathway: "PathwayA"},
		{Gene: "TP53", Pathway: "PathwayB"},
	}

	summary := AggregateAssociations(records)
	if len(summary) != 1 {
		t.Fatalf("expected 1 row, got %d", len(summary))
	}

	tokens := strings.Split(summary[0].Pathway, ";")
	seen := make(map[string]bool)
	for _, tok := range tokens {
		if seen[tok] {
			t.Errorf("duplicate token %q in %q", tok, summary[0].Pathway)
		}
		seen[tok] = true
	}
	if len(tokens) != 2 {
		t.Errorf("expected PathwayA;PathwayB, got %q", summary[0].Pathway)
	}
}

func TestAggregateAssociationsEmptyFieldsStayEmpty(t *testing.T) {

	records := []AssociationRecord{
		{Gene: "G1", Pathway: "P"},
		{Gene: "G1", Protein: ""},
	}

	summary := AggregateAssociations(records)

	if summary[0].Protein != "" || summary[0].Disease != "" || summary[0].Metabolite != "" {
		t.Errorf("empty values leaked into the fold: %+v", summary[0])
	}
}

func TestAggregateAssociationsStableTies(t *testing.T) {

	records := []AssociationRecord{
		{Gene: "FIRST", Pathway: "P1"},
		{Gene: "SECOND", Pathway: "P2"},
	}

	summary := AggregateAssociations(records)

	if summary[0].Gene != "FIRST" || summary[1].Gene != "SECOND" {
		t.Errorf("equal-density rows reordered: %+v", summary)
	}
}

func TestAggregateAssociationsEmptyInput(t *testing.T) {

	summary := AggregateAssociations(nil)
	if len(summary) != 0 {
		t.Errorf("expected empty summary, got %+v", summary)
	}
}
