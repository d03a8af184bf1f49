package model

import (
	"sort"
	"strings"

	"github.com/yumyai/omixweb/internal/util"
)

// ExtractAccessions collects the distinct protein accessions from the
// proteomics rows. Each Protein field is split on ";" and whitespace-trimmed;
// empties are dropped and duplicates across rows merged. The result is sorted
// so downstream batching is deterministic.
func ExtractAccessions(rows []ProteinMeasurement) []string {
	seen := make(map[string]struct{})
	for _, r := range rows {
		for _, acc := range util.CleanSplit(r.Protein, ";") {
			seen[acc] = struct{}{}
		}
	}

	accs := make([]string, 0, len(seen))
	for acc := range seen {
		accs = append(accs, acc)
	}
	sort.Strings(accs)
	return accs
}

// ExpandedProtein is one accession together with its resolved gene symbol.
type ExpandedProtein struct {
	Protein  string `json:"protein"`
	GeneName string `json:"gene_name"`
}

// EntityUnion is the unified entity set across the three layers plus the
// protein-to-gene relation recovered from identifier resolution.
type EntityUnion struct {
	Entities    []string          `json:"entities"` // sorted
	ProteinGene map[string]string `json:"protein_gene"`
	Expanded    []ExpandedProtein `json:"expanded"`
}

// UnifyEntities computes the gene union of the genomics and transcriptomics
// layers, expands the proteomics rows through the identifier map, and merges
// every resolved gene into the union. Zero resolved proteins is not an error;
// the caller can see it through len(ProteinGene).
func UnifyEntities(genomics []GenomicVariant, transcriptomics []ExpressionRecord, proteomics []ProteinMeasurement, ids IdentifierMap) *EntityUnion {

	union := make(map[string]struct{})
	for _, v := range genomics {
		union[v.Gene] = struct{}{}
	}
	for _, e := range transcriptomics {
		union[e.Gene] = struct{}{}
	}

	// Re-split every proteomics row and keep the accessions a resolver could
	// map. Last write wins if an accession recurs across rows.
	proteinGene := make(map[string]string)
	var expanded []ExpandedProtein
	for _, p := range proteomics {
		for _, acc := range util.CleanSplit(p.Protein, ";") {
			gene, ok := ids[acc]
			if !ok || gene == "" {
				continue
			}
			if _, dup := proteinGene[acc]; !dup {
				expanded = append(expanded, ExpandedProtein{Protein: acc, GeneName: gene})
			}
			proteinGene[acc] = gene
		}
	}

	for _, gene := range proteinGene {
		union[gene] = struct{}{}
	}

	entities := make([]string, 0, len(union))
	for e := range union {
		entities = append(entities, e)
	}
	sort.Strings(entities)

	return &EntityUnion{
		Entities:    entities,
		ProteinGene: proteinGene,
		Expanded:    expanded,
	}
}

// CleanGeneList prepares the unified entity list for enrichment submission:
// trimmed, empties dropped.
func CleanGeneList(entities []string) []string {
	var cleaned []string
	for _, e := range entities {
		e = strings.TrimSpace(e)
		if e != "" {
			cleaned = append(cleaned, e)
		}
	}
	return cleaned
}
