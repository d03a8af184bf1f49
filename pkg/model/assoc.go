package model

import (
	"sort"
	"strings"
)

// fieldFold accumulates distinct non-empty values in first-seen order.
// Values are opaque at this stage: a pre-joined protein list counts as one
// value, dedup happens on the whole string.
type fieldFold struct {
	seen  map[string]struct{}
	order []string
}

func (f *fieldFold) add(v string) {
	if v == "" {
		return
	}
	if f.seen == nil {
		f.seen = make(map[string]struct{})
	}
	if _, ok := f.seen[v]; ok {
		return
	}
	f.seen[v] = struct{}{}
	f.order = append(f.order, v)
}

func (f *fieldFold) join() string {
	return strings.Join(f.order, ";")
}

// AggregateAssociations folds the flat association records into one summary
// row per gene, then orders rows by how many of the folded fields are
// populated (densest first, ties stable on first appearance). Genes that
// never appeared in any enrichment result are absent by construction: the
// summary is driven by the record list, not the full entity set.
func AggregateAssociations(records []AssociationRecord) []AssociationSummary {

	type group struct {
		protein, pathway, disease, metabolite fieldFold
	}

	groups := make(map[string]*group)
	var geneOrder []string

	for _, rec := range records {
		gr, ok := groups[rec.Gene]
		if !ok {
			gr = &group{}
			groups[rec.Gene] = gr
			geneOrder = append(geneOrder, rec.Gene)
		}
		gr.protein.add(rec.Protein)
		gr.pathway.add(rec.Pathway)
		gr.disease.add(rec.Disease)
		gr.metabolite.add(rec.Metabolite)
	}

	summary := make([]AssociationSummary, 0, len(geneOrder))
	for _, gene := range geneOrder {
		gr := groups[gene]
		summary = append(summary, AssociationSummary{
			Gene:       gene,
			Protein:    gr.protein.join(),
			Pathway:    gr.pathway.join(),
			Disease:    gr.disease.join(),
			Metabolite: gr.metabolite.join(),
		})
	}

	density := func(s AssociationSummary) int {
		n := 0
		for _, v := range []string{s.Protein, s.Pathway, s.Disease, s.Metabolite} {
			if v != "" {
				n++
			}
		}
		return n
	}

	sort.SliceStable(summary, func(i, j int) bool {
		return density(summary[i]) > density(summary[j])
	})

	return summary
}
