package model

import (
	"sort"
	"strings"

	"github.com/yumyai/omixweb/internal/util"
)

type NodeKind int

const (
	KindGene NodeKind = iota
	KindProtein
	KindTerm
	KindLegend
)

func (k NodeKind) String() string {
	switch k {
	case KindGene:
		return "gene"
	case KindProtein:
		return "protein"
	case KindTerm:
		return "term"
	case KindLegend:
		return "legend"
	default:
		return "unknown"
	}
}

func (k NodeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *NodeKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "gene":
		*k = KindGene
	case "protein":
		*k = KindProtein
	case "term":
		*k = KindTerm
	case "legend":
		*k = KindLegend
	}
	return nil
}

// Node is one vertex of the association graph. Identity is the label: the
// same label never produces two nodes no matter how often it is inserted.
type Node struct {
	ID    int      `json:"id"`
	Label string   `json:"label"`
	Kind  NodeKind `json:"kind"`
	Color string   `json:"color"`
}

// Edge is an unordered pair of node IDs with From < To.
type Edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// AssociationGraph links genes, proteins and enrichment terms. Nodes are
// arena-allocated and indexed by label so lookup-or-create is idempotent;
// edges are deduplicated on the unordered pair.
type AssociationGraph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`

	index map[string]int
	edges map[Edge]struct{}
}

func NewAssociationGraph() *AssociationGraph {
	g := &AssociationGraph{
		index: make(map[string]int),
		edges: make(map[Edge]struct{}),
	}
	g.addLegend()
	return g
}

// Legend entries are purely a visualization key: one box per node color,
// pinned by the front end. They use reserved labels so they never collide
// with data nodes.
func (g *AssociationGraph) addLegend() {
	legend := []struct {
		label string
		color string
	}{
		{"Gene", ColorGene},
		{"Protein", ColorProtein},
		{"Pathway", ColorPathway},
		{"Metabolite", ColorMetabolite},
		{"Disease", ColorDisease},
	}
	for _, l := range legend {
		g.ensure("legend_"+l.label, KindLegend, l.color)
	}
}

// ensure returns the node ID for label, creating the node on first sight.
func (g *AssociationGraph) ensure(label string, kind NodeKind, color string) int {
	if id, ok := g.index[label]; ok {
		return id
	}
	id := len(g.Nodes)
	g.Nodes = append(g.Nodes, Node{ID: id, Label: label, Kind: kind, Color: color})
	g.index[label] = id
	return id
}

// connect adds the undirected edge (a, b) unless it already exists.
func (g *AssociationGraph) connect(a, b int) {
	if a > b {
		a, b = b, a
	}
	e := Edge{From: a, To: b}
	if _, ok := g.edges[e]; ok {
		return
	}
	g.edges[e] = struct{}{}
	g.Edges = append(g.Edges, e)
}

// DataNodes returns the non-legend nodes.
func (g *AssociationGraph) DataNodes() []Node {
	var nodes []Node
	for _, n := range g.Nodes {
		if n.Kind != KindLegend {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// GraphResult bundles the graph with the flat per-edge association records
// produced while building it.
type GraphResult struct {
	Graph   *AssociationGraph   `json:"graph"`
	Records []AssociationRecord `json:"records"`
}

// BuildAssociationGraph constructs the association graph from the per-library
// enrichment outcomes and the protein-to-gene map, taking at most maxTerms
// terms per library. Failed libraries contribute nothing. One flat record is
// emitted per (gene, term) pair discovered, with the matched proteins joined
// by ";".
func BuildAssociationGraph(outcomes []SourceOutcome, proteinGene map[string]string, maxTerms int) *GraphResult {

	g := NewAssociationGraph()
	var records []AssociationRecord

	// Inverted index so per-gene protein lookup does not rescan the whole
	// map for every edge. Protein lists are sorted for stable output.
	geneProteins := make(map[string][]string)
	for prot, gene := range proteinGene {
		geneProteins[gene] = append(geneProteins[gene], prot)
	}
	for gene := range geneProteins {
		sort.Strings(geneProteins[gene])
	}

	for _, outcome := range outcomes {
		if outcome.Err != "" {
			continue
		}
		source := outcome.Library.Source
		color := source.Color()

		terms := outcome.Terms
		if maxTerms > 0 && len(terms) > maxTerms {
			terms = terms[:maxTerms]
		}

		for _, term := range terms {
			termID := g.ensure(term.Term, KindTerm, color)

			for _, gene := range cleanGenes(term.Genes) {
				geneID := g.ensure(gene, KindGene, ColorGene)
				g.connect(geneID, termID)

				matched := geneProteins[gene]
				for _, prot := range matched {
					protID := g.ensure(prot, KindProtein, ColorProtein)
					g.connect(geneID, protID)
				}

				rec := AssociationRecord{
					Gene:    gene,
					Protein: strings.Join(matched, ";"),
				}
				switch source {
				case SourcePathway:
					rec.Pathway = term.Term
				case SourceDisease:
					rec.Disease = term.Term
				case SourceMetabolite:
					rec.Metabolite = term.Term
				}
				records = append(records, rec)
			}
		}
	}

	return &GraphResult{Graph: g, Records: records}
}

// cleanGenes re-splits any ";"-packed entries and drops blanks.
func cleanGenes(genes []string) []string {
	var out []string
	for _, g := range genes {
		out = append(out, util.CleanSplit(g, ";")...)
	}
	return out
}
