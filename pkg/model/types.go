package model

// GenomicVariant is one row of the genomics layer.
type GenomicVariant struct {
	Gene string  `json:"gene"`
	CADD float64 `json:"cadd"`
}

// ExpressionRecord is one row of the transcriptomics layer. Features holds the
// extra numeric columns in header order, used only for the 2-D projection.
type ExpressionRecord struct {
	Gene     string    `json:"gene"`
	LogFC    float64   `json:"logfc"`
	PValue   float64   `json:"p_value"`
	Features []float64 `json:"features,omitempty"`
}

// ProteinMeasurement is one row of the proteomics layer. Protein may hold
// several accessions separated by ";" which all belong to one measurement.
type ProteinMeasurement struct {
	Protein   string  `json:"protein"`
	Intensity float64 `json:"intensity"`
}

// IdentifierMap maps a protein accession to its resolved gene symbol.
// An accession that failed to resolve is simply absent.
type IdentifierMap map[string]string

// TermResult is one enrichment hit from a term source.
type TermResult struct {
	Source    TermSource `json:"source"`
	Term      string     `json:"term"`
	PValue    float64    `json:"p_value"`
	AdjPValue float64    `json:"adj_p_value"`
	Overlap   string     `json:"overlap"`
	Genes     []string   `json:"genes_involved"`
	Score     float64    `json:"neg_log10_p"`
}

// Library names one enrichment gene-set library and the term source its
// results belong to.
type Library struct {
	Name    string     `json:"name"`     // display name, e.g. "Reactome Pathways"
	GeneSet string     `json:"gene_set"` // service-side library id, e.g. "Reactome_2016"
	Source  TermSource `json:"source"`
}

// DefaultLibraries is the stock library set submitted for enrichment.
func DefaultLibraries() []Library {
	return []Library{
		{Name: "Reactome Pathways", GeneSet: "Reactome_2016", Source: SourcePathway},
		{Name: "Disease Associations", GeneSet: "DisGeNET", Source: SourceDisease},
		{Name: "HMDB Metabolites", GeneSet: "HMDB_Metabolites", Source: SourceMetabolite},
	}
}

// SourceOutcome is the tagged per-library result: either Terms, or Err when
// the call failed. One library failing never aborts the others.
type SourceOutcome struct {
	Library Library      `json:"library"`
	Terms   []TermResult `json:"terms,omitempty"`
	Err     string       `json:"error,omitempty"`
}

// AssociationRecord is one flat row emitted per (gene, term) edge during
// graph construction. Exactly one of Pathway/Disease/Metabolite is set.
type AssociationRecord struct {
	Gene       string `json:"gene"`
	Protein    string `json:"protein"`
	Pathway    string `json:"pathway"`
	Disease    string `json:"disease"`
	Metabolite string `json:"metabolite"`
}

// AssociationSummary is one folded row per gene. The multi-valued fields are
// ";"-joined with duplicates removed.
type AssociationSummary struct {
	Gene       string `json:"gene"`
	Protein    string `json:"protein"`
	Pathway    string `json:"pathway"`
	Disease    string `json:"disease"`
	Metabolite string `json:"metabolite"`
}
