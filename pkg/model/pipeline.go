package model

import (
	"context"
	"fmt"
	"math"

	"github.com/yumyai/omixweb/logger"
	"go.uber.org/zap"
)

// Resolver maps protein accessions to gene symbols. Partial results are
// acceptable: accessions the backend could not resolve are simply missing.
type Resolver interface {
	Resolve(ctx context.Context, accessions []string) (IdentifierMap, error)
}

// Enricher submits a gene list against one gene-set library.
type Enricher interface {
	Enrich(ctx context.Context, genes []string, geneSet string) ([]TermResult, error)
}

// Inputs are the three parsed omics tables, unfiltered.
type Inputs struct {
	Genomics        []GenomicVariant
	Transcriptomics []ExpressionRecord
	Proteomics      []ProteinMeasurement
}

// Result is everything a pipeline run produces for the presentation layer.
type Result struct {
	GenomicsKept        int `json:"genomics_kept"`
	TranscriptomicsKept int `json:"transcriptomics_kept"`
	ProteomicsKept      int `json:"proteomics_kept"`

	Entities         []string            `json:"entities"`
	Expanded         []ExpandedProtein   `json:"expanded_proteins"`
	ProteinGene      map[string]string   `json:"protein_gene"`
	ResolvedProteins int                 `json:"resolved_proteins"`

	Sources []SourceOutcome `json:"sources,omitempty"`

	Graph   *AssociationGraph    `json:"graph,omitempty"`
	Records []AssociationRecord  `json:"records,omitempty"`
	Summary []AssociationSummary `json:"summary,omitempty"`

	Projection *Projection `json:"projection,omitempty"`

	Warnings []string `json:"warnings,omitempty"`
}

// Run executes the cross-omics integration pipeline: filter each layer,
// resolve protein identifiers, unify entities, enrich, build the association
// graph and fold the association table. Failures local to one batch or one
// library are recorded as warnings or per-source errors and never abort the
// run; only an invalid Config is fatal.
func Run(ctx context.Context, cfg Config, in Inputs, resolver Resolver, enricher Enricher, libraries []Library) (*Result, error) {

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	res := &Result{}

	gf := FilterGenomics(in.Genomics, cfg.CADDMin)
	tf := FilterTranscriptomics(in.Transcriptomics, cfg.PValueMax, cfg.LogFCMin)
	pf := FilterProteomics(in.Proteomics, cfg.IntensityMin)
	res.GenomicsKept = len(gf)
	res.TranscriptomicsKept = len(tf)
	res.ProteomicsKept = len(pf)

	logger.Info("Layers filtered",
		zap.Int("genomics", len(gf)),
		zap.Int("transcriptomics", len(tf)),
		zap.Int("proteomics", len(pf)),
	)

	accessions := ExtractAccessions(pf)
	ids := IdentifierMap{}
	if len(accessions) > 0 {
		m, err := resolver.Resolve(ctx, accessions)
		if err != nil {
			// Resolver failure degrades the run, it does not stop it.
			logger.Warn("Identifier resolution failed", zap.Error(err))
			res.Warnings = append(res.Warnings, fmt.Sprintf("identifier resolution failed: %v", err))
		} else {
			ids = m
		}
	}

	union := UnifyEntities(gf, tf, pf, ids)
	res.Entities = union.Entities
	res.Expanded = union.Expanded
	res.ProteinGene = union.ProteinGene
	res.ResolvedProteins = len(union.ProteinGene)

	if len(pf) > 0 && res.ResolvedProteins == 0 {
		res.Warnings = append(res.Warnings, "no proteins could be mapped to gene names; network may be incomplete")
	}

	if cfg.RunEnrichment {
		genes := CleanGeneList(union.Entities)
		for _, lib := range libraries {
			outcome := SourceOutcome{Library: lib}

			terms, err := enricher.Enrich(ctx, genes, lib.GeneSet)
			switch {
			case err != nil:
				logger.Warn("Enrichment source failed",
					zap.String("library", lib.Name),
					zap.Error(err),
				)
				outcome.Err = err.Error()
			case len(terms) == 0:
				res.Warnings = append(res.Warnings, fmt.Sprintf("no results from %s", lib.Name))
			default:
				for i := range terms {
					terms[i].Source = lib.Source
					if terms[i].PValue > 0 {
						terms[i].Score = -math.Log10(terms[i].PValue)
					}
				}
				outcome.Terms = terms
			}
			res.Sources = append(res.Sources, outcome)
		}
	}

	if cfg.RunEnrichment && (cfg.ShowNetwork || cfg.ShowAssociationTable) {
		built := BuildAssociationGraph(res.Sources, union.ProteinGene, cfg.MaxNetworkTerms)
		res.Records = built.Records
		if cfg.ShowNetwork {
			res.Graph = built.Graph
		}
		if cfg.ShowAssociationTable {
			res.Summary = AggregateAssociations(built.Records)
		}
	}

	if len(in.Transcriptomics) > 0 {
		proj, err := ProjectPCA(in.Transcriptomics)
		if err != nil {
			res.Warnings = append(res.Warnings, err.Error())
		} else {
			res.Projection = proj
		}
	}

	return res, nil
}
