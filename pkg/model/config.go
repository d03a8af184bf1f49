package model

import (
	"fmt"
	"math"
)

// Config carries every user-facing pipeline setting. It replaces the ambient
// checkbox/slider state of the UI: each stage checks its own flag.
type Config struct {
	CADDMin      float64 `json:"cadd_min"`       // genomics: keep CADD >= threshold
	LogFCMin     float64 `json:"logfc_min"`      // transcriptomics: keep |logFC| >= threshold
	PValueMax    float64 `json:"p_value_max"`    // transcriptomics: keep p_value <= ceiling
	IntensityMin float64 `json:"intensity_min"`  // proteomics: keep Intensity >= floor

	RunEnrichment        bool `json:"run_enrichment"`
	ShowNetwork          bool `json:"show_network"`
	ShowAssociationTable bool `json:"show_association_table"`

	// MaxNetworkTerms caps how many top terms per source feed the graph.
	MaxNetworkTerms int `json:"max_network_terms"`
}

func DefaultConfig() Config {
	return Config{
		CADDMin:              20,
		LogFCMin:             1,
		PValueMax:            0.05,
		IntensityMin:         1000,
		RunEnrichment:        true,
		ShowNetwork:          true,
		ShowAssociationTable: true,
		MaxNetworkTerms:      10,
	}
}

// ConfigError reports an unusable threshold. It is fatal: the pipeline halts
// before any filtering.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid setting %s: %s", e.Field, e.Reason)
}

// Validate checks every threshold for finiteness and range.
func (c Config) Validate() error {
	check := func(field string, v float64) *ConfigError {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &ConfigError{Field: field, Reason: "must be a finite number"}
		}
		if v < 0 {
			return &ConfigError{Field: field, Reason: "must not be negative"}
		}
		return nil
	}

	if err := check("cadd_min", c.CADDMin); err != nil {
		return err
	}
	if err := check("logfc_min", c.LogFCMin); err != nil {
		return err
	}
	if err := check("intensity_min", c.IntensityMin); err != nil {
		return err
	}
	if math.IsNaN(c.PValueMax) || c.PValueMax <= 0 || c.PValueMax > 1 {
		return &ConfigError{Field: "p_value_max", Reason: "must be in (0, 1]"}
	}
	if c.MaxNetworkTerms < 1 || c.MaxNetworkTerms > 50 {
		return &ConfigError{Field: "max_network_terms", Reason: "must be between 1 and 50"}
	}
	return nil
}
