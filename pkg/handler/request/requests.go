package request

import (
	"strconv"

	"github.com/yumyai/omixweb/pkg/model"
)

// IntegrateRequest carries the raw form values submitted with the three
// table uploads. Empty fields fall back to the documented defaults; anything
// non-numeric is a configuration error surfaced to the caller before any
// filtering happens.
type IntegrateRequest struct {
	CADDMin      string `json:"cadd_min"`
	LogFCMin     string `json:"logfc_min"`
	PValueMax    string `json:"p_value_max"`
	IntensityMin string `json:"intensity_min"`

	RunEnrichment        string `json:"run_enrichment"`
	ShowNetwork          string `json:"show_network"`
	ShowAssociationTable string `json:"show_association_table"`

	MaxNetworkTerms string `json:"max_network_terms"`
}

// Config parses and validates the request into a pipeline Config.
func (r IntegrateRequest) Config() (model.Config, error) {
	cfg := model.DefaultConfig()

	var err error
	if cfg.CADDMin, err = parseFloat("cadd_min", r.CADDMin, cfg.CADDMin); err != nil {
		return cfg, err
	}
	if cfg.LogFCMin, err = parseFloat("logfc_min", r.LogFCMin, cfg.LogFCMin); err != nil {
		return cfg, err
	}
	if cfg.PValueMax, err = parseFloat("p_value_max", r.PValueMax, cfg.PValueMax); err != nil {
		return cfg, err
	}
	if cfg.IntensityMin, err = parseFloat("intensity_min", r.IntensityMin, cfg.IntensityMin); err != nil {
		return cfg, err
	}

	if cfg.RunEnrichment, err = parseBool("run_enrichment", r.RunEnrichment, cfg.RunEnrichment); err != nil {
		return cfg, err
	}
	if cfg.ShowNetwork, err = parseBool("show_network", r.ShowNetwork, cfg.ShowNetwork); err != nil {
		return cfg, err
	}
	if cfg.ShowAssociationTable, err = parseBool("show_association_table", r.ShowAssociationTable, cfg.ShowAssociationTable); err != nil {
		return cfg, err
	}

	if cfg.MaxNetworkTerms, err = parseInt("max_network_terms", r.MaxNetworkTerms, cfg.MaxNetworkTerms); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func parseFloat(field, raw string, fallback float64) (float64, error) {
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &model.ConfigError{Field: field, Reason: "must be numeric"}
	}
	return v, nil
}

func parseBool(field, raw string, fallback bool) (bool, error) {
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &model.ConfigError{Field: field, Reason: "must be true or false"}
	}
	return v, nil
}

func parseInt(field, raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &model.ConfigError{Field: field, Reason: "must be an integer"}
	}
	return v, nil
}
