package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/yumyai/omixweb/logger"
	"github.com/yumyai/omixweb/pkg/handler/request"
	"github.com/yumyai/omixweb/pkg/ingest"
	"github.com/yumyai/omixweb/pkg/model"
	"go.uber.org/zap"
)

const maxUploadBytes = 64 << 20

// IntegrateResponse wraps the pipeline result for the API.
type IntegrateResponse struct {
	Success bool          `json:"success"`
	Payload *model.Result `json:"payload,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// parseIntegrateForm reads the three uploaded tables and the threshold form
// fields out of a multipart request.
func parseIntegrateForm(r *http.Request) (model.Config, model.Inputs, error) {

	var cfg model.Config
	var in model.Inputs

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return cfg, in, fmt.Errorf("parse multipart form: %w", err)
	}

	req := request.IntegrateRequest{
		CADDMin:              r.FormValue("cadd_min"),
		LogFCMin:             r.FormValue("logfc_min"),
		PValueMax:            r.FormValue("p_value_max"),
		IntensityMin:         r.FormValue("intensity_min"),
		RunEnrichment:        r.FormValue("run_enrichment"),
		ShowNetwork:          r.FormValue("show_network"),
		ShowAssociationTable: r.FormValue("show_association_table"),
		MaxNetworkTerms:      r.FormValue("max_network_terms"),
	}

	cfg, err := req.Config()
	if err != nil {
		return cfg, in, err
	}

	open := func(field string) (multipart.File, error) {
		f, _, err := r.FormFile(field)
		if err != nil {
			return nil, fmt.Errorf("missing upload %q: %w", field, err)
		}
		return f, nil
	}

	gfile, err := open("genomics")
	if err != nil {
		return cfg, in, err
	}
	defer gfile.Close()
	if in.Genomics, err = ingest.ReadGenomics(gfile); err != nil {
		return cfg, in, fmt.Errorf("genomics table: %w", err)
	}

	tfile, err := open("transcriptomics")
	if err != nil {
		return cfg, in, err
	}
	defer tfile.Close()
	if in.Transcriptomics, _, err = ingest.ReadTranscriptomics(tfile); err != nil {
		return cfg, in, fmt.Errorf("transcriptomics table: %w", err)
	}

	pfile, err := open("proteomics")
	if err != nil {
		return cfg, in, err
	}
	defer pfile.Close()
	if in.Proteomics, err = ingest.ReadProteomics(pfile); err != nil {
		return cfg, in, fmt.Errorf("proteomics table: %w", err)
	}

	return cfg, in, nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, IntegrateResponse{Success: false, Error: err.Error()})
}

// IntegrateHandler runs the pipeline synchronously and returns the full
// result as JSON.
func (appctx *AppContext) IntegrateHandler(w http.ResponseWriter, r *http.Request) {

	cfg, in, err := parseIntegrateForm(r)
	if err != nil {
		logger.Error("Bad integrate request", zap.Error(err))
		writeError(w, http.StatusBadRequest, err)
		return
	}

	logger.Info("Running integration",
		zap.Int("genomics_rows", len(in.Genomics)),
		zap.Int("transcriptomics_rows", len(in.Transcriptomics)),
		zap.Int("proteomics_rows", len(in.Proteomics)),
		zap.Float64("cadd_min", cfg.CADDMin),
		zap.Float64("p_value_max", cfg.PValueMax),
	)

	result, err := model.Run(r.Context(), cfg, in, appctx.Resolver, appctx.Enricher, appctx.Libraries)
	if err != nil {
		var cfgErr *model.ConfigError
		if errors.As(err, &cfgErr) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		logger.Error("Pipeline failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, IntegrateResponse{Success: true, Payload: result})
}

// IntegrateAsyncHandler queues a pipeline run and returns its run ID
// immediately. Poll the run endpoint for the result.
func (appctx *AppContext) IntegrateAsyncHandler(w http.ResponseWriter, r *http.Request) {

	cfg, in, err := parseIntegrateForm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	run := appctx.Runs.NewRun()

	go func() {
		appctx.Runs.SetRunning(run.ID)
		// The request context dies with the HTTP response, so the
		// background run uses its own.
		result, err := model.Run(context.Background(), cfg, in, appctx.Resolver, appctx.Enricher, appctx.Libraries)
		if err != nil {
			appctx.Runs.FailRun(run.ID, err)
			return
		}
		appctx.Runs.CompleteRun(run.ID, result)
	}()

	writeJSON(w, http.StatusAccepted, map[string]string{"run_id": run.ID})
}
