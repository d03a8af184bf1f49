package handler

import (
	"fmt"
	"net/http"

	"github.com/yumyai/omixweb/logger"
	"github.com/yumyai/omixweb/pkg/render"
)

// RunStatusResponse is the polling payload for an asynchronous run.
type RunStatusResponse struct {
	RunID   string      `json:"run_id"`
	Status  RunStatus   `json:"status"`
	Error   string      `json:"error,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
}

// RunStatusHandler reports the state of one asynchronous run, including the
// full result once completed.
func (appctx *AppContext) RunStatusHandler(w http.ResponseWriter, r *http.Request) {
	runID := r.PathValue("run_id")

	run, ok := appctx.Runs.GetRun(runID)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("no such run: %s", runID))
		return
	}

	resp := RunStatusResponse{
		RunID:  run.ID,
		Status: run.Status,
		Error:  run.Error,
	}
	if run.Status == RunCompleted {
		resp.Payload = run.Result
	}

	writeJSON(w, http.StatusOK, resp)
}

// RunSummaryHandler serves the association summary of a completed run as a
// downloadable TSV table.
func (appctx *AppContext) RunSummaryHandler(w http.ResponseWriter, r *http.Request) {
	runID := r.PathValue("run_id")

	run, ok := appctx.Runs.GetRun(runID)
	if !ok {
		http.Error(w, "no such run", http.StatusNotFound)
		return
	}
	if run.Status != RunCompleted || run.Result == nil {
		http.Error(w, "run is not completed", http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "text/tab-separated-values")
	w.Header().Set("Content-Disposition", "attachment; filename=association_summary.tsv")

	if err := render.RenderSummaryTSV(w, run.Result.Summary); err != nil {
		logger.Error(err.Error())
	}
}

// RunTermsHandler serves the per-library enrichment tables of a completed
// run as TSV.
func (appctx *AppContext) RunTermsHandler(w http.ResponseWriter, r *http.Request) {
	runID := r.PathValue("run_id")

	run, ok := appctx.Runs.GetRun(runID)
	if !ok {
		http.Error(w, "no such run", http.StatusNotFound)
		return
	}
	if run.Status != RunCompleted || run.Result == nil {
		http.Error(w, "run is not completed", http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "text/tab-separated-values")
	w.Header().Set("Content-Disposition", "attachment; filename=enrichment_terms.tsv")

	if err := render.RenderTermsTSV(w, run.Result.Sources); err != nil {
		logger.Error(err.Error())
	}
}
