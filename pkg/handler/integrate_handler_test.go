package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/yumyai/omixweb/logger"
	"github.com/yumyai/omixweb/pkg/model"
)

func TestMain(m *testing.M) {
	logger.InitNop()
	os.Exit(m.Run())
}

type stubResolver struct {
	mapping model.IdentifierMap
}

func (s *stubResolver) Resolve(ctx context.Context, accessions []string) (model.IdentifierMap, error) {
	return s.mapping, nil
}

type stubEnricher struct {
	terms map[string][]model.TermResult
}

func (s *stubEnricher) Enrich(ctx context.Context, genes []string, geneSet string) ([]model.TermResult, error) {
	return s.terms[geneSet], nil
}

func testAppContext() *AppContext {
	return &AppContext{
		Resolver: &stubResolver{mapping: model.IdentifierMap{"P04637": "TP53"}},
		Enricher: &stubEnricher{
			terms: map[string][]model.TermResult{
				"Reactome_2016": {{Term: "PathwayA", PValue: 0.001, AdjPValue: 0.01, Genes: []string{"TP53"}}},
			},
		},
		Libraries: model.DefaultLibraries(),
		Runs:      NewRunManager(),
	}
}

const (
	genomicsCSV        = "Gene,CADD\nTP53,25\n"
	transcriptomicsCSV = "Gene,logFC,p_value\nTP53,2.0,0.01\n"
	proteomicsCSV      = "Protein,Intensity\nP04637,5000\n"
)

// integrateBody builds the multipart upload with the three tables plus any
// extra form fields.
func integrateBody(t *testing.T, genomics string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	files := map[string]string{
		"genomics":        genomics,
		"transcriptomics": transcriptomicsCSV,
		"proteomics":      proteomicsCSV,
	}
	for field, content := range files {
		fw, err := form.CreateFormFile(field, field+".csv")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		fw.Write([]byte(content))
	}
	for k, v := range fields {
		form.WriteField(k, v)
	}
	form.Close()

	return &buf, form.FormDataContentType()
}

func TestIntegrateHandler(t *testing.T) {

	appctx := testAppContext()

	body, contentType := integrateBody(t, genomicsCSV, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/integrate", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	appctx.IntegrateHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp IntegrateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Payload == nil {
		t.Fatalf("unexpected response: %+v", resp)
	}

	if resp.Payload.GenomicsKept != 1 || resp.Payload.ProteomicsKept != 1 {
		t.Errorf("filter counts wrong: %+v", resp.Payload)
	}
	if resp.Payload.ProteinGene["P04637"] != "TP53" {
		t.Errorf("protein map missing: %v", resp.Payload.ProteinGene)
	}
	if len(resp.Payload.Summary) == 0 || resp.Payload.Summary[0].Gene != "TP53" {
		t.Errorf("summary missing TP53: %+v", resp.Payload.Summary)
	}
}

func TestIntegrateHandlerBadThreshold(t *testing.T) {

	appctx := testAppContext()

	body, contentType := integrateBody(t, genomicsCSV, map[string]string{"cadd_min": "not-a-number"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/integrate", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	appctx.IntegrateHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestIntegrateHandlerMissingColumn(t *testing.T) {

	appctx := testAppContext()

	body, contentType := integrateBody(t, "Gene,Score\nTP53,25\n", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/integrate", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	appctx.IntegrateHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestIntegrateAsync(t *testing.T) {

	appctx := testAppContext()

	body, contentType := integrateBody(t, genomicsCSV, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/integrate/async", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	appctx.IntegrateAsyncHandler(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var accepted map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &accepted); err != nil {
		t.Fatalf("decode: %v", err)
	}
	runID := accepted["run_id"]
	if runID == "" {
		t.Fatal("no run_id returned")
	}

	// Poll until the background run settles.
	deadline := time.Now().Add(5 * time.Second)
	for {
		run, ok := appctx.Runs.GetRun(runID)
		if !ok {
			t.Fatal("run vanished")
		}
		if run.Status == RunCompleted {
			if run.Result == nil || len(run.Result.Entities) == 0 {
				t.Fatalf("completed run has no result: %+v", run)
			}
			break
		}
		if run.Status == RunFailed {
			t.Fatalf("run failed: %s", run.Error)
		}
		if time.Now().After(deadline) {
			t.Fatalf("run did not settle, status %s", run.Status)
		}
		time.Sleep(10 * time.Millisecond)
	}

	statusReq := httptest.NewRequest(http.MethodGet, "/api/v1/runs/"+runID, nil)
	statusReq.SetPathValue("run_id", runID)
	statusRec := httptest.NewRecorder()

	appctx.RunStatusHandler(statusRec, statusReq)

	if statusRec.Code != http.StatusOK {
		t.Fatalf("status endpoint = %d", statusRec.Code)
	}
	var status RunStatusResponse
	if err := json.Unmarshal(statusRec.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.Status != RunCompleted || status.Payload == nil {
		t.Errorf("unexpected status payload: %+v", status)
	}
}

func TestRunStatusHandlerNotFound(t *testing.T) {

	appctx := testAppContext()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs/nope", nil)
	req.SetPathValue("run_id", "nope")
	rec := httptest.NewRecorder()

	appctx.RunStatusHandler(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
