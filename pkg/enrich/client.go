package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yumyai/omixweb/internal/util"
	"github.com/yumyai/omixweb/pkg/model"
)

const (
	DefaultBaseURL = "https://maayanlab.cloud/Enrichr"

	requestTimeout = 60 * time.Second
)

// Client talks to an Enrichr-compatible enrichment service. The service is a
// black box here: it takes a gene list and a gene-set library name and
// returns ranked term rows.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: requestTimeout},
	}
}

// Enrich submits genes against one library and returns the term rows in
// service order (pre-sorted by significance). An empty result is valid.
func (c *Client) Enrich(ctx context.Context, genes []string, geneSet string) ([]model.TermResult, error) {

	if len(genes) == 0 {
		return nil, fmt.Errorf("empty gene list")
	}

	listID, err := c.addList(ctx, genes)
	if err != nil {
		return nil, fmt.Errorf("submit gene list: %w", err)
	}

	terms, err := c.export(ctx, listID, geneSet)
	if err != nil {
		return nil, fmt.Errorf("fetch %s results: %w", geneSet, err)
	}

	return terms, nil
}

// addList uploads the gene list and returns the service-side list ID.
func (c *Client) addList(ctx context.Context, genes []string) (int64, error) {

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	if err := form.WriteField("list", strings.Join(genes, "\n")); err != nil {
		return 0, err
	}
	if err := form.WriteField("description", "omixweb gene list"); err != nil {
		return 0, err
	}
	if err := form.Close(); err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/addList", &body)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("service responded %s", resp.Status)
	}

	var parsed struct {
		UserListID int64 `json:"userListId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("decode addList response: %w", err)
	}
	if parsed.UserListID == 0 {
		return 0, fmt.Errorf("service returned no list id")
	}

	return parsed.UserListID, nil
}

// export downloads the tabular result for one library and parses it.
func (c *Client) export(ctx context.Context, listID int64, geneSet string) ([]model.TermResult, error) {

	params := url.Values{}
	params.Set("userListId", strconv.FormatInt(listID, 10))
	params.Set("filename", "enrichment")
	params.Set("backgroundType", geneSet)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/export?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("service responded %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return parseResultTSV(string(body))
}

// parseResultTSV reads the tab-separated result table. Required columns:
// Term, Overlap, P-value, Adjusted P-value, Genes (";"-delimited).
func parseResultTSV(text string) ([]model.TermResult, error) {

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return nil, nil
	}

	header := strings.Split(lines[0], "\t")
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}

	for _, required := range []string{"Term", "Overlap", "P-value", "Adjusted P-value", "Genes"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("result table is missing column %q", required)
		}
	}

	var terms []model.TermResult
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		get := func(name string) string {
			i := col[name]
			if i >= len(fields) {
				return ""
			}
			return strings.TrimSpace(fields[i])
		}

		pval, err := strconv.ParseFloat(get("P-value"), 64)
		if err != nil {
			return nil, fmt.Errorf("bad P-value in row %q: %w", get("Term"), err)
		}
		adj, err := strconv.ParseFloat(get("Adjusted P-value"), 64)
		if err != nil {
			return nil, fmt.Errorf("bad Adjusted P-value in row %q: %w", get("Term"), err)
		}

		terms = append(terms, model.TermResult{
			Term:      get("Term"),
			PValue:    pval,
			AdjPValue: adj,
			Overlap:   get("Overlap"),
			Genes:     util.CleanSplit(get("Genes"), ";"),
		})
	}

	return terms, nil
}
