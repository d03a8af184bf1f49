package uniprot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yumyai/omixweb/logger"
	omixdb "github.com/yumyai/omixweb/pkg/db"
	"github.com/yumyai/omixweb/pkg/model"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://rest.uniprot.org"

	// The search endpoint rejects oversized disjunction queries, so
	// accessions are looked up in chunks.
	batchSize = 100

	requestTimeout = 30 * time.Second
)

// Client resolves protein accessions to gene symbols through the UniProt
// REST search endpoint. An optional IdentifierCache short-circuits
// previously resolved accessions.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Cache   *omixdb.IdentifierCache
}

func NewClient(baseURL string, cache *omixdb.IdentifierCache) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: requestTimeout},
		Cache:   cache,
	}
}

// Resolve maps the given accessions to gene symbols. Lookups run in batches;
// a failed batch is logged and skipped, so the returned map may be partial.
// The error return is reserved for a canceled context.
func (c *Client) Resolve(ctx context.Context, accessions []string) (model.IdentifierMap, error) {

	resolved := model.IdentifierMap{}
	remaining := accessions

	if c.Cache != nil {
		hits, err := c.Cache.Lookup(ctx, accessions)
		if err != nil {
			logger.Warn("Identifier cache lookup failed", zap.Error(err))
		} else {
			var misses []string
			for _, acc := range accessions {
				if gene, ok := hits[acc]; ok {
					resolved[acc] = gene
				} else {
					misses = append(misses, acc)
				}
			}
			remaining = misses
			logger.Debug("Identifier cache hits",
				zap.Int("hits", len(hits)),
				zap.Int("misses", len(misses)),
			)
		}
	}

	for start := 0; start < len(remaining); start += batchSize {
		if err := ctx.Err(); err != nil {
			return resolved, err
		}

		end := start + batchSize
		if end > len(remaining) {
			end = len(remaining)
		}
		batch := remaining[start:end]

		mapping, err := c.resolveBatch(ctx, batch)
		if err != nil {
			// Partial success policy: the batch's accessions stay
			// unresolved, the run continues.
			logger.Warn("UniProt batch failed",
				zap.Int("batch_start", start),
				zap.Int("batch_size", len(batch)),
				zap.Error(err),
			)
			continue
		}

		for acc, gene := range mapping {
			resolved[acc] = gene
		}

		if c.Cache != nil {
			if err := c.Cache.Store(ctx, mapping); err != nil {
				logger.Warn("Identifier cache store failed", zap.Error(err))
			}
		}
	}

	return resolved, nil
}

// resolveBatch issues one search request for up to batchSize accessions and
// parses the TSV response.
func (c *Client) resolveBatch(ctx context.Context, batch []string) (map[string]string, error) {

	clauses := make([]string, 0, len(batch))
	for _, acc := range batch {
		clauses = append(clauses, "accession:"+acc)
	}

	params := url.Values{}
	params.Set("query", strings.Join(clauses, " OR "))
	params.Set("fields", "accession,gene_names")
	params.Set("format", "tsv")

	reqURL := c.BaseURL + "/uniprotkb/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build uniprot request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("uniprot request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("uniprot responded %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read uniprot response: %w", err)
	}

	return parseMappingTSV(string(body)), nil
}

// parseMappingTSV reads "accession<TAB>gene names" rows, header discarded.
// The first whitespace token of the gene names column wins; an empty column
// falls back to the accession itself. Malformed rows are skipped.
func parseMappingTSV(text string) map[string]string {
	mapping := make(map[string]string)

	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 2 {
		return mapping
	}

	for _, line := range lines[1:] {
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			continue
		}
		acc := strings.TrimSpace(fields[0])
		if acc == "" {
			continue
		}

		names := strings.Fields(fields[1])
		if len(names) > 0 {
			mapping[acc] = names[0]
		} else {
			// Known data-quality wart: accessions with no gene name keep
			// the accession as their symbol.
			mapping[acc] = acc
		}
	}

	return mapping
}
