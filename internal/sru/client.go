// Copyright Halflink, 2026. All rights reserved.

// Package sru queries the overheid.nl SRU endpoint and returns typed
// document records.
package sru

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Halflink/KamerBrieven/internal/httputil"
	"github.com/Halflink/KamerBrieven/pkg/types"
)

// Client fetches search-result pages from one SRU endpoint. One Client
// serves one run; it holds no state beyond its configuration.
type Client struct {
	http *http.Client
	cfg  types.SearchConfig
	log  *slog.Logger
}

// NewClient builds a Client from the search configuration. The HTTP
// client enforces the per-request timeout.
func NewClient(cfg types.SearchConfig, logger *slog.Logger) *Client {
	if cfg.PageSize <= 0 {
		cfg.PageSize = types.DefaultPageSize
	}
	return &Client{
		http: &http.Client{Timeout: cfg.Timeout},
		cfg:  cfg,
		log:  logger,
	}
}

// BuildQuery constructs the CQL query: every term becomes a
// cql.serverChoice clause, OR-combined; a non-empty ministry wraps the
// clause and scopes it to that publishing authority.
func BuildQuery(terms []string, ministry string) string {
	clauses := make([]string, 0, len(terms))
	for _, t := range terms {
		clauses = append(clauses, fmt.Sprintf("cql.serverChoice=%q", t))
	}
	q := strings.Join(clauses, " OR ")
	if ministry != "" {
		q = fmt.Sprintf("(%s) and ot.authority=%q", q, ministry)
	}
	return q
}

// FetchAll pages through all results for the given terms and returns the
// concatenated record sequence in source order.
//
// A failure on the first page (network, non-200 status, malformed XML,
// SRU diagnostic) is a setup failure and returns an error. A failure on
// a later page is logged and the records fetched so far are returned, so
// a flaky endpoint never discards completed work.
func (c *Client) FetchAll(ctx context.Context, terms []string) ([]types.DocumentRecord, error) {
	query := BuildQuery(terms, c.cfg.Ministry)
	c.log.Info("starting SRU search", "query", query, "endpoint", c.cfg.Endpoint)

	var records []types.DocumentRecord
	start := 1
	for {
		page, err := c.fetchPage(ctx, query, start)
		if err != nil {
			if len(records) == 0 {
				return nil, err
			}
			c.log.Error("page fetch failed, keeping records fetched so far",
				"start_record", start, "fetched", len(records), "error", err)
			return records, nil
		}

		if len(page.Records) == 0 {
			break
		}
		for _, raw := range page.Records {
			rec, err := parseRecord(raw.Data)
			if err != nil {
				c.log.Warn("skipping unparseable record", "start_record", start, "error", err)
				continue
			}
			records = append(records, rec)
		}

		c.log.Info("fetched page",
			"records", len(records), "total", page.NumberOfRecords, "start_record", start)

		if c.cfg.MaxRecords > 0 && len(records) >= c.cfg.MaxRecords {
			records = records[:c.cfg.MaxRecords]
			c.log.Info("record cap reached", "cap", c.cfg.MaxRecords)
			break
		}

		start += len(page.Records)
		if start > page.NumberOfRecords {
			break
		}
	}
	return records, nil
}

// fetchPage issues one searchRetrieve request and parses the response.
// SRU reports query-level failures in-band as diagnostic elements, which
// are treated the same as a failed request.
func (c *Client) fetchPage(ctx context.Context, query string, startRecord int) (*searchRetrieveResponse, error) {
	params := url.Values{}
	params.Set("operation", "searchRetrieve")
	params.Set("version", "1.2")
	params.Set("query", query)
	params.Set("maximumRecords", strconv.Itoa(c.cfg.PageSize))
	params.Set("startRecord", strconv.Itoa(startRecord))
	params.Set("sortKeys", "dcterms.modified/descending")

	reqURL := c.cfg.Endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.http, req, 0)
	if err != nil {
		return nil, fmt.Errorf("SRU request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("SRU endpoint returned HTTP %d", resp.StatusCode)
	}

	var page searchRetrieveResponse
	if err := xml.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("parsing SRU response: %w", err)
	}

	if len(page.Diagnostics) > 0 {
		return nil, fmt.Errorf("SRU diagnostic: %s", page.Diagnostics[0])
	}
	return &page, nil
}
