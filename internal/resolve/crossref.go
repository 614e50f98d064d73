// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/pdiddy/pdf-renamer/internal/httputil"
	"github.com/pdiddy/pdf-renamer/pkg/types"
)

// doiAPIBase is the DOI resolver endpoint. Declared as a var so tests
// can substitute an httptest server.
var doiAPIBase = "https://doi.org/"

// cslContentType requests a CSL-JSON record via content negotiation.
const cslContentType = "application/vnd.citationstyles.csl+json"

// cslRecord captures the fields we need from a CSL-JSON bibliographic
// record as served by doi.org.
type cslRecord struct {
	Title          string    `json:"title"`
	ContainerTitle string    `json:"container-title"`
	Author         []cslName `json:"author"`
	Issued         cslDate   `json:"issued"`
	Volume         string    `json:"volume"`
	Page           string    `json:"page"`
	Publisher      string    `json:"publisher"`
	DOI            string    `json:"DOI"`
	URL            string    `json:"URL"`
}

// cslName represents a person's name in CSL format.
type cslName struct {
	Family  string `json:"family"`
	Given   string `json:"given"`
	Literal string `json:"literal"`
}

// cslDate represents a CSL date using date-parts.
type cslDate struct {
	DateParts [][]int `json:"date-parts"`
}

// fetchDOI looks up a DOI at doi.org and returns the metadata as a map
// of bibtex field names, plus the raw CSL-JSON payload.
func fetchDOI(ctx context.Context, client *http.Client, doi string, cfg types.ResolverConfig) (map[string]string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, doiAPIBase+doi, nil)
	if err != nil {
		return nil, "", fmt.Errorf("creating DOI request: %w", err)
	}
	req.Header.Set("Accept", cslContentType)
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return nil, "", fmt.Errorf("DOI lookup request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, "", fmt.Errorf("DOI %s is not registered", doi)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("DOI lookup returned HTTP %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading DOI response: %w", err)
	}

	var record cslRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, "", fmt.Errorf("parsing DOI response: %w", err)
	}

	return cslToMetadata(record), string(raw), nil
}

// cslToMetadata flattens a CSL record into bibtex field names. Empty
// fields are omitted so the map reflects what the record actually
// carries.
func cslToMetadata(r cslRecord) map[string]string {
	md := make(map[string]string)

	put := func(key, value string) {
		if v := strings.TrimSpace(value); v != "" {
			md[key] = v
		}
	}

	put("title", r.Title)
	put("journal", r.ContainerTitle)
	put("author", formatAuthors(r.Author))
	put("volume", r.Volume)
	put("pages", r.Page)
	put("publisher", r.Publisher)
	put("doi", r.DOI)
	put("url", r.URL)

	if len(r.Issued.DateParts) > 0 && len(r.Issued.DateParts[0]) > 0 {
		parts := r.Issued.DateParts[0]
		put("year", strconv.Itoa(parts[0]))
		if len(parts) > 1 {
			put("month", strconv.Itoa(parts[1]))
		}
	}
	return md
}

// formatAuthors renders CSL names into bibtex author form:
// "Family, Given and Family, Given".
func formatAuthors(names []cslName) string {
	var authors []string
	for _, n := range names {
		switch {
		case n.Family != "" && n.Given != "":
			authors = append(authors, n.Family+", "+n.Given)
		case n.Family != "":
			authors = append(authors, n.Family)
		case n.Literal != "":
			authors = append(authors, n.Literal)
		}
	}
	return strings.Join(authors, " and ")
}
