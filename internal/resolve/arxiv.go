// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/pdf-renamer/internal/httputil"
	"github.com/pdiddy/pdf-renamer/pkg/types"
)

// arxivAPIBase is the arXiv query endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// arxivFeed models the Atom response from the arXiv API.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID         string        `xml:"id"`
	Title      string        `xml:"title"`
	Published  string        `xml:"published"`
	Authors    []arxivAuthor `xml:"author"`
	DOI        string        `xml:"doi"`
	JournalRef string        `xml:"journal_ref"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

// fetchArxiv looks up an arXiv ID and returns the metadata as a map of
// bibtex field names, plus the raw Atom payload.
func fetchArxiv(ctx context.Context, client *http.Client, arxivID string, cfg types.ResolverConfig) (map[string]string, string, error) {
	url := fmt.Sprintf("%s?id_list=%s&max_results=1", arxivAPIBase, arxivID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("creating arXiv request: %w", err)
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return nil, "", fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading arXiv response: %w", err)
	}

	var feed arxivFeed
	if err := xml.Unmarshal(raw, &feed); err != nil {
		return nil, "", fmt.Errorf("parsing arXiv response: %w", err)
	}
	if len(feed.Entries) == 0 || strings.TrimSpace(feed.Entries[0].Title) == "" {
		return nil, "", fmt.Errorf("arXiv ID %s not found", arxivID)
	}

	return arxivToMetadata(arxivID, feed.Entries[0]), string(raw), nil
}

// arxivToMetadata flattens an arXiv Atom entry into bibtex field names.
// The journal is the journal reference when the paper has been
// published, "arXiv" otherwise.
func arxivToMetadata(arxivID string, entry arxivEntry) map[string]string {
	md := map[string]string{
		"title":   strings.Join(strings.Fields(entry.Title), " "),
		"eprint":  arxivID,
		"journal": "arXiv",
	}

	if ref := strings.TrimSpace(entry.JournalRef); ref != "" {
		md["journal"] = ref
	}
	if doi := strings.TrimSpace(entry.DOI); doi != "" {
		md["doi"] = doi
	}

	var authors []string
	for _, a := range entry.Authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			authors = append(authors, name)
		}
	}
	if len(authors) > 0 {
		md["author"] = strings.Join(authors, " and ")
	}

	if t, err := time.Parse(time.RFC3339, entry.Published); err == nil {
		md["year"] = fmt.Sprintf("%d", t.Year())
		md["month"] = fmt.Sprintf("%d", int(t.Month()))
	}
	return md
}
