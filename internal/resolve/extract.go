// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extraction methods, reported in ProcessResult.Method.
const (
	MethodDocumentInfo = "document_info"
	MethodDocumentText = "document_text"
	MethodFilename     = "filename"
	MethodCache        = "cache"
)

// Search patterns for identifiers embedded in page text. The DOI
// pattern is deliberately greedy; trailing punctuation is trimmed
// afterwards.
var (
	doiSearchPattern   = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)
	arxivSearchPattern = regexp.MustCompile(`arXiv:(\d{4}\.\d{4,5}(?:v\d+)?)`)
	// Bare arXiv IDs in filenames, e.g. "2301.07041.pdf" or "2301.07041v2.pdf".
	arxivFilenamePattern = regexp.MustCompile(`\d{4}\.\d{4,5}(?:v\d+)?`)
)

// defaultMaxPages bounds the page scan; identifiers almost always
// appear on the first page.
const defaultMaxPages = 5

// ExtractIdentifier looks for a DOI or arXiv ID in the file: first in
// the document-info dictionary, then in up to maxPages pages of text,
// then in the filename. An empty identifier with a nil error means
// nothing was found, which is a valid outcome. The error is non-nil
// only when the PDF itself could not be opened and the filename holds
// no identifier either.
func ExtractIdentifier(path string, maxPages int) (identifier string, idType IdentifierType, method string, err error) {
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	id, idType, method, openErr := scanDocument(path, maxPages)
	if id != "" {
		return id, idType, method, nil
	}

	if id, idType := scanFilename(path); id != "" {
		return id, idType, MethodFilename, nil
	}

	if openErr != nil {
		return "", TypeUnknown, "", fmt.Errorf("reading %s: %w", path, openErr)
	}
	return "", TypeUnknown, "", nil
}

// scanDocument searches the document-info dictionary and the first
// maxPages pages for an identifier. Unreadable individual pages are
// skipped; only a file-level open failure is reported.
func scanDocument(path string, maxPages int) (string, IdentifierType, string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", TypeUnknown, "", err
	}
	defer f.Close()

	if id, idType := scanInfo(r); id != "" {
		return id, idType, MethodDocumentInfo, nil
	}

	if r.NumPage() < maxPages {
		maxPages = r.NumPage()
	}
	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if id, idType := findIdentifier(text); id != "" {
			return id, idType, MethodDocumentText, nil
		}
	}
	return "", TypeUnknown, "", nil
}

// scanInfo searches the values of the document-info dictionary, where
// publishers sometimes record the DOI directly (keys like "doi" or
// "Subject").
func scanInfo(r *pdf.Reader) (string, IdentifierType) {
	info := r.Trailer().Key("Info")
	if info.Kind() != pdf.Dict {
		return "", TypeUnknown
	}
	for _, key := range info.Keys() {
		v := info.Key(key)
		if v.Kind() != pdf.String {
			continue
		}
		if id, idType := findIdentifier(v.Text()); id != "" {
			return id, idType
		}
	}
	return "", TypeUnknown
}

// findIdentifier returns the first valid identifier in a block of text.
// arXiv IDs are checked first: arXiv preprints cite DOIs of referenced
// papers on page one far more often than the reverse.
func findIdentifier(text string) (string, IdentifierType) {
	if m := arxivSearchPattern.FindStringSubmatch(text); m != nil {
		return m[1], TypeArxiv
	}

	for _, match := range doiSearchPattern.FindAllString(text, -1) {
		match = strings.TrimRight(match, ".,;:)")
		if idType, normalized := Classify(match); idType == TypeDOI {
			return normalized, TypeDOI
		}
	}
	return "", TypeUnknown
}

// scanFilename checks whether the file's base name is itself an arXiv
// ID, a common shape for files downloaded straight from arxiv.org.
func scanFilename(path string) (string, IdentifierType) {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	if idType, normalized := Classify(base); idType == TypeArxiv {
		return normalized, TypeArxiv
	}
	if m := arxivFilenamePattern.FindString(base); m != "" {
		if idType, normalized := Classify(m); idType == TypeArxiv {
			return normalized, TypeArxiv
		}
	}
	return "", TypeUnknown
}
