// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// bibtexFieldOrder lists the fields rendered first, in conventional
// order. Remaining fields follow alphabetically.
var bibtexFieldOrder = []string{"title", "author", "journal", "year", "month", "volume", "pages", "doi", "eprint", "url", "publisher"}

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// FormatBibtex renders the metadata map as a single @article entry.
// The cite key is derived from the first author's last name and the
// year, e.g. "smith2020".
func FormatBibtex(metadata map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "@article{%s,\n", citeKey(metadata))

	written := make(map[string]bool)
	for _, field := range bibtexFieldOrder {
		if v, ok := metadata[field]; ok && v != "" {
			fmt.Fprintf(&b, "\t%s = {%s},\n", field, v)
			written[field] = true
		}
	}

	var rest []string
	for field, v := range metadata {
		if !written[field] && v != "" {
			rest = append(rest, field)
		}
	}
	sort.Strings(rest)
	for _, field := range rest {
		fmt.Fprintf(&b, "\t%s = {%s},\n", field, metadata[field])
	}

	b.WriteString("}\n")
	return b.String()
}

// citeKey builds "lastnameYYYY" from the metadata, falling back to
// "unknown" parts when author or year are missing.
func citeKey(metadata map[string]string) string {
	last := "unknown"
	if author := metadata["author"]; author != "" {
		first, _, _ := strings.Cut(author, " and ")
		if comma := strings.Index(first, ","); comma >= 0 {
			first = first[:comma]
		} else if fields := strings.Fields(first); len(fields) > 0 {
			first = fields[len(fields)-1]
		}
		if cleaned := nonAlnum.ReplaceAllString(first, ""); cleaned != "" {
			last = cleaned
		}
	}

	year := metadata["year"]
	return strings.ToLower(last) + year
}
