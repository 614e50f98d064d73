// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"regexp"
	"strings"
)

// IdentifierType classifies a publication identifier.
type IdentifierType int

const (
	TypeUnknown IdentifierType = iota
	TypeDOI
	TypeArxiv
)

func (t IdentifierType) String() string {
	switch t {
	case TypeDOI:
		return "doi"
	case TypeArxiv:
		return "arxiv"
	default:
		return "unknown"
	}
}

// arxivPattern matches arXiv IDs: "2301.07041", "arXiv:2301.07041", "2301.07041v2".
var arxivPattern = regexp.MustCompile(`^(?:arXiv:)?(\d{4}\.\d{4,5}(?:v\d+)?)$`)

// doiPattern matches DOIs: "10.1145/1234567.1234568".
var doiPattern = regexp.MustCompile(`^10\.\d{4,9}/[^\s]+$`)

// Classify determines the identifier type and returns the normalized
// form. For arXiv, it strips the optional "arXiv:" prefix; for DOI, it
// strips a "doi:" or "https://doi.org/" prefix.
func Classify(identifier string) (IdentifierType, string) {
	identifier = strings.TrimSpace(identifier)

	if m := arxivPattern.FindStringSubmatch(identifier); m != nil {
		return TypeArxiv, m[1]
	}

	for _, prefix := range []string{"https://doi.org/", "http://doi.org/", "doi.org/", "doi:"} {
		if strings.HasPrefix(strings.ToLower(identifier), prefix) {
			identifier = identifier[len(prefix):]
			break
		}
	}
	if doiPattern.MatchString(identifier) {
		return TypeDOI, identifier
	}

	return TypeUnknown, identifier
}
