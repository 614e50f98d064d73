// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name           string
		identifier     string
		wantType       IdentifierType
		wantNormalized string
	}{
		{"bare arxiv", "2301.07041", TypeArxiv, "2301.07041"},
		{"prefixed arxiv", "arXiv:2301.07041", TypeArxiv, "2301.07041"},
		{"versioned arxiv", "2301.07041v2", TypeArxiv, "2301.07041v2"},
		{"plain doi", "10.1145/1234567.1234568", TypeDOI, "10.1145/1234567.1234568"},
		{"doi with prefix", "doi:10.1103/PhysRevLett.116.061102", TypeDOI, "10.1103/PhysRevLett.116.061102"},
		{"doi url", "https://doi.org/10.1038/nphys1170", TypeDOI, "10.1038/nphys1170"},
		{"whitespace trimmed", "  10.1038/nphys1170  ", TypeDOI, "10.1038/nphys1170"},
		{"not an identifier", "my-paper-final-v3", TypeUnknown, "my-paper-final-v3"},
		{"doi registrant too short", "10.12/abc", TypeUnknown, "10.12/abc"},
		{"empty", "", TypeUnknown, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotType, gotNormalized := Classify(tt.identifier)
			if gotType != tt.wantType {
				t.Errorf("type = %v, want %v", gotType, tt.wantType)
			}
			if gotNormalized != tt.wantNormalized {
				t.Errorf("normalized = %q, want %q", gotNormalized, tt.wantNormalized)
			}
		})
	}
}

func TestIdentifierTypeString(t *testing.T) {
	if TypeDOI.String() != "doi" || TypeArxiv.String() != "arxiv" || TypeUnknown.String() != "unknown" {
		t.Errorf("unexpected String() values: %q %q %q", TypeDOI, TypeArxiv, TypeUnknown)
	}
}

func TestFindIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantID   string
		wantType IdentifierType
	}{
		{
			name:     "doi in running text",
			text:     "This article is available at https://doi.org/10.1103/PhysRevLett.116.061102 online.",
			wantID:   "10.1103/PhysRevLett.116.061102",
			wantType: TypeDOI,
		},
		{
			name:     "doi with trailing punctuation",
			text:     "DOI: 10.1038/nphys1170.",
			wantID:   "10.1038/nphys1170",
			wantType: TypeDOI,
		},
		{
			name:     "arxiv header",
			text:     "arXiv:2301.07041v2 [quant-ph] 19 Jan 2023",
			wantID:   "2301.07041v2",
			wantType: TypeArxiv,
		},
		{
			name:     "arxiv preferred over cited dois",
			text:     "arXiv:2301.07041 citing 10.1103/PhysRevLett.116.061102",
			wantID:   "2301.07041",
			wantType: TypeArxiv,
		},
		{
			name:     "nothing",
			text:     "an ordinary page of prose with no identifiers at all",
			wantID:   "",
			wantType: TypeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, idType := findIdentifier(tt.text)
			if id != tt.wantID {
				t.Errorf("id = %q, want %q", id, tt.wantID)
			}
			if idType != tt.wantType {
				t.Errorf("type = %v, want %v", idType, tt.wantType)
			}
		})
	}
}

func TestScanFilename(t *testing.T) {
	tests := []struct {
		path   string
		wantID string
	}{
		{"/papers/2301.07041.pdf", "2301.07041"},
		{"/papers/2301.07041v2.pdf", "2301.07041v2"},
		{"/papers/arxiv-2301.07041.pdf", "2301.07041"},
		{"/papers/smith2020.pdf", ""},
		{"/papers/report-2023.pdf", ""},
	}

	for _, tt := range tests {
		id, _ := scanFilename(tt.path)
		if id != tt.wantID {
			t.Errorf("scanFilename(%q) = %q, want %q", tt.path, id, tt.wantID)
		}
	}
}
