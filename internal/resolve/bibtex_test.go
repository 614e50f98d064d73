// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"strings"
	"testing"
)

func TestFormatBibtex(t *testing.T) {
	md := map[string]string{
		"title":   "Observation of Gravitational Waves",
		"author":  "Abbott, B. P. and Abbott, R.",
		"journal": "Physical Review Letters",
		"year":    "2016",
		"volume":  "116",
		"doi":     "10.1103/PhysRevLett.116.061102",
	}

	entry := FormatBibtex(md)

	if !strings.HasPrefix(entry, "@article{abbott2016,") {
		t.Errorf("entry does not start with the expected cite key:\n%s", entry)
	}
	for _, want := range []string{
		"title = {Observation of Gravitational Waves}",
		"author = {Abbott, B. P. and Abbott, R.}",
		"journal = {Physical Review Letters}",
		"year = {2016}",
		"doi = {10.1103/PhysRevLett.116.061102}",
	} {
		if !strings.Contains(entry, want) {
			t.Errorf("entry missing %q:\n%s", want, entry)
		}
	}
	if !strings.HasSuffix(entry, "}\n") {
		t.Errorf("entry not closed:\n%s", entry)
	}

	// Conventional field order: title before year.
	if strings.Index(entry, "title") > strings.Index(entry, "year = ") {
		t.Errorf("title should precede year:\n%s", entry)
	}
}

func TestCiteKey(t *testing.T) {
	tests := []struct {
		name string
		md   map[string]string
		want string
	}{
		{
			name: "last-first author",
			md:   map[string]string{"author": "Smith, Alice and Jones, Bob", "year": "2020"},
			want: "smith2020",
		},
		{
			name: "first-last author",
			md:   map[string]string{"author": "Alice Smith", "year": "2020"},
			want: "smith2020",
		},
		{
			name: "accented characters stripped",
			md:   map[string]string{"author": "Müller, Jürgen", "year": "1999"},
			want: "mller1999",
		},
		{
			name: "missing author",
			md:   map[string]string{"year": "2020"},
			want: "unknown2020",
		},
		{
			name: "missing everything",
			md:   map[string]string{},
			want: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := citeKey(tt.md); got != tt.want {
				t.Errorf("citeKey() = %q, want %q", got, tt.want)
			}
		})
	}
}
