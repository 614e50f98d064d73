// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package renamer

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf-renamer/pkg/types"
)

func sampleResults() []types.ProcessResult {
	return []types.ProcessResult{
		{
			PathOriginal: "/papers/a.pdf",
			PathNew:      "/papers/2020 - PRL - Smith et al.pdf",
			Outcome:      types.OutcomeRenamed,
		},
		{
			PathOriginal: "/papers/already-named.pdf",
			PathNew:      "/papers/already-named.pdf",
			Outcome:      types.OutcomeUnchanged,
		},
		{
			PathOriginal: "/papers/scan.pdf",
			Outcome:      types.OutcomeNoIdentifier,
			Diagnostic:   "no DOI or arXiv identifier found",
		},
		{
			PathOriginal: "/papers/broken.pdf",
			Outcome:      types.OutcomeResolveError,
			Diagnostic:   "resolving metadata: connection refused",
		},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleResults())

	if s.Renamed != 1 || s.Unchanged != 1 || s.NoIdentifier != 1 || s.Failed != 1 {
		t.Errorf("Summarize = %+v, want one of each", s)
	}
	if s.Total() != 4 {
		t.Errorf("Total() = %d, want 4", s.Total())
	}
	if !s.HasFailures() {
		t.Error("HasFailures() = false, want true")
	}
}

func TestSummarize_NoIdentifierIsNotFailure(t *testing.T) {
	s := Summarize([]types.ProcessResult{
		{Outcome: types.OutcomeNoIdentifier},
	})
	if s.HasFailures() {
		t.Error("a missing identifier must not count as a failure")
	}
}

func TestWriteTextReport(t *testing.T) {
	var buf bytes.Buffer
	WriteTextReport(&buf, sampleResults(), "/papers")
	out := buf.String()

	for _, want := range []string{
		"Summary of changes:",
		"  a.pdf\n  ---> " + filepath.Join("2020 - PRL - Smith et al.pdf"),
		"1 file has been renamed.",
		"No DOI or arXiv ID could be found for the following files:",
		"/papers/scan.pdf",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}

	// The unchanged file was not renamed and must not be listed as a
	// change.
	if strings.Contains(out, "already-named") {
		t.Errorf("unchanged file listed as a change:\n%s", out)
	}
}

func TestWriteTextReport_NothingRenamed(t *testing.T) {
	var buf bytes.Buffer
	WriteTextReport(&buf, []types.ProcessResult{
		{PathOriginal: "/papers/x.pdf", Outcome: types.OutcomeResolveError},
	}, "/papers")

	if !strings.Contains(buf.String(), "No file has been renamed.") {
		t.Errorf("report = %q", buf.String())
	}
}

func TestWriteYAMLReport(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteYAMLReport(&buf, sampleResults()); err != nil {
		t.Fatal(err)
	}

	var decoded []types.ProcessResult
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("report is not valid YAML: %v", err)
	}
	if len(decoded) != 4 {
		t.Fatalf("decoded %d results, want 4", len(decoded))
	}
	if decoded[0].PathNew != sampleResults()[0].PathNew {
		t.Errorf("PathNew = %q, want %q", decoded[0].PathNew, sampleResults()[0].PathNew)
	}
	if decoded[3].Diagnostic != "resolving metadata: connection refused" {
		t.Errorf("Diagnostic = %q", decoded[3].Diagnostic)
	}
}
