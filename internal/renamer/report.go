// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package renamer

import (
	"fmt"
	"io"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf-renamer/pkg/types"
)

// Summary holds the aggregate outcome of a walk.
type Summary struct {
	Renamed      int
	Unchanged    int
	NoIdentifier int
	Failed       int
}

// Total returns the number of files processed.
func (s Summary) Total() int {
	return s.Renamed + s.Unchanged + s.NoIdentifier + s.Failed
}

// HasFailures reports whether any file failed processing. Files whose
// identifier simply was not found do not count as failures.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// Summarize tallies the outcomes of a walk.
func Summarize(results []types.ProcessResult) Summary {
	var s Summary
	for _, r := range results {
		switch r.Outcome {
		case types.OutcomeRenamed:
			s.Renamed++
		case types.OutcomeUnchanged:
			s.Unchanged++
		case types.OutcomeNoIdentifier:
			s.NoIdentifier++
		default:
			s.Failed++
		}
	}
	return s
}

// WriteTextReport prints the human-facing summary of changes: every
// rename as an old -> new pair with paths relative to baseDir, the
// counts, and the files whose identifier could not be found.
func WriteTextReport(w io.Writer, results []types.ProcessResult, baseDir string) {
	fmt.Fprintln(w, "Summary of changes:")

	s := Summarize(results)
	for _, r := range results {
		if !r.Renamed() {
			continue
		}
		fmt.Fprintf(w, "  %s\n", relPath(baseDir, r.PathOriginal))
		fmt.Fprintf(w, "  ---> %s\n", relPath(baseDir, r.PathNew))
	}

	switch s.Renamed {
	case 0:
		fmt.Fprintln(w, "No file has been renamed.")
	case 1:
		fmt.Fprintln(w, "1 file has been renamed.")
	default:
		fmt.Fprintf(w, "%d files have been renamed.\n", s.Renamed)
	}

	if s.NoIdentifier > 0 {
		fmt.Fprintln(w, "\nNo DOI or arXiv ID could be found for the following files:")
		for _, r := range results {
			if r.Outcome == types.OutcomeNoIdentifier {
				fmt.Fprintf(w, "  %s\n", r.PathOriginal)
			}
		}
	}
}

// WriteYAMLReport encodes the full result list as a YAML document, for
// machine consumption or audit trails.
func WriteYAMLReport(w io.Writer, results []types.ProcessResult) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(results)
}

// relPath shortens a path relative to baseDir for display, falling
// back to the absolute form when that fails.
func relPath(baseDir, path string) string {
	if baseDir == "" {
		return path
	}
	rel, err := filepath.Rel(baseDir, path)
	if err != nil {
		return path
	}
	return rel
}
