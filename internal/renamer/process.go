// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package renamer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pdf-renamer/pkg/types"
)

// ProcessFile resolves metadata for a single PDF and renames it in
// place. Per-file failures of any kind are reported through the
// returned ProcessResult, never as an error, so one bad file can never
// abort a batch. Progress lines go to w.
func ProcessFile(ctx context.Context, resolver Resolver, builder FilenameBuilder, path string, cfg types.RenameConfig, w io.Writer) types.ProcessResult {
	result := types.ProcessResult{PathOriginal: path}

	info, err := os.Stat(path)
	switch {
	case err != nil:
		return fail(&result, w, types.OutcomeInvalidFile, "%s is not a valid file", path)
	case info.IsDir():
		return fail(&result, w, types.OutcomeInvalidFile, "%s is a directory, not a file", path)
	case !strings.EqualFold(filepath.Ext(path), ".pdf"):
		return fail(&result, w, types.OutcomeInvalidFile, "%s does not have a .pdf extension", path)
	}

	res, err := resolver.Resolve(ctx, path)
	if err != nil {
		return fail(&result, w, types.OutcomeResolveError, "resolving %s: %v", path, err)
	}

	result.Identifier = res.Identifier
	result.IdentifierType = res.IdentifierType
	result.Metadata = res.Metadata
	result.ValidationInfo = res.ValidationInfo
	result.Method = res.Method
	result.Bibtex = res.Bibtex

	if !res.Found() {
		result.Outcome = types.OutcomeNoIdentifier
		result.Diagnostic = "no DOI or arXiv ID found"
		fmt.Fprintf(w, "no identifier: %s\n", path)
		return result
	}

	base, err := builder.Build(res.Metadata)
	if err != nil {
		// Metadata is kept even though no name could be built.
		return fail(&result, w, types.OutcomeRenameError, "building filename for %s: %v", path, err)
	}

	// Compare cleaned paths so spellings like "./x.pdf" or doubled
	// separators still hit the no-op case instead of disambiguating
	// the file against itself.
	cleaned := filepath.Clean(path)
	dir := filepath.Dir(cleaned)
	ext := strings.ToLower(filepath.Ext(cleaned))
	candidate := filepath.Join(dir, base+ext)

	if candidate == cleaned {
		result.PathNew = path
		result.Outcome = types.OutcomeUnchanged
		fmt.Fprintf(w, "unchanged: %s\n", path)
		return result
	}

	if cfg.DryRun {
		result.PathNew = candidate
		result.Outcome = types.OutcomeRenamed
		result.Diagnostic = "dry run, file not renamed"
		fmt.Fprintf(w, "would rename: %s -> %s\n", path, candidate)
		return result
	}

	finalPath, err := RenameFile(cleaned, filepath.Join(dir, base), ext)
	if err != nil {
		// Identifier and metadata stay populated: the resolution
		// succeeded even though the physical rename did not.
		return fail(&result, w, types.OutcomeRenameError, "renaming %s: %v", path, err)
	}

	result.PathNew = finalPath
	result.Outcome = types.OutcomeRenamed
	fmt.Fprintf(w, "renamed: %s -> %s\n", path, finalPath)
	return result
}

// fail records a non-renamed outcome with its diagnostic and emits the
// corresponding progress line.
func fail(result *types.ProcessResult, w io.Writer, outcome types.Outcome, format string, args ...any) types.ProcessResult {
	result.Outcome = outcome
	result.Diagnostic = fmt.Sprintf(format, args...)
	fmt.Fprintf(w, "failed: %s\n", result.Diagnostic)
	return *result
}
