// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the configuration and result structures shared
// between the CLI, the rename engine, and the metadata resolver.
package types

// Outcome classifies a single file-processing attempt. It makes the
// distinction between "no identifier found" (a normal outcome) and an
// actual failure a property of the type rather than a control-flow
// convention.
type Outcome string

const (
	// OutcomeRenamed means the file was renamed to a new path.
	OutcomeRenamed Outcome = "renamed"

	// OutcomeUnchanged means the generated name was identical to the
	// current one, so the file was left untouched.
	OutcomeUnchanged Outcome = "unchanged"

	// OutcomeNoIdentifier means the resolver found no DOI or arXiv ID.
	// This is not an error.
	OutcomeNoIdentifier Outcome = "no_identifier"

	// OutcomeInvalidFile means the path does not exist, is a directory,
	// or lacks a .pdf extension.
	OutcomeInvalidFile Outcome = "invalid_file"

	// OutcomeResolveError means the resolver failed unexpectedly.
	OutcomeResolveError Outcome = "resolve_error"

	// OutcomeRenameError means a new name was generated but the rename
	// (or the name building) failed. Identifier and metadata are still
	// populated in this case.
	OutcomeRenameError Outcome = "rename_error"
)

// Resolution holds what the metadata resolver found for one file.
type Resolution struct {
	// Identifier is the DOI or arXiv ID. Empty means none was found,
	// which is a valid, non-error outcome.
	Identifier string `json:"identifier,omitempty" yaml:"identifier,omitempty"`

	// IdentifierType discriminates the identifier kind ("doi", "arxiv").
	IdentifierType string `json:"identifier_type,omitempty" yaml:"identifier_type,omitempty"`

	// Metadata maps bibtex field names (title, author, year, journal,
	// ...) to their values.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`

	// ValidationInfo is the raw record returned by the lookup service
	// when web validation is enabled, or "true" otherwise.
	ValidationInfo string `json:"validation_info,omitempty" yaml:"validation_info,omitempty"`

	// Method names how the identifier was found ("document_text",
	// "filename", "cache").
	Method string `json:"method,omitempty" yaml:"method,omitempty"`

	// Bibtex is a rendered bibtex entry for the publication.
	Bibtex string `json:"bibtex,omitempty" yaml:"bibtex,omitempty"`
}

// Found reports whether the resolution carries both an identifier and
// metadata, i.e. enough information to build a filename.
func (r Resolution) Found() bool {
	return r.Identifier != "" && len(r.Metadata) > 0
}

// ProcessResult records the outcome of one file-processing attempt. It
// is created fresh per attempt and never mutated after being returned.
type ProcessResult struct {
	// PathOriginal is the path of the file as it was given, always set.
	PathOriginal string `json:"path_original" yaml:"path_original"`

	// PathNew is the path of the file after renaming. It equals
	// PathOriginal when the file was already correctly named, and is
	// empty when the file was not renamed for any other reason.
	PathNew string `json:"path_new,omitempty" yaml:"path_new,omitempty"`

	// Identifier, IdentifierType, Metadata, ValidationInfo, Method and
	// Bibtex carry over the resolver output; see Resolution.
	Identifier     string            `json:"identifier,omitempty" yaml:"identifier,omitempty"`
	IdentifierType string            `json:"identifier_type,omitempty" yaml:"identifier_type,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	ValidationInfo string            `json:"validation_info,omitempty" yaml:"validation_info,omitempty"`
	Method         string            `json:"method,omitempty" yaml:"method,omitempty"`
	Bibtex         string            `json:"bibtex,omitempty" yaml:"bibtex,omitempty"`

	// Outcome classifies the attempt.
	Outcome Outcome `json:"outcome" yaml:"outcome"`

	// Diagnostic explains non-renamed outcomes in human terms.
	Diagnostic string `json:"diagnostic,omitempty" yaml:"diagnostic,omitempty"`
}

// Renamed reports whether the file was physically moved to a new path.
func (r ProcessResult) Renamed() bool {
	return r.Outcome == OutcomeRenamed && r.PathNew != "" && r.PathNew != r.PathOriginal
}
