// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pdf-renamer/0.1"). doi.org and arXiv both ask polite
	// clients to identify themselves.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ResolverConfig holds settings for the metadata resolver.
type ResolverConfig struct {
	HTTPConfig `yaml:",inline"`

	// WebValidation controls whether the raw bibliographic record from
	// the lookup service is kept in ProcessResult.ValidationInfo. When
	// false ValidationInfo is just "true".
	WebValidation bool `json:"web_validation" yaml:"web_validation"`

	// RateLimit is the maximum number of lookup requests per second
	// against doi.org and the arXiv API (default 5).
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit"`

	// CachePath is the location of the SQLite resolution cache. Empty
	// disables caching.
	CachePath string `json:"cache_path,omitempty" yaml:"cache_path,omitempty"`

	// MaxPages is the number of PDF pages scanned for an identifier
	// (default 5). Identifiers almost always appear on the first page.
	MaxPages int `json:"max_pages" yaml:"max_pages"`
}

// RenameConfig holds settings threaded through the walker and the
// single-file processor. It is passed explicitly rather than read from
// ambient globals so that a walk is reproducible given fixed filesystem
// contents.
type RenameConfig struct {
	// Format is the filename format template, e.g. "{YYYY} - {Jabbr} - {Aetal}".
	Format string `json:"format" yaml:"format"`

	// Recurse controls whether subfolders of a target directory are
	// walked as well.
	Recurse bool `json:"subfolders" yaml:"subfolders"`

	// Workers is the number of files processed concurrently within one
	// directory. 1 (the default) means strictly sequential processing.
	// Result order is independent of this setting.
	Workers int `json:"workers" yaml:"workers"`

	// DryRun computes new names and reports what would change without
	// renaming anything.
	DryRun bool `json:"dry_run" yaml:"dry_run"`

	// MaxLengthFilename caps the length of a generated filename
	// (default 250).
	MaxLengthFilename int `json:"max_length_filename" yaml:"max_length_filename"`

	// MaxLengthAuthors caps the length of the author portion of a
	// generated filename (default 80).
	MaxLengthAuthors int `json:"max_length_authors" yaml:"max_length_authors"`
}
