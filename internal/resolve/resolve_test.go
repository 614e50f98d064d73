// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-renamer/pkg/types"
)

// TestService_Resolve drives the full pipeline for a file whose name is
// an arXiv ID: extraction falls back to the filename, the metadata
// comes from the (stubbed) arXiv API, and the resolution lands in the
// cache.
func TestService_Resolve(t *testing.T) {
	requests := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		w.Write([]byte(atomSample))
	}))
	defer ts.Close()

	old := arxivAPIBase
	arxivAPIBase = ts.URL
	defer func() { arxivAPIBase = old }()

	dir := t.TempDir()
	path := filepath.Join(dir, "2301.07041.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a real pdf"), 0o644))

	svc := NewService(types.ResolverConfig{
		WebValidation: true,
		CachePath:     filepath.Join(dir, "cache.db"),
	})
	defer svc.Close()

	res, err := svc.Resolve(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "2301.07041", res.Identifier)
	assert.Equal(t, "arxiv", res.IdentifierType)
	assert.Equal(t, MethodFilename, res.Method)
	assert.Equal(t, "A Survey of Quantum Error Correction", res.Metadata["title"])
	assert.Contains(t, res.Bibtex, "@article{smith2023")
	assert.Contains(t, res.ValidationInfo, "<feed")
	assert.Equal(t, 1, requests)

	// The second resolve must be served from the cache, without
	// another API request.
	res2, err := svc.Resolve(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, MethodCache, res2.Method)
	assert.Equal(t, res.Metadata, res2.Metadata)
	assert.Equal(t, 1, requests)
}

func TestService_ResolveWithoutWebValidation(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(atomSample))
	}))
	defer ts.Close()

	old := arxivAPIBase
	arxivAPIBase = ts.URL
	defer func() { arxivAPIBase = old }()

	dir := t.TempDir()
	path := filepath.Join(dir, "2301.07041.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a real pdf"), 0o644))

	svc := NewService(types.ResolverConfig{})
	defer svc.Close()

	res, err := svc.Resolve(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "true", res.ValidationInfo)
}

func TestService_ResolveUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "untitled-scan.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a real pdf"), 0o644))

	svc := NewService(types.ResolverConfig{})
	defer svc.Close()

	// Unparseable document, no identifier in the name: the resolver
	// cannot tell whether an identifier exists, so this is an error,
	// not a no-identifier outcome.
	_, err := svc.Resolve(context.Background(), path)
	require.Error(t, err)
}

func TestService_ResolveLookupFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	old := arxivAPIBase
	arxivAPIBase = ts.URL
	defer func() { arxivAPIBase = old }()

	dir := t.TempDir()
	path := filepath.Join(dir, "2301.07041.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a real pdf"), 0o644))

	svc := NewService(types.ResolverConfig{})
	defer svc.Close()

	_, err := svc.Resolve(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2301.07041")
}
