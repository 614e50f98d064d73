// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"path/filepath"
	"testing"

	"github.com/pdiddy/pdf-renamer/pkg/types"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := OpenCache(filepath.Join(t.TempDir(), "cache", "resolutions.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCache_PutGet(t *testing.T) {
	c := openTestCache(t)

	res := types.Resolution{
		Identifier:     "10.1038/nphys1170",
		IdentifierType: "doi",
		Metadata: map[string]string{
			"title": "Measured measurement",
			"year":  "2009",
		},
		Bibtex:         "@article{unknown2009,\n\ttitle = {Measured measurement},\n}\n",
		ValidationInfo: "true",
	}
	if err := c.Put(res); err != nil {
		t.Fatal(err)
	}

	got, ok := c.Get("10.1038/nphys1170")
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if got.Method != MethodCache {
		t.Errorf("method = %q, want %q", got.Method, MethodCache)
	}
	if got.IdentifierType != "doi" {
		t.Errorf("identifier_type = %q, want %q", got.IdentifierType, "doi")
	}
	if got.Metadata["title"] != "Measured measurement" {
		t.Errorf("title = %q", got.Metadata["title"])
	}
	if got.Bibtex != res.Bibtex {
		t.Errorf("bibtex = %q, want %q", got.Bibtex, res.Bibtex)
	}
}

func TestCache_Miss(t *testing.T) {
	c := openTestCache(t)
	if _, ok := c.Get("10.9999/absent"); ok {
		t.Error("expected a miss for an identifier never stored")
	}
}

func TestCache_ReplaceExisting(t *testing.T) {
	c := openTestCache(t)

	first := types.Resolution{
		Identifier:     "2301.07041",
		IdentifierType: "arxiv",
		Metadata:       map[string]string{"title": "v1 title"},
	}
	if err := c.Put(first); err != nil {
		t.Fatal(err)
	}

	first.Metadata = map[string]string{"title": "v2 title"}
	if err := c.Put(first); err != nil {
		t.Fatal(err)
	}

	got, ok := c.Get("2301.07041")
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if got.Metadata["title"] != "v2 title" {
		t.Errorf("title = %q, want the replaced value", got.Metadata["title"])
	}
}

func TestCache_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resolutions.db")

	c, err := OpenCache(path)
	if err != nil {
		t.Fatal(err)
	}
	err = c.Put(types.Resolution{
		Identifier:     "10.1000/persist",
		IdentifierType: "doi",
		Metadata:       map[string]string{"title": "Persistent"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}

	c2, err := OpenCache(path)
	if err != nil {
		t.Fatal(err)
	}
	defer c2.Close()

	if _, ok := c2.Get("10.1000/persist"); !ok {
		t.Error("expected the resolution to survive reopening the cache")
	}
}
