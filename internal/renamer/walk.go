// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package renamer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pdiddy/pdf-renamer/pkg/types"
)

// Walk processes the target path and returns one ProcessResult per PDF
// file discovered, in deterministic order: a directory's files in
// listing order first, then each subdirectory's results depth-first in
// listing order, flattened into a single slice. A file target yields a
// one-element slice.
//
// The only call-level error is a target that does not exist or cannot
// be listed; every per-file failure is isolated inside its result.
func Walk(ctx context.Context, resolver Resolver, builder FilenameBuilder, target string, cfg types.RenameConfig, w io.Writer) ([]types.ProcessResult, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("%s is not a valid path to a file or a directory", target)
	}

	if !info.IsDir() {
		return []types.ProcessResult{ProcessFile(ctx, resolver, builder, target, cfg, w)}, nil
	}

	if cfg.Workers > 1 {
		w = &syncWriter{w: w}
	}
	return walkDir(ctx, resolver, builder, target, cfg, w)
}

// walkDir handles one directory level. Subdirectory listing errors are
// reported and skipped so siblings stay unaffected; only the top-level
// listing error escapes via Walk.
func walkDir(ctx context.Context, resolver Resolver, builder FilenameBuilder, dir string, cfg types.RenameConfig, w io.Writer) ([]types.ProcessResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	// Symlinked directories fail IsDir here and are never recursed
	// into, which rules out symlink cycles.
	var files, subdirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			subdirs = append(subdirs, filepath.Join(dir, entry.Name()))
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), ".pdf") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	if len(files) == 0 {
		fmt.Fprintf(w, "no pdf files found in %s\n", dir)
	}

	results := processAll(ctx, resolver, builder, files, cfg, w)

	for _, sub := range subdirs {
		if !cfg.Recurse {
			fmt.Fprintf(w, "skipping subfolder %s (enable subfolder scanning to descend)\n", sub)
			continue
		}
		subResults, err := walkDir(ctx, resolver, builder, sub, cfg, w)
		if err != nil {
			fmt.Fprintf(w, "failed: %v\n", err)
			continue
		}
		results = append(results, subResults...)
	}
	return results, nil
}

// processAll runs ProcessFile over the files of one directory. With
// cfg.Workers > 1 the work is fanned out over a bounded pool, but each
// result lands in the slot matching its input index, so the output
// order is identical to sequential execution.
func processAll(ctx context.Context, resolver Resolver, builder FilenameBuilder, files []string, cfg types.RenameConfig, w io.Writer) []types.ProcessResult {
	if len(files) == 0 {
		return nil
	}

	workers := cfg.Workers
	if workers > len(files) {
		workers = len(files)
	}

	results := make([]types.ProcessResult, len(files))

	if workers <= 1 {
		for i, f := range files {
			results[i] = ProcessFile(ctx, resolver, builder, f, cfg, w)
		}
		return results
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for n := 0; n < workers; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = ProcessFile(ctx, resolver, builder, files[i], cfg, w)
			}
		}()
	}
	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// syncWriter serializes progress lines from concurrent workers.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
