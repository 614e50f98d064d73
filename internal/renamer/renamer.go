// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package renamer implements the file-traversal and rename-orchestration
// engine: it discovers PDF files under a target path, resolves their
// bibliographic metadata through a Resolver, derives a new filename
// through a FilenameBuilder, and performs collision-safe renames,
// aggregating one ProcessResult per file.
package renamer

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/pdiddy/pdf-renamer/pkg/types"
)

// Resolver inspects a PDF file and returns its identifier and
// bibliographic metadata. A zero-valued Resolution with a nil error
// means no identifier was found, which is a normal outcome; a non-nil
// error means resolution itself failed.
type Resolver interface {
	Resolve(ctx context.Context, path string) (types.Resolution, error)
}

// FilenameBuilder turns bibliographic metadata into a sanitized
// filename without extension. The format template is fixed at
// construction time so it is validated once per run, not once per file.
// The returned name must be filesystem-safe; the engine joins it with
// the file's directory and extension verbatim.
type FilenameBuilder interface {
	Build(metadata map[string]string) (string, error)
}

// maxDisambiguator caps the collision-avoidance search. A directory
// with ten thousand files contending for one name indicates something
// else is wrong, and an error beats an unbounded probe loop.
const maxDisambiguator = 10000

// renameMu closes the probe-then-rename window when the walker runs
// with a worker pool: two files contending for the same base name must
// not both observe a candidate as free. Renames by other processes
// remain unguarded.
var renameMu sync.Mutex

// RenameFile renames oldPath to desiredBase+ext. If that path already
// exists, a numeric disambiguator is inserted before the extension
// (" (2)", " (3)", ...) and candidates are probed in increasing order
// until a free one is found, which makes the final name deterministic
// for a fixed directory snapshot. Exactly one rename syscall is
// performed; there is no copy+delete fallback.
//
// The caller is responsible for short-circuiting when oldPath already
// equals the first candidate; RenameFile does not special-case a no-op.
func RenameFile(oldPath, desiredBase, ext string) (string, error) {
	renameMu.Lock()
	defer renameMu.Unlock()

	if _, err := os.Stat(oldPath); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file %s does not exist", oldPath)
		}
		return "", fmt.Errorf("checking %s: %w", oldPath, err)
	}

	for i := 1; i <= maxDisambiguator; i++ {
		candidate := desiredBase + ext
		if i > 1 {
			candidate = fmt.Sprintf("%s (%d)%s", desiredBase, i, ext)
		}

		if _, err := os.Lstat(candidate); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return "", fmt.Errorf("probing %s: %w", candidate, err)
		}

		if err := os.Rename(oldPath, candidate); err != nil {
			return "", fmt.Errorf("renaming %s: %w", oldPath, err)
		}
		return candidate, nil
	}

	return "", fmt.Errorf("no free name for %s%s after %d attempts", desiredBase, ext, maxDisambiguator)
}
