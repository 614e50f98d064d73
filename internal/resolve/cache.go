// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pdf-renamer/pkg/types"
)

// Cache is a SQLite store of completed identifier lookups. Re-running
// the renamer over a large library then hits the network only for
// files whose identifier has not been resolved before.
type Cache struct {
	db *sql.DB
}

// OpenCache opens or creates the cache database at path, creating
// parent directories as needed.
func OpenCache(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS resolutions (
		identifier TEXT PRIMARY KEY,
		identifier_type TEXT NOT NULL,
		metadata TEXT NOT NULL,
		bibtex TEXT,
		validation_info TEXT,
		fetched_at TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close releases the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached resolution for an identifier, or ok=false on
// a miss. A cache row with unparseable metadata counts as a miss so a
// fresh lookup can repair it.
func (c *Cache) Get(identifier string) (types.Resolution, bool) {
	var (
		idType, metadataJSON string
		bibtex, validation   sql.NullString
	)
	err := c.db.QueryRow(
		`SELECT identifier_type, metadata, bibtex, validation_info FROM resolutions WHERE identifier = ?`,
		identifier,
	).Scan(&idType, &metadataJSON, &bibtex, &validation)
	if err != nil {
		return types.Resolution{}, false
	}

	var metadata map[string]string
	if err := json.Unmarshal([]byte(metadataJSON), &metadata); err != nil {
		return types.Resolution{}, false
	}

	return types.Resolution{
		Identifier:     identifier,
		IdentifierType: idType,
		Metadata:       metadata,
		Bibtex:         bibtex.String,
		ValidationInfo: validation.String,
		Method:         MethodCache,
	}, true
}

// Put stores a completed resolution, replacing any previous row for
// the same identifier.
func (c *Cache) Put(res types.Resolution) error {
	metadataJSON, err := json.Marshal(res.Metadata)
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}

	_, err = c.db.Exec(
		`INSERT OR REPLACE INTO resolutions
		 (identifier, identifier_type, metadata, bibtex, validation_info, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		res.Identifier, res.IdentifierType, string(metadataJSON),
		res.Bibtex, res.ValidationInfo,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("storing resolution: %w", err)
	}
	return nil
}
