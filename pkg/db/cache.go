package db

import (
	"context"
	"database/sql"
	"fmt"
)

// IdentifierCache is a sqlite-backed store of accession -> gene symbol
// mappings so repeated sessions do not re-query the remote service for
// accessions already seen.
type IdentifierCache struct {
	db *sql.DB
}

const cacheSchema = `
	CREATE TABLE IF NOT EXISTS identifier_map (
		accession TEXT PRIMARY KEY,
		gene      TEXT NOT NULL
	);
`

// OpenIdentifierCache opens (or creates) the cache database at path.
// Use ":memory:" for an ephemeral cache.
func OpenIdentifierCache(path string) (*IdentifierCache, error) {
	sqldb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open identifier cache: %w", err)
	}

	if _, err := sqldb.Exec(cacheSchema); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("init identifier cache schema: %w", err)
	}

	return &IdentifierCache{db: sqldb}, nil
}

// Lookup returns the cached mappings for the given accessions. Missing
// accessions are simply absent from the result.
func (c *IdentifierCache) Lookup(ctx context.Context, accessions []string) (map[string]string, error) {

	found := make(map[string]string)

	stmt, err := c.db.PrepareContext(ctx, `SELECT gene FROM identifier_map WHERE accession = ?`)
	if err != nil {
		return nil, fmt.Errorf("prepare cache lookup: %w", err)
	}
	defer stmt.Close()

	for _, acc := range accessions {
		var gene string
		err := stmt.QueryRowContext(ctx, acc).Scan(&gene)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("cache lookup for %s: %w", acc, err)
		}
		found[acc] = gene
	}

	return found, nil
}

// Store upserts the given mappings in one transaction.
func (c *IdentifierCache) Store(ctx context.Context, mapping map[string]string) error {
	if len(mapping) == 0 {
		return nil
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cache tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO identifier_map (accession, gene) VALUES (?, ?)
		ON CONFLICT (accession) DO UPDATE SET gene = excluded.gene
	`)
	if err != nil {
		return fmt.Errorf("prepare cache upsert: %w", err)
	}
	defer stmt.Close()

	for acc, gene := range mapping {
		if _, err := stmt.ExecContext(ctx, acc, gene); err != nil {
			return fmt.Errorf("cache upsert for %s: %w", acc, err)
		}
	}

	return tx.Commit()
}

func (c *IdentifierCache) Close() error {
	return c.db.Close()
}
