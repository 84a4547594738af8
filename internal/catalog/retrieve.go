// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// QueryOptions narrows a catalog search.
type QueryOptions struct {
	// Query is an FTS5 match expression over prompt and answer text.
	// Empty means no full-text filter.
	Query string

	// Shape restricts results to one answer shape (plain, list,
	// hierarchical). Empty means all shapes.
	Shape string

	// MaxResults caps the result count. Zero uses the store default.
	MaxResults int
}

// QueryResult is one catalog row.
type QueryResult struct {
	ID            string `json:"id"`
	Prompt        string `json:"prompt"`
	Answer        string `json:"answer"`
	Verses        string `json:"verses,omitempty"`
	Shape         string `json:"shape"`
	FragmentCount int    `json:"fragment_count"`
}

// Retrieve runs a search against the catalog. With a full-text query,
// results come back in FTS rank order; otherwise they are ordered by
// record id.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	limit := opts.MaxResults
	if limit <= 0 {
		limit = s.maxResults
	}

	var b strings.Builder
	var args []any

	b.WriteString(`SELECT r.id, r.prompt, r.answer, r.verses, r.shape, r.fragment_count FROM records r`)

	var conds []string
	if opts.Query != "" {
		b.WriteString(` JOIN records_fts f ON f.rowid = r.rowid`)
		conds = append(conds, `records_fts MATCH ?`)
		args = append(args, opts.Query)
	}
	if opts.Shape != "" {
		conds = append(conds, `r.shape = ?`)
		args = append(args, opts.Shape)
	}
	if len(conds) > 0 {
		b.WriteString(` WHERE ` + strings.Join(conds, ` AND `))
	}

	if opts.Query != "" {
		b.WriteString(` ORDER BY f.rank`)
	} else {
		b.WriteString(` ORDER BY r.id`)
	}
	b.WriteString(` LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var r QueryResult
		var verses sql.NullString
		if err := rows.Scan(&r.ID, &r.Prompt, &r.Answer, &verses, &r.Shape, &r.FragmentCount); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		r.Verses = verses.String
		results = append(results, r)
	}
	return results, rows.Err()
}
