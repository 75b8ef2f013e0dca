package database

import (
	"database/sql"
	"fmt"
	"time"
)

// SitemapEntry is one sluggable row for sitemap generation.
type SitemapEntry struct {
	Slug      string
	UpdatedAt time.Time
}

func collectSlugs(db *sql.DB, table string) ([]SitemapEntry, error) {
	sqlStr, args, err := psql.Select("slug", "updated_at").From(table).OrderBy("slug ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for %s sitemap sweep: %w", table, err)
	}
	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s slugs: %w", table, err)
	}
	defer rows.Close()

	var entries []SitemapEntry
	for rows.Next() {
		var e SitemapEntry
		if err := rows.Scan(&e.Slug, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan %s slug row: %w", table, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetSitemapSlugs sweeps every slugged table in one pass for /sitemap.xml.
// The result keys are the table names.
func GetSitemapSlugs(db *sql.DB) (map[string][]SitemapEntry, error) {
	out := make(map[string][]SitemapEntry, 4)
	for _, table := range []string{"categories", "countries", "professions", "persons"} {
		entries, err := collectSlugs(db, table)
		if err != nil {
			return nil, err
		}
		out[table] = entries
	}
	return out, nil
}
