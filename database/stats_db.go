package database

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// DashboardStats carries the admin dashboard counters.
type DashboardStats struct {
	Persons     int64 `json:"persons"`
	Categories  int64 `json:"categories"`
	Countries   int64 `json:"countries"`
	Professions int64 `json:"professions"`
	DeathCauses int64 `json:"death_causes"`
	TotalViews  int64 `json:"total_views"`
}

func countTable(db *sql.DB, table string) (int64, error) {
	sqlStr, args, err := psql.Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build SQL for counting %s: %w", table, err)
	}
	var n int64
	if err := db.QueryRow(sqlStr, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}

// GetDashboardStats aggregates row counts and the total view counter for the
// admin dashboard.
func GetDashboardStats(db *sql.DB) (DashboardStats, error) {
	var stats DashboardStats
	var err error

	if stats.Persons, err = countTable(db, "persons"); err != nil {
		return stats, err
	}
	if stats.Categories, err = countTable(db, "categories"); err != nil {
		return stats, err
	}
	if stats.Countries, err = countTable(db, "countries"); err != nil {
		return stats, err
	}
	if stats.Professions, err = countTable(db, "professions"); err != nil {
		return stats, err
	}
	if stats.DeathCauses, err = countTable(db, "death_causes"); err != nil {
		return stats, err
	}

	sqlStr, args, err := psql.Select("COALESCE(SUM(view_count), 0)").From("persons").ToSql()
	if err != nil {
		return stats, fmt.Errorf("failed to build SQL for total views: %w", err)
	}
	if err := db.QueryRow(sqlStr, args...).Scan(&stats.TotalViews); err != nil {
		return stats, fmt.Errorf("failed to sum view counts: %w", err)
	}

	return stats, nil
}
