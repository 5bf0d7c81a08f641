package runstore

import (
	"fmt"

	"github.com/salespulse/salespulse/schema"
)

// quoteTableName returns the properly quoted table name for the given backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // PostgreSQL and SQLite
		return fmt.Sprintf("\"%s\"", name)
	}
}

// getCreateRunsQuery returns the CREATE TABLE query for salespulse_runs.
func getCreateRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(runsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				customer_count INT,
				product_count INT,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				customer_count INT,
				product_count INT,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				start_time TEXT NOT NULL,
				end_time TEXT,
				customer_count INTEGER,
				product_count INTEGER,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateSegmentCountsQuery returns the CREATE TABLE query for
// salespulse_segment_counts.
func getCreateSegmentCountsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(segmentCountsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				segment VARCHAR(50) NOT NULL,
				customer_count INT NOT NULL,
				total_monetary DOUBLE NOT NULL,
				PRIMARY KEY (run_id, segment)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				segment TEXT NOT NULL,
				customer_count INT NOT NULL,
				total_monetary DOUBLE PRECISION NOT NULL,
				PRIMARY KEY (run_id, segment)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				segment TEXT NOT NULL,
				customer_count INTEGER NOT NULL,
				total_monetary REAL NOT NULL,
				PRIMARY KEY (run_id, segment)
			);
		`, quotedTableName)
	}
}

// getCreateForecastPointsQuery returns the CREATE TABLE query for
// salespulse_forecast_points.
func getCreateForecastPointsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(forecastPointsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				period DATETIME(6) NOT NULL,
				point_estimate DOUBLE NOT NULL,
				lower_bound DOUBLE NOT NULL,
				upper_bound DOUBLE NOT NULL,
				confidence_level DOUBLE NOT NULL,
				PRIMARY KEY (run_id, period)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				period TIMESTAMPTZ NOT NULL,
				point_estimate DOUBLE PRECISION NOT NULL,
				lower_bound DOUBLE PRECISION NOT NULL,
				upper_bound DOUBLE PRECISION NOT NULL,
				confidence_level DOUBLE PRECISION NOT NULL,
				PRIMARY KEY (run_id, period)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				period TEXT NOT NULL,
				point_estimate REAL NOT NULL,
				lower_bound REAL NOT NULL,
				upper_bound REAL NOT NULL,
				confidence_level REAL NOT NULL,
				PRIMARY KEY (run_id, period)
			);
		`, quotedTableName)
	}
}
