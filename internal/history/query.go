package history

import (
	"database/sql"
	"time"
)

// Stats summarizes removal history over a period
type Stats struct {
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	TotalRemovals int64     `json:"total_removals"`
	TotalErrors   int64     `json:"total_errors"`
	TotalSkipped  int64     `json:"total_skipped"`
	BytesFreed    int64     `json:"bytes_freed"`
}

const recordColumns = `id, timestamp, action, path, file_name, category, kind, size, error_message, created_at`

// GetRecent returns the N most recent removal events
func (d *DB) GetRecent(limit int) ([]Record, error) {
	query := `
	SELECT ` + recordColumns + `
	FROM removals
	ORDER BY timestamp DESC
	LIMIT ?
	`
	return d.queryRecords(query, limit)
}

// GetByAction returns removals filtered by action type
func (d *DB) GetByAction(action string) ([]Record, error) {
	query := `
	SELECT ` + recordColumns + `
	FROM removals
	WHERE action = ?
	ORDER BY timestamp DESC
	`
	return d.queryRecords(query, action)
}

// GetByCategory returns removals filtered by plan category
func (d *DB) GetByCategory(category string) ([]Record, error) {
	query := `
	SELECT ` + recordColumns + `
	FROM removals
	WHERE category = ?
	ORDER BY timestamp DESC
	`
	return d.queryRecords(query, category)
}

// GetByPath returns removals matching a path pattern (SQL LIKE syntax)
func (d *DB) GetByPath(pathPattern string) ([]Record, error) {
	query := `
	SELECT ` + recordColumns + `
	FROM removals
	WHERE path LIKE ?
	ORDER BY timestamp DESC
	`
	return d.queryRecords(query, pathPattern)
}

// GetStats returns aggregate statistics for the last N days
func (d *DB) GetStats(days int) (*Stats, error) {
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -days)

	stats := &Stats{StartDate: start, EndDate: end}

	query := `
	SELECT
		COUNT(CASE WHEN action IN ('REMOVE', 'DRY_RUN') THEN 1 END),
		COUNT(CASE WHEN action = 'ERROR' THEN 1 END),
		COUNT(CASE WHEN action = 'SKIP' THEN 1 END),
		COALESCE(SUM(CASE WHEN action = 'REMOVE' THEN size ELSE 0 END), 0)
	FROM removals
	WHERE timestamp BETWEEN ? AND ?
	`
	err := d.db.QueryRow(query, start, end).Scan(
		&stats.TotalRemovals,
		&stats.TotalErrors,
		&stats.TotalSkipped,
		&stats.BytesFreed,
	)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	return stats, nil
}

func (d *DB) queryRecords(query string, args ...interface{}) ([]Record, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var errMsg sql.NullString
		if err := rows.Scan(
			&r.ID,
			&r.Timestamp,
			&r.Action,
			&r.Path,
			&r.FileName,
			&r.Category,
			&r.Kind,
			&r.Size,
			&errMsg,
			&r.CreatedAt,
		); err != nil {
			return nil, err
		}
		if errMsg.Valid {
			r.ErrorMsg = errMsg.String
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
