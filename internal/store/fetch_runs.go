package store

import (
	"database/sql"
	"time"

	"github.com/lox/weatherdash/internal/models"
)

// RecordFetchRun appends one provider call to the audit log.
func (s *Store) RecordFetchRun(run models.FetchRun) error {
	var errMsg sql.NullString
	if run.Error != "" {
		errMsg = sql.NullString{String: run.Error, Valid: true}
	}
	_, err := s.db.Exec(`
		INSERT INTO fetch_runs (request_id, started_at, endpoint, city, unit, manual, silent, success, error_message, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.RequestID, time.Now().UTC(), run.Endpoint, run.City, string(run.Unit), run.Manual, run.Silent, run.Success, errMsg, run.DurationMS)
	return err
}

// RecentFetchRuns returns the newest runs first.
func (s *Store) RecentFetchRuns(limit int) ([]models.FetchRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, request_id, endpoint, city, unit, manual, silent, success, error_message, duration_ms
		FROM fetch_runs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []models.FetchRun
	for rows.Next() {
		var run models.FetchRun
		var unit string
		var errMsg sql.NullString
		if err := rows.Scan(&run.ID, &run.RequestID, &run.Endpoint, &run.City, &unit, &run.Manual, &run.Silent, &run.Success, &errMsg, &run.DurationMS); err != nil {
			return nil, err
		}
		run.Unit = models.Unit(unit)
		run.Error = errMsg.String
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
