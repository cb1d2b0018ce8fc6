package db

import (
	"context"

	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/models"
)

// InsertUploadRun records one processed spreadsheet in the audit log.
func (d *DB) InsertUploadRun(ctx context.Context, run *models.UploadRun) error {
	query := `
		INSERT INTO upload_runs (filename, source, row_count, duration_ms, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	return d.Pool.QueryRow(ctx, query,
		run.Filename,
		run.Source,
		run.RowCount,
		run.DurationMS,
		run.CreatedBy,
	).Scan(&run.ID, &run.CreatedAt)
}

// ListRecentRuns returns the newest audit entries, most recent first.
func (d *DB) ListRecentRuns(ctx context.Context, limit int) ([]models.UploadRun, error) {
	query := `
		SELECT id, filename, source, row_count, duration_ms, created_by, created_at
		FROM upload_runs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := d.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []models.UploadRun
	for rows.Next() {
		var r models.UploadRun
		if err := rows.Scan(
			&r.ID, &r.Filename, &r.Source, &r.RowCount,
			&r.DurationMS, &r.CreatedBy, &r.CreatedAt,
		); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

// CountRunsBySource returns how many runs each source produced.
func (d *DB) CountRunsBySource(ctx context.Context) (map[string]int, error) {
	query := `SELECT source, COUNT(*) FROM upload_runs GROUP BY source`

	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var source string
		var count int
		if err := rows.Scan(&source, &count); err != nil {
			return nil, err
		}
		counts[source] = count
	}

	return counts, rows.Err()
}
