package store

import (
	"context"
	"database/sql"

	"matchengine/internal/common/errors"
	"matchengine/internal/models"
)

// JobStore reads the job pool owned by the job collaborator. The engine's
// only write is backfilling geocoded coordinates.
type JobStore struct {
	db *sql.DB
}

func NewJobStore(db *sql.DB) *JobStore {
	return &JobStore{db: db}
}

const jobColumns = `id, title, company, location, description, skills, active,
	       latitude, longitude, posted_by, created_at, updated_at`

// ActiveJobs returns every active posting, newest first.
func (s *JobStore) ActiveJobs(ctx context.Context) ([]models.Job, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+jobColumns+`
		FROM jobs
		WHERE active = TRUE
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("jobs_active", err)
	}
	defer rows.Close()

	return scanJobs(rows)
}

// JobsMissingCoordinates returns active jobs with a geocodable location but
// no stored coordinates. Remote/anywhere/blank locations are excluded.
func (s *JobStore) JobsMissingCoordinates(ctx context.Context) ([]models.Job, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+jobColumns+`
		FROM jobs
		WHERE active = TRUE
		  AND latitude IS NULL AND longitude IS NULL
		  AND location <> ''
		  AND LOWER(location) NOT IN ('remote', 'anywhere')
		ORDER BY created_at ASC`)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("jobs_missing_coordinates", err)
	}
	defer rows.Close()

	return scanJobs(rows)
}

// SetCoordinates stores geocoded coordinates on a job.
func (s *JobStore) SetCoordinates(ctx context.Context, jobID string, latitude, longitude float64) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE jobs SET latitude = $2, longitude = $3 WHERE id = $1`,
		jobID, latitude, longitude)
	if err != nil {
		return errors.NewQueryExecutionFailedError("jobs_set_coordinates", err)
	}
	return nil
}

func scanJobs(rows *sql.Rows) ([]models.Job, error) {
	var jobs []models.Job
	for rows.Next() {
		var job models.Job
		var lat, lon sql.NullFloat64
		err := rows.Scan(
			&job.ID, &job.Title, &job.Company, &job.Location, &job.Description,
			&job.Skills, &job.Active, &lat, &lon,
			&job.PostedBy, &job.CreatedAt, &job.UpdatedAt,
		)
		if err != nil {
			return nil, errors.NewQueryExecutionFailedError("jobs_scan", err)
		}
		if lat.Valid && lon.Valid {
			latV, lonV := lat.Float64, lon.Float64
			job.Latitude = &latV
			job.Longitude = &lonV
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("jobs_scan", err)
	}
	return jobs, nil
}
