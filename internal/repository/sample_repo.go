package repository

import (
	"context"
	"database/sql"
	"fmt"

	"movedata/internal/models"
)

// SampleRepository persists decoded acceleration samples and GPS fixes.
type SampleRepository struct {
	db *sql.DB
}

// NewSampleRepository returns repository.
func NewSampleRepository(db *sql.DB) *SampleRepository {
	return &SampleRepository{db: db}
}

// InsertAccelerationBurst stores all samples of one decoded burst.
func (r *SampleRepository) InsertAccelerationBurst(ctx context.Context, samples []models.CalibratedSample) error {
	const query = `
		INSERT INTO acceleration_samples (deployment_id, recorded_at, acc_x, acc_y, acc_z, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	for _, s := range samples {
		if _, err := r.db.ExecContext(ctx, query,
			s.DeploymentID,
			s.Timestamp,
			s.AccX,
			s.AccY,
			s.AccZ,
		); err != nil {
			return fmt.Errorf("repository: insert acceleration sample: %w", err)
		}
	}
	return nil
}

// InsertGPSFix stores one normalized location fix. Absent coordinates become
// NULL.
func (r *SampleRepository) InsertGPSFix(ctx context.Context, fix models.GPSFix) error {
	const query = `
		INSERT INTO gps_fixes (deployment_id, recorded_at, location_lat, location_long, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	if _, err := r.db.ExecContext(ctx, query,
		fix.DeploymentID,
		fix.Timestamp,
		nullableFloat(fix.Latitude),
		nullableFloat(fix.Longitude),
	); err != nil {
		return fmt.Errorf("repository: insert gps fix: %w", err)
	}
	return nil
}

// CountAccelerationByDeployment returns how many stored samples a deployment
// has.
func (r *SampleRepository) CountAccelerationByDeployment(ctx context.Context, deploymentID int64) (int64, error) {
	const query = `
		SELECT COUNT(*)
		FROM acceleration_samples
		WHERE deployment_id = $1
	`
	var count int64
	if err := r.db.QueryRowContext(ctx, query, deploymentID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func nullableFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
