package export

import (
	"context"
	"fmt"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"go.uber.org/zap"

	"movedata/internal/decode"
	"movedata/internal/models"
)

// InfluxWriter mirrors decoded samples into an InfluxDB bucket so tracking
// feeds can be charted next to other time series.
type InfluxWriter struct {
	client influxdb2.Client
	org    string
	bucket string
	logger *zap.Logger
}

// NewInfluxWriter returns a writer backed by a blocking write API.
func NewInfluxWriter(url, token, org, bucket string, logger *zap.Logger) *InfluxWriter {
	return &InfluxWriter{
		client: influxdb2.NewClient(url, token),
		org:    org,
		bucket: bucket,
		logger: logger,
	}
}

// WriteAcceleration writes one point per calibrated sample, tagged by
// deployment.
func (w *InfluxWriter) WriteAcceleration(ctx context.Context, bursts [][]models.CalibratedSample) error {
	writeAPI := w.client.WriteAPIBlocking(w.org, w.bucket)
	for _, burst := range bursts {
		for _, s := range burst {
			ts, err := time.Parse(decode.TimestampLayout, s.Timestamp)
			if err != nil {
				w.logger.Warn("skipping sample with unparsable timestamp",
					zap.String("timestamp", s.Timestamp))
				continue
			}
			point := influxdb2.NewPoint(
				"acceleration",
				map[string]string{"deployment_id": strconv.FormatInt(s.DeploymentID, 10)},
				map[string]interface{}{
					"acc_x": s.AccX,
					"acc_y": s.AccY,
					"acc_z": s.AccZ,
				},
				ts,
			)
			if err := writeAPI.WritePoint(ctx, point); err != nil {
				return fmt.Errorf("export: influx write: %w", err)
			}
		}
	}
	return nil
}

// WriteGPS writes location fixes that carry both coordinates; incomplete
// fixes are skipped.
func (w *InfluxWriter) WriteGPS(ctx context.Context, fixes []models.GPSFix) error {
	writeAPI := w.client.WriteAPIBlocking(w.org, w.bucket)
	for _, f := range fixes {
		if f.Latitude == nil || f.Longitude == nil {
			continue
		}
		ts, err := time.Parse(decode.TimestampLayout, f.Timestamp)
		if err != nil {
			w.logger.Warn("skipping fix with unparsable timestamp",
				zap.String("timestamp", f.Timestamp))
			continue
		}
		point := influxdb2.NewPoint(
			"gps",
			map[string]string{"deployment_id": f.DeploymentID},
			map[string]interface{}{
				"location_lat":  *f.Latitude,
				"location_long": *f.Longitude,
			},
			ts,
		)
		if err := writeAPI.WritePoint(ctx, point); err != nil {
			return fmt.Errorf("export: influx write: %w", err)
		}
	}
	return nil
}

// Close releases the underlying client.
func (w *InfluxWriter) Close() {
	w.client.Close()
}
