package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"movedata/internal/decode"
	"movedata/internal/export"
	"movedata/internal/models"
	"movedata/internal/movebank"
)

// EventSource lists individuals and their sensor events.
type EventSource interface {
	IndividualsByStudy(ctx context.Context, studyID int64) ([]models.RawEventRecord, error)
	IndividualEvents(ctx context.Context, studyID, individualID int64, sensor movebank.SensorType) ([]models.RawEventRecord, error)
}

// SampleStore persists decoded output.
type SampleStore interface {
	InsertAccelerationBurst(ctx context.Context, samples []models.CalibratedSample) error
	InsertGPSFix(ctx context.Context, fix models.GPSFix) error
}

// TimeSeriesSink mirrors decoded output into a time-series database.
type TimeSeriesSink interface {
	WriteAcceleration(ctx context.Context, bursts [][]models.CalibratedSample) error
	WriteGPS(ctx context.Context, fixes []models.GPSFix) error
}

// IngestService drives one retrieval cycle: fetch raw events, decode, persist
// and export. Store and sink are optional; a nil dependency disables that
// delivery path.
type IngestService struct {
	source  EventSource
	decoder *decode.AccelerationDecoder
	gps     *decode.GPSNormalizer
	store   SampleStore
	sink    TimeSeriesSink
	logger  *zap.Logger
}

// NewIngestService returns service instance.
func NewIngestService(source EventSource, decoder *decode.AccelerationDecoder, gps *decode.GPSNormalizer, store SampleStore, sink TimeSeriesSink, logger *zap.Logger) *IngestService {
	return &IngestService{
		source:  source,
		decoder: decoder,
		gps:     gps,
		store:   store,
		sink:    sink,
		logger:  logger,
	}
}

// IngestAcceleration fetches and decodes acceleration bursts for one
// individual, delivering them to the configured store and sink and returning
// the flattened table.
func (s *IngestService) IngestAcceleration(ctx context.Context, studyID, individualID int64) (export.Table, error) {
	records, err := s.source.IndividualEvents(ctx, studyID, individualID, movebank.SensorAcceleration)
	if err != nil {
		return export.Table{}, err
	}
	bursts := s.decoder.DecodeBatch(records)

	if s.store != nil {
		for _, burst := range bursts {
			if err := s.store.InsertAccelerationBurst(ctx, burst); err != nil {
				return export.Table{}, err
			}
		}
	}
	if s.sink != nil {
		if err := s.sink.WriteAcceleration(ctx, bursts); err != nil {
			s.logger.Warn("time-series sink write failed", zap.Error(err))
		}
	}
	return export.AccelerationTable(bursts), nil
}

// IngestGPS fetches and normalizes location fixes for one individual.
func (s *IngestService) IngestGPS(ctx context.Context, studyID, individualID int64) (export.Table, error) {
	records, err := s.source.IndividualEvents(ctx, studyID, individualID, movebank.SensorGPS)
	if err != nil {
		return export.Table{}, err
	}
	fixes := s.gps.NormalizeBatch(records)

	if s.store != nil {
		for _, fix := range fixes {
			if err := s.store.InsertGPSFix(ctx, fix); err != nil {
				return export.Table{}, err
			}
		}
	}
	if s.sink != nil {
		if err := s.sink.WriteGPS(ctx, fixes); err != nil {
			s.logger.Warn("time-series sink write failed", zap.Error(err))
		}
	}
	return export.GPSTable(fixes), nil
}

// IngestStudy runs acceleration and GPS ingestion for every individual of the
// study. One failing individual is logged and does not abort the rest.
func (s *IngestService) IngestStudy(ctx context.Context, studyID int64, outDir string) error {
	individuals, err := s.source.IndividualsByStudy(ctx, studyID)
	if err != nil {
		return err
	}
	s.logger.Info("ingesting study",
		zap.Int64("study_id", studyID),
		zap.Int("individuals", len(individuals)))

	for _, ind := range individuals {
		id, err := strconv.ParseInt(ind["id"], 10, 64)
		if err != nil {
			s.logger.Warn("individual row without numeric id", zap.String("id", ind["id"]))
			continue
		}
		if err := s.ingestIndividual(ctx, studyID, id, outDir); err != nil {
			s.logger.Error("individual ingest failed",
				zap.Int64("individual_id", id),
				zap.Error(err))
		}
	}
	return nil
}

func (s *IngestService) ingestIndividual(ctx context.Context, studyID, individualID int64, outDir string) error {
	accTable, err := s.IngestAcceleration(ctx, studyID, individualID)
	if err != nil {
		return err
	}
	if err := s.save(accTable, outDir, fmt.Sprintf("acc_%d.csv", individualID)); err != nil {
		return err
	}

	gpsTable, err := s.IngestGPS(ctx, studyID, individualID)
	if err != nil {
		return err
	}
	return s.save(gpsTable, outDir, fmt.Sprintf("gps_%d.csv", individualID))
}

func (s *IngestService) save(table export.Table, outDir, name string) error {
	if outDir == "" || len(table.Rows) == 0 {
		return nil
	}
	path := filepath.Join(outDir, name)
	if err := table.SaveCSV(path); err != nil {
		return err
	}
	s.logger.Info("table exported", zap.String("path", path), zap.Int("rows", len(table.Rows)))
	return nil
}
