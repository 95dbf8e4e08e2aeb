package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"movedata/internal/decode"
	"movedata/internal/models"
	"movedata/internal/movebank"
)

type fakeSource struct {
	individuals []models.RawEventRecord
	events      map[movebank.SensorType][]models.RawEventRecord
	failFor     map[int64]error
	eventCalls  int
}

func (f *fakeSource) IndividualsByStudy(_ context.Context, _ int64) ([]models.RawEventRecord, error) {
	return f.individuals, nil
}

func (f *fakeSource) IndividualEvents(_ context.Context, _ int64, individualID int64, sensor movebank.SensorType) ([]models.RawEventRecord, error) {
	f.eventCalls++
	if err, ok := f.failFor[individualID]; ok {
		return nil, err
	}
	return f.events[sensor], nil
}

type fakeStore struct {
	bursts []int
	fixes  []models.GPSFix
}

func (f *fakeStore) InsertAccelerationBurst(_ context.Context, samples []models.CalibratedSample) error {
	f.bursts = append(f.bursts, len(samples))
	return nil
}

func (f *fakeStore) InsertGPSFix(_ context.Context, fix models.GPSFix) error {
	f.fixes = append(f.fixes, fix)
	return nil
}

type fakeSink struct {
	accWrites int
	gpsWrites int
	err       error
}

func (f *fakeSink) WriteAcceleration(_ context.Context, _ [][]models.CalibratedSample) error {
	f.accWrites++
	return f.err
}

func (f *fakeSink) WriteGPS(_ context.Context, _ []models.GPSFix) error {
	f.gpsWrites++
	return f.err
}

func accEvent() models.RawEventRecord {
	return models.RawEventRecord{
		models.FieldTimestamp:          "2020-01-01 00:00:00.000000",
		models.FieldDeploymentID:       "10",
		models.FieldTagLocalIdentifier: "5000",
		models.FieldSamplingFrequency:  "20",
		models.FieldAccelerationsRaw:   "2048 2048 2048 2148 2048 2048",
	}
}

func gpsEvent() models.RawEventRecord {
	return models.RawEventRecord{
		models.FieldTimestamp:    "2020-01-01 00:00:00.000000",
		models.FieldDeploymentID: "10",
		models.FieldLocationLat:  "47.6",
		models.FieldLocationLong: "9.1",
	}
}

func newTestService(source EventSource, store SampleStore, sink TimeSeriesSink) *IngestService {
	return NewIngestService(
		source,
		decode.NewAccelerationDecoder(decode.UnitG, decode.SensitivityHigh, zap.NewNop()),
		decode.NewGPSNormalizer(zap.NewNop()),
		store,
		sink,
		zap.NewNop(),
	)
}

func TestIngestAccelerationDeliversToStoreAndSink(t *testing.T) {
	source := &fakeSource{events: map[movebank.SensorType][]models.RawEventRecord{
		movebank.SensorAcceleration: {accEvent(), accEvent()},
	}}
	store := &fakeStore{}
	sink := &fakeSink{}

	table, err := newTestService(source, store, sink).IngestAcceleration(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Rows) != 4 {
		t.Fatalf("expected 4 flattened rows, got %d", len(table.Rows))
	}
	if len(store.bursts) != 2 || store.bursts[0] != 2 {
		t.Fatalf("unexpected store writes: %v", store.bursts)
	}
	if sink.accWrites != 1 {
		t.Fatalf("expected 1 sink write, got %d", sink.accWrites)
	}
}

func TestIngestAccelerationSinkFailureIsNonFatal(t *testing.T) {
	source := &fakeSource{events: map[movebank.SensorType][]models.RawEventRecord{
		movebank.SensorAcceleration: {accEvent()},
	}}
	sink := &fakeSink{err: errors.New("influx down")}

	table, err := newTestService(source, nil, sink).IngestAcceleration(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("sink failure should not fail ingest: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
}

func TestIngestGPSPersistsFixes(t *testing.T) {
	source := &fakeSource{events: map[movebank.SensorType][]models.RawEventRecord{
		movebank.SensorGPS: {gpsEvent(), gpsEvent()},
	}}
	store := &fakeStore{}

	table, err := newTestService(source, store, nil).IngestGPS(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if len(store.fixes) != 2 {
		t.Fatalf("expected 2 stored fixes, got %d", len(store.fixes))
	}
	if store.fixes[0].Latitude == nil || *store.fixes[0].Latitude != 47.6 {
		t.Fatalf("unexpected stored fix: %+v", store.fixes[0])
	}
}

func TestIngestStudyIsolatesFailingIndividuals(t *testing.T) {
	source := &fakeSource{
		individuals: []models.RawEventRecord{
			{"id": "1"},
			{"id": "2"},
			{"id": "not-a-number"},
		},
		events: map[movebank.SensorType][]models.RawEventRecord{
			movebank.SensorAcceleration: {accEvent()},
			movebank.SensorGPS:          {gpsEvent()},
		},
		failFor: map[int64]error{1: errors.New("boom")},
	}
	store := &fakeStore{}

	if err := newTestService(source, store, nil).IngestStudy(context.Background(), 9, ""); err != nil {
		t.Fatalf("study ingest should survive individual failures: %v", err)
	}

	// individual 1 failed, individual 2 delivered both sensors, the malformed
	// id row was skipped before any fetch
	if len(store.bursts) != 1 {
		t.Fatalf("expected 1 stored burst, got %d", len(store.bursts))
	}
	if len(store.fixes) != 1 {
		t.Fatalf("expected 1 stored fix, got %d", len(store.fixes))
	}
}
